package pattern

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/barsvg/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"single bar", "1", false},
		{"single space", "0", false},
		{"mixed", "1011001", false},

		{"empty", "", true},
		{"letter", "10a1", true},
		{"whitespace", "10 1", true},
		{"digit two", "102", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrCodeInvalidPattern))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, p.String())
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("") })
	assert.NotPanics(t, func() { MustParse("10") })
}

func TestFromBits(t *testing.T) {
	p := FromBits([]bool{true, false, true, true})
	assert.Equal(t, Pattern("1011"), p)
	assert.Equal(t, 4, p.Len())
	assert.Equal(t, 3, p.Bars())
}

func TestAt(t *testing.T) {
	p := MustParse("10")
	assert.Equal(t, Bar, p.At(0))
	assert.Equal(t, Space, p.At(1))
	assert.Equal(t, "bar", Bar.String())
	assert.Equal(t, "space", Space.String())
}

func TestRuns(t *testing.T) {
	tests := []struct {
		input string
		want  []Run
	}{
		{"0000", nil},
		{"1111", []Run{{0, 4}}},
		{"101", []Run{{0, 1}, {2, 1}}},
		{"0110111", []Run{{1, 2}, {4, 3}}},
		{"1001", []Run{{0, 1}, {3, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := slices.Collect(MustParse(tt.input).Runs())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunsStopsEarly(t *testing.T) {
	count := 0
	for range MustParse("10101").Runs() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}
