package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/barsvg/pkg/barcode"
	"github.com/matzehuels/barsvg/pkg/errors"
	"github.com/matzehuels/barsvg/pkg/symbology"
)

const sample = `
[defaults]
format = "EAN13"
height = 60
line_color = "#222222"

[[barcode]]
value = "590123412345"
output = "sku-1.svg"
text = "590123412345"

[[barcode]]
value = "ABC-123"
format = "CODE39"
width = 1.5

[[barcode]]
value = "1234567"
format = "EAN8"
output = "nested/ean8.json"
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, m.Barcodes, 3)
	assert.Equal(t, symbology.EAN13, m.Defaults.Format)
	assert.Equal(t, 60.0, m.Defaults.Height)
	assert.Equal(t, "sku-1.svg", m.Barcodes[0].Output)
	assert.Equal(t, 1.5, m.Barcodes[1].UnitWidth)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid toml", "[[barcode]\nvalue = "},
		{"no entries", "[defaults]\nheight = 10\n"},
		{"unknown key", "[[barcode]]\nvalue = \"x\"\ncolour = \"red\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNotFound, errors.GetCode(err))
}

func TestEntries(t *testing.T) {
	m, err := Parse([]byte(sample))
	require.NoError(t, err)

	entries := m.Entries()
	require.Len(t, entries, 3)

	assert.Equal(t, symbology.EAN13, entries[0].Format, "defaults fill missing fields")
	assert.Equal(t, 60.0, entries[0].Height)
	assert.Equal(t, "#222222", entries[0].LineColor)

	assert.Equal(t, symbology.Code39, entries[1].Format, "entry fields win")
	assert.Equal(t, 1.5, entries[1].UnitWidth)
	assert.Equal(t, 60.0, entries[1].Height)

	// The raw entries are untouched.
	assert.Empty(t, m.Barcodes[0].Format)
}

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name  string
		index int
		entry Entry
		want  string
		code  errors.Code
	}{
		{"explicit", 0, Entry{Output: "a.svg"}, "a.svg", ""},
		{"nested", 0, Entry{Output: "x/y.json"}, filepath.Join("x", "y.json"), ""},
		{"default name", 4, Entry{Props: barcode.Props{Format: symbology.EAN13}}, "005-ean13.svg", ""},
		{"default format", 0, Entry{}, "001-code128.svg", ""},
		{"traversal stays inside", 0, Entry{Output: "../../etc/x.svg"}, filepath.Join("etc", "x.svg"), ""},
		{"absolute", 0, Entry{Output: "/etc/x.svg"}, "", errors.ErrCodeInvalidPath},
		{"bad extension", 0, Entry{Output: "x.png"}, "", errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OutputPath(dir, tt.index, tt.entry)
			if tt.code != "" {
				require.Error(t, err)
				assert.Equal(t, tt.code, errors.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.want), got)
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	m, err := Parse([]byte(sample + `
[[barcode]]
value = "12345678901"
output = "broken.svg"
`))
	require.NoError(t, err)

	results, err := Run(context.Background(), m, Options{Dir: dir})
	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, 1, Failed(results))

	svg, err := os.ReadFile(filepath.Join(dir, "sku-1.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(svg), `fill="#222222"`)
	assert.Contains(t, string(svg), ">590123412345</text>")

	_, err = os.Stat(filepath.Join(dir, "002-code39.svg"))
	assert.NoError(t, err)

	js, err := os.ReadFile(filepath.Join(dir, "nested", "ean8.json"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(js), "{"))

	assert.Equal(t, errors.ErrCodeInvalidValue, errors.GetCode(results[3].Err))
	_, err = os.Stat(filepath.Join(dir, "broken.svg"))
	assert.True(t, os.IsNotExist(err), "failed entries write nothing")
}

func TestRunOverrides(t *testing.T) {
	dir := t.TempDir()
	m, err := Parse([]byte(sample))
	require.NoError(t, err)

	_, err = Run(context.Background(), m, Options{
		Dir:       dir,
		Overrides: barcode.Props{LineColor: "#ff0000"},
	})
	require.NoError(t, err)

	svg, err := os.ReadFile(filepath.Join(dir, "sku-1.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(svg), `fill="#ff0000"`)
	assert.Contains(t, string(svg), "590123412345</text>", "overrides keep the entry value and caption")
}

func TestRunOverrideNamesOutput(t *testing.T) {
	dir := t.TempDir()
	m, err := Parse([]byte(`
[[barcode]]
value = "590123412345"
format = "CODE128"
`))
	require.NoError(t, err)

	results, err := Run(context.Background(), m, Options{
		Dir:       dir,
		Overrides: barcode.Props{Format: symbology.EAN13},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Equal(t, filepath.Join(dir, "001-ean13.svg"), results[0].Path)

	_, err = os.Stat(filepath.Join(dir, "001-code128.svg"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunCancelled(t *testing.T) {
	m, err := Parse([]byte(sample))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := Run(ctx, m, Options{Dir: t.TempDir()})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}
