// Package pattern defines the binary bar/space pattern that symbology
// encoders produce and the geometry compiler consumes.
//
// A [Pattern] is a string of '0' (space) and '1' (bar) characters, one per
// module. Valid patterns are never empty: an encoder that cannot produce
// modules reports an error instead.
package pattern

import (
	"iter"

	"github.com/matzehuels/barsvg/pkg/errors"
)

// Module is a single fixed-width unit of a pattern.
type Module uint8

const (
	Space Module = iota
	Bar
)

func (m Module) String() string {
	if m == Bar {
		return "bar"
	}
	return "space"
}

// Pattern is an immutable sequence of modules encoded as '0'/'1' characters.
type Pattern string

// Parse validates s and returns it as a Pattern.
func Parse(s string) (Pattern, error) {
	if s == "" {
		return "", errors.New(errors.ErrCodeInvalidPattern, "pattern cannot be empty")
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '1' {
			return "", errors.New(errors.ErrCodeInvalidPattern, "invalid module %q at index %d", s[i], i)
		}
	}
	return Pattern(s), nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level fixtures.
func MustParse(s string) Pattern {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// FromBits builds a pattern where true marks a bar module.
func FromBits(bits []bool) Pattern {
	b := make([]byte, len(bits))
	for i, bar := range bits {
		if bar {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return Pattern(b)
}

// Len returns the number of modules.
func (p Pattern) Len() int { return len(p) }

// At returns the module at index i.
func (p Pattern) At(i int) Module {
	if p[i] == '1' {
		return Bar
	}
	return Space
}

// Bars counts bar modules.
func (p Pattern) Bars() int {
	n := 0
	for i := 0; i < len(p); i++ {
		if p[i] == '1' {
			n++
		}
	}
	return n
}

// Run is a maximal sequence of consecutive bar modules.
type Run struct {
	Start int // index of the first bar module
	Len   int // number of bar modules
}

// Runs yields the maximal bar runs from left to right.
func (p Pattern) Runs() iter.Seq[Run] {
	return func(yield func(Run) bool) {
		start := -1
		for i := 0; i < len(p); i++ {
			if p[i] == '1' {
				if start < 0 {
					start = i
				}
				continue
			}
			if start >= 0 {
				if !yield(Run{Start: start, Len: i - start}) {
					return
				}
				start = -1
			}
		}
		if start >= 0 {
			yield(Run{Start: start, Len: len(p) - start})
		}
	}
}

// String returns the '0'/'1' form of the pattern.
func (p Pattern) String() string { return string(p) }
