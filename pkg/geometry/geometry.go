package geometry

import (
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/rect"

	"github.com/matzehuels/barsvg/pkg/errors"
	"github.com/matzehuels/barsvg/pkg/pattern"
)

// Layout holds the caller's scale for one compilation.
type Layout struct {
	UnitWidth float64 // nominal width of one module
	Height    float64 // bar height
	MaxWidth  float64 // 0 means unconstrained
}

// Validate checks that the layout describes a drawable surface.
func (l Layout) Validate() error {
	if !finite(l.UnitWidth) || !finite(l.Height) || !finite(l.MaxWidth) {
		return errors.New(errors.ErrCodeInvalidLayout, "layout values must be finite")
	}
	if l.UnitWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidLayout, "unit width must be positive, got %v", l.UnitWidth)
	}
	if l.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidLayout, "height must be positive, got %v", l.Height)
	}
	if l.MaxWidth < 0 {
		return errors.New(errors.ErrCodeInvalidLayout, "max width cannot be negative, got %v", l.MaxWidth)
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Rect is one merged bar run. Every rect starts at y=0.
type Rect struct {
	X      float64
	Width  float64
	Height float64
}

// Shape is the compiled geometry of a pattern.
type Shape struct {
	Rects     []Rect
	Width     float64 // rendered surface width
	Height    float64
	Modules   int     // number of modules in the source pattern
	UnitWidth float64 // effective module width after any shrink
}

// Compile converts p into rectangles under layout l.
//
// Rect offsets are derived from module indices rather than an accumulated
// cursor so that long patterns do not drift.
func Compile(p pattern.Pattern, l Layout) (Shape, error) {
	if p.Len() == 0 {
		return Shape{}, errors.New(errors.ErrCodeInvalidPattern, "pattern cannot be empty")
	}
	if err := l.Validate(); err != nil {
		return Shape{}, err
	}

	n := p.Len()
	unit := l.UnitWidth
	width := float64(n) * unit
	if l.MaxWidth > 0 && width > l.MaxWidth {
		unit = l.MaxWidth / float64(n)
		width = l.MaxWidth
	}

	s := Shape{
		Width:     width,
		Height:    l.Height,
		Modules:   n,
		UnitWidth: unit,
	}

	run := 0
	for i := 0; i < n; i++ {
		if p.At(i) == pattern.Bar {
			run++
			continue
		}
		if run > 0 {
			s.Rects = append(s.Rects, s.bar(i, run))
			run = 0
		}
	}
	if run > 0 {
		s.Rects = append(s.Rects, s.bar(n, run))
	}
	return s, nil
}

// bar closes a run of length run that ends just before module end.
func (s Shape) bar(end, run int) Rect {
	return Rect{
		X:      float64(end-run) * s.UnitWidth,
		Width:  float64(run) * s.UnitWidth,
		Height: s.Height,
	}
}

// Empty reports whether the shape has no bars.
func (s Shape) Empty() bool { return len(s.Rects) == 0 }

// BarWidth sums the widths of all rects.
func (s Shape) BarWidth() float64 {
	var w float64
	for _, r := range s.Rects {
		w += r.Width
	}
	return w
}

// BarAt reports whether horizontal position x falls inside a bar.
func (s Shape) BarAt(x float64) bool {
	for _, r := range s.Rects {
		if x < r.X {
			return false
		}
		if x < r.X+r.Width {
			return true
		}
	}
	return false
}

// Path renders the rects as SVG path data. Each rect becomes
// "M{x},0h{w}v{h}h-{w}z"; rects are separated by a single space.
func (s Shape) Path() string {
	var b strings.Builder
	for i, r := range s.Rects {
		if i > 0 {
			b.WriteByte(' ')
		}
		w := num(r.Width)
		b.WriteByte('M')
		b.WriteString(num(r.X))
		b.WriteString(",0h")
		b.WriteString(w)
		b.WriteByte('v')
		b.WriteString(num(r.Height))
		b.WriteString("h-")
		b.WriteString(w)
		b.WriteByte('z')
	}
	return b.String()
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// Bounds returns the drawing surface, which includes leading and trailing
// spaces and is therefore not the bounding box of the bars.
func (s Shape) Bounds() rect.Rect {
	return rect.Rect{LLx: 0, LLy: 0, URx: s.Width, URy: s.Height}
}
