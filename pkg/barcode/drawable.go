package barcode

import (
	"seehuhn.de/go/geom/rect"

	"github.com/matzehuels/barsvg/pkg/geometry"
	"github.com/matzehuels/barsvg/pkg/symbology"
)

// Drawable is everything a sink needs to paint one barcode.
//
// A failed render has no rects, a width of zero, and Err set. Height, colors
// and caption are still populated from the props.
type Drawable struct {
	Rects      []geometry.Rect
	Width      float64
	Height     float64
	Format     symbology.ID
	LineColor  string
	Background string
	Caption    string
	Style      string
	TextStyle  string
	Err        error
}

// OK reports whether the render succeeded.
func (d Drawable) OK() bool { return d.Err == nil }

// Path returns the SVG path data for the bars.
func (d Drawable) Path() string {
	return geometry.Shape{Rects: d.Rects}.Path()
}

// Bounds returns the drawing surface. A failed render has zero width.
func (d Drawable) Bounds() rect.Rect {
	return geometry.Shape{Rects: d.Rects, Width: d.Width, Height: d.Height}.Bounds()
}

func newDrawable(p Props, shape geometry.Shape, err error) Drawable {
	d := Drawable{
		Height:     p.Height,
		Format:     p.Format,
		LineColor:  p.LineColor,
		Background: p.Background,
		Caption:    p.Text,
		Style:      p.Style,
		TextStyle:  p.TextStyle,
		Err:        err,
	}
	if err == nil {
		d.Rects = shape.Rects
		d.Width = shape.Width
	}
	return d
}
