package barcode

import (
	"context"
	"time"

	"github.com/matzehuels/barsvg/pkg/errors"
	"github.com/matzehuels/barsvg/pkg/geometry"
	"github.com/matzehuels/barsvg/pkg/observability"
	"github.com/matzehuels/barsvg/pkg/symbology"
)

// Compile encodes p.Value and compiles the resulting pattern. Zero-valued
// props are defaulted first. A nil registry means [symbology.Builtin].
//
// The returned error carries one of EMPTY_VALUE, INVALID_FORMAT,
// INVALID_VALUE, INVALID_INPUT (colors) or INVALID_LAYOUT.
func Compile(reg *symbology.Registry, p Props) (geometry.Shape, error) {
	return compile(context.Background(), reg, p)
}

func compile(ctx context.Context, reg *symbology.Registry, p Props) (geometry.Shape, error) {
	if reg == nil {
		reg = symbology.Builtin()
	}
	p.SetDefaults()

	start := time.Now()
	pat, err := symbology.Encode(reg, p.Value, p.Format, p.options())
	observability.Render().OnEncode(ctx, string(p.Format), pat.Len(), time.Since(start), err)
	if err != nil {
		return geometry.Shape{}, err
	}

	if errors.ValidateColor(p.LineColor) != nil {
		return geometry.Shape{}, errors.New(errors.ErrCodeInvalidInput, "invalid line color: %q", p.LineColor)
	}
	if errors.ValidateColor(p.Background) != nil {
		return geometry.Shape{}, errors.New(errors.ErrCodeInvalidInput, "invalid background: %q", p.Background)
	}

	start = time.Now()
	shape, err := geometry.Compile(pat, geometry.Layout{
		UnitWidth: p.UnitWidth,
		Height:    p.Height,
		MaxWidth:  p.MaxWidth,
	})
	if err != nil {
		return geometry.Shape{}, err
	}
	observability.Render().OnCompile(ctx, len(shape.Rects), shape.Width, time.Since(start))
	return shape, nil
}
