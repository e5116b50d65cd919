// Package barcode turns caller props into a drawable barcode description.
//
// # Overview
//
// Rendering runs in two pure stages:
//
//  1. The value is encoded into a module pattern by the symbology registry
//  2. The pattern is compiled into merged bar rectangles by package geometry
//
// [Compile] runs both stages and returns an explicit result. [Boundary] wraps
// Compile for interactive callers: it memoizes the last result keyed by the
// declared inputs (value, unit width, height, format, colors, max width) and
// never lets a failure escape. On failure it logs, invokes [Props.OnError], and
// returns an empty [Drawable] of width zero so the surrounding view keeps
// rendering.
//
// # Usage
//
//	b := barcode.NewBoundary(nil, barcode.WithLogger(logger))
//	d := b.Render(ctx, barcode.Props{
//	    Value:  "590123412345",
//	    Format: symbology.EAN13,
//	    Text:   "590123412345",
//	})
//	svg := sink.RenderSVG(d)
//
// Caption and style strings never trigger recomputation; they are copied
// from the current props on every render.
package barcode
