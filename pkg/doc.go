// Package pkg provides the core libraries for barsvg barcode rendering.
//
// # Architecture
//
// A render flows through the packages in one direction:
//
//	value + format
//	     ↓
//	[symbology] (encode to a module pattern)
//	     ↓
//	[geometry] (merge bar runs into rectangles, scale to fit)
//	     ↓
//	[barcode] (props, defaults, memoized render boundary)
//	     ↓
//	[sink] (SVG or JSON output)
//
// [batch] drives the same flow from a TOML manifest. [pattern] holds the
// module sequence shared by encoders and geometry.
//
// # Quick Start
//
//	b := barcode.NewBoundary(nil)
//	d := b.Render(ctx, barcode.Props{Value: "590123412345", Format: symbology.EAN13})
//	if !d.OK() {
//	    return d.Err
//	}
//	svg := sink.RenderSVG(d)
//
// # Supporting Packages
//
//   - [errors]: coded errors and input validation
//   - [cache]: content hashing and the single-slot memo
//   - [observability]: render and memo hooks
//   - [buildinfo]: version information set via ldflags
//
// [symbology]: github.com/matzehuels/barsvg/pkg/symbology
// [geometry]: github.com/matzehuels/barsvg/pkg/geometry
// [barcode]: github.com/matzehuels/barsvg/pkg/barcode
// [sink]: github.com/matzehuels/barsvg/pkg/sink
// [batch]: github.com/matzehuels/barsvg/pkg/batch
// [pattern]: github.com/matzehuels/barsvg/pkg/pattern
// [errors]: github.com/matzehuels/barsvg/pkg/errors
// [cache]: github.com/matzehuels/barsvg/pkg/cache
// [observability]: github.com/matzehuels/barsvg/pkg/observability
// [buildinfo]: github.com/matzehuels/barsvg/pkg/buildinfo
package pkg
