// Package geometry compiles a binary module pattern into filled rectangles.
//
// # Overview
//
// [Compile] scans a [pattern.Pattern] once from left to right and merges
// every maximal run of bar modules into a single [Rect] spanning the full bar
// height. Space modules only advance the cursor. Merging runs keeps the path
// short and avoids hairline seams between adjacent bars when rasterised.
//
// # Widths
//
// The natural width of a shape is the module count times [Layout.UnitWidth].
// When [Layout.MaxWidth] is set and the natural width exceeds it, every module
// is shrunk by the same factor so that the shape is exactly MaxWidth wide:
//
//	effective = MaxWidth / modules
//
// Modules are never dropped. A MaxWidth of zero means unconstrained.
//
// # Output
//
// A [Shape] can be emitted two ways:
//
//   - [Shape.Path] returns SVG path data, one closed subpath per rectangle
//   - [Shape.Rects] is available directly for custom sinks
//
// [Shape.Bounds] reports the drawing surface as a seehuhn.de/go/geom rect.
//
// Compile is a pure function: identical inputs yield identical shapes.
package geometry
