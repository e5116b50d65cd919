// Package sink provides output format renderers for barcode drawables.
//
// # Overview
//
// A "sink" transforms a [barcode.Drawable] into a final output format.
// This package provides renderers for:
//
//   - SVG: a standalone vector document
//   - JSON: geometry export for external tools and the live API
//
// # SVG Output
//
// [RenderSVG] produces a document with a background rectangle covering the
// whole surface, a single path holding every bar, and an optional caption
// centered below the bars:
//
//	svg := sink.RenderSVG(d,
//	    sink.WithFontSize(14),
//	    sink.WithFontFamily("monospace"),
//	)
//
// The caption band is only added when the drawable has a caption. A failed
// drawable renders as an empty surface of width zero.
//
// # SVG Options
//
//   - [WithFontSize]: Caption font size in layout units
//   - [WithFontFamily]: Caption font family
//   - [WithCaptionGap]: Space between the bars and the caption baseline box
//
// # JSON Output
//
// [RenderJSON] exports the surface size, colors, path data, and merged bar
// rectangles. Failed drawables carry an error object with the code and a
// user-facing message instead of geometry.
package sink
