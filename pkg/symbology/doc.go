// Package symbology adapts linear barcode encoders to the binary pattern
// contract consumed by the geometry compiler.
//
// # Overview
//
// Each supported symbology is identified by an [ID] and provided by a
// [Factory] that builds an [Encoder] configured with the caller's layout
// [Options]. The options are passed through for parity with encoders that
// validate or format against them; the built-in encoders only need the value.
//
// The built-in set is backed by github.com/boombuler/barcode and registered in
// [Builtin]:
//
//   - CODE128 (default), CODE39, CODE93
//   - EAN13, EAN8, UPC (UPC-A)
//   - ITF, ITF14
//   - codabar
//
// # Encoding
//
// [Encode] is the single entry point used by the render path:
//
//	p, err := symbology.Encode(symbology.Builtin(), "590123412345", symbology.EAN13, symbology.Options{})
//
// It fails with one of three coded errors and never returns a partial pattern:
//
//   - EMPTY_VALUE when the value is empty
//   - INVALID_FORMAT when no encoder is registered for the ID
//   - INVALID_VALUE when the encoder rejects the value
//
// 2D symbologies are out of scope; an encoder that yields a matrix code is
// reported as UNSUPPORTED.
package symbology
