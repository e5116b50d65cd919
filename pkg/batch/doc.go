// Package batch renders many barcodes described by a TOML manifest.
//
// A manifest holds optional shared defaults and one [[barcode]] table per
// output:
//
//	[defaults]
//	format = "EAN13"
//	height = 60
//
//	[[barcode]]
//	value  = "590123412345"
//	output = "sku-1.svg"
//	text   = "590123412345"
//
// Entry fields win over defaults. Outputs ending in .json are written with
// the JSON sink, everything else as SVG. Output names are always resolved
// inside the target directory; names that would escape it are rejected.
//
// A failing entry is reported in its [Result] and does not stop the batch.
package batch
