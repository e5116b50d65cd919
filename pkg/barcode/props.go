package barcode

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/barsvg/pkg/symbology"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultUnitWidth is the nominal width of one module.
	DefaultUnitWidth = 2.0

	// DefaultHeight is the bar height.
	DefaultHeight = 100.0

	// DefaultLineColor fills the bars.
	DefaultLineColor = "#000000"

	// DefaultBackground fills the surface.
	DefaultBackground = "#ffffff"
)

// DefaultFormat is the symbology used when Props.Format is empty.
const DefaultFormat = symbology.DefaultFormat

// =============================================================================
// Props
// =============================================================================

// Props are the caller-facing render options. Only Value is required.
type Props struct {
	Value      string       `json:"value" toml:"value"`
	Format     symbology.ID `json:"format,omitempty" toml:"format"`
	UnitWidth  float64      `json:"width,omitempty" toml:"width"`
	MaxWidth   float64      `json:"maxWidth,omitempty" toml:"max_width"`
	Height     float64      `json:"height,omitempty" toml:"height"`
	LineColor  string       `json:"lineColor,omitempty" toml:"line_color"`
	Background string       `json:"background,omitempty" toml:"background"`
	Flat       bool         `json:"flat,omitempty" toml:"flat"`

	// Passthrough presentation, never part of the memo key.
	Text      string `json:"text,omitempty" toml:"text"`
	TextStyle string `json:"textStyle,omitempty" toml:"text_style"`
	Style     string `json:"style,omitempty" toml:"style"`

	// Runtime options (not serialized)
	OnError func(error) `json:"-" toml:"-"`
	Logger  *log.Logger `json:"-" toml:"-"`
}

// SetDefaults fills zero-valued fields. Negative widths and heights are left
// alone so that Compile can reject them.
func (p *Props) SetDefaults() {
	if p.Format == "" {
		p.Format = DefaultFormat
	}
	if p.UnitWidth == 0 {
		p.UnitWidth = DefaultUnitWidth
	}
	if p.Height == 0 {
		p.Height = DefaultHeight
	}
	if p.LineColor == "" {
		p.LineColor = DefaultLineColor
	}
	if p.Background == "" {
		p.Background = DefaultBackground
	}
}

// Merge fills the zero-valued render fields of p from base. Runtime fields
// are not merged.
func (p Props) Merge(base Props) Props {
	if p.Format == "" {
		p.Format = base.Format
	}
	if p.UnitWidth == 0 {
		p.UnitWidth = base.UnitWidth
	}
	if p.MaxWidth == 0 {
		p.MaxWidth = base.MaxWidth
	}
	if p.Height == 0 {
		p.Height = base.Height
	}
	if p.LineColor == "" {
		p.LineColor = base.LineColor
	}
	if p.Background == "" {
		p.Background = base.Background
	}
	if !p.Flat {
		p.Flat = base.Flat
	}
	if p.TextStyle == "" {
		p.TextStyle = base.TextStyle
	}
	if p.Style == "" {
		p.Style = base.Style
	}
	return p
}

// key is the tuple of declared inputs that drives recomputation.
type key struct {
	value      string
	format     symbology.ID
	unitWidth  float64
	height     float64
	maxWidth   float64
	lineColor  string
	background string
}

func (p Props) key() key {
	return key{
		value:      p.Value,
		format:     p.Format,
		unitWidth:  p.UnitWidth,
		height:     p.Height,
		maxWidth:   p.MaxWidth,
		lineColor:  p.LineColor,
		background: p.Background,
	}
}

func (p Props) options() symbology.Options {
	return symbology.Options{
		UnitWidth:  p.UnitWidth,
		Height:     p.Height,
		LineColor:  p.LineColor,
		Background: p.Background,
		Flat:       p.Flat,
	}
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
