package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/matzehuels/barsvg/pkg/barcode"
)

const (
	defaultFontSize   = 20.0
	defaultFontFamily = "monospace"
	defaultCaptionGap = 4.0
	lineHeightRatio   = 1.25
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	fontSize   float64
	fontFamily string
	captionGap float64
}

// WithFontSize sets the caption font size. Non-positive sizes are ignored.
func WithFontSize(size float64) SVGOption {
	return func(r *svgRenderer) {
		if size > 0 {
			r.fontSize = size
		}
	}
}

func WithFontFamily(family string) SVGOption {
	return func(r *svgRenderer) {
		if family != "" {
			r.fontFamily = family
		}
	}
}

func WithCaptionGap(gap float64) SVGOption {
	return func(r *svgRenderer) {
		if gap >= 0 {
			r.captionGap = gap
		}
	}
}

// RenderSVG renders d as a standalone SVG document.
func RenderSVG(d barcode.Drawable, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	width := d.Width
	height := d.Height + r.captionBand(d)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s"`,
		num(width), num(height), num(width), num(height))
	if d.Style != "" {
		fmt.Fprintf(&buf, ` style="%s"`, escapeXML(d.Style))
	}
	buf.WriteString(">\n")

	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%s" height="%s" fill="%s"/>`+"\n",
		num(width), num(height), escapeXML(d.Background))

	if len(d.Rects) > 0 {
		fmt.Fprintf(&buf, `  <path d="%s" fill="%s"/>`+"\n", d.Path(), escapeXML(d.LineColor))
	}

	if d.Caption != "" {
		r.renderCaption(&buf, d)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		fontSize:   defaultFontSize,
		fontFamily: defaultFontFamily,
		captionGap: defaultCaptionGap,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r svgRenderer) captionBand(d barcode.Drawable) float64 {
	if d.Caption == "" {
		return 0
	}
	return r.captionGap + r.fontSize*lineHeightRatio
}

func (r svgRenderer) renderCaption(buf *bytes.Buffer, d barcode.Drawable) {
	x := d.Width / 2
	y := d.Height + r.captionGap + r.fontSize
	fmt.Fprintf(buf, `  <text x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="%s" fill="%s"`,
		num(x), num(y), escapeXML(r.fontFamily), num(r.fontSize), escapeXML(d.LineColor))
	if d.TextStyle != "" {
		fmt.Fprintf(buf, ` style="%s"`, escapeXML(d.TextStyle))
	}
	fmt.Fprintf(buf, ">%s</text>\n", escapeXML(d.Caption))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
