package sink

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/barsvg/pkg/barcode"
	"github.com/matzehuels/barsvg/pkg/errors"
	"github.com/matzehuels/barsvg/pkg/geometry"
)

func testDrawable() barcode.Drawable {
	return barcode.Drawable{
		Rects: []geometry.Rect{
			{X: 0, Width: 2, Height: 50},
			{X: 4, Width: 2, Height: 50},
		},
		Width:      6,
		Height:     50,
		Format:     "CODE128",
		LineColor:  "#000000",
		Background: "#ffffff",
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testDrawable()))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 6 50" width="6" height="50">`) {
		t.Errorf("unexpected svg header:\n%s", svg)
	}
	if !strings.Contains(svg, `<rect x="0" y="0" width="6" height="50" fill="#ffffff"/>`) {
		t.Error("background rect missing")
	}
	if !strings.Contains(svg, `<path d="M0,0h2v50h-2z M4,0h2v50h-2z" fill="#000000"/>`) {
		t.Error("bar path missing")
	}
	if strings.Count(svg, "<path") != 1 {
		t.Error("all bars should share a single path")
	}
	if strings.Contains(svg, "<text") {
		t.Error("no caption expected without text")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("svg should be closed")
	}
}

func TestRenderSVGCaption(t *testing.T) {
	d := testDrawable()
	d.Caption = "<A&B>"
	d.TextStyle = "letter-spacing:2px"

	svg := string(RenderSVG(d, WithFontSize(10), WithFontFamily("Courier"), WithCaptionGap(2)))

	// 50 + 2 + 10*1.25
	if !strings.Contains(svg, `width="6" height="64.5"`) {
		t.Errorf("caption band not added to height:\n%s", svg)
	}
	if !strings.Contains(svg, `<text x="3" y="62" text-anchor="middle" font-family="Courier" font-size="10" fill="#000000" style="letter-spacing:2px">&lt;A&amp;B&gt;</text>`) {
		t.Errorf("caption not rendered as expected:\n%s", svg)
	}
}

func TestRenderSVGFailedDrawable(t *testing.T) {
	d := barcode.Drawable{
		Height:     100,
		LineColor:  "#000000",
		Background: "#ffffff",
		Err:        errors.New(errors.ErrCodeEmptyValue, "empty"),
	}
	svg := string(RenderSVG(d))

	if !strings.Contains(svg, `width="0" height="100"`) {
		t.Errorf("failed drawable should have zero width:\n%s", svg)
	}
	if strings.Contains(svg, "<path") {
		t.Error("failed drawable should have no bars")
	}
}

func TestRenderSVGEscapesAttributes(t *testing.T) {
	d := testDrawable()
	d.Style = `x" onload="alert(1)`
	d.LineColor = `"><script>`
	svg := string(RenderSVG(d))

	if strings.Contains(svg, `onload="`) || strings.Contains(svg, "<script>") {
		t.Errorf("attribute values must be escaped:\n%s", svg)
	}
}

func TestRenderSVGIsWellFormed(t *testing.T) {
	d := testDrawable()
	d.Caption = "12345 & co"
	d.Style = "margin:0"

	dec := xml.NewDecoder(strings.NewReader(string(RenderSVG(d))))
	for {
		_, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return
			}
			t.Fatalf("svg is not well-formed XML: %v", err)
		}
	}
}

func TestSVGOptionsIgnoreInvalid(t *testing.T) {
	r := newSVGRenderer(WithFontSize(-1), WithFontFamily(""), WithCaptionGap(-3))
	if r.fontSize != defaultFontSize {
		t.Errorf("fontSize = %v, want %v", r.fontSize, defaultFontSize)
	}
	if r.fontFamily != defaultFontFamily {
		t.Errorf("fontFamily = %q, want %q", r.fontFamily, defaultFontFamily)
	}
	if r.captionGap != defaultCaptionGap {
		t.Errorf("captionGap = %v, want %v", r.captionGap, defaultCaptionGap)
	}
}
