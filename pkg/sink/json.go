package sink

import (
	"encoding/json"

	"github.com/matzehuels/barsvg/pkg/barcode"
	"github.com/matzehuels/barsvg/pkg/errors"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact bool
}

// WithJSONCompact emits a single line instead of indented output. Used for
// streaming over WebSocket connections.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Format     string     `json:"format,omitempty"`
	LineColor  string     `json:"line_color"`
	Background string     `json:"background"`
	BBox       [4]float64 `json:"bbox"`
	Path       string     `json:"path"`
	Rects      []jsonRect `json:"rects"`
	Caption    string     `json:"caption,omitempty"`
	Error      *jsonError `json:"error,omitempty"`
}

type jsonRect struct {
	X      float64 `json:"x"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// bbox is [x0, y0, x1, y1] with y growing downward.
func bbox(d barcode.Drawable) [4]float64 {
	b := d.Bounds()
	return [4]float64{b.LLx, b.LLy, b.URx, b.URy}
}

type jsonError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RenderJSON exports d as a JSON document.
//
// RenderJSON returns an error only if JSON marshaling fails. It does not
// modify d and is safe to call concurrently.
func RenderJSON(d barcode.Drawable, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:      d.Width,
		Height:     d.Height,
		Format:     string(d.Format),
		LineColor:  d.LineColor,
		Background: d.Background,
		Path:       d.Path(),
		BBox:       bbox(d),
		Rects:      make([]jsonRect, 0, len(d.Rects)),
		Caption:    d.Caption,
	}
	for _, rc := range d.Rects {
		out.Rects = append(out.Rects, jsonRect{X: rc.X, Width: rc.Width, Height: rc.Height})
	}
	if d.Err != nil {
		code := errors.GetCode(d.Err)
		if code == "" {
			code = errors.ErrCodeInternal
		}
		out.Error = &jsonError{Code: string(code), Message: errors.UserMessage(d.Err)}
	}

	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}
