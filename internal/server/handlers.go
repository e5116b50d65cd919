package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/matzehuels/barsvg/pkg/barcode"
	"github.com/matzehuels/barsvg/pkg/buildinfo"
	"github.com/matzehuels/barsvg/pkg/cache"
	"github.com/matzehuels/barsvg/pkg/errors"
	"github.com/matzehuels/barsvg/pkg/sink"
	"github.com/matzehuels/barsvg/pkg/symbology"
)

// errorResponse is the body of every non-render error.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: string(code)})
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleFormats(w http.ResponseWriter, _ *http.Request) {
	def := s.defaults().Format
	if def == "" {
		def = symbology.DefaultFormat
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"formats": s.registry.IDs(),
		"default": def,
	})
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	d, ok := s.render(w, r)
	if !ok {
		return
	}
	if !d.OK() {
		writeError(w, http.StatusUnprocessableEntity, d.Err)
		return
	}
	s.writeCached(w, r, "image/svg+xml", sink.RenderSVG(d, s.svgOptions()...))
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	d, ok := s.render(w, r)
	if !ok {
		return
	}
	body, err := sink.RenderJSON(d)
	if err != nil {
		writeError(w, http.StatusInternalServerError, errors.Wrap(errors.ErrCodeInternal, err, "encode response"))
		return
	}
	if !d.OK() {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write(body)
		return
	}
	s.writeCached(w, r, "application/json", body)
}

// render parses the query and renders through a boundary scoped to the
// request, so concurrent requests never contend on one memo slot. It writes
// a 400 response and returns false when the query itself is malformed.
func (s *Server) render(w http.ResponseWriter, r *http.Request) (barcode.Drawable, bool) {
	p, err := propsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return barcode.Drawable{}, false
	}
	if limit := s.config().Server.MaxValueLength; limit > 0 && len(p.Value) > limit {
		writeError(w, http.StatusBadRequest,
			errors.New(errors.ErrCodeInvalidInput, "value too long (max %d characters)", limit))
		return barcode.Drawable{}, false
	}
	b := barcode.NewBoundary(s.registry, barcode.WithLogger(s.logger))
	return b.Render(r.Context(), p.Merge(s.defaults())), true
}

func (s *Server) writeCached(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	etag := cache.ETag(body)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// propsFromQuery maps query parameters onto props. Names follow the JSON
// field names of [barcode.Props].
func propsFromQuery(q url.Values) (barcode.Props, error) {
	p := barcode.Props{
		Value:      q.Get("value"),
		Format:     symbology.ID(q.Get("format")),
		LineColor:  q.Get("lineColor"),
		Background: q.Get("background"),
		Text:       q.Get("text"),
		TextStyle:  q.Get("textStyle"),
		Style:      q.Get("style"),
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"width", &p.UnitWidth},
		{"maxWidth", &p.MaxWidth},
		{"height", &p.Height},
	}
	for _, f := range floats {
		raw := q.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return barcode.Props{}, errors.New(errors.ErrCodeInvalidInput, "%s must be a number, got %q", f.name, raw)
		}
		*f.dst = v
	}

	if raw := q.Get("flat"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return barcode.Props{}, errors.New(errors.ErrCodeInvalidInput, "flat must be a boolean, got %q", raw)
		}
		p.Flat = v
	}
	return p, nil
}
