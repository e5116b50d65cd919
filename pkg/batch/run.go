package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/barsvg/pkg/barcode"
	"github.com/matzehuels/barsvg/pkg/sink"
	"github.com/matzehuels/barsvg/pkg/symbology"
)

// Result is the outcome of one entry.
type Result struct {
	Index int
	Value string
	Path  string
	Err   error
}

// Options configures [Run].
type Options struct {
	Dir      string
	Registry *symbology.Registry
	Logger   *log.Logger
	SVG      []sink.SVGOption
	// Overrides are applied over every entry, e.g. from CLI flags.
	Overrides barcode.Props
}

// Run renders every entry of m into opts.Dir. It returns one result per
// entry in manifest order and stops early only when ctx is cancelled.
func Run(ctx context.Context, m *Manifest, opts Options) ([]Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	b := barcode.NewBoundary(opts.Registry, barcode.WithLogger(logger))

	entries := m.Entries()
	results := make([]Result, 0, len(entries))
	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		r := Result{Index: i, Value: e.Value}
		r.Path, r.Err = render(ctx, b, opts, i, e)
		if r.Err != nil {
			logger.Warn("entry failed", "index", i+1, "value", e.Value, "err", r.Err)
		} else {
			logger.Debug("wrote barcode", "path", r.Path)
		}
		results = append(results, r)
	}
	return results, nil
}

func render(ctx context.Context, b *barcode.Boundary, opts Options, i int, e Entry) (string, error) {
	p := opts.Overrides.Merge(e.Props)
	p.Value, p.Text = e.Value, e.Text

	// Default names follow the format actually rendered.
	path, err := OutputPath(opts.Dir, i, Entry{Props: p, Output: e.Output})
	if err != nil {
		return "", err
	}

	d := b.Render(ctx, p)
	if d.Err != nil {
		return "", d.Err
	}

	var data []byte
	if e.JSON() {
		if data, err = sink.RenderJSON(d); err != nil {
			return "", err
		}
	} else {
		data = sink.RenderSVG(d, opts.SVG...)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write output: %w", err)
	}
	return path, nil
}

// Failed counts results with an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
