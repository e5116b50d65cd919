package barcode

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/barsvg/pkg/cache"
	"github.com/matzehuels/barsvg/pkg/errors"
	"github.com/matzehuels/barsvg/pkg/geometry"
	"github.com/matzehuels/barsvg/pkg/observability"
	"github.com/matzehuels/barsvg/pkg/symbology"
)

type result struct {
	shape geometry.Shape
	err   error
}

// Boundary memoizes [Compile] for one rendering surface and converts
// failures into empty drawables. It is safe for concurrent use, but callers
// sharing a Boundary share its single memo slot.
type Boundary struct {
	reg    *symbology.Registry
	logger *log.Logger
	memo   cache.Memo[key, result]
}

// Option configures a Boundary.
type Option func(*Boundary)

// WithLogger sets the logger used when props carry none.
func WithLogger(l *log.Logger) Option {
	return func(b *Boundary) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBoundary creates a boundary over reg. A nil registry means
// [symbology.Builtin].
func NewBoundary(reg *symbology.Registry, opts ...Option) *Boundary {
	if reg == nil {
		reg = symbology.Builtin()
	}
	b := &Boundary{reg: reg, logger: discardLogger()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Render returns the drawable for p, recomputing only when the declared
// inputs differ from the previous call. Errors are reported once per
// recomputation through the logger, p.OnError and the render hooks.
func (b *Boundary) Render(ctx context.Context, p Props) Drawable {
	p.SetDefaults()

	r, hit := b.memo.Get(p.key(), func() result {
		shape, err := compile(ctx, b.reg, p)
		return result{shape: shape, err: err}
	})
	if hit {
		observability.Memo().OnMemoHit(ctx)
	} else {
		observability.Memo().OnMemoMiss(ctx)
		if r.err != nil {
			b.report(ctx, p, r.err)
		}
	}
	return newDrawable(p, r.shape, r.err)
}

func (b *Boundary) report(ctx context.Context, p Props, err error) {
	logger := p.Logger
	if logger == nil {
		logger = b.logger
	}
	logger.Error("barcode render failed", "format", p.Format, "value", p.Value, "err", err)
	observability.Render().OnRenderError(ctx, string(p.Format), string(errors.GetCode(err)))
	if p.OnError != nil {
		p.OnError(err)
	}
}
