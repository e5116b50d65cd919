package symbology

import (
	"slices"
	"sync"

	"github.com/matzehuels/barsvg/pkg/errors"
	"github.com/matzehuels/barsvg/pkg/pattern"
)

// ID identifies a symbology.
type ID string

// Built-in symbology identifiers.
const (
	Code128 ID = "CODE128"
	Code39  ID = "CODE39"
	Code93  ID = "CODE93"
	EAN13   ID = "EAN13"
	EAN8    ID = "EAN8"
	UPC     ID = "UPC"
	ITF     ID = "ITF"
	ITF14   ID = "ITF14"
	Codabar ID = "codabar"
)

// DefaultFormat is the general-purpose symbology used when none is requested.
const DefaultFormat = Code128

// Options carries the layout parameters an encoder is constructed with.
type Options struct {
	UnitWidth  float64
	Height     float64
	LineColor  string
	Background string
	Flat       bool
}

// Encoder validates and encodes values for one symbology.
type Encoder interface {
	// ID returns the symbology this encoder produces.
	ID() ID
	// Valid reports whether value can be encoded.
	Valid(value string) bool
	// Encode returns the module pattern for value.
	Encode(value string) (pattern.Pattern, error)
}

// Validator is implemented by encoders that can explain why a value is invalid.
type Validator interface {
	Validate(value string) error
}

// Factory constructs an encoder configured with opts.
type Factory func(opts Options) Encoder

// Registry maps symbology IDs to encoder factories.
// It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[ID]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[ID]Factory)}
}

// Register adds or replaces the factory for id.
func (r *Registry) Register(id ID, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[id] = f
}

// Lookup returns the factory registered for id.
func (r *Registry) Lookup(id ID) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[id]
	return f, ok
}

// IDs returns the registered IDs in sorted order.
func (r *Registry) IDs() []ID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]ID, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Has reports whether id is registered.
func (r *Registry) Has(id ID) bool {
	_, ok := r.Lookup(id)
	return ok
}

var (
	builtinOnce sync.Once
	builtin     *Registry
)

// Builtin returns the registry of encoders shipped with barsvg.
func Builtin() *Registry {
	builtinOnce.Do(func() {
		builtin = NewRegistry()
		for _, def := range linearDefs {
			builtin.Register(def.id, def.factory())
		}
	})
	return builtin
}

// Encode looks up the encoder for id, validates value and returns its pattern.
func Encode(reg *Registry, value string, id ID, opts Options) (pattern.Pattern, error) {
	if value == "" {
		return "", errors.New(errors.ErrCodeEmptyValue, "barcode value must be a non-empty string")
	}

	factory, ok := reg.Lookup(id)
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidFormat, "invalid barcode format: %q", id)
	}

	enc := factory(opts)
	if v, ok := enc.(Validator); ok {
		if err := v.Validate(value); err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidValue, err, "invalid barcode for format %s", id)
		}
	} else if !enc.Valid(value) {
		return "", errors.New(errors.ErrCodeInvalidValue, "invalid barcode for format %s", id)
	}

	p, err := enc.Encode(value)
	if err != nil {
		if errors.GetCode(err) != "" {
			return "", err
		}
		return "", errors.Wrap(errors.ErrCodeInvalidValue, err, "encode %s", id)
	}
	return p, nil
}
