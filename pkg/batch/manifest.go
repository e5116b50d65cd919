package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/matzehuels/barsvg/pkg/barcode"
	"github.com/matzehuels/barsvg/pkg/errors"
)

// Manifest is a decoded batch file.
type Manifest struct {
	Defaults barcode.Props `toml:"defaults"`
	Barcodes []Entry       `toml:"barcode"`
}

// Entry is one barcode to render.
type Entry struct {
	barcode.Props
	Output string `toml:"output"`
}

// JSON reports whether the entry is written with the JSON sink.
func (e Entry) JSON() bool {
	return strings.EqualFold(filepath.Ext(e.Output), ".json")
}

// Parse decodes a manifest from TOML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse manifest")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown manifest key %q", undecoded[0].String())
	}
	if len(m.Barcodes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "manifest has no [[barcode]] entries")
	}
	return &m, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "manifest %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// Entries returns the entries with defaults applied.
func (m *Manifest) Entries() []Entry {
	out := make([]Entry, len(m.Barcodes))
	for i, e := range m.Barcodes {
		e.Props = e.Props.Merge(m.Defaults)
		out[i] = e
	}
	return out
}

// OutputPath resolves where entry i is written inside dir. Entries without
// an output name get "NNN-format.svg" numbered from 1.
func OutputPath(dir string, i int, e Entry) (string, error) {
	name := e.Output
	if name == "" {
		format := e.Format
		if format == "" {
			format = barcode.DefaultFormat
		}
		name = fmt.Sprintf("%03d-%s.svg", i+1, strings.ToLower(string(format)))
	}
	if err := errors.ValidateOutputName(name); err != nil {
		return "", err
	}
	full, err := securejoin.SecureJoin(dir, name)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve output %q", name)
	}
	return full, nil
}
