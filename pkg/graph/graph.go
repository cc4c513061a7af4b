package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	errs "github.com/matzehuels/fattree/pkg/errors"
	"github.com/matzehuels/fattree/pkg/fattree"
)

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeLayoutTo(l, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that the layout is consistent with its parameters.
func UnmarshalLayout(data []byte) (Layout, error) {
	return readLayoutFrom(bytes.NewReader(data))
}

// WriteLayout writes a Layout as JSON to an io.Writer.
// Use MarshalLayout for in-memory serialization or WriteLayoutFile for files.
func WriteLayout(l Layout, w io.Writer) error {
	return writeLayoutTo(l, w)
}

// WriteLayoutFile writes a Layout to a JSON file.
// The file is created with 0644 permissions.
func WriteLayoutFile(l Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeLayoutTo(l, f)
}

// ReadLayout decodes a JSON layout from an io.Reader.
func ReadLayout(r io.Reader) (Layout, error) {
	return readLayoutFrom(r)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layout{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readLayoutFrom(f)
}

// Validate checks that the layout describes a valid topology and that its
// node and edge lists match the counts for its parameters.
func (l *Layout) Validate() error {
	c, err := fattree.Summarize(l.Params)
	if err != nil {
		return err
	}
	if len(l.Nodes) != c.Switches+c.Hosts {
		return errs.New(errs.ErrCodeInvalidInput, "layout has %d nodes, want %d", len(l.Nodes), c.Switches+c.Hosts)
	}
	if len(l.Edges) != c.Cables {
		return errs.New(errs.ErrCodeInvalidInput, "layout has %d edges, want %d", len(l.Edges), c.Cables)
	}
	for _, e := range l.Edges {
		if e.Parent < 0 || e.Parent >= len(l.Nodes) || e.Child < 0 || e.Child >= len(l.Nodes) {
			return errs.New(errs.ErrCodeInvalidInput, "edge %d references unknown node", e.ID)
		}
	}
	return nil
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeLayoutTo(l Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readLayoutFrom(r io.Reader) (Layout, error) {
	var l Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return Layout{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode layout")
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}
