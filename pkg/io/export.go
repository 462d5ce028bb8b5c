package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/archispec/pkg/specif"
)

// WriteJSON encodes m as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(m *specif.Model, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalJSON returns the encoding [WriteJSON] would produce.
func MarshalJSON(m *specif.Model) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(m, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON writes m to a JSON file at path.
func ExportJSON(m *specif.Model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(m, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
