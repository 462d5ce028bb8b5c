package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/archispec/pkg/specif"
)

// ReadJSON decodes a SpecIF model from r and validates it.
//
// ReadJSON returns an error if the JSON is malformed or if the model fails
// [specif.Model.Validate]. Validation errors wrap the sentinel errors of
// package specif; use errors.Is to check for them. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*specif.Model, error) {
	var m specif.Model
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return &m, nil
}

// UnmarshalJSON is [ReadJSON] over a byte slice.
func UnmarshalJSON(data []byte) (*specif.Model, error) {
	var m specif.Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return &m, nil
}

// ImportJSON reads a JSON file at path and returns the decoded model.
func ImportJSON(path string) (*specif.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
