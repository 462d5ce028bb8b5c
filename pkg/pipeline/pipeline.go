// Package pipeline runs the parse → convert → render pipeline shared by the
// CLI and the HTTP server.
//
// # Stages
//
//  1. Parse: read ArchiMate exchange XML into an element tree
//  2. Convert: build the SpecIF model with [archimate.Convert]
//  3. Render: optional DOT/SVG diagrams of the converted model
//
// Stages 1 and 2 are cached together, keyed by the SHA-256 of the document
// and a fingerprint of the conversion options. Renders are cheap relative
// to conversion and are not cached.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.ConvertFile(ctx, "landscape.xml", pipeline.Options{
//	    Convert: cfg.Convert.Options(),
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = io.ExportJSON(res.Model, "landscape.specif.json")
//
// Batches run concurrently with [Runner.ConvertFiles].
package pipeline

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/archispec/pkg/archimate"
	"github.com/matzehuels/archispec/pkg/errors"
	"github.com/matzehuels/archispec/pkg/specif"
)

// Format constants for render outputs.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// DefaultTTL is how long cached conversions live when Options.TTL is unset.
const DefaultTTL = 24 * time.Hour

// Options configures one pipeline run.
type Options struct {
	// Convert holds the conversion options. FileName and FileDate are
	// filled from the source file when empty.
	Convert archimate.Options

	// Formats lists render outputs beyond the model itself.
	Formats []string

	// Diagram restricts rendered diagrams to one view.
	Diagram string

	// Refresh bypasses cached conversions.
	Refresh bool

	// TTL for cached conversions.
	TTL time.Duration

	Logger *log.Logger
}

// Validate checks formats and applies defaults.
func (o *Options) Validate() error {
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Source names the converted document.
	Source string

	// Model is the converted SpecIF model.
	Model *specif.Model

	// Warnings lists items dropped during conversion.
	Warnings []archimate.Warning

	// DocumentHash is the SHA-256 of the source bytes.
	DocumentHash string

	// Artifacts holds rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Cached reports whether the model came from the cache.
	Cached bool

	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Bytes       int
	Resources   int
	Statements  int
	ParseTime   time.Duration
	ConvertTime time.Duration
	RenderTime  time.Duration
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeUnsupported, "invalid format: %q (must be one of: json, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return fmt.Errorf("formats: %w", err)
		}
	}
	return nil
}
