package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/archispec/pkg/io"
	"github.com/matzehuels/archispec/pkg/render/nodelink"
	"github.com/matzehuels/archispec/pkg/specif"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, m *specif.Model, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatJSON:
			data, err = io.MarshalJSON(m)
		case FormatDOT, FormatSVG:
			if dot == "" {
				dot = nodelink.ToDOT(m, nodelink.Options{Diagram: opts.Diagram})
			}
			if format == FormatDOT {
				data = []byte(dot)
			} else {
				data, err = nodelink.RenderSVG(ctx, dot)
			}
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
