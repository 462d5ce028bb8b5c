package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archispec/pkg/io"
	"github.com/matzehuels/archispec/pkg/pipeline"
	"github.com/matzehuels/archispec/pkg/render/nodelink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path
	format   string // "dot" or "svg"
	diagram  string // restrict to the elements one diagram shows
	shows    bool   // include diagrams and their shows statements
	detailed bool   // label nodes with class as well as title
}

// renderCommand creates the render command for drawing a model's statement graph.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: pipeline.FormatSVG}

	cmd := &cobra.Command{
		Use:   "render <model.specif.json>",
		Short: "Render a SpecIF model's statement graph to DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != pipeline.FormatDOT && opts.format != pipeline.FormatSVG {
				return fmt.Errorf("invalid format: %s (must be 'dot' or 'svg')", opts.format)
			}
			return runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot")
	cmd.Flags().StringVar(&opts.diagram, "diagram", "", "render only what the given diagram shows")
	cmd.Flags().BoolVar(&opts.shows, "shows", false, "include diagrams and their shows statements")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show resource classes in node labels")

	return cmd
}

func runRender(ctx context.Context, input string, opts renderOpts) error {
	m, err := io.ImportJSON(input)
	if err != nil {
		return err
	}

	dot := nodelink.ToDOT(m, nodelink.Options{
		Diagram:      opts.diagram,
		IncludeShows: opts.shows,
		Detailed:     opts.detailed,
	})
	data := []byte(dot)
	if opts.format == pipeline.FormatSVG {
		if data, err = nodelink.RenderSVG(ctx, dot); err != nil {
			return err
		}
	}

	path := opts.output
	if path == "" {
		path = outputPath(input, "", "."+opts.format)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printSuccess("Rendered %s", m.Title)
	printFile(path)
	return nil
}
