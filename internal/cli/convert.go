package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archispec/pkg/archimate"
	"github.com/matzehuels/archispec/pkg/io"
	"github.com/matzehuels/archispec/pkg/pipeline"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	output      string // output file (single input only)
	formats     string // extra render formats
	diagram     string // restrict rendered graphs to one diagram
	visibleOnly bool
	strict      bool
	glossary    bool
	noCache     bool
	refresh     bool
	parallel    int
	warnings    bool // list every dropped item
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert <file.xml>...",
		Short: "Convert ArchiMate exchange documents to SpecIF JSON",
		Long: `Convert one or more ArchiMate Open Exchange documents to SpecIF.

Each input is written next to itself as <name>.specif.json unless -o names
the output of a single input. Extra formats (dot, svg) render the model's
statement graph alongside.`,
		Example: `  archispec convert landscape.xml
  archispec convert -o out.json --visible-only landscape.xml
  archispec convert --parallel 4 models/*.xml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "" && len(args) > 1 {
				return fmt.Errorf("-o can only be used with a single input")
			}
			return c.runConvert(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single input only)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "additional outputs: dot, svg (comma-separated)")
	cmd.Flags().StringVar(&opts.diagram, "diagram", "", "render only the given diagram")
	cmd.Flags().BoolVar(&opts.visibleOnly, "visible-only", false, "keep only elements and relationships shown on a diagram")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "drop statements not permitted by the schema")
	cmd.Flags().BoolVar(&opts.glossary, "glossary", false, "add a glossary folder grouping resources by class")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the conversion cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached conversions")
	cmd.Flags().IntVarP(&opts.parallel, "parallel", "p", 4, "maximum concurrent conversions")
	cmd.Flags().BoolVar(&opts.warnings, "warnings", false, "list every dropped item")

	return cmd
}

func (c *CLI) runConvert(ctx context.Context, inputs []string, opts convertOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg.Cache, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	convert := cfg.Convert.Options()
	convert.VisibleOnly = convert.VisibleOnly || opts.visibleOnly
	convert.StrictSchema = convert.StrictSchema || opts.strict
	convert.Glossary = convert.Glossary || opts.glossary

	popts := pipeline.Options{
		Convert: convert,
		Formats: parseFormats(opts.formats),
		Diagram: opts.diagram,
		Refresh: opts.refresh,
		TTL:     cfg.Cache.TTL.Duration,
	}
	if err := pipeline.ValidateFormats(popts.Formats); err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Converting %d document(s)...", len(inputs)))
	spinner.Start()
	results, err := runner.ConvertFiles(ctx, inputs, popts, opts.parallel)
	spinner.Stop()
	if err != nil {
		return err
	}

	for _, res := range results {
		path := outputPath(res.Source, opts.output, ".specif.json")
		if err := io.ExportJSON(res.Model, path); err != nil {
			return err
		}
		printSuccess("%s", res.Model.Title)
		printStats(res.Stats.Resources, res.Stats.Statements, len(res.Warnings), res.Cached)
		printFile(path)
		for _, format := range popts.Formats {
			if format == pipeline.FormatJSON {
				continue
			}
			artifact := outputPath(res.Source, "", "."+format)
			if err := os.WriteFile(artifact, res.Artifacts[format], 0o644); err != nil {
				return fmt.Errorf("write %s: %w", artifact, err)
			}
			printFile(artifact)
		}
		if opts.warnings {
			printWarnings(res.Warnings)
		}
	}
	prog.done(fmt.Sprintf("Converted %d document(s)", len(results)))

	if len(results) == 1 {
		printNewline()
		printNextStep("Inspect the model", "archispec inspect "+outputPath(results[0].Source, opts.output, ".specif.json"))
	}
	return nil
}

// printWarnings lists dropped items.
func printWarnings(warnings []archimate.Warning) {
	for _, w := range warnings {
		if w.ID != "" {
			printWarning("%s %s: %s", w.Kind, w.ID, w.Message)
		} else {
			printWarning("%s: %s", w.Kind, w.Message)
		}
	}
}
