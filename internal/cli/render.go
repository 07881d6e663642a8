package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/axiome/firstprinciples/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file path (or base path for multiple outputs)
	formats  []string // output formats: mermaid, dot, svg, png, pdf
	directed bool     // treat edges as directed
	scale    float64  // PNG scale factor
	noCache  bool     // bypass the artifact cache entirely
	refresh  bool     // re-render and overwrite cached artifacts
}

// renderCommand creates the render command for generating diagram files.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render an adjacency list to SVG, PNG, PDF, Mermaid or DOT files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			source, err := readInput(input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), source, input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, mermaid, dot (comma-separated)")
	cmd.Flags().BoolVarP(&opts.directed, "directed", "d", false, "treat edges as directed")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts and re-render")

	return cmd
}

// runRender executes the pipeline once and writes one file per format.
func (c *CLI) runRender(ctx context.Context, source, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	popts := pipeline.Options{
		Source:   source,
		Directed: opts.directed,
		Formats:  opts.formats,
		Scale:    opts.scale,
		Refresh:  opts.refresh,
		Logger:   logger,
	}

	done := timed(logger)
	spinner := newSpinner("Rendering diagram...")
	spinner.Start(ctx)
	res, err := runner.Execute(ctx, popts)
	spinner.Stop()
	if err != nil {
		printError("Render failed")
		return err
	}
	done("Rendered diagram")

	printStats(res.Stats.VertexCount, res.Stats.EdgeCount, res.CacheInfo.RenderHit)

	paths := outputPaths(opts.output, input, opts.formats)
	for _, format := range opts.formats {
		path := paths[format]
		if err := writeOutput(path, os.Stdout, res.Artifacts[format]); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	if slices.Contains(opts.formats, pipeline.FormatMermaid) {
		printNextStep("Paste the .mmd file into the editor, or serve it", appName+" serve")
	}
	return nil
}

// outputPaths maps each format to its output file. A single format honours
// --output verbatim; several formats share a base path.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + pipeline.Extension(f)
	}
	return paths
}
