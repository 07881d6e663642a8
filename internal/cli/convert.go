package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axiome/firstprinciples/pkg/pipeline"
)

// convertCommand creates the convert command: adjacency list in, markup out.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		output   string
		directed bool
		dot      bool
		watch    bool
	)

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert an adjacency list to Mermaid (or DOT)",
		Long: `Convert an adjacency list to a Mermaid flowchart.

Each input line has the form "vertex: neighbor, neighbor". Lines without a
colon are ignored. Reads stdin when no file is given.

  $ printf 'A: B, C\nB: C\n' | firstprinciples convert
  graph TD
      A --- B
      A --- C
      B --- C
      A[[A]]
      B[[B]]

With --watch the file is converted again every time it is saved.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}

			format := pipeline.FormatMermaid
			if dot {
				format = pipeline.FormatDOT
			}

			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}

			convert := func() error {
				source, err := readInput(input, cmd.InOrStdin())
				if err != nil {
					return err
				}
				res, err := runner.Execute(cmd.Context(), pipeline.Options{
					Source:   source,
					Directed: directed,
					Formats:  []string{format},
				})
				if err != nil {
					return err
				}

				loggerFromContext(cmd.Context()).Debug("converted",
					"vertices", res.Stats.VertexCount,
					"edges", res.Stats.EdgeCount,
					"format", format)

				out := res.Artifacts[format]
				if output == "" || output == "-" {
					out = append(out, '\n')
				}
				if err := writeOutput(output, cmd.OutOrStdout(), out); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				return nil
			}

			if !watch {
				return convert()
			}
			if input == "" || input == "-" {
				return fmt.Errorf("--watch needs a file argument")
			}
			logger := loggerFromContext(cmd.Context())
			logger.Info("watching", "file", input)
			return watchFile(cmd.Context(), input, watchDebounce, convert, func(err error) {
				logger.Error("convert failed", "err", err)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVarP(&directed, "directed", "d", false, "treat edges as directed (A --> B)")
	cmd.Flags().BoolVar(&dot, "dot", false, "emit Graphviz DOT instead of Mermaid")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-convert whenever the file changes")

	return cmd
}
