package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/axiome/firstprinciples/pkg/render/mermaid"
	"github.com/axiome/firstprinciples/pkg/store"
)

// docCommand creates the doc command for locally saved documents.
func (c *CLI) docCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "doc",
		Aliases: []string{"docs"},
		Short:   "Manage locally saved diagram documents",
	}

	cmd.AddCommand(c.docSaveCommand())
	cmd.AddCommand(c.docListCommand())
	cmd.AddCommand(c.docShowCommand())
	cmd.AddCommand(c.docRemoveCommand())

	return cmd
}

// docSaveCommand creates the "doc save" subcommand.
func (c *CLI) docSaveCommand() *cobra.Command {
	var (
		title    string
		kind     string
		directed bool
		id       string
	)

	cmd := &cobra.Command{
		Use:   "save [file]",
		Short: "Save a document (updates it when --id is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			source, err := readInput(input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if title == "" {
				title = defaultTitle(input)
			}
			if kind == "" {
				kind = string(guessKind(input, source))
			}

			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			doc := &store.Document{ID: id, Title: title, Kind: store.Kind(kind), Source: source, Directed: directed}
			if id != "" {
				err = st.Update(cmd.Context(), doc)
			} else {
				err = st.Create(cmd.Context(), doc)
			}
			if err != nil {
				return err
			}
			printSuccess("Saved %s", StyleHighlight.Render(doc.Title))
			printKeyValue("id", doc.ID)
			printKeyValue("kind", string(doc.Kind))
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "document title (default: file name)")
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "adjacency or mermaid (default: guessed)")
	cmd.Flags().BoolVarP(&directed, "directed", "d", false, "treat edges as directed")
	cmd.Flags().StringVar(&id, "id", "", "update the document with this id")

	return cmd
}

// docListCommand creates the "doc list" subcommand.
func (c *CLI) docListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved documents",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			docs, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				printInfo("No saved documents")
				printDetail("Directory: %s", st.Path())
				return nil
			}
			for _, d := range docs {
				fmt.Printf("%s  %-9s  %s\n", StyleDim.Render(d.ID), d.Kind, StyleValue.Render(d.Title))
			}
			return nil
		},
	}
}

// docShowCommand creates the "doc show" subcommand.
func (c *CLI) docShowCommand() *cobra.Command {
	var asMermaid bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved document's source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			doc, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := doc.Source
			if asMermaid && doc.Kind == store.KindAdjacency {
				out = mermaid.Convert(doc.Source, doc.Directed)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&asMermaid, "mermaid", "m", false, "convert adjacency lists to Mermaid")
	return cmd
}

// docRemoveCommand creates the "doc rm" subcommand.
func (c *CLI) docRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove"},
		Short:   "Delete saved documents",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			for _, id := range args {
				if err := st.Delete(cmd.Context(), id); err != nil {
					return err
				}
				printSuccess("Deleted %s", id)
			}
			return nil
		},
	}
}

// defaultTitle derives a title from the input file name.
func defaultTitle(input string) string {
	if input == "" || input == "-" {
		return "Untitled"
	}
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// guessKind treats .mmd/.mermaid files and sources starting with a Mermaid
// header as Mermaid; everything else is an adjacency list.
func guessKind(input, source string) store.Kind {
	switch strings.ToLower(filepath.Ext(input)) {
	case ".mmd", ".mermaid":
		return store.KindMermaid
	}
	first, _, _ := strings.Cut(strings.TrimSpace(source), "\n")
	first = strings.TrimSpace(first)
	if strings.HasPrefix(first, "graph ") || strings.HasPrefix(first, "flowchart ") {
		return store.KindMermaid
	}
	return store.KindAdjacency
}
