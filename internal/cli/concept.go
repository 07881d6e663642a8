package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/axiome/firstprinciples/internal/config"
	"github.com/axiome/firstprinciples/pkg/cache"
	"github.com/axiome/firstprinciples/pkg/concepts"
)

// conceptCommand creates the concept command that asks for an explanation.
func (c *CLI) conceptCommand() *cobra.Command {
	var (
		server  string
		local   bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "concept [topic words...]",
		Short: "Explain a graph concept",
		Long: `Ask for an explanation of a graph concept.

Without a topic, an interactive picker offers the built-in topics. By default
the question is sent to a running server; --local answers in-process, using
Gemini when GEMINI_API_KEY is set.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := strings.Join(args, " ")
			if topic == "" {
				picked, err := pickTopic(concepts.Topics)
				if err != nil {
					return err
				}
				if picked == "" {
					return nil
				}
				topic = picked
			}

			var (
				resp *concepts.Response
				err  error
			)
			if local {
				resp, err = c.explainLocal(cmd.Context(), topic, noCache)
			} else {
				resp, err = explainRemote(cmd.Context(), server, topic)
			}
			if err != nil {
				return err
			}
			printConcept(resp)
			if resp.Status == concepts.StatusError {
				return fmt.Errorf("explain %q: %s", topic, resp.Error)
			}
			return nil
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return concepts.Topics, cobra.ShellCompDirectiveNoFileComp
		},
	}

	cmd.Flags().StringVar(&server, "server", defaultServerURL, "server base URL")
	cmd.Flags().BoolVar(&local, "local", false, "answer without a server")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "with --local, do not cache explanations")

	return cmd
}

func explainRemote(ctx context.Context, server, topic string) (*concepts.Response, error) {
	client, err := concepts.NewClient(server)
	if err != nil {
		return nil, err
	}
	spinner := newSpinner("Asking " + server + "...")
	spinner.Start(ctx)
	defer spinner.Stop()
	return client.Send(ctx, topic)
}

func (c *CLI) explainLocal(ctx context.Context, topic string, noCache bool) (*concepts.Response, error) {
	logger := loggerFromContext(ctx)
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}

	var explainer concepts.Explainer = concepts.EchoExplainer{}
	if cfg.Gemini.APIKey != "" {
		g, err := concepts.NewGeminiExplainer(ctx, concepts.GeminiConfig{
			APIKey:            cfg.Gemini.APIKey,
			Model:             cfg.Gemini.Model,
			RequestsPerMinute: cfg.Gemini.RequestsPerMinute,
		})
		if err != nil {
			return nil, err
		}
		explainCache, err := c.openCache(noCache)
		if err != nil {
			return nil, err
		}
		defer explainCache.Close()
		explainer = concepts.NewCachedExplainer(g, explainCache, cache.NewDefaultKeyer(), cfg.Cache.ConceptTTL)
	} else {
		logger.Debug("GEMINI_API_KEY not set; acknowledging only")
	}

	spinner := newSpinner("Explaining " + topic + "...")
	spinner.Start(ctx)
	defer spinner.Stop()

	resp, err := concepts.NewService(explainer, logger, cfg.Server.RequestTimeout).Handle(ctx, concepts.Request{Message: topic})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// printConcept prints a concept response.
func printConcept(resp *concepts.Response) {
	if resp.Status == concepts.StatusError {
		printError("%s", resp.Error)
		return
	}
	e := resp.Explanation
	if e == nil {
		printSuccess("%s", resp.Response)
		printDetail("Message: %s", resp.ReceivedMessage)
		return
	}

	fmt.Println(StyleTitle.Render(e.ConceptName))
	printNewline()
	fmt.Println(e.Explanation)
	if e.MermaidDiagram != "" {
		printNewline()
		fmt.Println(StyleDim.Render("Diagram:"))
		fmt.Println(StyleValue.Render(e.MermaidDiagram))
	}
	if e.CodeExample != "" {
		printNewline()
		fmt.Println(StyleDim.Render("Example:"))
		fmt.Println(StyleValue.Render(e.CodeExample))
	}
	if e.NextStepPrompt != "" {
		printNewline()
		fmt.Println(StyleHighlight.Render(iconArrow + " " + e.NextStepPrompt))
	}
	if resp.ProcessingTime != "" {
		printDetail("answered in %s", resp.ProcessingTime)
	}
}
