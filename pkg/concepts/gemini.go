package concepts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/axiome/firstprinciples/pkg/errors"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

const explainPrompt = `You are a tutor teaching graph algorithms from first principles.
Explain the concept below to a student who knows basic programming.
Respond with a single JSON object with these string fields:
  "concept_name":     the concept's name
  "explanation":      a short explanation (at most 200 words)
  "mermaid_diagram":  a Mermaid flowchart starting with "graph TD" that illustrates it
  "code_example":     a short Go snippet, if one helps
  "next_step_prompt": one question that leads to the next concept

Concept: `

// contentGenerator is the subset of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiConfig configures a GeminiExplainer.
type GeminiConfig struct {
	APIKey string
	Model  string
	// RequestsPerMinute caps calls to the API. Zero disables limiting.
	RequestsPerMinute int
}

// GeminiExplainer asks Gemini for structured explanations.
type GeminiExplainer struct {
	models  contentGenerator
	model   string
	limiter *rate.Limiter
}

// NewGeminiExplainer creates a client for the Gemini API. An empty APIKey
// lets the SDK read GEMINI_API_KEY / GOOGLE_API_KEY from the environment.
func NewGeminiExplainer(ctx context.Context, cfg GeminiConfig) (*GeminiExplainer, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "create gemini client")
	}
	return newGeminiExplainer(cli.Models, cfg), nil
}

func newGeminiExplainer(models contentGenerator, cfg GeminiConfig) *GeminiExplainer {
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	g := &GeminiExplainer{models: models, model: model}
	if cfg.RequestsPerMinute > 0 {
		g.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}
	return g
}

// Name implements Explainer.
func (g *GeminiExplainer) Name() string { return "gemini:" + g.model }

// Explain implements Explainer. It waits for the rate limiter, so callers
// should bound ctx.
func (g *GeminiExplainer) Explain(ctx context.Context, topic string) (*Explanation, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, &errors.RateLimitedError{Message: err.Error()}
		}
	}

	resp, err := g.models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: explainPrompt + topic}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "gemini generate")
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New(errors.ErrCodeInternal, "gemini returned no candidates")
	}

	return parseExplanation(resp.Candidates[0].Content.Parts[0].Text, topic)
}

// parseExplanation decodes the model's JSON. Models sometimes wrap JSON in a
// Markdown fence even when asked not to.
func parseExplanation(text, topic string) (*Explanation, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var e Explanation
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &e); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode gemini response")
	}
	if e.ConceptName == "" {
		e.ConceptName = topic
	}
	if e.Explanation == "" {
		return nil, errors.New(errors.ErrCodeInternal, "gemini response has no explanation")
	}
	return &e, nil
}

// String describes the explainer for logs.
func (g *GeminiExplainer) String() string {
	if g.limiter == nil {
		return g.Name()
	}
	return fmt.Sprintf("%s (%.2f req/s)", g.Name(), float64(g.limiter.Limit()))
}
