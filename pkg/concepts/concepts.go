package concepts

import (
	"context"
	"strings"
)

// Topics are the concepts offered by the editor, in display order.
var Topics = []string{
	"What is a Graph?",
	"Graph Representations",
	"Graph Traversal",
	"Traversal Types",
}

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Request is the body of POST /api/concepts/message.
type Request struct {
	Message string `json:"message"`
}

// Response is returned for every concept request. Error is set only when
// Status is StatusError.
type Response struct {
	Status          string       `json:"status"`
	ReceivedMessage string       `json:"received_message"`
	Response        string       `json:"response,omitempty"`
	Explanation     *Explanation `json:"gemini_response,omitempty"`
	ProcessingTime  string       `json:"processing_time,omitempty"`
	Error           string       `json:"error,omitempty"`
}

// Explanation is a structured answer for one topic.
type Explanation struct {
	ConceptName    string `json:"concept_name"`
	Explanation    string `json:"explanation"`
	MermaidDiagram string `json:"mermaid_diagram,omitempty"`
	CodeExample    string `json:"code_example,omitempty"`
	NextStepPrompt string `json:"next_step_prompt,omitempty"`
}

// Explainer produces an explanation for a topic.
type Explainer interface {
	Explain(ctx context.Context, topic string) (*Explanation, error)
	// Name identifies the explainer in logs and cache keys.
	Name() string
}

// IsKnownTopic reports whether topic is one of [Topics], ignoring case.
func IsKnownTopic(topic string) bool {
	topic = strings.TrimSpace(topic)
	for _, t := range Topics {
		if strings.EqualFold(t, topic) {
			return true
		}
	}
	return false
}
