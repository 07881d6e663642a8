package concepts

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"google.golang.org/genai"

	"github.com/axiome/firstprinciples/pkg/cache"
	"github.com/axiome/firstprinciples/pkg/errors"
)

type fakeGenerator struct {
	text  string
	err   error
	calls int
	got   string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, _ string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.got = contents[0].Parts[0].Text
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: f.text}}},
		}},
	}, nil
}

type countingExplainer struct {
	calls int
	err   error
}

func (c *countingExplainer) Name() string { return "counting" }

func (c *countingExplainer) Explain(_ context.Context, topic string) (*Explanation, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &Explanation{ConceptName: topic, Explanation: "about " + topic}, nil
}

type mapCache struct{ m map[string][]byte }

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	d, ok := c.m[key]
	return d, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.m[key] = data
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	delete(c.m, key)
	return nil
}

func (c *mapCache) Close() error { return nil }

func quietLogger() *log.Logger { return log.New(io.Discard) }

func TestIsKnownTopic(t *testing.T) {
	tests := []struct {
		topic string
		want  bool
	}{
		{"What is a Graph?", true},
		{"  graph traversal ", true},
		{"TRAVERSAL TYPES", true},
		{"Dynamic Programming", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsKnownTopic(tt.topic); got != tt.want {
			t.Errorf("IsKnownTopic(%q) = %v, want %v", tt.topic, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		msg     string
		wantErr bool
	}{
		{"ok", "Graph Traversal", false},
		{"empty", "", true},
		{"whitespace", "   \n", true},
		{"too long", strings.Repeat("a", MaxMessageLength+1), true},
		{"at limit", strings.Repeat("a", MaxMessageLength), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(Request{Message: tt.msg})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestParseExplanation(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantName string
		wantErr  bool
	}{
		{"plain", `{"concept_name":"Graph","explanation":"nodes and edges"}`, "Graph", false},
		{"fenced", "```json\n{\"explanation\":\"x\"}\n```", "topic", false},
		{"bare fence", "```\n{\"explanation\":\"x\"}\n```", "topic", false},
		{"not json", "I cannot answer that", "", true},
		{"no explanation", `{"concept_name":"Graph"}`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := parseExplanation(tt.text, "topic")
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseExplanation() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && e.ConceptName != tt.wantName {
				t.Errorf("ConceptName = %q, want %q", e.ConceptName, tt.wantName)
			}
		})
	}
}

func TestGeminiExplainer(t *testing.T) {
	gen := &fakeGenerator{text: `{"concept_name":"Graph Traversal","explanation":"visit nodes","mermaid_diagram":"graph TD\n    A --> B","next_step_prompt":"BFS or DFS?"}`}
	g := newGeminiExplainer(gen, GeminiConfig{})

	if g.Name() != "gemini:"+DefaultGeminiModel {
		t.Errorf("Name() = %q", g.Name())
	}

	e, err := g.Explain(context.Background(), "Graph Traversal")
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if e.Explanation != "visit nodes" || !strings.HasPrefix(e.MermaidDiagram, "graph TD") {
		t.Errorf("unexpected explanation: %+v", e)
	}
	if !strings.HasSuffix(gen.got, "Concept: Graph Traversal") {
		t.Errorf("prompt does not end with topic: %q", gen.got)
	}
}

func TestGeminiExplainerErrors(t *testing.T) {
	g := newGeminiExplainer(&fakeGenerator{err: stderrors.New("boom")}, GeminiConfig{Model: "m"})
	_, err := g.Explain(context.Background(), "x")
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeNetwork)
	}

	g = newGeminiExplainer(&fakeGenerator{text: "nope"}, GeminiConfig{Model: "m"})
	_, err = g.Explain(context.Background(), "x")
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInternal)
	}
}

func TestGeminiExplainerRateLimit(t *testing.T) {
	gen := &fakeGenerator{text: `{"explanation":"x"}`}
	g := newGeminiExplainer(gen, GeminiConfig{RequestsPerMinute: 1})

	if _, err := g.Explain(context.Background(), "a"); err != nil {
		t.Fatalf("first Explain: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := g.Explain(ctx, "b")
	if errors.GetCode(err) != errors.ErrCodeRateLimited {
		t.Errorf("error = %v, want rate limited", err)
	}
	if gen.calls != 1 {
		t.Errorf("calls = %d, want 1", gen.calls)
	}
}

func TestCachedExplainer(t *testing.T) {
	inner := &countingExplainer{}
	c := NewCachedExplainer(inner, &mapCache{m: map[string][]byte{}}, nil, time.Hour)

	for _, topic := range []string{"Graph Traversal", "graph traversal ", "GRAPH TRAVERSAL"} {
		e, err := c.Explain(context.Background(), topic)
		if err != nil {
			t.Fatalf("Explain(%q): %v", topic, err)
		}
		if e.Explanation != "about Graph Traversal" {
			t.Errorf("Explain(%q) = %q", topic, e.Explanation)
		}
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
	if c.Name() != "counting" {
		t.Errorf("Name() = %q", c.Name())
	}
}

func TestCachedExplainerDoesNotCacheErrors(t *testing.T) {
	inner := &countingExplainer{err: stderrors.New("down")}
	mc := &mapCache{m: map[string][]byte{}}
	c := NewCachedExplainer(inner, mc, cache.NewDefaultKeyer(), time.Hour)

	for range 2 {
		if _, err := c.Explain(context.Background(), "x"); err == nil {
			t.Fatal("expected error")
		}
	}
	if inner.calls != 2 || len(mc.m) != 0 {
		t.Errorf("calls = %d, cached = %d", inner.calls, len(mc.m))
	}
}

func TestServiceHandle(t *testing.T) {
	ctx := context.Background()

	t.Run("echo", func(t *testing.T) {
		s := NewService(nil, quietLogger(), 0)
		resp, err := s.Handle(ctx, Request{Message: "Graph Traversal"})
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
		if resp.Status != StatusSuccess || resp.Response != "Message received and logged" {
			t.Errorf("resp = %+v", resp)
		}
		if resp.ReceivedMessage != "Graph Traversal" || resp.Explanation != nil {
			t.Errorf("resp = %+v", resp)
		}
	})

	t.Run("explainer", func(t *testing.T) {
		s := NewService(&countingExplainer{}, quietLogger(), time.Second)
		resp, err := s.Handle(ctx, Request{Message: " Traversal Types "})
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
		if resp.Explanation == nil || resp.Explanation.ConceptName != "Traversal Types" {
			t.Errorf("Explanation = %+v", resp.Explanation)
		}
		if resp.Response != "about Traversal Types" || resp.ProcessingTime == "" {
			t.Errorf("resp = %+v", resp)
		}
	})

	t.Run("explainer failure", func(t *testing.T) {
		s := NewService(&countingExplainer{err: errors.New(errors.ErrCodeUnavailable, "model offline")}, quietLogger(), 0)
		resp, err := s.Handle(ctx, Request{Message: "x"})
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
		if resp.Status != StatusError || resp.Error != "model offline" {
			t.Errorf("resp = %+v", resp)
		}
	})

	t.Run("empty", func(t *testing.T) {
		s := NewService(nil, quietLogger(), 0)
		if _, err := s.Handle(ctx, Request{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("error = %v", err)
		}
	})
}

func TestResponseJSON(t *testing.T) {
	data, err := json.Marshal(Response{
		Status:          StatusSuccess,
		ReceivedMessage: "hi",
		Explanation:     &Explanation{ConceptName: "c", Explanation: "e"},
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"status"`, `"received_message"`, `"gemini_response"`, `"concept_name"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("JSON %s missing %s", data, key)
		}
	}
	if strings.Contains(string(data), `"error"`) {
		t.Errorf("JSON %s should omit empty error", data)
	}
}

func TestClientSend(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != MessagePath {
			http.NotFound(w, r)
			return
		}
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "try again", http.StatusBadGateway)
			return
		}
		var req Request
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(Response{
			Status:          StatusSuccess,
			ReceivedMessage: req.Message,
			Response:        "Message received and logged",
		})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	c.Delay = time.Millisecond

	resp, err := c.Send(context.Background(), "What is a Graph?")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if resp.ReceivedMessage != "What is a Graph?" || atomic.LoadInt32(&calls) != 2 {
		t.Errorf("resp = %+v, calls = %d", resp, calls)
	}
}

func TestClientErrors(t *testing.T) {
	if _, err := NewClient("ftp://example.com"); err == nil {
		t.Error("NewClient should reject non-http URLs")
	}

	tests := []struct {
		status int
		want   errors.Code
	}{
		{http.StatusUnprocessableEntity, errors.ErrCodeInvalidInput},
		{http.StatusTooManyRequests, errors.ErrCodeRateLimited},
		{http.StatusInternalServerError, errors.ErrCodeNetwork},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		c, _ := NewClient(srv.URL)
		c.Attempts, c.Delay = 2, time.Millisecond

		_, err := c.Send(context.Background(), "x")
		srv.Close()
		if got := errors.GetCode(err); got != tt.want {
			t.Errorf("status %d: code = %q, want %q (err %v)", tt.status, got, tt.want, err)
		}
	}

	c := &Client{BaseURL: "http://127.0.0.1:1", HTTP: http.DefaultClient}
	if _, err := c.Send(context.Background(), ""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty message error = %v", err)
	}
}
