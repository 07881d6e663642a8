// Package pipeline converts adjacency-list source into diagram artifacts.
//
// This package implements the parse → generate → render flow shared by the
// CLI and the API server.
//
// # Architecture
//
//  1. Parse: adjlist.Parse turns source text into an ordered graph
//  2. Generate: Mermaid markup and/or Graphviz DOT
//  3. Render: SVG via go-graphviz, PDF and PNG via rsvg-convert
//
// Text formats (mermaid, dot) are produced on every call; image formats are
// cached by source hash and options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:   "A: B, C\nB: A",
//	    Directed: false,
//	    Formats:  []string{pipeline.FormatMermaid, pipeline.FormatSVG},
//	})
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/axiome/firstprinciples/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// MaxSourceBytes bounds the adjacency-list source accepted by the pipeline.
	MaxSourceBytes = 1 << 20

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// DefaultArtifactTTL is how long rendered images stay cached.
	DefaultArtifactTTL = 7 * 24 * time.Hour
)

// Format constants for output formats.
const (
	FormatMermaid = "mermaid"
	FormatDOT     = "dot"
	FormatSVG     = "svg"
	FormatPNG     = "png"
	FormatPDF     = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatMermaid: true,
	FormatDOT:     true,
	FormatSVG:     true,
	FormatPNG:     true,
	FormatPDF:     true,
}

// contentTypes maps formats to HTTP content types.
var contentTypes = map[string]string{
	FormatMermaid: "text/vnd.mermaid; charset=utf-8",
	FormatDOT:     "text/vnd.graphviz; charset=utf-8",
	FormatSVG:     "image/svg+xml",
	FormatPNG:     "image/png",
	FormatPDF:     "application/pdf",
}

// extensions maps formats to file extensions.
var extensions = map[string]string{
	FormatMermaid: ".mmd",
	FormatDOT:     ".dot",
	FormatSVG:     ".svg",
	FormatPNG:     ".png",
	FormatPDF:     ".pdf",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one conversion.
// This struct supports JSON serialization for API requests.
type Options struct {
	Source   string   `json:"source"`
	Directed bool     `json:"directed"`
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"` // PNG only
	Refresh  bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// SourceHash is the SHA-256 of the source text.
	SourceHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	VertexCount int
	EdgeCount   int
	ParseTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	Hits      []string // Formats served from cache
	RenderHit bool     // Whether every cacheable artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// FormatNames returns the supported formats in a stable order.
func FormatNames() []string {
	return []string{FormatMermaid, FormatDOT, FormatSVG, FormatPNG, FormatPDF}
}

// ContentType returns the HTTP content type of a format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Extension returns the file extension (with dot) of a format.
func Extension(format string) string {
	return extensions[format]
}

// IsImage reports whether format requires Graphviz rendering.
func IsImage(format string) bool {
	return format == FormatSVG || format == FormatPNG || format == FormatPDF
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the source and formats and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateSource(o.Source, MaxSourceBytes); err != nil {
		return err
	}
	o.Formats = dedupe(o.Formats)
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatMermaid}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// NeedsRender reports whether any requested format requires Graphviz.
func (o *Options) NeedsRender() bool {
	return slices.ContainsFunc(o.Formats, IsImage)
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
