package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/axiome/firstprinciples/pkg/adjlist"
	"github.com/axiome/firstprinciples/pkg/cache"
	"github.com/axiome/firstprinciples/pkg/httputil"
	"github.com/axiome/firstprinciples/pkg/observability"
	"github.com/axiome/firstprinciples/pkg/render"
	"github.com/axiome/firstprinciples/pkg/render/mermaid"
	"github.com/axiome/firstprinciples/pkg/render/nodelink"
)

// SVGRenderer turns DOT source into SVG.
type SVGRenderer func(ctx context.Context, dot string) ([]byte, error)

// Converter turns SVG into another image format.
type Converter func(svg []byte, scale float64) ([]byte, error)

// cacheWriteBackoff retries artifact writes to a remote cache. Renders are
// already done by then, so waits are kept short.
var cacheWriteBackoff = httputil.Backoff{Attempts: 3, Delay: 100 * time.Millisecond, Max: time.Second}

// Runner executes conversions against a shared artifact cache.
//
// A Runner keeps no per-call state and may be used from many goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// ArtifactTTL is how long rendered images stay cached.
	ArtifactTTL time.Duration

	// RenderSVG, ToPNG and ToPDF default to Graphviz and rsvg-convert.
	RenderSVG SVGRenderer
	ToPNG     Converter
	ToPDF     Converter
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:       c,
		Keyer:       keyer,
		Logger:      logger,
		ArtifactTTL: DefaultArtifactTTL,
		RenderSVG:   nodelink.RenderSVG,
		ToPNG:       render.ToPNG,
		ToPDF:       func(svg []byte, _ float64) ([]byte, error) { return render.ToPDF(svg) },
	}
}

// Convert parses source and returns its Mermaid markup. It never fails;
// malformed lines are dropped by the parser.
func (r *Runner) Convert(ctx context.Context, source string, directed bool) string {
	g := r.parse(ctx, source, directed)
	if directed {
		return mermaid.Directed(g)
	}
	return mermaid.Undirected(g)
}

// Execute validates opts, parses the source once and renders every
// requested format concurrently.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		SourceHash: cache.Hash([]byte(opts.Source)),
		Artifacts:  make(map[string][]byte, len(opts.Formats)),
	}

	parseStart := time.Now()
	g := r.parse(ctx, opts.Source, opts.Directed)
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.VertexCount = g.Len()
	result.Stats.EdgeCount = g.EdgeCount()

	r.Logger.Debug("parsed adjacency list",
		"vertices", g.Len(),
		"edges", g.EdgeCount(),
		"directed", opts.Directed)

	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	job := &renderJob{runner: r, graph: g, opts: opts, hash: result.SourceHash}
	var mu sync.Mutex
	eg, egCtx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		eg.Go(func() error {
			data, hit, err := job.render(egCtx, format)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			defer mu.Unlock()
			result.Artifacts[format] = data
			if hit {
				result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
			}
			return nil
		})
	}
	err := eg.Wait()
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}

	cacheable := 0
	for _, f := range opts.Formats {
		if IsImage(f) {
			cacheable++
		}
	}
	result.CacheInfo.RenderHit = cacheable > 0 && len(result.CacheInfo.Hits) == cacheable

	r.Logger.Info("rendered diagram",
		"formats", opts.Formats,
		"cached", len(result.CacheInfo.Hits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

func (r *Runner) parse(ctx context.Context, source string, directed bool) *adjlist.Graph {
	start := time.Now()
	observability.Pipeline().OnConvertStart(ctx, directed, len(source))
	g := adjlist.Parse(source)
	observability.Pipeline().OnConvertComplete(ctx, directed, g.Len(), g.EdgeCount(), time.Since(start))
	return g
}

// renderJob holds the shared state of one Execute call. The SVG is rendered
// at most once even when several image formats are requested.
type renderJob struct {
	runner *Runner
	graph  *adjlist.Graph
	opts   Options
	hash   string

	svgOnce sync.Once
	svg     []byte
	svgHit  bool
	svgErr  error
}

func (j *renderJob) render(ctx context.Context, format string) ([]byte, bool, error) {
	switch format {
	case FormatMermaid:
		if j.opts.Directed {
			return []byte(mermaid.Directed(j.graph)), false, nil
		}
		return []byte(mermaid.Undirected(j.graph)), false, nil
	case FormatDOT:
		return []byte(j.dot()), false, nil
	case FormatSVG:
		j.svgOnce.Do(func() {
			j.svg, j.svgHit, j.svgErr = j.cached(ctx, FormatSVG, func() ([]byte, error) {
				return j.runner.RenderSVG(ctx, j.dot())
			})
		})
		return j.svg, j.svgHit, j.svgErr
	case FormatPNG, FormatPDF:
		convert := j.runner.ToPNG
		if format == FormatPDF {
			convert = j.runner.ToPDF
		}
		return j.cached(ctx, format, func() ([]byte, error) {
			svg, _, err := j.render(ctx, FormatSVG)
			if err != nil {
				return nil, err
			}
			return convert(svg, j.opts.Scale)
		})
	default:
		return nil, false, ValidateFormat(format)
	}
}

func (j *renderJob) dot() string {
	return nodelink.ToDOT(j.graph, nodelink.Options{Directed: j.opts.Directed})
}

// cached serves format from the cache or computes and stores it.
// Cache failures are logged and never fail the render.
func (j *renderJob) cached(ctx context.Context, format string, compute func() ([]byte, error)) ([]byte, bool, error) {
	r := j.runner
	keyOpts := cache.ArtifactKeyOpts{Format: format, Directed: j.opts.Directed}
	if format == FormatPNG {
		keyOpts.Scale = j.opts.Scale
	}
	key := r.Keyer.ArtifactKey(j.hash, keyOpts)

	if !j.opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "format", format, "err", err)
		} else if hit {
			return data, true, nil
		}
	}

	data, err := compute()
	if err != nil {
		return nil, false, err
	}

	err = cacheWriteBackoff.Do(ctx, func() error {
		return r.Cache.Set(ctx, key, data, r.ArtifactTTL)
	})
	if err != nil {
		r.Logger.Warn("cache write failed", "format", format, "err", err)
	}
	return data, false, nil
}
