// Package observability lets a binary attach metrics to library events.
//
// Libraries call the hooks returned by [Pipeline], [Cache] and [HTTP]. Until
// a binary installs its own implementations with the Set functions, those
// are the no-op types in this package, so libraries never depend on a
// metrics backend. The API server installs Prometheus collectors.
//
//	observability.SetCacheHooks(myHooks)
//	...
//	observability.Cache().OnCacheHit(ctx, "artifact")
//
// Hooks are read on every event and swapped atomically; installing them
// while requests are in flight is safe.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives conversion, render and concept events.
type PipelineHooks interface {
	// Parsing cannot fail, so the convert events carry no error.
	OnConvertStart(ctx context.Context, directed bool, sourceBytes int)
	OnConvertComplete(ctx context.Context, directed bool, vertexCount, edgeCount int, duration time.Duration)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)

	OnExplain(ctx context.Context, topic, explainer string, duration time.Duration, err error)
}

// CacheHooks receives cache lookups and writes. keyType is the key's
// prefix, such as "artifact" or "concept".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives outgoing HTTP calls made through httputil.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	// OnError reports transport failures; HTTP error statuses go to OnResponse.
	OnError(ctx context.Context, method, host, path string, err error)
}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnConvertStart(context.Context, bool, int)                        {}
func (NoopPipelineHooks) OnConvertComplete(context.Context, bool, int, int, time.Duration) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}
func (NoopPipelineHooks) OnExplain(context.Context, string, string, time.Duration, error)  {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// hookSet is an immutable snapshot of the installed hooks.
type hookSet struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var noop = hookSet{NoopPipelineHooks{}, NoopCacheHooks{}, NoopHTTPHooks{}}

var current atomic.Pointer[hookSet]

func init() { Reset() }

func load() *hookSet { return current.Load() }

// update applies fn to a copy of the current set and installs it.
func update(fn func(*hookSet)) {
	for {
		old := current.Load()
		next := *old
		fn(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// SetPipelineHooks installs h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(s *hookSet) { s.pipeline = h })
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(s *hookSet) { s.cache = h })
	}
}

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(s *hookSet) { s.http = h })
	}
}

func Pipeline() PipelineHooks { return load().pipeline }
func Cache() CacheHooks       { return load().cache }
func HTTP() HTTPHooks         { return load().http }

// Reset reinstalls the no-op hooks.
func Reset() {
	set := noop
	current.Store(&set)
}
