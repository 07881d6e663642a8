package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

type countingCache struct {
	NoopCacheHooks
	mu   sync.Mutex
	hits map[string]int
}

func (c *countingCache) OnCacheHit(_ context.Context, keyType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits[keyType]++
}

type recordingPipeline struct {
	NoopPipelineHooks
	explained []string
}

func (p *recordingPipeline) OnExplain(_ context.Context, topic, explainer string, _ time.Duration, _ error) {
	p.explained = append(p.explained, explainer+":"+topic)
}

type recordingHTTP struct{ NoopHTTPHooks }

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}

	Pipeline().OnConvertComplete(ctx, true, 3, 4, time.Millisecond)
	Pipeline().OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)
	Cache().OnCacheSet(ctx, "artifact", 1024)
	HTTP().OnError(ctx, "POST", "localhost:8000", "/api/concepts/message", nil)
}

func TestSetHooks(t *testing.T) {
	t.Cleanup(Reset)
	ctx := context.Background()

	p := &recordingPipeline{}
	SetPipelineHooks(p)
	c := &countingCache{hits: map[string]int{}}
	SetCacheHooks(c)
	h := &recordingHTTP{}
	SetHTTPHooks(h)

	Pipeline().OnExplain(ctx, "Graph Traversal", "echo", time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "concept")
	Cache().OnCacheHit(ctx, "concept")

	if len(p.explained) != 1 || p.explained[0] != "echo:Graph Traversal" {
		t.Errorf("explained = %v", p.explained)
	}
	if c.hits["concept"] != 2 {
		t.Errorf("concept hits = %d, want 2", c.hits["concept"])
	}
	if HTTP() != HTTPHooks(h) {
		t.Error("SetHTTPHooks did not install the hooks")
	}

	// Installing one kind leaves the others alone.
	SetPipelineHooks(NoopPipelineHooks{})
	if Cache() != CacheHooks(c) {
		t.Error("SetPipelineHooks replaced the cache hooks")
	}

	Reset()
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset did not restore the cache hooks")
	}
}

func TestSetNilIsIgnored(t *testing.T) {
	t.Cleanup(Reset)

	p := &recordingPipeline{}
	SetPipelineHooks(p)
	SetPipelineHooks(nil)
	SetCacheHooks(nil)
	SetHTTPHooks(nil)

	if Pipeline() != PipelineHooks(p) {
		t.Error("SetPipelineHooks(nil) replaced the installed hooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("SetCacheHooks(nil) changed the default")
	}
}

func TestConcurrentSetAndRead(t *testing.T) {
	t.Cleanup(Reset)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetCacheHooks(&countingCache{hits: map[string]int{}})
		}()
		go func() {
			defer wg.Done()
			Cache().OnCacheMiss(ctx, "artifact")
		}()
	}
	wg.Wait()
}
