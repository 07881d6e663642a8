package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/axiome/firstprinciples/pkg/httputil"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	src := Hash([]byte("A: B"))

	ak1 := k.ArtifactKey(src, ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey(src, ArtifactKeyOpts{Format: "svg", Directed: true})
	ak3 := k.ArtifactKey(src, ArtifactKeyOpts{Format: "png"})
	if ak1 == ak2 || ak1 == ak3 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(ak1, "artifact:") {
		t.Errorf("ArtifactKey should be prefixed: %s", ak1)
	}
	if ak1 != k.ArtifactKey(src, ArtifactKeyOpts{Format: "svg"}) {
		t.Error("ArtifactKey should be deterministic")
	}

	ck1 := k.ConceptKey("echo", "What is a Graph?")
	ck2 := k.ConceptKey("echo", "  what is a graph?  ")
	if ck1 != ck2 {
		t.Error("ConceptKey should ignore case and surrounding space")
	}
	if ck1 == k.ConceptKey("gemini-2.5-flash", "What is a Graph?") {
		t.Error("ConceptKey should depend on the model")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "staging:")

	key := scoped.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"})
	if key != "staging:"+inner.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"}) {
		t.Errorf("ScopedKeyer ArtifactKey unexpected: %s", key)
	}

	ck := scoped.ConceptKey("echo", "Graph Traversal")
	if !strings.HasPrefix(ck, "staging:concept:echo:") {
		t.Errorf("ScopedKeyer ConceptKey should be prefixed: %s", ck)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ConceptKey("m", "t")
	if key != "prefix:"+NewDefaultKeyer().ConceptKey("m", "t") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
	if got := keyType(key); got != "concept" {
		t.Errorf("keyType(%q) = %q, want concept", key, got)
	}
}

func TestKeyType(t *testing.T) {
	tests := map[string]string{
		"artifact:abc":       "artifact",
		"concept:echo:abc":   "concept",
		"staging:artifact:x": "artifact",
		"a:b:concept:m:x":    "concept",
		"plain":              "plain",
	}
	for key, want := range tests {
		if got := keyType(key); got != want {
			t.Errorf("keyType(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "artifact:k"); err != nil || hit {
		t.Fatalf("Get on empty cache = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "artifact:k", []byte("<svg/>"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "artifact:k")
	if err != nil || !hit {
		t.Fatalf("Get after Set = hit %v, err %v", hit, err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("Get data = %q", data)
	}

	if err := c.Delete(ctx, "artifact:k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "artifact:k"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "artifact:k"); err != nil {
		t.Errorf("Delete of missing key should not fail: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry should be a miss, got hit %v err %v", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get after Clear should miss")
	}
	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("Clear should remove subdirectories, %d left", len(entries))
	}
}

func TestFileCacheStats(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	if st, err := c.Stats(); err != nil || st.Entries != 0 {
		t.Fatalf("Stats on empty cache = %+v, %v", st, err)
	}
	for _, k := range []string{"artifact:a", "concept:m:b"} {
		if err := c.Set(ctx, k, []byte("payload"), 0); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	st, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Entries != 2 || st.Bytes == 0 {
		t.Errorf("Stats = %+v, want 2 entries with a size", st)
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not-a-redis-url"); err == nil {
		t.Error("NewRedisCache should reject malformed URLs")
	}
}

func TestBackendError(t *testing.T) {
	err := backendError("get", errors.New("connection refused"))
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("backendError() = %v, want ErrNetwork", err)
	}
	if !httputil.IsRetryable(err) {
		t.Error("backend errors should be retryable")
	}
	if !strings.Contains(err.Error(), "get: connection refused") {
		t.Errorf("backendError() message = %q", err.Error())
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewMemoryCache(2)
	if err != nil {
		t.Fatalf("NewMemoryCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "artifact:a"); err != nil || hit {
		t.Fatalf("Get on empty cache = hit %v, err %v", hit, err)
	}

	src := []byte("<svg/>")
	if err := c.Set(ctx, "artifact:a", src, time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	src[0] = 'X'
	data, hit, _ := c.Get(ctx, "artifact:a")
	if !hit || string(data) != "<svg/>" {
		t.Fatalf("Get = %q, %v; want stored copy", data, hit)
	}
	data[0] = 'Y'
	if again, _, _ := c.Get(ctx, "artifact:a"); string(again) != "<svg/>" {
		t.Errorf("Get returned shared buffer: %q", again)
	}

	// "a" was just read, so adding a third entry evicts "b".
	_ = c.Set(ctx, "artifact:b", []byte("b"), 0)
	_, _, _ = c.Get(ctx, "artifact:a")
	_ = c.Set(ctx, "artifact:c", []byte("c"), 0)
	if _, hit, _ := c.Get(ctx, "artifact:b"); hit {
		t.Error("least recently used entry was not evicted")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	if err := c.Delete(ctx, "artifact:a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "artifact:a"); hit {
		t.Error("Get after Delete should miss")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewMemoryCache(0)
	if err != nil {
		t.Fatalf("NewMemoryCache: %v", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not evicted, Len() = %d", c.Len())
	}
}
