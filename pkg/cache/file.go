package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/axiome/firstprinciples/pkg/observability"
)

// FileCache keeps one JSON file per entry under dir, fanned out into
// 256 subdirectories by the first byte of the key's hash. Writes go through
// a temp file and a rename, so readers never see a partial entry.
type FileCache struct {
	dir string
}

// NewFileCache creates dir if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

type cacheEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (e cacheEntry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

func newEntry(data []byte, ttl time.Duration) cacheEntry {
	e := cacheEntry{Data: data}
	if ttl > 0 {
		e.ExpiresAt = time.Now().Add(ttl)
	}
	return e
}

// Get treats unreadable or expired files as misses and removes them.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		observability.Cache().OnCacheMiss(ctx, keyType(key))
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}

	var e cacheEntry
	if json.Unmarshal(raw, &e) != nil || e.expired(time.Now()) {
		_ = os.Remove(path)
		observability.Cache().OnCacheMiss(ctx, keyType(key))
		return nil, false, nil
	}
	observability.Cache().OnCacheHit(ctx, keyType(key))
	return e.Data, true, nil
}

func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	raw, err := json.Marshal(newEntry(data, ttl))
	if err != nil {
		return err
	}
	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (c *FileCache) Dir() string { return c.dir }

// FileStats summarizes the cache directory.
type FileStats struct {
	Entries int
	Bytes   int64
}

// Stats counts entry files and their total size, expired ones included.
func (c *FileCache) Stats() (FileStats, error) {
	var st FileStats
	err := c.walkEntries(func(path string, d fs.DirEntry) error {
		info, err := d.Info()
		if err != nil {
			return nil
		}
		st.Entries++
		st.Bytes += info.Size()
		return nil
	})
	return st, err
}

// Clear deletes every entry and the fan-out directories, returning the
// number of entries removed.
func (c *FileCache) Clear() (int, error) {
	n := 0
	err := c.walkEntries(func(path string, _ fs.DirEntry) error {
		if os.Remove(path) == nil {
			n++
		}
		return nil
	})
	if err != nil {
		return n, err
	}

	subdirs, err := os.ReadDir(c.dir)
	if err != nil {
		return n, err
	}
	for _, d := range subdirs {
		if d.IsDir() {
			_ = os.RemoveAll(filepath.Join(c.dir, d.Name()))
		}
	}
	return n, nil
}

func (c *FileCache) Close() error { return nil }

func (c *FileCache) walkEntries(fn func(path string, d fs.DirEntry) error) error {
	return filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == c.dir {
				return err
			}
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		return fn(path, d)
	})
}

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
