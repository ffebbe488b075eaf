package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/oasrouter/contract"
	"github.com/erraggy/oasrouter/router"
)

// specInput represents the two ways a contract can be provided to a tool.
// Exactly one of File or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline OpenAPI document content (JSON or YAML)"`
}

// cacheEntry holds a cached router with LRU ordering and TTL expiry.
type cacheEntry struct {
	router    *router.Router
	insertAt  time.Time
	expiresAt time.Time
}

// routerCacheStore provides a session-scoped cache of routers.
// File inputs are keyed by (absolutePath, modTime), content inputs by a
// SHA-256 hash; both include the api root the router was built with.
type routerCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var routerCache = &routerCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached router or nil. Expired entries are lazily removed.
func (c *routerCacheStore) get(key string) *router.Router {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return e.router
	}
	return nil
}

// put stores a router with a specific TTL, evicting the oldest entry if at capacity.
func (c *routerCacheStore) put(key string, r *router.Router, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{router: r, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *routerCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes
// expired entries. Only the first call spawns a sweeper. It stops when ctx
// is cancelled.
func (c *routerCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *routerCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *routerCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for the given spec input and api root.
// Equivalent roots share a key. Returns "" when the input cannot be keyed.
func makeCacheKey(s specInput, apiRoot string) string {
	// Invalid roots keep their raw text so they never hit a valid entry.
	if !strings.ContainsAny(apiRoot, "?{}") {
		apiRoot = router.NormalizePath(apiRoot)
	}
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d:%s", absPath, info.ModTime().UnixNano(), apiRoot)
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return fmt.Sprintf("content:%s:%s", hex.EncodeToString(h[:]), apiRoot)
	default:
		return ""
	}
}

// resolve builds a router over the spec, using the cache when enabled. An
// empty apiRoot uses the configured default.
func (s specInput) resolve(apiRoot string) (*router.Router, error) {
	if (s.File == "") == (s.Content == "") {
		return nil, fmt.Errorf("exactly one of file or content must be provided")
	}
	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASROUTER_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}
	if apiRoot == "" {
		apiRoot = cfg.APIRoot
	}

	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key = makeCacheKey(s, apiRoot)
		ttl = cfg.CacheContentTTL
		if s.File != "" {
			ttl = cfg.CacheFileTTL
		}
	}
	if key != "" {
		if cached := routerCache.get(key); cached != nil {
			return cached, nil
		}
	}

	source, data := "inline", []byte(s.Content)
	if s.File != "" {
		var err error
		source = s.File
		data, err = os.ReadFile(s.File)
		if err != nil {
			return nil, err
		}
	}

	doc, err := contract.Parse(source, data)
	if err != nil {
		return nil, err
	}
	r, err := router.New(doc,
		router.WithAPIRoot(apiRoot),
		router.WithLogger(router.NewSlogAdapter(slog.Default()).With("component", "mcpserver")),
	)
	if err != nil {
		return nil, err
	}

	if key != "" {
		routerCache.put(key, r, ttl)
	}
	return r, nil
}
