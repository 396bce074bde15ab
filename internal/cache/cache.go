// Package cache provides a TTL'd cache for listing responses, keyed per
// resource type and shop.
//
// Two backends exist: a JSON-file store under the user cache directory
// (the default) and a Redis store selected by setting SHOPCTL_REDIS_URL.
// Disable caching entirely with SHOPCTL_NO_CACHE=1.
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultTTL = 5 * time.Minute

// Store reads and writes a single cache key (resource + shop).
type Store interface {
	// Get loads cached items into dst. Returns false on miss (absent,
	// expired, disabled, or backend error).
	Get(ctx context.Context, dst any) bool
	// Put writes items to the cache. Silently no-ops on error or when
	// caching is disabled.
	Put(ctx context.Context, items any)
	// Clear removes this cache entry.
	Clear(ctx context.Context)
}

type entry struct {
	CachedAt time.Time       `json:"cached_at"`
	Items    json.RawMessage `json:"items"`
}

// NewStore creates a Store with the default TTL, picking the Redis
// backend when SHOPCTL_REDIS_URL is set and the file backend otherwise.
// key is the resource type (e.g. "products"); shopDomain scopes entries
// so two shops never see each other's listings.
func NewStore(dir, key, shopDomain string) Store {
	return NewStoreWithTTL(dir, key, shopDomain, DefaultTTL)
}

// NewStoreWithTTL creates a Store with a custom TTL.
func NewStoreWithTTL(dir, key, shopDomain string, ttl time.Duration) Store {
	if addr := strings.TrimSpace(os.Getenv("SHOPCTL_REDIS_URL")); addr != "" {
		return newRedisStore(addr, cacheKey(key, shopDomain), ttl)
	}
	return newFileStore(dir, key, shopDomain, ttl)
}

// cacheKey builds the backend-independent entry key:
// "<resource>_<12 hex of shop domain hash>".
func cacheKey(key, shopDomain string) string {
	hash := sha1.Sum([]byte(shopDomain))
	return fmt.Sprintf("%s_%s", sanitizeKey(key), hex.EncodeToString(hash[:6]))
}

// DefaultDir returns the platform-appropriate cache directory,
// "$XDG_CACHE_HOME/shopctl" or equivalent.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "shopctl"), nil
}

func disabled() bool {
	return os.Getenv("SHOPCTL_NO_CACHE") != ""
}

func sanitizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "cache"
	}
	key = strings.ReplaceAll(key, "/", "-")
	key = strings.ReplaceAll(key, "\\", "-")
	return key
}

// fileStore is the JSON-file backend.
type fileStore struct {
	path string
	ttl  time.Duration
}

func newFileStore(dir, key, shopDomain string, ttl time.Duration) *fileStore {
	return &fileStore{
		path: filepath.Join(dir, cacheKey(key, shopDomain)+".json"),
		ttl:  ttl,
	}
}

func (s *fileStore) Get(_ context.Context, dst any) bool {
	if disabled() {
		return false
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return false
	}
	if time.Since(e.CachedAt) > s.ttl {
		return false
	}
	return json.Unmarshal(e.Items, dst) == nil
}

func (s *fileStore) Put(_ context.Context, items any) {
	if disabled() {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	data, err := json.Marshal(entry{
		CachedAt: time.Now(),
		Items:    raw,
	})
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return
	}

	// Atomic-ish write: write temp then rename.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return
	}
	_ = os.Rename(tmp, s.path)
}

func (s *fileStore) Clear(_ context.Context) {
	_ = os.Remove(s.path)
}

// ClearAll removes all file-backend cache entries from the directory.
// For safety, it only removes files matching this project's cache
// filename scheme.
func ClearAll(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !isCacheFilename(e.Name()) {
			continue
		}
		_ = os.Remove(filepath.Join(dir, e.Name()))
	}
}

func isCacheFilename(name string) bool {
	// Expected: "<key>_<12hex>.json"
	if filepath.Ext(name) != ".json" {
		return false
	}
	parts := strings.Split(strings.TrimSuffix(name, ".json"), "_")
	if len(parts) != 2 || parts[0] == "" || len(parts[1]) != 12 {
		return false
	}
	for _, c := range parts[1] {
		if !strings.ContainsRune("0123456789abcdef", c) {
			return false
		}
	}
	return true
}

// redisStore is the Redis backend. Entries carry the same cached_at
// envelope as the file backend so either can be inspected by hand; the
// Redis TTL is a backstop, the envelope timestamp is authoritative.
type redisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func newRedisStore(addr, key string, ttl time.Duration) *redisStore {
	return &redisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		key:    "shopctl:cache:" + key,
		ttl:    ttl,
	}
}

func (s *redisStore) Get(ctx context.Context, dst any) bool {
	if disabled() {
		return false
	}
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		return false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return false
	}
	if time.Since(e.CachedAt) > s.ttl {
		return false
	}
	return json.Unmarshal(e.Items, dst) == nil
}

func (s *redisStore) Put(ctx context.Context, items any) {
	if disabled() {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	data, err := json.Marshal(entry{
		CachedAt: time.Now(),
		Items:    raw,
	})
	if err != nil {
		return
	}
	exp := s.ttl
	if exp < 0 {
		exp = 0
	}
	_ = s.client.Set(ctx, s.key, data, exp).Err()
}

func (s *redisStore) Clear(ctx context.Context) {
	_ = s.client.Del(ctx, s.key).Err()
}
