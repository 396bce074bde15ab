package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCachePath(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())
	cacheBase := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheBase)

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"cache", "path"}); err != nil {
			t.Errorf("cache path failed: %v", err)
		}
	})

	if !strings.Contains(output, filepath.Join(cacheBase, "shopctl")) {
		t.Errorf("cache path output = %q", output)
	}
}

func TestCacheClear(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())
	cacheBase := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheBase)

	dir := filepath.Join(cacheBase, "shopctl")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(dir, "product_titles_abcdef123456.json")
	if err := os.WriteFile(stale, []byte(`{"cached_at":"2024-01-01T00:00:00Z","items":[]}`), 0o600); err != nil {
		t.Fatal(err)
	}

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"cache", "clear"}); err != nil {
			t.Errorf("cache clear failed: %v", err)
		}
	})

	if !strings.Contains(output, "Cache cleared") {
		t.Errorf("output missing confirmation: %s", output)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("expected cache entry to be removed")
	}
}
