package cmd

import (
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v6"

	"github.com/Yates-Labs/clog/internal/ignore"
)

func TestBuildPipelineResolvesRulesThroughCache(t *testing.T) {
	dir := t.TempDir()
	if _, err := gogit.PlainInit(dir, false); err != nil {
		t.Fatalf("failed to init repository: %v", err)
	}

	path := filepath.Join(dir, ignore.FileName)
	if err := os.WriteFile(path, []byte("*.secret\n"), 0o644); err != nil {
		t.Fatalf("failed to write ignore file: %v", err)
	}

	if _, err := buildPipeline(dir); err != nil {
		t.Fatalf("failed to build pipeline: %v", err)
	}

	// The rules were published to the cache: removing the file on disk does
	// not affect lookups until the root is invalidated.
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove ignore file: %v", err)
	}

	cached := ruleCache.For(dir)
	if !cached.Ignored("keys.secret") {
		t.Error("expected cached project rules, got a fresh load")
	}

	ruleCache.Invalidate(dir)
	reloaded := ruleCache.For(dir)
	if reloaded.Ignored("keys.secret") {
		t.Error("expected defaults after invalidation")
	}
	if reloaded.Len() != len(ignore.DefaultPatterns) {
		t.Errorf("expected %d default patterns, got %d", len(ignore.DefaultPatterns), reloaded.Len())
	}
}
