package runner

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDocumentCacheMemoizesParses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reference.md")
	if err := os.WriteFile(path, []byte("---\nlayout: reference\n---\n## Glossary\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cache := newDocumentCache()
	first, err := cache.Resolve(path)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	// A later rewrite must not change the cached view within the batch.
	if err := os.WriteFile(path, []byte("---\nlayout: reference\n---\n## Renamed\n"), 0o644); err != nil {
		t.Fatalf("rewrite fixture: %v", err)
	}
	second, err := cache.Resolve(filepath.Join(dir, ".", "reference.md"))
	if err != nil {
		t.Fatalf("resolve again: %v", err)
	}
	if first != second {
		t.Fatal("expected the same cached document")
	}
	if !second.HasAnchor("glossary") {
		t.Fatal("expected the original anchor set")
	}
}

func TestDocumentCacheMemoizesFailures(t *testing.T) {
	cache := newDocumentCache()
	missing := filepath.Join(t.TempDir(), "absent.md")

	if _, err := cache.Resolve(missing); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := cache.Resolve(missing); err == nil {
		t.Fatal("expected cached error for missing file")
	}
}
