package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hugo-lorenzo-mato/docgate/internal/core"
)

func setupLoader(t *testing.T) (*Loader, string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "prd.md"), []byte("# {{title}}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "story.md"), []byte("As a user...\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return NewLoader(dir), dir
}

func TestLoadTemplate(t *testing.T) {
	loader, _ := setupLoader(t)

	content, err := loader.Load("prd.md")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if content != "# {{title}}\n" {
		t.Errorf("content = %q", content)
	}
}

func TestLoadMissingTemplate(t *testing.T) {
	loader, _ := setupLoader(t)
	if _, err := loader.Load("missing.md"); !core.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestTemplateCache(t *testing.T) {
	loader, dir := setupLoader(t)

	if _, err := loader.Load("story.md"); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(dir, "story.md")); err != nil {
		t.Fatal(err)
	}

	// Cache hit survives source removal.
	if _, err := loader.Load("story.md"); err != nil {
		t.Fatalf("cached load failed: %v", err)
	}

	loader.ClearCache()
	if _, err := loader.Load("story.md"); !core.IsNotFound(err) {
		t.Errorf("expected not found after cache clear, got %v", err)
	}
}

func TestListTemplates(t *testing.T) {
	loader, _ := setupLoader(t)
	names, err := loader.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 {
		t.Errorf("names = %v", names)
	}
}
