package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestListArtifacts(t *testing.T) {
	current := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	s, err := Open(t.TempDir(), WithClock(func() time.Time { return current }))
	if err != nil {
		t.Fatal(err)
	}

	saves := []struct {
		rel    string
		status string
	}{
		{"prd/main.md", "draft"},
		{"stories/epic-1.md", "approved"},
		{"stories/epic-2.md", "draft"},
	}
	for _, sv := range saves {
		current = current.Add(time.Hour)
		if _, err := s.SaveArtifact(sv.rel, "content", map[string]interface{}{"status": sv.status}); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.ListArtifacts("", "")
	if err != nil {
		t.Fatalf("ListArtifacts: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("listed %d artifacts, want 3", len(all))
	}
	// Newest first.
	if all[0].Path != "stories/epic-2.md" || all[2].Path != "prd/main.md" {
		t.Errorf("unexpected order: %v", all)
	}

	stories, err := s.ListArtifacts("stories", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(stories) != 2 {
		t.Errorf("category filter returned %d, want 2", len(stories))
	}

	drafts, err := s.ListArtifacts("", "draft")
	if err != nil {
		t.Fatal(err)
	}
	if len(drafts) != 2 {
		t.Errorf("status filter returned %d, want 2", len(drafts))
	}

	both, err := s.ListArtifacts("stories", "approved")
	if err != nil {
		t.Fatal(err)
	}
	if len(both) != 1 || both[0].Path != "stories/epic-1.md" {
		t.Errorf("combined filter returned %v", both)
	}
}

func TestListArtifactsMissingCategory(t *testing.T) {
	s := setupStore(t)
	items, err := s.ListArtifacts("nonexistent", "")
	if err != nil {
		t.Fatalf("missing category should not error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty listing, got %v", items)
	}
}

func TestListArtifactsSkipsUnreadable(t *testing.T) {
	s := setupStore(t)

	if _, err := s.SaveArtifact("prd/good.md", "fine", map[string]interface{}{"status": "draft"}); err != nil {
		t.Fatal(err)
	}
	// A directory named like a document trips the per-file load and
	// must be skipped, not fail the listing.
	if err := os.MkdirAll(filepath.Join(s.Dir(), "prd", "trap.md"), 0o750); err != nil {
		t.Fatal(err)
	}

	items, err := s.ListArtifacts("prd", "")
	if err != nil {
		t.Fatalf("listing should survive unreadable entries: %v", err)
	}
	if len(items) != 1 || items[0].Path != "prd/good.md" {
		t.Errorf("unexpected listing: %v", items)
	}
}

func TestListArtifactsWithoutMetadata(t *testing.T) {
	s := setupStore(t)
	if _, err := s.SaveArtifact("decisions/plain.md", "raw", nil); err != nil {
		t.Fatal(err)
	}

	items, err := s.ListArtifacts("decisions", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("listed %d, want 1", len(items))
	}
	if items[0].Status != "unknown" {
		t.Errorf("status = %q, want unknown", items[0].Status)
	}
}
