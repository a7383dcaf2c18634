package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hugo-lorenzo-mato/docgate/internal/core"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestOpenCreatesStructure(t *testing.T) {
	root := t.TempDir()
	s, err := Open(root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	for _, c := range core.CountableCategories() {
		dir := filepath.Join(s.Dir(), string(c))
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("category directory %s missing", c)
		}
	}

	meta, err := s.Meta()
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	if meta.CurrentPhase != core.InitialPhase {
		t.Errorf("phase = %q, want %q", meta.CurrentPhase, core.InitialPhase)
	}
	if meta.SchemaVersion != core.MetaSchemaVersion {
		t.Errorf("schema version = %q", meta.SchemaVersion)
	}
	if meta.ProjectName != filepath.Base(root) {
		t.Errorf("project name = %q", meta.ProjectName)
	}
	for _, c := range core.CountableCategories() {
		if meta.ArtifactCount[string(c)] != 0 {
			t.Errorf("counter %s should start at zero", c)
		}
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	root := t.TempDir()
	s1, err := Open(root)
	if err != nil {
		t.Fatal(err)
	}
	if err := s1.UpdatePhase("design"); err != nil {
		t.Fatal(err)
	}

	// A second Open against the same root must not reinitialize.
	s2, err := Open(root)
	if err != nil {
		t.Fatal(err)
	}
	meta, err := s2.Meta()
	if err != nil {
		t.Fatal(err)
	}
	if meta.CurrentPhase != "design" {
		t.Errorf("reopen reset the phase to %q", meta.CurrentPhase)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := setupStore(t)

	content := "# PRD\n\nThe product does things."
	metadata := map[string]interface{}{"status": "draft", "author": "pm"}

	location, err := s.SaveArtifact("prd/main.md", content, metadata)
	if err != nil {
		t.Fatalf("SaveArtifact: %v", err)
	}
	if !filepath.IsAbs(location) {
		t.Errorf("location should be absolute: %s", location)
	}

	artifact, err := s.LoadArtifact("prd/main.md")
	if err != nil {
		t.Fatalf("LoadArtifact: %v", err)
	}
	if artifact.Content != content {
		t.Errorf("content = %q, want %q", artifact.Content, content)
	}

	// Metadata round-trips as a superset of the caller's keys.
	if artifact.Metadata["status"] != "draft" || artifact.Metadata["author"] != "pm" {
		t.Errorf("caller metadata lost: %v", artifact.Metadata)
	}
	if artifact.Metadata["created_at"] == "" || artifact.Metadata["updated_at"] == "" {
		t.Errorf("timestamps missing: %v", artifact.Metadata)
	}
}

func TestSavePreservesCreatedAt(t *testing.T) {
	current := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	s, err := Open(t.TempDir(), WithClock(func() time.Time { return current }))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.SaveArtifact("prd/main.md", "v1", map[string]interface{}{}); err != nil {
		t.Fatal(err)
	}
	first, _ := s.LoadArtifact("prd/main.md")

	// Resave carrying the loaded metadata forward: created_at is
	// already present, so only updated_at refreshes.
	current = current.Add(time.Hour)
	if _, err := s.SaveArtifact("prd/main.md", "v2", first.Metadata); err != nil {
		t.Fatal(err)
	}
	second, _ := s.LoadArtifact("prd/main.md")

	if second.Content != "v2" {
		t.Errorf("overwrite lost content: %q", second.Content)
	}
	if second.Metadata["created_at"] != first.Metadata["created_at"] {
		t.Error("created_at present in metadata must not be overwritten")
	}
	if second.Metadata["updated_at"] == first.Metadata["created_at"] {
		t.Error("updated_at must refresh on overwrite")
	}
}

func TestSaveWithoutMetadataWritesRaw(t *testing.T) {
	s := setupStore(t)

	if _, err := s.SaveArtifact("decisions/raw.md", "no block here", nil); err != nil {
		t.Fatal(err)
	}
	artifact, err := s.LoadArtifact("decisions/raw.md")
	if err != nil {
		t.Fatal(err)
	}
	if artifact.Content != "no block here" {
		t.Errorf("content = %q", artifact.Content)
	}
	if len(artifact.Metadata) != 0 {
		t.Errorf("expected empty metadata, got %v", artifact.Metadata)
	}
}

func TestLoadMissingArtifact(t *testing.T) {
	s := setupStore(t)
	_, err := s.LoadArtifact("prd/nope.md")
	if !core.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestLoadMalformedFrontmatterDegrades(t *testing.T) {
	s := setupStore(t)

	raw := "---\n{broken: [\n---\n\nbody"
	path := filepath.Join(s.Dir(), "prd", "broken.md")
	if err := os.WriteFile(path, []byte(raw), 0o640); err != nil {
		t.Fatal(err)
	}

	artifact, err := s.LoadArtifact("prd/broken.md")
	if err != nil {
		t.Fatalf("malformed frontmatter must not fail the load: %v", err)
	}
	if artifact.Content != raw {
		t.Errorf("content should degrade to raw text, got %q", artifact.Content)
	}
	if len(artifact.Metadata) != 0 {
		t.Errorf("metadata should be empty, got %v", artifact.Metadata)
	}
}

func TestPathEscapeRejected(t *testing.T) {
	s := setupStore(t)

	for _, rel := range []string{"../outside.md", "prd/../../outside.md", "/etc/passwd"} {
		if _, err := s.SaveArtifact(rel, "x", nil); !core.IsCategory(err, core.ErrCatValidation) {
			t.Errorf("SaveArtifact(%q) should reject escape, got %v", rel, err)
		}
		if _, err := s.LoadArtifact(rel); !core.IsCategory(err, core.ErrCatValidation) {
			t.Errorf("LoadArtifact(%q) should reject escape, got %v", rel, err)
		}
	}
}

func TestCounterInvariant(t *testing.T) {
	s := setupStore(t)

	// N saves, M deletes: counter ends at N-M.
	files := []string{"stories/a.md", "stories/b.md", "stories/c.md"}
	for _, f := range files {
		if _, err := s.SaveArtifact(f, "story", map[string]interface{}{}); err != nil {
			t.Fatal(err)
		}
	}
	if !s.DeleteArtifact("stories/a.md") {
		t.Fatal("delete should report true")
	}

	meta, err := s.Meta()
	if err != nil {
		t.Fatal(err)
	}
	if meta.ArtifactCount["stories"] != 2 {
		t.Errorf("stories counter = %d, want 2", meta.ArtifactCount["stories"])
	}

	// Deleting a file that was never counted clamps at zero rather
	// than going negative.
	path := filepath.Join(s.Dir(), "stories", "ghost.md")
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("ghost"), 0o640); err != nil {
			t.Fatal(err)
		}
		s.DeleteArtifact("stories/ghost.md")
	}
	meta, _ = s.Meta()
	if meta.ArtifactCount["stories"] < 0 {
		t.Errorf("counter went negative: %d", meta.ArtifactCount["stories"])
	}
}

func TestDeleteMissingReturnsFalse(t *testing.T) {
	s := setupStore(t)
	if s.DeleteArtifact("prd/never-existed.md") {
		t.Error("deleting a missing artifact should return false")
	}
}

func TestUpdatePhaseFirstSeenWins(t *testing.T) {
	current := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	s, err := Open(t.TempDir(), WithClock(func() time.Time { return current }))
	if err != nil {
		t.Fatal(err)
	}

	if err := s.UpdatePhase("architecture_completed"); err != nil {
		t.Fatal(err)
	}
	meta, _ := s.Meta()
	firstStamp := meta.PhaseStartedAt["phase_architecture_completed_started_at"]
	if firstStamp == "" {
		t.Fatal("phase start timestamp missing")
	}

	current = current.Add(2 * time.Hour)
	if err := s.UpdatePhase("review"); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdatePhase("architecture_completed"); err != nil {
		t.Fatal(err)
	}

	meta, _ = s.Meta()
	if meta.CurrentPhase != "architecture_completed" {
		t.Errorf("current phase = %q", meta.CurrentPhase)
	}
	if got := meta.PhaseStartedAt["phase_architecture_completed_started_at"]; got != firstStamp {
		t.Errorf("re-entering a phase reset its start time: %q vs %q", got, firstStamp)
	}
	if len(meta.PhaseStartedAt) != 2 {
		t.Errorf("expected exactly two phase keys, got %v", meta.PhaseStartedAt)
	}
}

func TestMetaReturnsCopy(t *testing.T) {
	s := setupStore(t)
	meta, err := s.Meta()
	if err != nil {
		t.Fatal(err)
	}
	meta.ArtifactCount["prd"] = 999

	fresh, _ := s.Meta()
	if fresh.ArtifactCount["prd"] == 999 {
		t.Error("Meta must return an isolated copy")
	}
}

func TestConcurrentSaves(t *testing.T) {
	s := setupStore(t)

	done := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func(n int) {
			_, err := s.SaveArtifact("ideation/note.md", "racing", map[string]interface{}{})
			done <- err
		}(i)
	}
	for i := 0; i < 10; i++ {
		if err := <-done; err != nil {
			t.Fatalf("concurrent save failed: %v", err)
		}
	}

	meta, err := s.Meta()
	if err != nil {
		t.Fatal(err)
	}
	// Same path saved ten times still counts ten increments; the
	// counter tracks save operations, not distinct files.
	if meta.ArtifactCount["ideation"] != 10 {
		t.Errorf("ideation counter = %d, want 10", meta.ArtifactCount["ideation"])
	}
}
