package core

import (
	"sort"
	"strings"
	"time"
)

// ArtifactCategory is the top-level directory an artifact lives under.
type ArtifactCategory string

const (
	CategoryPRD          ArtifactCategory = "prd"
	CategoryStories      ArtifactCategory = "stories"
	CategoryArchitecture ArtifactCategory = "architecture"
	CategoryDecisions    ArtifactCategory = "decisions"
	CategoryIdeation     ArtifactCategory = "ideation"
	CategoryChecklists   ArtifactCategory = "checklists"
	CategoryTemplates    ArtifactCategory = "templates"
	CategoryRoot         ArtifactCategory = "root" // files directly under the store root
)

// CountableCategories returns the categories tracked by the per-project
// artifact counters, in a stable order.
func CountableCategories() []ArtifactCategory {
	return []ArtifactCategory{
		CategoryPRD,
		CategoryStories,
		CategoryArchitecture,
		CategoryDecisions,
		CategoryIdeation,
		CategoryChecklists,
	}
}

// CategoryOf derives the artifact category from a relative path.
// The first path segment names the category; bare filenames are "root".
func CategoryOf(rel string) ArtifactCategory {
	rel = strings.TrimPrefix(rel, "./")
	if i := strings.IndexAny(rel, `/\`); i > 0 {
		return ArtifactCategory(rel[:i])
	}
	return CategoryRoot
}

// Artifact is a loaded document plus its parsed metadata.
type Artifact struct {
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata"`
	Path     string                 `json:"path"` // absolute location on disk
}

// ArtifactSummary is one row of a store listing.
type ArtifactSummary struct {
	Path      string           `json:"path"` // relative to the store root
	Category  ArtifactCategory `json:"type"`
	Status    string           `json:"status"`
	CreatedAt string           `json:"created_at"`
	UpdatedAt string           `json:"updated_at"`
}

// SortSummaries orders summaries by updated_at descending. Timestamps
// are RFC 3339 strings, so lexicographic comparison is chronological.
func SortSummaries(items []ArtifactSummary) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UpdatedAt > items[j].UpdatedAt
	})
}

// ProjectMeta is the singleton metadata record for one project store.
type ProjectMeta struct {
	ProjectName   string            `json:"project_name"`
	SchemaVersion string            `json:"schema_version"`
	CreatedAt     string            `json:"created_at"`
	UpdatedAt     string            `json:"updated_at"`
	CurrentPhase  string            `json:"current_phase"`
	ArtifactPaths map[string]string `json:"artifact_paths"`
	ArtifactCount map[string]int    `json:"artifact_count"`

	// PhaseStartedAt records the first time each phase was entered,
	// keyed as phase_<name>_started_at. Keys are only ever added.
	PhaseStartedAt map[string]string `json:"phase_started_at,omitempty"`
}

// Clone returns a deep copy so callers cannot mutate store state.
func (m *ProjectMeta) Clone() *ProjectMeta {
	clone := *m
	clone.ArtifactPaths = make(map[string]string, len(m.ArtifactPaths))
	for k, v := range m.ArtifactPaths {
		clone.ArtifactPaths[k] = v
	}
	clone.ArtifactCount = make(map[string]int, len(m.ArtifactCount))
	for k, v := range m.ArtifactCount {
		clone.ArtifactCount[k] = v
	}
	if m.PhaseStartedAt != nil {
		clone.PhaseStartedAt = make(map[string]string, len(m.PhaseStartedAt))
		for k, v := range m.PhaseStartedAt {
			clone.PhaseStartedAt[k] = v
		}
	}
	return &clone
}

// Timestamp formats a time the way all store metadata records it.
func Timestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

// InitialPhase is the phase a freshly initialized project starts in.
const InitialPhase = "initialization"

// MetaSchemaVersion identifies the project_meta.json layout.
const MetaSchemaVersion = "1.0"
