package store

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hugo-lorenzo-mato/docgate/internal/core"
)

// listConcurrency bounds how many artifacts are read in parallel
// during a listing.
const listConcurrency = 8

// ListArtifacts scans the workspace (or one category subtree) for
// markdown artifacts, loads each one's metadata, optionally filters by
// status, and returns summaries sorted by updated_at descending.
// Per-file load failures are logged and skipped.
func (s *Store) ListArtifacts(category, status string) ([]core.ArtifactSummary, error) {
	searchDir := s.dir
	if category != "" {
		searchDir = filepath.Join(s.dir, category)
		if _, err := os.Stat(searchDir); os.IsNotExist(err) {
			return nil, nil
		}
	}

	var paths []string
	err := filepath.WalkDir(searchDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), docExt) {
			return nil
		}
		rel, relErr := filepath.Rel(s.dir, path)
		if relErr != nil {
			return relErr
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, core.ErrStorage(core.CodeReadFailed, "scanning workspace").WithCause(err)
	}

	var (
		mu        sync.Mutex
		summaries []core.ArtifactSummary
	)

	g := &errgroup.Group{}
	g.SetLimit(listConcurrency)
	for _, rel := range paths {
		g.Go(func() error {
			artifact, loadErr := s.LoadArtifact(rel)
			if loadErr != nil {
				s.logger.Warn("skipping unreadable artifact", "artifact", rel, "error", loadErr)
				return nil
			}

			summary := core.ArtifactSummary{
				Path:      rel,
				Category:  core.CategoryOf(rel),
				Status:    metaString(artifact.Metadata, "status", "unknown"),
				CreatedAt: metaString(artifact.Metadata, "created_at", ""),
				UpdatedAt: metaString(artifact.Metadata, "updated_at", ""),
			}

			if status != "" && summary.Status != status {
				return nil
			}

			mu.Lock()
			summaries = append(summaries, summary)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	core.SortSummaries(summaries)
	return summaries, nil
}

func metaString(m map[string]interface{}, key, fallback string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
