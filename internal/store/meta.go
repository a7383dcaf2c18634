package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hugo-lorenzo-mato/docgate/internal/core"
)

// readMeta loads the ProjectMeta singleton. Callers hold the lock.
func (s *Store) readMeta() (*core.ProjectMeta, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, metaFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.ErrNotFound("project metadata", metaFile)
		}
		return nil, core.ErrStorage(core.CodeReadFailed, "reading project metadata").WithCause(err)
	}

	meta := &core.ProjectMeta{}
	if err := json.Unmarshal(data, meta); err != nil {
		return nil, core.ErrState(core.CodeMetaCorrupted, "project metadata is not valid JSON").WithCause(err)
	}
	if meta.ArtifactCount == nil {
		meta.ArtifactCount = make(map[string]int)
	}
	if meta.ArtifactPaths == nil {
		meta.ArtifactPaths = make(map[string]string)
	}
	return meta, nil
}

// writeMeta persists the ProjectMeta singleton atomically. Callers
// hold the lock.
func (s *Store) writeMeta(meta *core.ProjectMeta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return core.ErrState(core.CodeMetaCorrupted, "encoding project metadata").WithCause(err)
	}
	if err := atomicWriteFile(filepath.Join(s.dir, metaFile), data, 0o640); err != nil {
		return core.ErrStorage(core.CodeWriteFailed, "writing project metadata").WithCause(err)
	}
	return nil
}

// Meta returns a copy of the current project metadata.
func (s *Store) Meta() (*core.ProjectMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meta, err := s.readMeta()
	if err != nil {
		return nil, err
	}
	return meta.Clone(), nil
}

// UpdatePhase sets the current project phase and records when the
// phase was first entered. Re-entering a phase keeps the original
// start timestamp.
func (s *Store) UpdatePhase(phase string) error {
	if phase == "" {
		return core.ErrValidation("EMPTY_PHASE", "phase name must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	meta, err := s.readMeta()
	if err != nil {
		return err
	}

	now := core.Timestamp(s.now())
	meta.CurrentPhase = phase
	meta.UpdatedAt = now

	if meta.PhaseStartedAt == nil {
		meta.PhaseStartedAt = make(map[string]string)
	}
	key := fmt.Sprintf("phase_%s_started_at", phase)
	if _, seen := meta.PhaseStartedAt[key]; !seen {
		meta.PhaseStartedAt[key] = now
	}

	if err := s.writeMeta(meta); err != nil {
		return err
	}
	s.logger.Info("project phase updated", "phase", phase)
	return nil
}

// adjustCount shifts the counter for the artifact's category, clamped
// at zero. Categories outside the counter map are ignored. Callers
// hold the lock.
func (s *Store) adjustCount(rel string, delta int) error {
	category := string(core.CategoryOf(filepath.ToSlash(rel)))

	meta, err := s.readMeta()
	if err != nil {
		return err
	}

	current, tracked := meta.ArtifactCount[category]
	if !tracked {
		return nil
	}

	next := current + delta
	if next < 0 {
		next = 0
	}
	meta.ArtifactCount[category] = next
	meta.UpdatedAt = core.Timestamp(s.now())
	return s.writeMeta(meta)
}
