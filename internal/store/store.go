// Package store persists generated documents with metadata under a
// project-local .docgate directory and tracks project lifecycle phase.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hugo-lorenzo-mato/docgate/internal/core"
	"github.com/hugo-lorenzo-mato/docgate/internal/logging"
)

const (
	// DirName is the workspace directory created under the project root.
	DirName = ".docgate"

	// metaFile holds the ProjectMeta singleton.
	metaFile = "project_meta.json"

	// docExt marks artifacts that carry a metadata block.
	docExt = ".md"
)

// Store owns the on-disk artifact tree for one project root. All
// mutating operations serialize behind a single mutex; two Store
// instances pointed at the same root can still corrupt the counters,
// which is a known limitation.
type Store struct {
	root   string // project root
	dir    string // root/.docgate
	mu     sync.Mutex
	logger *logging.Logger
	now    func() time.Time
}

// Option configures the store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock overrides the clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open creates a store for the given project root and synchronously
// ensures the directory structure and metadata exist before the store
// is handed to any caller.
func Open(projectRoot string, opts ...Option) (*Store, error) {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, core.ErrValidation(core.CodeInvalidPath,
			fmt.Sprintf("resolving project root %s", projectRoot)).WithCause(err)
	}

	s := &Store{
		root:   abs,
		dir:    filepath.Join(abs, DirName),
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.ensureStructure(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the workspace directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Root returns the project root directory path.
func (s *Store) Root() string {
	return s.root
}

// ensureStructure idempotently creates the category subdirectories and
// initializes project metadata when absent.
func (s *Store) ensureStructure() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dirs := []string{s.dir}
	for _, c := range core.CountableCategories() {
		dirs = append(dirs, filepath.Join(s.dir, string(c)))
	}
	dirs = append(dirs, filepath.Join(s.dir, string(core.CategoryTemplates)))

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return core.ErrStorage(core.CodeWriteFailed,
				fmt.Sprintf("creating directory %s", dir)).WithCause(err)
		}
	}

	metaPath := filepath.Join(s.dir, metaFile)
	if _, err := os.Stat(metaPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return core.ErrStorage(core.CodeReadFailed, "checking project metadata").WithCause(err)
	}

	now := core.Timestamp(s.now())
	meta := &core.ProjectMeta{
		ProjectName:   filepath.Base(s.root),
		SchemaVersion: core.MetaSchemaVersion,
		CreatedAt:     now,
		UpdatedAt:     now,
		CurrentPhase:  core.InitialPhase,
		ArtifactPaths: make(map[string]string),
		ArtifactCount: make(map[string]int),
	}
	for _, c := range core.CountableCategories() {
		meta.ArtifactPaths[string(c)] = string(c) + "/"
		meta.ArtifactCount[string(c)] = 0
	}

	if err := s.writeMeta(meta); err != nil {
		return err
	}
	s.logger.Info("initialized project workspace", "project", meta.ProjectName, "dir", s.dir)
	return nil
}

// resolve turns a relative artifact path into an absolute one,
// rejecting anything that would escape the workspace directory.
func (s *Store) resolve(rel string) (string, error) {
	if rel == "" {
		return "", core.ErrValidation(core.CodeInvalidPath, "artifact path must not be empty")
	}
	if filepath.IsAbs(rel) {
		return "", core.ErrValidation(core.CodeInvalidPath,
			"artifact path must be relative to the workspace").WithDetail("path", rel)
	}

	full := filepath.Join(s.dir, filepath.FromSlash(rel))
	cleaned := filepath.Clean(full)
	if cleaned != s.dir && !strings.HasPrefix(cleaned, s.dir+string(filepath.Separator)) {
		return "", core.ErrValidation(core.CodeInvalidPath,
			"artifact path escapes the workspace").WithDetail("path", rel)
	}
	return cleaned, nil
}

// SaveArtifact writes content to rel under the workspace, creating
// parent directories as needed, and returns the absolute location.
// Markdown artifacts with metadata are written as a metadata block
// followed by the content; created_at is set only when absent and
// updated_at is always refreshed. The category counter increments
// only after the write succeeds.
func (s *Store) SaveArtifact(rel, content string, metadata map[string]interface{}) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	full, err := s.resolve(rel)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return "", core.ErrStorage(core.CodeWriteFailed,
			fmt.Sprintf("creating parent directory for %s", rel)).WithCause(err)
	}

	fileContent := content
	if metadata != nil && strings.HasSuffix(rel, docExt) {
		now := core.Timestamp(s.now())
		if _, ok := metadata["created_at"]; !ok {
			metadata["created_at"] = now
		}
		metadata["updated_at"] = now
		fileContent = FromMap(metadata).Render() + content
	}

	if err := atomicWriteFile(full, []byte(fileContent), 0o640); err != nil {
		return "", core.ErrStorage(core.CodeWriteFailed,
			fmt.Sprintf("writing artifact %s", rel)).WithCause(err)
	}

	// Counter updates follow the content write so a failed write never
	// leaves a phantom count behind.
	if err := s.adjustCount(rel, +1); err != nil {
		s.logger.Warn("artifact saved but counter update failed", "artifact", rel, "error", err)
	}

	s.logger.Info("artifact saved", "artifact", rel)
	return full, nil
}

// LoadArtifact reads an artifact and separates its metadata block from
// the content. A malformed metadata block degrades to the raw text
// with empty metadata.
func (s *Store) LoadArtifact(rel string) (*core.Artifact, error) {
	full, err := s.resolve(rel)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			nf := core.ErrNotFound("artifact", rel)
			nf.Code = core.CodeArtifactNotFound
			return nil, nf
		}
		return nil, core.ErrStorage(core.CodeReadFailed,
			fmt.Sprintf("reading artifact %s", rel)).WithCause(err)
	}

	raw := string(data)
	artifact := &core.Artifact{
		Content:  raw,
		Metadata: map[string]interface{}{},
		Path:     full,
	}

	if strings.HasSuffix(rel, docExt) {
		meta, content, splitErr := SplitDocument(raw)
		if splitErr != nil {
			s.logger.Warn("malformed metadata block, treating artifact as raw text",
				"artifact", rel, "error", splitErr)
			return artifact, nil
		}
		if meta != nil {
			artifact.Metadata = meta
			artifact.Content = content
		}
	}

	return artifact, nil
}

// DeleteArtifact removes an artifact if present and reports whether a
// deletion occurred. Missing files and underlying I/O failures both
// return false; only the latter is logged as an error.
func (s *Store) DeleteArtifact(rel string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	full, err := s.resolve(rel)
	if err != nil {
		s.logger.Error("delete rejected", "artifact", rel, "error", err)
		return false
	}

	if _, err := os.Stat(full); err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error("delete failed", "artifact", rel, "error", err)
		}
		return false
	}

	if err := os.Remove(full); err != nil {
		s.logger.Error("delete failed", "artifact", rel, "error", err)
		return false
	}

	if err := s.adjustCount(rel, -1); err != nil {
		s.logger.Warn("artifact deleted but counter update failed", "artifact", rel, "error", err)
	}

	s.logger.Info("artifact deleted", "artifact", rel)
	return true
}
