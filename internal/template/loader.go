// Package template catalogs the document templates handed to the
// external generation collaborator. Templates are plain markdown and
// docgate never interprets their contents.
package template

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hugo-lorenzo-mato/docgate/internal/core"
	"github.com/hugo-lorenzo-mato/docgate/internal/logging"
)

// Loader loads templates from a source directory, caching contents by
// name per instance.
type Loader struct {
	dir    string
	mu     sync.RWMutex
	cache  map[string]string
	logger *logging.Logger
}

// LoaderOption configures the loader.
type LoaderOption func(*Loader)

// WithLogger sets the loader logger.
func WithLogger(logger *logging.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a loader for the given template directory.
func NewLoader(dir string, opts ...LoaderOption) *Loader {
	l := &Loader{
		dir:    dir,
		cache:  make(map[string]string),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the named template's content.
func (l *Loader) Load(name string) (string, error) {
	l.mu.RLock()
	cached, ok := l.cache[name]
	l.mu.RUnlock()
	if ok {
		return cached, nil
	}

	data, err := os.ReadFile(l.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			nf := core.ErrNotFound("template", name)
			nf.Code = core.CodeTemplateNotFound
			return "", nf
		}
		return "", core.ErrStorage(core.CodeReadFailed,
			fmt.Sprintf("reading template %s", name)).WithCause(err)
	}

	content := string(data)
	l.mu.Lock()
	l.cache[name] = content
	l.mu.Unlock()

	l.logger.Debug("template loaded", "template", name)
	return content, nil
}

// List returns available template file names.
func (l *Loader) List() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, core.ErrStorage(core.CodeReadFailed, "listing templates").WithCause(err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Path returns the full path of a template file.
func (l *Loader) Path(name string) string {
	return filepath.Join(l.dir, name)
}

// ClearCache drops all cached templates.
func (l *Loader) ClearCache() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]string)
}
