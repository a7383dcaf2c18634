package checklist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/hugo-lorenzo-mato/docgate/internal/core"
	"github.com/hugo-lorenzo-mato/docgate/internal/logging"
)

// Loader loads checklists from a source directory and caches parsed
// results by name for its own lifetime. The cache is per instance, so
// tests can construct isolated loaders.
type Loader struct {
	dir    string
	mu     sync.RWMutex
	cache  map[string]*core.Checklist
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

// NewLoader creates a loader for the given checklist source directory.
func NewLoader(dir string, opts ...LoaderOption) *Loader {
	l := &Loader{
		dir:    dir,
		cache:  make(map[string]*core.Checklist),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the parsed checklist for name, reading and parsing the
// source file on the first call and serving a deep copy of the cached
// value afterward.
func (l *Loader) Load(name string) (*core.Checklist, error) {
	l.mu.RLock()
	cached, ok := l.cache[name]
	l.mu.RUnlock()
	if ok {
		return cached.Clone(), nil
	}

	path := filepath.Join(l.dir, name+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			nf := core.ErrNotFound("checklist", name)
			nf.Code = core.CodeChecklistNotFound
			if suggestion := l.suggest(name); suggestion != "" {
				nf.Message = fmt.Sprintf("%s (did you mean %q?)", nf.Message, suggestion)
				nf = nf.WithDetail("suggestion", suggestion)
			}
			return nil, nf
		}
		return nil, core.ErrStorage(core.CodeReadFailed,
			fmt.Sprintf("reading checklist %s", name)).WithCause(err)
	}

	parsed := Parse(string(data), name)

	l.mu.Lock()
	l.cache[name] = parsed
	l.mu.Unlock()

	l.logger.Debug("checklist loaded",
		"checklist", name,
		"sections", len(parsed.Sections),
		"items", parsed.TotalItems)

	return parsed.Clone(), nil
}

// List returns the names of available checklists, sorted by the
// filesystem's directory order.
func (l *Loader) List() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, core.ErrStorage(core.CodeReadFailed, "listing checklists").WithCause(err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".md"))
	}
	return names, nil
}

// ClearCache drops all cached checklists.
func (l *Loader) ClearCache() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]*core.Checklist)
}

// suggest returns the closest known checklist name, or empty when
// nothing is close enough to be useful.
func (l *Loader) suggest(name string) string {
	names, err := l.List()
	if err != nil || len(names) == 0 {
		return ""
	}
	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		return ""
	}
	return names[matches[0].Index]
}
