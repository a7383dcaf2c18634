package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/docgate/internal/checklist"
	"github.com/hugo-lorenzo-mato/docgate/internal/config"
	"github.com/hugo-lorenzo-mato/docgate/internal/history"
	"github.com/hugo-lorenzo-mato/docgate/internal/logging"
	"github.com/hugo-lorenzo-mato/docgate/internal/store"
	"github.com/hugo-lorenzo-mato/docgate/internal/template"
)

const historyFile = "history.db"

// app bundles the wired components most commands need.
type app struct {
	cfg        *config.Config
	logger     *logging.Logger
	store      *store.Store
	checklists *checklist.Loader
	templates  *template.Loader
}

// loadConfig loads the configuration and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	flags := rootCmd.PersistentFlags()
	if flags.Changed("project-root") {
		cfg.ProjectRoot = projectRoot
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}

	return cfg, nil
}

// newApp wires the store and catalogs for the configured project root.
func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	st, err := store.Open(cfg.ProjectRoot, store.WithLogger(logger.WithComponent("store")))
	if err != nil {
		return nil, fmt.Errorf("opening artifact store: %w", err)
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		store:  st,
		checklists: checklist.NewLoader(resolveDir(cfg.ProjectRoot, cfg.ChecklistDir),
			checklist.WithLogger(logger.WithComponent("checklist"))),
		templates: template.NewLoader(resolveDir(cfg.ProjectRoot, cfg.TemplateDir),
			template.WithLogger(logger.WithComponent("template"))),
	}, nil
}

// openHistory opens the execution history database inside the workspace.
func (a *app) openHistory() (*history.DB, error) {
	return history.Open(filepath.Join(a.store.Dir(), historyFile))
}

// resolveDir resolves a possibly relative directory against the project root.
func resolveDir(root, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}

// say prints user-facing progress output unless --quiet is set.
func say(cmd *cobra.Command, format string, args ...interface{}) {
	if quiet {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}
