package config

import (
	"fmt"

	"github.com/hugo-lorenzo-mato/docgate/internal/core"
)

// Config is the full docgate configuration.
type Config struct {
	// ProjectRoot is the directory whose .docgate workspace is used.
	ProjectRoot string `mapstructure:"project_root"`

	// ChecklistDir is where checklist markdown sources live.
	ChecklistDir string `mapstructure:"checklist_dir"`

	// TemplateDir is where document templates live.
	TemplateDir string `mapstructure:"template_dir"`

	// DefaultMode is the validation mode used when none is given.
	DefaultMode string `mapstructure:"default_mode"`

	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		ProjectRoot:  ".",
		ChecklistDir: "checklists",
		TemplateDir:  "templates",
		DefaultMode:  string(core.ModeStandard),
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:8675",
			AllowedOrigins: []string{"http://localhost:*"},
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.ProjectRoot == "" {
		return fmt.Errorf("project_root must not be empty")
	}
	if c.ChecklistDir == "" {
		return fmt.Errorf("checklist_dir must not be empty")
	}
	if _, err := core.ParseMode(c.DefaultMode); err != nil {
		return fmt.Errorf("default_mode: %w", err)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	switch c.Log.Format {
	case "auto", "text", "json":
	default:
		return fmt.Errorf("log.format %q is not one of auto, text, json", c.Log.Format)
	}
	return nil
}
