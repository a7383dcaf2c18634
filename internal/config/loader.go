package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file, environment, and defaults.
// An empty cfgFile means the standard search path: .docgate/config.yaml
// in the current directory, then $HOME/.config/docgate.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("project_root", defaults.ProjectRoot)
	v.SetDefault("checklist_dir", defaults.ChecklistDir)
	v.SetDefault("template_dir", defaults.TemplateDir)
	v.SetDefault("default_mode", defaults.DefaultMode)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("server.addr", defaults.Server.Addr)
	v.SetDefault("server.allowed_origins", defaults.Server.AllowedOrigins)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".docgate")
		v.AddConfigPath("$HOME/.config/docgate")
	}

	v.SetEnvPrefix("DOCGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
