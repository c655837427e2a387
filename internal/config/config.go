// Package config loads lovegraph settings from defaults, an optional YAML
// file and LOVEGRAPH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

const envPrefix = "LOVEGRAPH"

// Graph backends
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds the resolved settings
type Config struct {
	LogLevel     string
	GraphBackend string
	PromptBanner bool
}

// Level parses LogLevel.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.WarnLevel
	}
	return lvl
}

// Load reads configuration. An explicit path must exist; otherwise
// $HOME/.lovegraph/config.yml is used when present.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("log.level", "warn")
	v.SetDefault("graph.backend", BackendMemory)
	v.SetDefault("prompt.banner", false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.AddConfigPath(filepath.Join(home, ".lovegraph"))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := &Config{
		LogLevel:     strings.ToLower(v.GetString("log.level")),
		GraphBackend: strings.ToLower(v.GetString("graph.backend")),
		PromptBanner: v.GetBool("prompt.banner"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log.level %q: %w", c.LogLevel, err)
	}
	switch c.GraphBackend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("invalid graph.backend %q (want %s or %s)", c.GraphBackend, BackendMemory, BackendSQLite)
	}
	return nil
}
