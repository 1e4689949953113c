// Package config loads server settings from a YAML file and the
// environment. Environment variables use the DATABRIDGE_ prefix and
// override file values.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Connection describes a database to register at startup.
type Connection struct {
	Name string `mapstructure:"name"`
	Type string `mapstructure:"type"`
	DSN  string `mapstructure:"dsn"`
}

// Config is the full server configuration.
type Config struct {
	Listen      string        `mapstructure:"listen"`
	LogLevel    string        `mapstructure:"log_level"`
	Timeout     time.Duration `mapstructure:"timeout"`
	BackupDir   string        `mapstructure:"backup_dir"`
	ExportDir   string        `mapstructure:"export_dir"`
	Connections []Connection  `mapstructure:"connections"`
}

// Load reads the configuration. With an empty path it looks for
// databridge.yaml in the working directory and treats a missing file as
// all-defaults; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("listen", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("timeout", "30s")
	v.SetDefault("backup_dir", "backups")
	v.SetDefault("export_dir", "exports")

	v.SetEnvPrefix("DATABRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("databridge")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// The server always comes up with a local scratch database, matching
	// the behavior users of the original tool rely on.
	if len(cfg.Connections) == 0 {
		cfg.Connections = []Connection{
			{Name: "default", Type: "sqlite", DSN: "file:databridge.db"},
		}
	}
	return &cfg, nil
}
