// Package config loads gitbind settings.
//
// Values are layered, later sources overriding earlier ones:
//
//  1. Built-in defaults
//  2. A TOML file (gitbind.toml in the working directory unless a path is given)
//  3. GITBIND_* environment variables, e.g. GITBIND_LOG_LEVEL=debug
package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	platformerrors "github.com/jmgilman/gitbind/errors"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// DefaultFile is read from the working directory when no path is given.
	// A missing default file is not an error.
	DefaultFile = "gitbind.toml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "GITBIND_"
)

// Config is the complete gitbind configuration.
type Config struct {
	// Repository is the path of the repository commands operate on.
	Repository string `koanf:"repository"`

	Log   LogConfig   `koanf:"log"`
	Retry RetryConfig `koanf:"retry"`
}

// LogConfig selects the log handler.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `koanf:"level"`

	// Format is text or json.
	Format string `koanf:"format"`
}

// RetryConfig bounds retries of transient failures.
type RetryConfig struct {
	Attempts uint          `koanf:"attempts"`
	Delay    time.Duration `koanf:"delay"`
}

// Defaults returns the built-in configuration.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"repository":     ".",
		"log.level":      "info",
		"log.format":     "text",
		"retry.attempts": 3,
		"retry.delay":    "100ms",
	}
}

// Load builds the configuration from defaults, the TOML file at path and
// the environment. An empty path reads DefaultFile if it exists; an explicit
// path must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, platformerrors.Wrap(err, platformerrors.CodeInvalidConfig, "failed to load defaults")
	}

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, platformerrors.WrapWithContext(err, platformerrors.CodeInvalidConfig,
				"failed to read config file", map[string]interface{}{"path": path})
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKey,
		EnvironFunc:   os.Environ,
	}), nil); err != nil {
		return nil, platformerrors.Wrap(err, platformerrors.CodeInvalidConfig, "failed to read environment")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, platformerrors.Wrap(err, platformerrors.CodeInvalidConfig, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps GITBIND_LOG_LEVEL to log.level.
func envKey(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return strings.ReplaceAll(key, "_", "."), value
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return platformerrors.Newf(platformerrors.CodeInvalidConfig,
			"invalid log format %q: must be text or json", c.Log.Format)
	}
	if c.Retry.Attempts == 0 {
		return platformerrors.New(platformerrors.CodeInvalidConfig, "retry.attempts must be at least 1")
	}
	if c.Retry.Delay < 0 {
		return platformerrors.New(platformerrors.CodeInvalidConfig, "retry.delay must not be negative")
	}
	return nil
}
