package infra

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
)

// EnvHomebrewPrefix overrides the configured prefix.
const EnvHomebrewPrefix = "HOMEBREW_PREFIX"

// Duration lets TOML carry durations as strings such as "5s".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a time.ParseDuration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Config is the optional config.toml.
type Config struct {
	Prefix              string   `toml:"prefix"`
	ProcessQueryTimeout Duration `toml:"process_query_timeout"`
	LogLevel            string   `toml:"log_level"`
}

// DefaultPrefix returns the stock Homebrew prefix for a platform.
func DefaultPrefix(goos, goarch string) string {
	switch goos {
	case "darwin":
		if goarch == "arm64" {
			return "/opt/homebrew"
		}
		return "/usr/local"
	case "linux":
		return "/home/linuxbrew/.linuxbrew"
	default:
		return "/usr/local"
	}
}

// LoadConfig reads path on top of the platform defaults. A missing file is
// not an error. $HOMEBREW_PREFIX wins over the file.
func LoadConfig(path string, env domain.Environment, goos, goarch string) (*Config, error) {
	cfg := &Config{
		Prefix:              DefaultPrefix(goos, goarch),
		ProcessQueryTimeout: Duration{DefaultProcessQueryTimeout},
		LogLevel:            "info",
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if prefix, ok := lookupNonEmpty(env, EnvHomebrewPrefix); ok {
		cfg.Prefix = prefix
	}
	if cfg.ProcessQueryTimeout.Duration <= 0 {
		cfg.ProcessQueryTimeout.Duration = DefaultProcessQueryTimeout
	}
	return cfg, nil
}
