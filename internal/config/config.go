// Package config loads the optional regionviz configuration file.
//
// Settings come from a TOML file, looked up as ./regionviz.toml first and
// then $XDG_CONFIG_HOME/regionviz/config.toml. Every setting has a
// sensible default and command-line flags override file values, so the
// file is entirely optional:
//
//	only_simple_regions = true
//
//	[cache]
//	backend = "redis"       # "file", "redis", or "off"
//	redis_addr = "localhost:6379"
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/regionviz/pkg/errors"
)

// Cache backend names accepted in the configuration file.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendOff   = "off"
)

// Config holds all file-configurable settings.
type Config struct {
	// OnlySimpleRegions restricts the filled cluster style to simple
	// regions by default; the --only-simple flag enables it per run.
	OnlySimpleRegions bool `toml:"only_simple_regions"`

	Cache CacheConfig `toml:"cache"`
}

// CacheConfig selects and parameterizes the artifact cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
}

// Default returns the configuration used when no file is present:
// file-backed cache under the user cache directory.
func Default() Config {
	return Config{
		Cache: CacheConfig{
			Backend:   BackendFile,
			Dir:       defaultCacheDir(),
			RedisAddr: "localhost:6379",
		},
	}
}

// Load reads the configuration file at path, falling back to the standard
// lookup locations when path is empty. A missing file is not an error; a
// malformed file or an unknown cache backend is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfig()
		if path == "" {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}

	switch cfg.Cache.Backend {
	case BackendFile, BackendRedis, BackendOff:
	default:
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown cache backend %q", path, cfg.Cache.Backend)
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = defaultCacheDir()
	}
	return cfg, nil
}

// findConfig returns the first config file present in the lookup
// locations, or "" when none exists.
func findConfig() string {
	candidates := []string{"regionviz.toml"}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "regionviz", "config.toml"))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "regionviz")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("regionviz-cache-%d", os.Getuid()))
}
