// Package config loads inlinable.toml, the per-project settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
)

// FileName is the name looked up from the input directory upwards.
const FileName = "inlinable.toml"

type Config struct {
	// Path of the loaded file; empty when defaults are used.
	Path string `toml:"-"`

	Build  BuildConfig  `toml:"build"`
	Output OutputConfig `toml:"output"`
	Cache  CacheConfig  `toml:"cache"`
}

type BuildConfig struct {
	// Defines are the compilation conditions that evaluate to true.
	Defines  []string       `toml:"defines"`
	Platform PlatformConfig `toml:"platform"`
}

// PlatformConfig answers os(...) and arch(...) conditions.
type PlatformConfig struct {
	OS   string `toml:"os"`
	Arch string `toml:"arch"`
}

type OutputConfig struct {
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Color          string `toml:"color"` // auto|on|off
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Default returns the settings used without a config file.
func Default() Config {
	return Config{
		Build: BuildConfig{
			Platform: PlatformConfig{OS: runtime.GOOS, Arch: runtime.GOARCH},
		},
		Output: OutputConfig{MaxDiagnostics: 100, Color: "auto"},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest config above startDir, or Default.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return Default(), err
	}
	return Load(path)
}

// Load reads path over Default and validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	cfg.Path = path
	if cfg.Cache.Dir != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(filepath.Dir(path), cfg.Cache.Dir)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that TOML typing cannot.
func (c *Config) Validate() error {
	for _, d := range c.Build.Defines {
		if !isIdent(d) {
			return fmt.Errorf("[build].defines: %q is not an identifier", d)
		}
	}
	if strings.TrimSpace(c.Build.Platform.OS) == "" {
		return errors.New("[build.platform].os must not be empty")
	}
	if strings.TrimSpace(c.Build.Platform.Arch) == "" {
		return errors.New("[build.platform].arch must not be empty")
	}
	if c.Output.MaxDiagnostics < 0 {
		return fmt.Errorf("[output].max_diagnostics must be >= 0, got %d", c.Output.MaxDiagnostics)
	}
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[output].color must be auto|on|off, got %q", c.Output.Color)
	}
	return nil
}

// CacheDir returns the configured cache directory or
// $XDG_CACHE_HOME/inlinable (os.UserCacheDir) when unset.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("cache dir: %w", err)
	}
	return filepath.Join(base, "inlinable"), nil
}

// AddDefines appends command-line -D flags, skipping duplicates.
func (c *Config) AddDefines(defines ...string) error {
	for _, d := range defines {
		if !isIdent(d) {
			return fmt.Errorf("-D %q: not an identifier", d)
		}
		dup := false
		for _, have := range c.Build.Defines {
			if have == d {
				dup = true
				break
			}
		}
		if !dup {
			c.Build.Defines = append(c.Build.Defines, d)
		}
	}
	return nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
