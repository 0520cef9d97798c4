// Package config provides reading and writing of fusen settings.
//
// Settings live in settings.yaml inside the data directory. A missing file
// means "all defaults"; the file is only written when a value is set or
// when `fusen init` seeds it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when saving a config with no location.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// File is the settings filename inside the data directory.
const File = "settings.yaml"

// Defaults applied when a key is not configured.
const (
	DefaultApplication = "mpv"
	DefaultMaxPath     = 4096
	DefaultRecursive   = true
)

// Validation bounds for configuration values.
const (
	MinMaxPath = 1
	MaxMaxPath = 65536
)

// Config contains fusen settings. Pointer fields distinguish "not set"
// from an explicit false or zero.
type Config struct {
	ClearTagsOnImport      *bool    `yaml:"clearTagsOnImport,omitempty"`
	DefaultApplicationPath string   `yaml:"defaultApplicationPath,omitempty"`
	DeleteFileAfterImport  *bool    `yaml:"deleteFileAfterImport,omitempty"`
	ScanDirectories        []string `yaml:"scanDirectories,omitempty"`
	ScanRecursive          *bool    `yaml:"scanRecursive,omitempty"`
	ScanIgnore             []string `yaml:"scanIgnore,omitempty"`
	MaxPathLength          *int     `yaml:"maxPathLength,omitempty"`

	// path is the file this config was loaded from (for Save)
	path string
}

// Default returns a config for dir with the application default filled in,
// which is what `fusen init` writes.
func Default(dir string) *Config {
	return &Config{DefaultApplicationPath: DefaultApplication, path: Path(dir)}
}

// Validate checks that all configured values are within acceptable bounds.
func (c *Config) Validate() error {
	if c.MaxPathLength != nil {
		v := *c.MaxPathLength
		if v < MinMaxPath || v > MaxMaxPath {
			return fmt.Errorf("%w: maxPathLength must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxPath, MaxMaxPath, v)
		}
	}
	for _, d := range c.ScanDirectories {
		if d == "" {
			return fmt.Errorf("%w: scanDirectories contains an empty entry", ErrInvalidValue)
		}
	}
	return nil
}

// ClearOnImport reports whether import clears existing tags first
// (defaults to false).
func (c *Config) ClearOnImport() bool {
	return c.ClearTagsOnImport != nil && *c.ClearTagsOnImport
}

// DeleteAfterImport reports whether a successfully imported file is
// deleted (defaults to false).
func (c *Config) DeleteAfterImport() bool {
	return c.DeleteFileAfterImport != nil && *c.DeleteFileAfterImport
}

// ApplicationPath returns the configured default application. fusen stores
// and reports it but never launches it.
func (c *Config) ApplicationPath() string {
	if c.DefaultApplicationPath == "" {
		return DefaultApplication
	}
	return c.DefaultApplicationPath
}

// Recursive reports whether configured scan roots are walked recursively
// (defaults to true).
func (c *Config) Recursive() bool {
	if c.ScanRecursive == nil {
		return DefaultRecursive
	}
	return *c.ScanRecursive
}

// MaxPath returns the maximum stored path length in bytes.
func (c *Config) MaxPath() int {
	if c.MaxPathLength == nil {
		return DefaultMaxPath
	}
	return *c.MaxPathLength
}

// AddScanDirectory registers dir as a scan root. Returns false if it was
// already registered.
func (c *Config) AddScanDirectory(dir string) bool {
	if slices.Contains(c.ScanDirectories, dir) {
		return false
	}
	c.ScanDirectories = append(c.ScanDirectories, dir)
	return true
}

// RemoveScanDirectory unregisters dir. Returns false if it was not
// registered.
func (c *Config) RemoveScanDirectory(dir string) bool {
	i := slices.Index(c.ScanDirectories, dir)
	if i < 0 {
		return false
	}
	c.ScanDirectories = slices.Delete(c.ScanDirectories, i, i+1)
	return true
}

// Path returns the settings file location for data directory dir.
func Path(dir string) string {
	return filepath.Join(dir, File)
}

// Load reads the settings file in dir. A missing file yields defaults.
func Load(dir string) (*Config, error) {
	path := Path(dir)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Location returns the file this config reads from and saves to.
func (c *Config) Location() string {
	return c.path
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		return ErrNoConfigPath
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
