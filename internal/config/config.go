// Package config loads bibinject CLI and web configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-bibinject/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidOrder    = errors.New("invalid order in config")
	ErrInvalidGroup    = errors.New("invalid group in config")
)

// configDirName is the subdirectory searched under the user config dir.
const configDirName = "go-bibinject"

// Config holds defaults for the inject pipeline and the web interface.
// CLI flags override config values.
type Config struct {
	Inject InjectConfig `yaml:"inject"`
	Assets AssetsConfig `yaml:"assets"`
	Serve  ServeConfig  `yaml:"serve"`
}

// InjectConfig defines pipeline defaults.
type InjectConfig struct {
	Style         string `yaml:"style"`         // Refspec style name (default "default")
	Order         string `yaml:"order"`         // "asc" or "desc" (default "desc")
	Group         string `yaml:"group"`         // year, year/month, ym, month, author, or empty
	TargetID      string `yaml:"targetId"`      // id of the container element
	DOIIcon       string `yaml:"doiIcon"`       // Optional DOI icon locator
	ExpandStrings bool   `yaml:"expandStrings"` // Expand @string macros into bare tokens
}

// AssetsConfig defines style loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = embedded styles only
}

// ServeConfig defines web mode options.
type ServeConfig struct {
	Addr string `yaml:"addr"` // Listen address (default "127.0.0.1:6969")
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Inject: InjectConfig{
			Style:         "default",
			Order:         "desc",
			TargetID:      "bibliography",
			ExpandStrings: true,
		},
		Serve: ServeConfig{Addr: "127.0.0.1:6969"},
	}
}

// Validate checks that config values are in range.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Inject.Order) {
	case "", "asc", "desc":
	default:
		return fmt.Errorf("%w: %q (must be asc or desc)", ErrInvalidOrder, c.Inject.Order)
	}

	switch strings.ToLower(c.Inject.Group) {
	case "", "year", "year/month", "ym", "month", "author":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidGroup, c.Inject.Group)
	}
}

// LoadConfig loads configuration from a file path or config name.
// A nameOrPath containing a path separator is treated as a file path;
// otherwise it is searched in standard locations. Returns error if the
// file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !strings.ContainsAny(nameOrPath, "/\\") {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the locations tried when resolving a config name,
// for use in error hints.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name: current
// directory first, then the user config directory, trying .yaml and
// .yml extensions.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
