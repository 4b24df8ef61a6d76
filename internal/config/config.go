// Package config loads the YAML configuration file of the turndown CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-turndown/internal/fileutil"
	"github.com/alnah/go-turndown/internal/yamlutil"
	"github.com/alnah/go-turndown/markdown"
	"github.com/alnah/go-turndown/plugin"
)

// AppName names the user configuration directory.
const AppName = "go-turndown"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTagLength       = 64
	MaxSelectorLength  = 1024
	MaxUserAgentLength = 256
	MaxPathLength      = 4096
	MaxListLength      = 256 // entries per list (rules, selectors, plugins)
)

// Config holds all configuration of a conversion run.
type Config struct {
	Markdown markdown.Options `yaml:"markdown"`
	Rules    RulesConfig      `yaml:"rules"`
	Plugins  []string         `yaml:"plugins"`
	Extract  ExtractConfig    `yaml:"extract"`
	Fetch    FetchConfig      `yaml:"fetch"`
	Output   OutputConfig     `yaml:"output"`
}

// RulesConfig lists tag names handled by keep and remove filters.
type RulesConfig struct {
	Keep   []string `yaml:"keep"`   // rendered as HTML
	Remove []string `yaml:"remove"` // dropped with their content
}

// ExtractConfig selects the part of each page to convert.
type ExtractConfig struct {
	Select string   `yaml:"select"` // CSS selector of the content root
	Strip  []string `yaml:"strip"`  // CSS selectors removed before conversion
	Auto   bool     `yaml:"auto"`   // strip common noise, fall back to main/article/body
}

// FetchConfig defines how remote pages are retrieved.
type FetchConfig struct {
	Render    bool   `yaml:"render"`    // load pages in headless Chrome
	Timeout   string `yaml:"timeout"`   // Go duration, e.g. "30s" (empty = default)
	UserAgent string `yaml:"userAgent"` // empty = default
	MaxBytes  int64  `yaml:"maxBytes"`  // response size limit (0 = default)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the source, stdout for URLs and stdin
}

// TimeoutDuration returns the parsed timeout, or 0 when unset.
// Validate guarantees that a non-empty timeout parses.
func (f FetchConfig) TimeoutDuration() time.Duration {
	if f.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(f.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Validate checks field values and lengths.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}

	if err := c.Markdown.Validate(); err != nil {
		return fmt.Errorf("markdown: %w", err)
	}

	if err := validateList("rules.keep", c.Rules.Keep, MaxTagLength); err != nil {
		return err
	}
	if err := validateList("rules.remove", c.Rules.Remove, MaxTagLength); err != nil {
		return err
	}

	if err := validateList("plugins", c.Plugins, MaxTagLength); err != nil {
		return err
	}
	for i, name := range c.Plugins {
		if _, err := plugin.ByName(name); err != nil {
			return fmt.Errorf("plugins[%d]: %w", i, err)
		}
	}

	if err := validateFieldLength("extract.select", c.Extract.Select, MaxSelectorLength); err != nil {
		return err
	}
	if err := validateList("extract.strip", c.Extract.Strip, MaxSelectorLength); err != nil {
		return err
	}

	if c.Fetch.Timeout != "" {
		d, err := time.ParseDuration(c.Fetch.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: fetch.timeout: %q (must be a positive duration, e.g. 30s)", ErrInvalidField, c.Fetch.Timeout)
		}
	}
	if err := validateFieldLength("fetch.userAgent", c.Fetch.UserAgent, MaxUserAgentLength); err != nil {
		return err
	}
	if c.Fetch.MaxBytes < 0 {
		return fmt.Errorf("%w: fetch.maxBytes: must not be negative, got %d", ErrInvalidField, c.Fetch.MaxBytes)
	}

	return validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength)
}

// validateList checks the entry count and the length of every non-empty entry.
func validateList(fieldName string, values []string, maxLength int) error {
	if len(values) > MaxListLength {
		return fmt.Errorf("%w: %s (%d entries, max %d)", ErrFieldTooLong, fieldName, len(values), MaxListLength)
	}
	for i, v := range values {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: %s[%d]: empty value", ErrInvalidField, fieldName, i)
		}
		if err := validateFieldLength(fmt.Sprintf("%s[%d]", fieldName, i), v, maxLength); err != nil {
			return err
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Markdown: markdown.DefaultOptions(),
	}
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yamlutil.Marshal(c)
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
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

// SearchPaths returns the locations tried for a config name, in order:
// current directory, then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in SearchPaths order.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
