// Package config loads vexc project settings from vexc.json or vexc.yaml,
// with VEXC_ environment overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/recera/vexc/pkg/vex/compiler"
	"github.com/recera/vexc/pkg/vex/platform/web"
)

// FileName is the base name of the config file, without extension.
const FileName = "vexc"

// Config represents the vexc configuration
type Config struct {
	// Interpolation delimiters, e.g. ["${", "}"]. Empty means {{ }}.
	Delimiters []string `json:"delimiters,omitempty" yaml:"delimiters,omitempty" mapstructure:"delimiters"`

	// Drop whitespace-only text between elements
	TrimWhitespace bool `json:"trimWhitespace" yaml:"trimWhitespace" mapstructure:"trimWhitespace"`

	// Keep template comments in the output
	Comments bool `json:"comments" yaml:"comments" mapstructure:"comments"`

	// Suppress diagnostics
	Production bool `json:"production" yaml:"production" mapstructure:"production"`

	// Directory scanned for .vex files
	SrcDir string `json:"srcDir" yaml:"srcDir" mapstructure:"srcDir"`

	// Output directory. Empty writes next to each source file.
	OutDir string `json:"outDir,omitempty" yaml:"outDir,omitempty" mapstructure:"outDir"`

	// Extension of generated files
	Extension string `json:"extension" yaml:"extension" mapstructure:"extension"`

	// Treat template errors as build failures
	Strict bool `json:"strict" yaml:"strict" mapstructure:"strict"`
}

// Load loads configuration from vexc.json or vexc.yaml in projectPath.
// A missing file yields the defaults.
func Load(projectPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(FileName)
	v.AddConfigPath(projectPath)
	v.SetEnvPrefix("VEXC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// register every key so environment overrides apply without a file
	defaults := DefaultConfig()
	v.SetDefault("delimiters", defaults.Delimiters)
	v.SetDefault("trimWhitespace", defaults.TrimWhitespace)
	v.SetDefault("comments", defaults.Comments)
	v.SetDefault("production", defaults.Production)
	v.SetDefault("srcDir", defaults.SrcDir)
	v.SetDefault("outDir", defaults.OutDir)
	v.SetDefault("extension", defaults.Extension)
	v.SetDefault("strict", defaults.Strict)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Save writes configuration to vexc.yaml in projectPath
func Save(config *Config, projectPath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(filepath.Join(projectPath, FileName+".yaml"), data, 0644)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		SrcDir:    ".",
		Extension: ".vex.js",
	}
}

// applyDefaults applies default values to missing configuration
func applyDefaults(config *Config) {
	defaults := DefaultConfig()

	if config.SrcDir == "" {
		config.SrcDir = defaults.SrcDir
	}
	if config.Extension == "" {
		config.Extension = defaults.Extension
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch len(c.Delimiters) {
	case 0:
	case 2:
		if c.Delimiters[0] == "" || c.Delimiters[1] == "" {
			return fmt.Errorf("delimiters must not be empty")
		}
	default:
		return fmt.Errorf("delimiters must be a pair, got %d values", len(c.Delimiters))
	}
	if !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("extension %q must start with a dot", c.Extension)
	}
	if c.Extension == ".vex" {
		return fmt.Errorf("extension %q would overwrite the templates", c.Extension)
	}
	return nil
}

// Fingerprint identifies the settings that change compiler output. Templates
// compiled under different fingerprints never share cache entries.
func (c *Config) Fingerprint() string {
	data, _ := json.Marshal(struct {
		Delimiters     []string `json:"delimiters"`
		TrimWhitespace bool     `json:"trimWhitespace"`
		Comments       bool     `json:"comments"`
		Production     bool     `json:"production"`
	}{c.Delimiters, c.TrimWhitespace, c.Comments, c.Production})
	return string(data)
}

// CompilerOptions returns web platform compiler options for this config.
func (c *Config) CompilerOptions() *compiler.Options {
	opts := web.Options()
	if len(c.Delimiters) == 2 {
		opts.Delimiters = [2]string{c.Delimiters[0], c.Delimiters[1]}
	}
	opts.TrimWhitespace = c.TrimWhitespace
	opts.Comments = c.Comments
	opts.Production = c.Production
	return opts
}
