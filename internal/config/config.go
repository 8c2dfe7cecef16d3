// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"charter-scan/internal/detector"
	"charter-scan/internal/formatters"
	"charter-scan/internal/paths"
	"charter-scan/internal/preprocessors"
	"charter-scan/internal/router"

	"gopkg.in/yaml.v3"
)

// Built-in default values
const (
	DefaultInputDir      = "./pdfs"
	DefaultHitsOutput    = "keyword_hits.csv"
	DefaultSummaryOutput = "charter_summary.csv"
	DefaultFormat        = "csv"
	DefaultWorkers       = 1
)

// Defaults holds the scan settings applied when no flag overrides them
type Defaults struct {
	InputDir      string `yaml:"input_dir"`
	HitsOutput    string `yaml:"hits_output"`
	SummaryOutput string `yaml:"summary_output"`
	Format        string `yaml:"format"`
	ContextChars  int    `yaml:"context_chars"`
	Workers       int    `yaml:"workers"`
	Recursive     bool   `yaml:"recursive"`
	NoColor       bool   `yaml:"no_color"`
	Debug         bool   `yaml:"debug"`
	Quiet         bool   `yaml:"quiet"`
	SanitizeCSV   bool   `yaml:"sanitize_csv"`
}

// PDFConfig configures the PDF extractor
type PDFConfig struct {
	Enabled          bool `yaml:"enabled"`
	Validate         bool `yaml:"validate"`
	NormalizeUnicode bool `yaml:"normalize_unicode"`
	MaxPages         int  `yaml:"max_pages"`
}

// PlainTextConfig configures the plain-text extractor
type PlainTextConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults Defaults `yaml:"defaults"`

	// TaxonomyFile optionally replaces the built-in keyword taxonomy
	TaxonomyFile string `yaml:"taxonomy_file"`

	// SQLiteOutput optionally persists every run to a SQLite database
	SQLiteOutput string `yaml:"sqlite_output"`

	// Preprocessor configurations
	Preprocessors struct {
		PDF       PDFConfig       `yaml:"pdf"`
		PlainText PlainTextConfig `yaml:"plaintext"`
	} `yaml:"preprocessors"`

	// Profiles for different scanning scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile represents a named set of overrides of Defaults. Fields left out of
// the profile keep their default value.
type Profile struct {
	Description   string  `yaml:"description"`
	InputDir      *string `yaml:"input_dir"`
	HitsOutput    *string `yaml:"hits_output"`
	SummaryOutput *string `yaml:"summary_output"`
	Format        *string `yaml:"format"`
	ContextChars  *int    `yaml:"context_chars"`
	Workers       *int    `yaml:"workers"`
	Recursive     *bool   `yaml:"recursive"`
	NoColor       *bool   `yaml:"no_color"`
	Debug         *bool   `yaml:"debug"`
	Quiet         *bool   `yaml:"quiet"`
	SanitizeCSV   *bool   `yaml:"sanitize_csv"`
	TaxonomyFile  *string `yaml:"taxonomy_file"`
	SQLiteOutput  *string `yaml:"sqlite_output"`
}

// NewDefault returns the built-in configuration
func NewDefault() *Config {
	config := &Config{
		Profiles: make(map[string]Profile),
	}

	config.Defaults = Defaults{
		InputDir:      DefaultInputDir,
		HitsOutput:    DefaultHitsOutput,
		SummaryOutput: DefaultSummaryOutput,
		Format:        DefaultFormat,
		ContextChars:  detector.DefaultContextChars,
		Workers:       DefaultWorkers,
	}

	pdf := preprocessors.DefaultPDFOptions()
	config.Preprocessors.PDF = PDFConfig{
		Enabled:          true,
		Validate:         pdf.Validate,
		NormalizeUnicode: pdf.NormalizeUnicode,
		MaxPages:         pdf.MaxPages,
	}
	config.Preprocessors.PlainText.Enabled = false

	quick := 60
	workers := 4
	config.Profiles["quick"] = Profile{
		Description:  "Shorter snippets and parallel extraction for large corpora",
		ContextChars: &quick,
		Workers:      &workers,
	}

	return config
}

// LoadConfig loads configuration from the specified file path. Keys missing
// from the file keep their built-in value.
func LoadConfig(configPath string) (*Config, error) {
	config := NewDefault()

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// yaml.v3 leaves fields absent from the document untouched
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if config.Profiles == nil {
		config.Profiles = make(map[string]Profile)
	}

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in the working directory,
// then in the per-user configuration directory
func FindConfigFile() string {
	for _, name := range []string{"charter-scan.yaml", "charter-scan.yml", ".charter-scan.yaml", ".charter-scan.yml"} {
		if fileExists(name) {
			return name
		}
	}

	standardConfig := paths.GetConfigFile()
	if fileExists(standardConfig) {
		return standardConfig
	}
	if alt := strings.TrimSuffix(standardConfig, ".yaml") + ".yml"; fileExists(alt) {
		return alt
	}

	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ListProfiles returns the available profile names, sorted
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	sort.Strings(profiles)
	return profiles
}

// GetProfile returns a profile by name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}

// ApplyProfile overlays the named profile onto the defaults
func (c *Config) ApplyProfile(name string) error {
	profile := c.GetProfile(name)
	if profile == nil {
		return fmt.Errorf("profile '%s' not found. Available profiles: %s", name, strings.Join(c.ListProfiles(), ", "))
	}

	d := &c.Defaults
	setString(&d.InputDir, profile.InputDir)
	setString(&d.HitsOutput, profile.HitsOutput)
	setString(&d.SummaryOutput, profile.SummaryOutput)
	setString(&d.Format, profile.Format)
	setInt(&d.ContextChars, profile.ContextChars)
	setInt(&d.Workers, profile.Workers)
	setBool(&d.Recursive, profile.Recursive)
	setBool(&d.NoColor, profile.NoColor)
	setBool(&d.Debug, profile.Debug)
	setBool(&d.Quiet, profile.Quiet)
	setBool(&d.SanitizeCSV, profile.SanitizeCSV)
	setString(&c.TaxonomyFile, profile.TaxonomyFile)
	setString(&c.SQLiteOutput, profile.SQLiteOutput)

	return ValidateConfig(c)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// OutputPaths returns the table destinations. Relative paths resolve against
// the input directory.
func (c *Config) OutputPaths() formatters.OutputPaths {
	return formatters.OutputPaths{
		Hits:    paths.ResolveAgainst(c.Defaults.InputDir, c.Defaults.HitsOutput),
		Summary: paths.ResolveAgainst(c.Defaults.InputDir, c.Defaults.SummaryOutput),
	}
}

// ExtractorConfig returns the router configuration for the enabled extractors
func (c *Config) ExtractorConfig() router.Config {
	pdf := c.Preprocessors.PDF
	return router.Config{
		PDFEnabled: pdf.Enabled,
		PDF: preprocessors.PDFOptions{
			Validate:         pdf.Validate,
			NormalizeUnicode: pdf.NormalizeUnicode,
			MaxPages:         pdf.MaxPages,
		},
		PlainTextEnabled: c.Preprocessors.PlainText.Enabled,
		NormalizeUnicode: pdf.NormalizeUnicode,
	}
}

// FormatterOptions returns the output options implied by the defaults
func (c *Config) FormatterOptions() formatters.FormatterOptions {
	return formatters.FormatterOptions{
		NoColor:          c.Defaults.NoColor,
		SanitizeFormulas: c.Defaults.SanitizeCSV,
	}
}

// ValidateConfig checks value ranges, the output format and every path
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	d := config.Defaults
	if d.ContextChars < 0 {
		return fmt.Errorf("context_chars must be >= 0, got %d", d.ContextChars)
	}
	if d.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", d.Workers)
	}
	if config.Preprocessors.PDF.MaxPages < 0 {
		return fmt.Errorf("preprocessors.pdf.max_pages must be >= 0, got %d", config.Preprocessors.PDF.MaxPages)
	}
	if _, err := formatters.Lookup(d.Format); err != nil {
		return err
	}
	if !config.Preprocessors.PDF.Enabled && !config.Preprocessors.PlainText.Enabled {
		return fmt.Errorf("no preprocessor is enabled")
	}

	if err := validateConfigPaths(config); err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}

	for name, profile := range config.Profiles {
		if profile.ContextChars != nil && *profile.ContextChars < 0 {
			return fmt.Errorf("profile '%s': context_chars must be >= 0", name)
		}
		if profile.Workers != nil && *profile.Workers < 1 {
			return fmt.Errorf("profile '%s': workers must be >= 1", name)
		}
	}

	return nil
}

// validateConfigPaths validates all paths in the configuration
func validateConfigPaths(config *Config) error {
	checks := map[string]string{
		"input_dir":      config.Defaults.InputDir,
		"hits_output":    config.Defaults.HitsOutput,
		"summary_output": config.Defaults.SummaryOutput,
		"taxonomy_file":  config.TaxonomyFile,
		"sqlite_output":  config.SQLiteOutput,
	}
	for _, key := range []string{"input_dir", "hits_output", "summary_output", "taxonomy_file", "sqlite_output"} {
		if err := paths.ValidatePath(checks[key]); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}
	return nil
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard locations
// when configFile is empty). If loading fails, it returns a default configuration.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		// Fall back to defaults; callers should not crash on a missing/bad config file.
		cfg = NewDefault()
	}
	return cfg
}
