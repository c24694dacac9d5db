// Package config holds the evaluation thresholds and their YAML overrides.
//
// Thresholds are policy values: they tune how strict each analyzer is, but
// never change the report structure. Analyzer weights, status thresholds,
// and the analyzer set itself are structural and fixed in code.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up at the repository root.
const FileName = ".commitgate.yaml"

// Config aggregates the per-analyzer threshold sections.
type Config struct {
	Message MessageConfig `yaml:"message"`
	Diff    DiffConfig    `yaml:"diff"`
	Risk    RiskConfig    `yaml:"risk"`
	Test    TestConfig    `yaml:"test"`
}

// MessageConfig tunes the commit message analyzer.
type MessageConfig struct {
	// Subject lines longer than this draw a warning.
	SubjectWarnLength int `yaml:"subject_warn_length"`
	// Subject lines longer than this (but within the warn length) draw a
	// shortening suggestion.
	SubjectSoftLength int `yaml:"subject_soft_length"`
	// Subject lines shorter than this draw a warning.
	SubjectMinLength int `yaml:"subject_min_length"`
	// Body lines longer than this are counted into one aggregated warning.
	BodyWrapWidth int `yaml:"body_wrap_width"`
}

// DiffConfig tunes the diff shape analyzer.
type DiffConfig struct {
	// Total changed lines above this draw a warning.
	LargeChangeLines int `yaml:"large_change_lines"`
	// Total changed lines above this draw an issue.
	HugeChangeLines int `yaml:"huge_change_lines"`
	// File counts above this draw a warning.
	MaxFiles int `yaml:"max_files"`
	// Single files with more changed lines than this draw a warning.
	LargeFileLines int `yaml:"large_file_lines"`
	// Single files larger than this many bytes draw an issue.
	LargeFileBytes int64 `yaml:"large_file_bytes"`
	// Changes spanning more distinct top-level directories than this,
	// with no dominant directory, draw a split suggestion.
	MaxDirectories int `yaml:"max_directories"`
	// Changes spanning more distinct file extensions than this draw a
	// split suggestion.
	MaxExtensions int `yaml:"max_extensions"`
}

// RiskConfig tunes the risk analyzer.
type RiskConfig struct {
	// Ceiling applied to the overall score whenever the risk analyzer
	// reports issues. Keeps secret leaks out of the passing statuses no
	// matter how clean the rest of the change is. Set to 100 to disable.
	OverallCap float64 `yaml:"overall_cap"`
}

// TestConfig tunes the test coverage analyzer.
type TestConfig struct {
	// Minimum acceptable test-to-implementation file ratio. Below it the
	// analyzer warns with the literal counts. Set to 0 to disable.
	MinRatio float64 `yaml:"min_ratio"`
}

// Default returns the built-in thresholds.
func Default() *Config {
	return &Config{
		Message: MessageConfig{
			SubjectWarnLength: 72,
			SubjectSoftLength: 50,
			SubjectMinLength:  10,
			BodyWrapWidth:     100,
		},
		Diff: DiffConfig{
			LargeChangeLines: 500,
			HugeChangeLines:  1000,
			MaxFiles:         20,
			LargeFileLines:   300,
			LargeFileBytes:   1 << 20,
			MaxDirectories:   5,
			MaxExtensions:    5,
		},
		Risk: RiskConfig{
			OverallCap: 35,
		},
		Test: TestConfig{
			MinRatio: 1.0 / 3.0,
		},
	}
}

// Load reads and validates the config file at path. Values not present in
// the file keep their defaults. Unknown keys are rejected so typos surface
// instead of silently reverting a threshold.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// LoadRepo loads the repository's config file if one exists, otherwise the
// defaults. A present-but-broken file is an error rather than a silent
// fallback since thresholds change evaluation outcomes.
func LoadRepo(repoDir string) (*Config, error) {
	path := filepath.Join(repoDir, FileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks that every threshold is in a usable range.
func (c *Config) Validate() error {
	m := c.Message
	if m.SubjectWarnLength <= 0 {
		return fmt.Errorf("message.subject_warn_length must be positive, got %d", m.SubjectWarnLength)
	}
	if m.SubjectSoftLength <= 0 || m.SubjectSoftLength > m.SubjectWarnLength {
		return fmt.Errorf("message.subject_soft_length must be in 1..%d, got %d", m.SubjectWarnLength, m.SubjectSoftLength)
	}
	if m.SubjectMinLength < 0 {
		return fmt.Errorf("message.subject_min_length must not be negative, got %d", m.SubjectMinLength)
	}
	if m.BodyWrapWidth <= 0 {
		return fmt.Errorf("message.body_wrap_width must be positive, got %d", m.BodyWrapWidth)
	}

	d := c.Diff
	if d.LargeChangeLines <= 0 {
		return fmt.Errorf("diff.large_change_lines must be positive, got %d", d.LargeChangeLines)
	}
	if d.HugeChangeLines < d.LargeChangeLines {
		return fmt.Errorf("diff.huge_change_lines must be >= diff.large_change_lines, got %d", d.HugeChangeLines)
	}
	if d.MaxFiles <= 0 {
		return fmt.Errorf("diff.max_files must be positive, got %d", d.MaxFiles)
	}
	if d.LargeFileLines <= 0 {
		return fmt.Errorf("diff.large_file_lines must be positive, got %d", d.LargeFileLines)
	}
	if d.LargeFileBytes <= 0 {
		return fmt.Errorf("diff.large_file_bytes must be positive, got %d", d.LargeFileBytes)
	}
	if d.MaxDirectories <= 0 {
		return fmt.Errorf("diff.max_directories must be positive, got %d", d.MaxDirectories)
	}
	if d.MaxExtensions <= 0 {
		return fmt.Errorf("diff.max_extensions must be positive, got %d", d.MaxExtensions)
	}

	if c.Risk.OverallCap <= 0 || c.Risk.OverallCap > 100 {
		return fmt.Errorf("risk.overall_cap must be in (0,100], got %v", c.Risk.OverallCap)
	}
	if c.Test.MinRatio < 0 || c.Test.MinRatio > 1 {
		return fmt.Errorf("test.min_ratio must be in [0,1], got %v", c.Test.MinRatio)
	}
	return nil
}
