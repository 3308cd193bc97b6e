// Package batch drives outline extraction over many documents: it
// discovers PDFs through a source, runs the classification pipeline
// once per document in a worker pool, and writes one JSON outline per
// input. Documents fail independently; one corrupt file never stops
// the batch.
package batch

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/linea/layout"
)

// Title policy names accepted in configuration.
const (
	PolicyFirstPage = "first-page"
	PolicyAnyPage   = "any-page"
)

// Config holds the batch driver settings plus the classification
// options forwarded to the engine. All fields have working defaults;
// a zero-config run processes ./data into ./data.
type Config struct {
	// Input is the directory scanned for PDFs.
	Input string `yaml:"input" mapstructure:"input"`

	// Output is the directory JSON outlines are written to. Created
	// if absent.
	Output string `yaml:"output" mapstructure:"output"`

	// IncludePatterns and ExcludePatterns filter discovered files,
	// matched against paths relative to Input. Defaults include every
	// PDF beneath Input.
	IncludePatterns []string `yaml:"include_patterns" mapstructure:"include_patterns"`
	ExcludePatterns []string `yaml:"exclude_patterns" mapstructure:"exclude_patterns"`

	// Workers is the number of documents processed concurrently.
	// Default: runtime.NumCPU()
	Workers int `yaml:"workers" mapstructure:"workers"`

	// DocTimeout is the wall-clock budget per document. A document
	// that exceeds it is recorded as failed; the batch continues.
	// Default: 10s
	DocTimeout time.Duration `yaml:"doc_timeout" mapstructure:"doc_timeout"`

	// MinHeadingLength and MaxHeadingLength bound heading text, in
	// characters. Defaults: 3 and 200.
	MinHeadingLength int `yaml:"min_heading_length" mapstructure:"min_heading_length"`
	MaxHeadingLength int `yaml:"max_heading_length" mapstructure:"max_heading_length"`

	// MinFontSize and MaxFontSize bound the sizes that participate in
	// hierarchy ranking. Defaults: 8 and 72.
	MinFontSize float64 `yaml:"min_font_size" mapstructure:"min_font_size"`
	MaxFontSize float64 `yaml:"max_font_size" mapstructure:"max_font_size"`

	// NonHeadingPatterns replaces the default exclusion regexes when
	// set.
	NonHeadingPatterns []string `yaml:"non_heading_patterns" mapstructure:"non_heading_patterns"`

	// MaxSymbolRatio is the highest tolerated share of punctuation in
	// a heading. Default: 0.5
	MaxSymbolRatio float64 `yaml:"max_symbol_ratio" mapstructure:"max_symbol_ratio"`

	// RequireHeadingShape demands heading-like casing or terminal
	// punctuation. Default: true
	RequireHeadingShape bool `yaml:"require_heading_shape" mapstructure:"require_heading_shape"`

	// TitlePolicy is "first-page" or "any-page". Default: first-page
	TitlePolicy string `yaml:"title_policy" mapstructure:"title_policy"`

	// OCRImageDir, when set, names a directory of page scans used to
	// recover a title for documents with no extractable text.
	OCRImageDir string `yaml:"ocr_image_dir" mapstructure:"ocr_image_dir"`

	// Logging configures the batch logger.
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// LoggingConfig selects the log output style and level.
type LoggingConfig struct {
	// Style is "terminal", "json", or "noop". Default: terminal
	Style string `yaml:"style" mapstructure:"style"`

	// Level is a zap level name ("debug", "info", "warn", "error").
	// Default: info
	Level string `yaml:"level" mapstructure:"level"`
}

// DefaultConfig returns the default batch configuration. Input and
// output default to the conventional container mount points when they
// exist, otherwise to ./data.
func DefaultConfig() Config {
	input, output := defaultIODirs()
	return Config{
		Input:               input,
		Output:              output,
		Workers:             runtime.NumCPU(),
		DocTimeout:          10 * time.Second,
		MinHeadingLength:    3,
		MaxHeadingLength:    200,
		MinFontSize:         8,
		MaxFontSize:         72,
		MaxSymbolRatio:      0.5,
		RequireHeadingShape: true,
		TitlePolicy:         PolicyFirstPage,
		Logging:             LoggingConfig{Style: "terminal", Level: "info"},
	}
}

// defaultIODirs probes /app/input and /app/output, the conventional
// container mounts, and falls back to ./data for both.
func defaultIODirs() (string, string) {
	if info, err := os.Stat("/app/input"); err == nil && info.IsDir() {
		return "/app/input", "/app/output"
	}
	return "data", "data"
}

// LoadConfig loads configuration from a YAML file, layered over the
// defaults: absent keys keep their default values, present keys
// override them. The result is validated; validation failures are
// fatal for the whole run since a bad classification setting would
// silently corrupt every document's output.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes loads configuration from YAML bytes over the
// defaults.
func LoadConfigFromBytes(data []byte) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks the configuration for violations that would corrupt
// every document's classification. It must be called before the
// configuration is used; LoadConfig does so automatically.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("config: input directory is required")
	}
	if c.Output == "" {
		return fmt.Errorf("config: output directory is required")
	}
	if c.Workers < 1 {
		return fmt.Errorf("config: workers must be at least 1, got %d", c.Workers)
	}
	if c.DocTimeout <= 0 {
		return fmt.Errorf("config: doc_timeout must be positive, got %s", c.DocTimeout)
	}
	if c.MinHeadingLength < 1 {
		return fmt.Errorf("config: min_heading_length must be at least 1, got %d", c.MinHeadingLength)
	}
	if c.MinHeadingLength > c.MaxHeadingLength {
		return fmt.Errorf("config: min_heading_length %d exceeds max_heading_length %d",
			c.MinHeadingLength, c.MaxHeadingLength)
	}
	if c.MinFontSize > c.MaxFontSize {
		return fmt.Errorf("config: min_font_size %g exceeds max_font_size %g",
			c.MinFontSize, c.MaxFontSize)
	}
	if c.MaxSymbolRatio < 0 || c.MaxSymbolRatio > 1 {
		return fmt.Errorf("config: max_symbol_ratio must be in [0, 1], got %g", c.MaxSymbolRatio)
	}
	if c.TitlePolicy != PolicyFirstPage && c.TitlePolicy != PolicyAnyPage {
		return fmt.Errorf("config: title_policy must be %q or %q, got %q",
			PolicyFirstPage, PolicyAnyPage, c.TitlePolicy)
	}
	if _, err := layout.CompilePatterns(c.NonHeadingPatterns); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Logging.Style {
	case "", "terminal", "json", "noop":
	default:
		return fmt.Errorf("config: logging style must be terminal, json, or noop, got %q", c.Logging.Style)
	}
	return nil
}

// HierarchyConfig builds the font analyzer configuration.
func (c *Config) HierarchyConfig() layout.HierarchyConfig {
	return layout.HierarchyConfig{
		MinFontSize: c.MinFontSize,
		MaxFontSize: c.MaxFontSize,
	}
}

// ClassifierConfig builds the classifier configuration. The caller
// must have validated the configuration; invalid patterns fail here
// too.
func (c *Config) ClassifierConfig() (layout.ClassifierConfig, error) {
	config := layout.ClassifierConfig{
		MinHeadingLength:    c.MinHeadingLength,
		MaxHeadingLength:    c.MaxHeadingLength,
		ExcludePatterns:     layout.DefaultExcludePatterns(),
		MaxSymbolRatio:      c.MaxSymbolRatio,
		RequireHeadingShape: c.RequireHeadingShape,
	}
	if len(c.NonHeadingPatterns) > 0 {
		compiled, err := layout.CompilePatterns(c.NonHeadingPatterns)
		if err != nil {
			return layout.ClassifierConfig{}, err
		}
		config.ExcludePatterns = compiled
	}
	return config, nil
}

// AssemblerConfig builds the assembler configuration.
func (c *Config) AssemblerConfig() layout.AssemblerConfig {
	config := layout.DefaultAssemblerConfig()
	if c.TitlePolicy == PolicyAnyPage {
		config.TitlePolicy = layout.TitleAnyPage
	}
	return config
}
