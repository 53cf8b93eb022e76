// =============================================================================
// Jira to Applens Converter - Configuration Module
// =============================================================================
//
// This module loads and manages the pipeline configuration. The configuration
// is constructed once at process start and is read-only thereafter; all
// pipeline stages receive it explicitly.
//
// The built-in defaults reproduce the production Jira-to-Applens tables, so
// the converter works with no configuration file at all. A YAML file can
// override any of them, e.g. to point at different directories or adjust
// logging.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// ColumnRule maps one required source column to its target column.
// Source names are matched case/whitespace-insensitively against the input
// header; the matched column is carried forward under the canonical Source
// name and renamed to Target by the mapper.
type ColumnRule struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// ConstantField is a target column set to a fixed literal on every row.
// Constants are applied after column mapping in declared order; a constant
// sharing a name with a mapped column simply overwrites it.
type ConstantField struct {
	Column string `yaml:"column"`
	Value  string `yaml:"value"`
}

// Config holds the full pipeline configuration.
type Config struct {
	// =========================================================================
	// SCHEMA TABLES
	// =========================================================================

	// ColumnMapping is the ordered source-to-target column mapping. Every
	// source name must be resolvable in the input header or loading fails.
	ColumnMapping []ColumnRule `yaml:"column_mapping"`

	// ConstantFields are fixed-value columns injected after mapping.
	ConstantFields []ConstantField `yaml:"constant_fields"`

	// FinalColumnOrder is the exact output schema, in order. Every name must
	// exist in the transformed table by write time or emission fails.
	FinalColumnOrder []string `yaml:"final_column_order"`

	// =========================================================================
	// CLEANING RULES
	// =========================================================================

	// KeyColumn is the sole mandatory field; rows without it are dropped.
	KeyColumn string `yaml:"key_column"`

	// DateColumns are coerced to dates best-effort (unparseable -> empty).
	DateColumns []string `yaml:"date_columns"`

	// BlankColumns have empty values rendered as blank strings in the output
	// artifact rather than a null sentinel.
	BlankColumns []string `yaml:"blank_columns"`

	// =========================================================================
	// DIRECTORY AND OUTPUT SETTINGS
	// =========================================================================

	// OutputDir receives generated spreadsheets when no explicit output path
	// is given. Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir receives input files after successful processing.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// ArchiveOnSuccess moves the input file to InputArchiveDir after a
	// successful run. Default: true
	ArchiveOnSuccess *bool `yaml:"archive_on_success"`

	// OutputNamePattern names generated output files. Placeholders:
	//   {uuid}      - a random UUID
	//   {timestamp} - current timestamp (YYYYMMDD_HHMMSS)
	// Default: "applens_upload_{timestamp}_{uuid}.xlsx"
	OutputNamePattern string `yaml:"output_name_pattern"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls verbosity: "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the handler: "text" or "json". Default: "text"
	LogFormat string `yaml:"log_format"`

	// LogFile, when set, appends log output to the given file in addition to
	// the console.
	LogFile string `yaml:"log_file"`
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns the built-in production configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads a YAML configuration file, fills defaults, and validates the
// result. A missing file is not an error: the built-in defaults are returned,
// so the converter runs without any configuration on disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills any unset option with the production default.
func applyDefaults(cfg *Config) {
	if len(cfg.ColumnMapping) == 0 {
		cfg.ColumnMapping = []ColumnRule{
			{Source: "Issue Key", Target: "Ticket ID"},
			{Source: "Issue Type", Target: "Ticket Type"},
			{Source: "Updated", Target: "Open Date"},
			{Source: "Status", Target: "Status"},
			{Source: "Resolved", Target: "Closed Date"},
		}
	}
	if len(cfg.ConstantFields) == 0 {
		cfg.ConstantFields = []ConstantField{
			{Column: "Priority", Value: "NONE"},
			{Column: "Application", Value: "HMOF"},
			{Column: "Assignment Group", Value: "HMH Support Group"},
		}
	}
	if len(cfg.FinalColumnOrder) == 0 {
		cfg.FinalColumnOrder = []string{
			"Ticket ID", "Ticket Type", "Open Date", "Priority",
			"Status", "Application", "Assignment Group", "Closed Date",
		}
	}
	if cfg.KeyColumn == "" {
		cfg.KeyColumn = "Ticket ID"
	}
	if len(cfg.DateColumns) == 0 {
		cfg.DateColumns = []string{"Open Date", "Closed Date"}
	}
	if len(cfg.BlankColumns) == 0 {
		cfg.BlankColumns = []string{"Closed Date"}
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.InputArchiveDir == "" {
		cfg.InputArchiveDir = "./input_archive"
	}
	if cfg.ArchiveOnSuccess == nil {
		t := true
		cfg.ArchiveOnSuccess = &t
	}
	if cfg.OutputNamePattern == "" {
		cfg.OutputNamePattern = "applens_upload_{timestamp}_{uuid}.xlsx"
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
}

// validate rejects configurations the pipeline cannot run with. Deliberately
// light: in particular there is no uniqueness check between mapping targets
// and constant columns (constants always win), and no check that the final
// column order is covered before write time.
func validate(cfg *Config) error {
	if len(cfg.ColumnMapping) == 0 {
		return fmt.Errorf("column_mapping must not be empty")
	}
	for i, rule := range cfg.ColumnMapping {
		if strings.TrimSpace(rule.Source) == "" || strings.TrimSpace(rule.Target) == "" {
			return fmt.Errorf("column_mapping entry %d: source and target are required", i+1)
		}
	}
	for i, c := range cfg.ConstantFields {
		if strings.TrimSpace(c.Column) == "" {
			return fmt.Errorf("constant_fields entry %d: column is required", i+1)
		}
	}
	if len(cfg.FinalColumnOrder) == 0 {
		return fmt.Errorf("final_column_order must not be empty")
	}
	if strings.TrimSpace(cfg.KeyColumn) == "" {
		return fmt.Errorf("key_column is required")
	}
	return nil
}

// =============================================================================
// SCHEMA ACCESSORS
// =============================================================================

// SourceColumns returns the required source column names in mapping order.
func (c *Config) SourceColumns() []string {
	cols := make([]string, len(c.ColumnMapping))
	for i, rule := range c.ColumnMapping {
		cols[i] = rule.Source
	}
	return cols
}

// RenameMap returns the source-to-target rename table.
func (c *Config) RenameMap() map[string]string {
	m := make(map[string]string, len(c.ColumnMapping))
	for _, rule := range c.ColumnMapping {
		m[rule.Source] = rule.Target
	}
	return m
}

// Archive reports whether successful runs archive their input file.
func (c *Config) Archive() bool {
	return c.ArchiveOnSuccess != nil && *c.ArchiveOnSuccess
}
