// =============================================================================
// Jira to Applens Converter - Logging Setup
// =============================================================================
//
// This module constructs the leveled logger used across the pipeline. The
// text format uses a tint handler for readable console output; the json
// format uses the standard JSON handler. When a log file is configured,
// output goes to both the console and the file.
//
// Options come from the configuration file and can be overridden through
// CONVERTER_LOG_LEVEL, CONVERTER_LOG_FORMAT, and CONVERTER_LOG_FILE.
//
// =============================================================================

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/lmittmann/tint"

	"github.com/hmhco/applens-converter/internal/config"
)

// Options controls logger construction.
type Options struct {
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `split_words:"true"`

	// LogFormat is "text" or "json".
	LogFormat string `split_words:"true"`

	// LogFile, when set, appends log output to this file as well.
	LogFile string `split_words:"true"`

	// Verbose forces debug level regardless of LogLevel.
	Verbose bool `ignored:"true"`
}

// FromConfig builds Options from the loaded configuration, applying any
// CONVERTER_* environment overrides on top.
func FromConfig(cfg *config.Config, verbose bool) (Options, error) {
	opts := Options{
		LogLevel:  cfg.LogLevel,
		LogFormat: cfg.LogFormat,
		LogFile:   cfg.LogFile,
		Verbose:   verbose,
	}
	if err := envconfig.Process("converter", &opts); err != nil {
		return Options{}, fmt.Errorf("failed to read logging environment: %w", err)
	}
	return opts, nil
}

// New constructs the logger. The returned closer is non-nil when a log file
// was opened and should be closed at process exit.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level, err := parseLevel(opts.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if opts.Verbose {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stdout
	var closer io.Closer
	if opts.LogFile != "" {
		fileflags := os.O_WRONLY | os.O_APPEND | os.O_CREATE
		logFile, err := os.OpenFile(opts.LogFile, fileflags, os.FileMode(0o644))
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open log file: %w", err)
		}
		out = io.MultiWriter(os.Stdout, logFile)
		closer = logFile
	}

	var handler slog.Handler
	switch strings.ToLower(opts.LogFormat) {
	case "json":
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
	default:
		handler = tint.NewHandler(out, &tint.Options{Level: level})
	}

	return slog.New(handler), closer, nil
}

// parseLevel maps a level name to its slog level.
func parseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %q", name)
	}
}
