// =============================================================================
// Jira to Applens Converter - Convert Command
// =============================================================================
//
// The convert command is the single entry point over the transformation
// pipeline: one input CSV in, one upload spreadsheet out, success or failure
// reflected in the exit status. All diagnostic detail goes through the
// logger, not the outcome.
//
// COMMAND USAGE:
//   applens-converter convert --input <csv> [--output <xlsx>] [flags]
//
// FLAGS:
//   --input       path to the exported ticket dump (required)
//   --output      path for the generated spreadsheet; generated from the
//                 configured naming pattern into the output directory when
//                 omitted
//   --dry-run     run ingestion, mapping, and cleaning without writing output
//   --keep-input  leave the input file in place even when archival is enabled
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hmhco/applens-converter/internal/config"
	"github.com/hmhco/applens-converter/internal/logging"
	"github.com/hmhco/applens-converter/internal/pipeline"
	"github.com/hmhco/applens-converter/pkg/utils"
)

// inputPath is the path to the exported ticket dump.
var inputPath string

// outputPath is the path for the generated spreadsheet.
var outputPath string

// dryRun skips the write stage.
var dryRun bool

// keepInput disables input archival for this run.
var keepInput bool

// convertCmd represents the 'convert' command.
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a Jira ticket dump into an Applens upload spreadsheet",
	Long: `The convert command reads the exported ticket dump, resolves the required
columns against its header, maps them to the Applens schema, cleans the rows,
and writes the upload spreadsheet.

The run either produces the complete output artifact or nothing: unusable
input (missing file, missing required columns, undecodable content) aborts
the run before any output is written. Rows without a ticket ID and
unparseable dates are degraded rather than fatal; they are reported in the
log.

On success the input file is moved to the input archive directory unless
archival is disabled in the configuration or --keep-input is given.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert()
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(
		&inputPath,
		"input",
		"",
		"Path to the exported ticket dump CSV (required)",
	)
	convertCmd.MarkFlagRequired("input")

	convertCmd.Flags().StringVar(
		&outputPath,
		"output",
		"",
		"Path for the generated spreadsheet (generated when omitted)",
	)

	convertCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Run ingestion, mapping, and cleaning without writing output",
	)

	convertCmd.Flags().BoolVar(
		&keepInput,
		"keep-input",
		false,
		"Leave the input file in place even when archival is enabled",
	)
}

// runConvert wires configuration, logging, and the pipeline together for a
// single conversion request.
func runConvert() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	opts, err := logging.FromConfig(cfg, verbose)
	if err != nil {
		return err
	}
	logger, closer, err := logging.New(opts)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	fm := utils.NewFileManager(cfg.OutputDir, cfg.InputArchiveDir)
	p := pipeline.New(cfg, logger)

	if dryRun {
		if !p.DryRun(inputPath) {
			return fmt.Errorf("dry run failed, see log for details")
		}
		return nil
	}

	out := outputPath
	if out == "" {
		if err := fm.EnsureOutputDir(); err != nil {
			return err
		}
		out = fm.GenerateOutputPath(cfg.OutputNamePattern)
	} else if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if !p.Run(inputPath, out) {
		return fmt.Errorf("conversion failed, see log for details")
	}

	if cfg.Archive() && !keepInput {
		archived, err := fm.ArchiveInput(inputPath)
		if err != nil {
			// Archival is housekeeping; a failure does not undo a
			// successful conversion.
			logger.Warn("failed to archive input file", slog.Any("error", err))
		} else {
			logger.Info("archived input file", slog.String("path", archived))
		}
	}

	fmt.Printf("SUCCESS: output saved to %s\n", out)
	return nil
}
