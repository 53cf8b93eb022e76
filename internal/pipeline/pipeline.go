// =============================================================================
// Jira to Applens Converter - Pipeline Orchestrator
// =============================================================================
//
// The orchestrator runs the four stages in strict sequence:
//
//   Loader -> Mapper -> Validator/Cleaner -> Writer
//
// and resolves every failure, whatever its origin, into a single boolean
// outcome. No error escapes Run; diagnostic detail is communicated only
// through the logger. Loading and mapping hard-fail (the input is unusable),
// cleaning only degrades data, and writer failures are logged and converted
// so callers can tell bad input from a bad output destination by the log
// record rather than a crash.
//
// Each run builds its own Datasets from scratch, so concurrent runs over
// distinct input/output paths need no synchronization.
//
// =============================================================================

package pipeline

import (
	"log/slog"

	"github.com/hmhco/applens-converter/internal/config"
	"github.com/hmhco/applens-converter/internal/dataset"
	"github.com/hmhco/applens-converter/internal/loader"
	"github.com/hmhco/applens-converter/internal/transform"
	"github.com/hmhco/applens-converter/internal/xlsxwriter"
)

// Pipeline converts one ticket dump into one upload spreadsheet per Run.
type Pipeline struct {
	cfg *config.Config
	log *slog.Logger
}

// New creates a Pipeline over the given configuration.
func New(cfg *config.Config, log *slog.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, log: log}
}

// Run executes the full pipeline and reports success. Either the complete
// output artifact is produced at outputPath or nothing is.
func (p *Pipeline) Run(inputPath, outputPath string) bool {
	ds, ok := p.prepare(inputPath)
	if !ok {
		return false
	}

	p.log.Info("Phase 4: writing output", slog.String("path", outputPath))
	if err := xlsxwriter.Write(ds, p.cfg.FinalColumnOrder, outputPath); err != nil {
		p.log.Error("failed to write output file", slog.Any("error", err))
		return false
	}

	p.log.Info("transformation complete", slog.Int("rows", ds.Len()), slog.String("output", outputPath))
	return true
}

// DryRun executes the load, map, and clean stages without writing output.
func (p *Pipeline) DryRun(inputPath string) bool {
	ds, ok := p.prepare(inputPath)
	if !ok {
		return false
	}
	p.log.Info("dry run complete, no output written", slog.Int("rows", ds.Len()))
	return true
}

// prepare runs the hard-fail and soft-degrade stages, returning the cleaned
// Dataset.
func (p *Pipeline) prepare(inputPath string) (*dataset.Dataset, bool) {
	ds, err := loader.Load(inputPath, p.cfg.SourceColumns(), p.log)
	if err != nil {
		p.log.Error("pipeline failed", slog.Any("error", err))
		return nil, false
	}

	p.log.Info("Phase 2: applying transformations")
	ds = transform.Map(ds, p.cfg)

	p.log.Info("Phase 3: validating data")
	ds, dropped := transform.Clean(ds, p.cfg)
	if dropped > 0 {
		p.log.Warn("dropped rows due to missing ticket IDs",
			slog.Int("count", dropped), slog.String("key_column", p.cfg.KeyColumn))
	}

	return ds, true
}
