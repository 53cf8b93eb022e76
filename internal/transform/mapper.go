// =============================================================================
// Jira to Applens Converter - Mapper Stage
// =============================================================================
//
// The mapper turns a Dataset keyed by canonical source names into one keyed
// by target schema names, and injects the constant-valued columns. Given a
// well-formed Dataset from the loader this stage cannot fail and never
// changes the row count.
//
// =============================================================================

package transform

import (
	"github.com/hmhco/applens-converter/internal/config"
	"github.com/hmhco/applens-converter/internal/dataset"
)

// Map renames every column using the configured column mapping, then sets
// each constant field on every row in declared order. Constants are applied
// without collision checks: a constant that shares a name with a mapped
// column overwrites it.
func Map(ds *dataset.Dataset, cfg *config.Config) *dataset.Dataset {
	out := ds.Rename(cfg.RenameMap())
	for _, c := range cfg.ConstantFields {
		out = out.SetColumn(c.Column, dataset.String(c.Value))
	}
	return out
}
