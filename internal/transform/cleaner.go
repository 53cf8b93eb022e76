// =============================================================================
// Jira to Applens Converter - Validator/Cleaner Stage
// =============================================================================
//
// This stage applies the soft-degrade policy: partial or dirty rows are
// expected in ticket dumps and must not block the whole batch. Rows missing
// the mandatory key field are dropped, date-bearing columns are coerced
// best-effort (unparseable values become empty cells), and the configured
// blank columns have their empty cells normalized to an explicit empty
// string so the spreadsheet shows a blank rather than a sentinel.
//
// The stage never fails.
//
// =============================================================================

package transform

import (
	"strings"
	"time"

	"github.com/hmhco/applens-converter/internal/config"
	"github.com/hmhco/applens-converter/internal/dataset"
)

// dateLayouts are the accepted input date formats, tried in order. The list
// covers ISO forms, the Jira export format, and common US slash forms.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/Jan/06 3:04 PM",
	"02/Jan/2006 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"2006/01/02",
}

// Clean returns the cleaned Dataset and the number of rows dropped for
// missing the key column. Dropping is silent beyond the returned count; the
// orchestrator reports it at warning level.
func Clean(ds *dataset.Dataset, cfg *config.Config) (*dataset.Dataset, int) {
	before := ds.Len()
	out := ds.Filter(func(row dataset.Row) bool {
		return !row[cfg.KeyColumn].IsEmpty()
	})
	dropped := before - out.Len()

	for _, col := range cfg.DateColumns {
		out = out.MapColumn(col, coerceDate)
	}

	for _, col := range cfg.BlankColumns {
		out = out.MapColumn(col, func(v dataset.Value) dataset.Value {
			if v.IsEmpty() {
				return dataset.Blank()
			}
			return v
		})
	}

	return out, dropped
}

// coerceDate converts a cell to a date cell. The coercion is total: values
// that match no known layout become empty cells, never an error.
func coerceDate(v dataset.Value) dataset.Value {
	if v.Kind() != dataset.KindString {
		return v
	}
	s := strings.TrimSpace(v.Display())
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dataset.Date(t)
		}
	}
	return dataset.Empty()
}
