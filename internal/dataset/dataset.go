// =============================================================================
// Jira to Applens Converter - Dataset Model
// =============================================================================
//
// This package defines the tabular value model passed between pipeline stages.
// A Dataset is an ordered set of columns over an ordered sequence of rows.
// Each cell is a typed Value: a string, a date, or empty. Every pipeline stage
// produces a fresh Dataset; no Dataset is shared or mutated across stages.
//
// =============================================================================

package dataset

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// VALUE
// =============================================================================

// Kind identifies the type of a cell value.
type Kind int

const (
	// KindEmpty is a missing or null cell.
	KindEmpty Kind = iota

	// KindString is a plain text cell.
	KindString

	// KindDate is a coerced date cell.
	KindDate
)

// Value is a single cell. The zero Value is empty.
type Value struct {
	kind Kind
	str  string
	date time.Time
}

// String returns a string-valued cell. An empty or all-whitespace string
// produces an empty cell, matching how the source export represents nulls.
func String(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Value{}
	}
	return Value{kind: KindString, str: s}
}

// Blank returns an explicit empty-string cell. Unlike an empty cell, which
// is left unset in the output artifact, a blank cell is written as an empty
// string.
func Blank() Value {
	return Value{kind: KindString}
}

// Date returns a date-valued cell.
func Date(t time.Time) Value {
	return Value{kind: KindDate, date: t}
}

// Empty returns an empty cell.
func Empty() Value {
	return Value{}
}

// Kind returns the kind of the cell.
func (v Value) Kind() Kind {
	return v.kind
}

// IsEmpty reports whether the cell holds no value.
func (v Value) IsEmpty() bool {
	return v.kind == KindEmpty
}

// Time returns the date held by the cell. The second return value is false
// for non-date cells.
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindDate {
		return time.Time{}, false
	}
	return v.date, true
}

// Display renders the cell for the output artifact. Dates without a time
// component render as 2006-01-02, dates with one as 2006-01-02 15:04:05, and
// empty cells as a blank string.
func (v Value) Display() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindDate:
		h, m, s := v.date.Clock()
		if h == 0 && m == 0 && s == 0 {
			return v.date.Format("2006-01-02")
		}
		return v.date.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

// =============================================================================
// DATASET
// =============================================================================

// Row holds the cell values of one record, keyed by column name.
type Row map[string]Value

// Dataset is an ordered sequence of rows sharing a column schema.
type Dataset struct {
	columns []string
	rows    []Row
}

// New creates an empty Dataset with the given column schema.
func New(columns []string) *Dataset {
	return &Dataset{
		columns: append([]string(nil), columns...),
	}
}

// Append adds a row. Cells for columns outside the schema are ignored;
// schema columns missing from the row read as empty.
func (d *Dataset) Append(row Row) {
	r := make(Row, len(d.columns))
	for _, col := range d.columns {
		r[col] = row[col]
	}
	d.rows = append(d.rows, r)
}

// Columns returns the column names in schema order.
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.columns...)
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Get returns the cell at the given row index and column.
func (d *Dataset) Get(i int, column string) Value {
	return d.rows[i][column]
}

// HasColumn reports whether the column exists in the schema.
func (d *Dataset) HasColumn(name string) bool {
	for _, col := range d.columns {
		if col == name {
			return true
		}
	}
	return false
}

// =============================================================================
// TRANSFORMATION OPERATIONS
// =============================================================================
// Each operation returns a fresh Dataset, leaving the receiver untouched, so
// pipeline stages own their outputs outright.

// Rename returns a copy with columns renamed per the given old->new mapping.
// Column order is preserved; names absent from the mapping are kept as-is.
func (d *Dataset) Rename(renames map[string]string) *Dataset {
	out := &Dataset{columns: make([]string, len(d.columns))}
	for i, col := range d.columns {
		if to, ok := renames[col]; ok {
			out.columns[i] = to
		} else {
			out.columns[i] = col
		}
	}

	out.rows = make([]Row, len(d.rows))
	for i, row := range d.rows {
		r := make(Row, len(out.columns))
		for j, col := range d.columns {
			r[out.columns[j]] = row[col]
		}
		out.rows[i] = r
	}
	return out
}

// SetColumn returns a copy with the named column set to the given value on
// every row. The column is appended to the schema if new, overwritten if
// already present.
func (d *Dataset) SetColumn(name string, value Value) *Dataset {
	out := d.clone()
	if !out.HasColumn(name) {
		out.columns = append(out.columns, name)
	}
	for _, row := range out.rows {
		row[name] = value
	}
	return out
}

// Filter returns a copy containing only the rows for which keep returns true.
func (d *Dataset) Filter(keep func(Row) bool) *Dataset {
	out := &Dataset{columns: append([]string(nil), d.columns...)}
	for _, row := range d.rows {
		if keep(row) {
			out.rows = append(out.rows, cloneRow(row))
		}
	}
	return out
}

// MapColumn returns a copy with fn applied to every cell of the named column.
// Datasets without the column are returned unchanged.
func (d *Dataset) MapColumn(name string, fn func(Value) Value) *Dataset {
	out := d.clone()
	if !out.HasColumn(name) {
		return out
	}
	for _, row := range out.rows {
		row[name] = fn(row[name])
	}
	return out
}

// Project returns a copy containing exactly the given columns in that exact
// order. Columns outside the selection are dropped. If any requested column
// is absent, a ProjectionError enumerating every missing name is returned.
func (d *Dataset) Project(order []string) (*Dataset, error) {
	var missing []string
	for _, col := range order {
		if !d.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &ProjectionError{Missing: missing}
	}

	out := New(order)
	for _, row := range d.rows {
		out.Append(row)
	}
	return out, nil
}

// clone returns a deep copy of the Dataset.
func (d *Dataset) clone() *Dataset {
	out := &Dataset{
		columns: append([]string(nil), d.columns...),
		rows:    make([]Row, len(d.rows)),
	}
	for i, row := range d.rows {
		out.rows[i] = cloneRow(row)
	}
	return out
}

func cloneRow(row Row) Row {
	r := make(Row, len(row))
	for k, v := range row {
		r[k] = v
	}
	return r
}

// =============================================================================
// PROJECTION ERROR
// =============================================================================

// ProjectionError reports a final column selection that references columns
// absent from the dataset.
type ProjectionError struct {
	// Missing lists every requested column that does not exist.
	Missing []string
}

// Error implements the error interface.
func (e *ProjectionError) Error() string {
	return fmt.Sprintf("projection references missing columns: %s", strings.Join(e.Missing, ", "))
}
