// =============================================================================
// Jira to Applens Converter - XLSX Writer
// =============================================================================
//
// This module serializes the cleaned Dataset to the output spreadsheet:
// a single sheet with a header row and no index column, holding exactly the
// configured final columns in their exact order. Columns outside the final
// order are dropped; a final column absent from the Dataset aborts emission
// with a ProjectionError before anything is written, so either the full
// artifact is produced or nothing is.
//
// =============================================================================

package xlsxwriter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hmhco/applens-converter/internal/dataset"
)

// sheetName is the single sheet holding the upload data.
const sheetName = "Sheet1"

// WriteError reports a failure to serialize the artifact to the output path,
// e.g. permissions or disk problems.
type WriteError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write output file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying write error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// Write projects ds onto the final column order and saves the spreadsheet to
// path. It returns a *dataset.ProjectionError when the final order references
// a missing column, or a *WriteError when saving fails.
func Write(ds *dataset.Dataset, finalOrder []string, path string) error {
	final, err := ds.Project(finalOrder)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(finalOrder))
	for i, col := range finalOrder {
		header[i] = col
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	for r := 0; r < final.Len(); r++ {
		row := make([]interface{}, len(finalOrder))
		for i, col := range finalOrder {
			v := final.Get(r, col)
			if v.IsEmpty() {
				// Empty cells are left unset; blank cells and everything
				// else are written as their display string.
				row[i] = nil
				continue
			}
			row[i] = v.Display()
		}

		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return &WriteError{Path: path, Err: err}
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return &WriteError{Path: path, Err: err}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
