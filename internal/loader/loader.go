// =============================================================================
// Jira to Applens Converter - Source Loader
// =============================================================================
//
// This module reads the exported ticket dump and produces a Dataset holding
// exactly the columns declared on the source side of the column mapping,
// normalized to their canonical names.
//
// LOADING PROCESS:
//   1. Verify the input path references an existing file
//   2. Probe the header row only, decoding UTF-8 first and falling back to
//      Latin-1 when the file is not valid UTF-8
//   3. Resolve each required column against the actual header, matching
//      case/whitespace-insensitively
//   4. Fail with a SchemaError enumerating all unresolvable columns
//   5. Re-read the file (same decode policy), materializing only the
//      resolved columns under their canonical names
//
// File handles are scoped to each read and released before returning; nothing
// is held across pipeline stages.
//
// =============================================================================

package loader

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/hmhco/applens-converter/internal/dataset"
)

// Load reads the CSV at path and returns a Dataset whose columns are exactly
// the required source names, in the given order.
func Load(path string, required []string, log *slog.Logger) (*dataset.Dataset, error) {
	log.Info("Phase 1: reading input CSV file", slog.String("path", path))

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to stat input file: %w", err)
	}

	// Probe the header row to learn the actual column names.
	header, err := readRecords(path, true, log)
	if err != nil {
		return nil, err
	}
	actual := headerLookup(header[0])

	// Resolve every required column, accumulating all misses so the schema
	// error reports the complete list.
	renames := make(map[string]string, len(required))
	var missing []string
	for _, req := range required {
		if actualName, ok := actual[normalizeName(req)]; ok {
			renames[actualName] = req
		} else {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	// Re-read the file, materializing only the resolved columns.
	records, err := readRecords(path, false, log)
	if err != nil {
		return nil, err
	}

	// Map each canonical name to its column index in the actual header.
	index := make(map[string]int, len(required))
	for i, name := range records[0] {
		if canonical, ok := renames[strings.TrimSpace(name)]; ok {
			if _, seen := index[canonical]; !seen {
				index[canonical] = i
			}
		}
	}

	ds := dataset.New(required)
	for _, record := range records[1:] {
		if isRecordEmpty(record) {
			continue
		}
		row := make(dataset.Row, len(required))
		for _, canonical := range required {
			i, ok := index[canonical]
			if ok && i < len(record) {
				row[canonical] = dataset.String(strings.TrimSpace(record[i]))
			} else {
				row[canonical] = dataset.Empty()
			}
		}
		ds.Append(row)
	}

	log.Info("successfully loaded rows", slog.Int("count", ds.Len()))
	return ds, nil
}

// =============================================================================
// DECODING
// =============================================================================

// readRecords reads the file as CSV, decoding UTF-8 first. When the content
// is not valid UTF-8 the read is retried with a Latin-1 decoding; a failure
// of the fallback as well surfaces as an EncodingError. With headerOnly set,
// only the header record is read.
func readRecords(path string, headerOnly bool, log *slog.Logger) ([][]string, error) {
	records, err := readWith(path, encoding.UTF8Validator, headerOnly)
	if err != nil {
		if !errors.Is(err, encoding.ErrInvalidUTF8) {
			return nil, err
		}
		log.Warn("UTF-8 decode failed, retrying with Latin-1", slog.String("path", path))
		records, err = readWith(path, charmap.ISO8859_1.NewDecoder(), headerOnly)
		if err != nil {
			return nil, &EncodingError{Path: path, Err: err}
		}
	}
	return records, nil
}

// readWith reads the file as CSV through the given transformer.
func readWith(path string, dec transform.Transformer, headerOnly bool) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(transform.NewReader(bufio.NewReader(file), dec))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	if headerOnly {
		record, err := reader.Read()
		if err == io.EOF {
			return nil, fmt.Errorf("input file has no header row")
		}
		if err != nil {
			return nil, err
		}
		return [][]string{record}, nil
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("input file has no header row")
	}
	return records, nil
}

// =============================================================================
// HEADER RESOLUTION
// =============================================================================

// headerLookup maps each normalized header name to its original form. On
// duplicate normalized names the last occurrence wins.
func headerLookup(header []string) map[string]string {
	lookup := make(map[string]string, len(header))
	for _, name := range header {
		lookup[normalizeName(name)] = strings.TrimSpace(name)
	}
	return lookup
}

// normalizeName lowercases and strips a column name for case/whitespace
// insensitive matching.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// isRecordEmpty checks if a record contains only empty cells.
func isRecordEmpty(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
