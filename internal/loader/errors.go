// =============================================================================
// Jira to Applens Converter - Loader Error Kinds
// =============================================================================
//
// Loading is a hard-fail stage: each of these errors indicates the input is
// fundamentally unusable and aborts the run.
//
// =============================================================================

package loader

import (
	"fmt"
	"strings"
)

// NotFoundError reports an input path that does not reference an existing file.
type NotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("input file does not exist: %s", e.Path)
}

// SchemaError reports required columns that could not be resolved in the
// input header. Missing enumerates every unresolvable column, not just the
// first one encountered.
type SchemaError struct {
	Missing []string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// EncodingError reports a file that could not be decoded as UTF-8 and whose
// Latin-1 fallback decoding failed as well. No further fallback is attempted.
type EncodingError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *EncodingError) Error() string {
	return fmt.Sprintf("unable to decode %s as UTF-8 or Latin-1: %v", e.Path, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *EncodingError) Unwrap() error {
	return e.Err
}
