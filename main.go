// =============================================================================
// Jira to Applens Converter - Main Entry Point
// =============================================================================
//
// CLI tool converting Jira CSV ticket dumps into fixed-schema XLSX
// spreadsheets for bulk upload into Applens.
//
// USAGE:
//   applens-converter convert   - Convert a ticket dump into an upload file
//   applens-converter version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/        : CLI command definitions (Cobra)
//   - internal/   : core pipeline (loader, transform, writer, orchestrator)
//   - pkg/        : shared utilities
//
// =============================================================================

package main

import (
	"github.com/hmhco/applens-converter/cmd"
)

func main() {
	cmd.Execute()
}
