// =============================================================================
// Jira to Applens Converter - File Manager Utility
// =============================================================================
//
// File management around the pipeline: output directory handling, generated
// output file names, and archival of successfully processed input files.
// The pipeline itself never deletes or moves files it did not create;
// archival belongs to the CLI surface and runs only after a successful
// conversion.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileManager handles file operations around a conversion run.
type FileManager struct {
	// OutputDir is the directory for generated spreadsheets.
	OutputDir string

	// InputArchiveDir is the directory processed input files are moved to.
	InputArchiveDir string
}

// NewFileManager creates a FileManager over the given directories.
func NewFileManager(outputDir, inputArchiveDir string) *FileManager {
	return &FileManager{
		OutputDir:       outputDir,
		InputArchiveDir: inputArchiveDir,
	}
}

// EnsureOutputDir creates the output directory if it does not exist.
func (fm *FileManager) EnsureOutputDir() error {
	if err := os.MkdirAll(fm.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fm.OutputDir, err)
	}
	return nil
}

// GenerateOutputPath builds an output path in OutputDir from the naming
// pattern. Supported placeholders:
//
//	{uuid}      - a random UUID
//	{timestamp} - current timestamp (YYYYMMDD_HHMMSS)
//
// The generated name always carries an .xlsx extension.
func (fm *FileManager) GenerateOutputPath(pattern string) string {
	name := pattern
	name = strings.ReplaceAll(name, "{uuid}", uuid.New().String())
	name = strings.ReplaceAll(name, "{timestamp}", time.Now().Format("20060102_150405"))

	if filepath.Ext(name) != ".xlsx" {
		name += ".xlsx"
	}

	return filepath.Join(fm.OutputDir, name)
}

// ArchiveInput moves a processed input file into the archive directory and
// returns its new path. A rename is attempted first; when the archive sits
// on a different filesystem the file is copied and the original removed.
func (fm *FileManager) ArchiveInput(path string) (string, error) {
	if err := os.MkdirAll(fm.InputArchiveDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	archivePath := filepath.Join(fm.InputArchiveDir, filepath.Base(path))

	if err := os.Rename(path, archivePath); err == nil {
		return archivePath, nil
	}

	if err := copyFile(path, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive input file: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("failed to remove archived input file: %w", err)
	}

	return archivePath, nil
}

// copyFile copies src to dst, overwriting dst if it exists.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
