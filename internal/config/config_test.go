package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultReproducesProductionTables(t *testing.T) {
	cfg := Default()

	assert.Equal(t, []ColumnRule{
		{Source: "Issue Key", Target: "Ticket ID"},
		{Source: "Issue Type", Target: "Ticket Type"},
		{Source: "Updated", Target: "Open Date"},
		{Source: "Status", Target: "Status"},
		{Source: "Resolved", Target: "Closed Date"},
	}, cfg.ColumnMapping)

	assert.Equal(t, []ConstantField{
		{Column: "Priority", Value: "NONE"},
		{Column: "Application", Value: "HMOF"},
		{Column: "Assignment Group", Value: "HMH Support Group"},
	}, cfg.ConstantFields)

	assert.Equal(t, []string{
		"Ticket ID", "Ticket Type", "Open Date", "Priority",
		"Status", "Application", "Assignment Group", "Closed Date",
	}, cfg.FinalColumnOrder)

	assert.Equal(t, "Ticket ID", cfg.KeyColumn)
	assert.Equal(t, []string{"Open Date", "Closed Date"}, cfg.DateColumns)
	assert.Equal(t, []string{"Closed Date"}, cfg.BlankColumns)
	assert.True(t, cfg.Archive())
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().ColumnMapping, cfg.ColumnMapping)
}

func TestLoadOverridesAndFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
key_column: Incident ID
archive_on_success: false
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Incident ID", cfg.KeyColumn)
	assert.False(t, cfg.Archive())
	assert.Equal(t, "debug", cfg.LogLevel)

	// Everything not overridden keeps its default.
	assert.Len(t, cfg.ColumnMapping, 5)
	assert.Equal(t, "./output", cfg.OutputDir)
}

func TestLoadRejectsIncompleteMappingRule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
column_mapping:
  - source: Issue Key
    target: ""
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "column_mapping")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("column_mapping: ["), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestSchemaAccessors(t *testing.T) {
	cfg := Default()

	assert.Equal(t,
		[]string{"Issue Key", "Issue Type", "Updated", "Status", "Resolved"},
		cfg.SourceColumns())

	renames := cfg.RenameMap()
	assert.Equal(t, "Ticket ID", renames["Issue Key"])
	assert.Equal(t, "Closed Date", renames["Resolved"])
}
