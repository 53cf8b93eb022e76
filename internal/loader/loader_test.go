package loader

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var required = []string{"Issue Key", "Issue Type", "Updated", "Status", "Resolved"}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeCSV(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.csv")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestLoadCanonicalizesHeaderCaseAndWhitespace(t *testing.T) {
	path := writeCSV(t, []byte(
		"issue key,ISSUE TYPE,  Updated ,status,Resolved\n"+
			"ABC-1,Bug,2024-01-01,Open,\n"))

	ds, err := Load(path, required, discard())
	require.NoError(t, err)

	assert.Equal(t, required, ds.Columns())
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "ABC-1", ds.Get(0, "Issue Key").Display())
	assert.Equal(t, "2024-01-01", ds.Get(0, "Updated").Display())
	assert.True(t, ds.Get(0, "Resolved").IsEmpty())
}

func TestLoadReadsOnlyRequiredColumns(t *testing.T) {
	path := writeCSV(t, []byte(
		"Reporter,Issue Key,Labels,Issue Type,Updated,Status,Resolved\n"+
			"alice,ABC-1,infra,Bug,2024-01-01,Open,2024-02-01\n"))

	ds, err := Load(path, required, discard())
	require.NoError(t, err)

	assert.Equal(t, required, ds.Columns())
	assert.False(t, ds.HasColumn("Reporter"))
	assert.Equal(t, "2024-02-01", ds.Get(0, "Resolved").Display())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"), required, discard())
	require.Error(t, err)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestLoadEnumeratesAllMissingColumns(t *testing.T) {
	path := writeCSV(t, []byte(
		"Issue Key,Status\n"+
			"ABC-1,Open\n"))

	_, err := Load(path, required, discard())
	require.Error(t, err)

	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, []string{"Issue Type", "Updated", "Resolved"}, se.Missing)
	assert.Contains(t, se.Error(), "Issue Type")
	assert.Contains(t, se.Error(), "Resolved")
}

func TestLoadLatin1Fallback(t *testing.T) {
	// 0xE9 is "é" in Latin-1 and invalid UTF-8.
	path := writeCSV(t, []byte(
		"Issue Key,Issue Type,Updated,Status,Resolved\n"+
			"ABC-2,Bug,2024-01-01,R\xe9solu,\n"))

	ds, err := Load(path, required, discard())
	require.NoError(t, err)

	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "Résolu", ds.Get(0, "Status").Display())
}

func TestLoadSkipsFullyEmptyRecords(t *testing.T) {
	path := writeCSV(t, []byte(
		"Issue Key,Issue Type,Updated,Status,Resolved\n"+
			"ABC-1,Bug,2024-01-01,Open,\n"+
			",,,,\n"+
			"ABC-2,Task,2024-01-02,Done,2024-01-03\n"))

	ds, err := Load(path, required, discard())
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeCSV(t, []byte(""))

	_, err := Load(path, required, discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestLoadTrimsCellWhitespace(t *testing.T) {
	path := writeCSV(t, []byte(
		"Issue Key,Issue Type,Updated,Status,Resolved\n"+
			"ABC-1 , Bug ,2024-01-01, Open ,\n"))

	ds, err := Load(path, required, discard())
	require.NoError(t, err)
	assert.Equal(t, "ABC-1", ds.Get(0, "Issue Key").Display())
	assert.Equal(t, "Bug", ds.Get(0, "Issue Type").Display())
}
