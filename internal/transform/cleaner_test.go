package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmhco/applens-converter/internal/config"
	"github.com/hmhco/applens-converter/internal/dataset"
)

func mappedDataset(rows ...dataset.Row) *dataset.Dataset {
	ds := dataset.New([]string{
		"Ticket ID", "Ticket Type", "Open Date", "Status", "Closed Date",
		"Priority", "Application", "Assignment Group",
	})
	for _, row := range rows {
		ds.Append(row)
	}
	return ds
}

func TestCleanDropsOnlyKeylessRows(t *testing.T) {
	cfg := config.Default()
	ds := mappedDataset(
		dataset.Row{"Ticket ID": dataset.String("ABC-1"), "Open Date": dataset.String("2024-01-01")},
		dataset.Row{"Ticket ID": dataset.Empty(), "Open Date": dataset.String("2024-01-02")},
		dataset.Row{"Ticket ID": dataset.String("ABC-3"), "Open Date": dataset.String("2024-01-03")},
		dataset.Row{"Ticket ID": dataset.Empty()},
	)

	out, dropped := Clean(ds, cfg)

	assert.Equal(t, 2, dropped)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, "ABC-1", out.Get(0, "Ticket ID").Display())
	assert.Equal(t, "ABC-3", out.Get(1, "Ticket ID").Display())
}

func TestCleanCoercesDates(t *testing.T) {
	cfg := config.Default()
	ds := mappedDataset(
		dataset.Row{
			"Ticket ID":   dataset.String("ABC-1"),
			"Open Date":   dataset.String("2024-01-01 10:30"),
			"Closed Date": dataset.String("2024-02-01"),
		},
	)

	out, dropped := Clean(ds, cfg)
	require.Equal(t, 0, dropped)

	opened, ok := out.Get(0, "Open Date").Time()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC), opened)

	closed, ok := out.Get(0, "Closed Date").Time()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), closed)
}

func TestCleanAcceptsJiraExportDates(t *testing.T) {
	cfg := config.Default()
	ds := mappedDataset(
		dataset.Row{
			"Ticket ID": dataset.String("ABC-1"),
			"Open Date": dataset.String("05/Mar/24 2:45 PM"),
		},
	)

	out, _ := Clean(ds, cfg)
	opened, ok := out.Get(0, "Open Date").Time()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 5, 14, 45, 0, 0, time.UTC), opened)
}

func TestCleanUnparseableDateBecomesEmptyWithoutFailing(t *testing.T) {
	cfg := config.Default()
	ds := mappedDataset(
		dataset.Row{
			"Ticket ID":   dataset.String("ABC-1"),
			"Open Date":   dataset.String("not a date"),
			"Closed Date": dataset.String("soon"),
		},
	)

	out, dropped := Clean(ds, cfg)

	assert.Equal(t, 0, dropped)
	assert.True(t, out.Get(0, "Open Date").IsEmpty())
	// Closed Date is a blank column: the unparseable value degrades to an
	// explicit blank rather than an unset cell.
	assert.Equal(t, "", out.Get(0, "Closed Date").Display())
	assert.Equal(t, dataset.KindString, out.Get(0, "Closed Date").Kind())
}

func TestCleanNormalizesEmptyClosedDateToBlank(t *testing.T) {
	cfg := config.Default()
	ds := mappedDataset(
		dataset.Row{
			"Ticket ID":   dataset.String("ABC-1"),
			"Closed Date": dataset.Empty(),
		},
	)

	out, _ := Clean(ds, cfg)

	v := out.Get(0, "Closed Date")
	assert.False(t, v.IsEmpty())
	assert.Equal(t, "", v.Display())
}

func TestCleanNeverAffectsOtherRows(t *testing.T) {
	// Row-count delta equals exactly the number of keyless rows.
	cfg := config.Default()
	ds := mappedDataset(
		dataset.Row{"Ticket ID": dataset.String("A")},
		dataset.Row{"Ticket ID": dataset.String("B")},
		dataset.Row{"Ticket ID": dataset.Empty()},
	)

	out, dropped := Clean(ds, cfg)
	assert.Equal(t, ds.Len()-dropped, out.Len())
}
