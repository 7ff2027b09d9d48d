package timesheet

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timetracker/backend/internal/domain/shared"
)

func newDraft(t *testing.T, billable BillableFlag) *Timesheet {
	t.Helper()
	ts, err := NewTimesheet("TS-2025-00001", "PROJ-0001", "TASK-2025-00001", billable)
	require.NoError(t, err)
	return ts
}

func interval(from string, minutes int) TimeLogInput {
	start, _ := time.Parse("2006-01-02T15:04:05", from)
	return TimeLogInput{
		ActivityType: "Development",
		FromTime:     start,
		ToTime:       start.Add(time.Duration(minutes) * time.Minute),
		Task:         "TASK-2025-00001",
		Project:      "PROJ-0001",
		Completed:    true,
	}
}

func TestNewTimesheet(t *testing.T) {
	t.Run("creates draft", func(t *testing.T) {
		ts := newDraft(t, Billable)
		assert.Equal(t, "TS-2025-00001", ts.Name)
		assert.Equal(t, DocStatusDraft, ts.DocStatus)
		assert.Equal(t, Billable, ts.CustomIsBillable)
		assert.Empty(t, ts.TimeLogs)
		assert.Equal(t, 1, ts.GetVersion())
		assert.Equal(t, DocTypeTimesheet, ts.DocType())
		assert.Equal(t, "TS-2025-00001", ts.DocName())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewTimesheet("  ", "P", "T", NotBillable)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_NAME", de.Code)
	})
}

func TestTimesheet_AppendTimeLogs(t *testing.T) {
	t.Run("rows inherit billable flag and compute hours", func(t *testing.T) {
		ts := newDraft(t, Billable)

		added, err := ts.AppendTimeLogs([]TimeLogInput{
			interval("2025-09-21T17:48:56", 60),
			interval("2025-09-21T19:00:00", 30),
		})
		require.NoError(t, err)
		require.Len(t, added, 2)
		require.Len(t, ts.TimeLogs, 2)

		assert.Equal(t, 1, ts.TimeLogs[0].Idx)
		assert.Equal(t, 2, ts.TimeLogs[1].Idx)
		assert.Len(t, ts.TimeLogs[0].Name, 10)
		assert.NotEqual(t, ts.TimeLogs[0].Name, ts.TimeLogs[1].Name)
		assert.Equal(t, Billable, ts.TimeLogs[0].IsBillable)
		assert.True(t, ts.TimeLogs[1].Completed)
		assert.True(t, decimal.NewFromInt(1).Equal(ts.TimeLogs[0].Hours))
		assert.True(t, decimal.RequireFromString("1.5").Equal(ts.TotalHours()))
		assert.True(t, decimal.RequireFromString("1.5").Equal(ts.BillableHours()))

		events := ts.GetDomainEvents()
		require.Len(t, events, 1)
		appended, ok := events[0].(*TimeLogsAppendedEvent)
		require.True(t, ok)
		assert.Len(t, appended.RowNames, 2)
	})

	t.Run("rejects reversed interval", func(t *testing.T) {
		ts := newDraft(t, NotBillable)
		in := interval("2025-09-21T17:48:56", 60)
		in.FromTime, in.ToTime = in.ToTime, in.FromTime

		_, err := ts.AppendTimeLogs([]TimeLogInput{in})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_INTERVAL", de.Code)
		assert.Empty(t, ts.TimeLogs)
	})

	t.Run("rejects submitted timesheet", func(t *testing.T) {
		ts := newDraft(t, NotBillable)
		ts.DocStatus = DocStatusSubmitted

		_, err := ts.AppendTimeLogs([]TimeLogInput{interval("2025-09-21T17:48:56", 5)})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_STATE", de.Code)
	})

	t.Run("empty input is a no-op", func(t *testing.T) {
		ts := newDraft(t, NotBillable)
		added, err := ts.AppendTimeLogs(nil)
		require.NoError(t, err)
		assert.Nil(t, added)
		assert.Empty(t, ts.GetDomainEvents())
	})
}

func TestTimesheet_SetField(t *testing.T) {
	t.Run("parent billable change records event", func(t *testing.T) {
		ts := newDraft(t, NotBillable)

		changed, err := ts.SetField(DocTypeTimesheet, ts.Name, FieldCustomIsBillable, 1)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, Billable, ts.CustomIsBillable)

		events := ts.GetDomainEvents()
		require.Len(t, events, 1)
		ev := events[0].(*TimesheetBillableChangedEvent)
		assert.Equal(t, NotBillable, ev.Previous)
		assert.Equal(t, Billable, ev.Current)
	})

	t.Run("same value reports unchanged", func(t *testing.T) {
		ts := newDraft(t, Billable)
		changed, err := ts.SetField(DocTypeTimesheet, ts.Name, FieldCustomIsBillable, "1")
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Empty(t, ts.GetDomainEvents())
	})

	t.Run("child is_billable", func(t *testing.T) {
		ts := newDraft(t, NotBillable)
		_, err := ts.AppendTimeLogs([]TimeLogInput{interval("2025-09-21T17:48:56", 60)})
		require.NoError(t, err)
		row := ts.TimeLogs[0].Name

		changed, err := ts.SetField(DocTypeTimeLog, row, FieldIsBillable, 1)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, Billable, ts.TimeLog(row).IsBillable)

		changed, err = ts.SetField(DocTypeTimeLog, row, FieldIsBillable, 1)
		require.NoError(t, err)
		assert.False(t, changed)

		changed, err = ts.SetField(DocTypeTimeLog, row, FieldCompleted, 0)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.False(t, ts.TimeLog(row).Completed)
	})

	t.Run("child completed", func(t *testing.T) {
		ts := newDraft(t, NotBillable)
		_, err := ts.AppendTimeLogs([]TimeLogInput{interval("2025-09-21T09:00:00", 30)})
		require.NoError(t, err)
		row := ts.TimeLogs[0].Name

		for _, v := range []any{"no", false, 0.0, nil} {
			_, err = ts.SetField(DocTypeTimeLog, row, FieldCompleted, v)
			require.NoError(t, err)
			assert.False(t, ts.TimeLog(row).Completed, "value %v", v)
		}
		for _, v := range []any{"yes", true, "1", 1} {
			_, err = ts.SetField(DocTypeTimeLog, row, FieldCompleted, v)
			require.NoError(t, err)
			assert.True(t, ts.TimeLog(row).Completed, "value %v", v)
		}
		assert.Equal(t, NotBillable, ts.TimeLog(row).IsBillable)
	})

	errCases := []struct {
		name       string
		recordType string
		recordID   string
		field      string
		code       string
	}{
		{"unknown row", DocTypeTimeLog, "missing", FieldIsBillable, "NOT_FOUND"},
		{"other parent", DocTypeTimesheet, "TS-OTHER", FieldCustomIsBillable, "NOT_FOUND"},
		{"unknown doctype", "Task", "T-1", "status", "UNKNOWN_DOCTYPE"},
		{"unknown field", DocTypeTimesheet, "TS-2025-00001", "employee", "UNKNOWN_FIELD"},
	}
	for _, tc := range errCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newDraft(t, NotBillable)
			_, err := ts.SetField(tc.recordType, tc.recordID, tc.field, 1)
			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tc.code, de.Code)
		})
	}

	t.Run("cancelled timesheet is read-only", func(t *testing.T) {
		ts := newDraft(t, NotBillable)
		ts.DocStatus = DocStatusCancelled
		_, err := ts.SetField(DocTypeTimesheet, ts.Name, FieldCustomIsBillable, 1)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_STATE", de.Code)
		assert.Equal(t, NotBillable, ts.CustomIsBillable)
	})
}

func TestDocStatus(t *testing.T) {
	assert.True(t, DocStatusDraft.IsValid())
	assert.True(t, DocStatusCancelled.IsValid())
	assert.False(t, DocStatus(5).IsValid())
	assert.Equal(t, "Submitted", DocStatusSubmitted.String())
	assert.Equal(t, "DocStatus(5)", DocStatus(5).String())
}

func TestHoursBetween(t *testing.T) {
	from := time.Date(2025, 9, 21, 17, 0, 0, 0, time.UTC)
	assert.True(t, decimal.RequireFromString("0.25").Equal(HoursBetween(from, from.Add(15*time.Minute))))
	assert.True(t, decimal.Zero.Equal(HoursBetween(from, from)))
}
