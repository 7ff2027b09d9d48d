package timesheet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timetracker/backend/internal/domain/screenshot"
	"github.com/timetracker/backend/internal/domain/timesheet"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAuditHandler_EventTypes(t *testing.T) {
	h := NewAuditHandler(zap.NewNop())
	assert.ElementsMatch(t, []string{
		timesheet.EventTypeTimesheetBillableChanged,
		timesheet.EventTypeTimeLogsAppended,
		timesheet.EventTypeScreenshotsAttached,
		screenshot.EventTypeScreenshotUploaded,
		screenshot.EventTypeScreenshotDeleted,
	}, h.EventTypes())
}

func TestAuditHandler_Handle(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := NewAuditHandler(zap.New(core))

	ts := draftSheet(t, timesheet.NotBillable)
	_, err := ts.SetCustomIsBillable(timesheet.Billable)
	require.NoError(t, err)

	require.NoError(t, h.Handle(context.Background(), ts.GetDomainEvents()[0]))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "domain event", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, timesheet.EventTypeTimesheetBillableChanged, fields["event_type"])
	assert.Equal(t, ts.Name, fields["timesheet"])
	assert.Equal(t, int64(1), fields["current"])
}
