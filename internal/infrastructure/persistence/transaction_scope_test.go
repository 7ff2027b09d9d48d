package persistence

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apptimesheet "github.com/timetracker/backend/internal/application/timesheet"
	"github.com/timetracker/backend/internal/domain/shared"
	"github.com/timetracker/backend/internal/domain/timesheet"
	forminfra "github.com/timetracker/backend/internal/infrastructure/form"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type eventRecorder struct {
	events []shared.DomainEvent
}

func (r *eventRecorder) Publish(_ context.Context, events ...shared.DomainEvent) error {
	r.events = append(r.events, events...)
	return nil
}

// failFileWrites makes every insert or update on the files table fail while
// the returned flag is set.
func failFileWrites(t *testing.T, db *gorm.DB) *atomic.Bool {
	t.Helper()
	var failing atomic.Bool
	fail := func(tx *gorm.DB) {
		if failing.Load() && tx.Statement.Table == "files" {
			_ = tx.AddError(errors.New("files table unavailable"))
		}
	}
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_files_create", fail))
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:fail_files_update", fail))
	return &failing
}

func TestGormTransactionScope_FinalizeRollsBackOnAttachFailure(t *testing.T) {
	db := newTestDatabase(t).DB
	ctx := context.Background()

	timesheets := NewGormTimesheetRepository(db)
	activities := NewGormActivityTypeRepository(db)
	files := NewGormFileRepository(db)

	require.NoError(t, timesheets.Save(ctx, newDraft(t, "TS-2024-00042", timesheet.Billable)))
	require.NoError(t, files.Save(ctx, newScreenshot(t, "session-9", "a.png")))
	failing := failFileWrites(t, db)

	pub := &eventRecorder{}
	svc := apptimesheet.NewService(timesheets, activities, files, NewGormTransactionScope(db),
		forminfra.NewRegistry(zap.NewNop()), pub, apptimesheet.ServiceConfig{}, zap.NewNop())
	in := apptimesheet.FinalizeInput{
		TimesheetName: "TS-2024-00042",
		ActivityName:  "QA review",
		Intervals: []apptimesheet.Interval{
			{From: "2024-03-01T09:00:00", To: "2024-03-01T10:00:00"},
			{From: "2024-03-01T11:00:00", To: "2024-03-01T11:30:00"},
		},
		SessionID: "session-9",
	}

	failing.Store(true)
	_, err := svc.Finalize(ctx, in)
	require.Error(t, err)
	assert.Empty(t, pub.events)

	stored, err := timesheets.FindByName(ctx, "TS-2024-00042")
	require.NoError(t, err)
	assert.Empty(t, stored.TimeLogs)
	assert.Equal(t, 1, stored.Version)
	exists, err := activities.ExistsByName(ctx, "QA review")
	require.NoError(t, err)
	assert.False(t, exists)
	shots, err := files.FindBySession(ctx, "session-9")
	require.NoError(t, err)
	require.Len(t, shots, 1)
	assert.False(t, shots[0].IsAttached())

	failing.Store(false)
	res, err := svc.Finalize(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 2, res.RowsAdded)

	stored, err = timesheets.FindByName(ctx, "TS-2024-00042")
	require.NoError(t, err)
	require.Len(t, stored.TimeLogs, 2)
	for _, row := range stored.TimeLogs {
		assert.Equal(t, "QA review", row.ActivityType)
	}
	exists, err = activities.ExistsByName(ctx, "QA review")
	require.NoError(t, err)
	assert.True(t, exists)
	shots, err = files.FindBySession(ctx, "session-9")
	require.NoError(t, err)
	assert.Equal(t, "TS-2024-00042", shots[0].AttachedToName)
	assert.NotEmpty(t, pub.events)
}
