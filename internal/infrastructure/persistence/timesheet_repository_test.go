package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timetracker/backend/internal/domain/shared"
	"github.com/timetracker/backend/internal/domain/timesheet"
	"gorm.io/gorm"
)

func newDraft(t *testing.T, name string, billable timesheet.BillableFlag) *timesheet.Timesheet {
	t.Helper()
	ts, err := timesheet.NewTimesheet(name, "PROJ-0001", "TASK-0001", billable)
	require.NoError(t, err)
	return ts
}

func appendRows(t *testing.T, ts *timesheet.Timesheet, n int) {
	t.Helper()
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	inputs := make([]timesheet.TimeLogInput, n)
	for i := range inputs {
		from := start.Add(time.Duration(i) * time.Hour)
		inputs[i] = timesheet.TimeLogInput{
			ActivityType: "Development",
			FromTime:     from,
			ToTime:       from.Add(30 * time.Minute),
			Task:         "TASK-0001",
			Project:      "PROJ-0001",
			Completed:    true,
		}
	}
	_, err := ts.AppendTimeLogs(inputs)
	require.NoError(t, err)
}

func TestGormTimesheetRepository_SaveAndFind(t *testing.T) {
	repo := NewGormTimesheetRepository(newTestDatabase(t).DB)
	ctx := context.Background()

	ts := newDraft(t, "TS-2024-00001", timesheet.Billable)
	appendRows(t, ts, 2)
	require.NoError(t, repo.Save(ctx, ts))
	assert.Equal(t, 1, ts.Version)

	found, err := repo.FindByName(ctx, "TS-2024-00001")
	require.NoError(t, err)
	assert.Equal(t, ts.ID, found.ID)
	assert.Equal(t, timesheet.Billable, found.CustomIsBillable)
	assert.Equal(t, timesheet.DocStatusDraft, found.DocStatus)
	require.Len(t, found.TimeLogs, 2)
	assert.Equal(t, ts.TimeLogs[0].Name, found.TimeLogs[0].Name)
	assert.Equal(t, 1, found.TimeLogs[0].Idx)
	assert.Equal(t, 2, found.TimeLogs[1].Idx)
	assert.Equal(t, timesheet.Billable, found.TimeLogs[1].IsBillable)
	assert.True(t, found.TimeLogs[0].Hours.Equal(ts.TimeLogs[0].Hours), found.TimeLogs[0].Hours.String())
	assert.True(t, found.TimeLogs[0].FromTime.Equal(ts.TimeLogs[0].FromTime))
}

func TestGormTimesheetRepository_FindByName_NotFound(t *testing.T) {
	repo := NewGormTimesheetRepository(newTestDatabase(t).DB)

	_, err := repo.FindByName(context.Background(), "TS-missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormTimesheetRepository_UpdatePersistsBillableRows(t *testing.T) {
	repo := NewGormTimesheetRepository(newTestDatabase(t).DB)
	ctx := context.Background()

	ts := newDraft(t, "TS-2024-00002", timesheet.NotBillable)
	appendRows(t, ts, 2)
	require.NoError(t, repo.Save(ctx, ts))

	loaded, err := repo.FindByName(ctx, ts.Name)
	require.NoError(t, err)
	_, err = loaded.SetCustomIsBillable(timesheet.Billable)
	require.NoError(t, err)
	for i := range loaded.TimeLogs {
		_, err := loaded.SetField(timesheet.DocTypeTimeLog, loaded.TimeLogs[i].Name, timesheet.FieldIsBillable, 1)
		require.NoError(t, err)
	}
	require.NoError(t, repo.Save(ctx, loaded))
	assert.Equal(t, 2, loaded.Version)

	reloaded, err := repo.FindByName(ctx, ts.Name)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Version)
	assert.Equal(t, timesheet.Billable, reloaded.CustomIsBillable)
	for _, row := range reloaded.TimeLogs {
		assert.Equal(t, timesheet.Billable, row.IsBillable, row.Name)
	}
}

func TestGormTimesheetRepository_AppendsAndRemovesRows(t *testing.T) {
	repo := NewGormTimesheetRepository(newTestDatabase(t).DB)
	ctx := context.Background()

	ts := newDraft(t, "TS-2024-00003", timesheet.NotBillable)
	appendRows(t, ts, 3)
	require.NoError(t, repo.Save(ctx, ts))

	loaded, err := repo.FindByName(ctx, ts.Name)
	require.NoError(t, err)
	loaded.TimeLogs = loaded.TimeLogs[:1]
	appendRows(t, loaded, 1)
	require.NoError(t, repo.Save(ctx, loaded))

	reloaded, err := repo.FindByName(ctx, ts.Name)
	require.NoError(t, err)
	require.Len(t, reloaded.TimeLogs, 2)
	assert.Equal(t, ts.TimeLogs[0].Name, reloaded.TimeLogs[0].Name)
	assert.Equal(t, loaded.TimeLogs[1].Name, reloaded.TimeLogs[1].Name)
}

func TestGormTimesheetRepository_ConcurrencyConflict(t *testing.T) {
	repo := NewGormTimesheetRepository(newTestDatabase(t).DB)
	ctx := context.Background()

	ts := newDraft(t, "TS-2024-00004", timesheet.NotBillable)
	require.NoError(t, repo.Save(ctx, ts))

	first, err := repo.FindByName(ctx, ts.Name)
	require.NoError(t, err)
	second, err := repo.FindByName(ctx, ts.Name)
	require.NoError(t, err)

	_, err = first.SetCustomIsBillable(timesheet.Billable)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))

	_, err = second.SetCustomIsBillable(timesheet.Billable)
	require.NoError(t, err)
	err = repo.Save(ctx, second)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	assert.Equal(t, 1, second.Version)
}

func TestGormTimesheetRepository_FindDrafts(t *testing.T) {
	db := newTestDatabase(t).DB
	repo := NewGormTimesheetRepository(db)
	ctx := context.Background()

	draft := newDraft(t, "TS-draft", timesheet.NotBillable)
	require.NoError(t, repo.Save(ctx, draft))

	submitted := newDraft(t, "TS-submitted", timesheet.NotBillable)
	submitted.DocStatus = timesheet.DocStatusSubmitted
	require.NoError(t, repo.Save(ctx, submitted))

	other, err := timesheet.NewTimesheet("TS-other-task", "PROJ-0001", "TASK-0002", timesheet.NotBillable)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, other))

	drafts, err := repo.FindDrafts(ctx, "PROJ-0001", "TASK-0001")
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "TS-draft", drafts[0].Name)
	assert.Empty(t, drafts[0].TimeLogs)
}

func TestGormTimesheetRepository_FindByName_SQL(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormTimesheetRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "timesheets" WHERE name = \$1 ORDER BY .* LIMIT .*`).
		WithArgs("TS-404", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := repo.FindByName(context.Background(), "TS-404")
	assert.Equal(t, shared.ErrNotFound, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTimesheetRepository_Save_StaleVersionSQL(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormTimesheetRepository(gormDB)

	ts := newDraft(t, "TS-stale", timesheet.NotBillable)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "version" FROM "timesheets" WHERE id = \$1`).
		WithArgs(ts.ID).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(3))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), ts)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	assert.Equal(t, 1, ts.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}
