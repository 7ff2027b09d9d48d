package timesheet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/timetracker/backend/internal/domain/form"
	"github.com/timetracker/backend/internal/domain/timesheet"
	forminfra "github.com/timetracker/backend/internal/infrastructure/form"
	"go.uber.org/zap"
)

// MockValueSetter records SetValue calls
type MockValueSetter struct {
	mock.Mock
}

func (m *MockValueSetter) SetValue(ctx context.Context, recordType, recordID, fieldName string, value any) error {
	args := m.Called(ctx, recordType, recordID, fieldName, value)
	return args.Error(0)
}

// sheetWithRows builds a draft timesheet whose rows are named after rowNames
// with the given is_billable values.
func sheetWithRows(t *testing.T, custom timesheet.BillableFlag, rows map[string]timesheet.BillableFlag, order ...string) *timesheet.Timesheet {
	t.Helper()
	ts, err := timesheet.NewTimesheet("TS-2025-00001", "PROJ-0001", "TASK-2025-00001", custom)
	require.NoError(t, err)

	start := time.Date(2025, 9, 21, 9, 0, 0, 0, time.UTC)
	for i, name := range order {
		ts.TimeLogs = append(ts.TimeLogs, timesheet.TimeLog{
			Name:       name,
			Idx:        i + 1,
			FromTime:   start,
			ToTime:     start.Add(time.Hour),
			IsBillable: rows[name],
		})
	}
	return ts
}

func newRegisteredForm(t *testing.T, ts *timesheet.Timesheet) (*form.Form, *forminfra.Registry) {
	t.Helper()
	reg := forminfra.NewRegistry(zap.NewNop())
	NewBillablePropagationRule(zap.NewNop()).Register(reg)
	return form.New(ts, reg), reg
}

func TestPropagateBillable_SetsEveryRowInOrder(t *testing.T) {
	ctx := context.Background()
	ts := sheetWithRows(t, timesheet.Billable, map[string]timesheet.BillableFlag{
		"TL-1": timesheet.NotBillable,
		"TL-2": timesheet.NotBillable,
		"TL-3": timesheet.Billable,
	}, "TL-1", "TL-2", "TL-3")

	setter := new(MockValueSetter)
	var order []string
	setter.On("SetValue", ctx, timesheet.DocTypeTimeLog, mock.Anything, timesheet.FieldIsBillable, 1).
		Run(func(args mock.Arguments) { order = append(order, args.String(2)) }).
		Return(nil)

	require.NoError(t, PropagateBillable(ctx, ts, setter))

	setter.AssertNumberOfCalls(t, "SetValue", 3)
	assert.Equal(t, []string{"TL-1", "TL-2", "TL-3"}, order)
}

func TestPropagateBillable_ClearsForNotBillable(t *testing.T) {
	ctx := context.Background()
	ts := sheetWithRows(t, timesheet.NotBillable, map[string]timesheet.BillableFlag{
		"TL-1": timesheet.Billable,
	}, "TL-1")

	setter := new(MockValueSetter)
	setter.On("SetValue", ctx, timesheet.DocTypeTimeLog, "TL-1", timesheet.FieldIsBillable, 0).Return(nil)

	require.NoError(t, PropagateBillable(ctx, ts, setter))
	setter.AssertExpectations(t)
}

func TestPropagateBillable_EmptyCollection(t *testing.T) {
	ts := sheetWithRows(t, timesheet.Billable, nil)
	setter := new(MockValueSetter)

	require.NoError(t, PropagateBillable(context.Background(), ts, setter))
	setter.AssertNotCalled(t, "SetValue", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPropagateBillable_ReturnsFirstSetterError(t *testing.T) {
	ctx := context.Background()
	ts := sheetWithRows(t, timesheet.Billable, map[string]timesheet.BillableFlag{}, "TL-1", "TL-2")
	boom := errors.New("host rejected edit")

	setter := new(MockValueSetter)
	setter.On("SetValue", ctx, timesheet.DocTypeTimeLog, "TL-1", timesheet.FieldIsBillable, 1).Return(boom)

	err := PropagateBillable(ctx, ts, setter)
	assert.Same(t, boom, err)
	setter.AssertNumberOfCalls(t, "SetValue", 1)
}

func TestBillablePropagationRule_ScenarioSetBillable(t *testing.T) {
	ctx := context.Background()
	ts := sheetWithRows(t, timesheet.NotBillable, map[string]timesheet.BillableFlag{
		"TL-1": timesheet.NotBillable,
		"TL-2": timesheet.NotBillable,
	}, "TL-1", "TL-2")
	frm, _ := newRegisteredForm(t, ts)

	require.NoError(t, frm.SetValue(ctx, timesheet.DocTypeTimesheet, ts.Name, timesheet.FieldCustomIsBillable, 1))

	assert.Equal(t, timesheet.Billable, ts.TimeLog("TL-1").IsBillable)
	assert.Equal(t, timesheet.Billable, ts.TimeLog("TL-2").IsBillable)
	assert.True(t, frm.Dirty())
	// parent edit plus one edit per row
	assert.Len(t, frm.Changes(), 3)
}

func TestBillablePropagationRule_ScenarioClearBillable(t *testing.T) {
	ctx := context.Background()
	ts := sheetWithRows(t, timesheet.Billable, map[string]timesheet.BillableFlag{
		"TL-1": timesheet.Billable,
		"TL-2": timesheet.Billable,
	}, "TL-1", "TL-2")
	frm, _ := newRegisteredForm(t, ts)

	require.NoError(t, frm.SetValue(ctx, timesheet.DocTypeTimesheet, ts.Name, timesheet.FieldCustomIsBillable, 0))

	assert.Equal(t, timesheet.NotBillable, ts.TimeLog("TL-1").IsBillable)
	assert.Equal(t, timesheet.NotBillable, ts.TimeLog("TL-2").IsBillable)
}

func TestBillablePropagationRule_ClearsForNilAndAbsent(t *testing.T) {
	for _, value := range []any{nil, "", false, "0"} {
		ts := sheetWithRows(t, timesheet.Billable, map[string]timesheet.BillableFlag{
			"TL-1": timesheet.Billable,
		}, "TL-1")
		frm, _ := newRegisteredForm(t, ts)

		require.NoError(t, frm.SetValue(context.Background(), timesheet.DocTypeTimesheet, ts.Name, timesheet.FieldCustomIsBillable, value))
		assert.Equal(t, timesheet.NotBillable, ts.TimeLog("TL-1").IsBillable, "value %#v", value)
	}
}

func TestBillablePropagationRule_Idempotent(t *testing.T) {
	ctx := context.Background()
	ts := sheetWithRows(t, timesheet.Billable, map[string]timesheet.BillableFlag{
		"TL-1": timesheet.NotBillable,
		"TL-2": timesheet.Billable,
	}, "TL-1", "TL-2")
	frm, _ := newRegisteredForm(t, ts)
	rule := NewBillablePropagationRule(zap.NewNop())

	require.NoError(t, rule.OnCustomIsBillableChange(ctx, frm))
	first := []timesheet.BillableFlag{ts.TimeLogs[0].IsBillable, ts.TimeLogs[1].IsBillable}
	changes := len(frm.Changes())

	require.NoError(t, rule.OnCustomIsBillableChange(ctx, frm))
	second := []timesheet.BillableFlag{ts.TimeLogs[0].IsBillable, ts.TimeLogs[1].IsBillable}

	assert.Equal(t, []timesheet.BillableFlag{timesheet.Billable, timesheet.Billable}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, changes, len(frm.Changes()))
}

func TestBillablePropagationRule_PropagatesDocumentError(t *testing.T) {
	ts := sheetWithRows(t, timesheet.Billable, map[string]timesheet.BillableFlag{}, "TL-1")
	frm, _ := newRegisteredForm(t, ts)
	ts.DocStatus = timesheet.DocStatusSubmitted

	err := NewBillablePropagationRule(zap.NewNop()).OnCustomIsBillableChange(context.Background(), frm)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be edited")
}

func TestBillablePropagationRule_RejectsForeignDocument(t *testing.T) {
	frm := form.New(otherDoc{}, nil)
	err := NewBillablePropagationRule(zap.NewNop()).OnCustomIsBillableChange(context.Background(), frm)
	require.Error(t, err)
}

func TestBillablePropagationRule_RegistersOneHandler(t *testing.T) {
	reg := forminfra.NewRegistry(zap.NewNop())
	NewBillablePropagationRule(zap.NewNop()).Register(reg)

	assert.True(t, reg.Has(timesheet.DocTypeTimesheet, timesheet.FieldCustomIsBillable))
	assert.False(t, reg.Has(timesheet.DocTypeTimeLog, timesheet.FieldIsBillable))
}

type otherDoc struct{}

func (otherDoc) DocType() string { return "Task" }
func (otherDoc) DocName() string { return "T-1" }
func (otherDoc) SetField(string, string, string, any) (bool, error) {
	return false, nil
}
