package timesheet

import (
	"context"
	"fmt"

	"github.com/timetracker/backend/internal/domain/form"
	"github.com/timetracker/backend/internal/domain/timesheet"
	"go.uber.org/zap"
)

// BillablePropagationRule copies a timesheet's custom_is_billable onto the
// is_billable field of every time log row whenever the former changes.
type BillablePropagationRule struct {
	logger *zap.Logger
}

// NewBillablePropagationRule creates the rule
func NewBillablePropagationRule(logger *zap.Logger) *BillablePropagationRule {
	return &BillablePropagationRule{logger: logger}
}

// Register attaches the rule to the Timesheet custom_is_billable event
func (r *BillablePropagationRule) Register(reg form.Registrar) {
	reg.Register(timesheet.DocTypeTimesheet, form.Handlers{
		timesheet.FieldCustomIsBillable: r.OnCustomIsBillableChange,
	})
}

// OnCustomIsBillableChange is the form handler for custom_is_billable
func (r *BillablePropagationRule) OnCustomIsBillableChange(ctx context.Context, frm *form.Form) error {
	ts, ok := frm.Doc.(*timesheet.Timesheet)
	if !ok {
		return fmt.Errorf("billable propagation: expected *timesheet.Timesheet, got %T", frm.Doc)
	}

	r.logger.Debug("propagating billable flag",
		zap.String("timesheet", ts.Name),
		zap.Stringer("custom_is_billable", ts.CustomIsBillable),
		zap.Int("rows", len(ts.TimeLogs)),
	)
	return PropagateBillable(ctx, ts, frm)
}

// PropagateBillable sets is_billable on every row of ts, in collection order,
// to 1 when custom_is_billable is Billable and 0 otherwise. The first setter
// error is returned as is.
func PropagateBillable(ctx context.Context, ts *timesheet.Timesheet, setter form.ValueSetter) error {
	value := ts.CustomIsBillable.Int()

	rows := make([]string, len(ts.TimeLogs))
	for i := range ts.TimeLogs {
		rows[i] = ts.TimeLogs[i].Name
	}

	for _, name := range rows {
		if err := setter.SetValue(ctx, timesheet.DocTypeTimeLog, name, timesheet.FieldIsBillable, value); err != nil {
			return err
		}
	}
	return nil
}
