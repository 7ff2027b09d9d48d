package timesheet

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/timetracker/backend/internal/domain/form"
	"github.com/timetracker/backend/internal/domain/project"
	"github.com/timetracker/backend/internal/domain/screenshot"
	"github.com/timetracker/backend/internal/domain/shared"
	"github.com/timetracker/backend/internal/domain/timesheet"
	"github.com/timetracker/backend/internal/infrastructure/logger"
	"github.com/timetracker/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ServiceConfig holds the timesheet service settings
type ServiceConfig struct {
	// SiteURL is the desk base URL used to build timesheet links
	SiteURL string
	// DefaultActivity is used when a finalize payload names none
	DefaultActivity string
}

// DefaultServiceConfig returns the default configuration
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		SiteURL:         "http://localhost:8000",
		DefaultActivity: "Misc",
	}
}

// Service handles timesheet lookups and edits coming from the desktop client
type Service struct {
	repo       timesheet.Repository
	txScope    TransactionScope
	dispatcher form.Dispatcher
	publisher  shared.EventPublisher
	config     ServiceConfig
	logger     *zap.Logger
}

// NewService creates a timesheet service. Field changes made through the
// service are dispatched to the handlers registered on dispatcher. Finalize
// writes go through txScope; a nil scope runs them on the plain repositories.
func NewService(
	repo timesheet.Repository,
	activities project.ActivityTypeRepository,
	screenshots screenshot.Repository,
	txScope TransactionScope,
	dispatcher form.Dispatcher,
	publisher shared.EventPublisher,
	config ServiceConfig,
	logger *zap.Logger,
) *Service {
	if config.DefaultActivity == "" {
		config.DefaultActivity = DefaultServiceConfig().DefaultActivity
	}
	if txScope == nil {
		txScope = NewNoOpTransactionScope(repo, activities, screenshots)
	}
	return &Service{
		repo:       repo,
		txScope:    txScope,
		dispatcher: dispatcher,
		publisher:  publisher,
		config:     config,
		logger:     logger,
	}
}

// ListDrafts returns the draft timesheets of a project task
func (s *Service) ListDrafts(ctx context.Context, projectName, task string) ([]TimesheetSummary, error) {
	sheets, err := s.repo.FindDrafts(ctx, projectName, task)
	if err != nil {
		s.log(ctx).Error("failed to fetch timesheets",
			zap.String("project", projectName),
			zap.String("task", task),
			zap.Error(err),
		)
		return nil, err
	}

	out := make([]TimesheetSummary, len(sheets))
	for i := range sheets {
		out[i] = TimesheetSummary{Name: sheets[i].Name}
	}
	return out, nil
}

// Get returns a timesheet with its time logs
func (s *Service) Get(ctx context.Context, name string) (*TimesheetResponse, error) {
	ts, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}
	resp := ToTimesheetResponse(ts)
	return &resp, nil
}

// SetBillable sets custom_is_billable through the form model so that the
// registered change handlers run, then saves the timesheet.
func (s *Service) SetBillable(ctx context.Context, name string, value any) (_ *TimesheetResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "timesheet", "set_billable", telemetry.SpanAttrTimesheet, name)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	ts, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}

	frm := form.New(ts, s.dispatcher)
	if err := frm.SetValue(ctx, timesheet.DocTypeTimesheet, ts.Name, timesheet.FieldCustomIsBillable, value); err != nil {
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrBillable, ts.CustomIsBillable.Bool(),
		telemetry.SpanAttrTimeLogs, len(ts.TimeLogs),
	)
	if frm.Dirty() {
		if err := s.saveAndPublish(ctx, ts); err != nil {
			return nil, err
		}
		s.log(ctx).Info("timesheet billable flag updated",
			zap.String("timesheet", ts.Name),
			zap.Stringer("custom_is_billable", ts.CustomIsBillable),
			zap.Int("changes", len(frm.Changes())),
		)
	}

	resp := ToTimesheetResponse(ts)
	return &resp, nil
}

// Finalize appends one time log row per tracked interval, makes sure the
// activity type exists, and attaches the session's screenshots.
func (s *Service) Finalize(ctx context.Context, in FinalizeInput) (_ *FinalizeResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "timesheet", "finalize",
		telemetry.SpanAttrTimesheet, in.TimesheetName,
		telemetry.SpanAttrSessionID, in.SessionID,
	)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	name := strings.TrimSpace(in.TimesheetName)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Missing 'timesheet_name' in payload")
	}

	ts, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}

	activity := strings.TrimSpace(in.ActivityName)
	if activity == "" {
		activity = s.config.DefaultActivity
	}

	s.log(ctx).Info("timesheet update started",
		zap.String("timesheet", name),
		zap.Int("intervals", len(in.Intervals)),
	)

	rows := make([]timesheet.TimeLogInput, 0, len(in.Intervals))
	for _, iv := range in.Intervals {
		from, err := ParseNaive(iv.From)
		if err != nil {
			return nil, err
		}
		to, err := ParseNaive(iv.To)
		if err != nil {
			return nil, err
		}
		if from.IsZero() || to.IsZero() {
			s.log(ctx).Warn("skipping interval",
				zap.String("timesheet", name),
				zap.String("from", iv.From),
				zap.String("to", iv.To),
			)
			continue
		}
		rows = append(rows, timesheet.TimeLogInput{
			ActivityType: activity,
			FromTime:     from,
			ToTime:       to,
			Task:         in.TaskName,
			Project:      in.ProjectName,
			Completed:    true,
		})
	}

	var fileEvents []shared.DomainEvent
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if len(rows) > 0 {
			if err := s.ensureActivityType(ctx, repos.ActivityTypeRepo(), activity); err != nil {
				return err
			}
			if _, err := ts.AppendTimeLogs(rows); err != nil {
				return err
			}
		}
		if err := repos.TimesheetRepo().Save(ctx, ts); err != nil {
			return err
		}
		if sessionID := strings.TrimSpace(in.SessionID); sessionID != "" {
			events, err := s.attachSessionScreenshots(ctx, repos.FileRepo(), ts, sessionID)
			if err != nil {
				return err
			}
			fileEvents = events
		}
		return nil
	})
	if err != nil {
		ts.ClearDomainEvents()
		return nil, err
	}

	// Events go out only once the transaction has committed.
	s.publish(ctx, append(ts.GetDomainEvents(), fileEvents...))
	ts.ClearDomainEvents()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTimeLogs, len(rows),
		telemetry.SpanAttrFileCount, len(fileEvents),
	)

	s.log(ctx).Info("timesheet updated",
		zap.String("timesheet", name),
		zap.Int("rows_added", len(rows)),
	)

	return &FinalizeResult{
		Status:       "success",
		RowsAdded:    len(rows),
		TimesheetURL: s.timesheetURL(name),
	}, nil
}

// ReceiveDesktopPayload records an opaque desktop payload
func (s *Service) ReceiveDesktopPayload(ctx context.Context, payload map[string]any) PayloadReceipt {
	s.log(ctx).Info("data received", zap.Any("payload", payload))
	return PayloadReceipt{Status: "ok", Received: true}
}

func (s *Service) load(ctx context.Context, name string) (*timesheet.Timesheet, error) {
	ts, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("TIMESHEET_NOT_FOUND", fmt.Sprintf("Timesheet %s not found", name))
		}
		return nil, err
	}
	return ts, nil
}

func (s *Service) ensureActivityType(ctx context.Context, activities project.ActivityTypeRepository, name string) error {
	exists, err := activities.ExistsByName(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	at, err := project.NewActivityType(name)
	if err != nil {
		return err
	}
	if err := activities.Create(ctx, at); err != nil {
		return err
	}
	s.log(ctx).Info("activity created", zap.String("activity_type", name))
	return nil
}

func (s *Service) attachSessionScreenshots(
	ctx context.Context,
	files screenshot.Repository,
	ts *timesheet.Timesheet,
	sessionID string,
) ([]shared.DomainEvent, error) {
	found, err := files.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(found))
	for i, f := range found {
		f.AttachTo(timesheet.DocTypeTimesheet, ts.Name)
		ids[i] = f.ID
	}
	if err := files.SaveBatch(ctx, found); err != nil {
		return nil, err
	}
	ts.RecordScreenshotsAttached(sessionID, ids)

	var events []shared.DomainEvent
	for _, f := range found {
		events = append(events, f.GetDomainEvents()...)
		f.ClearDomainEvents()
	}
	return events, nil
}

func (s *Service) saveAndPublish(ctx context.Context, ts *timesheet.Timesheet) error {
	if err := s.repo.Save(ctx, ts); err != nil {
		return err
	}
	s.publish(ctx, ts.GetDomainEvents())
	ts.ClearDomainEvents()
	return nil
}

func (s *Service) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.log(ctx).Error("failed to publish timesheet events", zap.Error(err))
	}
}

func (s *Service) timesheetURL(name string) string {
	base := strings.TrimRight(s.config.SiteURL, "/")
	return base + "/app/timesheet/" + url.PathEscape(name)
}

// log returns the request logger carried by ctx, falling back to the
// service logger outside a request.
func (s *Service) log(ctx context.Context) *zap.Logger {
	return logger.ForContext(ctx, s.logger)
}
