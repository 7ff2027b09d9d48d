package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	timesheetapp "github.com/timetracker/backend/internal/application/timesheet"
	"github.com/timetracker/backend/internal/interfaces/http/dto"
	"github.com/timetracker/backend/internal/interfaces/http/middleware"
)

// TimesheetService is the timesheet API used by TimesheetHandler
type TimesheetService interface {
	ListDrafts(ctx context.Context, projectName, task string) ([]timesheetapp.TimesheetSummary, error)
	Get(ctx context.Context, name string) (*timesheetapp.TimesheetResponse, error)
	SetBillable(ctx context.Context, name string, value any) (*timesheetapp.TimesheetResponse, error)
	Finalize(ctx context.Context, in timesheetapp.FinalizeInput) (*timesheetapp.FinalizeResult, error)
	ReceiveDesktopPayload(ctx context.Context, payload map[string]any) timesheetapp.PayloadReceipt
}

// TimesheetHandler handles timesheet endpoints
type TimesheetHandler struct {
	BaseHandler
	service TimesheetService
}

// NewTimesheetHandler creates a new TimesheetHandler
func NewTimesheetHandler(service TimesheetService) *TimesheetHandler {
	return &TimesheetHandler{service: service}
}

// ListDraftsQuery filters the draft timesheet lookup
type ListDraftsQuery struct {
	Project string `form:"project" binding:"required,max=140"`
	Task    string `form:"task" binding:"required,max=140"`
}

// SetBillableRequest carries the new custom_is_billable value. Any JSON value
// is accepted; 1, true and "1" mark the timesheet billable, everything else
// including an absent field clears it.
type SetBillableRequest struct {
	CustomIsBillable any `json:"custom_is_billable" swaggertype:"integer" example:"1"`
}

// ListDrafts godoc
// @ID           listDraftTimesheets
// @Summary      List draft timesheets for a project task
// @Tags         timesheets
// @Produce      json
// @Security     BearerAuth
// @Param        project query string true "Project name"
// @Param        task    query string true "Task name"
// @Success      200 {object} APIResponse[[]timesheetapp.TimesheetSummary]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /timesheets [get]
func (h *TimesheetHandler) ListDrafts(c *gin.Context) {
	var q ListDraftsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	drafts, err := h.service.ListDrafts(c.Request.Context(), q.Project, q.Task)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, drafts)
}

// Get godoc
// @ID           getTimesheet
// @Summary      Get a timesheet with its time logs
// @Tags         timesheets
// @Produce      json
// @Security     BearerAuth
// @Param        name path string true "Timesheet name"
// @Success      200 {object} APIResponse[timesheetapp.TimesheetResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /timesheets/{name} [get]
func (h *TimesheetHandler) Get(c *gin.Context) {
	ts, err := h.service.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ts)
}

// SetBillable godoc
// @ID           setTimesheetBillable
// @Summary      Set the billable flag of a timesheet
// @Description  Propagates the flag to every time log of the timesheet
// @Tags         timesheets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        name    path string             true "Timesheet name"
// @Param        request body SetBillableRequest true "New flag"
// @Success      200 {object} APIResponse[timesheetapp.TimesheetResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /timesheets/{name}/billable [put]
func (h *TimesheetHandler) SetBillable(c *gin.Context) {
	var req SetBillableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	ts, err := h.service.SetBillable(c.Request.Context(), c.Param("name"), req.CustomIsBillable)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ts)
}

// Finalize godoc
// @ID           finalizeTimesheet
// @Summary      Append tracked intervals and attach session screenshots
// @Tags         timesheets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body timesheetapp.FinalizeInput true "Tracked intervals"
// @Success      200 {object} APIResponse[timesheetapp.FinalizeResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /timesheets/finalize [post]
func (h *TimesheetHandler) Finalize(c *gin.Context) {
	var in timesheetapp.FinalizeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	if in.SessionID != "" && !middleware.ValidSessionID(in.SessionID) {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "session_id must contain only letters, digits, '-' or '_'")
		return
	}

	result, err := h.service.Finalize(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// DesktopPayload godoc
// @ID           receiveDesktopPayload
// @Summary      Acknowledge a raw desktop payload
// @Tags         timesheets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} APIResponse[timesheetapp.PayloadReceipt]
// @Failure      400 {object} ErrorResponse
// @Router       /timesheets/desktop-payload [post]
func (h *TimesheetHandler) DesktopPayload(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	h.Success(c, h.service.ReceiveDesktopPayload(c.Request.Context(), payload))
}
