package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	screenshotapp "github.com/timetracker/backend/internal/application/screenshot"
	"github.com/timetracker/backend/internal/interfaces/http/dto"
	"github.com/timetracker/backend/internal/interfaces/http/middleware"
)

// ScreenshotService is the screenshot API used by ScreenshotHandler
type ScreenshotService interface {
	Upload(ctx context.Context, in screenshotapp.UploadInput) (*screenshotapp.UploadResult, error)
	ListSession(ctx context.Context, sessionID string) ([]screenshotapp.FileResponse, error)
	CleanupSession(ctx context.Context, sessionID string) (*screenshotapp.CleanupResult, error)
}

// ScreenshotHandler handles screenshot uploads and session cleanup
type ScreenshotHandler struct {
	BaseHandler
	service ScreenshotService
}

// NewScreenshotHandler creates a new ScreenshotHandler
func NewScreenshotHandler(service ScreenshotService) *ScreenshotHandler {
	return &ScreenshotHandler{service: service}
}

// UploadScreenshotRequest is a base64 encoded screenshot
type UploadScreenshotRequest struct {
	FileName  string `json:"file_name" binding:"required,max=140"`
	FileData  string `json:"file_data" binding:"required"`
	SessionID string `json:"session_id" binding:"required,session_id"`
}

// Upload godoc
// @ID           uploadScreenshot
// @Summary      Upload a session screenshot
// @Tags         screenshots
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UploadScreenshotRequest true "Screenshot"
// @Success      201 {object} APIResponse[screenshotapp.UploadResult]
// @Failure      400 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Failure      415 {object} ErrorResponse
// @Router       /screenshots [post]
func (h *ScreenshotHandler) Upload(c *gin.Context) {
	var req UploadScreenshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.service.Upload(c.Request.Context(), screenshotapp.UploadInput{
		FileName:  req.FileName,
		FileData:  req.FileData,
		SessionID: req.SessionID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListSession godoc
// @ID           listSessionScreenshots
// @Summary      List the screenshots of a session
// @Tags         screenshots
// @Produce      json
// @Security     BearerAuth
// @Param        session_id path string true "Session ID"
// @Success      200 {object} APIResponse[[]screenshotapp.FileResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /screenshots/sessions/{session_id} [get]
func (h *ScreenshotHandler) ListSession(c *gin.Context) {
	sessionID, ok := h.sessionParam(c)
	if !ok {
		return
	}
	files, err := h.service.ListSession(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, files)
}

// CleanupSession godoc
// @ID           cleanupSessionScreenshots
// @Summary      Delete unattached screenshots of a session
// @Tags         screenshots
// @Produce      json
// @Security     BearerAuth
// @Param        session_id path string true "Session ID"
// @Success      200 {object} APIResponse[screenshotapp.CleanupResult]
// @Failure      400 {object} ErrorResponse
// @Router       /screenshots/sessions/{session_id} [delete]
func (h *ScreenshotHandler) CleanupSession(c *gin.Context) {
	sessionID, ok := h.sessionParam(c)
	if !ok {
		return
	}
	result, err := h.service.CleanupSession(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

func (h *ScreenshotHandler) sessionParam(c *gin.Context) (string, bool) {
	sessionID := c.Param("session_id")
	if !middleware.ValidSessionID(sessionID) {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "Invalid session_id")
		return "", false
	}
	return sessionID, true
}
