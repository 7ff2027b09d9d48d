package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timetracker/backend/internal/domain/shared"
	"github.com/timetracker/backend/internal/interfaces/http/dto"
	"github.com/timetracker/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// newTestEngine returns an engine with the request ID middleware applied
func newTestEngine() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	return r
}

func perform(r http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func performJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	return perform(r, method, path, strings.NewReader(body))
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var resp APIResponse[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success, w.Body.String())
	return resp.Data
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "not found", err: shared.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: dto.ErrCodeNotFound},
		{name: "wrapped domain error", err: fmt.Errorf("load: %w", shared.NewDomainError("TIMESHEET_NOT_FOUND", "Timesheet TS-1 not found")), wantStatus: http.StatusNotFound, wantCode: dto.ErrCodeNotFound},
		{name: "invalid state", err: shared.ErrInvalidState, wantStatus: http.StatusUnprocessableEntity, wantCode: dto.ErrCodeInvalidState},
		{name: "conflict", err: shared.ErrConcurrencyConflict, wantStatus: http.StatusConflict, wantCode: dto.ErrCodeConcurrencyConflict},
		{name: "too large", err: shared.NewDomainError("FILE_TOO_LARGE", "big"), wantStatus: http.StatusRequestEntityTooLarge, wantCode: dto.ErrCodePayloadTooLarge},
		{name: "unknown error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			r := newTestEngine()
			r.GET("/err", func(c *gin.Context) {
				h.HandleError(c, tt.err)
			})

			w := perform(r, http.MethodGet, "/err", nil)
			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.RequestID)
		})
	}
}

func TestBaseHandler_HandleError_Nil(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.HandleError(c, nil)
	assert.Empty(t, w.Body.String())
}
