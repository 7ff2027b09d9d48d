package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTracedRouter(recorder *tracetest.SpanRecorder) *gin.Engine {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	r := gin.New()
	r.Use(RequestID(), TracingWithConfig(TracingConfig{
		ServiceName:    "timetracker-test",
		Enabled:        true,
		TracerProvider: tp,
	}), SpanEnricher())
	r.GET("/timesheets/:name", func(c *gin.Context) {
		if c.Param("name") == "missing" {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusOK)
	})
	return r
}

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracingWithConfig(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	r := newTracedRouter(recorder)

	req := httptest.NewRequest(http.MethodGet, "/timesheets/TS-0001", nil)
	req.Header.Set(RequestIDHeader, "req-trace")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /timesheets/:name", spans[0].Name())
	v, ok := spanAttr(spans[0], "request_id")
	require.True(t, ok)
	assert.Equal(t, "req-trace", v.AsString())
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}

func TestTracingWithConfig_ErrorStatus(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	r := newTracedRouter(recorder)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/timesheets/missing", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestTracingWithConfig_Disabled(t *testing.T) {
	r := gin.New()
	r.Use(TracingWithConfig(TracingConfig{Enabled: false}), SpanEnricher())
	r.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
