package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerRegistry_Register_SpecificTypes(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newTestHandler("TimeLogsAppended", "ScreenshotsAttached")

	registry.Register(handler, "TimeLogsAppended", "ScreenshotsAttached")

	assert.Len(t, registry.GetHandlers("TimeLogsAppended"), 1)
	assert.Len(t, registry.GetHandlers("ScreenshotsAttached"), 1)
	assert.Empty(t, registry.GetHandlers("ScreenshotDeleted"))
	assert.Equal(t, 2, registry.Len())
}

func TestHandlerRegistry_WildcardComesLast(t *testing.T) {
	registry := NewHandlerRegistry()
	wildcard := newTestHandler()
	specific := newTestHandler("TimeLogsAppended")

	registry.Register(wildcard)
	registry.Register(specific, "TimeLogsAppended")

	handlers := registry.GetHandlers("TimeLogsAppended")
	assert.Len(t, handlers, 2)
	assert.Same(t, specific, handlers[0])
	assert.Same(t, wildcard, handlers[1])

	assert.Len(t, registry.GetHandlers("Anything"), 1)
}

func TestHandlerRegistry_Unregister(t *testing.T) {
	registry := NewHandlerRegistry()
	h1 := newTestHandler()
	h2 := newTestHandler()

	registry.Register(h1, "TimeLogsAppended")
	registry.Register(h2, "TimeLogsAppended")
	registry.Register(h1)

	registry.Unregister(h1)

	handlers := registry.GetHandlers("TimeLogsAppended")
	assert.Len(t, handlers, 1)
	assert.Same(t, h2, handlers[0])
	assert.Equal(t, 1, registry.Len())

	registry.Unregister(h2)
	assert.Empty(t, registry.GetHandlers("TimeLogsAppended"))
	assert.Equal(t, 0, registry.Len())
}
