// Package form holds the document event registry that form handlers are
// registered on at start-up.
package form

import (
	"context"
	"sync"

	domainform "github.com/timetracker/backend/internal/domain/form"
	"go.uber.org/zap"
)

// Registry maps (docType, event) to handlers and runs them in registration
// order. Handlers run synchronously and the first error stops dispatch.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]map[string][]domainform.Handler // docType -> event -> handlers
	logger   *zap.Logger
}

// NewRegistry creates an empty registry
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		handlers: make(map[string]map[string][]domainform.Handler),
		logger:   logger.Named("form_registry"),
	}
}

// Register adds the handlers of a document type. Registering the same
// event twice keeps both handlers.
func (r *Registry) Register(docType string, handlers domainform.Handlers) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, ok := r.handlers[docType]
	if !ok {
		events = make(map[string][]domainform.Handler)
		r.handlers[docType] = events
	}
	names := make([]string, 0, len(handlers))
	for event, h := range handlers {
		if h == nil {
			continue
		}
		events[event] = append(events[event], h)
		names = append(names, event)
	}

	r.logger.Debug("form handlers registered",
		zap.String("doctype", docType),
		zap.Strings("events", names),
	)
}

// Trigger runs the handlers for (docType, event) against frm
func (r *Registry) Trigger(ctx context.Context, frm *domainform.Form, docType, event string) error {
	for _, h := range r.handlersFor(docType, event) {
		if err := h(ctx, frm); err != nil {
			r.logger.Warn("form handler failed",
				zap.String("doctype", docType),
				zap.String("event", event),
				zap.String("document", frm.Doc.DocName()),
				zap.Error(err),
			)
			return err
		}
	}
	return nil
}

// Has reports whether any handler is registered for (docType, event)
func (r *Registry) Has(docType, event string) bool {
	return len(r.handlersFor(docType, event)) > 0
}

func (r *Registry) handlersFor(docType, event string) []domainform.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hs := r.handlers[docType][event]
	out := make([]domainform.Handler, len(hs))
	copy(out, hs)
	return out
}

var (
	_ domainform.Registrar  = (*Registry)(nil)
	_ domainform.Dispatcher = (*Registry)(nil)
)
