// Package form models an open document the way the desk client sees it:
// a loaded document, a value setter that edits its fields and child rows,
// and an observer registry that reacts to field changes.
package form

import (
	"context"
	"fmt"
	"sync"
)

// Handler reacts to a field change on an open form
type Handler func(ctx context.Context, frm *Form) error

// Handlers maps an event name (usually a field name) to its handler
type Handlers map[string]Handler

// Registrar accepts handler registrations for a document type
type Registrar interface {
	Register(docType string, handlers Handlers)
}

// Dispatcher runs the handlers registered for a document type and event
type Dispatcher interface {
	Trigger(ctx context.Context, frm *Form, docType, event string) error
}

// ValueSetter mutates one field of one record inside an open form
type ValueSetter interface {
	SetValue(ctx context.Context, recordType, recordID, fieldName string, value any) error
}

// Document is a loaded record that can apply field edits to itself or
// to one of its child rows.
type Document interface {
	DocType() string
	DocName() string
	// SetField assigns value to field of the record identified by
	// (recordType, recordID). It reports whether the stored value changed.
	SetField(recordType, recordID, field string, value any) (bool, error)
}

// FieldChange records one applied edit
type FieldChange struct {
	RecordType string
	RecordID   string
	Field      string
	Value      any
}

// Form is an open document together with its edit model
type Form struct {
	Doc   Document
	model *Model
}

// New opens doc for editing. Field changes are dispatched through d,
// which may be nil when no handlers are wanted.
func New(doc Document, d Dispatcher) *Form {
	frm := &Form{Doc: doc}
	frm.model = &Model{form: frm, dispatcher: d}
	return frm
}

var _ ValueSetter = (*Form)(nil)

// SetValue edits a field through the form model
func (f *Form) SetValue(ctx context.Context, recordType, recordID, fieldName string, value any) error {
	return f.model.SetValue(ctx, recordType, recordID, fieldName, value)
}

// Trigger fires the handlers for an event on the form's own document type
func (f *Form) Trigger(ctx context.Context, event string) error {
	return f.model.trigger(ctx, f.Doc.DocType(), event)
}

// Dirty reports whether any edit changed a stored value
func (f *Form) Dirty() bool {
	return f.model.Dirty()
}

// Changes returns the applied edits in order
func (f *Form) Changes() []FieldChange {
	return f.model.Changes()
}

// Model applies edits to the form's document and fires change events
type Model struct {
	form       *Form
	dispatcher Dispatcher

	mu      sync.Mutex
	dirty   bool
	changes []FieldChange
}

var _ ValueSetter = (*Model)(nil)

// SetValue applies the edit and, when the value actually changed, triggers
// the change event for (recordType, fieldName).
func (m *Model) SetValue(ctx context.Context, recordType, recordID, fieldName string, value any) error {
	changed, err := m.form.Doc.SetField(recordType, recordID, fieldName, value)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	m.mu.Lock()
	m.dirty = true
	m.changes = append(m.changes, FieldChange{
		RecordType: recordType,
		RecordID:   recordID,
		Field:      fieldName,
		Value:      value,
	})
	m.mu.Unlock()

	return m.trigger(ctx, recordType, fieldName)
}

func (m *Model) trigger(ctx context.Context, docType, event string) error {
	if m.dispatcher == nil {
		return nil
	}
	if err := m.dispatcher.Trigger(ctx, m.form, docType, event); err != nil {
		return fmt.Errorf("%s.%s handler: %w", docType, event, err)
	}
	return nil
}

// Dirty reports whether any edit changed a stored value
func (m *Model) Dirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirty
}

// Changes returns a copy of the applied edits
func (m *Model) Changes() []FieldChange {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]FieldChange, len(m.changes))
	copy(out, m.changes)
	return out
}
