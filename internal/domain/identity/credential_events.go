package identity

import "github.com/timetracker/backend/internal/domain/shared"

// Aggregate type constant for APICredential
const AggregateTypeAPICredential = "APICredential"

// APICredential domain event types
const (
	EventTypeAPICredentialCreated = "APICredentialCreated"
)

// APICredentialCreatedEvent is published when a credential is issued
type APICredentialCreatedEvent struct {
	shared.BaseDomainEvent
	APIKey string `json:"api_key"`
	User   string `json:"user"`
}

// NewAPICredentialCreatedEvent creates a new APICredentialCreatedEvent
func NewAPICredentialCreatedEvent(c *APICredential) *APICredentialCreatedEvent {
	return &APICredentialCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAPICredentialCreated, AggregateTypeAPICredential, c.ID),
		APIKey:          c.APIKey,
		User:            c.User,
	}
}
