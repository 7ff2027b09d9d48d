package identity

import "context"

// APICredentialRepository defines the interface for credential persistence
type APICredentialRepository interface {
	// FindByAPIKey finds a credential by its public key
	FindByAPIKey(ctx context.Context, apiKey string) (*APICredential, error)

	// Save creates or updates a credential
	Save(ctx context.Context, cred *APICredential) error
}
