package identity

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"strings"
	"time"

	"github.com/timetracker/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Secret cost for bcrypt
const bcryptCost = 12

var apiKeyRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)

// APICredential is an api_key / api_secret pair that a desktop client
// exchanges for an access token.
type APICredential struct {
	shared.BaseAggregateRoot
	APIKey     string
	SecretHash string
	User       string
	Enabled    bool
	LastUsedAt *time.Time
}

// NewAPICredential creates a credential for user with a fresh random key and
// secret. The plain secret is returned once and never stored.
func NewAPICredential(user string) (*APICredential, string, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return nil, "", shared.NewDomainError("INVALID_USER", "User cannot be empty")
	}
	if len(user) > 140 {
		return nil, "", shared.NewDomainError("INVALID_USER", "User cannot exceed 140 characters")
	}

	key, err := randomToken(8)
	if err != nil {
		return nil, "", err
	}
	secret, err := randomToken(16)
	if err != nil {
		return nil, "", err
	}

	cred, err := NewAPICredentialWithSecret(user, key, secret)
	if err != nil {
		return nil, "", err
	}
	return cred, secret, nil
}

// NewAPICredentialWithSecret creates a credential from a known key and secret
func NewAPICredentialWithSecret(user, apiKey, secret string) (*APICredential, error) {
	if err := validateAPIKey(apiKey); err != nil {
		return nil, err
	}
	if len(secret) < 12 {
		return nil, shared.NewDomainError("INVALID_SECRET", "API secret must be at least 12 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcryptCost)
	if err != nil {
		return nil, err
	}

	cred := &APICredential{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		APIKey:            apiKey,
		SecretHash:        string(hash),
		User:              user,
		Enabled:           true,
	}
	cred.AddDomainEvent(NewAPICredentialCreatedEvent(cred))
	return cred, nil
}

// VerifySecret checks secret against the stored hash
func (c *APICredential) VerifySecret(secret string) bool {
	if !c.Enabled {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(c.SecretHash), []byte(secret))
	return err == nil
}

// RecordUse stamps the last successful exchange
func (c *APICredential) RecordUse(at time.Time) {
	c.LastUsedAt = &at
	c.Touch()
}

// Disable revokes the credential
func (c *APICredential) Disable() {
	c.Enabled = false
	c.Touch()
}

func validateAPIKey(key string) error {
	if key == "" {
		return shared.NewDomainError("INVALID_API_KEY", "API key cannot be empty")
	}
	if len(key) > 64 {
		return shared.NewDomainError("INVALID_API_KEY", "API key cannot exceed 64 characters")
	}
	if !apiKeyRegex.MatchString(key) {
		return shared.NewDomainError("INVALID_API_KEY", "API key can only contain letters, numbers, underscores and hyphens")
	}
	return nil
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
