package identity

import "time"

// TokenInput is the api_key / api_secret pair sent by a desktop client
type TokenInput struct {
	APIKey    string `json:"api_key" binding:"required,max=64"`
	APISecret string `json:"api_secret" binding:"required,max=128"`
}

// TokenResult is returned after a successful exchange
type TokenResult struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        string    `json:"user"`
}

// RevokeResult is returned after a token has been revoked
type RevokeResult struct {
	Revoked bool `json:"revoked"`
}

// CredentialResult carries a newly created credential. The secret is only
// ever shown here.
type CredentialResult struct {
	User      string `json:"user"`
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`
}
