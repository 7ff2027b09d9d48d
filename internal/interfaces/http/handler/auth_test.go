package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/timetracker/backend/internal/application/identity"
	"github.com/timetracker/backend/internal/domain/shared"
	"github.com/timetracker/backend/internal/infrastructure/auth"
	"github.com/timetracker/backend/internal/infrastructure/config"
	"github.com/timetracker/backend/internal/interfaces/http/dto"
	"github.com/timetracker/backend/internal/interfaces/http/middleware"
)

func TestAuthHandler_IssueToken(t *testing.T) {
	expires := time.Now().Add(15 * time.Minute).UTC().Truncate(time.Second)
	tokens := new(MockTokenService)
	tokens.On("IssueToken", mock.Anything, identity.TokenInput{APIKey: "key-1", APISecret: "secret"}).
		Return(&identity.TokenResult{AccessToken: "jwt", TokenType: "Bearer", ExpiresAt: expires, User: "alice"}, nil)

	h := NewAuthHandler(tokens)
	r := newTestEngine()
	r.POST("/auth/token", h.IssueToken)

	w := performJSON(r, http.MethodPost, "/auth/token", `{"api_key":"key-1","api_secret":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData[identity.TokenResult](t, w)
	assert.Equal(t, "jwt", data.AccessToken)
	assert.Equal(t, "Bearer", data.TokenType)
	assert.True(t, expires.Equal(data.ExpiresAt))
}

func TestAuthHandler_IssueToken_InvalidCredentials(t *testing.T) {
	tokens := new(MockTokenService)
	tokens.On("IssueToken", mock.Anything, mock.Anything).
		Return(nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid API key or secret"))

	h := NewAuthHandler(tokens)
	r := newTestEngine()
	r.POST("/auth/token", h.IssueToken)

	w := performJSON(r, http.MethodPost, "/auth/token", `{"api_key":"key-1","api_secret":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidCredentials, decodeResponse(t, w).Error.Code)
}

func TestAuthHandler_IssueToken_MissingFields(t *testing.T) {
	tokens := new(MockTokenService)
	h := NewAuthHandler(tokens)
	r := newTestEngine()
	r.POST("/auth/token", h.IssueToken)

	w := performJSON(r, http.MethodPost, "/auth/token", `{"api_key":"key-1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	tokens.AssertNotCalled(t, "IssueToken", mock.Anything, mock.Anything)
}

func TestAuthHandler_Revoke(t *testing.T) {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-32-characters-long",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "test-issuer",
	})
	token, err := jwtService.GenerateAccessToken(auth.GenerateTokenInput{User: "alice", APIKey: "key-1"})
	require.NoError(t, err)
	claims, err := jwtService.ValidateAccessToken(token.AccessToken)
	require.NoError(t, err)

	tokens := new(MockTokenService)
	tokens.On("Revoke", mock.Anything, claims.ID, mock.AnythingOfType("time.Duration")).
		Return(&identity.RevokeResult{Revoked: true}, nil)

	h := NewAuthHandler(tokens)
	r := newTestEngine()
	r.POST("/auth/revoke", middleware.JWTAuthMiddleware(jwtService), h.Revoke)

	w := performWithAuth(r, http.MethodPost, "/auth/revoke", token.AccessToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, decodeData[identity.RevokeResult](t, w).Revoked)

	remaining := tokens.Calls[0].Arguments.Get(2).(time.Duration)
	assert.Greater(t, remaining, 14*time.Minute)
}

func TestAuthHandler_Revoke_NoClaims(t *testing.T) {
	h := NewAuthHandler(new(MockTokenService))
	r := newTestEngine()
	r.POST("/auth/revoke", h.Revoke)

	w := perform(r, http.MethodPost, "/auth/revoke", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func performWithAuth(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(middleware.AuthHeaderKey, middleware.BearerPrefix+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
