package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/timetracker/backend/internal/application/identity"
	"github.com/timetracker/backend/internal/interfaces/http/middleware"
)

// TokenService is the credential exchange API used by AuthHandler
type TokenService interface {
	IssueToken(ctx context.Context, input identity.TokenInput) (*identity.TokenResult, error)
	Revoke(ctx context.Context, jti string, remaining time.Duration) (*identity.RevokeResult, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	tokens TokenService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(tokens TokenService) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// IssueToken godoc
// @ID           issueToken
// @Summary      Exchange API credentials for an access token
// @Description  Unknown keys, wrong secrets and disabled credentials are all rejected with 401
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.TokenInput true "API credentials"
// @Success      200 {object} APIResponse[identity.TokenResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /auth/token [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req identity.TokenInput
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.tokens.IssueToken(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Revoke godoc
// @ID           revokeToken
// @Summary      Revoke the presented access token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} APIResponse[identity.RevokeResult]
// @Failure      401 {object} ErrorResponse
// @Router       /auth/revoke [post]
func (h *AuthHandler) Revoke(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.tokens.Revoke(c.Request.Context(), claims.ID, claims.GetRemainingTTL())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
