package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/timetracker/backend/internal/infrastructure/auth"
	"github.com/timetracker/backend/internal/infrastructure/logger"
	"github.com/timetracker/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserKey    = "jwt_user"
	JWTAPIKeyKey  = "jwt_api_key"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// Revocation is optional; when set revoked tokens and disabled API keys are rejected
	Revocation auth.RevocationList
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	Logger    *zap.Logger
}

// DefaultJWTConfig returns default JWT middleware configuration
func DefaultJWTConfig(jwtService *auth.JWTService) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/api/v1/auth/token",
		},
	}
}

// JWTAuthMiddleware creates JWT authentication middleware
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(DefaultJWTConfig(jwtService))
}

// JWTAuthMiddlewareWithConfig creates JWT authentication middleware with custom config
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			handleAuthError(c, cfg, auth.ErrInvalidToken, "Missing authorization header")
			return
		}
		tokenString, ok := strings.CutPrefix(authHeader, BearerPrefix)
		if !ok || tokenString == "" {
			handleAuthError(c, cfg, auth.ErrInvalidToken, "Invalid authorization header format")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			handleAuthError(c, cfg, err, "Token validation failed")
			return
		}

		if cfg.Revocation != nil && isRevoked(c, cfg, claims) {
			handleAuthError(c, cfg, auth.ErrTokenRevoked, "Token has been revoked")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserKey, claims.User)
		c.Set(JWTAPIKeyKey, claims.APIKey)

		ctx, _ := logger.WithCaller(c.Request.Context(), logger.FromContext(c.Request.Context()), claims.User, claims.APIKey)
		c.Request = c.Request.WithContext(ctx)

		cfg.Logger.Debug("JWT authentication successful", zap.String("user", claims.User))
		c.Next()
	}
}

// isRevoked checks the token ID and the issuing API key. Lookup failures are
// logged and treated as not revoked.
func isRevoked(c *gin.Context, cfg JWTMiddlewareConfig, claims *auth.Claims) bool {
	ctx := c.Request.Context()

	if claims.ID != "" {
		revoked, err := cfg.Revocation.IsRevoked(ctx, claims.ID)
		if err != nil {
			cfg.Logger.Error("Failed to check token revocation", zap.String("jti", claims.ID), zap.Error(err))
		} else if revoked {
			return true
		}
	}

	if claims.APIKey != "" {
		revoked, err := cfg.Revocation.IsAPIKeyRevoked(ctx, claims.APIKey, claims.GetIssuedAtTime())
		if err != nil {
			cfg.Logger.Error("Failed to check API key revocation", zap.String("api_key", claims.APIKey), zap.Error(err))
		} else if revoked {
			return true
		}
	}
	return false
}

func handleAuthError(c *gin.Context, cfg JWTMiddlewareConfig, err error, message string) {
	cfg.Logger.Warn("JWT authentication failed",
		zap.Error(err),
		zap.String("message", message),
		zap.String("path", c.Request.URL.Path),
	)

	code, msg := dto.ErrCodeUnauthorized, "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, msg = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenRevoked):
		code, msg = dto.ErrCodeTokenRevoked, "Token has been revoked"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidTokenType),
		errors.Is(err, auth.ErrInvalidClaims),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingUser):
		code, msg = dto.ErrCodeTokenInvalid, "Invalid token"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, msg, getRequestID(c)))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUser retrieves the authenticated user from gin.Context
func GetJWTUser(c *gin.Context) string {
	return c.GetString(JWTUserKey)
}
