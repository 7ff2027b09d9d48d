package identity

import (
	"context"
	"errors"
	"time"

	"github.com/timetracker/backend/internal/domain/identity"
	"github.com/timetracker/backend/internal/domain/shared"
	"github.com/timetracker/backend/internal/infrastructure/auth"
	"github.com/timetracker/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

var errInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid API key or secret")

// TokenService exchanges API credentials for access tokens and manages their
// lifecycle
type TokenService struct {
	credRepo   identity.APICredentialRepository
	jwtService *auth.JWTService
	revocation auth.RevocationList
	publisher  shared.EventPublisher
	logger     *zap.Logger
}

// NewTokenService creates a new token service. publisher may be nil.
func NewTokenService(
	credRepo identity.APICredentialRepository,
	jwtService *auth.JWTService,
	revocation auth.RevocationList,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *TokenService {
	return &TokenService{
		credRepo:   credRepo,
		jwtService: jwtService,
		revocation: revocation,
		publisher:  publisher,
		logger:     logger,
	}
}

// IssueToken verifies the credential pair and returns an access token
func (s *TokenService) IssueToken(ctx context.Context, input TokenInput) (*TokenResult, error) {
	cred, err := s.credRepo.FindByAPIKey(ctx, input.APIKey)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.log(ctx).Warn("Token requested for unknown api key", zap.String("api_key", input.APIKey))
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !cred.VerifySecret(input.APISecret) {
		s.log(ctx).Warn("Invalid api secret or disabled credential",
			zap.String("api_key", input.APIKey),
			zap.Bool("enabled", cred.Enabled))
		return nil, errInvalidCredentials
	}

	token, err := s.jwtService.GenerateAccessToken(auth.GenerateTokenInput{
		User:   cred.User,
		APIKey: cred.APIKey,
	})
	if err != nil {
		s.log(ctx).Error("Failed to generate access token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate access token")
	}

	cred.RecordUse(time.Now())
	if err := s.credRepo.Save(ctx, cred); err != nil {
		// The token is valid regardless of the bookkeeping write.
		s.log(ctx).Error("Failed to record credential use", zap.Error(err))
	}

	s.log(ctx).Info("Access token issued",
		zap.String("user", cred.User),
		zap.String("api_key", cred.APIKey))

	return &TokenResult{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        cred.User,
	}, nil
}

// Revoke rejects the token with jti for the rest of its lifetime
func (s *TokenService) Revoke(ctx context.Context, jti string, remaining time.Duration) (*RevokeResult, error) {
	if jti == "" {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Token has no identifier")
	}
	if remaining <= 0 {
		return &RevokeResult{Revoked: true}, nil
	}
	if err := s.revocation.Revoke(ctx, jti, remaining); err != nil {
		s.log(ctx).Error("Failed to revoke token", zap.String("jti", jti), zap.Error(err))
		return nil, err
	}
	s.log(ctx).Info("Access token revoked", zap.String("jti", jti))
	return &RevokeResult{Revoked: true}, nil
}

// CreateCredential creates a credential for user with a random secret
func (s *TokenService) CreateCredential(ctx context.Context, user string) (*CredentialResult, error) {
	cred, secret, err := identity.NewAPICredential(user)
	if err != nil {
		return nil, err
	}
	if err := s.credRepo.Save(ctx, cred); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, cred.GetDomainEvents()...); err != nil {
			s.log(ctx).Warn("Failed to publish credential events", zap.Error(err))
		}
	}
	cred.ClearDomainEvents()

	s.log(ctx).Info("API credential created", zap.String("user", cred.User), zap.String("api_key", cred.APIKey))
	return &CredentialResult{
		User:      cred.User,
		APIKey:    cred.APIKey,
		APISecret: secret,
	}, nil
}

// DisableCredential disables the credential and revokes every token issued for it
func (s *TokenService) DisableCredential(ctx context.Context, apiKey string) error {
	cred, err := s.credRepo.FindByAPIKey(ctx, apiKey)
	if err != nil {
		return err
	}
	cred.Disable()
	if err := s.credRepo.Save(ctx, cred); err != nil {
		return err
	}
	if err := s.revocation.RevokeAPIKey(ctx, apiKey, s.jwtService.GetAccessTokenExpiration()); err != nil {
		return err
	}
	s.log(ctx).Info("API credential disabled", zap.String("api_key", apiKey))
	return nil
}

// log returns the request logger carried by ctx, falling back to the
// service logger outside a request.
func (s *TokenService) log(ctx context.Context) *zap.Logger {
	return logger.ForContext(ctx, s.logger)
}
