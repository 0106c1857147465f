// internal/service/auth/auth.go
package auth

import (
	"context"
	"strings"

	"client-bff/internal/domain/auth"
	"client-bff/internal/pkg/jwt"

	"go.uber.org/zap"
)

// TokenVerifier accepts or rejects a bearer token across the configured realms.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*jwt.Verified, error)
}

type AuthService struct {
	verifier TokenVerifier
	logger   *zap.Logger
}

func NewAuthService(verifier TokenVerifier, logger *zap.Logger) *AuthService {
	return &AuthService{
		verifier: verifier,
		logger:   logger,
	}
}

// Authenticate verifies token and builds the request principal. Errors are
// the verifier's, so callers can tell expiry from other rejections.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, jwt.ErrTokenInvalid
	}

	verified, err := s.verifier.Verify(ctx, token)
	if err != nil {
		s.logger.Debug("token rejected", zap.Error(err))
		return nil, err
	}

	claims := verified.Claims
	p := &auth.Principal{
		Subject:  claims.Subject,
		Username: claims.PreferredUsername,
		Realm:    verified.Realm,
		ClientID: claims.AuthorizedParty,
		Roles:    claims.Roles(),
		Token:    token,
	}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return p, nil
}
