// internal/middleware/auth_middleware.go
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"client-bff/internal/domain/auth"
	"client-bff/internal/metrics"
	"client-bff/internal/pkg/jwt"
	"client-bff/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ctxPrincipal = "principal"
	ctxRoles     = "roles"
)

// PublicPaths are served without a token. Entries ending in "/*" match the
// whole subtree.
var PublicPaths = []string{"/health", "/ready", "/metrics", "/swagger/*"}

// Authenticator turns a bearer token into a verified principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Principal, error)
}

type AuthMiddleware struct {
	authService Authenticator
	logger      *zap.Logger
}

func NewAuthMiddleware(authService Authenticator, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		logger:      logger,
	}
}

// IsPublicPath reports whether path is on the public allow-list.
func IsPublicPath(path string) bool {
	for _, p := range PublicPaths {
		if prefix, ok := strings.CutSuffix(p, "/*"); ok {
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				return true
			}
			continue
		}
		if path == p {
			return true
		}
	}
	return false
}

// Auth validates the bearer token on every non-public request and stores the
// principal on both the gin context and the request context.
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		token := extractToken(c)
		if token == "" {
			metrics.AuthFailure("missing_token")
			response.Unauthorized(c, "TOKEN_INVALID", "missing authorization token")
			return
		}

		principal, err := m.authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			m.reject(c, err)
			return
		}

		c.Set(ctxPrincipal, principal)
		c.Set(ctxRoles, principal.Roles)
		c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), principal))

		c.Next()
	}
}

func (m *AuthMiddleware) reject(c *gin.Context, err error) {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		metrics.AuthFailure("expired")
		c.Header("WWW-Authenticate", `Bearer error="invalid_token", error_description="token expired"`)
		response.Unauthorized(c, "TOKEN_EXPIRED", "token expired")
	case errors.Is(err, jwt.ErrNoRealmsConfigured):
		metrics.AuthFailure("not_configured")
		m.logger.Error("request rejected: no token realms configured")
		response.ErrorWithCode(c, http.StatusInternalServerError, "AUTH_NOT_CONFIGURED", "authentication is not configured", nil)
	default:
		metrics.AuthFailure("invalid")
		response.Unauthorized(c, "TOKEN_INVALID", "invalid token")
	}
}

// RequireRole requires at least one of roles. MUST be used after Auth().
// Public paths pass through untouched.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		principal, ok := GetPrincipal(c)
		if !ok {
			metrics.AuthFailure("no_principal")
			response.Forbidden(c, "authentication required")
			return
		}

		if !principal.HasAnyRole(roles...) {
			metrics.AuthFailure("forbidden")
			response.Forbidden(c, "insufficient permissions", map[string]interface{}{
				"required_roles": roles,
				"user_roles":     principal.Roles,
			})
			return
		}

		c.Next()
	}
}

// Protected is the gate for every client endpoint: a valid token holding
// one of the accepted roles.
func (m *AuthMiddleware) Protected() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		m.Auth(),
		m.RequireRole(auth.AcceptedRoles...),
	}
}

// AdminOnly narrows a group already behind Protected to ADMIN principals.
func (m *AuthMiddleware) AdminOnly() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		m.RequireRole(auth.RoleAdmin),
	}
}

// extractToken extracts Bearer token from Authorization header
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
