// internal/middleware/helpers.go
package middleware

import (
	"client-bff/internal/domain/auth"

	"github.com/gin-gonic/gin"
)

// GetPrincipal gets the verified caller from context
func GetPrincipal(c *gin.Context) (*auth.Principal, bool) {
	v, exists := c.Get(ctxPrincipal)
	if !exists {
		return nil, false
	}
	p, ok := v.(*auth.Principal)
	return p, ok && p != nil
}

// GetRoles gets user roles from context
func GetRoles(c *gin.Context) []string {
	roles, exists := c.Get(ctxRoles)
	if !exists {
		return []string{}
	}

	rolesList, ok := roles.([]string)
	if !ok {
		return []string{}
	}

	return rolesList
}

// HasRole checks if the caller holds role
func HasRole(c *gin.Context, role string) bool {
	p, ok := GetPrincipal(c)
	return ok && p.HasRole(role)
}

// IsAuthenticated checks if request is authenticated
func IsAuthenticated(c *gin.Context) bool {
	_, ok := GetPrincipal(c)
	return ok
}

// GetRequestID returns the id assigned by RequestID().
func GetRequestID(c *gin.Context) string {
	return c.GetString(ctxRequestID)
}
