// internal/domain/auth/entity.go
package auth

import (
	"strings"
	"time"
)

const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
	RoleService  = "SERVICE"
)

// AcceptedRoles are the roles allowed to call protected endpoints.
var AcceptedRoles = []string{RoleCustomer, RoleAdmin, RoleService}

// Principal is the verified caller of a request. It is built once by the
// auth middleware and never modified afterwards.
type Principal struct {
	Subject   string    `json:"subject"`
	Username  string    `json:"username,omitempty"`
	Realm     string    `json:"realm"`
	ClientID  string    `json:"clientId,omitempty"`
	Roles     []string  `json:"roles"`
	ExpiresAt time.Time `json:"expiresAt"`

	// Token is the raw bearer token, kept for forwarding to upstreams.
	Token string `json:"-"`
}

// HasRole checks if the principal holds role (case-insensitive).
func (p *Principal) HasRole(role string) bool {
	role = strings.ToUpper(role)
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole checks if the principal holds at least one of roles.
func (p *Principal) HasAnyRole(roles ...string) bool {
	for _, role := range roles {
		if p.HasRole(role) {
			return true
		}
	}
	return false
}
