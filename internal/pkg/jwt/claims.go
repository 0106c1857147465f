// internal/pkg/jwt/claims.go
package jwt

import (
	"sort"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// RoleSet is the {"roles": [...]} object used by realm and client access claims.
type RoleSet struct {
	Roles []string `json:"roles,omitempty"`
}

// Claims represents the claims of a realm-issued access token.
type Claims struct {
	RealmAccess       RoleSet            `json:"realm_access"`
	ResourceAccess    map[string]RoleSet `json:"resource_access,omitempty"`
	PreferredUsername string             `json:"preferred_username,omitempty"`
	AuthorizedParty   string             `json:"azp,omitempty"`
	Scope             string             `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// Roles flattens realm roles and every client's roles into one upper-cased,
// de-duplicated list. Realm roles come first; clients follow in name order.
func (c *Claims) Roles() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(c.RealmAccess.Roles))

	add := func(roles []string) {
		for _, r := range roles {
			r = strings.ToUpper(strings.TrimSpace(r))
			if r == "" {
				continue
			}
			if _, ok := seen[r]; ok {
				continue
			}
			seen[r] = struct{}{}
			out = append(out, r)
		}
	}

	add(c.RealmAccess.Roles)

	clients := make([]string, 0, len(c.ResourceAccess))
	for name := range c.ResourceAccess {
		clients = append(clients, name)
	}
	sort.Strings(clients)
	for _, name := range clients {
		add(c.ResourceAccess[name].Roles)
	}

	return out
}

// HasRole checks if the claims contain a specific role
func (c *Claims) HasRole(role string) bool {
	role = strings.ToUpper(role)
	for _, r := range c.Roles() {
		if r == role {
			return true
		}
	}
	return false
}
