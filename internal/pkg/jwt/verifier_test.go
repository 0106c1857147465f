package jwt

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	userIssuer    = "http://idp.local/realms/user-authentication"
	serviceIssuer = "http://idp.local/realms/service-authentication"
)

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func signToken(t *testing.T, key *rsa.PrivateKey, kid string, claims *Claims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if kid != "" {
		tok.Header["kid"] = kid
	}
	s, err := tok.SignedString(key)
	require.NoError(t, err)
	return s
}

func newClaims(issuer string, exp time.Time) *Claims {
	return &Claims{
		RealmAccess: RoleSet{Roles: []string{"customer", "offline_access"}},
		ResourceAccess: map[string]RoleSet{
			"client-bff": {Roles: []string{"Customer", "viewer"}},
		},
		PreferredUsername: "jane",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
}

func TestRealmVerifier(t *testing.T) {
	key := newKey(t)
	otherKey := newKey(t)
	v := NewRealmVerifier("user", userIssuer, "", 0, NewStaticKey(&key.PublicKey))
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		claims, err := v.Verify(ctx, signToken(t, key, "k1", newClaims(userIssuer, time.Now().Add(time.Hour))))
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.Subject)
		assert.Equal(t, []string{"CUSTOMER", "OFFLINE_ACCESS", "VIEWER"}, claims.Roles())
	})

	t.Run("expired token", func(t *testing.T) {
		_, err := v.Verify(ctx, signToken(t, key, "k1", newClaims(userIssuer, time.Now().Add(-time.Hour))))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTokenExpired)

		var realmErr *RealmError
		require.True(t, errors.As(err, &realmErr))
		assert.Equal(t, "user", realmErr.Realm)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		_, err := v.Verify(ctx, signToken(t, key, "k1", newClaims(serviceIssuer, time.Now().Add(time.Hour))))
		assert.ErrorIs(t, err, ErrTokenInvalid)
		assert.NotErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("bad signature", func(t *testing.T) {
		_, err := v.Verify(ctx, signToken(t, otherKey, "k1", newClaims(userIssuer, time.Now().Add(time.Hour))))
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("missing expiry", func(t *testing.T) {
		c := newClaims(userIssuer, time.Now())
		c.ExpiresAt = nil
		_, err := v.Verify(ctx, signToken(t, key, "k1", c))
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("hmac token rejected", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, newClaims(userIssuer, time.Now().Add(time.Hour)))
		s, err := tok.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = v.Verify(ctx, s)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := v.Verify(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}

func TestRealmVerifierAudience(t *testing.T) {
	key := newKey(t)
	v := NewRealmVerifier("user", userIssuer, "client-bff", 0, NewStaticKey(&key.PublicKey))

	c := newClaims(userIssuer, time.Now().Add(time.Hour))
	_, err := v.Verify(context.Background(), signToken(t, key, "", c))
	assert.ErrorIs(t, err, ErrTokenInvalid)

	c.Audience = jwt.ClaimStrings{"account", "client-bff"}
	_, err = v.Verify(context.Background(), signToken(t, key, "", c))
	assert.NoError(t, err)
}

func TestRealmVerifierLeeway(t *testing.T) {
	key := newKey(t)
	v := NewRealmVerifier("user", userIssuer, "", time.Minute, NewStaticKey(&key.PublicKey))

	_, err := v.Verify(context.Background(), signToken(t, key, "", newClaims(userIssuer, time.Now().Add(-10*time.Second))))
	assert.NoError(t, err)
}

func TestClaimsRolesDeduplicates(t *testing.T) {
	c := &Claims{
		RealmAccess: RoleSet{Roles: []string{"admin", "ADMIN", " "}},
		ResourceAccess: map[string]RoleSet{
			"zeta":  {Roles: []string{"service"}},
			"alpha": {Roles: []string{"Admin", "customer"}},
		},
	}

	assert.Equal(t, []string{"ADMIN", "CUSTOMER", "SERVICE"}, c.Roles())
	assert.True(t, c.HasRole("service"))
	assert.False(t, c.HasRole("owner"))
	assert.Empty(t, (&Claims{}).Roles())
}
