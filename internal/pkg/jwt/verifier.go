// internal/pkg/jwt/verifier.go
package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RealmVerifier checks tokens issued by a single realm.
type RealmVerifier struct {
	name     string
	issuer   string
	audience string
	leeway   time.Duration
	keys     KeySource
}

func NewRealmVerifier(name, issuer, audience string, leeway time.Duration, keys KeySource) *RealmVerifier {
	return &RealmVerifier{
		name:     name,
		issuer:   issuer,
		audience: audience,
		leeway:   leeway,
		keys:     keys,
	}
}

func (v *RealmVerifier) Name() string {
	return v.name
}

// Verify validates signature, issuer, expiry and (when set) audience.
// Failures are *RealmError wrapping ErrTokenExpired or ErrTokenInvalid.
func (v *RealmVerifier) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		kid, _ := token.Header["kid"].(string)
		return v.keys.Key(ctx, kid)
	}, opts...)
	if err != nil {
		return nil, v.classify(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, &RealmError{Realm: v.name, Err: fmt.Errorf("%w: invalid token claims", ErrTokenInvalid)}
	}

	return claims, nil
}

func (v *RealmVerifier) classify(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return &RealmError{Realm: v.name, Err: fmt.Errorf("%w: %v", ErrTokenExpired, err)}
	}
	return &RealmError{Realm: v.name, Err: fmt.Errorf("%w: %v", ErrTokenInvalid, err)}
}
