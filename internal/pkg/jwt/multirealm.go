package jwt

import (
	"context"
	"errors"
)

// TokenVerifier is one realm's verification capability.
type TokenVerifier interface {
	Name() string
	Verify(ctx context.Context, token string) (*Claims, error)
}

// Verified is a token accepted by one of the realms.
type Verified struct {
	Realm  string
	Claims *Claims
}

// MultiRealmVerifier tries each realm in order and returns the first success.
// It is immutable after construction and safe for concurrent use.
type MultiRealmVerifier struct {
	realms []TokenVerifier
}

func NewMultiRealmVerifier(realms ...TokenVerifier) *MultiRealmVerifier {
	return &MultiRealmVerifier{realms: append([]TokenVerifier(nil), realms...)}
}

// Realms returns the names of the configured realms in trial order.
func (m *MultiRealmVerifier) Realms() []string {
	names := make([]string, 0, len(m.realms))
	for _, r := range m.realms {
		names = append(names, r.Name())
	}
	return names
}

// Verify returns the first realm that accepts token. When all reject it, an
// expiry failure from any realm wins over every other reason; otherwise the
// first realm's failure is returned.
func (m *MultiRealmVerifier) Verify(ctx context.Context, token string) (*Verified, error) {
	if len(m.realms) == 0 {
		return nil, ErrNoRealmsConfigured
	}

	var first, expired error
	for _, realm := range m.realms {
		claims, err := realm.Verify(ctx, token)
		if err == nil {
			return &Verified{Realm: realm.Name(), Claims: claims}, nil
		}
		if first == nil {
			first = err
		}
		if expired == nil && errors.Is(err, ErrTokenExpired) {
			expired = err
		}
	}

	if expired != nil {
		return nil, expired
	}
	return nil, first
}
