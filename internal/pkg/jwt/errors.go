package jwt

import (
	"errors"
	"fmt"
)

var (
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrNoRealmsConfigured = errors.New("no token realms configured")
	ErrKeyNotFound        = errors.New("signing key not found")
)

// RealmError records why a single realm rejected a token.
type RealmError struct {
	Realm string
	Err   error
}

func (e *RealmError) Error() string {
	return fmt.Sprintf("realm %s: %v", e.Realm, e.Err)
}

func (e *RealmError) Unwrap() error {
	return e.Err
}
