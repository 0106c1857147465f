package jwt

import (
	"context"
	"crypto/rsa"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// KeySource resolves the RSA key a token was signed with.
type KeySource interface {
	Key(ctx context.Context, kid string) (*rsa.PublicKey, error)
}

// StaticKey serves one configured public key for every kid.
type StaticKey struct {
	pub *rsa.PublicKey
}

func NewStaticKey(pub *rsa.PublicKey) *StaticKey {
	return &StaticKey{pub: pub}
}

func (s *StaticKey) Key(_ context.Context, _ string) (*rsa.PublicKey, error) {
	if s.pub == nil {
		return nil, ErrKeyNotFound
	}
	return s.pub, nil
}

type discoveryDocument struct {
	Issuer  string `json:"issuer"`
	JWKSURI string `json:"jwks_uri"`
}

type jwkSet struct {
	Keys []JWK `json:"keys"`
}

// RemoteKeySet loads signing keys from the issuer's OIDC discovery document.
// Keys are cached and refetched when an unknown kid shows up, at most once
// per refresh interval whether the last fetch succeeded or not. Fetches run
// outside the key lock, so cached lookups never wait on the issuer.
type RemoteKeySet struct {
	issuer          string
	client          *resty.Client
	refreshInterval time.Duration
	logger          *zap.Logger
	now             func() time.Time
	group           singleflight.Group

	mu          sync.RWMutex
	jwksURI     string
	keys        map[string]*rsa.PublicKey
	lastAttempt time.Time
	lastErr     error
}

func NewRemoteKeySet(issuer string, client *resty.Client, refreshInterval time.Duration, logger *zap.Logger) *RemoteKeySet {
	return &RemoteKeySet{
		issuer:          strings.TrimRight(issuer, "/"),
		client:          client,
		refreshInterval: refreshInterval,
		logger:          logger,
		now:             time.Now,
		keys:            map[string]*rsa.PublicKey{},
	}
}

func (r *RemoteKeySet) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	if key, ok := r.lookup(kid); ok {
		return key, nil
	}

	if err := r.refresh(ctx); err != nil {
		return nil, err
	}

	if key, ok := r.lookup(kid); ok {
		return key, nil
	}
	return nil, fmt.Errorf("%w: kid %q", ErrKeyNotFound, kid)
}

func (r *RemoteKeySet) lookup(kid string) (*rsa.PublicKey, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if kid == "" && len(r.keys) == 1 {
		for _, k := range r.keys {
			return k, true
		}
	}
	key, ok := r.keys[kid]
	return key, ok
}

// refresh refetches the key set unless an attempt was made within the
// refresh interval, in which case that attempt's error is returned.
// Concurrent callers share one fetch.
func (r *RemoteKeySet) refresh(ctx context.Context) error {
	_, err, _ := r.group.Do("refresh", func() (interface{}, error) {
		r.mu.Lock()
		if !r.lastAttempt.IsZero() && r.now().Sub(r.lastAttempt) < r.refreshInterval {
			err := r.lastErr
			r.mu.Unlock()
			return nil, err
		}
		r.lastAttempt = r.now()
		jwksURI := r.jwksURI
		r.mu.Unlock()

		// Shared by every waiter, so one caller going away must not fail the rest.
		keys, jwksURI, err := r.fetch(context.WithoutCancel(ctx), jwksURI)

		r.mu.Lock()
		defer r.mu.Unlock()
		r.lastErr = err
		if err != nil {
			r.logger.Warn("failed to load realm signing keys",
				zap.String("issuer", r.issuer),
				zap.Error(err),
			)
			return nil, err
		}
		r.jwksURI = jwksURI
		r.keys = keys
		r.logger.Info("realm signing keys loaded",
			zap.String("issuer", r.issuer),
			zap.Int("keys", len(keys)),
		)
		return nil, nil
	})
	return err
}

func (r *RemoteKeySet) fetch(ctx context.Context, jwksURI string) (map[string]*rsa.PublicKey, string, error) {
	if jwksURI == "" {
		var doc discoveryDocument
		resp, err := r.client.R().
			SetContext(ctx).
			SetResult(&doc).
			Get(r.issuer + "/.well-known/openid-configuration")
		if err != nil {
			return nil, "", fmt.Errorf("fetch discovery document: %w", err)
		}
		if resp.IsError() {
			return nil, "", fmt.Errorf("fetch discovery document: status %d", resp.StatusCode())
		}
		if doc.JWKSURI == "" {
			return nil, "", fmt.Errorf("discovery document for %s has no jwks_uri", r.issuer)
		}
		jwksURI = doc.JWKSURI
	}

	var set jwkSet
	resp, err := r.client.R().
		SetContext(ctx).
		SetResult(&set).
		Get(jwksURI)
	if err != nil {
		return nil, "", fmt.Errorf("fetch jwks: %w", err)
	}
	if resp.IsError() {
		return nil, "", fmt.Errorf("fetch jwks: status %d", resp.StatusCode())
	}

	keys := make(map[string]*rsa.PublicKey, len(set.Keys))
	for _, k := range set.Keys {
		if k.Use != "" && k.Use != "sig" {
			continue
		}
		pub, err := k.RSAPublicKey()
		if err != nil {
			r.logger.Debug("skipping jwk", zap.String("kid", k.Kid), zap.Error(err))
			continue
		}
		keys[k.Kid] = pub
	}
	return keys, jwksURI, nil
}
