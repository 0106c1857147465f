package upstream

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"client-bff/internal/domain/auth"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

var ErrNoCredential = errors.New("no caller credential available")

// CredentialSource supplies the bearer token sent to upstream services.
type CredentialSource interface {
	Token(ctx context.Context) (string, error)
}

// ForwardedCredentials relays the caller's own bearer token.
type ForwardedCredentials struct{}

func (ForwardedCredentials) Token(ctx context.Context) (string, error) {
	p, ok := auth.PrincipalFrom(ctx)
	if !ok || p.Token == "" {
		return "", ErrNoCredential
	}
	return p.Token, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

type tokenErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ClientCredentials obtains a service-realm token with the OAuth2
// client-credentials grant and reuses it until shortly before expiry.
type ClientCredentials struct {
	client       *resty.Client
	tokenURL     string
	clientID     string
	clientSecret string
	refreshSkew  time.Duration
	logger       *zap.Logger
	now          func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func NewClientCredentials(client *resty.Client, issuer, clientID, clientSecret string, logger *zap.Logger) *ClientCredentials {
	return &ClientCredentials{
		client:       client,
		tokenURL:     strings.TrimRight(issuer, "/") + "/protocol/openid-connect/token",
		clientID:     clientID,
		clientSecret: clientSecret,
		refreshSkew:  30 * time.Second,
		logger:       logger,
		now:          time.Now,
	}
}

func (c *ClientCredentials) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiresAt.Add(-c.refreshSkew)) {
		return c.token, nil
	}

	var tok tokenResponse
	var tokErr tokenErrorResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "client_credentials",
			"client_id":     c.clientID,
			"client_secret": c.clientSecret,
		}).
		SetResult(&tok).
		SetError(&tokErr).
		Post(c.tokenURL)
	if err != nil {
		return "", fmt.Errorf("request service token: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("request service token: status %d: %s %s", resp.StatusCode(), tokErr.Error, tokErr.ErrorDescription)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("request service token: empty access_token")
	}

	c.token = tok.AccessToken
	c.expiresAt = c.now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	c.logger.Debug("service token refreshed", zap.Time("expires_at", c.expiresAt))
	return c.token, nil
}
