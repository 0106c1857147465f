// internal/pkg/jwt/loader.go
package jwt

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// RealmConfig describes one token-issuing realm. A realm with an empty
// issuer is not configured and is skipped.
type RealmConfig struct {
	Name          string
	Issuer        string
	PublicKeyPath string
}

type Config struct {
	Realms          []RealmConfig
	Audience        string
	Leeway          time.Duration
	RefreshInterval time.Duration
}

// LoadAndBuild builds the ordered multi-realm verifier. Realms with a public
// key path use that key; the rest discover their keys from the issuer.
func LoadAndBuild(cfg Config, client *resty.Client, logger *zap.Logger) (*MultiRealmVerifier, error) {
	verifiers := make([]TokenVerifier, 0, len(cfg.Realms))

	for _, realm := range cfg.Realms {
		if strings.TrimSpace(realm.Issuer) == "" {
			logger.Warn("realm issuer not configured, skipping", zap.String("realm", realm.Name))
			continue
		}

		var keys KeySource
		if realm.PublicKeyPath != "" {
			pub, err := LoadRSAPublicKeyFromPEM(realm.PublicKeyPath)
			if err != nil {
				return nil, fmt.Errorf("failed to load public key for realm %s from %s: %w", realm.Name, realm.PublicKeyPath, err)
			}
			keys = NewStaticKey(pub)
		} else {
			keys = NewRemoteKeySet(realm.Issuer, client, cfg.RefreshInterval, logger)
		}

		verifiers = append(verifiers, NewRealmVerifier(realm.Name, realm.Issuer, cfg.Audience, cfg.Leeway, keys))
		logger.Info("realm verifier configured",
			zap.String("realm", realm.Name),
			zap.String("issuer", realm.Issuer),
		)
	}

	if len(verifiers) == 0 {
		logger.Warn("no token realms configured, protected endpoints will reject every request")
	}

	return NewMultiRealmVerifier(verifiers...), nil
}
