package config

import (
	"fmt"
	"strings"
	"time"

	"client-bff/internal/pkg/jwt"

	"github.com/kelseyhightower/envconfig"
)

type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

const (
	MissingPriceZero    = "zero"
	MissingPriceExclude = "exclude"
)

type AppConfig struct {
	// Server
	HTTPAddr           string        `envconfig:"HTTP_ADDR" default:":8080"`
	Environment        Environment   `envconfig:"APP_ENV" default:"production"`
	ShutdownTimeout    time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	// Realms
	UserRealmIssuer           string        `envconfig:"USER_REALM_ISSUER"`
	ServiceRealmIssuer        string        `envconfig:"SERVICE_REALM_ISSUER"`
	UserRealmPublicKeyPath    string        `envconfig:"USER_REALM_PUBLIC_KEY_PATH"`
	ServiceRealmPublicKeyPath string        `envconfig:"SERVICE_REALM_PUBLIC_KEY_PATH"`
	JWTAudience               string        `envconfig:"JWT_AUDIENCE"`
	JWTLeeway                 time.Duration `envconfig:"JWT_LEEWAY" default:"30s"`
	JWKSRefreshInterval       time.Duration `envconfig:"JWKS_REFRESH_INTERVAL" default:"5m"`

	// Upstreams
	VehicleServiceURL      string        `envconfig:"VEHICLE_SERVICE_URL" default:"http://vehicle-service:8084"`
	PricingServiceURL      string        `envconfig:"PRICING_SERVICE_URL" default:"http://pricing-service:8082"`
	UpstreamTimeout        time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"30s"`
	UpstreamConnectTimeout time.Duration `envconfig:"UPSTREAM_CONNECT_TIMEOUT" default:"10s"`
	PricingTimeout         time.Duration `envconfig:"PRICING_TIMEOUT" default:"10s"`
	PricingConcurrency     int           `envconfig:"PRICING_CONCURRENCY" default:"8"`
	ServiceClientID        string        `envconfig:"SERVICE_CLIENT_ID"`
	ServiceClientSecret    string        `envconfig:"SERVICE_CLIENT_SECRET"`

	// Search index
	ElasticsearchAddresses  []string `envconfig:"ELASTICSEARCH_ADDRESSES"`
	ElasticsearchUsername   string   `envconfig:"ELASTICSEARCH_USERNAME"`
	ElasticsearchPassword   string   `envconfig:"ELASTICSEARCH_PASSWORD"`
	ElasticsearchIndex      string   `envconfig:"ELASTICSEARCH_INDEX" default:"vehicle_search"`
	IndexMissingPricePolicy string   `envconfig:"INDEX_MISSING_PRICE_POLICY" default:"zero"`
	DefaultSearchRadiusKm   float64  `envconfig:"DEFAULT_SEARCH_RADIUS_KM" default:"50"`

	// Redis
	RedisAddr          string        `envconfig:"REDIS_ADDR"`
	RedisPass          string        `envconfig:"REDIS_PASS"`
	PricingCacheTTL    time.Duration `envconfig:"PRICING_CACHE_TTL" default:"5m"`
	RateLimitPerMinute int64         `envconfig:"RATE_LIMIT_PER_MINUTE" default:"120"`

	// Postgres
	DatabaseURL string `envconfig:"DATABASE_URL"`
}

// Load reads AppConfig from the environment and validates it.
func Load() (AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func (c *AppConfig) Validate() error {
	c.IndexMissingPricePolicy = strings.ToLower(strings.TrimSpace(c.IndexMissingPricePolicy))
	switch c.IndexMissingPricePolicy {
	case MissingPriceZero, MissingPriceExclude:
	default:
		return fmt.Errorf("unsupported INDEX_MISSING_PRICE_POLICY: %s", c.IndexMissingPricePolicy)
	}

	origins := c.CORSAllowedOrigins[:0]
	for _, o := range c.CORSAllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS must list at least one origin, or * for any")
	}
	c.CORSAllowedOrigins = origins

	if c.PricingConcurrency < 1 {
		return fmt.Errorf("PRICING_CONCURRENCY must be at least 1, got %d", c.PricingConcurrency)
	}
	if c.UpstreamTimeout <= 0 || c.UpstreamConnectTimeout <= 0 || c.PricingTimeout <= 0 {
		return fmt.Errorf("upstream timeouts must be positive")
	}
	if c.DefaultSearchRadiusKm <= 0 {
		return fmt.Errorf("DEFAULT_SEARCH_RADIUS_KM must be positive")
	}
	if (c.ServiceClientID == "") != (c.ServiceClientSecret == "") {
		return fmt.Errorf("SERVICE_CLIENT_ID and SERVICE_CLIENT_SECRET must be set together")
	}
	if c.ServiceClientID != "" && c.ServiceRealmIssuer == "" {
		return fmt.Errorf("SERVICE_CLIENT_ID requires SERVICE_REALM_ISSUER")
	}
	return nil
}

func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// JWT returns the realm verifier config, user realm first.
func (c *AppConfig) JWT() jwt.Config {
	return jwt.Config{
		Realms: []jwt.RealmConfig{
			{Name: "user", Issuer: c.UserRealmIssuer, PublicKeyPath: c.UserRealmPublicKeyPath},
			{Name: "service", Issuer: c.ServiceRealmIssuer, PublicKeyPath: c.ServiceRealmPublicKeyPath},
		},
		Audience:        c.JWTAudience,
		Leeway:          c.JWTLeeway,
		RefreshInterval: c.JWKSRefreshInterval,
	}
}

func (c *AppConfig) ElasticsearchEnabled() bool {
	return len(c.ElasticsearchAddresses) > 0
}

func (c *AppConfig) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func (c *AppConfig) PostgresEnabled() bool {
	return c.DatabaseURL != ""
}
