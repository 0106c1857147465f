// internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"client-bff/internal/config"
	"client-bff/internal/db"
	adminHandler "client-bff/internal/handlers/admin"
	healthHandler "client-bff/internal/handlers/health"
	searchHandler "client-bff/internal/handlers/search"
	"client-bff/internal/middleware"
	"client-bff/internal/pkg/jwt"
	"client-bff/internal/pkg/ratelimit"
	"client-bff/internal/repository/postgres"
	redisrepo "client-bff/internal/repository/redis"
	"client-bff/internal/searchindex"
	auditUsecase "client-bff/internal/service/audit"
	authUsecase "client-bff/internal/service/auth"
	searchUsecase "client-bff/internal/service/search"
	"client-bff/internal/upstream"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const version = "1.0.0"

type Server struct {
	cfg        config.AppConfig
	engine     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger

	redis *redis.Client
	pg    *postgres.DB
}

// NewServer connects the configured infrastructure and wires every route.
// Optional backends (Redis, Postgres, Elasticsearch) are skipped when their
// address is empty; a configured backend that cannot be reached is an error.
func NewServer(ctx context.Context, cfg config.AppConfig, logger *zap.Logger) (*Server, error) {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{cfg: cfg, engine: gin.New(), logger: logger}
	if err := s.setup(ctx); err != nil {
		s.closeBackends()
		return nil, err
	}

	s.httpServer = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func (s *Server) setup(ctx context.Context) error {
	cfg := s.cfg
	logger := s.logger
	checks := map[string]healthHandler.Pinger{}

	// ----- Redis -----
	if cfg.RedisEnabled() {
		client, err := db.NewRedisClient(ctx, db.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			PoolSize: 10,
		})
		if err != nil {
			return err
		}
		s.redis = client
		logger.Info("redis connected", zap.String("addr", cfg.RedisAddr))
	}

	// ----- PostgreSQL -----
	var auditStore auditUsecase.Store
	if cfg.PostgresEnabled() {
		pool, err := db.ConnectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		s.pg = postgres.NewDB(pool)
		checks["postgres"] = s.pg

		repo := postgres.NewSearchAuditRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}
		auditStore = repo
		logger.Info("postgres connected, search audit enabled")
	}

	// ----- Token verification -----
	idpClient := upstream.NewRestyClient("", cfg.UpstreamTimeout, cfg.UpstreamConnectTimeout)
	verifier, err := jwt.LoadAndBuild(cfg.JWT(), idpClient, logger)
	if err != nil {
		return fmt.Errorf("failed to build token verifier: %w", err)
	}
	authService := authUsecase.NewAuthService(verifier, logger)
	authMiddleware := middleware.NewAuthMiddleware(authService, logger)

	// ----- Upstream clients -----
	var creds upstream.CredentialSource = upstream.ForwardedCredentials{}
	if cfg.ServiceClientID != "" {
		creds = upstream.NewClientCredentials(idpClient, cfg.ServiceRealmIssuer, cfg.ServiceClientID, cfg.ServiceClientSecret, logger)
		logger.Info("upstream calls use client credentials", zap.String("client_id", cfg.ServiceClientID))
	}

	availability := upstream.NewAvailabilityClient(
		upstream.NewRestyClient(cfg.VehicleServiceURL, cfg.UpstreamTimeout, cfg.UpstreamConnectTimeout),
		creds,
		logger,
	)

	var pricing searchUsecase.PricingProvider = upstream.NewPricingClient(
		upstream.NewRestyClient(cfg.PricingServiceURL, cfg.UpstreamTimeout, cfg.UpstreamConnectTimeout),
		creds,
	)
	if s.redis != nil {
		cache := redisrepo.NewPricingCache(s.redis, cfg.PricingCacheTTL)
		checks["redis"] = cache
		pricing = searchUsecase.NewCachedPricing(pricing, cache, logger)
	}

	// ----- Search paths -----
	aggregator := searchUsecase.NewAggregator(availability, pricing, searchUsecase.AggregatorConfig{
		PricingTimeout: cfg.PricingTimeout,
		Concurrency:    cfg.PricingConcurrency,
	}, logger)

	live := searchUsecase.NewLiveSearchPath(aggregator, logger)
	var advanced searchUsecase.SearchPath = live
	if cfg.ElasticsearchEnabled() {
		esCfg := searchindex.Config{
			Addresses:          cfg.ElasticsearchAddresses,
			Username:           cfg.ElasticsearchUsername,
			Password:           cfg.ElasticsearchPassword,
			Index:              cfg.ElasticsearchIndex,
			MissingPricePolicy: cfg.IndexMissingPricePolicy,
			DefaultRadiusKm:    cfg.DefaultSearchRadiusKm,
		}
		es, err := searchindex.NewClient(esCfg)
		if err != nil {
			return err
		}
		index := searchindex.NewVehicleIndex(es, esCfg, logger)
		checks["elasticsearch"] = index
		advanced = searchUsecase.NewIndexSearchPath(index, logger)
		logger.Info("advanced search served from the search index", zap.String("index", cfg.ElasticsearchIndex))
	}

	recorder := auditUsecase.NewRecorder(auditStore, logger)

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RequestID(),
		middleware.LoggingMiddleware(logger),
		middleware.RecoveryMiddleware(logger),
		cors.New(corsConfig(cfg.CORSAllowedOrigins)),
	)

	// ----- Router -----
	handlers := &Handlers{
		SearchHandler:  searchHandler.NewSearchHandler(aggregator, advanced, live, recorder, logger),
		HealthHandler:  healthHandler.NewHealthHandler(version, checks),
		AuditHandler:   adminHandler.NewAuditHandler(recorder),
		AuthMiddleware: authMiddleware,
	}
	if s.redis != nil && cfg.RateLimitPerMinute > 0 {
		limiter := ratelimit.NewRateLimiter(s.redis, cfg.RateLimitPerMinute, time.Minute)
		handlers.RateLimit = middleware.RateLimit(limiter, logger)
	}
	SetupRouter(s.engine, logger, handlers)

	logger.Info("server configured",
		zap.Strings("realms", verifier.Realms()),
		zap.Bool("redis", s.redis != nil),
		zap.Bool("postgres", s.pg != nil),
		zap.Bool("elasticsearch", cfg.ElasticsearchEnabled()),
	)
	return nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID, "Retry-After"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}

// Run serves HTTP until Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info("server running", zap.String("addr", s.cfg.HTTPAddr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and closes the backends.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	s.closeBackends()
	return err
}

func (s *Server) closeBackends() {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if s.pg != nil {
		s.pg.Close()
	}
}
