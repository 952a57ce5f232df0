package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/codeassist/chat-gateway/internal/api/handler"
	"github.com/codeassist/chat-gateway/internal/api/middleware"
	"github.com/codeassist/chat-gateway/internal/core/service"
	mongodb "github.com/codeassist/chat-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/codeassist/chat-gateway/internal/infrastructure/db/redis"
	"github.com/codeassist/chat-gateway/internal/infrastructure/proxy"
	"github.com/codeassist/chat-gateway/internal/pkg/config"
)

// edgeSkipper exempts health probes and the metrics endpoint from edge
// policy (CORS, body limit, rate limiting).
func edgeSkipper(c echo.Context) bool {
	switch c.Path() {
	case "/health", "/health/ready", "/metrics":
		return true
	}
	return false
}

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; the rate limiter then falls back to in-process counters.
func NewRouter(cfg *config.Config, log zerolog.Logger, db *mongo.Database, rdb *redis.Client) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.IsProduction())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// Per-router registry so building the router twice (tests) never
	// double-registers; /metrics also gathers the default registry, which
	// carries the custom gateway metrics.
	promRegistry := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "gateway",
		Registerer: promRegistry,
	}))

	// --- Edge policy ---
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		Skipper:      edgeSkipper,
		AllowOrigins: cfg.CORSOrigins(),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.BodyLimitWithConfig(echomiddleware.BodyLimitConfig{
		Skipper: edgeSkipper,
		Limit:   "1M",
	}))

	var store middleware.WindowStore
	if rdb != nil {
		store = redisdb.NewRateLimitStore(rdb)
	}
	e.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Skipper: edgeSkipper,
		Max:     cfg.RateLimitCeiling(),
		Store:   store,
		Log:     log,
	}))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	hasher := service.NewBcryptHasher(0)
	tokens := service.NewJWTTokenService(cfg.JWTSecret, 0)
	authService := service.NewAuthService(userRepo, hasher, tokens)
	authHandler := handler.NewAuthHandler(authService)

	chatGateway := proxy.NewChatServiceClient(cfg.ChatServiceURL, log)
	chatHandler := handler.NewChatHandler(chatGateway, cfg.IsProduction())

	authMiddleware := middleware.Auth(tokens)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/profile", authHandler.Profile, authMiddleware)

	// --- Chat routes (all protected) ---
	chat := e.Group("/api/chat", authMiddleware)
	chat.POST("/completions", chatHandler.Completions)
	chat.GET("/conversations", chatHandler.ListConversations)
	chat.GET("/conversations/:id", chatHandler.GetConversation)
	chat.DELETE("/conversations/:id", chatHandler.DeleteConversation)
	chat.PUT("/conversations/:id/title", chatHandler.RenameConversation)

	// --- Health probes and metrics (no auth, no edge policy) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{promRegistry, prometheus.DefaultGatherer},
	}))

	return e
}
