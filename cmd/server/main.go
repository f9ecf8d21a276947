package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/emberforge/guildmaster/internal/config"
	"github.com/emberforge/guildmaster/internal/database"
	"github.com/emberforge/guildmaster/internal/handler"
	"github.com/emberforge/guildmaster/internal/middleware"
	"github.com/emberforge/guildmaster/internal/repository"
	"github.com/emberforge/guildmaster/internal/rng"
	"github.com/emberforge/guildmaster/internal/service"
	"github.com/emberforge/guildmaster/pkg/jwt"
)

func main() {
	// Load .env for local development, ignored when absent
	_ = godotenv.Load()

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize token validation for the identity provider boundary
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	guildRepo := repository.NewGuildRepository(db)
	characterRepo := repository.NewCharacterRepository(db)
	battleRepo := repository.NewBattleRepository(db)
	territoryRepo := repository.NewTerritoryRepository(db)

	// Guild locks and randomness are shared across services so that all
	// writes to a guild serialize on the same mutex
	locks := service.NewGuildLocks()
	random := rng.New()

	// Initialize services
	guildService := service.NewGuildService(service.GuildServiceConfig{
		GuildRepo: guildRepo,
		CharRepo:  characterRepo,
		Locks:     locks,
	})

	recruitmentService := service.NewRecruitmentService(service.RecruitmentServiceConfig{
		GuildRepo: guildRepo,
		CharRepo:  characterRepo,
		Locks:     locks,
		Random:    random,
	})

	progressionService := service.NewProgressionService(service.ProgressionServiceConfig{
		GuildRepo: guildRepo,
		CharRepo:  characterRepo,
		Locks:     locks,
	})

	battleService := service.NewBattleService(service.BattleServiceConfig{
		GuildRepo:  guildRepo,
		CharRepo:   characterRepo,
		BattleRepo: battleRepo,
		Locks:      locks,
		Random:     random,
	})

	territoryService := service.NewTerritoryService(service.TerritoryServiceConfig{
		TerritoryRepo: territoryRepo,
		GuildRepo:     guildRepo,
		Locks:         locks,
		Random:        random,
	})

	shopService := service.NewShopService(service.ShopServiceConfig{
		GuildRepo:   guildRepo,
		Recruiter:   recruitmentService,
		Progression: progressionService,
		Locks:       locks,
	})

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   100,
		Window: time.Minute,
		Burst:  20,
	})
	defer rateLimiter.Stop()

	// Initialize replay cache for keyed mutating requests
	replayCache := middleware.NewReplayCache(middleware.ReplayCacheConfig{
		TTL:     24 * time.Hour,
		Cleanup: time.Hour,
	})
	defer replayCache.Stop()

	// Initialize handlers
	guildHandler := handler.NewGuildHandler(guildService)
	characterHandler := handler.NewCharacterHandler(guildService, recruitmentService, progressionService)
	battleHandler := handler.NewBattleHandler(battleService)
	territoryHandler := handler.NewTerritoryHandler(territoryService)
	shopHandler := handler.NewShopHandler(shopService)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", handler.Health)

	authMiddleware := middleware.Auth(jwtService)

	// Guild endpoints
	mux.Handle("GET /v1/guild", authMiddleware(http.HandlerFunc(guildHandler.Get)))
	mux.Handle("PATCH /v1/guild", authMiddleware(http.HandlerFunc(guildHandler.Update)))

	// Character endpoints
	mux.Handle("GET /v1/guild/characters", authMiddleware(http.HandlerFunc(characterHandler.List)))
	mux.Handle("POST /v1/guild/characters", authMiddleware(http.HandlerFunc(characterHandler.Recruit)))
	mux.Handle("POST /v1/guild/characters/{characterId}/upgrade", authMiddleware(http.HandlerFunc(characterHandler.Upgrade)))

	// Battle endpoints
	mux.Handle("POST /v1/battles", authMiddleware(http.HandlerFunc(battleHandler.Resolve)))
	mux.Handle("GET /v1/battles", authMiddleware(http.HandlerFunc(battleHandler.History)))

	// Territory endpoints
	mux.Handle("GET /v1/territories", authMiddleware(http.HandlerFunc(territoryHandler.List)))
	mux.Handle("POST /v1/territories/{territoryId}/conquer", authMiddleware(http.HandlerFunc(territoryHandler.Conquer)))

	// Shop endpoints
	mux.Handle("GET /v1/shop", authMiddleware(http.HandlerFunc(shopHandler.Catalog)))
	mux.Handle("POST /v1/shop/purchases", authMiddleware(http.HandlerFunc(shopHandler.Purchase)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Idempotency(replayCache),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
