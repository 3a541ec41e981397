package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-rentify/internal/config"
	"go-rentify/internal/database"
	"go-rentify/internal/handler"
	"go-rentify/internal/middleware"
	"go-rentify/internal/repository"
	"go-rentify/internal/router"
	"go-rentify/internal/service"
)

type tokenStore interface {
	service.TokenStore
	PurgeExpired(ctx context.Context) (int64, error)
}

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

func New(cfg *config.Config) (*App, error) {
	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	a := &App{cleanupFuncs: []func(){db.Close}}
	health := []router.HealthChecker{db.Health}

	var tokens tokenStore
	switch cfg.TokenStore {
	case config.TokenStoreMongo:
		slog.Info("connecting to MongoDB", "database", cfg.MongoDatabase)
		mongoDB, err := database.NewMongo(context.Background(), cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		a.cleanupFuncs = append(a.cleanupFuncs, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			mongoDB.Close(ctx)
		})

		mongoTokens := repository.NewMongoTokenRepository(mongoDB.Database, cfg.StoreTimeout)
		if err := mongoTokens.EnsureIndexes(context.Background()); err != nil {
			a.cleanup()
			return nil, fmt.Errorf("failed to ensure token indexes: %w", err)
		}
		tokens = mongoTokens
		health = append(health, mongoDB.Health)
	default:
		tokens = repository.NewTokenRepository(db.Pool, cfg.StoreTimeout)
	}

	userRepo := repository.NewUserRepository(db.Pool, cfg.StoreTimeout)
	propertyRepo := repository.NewPropertyRepository(db.Pool, cfg.StoreTimeout)
	slog.Info("stores ready", "token_store", cfg.TokenStore)

	issuer := service.NewTokenIssuer(tokens, cfg.JWTSecret, cfg.SessionLifetime)
	verifier := service.NewSessionVerifier(tokens, cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, tokens, issuer)
	propertyService := service.NewPropertyService(propertyRepo)

	exposeDetails := cfg.IsDevelopment()
	appRouter := router.New(cfg, middleware.NewAuthMiddleware(verifier), router.Handlers{
		Auth:     handler.NewAuthHandler(authService, exposeDetails),
		Property: handler.NewPropertyHandler(propertyService, exposeDetails),
	}, health...)

	if cfg.TokenPurgeInterval > 0 {
		purgeCtx, purgeCancel := context.WithCancel(context.Background())
		go service.NewTokenPurger(tokens).StartTicker(purgeCtx, cfg.TokenPurgeInterval)
		// Stop the purger before the stores it uses are closed.
		a.cleanupFuncs = append([]func(){purgeCancel}, a.cleanupFuncs...)
	}

	a.server = &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return a, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shutdownErr := a.server.Shutdown(ctx)
	a.cleanup()

	if shutdownErr != nil {
		return fmt.Errorf("graceful shutdown failed: %w", shutdownErr)
	}

	slog.Info("server stopped")
	return nil
}

func (a *App) cleanup() {
	for _, fn := range a.cleanupFuncs {
		fn()
	}
}
