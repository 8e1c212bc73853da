package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emotional-truth/portal-api/internal/api"
	"github.com/emotional-truth/portal-api/internal/core/service"
	"github.com/emotional-truth/portal-api/internal/infrastructure/config"
	mongodb "github.com/emotional-truth/portal-api/internal/infrastructure/db/mongo"
	redisdb "github.com/emotional-truth/portal-api/internal/infrastructure/db/redis"
	"github.com/emotional-truth/portal-api/pkg/logger"
)

// @title           Portal API
// @version         1.0
// @description     Content and account management backend: authentication, user management, ad carousel, site settings and asset storage.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	bootLog := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg := config.Load(bootLog)

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "portal-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	userRepo := mongodb.NewUserRepository(db)
	adRepo := mongodb.NewAdRepository(db)
	settingsRepo := mongodb.NewSettingsRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("users index creation failed")
	}
	if err := settingsRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("settings index creation failed")
	}

	// Mirror the three collections before serving a single request; a
	// failure here is fatal, not retried.
	state := service.NewAppState()
	if err := state.Load(ctx, userRepo, adRepo, settingsRepo); err != nil {
		log.Fatal().Err(err).Msg("initial collection load failed")
	}
	log.Info().
		Int("users", len(state.Users())).
		Int("ads", len(state.Ads())).
		Msg("collections loaded")

	sessions := redisdb.NewSessionStore(rdb, cfg.SessionTTL, log)

	deps := api.Deps{
		Accounts: service.NewAccountService(userRepo, sessions, state, cfg.JWTSecret, cfg.SessionTTL, log),
		Ads:      service.NewAdService(adRepo, state, log),
		Settings: service.NewSettingsService(settingsRepo, state, log),
		Assets:   service.NewAssetService(mongodb.NewAssetStore(db), cfg.PublicBaseURL, log),
		Prefs:    service.NewPreferenceService(redisdb.NewPreferenceStore(rdb)),
		Sessions: sessions,
		Mongo:    db,
		Redis:    rdb,
	}

	e := api.NewRouter(cfg, deps, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("portal api listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
