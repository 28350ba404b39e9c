// FounderFlow API server.
//
// @title           FounderFlow API
// @version         1.0
// @description     Multi-tenant project management backend: projects, tasks, finance, and role-scoped views.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/founderflow/founderflow/docs"
	"github.com/founderflow/founderflow/internal/api"
	"github.com/founderflow/founderflow/internal/core/service"
	mongodb "github.com/founderflow/founderflow/internal/infrastructure/db/mongo"
	redisdb "github.com/founderflow/founderflow/internal/infrastructure/db/redis"
	"github.com/founderflow/founderflow/internal/infrastructure/queue"
	"github.com/founderflow/founderflow/internal/pkg/config"
	"github.com/founderflow/founderflow/pkg/logger"

	"github.com/founderflow/founderflow/internal/email"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongodb index creation failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	// --- Outbound email + assignment notifications ---
	mailer := email.NewResendClient(cfg.Email.ResendAPIKey)

	notifier := service.NewNotificationService(
		mongodb.NewUserRepository(db),
		mongodb.NewProfileRepository(db),
		mailer,
		log,
	)
	dispatcher := queue.NewDispatcher(0, notifier, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e, err := api.NewRouter(api.Deps{
		Mongo:    db,
		Redis:    rdb,
		Cfg:      cfg,
		Mailer:   mailer,
		Notifier: dispatcher,
		Log:      log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("router construction failed")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
