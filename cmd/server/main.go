package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/soyleaf/soyleaf-api/docs"
	"github.com/soyleaf/soyleaf-api/internal/api"
	"github.com/soyleaf/soyleaf-api/internal/classifier"
	"github.com/soyleaf/soyleaf-api/internal/core/ports"
	mongodb "github.com/soyleaf/soyleaf-api/internal/infrastructure/db/mongo"
	redisdb "github.com/soyleaf/soyleaf-api/internal/infrastructure/db/redis"
	"github.com/soyleaf/soyleaf-api/internal/pkg/config"
	"github.com/soyleaf/soyleaf-api/pkg/logger"
)

// @title        SoyLeaf API
// @version      1.0
// @description  Soybean leaf disease classification service.
// @BasePath     /
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	// --- Persistence ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := mongodb.NewReportRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create report indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Upload.Dir).Msg("failed to create upload dir")
	}

	// --- Model artifacts ---
	registry, err := classifier.LoadRegistry(cfg.Model.ClassNames, cfg.Model.DatasetDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load class registry")
	}
	if registry.Len() == 0 {
		log.Warn().Msg("class registry is empty, all classifications will decode to Unknown")
	} else {
		log.Info().Strs("classes", registry.Labels()).Msg("class registry loaded")
	}

	var engine ports.InferenceEngine
	if _, err := os.Stat(cfg.Model.Path); err != nil {
		log.Warn().Str("path", cfg.Model.Path).Msg("model artifact missing, classification disabled")
	} else {
		eng, err := classifier.NewEngine(cfg.Model.Path, cfg.Model.MetadataPath, cfg.Model.Timeout)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load inference engine")
		}
		defer eng.Close()

		// The registry order must line up with the model's output layer;
		// a length mismatch would silently produce wrong labels.
		if registry.Len() > 0 && registry.Len() != eng.ClassCount() {
			log.Fatal().
				Int("registry", registry.Len()).
				Int("model", eng.ClassCount()).
				Msg("class registry does not match model output size")
		}

		engine = eng
		log.Info().
			Str("model", cfg.Model.Path).
			Int("image_size", eng.ImageSize()).
			Int("classes", eng.ClassCount()).
			Msg("inference engine ready")
	}

	// --- HTTP ---
	e := api.NewRouter(db, rdb, engine, registry, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
