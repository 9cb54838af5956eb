package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GoSim-25-26J-441/moonlog-backend/config"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/auth"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/commentary"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/cronjob"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/geocoding"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/logging"
	moondomain "github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/domain"
	moonrepo "github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/repository"
	moonsvc "github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/service"
	logrepo "github.com/GoSim-25-26J-441/moonlog-backend/internal/observation_logs/repository"
	logsvc "github.com/GoSim-25-26J-441/moonlog-backend/internal/observation_logs/service"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/storage/postgres"
	"go.uber.org/zap"
)

const serviceName = "moonlog-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		TextureURL:     cfg.Server.TextureURL,
		Logger:         logger,
		Geocoder:       geocoding.NewClient(cfg.Geocoder.BaseURL, cfg.Geocoder.UserAgent, cfg.Geocoder.RatePerSecond),
	}

	// Redis is optional: without it every report is computed on demand.
	var cache moonsvc.SnapshotStore
	rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Warn("redis unavailable, snapshot cache disabled", zap.Error(err))
	} else {
		defer rdb.Close()
		snapshotCache := moonrepo.NewSnapshotCache(rdb, cfg.Redis.TTL)
		cache = snapshotCache
		deps.Cache = snapshotCache
	}

	deps.Moon = moonsvc.NewPhaseService(cache, moondomain.Location{
		Latitude:  cfg.Observer.Latitude,
		Longitude: cfg.Observer.Longitude,
		Timezone:  cfg.Observer.Timezone,
	})

	dsn := postgres.DSN(&cfg.Database)
	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: dsn})
	if err != nil {
		logger.Error("database unavailable, observation logs disabled", zap.Error(err))
	} else {
		defer pool.Close()
		deps.DB = pool

		if err := bootstrap.Migrate(ctx, pool, logrepo.Schema); err != nil {
			logger.Fatal("schema migration failed", zap.Error(err))
		}

		sqlDB, err := postgres.NewConnection(ctx, &cfg.Database)
		if err != nil {
			logger.Fatal("database connection failed", zap.Error(err))
		}
		defer sqlDB.Close()

		var commentator logsvc.Commentator
		if cfg.Gemini.APIKey != "" {
			client, err := commentary.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
			if err != nil {
				logger.Warn("commentary disabled", zap.Error(err))
			} else {
				commentator = client
			}
		}

		deps.Logs = logsvc.NewLogService(logrepo.NewLogRepository(sqlDB), commentator, cfg.Gemini.Timeout)
	}

	if cfg.Firebase.CredentialsPath != "" {
		authClient, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			logger.Fatal("firebase init failed", zap.Error(err))
		}
		deps.AuthVerifier = authClient
	} else {
		logger.Warn("FIREBASE_CREDENTIALS_PATH not set, using X-User-Id development auth")
	}

	scheduler := cronjob.NewScheduler(deps.Moon, logger)
	if err := scheduler.Start(cfg.Observer.WarmCron); err != nil {
		logger.Fatal("scheduler start failed", zap.Error(err))
	}
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           bootstrap.BuildRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Environment))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
}
