package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vet-clinic/internal/adapters/auth/idp"
	"vet-clinic/internal/adapters/auth/jwtauth"
	"vet-clinic/internal/adapters/publisher/kafka"
	pg "vet-clinic/internal/adapters/storage/postgres"
	"vet-clinic/internal/config"
	"vet-clinic/internal/middleware"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/ports/auth"
	"vet-clinic/internal/ports/events"
	"vet-clinic/internal/router"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func newLogger(cfg *config.Config) zerolog.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := newLogger(cfg)

	verifier, err := newVerifier(cfg)
	if err != nil {
		return err
	}

	var db *sql.DB
	if cfg.DatabaseURL != "" {
		db, err = pg.Open(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		if cfg.AutoMigrate {
			n, err := pg.NewMigrator(db).Up(context.Background())
			if err != nil {
				return fmt.Errorf("auto migrate: %w", err)
			}
			log.Info().Int("applied", n).Msg("migrations applied")
		}
	} else {
		log.Warn().Msg("DATABASE_URL not set, using in-memory storage")
	}

	publisher := events.Publisher(events.Noop{})
	if brokers := cfg.KafkaBrokerList(); len(brokers) > 0 {
		kp, err := kafka.NewPublisher(kafka.Config{Brokers: brokers, Topic: cfg.KafkaTopic})
		if err != nil {
			return err
		}
		publisher = kp
		log.Info().Strs("brokers", brokers).Str("topic", cfg.KafkaTopic).Msg("kafka publisher enabled")
	}
	defer publisher.Close()

	var limiter *middleware.RateLimiter
	if cfg.RedisURL != "" && cfg.RateLimitPerMinute > 0 {
		ropts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(ropts)
		defer rdb.Close()
		limiter = middleware.NewRateLimiter(rdb, cfg.RateLimitPerMinute, time.Minute)
	}

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			AuthVerifier: verifier,
			DB:           db,
			Logger:       log,
			Publisher:    publisher,
			RateLimiter:  limiter,
			CORSOrigins:  cfg.CORSOriginList(),
		}),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Str("auth_mode", cfg.ResolvedAuthMode()).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

// newVerifier: nil en modo dev (AuthContext usa X-Debug-User-ID).
func newVerifier(cfg *config.Config) (auth.AuthVerifier, error) {
	switch cfg.ResolvedAuthMode() {
	case config.AuthModeJWT:
		return jwtauth.NewVerifier(cfg.AuthJWTSecret, cfg.AuthJWTIssuer)
	case config.AuthModeIDP:
		client, err := idp.NewClient(idp.Config{
			BaseURL: cfg.IDPBaseURL,
			APIKey:  cfg.IDPAPIKey,
			Timeout: cfg.IDPTimeout,
		})
		if err != nil {
			return nil, err
		}
		return idp.NewVerifier(client), nil
	default:
		return nil, nil
	}
}
