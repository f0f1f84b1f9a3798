// @title           Clinic Portal API
// @version         1.0
// @description     Role-based portal for clinic staff and patients: sign-in and routing, profiles, patient registration and visit notes.
// @BasePath        /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/clinicnavigator/clinic-portal/internal/api"
	"github.com/clinicnavigator/clinic-portal/internal/core/ports"
	"github.com/clinicnavigator/clinic-portal/internal/core/service"
	"github.com/clinicnavigator/clinic-portal/internal/infrastructure/cache"
	"github.com/clinicnavigator/clinic-portal/internal/infrastructure/config"
	mongodb "github.com/clinicnavigator/clinic-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/clinicnavigator/clinic-portal/internal/infrastructure/db/redis"
	"github.com/clinicnavigator/clinic-portal/internal/infrastructure/http/handlers"
	"github.com/clinicnavigator/clinic-portal/internal/infrastructure/notify"
	"github.com/clinicnavigator/clinic-portal/internal/infrastructure/queue"
	"github.com/clinicnavigator/clinic-portal/pkg/logger"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "clinic-portal",
	})

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:            cfg.Mongo.URI,
		Database:       cfg.Mongo.Database,
		ConnectTimeout: cfg.Mongo.ConnectTimeout,
		MaxPoolSize:    cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create mongodb indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
		Timeout:  cfg.Redis.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	opTimeout := mongodb.WithOpTimeout(cfg.Mongo.OpTimeout)
	creds := mongodb.NewCredentialRepository(db, opTimeout)
	profiles := cache.NewProfileListCache(mongodb.NewProfileRepository(db, opTimeout), cache.DefaultTTL, cache.DefaultCleanupInterval)
	visits := mongodb.NewVisitRepository(db, opTimeout)
	sessions := redisdb.NewSessionStore(rdb)

	// --- Activity log ---
	var mailer ports.Mailer
	if m := notify.NewMailer(notify.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}); m != nil {
		mailer = m
	} else {
		log.Info().Msg("SMTP_HOST not set, welcome e-mails disabled")
	}

	activitySvc := service.NewActivityService(
		mongodb.NewActivityRepository(db, opTimeout), profiles, mailer, logger.Component("activity"),
	)
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activitySvc, logger.Component("dispatcher"))
	dispatcher.Start(workerCtx)

	// --- Services ---
	authSvc := service.NewAuthService(creds, profiles, sessions, dispatcher, cfg.JWTSecret, cfg.TokenTTL, logger.Component("auth"))
	profileSvc := service.NewProfileService(profiles, creds, dispatcher, logger.Component("profile"))
	registrarSvc := service.NewRegistrarService(creds, profiles, dispatcher, logger.Component("registrar"))
	visitSvc := service.NewVisitService(visits, profiles, dispatcher, logger.Component("visits"))

	e := api.NewRouter(api.Dependencies{
		Auth:      authSvc,
		Profiles:  profileSvc,
		Registrar: registrarSvc,
		Visits:    visitSvc,
		Sessions:  sessions,
		Readiness: map[string]handlers.Checker{
			"mongodb": handlers.MongoChecker(db),
			"redis":   handlers.RedisChecker(rdb),
		},
	}, api.Options{
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins(),
		LoginRate:      rate.Limit(cfg.LoginRate),
		LoginBurst:     cfg.LoginBurst,
		TrustProxy:     cfg.TrustProxy,
		Log:            logger.Component("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	// Drain queued activities before closing the stores they write to.
	dispatcher.Close()
	cancelWorkers()

	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect")
	}
	log.Info().Msg("shutdown complete")
}
