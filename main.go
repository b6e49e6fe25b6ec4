package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wangyukai585/BioAlgoDB/config"
	"github.com/wangyukai585/BioAlgoDB/database"
	"github.com/wangyukai585/BioAlgoDB/middleware"
	"github.com/wangyukai585/BioAlgoDB/realtime"
	"github.com/wangyukai585/BioAlgoDB/routes"
	"github.com/wangyukai585/BioAlgoDB/utils/logging"

	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// @title BioAlgoDB API
// @version 1.0
// @description Catalog of bioinformatics problems, algorithms, tools, labs and papers.
// @BasePath /api
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load configuration")
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	if !cfg.EnvFileLoaded {
		log.Info("no .env file found, using process environment")
	}

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}
	admin := database.AdminAccount{
		Username: cfg.DefaultAdminUsername,
		Email:    cfg.DefaultAdminEmail,
		Password: cfg.DefaultAdminPassword,
	}
	if err := database.Populate(db, admin, cfg.SeedFile, log); err != nil {
		return err
	}

	var limiter middleware.Limiter = middleware.NewRateLimiter(cfg.RateLimit)
	if cfg.RedisURL != "" {
		client, err := database.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, rate limiting in memory")
		} else {
			defer client.Close()
			limiter = middleware.NewRedisRateLimiter(client, cfg.RateLimit)
		}
	}

	hub := realtime.NewHub(log)
	defer hub.Close()

	if cfg.SystemMetricsInterval > 0 {
		go middleware.UpdateSystemMetrics(ctx, cfg.SystemMetricsInterval, log)
	}

	router := routes.NewRouter(routes.Dependencies{
		DB:      db,
		Config:  cfg,
		Logger:  log,
		Hub:     hub,
		Limiter: limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	// hijacked websocket connections are not tracked by Shutdown
	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
