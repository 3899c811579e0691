package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	html "github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"workmarket/internal/auth"
	"workmarket/internal/config"
	"workmarket/internal/http/handlers"
	applog "workmarket/internal/log"
	"workmarket/internal/metrics"
	"workmarket/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		applog.L().Fatal().Err(err).Msg("config")
	}

	// Optional file logging
	var logFile *os.File
	out := io.Writer(os.Stdout)
	if cfg.LogFile != "" {
		logFile, err = os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			applog.L().Warn().Err(err).Str("path", cfg.LogFile).Msg("could not open log file")
		} else {
			out = io.MultiWriter(os.Stdout, logFile)
		}
	}
	applog.Setup(out, cfg.LogLevel)
	logger := applog.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(ctx, store.Options{
		Driver:   cfg.StoreDriver,
		Path:     cfg.DBPath,
		DSN:      cfg.DBDSN,
		RedisURL: cfg.RedisURL,
		RedisKey: cfg.RedisKey,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("open store")
	}
	var seed func(*store.Document) error
	if cfg.SeedDemo {
		seed = store.SeedDemo
	}
	// An unreadable document stops startup instead of being replaced.
	if err := db.Init(ctx, seed); err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("initialise store")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.NewCollector(reg)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	deps := handlers.NewDeps(db, rec, tokens, cfg.EmailDomain)

	opts := handlers.Options{
		APIPrefix:   cfg.APIPrefix,
		CORSOrigins: cfg.CORSOrigins,
		Gatherer:    reg,
		AccessLog:   out,
	}
	if cfg.TemplatesDir != "" {
		engine := html.New(cfg.TemplatesDir, ".html")
		engine.Reload(true)
		opts.Views = engine
	}
	app := handlers.NewApp(deps, opts)

	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Str("api", cfg.APIPrefix).Msg("listening")
		errc <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		if err != nil {
			logger.Error().Err(err).Msg("server stopped")
		}
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
	}

	err = multierr.Combine(
		app.ShutdownWithTimeout(10*time.Second),
		db.Close(),
	)
	if logFile != nil {
		err = multierr.Append(err, logFile.Close())
	}
	if err != nil {
		logger.Error().Err(err).Msg("shutdown")
		os.Exit(1)
	}
}
