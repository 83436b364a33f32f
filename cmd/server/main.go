package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/config"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/infra"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/repository"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/router"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/worker"
)

// newLogger picks the log output for the environment: human-readable console
// in development, plain JSON lines in production.
func newLogger(env string, out io.Writer) zerolog.Logger {
	if env == "production" {
		return zerolog.New(out).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	log.Logger = newLogger(cfg.Env, os.Stderr)

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	programCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	// Worker pool and retry cron for the async report pipeline. Handlers are
	// wired here (composition root) so the pool has full access to all
	// infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	occasionRepo := repository.NewOccasionRepository(db)
	reportRepo := repository.NewReportRepository(db)

	reportWorker := worker.NewReportWorker(occasionRepo, reportRepo, dispatcher, cfg)
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, worker.Handlers{
		Report: reportWorker,
		Email:  worker.NewEmailWorker(mailer, rdb),
	})
	go worker.StartRetryCron(ctx, worker.DefaultRetryCronConfig(), reportRepo, reportWorker, rdb)

	r := router.New(cfg, db, rdb, programCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("bingo manager backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
