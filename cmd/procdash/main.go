// procdash is the procurement analysis dashboard backend.
//
// Usage:
//
//	procdash [--config path] [--addr :8080]
//
// Flags:
//
//	--config  Path to procdash.yaml (empty = built-in defaults)
//	--addr    Override server.addr from config
//
// The service accepts spreadsheet uploads on /api/wwp and /api/opo and
// returns processed record sets, insight summaries, and chart specs.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/openprocure/procdash/internal/api"
	"github.com/openprocure/procdash/internal/infra"
)

func main() {
	configPath := flag.String("config", "", "path to config file (empty = defaults)")
	addrOverride := flag.String("addr", "", "listen address override (e.g. :8080)")
	flag.Parse()

	// Pretty console log; switch to JSON in production via log.Logger = zerolog.New(os.Stderr)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := infra.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", *configPath).Msg("config load failed")
	}
	if *addrOverride != "" {
		cfg.Server.Addr = *addrOverride
	}

	router := api.NewRouter(cfg)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().
			Str("addr", cfg.Server.Addr).
			Str("config", *configPath).
			Msg("procdash started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
	log.Info().Msg("stopped")
}
