package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ishant3366/minealert/internal/api"
	"github.com/ishant3366/minealert/internal/auth"
	"github.com/ishant3366/minealert/internal/observability"
	"github.com/ishant3366/minealert/internal/sim"
	"github.com/ishant3366/minealert/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the simulation engine and HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			st, err := store.Open(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer st.Close()

			metrics, err := observability.NewCollector(nil)
			if err != nil {
				return err
			}

			eng := sim.New(sim.Config{
				OriginLat: cfg.Simulator.OriginLat,
				OriginLon: cfg.Simulator.OriginLon,
				TickEvery: cfg.Simulator.TickEvery.Std(),
				Seed:      cfg.Simulator.Seed,
				Recorder:  st,
				Metrics:   metrics,
				Logger:    log.Named("sim"),
			})

			guard := auth.NewGuard(cfg.Server.TokenHash)
			if !guard.Enabled() {
				log.Warn("API authentication disabled, set server.token_hash to enable")
			}

			server := api.NewServer(eng, st, metrics, guard, log.Named("api"))
			httpServer := &http.Server{
				Addr:    cfg.Server.ListenAddr,
				Handler: server.Handler(),
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			go func() {
				if err := eng.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error("engine stopped", zap.Error(err))
				}
			}()

			errCh := make(chan error, 1)
			go func() {
				log.Info("listening", zap.String("addr", cfg.Server.ListenAddr))
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				log.Info("shutting down", zap.String("signal", sig.String()))
			}

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				log.Error("http shutdown failed", zap.Error(err))
			}
			return nil
		},
	}
}
