package main

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/claes/dirigible/internal/config"
	apphttp "github.com/claes/dirigible/internal/http"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the library browser over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				slog.Error("invalid configuration", "err", err)
				return err
			}
			defer a.Close()

			mux := apphttp.NewServer(apphttp.Deps{
				Library:  a.lib,
				Caster:   a.caster,
				Auth:     a.cred,
				Drive:    a.drive,
				Accounts: a.prefs,
			})

			addr := ":" + cfg.Port
			srv := &nethttp.Server{
				Addr:              addr,
				Handler:           mux,
				ReadTimeout:       10 * time.Second,
				ReadHeaderTimeout: 5 * time.Second,
				WriteTimeout:      30 * time.Second,
				IdleTimeout:       60 * time.Second,
			}

			// Graceful shutdown
			done := make(chan os.Signal, 1)
			signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				slog.Info("server listening", "addr", addr)
				if err := srv.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
					errCh <- err
				}
			}()

			select {
			case <-done:
				// proceed to shutdown
			case err := <-errCh:
				slog.Error("listen failed", "err", err)
				return err
			}
			slog.Info("shutdown signal received")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Warn("graceful shutdown failed", "err", err)
				_ = srv.Close()
			}
			slog.Info("server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&cfg.Port, "port", cfg.Port, "port to listen on (env PORT)")
	return cmd
}
