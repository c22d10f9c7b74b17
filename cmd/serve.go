package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/terraconstructs/tasklists/cmd/cmdutil"
	"github.com/terraconstructs/tasklists/internal/auth"
	"github.com/terraconstructs/tasklists/internal/migrations"
	"github.com/terraconstructs/tasklists/internal/server"
	"github.com/terraconstructs/tasklists/internal/telemetry"
)

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the task lists API server",
	Long:  `Starts the HTTP server with the Connect RPC list service and a /health endpoint.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireJWTSecret(); err != nil {
			return err
		}

		verifier, err := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
		if err != nil {
			return fmt.Errorf("failed to create token verifier: %w", err)
		}

		bundle, err := cmdutil.NewServiceBundle(cfg, logger)
		if err != nil {
			return err
		}
		defer bundle.Close()

		logger.Info("Connected to database")

		if serveMigrate {
			group, err := migrations.Apply(cmd.Context(), bundle.DB)
			if err != nil {
				return err
			}
			logger.WithField("group", group).Info("Migrations applied")
		}

		metrics, err := telemetry.NewRPCMetrics()
		if err != nil {
			return fmt.Errorf("failed to create RPC metrics: %w", err)
		}

		handler := server.NewListServiceHandler(bundle.Lists, bundle.Tasks, bundle.Provisioning, logger)
		h2cHandler := server.NewH2CHandler(server.RouterOptions{
			Handler:  handler,
			Verifier: verifier,
			Logger:   logger,
			Metrics:  metrics,
			HealthHandler: func(w http.ResponseWriter, r *http.Request) {
				ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
				defer cancel()
				if err := bundle.DB.PingContext(ctx); err != nil {
					logger.WithError(err).Warn("Health check failed")
					http.Error(w, "database unavailable", http.StatusServiceUnavailable)
					return
				}
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("OK"))
			},
		})

		srv := &http.Server{
			Addr:         cfg.ServerAddr,
			Handler:      h2cHandler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		// Start server in goroutine
		serverErrors := make(chan error, 1)
		go func() {
			logger.WithField("addr", cfg.ServerAddr).Info("Starting server")
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.WithField("signal", sig.String()).Info("Shutting down gracefully")

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				srv.Close()
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}

			logger.Info("Server stopped")
			return nil
		}
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply pending migrations before serving")
	rootCmd.AddCommand(serveCmd)
}
