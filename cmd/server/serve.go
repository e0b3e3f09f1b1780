package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/folio-space/core/internal/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		application, err := app.New(logger, cfg)
		if err != nil {
			logger.Error("failed to initialize app", zap.Error(err))
			return err
		}

		srv := &http.Server{
			Addr:              application.Addr(),
			Handler:           application.Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server starting", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case err := <-errCh:
			application.Shutdown()
			if err != nil {
				logger.Error("server error", zap.Error(err))
			}
			return err
		case <-quit:
		}

		logger.Info("shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdownErr := srv.Shutdown(ctx)
		application.Shutdown()
		if shutdownErr != nil {
			logger.Error("forced shutdown", zap.Error(shutdownErr))
			return shutdownErr
		}
		logger.Info("server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
