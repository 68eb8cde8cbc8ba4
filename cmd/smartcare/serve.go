/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/suparena/smartcare"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := smartcare.NewApp(cmd.Context(), cfg, smartcare.DefaultBackends(), logger)
		if err != nil {
			return err
		}

		server := &http.Server{
			Addr:         cfg.Addr(),
			Handler:      app.Handler(),
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("starting server",
				zap.String("addr", server.Addr),
				zap.String("version", app.Version()),
				zap.Bool("debug", cfg.Debug()))
			if err := server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(stop)

		select {
		case err := <-errCh:
			return err
		case <-stop:
		}

		logger.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", zap.Error(err))
			return err
		}
		logger.Info("server exited")
		return nil
	},
}
