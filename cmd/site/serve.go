package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"folio.dev/internal/handlers"
	"folio.dev/internal/services"
)

var shutdownTimeout = 10 * time.Second

var (
	serveAddr  string
	serveWatch bool
)

// serveCmd runs the HTTP server until interrupted
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides SERVER_ADDR)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload posts when files in the content dir change")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if serveAddr != "" {
		cfg.ServerAddr = serveAddr
	}
	cfg.WatchContent = cfg.WatchContent || serveWatch

	source, cleanup, err := services.NewProjectSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	router, err := handlers.SetupRoutes(ctx, cfg, source, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.ServerAddr), zap.String("content", cfg.ContentPath))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
