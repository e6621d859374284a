package main

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
	"go.uber.org/zap"

	"github.com/cityalgo/cityalgo/internal/build"
	"github.com/cityalgo/cityalgo/internal/catalog"
	"github.com/cityalgo/cityalgo/internal/config"
	"github.com/cityalgo/cityalgo/internal/db"
	"github.com/cityalgo/cityalgo/internal/handler"
	"github.com/cityalgo/cityalgo/internal/highlight"
	"github.com/cityalgo/cityalgo/internal/logging"
	"github.com/cityalgo/cityalgo/internal/metrics"
	"github.com/cityalgo/cityalgo/internal/session"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Log.Level)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			db.SetLogger(logger)

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			sessionManager := session.NewManager(database, cfg.DB.Driver, cfg.SessionLifetime, !cfg.InsecureCookies)

			content, err := catalog.Load(cfg.Catalog.Path)
			if err != nil {
				return err
			}
			metrics.ProblemsLoaded.Set(float64(len(content.Problems())))

			router := handler.NewRouter(handler.Deps{
				SessionManager: sessionManager,
				Catalog:        content,
				Highlighter:    highlight.New(cfg.Highlight.Style),
				Logger:         logger,
			})

			srv := &http.Server{
				Addr:              cfg.HTTP.Addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening",
					zap.String("addr", cfg.HTTP.Addr),
					zap.String("version", build.Version),
					zap.Int("problems", len(content.Problems())),
				)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serve: %w", err)
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
