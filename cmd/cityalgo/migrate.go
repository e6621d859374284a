package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cityalgo/cityalgo/internal/config"
	"github.com/cityalgo/cityalgo/internal/db"
	"github.com/cityalgo/cityalgo/internal/logging"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
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
			version, err := db.Version(database, cfg.DB.Driver)
			if err != nil {
				return err
			}

			logger.Info("migrations complete", zap.String("driver", cfg.DB.Driver), zap.Int64("version", version))
			return nil
		},
	}
}
