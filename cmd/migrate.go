package main

import (
	"errors"

	"github.com/spf13/cobra"

	"chirp/internal/app/db"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.DatabaseDSN == "" {
				return errors.New("DATABASE_URL is not set")
			}

			pool, err := db.NewPool(cmd.Context(), cfg.DatabaseDSN)
			if err != nil {
				return err
			}
			defer pool.Close()

			sqlDB := db.OpenDB(pool)
			defer sqlDB.Close()

			return db.Migrate(cmd.Context(), sqlDB)
		},
	}
}
