package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/joestump/noticeboard/internal/config"
	"github.com/joestump/noticeboard/internal/db"
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
			if cfg.Storage.Backend != config.BackendSQL {
				return fmt.Errorf("migrate only applies to the sql backend, configured backend is %q", cfg.Storage.Backend)
			}

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			log.Println("migrations complete")
			return nil
		},
	}
}
