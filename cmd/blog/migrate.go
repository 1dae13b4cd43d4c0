package main

import (
	"github.com/spf13/cobra"

	"github.com/d60-Lab/gin-blog/internal/repository"
	"github.com/d60-Lab/gin-blog/pkg/database"
	"github.com/d60-Lab/gin-blog/pkg/logger"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(*cobra.Command, []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := database.InitDB(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)
			if err := repository.AutoMigrate(db); err != nil {
				return err
			}
			logger.Info("migration done")
			return nil
		},
	}
}
