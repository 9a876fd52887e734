package cmd

import (
	"github.com/spf13/cobra"

	config "github.com/Augustwise/fullstack-task-manager/internal/configs"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadStorageOnly(v)
		if err != nil {
			return err
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}

		_, closeDB, err := openDatabase(cfg, true)
		if err != nil {
			return err
		}
		defer closeDB()

		logger.Info("database schema is up to date", "driver", cfg.DatabaseDriver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
