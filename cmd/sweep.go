package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	config "github.com/Augustwise/fullstack-task-manager/internal/configs"
	repository "github.com/Augustwise/fullstack-task-manager/internal/repositories"
	"github.com/Augustwise/fullstack-task-manager/internal/services"
)

var (
	sweepDryRun bool
	sweepGrace  time.Duration
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Remove stored attachments that no task references",
	Long: "Lists the attachment storage and removes every file no task points at. " +
		"Files younger than --grace are left alone.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadStorageOnly(v)
		if err != nil {
			return err
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}

		database, closeDB, err := openDatabase(cfg, false)
		if err != nil {
			return err
		}
		defer closeDB()

		ctx := cmd.Context()
		store, err := newStorage(ctx, cfg)
		if err != nil {
			return err
		}

		cleanup := services.NewCleanupPool(store, 1, 0, logger)
		defer cleanup.Shutdown(ctx)

		taskService := services.NewTaskService(repository.NewTaskRepository(database), store, cleanup, logger)
		result, err := taskService.SweepOrphanedFiles(ctx, sweepDryRun, sweepGrace)
		if err != nil {
			return err
		}

		for _, name := range result.Orphans {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	sweepCmd.Flags().BoolVar(&sweepDryRun, "dry-run", false, "only print orphaned files")
	sweepCmd.Flags().DurationVar(&sweepGrace, "grace", time.Hour, "skip files modified more recently than this")

	rootCmd.AddCommand(sweepCmd)
}
