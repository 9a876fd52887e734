package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "github.com/Augustwise/fullstack-task-manager/internal/configs"
)

var (
	v       = config.NewViper()
	envFile string
)

var rootCmd = &cobra.Command{
	Use:           "taskmanager",
	Short:         "Task manager service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "json", "log format (json, text)")
	flags.String("database-driver", "sqlite", "database driver (sqlite, postgres)")
	flags.String("database-dsn", "tasks.db", "database DSN")

	bindFlag("log_level", "log-level")
	bindFlag("log_format", "log-format")
	bindFlag("database_driver", "database-driver")
	bindFlag("database_dsn", "database-dsn")
}

func bindFlag(key, name string) {
	flag := rootCmd.PersistentFlags().Lookup(name)
	if flag == nil {
		panic("unknown flag " + name)
	}
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}
