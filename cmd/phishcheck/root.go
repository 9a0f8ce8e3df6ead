package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Totarae/phishcheck/internal/config"
	"github.com/Totarae/phishcheck/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRootCmd создаёт корневую команду.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phishcheck",
		Short: "Check URLs against a phishing prediction service",
		Long: `phishcheck sends URLs to a phishing prediction backend and shows the verdict.

It runs as a web front end (serve), as a terminal client (check)
and keeps an optional SQLite or PostgreSQL journal of past checks (history).

Settings come from flags, environment variables, a .env file
and an optional JSON or YAML config file (-c).`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			// .env не переопределяет уже заданные переменные окружения
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load .env: %w", err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	config.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute запускает корневую команду.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup читает конфигурацию и строит логгер для подкоманды.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.NewConfig(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	level := cfg.LogLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	log, err := logger.NewLogger(level, cfg.Debug)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
