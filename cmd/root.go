/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/keyprint/authserver/config"
	"github.com/keyprint/authserver/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	portFlag   int
	dbPathFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "keyprint",
	Short: "Password login service with keystroke sample capture",
	Long: `keyprint serves a small username/password login site backed by a
SQLite credential store, plus JSON endpoints that accept keystroke timing
samples for future behavioral verification.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVar(&portFlag, "port", 0, "HTTP port (overrides SERVER_PORT)")
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "SQLite database file (overrides DB_PATH)")
}

// loadConfig reads the environment and applies any flags set on cmd.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg := config.LoadConfig()
	if cmd.Flags().Changed("port") {
		cfg.ServerPort = portFlag
	}
	if cmd.Flags().Changed("db") {
		cfg.Database.Path = dbPathFlag
	}
	return cfg
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}
