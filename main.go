package main

import (
	"fmt"
	"io"
	"os"

	"github.com/expense-tracker/backend/internal/config"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	v       = config.New()
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:               "expenses",
	Short:             "Backend for the personal expense tracker",
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,

	// Without a subcommand, the API is served
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML, TOML or JSON)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	_ = v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(subscriptionsCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initConfig loads the configuration and sets up logging.
func initConfig(_ *cobra.Command, _ []string) (err error) {
	cfg, err = config.Load(v, cfgFile)
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)

	// Human readable logs for development, JSON for release
	output := io.Writer(os.Stdout)
	if cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(cfg.LogLevel)
	log.Logger = log.Output(output).With().Timestamp().Logger()

	log.Debug().Str("file", v.ConfigFileUsed()).Str("data", cfg.DSN()).Msg("Configuration")

	models.Locale = cfg.Locale
	return nil
}

// connect creates the data directory and opens the database in it.
func connect() error {
	err := os.MkdirAll(cfg.DataDir, os.ModePerm)
	if err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	return models.Connect(cfg.DSN())
}
