package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"billingapi/internal/config"
	"billingapi/internal/logger"
)

var version = "1.0.0"

// cfg is loaded once before any subcommand runs.
var cfg *config.AppConfig

var rootCmd = &cobra.Command{
	Use:   "billingapi",
	Short: "Invoicing backend with payment reconciliation",
	Long: `billingapi serves invoices, payments, clients, payment modes and settings
over HTTP, keeping each invoice's credit and payment status in step with its payments.

Configuration is read from the environment (a .env file is loaded if present).`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		if err := logger.Setup(logger.LogConfig{
			Level:  c.Log.Level,
			Format: c.Log.Format,
			Output: c.Log.Output,
		}, c.Location()); err != nil {
			return fmt.Errorf("setup logger: %w", err)
		}
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// @title Billing API
// @version 1.0
// @description Invoices, payments and their reconciliation.
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log := logger.WithComponent("cmd")
		log.Error().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
