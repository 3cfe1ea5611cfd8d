// Command payzone is an operator CLI for the Payzone payment page API:
// prepare payments, query status, refund transactions, cancel
// subscriptions, fetch exchange rates and run the merchant callback
// server.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"github.com/Vantage-Payment-Systems/payzone-prestashop/connect2pay"
)

var (
	flagAPIURL     string
	flagOriginator string
	flagPassword   string
)

var rootCmd = &cobra.Command{
	Use:               "payzone",
	Short:             "CLI for the Payzone hosted payment page API",
	DisableAutoGenTag: true,
	SilenceUsage:      true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", envOr("PAYZONE_API_URL", "https://paiement.payzone.ma"), "payment page API base URL")
	rootCmd.PersistentFlags().StringVar(&flagOriginator, "originator", os.Getenv("PAYZONE_ORIGINATOR"), "originator id")
	rootCmd.PersistentFlags().StringVar(&flagPassword, "password", os.Getenv("PAYZONE_PASSWORD"), "API password")

	rootCmd.AddCommand(newPrepareCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newRefundCmd())
	rootCmd.AddCommand(newCancelSubCmd())
	rootCmd.AddCommand(newRateCmd())
	rootCmd.AddCommand(newServeCmd())
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func newClient() (*connect2pay.Client, error) {
	return connect2pay.NewClient(flagAPIURL, flagOriginator, flagPassword,
		connect2pay.WithLogger(newLogger()))
}

// printJSON writes the command result to stdout so it can be piped into
// jq and friends; logs go to stderr.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
