package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"super_sheets/internal/app"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "super-sheets",
	Short: "Scrapes AustralianSuper balances and records them in a Google Sheet.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		app.SetupEnvironment()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRecord(cmd.Context())
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

var authorizeCmd = &cobra.Command{
	Use:   "authorize",
	Short: "Authorizes access to Google Sheets and caches the token.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAuthorize(cmd.Context())
	},
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Logs into the portal and prints the account fields without writing the sheet.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScrape(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(authorizeCmd, scrapeCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("Run failed")
		os.Exit(1)
	}
}
