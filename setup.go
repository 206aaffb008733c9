package main

import (
	"context"

	"super_sheets/internal/app"
	"super_sheets/internal/credentials"
	"super_sheets/internal/oauth"
	"super_sheets/internal/portal"

	"github.com/rs/zerolog/log"
)

// runRecord is the full run: scrape the portal, then append and read back the row.
// The browser is closed on every return path.
func runRecord(ctx context.Context) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	creds, err := credentials.Load(cfg.CredentialsPath)
	if err != nil {
		return err
	}

	browser, err := portal.Launch(ctx, portal.Options{NoSandbox: cfg.NoSandbox})
	if err != nil {
		return err
	}
	defer browser.Close()

	pipeline := &app.Pipeline{
		Source: app.NewScraper(cfg, creds, browser),
		OpenRecorder: func(ctx context.Context) (app.RowRecorder, error) {
			return app.OpenRecorder(ctx, cfg, oauth.NewConsolePrompt())
		},
		Notifier: app.InitializeNotificationClient(cfg.Notify),
	}

	_, err = pipeline.Run(ctx)
	return err
}

// runAuthorize runs only the token lifecycle so first-time setup can happen interactively.
func runAuthorize(ctx context.Context) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	authorizer, err := app.NewAuthorizer(cfg, oauth.NewConsolePrompt())
	if err != nil {
		return err
	}
	if _, err := authorizer.Token(ctx); err != nil {
		return err
	}

	log.Info().Str("path", cfg.TokenPath).Msg("Authorized")
	return nil
}

// runScrape logs in and reports the account fields without touching the sheet.
func runScrape(ctx context.Context) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	creds, err := credentials.Load(cfg.CredentialsPath)
	if err != nil {
		return err
	}

	browser, err := portal.Launch(ctx, portal.Options{NoSandbox: cfg.NoSandbox})
	if err != nil {
		return err
	}
	defer browser.Close()

	scraper := app.NewScraper(cfg, creds, browser)
	fields, err := scraper.Fields(ctx)
	if err != nil {
		return err
	}

	balances, err := portal.SelectBalances(fields, scraper.Labels)
	if err != nil {
		log.Warn().Err(err).Int("fields", len(fields)).Msg("Configured labels do not match the account page")
		return err
	}

	log.Info().
		Str("transaction", balances.Transaction).
		Str("shares", balances.Shares).
		Str("high_growth", balances.HighGrowth).
		Msg("Scrape complete")
	return nil
}
