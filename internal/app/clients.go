package app

import (
	"context"

	"super_sheets/internal/credentials"
	"super_sheets/internal/notifications"
	"super_sheets/internal/oauth"
	"super_sheets/internal/portal"
	"super_sheets/internal/recorder"
	"super_sheets/internal/sheets"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// NewAuthorizer wires the client secret and token cache under TOKEN_DIR to codes.
func NewAuthorizer(cfg Config, codes oauth.CodeProvider) (*oauth.Authorizer, error) {
	clientConfig, err := oauth.LoadClientConfig(cfg.ClientSecretPath)
	if err != nil {
		return nil, err
	}
	return &oauth.Authorizer{
		Config: clientConfig,
		Store:  oauth.FileTokenStore{Path: cfg.TokenPath},
		Codes:  codes,
	}, nil
}

// OpenRecorder authorizes and returns a recorder backed by the Sheets API.
// Extra options are passed to the Sheets client after the authenticated HTTP client.
func OpenRecorder(ctx context.Context, cfg Config, codes oauth.CodeProvider, opts ...option.ClientOption) (*recorder.Recorder, error) {
	log.Debug().Msg("Initializing sheets client")

	authorizer, err := NewAuthorizer(cfg, codes)
	if err != nil {
		return nil, err
	}
	httpClient, err := authorizer.Client(ctx)
	if err != nil {
		return nil, err
	}

	sheetsClient, err := sheets.NewClient(ctx, append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)...)
	if err != nil {
		return nil, err
	}

	log.Debug().Msg("Sheets client initialized successfully")
	return &recorder.Recorder{
		Store:                 sheetsClient,
		SpreadsheetID:         cfg.SpreadsheetID,
		ReadbackSpreadsheetID: cfg.ReadbackSpreadsheetID,
		SheetName:             cfg.SheetName,
	}, nil
}

// NewScraper builds a scraper for the configured portal on top of page.
func NewScraper(cfg Config, creds credentials.Credentials, page portal.Page) *portal.Scraper {
	return &portal.Scraper{
		Page:        page,
		Credentials: creds,
		PortalURL:   cfg.PortalURL,
		Selector:    cfg.AccountSelector,
		Labels: portal.Labels{
			Transaction: cfg.TransactionLabel,
			Shares:      cfg.SharesLabel,
			HighGrowth:  cfg.HighGrowthLabel,
		},
		Timeout: cfg.ScrapeTimeout,
	}
}

// InitializeNotificationClient creates and returns the notification client
func InitializeNotificationClient(cfg NotifyConfig) *notifications.Client {
	log.Debug().
		Bool("enabled", cfg.Enabled).
		Str("base_url", cfg.BaseURL).
		Str("topic", cfg.Topic).
		Msg("Initializing notification client")

	client := notifications.NewClient(cfg.BaseURL, cfg.Topic, cfg.Enabled, cfg.Priority)

	if cfg.Enabled {
		log.Info().Str("topic", cfg.Topic).Msg("Notifications enabled")
	} else {
		log.Debug().Msg("Notifications disabled")
	}

	return client
}
