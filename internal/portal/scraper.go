package portal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"super_sheets/internal/credentials"

	"github.com/rs/zerolog/log"
)

// Page is the slice of browser behaviour the scraper needs.
type Page interface {
	Login(ctx context.Context, portalURL string, creds credentials.Credentials) error
	HTML(ctx context.Context, selector string) (string, error)
}

// Scraper logs into the portal and reads the account details panel.
type Scraper struct {
	Page        Page
	Credentials credentials.Credentials
	PortalURL   string
	Selector    string
	Labels      Labels
	// Timeout bounds a whole scrape; zero means no bound beyond ctx.
	Timeout time.Duration
}

// Fields logs in and returns every labelled figure on the account page.
func (s *Scraper) Fields(ctx context.Context) ([]Field, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	if err := s.Page.Login(ctx, s.PortalURL, s.Credentials); err != nil {
		return nil, err
	}

	html, err := s.Page.HTML(ctx, s.Selector)
	if err != nil {
		return nil, err
	}

	fields, err := ExtractFields(strings.NewReader(html), s.Selector)
	if err != nil {
		return nil, err
	}

	for _, f := range fields {
		log.Info().Str("name", f.Name).Str("value", f.Value).Msg("Scraped account field")
	}
	return fields, nil
}

// Balances scrapes the account page and selects the three tracked balances by label.
func (s *Scraper) Balances(ctx context.Context) (Balances, error) {
	fields, err := s.Fields(ctx)
	if err != nil {
		return Balances{}, err
	}

	balances, err := SelectBalances(fields, s.Labels)
	if err != nil {
		return Balances{}, fmt.Errorf("account page had %d fields: %w", len(fields), err)
	}

	log.Debug().
		Str("transaction", balances.Transaction).
		Str("shares", balances.Shares).
		Str("high_growth", balances.HighGrowth).
		Msg("Selected balances")
	return balances, nil
}
