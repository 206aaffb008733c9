package portal

import (
	"context"
	"errors"
	"testing"

	"super_sheets/internal/credentials"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePage struct {
	html     string
	loginErr error
	logins   []string
	selector string
}

func (p *fakePage) Login(ctx context.Context, portalURL string, creds credentials.Credentials) error {
	p.logins = append(p.logins, portalURL+"|"+creds.Username)
	return p.loginErr
}

func (p *fakePage) HTML(ctx context.Context, selector string) (string, error) {
	p.selector = selector
	return p.html, nil
}

func newTestScraper(page Page) *Scraper {
	return &Scraper{
		Page:        page,
		Credentials: credentials.Credentials{Username: "member", Password: "secret"},
		PortalURL:   "https://portal.example/login",
		Selector:    accountSelector,
		Labels:      Labels{Transaction: "Transaction", Shares: "Shares", HighGrowth: "High Growth"},
	}
}

func TestScraperBalances(t *testing.T) {
	page := &fakePage{html: accountPage}
	s := newTestScraper(page)

	balances, err := s.Balances(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Balances{Transaction: "$1,234.56", Shares: "$7,890.12", HighGrowth: "$3,456.78"}, balances)
	assert.Equal(t, []string{"https://portal.example/login|member"}, page.logins)
	assert.Equal(t, accountSelector, page.selector)
}

func TestScraperLoginFailure(t *testing.T) {
	loginErr := errors.New("no such element")
	page := &fakePage{html: accountPage, loginErr: loginErr}

	_, err := newTestScraper(page).Balances(context.Background())
	assert.ErrorIs(t, err, loginErr)
	assert.Empty(t, page.selector)
}

func TestScraperMissingBalance(t *testing.T) {
	page := &fakePage{html: `<div class="module accountDetails wrapper"><a><h4>Transaction</h4><p>1</p></a></div>`}

	_, err := newTestScraper(page).Balances(context.Background())
	assert.ErrorIs(t, err, ErrFieldNotFound)
}
