package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

var (
	ErrClientSecret  = errors.New("error loading client secret file")
	ErrAuthorization = errors.New("error while trying to retrieve access token")
)

// LoadClientConfig reads installed-app client credentials. With no scopes it
// requests read/write access to spreadsheets.
func LoadClientConfig(path string, scopes ...string) (*oauth2.Config, error) {
	if len(scopes) == 0 {
		scopes = []string{sheets.SpreadsheetsScope}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClientSecret, err)
	}
	config, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClientSecret, err)
	}

	log.Debug().Str("path", path).Str("client_id", config.ClientID).Msg("Loaded client secret")
	return config, nil
}

// Authorizer obtains a token: from the store when one is cached, otherwise by
// asking Codes for an authorization code and exchanging it.
type Authorizer struct {
	Config *oauth2.Config
	Store  TokenStore
	Codes  CodeProvider
}

// Token returns the cached token without checking expiry, or runs the
// authorization flow once and persists the result.
func (a *Authorizer) Token(ctx context.Context) (*oauth2.Token, error) {
	token, err := a.Store.Load()
	if err == nil && token != nil {
		log.Debug().Msg("Using cached token")
		return token, nil
	}
	log.Debug().Err(err).Msg("No usable cached token; starting authorization")

	authURL := a.Config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	code, err := a.Codes.AuthorizationCode(ctx, authURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthorization, err)
	}

	token, err = a.Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthorization, err)
	}

	if err := a.Store.Save(token); err != nil {
		return nil, err
	}
	return token, nil
}

// Client returns an HTTP client that authenticates every request.
func (a *Authorizer) Client(ctx context.Context) (*http.Client, error) {
	token, err := a.Token(ctx)
	if err != nil {
		return nil, err
	}
	return a.Config.Client(ctx, token), nil
}
