package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// ErrIncomplete is returned when the credentials file lacks a username or password.
var ErrIncomplete = errors.New("credentials file must set username and password")

// Credentials are the portal login, read once per process.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Load reads a {username, password} JSON file.
func Load(path string) (Credentials, error) {
	var creds Credentials

	data, err := os.ReadFile(path)
	if err != nil {
		return creds, fmt.Errorf("failed to read credentials file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("failed to parse credentials file %s: %w", path, err)
	}
	if creds.Username == "" || creds.Password == "" {
		return Credentials{}, fmt.Errorf("%s: %w", path, ErrIncomplete)
	}

	log.Debug().Str("path", path).Str("username", creds.Username).Msg("Loaded portal credentials")
	return creds, nil
}
