package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	credentialsFileName  = "australiansuper.json"
	clientSecretFileName = "client-secret.json"
	tokenFileName        = "sheets.json"
)

// SetupEnvironment loads .env file and configures zerolog output and log level.
func SetupEnvironment() {
	// Load .env file if it exists
	err := godotenv.Load()

	// Configure logging
	if os.Getenv("ENV") == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	levelStr := strings.ToLower(os.Getenv("LOGLEVEL"))
	switch levelStr {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case "":
		if os.Getenv("ENV") == "production" {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", levelStr)
	}

	// wait until now to report on the .env file so we have the chance to set up logging first
	if err == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found or error loading .env file; proceeding with existing environment variables.")
	}
}

// GetRequiredEnv fetches a required environment variable or returns an error if not set.
func GetRequiredEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s environment variable is required", key)
	}
	return value, nil
}

// GetEnvWithDefault fetches an environment variable with a default fallback.
func GetEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// LoadConfig reads the run configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config

	tokenDir, err := GetRequiredEnv("TOKEN_DIR")
	if err != nil {
		return cfg, err
	}
	spreadsheetID, err := GetRequiredEnv("SPREADSHEET_ID")
	if err != nil {
		return cfg, err
	}

	noSandbox, err := strconv.ParseBool(GetEnvWithDefault("BROWSER_NO_SANDBOX", "true"))
	if err != nil {
		return cfg, fmt.Errorf("invalid BROWSER_NO_SANDBOX: %w", err)
	}
	scrapeTimeout, err := time.ParseDuration(GetEnvWithDefault("SCRAPE_TIMEOUT", "2m"))
	if err != nil {
		return cfg, fmt.Errorf("invalid SCRAPE_TIMEOUT: %w", err)
	}

	cfg = Config{
		TokenDir:              tokenDir,
		CredentialsPath:       filepath.Join(tokenDir, credentialsFileName),
		ClientSecretPath:      filepath.Join(tokenDir, clientSecretFileName),
		TokenPath:             filepath.Join(tokenDir, tokenFileName),
		SpreadsheetID:         spreadsheetID,
		ReadbackSpreadsheetID: GetEnvWithDefault("READBACK_SPREADSHEET_ID", spreadsheetID),
		SheetName:             GetEnvWithDefault("SHEET_NAME", "Sheet1"),
		PortalURL:             GetEnvWithDefault("PORTAL_URL", "https://www.australiansuper.com/portal.aspx"),
		AccountSelector:       GetEnvWithDefault("ACCOUNT_SELECTOR", ".module.accountDetails.wrapper a"),
		TransactionLabel:      GetEnvWithDefault("TRANSACTION_LABEL", "Transaction"),
		SharesLabel:           GetEnvWithDefault("SHARES_LABEL", "Shares"),
		HighGrowthLabel:       GetEnvWithDefault("HIGH_GROWTH_LABEL", "High Growth"),
		NoSandbox:             noSandbox,
		ScrapeTimeout:         scrapeTimeout,
		Notify: NotifyConfig{
			Enabled:  GetEnvWithDefault("NTFY_ENABLED", "false") == "true",
			BaseURL:  GetEnvWithDefault("NTFY_URL", "https://ntfy.sh"),
			Topic:    GetEnvWithDefault("NTFY_TOPIC", "super-sheets"),
			Priority: GetEnvWithDefault("NTFY_PRIORITY", "default"),
		},
	}

	log.Debug().
		Str("token_dir", cfg.TokenDir).
		Str("spreadsheet_id", cfg.SpreadsheetID).
		Str("readback_spreadsheet_id", cfg.ReadbackSpreadsheetID).
		Str("sheet", cfg.SheetName).
		Bool("no_sandbox", cfg.NoSandbox).
		Msg("Loaded configuration")

	if cfg.ReadbackSpreadsheetID != cfg.SpreadsheetID {
		log.Info().
			Str("spreadsheet_id", cfg.SpreadsheetID).
			Str("readback_spreadsheet_id", cfg.ReadbackSpreadsheetID).
			Msg("Readback uses a different spreadsheet than the append")
	}

	return cfg, nil
}
