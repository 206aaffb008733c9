package app

import "time"

// Config holds everything a run needs, resolved from the environment
type Config struct {
	TokenDir         string
	CredentialsPath  string
	ClientSecretPath string
	TokenPath        string

	SpreadsheetID         string
	ReadbackSpreadsheetID string
	SheetName             string

	PortalURL        string
	AccountSelector  string
	TransactionLabel string
	SharesLabel      string
	HighGrowthLabel  string
	NoSandbox        bool
	ScrapeTimeout    time.Duration

	Notify NotifyConfig
}

// NotifyConfig controls the optional ntfy message sent after a row is recorded
type NotifyConfig struct {
	Enabled  bool
	BaseURL  string
	Topic    string
	Priority string
}
