package config

import "time"

const (
	DefaultConfigName = "config"
	DefaultConfigType = "yaml"

	DefaultBaseURL   = "https://api.github.com"
	DefaultUserAgent = "sub000-updater"

	DefaultCheckTimeout    = 30 * time.Second
	DefaultDownloadTimeout = 300 * time.Second
	DefaultCacheTTL        = 5 * time.Minute
	DefaultQuitDelay       = 1500 * time.Millisecond

	// comma separated bearer tokens, kept out of the config file
	TokensEnvKey = "UPDATER_REGISTRY_TOKENS"
)
