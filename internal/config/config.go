package config

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

func New() *Config {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(DefaultConfigName)
	v.SetConfigType(DefaultConfigType)
	v.AddConfigPath(".")
	v.AddConfigPath("config")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatalf("Failed to read config file, %v", err)
		}
	}

	var c = new(Config)
	if err := v.Unmarshal(c); err != nil {
		log.Fatalf("Failed to unmarshal config file, %v", err)
	}

	if raw := os.Getenv(TokensEnvKey); raw != "" {
		c.Registry.Tokens = splitTokens(raw)
	}
	if c.Download.Dir == "" {
		c.Download.Dir = defaultDownloadDir()
	}
	return c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("registry.base_url", DefaultBaseURL)
	v.SetDefault("registry.user_agent", DefaultUserAgent)
	v.SetDefault("registry.timeout", DefaultCheckTimeout)
	v.SetDefault("registry.cache_ttl", DefaultCacheTTL)
	v.SetDefault("download.timeout", DefaultDownloadTimeout)
	v.SetDefault("install.quit_delay", DefaultQuitDelay)
	v.SetDefault("log.level", "info")
}

func splitTokens(raw string) []string {
	var tokens []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// the artifact always lands in the platform's user-downloads directory
func defaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Downloads")
}
