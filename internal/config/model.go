package config

import "time"

type (
	Config struct {
		App      AppConfig      `mapstructure:"app"`
		Registry RegistryConfig `mapstructure:"registry"`
		Download DownloadConfig `mapstructure:"download"`
		Install  InstallConfig  `mapstructure:"install"`
		Log      LogConfig      `mapstructure:"log"`
	}

	AppConfig struct {
		Name    string `mapstructure:"name"`
		Version string `mapstructure:"version"`
	}

	// RegistryConfig points the fetcher at the release registry. Tokens is
	// an ordered fallback queue consumed on 401/404/403, never a set.
	RegistryConfig struct {
		BaseURL   string        `mapstructure:"base_url"`
		Owner     string        `mapstructure:"owner"`
		Repo      string        `mapstructure:"repo"`
		Tokens    []string      `mapstructure:"tokens"`
		UserAgent string        `mapstructure:"user_agent"`
		Timeout   time.Duration `mapstructure:"timeout"`
		CacheTTL  time.Duration `mapstructure:"cache_ttl"`
	}

	DownloadConfig struct {
		Dir     string        `mapstructure:"dir"`
		Timeout time.Duration `mapstructure:"timeout"`
	}

	InstallConfig struct {
		QuitDelay time.Duration `mapstructure:"quit_delay"`
	}

	LogConfig struct {
		Level      string `mapstructure:"level"`
		File       string `mapstructure:"file"`
		MaxSize    int    `mapstructure:"max_size"`
		MaxBackups int    `mapstructure:"max_backups"`
		MaxAge     int    `mapstructure:"max_age"`
		Compress   bool   `mapstructure:"compress"`
	}
)
