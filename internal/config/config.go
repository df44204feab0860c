package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrEmptyToken = errors.New("error getting TW_TELEGRAM_TOKEN: variable not specified or contains an empty string")

type Config struct {
	Env         string // Env is the current environment: local, dev, prod.
	DataDir     string // DataDir is the snapshot store root.
	OutputDir   string // OutputDir receives reports and screenshots.
	StoragePath string // StoragePath is the SQLite database file.
	CustomSites []string
	Tg          Telegram
	SMTP        SMTP
	OpenAI      OpenAI
}

type Telegram struct {
	Token   string        // Token is an unique telegram bot token.
	Timeout time.Duration // Timeout is a poller timeout duration.
}

type SMTP struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	Recipients []string
}

type OpenAI struct {
	APIKey string
	Model  string
}

// MustLoad loads the configuration from environment variables and returns a Config struct.
func MustLoad() *Config {
	// Automatically binds environment variables to config keys
	viper.SetEnvPrefix("TW")
	viper.AutomaticEnv()

	// optional args
	viper.SetDefault("ENV", "production")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("OUTPUT_DIR", "output")
	viper.SetDefault("STORAGE_PATH", "telewatch.db")
	viper.SetDefault("TELEGRAM_TIMEOUT", "15s")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")

	return &Config{
		Env:         viper.GetString("ENV"),
		DataDir:     viper.GetString("DATA_DIR"),
		OutputDir:   viper.GetString("OUTPUT_DIR"),
		StoragePath: viper.GetString("STORAGE_PATH"),
		CustomSites: splitList(viper.GetString("CUSTOM_SITES")),
		Tg: Telegram{
			Token:   viper.GetString("TELEGRAM_TOKEN"),
			Timeout: viper.GetDuration("TELEGRAM_TIMEOUT"),
		},
		SMTP: SMTP{
			Host:       viper.GetString("SMTP_HOST"),
			Port:       viper.GetInt("SMTP_PORT"),
			Username:   viper.GetString("SMTP_USERNAME"),
			Password:   viper.GetString("SMTP_PASSWORD"),
			From:       viper.GetString("SMTP_FROM"),
			Recipients: splitList(viper.GetString("EMAIL_TO")),
		},
		OpenAI: OpenAI{
			APIKey: viper.GetString("OPENAI_API_KEY"),
			Model:  viper.GetString("OPENAI_MODEL"),
		},
	}
}

// ValidateTelegram checks the settings the bot command depends on.
func (c *Config) ValidateTelegram() error {
	if c.Tg.Token == "" {
		return ErrEmptyToken
	}

	return nil
}

// splitList parses a comma-separated environment value.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
