// Package config loads the job configuration from the environment, an
// optional .env file and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	derr "github.com/footydigest/matchday/internal/errors"
)

// MaxTimeout is the upper bound for any outbound request timeout.
const MaxTimeout = 10 * time.Second

type Config struct {
	Env          string             `yaml:"env" env:"ENV" env-default:"local"`
	Log          LogConfig          `yaml:"log"`
	FootballData FootballDataConfig `yaml:"football_data"`
	Telegram     TelegramConfig     `yaml:"telegram"`
	Twitter      TwitterConfig      `yaml:"twitter"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type FootballDataConfig struct {
	Token   string        `yaml:"token" env:"FOOTBALL_DATA_API_TOKEN"`
	BaseURL string        `yaml:"base_url" env:"FOOTBALL_DATA_BASE_URL" env-default:"https://api.football-data.org/v4"`
	Timeout time.Duration `yaml:"timeout" env:"FOOTBALL_DATA_TIMEOUT" env-default:"10s"`
}

type TelegramConfig struct {
	BotToken     string        `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN"`
	ChatID       string        `yaml:"chat_id" env:"TELEGRAM_CHAT_ID"`
	BaseURL      string        `yaml:"base_url" env:"TELEGRAM_BASE_URL" env-default:"https://api.telegram.org"`
	Timeout      time.Duration `yaml:"timeout" env:"TELEGRAM_TIMEOUT" env-default:"10s"`
	ResetWebhook bool          `yaml:"reset_webhook" env:"TELEGRAM_RESET_WEBHOOK" env-default:"true"`
}

type TwitterConfig struct {
	APIKey       string `yaml:"api_key" env:"TWITTER_API_KEY"`
	APISecret    string `yaml:"api_secret" env:"TWITTER_API_SECRET"`
	AccessToken  string `yaml:"access_token" env:"TWITTER_ACCESS_TOKEN"`
	AccessSecret string `yaml:"access_secret" env:"TWITTER_ACCESS_SECRET"`
}

// Complete reports whether all four OAuth1 values are set.
func (c TwitterConfig) Complete() bool {
	return c.APIKey != "" && c.APISecret != "" && c.AccessToken != "" && c.AccessSecret != ""
}

// Credentials are the three secrets a run cannot do without.
type Credentials struct {
	FootballDataToken string
	TelegramBotToken  string
	TelegramChatID    string
}

// Credentials extracts the required secrets.
func (c *Config) Credentials() Credentials {
	return Credentials{
		FootballDataToken: c.FootballData.Token,
		TelegramBotToken:  c.Telegram.BotToken,
		TelegramChatID:    c.Telegram.ChatID,
	}
}

// Missing returns the environment variable names of unset credentials.
func (c Credentials) Missing() []string {
	var missing []string
	if strings.TrimSpace(c.FootballDataToken) == "" {
		missing = append(missing, "FOOTBALL_DATA_API_TOKEN")
	}
	if strings.TrimSpace(c.TelegramBotToken) == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if strings.TrimSpace(c.TelegramChatID) == "" {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	return missing
}

// Validate returns an error wrapping ErrMissingCredential when any secret is unset.
func (c Credentials) Validate() error {
	if missing := c.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", derr.ErrMissingCredential, strings.Join(missing, ", "))
	}
	return nil
}

// Load reads configuration. A .env file in the working directory is applied
// first when present (it never overrides variables already set). When path
// is non-empty the YAML file is read and environment variables override it;
// otherwise only the environment is used.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	cfg.FootballData.Timeout = clampTimeout(cfg.FootballData.Timeout)
	cfg.Telegram.Timeout = clampTimeout(cfg.Telegram.Timeout)

	return &cfg, nil
}

// PathFromEnv returns CONFIG_PATH, the fallback for the --config flag.
func PathFromEnv() string {
	return os.Getenv("CONFIG_PATH")
}

func clampTimeout(d time.Duration) time.Duration {
	if d <= 0 || d > MaxTimeout {
		return MaxTimeout
	}
	return d
}
