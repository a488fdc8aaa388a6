package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment     string        `mapstructure:"ENV" validate:"required,oneof=development production"`
	APIBaseURL      string        `mapstructure:"API_BASE_URL" validate:"required,url"`
	Locale          string        `mapstructure:"LOCALE" validate:"required,bcp47_language_tag"`
	TelegramToken   string        `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN           string        `mapstructure:"DB_DSN"`
	CatalogFile     string        `mapstructure:"CATALOG_FILE" validate:"required_without=DBDSN"`
	Visitor         string        `mapstructure:"VISITOR"`
	RefreshInterval time.Duration `mapstructure:"REFRESH_INTERVAL" validate:"min=1s"`
	Migrations      bool          `mapstructure:"MIGRATIONS"`

	// EnvFileLoaded true, если переменные были прочитаны из .env
	EnvFileLoaded bool
}

var validate = validator.New()

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	loaded := godotenv.Load(".env") == nil

	cfg := &Config{
		Environment:     getEnv("ENV", "development"),
		APIBaseURL:      os.Getenv("API_BASE_URL"),
		Locale:          getEnv("LOCALE", "pl"),
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		DBDSN:           os.Getenv("DB_DSN"),
		CatalogFile:     getEnv("CATALOG_FILE", "catalog.json"),
		Visitor:         os.Getenv("VISITOR"),
		RefreshInterval: 5 * time.Minute,
		EnvFileLoaded:   loaded,
	}

	if raw := os.Getenv("REFRESH_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse REFRESH_INTERVAL: %w", err)
		}
		cfg.RefreshInterval = d
	}

	if raw := os.Getenv("MIGRATIONS"); raw != "" {
		on, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("parse MIGRATIONS: %w", err)
		}
		cfg.Migrations = on
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные поля и форматы
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("invalid config field %s: failed %q", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

// RequireTelegram проверяет, что задан токен бота
func (c *Config) RequireTelegram() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	return nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
