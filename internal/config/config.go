// Package config reads the configuration from the environment, an
// optional .env file and an optional config file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/expense-tracker/backend/internal/money"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// EnvPrefix is the prefix for all environment variables, e.g.
// EXPENSES_HTTP_PORT for http.port.
const EnvPrefix = "EXPENSES"

var (
	ErrLogFormat    = errors.New("log.format must be 'human' or 'json'")
	ErrDefaultLimit = errors.New("budget.default_limit must be a non-negative decimal number")
	ErrBillInterval = errors.New("subscriptions.bill_interval must not be negative")
)

// Config is the complete configuration of the backend.
type Config struct {
	DataDir      string
	DataFile     string
	Port         int
	APIURL       *url.URL
	LogFormat    string
	LogLevel     zerolog.Level
	GinMode      string
	AllowOrigins []string
	Pprof        bool
	Locale       language.Tag
	Formatter    money.Formatter
	DefaultLimit decimal.Decimal
	BillInterval time.Duration // Interval for billing due subscriptions while serving, disabled if 0
}

// DSN returns the path of the database file.
func (c Config) DSN() string {
	return filepath.Join(c.DataDir, c.DataFile)
}

// New returns a viper instance with all defaults set that reads from the
// environment.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("data.dir", "./data")
	v.SetDefault("data.file", "expenses.db")
	v.SetDefault("http.port", 8080)
	v.SetDefault("api.url", "http://localhost:8080")
	v.SetDefault("log.format", "")
	v.SetDefault("log.level", "")
	v.SetDefault("gin.mode", "release")
	v.SetDefault("cors.allow_origins", "")
	v.SetDefault("pprof.enabled", false)
	v.SetDefault("locale", "it")
	v.SetDefault("currency", "EUR")
	v.SetDefault("budget.default_limit", "1500")
	v.SetDefault("subscriptions.bill_interval", "0s")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the configuration. A .env file in the working directory is
// loaded into the environment first if it exists. If file is not empty,
// it is read as config file.
func Load(v *viper.Viper, file string) (Config, error) {
	_ = godotenv.Load()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return parse(v)
}

func parse(v *viper.Viper) (Config, error) {
	c := Config{
		DataDir:      v.GetString("data.dir"),
		DataFile:     v.GetString("data.file"),
		Port:         v.GetInt("http.port"),
		GinMode:      v.GetString("gin.mode"),
		AllowOrigins: strings.Fields(v.GetString("cors.allow_origins")),
		Pprof:        v.GetBool("pprof.enabled"),
		BillInterval: v.GetDuration("subscriptions.bill_interval"),
	}

	apiURL, err := url.Parse(v.GetString("api.url"))
	if err != nil {
		return Config{}, fmt.Errorf("api.url is not a valid URL: %w", err)
	}
	c.APIURL = apiURL

	// Human readable logs for development, JSON for release
	c.LogFormat = v.GetString("log.format")
	if c.LogFormat == "" {
		c.LogFormat = "json"
		if c.GinMode == "debug" {
			c.LogFormat = "human"
		}
	}

	if c.LogFormat != "human" && c.LogFormat != "json" {
		return Config{}, ErrLogFormat
	}

	c.LogLevel = zerolog.InfoLevel
	if c.GinMode == "debug" {
		c.LogLevel = zerolog.DebugLevel
	}

	if level := v.GetString("log.level"); level != "" {
		c.LogLevel, err = zerolog.ParseLevel(level)
		if err != nil {
			return Config{}, fmt.Errorf("log.level is invalid: %w", err)
		}
	}

	c.Formatter, err = money.NewFormatter(v.GetString("locale"), v.GetString("currency"))
	if err != nil {
		return Config{}, err
	}
	c.Locale = c.Formatter.Tag

	c.DefaultLimit, err = decimal.NewFromString(v.GetString("budget.default_limit"))
	if err != nil || c.DefaultLimit.IsNegative() {
		return Config{}, ErrDefaultLimit
	}

	if c.BillInterval < 0 {
		return Config{}, ErrBillInterval
	}

	return c, nil
}
