package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/gogobitcoin/gogobitcoin/internal/model"
)

const minChartHeight = 4

// cliConfig holds the dashboard configuration.
type cliConfig struct {
	PriceInterval time.Duration `mapstructure:"price-interval" yaml:"price-interval"`
	ClockInterval time.Duration `mapstructure:"clock-interval" yaml:"clock-interval"`
	HistoryDays   uint          `mapstructure:"history-days" yaml:"history-days"`
	ChartHeight   int           `mapstructure:"chart-height" yaml:"chart-height"`
	Theme         string        `mapstructure:"theme" yaml:"theme"`
	APIBaseURL    string        `mapstructure:"api-base-url" yaml:"api-base-url"`
	LogLevel      string        `mapstructure:"log-level" yaml:"log-level"`
	LogFile       string        `mapstructure:"log-file" yaml:"log-file"`
}

func defaultLogFile(home string) string {
	return filepath.Join(home, ".local", "state", "gogobitcoin", "gogobitcoin.log")
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("loading .env: %w", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("GOGOBITCOIN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("price-interval", model.DefaultPriceInterval)
	v.SetDefault("clock-interval", model.DefaultClockInterval)
	v.SetDefault("history-days", model.DefaultHistoryDays)
	v.SetDefault("chart-height", model.DefaultChartHeight)
	v.SetDefault("theme", model.DefaultTheme)
	v.SetDefault("api-base-url", model.DefaultAPIBaseURL)
	v.SetDefault("log-level", "info")
	v.SetDefault("log-file", defaultLogFile(home))

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "gogobitcoin", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	} else {
		slog.Debug("config loaded", "path", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// validate rejects values the dashboard cannot run with.
func (c cliConfig) validate() error {
	var errs []error
	if c.PriceInterval <= 0 {
		errs = append(errs, fmt.Errorf("price-interval must be positive, got %s", c.PriceInterval))
	}
	if c.ClockInterval <= 0 {
		errs = append(errs, fmt.Errorf("clock-interval must be positive, got %s", c.ClockInterval))
	}
	if c.HistoryDays < 1 {
		errs = append(errs, errors.New("history-days must be at least 1"))
	}
	if c.ChartHeight < minChartHeight {
		errs = append(errs, fmt.Errorf("chart-height must be at least %d, got %d", minChartHeight, c.ChartHeight))
	}
	switch strings.ToLower(c.Theme) {
	case "light", "dark", "system":
	default:
		errs = append(errs, fmt.Errorf("theme must be light, dark or system, got %q", c.Theme))
	}
	if c.APIBaseURL == "" {
		errs = append(errs, errors.New("api-base-url must not be empty"))
	}
	return errors.Join(errs...)
}
