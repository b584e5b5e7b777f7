// Package config loads the cashflow configuration: defaults, then a yaml file,
// then a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/etnz/cashflow"
	"github.com/shopspring/decimal"
)

// Config is the application configuration.
type Config struct {
	DataDir   string `yaml:"data_dir"`
	OutputDir string `yaml:"output_dir"`

	// Sources are the bank exports loaded by the load command.
	Sources []Source `yaml:"sources"`
	// ExcelPassword decrypts protected workbooks without their own password.
	ExcelPassword string `yaml:"excel_password"`

	// Currency is the reporting currency.
	Currency string `yaml:"currency"`
	// Rates gives, per currency, the number of units worth one unit of Currency.
	Rates      map[string]float64 `yaml:"rates"`
	RateSource *RateSource        `yaml:"rate_source"`

	Categories []cashflow.CategoryRule `yaml:"categories"`

	Server    Server    `yaml:"server"`
	Assistant Assistant `yaml:"assistant"`
}

// Source is a bank export file.
type Source struct {
	Path     string `yaml:"path"`
	Password string `yaml:"password"`
}

// RateSource fetches rates from a json api.
type RateSource struct {
	URL string `yaml:"url"`
	// Paths maps a currency to the JSONPath of its rate in the response.
	Paths map[string]string `yaml:"paths"`
}

// Server configures the web dashboard.
type Server struct {
	Addr string `yaml:"addr"`
	// MaxUpload is the maximum upload size in bytes.
	MaxUpload int64 `yaml:"max_upload"`
	// UploadsPerMinute limits uploads per client.
	UploadsPerMinute int `yaml:"uploads_per_minute"`
}

// Assistant configures the chat assistant.
type Assistant struct {
	Model string `yaml:"model"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		DataDir:   "data",
		OutputDir: "output",
		Currency:  cashflow.ReportingCurrency,
		Rates:     map[string]float64{"KRW": 1750},
		Server: Server{
			Addr:             "localhost:5001",
			MaxUpload:        16 << 20,
			UploadsPerMinute: 10,
		},
		Assistant: Assistant{Model: "gemini-2.5-flash"},
	}
}

// ReportsDir is where csv reports are written.
func (c Config) ReportsDir() string { return filepath.Join(c.OutputDir, "reports") }

// ChartsDir is where png charts are written.
func (c Config) ChartsDir() string { return filepath.Join(c.OutputDir, "charts") }

// Validate checks the configuration.
func (c Config) Validate() error {
	var errs []error
	switch strings.TrimSpace(c.Currency) {
	case cashflow.ReportingCurrency:
	case "":
		errs = append(errs, errors.New("currency must not be empty"))
	default:
		errs = append(errs, fmt.Errorf("currency must be %s, bank exports are converted into it, got %q", cashflow.ReportingCurrency, c.Currency))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("data_dir must not be empty"))
	}
	for cur, rate := range c.Rates {
		if !(rate > 0) {
			errs = append(errs, fmt.Errorf("rate for %s must be positive, got %v", cur, rate))
		}
	}
	if c.Server.MaxUpload <= 0 {
		errs = append(errs, fmt.Errorf("server.max_upload must be positive, got %d", c.Server.MaxUpload))
	}
	for i, r := range c.Categories {
		if r.Name == "" {
			errs = append(errs, fmt.Errorf("category rule %d has no name", i))
		}
	}
	if c.RateSource != nil && c.RateSource.URL == "" {
		errs = append(errs, errors.New("rate_source.url must not be empty"))
	}
	return errors.Join(errs...)
}

// ExchangeRates returns the configured rates.
func (c Config) ExchangeRates() *cashflow.Rates {
	r := cashflow.NewRates(c.Currency)
	for _, cur := range slices.Sorted(maps.Keys(c.Rates)) {
		r.Set(cur, decimal.NewFromFloat(c.Rates[cur]))
	}
	return r
}

// Categorizer returns the categorizer for the configured rules.
func (c Config) Categorizer() *cashflow.Categorizer {
	return cashflow.NewCategorizer(c.Categories)
}

// PasswordFor returns the password of a source, or the default one.
func (c Config) PasswordFor(s Source) string {
	if s.Password != "" {
		return s.Password
	}
	return c.ExcelPassword
}
