// Package config provides environment-based configuration for the tracker.
//
// Settings come from environment variables with sensible defaults, with an
// optional .env file loaded first. The tracked fund set defaults to the RBC
// and PH&N Series F funds the project was built for and can be overridden
// with NAV_FUNDS.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Fund pairs a stable fund code with its display name. The tracked set is
// static configuration, never derived from scraped data.
type Fund struct {
	Code string
	Name string
}

// DefaultFunds is the tracked fund set when NAV_FUNDS is not set.
var DefaultFunds = []Fund{
	{"RBF5736", "RBC Intl Equity Currency Neutral"},
	{"RBF2146", "RBC Global Equity Index"},
	{"RBF2142", "RBC Canadian Equity Index"},
	{"RBF5150", "PH&N Dividend Income"},
	{"RBF2143", "RBC U.S. Equity Index"},
	{"RBF1691", "RBC Core Plus Bond Pool"},
	{"RBF5280", "PH&N High Yield Bond"},
}

// Config holds all configuration for the application.
type Config struct {
	DataFile       string
	MarketDataFile string
	Funds          []Fund
	Timezone       string
	Location       *time.Location
}

// Load reads configuration from environment variables and an optional .env
// file.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		DataFile:       getEnv("NAV_DATA_FILE", "data.json"),
		MarketDataFile: getEnv("NAV_MARKET_DATA_FILE", "market_data.json"),
		Funds:          DefaultFunds,
		Timezone:       getEnv("NAV_TIMEZONE", "America/Toronto"),
	}

	if spec := os.Getenv("NAV_FUNDS"); spec != "" {
		funds, err := ParseFunds(spec)
		if err != nil {
			return nil, fmt.Errorf("parsing NAV_FUNDS: %w", err)
		}
		cfg.Funds = funds
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	return cfg, nil
}

// ParseFunds parses a "CODE=Name,CODE=Name" fund list.
func ParseFunds(spec string) ([]Fund, error) {
	var funds []Fund
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		code, name, ok := strings.Cut(part, "=")
		code = strings.TrimSpace(code)
		name = strings.TrimSpace(name)
		if !ok || code == "" || name == "" {
			return nil, fmt.Errorf("invalid fund spec %q (want CODE=Name)", part)
		}
		funds = append(funds, Fund{Code: code, Name: name})
	}
	if len(funds) == 0 {
		return nil, fmt.Errorf("no funds configured")
	}
	return funds, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
