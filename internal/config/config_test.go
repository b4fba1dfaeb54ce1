package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NAV_DATA_FILE", "")
	t.Setenv("NAV_MARKET_DATA_FILE", "")
	t.Setenv("NAV_FUNDS", "")
	t.Setenv("NAV_TIMEZONE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DataFile != "data.json" {
		t.Errorf("DataFile = %q", cfg.DataFile)
	}
	if cfg.MarketDataFile != "market_data.json" {
		t.Errorf("MarketDataFile = %q", cfg.MarketDataFile)
	}
	if cfg.Timezone != "America/Toronto" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if cfg.Location == nil {
		t.Fatal("Location not resolved")
	}
	if len(cfg.Funds) != len(DefaultFunds) {
		t.Errorf("funds = %d, expected default set of %d", len(cfg.Funds), len(DefaultFunds))
	}
	if cfg.Funds[0].Code != "RBF5736" {
		t.Errorf("first fund = %q", cfg.Funds[0].Code)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("NAV_DATA_FILE", "/var/lib/nav/data.json")
	t.Setenv("NAV_FUNDS", "RBF2146=RBC Global Equity Index, RBF2142=RBC Canadian Equity Index")
	t.Setenv("NAV_TIMEZONE", "UTC")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DataFile != "/var/lib/nav/data.json" {
		t.Errorf("DataFile = %q", cfg.DataFile)
	}
	if len(cfg.Funds) != 2 {
		t.Fatalf("funds = %d, expected 2", len(cfg.Funds))
	}
	if cfg.Funds[1].Code != "RBF2142" || cfg.Funds[1].Name != "RBC Canadian Equity Index" {
		t.Errorf("second fund = %+v", cfg.Funds[1])
	}
}

func TestLoadBadTimezone(t *testing.T) {
	t.Setenv("NAV_TIMEZONE", "Not/AZone")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

func TestParseFunds(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    int
		wantErr bool
	}{
		{"single", "RBF2146=RBC Global Equity Index", 1, false},
		{"multiple with spaces", "A=One, B=Two ,C=Three", 3, false},
		{"trailing comma", "A=One,", 1, false},
		{"missing name", "RBF2146", 0, true},
		{"empty name", "RBF2146=", 0, true},
		{"empty spec", "", 0, true},
		{"only commas", ",,,", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			funds, err := ParseFunds(tt.spec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFunds(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			}
			if err == nil && len(funds) != tt.want {
				t.Errorf("ParseFunds(%q) = %d funds, expected %d", tt.spec, len(funds), tt.want)
			}
		})
	}
}
