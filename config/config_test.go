package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rav6044/smartpark/core/model"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `lot:
  capacities:
    BIKE: 2
    CAR: 3
    VIP: 1
  shuffle: false
  seed: 7
pricing:
  CAR: { fixed_hours: 1, fixed_rate: 8, per_hour: 4 }
metrics:
  prometheus_enabled: true
  prometheus_addr: ":9999"
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"capacities.car", cfg.Lot.Capacities["CAR"], 3},
		{"capacities.bike", cfg.Lot.Capacities["BIKE"], 2},
		{"shuffle", cfg.Lot.Shuffle, false},
		{"seed", cfg.Lot.Seed, int64(7)},
		{"pricing.car.fixed_rate", cfg.Pricing["CAR"].FixedRate, 8.0},
		{"metrics.prometheus_enabled", cfg.Metrics.PrometheusEnabled, true},
		{"metrics.prometheus_addr", cfg.Metrics.PrometheusAddr, ":9999"},
		{"logging.level", cfg.Logging.Level, "debug"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	if _, err := Load("config.toml"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Lot.Capacities["CAR"] != 30 {
		t.Errorf("default CAR capacity = %d", cfg.Lot.Capacities["CAR"])
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default level = %s", cfg.Logging.Level)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown category", func(c *Config) { c.Lot.Capacities["TRUCK"] = 1 }},
		{"negative capacity", func(c *Config) { c.Lot.Capacities["CAR"] = -1 }},
		{"empty lot", func(c *Config) { c.Lot.Capacities = map[string]int{} }},
		{"negative rate", func(c *Config) { c.Pricing["CAR"] = TierConfig{FixedRate: -1} }},
		{"missing car tier", func(c *Config) { delete(c.Pricing, "CAR") }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Default()
			cfg.Logging.SetDefaults()
			c.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestDomainConversions(t *testing.T) {
	cfg := Default()
	caps := cfg.Capacities()
	if caps[model.CategoryCar] != 30 || caps[model.CategoryVIP] != 5 {
		t.Errorf("capacities conversion: %v", caps)
	}
	table := cfg.PricingTable()
	if table[model.CategoryEV].FixedRate != 12 {
		t.Errorf("pricing conversion: %v", table[model.CategoryEV])
	}
}
