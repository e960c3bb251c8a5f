package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/rav6044/smartpark/core/billing"
	"github.com/rav6044/smartpark/core/metrics"
	"github.com/rav6044/smartpark/core/model"
)

// Config is the full service configuration.
type Config struct {
	Lot     LotConfig             `json:"lot"`
	Pricing map[string]TierConfig `json:"pricing"`
	Metrics metrics.Config        `json:"metrics"`
	Logging LoggingConfig         `json:"logging"`
}

// LotConfig defines the slot set.
type LotConfig struct {
	// Capacities maps category names (BIKE, CAR, EV, HEAVY, VIP) to slot
	// counts.
	Capacities map[string]int `json:"capacities"`
	// Shuffle randomizes the allocation scan order at startup.
	Shuffle bool `json:"shuffle"`
	// Seed makes the shuffle reproducible. Zero picks a time-based seed.
	Seed int64 `json:"seed"`
}

// TierConfig defines the pricing tier for one category.
type TierConfig struct {
	FixedHours int     `json:"fixed_hours"`
	FixedRate  float64 `json:"fixed_rate"`
	PerHour    float64 `json:"per_hour"`
}

// Default returns the lot's standard configuration.
func Default() *Config {
	return &Config{
		Lot: LotConfig{
			Capacities: map[string]int{
				"BIKE":  20,
				"CAR":   30,
				"EV":    10,
				"HEAVY": 5,
				"VIP":   5,
			},
			Shuffle: true,
		},
		Pricing: map[string]TierConfig{
			"BIKE":  {FixedHours: 2, FixedRate: 5, PerHour: 2},
			"CAR":   {FixedHours: 2, FixedRate: 10, PerHour: 5},
			"EV":    {FixedHours: 2, FixedRate: 12, PerHour: 6},
			"HEAVY": {FixedHours: 1, FixedRate: 15, PerHour: 8},
			"VIP":   {FixedHours: 3, FixedRate: 15, PerHour: 4},
		},
		Metrics: metrics.Config{},
		Logging: LoggingConfig{},
	}
}

// Load reads the configuration file and applies environment overrides.
// Values absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("PARK_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "park_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Logging.SetDefaults()
	cfg.Metrics.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to the default
// configuration when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		cfg.Logging.SetDefaults()
		cfg.Metrics.SetDefaults()
		return cfg, nil
	}
	return Load(path)
}

// Validate checks the lot and pricing sections.
func (c *Config) Validate() error {
	total := 0
	for name, n := range c.Lot.Capacities {
		if _, err := model.ParseCategory(name); err != nil {
			return fmt.Errorf("lot.capacities: %w", err)
		}
		if n < 0 {
			return fmt.Errorf("lot.capacities: negative capacity %d for %s", n, name)
		}
		total += n
	}
	if total == 0 {
		return fmt.Errorf("lot.capacities: lot has no slots")
	}
	for name, t := range c.Pricing {
		if _, err := model.ParseCategory(name); err != nil {
			return fmt.Errorf("pricing: %w", err)
		}
		if t.FixedHours < 0 || t.FixedRate < 0 || t.PerHour < 0 {
			return fmt.Errorf("pricing: negative values for %s", name)
		}
	}
	if _, ok := c.Pricing["CAR"]; !ok {
		return fmt.Errorf("pricing: CAR tier is required (fallback tier)")
	}
	return c.Logging.Validate()
}

// Capacities converts the lot section to domain categories.
func (c *Config) Capacities() map[model.Category]int {
	out := make(map[model.Category]int, len(c.Lot.Capacities))
	for name, n := range c.Lot.Capacities {
		cat, err := model.ParseCategory(name)
		if err != nil {
			continue // Validate already rejected unknown names
		}
		out[cat] = n
	}
	return out
}

// PricingTable converts the pricing section to a billing table.
func (c *Config) PricingTable() billing.Table {
	t := make(billing.Table, len(c.Pricing))
	for name, tier := range c.Pricing {
		cat, err := model.ParseCategory(name)
		if err != nil {
			continue
		}
		t[cat] = billing.Tier{FixedHours: tier.FixedHours, FixedRate: tier.FixedRate, PerHour: tier.PerHour}
	}
	return t
}
