package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseJWTSecret      string
	SupabaseStorageBucket  string

	// Database
	DatabaseURL  string
	DraftsDBPath string

	// Server
	Port        string
	Environment string
	BaseURL     string

	// Company letterhead on generated documents
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string

	GeolocationTimeout time.Duration

	RatesFile string
	Rates     RateCard
}

// RateCard holds the pricing inputs for cost calculation. Values loaded from
// RATES_FILE override the environment defaults.
type RateCard struct {
	LaborRate       float64            `yaml:"labor_rate"`
	StandbyRate     float64            `yaml:"standby_rate"`
	OverheadPercent float64            `yaml:"overhead_percent"`
	EquipmentRates  map[string]float64 `yaml:"equipment_rates"`
	Materials       map[string]float64 `yaml:"materials"`
}

func Load() (*Config, error) {
	cfg := &Config{
		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseJWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "job-documents"),

		DatabaseURL:  getEnv("DATABASE_URL", ""),
		DraftsDBPath: getEnv("DRAFTS_DB_PATH", "data/drafts.db"),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),

		CompanyName:    getEnv("COMPANY_NAME", "Field Services"),
		CompanyAddress: getEnv("COMPANY_ADDRESS", ""),
		CompanyPhone:   getEnv("COMPANY_PHONE", ""),

		RatesFile: getEnv("RATES_FILE", ""),
	}

	var err error
	if cfg.GeolocationTimeout, err = getEnvDuration("GEOLOCATION_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.Rates.LaborRate, err = getEnvFloat("LABOR_RATE", 75); err != nil {
		return nil, err
	}
	if cfg.Rates.StandbyRate, err = getEnvFloat("STANDBY_RATE", 189); err != nil {
		return nil, err
	}
	if cfg.Rates.OverheadPercent, err = getEnvFloat("OVERHEAD_PERCENT", 10); err != nil {
		return nil, err
	}

	if cfg.RatesFile != "" {
		if err := cfg.Rates.LoadFile(cfg.RatesFile); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadFile overlays the YAML rate card at path onto r. Keys absent from the
// file keep their current values.
func (r *RateCard) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read rates file: %w", err)
	}
	return r.Parse(data)
}

func (r *RateCard) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, r); err != nil {
		return fmt.Errorf("failed to parse rates file: %w", err)
	}
	return r.Validate()
}

func (r RateCard) Validate() error {
	if r.LaborRate < 0 || r.StandbyRate < 0 {
		return fmt.Errorf("rates must not be negative")
	}
	if r.OverheadPercent < 0 || r.OverheadPercent > 100 {
		return fmt.Errorf("overhead_percent must be between 0 and 100")
	}
	for name, rate := range r.EquipmentRates {
		if rate < 0 {
			return fmt.Errorf("equipment rate %q must not be negative", name)
		}
	}
	for name, cost := range r.Materials {
		if cost < 0 {
			return fmt.Errorf("material cost %q must not be negative", name)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabasePublishableKey == "" {
		return fmt.Errorf("SUPABASE_PUBLISHABLE_KEY is required")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	if c.GeolocationTimeout <= 0 {
		return fmt.Errorf("GEOLOCATION_TIMEOUT must be positive")
	}
	return c.Rates.Validate()
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return f, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
