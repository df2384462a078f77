package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_PUBLISHABLE_KEY", "publishable")
	t.Setenv("SUPABASE_JWT_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "job-documents", cfg.SupabaseStorageBucket)
	assert.Equal(t, "data/drafts.db", cfg.DraftsDBPath)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.GeolocationTimeout)
	assert.Equal(t, 75.0, cfg.Rates.LaborRate)
	assert.Equal(t, 189.0, cfg.Rates.StandbyRate)
	assert.Equal(t, 10.0, cfg.Rates.OverheadPercent)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_PUBLISHABLE_KEY", "publishable")
	t.Setenv("SUPABASE_JWT_SECRET", "secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPABASE_URL is required")
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LABOR_RATE", "82.5")
	t.Setenv("GEOLOCATION_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 82.5, cfg.Rates.LaborRate)
	assert.Equal(t, 2*time.Second, cfg.GeolocationTimeout)
}

func TestLoad_BadNumber(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STANDBY_RATE", "lots")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STANDBY_RATE")
}

func TestLoad_RatesFileOverridesEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LABOR_RATE", "60")

	path := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
labor_rate: 80
overhead_percent: 12.5
equipment_rates:
  wall_saw: 45
materials:
  core_bit_water: 2.5
`), 0o600))
	t.Setenv("RATES_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 80.0, cfg.Rates.LaborRate)
	assert.Equal(t, 189.0, cfg.Rates.StandbyRate, "keys absent from the file keep env values")
	assert.Equal(t, 12.5, cfg.Rates.OverheadPercent)
	assert.Equal(t, 45.0, cfg.Rates.EquipmentRates["wall_saw"])
	assert.Equal(t, 2.5, cfg.Rates.Materials["core_bit_water"])
}

func TestRateCard_ParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative labor", "labor_rate: -1"},
		{"overhead above 100", "overhead_percent: 120"},
		{"negative equipment", "equipment_rates:\n  wall_saw: -4"},
		{"malformed", "labor_rate: [1, 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r RateCard
			assert.Error(t, r.Parse([]byte(tt.yaml)))
		})
	}
}

func TestLoad_MissingRatesFile(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RATES_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read rates file")
}
