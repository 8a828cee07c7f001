package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Estimate.ZeroTerms)
	assert.Equal(t, 30, cfg.Estimate.MaxN)
	assert.Equal(t, "constant", cfg.Estimate.Tail)
	assert.NotEmpty(t, cfg.Estimate.Xs)
	assert.True(t, cfg.GroundTruth.Enabled)
	assert.Equal(t, 1000000, cfg.GroundTruth.SieveLimit)
	assert.True(t, cfg.Output.SaveCSV)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "primes.yaml")
	content := `
estimate:
  xs: [100, 1000]
  zero_terms: 50
  tail: integral
ground_truth:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 1000}, cfg.Estimate.Xs)
	assert.Equal(t, 50, cfg.Estimate.ZeroTerms)
	assert.Equal(t, "integral", cfg.Estimate.Tail)
	assert.False(t, cfg.GroundTruth.Enabled)
	// Untouched keys keep their defaults.
	assert.Equal(t, 30, cfg.Estimate.MaxN)
}

func TestValidateRejections(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(viper.New(), "")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no sample points", func(c *Config) { c.Estimate.Xs = nil }},
		{"x below two", func(c *Config) { c.Estimate.Xs = []float64{1.5} }},
		{"negative terms", func(c *Config) { c.Estimate.ZeroTerms = -1 }},
		{"maxN zero", func(c *Config) { c.Estimate.MaxN = 0 }},
		{"maxN past table", func(c *Config) { c.Estimate.MaxN = 31 }},
		{"unknown tail", func(c *Config) { c.Estimate.Tail = "exact" }},
		{"sieve limit too small", func(c *Config) { c.GroundTruth.SieveLimit = 1 }},
		{"negative workers", func(c *Config) { c.Performance.Workers = -2 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "primes.yaml")
	require.NoError(t, SaveDefault(path))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Estimate.ZeroTerms)
	assert.Equal(t, "constant", cfg.Estimate.Tail)
}
