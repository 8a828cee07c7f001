// Package config loads and validates the estimator configuration from a
// yaml file, environment and flag overrides handled through viper.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EstimateConfig controls the explicit-formula evaluation.
type EstimateConfig struct {
	// Xs are the sample points pi(x) is estimated at.
	Xs []float64 `json:"xs" yaml:"xs" mapstructure:"xs"`
	// ZeroTerms is how many zero pairs the sum is truncated to.
	ZeroTerms int `json:"zero_terms" yaml:"zero_terms" mapstructure:"zero_terms"`
	// MaxN bounds the Mobius-inversion root iteration.
	MaxN int `json:"max_n" yaml:"max_n" mapstructure:"max_n"`
	// Tail selects the tail-integral strategy: "constant" or "integral".
	Tail string `json:"tail" yaml:"tail" mapstructure:"tail"`
	// ZerosFile points at an external zero list; empty selects the
	// embedded 1000-zero table.
	ZerosFile string `json:"zeros_file" yaml:"zeros_file" mapstructure:"zeros_file"`
}

// GroundTruthConfig controls the sieve-backed exact column.
type GroundTruthConfig struct {
	Enabled    bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	SieveLimit int  `json:"sieve_limit" yaml:"sieve_limit" mapstructure:"sieve_limit"`
}

// OutputConfig controls report files and logging.
type OutputConfig struct {
	Directory      string `json:"directory" yaml:"directory" mapstructure:"directory"`
	FilenamePrefix string `json:"filename_prefix" yaml:"filename_prefix" mapstructure:"filename_prefix"`
	SaveCSV        bool   `json:"save_csv" yaml:"save_csv" mapstructure:"save_csv"`
	SaveJSON       bool   `json:"save_json" yaml:"save_json" mapstructure:"save_json"`
	Breakdowns     bool   `json:"breakdowns" yaml:"breakdowns" mapstructure:"breakdowns"`
	Verbose        bool   `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
	LogLevel       string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}

// PerformanceConfig controls batch fan-out.
type PerformanceConfig struct {
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`
}

// Config is the full estimator configuration.
type Config struct {
	Estimate    EstimateConfig    `json:"estimate" yaml:"estimate" mapstructure:"estimate"`
	GroundTruth GroundTruthConfig `json:"ground_truth" yaml:"ground_truth" mapstructure:"ground_truth"`
	Output      OutputConfig      `json:"output" yaml:"output" mapstructure:"output"`
	Performance PerformanceConfig `json:"performance" yaml:"performance" mapstructure:"performance"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("estimate.xs", []float64{10, 100, 1000, 10000, 100000, 1000000})
	v.SetDefault("estimate.zero_terms", 1000)
	v.SetDefault("estimate.max_n", 30)
	v.SetDefault("estimate.tail", "constant")
	v.SetDefault("estimate.zeros_file", "")

	v.SetDefault("ground_truth.enabled", true)
	v.SetDefault("ground_truth.sieve_limit", 1000000)

	v.SetDefault("output.directory", ".")
	v.SetDefault("output.filename_prefix", "primes")
	v.SetDefault("output.save_csv", true)
	v.SetDefault("output.save_json", true)
	v.SetDefault("output.breakdowns", false)
	v.SetDefault("output.verbose", false)
	v.SetDefault("output.log_level", "info")

	v.SetDefault("performance.workers", 0) // 0 = one per x, capped at NumCPU
}

// Load reads the config file at path, or pure defaults when path is empty
// or missing. Flag bindings on v take precedence over the file.
func Load(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks the invariants the numeric packages rely on.
func (c *Config) Validate() error {
	if len(c.Estimate.Xs) == 0 {
		return fmt.Errorf("estimate.xs must list at least one sample point")
	}
	for _, x := range c.Estimate.Xs {
		if x < 2 {
			return fmt.Errorf("estimate.xs: explicit formula requires x >= 2, got %g", x)
		}
	}
	if c.Estimate.ZeroTerms < 0 {
		return fmt.Errorf("estimate.zero_terms cannot be negative")
	}
	if c.Estimate.MaxN < 1 || c.Estimate.MaxN > 30 {
		return fmt.Errorf("estimate.max_n must be in 1..30, got %d", c.Estimate.MaxN)
	}
	switch c.Estimate.Tail {
	case "constant", "integral":
	default:
		return fmt.Errorf("estimate.tail must be \"constant\" or \"integral\", got %q", c.Estimate.Tail)
	}
	if c.GroundTruth.Enabled && c.GroundTruth.SieveLimit < 2 {
		return fmt.Errorf("ground_truth.sieve_limit must be >= 2")
	}
	if c.Performance.Workers < 0 {
		return fmt.Errorf("performance.workers cannot be negative")
	}
	return nil
}

// SaveDefault writes the default configuration to path as yaml, so a first
// run leaves an editable file behind.
func SaveDefault(path string) error {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to build default config: %w", err)
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}
	return nil
}
