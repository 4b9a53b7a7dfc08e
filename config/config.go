// Package config loads the demo driver's parameters from a YAML file,
// with environment-variable substitution and default/validation passes,
// generalizing the teacher's config-loader pattern to this driver.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete configuration for cmd/syncxdemo.
type Config struct {
	Dataset DatasetConfig `yaml:"dataset"`
	Pool    PoolConfig    `yaml:"pool"`
	Timing  TimingConfig  `yaml:"timing"`
	Factors []uint32      `yaml:"factors"`
}

// DatasetConfig controls the size of the protected data generated each round.
type DatasetConfig struct {
	Capacity  int `yaml:"capacity"`
	BlockSize int `yaml:"block_size"`
}

// PoolConfig controls the task queue and worker pool.
type PoolConfig struct {
	QueueCapacity int `yaml:"queue_capacity"`
	WorkerCount   int `yaml:"worker_count"`
}

// TimingConfig controls the pacing of the fill/poll loops, in
// milliseconds (converted to time.Duration sleep periods by the driver).
type TimingConfig struct {
	GeneratorPeriodMS int `yaml:"generator_period_ms"`
	PollPeriodMS      int `yaml:"poll_period_ms"`
}

// Load reads filename, substitutes environment variables, parses YAML,
// applies defaults, and validates the result.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", filename, err)
	}

	substituted := substituteEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(substituted), &cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var envPattern = regexp.MustCompile(`\$\{([A-Z_][A-Z0-9_]*)(:-([^}]*))?\}`)

// substituteEnvVars replaces ${VAR} and ${VAR:-default} patterns with
// environment variable values, leaving unresolvable references as-is.
func substituteEnvVars(input string) string {
	return envPattern.ReplaceAllStringFunc(input, func(match string) string {
		parts := envPattern.FindStringSubmatch(match)
		name, def := parts[1], parts[3]

		if value := os.Getenv(name); value != "" {
			return value
		}
		if def != "" {
			return def
		}
		return match
	})
}

func (c *Config) applyDefaults() {
	if c.Dataset.Capacity == 0 {
		c.Dataset.Capacity = 2048
	}
	if c.Dataset.BlockSize == 0 {
		c.Dataset.BlockSize = 256
	}
	if c.Pool.QueueCapacity == 0 {
		c.Pool.QueueCapacity = 6
	}
	if c.Pool.WorkerCount == 0 {
		c.Pool.WorkerCount = 6
	}
	if c.Timing.GeneratorPeriodMS == 0 {
		c.Timing.GeneratorPeriodMS = 200
	}
	if c.Timing.PollPeriodMS == 0 {
		c.Timing.PollPeriodMS = 50
	}
	if len(c.Factors) == 0 {
		c.Factors = []uint32{23, 31, 47, 79}
	}
}

func (c *Config) validate() error {
	var errs []string

	if c.Dataset.Capacity < 1 {
		errs = append(errs, "dataset.capacity must be at least 1")
	}
	if c.Dataset.BlockSize < 1 || c.Dataset.BlockSize > c.Dataset.Capacity {
		errs = append(errs, "dataset.block_size must be between 1 and dataset.capacity")
	}
	if c.Pool.QueueCapacity < 1 {
		errs = append(errs, "pool.queue_capacity must be at least 1")
	}
	if c.Pool.WorkerCount < 1 {
		errs = append(errs, "pool.worker_count must be at least 1")
	}
	if c.Timing.GeneratorPeriodMS < 1 {
		errs = append(errs, "timing.generator_period_ms must be at least 1")
	}
	if c.Timing.PollPeriodMS < 1 {
		errs = append(errs, "timing.poll_period_ms must be at least 1")
	}
	if len(c.Factors) == 0 {
		errs = append(errs, "factors must list at least one divisor")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
