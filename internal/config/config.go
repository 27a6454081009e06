// Package config loads and validates the optional .verdict YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/deixis/verdict/internal/ecosystem"
)

// Default values for runner and pool configuration.
const (
	DefaultConcurrency = 4
	DefaultTimeout     = 5 * time.Minute
	DefaultMaxOutput   = 1 << 20 // 1 MB
)

// Config holds the parsed .verdict configuration.
// All fields are optional; zero values represent defaults.
type Config struct {
	Version        int    `yaml:"version"`
	RawConcurrency int    `yaml:"concurrency"` // pool size, >= 1
	RawTimeout     string `yaml:"timeout"`     // per-hook limit, e.g. "5m", "30s"
	RawMaxOutput   int    `yaml:"max_output"`  // bytes
	RawLogDir      string `yaml:"log_dir"`     // hook output logs; empty disables them

	// Only restricts runs to the listed ecosystems; Skip removes
	// ecosystems from whatever was detected. Only wins over Skip.
	Only []string `yaml:"only"`
	Skip []string `yaml:"skip"`
}

// Concurrency returns the configured pool size or the default.
func (c *Config) Concurrency() int {
	if c.RawConcurrency > 0 {
		return c.RawConcurrency
	}
	return DefaultConcurrency
}

// Timeout returns the configured per-hook timeout or the default.
func (c *Config) Timeout() time.Duration {
	if c.RawTimeout != "" {
		d, err := time.ParseDuration(c.RawTimeout)
		if err == nil && d > 0 {
			return d
		}
	}
	return DefaultTimeout
}

// MaxOutputBytes returns the configured max output size or the default.
func (c *Config) MaxOutputBytes() int {
	if c.RawMaxOutput > 0 {
		return c.RawMaxOutput
	}
	return DefaultMaxOutput
}

// LogDir returns the directory for per-hook output logs, resolved
// relative to root unless absolute. Empty means logs are disabled.
func (c *Config) LogDir(root string) string {
	if c.RawLogDir == "" {
		return ""
	}
	if filepath.IsAbs(c.RawLogDir) {
		return c.RawLogDir
	}
	return filepath.Join(root, c.RawLogDir)
}

// FilterEcosystems applies the only/skip lists to a detected set,
// preserving detection order. Unknown names in either list are ignored.
func (c *Config) FilterEcosystems(detected []ecosystem.Ecosystem) []ecosystem.Ecosystem {
	if len(c.Only) == 0 && len(c.Skip) == 0 {
		return detected
	}

	only := make(map[string]bool, len(c.Only))
	for _, name := range c.Only {
		only[name] = true
	}
	skip := make(map[string]bool, len(c.Skip))
	for _, name := range c.Skip {
		skip[name] = true
	}

	var out []ecosystem.Ecosystem
	for _, eco := range detected {
		if len(only) > 0 && !only[string(eco)] {
			continue
		}
		if len(only) == 0 && skip[string(eco)] {
			continue
		}
		out = append(out, eco)
	}
	return out
}

// Load reads the .verdict file from the project root. If no file exists,
// a default Config is returned.
func Load(root string) (*Config, error) {
	path := filepath.Join(root, ".verdict")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading .verdict: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing .verdict: %w", err)
	}
	return cfg, nil
}
