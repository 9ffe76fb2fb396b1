package goGuard

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	envTrustForwardedHeader = "GOGUARD_TRUST_FORWARDED_HEADER"
	envLimitMode            = "GOGUARD_MODE"
)

// LoadConfig reads a YAML file over [DefaultConfig], applies environment
// overrides and validates the result. Keys absent from the file keep their
// defaults. Durations use time.ParseDuration syntax ("10m", "1h").
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig is LoadConfig for an in-memory document.
func ParseConfig(data []byte) (Config, error) {
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(envTrustForwardedHeader); v != "" {
		trust, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, envTrustForwardedHeader, err)
		}
		c.Identity.TrustForwardedHeader = trust
	}
	if v := os.Getenv(envLimitMode); v != "" {
		c.Limiter.Mode = LimitMode(v)
	}
	return nil
}
