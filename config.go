package goGuard

import (
	"errors"
	"strings"
	"time"

	"github.com/MrEthical07/goGuard/internal"
)

// Config holds every tunable of a [Guard]. Zero-valued sections are not
// filled in by Build; start from [DefaultConfig] and override fields.
type Config struct {
	Limiter     LimiterConfig     `yaml:"limiter"`
	OTP         OTPConfig         `yaml:"otp"`
	Identity    IdentityConfig    `yaml:"identity"`
	Audit       AuditConfig       `yaml:"audit"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Maintenance MaintenanceConfig `yaml:"maintenance"`
}

/*
====================================
LIMITER CONFIG
====================================
*/

// LimitMode selects which identity scopes the login helpers throttle.
type LimitMode string

const (
	// ModeIPAndAccount throttles by client IP and, once an account has been
	// seen to exist, by account key.
	ModeIPAndAccount LimitMode = "ip_and_account"
	// ModeIPOnly throttles by client IP only. Account keys are never recorded.
	ModeIPOnly LimitMode = "ip_only"
)

// LimiterConfig configures the attempt limiters. The same thresholds apply to
// every scope.
type LimiterConfig struct {
	Mode            LimitMode     `yaml:"mode"`
	MaxAttempts     int           `yaml:"max_attempts"`
	BlockDuration   time.Duration `yaml:"block_duration"`
	HistorySize     int           `yaml:"history_size"`
	RetentionWindow time.Duration `yaml:"retention_window"`
	Shards          int           `yaml:"shards"`
}

/*
====================================
OTP CONFIG
====================================
*/

// OTPConfig configures the one-time passcode issuer.
//
// Codes come from math/rand/v2 unless a generator is supplied through
// [Builder.WithCodeGenerator]. That source is not suitable for codes that
// guard anything of value; there is also no cap on wrong guesses per code,
// so callers exposed to the internet should throttle verification with the
// attempt limiter.
type OTPConfig struct {
	CodeLength int           `yaml:"code_length"`
	Validity   time.Duration `yaml:"validity"`
	Shards     int           `yaml:"shards"`
}

/*
====================================
IDENTITY CONFIG
====================================
*/

// IdentityConfig controls client identity resolution.
//
// TrustForwardedHeader makes the first token of ForwardedHeader the client
// identity without validation. Any client can set that header, so enable it
// only behind a proxy that overwrites it.
type IdentityConfig struct {
	TrustForwardedHeader bool   `yaml:"trust_forwarded_header"`
	ForwardedHeader      string `yaml:"forwarded_header"`
}

/*
====================================
AUDIT / METRICS / MAINTENANCE
====================================
*/

// AuditConfig configures the asynchronous audit dispatcher.
type AuditConfig struct {
	Enabled    bool `yaml:"enabled"`
	BufferSize int  `yaml:"buffer_size"`
	DropIfFull bool `yaml:"drop_if_full"`
}

// MetricsConfig toggles in-process counters and latency histograms.
type MetricsConfig struct {
	Enabled                 bool `yaml:"enabled"`
	EnableLatencyHistograms bool `yaml:"enable_latency_histograms"`
}

// MaintenanceConfig configures [Guard.RunMaintenance].
type MaintenanceConfig struct {
	Interval time.Duration `yaml:"interval"`
}

/*
====================================
DEFAULT CONFIG
====================================
*/

func defaultConfig() Config {
	return Config{
		Limiter: LimiterConfig{
			Mode:            ModeIPAndAccount,
			MaxAttempts:     3,
			BlockDuration:   10 * time.Minute,
			HistorySize:     10,
			RetentionWindow: time.Hour,
			Shards:          32,
		},
		OTP: OTPConfig{
			CodeLength: 4,
			Validity:   20 * time.Minute,
			Shards:     32,
		},
		Identity: IdentityConfig{
			TrustForwardedHeader: false,
			ForwardedHeader:      internal.DefaultForwardedHeader,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
		Maintenance: MaintenanceConfig{
			Interval: 5 * time.Minute,
		},
	}
}

// DefaultConfig returns the configuration used when [Builder.WithConfig] is
// not called: 3 failures block for 10 minutes, 4-digit codes live 20 minutes,
// forwarded headers are not trusted.
func DefaultConfig() Config {
	return defaultConfig()
}

/*
====================================
VALIDATION
====================================
*/

// Validate reports the first invalid field. Build calls it and wraps the
// result in [ErrInvalidConfig].
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	// Limiter
	switch c.Limiter.Mode {
	case ModeIPAndAccount, ModeIPOnly:
	default:
		return errors.New("Limiter Mode must be ip_and_account or ip_only")
	}
	if c.Limiter.MaxAttempts <= 0 {
		return errors.New("Limiter MaxAttempts must be > 0")
	}
	if c.Limiter.BlockDuration <= 0 {
		return errors.New("Limiter BlockDuration must be > 0")
	}
	if c.Limiter.HistorySize <= 0 {
		return errors.New("Limiter HistorySize must be > 0")
	}
	if c.Limiter.MaxAttempts > c.Limiter.HistorySize {
		return errors.New("Limiter MaxAttempts must be <= HistorySize")
	}
	if c.Limiter.RetentionWindow <= 0 {
		return errors.New("Limiter RetentionWindow must be > 0")
	}
	if c.Limiter.Shards <= 0 {
		return errors.New("Limiter Shards must be > 0")
	}

	// OTP
	if c.OTP.CodeLength < internal.MinOTPDigits || c.OTP.CodeLength > internal.MaxOTPDigits {
		return errors.New("OTP CodeLength must be between 4 and 10")
	}
	if c.OTP.Validity <= 0 {
		return errors.New("OTP Validity must be > 0")
	}
	if c.OTP.Shards <= 0 {
		return errors.New("OTP Shards must be > 0")
	}

	// Identity
	if c.Identity.TrustForwardedHeader && strings.TrimSpace(c.Identity.ForwardedHeader) == "" {
		return errors.New("Identity ForwardedHeader must be set when TrustForwardedHeader is true")
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when audit is enabled")
	}

	// Maintenance
	if c.Maintenance.Interval <= 0 {
		return errors.New("Maintenance Interval must be > 0")
	}

	return nil
}
