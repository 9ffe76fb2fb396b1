package goGuard

import (
	"fmt"
	"time"

	"github.com/MrEthical07/goGuard/internal"
	"github.com/MrEthical07/goGuard/internal/audit"
	"github.com/MrEthical07/goGuard/internal/limiters"
	"github.com/MrEthical07/goGuard/internal/stores"
)

// Clock supplies the current time to every Guard component.
type Clock interface {
	Now() time.Time
}

// CodeGenerator produces OTP codes of exactly length decimal digits.
type CodeGenerator interface {
	Generate(length int) (string, error)
}

// CodeGeneratorFunc adapts a function to [CodeGenerator].
type CodeGeneratorFunc func(length int) (string, error)

func (f CodeGeneratorFunc) Generate(length int) (string, error) {
	return f(length)
}

// Builder assembles a [Guard].
//
// Builder instances are configured during initialization and used once.
type Builder struct {
	config    Config
	clock     Clock
	auditSink AuditSink
	generator CodeGenerator

	built bool
}

// New returns a Builder seeded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithClock sets the time source shared by the limiters and the OTP issuer.
// Tests use it to move time without sleeping.
func (b *Builder) WithClock(c Clock) *Builder {
	b.clock = c
	return b
}

// WithAuditSink sets the sink behind the audit dispatcher. It has no effect
// unless Config.Audit.Enabled is true.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithCodeGenerator replaces the default math/rand/v2 code source.
func (b *Builder) WithCodeGenerator(g CodeGenerator) *Builder {
	b.generator = g
	return b
}

func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and returns a ready Guard. A Builder can
// build only once.
func (b *Builder) Build() (*Guard, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var clock Clock = internal.ClockOrSystem(b.clock)

	attemptCfg := limiters.AttemptConfig{
		MaxAttempts:     cfg.Limiter.MaxAttempts,
		BlockDuration:   cfg.Limiter.BlockDuration,
		HistorySize:     cfg.Limiter.HistorySize,
		RetentionWindow: cfg.Limiter.RetentionWindow,
		Shards:          cfg.Limiter.Shards,
	}

	otpCfg := stores.OTPConfig{
		CodeLength: cfg.OTP.CodeLength,
		Validity:   cfg.OTP.Validity,
		Shards:     cfg.OTP.Shards,
	}
	if b.generator != nil {
		otpCfg.Generator = b.generator
	}

	guard := &Guard{
		config:  cfg,
		clock:   clock,
		ip:      limiters.NewAttemptLimiter(attemptCfg, clock),
		account: limiters.NewAttemptLimiter(attemptCfg, clock),
		otp:     stores.NewOTPStore(otpCfg, clock),
		audit: audit.NewDispatcher(audit.Config{
			Enabled:    cfg.Audit.Enabled,
			BufferSize: cfg.Audit.BufferSize,
			DropIfFull: cfg.Audit.DropIfFull,
		}, b.auditSink),
		metrics: NewMetrics(cfg.Metrics),

		customCodes: b.generator != nil,
	}

	b.built = true

	return guard, nil
}
