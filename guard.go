package goGuard

import (
	"sync/atomic"

	"github.com/MrEthical07/goGuard/internal/audit"
	"github.com/MrEthical07/goGuard/internal/limiters"
	"github.com/MrEthical07/goGuard/internal/stores"
)

// Guard owns the attempt limiters, the OTP issuer and their shared clock,
// audit dispatcher and metrics. Build one per process with [Builder.Build]
// and pass it to the handlers that need it.
//
// All methods are safe for concurrent use. State lives in memory only and is
// lost on restart.
type Guard struct {
	config Config
	clock  Clock

	ip      *limiters.AttemptLimiter
	account *limiters.AttemptLimiter
	otp     *stores.OTPStore

	audit   *audit.Dispatcher
	metrics *Metrics

	customCodes bool

	closed atomic.Bool
}

// Config returns a copy of the configuration the Guard was built with.
func (g *Guard) Config() Config {
	if g == nil {
		return Config{}
	}
	return g.config
}

// Close drains the audit dispatcher. Limiter and OTP state stay readable,
// but maintenance loops stop and audit events are no longer delivered.
func (g *Guard) Close() {
	if g == nil {
		return
	}
	if g.closed.Swap(true) {
		return
	}
	g.audit.Close()
}

// MetricsSnapshot returns the current counters and histograms.
func (g *Guard) MetricsSnapshot() MetricsSnapshot {
	if g == nil {
		return (*Metrics)(nil).Snapshot()
	}
	return g.metrics.Snapshot()
}

// AuditDropped returns how many audit events were dropped because the
// dispatcher buffer was full.
func (g *Guard) AuditDropped() uint64 {
	if g == nil {
		return 0
	}
	return g.audit.Dropped()
}

func (g *Guard) ready() bool {
	return g != nil && !g.closed.Load()
}
