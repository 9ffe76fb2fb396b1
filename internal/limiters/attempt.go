package limiters

import (
	"time"

	"github.com/MrEthical07/goGuard/internal"
	"github.com/MrEthical07/goGuard/internal/keyed"
)

const (
	defaultMaxAttempts     = 3
	defaultBlockDuration   = 10 * time.Minute
	defaultHistorySize     = 10
	defaultRetentionWindow = time.Hour
)

// Outcome is the result of recording one attempt.
type Outcome int

const (
	// Recorded means a failure was stored without reaching the threshold.
	Recorded Outcome = iota
	// Success means a successful attempt was stored.
	Success
	// Blocked means the failure reached the threshold and the key is now blocked.
	Blocked
)

func (o Outcome) String() string {
	switch o {
	case Recorded:
		return "recorded"
	case Success:
		return "success"
	case Blocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// AttemptConfig holds the thresholds of an [AttemptLimiter]. Zero-value
// fields fall back to 3 attempts, a 10m block, 10 history entries and a 1h
// retention window.
type AttemptConfig struct {
	MaxAttempts     int
	BlockDuration   time.Duration
	HistorySize     int
	RetentionWindow time.Duration
	Shards          int
}

type keyState struct {
	history   *history
	blockedAt time.Time
	blocked   bool
}

func (s *keyState) empty() bool {
	return s.history.len() == 0 && !s.blocked
}

// AttemptLimiter tracks attempt history and block state per identity key.
type AttemptLimiter struct {
	config AttemptConfig
	clock  internal.Clock
	keys   *keyed.Map[*keyState]
}

// NewAttemptLimiter creates an in-memory attempt limiter reading time from clock.
func NewAttemptLimiter(cfg AttemptConfig, clock internal.Clock) *AttemptLimiter {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.BlockDuration <= 0 {
		cfg.BlockDuration = defaultBlockDuration
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = defaultHistorySize
	}
	if cfg.RetentionWindow <= 0 {
		cfg.RetentionWindow = defaultRetentionWindow
	}
	return &AttemptLimiter{
		config: cfg,
		clock:  internal.ClockOrSystem(clock),
		keys:   keyed.New[*keyState](cfg.Shards),
	}
}

// Config returns the effective configuration after defaults.
func (l *AttemptLimiter) Config() AttemptConfig {
	if l == nil {
		return AttemptConfig{}
	}
	return l.config
}

// Record appends an attempt for key and evaluates the block threshold in the
// same critical section. A success never clears an existing block.
func (l *AttemptLimiter) Record(key string, succeeded bool) Outcome {
	if l == nil {
		if succeeded {
			return Success
		}
		return Recorded
	}

	now := l.clock.Now()
	outcome := Recorded

	l.keys.Do(key, func(entries map[string]*keyState) {
		state, ok := entries[key]
		if !ok {
			state = &keyState{history: newHistory(l.config.HistorySize)}
			entries[key] = state
		}
		state.history.push(attempt{at: now, succeeded: succeeded})

		if succeeded {
			outcome = Success
			return
		}
		if state.history.failures() >= l.config.MaxAttempts {
			state.blockedAt = now
			state.blocked = true
			outcome = Blocked
		}
	})

	return outcome
}

// IsBlocked reports whether key is inside an active block. An expired block is
// removed as a side effect.
func (l *AttemptLimiter) IsBlocked(key string) bool {
	if l == nil {
		return false
	}

	now := l.clock.Now()
	blocked := false

	l.keys.Do(key, func(entries map[string]*keyState) {
		state, ok := entries[key]
		if !ok || !state.blocked {
			return
		}
		if now.Sub(state.blockedAt) < l.config.BlockDuration {
			blocked = true
			return
		}
		state.blocked = false
		state.blockedAt = time.Time{}
		if state.empty() {
			delete(entries, key)
		}
	})

	return blocked
}

// Failures returns the number of failed attempts among the retained history.
func (l *AttemptLimiter) Failures(key string) int {
	if l == nil {
		return 0
	}
	failures := 0
	l.keys.Do(key, func(entries map[string]*keyState) {
		if state, ok := entries[key]; ok {
			failures = state.history.failures()
		}
	})
	return failures
}

// RemainingAttempts returns max(0, MaxAttempts - failures in retained history).
func (l *AttemptLimiter) RemainingAttempts(key string) int {
	if l == nil {
		return defaultMaxAttempts
	}
	remaining := l.config.MaxAttempts - l.Failures(key)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RemainingBlockTime returns how long key stays blocked, or 0 when it is not
// blocked. It does not clear expired blocks.
func (l *AttemptLimiter) RemainingBlockTime(key string) time.Duration {
	if l == nil {
		return 0
	}

	now := l.clock.Now()
	var remaining time.Duration

	l.keys.Do(key, func(entries map[string]*keyState) {
		state, ok := entries[key]
		if !ok || !state.blocked {
			return
		}
		remaining = l.config.BlockDuration - now.Sub(state.blockedAt)
	})

	if remaining < 0 {
		return 0
	}
	return remaining
}

// Tracked reports whether key has at least one retained attempt.
func (l *AttemptLimiter) Tracked(key string) bool {
	if l == nil {
		return false
	}
	tracked := false
	l.keys.Do(key, func(entries map[string]*keyState) {
		if state, ok := entries[key]; ok {
			tracked = state.history.len() > 0
		}
	})
	return tracked
}

// PurgeStats summarizes one retention sweep.
type PurgeStats struct {
	Entries int
	Keys    int
}

// PurgeStale drops history older than the retention window.
func (l *AttemptLimiter) PurgeStale() PurgeStats {
	if l == nil {
		return PurgeStats{}
	}
	return l.PurgeBefore(l.clock.Now().Add(-l.config.RetentionWindow))
}

// PurgeBefore drops history entries stamped at or before cutoff and removes
// keys left with neither history nor a block. Block entries are left alone;
// they expire through IsBlocked.
func (l *AttemptLimiter) PurgeBefore(cutoff time.Time) PurgeStats {
	if l == nil {
		return PurgeStats{}
	}

	var stats PurgeStats
	l.keys.Range(func(entries map[string]*keyState) {
		for key, state := range entries {
			stats.Entries += state.history.dropThrough(cutoff)
			if state.empty() {
				delete(entries, key)
				stats.Keys++
			}
		}
	})
	return stats
}

// Keys returns the number of tracked keys, including keys that only hold a block.
func (l *AttemptLimiter) Keys() int {
	if l == nil {
		return 0
	}
	return l.keys.Len()
}

// Len returns the number of retained history entries for key.
func (l *AttemptLimiter) Len(key string) int {
	if l == nil {
		return 0
	}
	n := 0
	l.keys.Do(key, func(entries map[string]*keyState) {
		if state, ok := entries[key]; ok {
			n = state.history.len()
		}
	})
	return n
}
