package goGuard

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/MrEthical07/goGuard/internal"
	"github.com/MrEthical07/goGuard/internal/limiters"
)

// Scope names the identity dimension an attempt is counted against.
type Scope string

const (
	ScopeIP      Scope = "ip"
	ScopeAccount Scope = "account"
)

// AttemptOutcome is the result of recording one attempt.
type AttemptOutcome int

const (
	// AttemptRecorded means a failure was stored below the threshold.
	AttemptRecorded AttemptOutcome = iota
	// AttemptSuccess means a success was stored. Existing blocks stay in place.
	AttemptSuccess
	// AttemptBlocked means this failure reached MaxAttempts and the key is
	// blocked for BlockDuration from now.
	AttemptBlocked
)

func (o AttemptOutcome) String() string {
	switch o {
	case AttemptRecorded:
		return "recorded"
	case AttemptSuccess:
		return "success"
	case AttemptBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

func outcomeFrom(o limiters.Outcome) AttemptOutcome {
	switch o {
	case limiters.Success:
		return AttemptSuccess
	case limiters.Blocked:
		return AttemptBlocked
	default:
		return AttemptRecorded
	}
}

func (g *Guard) limiter(scope Scope) *limiters.AttemptLimiter {
	if g == nil {
		return nil
	}
	switch scope {
	case ScopeIP:
		return g.ip
	case ScopeAccount:
		if !g.accountScoped() {
			return nil
		}
		return g.account
	default:
		return nil
	}
}

// ResolveClientIP returns the identity used for IP-scoped throttling. With
// Identity.TrustForwardedHeader set and the header present, it is the first
// comma-separated token of that header, taken as-is. Otherwise it is the
// peer host from RemoteAddr.
func (g *Guard) ResolveClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	cfg := defaultConfig().Identity
	if g != nil {
		cfg = g.config.Identity
	}

	var forwarded string
	if cfg.TrustForwardedHeader {
		forwarded = r.Header.Get(cfg.ForwardedHeader)
	}
	return internal.ResolveClientIP(forwarded, r.RemoteAddr, cfg.TrustForwardedHeader)
}

// IsBlocked reports whether key is inside an active block in scope. An
// expired block is cleared as a side effect. Unknown keys and unknown scopes
// are never blocked, and neither is ScopeAccount in ModeIPOnly.
func (g *Guard) IsBlocked(scope Scope, key string) bool {
	return g.limiter(scope).IsBlocked(key)
}

// RecordAttempt appends one attempt for key in scope and evaluates the block
// threshold atomically with the append. In ModeIPOnly, ScopeAccount is inert
// and nothing is recorded.
//
// RecordAttempt does not know whether an account exists. Only RecordLogin
// skips unknown accounts; callers recording ScopeAccount directly must do
// that check themselves.
func (g *Guard) RecordAttempt(ctx context.Context, scope Scope, key string, succeeded bool) AttemptOutcome {
	l := g.limiter(scope)
	if l == nil {
		if succeeded {
			return AttemptSuccess
		}
		return AttemptRecorded
	}

	outcome := outcomeFrom(l.Record(key, succeeded))

	switch outcome {
	case AttemptSuccess:
		g.metrics.Inc(MetricAttemptSuccess)
	case AttemptRecorded:
		g.metrics.Inc(MetricAttemptFailure)
	case AttemptBlocked:
		g.metrics.Inc(MetricAttemptFailure)
		g.metrics.Inc(MetricBlockImposed)
		identity, ip := identityFor(scope, key)
		g.emitAudit(ctx, auditEventIdentityBlocked, false, scope, identity, ip, "max_attempts", func() map[string]string {
			return map[string]string{
				"block_seconds": strconv.FormatInt(int64(l.Config().BlockDuration/time.Second), 10),
			}
		})
	}

	return outcome
}

// RemainingAttempts returns MaxAttempts minus the failures in key's retained
// history, floored at zero.
func (g *Guard) RemainingAttempts(scope Scope, key string) int {
	l := g.limiter(scope)
	if l == nil {
		if g == nil {
			return defaultConfig().Limiter.MaxAttempts
		}
		return g.config.Limiter.MaxAttempts
	}
	return l.RemainingAttempts(key)
}

// RemainingBlockTime returns how long key stays blocked in scope, or 0.
func (g *Guard) RemainingBlockTime(scope Scope, key string) time.Duration {
	return g.limiter(scope).RemainingBlockTime(key)
}

// PurgeStats summarizes a retention sweep over both scopes.
type PurgeStats struct {
	// Entries is the number of history entries dropped.
	Entries int
	// Keys is the number of keys forgotten because nothing was left.
	Keys int
}

// PurgeStale drops history entries older than Limiter.RetentionWindow from
// every scope. Active blocks are kept regardless of their history. A key that
// still holds an expired block stays in memory until IsBlocked is called for it.
func (g *Guard) PurgeStale() PurgeStats {
	if g == nil {
		return PurgeStats{}
	}
	var out PurgeStats
	for _, l := range []*limiters.AttemptLimiter{g.ip, g.account} {
		s := l.PurgeStale()
		out.Entries += s.Entries
		out.Keys += s.Keys
	}
	g.metrics.Add(MetricHistoryPurged, uint64(out.Entries))
	return out
}

/*
====================================
LOGIN HELPERS
====================================
*/

// LoginCheck is the result of [Guard.CheckLogin].
type LoginCheck struct {
	Allowed bool
	// Scope is the scope whose block rejected the attempt.
	Scope Scope
	// RetryAfter is the remaining block time of Scope.
	RetryAfter time.Duration
}

// CheckLogin rejects a login before credentials are checked when the client
// IP is blocked or, in ModeIPAndAccount, when the account is blocked. Account
// keys are only recorded for accounts that exist, so probing unknown
// accounts never trips this check.
func (g *Guard) CheckLogin(ctx context.Context, ip, account string) LoginCheck {
	if g == nil {
		return LoginCheck{Allowed: true}
	}

	var start time.Time
	if g.metrics.LatencyEnabled() {
		start = time.Now()
		defer func() {
			g.metrics.Observe(MetricCheckLatency, time.Since(start))
		}()
	}

	check := LoginCheck{Allowed: true}
	switch {
	case g.ip.IsBlocked(ip):
		check = LoginCheck{Scope: ScopeIP, RetryAfter: g.ip.RemainingBlockTime(ip)}
	case g.accountScoped() && account != "" && g.account.IsBlocked(account):
		check = LoginCheck{Scope: ScopeAccount, RetryAfter: g.account.RemainingBlockTime(account)}
	}

	if !check.Allowed {
		g.metrics.Inc(MetricBlockedRejected)
		g.emitAudit(ctx, auditEventLoginBlocked, false, check.Scope, account, ip, "blocked", func() map[string]string {
			return map[string]string{
				"retry_after_seconds": strconv.FormatInt(RetryAfterSeconds(check.RetryAfter), 10),
			}
		})
	}

	return check
}

// LoginAttempt describes one completed credential check.
type LoginAttempt struct {
	IP      string
	Account string
	// AccountExists reports whether Account names a known account. Only
	// existing accounts are counted in ScopeAccount.
	AccountExists bool
	Succeeded     bool
}

// LoginResult is the result of [Guard.RecordLogin].
type LoginResult struct {
	IP AttemptOutcome
	// Account is meaningful only when AccountRecorded is true.
	Account         AttemptOutcome
	AccountRecorded bool
	// Blocked is true when this attempt imposed a block in any scope.
	Blocked bool
	// RemainingAttempts is the smallest remaining figure across the
	// recorded scopes.
	RemainingAttempts int
	// RetryAfter is the longest remaining block across the recorded scopes.
	RetryAfter time.Duration
}

// BlockedScope returns the scope that was blocked by this attempt, preferring
// ScopeIP, or "" when none was.
func (r LoginResult) BlockedScope() Scope {
	switch {
	case r.IP == AttemptBlocked:
		return ScopeIP
	case r.AccountRecorded && r.Account == AttemptBlocked:
		return ScopeAccount
	default:
		return ""
	}
}

// RecordLogin records a credential check in every applicable scope: always
// by IP, and by account when the mode is ModeIPAndAccount and the account
// exists.
func (g *Guard) RecordLogin(ctx context.Context, a LoginAttempt) LoginResult {
	if g == nil {
		return LoginResult{}
	}

	res := LoginResult{
		IP:                g.RecordAttempt(ctx, ScopeIP, a.IP, a.Succeeded),
		RemainingAttempts: g.ip.RemainingAttempts(a.IP),
		RetryAfter:        g.ip.RemainingBlockTime(a.IP),
	}

	if g.accountScoped() && a.Account != "" && a.AccountExists {
		res.Account = g.RecordAttempt(ctx, ScopeAccount, a.Account, a.Succeeded)
		res.AccountRecorded = true
		res.RemainingAttempts = min(res.RemainingAttempts, g.account.RemainingAttempts(a.Account))
		res.RetryAfter = max(res.RetryAfter, g.account.RemainingBlockTime(a.Account))
	}
	res.Blocked = res.BlockedScope() != ""

	eventType := auditEventLoginFailure
	if a.Succeeded {
		eventType = auditEventLoginSuccess
	}
	g.emitAudit(ctx, eventType, a.Succeeded, "", a.Account, a.IP, "", func() map[string]string {
		return map[string]string{
			"remaining_attempts": strconv.Itoa(res.RemainingAttempts),
			"account_recorded":   strconv.FormatBool(res.AccountRecorded),
		}
	})

	return res
}

// LoginStatus reports the throttling figures of both scopes.
type LoginStatus struct {
	IPRemainingAttempts      int
	AccountRemainingAttempts int
	IPBlockRemaining         time.Duration
	AccountBlockRemaining    time.Duration
}

// LoginStatus returns remaining attempts and remaining block time for ip and
// account. Neither figure is mutated.
func (g *Guard) LoginStatus(ip, account string) LoginStatus {
	return LoginStatus{
		IPRemainingAttempts:      g.RemainingAttempts(ScopeIP, ip),
		AccountRemainingAttempts: g.RemainingAttempts(ScopeAccount, account),
		IPBlockRemaining:         g.RemainingBlockTime(ScopeIP, ip),
		AccountBlockRemaining:    g.RemainingBlockTime(ScopeAccount, account),
	}
}

func (g *Guard) accountScoped() bool {
	return g.config.Limiter.Mode != ModeIPOnly
}

// RetryAfterSeconds converts a remaining block into a Retry-After value,
// rounded up so a client never retries before the block ends.
func RetryAfterSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64((d + time.Second - 1) / time.Second)
}
