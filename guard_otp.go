package goGuard

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/MrEthical07/goGuard/internal/stores"
)

// OTPResult is the outcome of [Guard.VerifyOTP]. Checks run in declaration
// order after OTPValid: a missing code wins over expiry, expiry over an IP
// mismatch, and an IP mismatch over a wrong code.
type OTPResult int

const (
	OTPValid OTPResult = iota
	OTPNotFound
	OTPExpired
	OTPIPMismatch
	OTPIncorrect
)

func (r OTPResult) String() string {
	switch r {
	case OTPValid:
		return "valid"
	case OTPNotFound:
		return "not_found"
	case OTPExpired:
		return "expired"
	case OTPIPMismatch:
		return "ip_mismatch"
	case OTPIncorrect:
		return "incorrect"
	default:
		return "unknown"
	}
}

func otpResultFrom(r stores.VerifyResult) OTPResult {
	switch r {
	case stores.Valid:
		return OTPValid
	case stores.Expired:
		return OTPExpired
	case stores.IPMismatch:
		return OTPIPMismatch
	case stores.Incorrect:
		return OTPIncorrect
	default:
		return OTPNotFound
	}
}

// OTPInfo describes a stored code without revealing it.
type OTPInfo = stores.OTPInfo

// OTPIssue is a freshly minted code. Code must reach the account holder
// out of band; it is never logged or audited.
type OTPIssue struct {
	ID        string
	Code      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IssueOTP mints a code for key bound to ip, replacing any previous code for
// key.
func (g *Guard) IssueOTP(ctx context.Context, key, ip string) (OTPIssue, error) {
	if g == nil {
		return OTPIssue{}, ErrGuardNotReady
	}

	issued, err := g.otp.Issue(key, ip)
	if err != nil {
		g.metrics.Inc(MetricOTPIssueFailure)
		return OTPIssue{}, fmt.Errorf("%w: %v", ErrOTPGeneration, err)
	}

	g.metrics.Inc(MetricOTPIssued)
	g.emitAudit(ctx, auditEventOTPIssued, true, ScopeAccount, key, ip, "", func() map[string]string {
		return map[string]string{
			"otp_id":     issued.ID,
			"expires_at": issued.ExpiresAt.UTC().Format(time.RFC3339),
		}
	})

	return OTPIssue{
		ID:        issued.ID,
		Code:      issued.Code,
		IssuedAt:  issued.IssuedAt,
		ExpiresAt: issued.ExpiresAt,
	}, nil
}

// VerifyOTP checks code for key as presented from ip. An expired code is
// deleted. A valid code is deleted only when consume is true. Wrong codes and
// IP mismatches leave the stored code untouched and are not counted; pair
// this with RecordAttempt when guesses need throttling.
func (g *Guard) VerifyOTP(ctx context.Context, key, code, ip string, consume bool) OTPResult {
	if g == nil {
		return OTPNotFound
	}

	var start time.Time
	if g.metrics.LatencyEnabled() {
		start = time.Now()
	}

	v := g.otp.Verify(key, code, ip, consume)
	result := otpResultFrom(v.Result)

	if g.metrics.LatencyEnabled() {
		g.metrics.Observe(MetricVerifyLatency, time.Since(start))
	}

	switch result {
	case OTPValid:
		g.metrics.Inc(MetricOTPVerified)
	case OTPNotFound:
		g.metrics.Inc(MetricOTPNotFound)
	case OTPExpired:
		g.metrics.Inc(MetricOTPExpired)
	case OTPIPMismatch:
		g.metrics.Inc(MetricOTPIPMismatch)
	case OTPIncorrect:
		g.metrics.Inc(MetricOTPIncorrect)
	}

	eventType := auditEventOTPRejected
	reason := result.String()
	if result == OTPValid {
		eventType = auditEventOTPVerified
		reason = ""
	}
	g.emitAudit(ctx, eventType, result == OTPValid, ScopeAccount, key, ip, reason, func() map[string]string {
		md := map[string]string{"consume": strconv.FormatBool(consume)}
		if v.ID != "" {
			md["otp_id"] = v.ID
		}
		return md
	})

	return result
}

// PeekOTP returns the stored code's metadata without changing it. An expired
// code that was not swept yet is returned with zero Remaining.
func (g *Guard) PeekOTP(key string) (OTPInfo, bool) {
	if g == nil {
		return OTPInfo{}, false
	}
	return g.otp.Peek(key)
}

// IsOTPExpired reports true when key has no code or its code is past validity.
func (g *Guard) IsOTPExpired(key string) bool {
	if g == nil {
		return true
	}
	return g.otp.IsExpired(key)
}

// ConsumeOTP deletes the code for key and reports whether one existed.
func (g *Guard) ConsumeOTP(ctx context.Context, key string) bool {
	if g == nil {
		return false
	}

	id, ok := g.otp.Consume(key)
	if !ok {
		return false
	}

	g.metrics.Inc(MetricOTPConsumed)
	g.emitAudit(ctx, auditEventOTPConsumed, true, ScopeAccount, key, "", "", func() map[string]string {
		return map[string]string{"otp_id": id}
	})
	return true
}

// PurgeExpiredOTPs removes every code past validity and returns the count.
func (g *Guard) PurgeExpiredOTPs() int {
	if g == nil {
		return 0
	}
	n := g.otp.PurgeExpired()
	g.metrics.Add(MetricOTPPurged, uint64(n))
	return n
}
