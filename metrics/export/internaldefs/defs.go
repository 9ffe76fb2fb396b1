package internaldefs

import (
	goGuard "github.com/MrEthical07/goGuard"
)

// CounterDef binds a counter to its exported name.
type CounterDef struct {
	ID   goGuard.MetricID
	Name string
	Help string
}

// HistogramDef binds a latency histogram to its exported name.
type HistogramDef struct {
	ID   goGuard.MetricID
	Name string
	Help string
}

// AuditDroppedName is exported by every exporter next to the registry counters.
const (
	AuditDroppedName = "goguard_audit_dropped_total"
	AuditDroppedHelp = "Dropped audit events due to dispatcher backpressure."
)

var CounterDefs = []CounterDef{
	{ID: goGuard.MetricAttemptSuccess, Name: "goguard_attempt_success_total", Help: "Successful attempts recorded across scopes."},
	{ID: goGuard.MetricAttemptFailure, Name: "goguard_attempt_failure_total", Help: "Failed attempts recorded across scopes."},
	{ID: goGuard.MetricBlockImposed, Name: "goguard_block_imposed_total", Help: "Failures that imposed or renewed a block."},
	{ID: goGuard.MetricBlockedRejected, Name: "goguard_blocked_rejected_total", Help: "Login checks rejected by an active block."},
	{ID: goGuard.MetricOTPIssued, Name: "goguard_otp_issued_total", Help: "Issued one-time passcodes."},
	{ID: goGuard.MetricOTPIssueFailure, Name: "goguard_otp_issue_failure_total", Help: "Passcode issuances that failed in the code generator."},
	{ID: goGuard.MetricOTPVerified, Name: "goguard_otp_verified_total", Help: "Valid passcode verifications."},
	{ID: goGuard.MetricOTPNotFound, Name: "goguard_otp_not_found_total", Help: "Verifications for keys without a passcode."},
	{ID: goGuard.MetricOTPExpired, Name: "goguard_otp_expired_total", Help: "Verifications that found an expired passcode."},
	{ID: goGuard.MetricOTPIPMismatch, Name: "goguard_otp_ip_mismatch_total", Help: "Verifications from an IP other than the requester's."},
	{ID: goGuard.MetricOTPIncorrect, Name: "goguard_otp_incorrect_total", Help: "Verifications with a wrong code."},
	{ID: goGuard.MetricOTPConsumed, Name: "goguard_otp_consumed_total", Help: "Passcodes removed by explicit consume."},
	{ID: goGuard.MetricHistoryPurged, Name: "goguard_history_purged_total", Help: "History entries dropped by retention sweeps."},
	{ID: goGuard.MetricOTPPurged, Name: "goguard_otp_purged_total", Help: "Expired passcodes dropped by sweeps."},
}

var HistogramDefs = []HistogramDef{
	{ID: goGuard.MetricCheckLatency, Name: "goguard_check_latency_seconds", Help: "CheckLogin latency histogram."},
	{ID: goGuard.MetricVerifyLatency, Name: "goguard_verify_latency_seconds", Help: "VerifyOTP latency histogram."},
}

// HistogramBounds are the upper bounds, in seconds, of the registry buckets.
var HistogramBounds = []string{
	"0.00001",
	"0.000025",
	"0.00005",
	"0.0001",
	"0.00025",
	"0.0005",
	"0.001",
	"+Inf",
}

// HistogramBoundSuffix names each bucket in instrument names that cannot
// carry labels.
var HistogramBoundSuffix = []string{
	"10us",
	"25us",
	"50us",
	"100us",
	"250us",
	"500us",
	"1ms",
	"inf",
}

// NormalizeBuckets copies raw into a fixed array, zero-filling short input.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into running totals.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
