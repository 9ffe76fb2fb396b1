// Package goGuard throttles repeated authentication attempts and gates
// password resets behind short one-time passcodes.
//
// A [Guard] owns two attempt limiters (one per [Scope]: client IP and account)
// and one OTP issuer. Build it once with [Builder.Build] and share it between
// handlers; every method is safe for concurrent use.
//
// # Architecture boundaries
//
// goGuard is the public surface. It exposes [Guard], [Builder], [Config] and
// value types (LoginCheck, OTPResult, MetricsSnapshot). Storage striping,
// history buffers, code storage and audit dispatch live under internal/.
//
// All state is in process memory. Nothing is shared between processes and
// nothing survives a restart.
//
// # Known weaknesses
//
// These are policy, not bugs, and are documented so hosts can harden around
// them:
//
//   - With Identity.TrustForwardedHeader the client identity is read from a
//     header the client controls.
//   - OTP verification has no attempt cap; a 4-digit code can be brute
//     forced unless the host throttles VerifyOTP callers with RecordAttempt.
//   - Default codes come from math/rand/v2. Use [Builder.WithCodeGenerator]
//     for a cryptographic source.
//
// [Config.Lint] and [Guard.SecurityReport] list which of these apply to a
// given configuration.
//
// # What this package must NOT do
//
//   - Start goroutines other than the audit dispatcher. Sweeps run through
//     [Guard.Maintain] or [Guard.RunMaintenance] on the host's schedule.
//   - Perform I/O inside a per-key critical section.
//   - Put OTP codes in audit events or logs.
package goGuard
