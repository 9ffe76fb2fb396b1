// Package security derives a hardening report from guard configuration.
//
// The report restates the posture (scopes, thresholds, code source) and
// lists the choices that weaken it. It never fails a build; [Config.Validate]
// in the root package owns hard errors.
//
// # What this package must NOT do
//
//   - Import the root package.
//   - Read live limiter or OTP state.
package security
