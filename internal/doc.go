// Package internal contains helper utilities that are intentionally private to goGuard:
// the shared clock abstraction, client identity resolution and OTP code generation.
//
// # Sub-packages
//
//   - audit: async event dispatch (Dispatcher + Sink implementations)
//   - keyed: lock-striped maps shared by the limiter and the OTP store
//   - limiters: per-key attempt history, blocking and retention sweeps
//   - stores: in-memory OTP records with bind/verify/consume semantics
//   - security: hardening report and config lint
//
// # What this package must NOT do
//
//   - Import the root goGuard package.
//   - Be imported by any package outside the goGuard module.
package internal
