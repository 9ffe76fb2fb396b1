// Package middleware exposes net/http adapters around a goGuard.Guard.
//
//   - [ClientIP] resolves the caller identity once and stores it in the
//     request context.
//   - [RejectBlocked] and [RejectBlockedAccount] answer 429 Too Many Requests
//     with Retry-After while a block is active.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Guard calls. Every throttling
// decision is delegated to Guard.CheckLogin.
//
// # What this package must NOT do
//
//   - Record attempts. Only the handler knows whether credentials matched.
//   - Verify or consume OTP codes.
package middleware
