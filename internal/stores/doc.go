// Package stores provides the in-memory one-time passcode store used by the
// password-reset flow.
//
// # Design
//
// One record per account key holds the code, its issue time and the IP that
// requested it. Issuing replaces any previous record. Verification checks, in
// order: presence, expiry, binding IP, code. Expired records are deleted the
// first time they are seen; [OTPStore.PurgeExpired] sweeps the rest on the
// host's schedule. Records live in a lock-striped map so that issue and
// consuming verification are atomic per key.
//
// # Known limitations
//
//   - Failed verifications are not counted; callers compose attempt limiting.
//   - The default generator draws from math/rand/v2, not a CSPRNG.
//
// # What this package must NOT do
//
//   - Import goGuard or any sibling internal package except internal and internal/keyed.
//   - Log or expose plaintext codes outside the Issue return value.
package stores
