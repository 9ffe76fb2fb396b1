// Package limiters tracks authentication attempts per identity key and decides
// when a key is blocked.
//
// # Model
//
// Each key keeps the most recent attempts in a fixed-capacity ring, oldest
// first. Recording a failure counts the failures still in the ring; reaching
// the threshold stamps a block on the key. A block lasts its full duration
// regardless of later successes and is only cleared when a query finds it
// expired. [AttemptLimiter.PurgeBefore] trims history for memory bounding and
// never touches blocks.
//
// All limiters are nil-safe: calling any method on a nil receiver reports an
// unknown, unblocked key.
//
// # What this package must NOT do
//
//   - Import goGuard or any sibling internal package except internal and internal/keyed.
//   - Start goroutines or timers; expiry is evaluated on access.
//   - Decide which keys to track (IP, account); that is the caller's policy.
package limiters
