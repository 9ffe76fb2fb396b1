// Package keyed provides a lock-striped string-keyed map.
//
// Keys are hashed with xxhash onto a fixed set of shards, each guarded by its
// own mutex. A callback passed to [Map.Do] runs with the key's shard locked, so
// read-modify-write sequences on one key are atomic while unrelated keys
// proceed in parallel.
//
// # What this package must NOT do
//
//   - Hold a shard lock across caller I/O (callbacks must be short).
//   - Import goGuard or any sibling internal package.
package keyed
