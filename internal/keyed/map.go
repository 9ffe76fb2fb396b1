package keyed

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// DefaultShards is used when a non-positive shard count is requested.
const DefaultShards = 32

type shard[V any] struct {
	mu      sync.Mutex
	entries map[string]V
}

// Map is a string-keyed map split across independently locked shards.
type Map[V any] struct {
	shards []shard[V]
}

// New creates a Map with the given number of shards.
func New[V any](shards int) *Map[V] {
	if shards <= 0 {
		shards = DefaultShards
	}
	m := &Map[V]{shards: make([]shard[V], shards)}
	for i := range m.shards {
		m.shards[i].entries = make(map[string]V)
	}
	return m
}

func (m *Map[V]) shardFor(key string) *shard[V] {
	return &m.shards[xxhash.Sum64String(key)%uint64(len(m.shards))]
}

// Do runs fn with the shard owning key locked. fn may read, insert and delete
// any entry of that shard, but should only touch key.
func (m *Map[V]) Do(key string, fn func(entries map[string]V)) {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.entries)
}

// Range visits every shard in turn, each under its own lock. There is no
// global snapshot: entries may change in shards already visited.
func (m *Map[V]) Range(fn func(entries map[string]V)) {
	for i := range m.shards {
		s := &m.shards[i]
		s.mu.Lock()
		fn(s.entries)
		s.mu.Unlock()
	}
}

// Len returns the total number of entries across all shards.
func (m *Map[V]) Len() int {
	n := 0
	m.Range(func(entries map[string]V) {
		n += len(entries)
	})
	return n
}
