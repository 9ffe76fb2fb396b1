package keyed

import (
	"strconv"
	"sync"
	"testing"
)

func TestDoIsAtomicPerKey(t *testing.T) {
	m := New[int](4)

	const workers = 16
	const perWorker = 500

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				m.Do("counter", func(entries map[string]int) {
					entries["counter"]++
				})
			}
		}()
	}
	wg.Wait()

	var got int
	m.Do("counter", func(entries map[string]int) {
		got = entries["counter"]
	})
	if got != workers*perWorker {
		t.Fatalf("counter = %d, want %d", got, workers*perWorker)
	}
}

func TestRangeVisitsAllShards(t *testing.T) {
	m := New[string](8)
	for i := 0; i < 100; i++ {
		key := "k" + strconv.Itoa(i)
		m.Do(key, func(entries map[string]string) {
			entries[key] = key
		})
	}

	if got := m.Len(); got != 100 {
		t.Fatalf("Len() = %d, want 100", got)
	}

	m.Range(func(entries map[string]string) {
		for k := range entries {
			delete(entries, k)
		}
	})
	if got := m.Len(); got != 0 {
		t.Fatalf("Len() after clearing = %d, want 0", got)
	}
}

func TestNewDefaultsShardCount(t *testing.T) {
	m := New[int](0)
	if len(m.shards) != DefaultShards {
		t.Fatalf("shards = %d, want %d", len(m.shards), DefaultShards)
	}
}
