package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	goGuard "github.com/MrEthical07/goGuard"
)

func main() {
	var (
		keys        = flag.Int("keys", 10000, "number of distinct identity keys")
		perKey      = flag.Int("attempts", 8, "failed attempts recorded per key")
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		ops         = flag.Int("ops", 200000, "login checks in the check phase")
		configPath  = flag.String("config", "", "optional YAML config file")
	)
	flag.Parse()

	if *keys <= 0 || *perKey <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "keys, attempts, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	cfg := goGuard.DefaultConfig()
	if *configPath != "" {
		loaded, err := goGuard.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	cfg.Metrics.Enabled = true
	cfg.Metrics.EnableLatencyHistograms = true

	guard, err := goGuard.New().WithConfig(cfg).Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "guard build: %v\n", err)
		os.Exit(1)
	}
	defer guard.Close()

	ctx := context.Background()
	names := make([]string, *keys)
	for i := range names {
		names[i] = fmt.Sprintf("user-%d", i)
	}

	recordStats, blocked := runRecordPhase(ctx, guard, names, *perKey, *concurrency)
	checkStats := runCheckPhase(ctx, guard, names, *ops, *concurrency)
	otpStats, winners := runOTPPhase(ctx, guard, names, *concurrency)

	fmt.Println("---- results ----")
	printStats("record", recordStats)
	printStats("check", checkStats)
	printStats("otp-verify", otpStats)

	ok := true
	wantBlocked := int64(0)
	if *perKey >= cfg.Limiter.MaxAttempts {
		wantBlocked = int64(*keys) * int64(*perKey-cfg.Limiter.MaxAttempts+1)
	}
	if blocked != wantBlocked {
		fmt.Printf("FAIL blocked outcomes: got %d want %d\n", blocked, wantBlocked)
		ok = false
	}
	if winners != int64(*keys) {
		fmt.Printf("FAIL otp winners: got %d want %d\n", winners, *keys)
		ok = false
	}
	if !ok {
		os.Exit(1)
	}
	fmt.Println("invariants held")
}

// runRecordPhase records perKey failures for every key from many workers.
// Every failure at or past the threshold must report Blocked exactly once.
func runRecordPhase(ctx context.Context, guard *goGuard.Guard, names []string, perKey, concurrency int) (phaseStats, int64) {
	total := len(names) * perKey
	var (
		wg        sync.WaitGroup
		cursor    int64
		blocked   int64
		latencies = make([]time.Duration, 0, total)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= total {
					return
				}
				key := names[i%len(names)]
				t0 := time.Now()
				out := guard.RecordAttempt(ctx, goGuard.ScopeAccount, key, false)
				d := time.Since(t0)
				if out == goGuard.AttemptBlocked {
					atomic.AddInt64(&blocked, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return computeStats(time.Since(start), latencies, 0), blocked
}

func runCheckPhase(ctx context.Context, guard *goGuard.Guard, names []string, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(worker)*7919))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				key := names[r.IntN(len(names))]
				ip := fmt.Sprintf("10.%d.%d.%d", worker%256, i%256, r.IntN(256))
				t0 := time.Now()
				_ = guard.CheckLogin(ctx, ip, key)
				d := time.Since(t0)
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	return computeStats(time.Since(start), latencies, 0)
}

// runOTPPhase issues one code per key, then races two consuming verifies per
// key. Exactly one of each pair may succeed.
func runOTPPhase(ctx context.Context, guard *goGuard.Guard, names []string, concurrency int) (phaseStats, int64) {
	codes := make([]string, len(names))
	for i, key := range names {
		issued, err := guard.IssueOTP(ctx, key, "10.0.0.1")
		if err != nil {
			fmt.Fprintf(os.Stderr, "issue failed: %v\n", err)
			os.Exit(1)
		}
		codes[i] = issued.Code
	}

	total := len(names) * 2
	var (
		wg        sync.WaitGroup
		cursor    int64
		winners   int64
		failures  int64
		latencies = make([]time.Duration, 0, total)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= total {
					return
				}
				idx := i % len(names)
				t0 := time.Now()
				res := guard.VerifyOTP(ctx, names[idx], codes[idx], "10.0.0.1", true)
				d := time.Since(t0)
				switch res {
				case goGuard.OTPValid:
					atomic.AddInt64(&winners, 1)
				case goGuard.OTPNotFound:
				default:
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return computeStats(time.Since(start), latencies, failures), winners
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
