package goGuard

import (
	"testing"
	"time"
)

func TestLint_DefaultConfig(t *testing.T) {
	ws := defaultConfig().Lint()

	// Defaults are convenient, not hardened: short codes, no audit and the
	// built-in generator are all flagged.
	for _, code := range []string{"weak_code_source", "short_code", "audit_disabled", "no_verify_attempt_cap"} {
		if !ws.Has(code) {
			t.Errorf("default config should warn %q, got %v", code, ws.Codes())
		}
	}
	for _, code := range []string{"forwarded_header_trusted", "account_limit_disabled", "short_block", "retention_below_block"} {
		if ws.Has(code) {
			t.Errorf("default config should not warn %q", code)
		}
	}
}

func TestLint_ForwardedHeaderTrusted(t *testing.T) {
	cfg := defaultConfig()
	cfg.Identity.TrustForwardedHeader = true
	if !cfg.Lint().Has("forwarded_header_trusted") {
		t.Fatal("expected forwarded_header_trusted warning")
	}
}

func TestLint_IPOnlyMode(t *testing.T) {
	cfg := defaultConfig()
	cfg.Limiter.Mode = ModeIPOnly
	if !cfg.Lint().Has("account_limit_disabled") {
		t.Fatal("expected account_limit_disabled warning")
	}
}

func TestLint_Thresholds(t *testing.T) {
	cfg := defaultConfig()
	cfg.Limiter.MaxAttempts = 20
	cfg.Limiter.HistorySize = 20
	cfg.Limiter.BlockDuration = 30 * time.Second
	cfg.OTP.Validity = 2 * time.Hour
	ws := cfg.Lint()

	for _, code := range []string{"loose_attempt_limit", "short_block", "long_otp_validity"} {
		if !ws.Has(code) {
			t.Errorf("expected %q, got %v", code, ws.Codes())
		}
	}
}

func TestLint_RetentionBelowBlock(t *testing.T) {
	cfg := defaultConfig()
	cfg.Limiter.RetentionWindow = time.Minute
	if !cfg.Lint().Has("retention_below_block") {
		t.Fatal("expected retention_below_block warning")
	}
}

func TestLint_OrderIsStable(t *testing.T) {
	cfg := defaultConfig()
	a := cfg.Lint().Codes()
	b := cfg.Lint().Codes()
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("order differs at %d: %v vs %v", i, a, b)
		}
	}
	if a[len(a)-1] != "no_verify_attempt_cap" {
		t.Fatalf("expected no_verify_attempt_cap last, got %v", a)
	}
}

func TestSecurityReport_CustomGenerator(t *testing.T) {
	guard, err := New().WithCodeGenerator(fixedCodes("123456")).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer guard.Close()

	rep := guard.SecurityReport()
	if !rep.CustomCodeSource {
		t.Fatal("expected CustomCodeSource")
	}
	if rep.Warnings.Has("weak_code_source") {
		t.Fatal("custom generator should clear weak_code_source")
	}
	if !rep.AccountLimiting {
		t.Fatal("default mode limits accounts")
	}
	if rep.MaxAttempts != 3 || rep.BlockDuration != 10*time.Minute {
		t.Fatalf("unexpected thresholds: %d %v", rep.MaxAttempts, rep.BlockDuration)
	}
}

func TestSecurityReport_NilGuard(t *testing.T) {
	var g *Guard
	rep := g.SecurityReport()
	if len(rep.Warnings) != 0 || rep.MaxAttempts != 0 {
		t.Fatalf("expected zero report, got %+v", rep)
	}
}
