package goGuard

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func buildAuditTestGuard(t *testing.T, clock Clock, sink AuditSink, codes ...string) *Guard {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Audit.Enabled = true
	cfg.Audit.BufferSize = 64
	cfg.Audit.DropIfFull = false

	b := New().WithConfig(cfg).WithClock(clock).WithAuditSink(sink)
	if len(codes) > 0 {
		b = b.WithCodeGenerator(fixedCodes(codes...))
	}
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}

func eventTypes(events []AuditEvent) []string {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.EventType)
	}
	return out
}

func TestAuditLoginFlowEvents(t *testing.T) {
	sink := newCaptureSink(64)
	g := buildAuditTestGuard(t, newManualClock(), sink)
	ctx := WithClientIP(context.Background(), "10.0.0.5")

	for i := 0; i < 3; i++ {
		g.RecordLogin(ctx, LoginAttempt{IP: "10.0.0.5", Account: "bob", AccountExists: true})
	}
	g.CheckLogin(ctx, "10.0.0.5", "bob")
	g.Close()

	got := eventTypes(sink.drain())
	want := []string{
		AuditLoginFailure,
		AuditLoginFailure,
		AuditIdentityBlocked, // ip
		AuditIdentityBlocked, // account
		AuditLoginFailure,
		AuditLoginBlocked,
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected events:\n got  %v\n want %v", got, want)
	}
}

func TestAuditOTPEventsNeverCarryCode(t *testing.T) {
	sink := newCaptureSink(64)
	g := buildAuditTestGuard(t, newManualClock(), sink, "7319")
	ctx := context.Background()

	issued, err := g.IssueOTP(ctx, "alice@example.com", "10.0.0.5")
	if err != nil {
		t.Fatalf("IssueOTP failed: %v", err)
	}
	g.VerifyOTP(ctx, "alice@example.com", "0000", "10.0.0.5", true)
	g.VerifyOTP(ctx, "alice@example.com", issued.Code, "10.0.0.5", true)
	g.Close()

	events := sink.drain()
	got := eventTypes(events)
	want := []string{AuditOTPIssued, AuditOTPRejected, AuditOTPVerified}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected events: %v", got)
	}

	if events[1].Reason != "incorrect" {
		t.Fatalf("expected rejection reason, got %q", events[1].Reason)
	}
	for _, ev := range events {
		if ev.Metadata["otp_id"] != issued.ID {
			t.Fatalf("event %s not correlated to issuance: %v", ev.EventType, ev.Metadata)
		}
		if ev.Identity == issued.Code || ev.Reason == issued.Code {
			t.Fatalf("event %s leaks the code", ev.EventType)
		}
		for k, v := range ev.Metadata {
			if v == issued.Code {
				t.Fatalf("event %s leaks the code in %s", ev.EventType, k)
			}
		}
	}
}

func TestAuditDisabledEmitsNothing(t *testing.T) {
	sink := newCaptureSink(8)
	g, err := New().WithAuditSink(sink).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	g.RecordAttempt(context.Background(), ScopeIP, "10.0.0.5", false)
	g.Close()

	if n := len(sink.drain()); n != 0 {
		t.Fatalf("expected no events with audit disabled, got %d", n)
	}
}

func TestAuditJSONWriterSink(t *testing.T) {
	var buf bytes.Buffer
	g := buildAuditTestGuard(t, newManualClock(), NewJSONWriterSink(&buf))

	for i := 0; i < 3; i++ {
		g.RecordAttempt(context.Background(), ScopeIP, "10.0.0.5", false)
	}
	g.Close()

	var ev AuditEvent
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &ev); err != nil {
		t.Fatalf("expected one JSON event, got %q: %v", buf.String(), err)
	}
	if ev.EventType != AuditIdentityBlocked || ev.Scope != "ip" || ev.IP != "10.0.0.5" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.Metadata["block_seconds"] != "600" {
		t.Fatalf("unexpected metadata: %v", ev.Metadata)
	}
}
