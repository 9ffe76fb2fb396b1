package goGuard

import "github.com/MrEthical07/goGuard/internal/audit"

// AuditEvent is a structured record of a throttling or OTP decision.
type AuditEvent = audit.Event

// AuditSink receives audit events from the Guard's dispatcher goroutine.
type AuditSink = audit.Sink

type (
	NoOpSink       = audit.NoOpSink
	ChannelSink    = audit.ChannelSink
	JSONWriterSink = audit.JSONWriterSink
)

var (
	NewChannelSink    = audit.NewChannelSink
	NewJSONWriterSink = audit.NewJSONWriterSink
)
