package goGuard

import (
	"context"
)

const (
	auditEventLoginBlocked    = "login_blocked"
	auditEventLoginSuccess    = "login_success"
	auditEventLoginFailure    = "login_failure"
	auditEventIdentityBlocked = "identity_blocked"
	auditEventOTPIssued       = "otp_issued"
	auditEventOTPVerified     = "otp_verified"
	auditEventOTPRejected     = "otp_rejected"
	auditEventOTPConsumed     = "otp_consumed"
	auditEventPurgeCompleted  = "purge_completed"
)

// Event types carried in [AuditEvent.EventType].
const (
	AuditLoginBlocked    = auditEventLoginBlocked
	AuditLoginSuccess    = auditEventLoginSuccess
	AuditLoginFailure    = auditEventLoginFailure
	AuditIdentityBlocked = auditEventIdentityBlocked
	AuditOTPIssued       = auditEventOTPIssued
	AuditOTPVerified     = auditEventOTPVerified
	AuditOTPRejected     = auditEventOTPRejected
	AuditOTPConsumed     = auditEventOTPConsumed
	AuditPurgeCompleted  = auditEventPurgeCompleted
)

func (g *Guard) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	scope Scope,
	identity string,
	ip string,
	reason string,
	metadataBuilder func() map[string]string,
) {
	if g == nil || g.audit == nil {
		return
	}
	if ip == "" {
		ip = ClientIPFromContext(ctx)
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	g.audit.Emit(ctx, AuditEvent{
		Timestamp: g.clock.Now().UTC(),
		EventType: eventType,
		Scope:     string(scope),
		Identity:  identity,
		IP:        ip,
		Success:   success,
		Reason:    reason,
		Metadata:  metadata,
	})
}

// identityFor returns the audit identity/IP pair for a scoped key.
func identityFor(scope Scope, key string) (identity, ip string) {
	if scope == ScopeIP {
		return "", key
	}
	return key, ""
}
