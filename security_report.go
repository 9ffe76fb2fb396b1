package goGuard

import "github.com/MrEthical07/goGuard/internal/security"

// SecurityWarning is one configuration choice that weakens the guard.
type SecurityWarning = security.Warning

// SecurityWarnings is the ordered list returned by [Config.Lint].
type SecurityWarnings = security.Warnings

// SecurityReport summarizes the hardening posture of a Guard.
type SecurityReport = security.Report

// Lint lists weakening choices in c. It assumes the default code source;
// [Guard.SecurityReport] knows whether a custom generator was installed.
func (c Config) Lint() SecurityWarnings {
	return security.Lint(c.reportInput(false))
}

// SecurityReport returns the posture of g together with its lint findings.
func (g *Guard) SecurityReport() SecurityReport {
	if g == nil {
		return SecurityReport{}
	}
	return security.BuildReport(g.config.reportInput(g.customCodes))
}

func (c Config) reportInput(customCodes bool) security.ReportInput {
	return security.ReportInput{
		AccountLimiting:        c.Limiter.Mode == ModeIPAndAccount,
		ForwardedHeaderTrusted: c.Identity.TrustForwardedHeader,
		MaxAttempts:            c.Limiter.MaxAttempts,
		BlockDuration:          c.Limiter.BlockDuration,
		RetentionWindow:        c.Limiter.RetentionWindow,
		CodeLength:             c.OTP.CodeLength,
		OTPValidity:            c.OTP.Validity,
		CustomCodeSource:       customCodes,
		AuditEnabled:           c.Audit.Enabled,
		MetricsEnabled:         c.Metrics.Enabled,
	}
}
