package security

import "time"

// Warning is one configuration choice that weakens the guard.
type Warning struct {
	Code    string
	Message string
}

// Warnings is an ordered list of findings.
type Warnings []Warning

// Codes returns the warning codes in order.
func (ws Warnings) Codes() []string {
	codes := make([]string, 0, len(ws))
	for _, w := range ws {
		codes = append(codes, w.Code)
	}
	return codes
}

// Has reports whether code is among the warnings.
func (ws Warnings) Has(code string) bool {
	for _, w := range ws {
		if w.Code == code {
			return true
		}
	}
	return false
}

const (
	CodeForwardedHeaderTrusted = "forwarded_header_trusted"
	CodeAccountLimitDisabled   = "account_limit_disabled"
	CodeWeakCodeSource         = "weak_code_source"
	CodeShortCode              = "short_code"
	CodeLongOTPValidity        = "long_otp_validity"
	CodeShortBlock             = "short_block"
	CodeLooseAttemptLimit      = "loose_attempt_limit"
	CodeRetentionBelowBlock    = "retention_below_block"
	CodeAuditDisabled          = "audit_disabled"
	CodeNoVerifyCap            = "no_verify_attempt_cap"
)

const (
	longOTPValidity   = 30 * time.Minute
	shortBlock        = time.Minute
	looseAttemptLimit = 10
	shortCodeDigits   = 6
)

type Report struct {
	AccountLimiting        bool
	ForwardedHeaderTrusted bool
	MaxAttempts            int
	BlockDuration          time.Duration
	RetentionWindow        time.Duration
	CodeLength             int
	OTPValidity            time.Duration
	CustomCodeSource       bool
	AuditEnabled           bool
	MetricsEnabled         bool
	Warnings               Warnings
}

type ReportInput struct {
	AccountLimiting        bool
	ForwardedHeaderTrusted bool
	MaxAttempts            int
	BlockDuration          time.Duration
	RetentionWindow        time.Duration
	CodeLength             int
	OTPValidity            time.Duration
	CustomCodeSource       bool
	AuditEnabled           bool
	MetricsEnabled         bool
}

// BuildReport copies the posture fields and derives the warnings.
func BuildReport(input ReportInput) Report {
	return Report{
		AccountLimiting:        input.AccountLimiting,
		ForwardedHeaderTrusted: input.ForwardedHeaderTrusted,
		MaxAttempts:            input.MaxAttempts,
		BlockDuration:          input.BlockDuration,
		RetentionWindow:        input.RetentionWindow,
		CodeLength:             input.CodeLength,
		OTPValidity:            input.OTPValidity,
		CustomCodeSource:       input.CustomCodeSource,
		AuditEnabled:           input.AuditEnabled,
		MetricsEnabled:         input.MetricsEnabled,
		Warnings:               Lint(input),
	}
}

// Lint lists the findings for input. The order is stable.
func Lint(input ReportInput) Warnings {
	var ws Warnings
	add := func(code, msg string) {
		ws = append(ws, Warning{Code: code, Message: msg})
	}

	if input.ForwardedHeaderTrusted {
		add(CodeForwardedHeaderTrusted, "client identity is taken from a request header any client can set")
	}
	if !input.AccountLimiting {
		add(CodeAccountLimitDisabled, "failed logins are throttled per IP only; distributed guessing against one account is not limited")
	}
	if !input.CustomCodeSource {
		add(CodeWeakCodeSource, "OTP codes come from a non-cryptographic generator")
	}
	if input.CodeLength < shortCodeDigits {
		add(CodeShortCode, "OTP codes shorter than 6 digits are easy to guess")
	}
	if input.OTPValidity > longOTPValidity {
		add(CodeLongOTPValidity, "OTP codes stay valid for more than 30 minutes")
	}
	if input.BlockDuration < shortBlock {
		add(CodeShortBlock, "blocks shorter than a minute barely slow down guessing")
	}
	if input.MaxAttempts > looseAttemptLimit {
		add(CodeLooseAttemptLimit, "more than 10 failures are allowed before a block")
	}
	if input.RetentionWindow < input.BlockDuration {
		add(CodeRetentionBelowBlock, "history retention is shorter than the block duration")
	}
	if !input.AuditEnabled {
		add(CodeAuditDisabled, "blocks and OTP rejections are not audited")
	}
	add(CodeNoVerifyCap, "wrong OTP guesses are not capped per code; throttle verification with the attempt limiter")

	return ws
}
