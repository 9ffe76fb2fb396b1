package stores

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/MrEthical07/goGuard/internal"
	"github.com/MrEthical07/goGuard/internal/keyed"
	"github.com/google/uuid"
)

const (
	defaultOTPLength   = 4
	defaultOTPValidity = 20 * time.Minute
)

// VerifyResult is the outcome of a verification attempt.
type VerifyResult int

const (
	Valid VerifyResult = iota
	NotFound
	Expired
	IPMismatch
	Incorrect
)

func (r VerifyResult) String() string {
	switch r {
	case Valid:
		return "valid"
	case NotFound:
		return "not_found"
	case Expired:
		return "expired"
	case IPMismatch:
		return "ip_mismatch"
	case Incorrect:
		return "incorrect"
	default:
		return "unknown"
	}
}

// CodeGenerator produces codes of the requested number of digits.
type CodeGenerator interface {
	Generate(length int) (string, error)
}

// CodeGeneratorFunc adapts a function to [CodeGenerator].
type CodeGeneratorFunc func(length int) (string, error)

func (f CodeGeneratorFunc) Generate(length int) (string, error) {
	return f(length)
}

// MathRandGenerator is the default, non-cryptographic generator.
var MathRandGenerator CodeGenerator = CodeGeneratorFunc(internal.NewOTP)

// OTPConfig configures an [OTPStore]. Zero values fall back to 4 digits,
// a 20 minute validity window and [MathRandGenerator].
type OTPConfig struct {
	CodeLength int
	Validity   time.Duration
	Shards     int
	Generator  CodeGenerator
}

type otpRecord struct {
	id       string
	code     string
	issuedAt time.Time
	ip       string
}

// OTPInfo describes a stored record without revealing its code.
type OTPInfo struct {
	ID        string
	IP        string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Remaining time.Duration
}

// Expired reports whether the validity window had elapsed when the info was read.
func (i OTPInfo) Expired() bool {
	return i.Remaining <= 0
}

// Issued is returned by [OTPStore.Issue].
type Issued struct {
	ID        string
	Code      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Verification is returned by [OTPStore.Verify]. ID is the issuance that was
// evaluated and is empty for NotFound.
type Verification struct {
	Result VerifyResult
	ID     string
}

// OTPStore holds at most one live code per account key.
type OTPStore struct {
	config  OTPConfig
	clock   internal.Clock
	records *keyed.Map[otpRecord]
}

// NewOTPStore creates an in-memory OTP store reading time from clock.
func NewOTPStore(cfg OTPConfig, clock internal.Clock) *OTPStore {
	if cfg.CodeLength <= 0 {
		cfg.CodeLength = defaultOTPLength
	}
	if cfg.Validity <= 0 {
		cfg.Validity = defaultOTPValidity
	}
	if cfg.Generator == nil {
		cfg.Generator = MathRandGenerator
	}
	return &OTPStore{
		config:  cfg,
		clock:   internal.ClockOrSystem(clock),
		records: keyed.New[otpRecord](cfg.Shards),
	}
}

// Validity returns the configured validity window.
func (s *OTPStore) Validity() time.Duration {
	return s.config.Validity
}

func (s *OTPStore) expired(rec otpRecord, now time.Time) bool {
	return now.Sub(rec.issuedAt) >= s.config.Validity
}

func (s *OTPStore) info(rec otpRecord, now time.Time) OTPInfo {
	remaining := s.config.Validity - now.Sub(rec.issuedAt)
	if remaining < 0 {
		remaining = 0
	}
	return OTPInfo{
		ID:        rec.id,
		IP:        rec.ip,
		IssuedAt:  rec.issuedAt,
		ExpiresAt: rec.issuedAt.Add(s.config.Validity),
		Remaining: remaining,
	}
}

// Issue generates a fresh code bound to key and ip, replacing any previous
// record for key.
func (s *OTPStore) Issue(key, ip string) (Issued, error) {
	code, err := s.config.Generator.Generate(s.config.CodeLength)
	if err != nil {
		return Issued{}, fmt.Errorf("generate otp: %w", err)
	}
	if len(code) != s.config.CodeLength || !internal.IsDigits(code) {
		return Issued{}, fmt.Errorf("generate otp: got %d chars, want %d digits", len(code), s.config.CodeLength)
	}

	rec := otpRecord{
		id:       uuid.NewString(),
		code:     code,
		issuedAt: s.clock.Now(),
		ip:       ip,
	}
	s.records.Do(key, func(entries map[string]otpRecord) {
		entries[key] = rec
	})

	return Issued{
		ID:        rec.id,
		Code:      rec.code,
		IssuedAt:  rec.issuedAt,
		ExpiresAt: rec.issuedAt.Add(s.config.Validity),
	}, nil
}

// Verify checks code against the record for key. Only a Valid result with
// consume set, or an Expired result, changes state; failed guesses leave the
// record untouched.
func (s *OTPStore) Verify(key, code, ip string, consume bool) Verification {
	now := s.clock.Now()
	out := Verification{Result: NotFound}

	s.records.Do(key, func(entries map[string]otpRecord) {
		rec, ok := entries[key]
		if !ok {
			return
		}
		out.ID = rec.id

		switch {
		case s.expired(rec, now):
			delete(entries, key)
			out.Result = Expired
		case rec.ip != ip:
			out.Result = IPMismatch
		case subtle.ConstantTimeCompare([]byte(rec.code), []byte(code)) != 1:
			out.Result = Incorrect
		default:
			if consume {
				delete(entries, key)
			}
			out.Result = Valid
		}
	})

	return out
}

// Peek returns the record for key without mutating it. An expired record that
// has not been swept yet is reported with zero Remaining.
func (s *OTPStore) Peek(key string) (OTPInfo, bool) {
	now := s.clock.Now()
	var (
		info  OTPInfo
		found bool
	)
	s.records.Do(key, func(entries map[string]otpRecord) {
		rec, ok := entries[key]
		if !ok {
			return
		}
		info = s.info(rec, now)
		found = true
	})
	return info, found
}

// IsExpired reports true when key has no record or its window has elapsed.
func (s *OTPStore) IsExpired(key string) bool {
	info, ok := s.Peek(key)
	return !ok || info.Expired()
}

// Consume removes the record for key and returns its issuance ID, if any.
func (s *OTPStore) Consume(key string) (string, bool) {
	var (
		id      string
		removed bool
	)
	s.records.Do(key, func(entries map[string]otpRecord) {
		rec, ok := entries[key]
		if !ok {
			return
		}
		delete(entries, key)
		id = rec.id
		removed = true
	})
	return id, removed
}

// PurgeExpired removes every record whose validity window has elapsed and
// returns how many were removed.
func (s *OTPStore) PurgeExpired() int {
	now := s.clock.Now()
	removed := 0
	s.records.Range(func(entries map[string]otpRecord) {
		for key, rec := range entries {
			if s.expired(rec, now) {
				delete(entries, key)
				removed++
			}
		}
	})
	return removed
}

// Len returns the number of stored records, expired or not.
func (s *OTPStore) Len() int {
	return s.records.Len()
}
