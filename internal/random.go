package internal

import (
	"errors"
	"math/rand/v2"
	"strings"
)

const (
	MinOTPDigits = 4
	MaxOTPDigits = 10
)

// NewOTP returns a string of uniformly drawn decimal digits.
//
// The source is math/rand/v2, which is not cryptographically secure. Codes are
// short-lived confirmation values here, not secrets; hosts that need
// unpredictable codes inject their own generator.
func NewOTP(digits int) (string, error) {
	if digits < MinOTPDigits || digits > MaxOTPDigits {
		return "", errors.New("invalid otp digits")
	}

	var b strings.Builder
	b.Grow(digits)
	for i := 0; i < digits; i++ {
		b.WriteByte(byte('0' + rand.IntN(10)))
	}
	return b.String(), nil
}

// IsDigits reports whether s is non-empty and made only of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
