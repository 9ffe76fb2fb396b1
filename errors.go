package goGuard

import "errors"

var (
	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrBuilderUsed is returned when Build is called twice on the same Builder.
	ErrBuilderUsed = errors.New("builder already used")
	// ErrGuardNotReady is returned by operations invoked on a nil or closed Guard.
	ErrGuardNotReady = errors.New("guard not ready")
	// ErrOTPGeneration is returned when the code generator fails or yields a
	// code that is not CodeLength digits.
	ErrOTPGeneration = errors.New("otp generation failed")
)
