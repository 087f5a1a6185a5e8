// Package common provides shared constants, types, and utilities
// used across the VPN Composer application.
package common

import "errors"

// Sentinel errors for profile and store operations.
// These can be checked with errors.Is() for proper error handling.
var (
	// Profile errors.
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidProfile  = errors.New("invalid profile")

	// Server dataset errors.
	ErrProviderNotFound = errors.New("provider not found")

	// Credential errors.
	ErrCredentialsNotFound = errors.New("credentials not found")
	ErrCredentialStorage   = errors.New("failed to store credentials")

	// Configuration errors.
	ErrConfigLoad = errors.New("failed to load configuration")
	ErrConfigSave = errors.New("failed to save configuration")

	// Preferences errors.
	ErrPreferencesLoad = errors.New("failed to load preferences")
	ErrPreferencesSave = errors.New("failed to save preferences")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
