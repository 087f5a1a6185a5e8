// Package common provides shared constants, types, and utilities
// used across the VPN Composer application.
package common

// Logger defines the interface for structured logging.
// The core never fails because a logger is missing; callers that have no
// logger should pass NopLogger.
type Logger interface {
	// Debug logs a debug message.
	Debug(msg string, args ...interface{})
	// Info logs an informational message.
	Info(msg string, args ...interface{})
	// Warn logs a warning message.
	Warn(msg string, args ...interface{})
	// Error logs an error message.
	Error(msg string, args ...interface{})
}

// NopLogger is a Logger that discards everything.
var NopLogger Logger = nopLogger{}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// CredentialStore defines the interface for credential storage.
// Implementations may use the system keyring, encrypted files, etc.
// Keys are scoped by profile and module so that two tunnel modules of the
// same profile can hold independent secrets.
type CredentialStore interface {
	// Store saves a secret for a module of a profile.
	Store(profileID, moduleID, secret string) error
	// Get retrieves the secret for a module of a profile.
	Get(profileID, moduleID string) (string, error)
	// Delete removes the secret for a module of a profile.
	Delete(profileID, moduleID string) error
}
