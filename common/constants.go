// Package common provides shared constants, types, and utilities
// used across the VPN Composer application.
package common

import "time"

// Application metadata.
const (
	// AppName is the display name of the application.
	AppName = "VPN Composer"
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = "vpn-composer"
)

// File names used by the application.
const (
	ProfilesDBFileName  = "profiles.db"
	ConfigFileName      = "config.yaml"
	PreferencesDirName  = "preferences"
	CredentialsFileName = ".credentials"
	LogFileName         = "vpn-composer.log"
)

// Default timeouts for external collaborators.
const (
	// SaveTimeout is the maximum time to wait for a profile save.
	SaveTimeout = 10 * time.Second
	// QueryTimeout is the maximum time to wait for a server dataset query.
	QueryTimeout = 15 * time.Second
)
