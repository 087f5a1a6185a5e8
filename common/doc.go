// Package common provides shared constants, types, utilities, and interfaces
// used throughout the VPN Composer application.
//
// This package serves as the foundation for cross-cutting concerns:
//
//   - Constants: Application-wide constants like timeouts and file names
//   - Errors: Sentinel errors for consistent error handling across packages
//   - Interfaces: Abstractions for logging and credential storage
//   - Logger: Structured logging with multiple output destinations
//   - Utils: Common utility functions for file and directory handling
//
// # Usage
//
// Import the package to access shared functionality:
//
//	import "github.com/yllada/vpn-composer/common"
//
//	// Use logger
//	common.LogInfo("Building profile %s", profileName)
//
//	// Check errors
//	if errors.Is(err, common.ErrProfileNotFound) {
//	    // Handle missing profile
//	}
//
// # Design Principles
//
// This package follows several design principles:
//
//   - Single Responsibility: Each file handles one concern
//   - Interface Segregation: Small, focused interfaces
//   - Dependency Inversion: High-level packages depend on abstractions
package common
