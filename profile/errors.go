// Package profile implements the profile composition and build pipeline.
// This file defines the structured validation errors produced by Build.
package profile

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/yllada/vpn-composer/common"
)

// StructuralError reports a profile-level consistency violation, such as
// duplicate module identifiers or a missing required attribute.
type StructuralError struct {
	// Reason describes the violation.
	Reason string
	// ModuleID identifies the offending module, or uuid.Nil for
	// profile-level violations.
	ModuleID uuid.UUID
}

func (e *StructuralError) Error() string {
	if e.ModuleID == uuid.Nil {
		return "invalid profile: " + e.Reason
	}
	return fmt.Sprintf("invalid profile: module %s: %s", e.ModuleID, e.Reason)
}

// Is matches common.ErrInvalidProfile so callers can classify all
// validation failures with a single errors.Is check.
func (e *StructuralError) Is(target error) bool {
	return target == common.ErrInvalidProfile
}

// SingletonConflictError reports two active modules of an exclusive kind.
// It carries both conflicting module ids for UI surfacing.
type SingletonConflictError struct {
	// Kind is the exclusive kind of the later conflicting module.
	Kind Kind
	// FirstID is the module that was already active.
	FirstID uuid.UUID
	// SecondID is the module that conflicts with it.
	SecondID uuid.UUID
}

func (e *SingletonConflictError) Error() string {
	return fmt.Sprintf("invalid profile: only one %s module can be active (%s, %s)",
		e.Kind.DisplayName(), e.FirstID, e.SecondID)
}

func (e *SingletonConflictError) Is(target error) bool {
	return target == common.ErrInvalidProfile
}

// ModuleFieldError reports a kind-specific invalid field. It carries the
// module id and the violated field name.
type ModuleFieldError struct {
	ModuleID uuid.UUID
	Kind     Kind
	Field    string
	Reason   string
}

func (e *ModuleFieldError) Error() string {
	return fmt.Sprintf("invalid profile: %s module %s: %s: %s",
		e.Kind.DisplayName(), e.ModuleID, e.Field, e.Reason)
}

func (e *ModuleFieldError) Is(target error) bool {
	return target == common.ErrInvalidProfile
}
