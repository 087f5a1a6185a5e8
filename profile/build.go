// Package profile implements the profile composition and build pipeline.
// This file contains the build pipeline that collapses an EditableProfile
// into an immutable, validated Profile.
package profile

import (
	"strings"

	"github.com/google/uuid"
)

// Profile is the immutable build artifact: an ordered module sequence,
// the active-id set, and the profile attributes, validated as internally
// consistent. Created only by Build and never mutated afterwards;
// subsequent edits derive a fresh EditableProfile via Editable.
type Profile struct {
	attributes Attributes
	modules    []Module
	activeIDs  map[uuid.UUID]struct{}
}

// ID returns the profile identifier.
func (p *Profile) ID() uuid.UUID {
	return p.attributes.ID
}

// Name returns the profile display name.
func (p *Profile) Name() string {
	return p.attributes.Name
}

// Attributes returns the profile-level attributes.
func (p *Profile) Attributes() Attributes {
	return p.attributes
}

// Modules returns a deep copy of the ordered module sequence.
func (p *Profile) Modules() []Module {
	out := make([]Module, len(p.modules))
	for i, m := range p.modules {
		out[i] = m.Clone()
	}
	return out
}

// IsActive reports whether the module with the given id is enabled.
func (p *Profile) IsActive(id uuid.UUID) bool {
	_, ok := p.activeIDs[id]
	return ok
}

// ActiveModules returns deep copies of the enabled modules in order.
func (p *Profile) ActiveModules() []Module {
	var out []Module
	for _, m := range p.modules {
		if p.IsActive(m.ID) {
			out = append(out, m.Clone())
		}
	}
	return out
}

// Editable derives a fresh EditableProfile from the artifact.
func (p *Profile) Editable() EditableProfile {
	ep := EditableProfile{
		Attributes:      p.attributes,
		Modules:         p.Modules(),
		ActiveModuleIDs: make(map[uuid.UUID]struct{}, len(p.activeIDs)),
	}
	for id := range p.activeIDs {
		ep.ActiveModuleIDs[id] = struct{}{}
	}
	return ep
}

// Build validates the editable profile and produces the immutable
// artifact. The input is never mutated; on failure no partial Profile is
// returned.
//
// Checks run in order:
//  1. Structural: unique module ids, non-empty name, kind/config
//     consistency.
//  2. Singleton kind: at most one active connection module.
//  3. Per-module field validation, first failure wins, in module order.
//  4. Normalization: a zero profile id is assigned; module order and the
//     active-id set are preserved exactly.
func Build(ep *EditableProfile) (*Profile, error) {
	name := strings.TrimSpace(ep.Attributes.Name)
	if name == "" {
		return nil, &StructuralError{Reason: "profile name must not be empty"}
	}

	seen := make(map[uuid.UUID]bool, len(ep.Modules))
	for _, m := range ep.Modules {
		if m.ID == uuid.Nil {
			return nil, &StructuralError{Reason: "module id must not be zero"}
		}
		if seen[m.ID] {
			return nil, &StructuralError{ModuleID: m.ID, Reason: "duplicate module id"}
		}
		seen[m.ID] = true
		if !m.Kind.IsKnown() {
			return nil, &StructuralError{ModuleID: m.ID, Reason: "unknown module kind " + m.Kind.String()}
		}
		if !m.isConsistent() {
			return nil, &StructuralError{ModuleID: m.ID, Reason: "module config does not match kind " + m.Kind.String()}
		}
	}

	if err := checkSingletons(ep); err != nil {
		return nil, err
	}

	for _, m := range ep.Modules {
		if v := m.validateFields(); v != nil {
			return nil, &ModuleFieldError{
				ModuleID: m.ID,
				Kind:     m.Kind,
				Field:    v.Field,
				Reason:   v.Reason,
			}
		}
	}

	attrs := ep.Attributes
	attrs.Name = name
	if attrs.ID == uuid.Nil {
		attrs.ID = uuid.New()
	}

	p := &Profile{
		attributes: attrs,
		modules:    make([]Module, len(ep.Modules)),
		activeIDs:  make(map[uuid.UUID]struct{}, len(ep.ActiveModuleIDs)),
	}
	for i, m := range ep.Modules {
		p.modules[i] = m.Clone()
	}
	// Active ids referring to removed modules must not leak into the
	// artifact.
	for id := range ep.ActiveModuleIDs {
		if seen[id] {
			p.activeIDs[id] = struct{}{}
		}
	}
	return p, nil
}

// checkSingletons enforces the exclusive-kind invariant: among the active
// modules, at most one connection (tunnel protocol) module.
func checkSingletons(ep *EditableProfile) error {
	var activeConnection *Module
	for i, m := range ep.Modules {
		if !m.Kind.IsConnection() || !ep.IsActive(m.ID) {
			continue
		}
		if activeConnection != nil {
			return &SingletonConflictError{
				Kind:     m.Kind,
				FirstID:  activeConnection.ID,
				SecondID: m.ID,
			}
		}
		activeConnection = &ep.Modules[i]
	}
	return nil
}
