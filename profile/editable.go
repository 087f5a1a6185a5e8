// Package profile implements the profile composition and build pipeline.
// This file contains the EditableProfile type, the mutable working state
// of a profile under edit.
package profile

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Attributes are the profile-level flags of a profile.
type Attributes struct {
	// ID is the profile identifier. Assigned on first build when zero.
	ID uuid.UUID
	// Name is the display name of the profile.
	Name string
	// AvailableForTV marks the profile as usable on TV devices.
	AvailableForTV bool
	// LastUpdate is when the profile was last built and persisted.
	LastUpdate time.Time
}

// EditableProfile is the mutable aggregate of a profile under edit: an
// ordered module sequence, the set of active module identifiers, and the
// profile-level attributes.
//
// The editable state is intentionally allowed to be transiently invalid
// to support fluid editing. All mutations are total; invariants are
// enforced by Build only.
type EditableProfile struct {
	// Modules is the ordered module sequence. Order is user-significant
	// and affects build precedence.
	Modules []Module
	// ActiveModuleIDs is the set of currently enabled module identifiers.
	ActiveModuleIDs map[uuid.UUID]struct{}
	// Attributes are the profile-level flags.
	Attributes Attributes
}

// NewEditableProfile returns an empty editable profile with the given name.
func NewEditableProfile(name string) EditableProfile {
	return EditableProfile{
		ActiveModuleIDs: map[uuid.UUID]struct{}{},
		Attributes:      Attributes{Name: name},
	}
}

// IsActive reports whether the module with the given id is enabled.
func (p *EditableProfile) IsActive(id uuid.UUID) bool {
	_, ok := p.ActiveModuleIDs[id]
	return ok
}

// SetActive marks the module with the given id as enabled. It does not
// validate the singleton-kind invariant; that is Build's job.
func (p *EditableProfile) SetActive(id uuid.UUID) {
	if p.ActiveModuleIDs == nil {
		p.ActiveModuleIDs = map[uuid.UUID]struct{}{}
	}
	p.ActiveModuleIDs[id] = struct{}{}
}

// SetInactive marks the module with the given id as disabled.
func (p *EditableProfile) SetInactive(id uuid.UUID) {
	delete(p.ActiveModuleIDs, id)
}

// IndexOfModule returns the position of the module with the given id,
// or -1 if absent.
func (p *EditableProfile) IndexOfModule(id uuid.UUID) int {
	for i, m := range p.Modules {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// MoveModules reorders the module sequence, moving the modules at the
// given offsets in front of the element currently at the to offset.
// The set of contained modules is preserved exactly. Out-of-range
// offsets are ignored.
func (p *EditableProfile) MoveModules(from []int, to int) {
	if len(from) == 0 {
		return
	}

	offsets := make([]int, 0, len(from))
	seen := make(map[int]bool, len(from))
	for _, i := range from {
		if i < 0 || i >= len(p.Modules) || seen[i] {
			continue
		}
		seen[i] = true
		offsets = append(offsets, i)
	}
	if len(offsets) == 0 {
		return
	}
	sort.Ints(offsets)

	if to < 0 {
		to = 0
	}
	if to > len(p.Modules) {
		to = len(p.Modules)
	}

	moved := make([]Module, 0, len(offsets))
	for _, i := range offsets {
		moved = append(moved, p.Modules[i])
	}

	// Insertion point shifts left by the number of moved elements that
	// precede it in the original order.
	insert := to
	for _, i := range offsets {
		if i < to {
			insert--
		}
	}

	rest := make([]Module, 0, len(p.Modules)-len(offsets))
	for i, m := range p.Modules {
		if !seen[i] {
			rest = append(rest, m)
		}
	}

	out := make([]Module, 0, len(p.Modules))
	out = append(out, rest[:insert]...)
	out = append(out, moved...)
	out = append(out, rest[insert:]...)
	p.Modules = out
}

// RemoveModuleAt removes the module at the given index from the sequence
// and from the active set, returning the removed module so that the
// caller can tombstone it.
func (p *EditableProfile) RemoveModuleAt(index int) Module {
	m := p.Modules[index]
	p.Modules = append(p.Modules[:index], p.Modules[index+1:]...)
	p.SetInactive(m.ID)
	return m
}

// RemoveModule removes the module with the given id. Returns the removed
// module and true, or the zero module and false if absent.
func (p *EditableProfile) RemoveModule(id uuid.UUID) (Module, bool) {
	index := p.IndexOfModule(id)
	if index < 0 {
		return Module{}, false
	}
	return p.RemoveModuleAt(index), true
}

// InsertOrReplace upserts the module by identifier: an existing module
// with the same id is replaced in place, preserving its position;
// otherwise the module is appended. With activate set, the module is
// additionally marked active.
func (p *EditableProfile) InsertOrReplace(m Module, activate bool) {
	if index := p.IndexOfModule(m.ID); index >= 0 {
		p.Modules[index] = m
	} else {
		p.Modules = append(p.Modules, m)
	}
	if activate {
		p.SetActive(m.ID)
	}
}

// ModuleKinds returns the kinds of the contained modules in order.
func (p *EditableProfile) ModuleKinds() []Kind {
	kinds := make([]Kind, len(p.Modules))
	for i, m := range p.Modules {
		kinds[i] = m.Kind
	}
	return kinds
}

// Clone returns a deep copy of the editable profile.
func (p *EditableProfile) Clone() EditableProfile {
	out := EditableProfile{
		Attributes:      p.Attributes,
		ActiveModuleIDs: make(map[uuid.UUID]struct{}, len(p.ActiveModuleIDs)),
	}
	if p.Modules != nil {
		out.Modules = make([]Module, len(p.Modules))
		for i, m := range p.Modules {
			out.Modules[i] = m.Clone()
		}
	}
	for id := range p.ActiveModuleIDs {
		out.ActiveModuleIDs[id] = struct{}{}
	}
	return out
}
