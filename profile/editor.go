// Package profile implements the profile composition and build pipeline.
// This file contains the Editor type, the session-scoped controller
// wrapping one EditableProfile.
package profile

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/yllada/vpn-composer/common"
)

// ModulePreferences is the per-module preferences record, loaded and
// saved through the external preferences store. It is opaque to the
// build pipeline.
type ModulePreferences struct {
	// ExcludedEndpoints lists remote endpoints the user opted out of.
	ExcludedEndpoints []string `yaml:"excluded_endpoints,omitempty"`
	// FavoriteServerIDs lists provider server ids marked as favorites.
	FavoriteServerIDs []string `yaml:"favorite_server_ids,omitempty"`
}

// ProfileStore is the external profile persistence collaborator.
type ProfileStore interface {
	// Save persists a built profile. isLocal tags the origin of the
	// profile, remotelyShared marks it for remote sharing.
	Save(ctx context.Context, p *Profile, isLocal, remotelyShared bool) error
}

// PreferencesStore is the external preferences persistence collaborator.
// Preferences are non-critical: the editor absorbs load failures and, on
// save, tolerates a preferences failure after a successful profile save.
type PreferencesStore interface {
	// LoadPreferences returns the module preferences for a profile.
	LoadPreferences(profileID uuid.UUID) (map[uuid.UUID]ModulePreferences, error)
	// SavePreferences persists the module preferences for a profile.
	SavePreferences(profileID uuid.UUID, prefs map[uuid.UUID]ModulePreferences) error
}

// Editor is the session-scoped controller for editing one profile.
//
// It wraps an EditableProfile, keeps tombstones for removed modules so
// their last edited value stays recoverable until the next successful
// build, and concentrates all failure in Build and Save: every other
// operation is total.
//
// An Editor is confined to a single owner and must not be mutated
// concurrently.
type Editor struct {
	profile EditableProfile

	// Shared marks the profile for remote sharing. Independent of the
	// module contents.
	Shared bool

	preferences map[uuid.UUID]ModulePreferences
	removed     map[uuid.UUID]Module

	logger   common.Logger
	onChange func()
}

// NewEditor creates an editor over an empty profile.
func NewEditor(logger common.Logger) *Editor {
	return NewEditorWithModules(nil, logger)
}

// NewEditorWithProfile creates an editor seeded from a built profile.
func NewEditorWithProfile(p *Profile, logger common.Logger) *Editor {
	e := NewEditor(logger)
	e.profile = p.Editable()
	return e
}

// NewEditorWithModules creates an editor over the given modules, all
// active. Intended for tests and previews.
func NewEditorWithModules(modules []Module, logger common.Logger) *Editor {
	if logger == nil {
		logger = common.NopLogger
	}
	ep := NewEditableProfile("")
	for _, m := range modules {
		ep.InsertOrReplace(m, true)
	}
	return &Editor{
		profile:     ep,
		preferences: map[uuid.UUID]ModulePreferences{},
		removed:     map[uuid.UUID]Module{},
		logger:      logger,
	}
}

// SetOnChange registers the single state-change subscriber. The callback
// runs after every mutation performed through the editor.
func (e *Editor) SetOnChange(fn func()) {
	e.onChange = fn
}

func (e *Editor) notify() {
	if e.onChange != nil {
		e.onChange()
	}
}

// Profile exposes the editable state for attribute-level edits such as
// renaming or toggling TV availability.
func (e *Editor) Profile() *EditableProfile {
	return &e.profile
}

// ModuleKinds returns the kinds of the modules currently in the profile.
func (e *Editor) ModuleKinds() []Kind {
	return e.profile.ModuleKinds()
}

// AvailableKinds returns the module kinds the user may add next.
func (e *Editor) AvailableKinds() []Kind {
	return AvailableKinds(e.profile.ModuleKinds())
}

// Modules returns the ordered module sequence.
func (e *Editor) Modules() []Module {
	return e.profile.Modules
}

// ActiveModules returns the enabled modules in order.
func (e *Editor) ActiveModules() []Module {
	var out []Module
	for _, m := range e.profile.Modules {
		if e.profile.IsActive(m.ID) {
			out = append(out, m)
		}
	}
	return out
}

// Module returns the module with the given id, falling back to the
// tombstone store: a just-removed module stays inspectable until the
// next successful build or load.
func (e *Editor) Module(id uuid.UUID) (Module, bool) {
	if index := e.profile.IndexOfModule(id); index >= 0 {
		return e.profile.Modules[index], true
	}
	m, ok := e.removed[id]
	return m, ok
}

// IsActive reports whether the module with the given id is enabled.
func (e *Editor) IsActive(id uuid.UUID) bool {
	return e.profile.IsActive(id)
}

// ToggleModule flips the active state of the module with the given id.
// No-op if the id is neither in the profile nor tombstoned. Activation
// does not deactivate a conflicting exclusive module; Build surfaces the
// conflict instead.
func (e *Editor) ToggleModule(id uuid.UUID) {
	if _, ok := e.Module(id); !ok {
		return
	}
	if e.profile.IsActive(id) {
		e.profile.SetInactive(id)
	} else {
		e.profile.SetActive(id)
	}
	e.notify()
}

// MoveModules reorders the module sequence.
func (e *Editor) MoveModules(from []int, to int) {
	e.profile.MoveModules(from, to)
	e.notify()
}

// RemoveModules removes the modules at the given offsets, tombstoning
// each before removal so the last edited value stays recoverable.
func (e *Editor) RemoveModules(offsets []int) {
	// Descending order keeps the remaining offsets valid while removing.
	sorted := make([]int, len(offsets))
	copy(sorted, offsets)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	for _, i := range sorted {
		if i < 0 || i >= len(e.profile.Modules) {
			continue
		}
		m := e.profile.Modules[i]
		e.removed[m.ID] = m
		e.profile.RemoveModuleAt(i)
	}
	e.notify()
}

// RemoveModule removes the module with the given id, tombstoning it
// first. No-op if the id is not in the profile.
func (e *Editor) RemoveModule(id uuid.UUID) {
	index := e.profile.IndexOfModule(id)
	if index < 0 {
		return
	}
	m := e.profile.Modules[index]
	e.removed[m.ID] = m
	e.profile.RemoveModuleAt(index)
	e.notify()
}

// SaveModule upserts the module edited in a sub-editor: an existing id
// is updated in place preserving position, a new module is appended.
// With activating set, the module is marked active.
func (e *Editor) SaveModule(m Module, activating bool) {
	e.profile.InsertOrReplace(m, activating)
	e.notify()
}

// Preferences returns the preferences record for the module with the
// given id.
func (e *Editor) Preferences(moduleID uuid.UUID) ModulePreferences {
	return e.preferences[moduleID]
}

// SetPreferences replaces the preferences record for the module with the
// given id.
func (e *Editor) SetPreferences(moduleID uuid.UUID, prefs ModulePreferences) {
	e.preferences[moduleID] = prefs
	e.notify()
}

// Build validates the editable profile and returns the immutable
// artifact.
//
// On success the editable module sequence is replaced with the modules
// extracted back out of the built profile and the tombstones are
// cleared. On failure the error propagates unchanged and the editable
// state is left untouched, so the user keeps the invalid edit to fix it.
func (e *Editor) Build() (*Profile, error) {
	p, err := Build(&e.profile)
	if err != nil {
		return nil, err
	}

	e.profile.Attributes = p.Attributes()
	e.profile.Modules = p.Modules()
	e.removed = map[uuid.UUID]Module{}
	e.notify()
	return p, nil
}

// Load replaces the session state wholesale: the editable profile, the
// shared flag, and the preferences of the new profile. Tombstones are
// cleared. A preferences load failure is non-fatal: the editor falls
// back to empty preferences and logs the error.
func (e *Editor) Load(p EditableProfile, shared bool, prefs PreferencesStore) {
	e.profile = p
	if e.profile.ActiveModuleIDs == nil {
		e.profile.ActiveModuleIDs = map[uuid.UUID]struct{}{}
	}
	e.Shared = shared

	e.preferences = map[uuid.UUID]ModulePreferences{}
	if prefs != nil {
		loaded, err := prefs.LoadPreferences(p.Attributes.ID)
		if err != nil {
			e.logger.Error("Unable to load preferences for profile %s: %v", p.Attributes.ID, err)
		} else if loaded != nil {
			e.preferences = loaded
		}
	}

	e.removed = map[uuid.UUID]Module{}
	e.notify()
}

// Save builds the profile and persists it through the external stores.
//
// The in-memory build completes before any persistence call begins, so
// cancelling the context only affects whether persistence happened and
// never leaves the editable state half-updated. A preferences save
// failure after a successful profile save is logged and absorbed;
// profile persistence is authoritative, preferences are best-effort.
func (e *Editor) Save(ctx context.Context, profiles ProfileStore, prefs PreferencesStore) (*Profile, error) {
	p, err := e.Build()
	if err != nil {
		e.logger.Error("Unable to save edited profile: %v", err)
		return nil, err
	}

	if err := profiles.Save(ctx, p, true, e.Shared); err != nil {
		e.logger.Error("Unable to save edited profile: %v", err)
		return nil, err
	}

	if prefs != nil {
		if err := prefs.SavePreferences(p.ID(), e.preferences); err != nil {
			e.logger.Error("Unable to save preferences for profile %s: %v", p.ID(), err)
		}
	}
	return p, nil
}

// Discard is intentionally a no-op: a session is discarded by abandoning
// the Editor. Documented here to make explicit that no cleanup side
// effects are required.
func (e *Editor) Discard() {
}
