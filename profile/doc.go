// Package profile implements the profile composition and build pipeline
// for VPN Composer.
//
// A profile is assembled out of independently pluggable configuration units
// called modules (DNS, HTTP proxy, IP routing, on-demand rules, tunnel
// protocols). The package is organized around four types:
//
//   - Module: a polymorphic configuration unit of one fixed kind
//   - EditableProfile: the mutable, possibly transiently-invalid working
//     state of a profile under edit
//   - Editor: the session-scoped controller wrapping one EditableProfile,
//     with tombstone recovery for removed modules
//   - Profile: the immutable, validated build artifact
//
// # Editing Flow
//
// A typical editing session:
//
//  1. Create an Editor (empty, or loaded from a persisted Profile)
//  2. Mutate freely through the Editor: add, remove, reorder, toggle modules
//  3. Call Build to validate and obtain an immutable Profile
//  4. Call Save to build and persist through the external stores
//
// Mutation operations never fail. All validation is concentrated in Build,
// so the caller can mutate on every keystroke without handling errors, and
// gets a single checkpoint before anything is persisted.
//
// # Thread Safety
//
// An Editor is confined to a single logical owner (one edit session) and is
// not safe for concurrent mutation. Serialize access externally.
package profile
