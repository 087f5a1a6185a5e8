// Package store provides the persistence collaborators consumed by the
// profile editor and the provider filter engine.
//
// Three stores are implemented:
//
//   - ProfileStore: built profiles in a SQLite database, the profile
//     body serialized as YAML
//   - ServerRepository: the provider server/preset dataset in the same
//     SQLite database, queried per provider with filter and sort
//   - PreferencesStore: per-profile module preferences as one YAML file
//     per profile
//
// The core packages depend only on the narrow interfaces they declare
// (profile.ProfileStore, profile.PreferencesStore, provider.Repository);
// this package supplies the concrete implementations.
package store
