// Package provider implements provider-server filtering for VPN Composer.
//
// A provider publishes a bulk dataset of servers and configuration
// presets. The package computes a facet catalog (categories, countries,
// presets) out of that dataset and incrementally narrows the selectable
// facet values as the user changes filters, keeping only facets that
// remain reachable given the facets already chosen.
//
// The package is organized around three types:
//
//   - Server, Preset: the dataset records
//   - FilterOptions, Filters: the static facet catalog and the live
//     selection
//   - Engine: the narrowing state machine emitting the reachable
//     categories, countries, and presets
//
// # Thread Safety
//
// An Engine is confined to a single filter session and is not safe for
// concurrent mutation. Serialize access externally.
package provider
