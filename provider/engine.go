// Package provider implements provider-server filtering.
// This file contains the Engine, the facet narrowing state machine.
package provider

import (
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/yllada/vpn-composer/common"
)

// Country is a selectable country facet value.
type Country struct {
	// Code is the ISO 3166-1 alpha-2 country code.
	Code string
	// Description is the localized country name, falling back to Code.
	Description string
}

// Engine recomputes the reachable facet values (categories, countries,
// presets) from the static facet catalog and the currently matched
// server list.
type Engine struct {
	options FilterOptions
	filters Filters

	categories []string
	countries  []Country
	presets    []Preset

	logger   common.Logger
	onChange func()
}

// NewEngine creates an engine with an empty catalog. Call Load before
// narrowing.
func NewEngine(logger common.Logger) *Engine {
	if logger == nil {
		logger = common.NopLogger
	}
	return &Engine{logger: logger}
}

// SetOnChange registers the single state-change subscriber. The callback
// runs after every recomputation of the facet outputs.
func (e *Engine) SetOnChange(fn func()) {
	e.onChange = fn
}

func (e *Engine) notify() {
	if e.onChange != nil {
		e.onChange()
	}
}

// Load seeds the engine with a facet catalog and an optional initial
// selection. Categories, countries, and presets are reset to the full
// catalog, sorted.
func (e *Engine) Load(options FilterOptions, initial *Filters) {
	e.options = options
	e.setCategories(options.CategoryNames)
	e.setCountries(options.CountryCodes)
	e.setPresets(options.Presets)
	if initial != nil {
		e.filters = *initial
	}
	e.logger.Debug("Filter engine loaded: %d categories, %d countries, %d presets",
		len(e.categories), len(e.countries), len(e.presets))
	e.notify()
}

// SetFilters replaces the live facet selection.
func (e *Engine) SetFilters(f Filters) {
	e.filters = f
}

// Filters returns the live facet selection.
func (e *Engine) Filters() Filters {
	return e.filters
}

// Narrow recomputes the reachable facet values from the currently
// matched servers.
//
// Countries are restricted to the selected category's reachable set, or
// to all known codes when no category is selected. Presets are
// intersected with the preset ids referenced by the matched servers.
// When that referenced set is empty, the full preset catalog is kept:
// an empty set is ambiguous between "truly none" and "server records
// didn't populate preset ids", so there is no information to narrow
// with.
func (e *Engine) Narrow(servers []Server) {
	var knownCountryCodes map[string]struct{}
	if e.filters.CategoryName != "" {
		knownCountryCodes = e.options.CountriesByCategory[e.filters.CategoryName]
	} else {
		knownCountryCodes = e.options.CountryCodes
	}

	knownPresets := e.options.Presets
	referenced := map[string]struct{}{}
	for _, s := range servers {
		for _, id := range s.SupportedPresetIDs {
			referenced[id] = struct{}{}
		}
	}
	if len(referenced) > 0 {
		filtered := make([]Preset, 0, len(knownPresets))
		for _, p := range knownPresets {
			if _, ok := referenced[p.ID]; ok {
				filtered = append(filtered, p)
			}
		}
		knownPresets = filtered
	}

	e.setCountries(knownCountryCodes)
	e.setPresets(knownPresets)
	e.notify()
}

// Categories returns the reachable category names, sorted ascending.
func (e *Engine) Categories() []string {
	return e.categories
}

// Countries returns the reachable countries, sorted by localized
// description ascending.
func (e *Engine) Countries() []Country {
	return e.countries
}

// Presets returns the reachable presets, sorted by description
// ascending.
func (e *Engine) Presets() []Preset {
	return e.presets
}

func (e *Engine) setCategories(names map[string]struct{}) {
	e.categories = make([]string, 0, len(names))
	for name := range names {
		e.categories = append(e.categories, name)
	}
	sort.Strings(e.categories)
}

func (e *Engine) setCountries(codes map[string]struct{}) {
	e.countries = make([]Country, 0, len(codes))
	for code := range codes {
		e.countries = append(e.countries, Country{
			Code:        code,
			Description: countryDescription(code),
		})
	}
	sort.Slice(e.countries, func(i, j int) bool {
		return e.countries[i].Description < e.countries[j].Description
	})
}

func (e *Engine) setPresets(presets []Preset) {
	e.presets = make([]Preset, len(presets))
	copy(e.presets, presets)
	sort.Slice(e.presets, func(i, j int) bool {
		return e.presets[i].Description < e.presets[j].Description
	})
}

// countryDescription returns the localized display name of a country
// code, falling back to the raw code for unknown regions.
func countryDescription(code string) string {
	region, err := language.ParseRegion(code)
	if err != nil {
		return code
	}
	if name := display.English.Regions().Name(region); name != "" {
		return name
	}
	return code
}
