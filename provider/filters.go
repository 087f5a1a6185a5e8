// Package provider implements provider-server filtering.
// This file contains the facet catalog and the live filter selection.
package provider

// FilterOptions is the static facet catalog of a provider, computed once
// from the bulk dataset and rarely changing.
type FilterOptions struct {
	// CategoryNames is the set of known category names.
	CategoryNames map[string]struct{}
	// CountryCodes is the set of known country codes.
	CountryCodes map[string]struct{}
	// CountriesByCategory maps a category name to the country codes
	// reachable under that category.
	CountriesByCategory map[string]map[string]struct{}
	// Presets is the full preset catalog.
	Presets []Preset
}

// OptionsFromDataset computes the facet catalog from bulk records.
func OptionsFromDataset(servers []Server, presets []Preset) FilterOptions {
	opts := FilterOptions{
		CategoryNames:       map[string]struct{}{},
		CountryCodes:        map[string]struct{}{},
		CountriesByCategory: map[string]map[string]struct{}{},
		Presets:             presets,
	}
	for _, s := range servers {
		if s.CategoryName != "" {
			opts.CategoryNames[s.CategoryName] = struct{}{}
			byCategory := opts.CountriesByCategory[s.CategoryName]
			if byCategory == nil {
				byCategory = map[string]struct{}{}
				opts.CountriesByCategory[s.CategoryName] = byCategory
			}
			if s.CountryCode != "" {
				byCategory[s.CountryCode] = struct{}{}
			}
		}
		if s.CountryCode != "" {
			opts.CountryCodes[s.CountryCode] = struct{}{}
		}
	}
	return opts
}

// Filters is the live facet selection. Empty fields select everything.
type Filters struct {
	// CategoryName restricts to one server category.
	CategoryName string
	// CountryCode restricts to one country.
	CountryCode string
	// Area restricts to one sub-country area.
	Area string
	// PresetID restricts to servers supporting one preset.
	PresetID string
}

// IsEmpty reports whether no facet is selected.
func (f Filters) IsEmpty() bool {
	return f == Filters{}
}

// Matches reports whether a server satisfies every selected facet.
func (f Filters) Matches(s Server) bool {
	if f.CategoryName != "" && s.CategoryName != f.CategoryName {
		return false
	}
	if f.CountryCode != "" && s.CountryCode != f.CountryCode {
		found := false
		for _, code := range s.OtherCountryCodes {
			if code == f.CountryCode {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Area != "" && s.Area != f.Area {
		return false
	}
	if f.PresetID != "" {
		found := false
		for _, id := range s.SupportedPresetIDs {
			if id == f.PresetID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
