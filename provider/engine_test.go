package provider

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleServers() []Server {
	return []Server{
		{ID: "s1", Hostname: "us1.example.com", ProviderID: "acme", CountryCode: "US", CategoryName: "speed", SupportedPresetIDs: []string{"p1"}},
		{ID: "s2", Hostname: "de1.example.com", ProviderID: "acme", CountryCode: "DE", CategoryName: "speed", SupportedPresetIDs: []string{"p1", "p2"}},
		{ID: "s3", Hostname: "fr1.example.com", ProviderID: "acme", CountryCode: "FR", CategoryName: "privacy", SupportedPresetIDs: []string{"p2"}},
	}
}

func samplePresets() []Preset {
	return []Preset{
		{ID: "p1", ProviderID: "acme", ConfigurationID: "openvpn", Description: "Default"},
		{ID: "p2", ProviderID: "acme", ConfigurationID: "openvpn", Description: "Alternate ports"},
	}
}

func TestOptionsFromDataset(t *testing.T) {
	opts := OptionsFromDataset(sampleServers(), samplePresets())

	require.Equal(t, map[string]struct{}{"speed": {}, "privacy": {}}, opts.CategoryNames)
	require.Equal(t, map[string]struct{}{"US": {}, "DE": {}, "FR": {}}, opts.CountryCodes)
	require.Equal(t, map[string]struct{}{"US": {}, "DE": {}}, opts.CountriesByCategory["speed"])
	require.Equal(t, map[string]struct{}{"FR": {}}, opts.CountriesByCategory["privacy"])
	require.Len(t, opts.Presets, 2)
}

func TestEngine_LoadSeedsSortedFacets(t *testing.T) {
	e := NewEngine(nil)
	e.Load(OptionsFromDataset(sampleServers(), samplePresets()), nil)

	require.Equal(t, []string{"privacy", "speed"}, e.Categories())

	// Countries sort by localized description: France, Germany, United States.
	countries := e.Countries()
	require.Len(t, countries, 3)
	require.Equal(t, "FR", countries[0].Code)
	require.Equal(t, "France", countries[0].Description)
	require.Equal(t, "DE", countries[1].Code)
	require.Equal(t, "Germany", countries[1].Description)
	require.Equal(t, "US", countries[2].Code)
	require.Equal(t, "United States", countries[2].Description)

	// Presets sort by description.
	presets := e.Presets()
	require.Equal(t, "Alternate ports", presets[0].Description)
	require.Equal(t, "Default", presets[1].Description)
}

func TestEngine_NarrowRestrictsCountriesToCategory(t *testing.T) {
	servers := sampleServers()
	e := NewEngine(nil)
	e.Load(OptionsFromDataset(servers, samplePresets()), nil)

	e.SetFilters(Filters{CategoryName: "speed"})
	var matched []Server
	for _, s := range servers {
		if e.Filters().Matches(s) {
			matched = append(matched, s)
		}
	}
	e.Narrow(matched)

	countries := e.Countries()
	require.Len(t, countries, 2)
	require.Equal(t, "Germany", countries[0].Description)
	require.Equal(t, "United States", countries[1].Description)
}

func TestEngine_NarrowWithoutCategoryKeepsAllCountries(t *testing.T) {
	e := NewEngine(nil)
	e.Load(OptionsFromDataset(sampleServers(), samplePresets()), nil)

	e.Narrow(sampleServers())
	require.Len(t, e.Countries(), 3)
}

func TestEngine_NarrowIntersectsPresets(t *testing.T) {
	e := NewEngine(nil)
	e.Load(OptionsFromDataset(sampleServers(), samplePresets()), nil)

	// Only the privacy server remains; it references p2 alone.
	e.Narrow([]Server{sampleServers()[2]})

	presets := e.Presets()
	require.Len(t, presets, 1)
	require.Equal(t, "p2", presets[0].ID)
}

func TestEngine_NarrowKeepsAllPresetsWhenUnreferenced(t *testing.T) {
	e := NewEngine(nil)
	e.Load(OptionsFromDataset(sampleServers(), samplePresets()), nil)

	// Servers without preset ids carry no narrowing information.
	e.Narrow([]Server{{ID: "bare", Hostname: "x.example.com", ProviderID: "acme", CountryCode: "US"}})
	require.Len(t, e.Presets(), 2)

	e.Narrow(nil)
	require.Len(t, e.Presets(), 2)
}

func TestEngine_LoadWithInitialSelection(t *testing.T) {
	e := NewEngine(nil)
	initial := Filters{CategoryName: "speed", CountryCode: "DE"}
	e.Load(OptionsFromDataset(sampleServers(), samplePresets()), &initial)
	require.Equal(t, initial, e.Filters())
}

func TestEngine_OnChange(t *testing.T) {
	e := NewEngine(nil)
	var fired int
	e.SetOnChange(func() { fired++ })

	e.Load(OptionsFromDataset(sampleServers(), samplePresets()), nil)
	e.Narrow(nil)
	require.Equal(t, 2, fired)
}

func TestCountryDescription_UnknownCode(t *testing.T) {
	require.Equal(t, "ZZZZ", countryDescription("ZZZZ"))
}

func TestFilters_Matches(t *testing.T) {
	server := Server{
		ID:                 "s1",
		Hostname:           "us1.example.com",
		CountryCode:        "US",
		OtherCountryCodes:  []string{"CA"},
		Area:               "East",
		CategoryName:       "speed",
		SupportedPresetIDs: []string{"p1"},
	}

	tests := []struct {
		name    string
		filters Filters
		want    bool
	}{
		{"empty matches all", Filters{}, true},
		{"category match", Filters{CategoryName: "speed"}, true},
		{"category mismatch", Filters{CategoryName: "privacy"}, false},
		{"main country", Filters{CountryCode: "US"}, true},
		{"other country", Filters{CountryCode: "CA"}, true},
		{"country mismatch", Filters{CountryCode: "DE"}, false},
		{"area match", Filters{Area: "East"}, true},
		{"area mismatch", Filters{Area: "West"}, false},
		{"preset match", Filters{PresetID: "p1"}, true},
		{"preset mismatch", Filters{PresetID: "p2"}, false},
		{"combined", Filters{CategoryName: "speed", CountryCode: "CA", PresetID: "p1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.filters.Matches(server))
		})
	}
}

func TestFilters_IsEmpty(t *testing.T) {
	require.True(t, Filters{}.IsEmpty())
	require.False(t, Filters{CountryCode: "US"}.IsEmpty())
}
