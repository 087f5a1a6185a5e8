// Package provider implements provider-server filtering.
// This file contains the dataset records and the repository contract.
package provider

import "context"

// Server is a single provider server record from the bulk dataset.
type Server struct {
	// ID is the provider-scoped server identifier.
	ID string
	// Hostname is the server hostname.
	Hostname string
	// IPAddresses are the resolved server addresses.
	IPAddresses []string
	// ProviderID identifies the provider publishing this record.
	ProviderID string
	// CountryCode is the ISO 3166-1 alpha-2 country of the server.
	CountryCode string
	// OtherCountryCodes lists additional countries the server exits in.
	OtherCountryCodes []string
	// Area is an optional sub-country area, such as a city.
	Area string
	// CategoryName is the provider-defined server category.
	CategoryName string
	// SupportedConfigurationIDs lists the tunnel configurations the
	// server accepts.
	SupportedConfigurationIDs []string
	// SupportedPresetIDs lists the presets usable with this server.
	// May be empty when the upstream records did not populate it.
	SupportedPresetIDs []string
}

// Preset is a provider configuration preset record.
type Preset struct {
	// ID is the provider-scoped preset identifier.
	ID string
	// ProviderID identifies the provider publishing this preset.
	ProviderID string
	// ConfigurationID is the tunnel configuration the preset applies to.
	ConfigurationID string
	// Description is the display description of the preset.
	Description string
}

// SortOrder selects how a repository sorts filtered servers.
type SortOrder int

const (
	// SortByCountry sorts by country code, then hostname.
	SortByCountry SortOrder = iota
	// SortByHostname sorts by hostname only.
	SortByHostname
)

// ServerQuery is the filter/sort specification of a repository query.
type ServerQuery struct {
	Filters Filters
	Sort    SortOrder
}

// Repository is the external server/preset dataset collaborator.
type Repository interface {
	// AvailableOptions computes the facet catalog for a provider.
	AvailableOptions(ctx context.Context, providerID string) (FilterOptions, error)
	// FilteredServers returns the servers of a provider matching the
	// query, sorted per the query's sort order.
	FilteredServers(ctx context.Context, providerID string, query ServerQuery) ([]Server, error)
}
