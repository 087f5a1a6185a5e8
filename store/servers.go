// Package store provides the persistence collaborators.
// This file contains the SQLite-backed server/preset dataset repository.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/yllada/vpn-composer/common"
	"github.com/yllada/vpn-composer/provider"
)

// ServerRepository persists the provider server/preset dataset in a
// SQLite database. It satisfies provider.Repository.
type ServerRepository struct {
	db     *sql.DB
	logger common.Logger
}

const serversSchema = `
CREATE TABLE IF NOT EXISTS servers (
	provider_id   TEXT NOT NULL,
	server_id     TEXT NOT NULL,
	hostname      TEXT NOT NULL DEFAULT '',
	ip_addresses  TEXT NOT NULL DEFAULT '',
	country_code  TEXT NOT NULL DEFAULT '',
	other_codes   TEXT NOT NULL DEFAULT '',
	area          TEXT NOT NULL DEFAULT '',
	category_name TEXT NOT NULL DEFAULT '',
	config_ids    TEXT NOT NULL DEFAULT '',
	preset_ids    TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (provider_id, server_id)
);
CREATE TABLE IF NOT EXISTS presets (
	provider_id TEXT NOT NULL,
	preset_id   TEXT NOT NULL,
	config_id   TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (provider_id, preset_id)
);
CREATE INDEX IF NOT EXISTS idx_servers_facets
	ON servers (provider_id, category_name, country_code);`

// NewServerRepository creates a server repository over an open database,
// creating the schema if needed.
func NewServerRepository(db *sql.DB, logger common.Logger) (*ServerRepository, error) {
	if logger == nil {
		logger = common.NopLogger
	}
	if _, err := db.Exec(serversSchema); err != nil {
		return nil, fmt.Errorf("failed to create servers schema: %w", err)
	}
	return &ServerRepository{db: db, logger: logger}, nil
}

// ReplaceIndex replaces the whole dataset of a provider in one
// transaction. Used when ingesting a fresh bulk download.
func (r *ServerRepository) ReplaceIndex(ctx context.Context, providerID string, servers []provider.Server, presets []provider.Preset) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return common.WrapError(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM servers WHERE provider_id = ?`, providerID); err != nil {
		return common.WrapError(err, "failed to clear servers")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM presets WHERE provider_id = ?`, providerID); err != nil {
		return common.WrapError(err, "failed to clear presets")
	}

	for _, s := range servers {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO servers (provider_id, server_id, hostname, ip_addresses,
				country_code, other_codes, area, category_name, config_ids, preset_ids)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			providerID, s.ID, s.Hostname, joinList(s.IPAddresses),
			s.CountryCode, joinList(s.OtherCountryCodes), s.Area, s.CategoryName,
			joinList(s.SupportedConfigurationIDs), joinList(s.SupportedPresetIDs))
		if err != nil {
			return common.WrapError(err, "failed to insert server")
		}
	}
	for _, p := range presets {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO presets (provider_id, preset_id, config_id, description)
			VALUES (?, ?, ?, ?)`,
			providerID, p.ID, p.ConfigurationID, p.Description)
		if err != nil {
			return common.WrapError(err, "failed to insert preset")
		}
	}

	if err := tx.Commit(); err != nil {
		return common.WrapError(err, "failed to commit dataset")
	}
	r.logger.Info("Indexed %d servers and %d presets for provider %s",
		len(servers), len(presets), providerID)
	return nil
}

// AvailableOptions computes the facet catalog of a provider from
// distinct category/country pairs and the preset rows.
func (r *ServerRepository) AvailableOptions(ctx context.Context, providerID string) (provider.FilterOptions, error) {
	opts := provider.FilterOptions{
		CategoryNames:       map[string]struct{}{},
		CountryCodes:        map[string]struct{}{},
		CountriesByCategory: map[string]map[string]struct{}{},
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT category_name, country_code
		FROM servers WHERE provider_id = ?`, providerID)
	if err != nil {
		return provider.FilterOptions{}, common.WrapError(err, "failed to query facets")
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		var category, country string
		if err := rows.Scan(&category, &country); err != nil {
			return provider.FilterOptions{}, common.WrapError(err, "failed to scan facet row")
		}
		found = true
		if category != "" {
			opts.CategoryNames[category] = struct{}{}
			byCategory := opts.CountriesByCategory[category]
			if byCategory == nil {
				byCategory = map[string]struct{}{}
				opts.CountriesByCategory[category] = byCategory
			}
			if country != "" {
				byCategory[country] = struct{}{}
			}
		}
		if country != "" {
			opts.CountryCodes[country] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return provider.FilterOptions{}, common.WrapError(err, "failed to read facet rows")
	}
	if !found {
		return provider.FilterOptions{}, common.ErrProviderNotFound
	}

	presetRows, err := r.db.QueryContext(ctx, `
		SELECT preset_id, config_id, description
		FROM presets WHERE provider_id = ?`, providerID)
	if err != nil {
		return provider.FilterOptions{}, common.WrapError(err, "failed to query presets")
	}
	defer presetRows.Close()

	for presetRows.Next() {
		p := provider.Preset{ProviderID: providerID}
		if err := presetRows.Scan(&p.ID, &p.ConfigurationID, &p.Description); err != nil {
			return provider.FilterOptions{}, common.WrapError(err, "failed to scan preset row")
		}
		opts.Presets = append(opts.Presets, p)
	}
	return opts, presetRows.Err()
}

// FilteredServers returns the servers of a provider matching the query.
// Scalar facets are filtered in SQL; the preset facet is resolved in
// memory because preset ids are stored as a joined list.
func (r *ServerRepository) FilteredServers(ctx context.Context, providerID string, query provider.ServerQuery) ([]provider.Server, error) {
	clauses := []string{"provider_id = ?"}
	args := []interface{}{providerID}

	if query.Filters.CategoryName != "" {
		clauses = append(clauses, "category_name = ?")
		args = append(args, query.Filters.CategoryName)
	}
	if query.Filters.CountryCode != "" {
		clauses = append(clauses, "(country_code = ? OR other_codes LIKE ?)")
		args = append(args, query.Filters.CountryCode, "%"+query.Filters.CountryCode+"%")
	}
	if query.Filters.Area != "" {
		clauses = append(clauses, "area = ?")
		args = append(args, query.Filters.Area)
	}

	order := "country_code, hostname"
	if query.Sort == provider.SortByHostname {
		order = "hostname"
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT server_id, hostname, ip_addresses, country_code, other_codes,
			area, category_name, config_ids, preset_ids
		FROM servers WHERE %s ORDER BY %s`,
		strings.Join(clauses, " AND "), order), args...)
	if err != nil {
		return nil, common.WrapError(err, "failed to query servers")
	}
	defer rows.Close()

	var out []provider.Server
	for rows.Next() {
		s := provider.Server{ProviderID: providerID}
		var ips, otherCodes, configIDs, presetIDs string
		if err := rows.Scan(&s.ID, &s.Hostname, &ips, &s.CountryCode, &otherCodes,
			&s.Area, &s.CategoryName, &configIDs, &presetIDs); err != nil {
			return nil, common.WrapError(err, "failed to scan server row")
		}
		s.IPAddresses = splitList(ips)
		s.OtherCountryCodes = splitList(otherCodes)
		s.SupportedConfigurationIDs = splitList(configIDs)
		s.SupportedPresetIDs = splitList(presetIDs)

		if query.Filters.PresetID != "" && !query.Filters.Matches(s) {
			continue
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func joinList(items []string) string {
	return strings.Join(items, ",")
}

func splitList(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}
