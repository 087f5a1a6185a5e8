// Package store provides the persistence collaborators.
// This file contains the YAML codec for the profile body. Serialization
// is a store concern; the domain types stay format-free.
package store

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/yllada/vpn-composer/profile"
)

// profileRecord is the YAML form of a profile body.
type profileRecord struct {
	Name            string         `yaml:"name"`
	AvailableForTV  bool           `yaml:"available_for_tv,omitempty"`
	Modules         []moduleRecord `yaml:"modules"`
	ActiveModuleIDs []string       `yaml:"active_module_ids"`
}

// moduleRecord is the YAML form of a module. The per-kind configs are
// embedded directly; only the uuid needs an explicit string form.
type moduleRecord struct {
	ID        string                   `yaml:"id"`
	Kind      profile.Kind             `yaml:"kind"`
	OpenVPN   *profile.OpenVPNConfig   `yaml:"openvpn,omitempty"`
	WireGuard *profile.WireGuardConfig `yaml:"wireguard,omitempty"`
	DNS       *profile.DNSConfig       `yaml:"dns,omitempty"`
	HTTPProxy *profile.HTTPProxyConfig `yaml:"httpproxy,omitempty"`
	IP        *profile.IPConfig        `yaml:"ip,omitempty"`
	OnDemand  *profile.OnDemandConfig  `yaml:"ondemand,omitempty"`
}

// encodeProfile serializes a built profile body to YAML.
func encodeProfile(p *profile.Profile) ([]byte, error) {
	ep := p.Editable()
	rec := profileRecord{
		Name:           ep.Attributes.Name,
		AvailableForTV: ep.Attributes.AvailableForTV,
	}
	for _, m := range ep.Modules {
		rec.Modules = append(rec.Modules, moduleRecord{
			ID:        m.ID.String(),
			Kind:      m.Kind,
			OpenVPN:   m.OpenVPN,
			WireGuard: m.WireGuard,
			DNS:       m.DNS,
			HTTPProxy: m.HTTPProxy,
			IP:        m.IP,
			OnDemand:  m.OnDemand,
		})
	}
	for id := range ep.ActiveModuleIDs {
		rec.ActiveModuleIDs = append(rec.ActiveModuleIDs, id.String())
	}
	return yaml.Marshal(&rec)
}

// decodeProfile parses a profile body and rebuilds the immutable
// artifact, revalidating it through the build pipeline.
func decodeProfile(id uuid.UUID, data []byte) (*profile.Profile, error) {
	var rec profileRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse profile body: %w", err)
	}

	ep := profile.NewEditableProfile(rec.Name)
	ep.Attributes.ID = id
	ep.Attributes.AvailableForTV = rec.AvailableForTV

	for _, mr := range rec.Modules {
		moduleID, err := uuid.Parse(mr.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid module id %q: %w", mr.ID, err)
		}
		ep.Modules = append(ep.Modules, profile.Module{
			ID:        moduleID,
			Kind:      mr.Kind,
			OpenVPN:   mr.OpenVPN,
			WireGuard: mr.WireGuard,
			DNS:       mr.DNS,
			HTTPProxy: mr.HTTPProxy,
			IP:        mr.IP,
			OnDemand:  mr.OnDemand,
		})
	}
	for _, raw := range rec.ActiveModuleIDs {
		moduleID, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid active module id %q: %w", raw, err)
		}
		ep.SetActive(moduleID)
	}

	p, err := profile.Build(&ep)
	if err != nil {
		return nil, fmt.Errorf("stored profile no longer valid: %w", err)
	}
	return p, nil
}
