package profile

import (
	"net"
	"strings"
)

// Endpoint is a remote tunnel endpoint.
type Endpoint struct {
	// Host is a hostname or IP address.
	Host string `yaml:"host"`
	// Port is the remote port, 1-65535.
	Port int `yaml:"port"`
	// Proto is the transport protocol, "udp" or "tcp".
	Proto string `yaml:"proto"`
}

// ProviderSelection ties a tunnel module to a provider infrastructure
// instead of explicit remotes. The actual server is picked at connection
// time through the provider dataset.
type ProviderSelection struct {
	// ProviderID identifies the provider.
	ProviderID string `yaml:"provider_id"`
	// PresetID identifies the provider configuration preset.
	PresetID string `yaml:"preset_id"`
	// CountryCode optionally pins the selection to a country.
	CountryCode string `yaml:"country_code,omitempty"`
}

// OpenVPNConfig holds the fields of an OpenVPN module.
// A module is valid with either explicit remotes or a provider selection.
type OpenVPNConfig struct {
	// Remotes is the list of remote endpoints.
	Remotes []Endpoint `yaml:"remotes,omitempty"`
	// Username is the optional authentication username. The password is
	// never part of the profile; it lives in the credential store.
	Username string `yaml:"username,omitempty"`
	// Provider selects provider infrastructure instead of Remotes.
	Provider *ProviderSelection `yaml:"provider,omitempty"`
}

func (c *OpenVPNConfig) validate() *fieldViolation {
	if c.Provider != nil {
		if c.Provider.ProviderID == "" {
			return &fieldViolation{Field: "provider.provider_id", Reason: "must not be empty"}
		}
		if c.Provider.PresetID == "" {
			return &fieldViolation{Field: "provider.preset_id", Reason: "must not be empty"}
		}
		return nil
	}
	if len(c.Remotes) == 0 {
		return &fieldViolation{Field: "remotes", Reason: "at least one remote or a provider selection is required"}
	}
	for _, r := range c.Remotes {
		if r.Host == "" {
			return &fieldViolation{Field: "remotes", Reason: "remote host must not be empty"}
		}
		if r.Port < 1 || r.Port > 65535 {
			return &fieldViolation{Field: "remotes", Reason: "remote port out of range"}
		}
		switch strings.ToLower(r.Proto) {
		case "udp", "tcp":
		default:
			return &fieldViolation{Field: "remotes", Reason: "remote proto must be udp or tcp"}
		}
	}
	return nil
}

func (c *OpenVPNConfig) clone() *OpenVPNConfig {
	out := *c
	if c.Remotes != nil {
		out.Remotes = make([]Endpoint, len(c.Remotes))
		copy(out.Remotes, c.Remotes)
	}
	if c.Provider != nil {
		p := *c.Provider
		out.Provider = &p
	}
	return &out
}

// WireGuardPeer is a single WireGuard peer.
type WireGuardPeer struct {
	// PublicKey is the peer's public key.
	PublicKey string `yaml:"public_key"`
	// Endpoint is the optional peer endpoint as host:port.
	Endpoint string `yaml:"endpoint,omitempty"`
	// AllowedIPs is the list of CIDR ranges routed to this peer.
	AllowedIPs []string `yaml:"allowed_ips,omitempty"`
}

// WireGuardConfig holds the fields of a WireGuard module.
type WireGuardConfig struct {
	// PrivateKey is the interface private key.
	PrivateKey string `yaml:"private_key"`
	// Addresses is the list of interface addresses as CIDR.
	Addresses []string `yaml:"addresses,omitempty"`
	// Peers is the list of tunnel peers.
	Peers []WireGuardPeer `yaml:"peers,omitempty"`
}

func (c *WireGuardConfig) validate() *fieldViolation {
	if c.PrivateKey == "" {
		return &fieldViolation{Field: "private_key", Reason: "must not be empty"}
	}
	if len(c.Peers) == 0 {
		return &fieldViolation{Field: "peers", Reason: "at least one peer is required"}
	}
	for _, addr := range c.Addresses {
		if _, _, err := net.ParseCIDR(addr); err != nil {
			return &fieldViolation{Field: "addresses", Reason: "not a CIDR range: " + addr}
		}
	}
	for _, peer := range c.Peers {
		if peer.PublicKey == "" {
			return &fieldViolation{Field: "peers", Reason: "peer public key must not be empty"}
		}
		for _, cidr := range peer.AllowedIPs {
			if _, _, err := net.ParseCIDR(cidr); err != nil {
				return &fieldViolation{Field: "peers", Reason: "not a CIDR range: " + cidr}
			}
		}
	}
	return nil
}

func (c *WireGuardConfig) clone() *WireGuardConfig {
	out := *c
	out.Addresses = cloneStrings(c.Addresses)
	if c.Peers != nil {
		out.Peers = make([]WireGuardPeer, len(c.Peers))
		for i, p := range c.Peers {
			p.AllowedIPs = cloneStrings(p.AllowedIPs)
			out.Peers[i] = p
		}
	}
	return &out
}
