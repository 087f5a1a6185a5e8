// Package profile implements the profile composition and build pipeline.
// This file defines the closed set of module kinds and the catalog that
// decides which kinds are offered for addition.
package profile

import (
	"sort"
	"strings"
)

// Kind identifies the type of a module. The set of kinds is closed:
// every validation and build site switches exhaustively over it.
type Kind string

// Known module kinds.
const (
	// KindOpenVPN is the OpenVPN tunnel protocol module.
	KindOpenVPN Kind = "openvpn"
	// KindWireGuard is the WireGuard tunnel protocol module.
	KindWireGuard Kind = "wireguard"
	// KindDNS is the DNS configuration module.
	KindDNS Kind = "dns"
	// KindHTTPProxy is the HTTP proxy configuration module.
	KindHTTPProxy Kind = "httpproxy"
	// KindIP is the IP routing configuration module.
	KindIP Kind = "ip"
	// KindOnDemand is the on-demand rules module.
	KindOnDemand Kind = "ondemand"
)

// AllKinds returns the closed list of module kinds in canonical order.
// The order is stable and used only as the universe, not for display.
func AllKinds() []Kind {
	return []Kind{
		KindOpenVPN,
		KindWireGuard,
		KindDNS,
		KindHTTPProxy,
		KindIP,
		KindOnDemand,
	}
}

// manualAdditionExcluded lists kinds not yet offered for manual addition.
// WireGuard profiles can only be imported until the editor supports them.
var manualAdditionExcluded = map[Kind]bool{
	KindWireGuard: true,
}

// String returns the raw kind identifier.
func (k Kind) String() string {
	return string(k)
}

// DisplayName returns the human-readable name of the kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindOpenVPN:
		return "OpenVPN"
	case KindWireGuard:
		return "WireGuard"
	case KindDNS:
		return "DNS"
	case KindHTTPProxy:
		return "HTTP Proxy"
	case KindIP:
		return "IP Routing"
	case KindOnDemand:
		return "On-Demand Rules"
	default:
		return string(k)
	}
}

// IsKnown reports whether the kind belongs to the closed set.
func (k Kind) IsKnown() bool {
	switch k {
	case KindOpenVPN, KindWireGuard, KindDNS, KindHTTPProxy, KindIP, KindOnDemand:
		return true
	default:
		return false
	}
}

// IsConnection reports whether the kind is a tunnel protocol.
// At most one connection module may be active in a profile at a time.
func (k Kind) IsConnection() bool {
	return k == KindOpenVPN || k == KindWireGuard
}

// AvailableKinds returns the kinds that may still be added to a profile
// already containing current: all known kinds, minus the manual-addition
// exclusions, minus the kinds already present, sorted by display name
// case-insensitively.
//
// This is a pure function with no failure modes.
func AvailableKinds(current []Kind) []Kind {
	present := make(map[Kind]bool, len(current))
	for _, k := range current {
		present[k] = true
	}

	var available []Kind
	for _, k := range AllKinds() {
		if manualAdditionExcluded[k] {
			continue
		}
		if present[k] {
			continue
		}
		available = append(available, k)
	}

	sort.Slice(available, func(i, j int) bool {
		return strings.ToLower(available[i].DisplayName()) < strings.ToLower(available[j].DisplayName())
	})
	return available
}
