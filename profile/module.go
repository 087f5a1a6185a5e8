// Package profile implements the profile composition and build pipeline.
// This file contains the Module type, the polymorphic configuration unit
// profiles are assembled from.
package profile

import "github.com/google/uuid"

// Module is a pluggable configuration unit of one fixed kind.
//
// It is a closed tagged variant: Kind selects exactly one of the config
// pointers, and the build pipeline rejects modules whose config does not
// match their kind. ID and Kind are immutable once assigned; a module is
// never retyped.
type Module struct {
	// ID is the stable unique identifier of the module.
	ID uuid.UUID
	// Kind is the discriminant selecting the config field below.
	Kind Kind

	// Exactly one of the following is non-nil, matching Kind.
	OpenVPN   *OpenVPNConfig
	WireGuard *WireGuardConfig
	DNS       *DNSConfig
	HTTPProxy *HTTPProxyConfig
	IP        *IPConfig
	OnDemand  *OnDemandConfig
}

// fieldViolation describes a kind-specific invalid field. The build
// pipeline wraps it into a ModuleFieldError carrying the module identity.
type fieldViolation struct {
	Field  string
	Reason string
}

// NewModule creates a module of the given kind with a fresh identifier
// and an empty default config.
func NewModule(kind Kind) Module {
	m := Module{
		ID:   uuid.New(),
		Kind: kind,
	}
	switch kind {
	case KindOpenVPN:
		m.OpenVPN = &OpenVPNConfig{}
	case KindWireGuard:
		m.WireGuard = &WireGuardConfig{}
	case KindDNS:
		m.DNS = &DNSConfig{Protocol: DNSProtocolCleartext}
	case KindHTTPProxy:
		m.HTTPProxy = &HTTPProxyConfig{}
	case KindIP:
		m.IP = &IPConfig{}
	case KindOnDemand:
		m.OnDemand = &OnDemandConfig{Policy: OnDemandPolicyAny}
	}
	return m
}

// DisplayName returns the display name of the module's kind.
func (m Module) DisplayName() string {
	return m.Kind.DisplayName()
}

// isConsistent reports whether the config pointer matching Kind is set
// and all others are nil.
func (m Module) isConsistent() bool {
	set := 0
	var matching bool
	for kind, cfg := range map[Kind]bool{
		KindOpenVPN:   m.OpenVPN != nil,
		KindWireGuard: m.WireGuard != nil,
		KindDNS:       m.DNS != nil,
		KindHTTPProxy: m.HTTPProxy != nil,
		KindIP:        m.IP != nil,
		KindOnDemand:  m.OnDemand != nil,
	} {
		if cfg {
			set++
			if kind == m.Kind {
				matching = true
			}
		}
	}
	return set == 1 && matching
}

// validateFields runs the kind-specific invariant checks and returns the
// first violation, or nil.
func (m Module) validateFields() *fieldViolation {
	switch m.Kind {
	case KindOpenVPN:
		return m.OpenVPN.validate()
	case KindWireGuard:
		return m.WireGuard.validate()
	case KindDNS:
		return m.DNS.validate()
	case KindHTTPProxy:
		return m.HTTPProxy.validate()
	case KindIP:
		return m.IP.validate()
	case KindOnDemand:
		return m.OnDemand.validate()
	default:
		return &fieldViolation{Field: "kind", Reason: "unknown module kind"}
	}
}

// Clone returns a deep copy of the module. The copy shares no slices or
// config pointers with the original.
func (m Module) Clone() Module {
	out := Module{ID: m.ID, Kind: m.Kind}
	if m.OpenVPN != nil {
		out.OpenVPN = m.OpenVPN.clone()
	}
	if m.WireGuard != nil {
		out.WireGuard = m.WireGuard.clone()
	}
	if m.DNS != nil {
		out.DNS = m.DNS.clone()
	}
	if m.HTTPProxy != nil {
		out.HTTPProxy = m.HTTPProxy.clone()
	}
	if m.IP != nil {
		out.IP = m.IP.clone()
	}
	if m.OnDemand != nil {
		out.OnDemand = m.OnDemand.clone()
	}
	return out
}

// cloneStrings copies a string slice, preserving nil.
func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
