package profile

import "net"

// Route is a single routing table entry.
type Route struct {
	// Destination is the target network as CIDR, or "default".
	Destination string `yaml:"destination"`
	// Gateway is the optional next-hop address.
	Gateway string `yaml:"gateway,omitempty"`
}

// IPConfig holds the fields of an IP routing module.
type IPConfig struct {
	// IncludedRoutes are routed into the tunnel.
	IncludedRoutes []Route `yaml:"included_routes,omitempty"`
	// ExcludedRoutes are routed around the tunnel.
	ExcludedRoutes []Route `yaml:"excluded_routes,omitempty"`
	// MTU overrides the tunnel MTU when positive. Zero means default.
	MTU int `yaml:"mtu,omitempty"`
}

func (c *IPConfig) validate() *fieldViolation {
	if c.MTU < 0 {
		return &fieldViolation{Field: "mtu", Reason: "must not be negative"}
	}
	if v := validateRoutes("included_routes", c.IncludedRoutes); v != nil {
		return v
	}
	return validateRoutes("excluded_routes", c.ExcludedRoutes)
}

func validateRoutes(field string, routes []Route) *fieldViolation {
	for _, r := range routes {
		if r.Destination != "default" {
			if _, _, err := net.ParseCIDR(r.Destination); err != nil {
				return &fieldViolation{Field: field, Reason: "destination is not a CIDR range: " + r.Destination}
			}
		}
		if r.Gateway != "" && net.ParseIP(r.Gateway) == nil {
			return &fieldViolation{Field: field, Reason: "gateway is not an IP address: " + r.Gateway}
		}
	}
	return nil
}

func (c *IPConfig) clone() *IPConfig {
	out := *c
	if c.IncludedRoutes != nil {
		out.IncludedRoutes = make([]Route, len(c.IncludedRoutes))
		copy(out.IncludedRoutes, c.IncludedRoutes)
	}
	if c.ExcludedRoutes != nil {
		out.ExcludedRoutes = make([]Route, len(c.ExcludedRoutes))
		copy(out.ExcludedRoutes, c.ExcludedRoutes)
	}
	return &out
}
