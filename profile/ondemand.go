package profile

// OnDemandPolicy selects when the tunnel should be established
// automatically.
type OnDemandPolicy string

const (
	// OnDemandPolicyAny connects on any network.
	OnDemandPolicyAny OnDemandPolicy = "any"
	// OnDemandPolicyIncluding connects only on the listed networks.
	OnDemandPolicyIncluding OnDemandPolicy = "including"
	// OnDemandPolicyExcluding connects on all but the listed networks.
	OnDemandPolicyExcluding OnDemandPolicy = "excluding"
)

// OnDemandConfig holds the fields of an on-demand rules module.
type OnDemandConfig struct {
	// Policy selects the rule semantics.
	Policy OnDemandPolicy `yaml:"policy"`
	// SSIDs lists the Wi-Fi networks the policy applies to.
	SSIDs []string `yaml:"ssids,omitempty"`
	// WithMobileNetwork includes cellular networks in the rule set.
	WithMobileNetwork bool `yaml:"with_mobile_network,omitempty"`
	// WithEthernet includes wired networks in the rule set.
	WithEthernet bool `yaml:"with_ethernet,omitempty"`
}

func (c *OnDemandConfig) validate() *fieldViolation {
	switch c.Policy {
	case "", OnDemandPolicyAny:
		return nil
	case OnDemandPolicyIncluding, OnDemandPolicyExcluding:
		if len(c.SSIDs) == 0 && !c.WithMobileNetwork && !c.WithEthernet {
			return &fieldViolation{Field: "ssids", Reason: "at least one network rule is required with this policy"}
		}
		return nil
	default:
		return &fieldViolation{Field: "policy", Reason: "unknown on-demand policy"}
	}
}

func (c *OnDemandConfig) clone() *OnDemandConfig {
	out := *c
	out.SSIDs = cloneStrings(c.SSIDs)
	return &out
}
