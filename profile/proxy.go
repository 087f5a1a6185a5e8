package profile

// HTTPProxyConfig holds the fields of an HTTP proxy module.
// Either a PAC URL or at least one proxy endpoint must be configured.
type HTTPProxyConfig struct {
	// Address is the plain HTTP proxy address.
	Address string `yaml:"address,omitempty"`
	// Port is the plain HTTP proxy port.
	Port int `yaml:"port,omitempty"`
	// SecureAddress is the HTTPS proxy address.
	SecureAddress string `yaml:"secure_address,omitempty"`
	// SecurePort is the HTTPS proxy port.
	SecurePort int `yaml:"secure_port,omitempty"`
	// PACURL is the proxy auto-configuration URL.
	PACURL string `yaml:"pac_url,omitempty"`
	// BypassDomains lists domains that skip the proxy.
	BypassDomains []string `yaml:"bypass_domains,omitempty"`
}

func (c *HTTPProxyConfig) validate() *fieldViolation {
	if c.PACURL == "" && c.Address == "" && c.SecureAddress == "" {
		return &fieldViolation{Field: "address", Reason: "a proxy address or a PAC URL is required"}
	}
	if c.Address != "" && (c.Port < 1 || c.Port > 65535) {
		return &fieldViolation{Field: "port", Reason: "port out of range"}
	}
	if c.SecureAddress != "" && (c.SecurePort < 1 || c.SecurePort > 65535) {
		return &fieldViolation{Field: "secure_port", Reason: "port out of range"}
	}
	return nil
}

func (c *HTTPProxyConfig) clone() *HTTPProxyConfig {
	out := *c
	out.BypassDomains = cloneStrings(c.BypassDomains)
	return &out
}
