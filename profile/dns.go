package profile

import "net"

// DNSProtocol selects how DNS queries are transported.
type DNSProtocol string

const (
	// DNSProtocolCleartext uses plain UDP/TCP port 53.
	DNSProtocolCleartext DNSProtocol = "cleartext"
	// DNSProtocolHTTPS uses DNS over HTTPS.
	DNSProtocolHTTPS DNSProtocol = "https"
	// DNSProtocolTLS uses DNS over TLS.
	DNSProtocolTLS DNSProtocol = "tls"
)

// DNSConfig holds the fields of a DNS module.
type DNSConfig struct {
	// Protocol is the DNS transport. An empty value means cleartext.
	Protocol DNSProtocol `yaml:"protocol,omitempty"`
	// Servers is the list of DNS server addresses.
	Servers []string `yaml:"servers,omitempty"`
	// SearchDomains is the list of DNS search domains.
	SearchDomains []string `yaml:"search_domains,omitempty"`
	// DoHURL is the DNS-over-HTTPS endpoint, required with DNSProtocolHTTPS.
	DoHURL string `yaml:"doh_url,omitempty"`
	// DoTHostname is the DNS-over-TLS hostname, required with DNSProtocolTLS.
	DoTHostname string `yaml:"dot_hostname,omitempty"`
	// DomainName is the connection-wide domain name.
	DomainName string `yaml:"domain_name,omitempty"`
}

func (c *DNSConfig) validate() *fieldViolation {
	switch c.Protocol {
	case "", DNSProtocolCleartext:
	case DNSProtocolHTTPS:
		if c.DoHURL == "" {
			return &fieldViolation{Field: "doh_url", Reason: "required with the https protocol"}
		}
	case DNSProtocolTLS:
		if c.DoTHostname == "" {
			return &fieldViolation{Field: "dot_hostname", Reason: "required with the tls protocol"}
		}
	default:
		return &fieldViolation{Field: "protocol", Reason: "unknown DNS protocol"}
	}
	for _, server := range c.Servers {
		if net.ParseIP(server) == nil {
			return &fieldViolation{Field: "servers", Reason: "not an IP address: " + server}
		}
	}
	return nil
}

func (c *DNSConfig) clone() *DNSConfig {
	out := *c
	out.Servers = cloneStrings(c.Servers)
	out.SearchDomains = cloneStrings(c.SearchDomains)
	return &out
}
