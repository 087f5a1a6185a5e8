package profile

import "testing"

func TestNewModule_Consistency(t *testing.T) {
	for _, k := range AllKinds() {
		t.Run(string(k), func(t *testing.T) {
			m := NewModule(k)
			if m.ID.String() == "00000000-0000-0000-0000-000000000000" {
				t.Error("NewModule() did not assign an id")
			}
			if m.Kind != k {
				t.Errorf("NewModule() kind = %v, want %v", m.Kind, k)
			}
			if !m.isConsistent() {
				t.Errorf("NewModule(%s) config does not match kind", k)
			}
		})
	}
}

func TestDNSConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    DNSConfig
		wantField string
	}{
		{"empty cleartext", DNSConfig{}, ""},
		{"cleartext with servers", DNSConfig{Protocol: DNSProtocolCleartext, Servers: []string{"1.1.1.1", "2606:4700:4700::1111"}}, ""},
		{"https with url", DNSConfig{Protocol: DNSProtocolHTTPS, DoHURL: "https://cloudflare-dns.com/dns-query"}, ""},
		{"https without url", DNSConfig{Protocol: DNSProtocolHTTPS}, "doh_url"},
		{"tls with hostname", DNSConfig{Protocol: DNSProtocolTLS, DoTHostname: "one.one.one.one"}, ""},
		{"tls without hostname", DNSConfig{Protocol: DNSProtocolTLS}, "dot_hostname"},
		{"unknown protocol", DNSConfig{Protocol: "dnscrypt"}, "protocol"},
		{"bad server address", DNSConfig{Servers: []string{"not-an-ip"}}, "servers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.config.validate()
			if tt.wantField == "" {
				if v != nil {
					t.Errorf("validate() = %v, want nil", v)
				}
				return
			}
			if v == nil {
				t.Fatalf("validate() = nil, want violation of %s", tt.wantField)
			}
			if v.Field != tt.wantField {
				t.Errorf("validate() field = %s, want %s", v.Field, tt.wantField)
			}
		})
	}
}

func TestOpenVPNConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    OpenVPNConfig
		wantField string
	}{
		{"no remotes no provider", OpenVPNConfig{}, "remotes"},
		{"valid remote", OpenVPNConfig{Remotes: []Endpoint{{Host: "vpn.example.com", Port: 1194, Proto: "udp"}}}, ""},
		{"remote without host", OpenVPNConfig{Remotes: []Endpoint{{Port: 1194, Proto: "udp"}}}, "remotes"},
		{"remote port out of range", OpenVPNConfig{Remotes: []Endpoint{{Host: "h", Port: 0, Proto: "tcp"}}}, "remotes"},
		{"remote bad proto", OpenVPNConfig{Remotes: []Endpoint{{Host: "h", Port: 1194, Proto: "sctp"}}}, "remotes"},
		{"provider selection", OpenVPNConfig{Provider: &ProviderSelection{ProviderID: "mullvad", PresetID: "default"}}, ""},
		{"provider without preset", OpenVPNConfig{Provider: &ProviderSelection{ProviderID: "mullvad"}}, "provider.preset_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.config.validate()
			if tt.wantField == "" {
				if v != nil {
					t.Errorf("validate() = %v, want nil", v)
				}
				return
			}
			if v == nil || v.Field != tt.wantField {
				t.Errorf("validate() = %v, want violation of %s", v, tt.wantField)
			}
		})
	}
}

func TestWireGuardConfig_Validate(t *testing.T) {
	valid := WireGuardConfig{
		PrivateKey: "cGtleQ==",
		Addresses:  []string{"10.0.0.2/32"},
		Peers:      []WireGuardPeer{{PublicKey: "cHVi", AllowedIPs: []string{"0.0.0.0/0"}}},
	}
	if v := valid.validate(); v != nil {
		t.Errorf("validate() = %v, want nil", v)
	}

	noKey := valid
	noKey.PrivateKey = ""
	if v := noKey.validate(); v == nil || v.Field != "private_key" {
		t.Errorf("validate() = %v, want violation of private_key", v)
	}

	noPeers := valid
	noPeers.Peers = nil
	if v := noPeers.validate(); v == nil || v.Field != "peers" {
		t.Errorf("validate() = %v, want violation of peers", v)
	}

	badCIDR := valid
	badCIDR.Peers = []WireGuardPeer{{PublicKey: "cHVi", AllowedIPs: []string{"10.0.0.1"}}}
	if v := badCIDR.validate(); v == nil || v.Field != "peers" {
		t.Errorf("validate() = %v, want violation of peers", v)
	}
}

func TestHTTPProxyConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    HTTPProxyConfig
		wantField string
	}{
		{"empty", HTTPProxyConfig{}, "address"},
		{"plain proxy", HTTPProxyConfig{Address: "10.0.0.1", Port: 8080}, ""},
		{"plain proxy bad port", HTTPProxyConfig{Address: "10.0.0.1"}, "port"},
		{"pac only", HTTPProxyConfig{PACURL: "http://pac.example.com/proxy.pac"}, ""},
		{"secure proxy bad port", HTTPProxyConfig{SecureAddress: "10.0.0.1", SecurePort: 70000}, "secure_port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.config.validate()
			if tt.wantField == "" {
				if v != nil {
					t.Errorf("validate() = %v, want nil", v)
				}
				return
			}
			if v == nil || v.Field != tt.wantField {
				t.Errorf("validate() = %v, want violation of %s", v, tt.wantField)
			}
		})
	}
}

func TestIPConfig_Validate(t *testing.T) {
	valid := IPConfig{
		IncludedRoutes: []Route{{Destination: "192.168.1.0/24", Gateway: "192.168.1.1"}, {Destination: "default"}},
		ExcludedRoutes: []Route{{Destination: "10.0.0.0/8"}},
		MTU:            1400,
	}
	if v := valid.validate(); v != nil {
		t.Errorf("validate() = %v, want nil", v)
	}

	badDest := IPConfig{IncludedRoutes: []Route{{Destination: "192.168.1.0"}}}
	if v := badDest.validate(); v == nil || v.Field != "included_routes" {
		t.Errorf("validate() = %v, want violation of included_routes", v)
	}

	badGateway := IPConfig{ExcludedRoutes: []Route{{Destination: "10.0.0.0/8", Gateway: "nope"}}}
	if v := badGateway.validate(); v == nil || v.Field != "excluded_routes" {
		t.Errorf("validate() = %v, want violation of excluded_routes", v)
	}

	badMTU := IPConfig{MTU: -1}
	if v := badMTU.validate(); v == nil || v.Field != "mtu" {
		t.Errorf("validate() = %v, want violation of mtu", v)
	}
}

func TestOnDemandConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    OnDemandConfig
		wantField string
	}{
		{"empty", OnDemandConfig{}, ""},
		{"any", OnDemandConfig{Policy: OnDemandPolicyAny}, ""},
		{"including with ssid", OnDemandConfig{Policy: OnDemandPolicyIncluding, SSIDs: []string{"Home"}}, ""},
		{"including without rules", OnDemandConfig{Policy: OnDemandPolicyIncluding}, "ssids"},
		{"excluding with ethernet", OnDemandConfig{Policy: OnDemandPolicyExcluding, WithEthernet: true}, ""},
		{"unknown policy", OnDemandConfig{Policy: "sometimes"}, "policy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.config.validate()
			if tt.wantField == "" {
				if v != nil {
					t.Errorf("validate() = %v, want nil", v)
				}
				return
			}
			if v == nil || v.Field != tt.wantField {
				t.Errorf("validate() = %v, want violation of %s", v, tt.wantField)
			}
		})
	}
}

func TestModule_Clone(t *testing.T) {
	m := NewModule(KindDNS)
	m.DNS.Servers = []string{"1.1.1.1"}

	clone := m.Clone()
	clone.DNS.Servers[0] = "8.8.8.8"
	clone.DNS.DoHURL = "https://dns.example.com"

	if m.DNS.Servers[0] != "1.1.1.1" {
		t.Error("Clone() shares the servers slice with the original")
	}
	if m.DNS.DoHURL != "" {
		t.Error("Clone() shares the config pointer with the original")
	}
}
