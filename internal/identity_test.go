package internal

import "testing"

func TestResolveClientIP(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		remoteAddr string
		trust      bool
		want       string
	}{
		{name: "peer with port", remoteAddr: "203.0.113.7:43210", want: "203.0.113.7"},
		{name: "peer without port", remoteAddr: "203.0.113.7", want: "203.0.113.7"},
		{name: "ipv6 peer", remoteAddr: "[2001:db8::1]:8080", want: "2001:db8::1"},
		{name: "untrusted header ignored", forwarded: "198.51.100.5", remoteAddr: "203.0.113.7:1", want: "203.0.113.7"},
		{name: "trusted header first token", forwarded: "198.51.100.5, 10.0.0.1", remoteAddr: "203.0.113.7:1", trust: true, want: "198.51.100.5"},
		{name: "trusted header not validated", forwarded: "anything-goes", remoteAddr: "203.0.113.7:1", trust: true, want: "anything-goes"},
		{name: "trusted but empty header", forwarded: "", remoteAddr: "203.0.113.7:1", trust: true, want: "203.0.113.7"},
		{name: "trusted but blank first token", forwarded: " , 10.0.0.1", remoteAddr: "203.0.113.7:1", trust: true, want: "203.0.113.7"},
		{name: "trusted whitespace header", forwarded: "   ", remoteAddr: "203.0.113.7:1", trust: true, want: "203.0.113.7"},
		{name: "nothing known", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveClientIP(tc.forwarded, tc.remoteAddr, tc.trust); got != tc.want {
				t.Fatalf("ResolveClientIP() = %q, want %q", got, tc.want)
			}
		})
	}
}
