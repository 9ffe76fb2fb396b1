package internal

import (
	"net"
	"strings"
)

// DefaultForwardedHeader is the proxy header consulted when forwarded
// addresses are trusted.
const DefaultForwardedHeader = "X-Forwarded-For"

// ResolveClientIP derives the identity key for the caller's network address.
//
// With trustForwarded set and a non-empty forwarded value, the first
// comma-separated token is returned as-is. No proxy allow-list applies, so any
// client can choose its own identity this way. Otherwise the peer address is
// used with its port stripped. A header whose first token is blank falls back
// to the peer address rather than yielding an empty identity that every such
// client would share.
func ResolveClientIP(forwarded, remoteAddr string, trustForwarded bool) string {
	if trustForwarded {
		if first := firstForwardedToken(forwarded); first != "" {
			return first
		}
	}
	return peerHost(remoteAddr)
}

func firstForwardedToken(header string) string {
	if header == "" {
		return ""
	}
	first, _, _ := strings.Cut(header, ",")
	return strings.TrimSpace(first)
}

func peerHost(remoteAddr string) string {
	remoteAddr = strings.TrimSpace(remoteAddr)
	if remoteAddr == "" {
		return ""
	}
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return strings.Trim(remoteAddr, "[]")
	}
	return host
}
