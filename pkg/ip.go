package pkg

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

var dockerBridgeRange = netip.MustParsePrefix("172.16.0.0/12")

// IPIsLocal reports loopback addresses and docker bridge gateways (172.16-31.x.1),
// with or without a port.
func IPIsLocal(ipAddr string) bool {
	addr, ok := parseAddr(ipAddr)
	if !ok {
		return false
	}
	if addr.IsLoopback() {
		return true
	}
	if !addr.Is4() || !dockerBridgeRange.Contains(addr) {
		return false
	}
	b := addr.As4()
	return b[3] == 1
}

// ReadUserIP returns the client IP. X-Real-Ip wins over the first
// X-Forwarded-For hop, which wins over the remote address.
func ReadUserIP(r *http.Request) (string, error) {
	ipAddr := r.Header.Get("X-Real-Ip")
	if ipAddr == "" {
		ipAddr, _, _ = strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	}
	ipAddr = strings.TrimSpace(ipAddr)
	if ipAddr == "" {
		ipAddr = r.RemoteAddr
	}

	addr, ok := parseAddr(ipAddr)
	if !ok {
		return "", fmt.Errorf("ip addr %s is invalid", ipAddr)
	}
	if IPIsLocal(ipAddr) {
		return "localhost", nil
	}
	return addr.String(), nil
}

func parseAddr(s string) (netip.Addr, bool) {
	if host, _, err := net.SplitHostPort(s); err == nil {
		s = host
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}
