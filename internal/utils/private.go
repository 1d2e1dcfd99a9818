package utils

import (
	"net"
	"net/netip"
)

var privateV4 = []netip.Prefix{
	netip.MustParsePrefix("0.0.0.0/8"),
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("127.0.0.0/8"),
	netip.MustParsePrefix("169.254.0.0/16"),
	netip.MustParsePrefix("172.16.0.0/12"),
	netip.MustParsePrefix("192.168.0.0/16"),
}

var privateV6 = []netip.Prefix{
	netip.MustParsePrefix("::1/128"),
	netip.MustParsePrefix("fc00::/7"),
	netip.MustParsePrefix("fe80::/10"),
}

// IsPrivateIP reports whether s is a loopback, link-local, private or
// "this network" address. Anything that does not parse as an IP counts as
// private. IPv4-mapped IPv6 addresses are judged as IPv4.
func IsPrivateIP(s string) bool {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return true
	}
	return IsPrivateAddr(addr)
}

// IsPrivateAddr is IsPrivateIP for a parsed address.
func IsPrivateAddr(addr netip.Addr) bool {
	if !addr.IsValid() {
		return true
	}
	addr = addr.Unmap().WithZone("")
	ranges := privateV6
	if addr.Is4() {
		ranges = privateV4
	}
	for _, p := range ranges {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// IsPrivateNetIP adapts IsPrivateAddr to net.IP, as returned by resolvers.
func IsPrivateNetIP(ip net.IP) bool {
	addr, ok := netip.AddrFromSlice(ip)
	if !ok {
		return true
	}
	return IsPrivateAddr(addr)
}
