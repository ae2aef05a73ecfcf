package geocode

import (
	"net/netip"
	"strings"
)

// QueryKind is the classification of a geocoding query.
type QueryKind int

// Query kinds, in classification order.
const (
	QueryEmpty QueryKind = iota
	QueryIPv4
	QueryIPv6
	QueryAddress
)

func (k QueryKind) String() string {
	switch k {
	case QueryEmpty:
		return "empty"
	case QueryIPv4:
		return "ipv4"
	case QueryIPv6:
		return "ipv6"
	default:
		return "address"
	}
}

// ClassifyQuery decides whether q is empty, an IP literal or a textual address.
// IPv4-mapped IPv6 literals such as "::ffff:1.2.3.4" are IPv6.
func ClassifyQuery(q string) QueryKind {
	q = strings.TrimSpace(q)
	if q == "" {
		return QueryEmpty
	}
	addr, err := netip.ParseAddr(q)
	if err != nil {
		return QueryAddress
	}
	if addr.Is4() {
		return QueryIPv4
	}
	return QueryIPv6
}

// IsLocalIPv4 reports whether q is an IPv4 literal that upstream services
// cannot geolocate: loopback, private, link-local, unspecified, or any other
// non-global unicast address.
func IsLocalIPv4(q string) bool {
	addr, err := netip.ParseAddr(strings.TrimSpace(q))
	if err != nil || !addr.Is4() {
		return false
	}
	return addr.IsLoopback() ||
		addr.IsPrivate() ||
		addr.IsLinkLocalUnicast() ||
		addr.IsUnspecified() ||
		!addr.IsGlobalUnicast()
}
