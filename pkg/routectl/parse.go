package routectl

import (
	"net/netip"
	"strings"
)

// Section markers of `route print`, English and Russian Windows
var (
	activeRoutesMarkers = []string{"active routes:", "активные маршруты:"}
)

func isActiveRoutesMarker(line string) bool {
	line = strings.ToLower(line)
	for _, m := range activeRoutesMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// parseWindowsRoutes takes rows of "Active Routes" sections only:
// Network Destination, Netmask, Gateway, Interface (metric is ignored).
// A separator line ends the section. Column headers and IPv6 rows do not start
// with an IPv4 destination and are skipped.
func parseWindowsRoutes(text string) []RouteEntry {
	routes := []RouteEntry{}
	active := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case isActiveRoutesMarker(line):
			active = true
			continue
		case !active || line == "":
			continue
		case strings.HasPrefix(line, "="):
			active = false
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		if addr, err := netip.ParseAddr(fields[0]); err != nil || !addr.Is4() {
			continue
		}
		routes = append(routes, RouteEntry{
			Network:   fields[0],
			Netmask:   fields[1],
			Gateway:   fields[2],
			Interface: fields[3],
			Raw:       line,
		})
	}
	return routes
}

// parsePosixRoutes keeps every non blank line as an opaque route
func parsePosixRoutes(text string) []RouteEntry {
	routes := []RouteEntry{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			routes = append(routes, RouteEntry{Raw: line})
		}
	}
	return routes
}

func parseGateway(str string) (netip.Addr, bool) {
	addr, err := netip.ParseAddr(str)
	if err != nil || !addr.Is4() || addr.IsUnspecified() || addr.IsLoopback() {
		return netip.Addr{}, false
	}
	return addr, true
}

// gatewayOf finds a gateway address of a route.
// Opaque lines are searched for `via X` (ip route) or a gateway column with
// G flag (netstat -rn).
func gatewayOf(r RouteEntry) (netip.Addr, bool) {
	if r.Gateway != "" {
		return parseGateway(r.Gateway)
	}

	fields := strings.Fields(r.Raw)
	for i := 0; i+1 < len(fields); i++ {
		if fields[i] == "via" {
			return parseGateway(fields[i+1])
		}
	}

	if len(fields) >= 3 && strings.Contains(fields[2], "G") {
		return parseGateway(fields[1])
	}
	return netip.Addr{}, false
}
