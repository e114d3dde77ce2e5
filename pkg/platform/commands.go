package platform

import "strconv"

// Argv is a command line: executable name followed by its arguments.
type Argv []string

func (a Argv) Name() string {
	if len(a) == 0 {
		return ""
	}
	return a[0]
}

func (a Argv) Args() []string {
	if len(a) < 2 {
		return nil
	}
	return a[1:]
}

// Commands is a set of native command templates for one platform.
// Templates are plain functions so they can not be mutated after construction.
type Commands struct {
	Platform Platform

	// Probe sends count echo requests to host
	Probe func(host string, count int) Argv
	// Trace runs hop by hop path discovery, numeric output only
	Trace func(host string) Argv
	// RouteDump prints the routing table
	RouteDump func() Argv
	// RouteAdd installs host route (exact match netmask) to target via gateway
	RouteAdd func(target, gateway string) Argv
	// RouteDel removes host route to target
	RouteDel func(target string) Argv
	// Reset flushes static routes or restarts network stack
	Reset func() Argv
}

// CommandsFor resolves command templates for a platform
func CommandsFor(p Platform) Commands {
	switch p {
	case Windows:
		return Commands{
			Platform: p,
			Probe: func(host string, count int) Argv {
				return Argv{"ping", "-n", strconv.Itoa(count), host}
			},
			Trace: func(host string) Argv {
				return Argv{"tracert", "-d", host}
			},
			RouteDump: func() Argv {
				return Argv{"route", "print"}
			},
			RouteAdd: func(target, gateway string) Argv {
				return Argv{"route", "add", target, "mask", "255.255.255.255", gateway}
			},
			RouteDel: func(target string) Argv {
				return Argv{"route", "delete", target}
			},
			Reset: func() Argv {
				return Argv{"route", "-f"}
			},
		}

	case Linux:
		return Commands{
			Platform: p,
			Probe: func(host string, count int) Argv {
				return Argv{"ping", "-c", strconv.Itoa(count), "-W", "1", host}
			},
			Trace: func(host string) Argv {
				return Argv{"traceroute", "-n", host}
			},
			RouteDump: func() Argv {
				return Argv{"ip", "route"}
			},
			RouteAdd: func(target, gateway string) Argv {
				return Argv{"ip", "route", "add", target + "/32", "via", gateway}
			},
			RouteDel: func(target string) Argv {
				return Argv{"ip", "route", "del", target + "/32"}
			},
			Reset: func() Argv {
				return Argv{"systemctl", "restart", "networking"}
			},
		}

	default:
		// macOS and BSDs share route(8) and netstat(1) syntax
		waitTime := "1"
		if p == Darwin {
			// macOS ping -W is in milliseconds
			waitTime = "1000"
		}
		return Commands{
			Platform: p,
			Probe: func(host string, count int) Argv {
				return Argv{"ping", "-c", strconv.Itoa(count), "-W", waitTime, host}
			},
			Trace: func(host string) Argv {
				return Argv{"traceroute", "-n", host}
			},
			RouteDump: func() Argv {
				return Argv{"netstat", "-rn", "-f", "inet"}
			},
			RouteAdd: func(target, gateway string) Argv {
				return Argv{"route", "-n", "add", "-host", target, gateway}
			},
			RouteDel: func(target string) Argv {
				return Argv{"route", "-n", "delete", "-host", target}
			},
			Reset: func() Argv {
				return Argv{"route", "-n", "flush"}
			},
		}
	}
}
