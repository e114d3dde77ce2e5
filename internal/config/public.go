package config

import "time"

func GetDebugLevel() int {
	return cache.debugLevel
}

func GetJSONLogging() bool {
	return cache.jsonLogging
}

func GetServersFile() string {
	return cache.serversFile
}

func GetProbeCount() int {
	return int(cache.probeCount)
}

func GetPollInterval() time.Duration {
	return time.Duration(cache.pollInterval) * time.Second
}

func GetExporterPort() uint16 {
	return cache.exporterPort
}

func GetRouteBackend() int {
	return cache.routeBackend
}

func GetRouteBackendName(backend int) string {
	switch backend {
	case RouteBackendExec:
		return "exec"
	case RouteBackendNetlink:
		return "netlink"
	default:
		return "unknown"
	}
}

func GetNativeFallback() bool {
	return cache.nativeFallback
}

// GetRerouteThresholds returns latency above which optimization is attempted,
// and ratio/diff a new path must be better by.
func GetRerouteThresholds() (threshold, ratio, diff float64) {
	return cache.reroute.threshold, cache.reroute.ratio, cache.reroute.diff
}
