package config

import (
	"os"
	"strings"

	"github.com/SyntropyNet/pingopt/internal/env"
	"github.com/SyntropyNet/pingopt/internal/logger"
)

const maxPort = 65535

func Init() {
	var tmpval uint

	initDebugLevel()
	initBool(&cache.jsonLogging, "PINGOPT_LOG_JSON", false)

	initString(&cache.serversFile, "PINGOPT_SERVERS_FILE", env.ServersFile)

	initUint(&cache.probeCount, "PINGOPT_PROBE_COUNT", 4)
	cache.probeCount = clampUint(cache.probeCount, 1, 100)

	initUint(&cache.pollInterval, "PINGOPT_POLL_INTERVAL", 5)
	cache.pollInterval = clampUint(cache.pollInterval, 1, 3600)

	initUint(&tmpval, "PINGOPT_EXPORTER_PORT", 0)
	if tmpval <= maxPort {
		cache.exporterPort = uint16(tmpval)
	}

	initRouteBackend()
	initBool(&cache.nativeFallback, "PINGOPT_NATIVE_FALLBACK", false)

	// reroute thresholds used to compare better latency.
	// Default values: diff >= 10ms and at least 10% better
	initFloat(&cache.reroute.threshold, "PINGOPT_REROUTE_THRESHOLD", 80)
	cache.reroute.ratio = 1.1
	cache.reroute.diff = 10
}

func initDebugLevel() {
	switch strings.ToUpper(os.Getenv("PINGOPT_LOG_LEVEL")) {
	case "DEBUG":
		cache.debugLevel = logger.DebugLevel
	case "INFO":
		cache.debugLevel = logger.InfoLevel
	case "WARNING":
		cache.debugLevel = logger.WarningLevel
	case "ERROR":
		cache.debugLevel = logger.ErrorLevel
	default:
		cache.debugLevel = logger.InfoLevel
	}
}

func initRouteBackend() {
	switch strings.ToLower(os.Getenv("PINGOPT_ROUTE_BACKEND")) {
	case "netlink":
		cache.routeBackend = RouteBackendNetlink
	default:
		cache.routeBackend = RouteBackendExec
	}
}
