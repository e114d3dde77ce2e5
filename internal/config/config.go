package config

const pkgName = "PingOptConfig. "

const (
	RouteBackendExec = iota
	RouteBackendNetlink
)

// Endpoint is a named host to be probed
type Endpoint struct {
	Name string `yaml:"name" json:"name"`
	IP   string `yaml:"ip" json:"ip"`
}

// This struct is used to cache commonly used configuration.
// Values are exported shell variables parsed once in Init and used from here.
type configCache struct {
	debugLevel  int
	jsonLogging bool

	serversFile    string
	probeCount     uint
	pollInterval   uint // seconds
	exporterPort   uint16
	routeBackend   int
	nativeFallback bool

	reroute struct {
		threshold float64 // ms, avg latency above it triggers optimization
		ratio     float64
		diff      float64 // ms
	}
}

var cache configCache
