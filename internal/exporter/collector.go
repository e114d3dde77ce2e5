package exporter

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/SyntropyNet/pingopt/pkg/latency"
	"github.com/SyntropyNet/pingopt/pkg/multiprobe"
)

var (
	labels    = []string{"name", "ip"}
	descMin   = prometheus.NewDesc("pingopt_latency_min_ms", "Minimal round trip time to endpoint", labels, nil)
	descAvg   = prometheus.NewDesc("pingopt_latency_avg_ms", "Average round trip time to endpoint", labels, nil)
	descMax   = prometheus.NewDesc("pingopt_latency_max_ms", "Maximal round trip time to endpoint", labels, nil)
	descReach = prometheus.NewDesc("pingopt_reachable", "Endpoint answered the last probe", labels, nil)
)

type endpointInfo struct {
	name   string
	sample latency.Sample
}

// Collector keeps the last probe results and exposes them as gauges.
// It is a multiprobe.ProbeClient.
type Collector struct {
	sync.Mutex
	entries map[string]endpointInfo
}

func NewCollector() *Collector {
	return &Collector{
		entries: make(map[string]endpointInfo),
	}
}

// ProbeProcess replaces stored results. Endpoints missing from
// the latest round are no longer exported.
func (c *Collector) ProbeProcess(results []multiprobe.Result) {
	c.Lock()
	defer c.Unlock()

	entries := make(map[string]endpointInfo, len(results))
	for _, res := range results {
		entries[res.Host] = endpointInfo{
			name:   res.Name,
			sample: res.Sample,
		}
	}
	c.entries = entries
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- descMin
	ch <- descAvg
	ch <- descMax
	ch <- descReach
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.Lock()
	defer c.Unlock()

	for ip, entry := range c.entries {
		reachable := 0.0
		if entry.sample.Reachable {
			reachable = 1
		}
		ch <- prometheus.MustNewConstMetric(descReach, prometheus.GaugeValue, reachable, entry.name, ip)

		// Sentinel values are not latencies, so timings are exported only for reachable endpoints
		if !entry.sample.Reachable {
			continue
		}
		ch <- prometheus.MustNewConstMetric(descMin, prometheus.GaugeValue, entry.sample.Min, entry.name, ip)
		ch <- prometheus.MustNewConstMetric(descAvg, prometheus.GaugeValue, entry.sample.Avg, entry.name, ip)
		ch <- prometheus.MustNewConstMetric(descMax, prometheus.GaugeValue, entry.sample.Max, entry.name, ip)
	}
}
