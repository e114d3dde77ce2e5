package latency

import (
	"net/netip"
	"regexp"
	"strconv"
	"strings"
)

// Output of native utilities is not a stable contract across OS versions and
// locales. Patterns below are matched against lowercased text.
var (
	// Windows summary: "Average = 12ms", "Среднее = 12 мсек"
	reAverage = regexp.MustCompile(`(?:average|среднее)\s*=\s*(\d+(?:[.,]\d+)?)\s*(?:ms|мсек|мс)`)
	// Per reply: "time=23.4 ms", "time=23ms", "time<1ms", "время=23мс".
	// POSIX summary "time 3004ms" has no '=' and is not a reply.
	reReplyTime = regexp.MustCompile(`(?:time|время)\s*[=<]\s*(\d+(?:[.,]\d+)?)`)

	reHopIndex   = regexp.MustCompile(`^\s*\d+\s`)
	reHopLatency = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:ms|мс)`)
	reIPv4       = regexp.MustCompile(`\b\d{1,3}(?:\.\d{1,3}){3}\b`)
)

func parseNumber(str string) (float64, bool) {
	val, err := strconv.ParseFloat(strings.Replace(str, ",", ".", 1), 64)
	if err != nil || val < 0 {
		return 0, false
	}
	return val, true
}

// parseAverage finds the pre-aggregated average line of Windows ping
func parseAverage(text string) (float64, bool) {
	m := reAverage.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return 0, false
	}
	return parseNumber(m[1])
}

// parseReplyTimes extracts every per reply round trip time
func parseReplyTimes(text string) []float64 {
	times := []float64{}
	for _, m := range reReplyTime.FindAllStringSubmatch(strings.ToLower(text), -1) {
		if val, ok := parseNumber(m[1]); ok {
			times = append(times, val)
		}
	}
	return times
}

// parseProbeOutput reduces ping output to a sample.
// Only Windows ping reports a usable aggregated average, min and max
// are not separately taken from it.
func parseProbeOutput(windows bool, text string) Sample {
	if windows {
		if avg, ok := parseAverage(text); ok {
			return Reachable(avg, avg, avg)
		}
	}
	return reduce(parseReplyTimes(text))
}

// parseHopLine takes first IPv4 literal and first latency of a hop line.
// Lines without a leading hop index, address or latency are not hops.
func parseHopLine(line string) (Hop, bool) {
	line = strings.ToLower(line)
	if !reHopIndex.MatchString(line) {
		return Hop{}, false
	}

	var addr netip.Addr
	for _, candidate := range reIPv4.FindAllString(line, -1) {
		a, err := netip.ParseAddr(candidate)
		if err == nil && a.Is4() {
			addr = a
			break
		}
	}
	if !addr.IsValid() {
		return Hop{}, false
	}

	m := reHopLatency.FindStringSubmatch(line)
	if m == nil {
		return Hop{}, false
	}
	latency, ok := parseNumber(m[1])
	if !ok {
		return Hop{}, false
	}

	return Hop{Address: addr.String(), LatencyMs: latency}, true
}

func parseTraceOutput(text string) []Hop {
	hops := []Hop{}
	for _, line := range strings.Split(text, "\n") {
		if hop, ok := parseHopLine(line); ok {
			hops = append(hops, hop)
		}
	}
	return hops
}
