package latency

import (
	"context"
	"runtime"
	"time"

	probing "github.com/prometheus-community/pro-bing"

	"github.com/SyntropyNet/pingopt/internal/logger"
)

func durationMs(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

// nativeMeasure sends ICMP echo from this process.
// Same semantics as the ping utility: no replies is unreachable.
func nativeMeasure(ctx context.Context, host string, count int) Sample {
	pinger, err := probing.NewPinger(host)
	if err != nil {
		logger.Error().Println(pkgName, "native ping", host, err)
		return Unreachable()
	}

	pinger.Count = count
	pinger.Interval = posixRequestTimeout
	pinger.Timeout = time.Duration(count)*posixRequestTimeout + posixRequestTimeout
	// Windows supports only privileged (raw socket) mode,
	// elsewhere unprivileged UDP ping is tried.
	pinger.SetPrivileged(runtime.GOOS == "windows")

	if err = pinger.RunWithContext(ctx); err != nil {
		logger.Error().Println(pkgName, "native ping", host, err)
		return Unreachable()
	}

	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		return Unreachable()
	}
	return Reachable(durationMs(stats.MinRtt), durationMs(stats.AvgRtt), durationMs(stats.MaxRtt))
}
