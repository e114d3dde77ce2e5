// Package optimizer tries override routes through candidate gateways and keeps
// one only when it measurably improves latency.
package optimizer

import (
	"context"

	"github.com/SyntropyNet/pingopt/internal/logger"
	"github.com/SyntropyNet/pingopt/pkg/latency"
)

const pkgName = "RouteOptimizer. "

const (
	ReasonNoChange = iota
	ReasonGoodEnough
	ReasonLatency
	ReasonReachable
)

func ReasonString(reason int) string {
	switch reason {
	case ReasonNoChange:
		return "no better path"
	case ReasonGoodEnough:
		return "latency below threshold"
	case ReasonLatency:
		return "lower latency"
	case ReasonReachable:
		return "became reachable"
	default:
		return "unknown"
	}
}

type Prober interface {
	Measure(ctx context.Context, host string, count int) latency.Sample
}

type Router interface {
	InstallOverride(ctx context.Context, target, gateway string) bool
	RemoveOverride(ctx context.Context, target string) bool
}

type Config struct {
	// Endpoints with average latency at or below Threshold (ms) are left alone
	Threshold float64
	// New path must be RerouteRatio times and RerouteDiff ms better
	RerouteRatio float64
	RerouteDiff  float64
	Count        int
}

// Decision describes what was done for one endpoint
type Decision struct {
	Endpoint string
	Gateway  string
	Before   latency.Sample
	After    latency.Sample
	Changed  bool
	Reason   int
}

type Optimizer struct {
	cfg    Config
	probe  Prober
	router Router
}

func New(cfg Config, probe Prober, router Router) *Optimizer {
	if cfg.Count <= 0 {
		cfg.Count = latency.DefaultCount
	}
	return &Optimizer{
		cfg:    cfg,
		probe:  probe,
		router: router,
	}
}

// better compares a re-probe through an override with the baseline.
// Reachability is a must, then thresholds are applied so that paths of
// about the same latency do not flip.
func (o *Optimizer) better(before, after latency.Sample) (int, bool) {
	switch {
	case !after.Reachable:
		return ReasonNoChange, false
	case !before.Reachable:
		return ReasonReachable, true
	case before.Avg/after.Avg >= o.cfg.RerouteRatio &&
		before.Avg-after.Avg >= o.cfg.RerouteDiff:
		return ReasonLatency, true
	default:
		return ReasonNoChange, false
	}
}

// Optimize measures host and, if it is unreachable or slow, tries an override
// via each gateway in turn. The first override that is better is kept,
// others are removed again. Host must be an IP address.
func (o *Optimizer) Optimize(ctx context.Context, host string, gateways []string) Decision {
	before := o.probe.Measure(ctx, host, o.cfg.Count)
	d := Decision{
		Endpoint: host,
		Before:   before,
		After:    before,
		Reason:   ReasonNoChange,
	}

	if before.Reachable && before.Avg <= o.cfg.Threshold {
		d.Reason = ReasonGoodEnough
		return d
	}

	for _, gw := range gateways {
		if ctx.Err() != nil {
			break
		}
		if !o.router.InstallOverride(ctx, host, gw) {
			continue
		}

		after := o.probe.Measure(ctx, host, o.cfg.Count)
		if reason, ok := o.better(before, after); ok {
			logger.Info().Println(pkgName, host, "via", gw, before, "->", after)
			d.Gateway = gw
			d.After = after
			d.Changed = true
			d.Reason = reason
			return d
		}

		logger.Debug().Println(pkgName, host, "via", gw, "is not better:", after)
		o.router.RemoveOverride(ctx, host)
	}

	return d
}
