// Package latency measures round trip time and traces the path to a host
// using native diagnostic utilities.
package latency

import (
	"context"
	"errors"
	"time"

	"github.com/SyntropyNet/pingopt/internal/logger"
	"github.com/SyntropyNet/pingopt/pkg/platform"
	"github.com/SyntropyNet/pingopt/pkg/shellcmd"
)

const (
	pkgName = "LatencyProbe. "

	DefaultCount = 4

	// Windows ping waits 4 seconds for every reply by default
	windowsRequestTimeout = 4 * time.Second
	posixRequestTimeout   = time.Second
	// name resolution and process start up
	deadlineOverhead = 5 * time.Second
)

// Probe runs native ping and traceroute. It holds no mutable state,
// concurrent use is safe.
type Probe struct {
	cmds   platform.Commands
	decode platform.Decoder
	runner shellcmd.Runner
	native func(ctx context.Context, host string, count int) Sample
}

type Option func(*Probe)

// WithPlatform selects commands and output decoding of another platform
func WithPlatform(p platform.Platform) Option {
	return func(pr *Probe) {
		pr.cmds = platform.CommandsFor(p)
		pr.decode = platform.DecoderFor(p)
	}
}

func WithRunner(r shellcmd.Runner) Option {
	return func(pr *Probe) {
		pr.runner = r
	}
}

// WithNativeFallback measures latency with in-process ICMP echo
// when the ping utility is not installed.
func WithNativeFallback() Option {
	return func(pr *Probe) {
		pr.native = nativeMeasure
	}
}

// New creates a probe for the detected platform
func New(opts ...Option) *Probe {
	p := platform.Detect()
	pr := &Probe{
		cmds:   platform.CommandsFor(p),
		decode: platform.DecoderFor(p),
		runner: shellcmd.ExecRunner{},
	}
	for _, opt := range opts {
		opt(pr)
	}
	return pr
}

func (pr *Probe) Platform() platform.Platform {
	return pr.cmds.Platform
}

// deadline bounds a probe in case ping ignores its own timeouts
func (pr *Probe) deadline(count int) time.Duration {
	perRequest := posixRequestTimeout
	if pr.cmds.Platform == platform.Windows {
		perRequest = windowsRequestTimeout
	}
	return time.Duration(count)*perRequest + deadlineOverhead
}

// Measure sends count echo requests to host and reduces replies to a sample.
// Any failure, including unparseable output, gives an unreachable sample.
// There are no retries.
func (pr *Probe) Measure(ctx context.Context, host string, count int) Sample {
	if count <= 0 {
		count = DefaultCount
	}

	ctx, cancel := context.WithTimeout(ctx, pr.deadline(count))
	defer cancel()

	raw, err := pr.runner.Run(ctx, pr.cmds.Probe(host, count))
	if err != nil && len(raw) == 0 {
		if errors.Is(err, shellcmd.ErrNotFound) && pr.native != nil {
			logger.Debug().Println(pkgName, "ping not found, using native echo for", host)
			return pr.native(ctx, host, count)
		}
		logger.Error().Println(pkgName, "ping", host, err)
		return Unreachable()
	}
	if err != nil {
		// e.g. some replies lost. Partial output is still usable.
		logger.Debug().Println(pkgName, "ping", host, err)
	}

	text, err := pr.decode(raw)
	if err != nil {
		logger.Error().Println(pkgName, "ping output", host, err)
		return Unreachable()
	}
	logger.Debug().Println(pkgName, "raw ping output:", text)

	sample := parseProbeOutput(pr.cmds.Platform == platform.Windows, text)
	if !sample.Reachable {
		logger.Debug().Println(pkgName, "no timing data for", host)
	}
	return sample
}

// TracePath runs the path trace once. Hops that did not answer are not
// reported, so the result may be shorter than the real path.
// Any failure gives an empty list.
func (pr *Probe) TracePath(ctx context.Context, host string) []Hop {
	raw, err := pr.runner.Run(ctx, pr.cmds.Trace(host))
	if err != nil {
		logger.Error().Println(pkgName, "trace", host, err)
		return []Hop{}
	}

	text, err := pr.decode(raw)
	if err != nil {
		logger.Error().Println(pkgName, "trace output", host, err)
		return []Hop{}
	}
	logger.Debug().Println(pkgName, "traceroute output:", text)

	return parseTraceOutput(text)
}
