// Package multiprobe measures a list of endpoints concurrently, once or periodically.
package multiprobe

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/SyntropyNet/pingopt/internal/logger"
	"github.com/SyntropyNet/pingopt/pkg/latency"
)

const pkgName = "MultiProbe. "

var ErrRunning = errors.New("already running")

// Endpoint is a named host
type Endpoint struct {
	Name string
	Host string
}

// Result is a sample of one endpoint
type Result struct {
	Endpoint
	Sample latency.Sample
	Time   time.Time
}

// Measurer is satisfied by *latency.Probe
type Measurer interface {
	Measure(ctx context.Context, host string, count int) latency.Sample
}

// Unified interface to process probe results
type ProbeClient interface {
	ProbeProcess(results []Result)
}

type MultiProbe struct {
	sync.RWMutex
	probe     Measurer
	clients   []ProbeClient
	endpoints []Endpoint
	cancel    context.CancelFunc
	done      chan struct{}

	Count  int
	Period time.Duration
}

func New(probe Measurer, clients ...ProbeClient) *MultiProbe {
	return &MultiProbe{
		probe:   probe,
		clients: clients,
		Count:   latency.DefaultCount,
		Period:  0,
	}
}

// AddEndpoint adds endpoints. Endpoints with already known host are skipped.
func (mp *MultiProbe) AddEndpoint(endpoints ...Endpoint) {
	mp.Lock()
	defer mp.Unlock()

	for _, ep := range endpoints {
		duplicate := false
		for _, e := range mp.endpoints {
			if e.Host == ep.Host {
				duplicate = true
				break
			}
		}
		if !duplicate {
			mp.endpoints = append(mp.endpoints, ep)
		}
	}
}

// DelEndpoint removes endpoints by host. Order of others is kept.
func (mp *MultiProbe) DelEndpoint(hosts ...string) {
	mp.Lock()
	defer mp.Unlock()

	for _, h := range hosts {
		for i, e := range mp.endpoints {
			if e.Host == h {
				mp.endpoints = append(mp.endpoints[:i], mp.endpoints[i+1:]...)
				break
			}
		}
	}
}

// Remove all configured endpoints
func (mp *MultiProbe) Flush() {
	mp.Lock()
	defer mp.Unlock()
	mp.endpoints = []Endpoint{}
}

func (mp *MultiProbe) Endpoints() []Endpoint {
	mp.RLock()
	defer mp.RUnlock()

	rv := make([]Endpoint, len(mp.endpoints))
	copy(rv, mp.endpoints)
	return rv
}

// Probe measures all endpoints concurrently and passes results, in endpoint
// order, to every client. Results are returned too.
func (mp *MultiProbe) Probe(ctx context.Context) []Result {
	mp.RLock()
	endpoints := make([]Endpoint, len(mp.endpoints))
	copy(endpoints, mp.endpoints)
	count := mp.Count
	clients := mp.clients
	mp.RUnlock()

	results := make([]Result, len(endpoints))
	wg := sync.WaitGroup{}
	wg.Add(len(endpoints))
	for i := range endpoints {
		// every goroutine writes only its own index
		go func(idx int) {
			defer wg.Done()
			results[idx] = Result{
				Endpoint: endpoints[idx],
				Sample:   mp.probe.Measure(ctx, endpoints[idx].Host, count),
				Time:     time.Now(),
			}
		}(i)
	}
	wg.Wait()

	for _, c := range clients {
		c.ProbeProcess(results)
	}
	return results
}

// Start polls endpoints every Period until Stop is called or ctx is done.
// Period of zero disables polling.
func (mp *MultiProbe) Start(ctx context.Context) error {
	mp.Lock()
	defer mp.Unlock()

	if mp.Period == 0 {
		return nil
	}
	if mp.cancel != nil {
		return ErrRunning
	}

	ctx, mp.cancel = context.WithCancel(ctx)
	mp.done = make(chan struct{})

	go func(period time.Duration, cancel context.CancelFunc, done chan struct{}) {
		defer close(done)
		defer mp.release(done)
		defer cancel()
		ticker := time.NewTicker(period)
		defer ticker.Stop()

		mp.Probe(ctx)
		for {
			select {
			case <-ctx.Done():
				logger.Debug().Println(pkgName, "stopped")
				return
			case <-ticker.C:
				mp.Probe(ctx)
			}
		}
	}(mp.Period, mp.cancel, mp.done)

	return nil
}

// release clears the poller state once its goroutine exits, so polling
// stopped by parent ctx may be started again. A newer poller is left alone.
func (mp *MultiProbe) release(done chan struct{}) {
	mp.Lock()
	defer mp.Unlock()
	if mp.done == done {
		mp.cancel, mp.done = nil, nil
	}
}

// Stop stops polling and waits for the running round to finish
func (mp *MultiProbe) Stop() {
	mp.Lock()
	cancel, done := mp.cancel, mp.done
	mp.cancel, mp.done = nil, nil
	mp.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
