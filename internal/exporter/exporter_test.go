package exporter

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/SyntropyNet/pingopt/pkg/latency"
	"github.com/SyntropyNet/pingopt/pkg/multiprobe"
)

func gather(t *testing.T, c *Collector) map[string]float64 {
	t.Helper()

	reg := prometheus.NewRegistry()
	reg.MustRegister(c)
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %s", err)
	}

	values := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, l := range m.GetLabel() {
				key = key + " " + l.GetName() + "=" + l.GetValue()
			}
			values[key] = m.GetGauge().GetValue()
		}
	}
	return values
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.ProbeProcess([]multiprobe.Result{
		{Endpoint: multiprobe.Endpoint{Name: "eu", Host: "10.0.0.1"}, Sample: latency.Reachable(10, 12.5, 15)},
		{Endpoint: multiprobe.Endpoint{Name: "us", Host: "10.0.0.2"}, Sample: latency.Unreachable()},
	})

	expected := map[string]float64{
		"pingopt_latency_min_ms ip=10.0.0.1 name=eu": 10,
		"pingopt_latency_avg_ms ip=10.0.0.1 name=eu": 12.5,
		"pingopt_latency_max_ms ip=10.0.0.1 name=eu": 15,
		"pingopt_reachable ip=10.0.0.1 name=eu":      1,
		"pingopt_reachable ip=10.0.0.2 name=us":      0,
	}
	if diff := cmp.Diff(expected, gather(t, c)); diff != "" {
		t.Errorf("metrics mismatch (-want +got):\n%s", diff)
	}

	// Endpoints absent in the next round disappear
	c.ProbeProcess([]multiprobe.Result{
		{Endpoint: multiprobe.Endpoint{Name: "us", Host: "10.0.0.2"}, Sample: latency.Reachable(40, 40, 40)},
	})
	expected = map[string]float64{
		"pingopt_latency_min_ms ip=10.0.0.2 name=us": 40,
		"pingopt_latency_avg_ms ip=10.0.0.2 name=us": 40,
		"pingopt_latency_max_ms ip=10.0.0.2 name=us": 40,
		"pingopt_reachable ip=10.0.0.2 name=us":      1,
	}
	if diff := cmp.Diff(expected, gather(t, c)); diff != "" {
		t.Errorf("metrics mismatch after update (-want +got):\n%s", diff)
	}
}

func TestHandler(t *testing.T) {
	c := NewCollector()
	c.ProbeProcess([]multiprobe.Result{
		{Endpoint: multiprobe.Endpoint{Name: "eu", Host: "10.0.0.1"}, Sample: latency.Reachable(1, 2, 3)},
	})

	exp, err := New(0, c)
	if err != nil {
		t.Fatalf("exporter init failed: %s", err)
	}

	srv := httptest.NewServer(exp.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("scrape failed: %s", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read failed: %s", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `pingopt_latency_avg_ms{ip="10.0.0.1",name="eu"} 2`) {
		t.Errorf("average latency not exported:\n%s", body)
	}
}

func TestDoubleRegister(t *testing.T) {
	// an empty collector still describes its metrics
	c := NewCollector()
	exp, err := New(0, c)
	if err != nil {
		t.Fatalf("exporter init failed: %s", err)
	}

	err = exp.reg.Register(c)
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		t.Errorf("second registration of the same collector must fail, got %v", err)
	}
}

func TestDescribe(t *testing.T) {
	ch := make(chan *prometheus.Desc, 8)
	NewCollector().Describe(ch)
	close(ch)

	count := 0
	for range ch {
		count++
	}
	if count != 4 {
		t.Errorf("expected 4 descriptors, got %d", count)
	}
}
