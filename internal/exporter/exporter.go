// Package exporter serves latency probe results as Prometheus metrics.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SyntropyNet/pingopt/internal/logger"
)

const pkgName = "PrometheusExporter. "

type Exporter struct {
	port uint16
	reg  *prometheus.Registry
}

func New(port uint16, collector prometheus.Collector) (*Exporter, error) {
	obj := Exporter{
		port: port,
		reg:  prometheus.NewRegistry(),
	}

	err := obj.reg.Register(collector)
	if err != nil {
		return nil, fmt.Errorf("register collector: %w", err)
	}

	return &obj, nil
}

func (obj *Exporter) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(obj.reg, promhttp.HandlerOpts{}))
	return mux
}

// Run starts serving in background. The server is closed when ctx is done.
func (obj *Exporter) Run(ctx context.Context) error {
	logger.Debug().Println(pkgName, "exporter starting on port", obj.port)
	srv := http.Server{
		Addr:         fmt.Sprintf(":%d", obj.port),
		Handler:      obj.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Println(pkgName, err)
		}
	}()

	go func() {
		<-ctx.Done()
		logger.Debug().Println(pkgName, "stopping")
		srv.Close()
	}()

	return nil
}
