package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/SyntropyNet/pingopt/internal/config"
	"github.com/SyntropyNet/pingopt/internal/env"
	"github.com/SyntropyNet/pingopt/internal/exporter"
	"github.com/SyntropyNet/pingopt/internal/logger"
	"github.com/SyntropyNet/pingopt/internal/optimizer"
	"github.com/SyntropyNet/pingopt/pkg/latency"
	"github.com/SyntropyNet/pingopt/pkg/multiprobe"
	"github.com/SyntropyNet/pingopt/pkg/routectl"
)

const fullAppName = "PingOpt. "

func setupLogger() {
	if config.GetJSONLogging() {
		logger.SetupGlobalLoger(config.GetDebugLevel(), logger.NewJSONWriter(os.Stderr))
	} else {
		logger.SetupGlobalLoger(config.GetDebugLevel(), os.Stderr)
	}
}

func newController() *routectl.Controller {
	if config.GetRouteBackend() == config.RouteBackendNetlink {
		ctrl, err := routectl.NewNetlink()
		if err == nil {
			return ctrl
		}
		logger.Warning().Println(fullAppName, "netlink route backend:", err, ". Falling back to exec.")
	}
	return routectl.New()
}

func newProbe() *latency.Probe {
	if config.GetNativeFallback() {
		return latency.New(latency.WithNativeFallback())
	}
	return latency.New()
}

func loadEndpoints() ([]multiprobe.Endpoint, error) {
	servers, err := config.LoadServers(config.GetServersFile())
	if err != nil {
		return nil, err
	}

	endpoints := make([]multiprobe.Endpoint, 0, len(servers))
	for _, s := range servers {
		endpoints = append(endpoints, multiprobe.Endpoint{Name: s.Name, Host: s.IP})
	}
	return endpoints, nil
}

func main() {
	exitCode := 0
	defer func() { os.Exit(exitCode) }()

	execName := os.Args[0]

	showVersionAndExit := flag.Bool("version", false, "Show version and exit")
	once := flag.Bool("once", false, "Probe endpoints once and exit")
	traceHost := flag.String("trace", "", "Trace path to host and exit")
	showRoutes := flag.Bool("routes", false, "Print routing table and exit")
	optimize := flag.Bool("optimize", false, "Install override routes for slow endpoints (requires root)")
	reset := flag.Bool("reset", false, "Remove override routes (requires root)")

	flag.Parse()
	if *showVersionAndExit {
		fmt.Printf("%s (%s):\t%s\n\n", fullAppName, execName, config.GetFullVersion())
		return
	}

	config.Init()
	setupLogger()

	if err := env.Init(); err != nil {
		logger.Error().Println(fullAppName, err)
		exitCode = exitNotDir
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info().Println(fullAppName, execName, config.GetFullVersion(), "started.")
	logger.Info().Println(fullAppName, "Using native utilities for platform:", newProbe().Platform())

	switch {
	case *traceHost != "":
		exitCode = runTrace(ctx, *traceHost)
	case *showRoutes:
		exitCode = runRoutes(ctx)
	case *reset:
		exitCode = runReset(ctx)
	case *optimize:
		exitCode = runOptimize(ctx)
	default:
		exitCode = runPoll(ctx, *once)
	}
}

func runTrace(ctx context.Context, host string) int {
	hops := newProbe().TracePath(ctx, host)
	for i, hop := range hops {
		fmt.Printf("%2d  %-15s  %.1f ms\n", i+1, hop.Address, hop.LatencyMs)
	}
	if len(hops) == 0 {
		fmt.Println("no hops")
	}
	return 0
}

func runRoutes(ctx context.Context) int {
	logger.Info().Println(fullAppName, "Using route backend:", config.GetRouteBackendName(config.GetRouteBackend()))
	for _, r := range newController().GetCurrentRoutes(ctx) {
		fmt.Println(formatRoute(r))
	}
	return 0
}

func runReset(ctx context.Context) int {
	if code := requireRoot(); code != 0 {
		return code
	}
	if code := appLock(); code != 0 {
		return code
	}
	defer appUnlock()

	newController().ResetOverrides(ctx)
	logger.Info().Println(fullAppName, "override routes reset")
	return 0
}

func runOptimize(ctx context.Context) int {
	if code := requireRoot(); code != 0 {
		return code
	}
	if code := appLock(); code != 0 {
		return code
	}
	defer appUnlock()

	endpoints, err := loadEndpoints()
	if err != nil {
		logger.Error().Println(fullAppName, err)
		return exitNoEntry
	}

	ctrl := newController()
	gateways := ctrl.CandidateGateways(ctx)
	logger.Info().Println(fullAppName, "candidate gateways:", gateways)

	threshold, ratio, diff := config.GetRerouteThresholds()
	opt := optimizer.New(optimizer.Config{
		Threshold:    threshold,
		RerouteRatio: ratio,
		RerouteDiff:  diff,
		Count:        config.GetProbeCount(),
	}, newProbe(), ctrl)

	for _, ep := range endpoints {
		if ctx.Err() != nil {
			break
		}
		fmt.Println(formatDecision(ep, opt.Optimize(ctx, ep.Host, gateways)))
	}
	return 0
}

func runPoll(ctx context.Context, once bool) int {
	endpoints, err := loadEndpoints()
	if err != nil {
		logger.Error().Println(fullAppName, err)
		return exitNoEntry
	}

	clients := []multiprobe.ProbeClient{&printer{w: os.Stdout}}
	if port := config.GetExporterPort(); port > 0 && !once {
		collector := exporter.NewCollector()
		exp, err := exporter.New(port, collector)
		if err != nil {
			logger.Error().Println(fullAppName, "Could not create exporter", err)
			return exitNoMem
		}
		exp.Run(ctx)
		clients = append(clients, collector)
	}

	mp := multiprobe.New(newProbe(), clients...)
	mp.Count = config.GetProbeCount()
	mp.AddEndpoint(endpoints...)

	if once {
		mp.Probe(ctx)
		return 0
	}

	mp.Period = config.GetPollInterval()
	if err := mp.Start(ctx); err != nil {
		logger.Error().Println(fullAppName, err)
		return exitBusy
	}

	// Wait for SIGINT or SIGTERM to terminate app
	<-ctx.Done()
	logger.Info().Println(fullAppName, "terminating")
	mp.Stop()
	return 0
}
