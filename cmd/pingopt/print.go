package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/SyntropyNet/pingopt/internal/optimizer"
	"github.com/SyntropyNet/pingopt/pkg/multiprobe"
	"github.com/SyntropyNet/pingopt/pkg/routectl"
)

// printer is a multiprobe client writing one line per endpoint
type printer struct {
	w io.Writer
}

func (p *printer) ProbeProcess(results []multiprobe.Result) {
	for _, res := range results {
		fmt.Fprintf(p.w, "%s %s %s\n", res.Name, res.Host, res.Sample)
	}
}

func formatRoute(r routectl.RouteEntry) string {
	if r.Network == "" {
		return r.Raw
	}
	fields := []string{r.Network, r.Netmask, r.Gateway, r.Interface}
	return strings.Join(fields, "\t")
}

func formatDecision(ep multiprobe.Endpoint, d optimizer.Decision) string {
	if d.Changed {
		return fmt.Sprintf("%s %s %s -> %s via %s (%s)",
			ep.Name, ep.Host, d.Before, d.After, d.Gateway, optimizer.ReasonString(d.Reason))
	}
	return fmt.Sprintf("%s %s %s unchanged (%s)",
		ep.Name, ep.Host, d.Before, optimizer.ReasonString(d.Reason))
}
