// Package routectl reads the routing table and installs or removes a single
// host override route through a preferred gateway.
package routectl

import (
	"context"
	"errors"
	"net/netip"

	"github.com/SyntropyNet/pingopt/internal/logger"
	"github.com/SyntropyNet/pingopt/pkg/platform"
	"github.com/SyntropyNet/pingopt/pkg/shellcmd"
)

const pkgName = "RouteController. "

var (
	ErrNoGateway      = errors.New("no gateway")
	ErrInvalidAddress = errors.New("invalid IPv4 address")
	ErrNotSupported   = errors.New("not supported on this platform")
)

// RouteEntry is one routing table line. Windows and netlink routes have
// structured fields; POSIX command output is kept only as Raw.
type RouteEntry struct {
	Network   string
	Netmask   string
	Gateway   string
	Interface string
	Raw       string
}

// Backend talks to the OS routing table
type Backend interface {
	Routes(ctx context.Context) ([]RouteEntry, error)
	Add(ctx context.Context, target, gateway string) error
	Del(ctx context.Context, target string) error
	Reset(ctx context.Context) error
}

// Controller has no state of its own, every call reads or writes live OS state.
// Errors are logged and reduced to empty results or false.
type Controller struct {
	backend Backend
}

type Option func(*execBackend)

func WithPlatform(p platform.Platform) Option {
	return func(eb *execBackend) {
		eb.cmds = platform.CommandsFor(p)
		eb.decode = platform.DecoderFor(p)
	}
}

func WithRunner(r shellcmd.Runner) Option {
	return func(eb *execBackend) {
		eb.runner = r
	}
}

// New creates a controller running native route utilities of the detected platform
func New(opts ...Option) *Controller {
	return NewWithBackend(newExecBackend(opts...))
}

func NewWithBackend(b Backend) *Controller {
	return &Controller{backend: b}
}

// GetCurrentRoutes reads the routing table. Failure gives an empty list.
func (c *Controller) GetCurrentRoutes(ctx context.Context) []RouteEntry {
	routes, err := c.backend.Routes(ctx)
	if err != nil {
		logger.Error().Println(pkgName, "route list", err)
		return []RouteEntry{}
	}
	if routes == nil {
		routes = []RouteEntry{}
	}
	return routes
}

// InstallOverride adds a host route to target via gateway.
// Gateway is never guessed: without one nothing is done and false is returned.
func (c *Controller) InstallOverride(ctx context.Context, target, gateway string) bool {
	if gateway == "" {
		logger.Warning().Println(pkgName, "override", target, ErrNoGateway)
		return false
	}

	if err := c.backend.Add(ctx, target, gateway); err != nil {
		logger.Error().Println(pkgName, "override", target, "via", gateway, err)
		return false
	}
	logger.Info().Println(pkgName, "override", target, "via", gateway, "installed")
	return true
}

// RemoveOverride deletes a host route to target
func (c *Controller) RemoveOverride(ctx context.Context, target string) bool {
	if err := c.backend.Del(ctx, target); err != nil {
		logger.Error().Println(pkgName, "override remove", target, err)
		return false
	}
	logger.Info().Println(pkgName, "override", target, "removed")
	return true
}

// ResetOverrides flushes static routes (or restarts networking).
// It is best effort and never reports failure.
func (c *Controller) ResetOverrides(ctx context.Context) {
	if err := c.backend.Reset(ctx); err != nil {
		logger.Warning().Println(pkgName, "reset", err)
		return
	}
	logger.Info().Println(pkgName, "routes reset")
}

// CandidateGateways lists distinct IPv4 gateways of the current routing table,
// in the order they appear.
func (c *Controller) CandidateGateways(ctx context.Context) []string {
	seen := map[netip.Addr]bool{}
	rv := []string{}

	for _, r := range c.GetCurrentRoutes(ctx) {
		addr, ok := gatewayOf(r)
		if !ok || seen[addr] {
			continue
		}
		seen[addr] = true
		rv = append(rv, addr.String())
	}
	return rv
}
