//go:build linux

package routectl

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

// netlinkBackend talks to the kernel directly. Routes it installs are marked
// with static protocol, Reset removes only such host routes.
type netlinkBackend struct{}

// NewNetlink creates a controller using rtnetlink instead of route utilities
func NewNetlink() (*Controller, error) {
	return NewWithBackend(&netlinkBackend{}), nil
}

func ifnameFromIndex(idx int) string {
	l, err := netlink.LinkByIndex(idx)
	if err != nil {
		return ""
	}
	return l.Attrs().Name
}

func hostPrefix(target string) (*net.IPNet, error) {
	ip := net.ParseIP(target).To4()
	if ip == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, target)
	}
	return &net.IPNet{IP: ip, Mask: net.CIDRMask(32, 32)}, nil
}

func isHostRoute(r *netlink.Route) bool {
	if r.Dst == nil {
		return false
	}
	ones, bits := r.Dst.Mask.Size()
	return ones == 32 && bits == 32
}

// isOverrideRoute matches routes this backend could have installed
func isOverrideRoute(r *netlink.Route) bool {
	return isHostRoute(r) && r.Protocol == unix.RTPROT_STATIC
}

func (nb *netlinkBackend) Routes(ctx context.Context) ([]RouteEntry, error) {
	routes, err := netlink.RouteList(nil, unix.AF_INET)
	if err != nil {
		return nil, err
	}

	rv := make([]RouteEntry, 0, len(routes))
	for _, r := range routes {
		entry := RouteEntry{
			Network:   "0.0.0.0",
			Netmask:   "0.0.0.0",
			Interface: ifnameFromIndex(r.LinkIndex),
			Raw:       r.String(),
		}
		if r.Dst != nil {
			entry.Network = r.Dst.IP.String()
			entry.Netmask = net.IP(r.Dst.Mask).String()
		}
		if r.Gw != nil {
			entry.Gateway = r.Gw.String()
		}
		rv = append(rv, entry)
	}
	return rv, nil
}

// routeExists looks for the same destination via the same gateway.
// Most probably left by a previous run, it is not an error.
func routeExists(dst *net.IPNet, gw net.IP) bool {
	routes, err := netlink.RouteList(nil, unix.AF_INET)
	if err != nil {
		return false
	}
	for _, r := range routes {
		if r.Dst != nil && r.Dst.String() == dst.String() && r.Gw.Equal(gw) {
			return true
		}
	}
	return false
}

func (nb *netlinkBackend) Add(ctx context.Context, target, gateway string) error {
	dst, err := hostPrefix(target)
	if err != nil {
		return err
	}
	gw := net.ParseIP(gateway).To4()
	if gw == nil {
		return fmt.Errorf("%w: %s", ErrInvalidAddress, gateway)
	}

	if routeExists(dst, gw) {
		return nil
	}

	route := netlink.Route{
		Dst:      dst,
		Gw:       gw,
		Protocol: unix.RTPROT_STATIC,
	}
	if err = netlink.RouteAdd(&route); err != nil {
		return fmt.Errorf("route %s via %s: %w", target, gateway, err)
	}
	return nil
}

func (nb *netlinkBackend) Del(ctx context.Context, target string) error {
	dst, err := hostPrefix(target)
	if err != nil {
		return err
	}

	if err = netlink.RouteDel(&netlink.Route{Dst: dst}); err != nil {
		return fmt.Errorf("route %s del: %w", target, err)
	}
	return nil
}

func (nb *netlinkBackend) Reset(ctx context.Context) error {
	routes, err := netlink.RouteList(nil, unix.AF_INET)
	if err != nil {
		return err
	}

	var errs []error
	for idx := range routes {
		r := &routes[idx]
		if !isOverrideRoute(r) {
			continue
		}
		if err := netlink.RouteDel(r); err != nil {
			errs = append(errs, fmt.Errorf("route %s del: %w", r.Dst, err))
		}
	}
	return errors.Join(errs...)
}
