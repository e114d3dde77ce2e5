package routectl

import (
	"context"

	"github.com/SyntropyNet/pingopt/pkg/platform"
	"github.com/SyntropyNet/pingopt/pkg/shellcmd"
)

// execBackend drives route, ip or netstat utilities
type execBackend struct {
	cmds   platform.Commands
	decode platform.Decoder
	runner shellcmd.Runner
}

func newExecBackend(opts ...Option) *execBackend {
	p := platform.Detect()
	eb := &execBackend{
		cmds:   platform.CommandsFor(p),
		decode: platform.DecoderFor(p),
		runner: shellcmd.ExecRunner{},
	}
	for _, opt := range opts {
		opt(eb)
	}
	return eb
}

func (eb *execBackend) Routes(ctx context.Context) ([]RouteEntry, error) {
	raw, err := eb.runner.Run(ctx, eb.cmds.RouteDump())
	if err != nil {
		return nil, err
	}

	text, err := eb.decode(raw)
	if err != nil {
		return nil, err
	}

	if eb.cmds.Platform == platform.Windows {
		return parseWindowsRoutes(text), nil
	}
	return parsePosixRoutes(text), nil
}

func (eb *execBackend) Add(ctx context.Context, target, gateway string) error {
	_, err := eb.runner.Run(ctx, eb.cmds.RouteAdd(target, gateway))
	return err
}

func (eb *execBackend) Del(ctx context.Context, target string) error {
	_, err := eb.runner.Run(ctx, eb.cmds.RouteDel(target))
	return err
}

func (eb *execBackend) Reset(ctx context.Context) error {
	_, err := eb.runner.Run(ctx, eb.cmds.Reset())
	return err
}
