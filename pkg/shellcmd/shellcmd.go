// Package shellcmd is the process invocation boundary. Every native utility
// is started here and always reaped, whatever way it ends.
package shellcmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/SyntropyNet/pingopt/internal/logger"
	"github.com/SyntropyNet/pingopt/pkg/platform"
)

const (
	pkgName = "ShellCmd. "
	// how long to wait for output pipes after the process was killed
	waitDelay = time.Second
)

var (
	ErrEmptyCommand = errors.New("empty command")
	ErrNotFound     = exec.ErrNotFound
)

// ExitError is returned when a command was started but exited non-zero.
// Captured stdout is still returned alongside it.
type ExitError struct {
	Command string
	Code    int
	Stderr  string
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s exited with code %d: %s", e.Command, e.Code, e.Stderr)
	}
	return fmt.Sprintf("%s exited with code %d", e.Command, e.Code)
}

// Runner executes a command and returns its raw standard output.
// Output may be non-empty even when error is not nil.
type Runner interface {
	Run(ctx context.Context, argv platform.Argv) ([]byte, error)
}

// ExecRunner runs commands as child processes of this one
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, argv platform.Argv) ([]byte, error) {
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, argv.Name(), argv.Args()...)
	var outb, errb bytes.Buffer
	cmd.Stdout = &outb
	cmd.Stderr = &errb
	cmd.WaitDelay = waitDelay
	hideWindow(cmd)

	logger.Debug().Println(pkgName, "exec", strings.Join(argv, " "))
	// Run waits for the process and closes all pipes on every path
	err := cmd.Run()

	switch {
	case err == nil:
		return outb.Bytes(), nil
	case ctx.Err() != nil:
		return outb.Bytes(), fmt.Errorf("%s: %w", argv.Name(), ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return outb.Bytes(), &ExitError{
			Command: argv.Name(),
			Code:    exitErr.ExitCode(),
			Stderr:  strings.TrimSpace(errb.String()),
		}
	}
	return outb.Bytes(), fmt.Errorf("%s: %w", argv.Name(), err)
}
