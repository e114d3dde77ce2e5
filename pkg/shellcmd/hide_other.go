//go:build !windows

package shellcmd

import "os/exec"

func hideWindow(cmd *exec.Cmd) {}
