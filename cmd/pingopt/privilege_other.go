//go:build !windows

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/SyntropyNet/pingopt/internal/env"
	"github.com/SyntropyNet/pingopt/internal/logger"
)

var (
	exitNotDir  = -int(unix.ENOTDIR)
	exitNoEntry = -int(unix.ENOENT)
	exitNoMem   = -int(unix.ENOMEM)
	exitBusy    = -int(unix.EBUSY)
	exitAccess  = -int(unix.EACCES)
)

const lockFile = env.LockFile

func requireRoot() int {
	if unix.Geteuid() != 0 {
		logger.Error().Println(fullAppName, "insufficient permissions. Please run with `sudo` or as root.")
		return exitAccess
	}
	return 0
}

func processAlive(pid int) bool {
	err := unix.Kill(pid, 0)
	return err == nil || err == unix.EPERM
}

func appLock() int {
	pidStr, _ := os.ReadFile(lockFile)
	pid, _ := strconv.Atoi(strings.TrimSpace(string(pidStr)))

	if pid > 0 && pid != os.Getpid() {
		if processAlive(pid) {
			logger.Error().Println(fullAppName, "Another instance is running")
			logger.Error().Println(fullAppName, "check lock file", lockFile)
			return exitBusy
		}
		logger.Warning().Println(fullAppName, "residual lock file found. Was an instance killed or crashed before?")
	}

	err := os.WriteFile(lockFile, []byte(fmt.Sprint(os.Getpid())), 0644)
	if err != nil {
		logger.Warning().Println(fullAppName, "lock file:", err)
	}
	return 0
}

func appUnlock() {
	os.Remove(lockFile)
}
