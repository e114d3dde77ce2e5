//go:build windows

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/windows"

	"github.com/SyntropyNet/pingopt/internal/logger"
)

var (
	exitNotDir  = int(windows.ERROR_DIRECTORY)
	exitNoEntry = int(windows.ERROR_FILE_NOT_FOUND)
	exitNoMem   = int(windows.ERROR_NOT_ENOUGH_MEMORY)
	exitBusy    = int(windows.ERROR_BUSY)
	exitAccess  = int(windows.ERROR_ACCESS_DENIED)
)

var lockFile = filepath.Join(os.TempDir(), "pingopt.lock")

func requireRoot() int {
	if !windows.GetCurrentProcessToken().IsElevated() {
		logger.Error().Println(fullAppName, "insufficient permissions. Please run as Administrator.")
		return exitAccess
	}
	return 0
}

func processAlive(pid int) bool {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		return err == windows.ERROR_ACCESS_DENIED
	}
	defer windows.CloseHandle(h)

	var code uint32
	if err := windows.GetExitCodeProcess(h, &code); err != nil {
		return true
	}
	// STILL_ACTIVE
	return code == 259
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
