//go:build windows

package platform

import "golang.org/x/sys/windows"

var procGetOEMCP = windows.NewLazySystemDLL("kernel32.dll").NewProc("GetOEMCP")

// consoleCodePage returns the OEM code page. Child processes started without
// a visible console write their output in it.
func consoleCodePage() uint32 {
	if procGetOEMCP.Find() != nil {
		return defaultCodePage
	}
	cp, _, _ := procGetOEMCP.Call()
	if cp == 0 {
		return defaultCodePage
	}
	return uint32(cp)
}
