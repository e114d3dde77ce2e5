//go:build !windows

package platform

func consoleCodePage() uint32 {
	return defaultCodePage
}
