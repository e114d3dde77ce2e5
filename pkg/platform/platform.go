// Package platform resolves, once, which native diagnostic utilities are used
// on this host and how their console output is decoded.
package platform

import (
	"runtime"
	"strconv"
)

type Platform int

const (
	Unknown Platform = iota
	Windows
	Linux
	Darwin
	BSD
)

// Detect maps the running OS to a platform variant.
// Anything not recognised is treated as generic BSD-like POSIX.
func Detect() Platform {
	return FromGOOS(runtime.GOOS)
}

func FromGOOS(goos string) Platform {
	switch goos {
	case "windows":
		return Windows
	case "linux", "android":
		return Linux
	case "darwin", "ios":
		return Darwin
	default:
		return BSD
	}
}

// Posix reports the POSIX family (everything but Windows)
func (p Platform) Posix() bool {
	return p != Windows && p != Unknown
}

func (p Platform) String() string {
	switch p {
	case Windows:
		return "windows"
	case Linux:
		return "linux"
	case Darwin:
		return "darwin"
	case BSD:
		return "bsd"
	default:
		return "unknown(" + strconv.Itoa(int(p)) + ")"
	}
}
