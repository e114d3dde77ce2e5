package config

// Overridden at build time with -ldflags "-X ..."
var (
	version    = "0.1.0"
	subversion = "local"
)

func GetFullVersion() string {
	if subversion != "" {
		return version + "-" + subversion
	}
	return version
}
