package env

import (
	"fmt"
	"os"
)

// Init prepares application directories. Missing permissions are not fatal,
// since read only commands can run as an ordinary user.
func Init() error {
	return initConfigDir()
}

func initConfigDir() error {
	// MkdirAll is equivalent of mkdir -p, so it will not recreate existing dirs
	err := os.MkdirAll(ConfigDir, 0755)
	if err != nil && !os.IsPermission(err) {
		return fmt.Errorf("config dir %s: %w", ConfigDir, err)
	}
	return nil
}
