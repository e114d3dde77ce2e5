// Env packet describes all settings, common to whole application
package env

import "time"

const (
	// Log records and exported timestamps use RFC3339
	TimeFormat = time.RFC3339

	// Application config directory
	ConfigDir = "/etc/pingopt"
	// Endpoint list. JSON or YAML, both are accepted.
	ServersFile = ConfigDir + "/settings.json"

	// Locking to prevent several route optimizing instances running
	LockFile = "/var/lock/pingopt.lock"
)
