package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/SyntropyNet/pingopt/internal/logger"
)

type serversFile struct {
	GameServers []Endpoint `yaml:"game_servers"`
}

// LoadServers reads endpoint list from a JSON or YAML file.
// JSON is a subset of YAML, so a single decoder serves both.
func LoadServers(path string) ([]Endpoint, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("servers file: %w", err)
	}

	return ParseServers(raw)
}

// ParseServers decodes `game_servers` list. Entries without an IP are skipped,
// duplicate names are kept (the list is presentation ordered).
func ParseServers(raw []byte) ([]Endpoint, error) {
	var obj serversFile
	if err := yaml.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("servers file parse: %w", err)
	}

	rv := make([]Endpoint, 0, len(obj.GameServers))
	for _, e := range obj.GameServers {
		e.IP = strings.TrimSpace(e.IP)
		e.Name = strings.TrimSpace(e.Name)
		if e.IP == "" {
			logger.Warning().Println(pkgName, "skipping server without ip:", e.Name)
			continue
		}
		if e.Name == "" {
			e.Name = e.IP
		}
		rv = append(rv, e)
	}
	return rv, nil
}
