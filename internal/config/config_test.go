package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/SyntropyNet/pingopt/internal/logger"
)

func TestInitDefaults(t *testing.T) {
	for _, name := range []string{
		"PINGOPT_LOG_LEVEL", "PINGOPT_PROBE_COUNT", "PINGOPT_POLL_INTERVAL",
		"PINGOPT_EXPORTER_PORT", "PINGOPT_ROUTE_BACKEND", "PINGOPT_SERVERS_FILE",
		"PINGOPT_REROUTE_THRESHOLD", "PINGOPT_NATIVE_FALLBACK",
	} {
		t.Setenv(name, "")
	}
	Init()

	if GetDebugLevel() != logger.InfoLevel {
		t.Errorf("invalid default log level %d", GetDebugLevel())
	}
	if GetProbeCount() != 4 {
		t.Errorf("invalid default probe count %d", GetProbeCount())
	}
	if GetPollInterval() != 5*time.Second {
		t.Errorf("invalid default poll interval %s", GetPollInterval())
	}
	if GetExporterPort() != 0 {
		t.Errorf("exporter must be disabled by default")
	}
	if GetRouteBackend() != RouteBackendExec {
		t.Errorf("invalid default route backend %s", GetRouteBackendName(GetRouteBackend()))
	}
	if GetNativeFallback() {
		t.Errorf("native fallback must be disabled by default")
	}
	threshold, ratio, diff := GetRerouteThresholds()
	if threshold != 80 || ratio != 1.1 || diff != 10 {
		t.Errorf("invalid reroute thresholds %f %f %f", threshold, ratio, diff)
	}
}

func TestInitOverrides(t *testing.T) {
	t.Setenv("PINGOPT_LOG_LEVEL", "debug")
	t.Setenv("PINGOPT_PROBE_COUNT", "1000")
	t.Setenv("PINGOPT_POLL_INTERVAL", "0")
	t.Setenv("PINGOPT_EXPORTER_PORT", "9100")
	t.Setenv("PINGOPT_ROUTE_BACKEND", "NetLink")
	t.Setenv("PINGOPT_NATIVE_FALLBACK", "true")
	t.Setenv("PINGOPT_REROUTE_THRESHOLD", "120.5")
	Init()

	if GetDebugLevel() != logger.DebugLevel {
		t.Errorf("log level not applied")
	}
	if GetProbeCount() != 100 {
		t.Errorf("probe count not clamped: %d", GetProbeCount())
	}
	if GetPollInterval() != time.Second {
		t.Errorf("poll interval not clamped: %s", GetPollInterval())
	}
	if GetExporterPort() != 9100 {
		t.Errorf("exporter port not applied: %d", GetExporterPort())
	}
	if GetRouteBackend() != RouteBackendNetlink {
		t.Errorf("route backend not applied")
	}
	if !GetNativeFallback() {
		t.Errorf("native fallback not applied")
	}
	if threshold, _, _ := GetRerouteThresholds(); threshold != 120.5 {
		t.Errorf("reroute threshold not applied: %f", threshold)
	}
}

func TestParseServers(t *testing.T) {
	testData := []struct {
		name string
		raw  string
		want []Endpoint
	}{
		{
			name: "json",
			raw: `{"game_servers": [` +
				`{"name": "EU West", "ip": "185.60.112.157"},` +
				`{"name": "", "ip": "10.0.0.1"},` +
				`{"name": "broken", "ip": ""}]}`,
			want: []Endpoint{
				{Name: "EU West", IP: "185.60.112.157"},
				{Name: "10.0.0.1", IP: "10.0.0.1"},
			},
		},
		{
			name: "yaml",
			raw: "game_servers:\n" +
				"  - name: US East\n" +
				"    ip: 162.254.192.71\n" +
				"  - name: Local\n" +
				"    ip: \" 127.0.0.1 \"\n",
			want: []Endpoint{
				{Name: "US East", IP: "162.254.192.71"},
				{Name: "Local", IP: "127.0.0.1"},
			},
		},
		{
			name: "empty",
			raw:  `{}`,
			want: []Endpoint{},
		},
	}

	for _, test := range testData {
		got, err := ParseServers([]byte(test.raw))
		if err != nil {
			t.Errorf("%s: unexpected error %s", test.name, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%s: servers mismatch (-want +got):\n%s", test.name, diff)
		}
	}
}

func TestLoadServers(t *testing.T) {
	if _, err := LoadServers(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Errorf("missing file must fail")
	}

	path := filepath.Join(t.TempDir(), "settings.json")
	err := os.WriteFile(path, []byte(`{"game_servers": [{"name": "a", "ip": "1.1.1.1"}]}`), 0600)
	if err != nil {
		t.Fatal(err)
	}
	servers, err := LoadServers(path)
	if err != nil {
		t.Fatalf("load failed: %s", err)
	}
	if len(servers) != 1 || servers[0].IP != "1.1.1.1" {
		t.Errorf("invalid servers %v", servers)
	}

	if err := os.WriteFile(path, []byte("game_servers: [unterminated"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadServers(path); err == nil {
		t.Errorf("invalid file must fail")
	}
}
