package latency

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const (
	linuxPing = `PING 8.8.8.8 (8.8.8.8) 56(84) bytes of data.
64 bytes from 8.8.8.8: icmp_seq=1 ttl=117 time=12.4 ms
64 bytes from 8.8.8.8: icmp_seq=2 ttl=117 time=11.9 ms
64 bytes from 8.8.8.8: icmp_seq=3 ttl=117 time=13.1 ms
64 bytes from 8.8.8.8: icmp_seq=4 ttl=117 time=12.6 ms

--- 8.8.8.8 ping statistics ---
4 packets transmitted, 4 received, 0% packet loss, time 3004ms
rtt min/avg/max/mdev = 11.900/12.500/13.100/0.436 ms
`
	linuxPingLost = `PING 203.0.113.1 (203.0.113.1) 56(84) bytes of data.

--- 203.0.113.1 ping statistics ---
1 packets transmitted, 0 received, 100% packet loss, time 0ms
`
	darwinPing = `PING 127.0.0.1 (127.0.0.1): 56 data bytes
64 bytes from 127.0.0.1: icmp_seq=0 ttl=64 time=0.045 ms

--- 127.0.0.1 ping statistics ---
1 packets transmitted, 1 packets received, 0.0% packet loss
round-trip min/avg/max/stddev = 0.045/0.045/0.045/0.000 ms
`
	windowsPing = "\r\nPinging 8.8.8.8 with 32 bytes of data:\r\n" +
		"Reply from 8.8.8.8: bytes=32 time=12ms TTL=117\r\n" +
		"Reply from 8.8.8.8: bytes=32 time=14ms TTL=117\r\n" +
		"\r\nPing statistics for 8.8.8.8:\r\n" +
		"    Packets: Sent = 2, Received = 2, Lost = 0 (0% loss),\r\n" +
		"Approximate round trip times in milli-seconds:\r\n" +
		"    Minimum = 12ms, Maximum = 14ms, Average = 13ms\r\n"
	windowsPingRu = "\r\nОбмен пакетами с 8.8.8.8 по с 32 байтами данных:\r\n" +
		"Ответ от 8.8.8.8: число байт=32 время=20мс TTL=117\r\n" +
		"Ответ от 8.8.8.8: число байт=32 время<1мс TTL=117\r\n" +
		"\r\nСтатистика Ping для 8.8.8.8:\r\n" +
		"    Пакетов: отправлено = 2, получено = 2, потеряно = 0\r\n" +
		"    (0% потерь)\r\n" +
		"Приблизительное время приема-передачи в мс:\r\n" +
		"    Минимальное = 0мсек, Максимальное = 20 мсек, Среднее = 10 мсек\r\n"
	windowsPingRuNoSummary = "Ответ от 8.8.8.8: число байт=32 время=20мс TTL=117\r\n" +
		"Ответ от 8.8.8.8: число байт=32 время<1мс TTL=117\r\n"
	windowsPingTimeout = "\r\nPinging 203.0.113.1 with 32 bytes of data:\r\n" +
		"Request timed out.\r\n" +
		"\r\nPing statistics for 203.0.113.1:\r\n" +
		"    Packets: Sent = 1, Received = 0, Lost = 1 (100% loss),\r\n"
	windowsPingHostUnreachable = "Reply from 192.168.1.10: Destination host unreachable.\r\n"
)

func TestParseProbeOutput(t *testing.T) {
	testData := []struct {
		name    string
		windows bool
		text    string
		want    Sample
	}{
		{"linux", false, linuxPing, Reachable(11.9, 12.5, 13.1)},
		{"linux lost", false, linuxPingLost, Unreachable()},
		{"darwin", false, darwinPing, Reachable(0.045, 0.045, 0.045)},
		{"windows average", true, windowsPing, Reachable(13, 13, 13)},
		{"windows russian average", true, windowsPingRu, Reachable(10, 10, 10)},
		{"windows russian replies", true, windowsPingRuNoSummary, Reachable(1, 10.5, 20)},
		{"windows timeout", true, windowsPingTimeout, Unreachable()},
		{"windows host unreachable", true, windowsPingHostUnreachable, Unreachable()},
		{"windows replies on posix", false, windowsPing, Reachable(12, 13, 14)},
		{"comma decimals", false, "time=1,5 ms\ntime=2,5 ms\n", Reachable(1.5, 2, 2.5)},
		{"garbage", false, "ping: unknown host invalid.host\n", Unreachable()},
		{"empty", true, "", Unreachable()},
	}

	opt := cmp.Comparer(func(a, b float64) bool {
		d := a - b
		return d < 1e-9 && d > -1e-9
	})

	for _, test := range testData {
		got := parseProbeOutput(test.windows, test.text)
		if diff := cmp.Diff(test.want, got, opt); diff != "" {
			t.Errorf("%s: sample mismatch (-want +got):\n%s", test.name, diff)
		}
	}
}

func TestParseAverage(t *testing.T) {
	if _, ok := parseAverage("Minimum = 12ms, Maximum = 14ms"); ok {
		t.Errorf("average found where there is none")
	}
	if avg, ok := parseAverage("AVERAGE = 7ms"); !ok || avg != 7 {
		t.Errorf("case insensitive average failed: %f %v", avg, ok)
	}
}

const (
	linuxTrace = `traceroute to 8.8.8.8 (8.8.8.8), 30 hops max, 60 byte packets
 1  192.168.1.1  0.512 ms  0.470 ms  0.455 ms
 2  * * *
 3  10.10.0.1  5.123 ms *  4.900 ms
 4  * 72.14.215.85  9.1 ms  9.0 ms
    72.14.215.86  9.4 ms
 5  8.8.8.8  10.2 ms  10.1 ms  10.3 ms
`
	windowsTrace = "\r\nTracing route to 8.8.8.8 over a maximum of 30 hops\r\n\r\n" +
		"  1    <1 ms    <1 ms    <1 ms  192.168.1.1\r\n" +
		"  2     *        *        *     Request timed out.\r\n" +
		"  3    12 ms    11 ms    13 ms  10.10.0.1\r\n" +
		"  4    15 ms     *       14 ms  8.8.8.8\r\n" +
		"\r\nTrace complete.\r\n"
	windowsTraceRu = "\r\nТрассировка маршрута к 8.8.8.8 с максимальным числом прыжков 30\r\n\r\n" +
		"  1    <1 мс    <1 мс    <1 мс  192.168.0.1\r\n" +
		"  2     *        *        *     Превышен интервал ожидания для запроса.\r\n" +
		"  3     7 мс     6 мс     7 мс  100.64.0.1\r\n" +
		"  4  100.64.0.9  сообщает: Заданный узел недоступен.\r\n" +
		"\r\nТрассировка завершена.\r\n"
)

func TestParseTraceOutput(t *testing.T) {
	testData := []struct {
		name string
		text string
		want []Hop
	}{
		{
			name: "linux",
			text: linuxTrace,
			want: []Hop{
				{Address: "192.168.1.1", LatencyMs: 0.512},
				{Address: "10.10.0.1", LatencyMs: 5.123},
				{Address: "72.14.215.85", LatencyMs: 9.1},
				{Address: "8.8.8.8", LatencyMs: 10.2},
			},
		},
		{
			name: "windows",
			text: windowsTrace,
			want: []Hop{
				{Address: "192.168.1.1", LatencyMs: 1},
				{Address: "10.10.0.1", LatencyMs: 12},
				{Address: "8.8.8.8", LatencyMs: 15},
			},
		},
		{
			name: "windows russian",
			text: windowsTraceRu,
			want: []Hop{
				{Address: "192.168.0.1", LatencyMs: 1},
				{Address: "100.64.0.1", LatencyMs: 7},
			},
		},
		{
			name: "all timed out",
			text: " 1  * * *\n 2  * * *\n",
			want: []Hop{},
		},
		{
			name: "invalid address",
			text: " 1  300.1.1.1  1.0 ms\n",
			want: []Hop{},
		},
		{
			name: "overlong octet",
			text: " 3  1234.10.0.1  5.0 ms\n",
			want: []Hop{},
		},
		{
			name: "overlong octet before real address",
			text: " 4  gw1234.10.0.1.example.net (10.0.0.9)  3.0 ms\n",
			want: []Hop{{Address: "10.0.0.9", LatencyMs: 3}},
		},
		{
			name: "empty",
			text: "",
			want: []Hop{},
		},
	}

	for _, test := range testData {
		got := parseTraceOutput(test.text)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%s: hops mismatch (-want +got):\n%s", test.name, diff)
		}
	}
}

func TestReduce(t *testing.T) {
	if s := reduce(nil); s.Reachable {
		t.Errorf("empty input must be unreachable")
	}
	if s := reduce([]float64{1, -2}); s.Reachable {
		t.Errorf("negative time must be rejected")
	}

	s := reduce([]float64{0.1, 0.1, 0.1})
	if !s.Reachable || s.Min > s.Avg || s.Avg > s.Max {
		t.Errorf("invariant min <= avg <= max broken: %+v", s)
	}
}

func TestSampleTriple(t *testing.T) {
	min, avg, max := Unreachable().Triple()
	if min != TimeoutMs || avg != TimeoutMs || max != TimeoutMs {
		t.Errorf("invalid sentinel triple %f %f %f", min, avg, max)
	}
	if Unreachable().String() != "Timeout" {
		t.Errorf("invalid unreachable presentation %s", Unreachable())
	}

	min, avg, max = Reachable(1, 2, 3).Triple()
	if min != 1 || avg != 2 || max != 3 {
		t.Errorf("invalid triple %f %f %f", min, avg, max)
	}
	if Reachable(1, 2.34, 3).String() != "2.3 ms" {
		t.Errorf("invalid presentation %s", Reachable(1, 2.34, 3))
	}
}
