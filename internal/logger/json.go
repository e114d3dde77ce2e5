package logger

import (
	"encoding/json"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/SyntropyNet/pingopt/internal/env"
)

type jsonRecord struct {
	Timestamp string `json:"time"`
	Level     string `json:"severity"`
	Message   string `json:"message"`
}

// JSONWriter writes every log record as a single JSON line.
// Pass it to New or SetupGlobalLoger together with plain writers.
type JSONWriter struct {
	mutex sync.Mutex
	wr    io.Writer
}

func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{wr: w}
}

func (jw *JSONWriter) write(level string, b []byte) (int, error) {
	msg := jsonRecord{
		Timestamp: time.Now().Format(env.TimeFormat),
		Level:     level,
		Message:   strings.TrimRight(string(b), "\n"),
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		return 0, err
	}
	raw = append(raw, '\n')

	jw.mutex.Lock()
	defer jw.mutex.Unlock()
	if _, err := jw.wr.Write(raw); err != nil {
		return 0, err
	}
	// log.Logger expects the length of its own buffer
	return len(b), nil
}

// Write is used when JSONWriter is not recognised as a special writer,
// e.g. when wrapped by io.MultiWriter by the caller.
func (jw *JSONWriter) Write(b []byte) (int, error) {
	return jw.write("", b)
}

type jsonLevelWriter struct {
	wr    *JSONWriter
	level string
}

func (l *jsonLevelWriter) Write(b []byte) (n int, err error) {
	return l.wr.write(l.level, b)
}
