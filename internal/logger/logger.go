package logger

import (
	"io"
	"log"
)

const (
	DebugLevel = iota
	InfoLevel
	WarningLevel
	ErrorLevel
	logLevelsCount // actually not a real log level, but simplifies some code
)

type Logger struct {
	loggers [logLevelsCount]*log.Logger
}

func logLevelString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarningLevel:
		return "WARNING"
	case ErrorLevel:
		return "ERROR"
	default:
		return "?????"
	}
}

func logLevelPrefix(level int) string {
	switch level {
	case DebugLevel:
		return "[DBG] "
	case InfoLevel:
		return "[INF] "
	case WarningLevel:
		return "[WRN] "
	case ErrorLevel:
		return "[ERR] "
	default:
		return "[???] "
	}
}

// New creates leveled loggers. Messages below level are discarded.
// A *JSONWriter among writers is special: it must know the level of each record,
// so it gets its own per level wrapper instead of being shared.
func New(level int, writers ...io.Writer) *Logger {
	var jsonWriter *JSONWriter
	w := []io.Writer{}
	for _, onewriter := range writers {
		switch typewr := onewriter.(type) {
		case *JSONWriter:
			jsonWriter = typewr
		default:
			w = append(w, typewr)
		}
	}

	nullWriter := &nullWritter{}
	lgr := Logger{}

	makeWriters := func(wrs ...io.Writer) io.Writer {
		switch len(wrs) {
		case 0:
			return nullWriter
		case 1:
			return wrs[0]
		default:
			return io.MultiWriter(wrs...)
		}
	}

	for i := 0; i < logLevelsCount; i++ {
		switch {
		case i < level:
			lgr.loggers[i] = log.New(nullWriter, "", log.Ldate|log.Ltime)
		case jsonWriter != nil:
			lgr.loggers[i] = log.New(makeWriters(append(w,
				&jsonLevelWriter{wr: jsonWriter, level: logLevelString(i)})...),
				logLevelPrefix(i), log.Ldate|log.Ltime)
		default:
			lgr.loggers[i] = log.New(makeWriters(w...), logLevelPrefix(i), log.Ldate|log.Ltime)
		}
	}
	return &lgr
}

func (lgr *Logger) Debug() *log.Logger {
	return lgr.loggers[DebugLevel]
}

func (lgr *Logger) Info() *log.Logger {
	return lgr.loggers[InfoLevel]
}

func (lgr *Logger) Warning() *log.Logger {
	return lgr.loggers[WarningLevel]
}

func (lgr *Logger) Error() *log.Logger {
	return lgr.loggers[ErrorLevel]
}

// nullWriter discards all messages
type nullWritter struct{}

func (w *nullWritter) Write(b []byte) (n int, err error) {
	return len(b), nil
}
