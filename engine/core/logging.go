package core

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// LogLevel is the minimum severity the engine logger emits.
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

var once sync.Once

type logger struct {
	*log.Logger
}

var singleton *logger

func getLogger() *logger {
	once.Do(
		func() {
			l := log.NewWithOptions(os.Stderr, log.Options{
				ReportCaller:    true,
				ReportTimestamp: true,
				TimeFormat:      time.RFC3339,
				CallerOffset:    1,
				Prefix:          "Onyx 🪨 ",
			})
			l.SetLevel(log.DebugLevel)
			singleton = &logger{l}
		})
	return singleton
}

func (l LogLevel) toCharm() log.Level {
	switch l {
	case DebugLevel:
		return log.DebugLevel
	case InfoLevel:
		return log.InfoLevel
	case WarnLevel:
		return log.WarnLevel
	case ErrorLevel:
		return log.ErrorLevel
	case FatalLevel:
		return log.FatalLevel
	}
	return log.InfoLevel
}

func (l LogLevel) String() string {
	return l.toCharm().String()
}

// ParseLogLevel accepts the names used in configuration files
// ("debug", "info", "warn", "error", "fatal").
func ParseLogLevel(s string) (LogLevel, error) {
	lvl, err := log.ParseLevel(s)
	if err != nil {
		return InfoLevel, err
	}
	switch lvl {
	case log.DebugLevel:
		return DebugLevel, nil
	case log.WarnLevel:
		return WarnLevel, nil
	case log.ErrorLevel:
		return ErrorLevel, nil
	case log.FatalLevel:
		return FatalLevel, nil
	}
	return InfoLevel, nil
}

func SetLogLevel(level LogLevel) {
	getLogger().SetLevel(level.toCharm())
}

// SetLogOutput redirects the engine logger, mostly useful in tests.
func SetLogOutput(w io.Writer) {
	getLogger().SetOutput(w)
}

func LogDebug(msg string, args ...interface{}) {
	getLogger().Debugf(msg, args...)
}

func LogInfo(msg string, args ...interface{}) {
	getLogger().Infof(msg, args...)
}

func LogWarn(msg string, args ...interface{}) {
	getLogger().Warnf(msg, args...)
}

func LogError(msg string, args ...interface{}) {
	getLogger().Errorf(msg, args...)
}

func LogFatal(msg string, args ...interface{}) {
	getLogger().Fatalf(msg, args...)
}
