// Package logging provides the process-wide structured logger.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	once      sync.Once
	singleton *log.Logger
)

// Logger returns the shared logger, creating it on first use. It writes
// to stderr so progress output on stdout stays clean.
func Logger() *log.Logger {
	once.Do(func() {
		singleton = New(os.Stderr)
	})
	return singleton
}

// New returns a logger writing to w with the package's standard options.
func New(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "meshunion",
	})
}

// SetLevel parses level ("debug", "info", "warn", "error", "fatal") and
// applies it to the shared logger. Unknown levels leave it unchanged and
// return the parse error.
func SetLevel(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	Logger().SetLevel(lvl)
	return nil
}

func Debug(msg interface{}, keyvals ...interface{}) { Logger().Debug(msg, keyvals...) }
func Info(msg interface{}, keyvals ...interface{})  { Logger().Info(msg, keyvals...) }
func Warn(msg interface{}, keyvals ...interface{})  { Logger().Warn(msg, keyvals...) }
func Error(msg interface{}, keyvals ...interface{}) { Logger().Error(msg, keyvals...) }
