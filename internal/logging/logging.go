// Package logging wires up the teacher's shenwei356/go-logging backend
// with a colorable stderr writer, ported from unikmer's main.go init().
// There is no package-level logger: callers build one with New and pass
// it down explicitly, so a worker failure or a skipped track can always
// be logged with the track name attached (spec.md §7).
package logging

import (
	"io"
	"os"
	"runtime"

	colorable "github.com/mattn/go-colorable"
	logging "github.com/shenwei356/go-logging"
)

var format = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{color}[%{level:.4s}]%{color:reset} %{message}`,
)

// Logger is the handle every component receives instead of reaching for
// a global.
type Logger struct {
	*logging.Logger
}

// New returns a Logger writing to stderr (colorable on Windows), at the
// given verbosity. name identifies the emitting component in records.
func New(name string, verbose bool) *Logger {
	var w io.Writer = os.Stderr
	if runtime.GOOS == "windows" {
		w = colorable.NewColorableStderr()
	}
	backend := logging.NewLogBackend(w, "", 0)
	formatter := logging.NewBackendFormatter(backend, format)
	level := logging.NewBackendFormatter(backend, format)
	logging.SetBackend(formatter, level)

	l := logging.MustGetLogger(name)
	if verbose {
		logging.SetLevel(logging.DEBUG, name)
	} else {
		logging.SetLevel(logging.INFO, name)
	}
	return &Logger{Logger: l}
}

// Track formats a message prefixed with the offending track name, so
// every user-visible failure identifies it (spec.md §7).
func (l *Logger) Track(track string, format string, args ...interface{}) {
	a := append([]interface{}{track}, args...)
	l.Warningf("track %s: "+format, a...)
}
