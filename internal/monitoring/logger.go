// Package monitoring holds the package-level diagnostic logger and the
// Prometheus collectors shared by the viewer's components.
package monitoring

import (
	"io"
	"log"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but
// may be replaced by SetLogger. Tests mute it with SetLogger(nil).
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetOutput points Logf at a new standard logger writing to w with the
// given prefix, keeping the default date/time flags.
func SetOutput(w io.Writer, prefix string) {
	l := log.New(w, prefix, log.LstdFlags)
	Logf = l.Printf
}
