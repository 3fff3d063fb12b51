// Package monitoring provides the package-level diagnostic logger shared
// by the stabilization pipeline. Library code logs per-run summaries,
// never per-point or per-pixel.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf
// but may be replaced by SetLogger; tests or embedding applications can
// redirect or mute it.
var Logf func(format string, v ...any) = log.Printf

// Debugf emits verbose diagnostics and is a no-op unless EnableDebug has
// been called. It always writes through Logf, so redirection applies to
// both levels.
var Debugf func(format string, v ...any) = func(string, ...any) {}

// SetLogger replaces the package logger. Passing nil installs a no-op
// logger.
func SetLogger(f func(format string, v ...any)) {
	if f == nil {
		Logf = func(string, ...any) {}
		Debugf = func(string, ...any) {}
		return
	}
	Logf = f
}

// EnableDebug turns on verbose diagnostics through the current logger.
func EnableDebug() {
	Debugf = func(format string, v ...any) {
		Logf("debug: "+format, v...)
	}
}
