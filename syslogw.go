//go:build !windows

// syslogw.go - syslog-backed log writer with a stderr fallback
//
// spec.md 7 requires fatal client errors and daemon lifecycle events
// "logged to syslog"; the teacher never needs syslog (it's a desktop
// emulator) so there's no teacher file to ground this on directly, but the
// shape - try the platform facility, fall back to stderr, hand the result
// to the stdlib log package - follows the teacher's own error-wrapping
// convention (plain error, %w) from runtime_ipc.go rather than introducing
// a logging dependency the pack never uses.
//
// License: GPLv3 or later

package main

import (
	"io"
	"log"
	"log/syslog"
	"os"
)

// newDaemonLogger returns a *log.Logger writing to syslog's daemon
// facility when available, otherwise to stderr so the process still reports
// errors under containers or sandboxes with no syslog socket.
func newDaemonLogger() *log.Logger {
	w, err := syslog.New(syslog.LOG_DAEMON|syslog.LOG_NOTICE, "sqlizerd")
	if err != nil {
		return log.New(os.Stderr, "sqlizerd: ", log.LstdFlags)
	}
	return log.New(io.Writer(w), "", 0)
}
