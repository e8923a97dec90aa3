// main.go - daemon entry point
//
// Takes no arguments and prints nothing to stdout, since stdout carries the
// raw PCM stream (spec.md 6). All lifecycle logging goes through the
// syslog-backed logger in syslogw.go; a listen-socket failure aborts
// startup and a clock failure aborts the running daemon, per spec.md 7.
//
// License: GPLv3 or later

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	logger := newDaemonLogger()
	log.SetOutput(logger.Writer())
	log.SetFlags(logger.Flags())
	log.SetPrefix(logger.Prefix())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := NewEngine()
	if err := engine.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Fatalf("fatal: %v", err)
	}
}
