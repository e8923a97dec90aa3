// engine.go - wires VoiceBank, DSP engine, sample clock, sinks and the
// control-plane server into one running daemon.
//
// The run loop below is the Go-idiomatic reshaping of the original's
// single select() loop (spec.md 5): golang.org/x/sync/errgroup supervises
// the listener accept loop and the render loop against one shutdown
// signal, while a plain for-select drains the command channel completely
// before every render tick so the ordering guarantee of spec.md 5 still
// holds even though accepts and reads now happen concurrently with
// rendering.
//
// License: GPLv3 or later

package main

import (
	"context"
	"log"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
)

// Engine is the daemon's top-level object: one VoiceBank, one DSP clock,
// one control-plane registry, one PCM sink.
type Engine struct {
	Bank     *VoiceBank
	Clock    *SampleClock
	Sink     PCMSink
	Server   *Server
	Registry *Registry
	noise    lfsr
}

// NewEngine builds a fully wired, idle engine: every voice reset to FREE,
// the voices and connections tables registered, and sink chosen per the
// SQLIZER_MONITOR toggle described in SPEC_FULL.md's domain stack section.
func NewEngine() *Engine {
	bank := NewVoiceBank()
	conns := newConnTracker()
	registry := newRegistry()
	registry.register(newVoicesTable(bank))
	registry.register(newConnectionsTable(conns))

	server := NewServer(registry, conns)

	return &Engine{
		Bank:     bank,
		Clock:    NewSampleClock(),
		Sink:     buildSink(),
		Server:   server,
		Registry: registry,
		noise:    newLFSR(),
	}
}

// buildSink returns the mandatory stdout PCM sink, optionally tee'd to a
// local oto monitor when SQLIZER_MONITOR=1 is set in the environment.
func buildSink() PCMSink {
	stdout := NewStdoutSink(os.Stdout)
	if os.Getenv("SQLIZER_MONITOR") != "1" {
		return stdout
	}
	monitor, err := NewOtoMonitorSink(SampleRate)
	if err != nil {
		log.Printf("monitor sink unavailable, continuing with stdout only: %v", err)
		return stdout
	}
	return &TeeSink{Primary: stdout, Monitor: monitor}
}

// Run starts the listener, the accept loop and the render loop, blocking
// until ctx is cancelled or a fatal daemon error occurs (spec.md 7: listen
// failure aborts startup, clock failure aborts the running daemon).
func (e *Engine) Run(ctx context.Context) error {
	if err := e.Server.Listen(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		return e.Server.Close()
	})
	g.Go(func() error {
		err := e.Server.Serve()
		if gctx.Err() != nil {
			return nil // shutdown-triggered close, not a real failure
		}
		return err
	})
	g.Go(func() error {
		return e.renderLoop(gctx)
	})

	return g.Wait()
}

// renderLoop is the event-loop invariant of spec.md 5, steps 1-5 collapsed
// into: drain pending commands (step 4), render the due delta (step 5),
// wait up to 10ms (steps 1-2; accept itself is handled by Serve's own
// goroutine in this reshaping, step 3).
func (e *Engine) renderLoop(ctx context.Context) error {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-e.Server.cmds:
			e.applyAll(req)
		case <-ticker.C:
			e.drainPending()
			due, err := e.Clock.Due()
			if err != nil {
				return err // fatal daemon error: clock query failed
			}
			if due == 0 {
				continue
			}
			if err := renderBlock(e.Bank, &e.noise, due, e.Sink); err != nil {
				return err
			}
		}
	}
}

// applyAll handles one command received between ticks immediately, then
// drains anything else already queued, so a burst of writes that arrives
// between ticker fires is still fully applied before the next render.
func (e *Engine) applyAll(first cmdRequest) {
	e.dispatch(first)
	e.drainPending()
}

func (e *Engine) drainPending() {
	for {
		select {
		case req := <-e.Server.cmds:
			e.dispatch(req)
		default:
			return
		}
	}
}

func (e *Engine) dispatch(req cmdRequest) {
	req.reply <- e.Registry.Dispatch(req.line)
}
