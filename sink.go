// sink.go - PCM output backends
//
// Grounded on the teacher's pluggable AudioOutput interface
// (audio_backend_oto.go / audio_backend_headless.go): a small interface so
// the render path stays agnostic of where bytes ultimately land, with the
// mandatory stdout sink from spec.md 6 as the only one wired into main by
// default.
//
// License: GPLv3 or later

package main

import (
	"bufio"
	"io"
)

// PCMSink accepts a block of rendered samples and is responsible for
// turning them into the wire format appropriate to the backend.
type PCMSink interface {
	WriteSamples(samples []int16) error
}

// StdoutSink writes big-endian 16-bit signed PCM to the given writer (fd 1
// in production), matching spec.md 6's "no header" contract exactly: high
// byte first, two bytes per sample, mono.
type StdoutSink struct {
	w   *bufio.Writer
	buf [2]byte
}

func NewStdoutSink(w io.Writer) *StdoutSink {
	return &StdoutSink{w: bufio.NewWriterSize(w, 4096)}
}

func (s *StdoutSink) WriteSamples(samples []int16) error {
	for _, sample := range samples {
		s.buf[0] = byte(sample >> 8)
		s.buf[1] = byte(sample)
		if _, err := s.w.Write(s.buf[:]); err != nil {
			return err
		}
	}
	return s.w.Flush()
}

// BufferSink accumulates samples in memory; used by tests that need to
// inspect the rendered stream without a real stdout pipe.
type BufferSink struct {
	Samples []int16
}

func (s *BufferSink) WriteSamples(samples []int16) error {
	s.Samples = append(s.Samples, samples...)
	return nil
}

// TeeSink fans rendered samples out to two sinks, used to drive the
// optional monitor backend (sink_oto.go) alongside the mandatory stdout
// stream without the monitor's failure ever blocking the primary output.
type TeeSink struct {
	Primary PCMSink
	Monitor PCMSink
}

func (s *TeeSink) WriteSamples(samples []int16) error {
	if s.Monitor != nil {
		_ = s.Monitor.WriteSamples(samples)
	}
	return s.Primary.WriteSamples(samples)
}
