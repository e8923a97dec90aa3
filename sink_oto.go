//go:build !headless

// sink_oto.go - optional live-monitor output via oto
//
// Adapted from the teacher's audio_backend_oto.go OtoPlayer: same
// atomic-ring-buffer-free approach of feeding an oto.Player through its
// Read callback, but reworked from a SoundChip-wide ring buffer into a
// plain channel-fed PCMSink so it can sit behind the TeeSink in sink.go
// without the mandatory stdout path ever depending on it. Enabled by
// setting SQLIZER_MONITOR=1 (see engine.go); the stdout PCM contract of
// spec.md 6 is unaffected whether or not this sink is attached.
//
// License: GPLv3 or later

package main

import (
	"github.com/ebitengine/oto/v3"
)

// OtoMonitorSink plays rendered audio locally through the default system
// output device, purely as a development convenience; it never gates or
// blocks the primary stdout sink.
type OtoMonitorSink struct {
	ctx    *oto.Context
	player *oto.Player
	feed   chan int16
}

// NewOtoMonitorSink opens the system default audio device at sampleRate.
func NewOtoMonitorSink(sampleRate int) (*OtoMonitorSink, error) {
	opts := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   0,
	}
	ctx, ready, err := oto.NewContext(opts)
	if err != nil {
		return nil, err
	}
	<-ready

	m := &OtoMonitorSink{ctx: ctx, feed: make(chan int16, SampleRate)}
	m.player = ctx.NewPlayer(m)
	m.player.Play()
	return m, nil
}

// WriteSamples implements PCMSink by queueing samples for the player's
// Read loop; a full queue drops samples rather than applying backpressure
// to the audio engine, consistent with spec.md 5's "no backpressure" rule.
func (m *OtoMonitorSink) WriteSamples(samples []int16) error {
	for _, s := range samples {
		select {
		case m.feed <- s:
		default:
		}
	}
	return nil
}

// Read implements io.Reader for oto.Player, converting queued int16 samples
// into little-endian bytes (oto's own wire format, independent of the
// big-endian stdout contract this sink merely monitors).
func (m *OtoMonitorSink) Read(p []byte) (int, error) {
	n := 0
	for n+1 < len(p) {
		select {
		case s := <-m.feed:
			p[n] = byte(s)
			p[n+1] = byte(s >> 8)
			n += 2
		default:
			p[n] = 0
			p[n+1] = 0
			n += 2
		}
	}
	return n, nil
}

func (m *OtoMonitorSink) Close() error {
	if m.player != nil {
		return m.player.Close()
	}
	return nil
}
