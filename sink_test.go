package main

import (
	"bytes"
	"testing"
)

func TestStdoutSinkEmitsBigEndianBytes(t *testing.T) {
	var buf bytes.Buffer
	sink := NewStdoutSink(&buf)

	if err := sink.WriteSamples([]int16{1, -1, 32767, -32768}); err != nil {
		t.Fatalf("WriteSamples: %v", err)
	}

	want := []byte{
		0x00, 0x01, // 1
		0xFF, 0xFF, // -1
		0x7F, 0xFF, // 32767
		0x80, 0x00, // -32768
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("expected big-endian bytes %x, got %x", want, buf.Bytes())
	}
}

func TestTeeSinkAlwaysWritesPrimaryEvenIfMonitorFails(t *testing.T) {
	primary := &BufferSink{}
	tee := &TeeSink{Primary: primary, Monitor: failingSink{}}

	if err := tee.WriteSamples([]int16{42}); err != nil {
		t.Fatalf("expected primary write to succeed despite monitor failure, got %v", err)
	}
	if len(primary.Samples) != 1 || primary.Samples[0] != 42 {
		t.Fatalf("expected primary to receive the sample, got %v", primary.Samples)
	}
}

type failingSink struct{}

func (failingSink) WriteSamples([]int16) error { return bytes.ErrTooLarge }
