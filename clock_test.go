package main

import "testing"

func TestSampleClockDueTracksElapsedMicros(t *testing.T) {
	now := int64(0)
	c := &SampleClock{Now: func() int64 { return now }}
	c.prevUS = now

	now = 10000 // 10ms
	due, err := c.Due()
	if err != nil {
		t.Fatalf("Due: %v", err)
	}
	expected := (10000 * SampleRate) / 1_000_000
	if due != expected {
		t.Fatalf("expected %d samples due, got %d", expected, due)
	}

	due, err = c.Due()
	if err != nil {
		t.Fatalf("Due: %v", err)
	}
	if due != 0 {
		t.Fatalf("expected 0 samples due with no elapsed time, got %d", due)
	}
}

func TestSampleClockDueNeverDriftsAcrossRoundingBoundaries(t *testing.T) {
	now := int64(0)
	c := &SampleClock{Now: func() int64 { return now }}
	c.prevUS = now

	total := 0
	for i := 0; i < 100; i++ {
		now += 1 // sub-sample-period increments
		due, err := c.Due()
		if err != nil {
			t.Fatalf("Due: %v", err)
		}
		total += due
	}
	expected := int((int64(100) * SampleRate) / 1_000_000)
	if total != expected {
		t.Fatalf("expected cumulative due %d across small steps, got %d", expected, total)
	}
}

func TestSampleClockDueFailsOnInvalidTimestamp(t *testing.T) {
	c := &SampleClock{Now: func() int64 { return 0 }}
	c.prevUS = 0
	if _, err := c.Due(); err == nil {
		t.Fatal("expected error on non-positive timestamp")
	}
}
