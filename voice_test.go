package main

import "testing"

func TestNewVoiceBankAllVoicesFree(t *testing.T) {
	vb := NewVoiceBank()
	for i, v := range vb.Voices {
		if v.VState != VFree {
			t.Fatalf("voice %d: expected VFree, got %v", i, v.VState)
		}
		if v.Osc1.Gain != 0 {
			t.Fatalf("voice %d: expected osc1 gain 0 on boot, got %v", i, v.Osc1.Gain)
		}
		if v.Osc1.Freq != 440 {
			t.Fatalf("voice %d: expected default osc1 freq 440, got %v", i, v.Osc1.Freq)
		}
	}
}

func TestVoiceBankRowBoundsChecking(t *testing.T) {
	vb := NewVoiceBank()
	if vb.Row(-1) != nil {
		t.Fatal("expected nil for negative index")
	}
	if vb.Row(VoiceCount) != nil {
		t.Fatal("expected nil for out-of-range index")
	}
	if vb.Row(0) == nil {
		t.Fatal("expected a valid row at index 0")
	}
}

func TestBiquadSectionProcessShiftsDelayLines(t *testing.T) {
	s := &BiquadSection{B0: 1}
	out0 := s.process(1.0)
	if out0 != 1.0 {
		t.Fatalf("expected pass-through b0=1, got %v", out0)
	}
	if s.In1 != 1.0 {
		t.Fatalf("expected in1 to shift to 1.0, got %v", s.In1)
	}
	out1 := s.process(0.0)
	if s.In2 != 1.0 || s.In1 != 0.0 {
		t.Fatalf("expected delay line shift in2=1.0,in1=0.0, got in2=%v in1=%v", s.In2, s.In1)
	}
	_ = out1
}

func TestClampFreqEdges(t *testing.T) {
	if got := clampFreq(-1, MaxOscFreq); got != MinFreq {
		t.Fatalf("expected MinFreq, got %v", got)
	}
	if got := clampFreq(1e9, MaxOscFreq); got != MaxOscFreq {
		t.Fatalf("expected MaxOscFreq, got %v", got)
	}
	if got := clampFreq(440, MaxOscFreq); got != 440 {
		t.Fatalf("expected pass-through, got %v", got)
	}
}
