package main

import (
	"math"
	"testing"
)

func TestAdvanceADSRInterpolatesLinearly(t *testing.T) {
	v := &Voice{}
	v.reset(0)
	v.VState = VOn
	v.AdsrIdx = 0
	v.Steps[0] = ADSRStep{TimeMS: 100, Gain: 1.0}
	v.OnTime = int64(SampleRate * 0.050) // 50ms in

	out := advanceADSR(v, 1.0)
	if math.Abs(float64(out)-0.5) > 0.01 {
		t.Fatalf("expected envelope multiplier ~0.5 at 50ms into a 100ms ramp, got %v", out)
	}
}

func TestAdvanceADSRSustainFreezesGain(t *testing.T) {
	v := &Voice{}
	v.reset(0)
	v.VState = VSustain
	v.AdsrIdx = 2
	v.Steps[1] = ADSRStep{TimeMS: 1, Gain: 0.75}

	out := advanceADSR(v, 1.0)
	if out != 0.75 {
		t.Fatalf("expected frozen gain 0.75 during sustain, got %v", out)
	}
}

func TestAdvanceADSRZeroTargetTerminatesVoice(t *testing.T) {
	v := &Voice{}
	v.reset(0)
	v.VState = VOn
	v.AdsrIdx = 0
	v.Steps[0] = ADSRStep{TimeMS: 1, Gain: 0}

	out := advanceADSR(v, 1.0)
	if out != 0 {
		t.Fatalf("expected 0 output on zero-gain target, got %v", out)
	}
	if v.VState != VFree {
		t.Fatalf("expected vstate FREE after zero-gain target, got %v", v.VState)
	}
}

func TestAdvanceADSRSustainValueEntersSustainImmediately(t *testing.T) {
	v := &Voice{}
	v.reset(0)
	v.VState = VOn
	v.AdsrIdx = 0
	v.OnTime = 0
	v.Steps[0] = ADSRStep{TimeMS: SustainValueMS, Gain: 1.0}

	advanceADSR(v, 1.0)
	if v.VState != VSustain {
		t.Fatalf("expected immediate transition to SUSTAIN on a sustain-valued step, got %v", v.VState)
	}
	if v.AdsrIdx != 1 {
		t.Fatalf("expected adsridx to advance to 1, got %d", v.AdsrIdx)
	}
}

func TestAdvanceADSROverflowForcesFree(t *testing.T) {
	v := &Voice{}
	v.reset(0)
	v.VState = VOn
	v.AdsrIdx = MaxADSRStep
	v.Steps[MaxADSRStep] = ADSRStep{TimeMS: 1, Gain: 0.5}
	v.OnTime = SampleRate // far past 1ms

	advanceADSR(v, 1.0)
	if v.VState != VFree {
		t.Fatalf("expected adsridx overflow to force vstate FREE, got %v", v.VState)
	}
}

func TestSetVStateFreeToOnResetsClock(t *testing.T) {
	v := &Voice{}
	v.reset(0)
	v.AdsrIdx = 5
	v.OnTime = 12345
	v.VState = VFree

	setVState(v, VOn)
	if v.OnTime != 0 || v.AdsrIdx != 0 {
		t.Fatalf("expected ontime/adsridx reset on FREE->ON, got ontime=%d adsridx=%d", v.OnTime, v.AdsrIdx)
	}
}

func TestSetVStateSustainToOnAtFinalStepForcesFree(t *testing.T) {
	v := &Voice{}
	v.reset(0)
	v.VState = VSustain
	v.AdsrIdx = MaxADSRStep

	setVState(v, VOn)
	if v.VState != VFree {
		t.Fatalf("expected SUSTAIN->ON at final step to force FREE, got %v", v.VState)
	}
}
