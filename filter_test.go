package main

import "testing"

func TestApplyFilterBypassWhenOff(t *testing.T) {
	v := &Voice{}
	v.reset(0)
	v.FltType = FilterOff

	if out := applyFilter(v, 0.42); out != 0.42 {
		t.Fatalf("expected bypass, got %v", out)
	}
}

func TestApplyFilterLowSettlesToDCStepInput(t *testing.T) {
	v := &Voice{}
	v.reset(0)
	v.FltType = FilterLow
	v.FltF1 = 200
	v.FltQ = 0.707
	v.FltRolloff = 6
	deriveFilterCoefficients(v)

	var last float32
	for i := 0; i < 500; i++ {
		last = applyFilter(v, 1.0)
	}
	if last < 0.5 {
		t.Fatalf("expected a 200Hz low-pass to settle near the DC input of 1.0, got %v", last)
	}
}

func TestDeriveFilterCoefficientsSnapsRolloff(t *testing.T) {
	v := &Voice{}
	v.reset(0)
	v.FltRolloff = 9
	deriveFilterCoefficients(v)
	if v.FltRolloff != 6 {
		t.Fatalf("expected 9 to snap down to 6, got %d", v.FltRolloff)
	}

	v.FltRolloff = 12
	deriveFilterCoefficients(v)
	if v.FltRolloff != 12 {
		t.Fatalf("expected 12 to remain 12, got %d", v.FltRolloff)
	}
}

func TestDeriveFilterCoefficientsClampsQ(t *testing.T) {
	v := &Voice{}
	v.reset(0)
	v.FltQ = 100
	deriveFilterCoefficients(v)
	if v.FltQ != MaxFilterQ {
		t.Fatalf("expected fltq to clamp to %v, got %v", MaxFilterQ, v.FltQ)
	}
}

func TestApplyFilterStopAveragesBothSections(t *testing.T) {
	v := &Voice{}
	v.reset(0)
	v.FltType = FilterStop
	v.FltF1 = 200
	v.FltF2 = 4000
	v.FltQ = 0.707
	deriveFilterCoefficients(v)

	out := applyFilter(v, 1.0)
	// Both sections see the same input directly (not cascaded); the
	// result should be a finite, bounded blend, never identical to
	// either section run in isolation against zero initial state.
	if out != (v.Filt1.Out1+v.Filt2.Out1)/2 {
		t.Fatalf("expected stop output to be the average of both sections' latest output, got %v", out)
	}
}
