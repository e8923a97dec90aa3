// filter.go - biquad filter chain routing
//
// Coefficients are derived once, at control-plane write time (see
// callbacks.go deriveFilterCoefficients), matching spec.md 4.4's "compute at
// write-time, not per sample" design. This file implements only the
// per-sample routing table of spec.md 4.2.3.
//
// License: GPLv3 or later

package main

// applyFilter routes in through v's filter chain according to FltType and
// FltRolloff, returning the filtered sample. A rolloff of 6 uses section 1
// alone; 12 cascades section 1 into section 2, whose coefficients were set
// identical to section 1's at write time for LOW/HIGH (see DESIGN.md OQ-4).
func applyFilter(v *Voice, in float32) float32 {
	switch v.FltType {
	case FilterOff:
		return in
	case FilterLow, FilterHigh:
		out := v.Filt1.process(in)
		if v.FltRolloff == 12 {
			out = v.Filt2.process(out)
		}
		return out
	case FilterBand:
		out := v.Filt1.process(in)
		return v.Filt2.process(out)
	case FilterStop:
		out1 := v.Filt1.process(in)
		out2 := v.Filt2.process(in)
		return (out1 + out2) / 2
	default:
		return in
	}
}
