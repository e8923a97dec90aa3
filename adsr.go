// adsr.go - eight-step linearly interpolated envelope with sustain capture
//
// Grounded on _examples/original_source/sqlizer-daemon/voices.c's ADSR
// block inside do_voice(), translated from raw pointer-offset access into
// the Steps array of voice.go per spec.md's Design Notes §9 "reimplement
// as ordinary array indexing" guidance.
//
// License: GPLv3 or later

package main

// advanceADSR applies the envelope to in and steps the voice's adsr clock,
// following spec.md 4.2.4. It resolves the original's equality-on-integer-
// milliseconds overshoot bug (spec.md 9, open question 2) by completing a
// step on ontimems >= steptime rather than ==.
func advanceADSR(v *Voice, in float32) float32 {
	step := v.Steps[v.AdsrIdx]

	var prevGain float32
	if v.AdsrIdx > 0 {
		prevGain = v.Steps[v.AdsrIdx-1].Gain
	}
	var targetGain float32
	if v.AdsrIdx < MaxADSRStep {
		targetGain = step.Gain
	}

	steptime := step.TimeMS
	if steptime == 0 {
		steptime = 1
	}
	ontimeMS := int32(1000 * v.OnTime / SampleRate)

	if v.VState == VSustain {
		return in * prevGain
	}

	if targetGain == 0 {
		v.VState = VFree
		return 0
	}

	out := in * (prevGain + (targetGain-prevGain)*(float32(ontimeMS)/float32(steptime)))

	switch {
	case int32(steptime) == SustainValueMS:
		v.AdsrIdx++
		v.VState = VSustain
	case ontimeMS >= steptime:
		v.AdsrIdx++
		v.OnTime = 0
		if v.AdsrIdx > MaxADSRStep {
			out = 0
			v.VState = VFree
		}
	default:
		v.OnTime++
	}

	return out
}
