// dsp.go - per-sample rendering engine
//
// renderSample advances exactly one voice by one sample tick; renderBlock
// drives renderSample across the whole bank for n ticks and hands finished
// samples to a PCM sink. The step order below follows the thirteen-step
// sequence of the original sqlizer-daemon's do_voice()/do_synth() (see
// _examples/original_source/sqlizer-daemon/voices.c) translated into Go
// methods on Voice, in the spirit of the teacher's audio_chip.go
// generateSample()/GenerateSample() split between per-channel and
// whole-chip rendering.
//
// License: GPLv3 or later

package main

// lfsr is the single white-noise generator shared by every voice. Matching
// the original, it advances once per voice per sample tick (not once per
// whole-bank tick), so each voice draws an independent slice of the noise
// sequence even though the generator itself is shared.
type lfsr uint32

func newLFSR() lfsr {
	return lfsr(lfsrSeed)
}

// advance steps the Galois-form LFSR and returns the new state.
func (l *lfsr) advance() uint32 {
	v := uint32(*l)
	if v&0x80000000 != 0 {
		v = (v << 1) ^ lfsrPoly
		v++
	} else {
		v <<= 1
	}
	*l = lfsr(v)
	return v
}

// dutyStep applies the asymmetric duty-cycle time-warp of spec.md 4.2.1 to
// a raw phase step, given the oscillator's current phase accumulator.
func dutyStep(phaseacc, phasestep, symmetry float32) float32 {
	if phaseacc < 0.5 {
		return 0.5 * phasestep / (1 - symmetry)
	}
	return 0.5 * phasestep / symmetry
}

// wrap folds a phase accumulator back into [0, 1), reporting whether it
// wrapped (crossed 1.0 downward) this call.
func wrap(p float32) (wrapped float32, didWrap bool) {
	if p >= 1 {
		return p - float32(int(p)), true
	}
	if p < 0 {
		return p - float32(int(p)-1), true
	}
	return p, false
}

// waveform evaluates an oscillator's output for its current phase plus
// offset, per spec.md 4.2.2. noise draws straight from the shared LFSR
// state rather than the oscillator's own phase.
func waveform(typ OscType, phaseacc, phaseoffset float32, lfsrState uint32) float32 {
	switch typ {
	case OscOff:
		return 0
	case OscSquare:
		p := wrapUnit(phaseacc + phaseoffset)
		if p < 0.5 {
			return 1
		}
		return -1
	case OscTriangle:
		p := wrapUnit(phaseacc + phaseoffset)
		switch {
		case p < 0.25:
			return 4 * p
		case p < 0.75:
			return 2 - 4*p
		default:
			return 4*p - 4
		}
	case OscSine:
		p := wrapUnit(phaseacc + phaseoffset)
		var idx float32
		switch {
		case p < 0.25:
			idx = 4 * p
		case p < 0.5:
			idx = 2 - 4*p
		case p < 0.75:
			idx = 4 * (p - 0.5)
		default:
			idx = 2 - 4*(p-0.5)
		}
		i := int(idx * float32(NSines-1))
		if i < 0 {
			i = 0
		}
		if i >= NSines {
			i = NSines - 1
		}
		v := quarterSine[i]
		if p > 0.5 {
			v = -v
		}
		return v
	case OscNoise:
		frac := float32(lfsrState&0x07FFFFFF) / float32(0x08000000)
		if lfsrState&0x08000000 != 0 {
			frac = -frac
		}
		return frac
	case OscWavetable:
		return 0
	default:
		return 0
	}
}

func wrapUnit(p float32) float32 {
	p -= float32(int(p))
	if p < 0 {
		p++
	}
	return p
}

// wrapPhaseStep mirrors voices.c:409-419's "if (phstep > 1.0) phstep -=
// floorf(phstep);" -- applied once after each modulation term is folded
// into osc1's phase step, not once at the end, so vibrato and FM overflow
// independently the way the original does.
func wrapPhaseStep(phstep float32) float32 {
	if phstep > 1 {
		phstep -= float32(int(phstep))
	}
	return phstep
}

// renderSample advances v by exactly one sample tick following the
// thirteen-step sequence of spec.md 4.2, returning the rendered
// [-1,+1]-range sample (before the int16 projection).
func renderSample(v *Voice, l *lfsr) float32 {
	noiseState := l.advance()

	if v.VState == VFree || v.VState == VInUse {
		v.VoiceOut = 0
		v.Vout = 0
		return 0
	}

	var o2out float32
	v.sync = false
	if v.MixMode != MixNone {
		step := dutyStep(v.Osc2.PhaseAcc, v.Osc2.PhaseStep, v.Osc2.Symmetry)
		p, didWrap := wrap(v.Osc2.PhaseAcc + step)
		v.Osc2.PhaseAcc = p
		v.sync = didWrap
		o2out = waveform(v.Osc2.Type, v.Osc2.PhaseAcc, v.Osc2.PhaseOffset, noiseState) * v.Osc2.Gain
		v.Osc2.Out = o2out
	}

	var vibout float32
	if v.Vibrato.Type != OscOff && v.Vibrato.Type != OscWavetable {
		step := dutyStep(v.Vibrato.PhaseAcc, v.Vibrato.PhaseStep, v.Vibrato.Symmetry)
		p, _ := wrap(v.Vibrato.PhaseAcc + step)
		v.Vibrato.PhaseAcc = p
		vibout = waveform(v.Vibrato.Type, v.Vibrato.PhaseAcc, v.Vibrato.PhaseOffset, noiseState)
		v.Vibrato.Out = vibout
	}

	if v.GlideCount > 0 {
		v.Osc1.PhaseStep += v.GlideStep
		v.GlideCount--
		if v.GlideCount == 0 {
			v.GlideMS = 0
			v.Osc1.PhaseStep = v.GlideFreq / SampleRate
		}
	}

	phstep := v.Osc1.PhaseStep
	if v.Vibrato.Type != OscOff && v.Vibrato.Type != OscWavetable {
		phstep += v.VibO1Phase * vibout
		phstep = wrapPhaseStep(phstep)
	}
	if v.Osc2.Type != OscOff && v.MixMode == MixFM {
		phstep += v.Osc1.PhaseStep * o2out
		phstep = wrapPhaseStep(phstep)
	}

	dstep := dutyStep(v.Osc1.PhaseAcc, phstep, v.Osc1.Symmetry)
	p, _ := wrap(v.Osc1.PhaseAcc + dstep)
	v.Osc1.PhaseAcc = p

	o1out := waveform(v.Osc1.Type, v.Osc1.PhaseAcc, v.Osc1.PhaseOffset, noiseState) * v.Osc1.Gain
	v.Osc1.Out = o1out

	if v.MixMode == MixHardSync && v.sync {
		v.Osc1.PhaseAcc = 0
	}

	var voiceout float32
	switch v.MixMode {
	case MixSum:
		voiceout = o1out + o2out
	case MixAM:
		voiceout = o1out * (o2out + 1)
	case MixRing:
		voiceout = o1out * o2out
	default: // MixNone, MixFM, MixHardSync: already folded into osc1
		voiceout = o1out
	}

	if v.Tremolo.Type != OscOff && v.Tremolo.Type != OscWavetable {
		step := dutyStep(v.Tremolo.PhaseAcc, v.Tremolo.PhaseStep, v.Tremolo.Symmetry)
		p, _ := wrap(v.Tremolo.PhaseAcc + step)
		v.Tremolo.PhaseAcc = p
		tremout := waveform(v.Tremolo.Type, v.Tremolo.PhaseAcc, v.Tremolo.PhaseOffset, noiseState)
		v.Tremolo.Out = tremout
		voiceout *= 1 - v.TremDepth*tremout
	}

	voiceout = applyFilter(v, voiceout)
	voiceout = advanceADSR(v, voiceout)

	voiceout *= v.OutputGain
	v.VoiceOut = voiceout
	v.Vout = int16(clampF32(voiceout, -1, 1) * FullVolume)
	return voiceout
}

// renderBlock renders n sample ticks across every voice in vb, summing and
// clipping the active voices' output and writing one sample per tick to
// sink. This resolves spec.md's sum-vs-single-voice open question in favor
// of a true polyphonic mix (see DESIGN.md OQ-1).
func renderBlock(vb *VoiceBank, l *lfsr, n int, sink PCMSink) error {
	buf := make([]int16, 0, n)
	for i := 0; i < n; i++ {
		var mix float32
		for vi := range vb.Voices {
			mix += renderSample(&vb.Voices[vi], l)
		}
		mix = clampF32(mix, -1, 1)
		buf = append(buf, int16(mix*FullVolume))
	}
	return sink.WriteSamples(buf)
}
