// callbacks.go - voices table column catalogue
//
// Grounded directly on _examples/original_source/sqlizer-daemon/tables.c's
// set_o1freq/set_glidems/set_flttype/... callback bodies, translated from
// struct-offset writes into closures over a *VoiceBank, per table.go's
// descriptor framework.
//
// License: GPLv3 or later

package main

import "math"

// newVoicesTable builds the "voices" table descriptor set against vb. Every
// column name matches its legacy name from the original control plane so
// client tooling built against that wire vocabulary keeps working.
func newVoicesTable(vb *VoiceBank) *Table {
	t := newTable("voices", VoiceCount)

	addIdentityColumns(t, vb)
	addOscColumns(t, vb, "o1", func(v *Voice) *Oscillator { return &v.Osc1 })
	addOscColumns(t, vb, "o2", func(v *Voice) *Oscillator { return &v.Osc2 })
	addOscColumns(t, vb, "vib", func(v *Voice) *Oscillator { return &v.Vibrato })
	addOscColumns(t, vb, "trem", func(v *Voice) *Oscillator { return &v.Tremolo })
	addGlideColumns(t, vb)
	addModulationColumns(t, vb)
	addMixerAndGainColumns(t, vb)
	addFilterColumns(t, vb)
	addADSRColumns(t, vb)
	addReadOnlyColumns(t, vb)

	return t
}

func addIdentityColumns(t *Table, vb *VoiceBank) {
	t.add(Column{Name: "noteid", Type: ColStr, Help: "client-assigned note label", Get: func(row int) (Value, error) {
		return StrValue(vb.Row(row).NoteID), nil
	}, Set: func(row int, v Value) error {
		vb.Row(row).NoteID = v.S
		return nil
	}})
	t.add(Column{Name: "chordid", Type: ColStr, Help: "client-assigned chord label", Get: func(row int) (Value, error) {
		return StrValue(vb.Row(row).ChordID), nil
	}, Set: func(row int, v Value) error {
		vb.Row(row).ChordID = v.S
		return nil
	}})
	t.add(Column{Name: "vstate", Type: ColInt, Help: "voice lifecycle state", Get: func(row int) (Value, error) {
		return IntValue(int32(vb.Row(row).VState)), nil
	}, Set: func(row int, v Value) error {
		setVState(vb.Row(row), VState(v.I))
		return nil
	}})
}

// setVState applies the lifecycle transition rules of spec.md 3/4.4.
func setVState(v *Voice, newState VState) {
	old := v.VState
	switch {
	case old == VFree && newState == VOn:
		v.OnTime = 0
		v.AdsrIdx = 0
	case old == VSustain && newState == VOn:
		if v.AdsrIdx == MaxADSRStep {
			newState = VFree
			v.VoiceOut = 0
			v.Vout = 0
		}
	}
	v.VState = newState
}

// oscAccessor fetches the Oscillator sub-struct named by prefix out of a
// voice; closing over this lets addOscColumns generate columns for osc1,
// osc2, vibrato and tremolo from one function body, matching the way
// set_o1freq/set_o2freq/set_vibfreq/set_tremfreq in the original are near-
// identical bodies differing only in which struct field they touch.
type oscAccessor func(v *Voice) *Oscillator

func addOscColumns(t *Table, vb *VoiceBank, prefix string, acc oscAccessor) {
	t.add(Column{Name: prefix + "type", Type: ColInt, Get: func(row int) (Value, error) {
		return IntValue(int32(acc(vb.Row(row)).Type)), nil
	}, Set: func(row int, v Value) error {
		acc(vb.Row(row)).Type = OscType(v.I)
		return nil
	}})
	t.add(Column{Name: prefix + "freq", Type: ColFloat, Help: "Hz; derives phasestep", Get: func(row int) (Value, error) {
		// pre-read: freq is rederived from phasestep because glide
		// mutates phasestep continuously behind the client's back.
		o := acc(vb.Row(row))
		return FloatValue(o.PhaseStep * SampleRate), nil
	}, Set: func(row int, v Value) error {
		acc(vb.Row(row)).setFreq(v.F)
		return nil
	}})
	t.add(Column{Name: prefix + "symmetry", Type: ColFloat, Get: func(row int) (Value, error) {
		return FloatValue(acc(vb.Row(row)).Symmetry), nil
	}, Set: func(row int, v Value) error {
		acc(vb.Row(row)).Symmetry = clampSymmetry(v.F)
		return nil
	}})
	t.add(Column{Name: prefix + "gain", Type: ColFloat, Get: func(row int) (Value, error) {
		return FloatValue(acc(vb.Row(row)).Gain), nil
	}, Set: func(row int, v Value) error {
		acc(vb.Row(row)).Gain = v.F
		return nil
	}})
	t.add(Column{Name: prefix + "phaseoffset", Type: ColFloat, Get: func(row int) (Value, error) {
		return FloatValue(acc(vb.Row(row)).PhaseOffset), nil
	}, Set: func(row int, v Value) error {
		acc(vb.Row(row)).PhaseOffset = wrapUnit(v.F)
		return nil
	}})
}

func addGlideColumns(t *Table, vb *VoiceBank) {
	t.add(Column{Name: "glidefreq", Type: ColFloat, Get: func(row int) (Value, error) {
		return FloatValue(vb.Row(row).GlideFreq), nil
	}, Set: func(row int, v Value) error {
		vb.Row(row).GlideFreq = clampFreq(v.F, MaxOscFreq)
		return nil
	}})
	t.add(Column{Name: "glidems", Type: ColInt, Help: "derives glidecount/glidestep from the current o1phasestep", Get: func(row int) (Value, error) {
		return IntValue(vb.Row(row).GlideMS), nil
	}, Set: func(row int, v Value) error {
		voice := vb.Row(row)
		ms := v.I
		if ms < MinGlideMS {
			ms = MinGlideMS
		}
		if ms > MaxGlideMS {
			ms = MaxGlideMS
		}
		voice.GlideMS = ms
		voice.GlideCount = int32(SampleRate * float64(ms) / 1000.0)
		if voice.GlideCount == 0 {
			voice.GlideStep = 0
		} else {
			voice.GlideStep = (voice.GlideFreq/SampleRate - voice.Osc1.PhaseStep) / float32(voice.GlideCount)
		}
		return nil
	}})
}

func addModulationColumns(t *Table, vb *VoiceBank) {
	t.add(Column{Name: "vibdepth", Type: ColFloat, Get: func(row int) (Value, error) {
		return FloatValue(vb.Row(row).VibDepth), nil
	}, Set: func(row int, v Value) error {
		voice := vb.Row(row)
		voice.VibDepth = v.F
		voice.VibO1Phase = v.F / SampleRate
		return nil
	}})
	t.add(Column{Name: "tremdepth", Type: ColFloat, Get: func(row int) (Value, error) {
		return FloatValue(vb.Row(row).TremDepth), nil
	}, Set: func(row int, v Value) error {
		vb.Row(row).TremDepth = clampF32(v.F, 0, 1)
		return nil
	}})
}

func addMixerAndGainColumns(t *Table, vb *VoiceBank) {
	t.add(Column{Name: "mixmode", Type: ColInt, Get: func(row int) (Value, error) {
		return IntValue(int32(vb.Row(row).MixMode)), nil
	}, Set: func(row int, v Value) error {
		vb.Row(row).MixMode = MixMode(v.I)
		return nil
	}})
	t.add(Column{Name: "outputgain", Type: ColFloat, Get: func(row int) (Value, error) {
		return FloatValue(vb.Row(row).OutputGain), nil
	}, Set: func(row int, v Value) error {
		vb.Row(row).OutputGain = v.F
		return nil
	}})
}

func addFilterColumns(t *Table, vb *VoiceBank) {
	t.add(Column{Name: "flttype", Type: ColInt, Get: func(row int) (Value, error) {
		return IntValue(int32(vb.Row(row).FltType)), nil
	}, Set: func(row int, v Value) error {
		voice := vb.Row(row)
		voice.FltType = FilterType(v.I)
		deriveFilterCoefficients(voice)
		return nil
	}})
	t.add(Column{Name: "fltf1", Type: ColFloat, Get: func(row int) (Value, error) {
		return FloatValue(vb.Row(row).FltF1), nil
	}, Set: func(row int, v Value) error {
		voice := vb.Row(row)
		voice.FltF1 = v.F
		deriveFilterCoefficients(voice)
		return nil
	}})
	t.add(Column{Name: "fltf2", Type: ColFloat, Get: func(row int) (Value, error) {
		return FloatValue(vb.Row(row).FltF2), nil
	}, Set: func(row int, v Value) error {
		voice := vb.Row(row)
		voice.FltF2 = v.F
		deriveFilterCoefficients(voice)
		return nil
	}})
	t.add(Column{Name: "fltq", Type: ColFloat, Get: func(row int) (Value, error) {
		return FloatValue(vb.Row(row).FltQ), nil
	}, Set: func(row int, v Value) error {
		voice := vb.Row(row)
		voice.FltQ = v.F
		deriveFilterCoefficients(voice)
		return nil
	}})
	t.add(Column{Name: "fltrolloff", Type: ColInt, Get: func(row int) (Value, error) {
		return IntValue(vb.Row(row).FltRolloff), nil
	}, Set: func(row int, v Value) error {
		voice := vb.Row(row)
		voice.FltRolloff = v.I
		deriveFilterCoefficients(voice)
		return nil
	}})
}

// deriveFilterCoefficients clamps the filter group and recomputes both
// biquad sections, following the single set_flttype callback body of the
// original (which every filter-group column shares): fltf1/fltf2 clamp to
// [1,20000], fltq to [0.1,25], fltrolloff snaps down to 6 or 12.
func deriveFilterCoefficients(v *Voice) {
	v.FltF1 = clampF32(v.FltF1, MinFilterFreq, MaxFilterFreq)
	v.FltF2 = clampF32(v.FltF2, MinFilterFreq, MaxFilterFreq)
	v.FltQ = clampF32(v.FltQ, MinFilterQ, MaxFilterQ)
	if v.FltRolloff > 12 {
		v.FltRolloff = 12
	}
	v.FltRolloff = 6 * (v.FltRolloff / 6)
	if v.FltRolloff < 6 {
		v.FltRolloff = 6
	}

	q := v.FltQ
	section1Low := biquadLow(q, v.FltF1)
	section1High := biquadHigh(q, v.FltF1)

	switch v.FltType {
	case FilterLow:
		v.Filt1 = applyCoeffs(v.Filt1, section1Low)
		v.Filt2 = applyCoeffs(v.Filt2, section1Low) // 12dB: section 2 inherits section 1 (DESIGN.md OQ-4)
	case FilterHigh:
		v.Filt1 = applyCoeffs(v.Filt1, section1High)
		v.Filt2 = applyCoeffs(v.Filt2, section1High)
	case FilterBand:
		v.Filt1 = applyCoeffs(v.Filt1, section1Low)
		v.Filt2 = applyCoeffs(v.Filt2, biquadLow(q, v.FltF2))
	case FilterStop:
		v.Filt1 = applyCoeffs(v.Filt1, section1Low)
		v.Filt2 = applyCoeffs(v.Filt2, biquadHigh(q, v.FltF2))
	default:
		// OFF: coefficients don't matter, bypass happens in applyFilter.
	}
}

type biquadCoeffs struct {
	b0, b1, b2, a1, a2 float32
}

func biquadLow(q, freq float32) biquadCoeffs {
	g := float32(math.Tan(math.Pi * float64(freq) / SampleRate))
	d := q*g*g + g + q
	b0 := q * g * g / d
	return biquadCoeffs{
		b0: b0,
		b1: 2 * b0,
		b2: b0,
		a1: 2 * q * (g*g - 1) / d,
		a2: (q*g*g - g + q) / d,
	}
}

func biquadHigh(q, freq float32) biquadCoeffs {
	g := float32(math.Tan(math.Pi * float64(freq) / SampleRate))
	d := q*g*g + g + q
	b0 := q / d
	return biquadCoeffs{
		b0: b0,
		b1: -2 * b0,
		b2: b0,
		a1: 2 * q * (g*g - 1) / d,
		a2: (q*g*g - g + q) / d,
	}
}

// applyCoeffs overwrites a section's coefficients while preserving its
// running state cells (in1/in2/out1/out2), matching the original's
// in-place coefficient rewrite that never clears delay lines mid-note.
func applyCoeffs(s BiquadSection, c biquadCoeffs) BiquadSection {
	s.B0, s.B1, s.B2, s.A1, s.A2 = c.b0, c.b1, c.b2, c.a1, c.a2
	return s
}

func addADSRColumns(t *Table, vb *VoiceBank) {
	for i := 0; i <= MaxADSRStep; i++ {
		idx := i
		t.add(Column{Name: stepTimeName(idx), Type: ColInt, Get: func(row int) (Value, error) {
			return IntValue(vb.Row(row).Steps[idx].TimeMS), nil
		}, Set: func(row int, v Value) error {
			vb.Row(row).Steps[idx].TimeMS = v.I
			return nil
		}})
		t.add(Column{Name: stepGainName(idx), Type: ColFloat, Get: func(row int) (Value, error) {
			return FloatValue(vb.Row(row).Steps[idx].Gain), nil
		}, Set: func(row int, v Value) error {
			vb.Row(row).Steps[idx].Gain = v.F
			return nil
		}})
	}
	t.add(Column{Name: "adsridx", Type: ColInt, ReadOnly: true, Get: func(row int) (Value, error) {
		return IntValue(int32(vb.Row(row).AdsrIdx)), nil
	}})
	t.add(Column{Name: "ontime", Type: ColInt, ReadOnly: true, Get: func(row int) (Value, error) {
		return IntValue(int32(vb.Row(row).OnTime)), nil
	}})
}

func stepTimeName(i int) string { return "step" + string(rune('0'+i)) + "time" }
func stepGainName(i int) string { return "step" + string(rune('0'+i)) + "gain" }

func addReadOnlyColumns(t *Table, vb *VoiceBank) {
	t.add(Column{Name: "vout", Type: ColInt, ReadOnly: true, Help: "16-bit projection of voiceout", Get: func(row int) (Value, error) {
		return IntValue(int32(vb.Row(row).Vout)), nil
	}})
}
