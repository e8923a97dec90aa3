// constants.go - Synthesis engine constants and register-style limits
//
// License: GPLv3 or later

package main

import "math"

// Sample rate and voice pool sizing. These mirror the deepest iteration of
// the original sqlizer-daemon (see _examples/original_source), which fixed
// SRATE at 44100.0 and VOICE_COUNT at 20.
const (
	SampleRate = 44100
	VoiceCount = 20
)

// Oscillator types, shared by osc1, osc2, the vibrato LFO and the tremolo LFO.
type OscType int

const (
	OscOff OscType = iota
	OscSine
	OscSquare
	OscTriangle
	OscNoise
	OscWavetable
)

// Voice lifecycle states.
type VState int

const (
	VFree VState = iota
	VInUse
	VOn
	VSustain
	VRelease // reserved: no write-callback in this daemon drives a voice here directly; release is carried by the ADSR reaching a zero-gain step while the voice is still VOn.
)

// Two-oscillator mixing policy.
type MixMode int

const (
	MixNone MixMode = iota
	MixSum
	MixAM
	MixFM
	MixRing
	MixHardSync
)

// Biquad filter chain modes.
type FilterType int

const (
	FilterOff FilterType = iota
	FilterLow
	FilterHigh
	FilterBand
	FilterStop
)

// Frequency limits. MX_FREQ in the original C source is a single constant
// shared by oscillator and filter corner validation; the spec splits it:
// oscillators clamp to MaxOscFreq (kept comfortably under Nyquist), filter
// corners clamp to MaxFilterFreq (the full published range of the original
// filter design).
const (
	MinFreq       = 0.01
	MaxOscFreq    = 9000.0
	MinFilterFreq = 1.0
	MaxFilterFreq = 20000.0
)

// Symmetry (duty cycle) range for every sub-oscillator.
const (
	MinSymmetry = 0.01
	MaxSymmetry = 0.999
)

// Glide timing limits (milliseconds).
const (
	MinGlideMS = 0
	MaxGlideMS = 10_000_000
)

// Filter Q limits.
const (
	MinFilterQ = 0.1
	MaxFilterQ = 25.0
)

// ADSR: eight steps, indices 0..7. A step time of SustainValueMS signals
// entry into VSustain rather than a timed transition to the next step.
const (
	MaxADSRStep    = 7
	SustainValueMS = 60000
)

// FullVolume is the int16 full-scale amplitude used by the 16-bit PCM
// projection (vout / FullVolume 16-bit sample emission).
const FullVolume = (1 << 15) - 1

// Sine lookup table: one quadrant of sin(pi*i/(2*NSines)), reflected at
// render time to reconstruct the full cycle (see dsp.go waveform()).
const NSines = 1000

// LFSR seed and Galois-form polynomial for the shared white-noise source.
const (
	lfsrSeed = 0x11111111
	lfsrPoly = 0x46000000
)

var quarterSine [NSines]float32

func init() {
	for i := 0; i < NSines; i++ {
		quarterSine[i] = float32(math.Sin(math.Pi * float64(i) / (2 * float64(NSines))))
	}
}

// Control-plane limits (tabular protocol).
const (
	ControlPort  = 8889
	MaxUIConns   = 20
	MaxCmdBytes  = 5000
	MaxRspBytes  = 50000
)
