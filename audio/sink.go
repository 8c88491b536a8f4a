// Package audio defines the GBA audio collaborator boundary.
// DSP synthesis is an explicit non-goal; this package only specifies the
// snapshot contract the core calls on register writes, plus one backend
// (otosink) that exercises it as a playback loop.
//
// Grounded on music_interfaces.go's collaborator-interface split (one
// narrow interface per concern, no pull-model callback into the chip).
package audio

// SquareSweep is channel 1's state: square wave with frequency sweep.
type SquareSweep struct {
	DutyCycle             uint8
	Frequency             uint16
	Volume                uint8
	EnvelopeStep          uint8
	EnvelopeIncreasing    bool
	SweepShift            uint8
	SweepIncreasing       bool
	SweepTime             uint8
	Enabled               bool
}

// Square is channel 2's state: plain square wave, no sweep.
type Square struct {
	DutyCycle          uint8
	Frequency          uint16
	Volume             uint8
	EnvelopeStep       uint8
	EnvelopeIncreasing bool
	Enabled            bool
}

// Wave is channel 3's state: a programmable 32-sample 4-bit waveform.
type Wave struct {
	Samples   [32]uint8
	Frequency uint16
	Volume    uint8 // 0, 25, 50, 100 percent per GBATEK's three-level shift
	Enabled   bool
}

// Noise is channel 4's state: an LFSR-driven noise generator.
type Noise struct {
	ShiftClock  uint8
	Width7Bit   bool
	DivRatio    uint8
	Volume      uint8
	Enabled     bool
}

// ChannelSnapshot bundles the four PSG channels' current register-derived
// state, handed to a Sink whenever the CPU writes a sound I/O register.
type ChannelSnapshot struct {
	Ch1 SquareSweep
	Ch2 Square
	Ch3 Wave
	Ch4 Noise

	MasterLeftVolume, MasterRightVolume uint8
	LeftEnable, RightEnable             [4]bool
}

// Sink is the external audio collaborator. UpdateChannels is
// called synchronously whenever a sound I/O register write changes one of
// the four channels' state; PlaySamples is a host-driven tick requesting
// the sink push any buffered output to the device. Waveform synthesis
// itself happens entirely inside the Sink implementation, never in the
// core.
type Sink interface {
	UpdateChannels(snap ChannelSnapshot)
	PlaySamples()
	Close() error
}

// NullSink discards every snapshot and tick; the zero value before a host
// wires in a real backend, and what headless tests use.
type NullSink struct{}

func (NullSink) UpdateChannels(ChannelSnapshot) {}
func (NullSink) PlaySamples()                   {}
func (NullSink) Close() error                   { return nil }
