//go:build !headless

// Package otosink adapts audio.Sink onto an oto.Context player, exercising
// the channel-snapshot collaborator contract end to end. DSP synthesis is
// a non-goal: the player emits silence, not the four PSG
// channels' actual waveforms.
//
// Grounded on audio_backend_oto.go's OtoPlayer: atomic.Pointer handoff of
// the latest state for a lock-free Read() hot path, mutex-guarded
// start/stop/close.
package otosink

import (
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"

	"github.com/fennecforge/gbacore/audio"
)

// Sink keeps an oto player alive and answers its Read callback with
// silence, while still recording every channel snapshot it is handed so
// a future DSP implementation has somewhere to plug in.
type Sink struct {
	ctx    *oto.Context
	player *oto.Player

	snap    atomic.Pointer[audio.ChannelSnapshot]
	mu      sync.Mutex
	started bool
}

// New opens an oto context at sampleRate and returns a Sink ready to be
// registered as the console's audio.Sink.
func New(sampleRate int) (*Sink, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   0,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	s := &Sink{ctx: ctx}
	s.player = ctx.NewPlayer(s)
	s.player.Play()
	s.started = true
	return s, nil
}

// Read implements io.Reader for oto.Player. It ignores the stored snapshot
// entirely (no synthesis, per the non-goal above) and fills the buffer
// with silence so the player's callback contract is honored.
func (s *Sink) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

// UpdateChannels implements audio.Sink. It stores the latest snapshot
// atomically so a future synthesis backend can read it from Read without
// taking a lock.
func (s *Sink) UpdateChannels(snap audio.ChannelSnapshot) {
	s.snap.Store(&snap)
}

// PlaySamples implements audio.Sink. The oto player already pulls on its
// own schedule via Read, so this is a no-op hook kept for interface
// symmetry with a future buffered backend.
func (s *Sink) PlaySamples() {}

// Close stops playback and releases the player.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started && s.player != nil {
		s.player.Close()
		s.started = false
	}
	return nil
}
