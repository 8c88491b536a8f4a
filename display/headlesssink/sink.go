// Package headlesssink is a buffering video.Sink with no display backend,
// used by tests and cmd/gbaframe.
//
// Grounded on video_backend_headless.go's HeadlessVideoOutput: an
// atomically-counted frame tally plus a captured last frame, no windowing
// system underneath.
package headlesssink

import (
	"sync"
	"sync/atomic"

	"github.com/fennecforge/gbacore/video"
)

// Sink keeps one frame buffer whose lines are overwritten as they arrive,
// and counts frames and lines; the buffer is guarded by a mutex so a
// consumer goroutine can poll LastFrame concurrently with the console
// stepping.
type Sink struct {
	mu    sync.Mutex
	frame [160][240]uint16

	frameCount atomic.Uint64
	lineCount  atomic.Uint64
}

// New returns a ready-to-use headless sink.
func New() *Sink {
	return &Sink{}
}

func (s *Sink) PreFrame() {}

func (s *Sink) PostFrame() {
	s.frameCount.Add(1)
}

func (s *Sink) DisplayLine(line int, pixels [240]uint16) {
	s.lineCount.Add(1)
	if line < 0 || line >= 160 {
		return
	}
	s.mu.Lock()
	s.frame[line] = pixels
	s.mu.Unlock()
}

// LastFrame returns a copy of the frame buffer, safe to call from any
// goroutine. Called mid-frame, the copy holds the current frame's lines so
// far and the previous frame's lines below them.
func (s *Sink) LastFrame() [160][240]uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// FrameCount returns the number of PostFrame callbacks seen so far.
func (s *Sink) FrameCount() uint64 { return s.frameCount.Load() }

// LineCount returns the number of DisplayLine callbacks seen so far,
// including any fired outside the 160-line visible range.
func (s *Sink) LineCount() uint64 { return s.lineCount.Load() }

var _ video.Sink = (*Sink)(nil)
