// Package ebitensink implements the windowed video.Sink backend using
// ebiten, and doubles as the host's keypad input source.
//
// Grounded on video_backend_ebiten.go's EbitenOutput: an ebiten.Game driving
// a resizable window from a raw pixel buffer, RGB555 conversion following
// video/palette.go's RGB555ToRGB888 expansion, and mutex-guarded buffer
// handoff between the emulation goroutine (DisplayLine) and ebiten's own
// draw goroutine (Draw).
package ebitensink

import (
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/fennecforge/gbacore/video"
)

const (
	screenW = 240
	screenH = 160
)

// Sink is a video.Sink that renders into an ebiten window and reports the
// current keypad state back to the host.
type Sink struct {
	mu      sync.Mutex
	pixels  [screenH][screenW]uint16
	img     *ebiten.Image
	rgba    []byte
	scale   int
	onClose func()
}

// New returns a Sink scaled by the given integer factor (2 is a common
// default for a 240x160 panel on a modern display).
func New(scale int) *Sink {
	if scale < 1 {
		scale = 1
	}
	return &Sink{
		img:   ebiten.NewImage(screenW, screenH),
		rgba:  make([]byte, screenW*screenH*4),
		scale: scale,
	}
}

func (s *Sink) PreFrame()  {}
func (s *Sink) PostFrame() {}

// DisplayLine stores one scanline; the frame is blitted into the ebiten
// image lazily on the next Draw call rather than per-line, since ebiten
// images aren't safe to touch off its own goroutine.
func (s *Sink) DisplayLine(line int, px [screenW]uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pixels[line] = px
}

// Layout implements ebiten.Game.
func (s *Sink) Layout(int, int) (int, int) { return screenW * s.scale, screenH * s.scale }

// Update implements ebiten.Game; the GBA core's own loop drives stepping,
// so this just polls for quit.
func (s *Sink) Update() error {
	if ebiten.IsWindowBeingClosed() && s.onClose != nil {
		s.onClose()
	}
	return nil
}

// Draw implements ebiten.Game: expands the last frame's RGB555 rows to
// RGB888 and blits them into the window.
func (s *Sink) Draw(screen *ebiten.Image) {
	s.mu.Lock()
	for y := 0; y < screenH; y++ {
		for x := 0; x < screenW; x++ {
			r, g, b := video.RGB555ToRGB888(s.pixels[y][x])
			i := (y*screenW + x) * 4
			s.rgba[i], s.rgba[i+1], s.rgba[i+2], s.rgba[i+3] = r, g, b, 0xFF
		}
	}
	s.mu.Unlock()
	s.img.WritePixels(s.rgba)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(s.scale), float64(s.scale))
	screen.DrawImage(s.img, op)
}

// OnClose registers a callback invoked when the ebiten window is closed.
func (s *Sink) OnClose(fn func()) { s.onClose = fn }

// ReadKeys polls ebiten's key state and returns the active-high 10-bit
// GBA button mask (A,B,Select,Start,Right,Left,Up,Down,R,L).
func ReadKeys() uint16 {
	var v uint16
	set := func(bit uint, key ebiten.Key) {
		if ebiten.IsKeyPressed(key) {
			v |= 1 << bit
		}
	}
	set(0, ebiten.KeyX)
	set(1, ebiten.KeyZ)
	set(2, ebiten.KeyBackspace)
	set(3, ebiten.KeyEnter)
	set(4, ebiten.KeyArrowRight)
	set(5, ebiten.KeyArrowLeft)
	set(6, ebiten.KeyArrowUp)
	set(7, ebiten.KeyArrowDown)
	set(8, ebiten.KeyS)
	set(9, ebiten.KeyA)
	return v
}

var _ image.Image = (*ebiten.Image)(nil)
