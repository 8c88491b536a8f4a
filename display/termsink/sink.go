// Package termsink renders the frame buffer as a downsampled block of
// ANSI truecolor characters directly to stdout, for running the core in a
// terminal with no GUI backend available.
//
// Grounded on terminal_host.go's raw-mode/restore lifecycle (term.MakeRaw,
// deferred term.Restore) and its use of golang.org/x/term for low-level
// terminal control.
package termsink

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/fennecforge/gbacore/video"
)

// Sink prints every completed frame to stdout as a grid of "▀" characters,
// each carrying two scanlines' worth of color via 24-bit foreground and
// background ANSI escapes. It only ever writes full frames (PostFrame),
// never streams per-line, since a terminal repaint is itself the unit of
// output.
type Sink struct {
	fd           int
	oldState     *term.State
	rawEntered   bool
	out          *bufio.Writer
	frame        [160][240]uint16
	cols, rows   int
}

// New wraps stdout for block-character output. Call Start to enter raw
// mode (hides the cursor and disables line echo while the core runs) and
// Stop to restore the terminal to its prior state.
func New() *Sink {
	return &Sink{
		fd:  int(os.Stdout.Fd()),
		out: bufio.NewWriter(os.Stdout),
	}
}

// Start queries the terminal size and enters raw mode, matching
// terminal_host.go's term.MakeRaw/term.State save-and-restore pattern.
func (s *Sink) Start() error {
	cols, rows, err := term.GetSize(s.fd)
	if err != nil {
		cols, rows = 80, 24
	}
	s.cols, s.rows = cols, rows

	state, err := term.MakeRaw(s.fd)
	if err != nil {
		return fmt.Errorf("termsink: failed to set raw mode: %w", err)
	}
	s.oldState = state
	s.rawEntered = true
	fmt.Fprint(s.out, "\x1b[?25l") // hide cursor
	s.out.Flush()
	return nil
}

// Stop restores the terminal to the state captured by Start.
func (s *Sink) Stop() {
	if !s.rawEntered {
		return
	}
	fmt.Fprint(s.out, "\x1b[?25h\x1b[0m\n")
	s.out.Flush()
	_ = term.Restore(s.fd, s.oldState)
	s.rawEntered = false
}

func (s *Sink) PreFrame() {}

func (s *Sink) DisplayLine(line int, pixels [240]uint16) {
	if line < 0 || line >= 160 {
		return
	}
	s.frame[line] = pixels
}

// PostFrame redraws the whole terminal from the buffered frame, one pair
// of scanlines per output row using the half-block "▀" trick (foreground
// = top pixel, background = bottom pixel).
func (s *Sink) PostFrame() {
	destRows := s.rows
	if destRows <= 0 {
		destRows = 24
	}
	destCols := s.cols
	if destCols <= 0 {
		destCols = 80
	}

	fmt.Fprint(s.out, "\x1b[H")
	for outRow := 0; outRow < destRows; outRow++ {
		topLine := outRow * 2 * 160 / (destRows * 2)
		botLine := (outRow*2 + 1) * 160 / (destRows * 2)
		if botLine >= 160 {
			botLine = 159
		}
		for outCol := 0; outCol < destCols; outCol++ {
			srcCol := outCol * 240 / destCols
			tr, tg, tb := video.RGB555ToRGB888(s.frame[topLine][srcCol] &^ 0x8000)
			br, bg, bb := video.RGB555ToRGB888(s.frame[botLine][srcCol] &^ 0x8000)
			fmt.Fprintf(s.out, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", tr, tg, tb, br, bg, bb)
		}
		fmt.Fprint(s.out, "\x1b[0m\r\n")
	}
	s.out.Flush()
}

var _ video.Sink = (*Sink)(nil)
