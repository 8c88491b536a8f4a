// sink.go - the video collaborator boundary.
//
// Grounded on video_interface.go's VideoOutput/ScanlineAware split: the core
// never owns a window or GPU surface, it only calls back into whatever the
// host wired up.
package video

// Sink is the external video collaborator. PreFrame fires once at the start
// of line 0, DisplayLine once per visible scanline at HBLANK entry with a
// 240-wide row of opaque 15-bit RGB555 pixels (bit 15 set), and PostFrame
// once after line 159 has been emitted.
type Sink interface {
	PreFrame()
	DisplayLine(line int, pixels [240]uint16)
	PostFrame()
}

// NullSink discards every frame; used by the CPU-only test harness and as
// the zero value before a host wires in a real backend.
type NullSink struct{}

func (NullSink) PreFrame()                            {}
func (NullSink) DisplayLine(int, [240]uint16)          {}
func (NullSink) PostFrame()                            {}
