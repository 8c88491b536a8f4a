// window.go - window mask computation.
//
// Grounded on original_source/pyrite-gba/src/lcd/blending.rs's Windows type,
// which in that source is a stub ("@TODO implement this :P") with every field
// zero; this completes it per the GBA architecture reference.
package video

// lineWindowMask is the per-column resolved content (which layers may draw,
// whether effects apply) for one scanline, after Window0/Window1/OBJ-window/
// Outside priority resolution.
type lineWindowMask struct {
	enabled bool // true if any window is active this frame
	content [240]WindowContent
}

// allEnabledContent is the implicit mask used when no window is enabled:
// every layer draws and effects always apply.
var allEnabledContent = WindowContent{
	BGEnable:  [4]bool{true, true, true, true},
	OBJEnable: true,
	Effects:   true,
}

// computeWindowMask resolves per-column content for the line, given the
// OBJ-window coverage the sprite pass already determined (objWindow[x] true
// means an OBJ-window-mode sprite is opaque at that column).
func computeWindowMask(reg *Registers, line int, objWindow [240]bool) lineWindowMask {
	var m lineWindowMask
	anyWindow := reg.DISPCNT.Win0Enable || reg.DISPCNT.Win1Enable || reg.DISPCNT.WinOBJEnable
	if !anyWindow {
		for x := range m.content {
			m.content[x] = allEnabledContent
		}
		return m
	}
	m.enabled = true

	for x := 0; x < 240; x++ {
		switch {
		case reg.DISPCNT.Win0Enable && reg.Win[0].Contains(x, line):
			m.content[x] = reg.WinIn[0]
		case reg.DISPCNT.Win1Enable && reg.Win[1].Contains(x, line):
			m.content[x] = reg.WinIn[1]
		case reg.DISPCNT.WinOBJEnable && objWindow[x]:
			m.content[x] = reg.WinObjContent
		default:
			m.content[x] = reg.WinOut
		}
	}
	return m
}
