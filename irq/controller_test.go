package irq

import "testing"

func TestRequestGatedByIMEAndIE(t *testing.T) {
	c := NewController()
	if c.Request(VBlank) {
		t.Fatal("expected Request to fail before IME/IE are set")
	}
	if c.Pending() {
		t.Fatal("expected no pending IRQ before IME/IE are set")
	}

	c.SetIME(true)
	if c.Request(VBlank) {
		t.Fatal("expected Request to fail before the source is enabled in IE")
	}

	c.SetIE(VBlank.mask())
	if !c.Request(VBlank) {
		t.Fatal("expected Request to succeed once IME and IE both permit it")
	}
	if !c.Pending() {
		t.Fatal("expected a pending IRQ once IME, IE, and IF all agree")
	}
}

func TestWriteIFClearsOnlyWrittenBits(t *testing.T) {
	c := NewController()
	c.SetIME(true)
	c.SetIE(VBlank.mask() | Keypad.mask())
	c.Request(VBlank)
	c.Request(Keypad)

	c.WriteIF(VBlank.mask())
	if c.IF()&VBlank.mask() != 0 {
		t.Fatal("expected VBlank bit cleared")
	}
	if c.IF()&Keypad.mask() == 0 {
		t.Fatal("expected Keypad bit to remain set")
	}
}

func TestTimerAndDMASourceMapping(t *testing.T) {
	if TimerSource(2) != Timer2Overflow {
		t.Fatalf("TimerSource(2) = %v, want Timer2Overflow", TimerSource(2))
	}
	if DMASource(3) != DMA3 {
		t.Fatalf("DMASource(3) = %v, want DMA3", DMASource(3))
	}
}

func TestMasterDisableSuppressesPending(t *testing.T) {
	c := NewController()
	c.SetIME(true)
	c.SetIE(VBlank.mask())
	c.Request(VBlank)
	c.SetIME(false)
	if c.Pending() {
		t.Fatal("expected IME=false to suppress a pending IRQ regardless of IE/IF")
	}
}
