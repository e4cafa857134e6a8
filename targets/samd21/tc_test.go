package samd21

import (
	"testing"

	"samdtimer/core"
	"samdtimer/regs"
)

type fakeIRQ struct {
	enabled bool
	calls   int
}

func (f *fakeIRQ) Enable()  { f.enabled = true; f.calls++ }
func (f *fakeIRQ) Disable() { f.enabled = false; f.calls++ }

type board struct {
	tc   regs.TC21
	tcc  regs.TCC21
	gclk regs.GCLK21
	pm   regs.PM21
	irq  fakeIRQ
}

func (b *board) clocks() Clocks {
	return Clocks{GCLK: &b.gclk, PM: &b.pm}
}

func TestTCSetup(t *testing.T) {
	var b board
	b.tc.INTENSET.Set(0xFF)
	tc := NewTC3(&b.tc, b.clocks(), &b.irq)

	tc.Setup()

	if !b.pm.APBCMASK.HasBits(regs.PM21ApbcTC3) {
		t.Error("TC3 bus clock not enabled")
	}
	if got := b.gclk.CLKCTRL.Get(); got != 0x401B {
		t.Errorf("CLKCTRL = %#x, want 0x401B", got)
	}
	if got := b.tc.CTRLA.Get(); got != regs.TC21WavegenMFRQ<<regs.TC21CtrlaWavegenPos {
		t.Errorf("CTRLA = %#x, want MFRQ and disabled", got)
	}
	if got := b.tc.INTENSET.Get(); got != regs.TC21IntMC0 {
		t.Errorf("INTENSET = %#x, want MC0", got)
	}
	if b.irq.calls != 0 {
		t.Error("Setup touched the NVIC")
	}
}

func TestTCRegisterAccess(t *testing.T) {
	var b board
	tc := NewTC3(&b.tc, b.clocks(), &b.irq)

	tc.Start(core.Div64)
	if got := b.tc.CTRLA.Get(); got != 5<<8|regs.TC21CtrlaEnable {
		t.Errorf("CTRLA after Start(64) = %#x", got)
	}
	if !tc.Running() || tc.Prescaler() != core.Div64 {
		t.Errorf("Running=%v Prescaler=%d", tc.Running(), tc.Prescaler())
	}

	b.tc.COUNT.Set(1234)
	if got := tc.ReadCount(); got != 1234 {
		t.Errorf("ReadCount = %d", got)
	}
	if got := b.tc.READREQ.Get(); got != regs.TC21ReadreqRREQ|regs.TC21CountOffset {
		t.Errorf("READREQ for count = %#x", got)
	}

	tc.WriteTop(999)
	if got := tc.ReadTop(); got != 999 {
		t.Errorf("ReadTop = %d", got)
	}
	if got := b.tc.READREQ.Get(); got != regs.TC21ReadreqRREQ|regs.TC21CC0Offset {
		t.Errorf("READREQ for CC0 = %#x", got)
	}

	tc.Disable()
	if tc.Running() || tc.Prescaler() != core.Div64 {
		t.Error("Disable changed more than the enable bit")
	}

	tc.EnableIRQ()
	if !b.irq.enabled {
		t.Error("EnableIRQ did not reach the NVIC line")
	}
	tc.DisableIRQ()
	if b.irq.enabled {
		t.Error("DisableIRQ did not reach the NVIC line")
	}
}

func TestTCAcknowledge(t *testing.T) {
	var b board
	tc := NewTC3(&b.tc, b.clocks(), &b.irq)

	tests := []struct {
		flags uint8
		want  bool
	}{
		{regs.TC21IntMC0, true},
		{regs.TC21IntMC0 | regs.TC21IntOVF, true},
		{regs.TC21IntOVF, false},
		{0, false},
	}
	for _, tt := range tests {
		b.tc.INTFLAG.Set(tt.flags)
		if got := tc.Acknowledge(); got != tt.want {
			t.Errorf("Acknowledge with INTFLAG %#x = %v", tt.flags, got)
		}
	}
}

func TestTCThroughChannel(t *testing.T) {
	var b board
	tc := NewTC3(&b.tc, b.clocks(), &b.irq)
	if err := core.RegisterPeripheral(core.TC3, tc); err != nil {
		t.Fatal(err)
	}

	n := 0
	ch := core.NewChannel(core.TC3)
	if err := ch.ConfigureInterval(1000, func() { n++ }); err != nil {
		t.Fatal(err)
	}
	if b.tc.CC[0].Get() != 47999 || tc.Prescaler() != core.Div1 || !tc.Running() || !b.irq.enabled {
		t.Fatalf("CC0=%d prescaler=%d running=%v irq=%v",
			b.tc.CC[0].Get(), tc.Prescaler(), tc.Running(), b.irq.enabled)
	}

	b.tc.INTFLAG.Set(regs.TC21IntMC0)
	core.HandleInterrupt(core.TC3)
	if n != 1 {
		t.Errorf("callback ran %d times", n)
	}

	// Half way through the period, switch to 8 ms: /8 and the count follows.
	b.tc.COUNT.Set(24000)
	if err := ch.ConfigureInterval(8000, func() { n++ }); err != nil {
		t.Fatal(err)
	}
	if got := b.tc.COUNT.Get(); got != 3000 {
		t.Errorf("COUNT after rescale = %d, want 3000", got)
	}
	if b.tc.CC[0].Get() != 47999 || tc.Prescaler() != core.Div8 || !tc.Running() {
		t.Errorf("CC0=%d prescaler=%d running=%v", b.tc.CC[0].Get(), tc.Prescaler(), tc.Running())
	}
}
