package samd21

import (
	"testing"

	"samdtimer/core"
	"samdtimer/regs"
)

func TestTCCSetup(t *testing.T) {
	var b board
	tcc := NewTCC0(&b.tcc, b.clocks(), &b.irq)

	tcc.Setup()

	if !b.pm.APBCMASK.HasBits(regs.PM21ApbcTCC0) {
		t.Error("TCC0 bus clock not enabled")
	}
	if got := b.gclk.CLKCTRL.Get(); got != 0x401A {
		t.Errorf("CLKCTRL = %#x, want 0x401A", got)
	}
	if got := b.tcc.WAVE.Get(); got != regs.TCC21WavegenNFRQ {
		t.Errorf("WAVE = %#x, want NFRQ", got)
	}
	if got := b.tcc.CC[0].Get(); got != tccParkedCC0 {
		t.Errorf("CC0 = %#x, want %#x", got, tccParkedCC0)
	}
	if got := b.tcc.INTENSET.Get(); got != regs.TCC21IntOVF|regs.TCC21IntMC0 {
		t.Errorf("INTENSET = %#x", got)
	}
	if tcc.Running() {
		t.Error("Setup left the counter enabled")
	}
}

func TestTCCRegisterAccess(t *testing.T) {
	var b board
	tcc := NewTCC0(&b.tcc, b.clocks(), &b.irq)

	tcc.Start(core.Div1024)
	if got := b.tcc.CTRLA.Get(); got != 7<<8|regs.TCC21CtrlaEnable {
		t.Errorf("CTRLA after Start(1024) = %#x", got)
	}
	if tcc.Prescaler() != core.Div1024 {
		t.Errorf("Prescaler = %d", tcc.Prescaler())
	}

	b.tcc.COUNT.Set(0x12345)
	if got := tcc.ReadCount(); got != 0x2345 {
		t.Errorf("ReadCount = %#x, want the low 16 bits", got)
	}
	if got := b.tcc.CTRLBSET.Get(); got != regs.TCC21CtrlbCmdReadsync<<regs.TCC21CtrlbCmdPos {
		t.Errorf("CTRLBSET = %#x, want READSYNC", got)
	}

	tcc.WriteTop(23437)
	if got := b.tcc.PER.Get(); got != 23437 {
		t.Errorf("PER = %d", got)
	}
	if got := tcc.ReadTop(); got != 23437 {
		t.Errorf("ReadTop = %d", got)
	}
	tcc.WriteCount(10)
	if got := b.tcc.COUNT.Get(); got != 10 {
		t.Errorf("COUNT = %d", got)
	}
}

func TestTCCAcknowledge(t *testing.T) {
	var b board
	tcc := NewTCC0(&b.tcc, b.clocks(), &b.irq)

	tests := []struct {
		flags uint32
		want  bool
	}{
		{regs.TCC21IntOVF, true},
		{regs.TCC21IntOVF | regs.TCC21IntMC0, true},
		{regs.TCC21IntMC0, false},
	}
	for _, tt := range tests {
		b.tcc.INTFLAG.Set(tt.flags)
		if got := tcc.Acknowledge(); got != tt.want {
			t.Errorf("Acknowledge with INTFLAG %#x = %v", tt.flags, got)
		}
	}
}

func TestTCCLongPeriod(t *testing.T) {
	var b board
	tcc := NewTCC0(&b.tcc, b.clocks(), &b.irq)
	core.RegisterPeripheral(core.TCC0, tcc)

	ch := core.NewChannel(core.TCC0)
	if err := ch.ConfigureInterval(500000, nil); err != nil {
		t.Fatal(err)
	}
	if b.tcc.PER.Get() != 23437 || tcc.Prescaler() != core.Div1024 {
		t.Errorf("PER=%d prescaler=%d, want 23437 /1024", b.tcc.PER.Get(), tcc.Prescaler())
	}

	// Shortening to 1 ms while running rescales from /1024 to /1.
	b.tcc.COUNT.Set(40)
	ch.ConfigureInterval(1000, nil)
	if got := b.tcc.COUNT.Get(); got != 40960 {
		t.Errorf("COUNT after rescale = %d, want 40960", got)
	}
	if b.tcc.PER.Get() != 47999 {
		t.Errorf("PER = %d, want 47999", b.tcc.PER.Get())
	}
}
