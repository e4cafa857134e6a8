package samd21

import (
	"samdtimer/core"
	"samdtimer/regs"
)

// tccParkedCC0 keeps the CC0 match away from the 16-bit periods used here;
// the period is driven by PER and the overflow interrupt.
const tccParkedCC0 = 0xFFF

// TCC is a TCC instance in normal-frequency mode. PER is the top, overflow
// marks the end of a period and the MC0 flag is only cleared.
type TCC struct {
	regs   *regs.TCC21
	clocks Clocks
	irq    IRQLine
}

var _ core.Peripheral = (*TCC)(nil)

// NewTCC0 returns the driver for TCC0.
func NewTCC0(tcc *regs.TCC21, clocks Clocks, irq IRQLine) *TCC {
	return &TCC{regs: tcc, clocks: clocks, irq: irq}
}

func (t *TCC) sync(mask uint32) {
	for t.regs.SYNCBUSY.HasBits(mask) {
	}
}

func (t *TCC) Setup() {
	t.clocks.enable(regs.PM21ApbcTCC0, regs.GCLK21IDTCC0TCC1)

	t.regs.CTRLA.ClearBits(regs.TCC21CtrlaEnable)
	t.sync(regs.TCC21SyncEnable)
	t.regs.CTRLA.Set(regs.TCC21CtrlaSwrst)
	t.sync(regs.TCC21SyncSwrst)

	t.regs.WAVE.Set(regs.TCC21WavegenNFRQ << regs.TCC21WaveWavegenPos)
	t.sync(regs.TCC21SyncWave)
	t.regs.CC[0].Set(tccParkedCC0)
	t.sync(regs.TCC21SyncCC0)

	t.regs.INTENCLR.Set(0xFFFFFFFF)
	t.regs.INTFLAG.Set(0xFFFFFFFF)
	t.regs.INTENSET.Set(regs.TCC21IntOVF | regs.TCC21IntMC0)
}

func (t *TCC) Prescaler() core.Prescaler {
	code := t.regs.CTRLA.Get() >> regs.TCC21CtrlaPrescalerPos & regs.TCC21CtrlaPrescalerMask
	return core.PrescalerFromCode(uint8(code))
}

func (t *TCC) Running() bool {
	return t.regs.CTRLA.HasBits(regs.TCC21CtrlaEnable)
}

// ReadCount issues READSYNC so COUNT holds a coherent copy of the counter.
func (t *TCC) ReadCount() uint16 {
	t.regs.CTRLBSET.Set(regs.TCC21CtrlbCmdReadsync << regs.TCC21CtrlbCmdPos)
	t.sync(regs.TCC21SyncCtrlb)
	t.sync(regs.TCC21SyncCount)
	return uint16(t.regs.COUNT.Get())
}

func (t *TCC) ReadTop() uint16 {
	t.sync(regs.TCC21SyncPer)
	return uint16(t.regs.PER.Get())
}

func (t *TCC) WriteCount(count uint16) {
	t.regs.COUNT.Set(uint32(count))
	t.sync(regs.TCC21SyncCount)
}

func (t *TCC) WriteTop(top uint16) {
	t.regs.PER.Set(uint32(top))
	t.sync(regs.TCC21SyncPer)
}

func (t *TCC) Start(p core.Prescaler) {
	v := t.regs.CTRLA.Get() &^ (regs.TCC21CtrlaPrescalerMask << regs.TCC21CtrlaPrescalerPos)
	v |= uint32(p.Code())<<regs.TCC21CtrlaPrescalerPos | regs.TCC21CtrlaEnable
	t.regs.CTRLA.Set(v)
	t.sync(regs.TCC21SyncEnable)
}

func (t *TCC) Enable() {
	t.regs.CTRLA.SetBits(regs.TCC21CtrlaEnable)
	t.sync(regs.TCC21SyncEnable)
}

func (t *TCC) Disable() {
	t.regs.CTRLA.ClearBits(regs.TCC21CtrlaEnable)
	t.sync(regs.TCC21SyncEnable)
}

func (t *TCC) EnableIRQ()  { t.irq.Enable() }
func (t *TCC) DisableIRQ() { t.irq.Disable() }

// Acknowledge clears every pending flag and reports an overflow.
func (t *TCC) Acknowledge() bool {
	flags := t.regs.INTFLAG.Get()
	t.regs.INTFLAG.Set(flags)
	return flags&regs.TCC21IntOVF != 0
}
