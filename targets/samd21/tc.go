package samd21

import (
	"samdtimer/core"
	"samdtimer/regs"
)

// TC is a TC instance in 16-bit match-frequency mode: CC0 is both the compare
// and the top, and the MC0 interrupt marks the end of a period.
//
// Register writes and reads are synchronized through STATUS.SYNCBUSY and the
// READREQ handshake.
type TC struct {
	regs   *regs.TC21
	clocks Clocks
	irq    IRQLine

	apbcMask uint32
	clockID  uint16
}

var _ core.Peripheral = (*TC)(nil)

// NewTC3 returns the driver for TC3.
func NewTC3(tc *regs.TC21, clocks Clocks, irq IRQLine) *TC {
	return &TC{
		regs:     tc,
		clocks:   clocks,
		irq:      irq,
		apbcMask: regs.PM21ApbcTC3,
		clockID:  regs.GCLK21IDTCC2TC3,
	}
}

func (t *TC) sync() {
	for t.regs.STATUS.HasBits(regs.TC21StatusSyncbusy) {
	}
}

func (t *TC) Setup() {
	t.clocks.enable(t.apbcMask, t.clockID)

	t.regs.CTRLA.ClearBits(regs.TC21CtrlaEnable)
	t.sync()
	t.regs.CTRLA.Set(regs.TC21CtrlaSwrst)
	t.sync()

	t.regs.CTRLA.Set(regs.TC21ModeCount16<<regs.TC21CtrlaModePos |
		regs.TC21WavegenMFRQ<<regs.TC21CtrlaWavegenPos)
	t.sync()

	t.regs.INTENCLR.Set(0xFF)
	t.regs.INTFLAG.Set(0xFF)
	t.regs.INTENSET.Set(regs.TC21IntMC0)
}

func (t *TC) Prescaler() core.Prescaler {
	code := t.regs.CTRLA.Get() >> regs.TC21CtrlaPrescalerPos & regs.TC21CtrlaPrescalerMask
	return core.PrescalerFromCode(uint8(code))
}

func (t *TC) Running() bool {
	return t.regs.CTRLA.HasBits(regs.TC21CtrlaEnable)
}

// read latches the register at offset into the bus clock domain.
func (t *TC) read(offset uint16) {
	t.regs.READREQ.Set(regs.TC21ReadreqRREQ | offset&regs.TC21ReadreqAddrMask)
	t.sync()
}

func (t *TC) ReadCount() uint16 {
	t.read(regs.TC21CountOffset)
	return t.regs.COUNT.Get()
}

func (t *TC) ReadTop() uint16 {
	t.read(regs.TC21CC0Offset)
	return t.regs.CC[0].Get()
}

func (t *TC) WriteCount(count uint16) {
	t.regs.COUNT.Set(count)
	t.sync()
}

func (t *TC) WriteTop(top uint16) {
	t.regs.CC[0].Set(top)
	t.sync()
}

func (t *TC) Start(p core.Prescaler) {
	v := t.regs.CTRLA.Get() &^ (regs.TC21CtrlaPrescalerMask << regs.TC21CtrlaPrescalerPos)
	v |= uint16(p.Code())<<regs.TC21CtrlaPrescalerPos | regs.TC21CtrlaEnable
	t.regs.CTRLA.Set(v)
	t.sync()
}

func (t *TC) Enable() {
	t.regs.CTRLA.SetBits(regs.TC21CtrlaEnable)
	t.sync()
}

func (t *TC) Disable() {
	t.regs.CTRLA.ClearBits(regs.TC21CtrlaEnable)
	t.sync()
}

func (t *TC) EnableIRQ()  { t.irq.Enable() }
func (t *TC) DisableIRQ() { t.irq.Disable() }

// Acknowledge clears every pending flag (write one to clear) and reports a
// compare match on CC0.
func (t *TC) Acknowledge() bool {
	flags := t.regs.INTFLAG.Get()
	t.regs.INTFLAG.Set(flags)
	return flags&regs.TC21IntMC0 != 0
}
