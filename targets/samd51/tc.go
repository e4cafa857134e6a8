// Package samd51 drives the TC3 timer of the SAMD51.
package samd51

import (
	"samdtimer/core"
	"samdtimer/regs"
)

// IRQLine is the NVIC line of one peripheral.
type IRQLine interface {
	Enable()
	Disable()
}

// Clocks feeds a timer: the APBB bus mask in MCLK and a peripheral channel in
// GCLK.
type Clocks struct {
	GCLK *regs.GCLK51
	MCLK *regs.MCLK51
}

// TC is a TC instance in 16-bit match-frequency mode. Every write waits on
// the matching SYNCBUSY bit; COUNT is read after a READSYNC command.
type TC struct {
	regs   *regs.TC51
	clocks Clocks
	irq    IRQLine
}

var _ core.Peripheral = (*TC)(nil)

// NewTC3 returns the driver for TC3.
func NewTC3(tc *regs.TC51, clocks Clocks, irq IRQLine) *TC {
	return &TC{regs: tc, clocks: clocks, irq: irq}
}

func (t *TC) sync(mask uint32) {
	for t.regs.SYNCBUSY.HasBits(mask) {
	}
}

// Setup routes GCLK1 (48MHz on TinyGo's SAMD51 clock tree) to TC2/TC3.
func (t *TC) Setup() {
	t.clocks.MCLK.APBBMASK.SetBits(regs.MCLK51ApbbTC3)
	t.clocks.GCLK.PCHCTRL[regs.GCLK51IDTC2TC3].Set(regs.GCLK51PchctrlChen |
		regs.GCLK51Gen1<<regs.GCLK51PchctrlGenPos)
	for !t.clocks.GCLK.PCHCTRL[regs.GCLK51IDTC2TC3].HasBits(regs.GCLK51PchctrlChen) {
	}

	t.regs.CTRLA.ClearBits(regs.TC51CtrlaEnable)
	t.sync(regs.TC51SyncEnable)
	t.regs.CTRLA.Set(regs.TC51CtrlaSwrst)
	t.sync(regs.TC51SyncSwrst)

	t.regs.CTRLA.Set(regs.TC51ModeCount16 << regs.TC51CtrlaModePos)
	t.regs.WAVE.Set(regs.TC51WavegenMFRQ)

	t.regs.INTENCLR.Set(0xFF)
	t.regs.INTFLAG.Set(0xFF)
	t.regs.INTENSET.Set(regs.TC51IntMC0)
}

func (t *TC) Prescaler() core.Prescaler {
	code := t.regs.CTRLA.Get() >> regs.TC51CtrlaPrescalerPos & regs.TC51CtrlaPrescalerMask
	return core.PrescalerFromCode(uint8(code))
}

func (t *TC) Running() bool {
	return t.regs.CTRLA.HasBits(regs.TC51CtrlaEnable)
}

func (t *TC) ReadCount() uint16 {
	t.regs.CTRLBSET.Set(regs.TC51CtrlbCmdReadsync << regs.TC51CtrlbCmdPos)
	t.sync(regs.TC51SyncCtrlb)
	t.sync(regs.TC51SyncCount)
	return t.regs.COUNT.Get()
}

func (t *TC) ReadTop() uint16 {
	t.sync(regs.TC51SyncCC0)
	return t.regs.CC[0].Get()
}

func (t *TC) WriteCount(count uint16) {
	t.regs.COUNT.Set(count)
	t.sync(regs.TC51SyncCount)
}

func (t *TC) WriteTop(top uint16) {
	t.regs.CC[0].Set(top)
	t.sync(regs.TC51SyncCC0)
}

func (t *TC) Start(p core.Prescaler) {
	v := t.regs.CTRLA.Get() &^ (regs.TC51CtrlaPrescalerMask << regs.TC51CtrlaPrescalerPos)
	v |= uint32(p.Code())<<regs.TC51CtrlaPrescalerPos | regs.TC51CtrlaEnable
	t.regs.CTRLA.Set(v)
	t.sync(regs.TC51SyncEnable)
}

func (t *TC) Enable() {
	t.regs.CTRLA.SetBits(regs.TC51CtrlaEnable)
	t.sync(regs.TC51SyncEnable)
}

func (t *TC) Disable() {
	t.regs.CTRLA.ClearBits(regs.TC51CtrlaEnable)
	t.sync(regs.TC51SyncEnable)
}

func (t *TC) EnableIRQ()  { t.irq.Enable() }
func (t *TC) DisableIRQ() { t.irq.Disable() }

func (t *TC) Acknowledge() bool {
	flags := t.regs.INTFLAG.Get()
	t.regs.INTFLAG.Set(flags)
	return flags&regs.TC51IntMC0 != 0
}
