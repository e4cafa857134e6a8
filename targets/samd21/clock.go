// Package samd21 drives the TC3 and TCC0 timers of the SAMD21.
//
// The drivers work on regs blocks, so they can be pointed at the real
// peripherals (board_tinygo.go) or at ordinary memory in tests.
package samd21

import "samdtimer/regs"

// IRQLine is the NVIC line of one peripheral.
type IRQLine interface {
	Enable()
	Disable()
}

// Clocks is the pair of controllers that feed a timer: the bus clock mask in
// PM and the generic clock channel in GCLK.
type Clocks struct {
	GCLK *regs.GCLK21
	PM   *regs.PM21
}

// enable ungates the APBC bus clock and routes GCLK0 (48MHz) to channel id.
func (c Clocks) enable(apbcMask uint32, id uint16) {
	c.PM.APBCMASK.SetBits(apbcMask)
	c.GCLK.CLKCTRL.Set(regs.GCLK21ClkctrlClken |
		regs.GCLK21Gen0<<regs.GCLK21ClkctrlGenPos |
		id<<regs.GCLK21ClkctrlIDPos)
	for c.GCLK.STATUS.HasBits(regs.GCLK21StatusSyncbusy) {
	}
}
