//go:build tinygo && atsamd51

package samd51

import (
	"device/sam"
	"runtime/interrupt"
	"unsafe"

	"samdtimer/core"
	"samdtimer/regs"
)

var tc3 = NewTC3(
	(*regs.TC51)(unsafe.Pointer(uintptr(regs.TC351Base))),
	Clocks{
		GCLK: (*regs.GCLK51)(unsafe.Pointer(uintptr(regs.GCLK51Base))),
		MCLK: (*regs.MCLK51)(unsafe.Pointer(uintptr(regs.MCLK51Base))),
	},
	regs.NVICLine(sam.IRQ_TC3),
)

// Register installs the TC3 interrupt entry point and binds the timer to
// core.TC3. TCC0 is not driven on this chip; channels on it report
// core.ErrInvalidInstance.
func Register() {
	interrupt.New(sam.IRQ_TC3, func(interrupt.Interrupt) {
		core.HandleInterrupt(core.TC3)
	})

	core.RegisterPeripheral(core.TC3, tc3)

	core.RegisterConstant("MCU", "samd51")
	core.RegisterConstant("CLOCK_FREQ", uint32(120000000))
}
