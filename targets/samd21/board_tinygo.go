//go:build tinygo && atsamd21

package samd21

import (
	"device/sam"
	"runtime/interrupt"
	"unsafe"

	"samdtimer/core"
	"samdtimer/regs"
)

var clocks = Clocks{
	GCLK: (*regs.GCLK21)(unsafe.Pointer(uintptr(regs.GCLK21Base))),
	PM:   (*regs.PM21)(unsafe.Pointer(uintptr(regs.PM21Base))),
}

var (
	tc3  = NewTC3((*regs.TC21)(unsafe.Pointer(uintptr(regs.TC321Base))), clocks, regs.NVICLine(sam.IRQ_TC3))
	tcc0 = NewTCC0((*regs.TCC21)(unsafe.Pointer(uintptr(regs.TCC021Base))), clocks, regs.NVICLine(sam.IRQ_TCC0))
)

// Register installs the TC3 and TCC0 interrupt entry points and binds both
// timers to their core instances. The NVIC lines stay disabled until the
// first configuration of each instance.
func Register() {
	interrupt.New(sam.IRQ_TC3, func(interrupt.Interrupt) {
		core.HandleInterrupt(core.TC3)
	})
	interrupt.New(sam.IRQ_TCC0, func(interrupt.Interrupt) {
		core.HandleInterrupt(core.TCC0)
	})

	core.RegisterPeripheral(core.TC3, tc3)
	core.RegisterPeripheral(core.TCC0, tcc0)

	core.RegisterConstant("MCU", "samd21")
	core.RegisterConstant("CLOCK_FREQ", uint32(48000000))
}
