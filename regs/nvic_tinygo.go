//go:build tinygo && (atsamd21 || atsamd51)

package regs

import "device/arm"

// NVICLine gates one interrupt line in the NVIC.
type NVICLine uint32

func (l NVICLine) Enable()  { arm.EnableIRQ(uint32(l)) }
func (l NVICLine) Disable() { arm.DisableIRQ(uint32(l)) }
