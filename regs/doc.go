// Package regs describes the register blocks of the SAMD21 and SAMD51 timer
// peripherals and the clock controllers that feed them.
//
// Each block is a struct whose field offsets match the datasheet, so a pointer
// to the peripheral base address can be converted into the block type. Under
// TinyGo every cell is a runtime/volatile register; on the host the same
// structs are plain memory, which lets the peripheral drivers be exercised in
// ordinary unit tests.
package regs
