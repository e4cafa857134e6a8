//go:build tinygo

package regs

import "runtime/volatile"

// Register cells map straight onto TinyGo's volatile registers so every access
// compiles to a single volatile load or store.
type (
	Register8  = volatile.Register8
	Register16 = volatile.Register16
	Register32 = volatile.Register32
)
