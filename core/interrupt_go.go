//go:build !tinygo

package core

// State mirrors interrupt.State for host builds.
type State uintptr

// maskDepth counts nested disableInterrupts calls so tests can check that a
// sequence ran with interrupts masked. Nothing is actually masked on the host.
var maskDepth int

func disableInterrupts() State {
	maskDepth++
	return State(maskDepth - 1)
}

func restoreInterrupts(state State) {
	maskDepth = int(state)
}

func interruptsMasked() bool {
	return maskDepth > 0
}
