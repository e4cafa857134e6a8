package core

import (
	"fmt"
	"testing"
)

// modelTimer is an in-memory TC/TCC: it logs every register operation and
// keeps enough state to check rescaling.
type modelTimer struct {
	ops []string

	running   bool
	prescaler Prescaler
	count     uint16
	top       uint16
	irq       bool
	setups    int
	elapsed   bool // Acknowledge result

	// interrupt mask observed at Setup and at Start
	maskedAtSetup bool
	maskedAtStart []bool
}

func newModelTimer() *modelTimer {
	return &modelTimer{prescaler: Div1}
}

func (m *modelTimer) log(format string, args ...interface{}) {
	m.ops = append(m.ops, fmt.Sprintf(format, args...))
}

func (m *modelTimer) Setup() {
	m.setups++
	m.maskedAtSetup = interruptsMasked()
	m.log("Setup")
}

func (m *modelTimer) Prescaler() Prescaler { return m.prescaler }
func (m *modelTimer) Running() bool        { return m.running }

func (m *modelTimer) ReadCount() uint16 {
	m.log("ReadCount")
	return m.count
}

func (m *modelTimer) ReadTop() uint16 {
	m.log("ReadTop")
	return m.top
}

func (m *modelTimer) WriteCount(count uint16) {
	m.count = count
	m.log("WriteCount %d", count)
}

func (m *modelTimer) WriteTop(top uint16) {
	m.top = top
	m.log("WriteTop %d", top)
}

func (m *modelTimer) Start(p Prescaler) {
	m.prescaler = p
	m.running = true
	m.maskedAtStart = append(m.maskedAtStart, interruptsMasked())
	m.log("Start %d", p)
}

func (m *modelTimer) Enable() {
	m.running = true
	m.log("Enable")
}

func (m *modelTimer) Disable() {
	m.running = false
	m.log("Disable")
}

func (m *modelTimer) EnableIRQ() {
	m.irq = true
	m.log("EnableIRQ")
}

func (m *modelTimer) DisableIRQ() {
	m.irq = false
	m.log("DisableIRQ")
}

func (m *modelTimer) Acknowledge() bool {
	e := m.elapsed
	m.elapsed = false
	return e
}

func (m *modelTimer) clearOps() { m.ops = nil }

// resetCore clears all package state between tests.
func resetCore(t *testing.T) {
	t.Helper()
	units = [MaxInstance]unit{}
	ticks = [MaxInstance]uint32{}
	maskDepth = 0
	responder = nil
	globalRegistry = NewCommandRegistry()
	globalDictionary = NewDictionary(globalRegistry)
	ClearEventRing()
	SetTime(0)
}

// withModel resets the package and registers a model on inst.
func withModel(t *testing.T, inst Instance) *modelTimer {
	t.Helper()
	resetCore(t)
	m := newModelTimer()
	if err := RegisterPeripheral(inst, m); err != nil {
		t.Fatalf("RegisterPeripheral: %v", err)
	}
	return m
}

func equalOps(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
