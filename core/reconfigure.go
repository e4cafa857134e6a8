package core

// topHold is written to the top register while the count is rewritten so the
// counter cannot match mid-sequence.
const topHold = 0xFFFF

// RescaleCount maps a count taken under prescaler from onto the equivalent
// elapsed time under prescaler to, clamped to the new compare value.
func RescaleCount(count uint16, from, to Prescaler, compare uint16) uint16 {
	c := uint32(count)
	fs, ts := from.Shift(), to.Shift()
	if ts < fs {
		c <<= fs - ts
	} else {
		c >>= ts - fs
	}
	if c > uint32(compare) {
		c = uint32(compare)
	}
	return uint16(c)
}

// program writes s to p. A running counter whose prescaler changes keeps its
// phase: the count is rescaled to the new tick rate before the new top is
// loaded.
func program(inst Instance, p Peripheral, s Setting) {
	if p.Running() {
		old := p.Prescaler()
		if old != s.Prescaler {
			count := p.ReadCount()
			p.Disable()
			// Only the read sync matters; the old top is discarded.
			p.ReadTop()
			p.WriteTop(topHold)
			next := RescaleCount(count, old, s.Prescaler, s.Compare)
			p.WriteCount(next)
			RecordEvent(EvtRescale, uint8(inst), uint32(count), uint32(next))
		}
	}
	p.WriteTop(s.Compare)
	p.Start(s.Prescaler)
}
