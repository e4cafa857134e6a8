package core

import "sync/atomic"

// TimerClockHz is the generic clock routed to the TC and TCC instances: GCLK0
// on the SAMD21 and GCLK1 on the SAMD51, both 48MHz.
const TimerClockHz = 48000000

var systemTicks uint32

// GetTime returns the platform uptime in microseconds, as last published with
// SetTime. Used to timestamp debug events and timer reports.
func GetTime() uint32 {
	return atomic.LoadUint32(&systemTicks)
}

// SetTime publishes the platform uptime (called from the firmware main loop and
// from tests).
func SetTime(us uint32) {
	atomic.StoreUint32(&systemTicks, us)
}

// PeriodFromFrequency converts a frequency in Hz to a period in microseconds.
// A frequency of zero or below is not guarded and yields a meaningless period.
func PeriodFromFrequency(hz float32) float32 {
	return 1000000.0 / hz
}
