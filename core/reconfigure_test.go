package core

import "testing"

func TestRescaleCount(t *testing.T) {
	tests := []struct {
		count    uint16
		from, to Prescaler
		compare  uint16
		want     uint16
	}{
		{1000, Div1, Div8, 5999, 125},
		{100, Div8, Div1, 59999, 800},
		{30000, Div1, Div2, 100, 100},
		{40000, Div2, Div1, 59999, 59999}, // 80000 does not fit; clamped
		{65535, Div1, Div1024, 60000, 63},
		{500, Div16, Div16, 200, 200},
		{0, Div1024, Div1, 47999, 0},
	}

	for _, tt := range tests {
		got := RescaleCount(tt.count, tt.from, tt.to, tt.compare)
		if got != tt.want {
			t.Errorf("RescaleCount(%d, %d, %d, %d) = %d, want %d",
				tt.count, tt.from, tt.to, tt.compare, got, tt.want)
		}
	}
}

func TestProgramStopped(t *testing.T) {
	m := newModelTimer()
	program(TC3, m, Setting{Div64, 59999})

	want := []string{"WriteTop 59999", "Start 64"}
	if !equalOps(m.ops, want) {
		t.Errorf("ops = %v, want %v", m.ops, want)
	}
}

func TestProgramRunningSamePrescaler(t *testing.T) {
	m := newModelTimer()
	m.running = true
	m.prescaler = Div8
	m.count = 1234

	program(TC3, m, Setting{Div8, 30000})

	want := []string{"WriteTop 30000", "Start 8"}
	if !equalOps(m.ops, want) {
		t.Errorf("ops = %v, want %v", m.ops, want)
	}
	if m.count != 1234 {
		t.Errorf("count changed to %d", m.count)
	}
}

func TestProgramRunningPrescalerChange(t *testing.T) {
	resetCore(t)
	m := newModelTimer()
	m.running = true
	m.prescaler = Div1
	m.top = 47999
	m.count = 24000

	program(TCC0, m, Setting{Div8, 47999})

	want := []string{
		"ReadCount",
		"Disable",
		"ReadTop",
		"WriteTop 65535",
		"WriteCount 3000",
		"WriteTop 47999",
		"Start 8",
	}
	if !equalOps(m.ops, want) {
		t.Fatalf("ops = %v, want %v", m.ops, want)
	}
	if !m.running || m.prescaler != Div8 || m.top != 47999 {
		t.Errorf("final state running=%v prescaler=%d top=%d", m.running, m.prescaler, m.top)
	}

	evts := Events()
	if len(evts) != 1 || evts[0].Kind != EvtRescale || evts[0].Instance != uint8(TCC0) ||
		evts[0].A != 24000 || evts[0].B != 3000 {
		t.Errorf("events = %+v", evts)
	}
}

// The rescaled count keeps the elapsed time of the period: in undivided
// clock ticks it is within one new tick of the original, unless clamped.
func TestRescalePreservesElapsedTime(t *testing.T) {
	for _, from := range prescalers {
		for _, to := range prescalers {
			for _, count := range []uint16{0, 1, 7, 999, 12345, 40000, 65535} {
				got := RescaleCount(count, from, to, 0xFFFF)
				before := uint32(count) * uint32(from)
				after := uint32(got) * uint32(to)

				if after > before {
					if after != uint32(0xFFFF)*uint32(to) && after-before >= uint32(to) {
						t.Errorf("%d@/%d -> %d@/%d gains time", count, from, got, to)
					}
					continue
				}
				if before-after >= uint32(to) && got != 0xFFFF {
					t.Errorf("%d@/%d -> %d@/%d loses %d clocks", count, from, got, to, before-after)
				}
			}
		}
	}
}
