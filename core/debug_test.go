package core

import (
	"strings"
	"testing"
)

func TestEventRingWraps(t *testing.T) {
	resetCore(t)
	for i := 0; i < EventRingSize+5; i++ {
		RecordEvent(EvtEnable, 0, uint32(i), 0)
	}

	evts := Events()
	if len(evts) != EventRingSize {
		t.Fatalf("%d events, want %d", len(evts), EventRingSize)
	}
	if evts[0].A != 5 || evts[len(evts)-1].A != EventRingSize+4 {
		t.Errorf("oldest %d newest %d", evts[0].A, evts[len(evts)-1].A)
	}

	ClearEventRing()
	if len(Events()) != 0 {
		t.Error("ring not cleared")
	}
}

func TestDumpEventRing(t *testing.T) {
	resetCore(t)
	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	defer SetDebugWriter(func(string) {})

	SetTime(42)
	RecordEvent(EvtConfigure, uint8(TCC0), 1024, 23437)
	DumpEventRing()

	if len(lines) != 3 {
		t.Fatalf("lines = %q", lines)
	}
	if want := "[EVT] 42 CONFIGURE TCC0 a=1024 b=23437"; lines[1] != want {
		t.Errorf("line = %q, want %q", lines[1], want)
	}
}

func TestDebugPrintlnGate(t *testing.T) {
	var out strings.Builder
	SetDebugWriter(func(s string) { out.WriteString(s) })
	defer SetDebugWriter(func(string) {})
	defer SetDebugEnabled(false)

	SetDebugEnabled(false)
	DebugPrintln("hidden")
	SetDebugEnabled(true)
	DebugPrintln("shown")

	if out.String() != "shown" {
		t.Errorf("output = %q", out.String())
	}
}
