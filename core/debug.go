package core

// DebugWriter receives one line of debug output.
type DebugWriter func(string)

// Event is one entry of the event ring.
type Event struct {
	Kind     uint8
	Instance uint8
	Time     uint32 // µs uptime, from GetTime
	A        uint32
	B        uint32
}

// Event kinds. A and B depend on the kind.
const (
	EvtConfigure = 1 // A=prescaler B=compare
	EvtRescale   = 2 // A=old count B=new count
	EvtEnable    = 3
	EvtDisable   = 4
	EvtAttach    = 5
	EvtDetach    = 6
)

const EventRingSize = 32

var (
	debugPrintln DebugWriter = func(string) {}
	debugEnabled bool

	eventRing     [EventRingSize]Event
	eventRingHead uint8
)

// SetDebugWriter redirects debug output. The firmware installs
// HostDebugWriter.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled turns DebugPrintln on or off. Off by default.
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// DebugPrintln writes msg synchronously when debug output is enabled.
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// RecordEvent appends to the event ring. Safe from interrupt context: it
// never allocates or blocks.
func RecordEvent(kind, inst uint8, a, b uint32) {
	idx := eventRingHead
	eventRing[idx] = Event{
		Kind:     kind,
		Instance: inst,
		Time:     GetTime(),
		A:        a,
		B:        b,
	}
	eventRingHead = (idx + 1) % EventRingSize
}

// Events returns the recorded events, oldest first.
func Events() []Event {
	out := make([]Event, 0, EventRingSize)
	for i := uint8(0); i < EventRingSize; i++ {
		evt := eventRing[(eventRingHead+i)%EventRingSize]
		if evt.Kind != 0 {
			out = append(out, evt)
		}
	}
	return out
}

func eventName(kind uint8) string {
	switch kind {
	case EvtConfigure:
		return "CONFIGURE"
	case EvtRescale:
		return "RESCALE"
	case EvtEnable:
		return "ENABLE"
	case EvtDisable:
		return "DISABLE"
	case EvtAttach:
		return "ATTACH"
	case EvtDetach:
		return "DETACH"
	}
	return "UNKNOWN"
}

// DumpEventRing writes the ring to the debug writer regardless of
// SetDebugEnabled.
func DumpEventRing() {
	if debugPrintln == nil {
		return
	}
	debugPrintln("[EVT] === event ring ===")
	for _, evt := range Events() {
		debugPrintln("[EVT] " + utoa(evt.Time) + " " + eventName(evt.Kind) +
			" " + Instance(evt.Instance).String() +
			" a=" + utoa(evt.A) +
			" b=" + utoa(evt.B))
	}
	debugPrintln("[EVT] === end ===")
}

// ClearEventRing empties the ring.
func ClearEventRing() {
	for i := range eventRing {
		eventRing[i] = Event{}
	}
	eventRingHead = 0
}
