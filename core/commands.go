package core

import (
	"errors"
	"sync/atomic"

	"samdtimer/protocol"
)

// Responder sends a message to the host. *protocol.Transport implements it.
type Responder interface {
	Send(cmdID uint16, args func(*protocol.Buffer)) error
}

var responder Responder

// SetResponder installs the link used by SendResponse.
func SetResponder(r Responder) {
	responder = r
}

// SendResponse sends a registered response by name. Unregistered names are a
// programming error.
func SendResponse(name string, args func(*protocol.Buffer)) {
	if responder == nil {
		return
	}
	c, ok := globalRegistry.LookupName(name)
	if !ok {
		panic("response not registered: " + name)
	}
	if err := responder.Send(c.ID, args); err != nil {
		DebugPrintln("[CMD] " + name + ": " + err.Error())
	}
}

var errZeroFrequency = errors.New("frequency must be positive")

// Elapsed periods per instance, counted by the command-configured callbacks.
var ticks [MaxInstance]uint32

var tickCallbacks [MaxInstance]Callback

func init() {
	for i := range tickCallbacks {
		counter := &ticks[i]
		tickCallbacks[i] = func() { atomic.AddUint32(counter, 1) }
	}
}

// Ticks returns the number of periods inst has counted since it was last
// configured over the link.
func Ticks(inst Instance) uint32 {
	if inst >= MaxInstance {
		return 0
	}
	return atomic.LoadUint32(&ticks[inst])
}

// InitCoreCommands registers the message table. Call it after the board has
// registered its peripherals: TIMER_INSTANCES lists them.
func InitCoreCommands() {
	RegisterResponse("identify_response", "offset=%u data=%*s")       // ID 0
	RegisterCommand("identify", "offset=%u count=%c", handleIdentify) // ID 1

	RegisterCommand("get_clock", "", handleGetClock)
	RegisterCommand("config_timer", "instance=%c interval_us=%u", handleConfigTimer)
	RegisterCommand("config_timer_freq", "instance=%c millihz=%u", handleConfigTimerFreq)
	RegisterCommand("set_timer", "instance=%c enable=%c", handleSetTimer)
	RegisterCommand("set_timer_irq", "instance=%c attach=%c", handleSetTimerIRQ)
	RegisterCommand("query_timer", "instance=%c", handleQueryTimer)
	RegisterCommand("set_debug", "enable=%c", handleSetDebug)
	RegisterCommand("dump_events", "", handleDumpEvents)

	RegisterResponse("clock", "clock=%u")
	RegisterResponse("timer_config", "instance=%c prescaler=%hu compare=%hu")
	RegisterResponse("timer_state", "instance=%c enabled=%c attached=%c ticks=%u clock=%u")
	RegisterResponse("timer_error", "instance=%c")
	RegisterResponse("debug_output", "msg=%*s")

	RegisterConstant("TIMER_CLOCK_FREQ", uint32(TimerClockHz))
	RegisterConstant("TIMER_INSTANCES", registeredInstances())
}

func registeredInstances() string {
	s := ""
	for i := Instance(0); i < MaxInstance; i++ {
		if _, ok := PeripheralFor(i); ok {
			if s != "" {
				s += ","
			}
			s += i.String()
		}
	}
	return s
}

func handleIdentify(args *[]byte) error {
	offset, err := protocol.DecodeVLQUint(args)
	if err != nil {
		return err
	}
	count, err := protocol.DecodeVLQUint(args)
	if err != nil {
		return err
	}

	chunk := globalDictionary.Chunk(offset, uint8(count))
	SendResponse("identify_response", func(b *protocol.Buffer) {
		protocol.EncodeVLQUint(b, offset)
		protocol.EncodeVLQBytes(b, chunk)
	})
	return nil
}

func handleGetClock(*[]byte) error {
	SendResponse("clock", func(b *protocol.Buffer) {
		protocol.EncodeVLQUint(b, GetTime())
	})
	return nil
}

func decodeInstance(args *[]byte) (Instance, error) {
	v, err := protocol.DecodeVLQUint(args)
	return Instance(v), err
}

func sendTimerError(inst Instance) {
	SendResponse("timer_error", func(b *protocol.Buffer) {
		protocol.EncodeVLQUint(b, uint32(inst))
	})
}

func sendTimerConfig(inst Instance, s Setting) {
	SendResponse("timer_config", func(b *protocol.Buffer) {
		protocol.EncodeVLQUint(b, uint32(inst))
		protocol.EncodeVLQUint(b, uint32(s.Prescaler))
		protocol.EncodeVLQUint(b, uint32(s.Compare))
	})
}

// configureTimer resets the tick count and reports the outcome. An unknown
// instance is answered with timer_error, not a link error.
func configureTimer(inst Instance, configure func(*Channel) error) error {
	ch := NewChannel(inst)
	if inst < MaxInstance {
		atomic.StoreUint32(&ticks[inst], 0)
	}
	if err := configure(ch); err != nil {
		if errors.Is(err, ErrInvalidInstance) {
			sendTimerError(inst)
			return nil
		}
		return err
	}
	sendTimerConfig(inst, ch.Setting())
	return nil
}

func handleConfigTimer(args *[]byte) error {
	inst, err := decodeInstance(args)
	if err != nil {
		return err
	}
	us, err := protocol.DecodeVLQUint(args)
	if err != nil {
		return err
	}
	return configureTimer(inst, func(ch *Channel) error {
		return ch.ConfigureInterval(us, tickCallback(inst))
	})
}

func handleConfigTimerFreq(args *[]byte) error {
	inst, err := decodeInstance(args)
	if err != nil {
		return err
	}
	millihz, err := protocol.DecodeVLQUint(args)
	if err != nil {
		return err
	}
	if millihz == 0 {
		return errZeroFrequency
	}
	hz := float32(millihz) / 1000
	return configureTimer(inst, func(ch *Channel) error {
		return ch.ConfigureFrequency(hz, tickCallback(inst))
	})
}

func tickCallback(inst Instance) Callback {
	if inst >= MaxInstance {
		return nil
	}
	return tickCallbacks[inst]
}

// decodeSwitch reads an instance and a boolean argument.
func decodeSwitch(args *[]byte) (*Channel, bool, error) {
	inst, err := decodeInstance(args)
	if err != nil {
		return nil, false, err
	}
	on, err := protocol.DecodeVLQUint(args)
	if err != nil {
		return nil, false, err
	}
	return NewChannel(inst), on != 0, nil
}

func handleSetTimer(args *[]byte) error {
	ch, on, err := decodeSwitch(args)
	if err != nil {
		return err
	}
	if !ch.Configured() {
		sendTimerError(ch.Instance())
		return nil
	}
	if on {
		ch.Enable()
	} else {
		ch.Disable()
	}
	return nil
}

func handleSetTimerIRQ(args *[]byte) error {
	ch, on, err := decodeSwitch(args)
	if err != nil {
		return err
	}
	if !ch.Configured() {
		sendTimerError(ch.Instance())
		return nil
	}
	if on {
		ch.AttachInterrupt()
	} else {
		ch.DetachInterrupt()
	}
	return nil
}

func handleQueryTimer(args *[]byte) error {
	inst, err := decodeInstance(args)
	if err != nil {
		return err
	}
	if _, ok := PeripheralFor(inst); !ok {
		sendTimerError(inst)
		return nil
	}
	ch := NewChannel(inst)
	SendResponse("timer_state", func(b *protocol.Buffer) {
		protocol.EncodeVLQUint(b, uint32(inst))
		protocol.EncodeVLQBool(b, ch.Enabled())
		protocol.EncodeVLQBool(b, ch.Attached())
		protocol.EncodeVLQUint(b, Ticks(inst))
		protocol.EncodeVLQUint(b, GetTime())
	})
	return nil
}

func handleSetDebug(args *[]byte) error {
	on, err := protocol.DecodeVLQUint(args)
	if err != nil {
		return err
	}
	SetDebugEnabled(on != 0)
	return nil
}

func handleDumpEvents(*[]byte) error {
	DumpEventRing()
	return nil
}

// debugLineMax keeps a debug_output message inside one frame.
const debugLineMax = 48

// HostDebugWriter is a DebugWriter that sends each line to the host as a
// debug_output message, truncated to fit one frame.
func HostDebugWriter(s string) {
	if responder == nil {
		return
	}
	c, ok := globalRegistry.LookupName("debug_output")
	if !ok {
		return
	}
	if len(s) > debugLineMax {
		s = s[:debugLineMax]
	}
	// Not SendResponse: its error path logs through this writer.
	responder.Send(c.ID, func(b *protocol.Buffer) {
		protocol.EncodeVLQBytes(b, []byte(s))
	})
}
