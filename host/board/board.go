// Package board talks to the timer firmware from the host: it fetches the
// data dictionary and wraps the timer commands in typed calls.
package board

import (
	"bytes"
	"compress/zlib"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"samdtimer/core"
	"samdtimer/host/serial"
	"samdtimer/protocol"
)

// ErrTimer is returned when the firmware answers with timer_error: the
// instance does not exist on this chip or has not been configured.
var ErrTimer = errors.New("timer rejected by firmware")

const (
	identifyChunk = 40
	maxChunks     = 1000
)

// Dictionary is the parsed data dictionary of the firmware.
type Dictionary struct {
	Version       string                 `json:"version"`
	BuildVersions string                 `json:"build_versions"`
	Config        map[string]interface{} `json:"config"`
	Commands      map[string]int         `json:"commands"`
	Responses     map[string]int         `json:"responses"`
}

// CommandID returns the ID of the command called name.
func (d *Dictionary) CommandID(name string) (uint16, bool) {
	return lookupName(d.Commands, name)
}

// ResponseID returns the ID of the response called name.
func (d *Dictionary) ResponseID(name string) (uint16, bool) {
	return lookupName(d.Responses, name)
}

// Constant returns a config entry formatted as text.
func (d *Dictionary) Constant(name string) (string, bool) {
	v, ok := d.Config[name]
	if !ok {
		return "", false
	}
	return fmt.Sprint(v), true
}

// Instances returns the timer instances the firmware drives.
func (d *Dictionary) Instances() []core.Instance {
	s, _ := d.Constant("TIMER_INSTANCES")
	var out []core.Instance
	for _, name := range strings.Split(s, ",") {
		if inst, err := core.ParseInstance(strings.TrimSpace(name)); err == nil {
			out = append(out, inst)
		}
	}
	return out
}

// ClockHz returns TIMER_CLOCK_FREQ, or the default timer clock when the
// firmware does not report one.
func (d *Dictionary) ClockHz() uint32 {
	if v, ok := d.Config["TIMER_CLOCK_FREQ"].(float64); ok && v > 0 {
		return uint32(v)
	}
	return core.TimerClockHz
}

// Messages are keyed by signature: the name followed by the argument format.
func lookupName(m map[string]int, name string) (uint16, bool) {
	for sig, id := range m {
		if sig == name || strings.HasPrefix(sig, name+" ") {
			return uint16(id), true
		}
	}
	return 0, false
}

// TimerState is the answer to query_timer.
type TimerState struct {
	Instance core.Instance
	Enabled  bool
	Attached bool
	Ticks    uint32
	Clock    uint32 // firmware uptime in µs
}

// Board is a connection to one firmware.
type Board struct {
	transport *protocol.HostTransport

	// Timeout bounds the wait for each response.
	Timeout time.Duration

	// DebugOutput receives debug_output lines that arrive while waiting for
	// a response. Nil drops them.
	DebugOutput func(string)

	dict    *Dictionary
	dictRaw []byte
}

// Connect opens the serial device and wraps it.
func Connect(device string) (*Board, error) {
	return ConnectWithConfig(serial.DefaultConfig(device))
}

// ConnectWithConfig opens a serial port with cfg and wraps it.
func ConnectWithConfig(cfg *serial.Config) (*Board, error) {
	port, err := serial.Open(cfg)
	if err != nil {
		return nil, err
	}
	return New(port), nil
}

// New wraps an open port.
func New(port io.ReadWriteCloser) *Board {
	return &Board{
		transport: protocol.NewHostTransport(port),
		Timeout:   time.Second,
	}
}

// Close closes the link and the port.
func (b *Board) Close() error {
	return b.transport.Close()
}

// Dictionary returns the dictionary loaded by RetrieveDictionary.
func (b *Board) Dictionary() *Dictionary {
	return b.dict
}

// DictionaryJSON returns the raw dictionary text.
func (b *Board) DictionaryJSON() []byte {
	return b.dictRaw
}

// RetrieveDictionary reads the compressed dictionary in identify chunks until
// a short chunk marks its end, then parses it.
func (b *Board) RetrieveDictionary() error {
	b.transport.Drain()

	var compressed []byte
	for i := 0; ; i++ {
		if i == maxChunks {
			return fmt.Errorf("dictionary larger than %d bytes", maxChunks*identifyChunk)
		}
		chunk, err := b.identify(uint32(len(compressed)))
		if err != nil {
			return err
		}
		compressed = append(compressed, chunk...)
		if len(chunk) < identifyChunk {
			break
		}
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return fmt.Errorf("dictionary: %w", err)
	}
	raw, err := io.ReadAll(zr)
	if err != nil {
		return fmt.Errorf("dictionary: %w", err)
	}

	dict := &Dictionary{}
	if err := json.Unmarshal(raw, dict); err != nil {
		return fmt.Errorf("dictionary: %w", err)
	}
	b.dict = dict
	b.dictRaw = raw
	return nil
}

// identify uses the fixed IDs: identify is 1, identify_response is 0.
func (b *Board) identify(offset uint32) ([]byte, error) {
	err := b.transport.Send(1, func(buf *protocol.Buffer) {
		protocol.EncodeVLQUint(buf, offset)
		protocol.EncodeVLQUint(buf, identifyChunk)
	})
	if err != nil {
		return nil, fmt.Errorf("identify at %d: %w", offset, err)
	}

	deadline := time.Now().Add(b.Timeout)
	for {
		m, err := b.transport.Receive(time.Until(deadline))
		if err != nil {
			return nil, fmt.Errorf("identify at %d: %w", offset, err)
		}
		if m.ID != 0 {
			continue
		}
		args := m.Args
		got, err := protocol.DecodeVLQUint(&args)
		if err != nil {
			return nil, err
		}
		if got != offset {
			return nil, fmt.Errorf("identify: asked for offset %d, got %d", offset, got)
		}
		return protocol.DecodeVLQBytes(&args)
	}
}

// send resolves name and sends it with integer arguments.
func (b *Board) send(name string, args ...uint32) error {
	if b.dict == nil {
		return errors.New("dictionary not loaded")
	}
	id, ok := b.dict.CommandID(name)
	if !ok {
		return fmt.Errorf("firmware has no command %s", name)
	}
	return b.transport.Send(id, func(buf *protocol.Buffer) {
		for _, a := range args {
			protocol.EncodeVLQUint(buf, a)
		}
	})
}

// await returns the arguments of the first response named one of names.
// debug_output lines seen on the way go to DebugOutput.
func (b *Board) await(names ...string) (string, []byte, error) {
	want := make(map[uint16]string, len(names))
	for _, name := range names {
		if id, ok := b.dict.ResponseID(name); ok {
			want[id] = name
		}
	}
	debugID, hasDebug := b.dict.ResponseID("debug_output")

	deadline := time.Now().Add(b.Timeout)
	for {
		m, err := b.transport.Receive(time.Until(deadline))
		if err != nil {
			return "", nil, fmt.Errorf("waiting for %s: %w", strings.Join(names, "/"), err)
		}
		if name, ok := want[m.ID]; ok {
			return name, m.Args, nil
		}
		if hasDebug && m.ID == debugID {
			b.debugLine(m.Args)
		}
	}
}

func (b *Board) debugLine(args []byte) {
	msg, err := protocol.DecodeVLQBytes(&args)
	if err != nil || b.DebugOutput == nil {
		return
	}
	b.DebugOutput(string(msg))
}

func decodeUints(args []byte, n int) ([]uint32, error) {
	out := make([]uint32, n)
	for i := range out {
		v, err := protocol.DecodeVLQUint(&args)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// configure waits for timer_config or timer_error for inst.
func (b *Board) configure(inst core.Instance, cmd string, value uint32) (core.Setting, error) {
	b.transport.Drain()
	if err := b.send(cmd, uint32(inst), value); err != nil {
		return core.Setting{}, err
	}
	name, args, err := b.await("timer_config", "timer_error")
	if err != nil {
		return core.Setting{}, err
	}
	if name == "timer_error" {
		return core.Setting{}, fmt.Errorf("%s %s: %w", cmd, inst, ErrTimer)
	}
	v, err := decodeUints(args, 3)
	if err != nil {
		return core.Setting{}, fmt.Errorf("timer_config: %w", err)
	}
	return core.Setting{Prescaler: core.Prescaler(v[1]), Compare: uint16(v[2])}, nil
}

// ConfigureInterval programs inst for a period of us microseconds and returns
// the register values the firmware chose.
func (b *Board) ConfigureInterval(inst core.Instance, us uint32) (core.Setting, error) {
	return b.configure(inst, "config_timer", us)
}

// ConfigureFrequency programs inst for hz, sent with millihertz resolution.
func (b *Board) ConfigureFrequency(inst core.Instance, hz float64) (core.Setting, error) {
	mhz := hz*1000 + 0.5
	if !(mhz >= 1) {
		return core.Setting{}, fmt.Errorf("frequency %g Hz below 1 mHz", hz)
	}
	if mhz > math.MaxUint32 {
		return core.Setting{}, fmt.Errorf("frequency %g Hz above %g Hz", hz, float64(math.MaxUint32)/1000)
	}
	millihz := uint32(mhz)
	return b.configure(inst, "config_timer_freq", millihz)
}

// SetEnabled starts or stops the counter of a configured instance.
func (b *Board) SetEnabled(inst core.Instance, on bool) error {
	return b.toggle("set_timer", inst, on)
}

// SetAttached enables or disables the interrupt line of a configured
// instance.
func (b *Board) SetAttached(inst core.Instance, on bool) error {
	return b.toggle("set_timer_irq", inst, on)
}

// toggle commands only answer on error, so the query that follows doubles as
// the confirmation.
func (b *Board) toggle(cmd string, inst core.Instance, on bool) error {
	var v uint32
	if on {
		v = 1
	}
	b.transport.Drain()
	if err := b.send(cmd, uint32(inst), v); err != nil {
		return err
	}
	_, err := b.Query(inst)
	if errors.Is(err, ErrTimer) {
		return fmt.Errorf("%s %s: %w", cmd, inst, ErrTimer)
	}
	return err
}

// Query reads the state of inst.
func (b *Board) Query(inst core.Instance) (TimerState, error) {
	if err := b.send("query_timer", uint32(inst)); err != nil {
		return TimerState{}, err
	}
	for {
		name, args, err := b.await("timer_state", "timer_error")
		if err != nil {
			return TimerState{}, err
		}
		v, err := decodeUints(args, 1)
		if err != nil {
			return TimerState{}, fmt.Errorf("%s: %w", name, err)
		}
		// A timer_error left over from the command before this query is
		// reported as that command's failure.
		if name == "timer_error" {
			return TimerState{}, fmt.Errorf("%s: %w", core.Instance(v[0]), ErrTimer)
		}
		if core.Instance(v[0]) != inst {
			continue
		}
		v, err = decodeUints(args, 5)
		if err != nil {
			return TimerState{}, fmt.Errorf("timer_state: %w", err)
		}
		return TimerState{
			Instance: inst,
			Enabled:  v[1] != 0,
			Attached: v[2] != 0,
			Ticks:    v[3],
			Clock:    v[4],
		}, nil
	}
}

// Clock returns the firmware uptime in µs.
func (b *Board) Clock() (uint32, error) {
	b.transport.Drain()
	if err := b.send("get_clock"); err != nil {
		return 0, err
	}
	_, args, err := b.await("clock")
	if err != nil {
		return 0, err
	}
	v, err := decodeUints(args, 1)
	if err != nil {
		return 0, fmt.Errorf("clock: %w", err)
	}
	return v[0], nil
}

// SetDebug turns firmware debug output on or off.
func (b *Board) SetDebug(on bool) error {
	var v uint32
	if on {
		v = 1
	}
	return b.send("set_debug", v)
}

// DumpEvents asks the firmware for its event ring and returns the lines
// between the start and end markers.
func (b *Board) DumpEvents() ([]string, error) {
	b.transport.Drain()
	if err := b.send("dump_events"); err != nil {
		return nil, err
	}

	var lines []string
	started := false
	for {
		_, args, err := b.await("debug_output")
		if err != nil {
			return lines, err
		}
		msg, err := protocol.DecodeVLQBytes(&args)
		if err != nil {
			return lines, fmt.Errorf("debug_output: %w", err)
		}
		line := string(msg)
		switch {
		case strings.HasSuffix(line, "=== event ring ==="):
			started = true
		case strings.HasSuffix(line, "=== end ==="):
			if started {
				return lines, nil
			}
		case started:
			lines = append(lines, strings.TrimPrefix(line, "[EVT] "))
		default:
			if b.DebugOutput != nil {
				b.DebugOutput(line)
			}
		}
	}
}
