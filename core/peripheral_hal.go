package core

import "errors"

// ErrInvalidInstance is returned when a channel refers to an instance this
// chip does not have, or one no target has registered hardware for.
var ErrInvalidInstance = errors.New("invalid timer instance")

// Instance selects a physical timer peripheral.
type Instance uint8

const (
	// TC3 is a 16-bit TC counter in match-frequency mode: CC0 is both the
	// compare and the rollover point.
	TC3 Instance = iota
	// TCC0 is the control-timer variant with separate PER and CC registers.
	TCC0

	MaxInstance
)

// String returns the peripheral name.
func (i Instance) String() string {
	switch i {
	case TC3:
		return "TC3"
	case TCC0:
		return "TCC0"
	default:
		return "instance" + itoa(int(i))
	}
}

// ParseInstance maps a peripheral name ("tc3", "TCC0") to its Instance.
func ParseInstance(name string) (Instance, error) {
	for i := Instance(0); i < MaxInstance; i++ {
		if equalFold(name, i.String()) {
			return i, nil
		}
	}
	return MaxInstance, ErrInvalidInstance
}

// Peripheral is the register-level view of one timer instance. Target packages
// implement it over the real register blocks; tests implement it over a model
// counter.
//
// Every write returns only once the peripheral has acknowledged the
// synchronization of that write: TC and TCC registers live in a different
// clock domain and a second write issued before the first is acknowledged
// corrupts the peripheral state. These waits have no timeout.
type Peripheral interface {
	// Setup routes the clock to the peripheral and selects counter width,
	// waveform mode and the interrupt sources. It leaves the counter disabled.
	Setup()

	// Prescaler returns the divisor currently programmed in CTRLA.
	Prescaler() Prescaler

	// Running reports whether CTRLA.ENABLE is set.
	Running() bool

	// ReadCount returns the live count using the read synchronization
	// handshake of the peripheral.
	ReadCount() uint16

	// ReadTop returns the register that ends the period (CC0 or PER).
	ReadTop() uint16

	WriteCount(count uint16)
	WriteTop(top uint16)

	// Start writes the prescaler and sets ENABLE in one CTRLA write.
	Start(p Prescaler)

	Enable()
	Disable()

	// EnableIRQ and DisableIRQ gate the NVIC line of the instance without
	// touching the counter.
	EnableIRQ()
	DisableIRQ()

	// Acknowledge clears the pending interrupt flags and reports whether the
	// flag that marks the end of a period was among them.
	Acknowledge() bool
}

// RegisterPeripheral binds hardware to an instance. Called by target packages
// during board setup. Any previous configuration of the instance is dropped:
// the next configure runs Setup again.
func RegisterPeripheral(inst Instance, p Peripheral) error {
	if inst >= MaxInstance {
		return ErrInvalidInstance
	}
	units[inst] = unit{periph: p}
	return nil
}

// PeripheralFor returns the hardware registered for inst.
func PeripheralFor(inst Instance) (Peripheral, bool) {
	if inst >= MaxInstance || units[inst].periph == nil {
		return nil, false
	}
	return units[inst].periph, true
}
