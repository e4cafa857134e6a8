package core

// Callback runs in interrupt context once per elapsed period. It must not
// block.
type Callback func()

// Timer is the capability a periodic interrupt source offers.
type Timer interface {
	ConfigureInterval(us uint32, cb Callback) error
	ConfigureFrequency(hz float32, cb Callback) error
	Enable()
	Disable()
	OnElapsed()
}

// unit is the per-instance state. It is indexed by Instance so the fixed
// interrupt entry points can reach it without a channel handle.
type unit struct {
	periph      Peripheral
	callback    Callback
	setting     Setting
	initialized bool
	attached    bool
}

var units [MaxInstance]unit

func unitFor(inst Instance) (*unit, error) {
	if inst >= MaxInstance || units[inst].periph == nil {
		return nil, ErrInvalidInstance
	}
	return &units[inst], nil
}

// Channel is a handle on one hardware timer instance. Handles are cheap and
// carry no state of their own: every Channel on the same instance shares one
// callback slot, and the last configuration wins.
type Channel struct {
	inst Instance
}

var _ Timer = (*Channel)(nil)

// NewChannel returns a handle bound to inst. Binding an instance that does not
// exist is not an error here; ConfigureInterval reports it.
func NewChannel(inst Instance) *Channel {
	return &Channel{inst: inst}
}

// Instance returns the bound instance.
func (c *Channel) Instance() Instance {
	return c.inst
}

// ConfigureInterval programs the instance to interrupt every us microseconds
// and invokes cb on each period. The counter and its interrupt line are left
// running.
func (c *Channel) ConfigureInterval(us uint32, cb Callback) error {
	return c.configure(float64(us), cb)
}

// ConfigureFrequency is ConfigureInterval with the period taken as 1/hz.
// hz is not range checked.
func (c *Channel) ConfigureFrequency(hz float32, cb Callback) error {
	return c.configure(float64(PeriodFromFrequency(hz)), cb)
}

func (c *Channel) configure(periodUS float64, cb Callback) error {
	u, err := unitFor(c.inst)
	if err != nil {
		return err
	}

	s := Compute(periodUS, TimerClockHz)

	if !u.initialized {
		state := disableInterrupts()
		u.periph.Setup()
		u.callback = cb
		u.periph.EnableIRQ()
		u.attached = true
		program(c.inst, u.periph, s)
		u.setting = s
		u.initialized = true
		restoreInterrupts(state)
	} else {
		program(c.inst, u.periph, s)
		state := disableInterrupts()
		u.setting = s
		u.callback = cb
		u.periph.EnableIRQ()
		u.attached = true
		restoreInterrupts(state)
	}

	RecordEvent(EvtConfigure, uint8(c.inst), uint32(s.Prescaler), uint32(s.Compare))
	return nil
}

// Enable sets the run bit, resuming from the current count.
func (c *Channel) Enable() {
	if u, err := unitFor(c.inst); err == nil {
		u.periph.Enable()
		RecordEvent(EvtEnable, uint8(c.inst), 0, 0)
	}
}

// Disable clears the run bit. The count is kept.
func (c *Channel) Disable() {
	if u, err := unitFor(c.inst); err == nil {
		u.periph.Disable()
		RecordEvent(EvtDisable, uint8(c.inst), 0, 0)
	}
}

// Stop is Disable.
func (c *Channel) Stop() { c.Disable() }

// Restart is Enable. The counter is not reset.
func (c *Channel) Restart() { c.Enable() }

// AttachInterrupt enables the NVIC line of the instance. The counter keeps
// whatever run state it had.
func (c *Channel) AttachInterrupt() {
	if u, err := unitFor(c.inst); err == nil {
		u.periph.EnableIRQ()
		u.attached = true
		RecordEvent(EvtAttach, uint8(c.inst), 0, 0)
	}
}

// DetachInterrupt masks the NVIC line. The counter keeps running.
func (c *Channel) DetachInterrupt() {
	if u, err := unitFor(c.inst); err == nil {
		u.periph.DisableIRQ()
		u.attached = false
		RecordEvent(EvtDetach, uint8(c.inst), 0, 0)
	}
}

// OnElapsed invokes the callback stored for the instance, if any.
func (c *Channel) OnElapsed() {
	if c.inst >= MaxInstance {
		return
	}
	if cb := units[c.inst].callback; cb != nil {
		cb()
	}
}

// Setting returns the last programmed prescaler and compare value.
func (c *Channel) Setting() Setting {
	if c.inst >= MaxInstance {
		return Setting{}
	}
	return units[c.inst].setting
}

// Prescaler returns the divisor of the last configuration.
func (c *Channel) Prescaler() Prescaler {
	return c.Setting().Prescaler
}

// Enabled reports whether the counter is running.
func (c *Channel) Enabled() bool {
	u, err := unitFor(c.inst)
	return err == nil && u.periph.Running()
}

// Attached reports whether the NVIC line was last enabled.
func (c *Channel) Attached() bool {
	u, err := unitFor(c.inst)
	return err == nil && u.attached
}

// Configured reports whether the instance has been programmed at least once.
func (c *Channel) Configured() bool {
	u, err := unitFor(c.inst)
	return err == nil && u.initialized
}
