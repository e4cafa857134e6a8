package core

// HandleInterrupt is called from the fixed interrupt entry point of inst. It
// clears the pending flags and, if a period elapsed, invokes the callback
// stored for the instance.
func HandleInterrupt(inst Instance) {
	if inst >= MaxInstance {
		return
	}
	u := &units[inst]
	if u.periph == nil {
		return
	}
	if u.periph.Acknowledge() && u.callback != nil {
		u.callback()
	}
}
