//go:build tinygo && (atsamd21 || atsamd51)

package main

import "machine"

// InitUSB configures the USB CDC port. On the SAMD boards machine.Serial is
// the USB CDC device.
func InitUSB() {
	machine.Serial.Configure(machine.UARTConfig{})
}

// USBRead copies whatever the USB stack has buffered into buf.
func USBRead(buf []byte) int {
	n := 0
	for n < len(buf) && machine.Serial.Buffered() > 0 {
		b, err := machine.Serial.ReadByte()
		if err != nil {
			break
		}
		buf[n] = b
		n++
	}
	return n
}

func USBWrite(data []byte) (int, error) {
	return machine.Serial.Write(data)
}
