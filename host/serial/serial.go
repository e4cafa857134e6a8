// Package serial opens the USB CDC port the timer firmware enumerates as.
package serial

import (
	"io"
	"time"
)

// Port is an open serial connection. Tests substitute in-memory pipes.
type Port interface {
	io.ReadWriteCloser
}

// Config selects the device and its read behaviour.
type Config struct {
	// Device path, e.g. /dev/ttyACM0 or COM3.
	Device string

	// Baud is ignored by USB CDC but required by the driver.
	Baud int

	// ReadTimeout makes Read return with no data after this long. Zero
	// blocks, which stops the transport reader from noticing Close.
	ReadTimeout time.Duration
}

// DefaultConfig returns the settings used by tcctl.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        250000,
		ReadTimeout: 100 * time.Millisecond,
	}
}
