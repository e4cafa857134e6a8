package serial

import (
	"errors"
	"fmt"

	"github.com/tarm/serial"
)

// Open opens the port described by cfg.
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, errors.New("serial: nil config")
	}
	if cfg.Device == "" {
		return nil, errors.New("serial: no device given")
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Device, err)
	}
	return port, nil
}
