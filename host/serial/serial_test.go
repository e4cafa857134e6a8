package serial

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyACM0")
	if cfg.Device != "/dev/ttyACM0" {
		t.Errorf("Device = %q", cfg.Device)
	}
	if cfg.Baud != 250000 {
		t.Errorf("Baud = %d", cfg.Baud)
	}
	// The transport reader polls for Close between reads.
	if cfg.ReadTimeout <= 0 || cfg.ReadTimeout > time.Second {
		t.Errorf("ReadTimeout = %v", cfg.ReadTimeout)
	}
}

func TestOpenRejectsMissingDevice(t *testing.T) {
	if _, err := Open(nil); err == nil {
		t.Error("Open(nil) succeeded")
	}
	if _, err := Open(&Config{Baud: 250000}); err == nil {
		t.Error("Open without device succeeded")
	}
}
