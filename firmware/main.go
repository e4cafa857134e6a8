//go:build tinygo && (atsamd21 || atsamd51)

// Command firmware exposes the TC/TCC interrupt timers of a SAMD21 or SAMD51
// board over USB CDC. The host side is tcctl.
package main

import (
	"time"

	"samdtimer/core"
	"samdtimer/protocol"
)

var (
	output    *protocol.Buffer
	transport *protocol.Transport

	bootTime time.Time

	writeFailures uint32
)

func main() {
	InitUSB()
	bootTime = time.Now()

	registerBoard()
	core.InitCoreCommands()
	core.GetGlobalDictionary().SetVersion("samdtimer-0.1.0", "tinygo")
	// Build the compressed dictionary now rather than inside the first
	// identify request.
	core.GetGlobalDictionary().Bytes()

	output = protocol.NewBuffer(protocol.MessageLengthMax * 8)
	transport = protocol.NewTransport(output, core.DispatchCommand)
	transport.SetFlushCallback(writeUSB)
	transport.SetErrorCallback(func(cmdID uint16, err error) {
		core.DebugPrintln("[CMD] " + err.Error())
	})
	core.SetResponder(transport)
	core.SetDebugWriter(core.HostDebugWriter)

	buf := make([]byte, 64)
	for {
		core.SetTime(uint32(time.Since(bootTime).Microseconds()))

		if n := USBRead(buf); n > 0 {
			transport.Receive(buf[:n])
		}
		writeUSB()

		time.Sleep(50 * time.Microsecond)
	}
}

// writeUSB sends the pending output. After repeated failures the host is
// assumed gone and the link state is dropped so a reconnect starts clean.
func writeUSB() {
	for len(transport.Pending()) > 0 {
		n, err := USBWrite(transport.Pending())
		if n > 0 {
			transport.Consume(n)
			writeFailures = 0
		}
		if err != nil || n == 0 {
			writeFailures++
			if writeFailures > 10 {
				writeFailures = 0
				output.Reset()
				transport.Reset()
			}
			return
		}
	}
}
