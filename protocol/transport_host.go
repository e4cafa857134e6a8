package protocol

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// ErrClosed is returned by HostTransport after Close.
var ErrClosed = errors.New("transport closed")

// Message is one decoded message from the firmware.
type Message struct {
	ID   uint16
	Args []byte
}

// HostTransport is the host end of the link: it numbers outgoing frames,
// waits for their acknowledgement and queues incoming messages.
type HostTransport struct {
	port io.ReadWriteCloser

	// AckTimeout bounds the wait in Send.
	AckTimeout time.Duration

	mu  sync.Mutex
	seq byte
	out *Buffer

	acks      chan byte
	responses chan Message
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewHostTransport starts reading from port.
func NewHostTransport(port io.ReadWriteCloser) *HostTransport {
	t := &HostTransport{
		port:       port,
		AckTimeout: 2 * time.Second,
		seq:        MessageDest,
		out:        NewBuffer(2 * MessageLengthMax),
		acks:       make(chan byte, 4),
		responses:  make(chan Message, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go t.readLoop()
	return t
}

// Send writes one command frame and waits for the firmware to acknowledge
// it. A negative acknowledgement adopts the sequence the firmware expects so
// the next Send can succeed, and is reported as an error.
func (t *HostTransport) Send(cmdID uint16, args func(*Buffer)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.out.Reset()
	seq := t.seq
	err := EncodeFrame(t.out, seq, func(b *Buffer) {
		EncodeVLQUint(b, uint32(cmdID))
		if args != nil {
			args(b)
		}
	})
	if err != nil {
		return fmt.Errorf("encode command %d: %w", cmdID, err)
	}

	// Stale acknowledgements from an earlier timeout would be mistaken for
	// this frame's.
	for len(t.acks) > 0 {
		<-t.acks
	}
	if _, err := t.port.Write(t.out.Bytes()); err != nil {
		return fmt.Errorf("write command %d: %w", cmdID, err)
	}

	want := NextSeq(seq)
	timer := time.NewTimer(t.AckTimeout)
	defer timer.Stop()
	for {
		select {
		case got := <-t.acks:
			if got == want {
				t.seq = want
				return nil
			}
			if got == seq {
				// Acknowledges the previous frame; keep waiting.
				continue
			}
			t.seq = got
			return fmt.Errorf("command %d: firmware expects sequence 0x%02x, sent 0x%02x", cmdID, got, seq)
		case <-timer.C:
			return fmt.Errorf("command %d: no acknowledgement after %v", cmdID, t.AckTimeout)
		case <-t.stop:
			return ErrClosed
		}
	}
}

// Receive returns the next message from the firmware.
func (t *HostTransport) Receive(timeout time.Duration) (Message, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case m := <-t.responses:
		return m, nil
	case <-timer.C:
		return Message{}, fmt.Errorf("no message after %v", timeout)
	case <-t.stop:
		return Message{}, ErrClosed
	}
}

// Drain discards queued messages.
func (t *HostTransport) Drain() {
	for {
		select {
		case <-t.responses:
		default:
			return
		}
	}
}

func (t *HostTransport) readLoop() {
	defer close(t.done)

	dec := NewDecoder(8 * MessageLengthMax)
	buf := make([]byte, 256)
	for {
		select {
		case <-t.stop:
			return
		default:
		}

		n, err := t.port.Read(buf)
		if n > 0 {
			dec.Feed(buf[:n])
			for {
				f, ok := dec.Next()
				if !ok {
					break
				}
				t.deliver(f)
			}
		}
		if err != nil {
			if errors.Is(err, io.ErrClosedPipe) || errors.Is(err, os.ErrClosed) {
				return
			}
			// Serial ports report a read timeout as io.EOF.
			if !errors.Is(err, io.EOF) {
				time.Sleep(10 * time.Millisecond)
			}
		}
	}
}

func (t *HostTransport) deliver(f Frame) {
	if len(f.Payload) == 0 {
		select {
		case t.acks <- f.Seq:
		default:
		}
		return
	}

	payload := f.Payload
	id, err := DecodeVLQUint(&payload)
	if err != nil {
		return
	}
	// The firmware sends one message per frame; the rest of the payload
	// belongs to it.
	m := Message{ID: uint16(id), Args: payload}
	select {
	case t.responses <- m:
		return
	default:
	}
	select {
	case <-t.responses:
	default:
	}
	select {
	case t.responses <- m:
	default:
	}
}

// Close stops the reader and closes the port.
func (t *HostTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.stop)
		err = t.port.Close()
		<-t.done
	})
	return err
}
