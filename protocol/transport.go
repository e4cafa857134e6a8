package protocol

// Handler executes one command. It consumes the command's arguments from the
// front of *args.
type Handler func(cmdID uint16, args *[]byte) error

// Transport is the firmware end of the link. It is driven from a single
// goroutine: Receive with bytes read from the port, then Pending/Flush to
// write what the handlers produced.
type Transport struct {
	dec     *Decoder
	out     *Buffer
	handler Handler
	nextSeq byte

	onReset func()
	onError func(cmdID uint16, err error)
	flush   func()
}

// NewTransport returns a Transport writing into out.
func NewTransport(out *Buffer, handler Handler) *Transport {
	return &Transport{
		dec:     NewDecoder(4 * MessageLengthMax),
		out:     out,
		handler: handler,
		nextSeq: MessageDest,
	}
}

// SetResetCallback is called when the host restarts its sequence numbering.
func (t *Transport) SetResetCallback(fn func()) { t.onReset = fn }

// SetErrorCallback receives handler errors. Errors never desynchronize the
// link; the rest of the frame is dropped.
func (t *Transport) SetErrorCallback(fn func(cmdID uint16, err error)) { t.onError = fn }

// SetFlushCallback is called after each acknowledgement so it reaches the
// host ahead of any response.
func (t *Transport) SetFlushCallback(fn func()) { t.flush = fn }

// Receive consumes bytes from the host and runs every complete command.
func (t *Transport) Receive(p []byte) {
	t.dec.Feed(p)
	for {
		f, ok := t.dec.Next()
		if t.dec.Resynced() {
			t.ack()
		}
		if !ok {
			return
		}

		if f.Seq == MessageDest && t.nextSeq != MessageDest {
			t.nextSeq = MessageDest
			if t.onReset != nil {
				t.onReset()
			}
		}
		// A frame out of sequence is a retransmission or a loss; answering
		// with the expected sequence acts as a NAK.
		if f.Seq == t.nextSeq {
			t.nextSeq = NextSeq(f.Seq)
			t.ack()
			t.dispatch(f.Payload)
		} else {
			t.ack()
		}
	}
}

func (t *Transport) dispatch(payload []byte) {
	for len(payload) > 0 {
		id, err := DecodeVLQUint(&payload)
		if err != nil {
			return
		}
		if t.handler == nil {
			return
		}
		if err := t.handler(uint16(id), &payload); err != nil {
			if t.onError != nil {
				t.onError(uint16(id), err)
			}
			return
		}
	}
}

func (t *Transport) ack() {
	EncodeFrame(t.out, t.nextSeq, nil)
	if t.flush != nil {
		t.flush()
	}
}

// Send queues one message for the host. When the output buffer is full it
// flushes once and retries.
func (t *Transport) Send(cmdID uint16, args func(*Buffer)) error {
	err := t.encode(cmdID, args)
	if err == ErrBufferTooSmall && t.flush != nil {
		t.flush()
		err = t.encode(cmdID, args)
	}
	return err
}

func (t *Transport) encode(cmdID uint16, args func(*Buffer)) error {
	return EncodeFrame(t.out, t.nextSeq, func(b *Buffer) {
		EncodeVLQUint(b, uint32(cmdID))
		if args != nil {
			args(b)
		}
	})
}

// Reset forgets the sequence state, for example after a USB reconnect.
func (t *Transport) Reset() {
	t.nextSeq = MessageDest
	t.dec = NewDecoder(cap(t.dec.buf))
	if t.onReset != nil {
		t.onReset()
	}
}

// Pending returns the bytes waiting to be written to the host.
func (t *Transport) Pending() []byte { return t.out.Bytes() }

// Consume drops the first n pending bytes after they were written.
func (t *Transport) Consume(n int) {
	rest := copy(t.out.data, t.out.data[n:])
	t.out.data = t.out.data[:rest]
}
