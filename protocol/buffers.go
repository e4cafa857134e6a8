package protocol

// Buffer accumulates outgoing bytes. It never grows past the capacity given
// to NewBuffer, so the firmware can size it once.
type Buffer struct {
	data []byte
}

// NewBuffer returns an empty Buffer that holds up to capacity bytes.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{data: make([]byte, 0, capacity)}
}

// Write appends as much of p as fits and reports how much that was.
func (b *Buffer) Write(p []byte) (int, error) {
	room := cap(b.data) - len(b.data)
	if len(p) > room {
		b.data = append(b.data, p[:room]...)
		return room, ErrBufferTooSmall
	}
	b.data = append(b.data, p...)
	return len(p), nil
}

// WriteByte appends c.
func (b *Buffer) WriteByte(c byte) error {
	if len(b.data) == cap(b.data) {
		return ErrBufferTooSmall
	}
	b.data = append(b.data, c)
	return nil
}

func (b *Buffer) Len() int      { return len(b.data) }
func (b *Buffer) Bytes() []byte { return b.data }
func (b *Buffer) Reset()        { b.data = b.data[:0] }

// truncate drops everything written after n.
func (b *Buffer) truncate(n int) { b.data = b.data[:n] }

// Decoder splits a byte stream into frames. After a length, sequence, CRC or
// sync error it discards input up to the next sync byte.
type Decoder struct {
	buf      []byte
	synced   bool
	resynced bool
}

// Frame is one validated frame.
type Frame struct {
	Seq     byte
	Payload []byte
}

// NewDecoder returns a Decoder that buffers at most bufSize unparsed bytes.
func NewDecoder(bufSize int) *Decoder {
	return &Decoder{buf: make([]byte, 0, bufSize), synced: true}
}

// Feed appends received bytes. When the buffer is full the oldest bytes are
// dropped and the decoder resynchronizes.
func (d *Decoder) Feed(p []byte) {
	if over := len(d.buf) + len(p) - cap(d.buf); over > 0 {
		if over >= len(d.buf) {
			d.buf = d.buf[:0]
			if len(p) > cap(d.buf) {
				p = p[len(p)-cap(d.buf):]
			}
		} else {
			n := copy(d.buf, d.buf[over:])
			d.buf = d.buf[:n]
		}
		d.synced = false
	}
	d.buf = append(d.buf, p...)
}

// Resynced reports, and clears, whether the decoder regained sync since the
// last call.
func (d *Decoder) Resynced() bool {
	r := d.resynced
	d.resynced = false
	return r
}

// Next returns the next complete frame. The payload is only valid until the
// following call to Feed or Next.
func (d *Decoder) Next() (Frame, bool) {
	data := d.buf
	defer func() {
		n := copy(d.buf, data)
		d.buf = d.buf[:n]
	}()

	for len(data) > 0 {
		if !d.synced {
			i := indexSync(data)
			if i < 0 {
				data = data[:0]
				break
			}
			data = data[i+1:]
			d.synced = true
			d.resynced = true
			continue
		}
		if data[0] == MessageValueSync {
			data = data[1:]
			continue
		}
		if len(data) < MessageLengthMin {
			break
		}

		n := int(data[0])
		seq := data[1]
		if n < MessageLengthMin || n > MessageLengthMax || seq&^MessageSeqMask != MessageDest {
			d.synced = false
			continue
		}
		if len(data) < n {
			break
		}
		if data[n-1] != MessageValueSync {
			d.synced = false
			continue
		}
		crc := uint16(data[n-3])<<8 | uint16(data[n-2])
		if CRC16(data[:n-MessageTrailerSize]) != crc {
			d.synced = false
			continue
		}

		// Copy out: the deferred compaction reuses the buffer.
		payload := make([]byte, n-MessageLengthMin)
		copy(payload, data[MessageHeaderSize:n-MessageTrailerSize])
		data = data[n:]
		return Frame{Seq: seq, Payload: payload}, true
	}
	return Frame{}, false
}

func indexSync(data []byte) int {
	for i, b := range data {
		if b == MessageValueSync {
			return i
		}
	}
	return -1
}

// EncodeFrame appends a frame with the given sequence byte to b. payload may
// be nil, which produces an acknowledgement. b must have room for a maximum
// length frame. If the frame would exceed MessageLengthMax nothing is
// appended.
func EncodeFrame(b *Buffer, seq byte, payload func(*Buffer)) error {
	if cap(b.data)-len(b.data) < MessageLengthMax {
		return ErrBufferTooSmall
	}
	start := b.Len()
	b.WriteByte(0)
	b.WriteByte(seq)
	if payload != nil {
		payload(b)
	}

	n := b.Len() - start + MessageTrailerSize
	if n > MessageLengthMax {
		b.truncate(start)
		return ErrFrameTooLong
	}
	b.data[start] = byte(n)

	crc := CRC16(b.data[start:])
	b.WriteByte(byte(crc >> 8))
	b.WriteByte(byte(crc))
	b.WriteByte(MessageValueSync)
	return nil
}
