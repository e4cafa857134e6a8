package protocol

// EncodeVLQInt appends v using the variable length encoding of the link:
// seven bits per byte, most significant group first, continuation in bit 7.
// The first byte's bits 5 and 6 carry the sign, so -32..95 take one byte.
func EncodeVLQInt(b *Buffer, v int32) {
	if v < -(1<<26) || v >= 3<<26 {
		b.WriteByte(byte(v>>28)&0x7F | 0x80)
	}
	if v < -(1<<19) || v >= 3<<19 {
		b.WriteByte(byte(v>>21)&0x7F | 0x80)
	}
	if v < -(1<<12) || v >= 3<<12 {
		b.WriteByte(byte(v>>14)&0x7F | 0x80)
	}
	if v < -(1<<5) || v >= 3<<5 {
		b.WriteByte(byte(v>>7)&0x7F | 0x80)
	}
	b.WriteByte(byte(v) & 0x7F)
}

// EncodeVLQUint appends v. Values above MaxInt32 share their encoding with
// the negative int32 of the same bits.
func EncodeVLQUint(b *Buffer, v uint32) {
	EncodeVLQInt(b, int32(v))
}

// EncodeVLQBool appends 1 or 0.
func EncodeVLQBool(b *Buffer, v bool) {
	if v {
		b.WriteByte(1)
	} else {
		b.WriteByte(0)
	}
}

// EncodeVLQBytes appends a length-prefixed byte string.
func EncodeVLQBytes(b *Buffer, p []byte) {
	EncodeVLQUint(b, uint32(len(p)))
	b.Write(p)
}

// DecodeVLQInt consumes one integer from the front of *data.
func DecodeVLQInt(data *[]byte) (int32, error) {
	p := *data
	if len(p) == 0 {
		return 0, ErrBufferTooSmall
	}

	c := p[0]
	v := uint32(c & 0x7F)
	if c&0x60 == 0x60 {
		v |= ^uint32(0x1F)
	}
	i := 1
	for c&0x80 != 0 {
		if i == len(p) {
			return 0, ErrBufferTooSmall
		}
		if i == 5 {
			return 0, ErrInvalidVLQ
		}
		c = p[i]
		i++
		v = v<<7 | uint32(c&0x7F)
	}
	*data = p[i:]
	return int32(v), nil
}

// DecodeVLQUint consumes one unsigned integer.
func DecodeVLQUint(data *[]byte) (uint32, error) {
	v, err := DecodeVLQInt(data)
	return uint32(v), err
}

// DecodeVLQBytes consumes a length-prefixed byte string. The result aliases
// *data.
func DecodeVLQBytes(data *[]byte) ([]byte, error) {
	n, err := DecodeVLQUint(data)
	if err != nil {
		return nil, err
	}
	p := *data
	if uint32(len(p)) < n {
		return nil, ErrBufferTooSmall
	}
	*data = p[n:]
	return p[:n], nil
}
