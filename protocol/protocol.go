// Package protocol implements the framed link between the host tool and the
// timer firmware.
//
// A frame is
//
//	len seq payload... crc_hi crc_lo 0x7E
//
// where len counts the whole frame, seq carries MessageDest in its high
// nibble and a 4-bit sequence number in the low one, and the CRC covers len,
// seq and payload. A payload is a run of commands, each a VLQ command ID
// followed by VLQ encoded arguments. A frame with an empty payload is an
// acknowledgement carrying the next sequence number the receiver expects.
package protocol

import "errors"

const (
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePayloadMax  = MessageLengthMax - MessageLengthMin

	MessageValueSync = 0x7E
	MessageDest      = 0x10
	MessageSeqMask   = 0x0F
)

var (
	ErrInvalidVLQ     = errors.New("invalid VLQ encoding")
	ErrBufferTooSmall = errors.New("buffer too small")
	ErrFrameTooLong   = errors.New("frame exceeds maximum length")
)

// NextSeq returns the sequence byte following seq.
func NextSeq(seq byte) byte {
	return ((seq + 1) & MessageSeqMask) | MessageDest
}
