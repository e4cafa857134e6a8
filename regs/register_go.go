//go:build !tinygo

package regs

// Register8 is a plain memory cell with the method set of TinyGo's
// volatile.Register8. Used when the register blocks are backed by ordinary
// memory (host tests).
type Register8 struct {
	Reg uint8
}

func (r *Register8) Get() uint8               { return r.Reg }
func (r *Register8) Set(value uint8)          { r.Reg = value }
func (r *Register8) SetBits(value uint8)      { r.Reg |= value }
func (r *Register8) ClearBits(value uint8)    { r.Reg &^= value }
func (r *Register8) HasBits(value uint8) bool { return r.Reg&value > 0 }

func (r *Register8) ReplaceBits(value uint8, mask uint8, pos uint8) {
	r.Reg = r.Reg&^(mask<<pos) | value<<pos
}

// Register16 is the 16-bit counterpart of Register8.
type Register16 struct {
	Reg uint16
}

func (r *Register16) Get() uint16               { return r.Reg }
func (r *Register16) Set(value uint16)          { r.Reg = value }
func (r *Register16) SetBits(value uint16)      { r.Reg |= value }
func (r *Register16) ClearBits(value uint16)    { r.Reg &^= value }
func (r *Register16) HasBits(value uint16) bool { return r.Reg&value > 0 }

func (r *Register16) ReplaceBits(value uint16, mask uint16, pos uint8) {
	r.Reg = r.Reg&^(mask<<pos) | value<<pos
}

// Register32 is the 32-bit counterpart of Register8.
type Register32 struct {
	Reg uint32
}

func (r *Register32) Get() uint32               { return r.Reg }
func (r *Register32) Set(value uint32)          { r.Reg = value }
func (r *Register32) SetBits(value uint32)      { r.Reg |= value }
func (r *Register32) ClearBits(value uint32)    { r.Reg &^= value }
func (r *Register32) HasBits(value uint32) bool { return r.Reg&value > 0 }

func (r *Register32) ReplaceBits(value uint32, mask uint32, pos uint8) {
	r.Reg = r.Reg&^(mask<<pos) | value<<pos
}
