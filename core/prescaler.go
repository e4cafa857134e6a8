package core

import "math"

// Prescaler is the divisor applied to the timer clock before it reaches the
// counter. Only the eight values the TC and TCC blocks support are valid.
type Prescaler uint16

const (
	Div1    Prescaler = 1
	Div2    Prescaler = 2
	Div4    Prescaler = 4
	Div8    Prescaler = 8
	Div16   Prescaler = 16
	Div64   Prescaler = 64
	Div256  Prescaler = 256
	Div1024 Prescaler = 1024
)

// prescalers is indexed by the CTRLA.PRESCALER field encoding.
var prescalers = [8]Prescaler{Div1, Div2, Div4, Div8, Div16, Div64, Div256, Div1024}

// prescalerBreakpoints maps the longest period (µs) handled by each divisor.
// Anything longer than the last entry runs at Div1024.
//
// The table is an approximation of "smallest divisor whose compare value fits
// in 16 bits" and is kept as is: callers depend on these exact thresholds.
var prescalerBreakpoints = [...]struct {
	maxPeriodUS float64
	prescaler   Prescaler
}{
	{1000, Div1},
	{2500, Div2},
	{5000, Div4},
	{10000, Div8},
	{20000, Div16},
	{80000, Div64},
	{300000, Div256},
}

// SelectPrescaler picks the divisor for a period in microseconds.
func SelectPrescaler(periodUS float64) Prescaler {
	for _, bp := range prescalerBreakpoints {
		if periodUS <= bp.maxPeriodUS {
			return bp.prescaler
		}
	}
	return Div1024
}

// PrescalerFromCode decodes a CTRLA.PRESCALER field value.
func PrescalerFromCode(code uint8) Prescaler {
	return prescalers[code&0x7]
}

// Code returns the CTRLA.PRESCALER field value for p.
func (p Prescaler) Code() uint8 {
	for code, v := range prescalers {
		if v == p {
			return uint8(code)
		}
	}
	return 0
}

// Shift returns log2 of the divisor.
func (p Prescaler) Shift() uint8 {
	var shift uint8
	for v := p; v > 1; v >>= 1 {
		shift++
	}
	return shift
}

// Valid reports whether p is one of the supported divisors.
func (p Prescaler) Valid() bool {
	for _, v := range prescalers {
		if v == p {
			return true
		}
	}
	return false
}

// Setting is the register programming derived from a requested period.
type Setting struct {
	Prescaler Prescaler
	Compare   uint16
}

// CompareValue returns ceil(clockHz / p * periodUS / 1e6) - 1 truncated to the
// 16-bit register width. Periods too long for Div1024 wrap; they are not
// supported inputs.
func CompareValue(periodUS float64, p Prescaler, clockHz uint32) uint16 {
	ticks := math.Ceil(float64(clockHz) * periodUS / (float64(p) * 1e6))
	return uint16(int64(ticks) - 1)
}

// Compute derives the prescaler and compare value for a period.
func Compute(periodUS float64, clockHz uint32) Setting {
	p := SelectPrescaler(periodUS)
	return Setting{
		Prescaler: p,
		Compare:   CompareValue(periodUS, p, clockHz),
	}
}

// PeriodUS returns the period the hardware actually produces for s.
func (s Setting) PeriodUS(clockHz uint32) float64 {
	return (float64(s.Compare) + 1) * float64(s.Prescaler) * 1e6 / float64(clockHz)
}
