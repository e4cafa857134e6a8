package regs

// SAMD51 peripheral base addresses.
const (
	MCLK51Base = 0x40000800
	GCLK51Base = 0x40001C00
	TC351Base  = 0x4101C000
)

// TC51 is a SAMD51 TC instance in 16-bit counter mode.
type TC51 struct {
	CTRLA    Register32 // 0x00
	CTRLBCLR Register8  // 0x04
	CTRLBSET Register8  // 0x05
	EVCTRL   Register16 // 0x06
	INTENCLR Register8  // 0x08
	INTENSET Register8  // 0x09
	INTFLAG  Register8  // 0x0A
	STATUS   Register8  // 0x0B
	WAVE     Register8  // 0x0C
	DRVCTRL  Register8  // 0x0D
	_        [1]byte
	DBGCTRL  Register8  // 0x0F
	SYNCBUSY Register32 // 0x10
	COUNT    Register16 // 0x14
	_        [6]byte
	CC       [2]Register16 // 0x1C
}

// TC51 CTRLA.
const (
	TC51CtrlaSwrst         = 1 << 0
	TC51CtrlaEnable        = 1 << 1
	TC51CtrlaModePos       = 2
	TC51CtrlaModeMask      = 0x3
	TC51CtrlaPrescalerPos  = 8
	TC51CtrlaPrescalerMask = 0x7

	TC51ModeCount16 = 0
)

// TC51 CTRLBSET/CTRLBCLR command field.
const (
	TC51CtrlbCmdPos      = 5
	TC51CtrlbCmdMask     = 0x7
	TC51CtrlbCmdReadsync = 4
)

// TC51 WAVE.
const (
	TC51WaveWavegenMask = 0x3
	TC51WavegenNFRQ     = 0
	TC51WavegenMFRQ     = 1
)

// TC51 SYNCBUSY.
const (
	TC51SyncSwrst  = 1 << 0
	TC51SyncEnable = 1 << 1
	TC51SyncCtrlb  = 1 << 2
	TC51SyncStatus = 1 << 3
	TC51SyncCount  = 1 << 4
	TC51SyncPer    = 1 << 5
	TC51SyncCC0    = 1 << 6
	TC51SyncCC1    = 1 << 7
)

// TC51 INTFLAG and INTENSET/INTENCLR.
const (
	TC51IntOVF = 1 << 0
	TC51IntERR = 1 << 1
	TC51IntMC0 = 1 << 4
	TC51IntMC1 = 1 << 5
)

// GCLK51 is the SAMD51 generic clock controller.
type GCLK51 struct {
	CTRLA    Register8 // 0x00
	_        [3]byte
	SYNCBUSY Register32 // 0x04
	_        [24]byte
	GENCTRL  [12]Register32 // 0x20
	_        [48]byte
	PCHCTRL  [48]Register32 // 0x80
}

// GCLK51 PCHCTRL.
const (
	GCLK51PchctrlGenPos  = 0
	GCLK51PchctrlGenMask = 0xF
	GCLK51PchctrlChen    = 1 << 6

	GCLK51Gen0 = 0
	GCLK51Gen1 = 1

	// Peripheral channel shared by TC2 and TC3.
	GCLK51IDTC2TC3 = 26
)

// MCLK51 is the SAMD51 main clock controller; only the bus masks are used.
type MCLK51 struct {
	CTRLA    Register8 // 0x00
	INTENCLR Register8 // 0x01
	INTENSET Register8 // 0x02
	INTFLAG  Register8 // 0x03
	HSDIV    Register8 // 0x04
	CPUDIV   Register8 // 0x05
	_        [10]byte
	AHBMASK  Register32 // 0x10
	APBAMASK Register32 // 0x14
	APBBMASK Register32 // 0x18
	APBCMASK Register32 // 0x1C
	APBDMASK Register32 // 0x20
}

// MCLK51 APBBMASK.
const (
	MCLK51ApbbTCC0 = 1 << 11
	MCLK51ApbbTCC1 = 1 << 12
	MCLK51ApbbTC2  = 1 << 13
	MCLK51ApbbTC3  = 1 << 14
)
