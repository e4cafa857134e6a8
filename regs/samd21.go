package regs

// SAMD21 peripheral base addresses.
const (
	PM21Base   = 0x40000400
	GCLK21Base = 0x40000C00
	TCC021Base = 0x42002000
	TC321Base  = 0x42002C00
)

// TC21 is a SAMD21 TC instance in 16-bit counter mode.
type TC21 struct {
	CTRLA    Register16 // 0x00
	READREQ  Register16 // 0x02
	CTRLBCLR Register8  // 0x04
	CTRLBSET Register8  // 0x05
	CTRLC    Register8  // 0x06
	_        [1]byte
	DBGCTRL  Register8 // 0x08
	_        [1]byte
	EVCTRL   Register16 // 0x0A
	INTENCLR Register8  // 0x0C
	INTENSET Register8  // 0x0D
	INTFLAG  Register8  // 0x0E
	STATUS   Register8  // 0x0F
	COUNT    Register16 // 0x10
	_        [6]byte
	CC       [2]Register16 // 0x18
}

// TC21 register offsets used as READREQ addresses.
const (
	TC21CountOffset = 0x10
	TC21CC0Offset   = 0x18
)

// TC21 CTRLA.
const (
	TC21CtrlaSwrst         = 1 << 0
	TC21CtrlaEnable        = 1 << 1
	TC21CtrlaModePos       = 2
	TC21CtrlaModeMask      = 0x3
	TC21CtrlaWavegenPos    = 5
	TC21CtrlaWavegenMask   = 0x3
	TC21CtrlaPrescalerPos  = 8
	TC21CtrlaPrescalerMask = 0x7

	TC21ModeCount16 = 0
	TC21ModeCount8  = 1
	TC21ModeCount32 = 2

	TC21WavegenNFRQ = 0
	TC21WavegenMFRQ = 1
	TC21WavegenNPWM = 2
	TC21WavegenMPWM = 3
)

// TC21 READREQ.
const (
	TC21ReadreqAddrMask = 0x1F
	TC21ReadreqRCONT    = 1 << 14
	TC21ReadreqRREQ     = 1 << 15
)

// TC21 STATUS, INTFLAG and INTENSET/INTENCLR.
const (
	TC21StatusStop     = 1 << 3
	TC21StatusSyncbusy = 1 << 7

	TC21IntOVF  = 1 << 0
	TC21IntERR  = 1 << 1
	TC21IntSYNC = 1 << 3
	TC21IntMC0  = 1 << 4
	TC21IntMC1  = 1 << 5
)

// TCC21 is a SAMD21 TCC instance.
type TCC21 struct {
	CTRLA    Register32 // 0x00
	CTRLBCLR Register8  // 0x04
	CTRLBSET Register8  // 0x05
	_        [2]byte
	SYNCBUSY Register32 // 0x08
	FCTRLA   Register32 // 0x0C
	FCTRLB   Register32 // 0x10
	WEXCTRL  Register32 // 0x14
	DRVCTRL  Register32 // 0x18
	_        [2]byte
	DBGCTRL  Register8 // 0x1E
	_        [1]byte
	EVCTRL   Register32 // 0x20
	INTENCLR Register32 // 0x24
	INTENSET Register32 // 0x28
	INTFLAG  Register32 // 0x2C
	STATUS   Register32 // 0x30
	COUNT    Register32 // 0x34
	PATT     Register16 // 0x38
	_        [2]byte
	WAVE     Register32    // 0x3C
	PER      Register32    // 0x40
	CC       [4]Register32 // 0x44
}

// TCC21 CTRLA.
const (
	TCC21CtrlaSwrst         = 1 << 0
	TCC21CtrlaEnable        = 1 << 1
	TCC21CtrlaPrescalerPos  = 8
	TCC21CtrlaPrescalerMask = 0x7
)

// TCC21 CTRLBSET/CTRLBCLR command field.
const (
	TCC21CtrlbCmdPos       = 5
	TCC21CtrlbCmdMask      = 0x7
	TCC21CtrlbCmdNone      = 0
	TCC21CtrlbCmdRetrigger = 1
	TCC21CtrlbCmdStop      = 2
	TCC21CtrlbCmdUpdate    = 3
	TCC21CtrlbCmdReadsync  = 4
)

// TCC21 SYNCBUSY.
const (
	TCC21SyncSwrst  = 1 << 0
	TCC21SyncEnable = 1 << 1
	TCC21SyncCtrlb  = 1 << 2
	TCC21SyncStatus = 1 << 3
	TCC21SyncCount  = 1 << 4
	TCC21SyncPatt   = 1 << 5
	TCC21SyncWave   = 1 << 6
	TCC21SyncPer    = 1 << 7
	TCC21SyncCC0    = 1 << 8
)

// TCC21 INTFLAG and INTENSET/INTENCLR.
const (
	TCC21IntOVF = 1 << 0
	TCC21IntTRG = 1 << 1
	TCC21IntCNT = 1 << 2
	TCC21IntERR = 1 << 3
	TCC21IntMC0 = 1 << 16
)

// TCC21 WAVE.
const (
	TCC21WaveWavegenPos  = 0
	TCC21WaveWavegenMask = 0x7
	TCC21WavegenNFRQ     = 0
	TCC21WavegenMFRQ     = 1
	TCC21WavegenNPWM     = 2
)

// GCLK21 is the SAMD21 generic clock controller.
type GCLK21 struct {
	CTRL    Register8  // 0x00
	STATUS  Register8  // 0x01
	CLKCTRL Register16 // 0x02
	GENCTRL Register32 // 0x04
	GENDIV  Register32 // 0x08
}

// GCLK21 STATUS and CLKCTRL.
const (
	GCLK21StatusSyncbusy = 1 << 7

	GCLK21ClkctrlIDPos  = 0
	GCLK21ClkctrlIDMask = 0x3F
	GCLK21ClkctrlGenPos = 8
	GCLK21ClkctrlClken  = 1 << 14

	GCLK21Gen0 = 0

	// Peripheral channel IDs shared by pairs of timers.
	GCLK21IDTCC0TCC1 = 0x1A
	GCLK21IDTCC2TC3  = 0x1B
)

// PM21 is the SAMD21 power manager; only the bus clock masks are used here.
type PM21 struct {
	CTRL     Register8 // 0x00
	SLEEP    Register8 // 0x01
	_        [6]byte
	CPUSEL   Register8 // 0x08
	APBASEL  Register8 // 0x09
	APBBSEL  Register8 // 0x0A
	APBCSEL  Register8 // 0x0B
	_        [8]byte
	AHBMASK  Register32 // 0x14
	APBAMASK Register32 // 0x18
	APBBMASK Register32 // 0x1C
	APBCMASK Register32 // 0x20
}

// PM21 APBCMASK.
const (
	PM21ApbcTCC0 = 1 << 8
	PM21ApbcTCC1 = 1 << 9
	PM21ApbcTCC2 = 1 << 10
	PM21ApbcTC3  = 1 << 11
)
