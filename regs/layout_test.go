package regs

import (
	"testing"
	"unsafe"
)

type fieldOffset struct {
	name string
	got  uintptr
	want uintptr
}

func checkOffsets(t *testing.T, block string, fields []fieldOffset) {
	t.Helper()
	for _, f := range fields {
		if f.got != f.want {
			t.Errorf("%s.%s at offset 0x%02X, expected 0x%02X", block, f.name, f.got, f.want)
		}
	}
}

func TestTC21Layout(t *testing.T) {
	var r TC21
	checkOffsets(t, "TC21", []fieldOffset{
		{"CTRLA", unsafe.Offsetof(r.CTRLA), 0x00},
		{"READREQ", unsafe.Offsetof(r.READREQ), 0x02},
		{"CTRLBSET", unsafe.Offsetof(r.CTRLBSET), 0x05},
		{"DBGCTRL", unsafe.Offsetof(r.DBGCTRL), 0x08},
		{"EVCTRL", unsafe.Offsetof(r.EVCTRL), 0x0A},
		{"INTENCLR", unsafe.Offsetof(r.INTENCLR), 0x0C},
		{"INTENSET", unsafe.Offsetof(r.INTENSET), 0x0D},
		{"INTFLAG", unsafe.Offsetof(r.INTFLAG), 0x0E},
		{"STATUS", unsafe.Offsetof(r.STATUS), 0x0F},
		{"COUNT", unsafe.Offsetof(r.COUNT), TC21CountOffset},
		{"CC", unsafe.Offsetof(r.CC), TC21CC0Offset},
	})
	if size := unsafe.Sizeof(r); size != 0x1C {
		t.Errorf("TC21 size 0x%02X, expected 0x1C", size)
	}
}

func TestTCC21Layout(t *testing.T) {
	var r TCC21
	checkOffsets(t, "TCC21", []fieldOffset{
		{"CTRLA", unsafe.Offsetof(r.CTRLA), 0x00},
		{"CTRLBSET", unsafe.Offsetof(r.CTRLBSET), 0x05},
		{"SYNCBUSY", unsafe.Offsetof(r.SYNCBUSY), 0x08},
		{"DRVCTRL", unsafe.Offsetof(r.DRVCTRL), 0x18},
		{"DBGCTRL", unsafe.Offsetof(r.DBGCTRL), 0x1E},
		{"EVCTRL", unsafe.Offsetof(r.EVCTRL), 0x20},
		{"INTENSET", unsafe.Offsetof(r.INTENSET), 0x28},
		{"INTFLAG", unsafe.Offsetof(r.INTFLAG), 0x2C},
		{"COUNT", unsafe.Offsetof(r.COUNT), 0x34},
		{"PATT", unsafe.Offsetof(r.PATT), 0x38},
		{"WAVE", unsafe.Offsetof(r.WAVE), 0x3C},
		{"PER", unsafe.Offsetof(r.PER), 0x40},
		{"CC", unsafe.Offsetof(r.CC), 0x44},
	})
}

func TestGCLK21Layout(t *testing.T) {
	var r GCLK21
	checkOffsets(t, "GCLK21", []fieldOffset{
		{"STATUS", unsafe.Offsetof(r.STATUS), 0x01},
		{"CLKCTRL", unsafe.Offsetof(r.CLKCTRL), 0x02},
		{"GENCTRL", unsafe.Offsetof(r.GENCTRL), 0x04},
		{"GENDIV", unsafe.Offsetof(r.GENDIV), 0x08},
	})
}

func TestPM21Layout(t *testing.T) {
	var r PM21
	checkOffsets(t, "PM21", []fieldOffset{
		{"CPUSEL", unsafe.Offsetof(r.CPUSEL), 0x08},
		{"AHBMASK", unsafe.Offsetof(r.AHBMASK), 0x14},
		{"APBCMASK", unsafe.Offsetof(r.APBCMASK), 0x20},
	})
}

func TestTC51Layout(t *testing.T) {
	var r TC51
	checkOffsets(t, "TC51", []fieldOffset{
		{"CTRLA", unsafe.Offsetof(r.CTRLA), 0x00},
		{"CTRLBSET", unsafe.Offsetof(r.CTRLBSET), 0x05},
		{"EVCTRL", unsafe.Offsetof(r.EVCTRL), 0x06},
		{"INTENSET", unsafe.Offsetof(r.INTENSET), 0x09},
		{"INTFLAG", unsafe.Offsetof(r.INTFLAG), 0x0A},
		{"WAVE", unsafe.Offsetof(r.WAVE), 0x0C},
		{"DBGCTRL", unsafe.Offsetof(r.DBGCTRL), 0x0F},
		{"SYNCBUSY", unsafe.Offsetof(r.SYNCBUSY), 0x10},
		{"COUNT", unsafe.Offsetof(r.COUNT), 0x14},
		{"CC", unsafe.Offsetof(r.CC), 0x1C},
	})
}

func TestGCLK51Layout(t *testing.T) {
	var r GCLK51
	checkOffsets(t, "GCLK51", []fieldOffset{
		{"SYNCBUSY", unsafe.Offsetof(r.SYNCBUSY), 0x04},
		{"GENCTRL", unsafe.Offsetof(r.GENCTRL), 0x20},
		{"PCHCTRL", unsafe.Offsetof(r.PCHCTRL), 0x80},
	})
	if off := unsafe.Offsetof(r.PCHCTRL) + GCLK51IDTC2TC3*4; off != 0xE8 {
		t.Errorf("PCHCTRL[TC2_TC3] at 0x%02X, expected 0xE8", off)
	}
}

func TestMCLK51Layout(t *testing.T) {
	var r MCLK51
	checkOffsets(t, "MCLK51", []fieldOffset{
		{"AHBMASK", unsafe.Offsetof(r.AHBMASK), 0x10},
		{"APBBMASK", unsafe.Offsetof(r.APBBMASK), 0x18},
		{"APBDMASK", unsafe.Offsetof(r.APBDMASK), 0x20},
	})
}

func TestRegisterReplaceBits(t *testing.T) {
	var r Register16
	r.Set(TC21CtrlaEnable | TC21WavegenMFRQ<<TC21CtrlaWavegenPos)
	r.ReplaceBits(7, TC21CtrlaPrescalerMask, TC21CtrlaPrescalerPos)
	if got := (r.Get() >> TC21CtrlaPrescalerPos) & TC21CtrlaPrescalerMask; got != 7 {
		t.Errorf("prescaler field = %d, expected 7", got)
	}
	r.ReplaceBits(2, TC21CtrlaPrescalerMask, TC21CtrlaPrescalerPos)
	if got := (r.Get() >> TC21CtrlaPrescalerPos) & TC21CtrlaPrescalerMask; got != 2 {
		t.Errorf("prescaler field = %d, expected 2", got)
	}
	if !r.HasBits(TC21CtrlaEnable) {
		t.Error("ReplaceBits cleared an unrelated bit")
	}
}
