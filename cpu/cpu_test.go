package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newCpu() *Cpu {
	return NewCpu()
}

func stepN(t *testing.T, c *Cpu, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		assert.NoError(t, c.Step())
	}
}

// TestADIScenarios covers the two documented ADI scenarios: no overflow and
// wraparound.
func TestADIScenarios(t *testing.T) {
	c := newCpu()
	c.Write(0x0000, 0x3E) // MVI A,0x3C
	c.Write(0x0001, 0x3C)
	c.Write(0x0002, 0xC6) // ADI 0x12
	c.Write(0x0003, 0x12)
	stepN(t, c, 2)

	assert.Equal(t, byte(0x4E), c.A)
	assert.False(t, c.Flags.Z)
	assert.False(t, c.Flags.S)
	assert.False(t, c.Flags.C)
	assert.True(t, c.Flags.P)

	c2 := newCpu()
	c2.Write(0x0000, 0x3E) // MVI A,0xFF
	c2.Write(0x0001, 0xFF)
	c2.Write(0x0002, 0xC6) // ADI 0x01
	c2.Write(0x0003, 0x01)
	stepN(t, c2, 2)

	assert.Equal(t, byte(0x00), c2.A)
	assert.True(t, c2.Flags.Z)
	assert.True(t, c2.Flags.C)
	assert.False(t, c2.Flags.S)
	assert.True(t, c2.Flags.P)
}

// TestPushPopAcrossPairs covers LXI SP / LXI B / PUSH B / POP D.
func TestPushPopAcrossPairs(t *testing.T) {
	c := newCpu()
	c.Write(0x0000, 0x31) // LXI SP,0x2400
	c.Write(0x0001, 0x00)
	c.Write(0x0002, 0x24)
	c.Write(0x0003, 0x01) // LXI B,0x1234
	c.Write(0x0004, 0x34)
	c.Write(0x0005, 0x12)
	c.Write(0x0006, 0xC5) // PUSH B
	c.Write(0x0007, 0xD1) // POP D
	stepN(t, c, 4)

	assert.Equal(t, byte(0x12), c.D)
	assert.Equal(t, byte(0x34), c.E)
	assert.Equal(t, uint16(0x2400), c.StackPointer)
}

// TestXTHL covers the documented XTHL scenario.
func TestXTHL(t *testing.T) {
	c := newCpu()
	c.Write(0x0000, 0x21) // LXI H,0x1234
	c.Write(0x0001, 0x34)
	c.Write(0x0002, 0x12)
	c.Write(0x0003, 0x31) // LXI SP,0x2400
	c.Write(0x0004, 0x00)
	c.Write(0x0005, 0x24)
	c.Write(0x2400, 0xAA)
	c.Write(0x2401, 0xBB)
	c.Write(0x0006, 0xE3) // XTHL
	stepN(t, c, 3)

	assert.Equal(t, byte(0xBB), c.H)
	assert.Equal(t, byte(0xAA), c.L)
	assert.Equal(t, byte(0x34), c.Read(0x2400))
	assert.Equal(t, byte(0x12), c.Read(0x2401))
}

// TestANIScenario covers MVI A,0x0F / ANI 0xF0.
func TestANIScenario(t *testing.T) {
	c := newCpu()
	c.Write(0x0000, 0x3E) // MVI A,0x0F
	c.Write(0x0001, 0x0F)
	c.Write(0x0002, 0xE6) // ANI 0xF0
	c.Write(0x0003, 0xF0)
	stepN(t, c, 2)

	assert.Equal(t, byte(0x00), c.A)
	assert.True(t, c.Flags.Z)
	assert.False(t, c.Flags.C)
	assert.True(t, c.Flags.P)
}

// TestCallRet covers the documented CALL/RET scenario.
func TestCallRet(t *testing.T) {
	c := newCpu()
	c.ProgramCounter = 0x0100
	c.StackPointer = 0x2400
	c.Write(0x0100, 0xCD) // CALL 0x0200
	c.Write(0x0101, 0x00)
	c.Write(0x0102, 0x02)
	c.Write(0x0200, 0xC9) // RET

	assert.NoError(t, c.Step())
	assert.Equal(t, uint16(0x0200), c.ProgramCounter)
	assert.Equal(t, uint16(0x23FE), c.StackPointer)
	assert.Equal(t, byte(0x03), c.Read(0x23FE))
	assert.Equal(t, byte(0x01), c.Read(0x23FF))

	assert.NoError(t, c.Step())
	assert.Equal(t, uint16(0x0103), c.ProgramCounter)
	assert.Equal(t, uint16(0x2400), c.StackPointer)
}

// TestUnimplementedOpcode covers the unused-encoding failure path and the
// pc-already-advanced invariant.
func TestUnimplementedOpcode(t *testing.T) {
	c := newCpu()
	c.Write(0x0000, 0x08) // unused 8080 encoding
	err := c.Step()

	var target *UnimplementedOpcodeError
	assert.ErrorAs(t, err, &target)
	assert.Equal(t, byte(0x08), target.Opcode)
	assert.Equal(t, uint16(0x0000), target.PC)
	assert.Equal(t, uint16(1), c.ProgramCounter)
}

// TestHLT covers the real HLT opcode, distinct from the CPUDIAG synthetic
// halt marker.
func TestHLT(t *testing.T) {
	c := newCpu()
	c.Write(0x0000, 0x76)
	assert.ErrorIs(t, c.Step(), ErrHalted)
}

// TestDADOverflow exercises the 17-bit-overflow correction to the
// documented DAD carry bug: (HL & 0xFFFF) is never a meaningful overflow
// test, yet that is exactly what the regression guards against.
func TestDADOverflow(t *testing.T) {
	c := newCpu()
	c.SetHL(0x8000)
	c.DAD(0x8000)
	assert.Equal(t, uint16(0), c.HL())
	assert.True(t, c.Flags.C)

	c2 := newCpu()
	c2.SetHL(0x1000)
	c2.DAD(0x1000)
	assert.Equal(t, uint16(0x2000), c2.HL())
	assert.False(t, c2.Flags.C)
}

// TestInjectRespectsLatch covers interrupt injection: ignored while the
// interrupt-enable latch is clear, accepted once raised, and clears the
// latch on acceptance.
func TestInjectRespectsLatch(t *testing.T) {
	c := newCpu()
	c.ProgramCounter = 0x0050
	c.StackPointer = 0x2400

	c.Inject(0x0008)
	assert.Equal(t, uint16(0x0050), c.ProgramCounter, "injection must be ignored while latch is clear")

	c.InterruptsEnabled = true
	c.Inject(0x0008)
	assert.Equal(t, uint16(0x0008), c.ProgramCounter)
	assert.Equal(t, uint16(0x0008), c.LastInterrupt)
	assert.False(t, c.InterruptsEnabled, "acceptance clears the latch")
	assert.Equal(t, byte(0x50), c.Read(0x23FE))
	assert.Equal(t, byte(0x00), c.Read(0x23FF))
}

// TestXCHGSelfInverse and TestXTHLSelfInverse cover the self-inverse
// round-trip laws: applying either instruction twice is a no-op.
func TestXCHGSelfInverse(t *testing.T) {
	c := newCpu()
	c.SetDE(0x1234)
	c.SetHL(0x5678)
	c.XCHG()
	c.XCHG()
	assert.Equal(t, uint16(0x1234), c.DE())
	assert.Equal(t, uint16(0x5678), c.HL())
}

func TestXTHLSelfInverse(t *testing.T) {
	c := newCpu()
	c.StackPointer = 0x2000
	c.Write(0x2000, 0xAA)
	c.Write(0x2001, 0xBB)
	c.SetHL(0x1234)
	c.XTHL()
	c.XTHL()
	assert.Equal(t, uint16(0x1234), c.HL())
	assert.Equal(t, byte(0xAA), c.Read(0x2000))
	assert.Equal(t, byte(0xBB), c.Read(0x2001))
}

// TestPushPopPSWRoundTrip covers the PSW round-trip law across a sample of
// flag combinations: all clear, all set, and two alternating patterns.
func TestPushPopPSWRoundTrip(t *testing.T) {
	for _, flags := range []struct{ s, z, p, carry, ac bool }{
		{false, false, false, false, false},
		{true, true, true, true, true},
		{true, false, true, false, true},
		{false, true, false, true, false},
	} {
		c := newCpu()
		c.StackPointer = 0x2400
		c.A = 0x5A
		c.Flags.S, c.Flags.Z, c.Flags.P, c.Flags.C, c.Flags.AC = flags.s, flags.z, flags.p, flags.carry, flags.ac

		c.push16(c.packPSW())
		gotA, gotFlags := c.A, c.Flags
		c.A, c.Flags = 0, struct{ S, Z, P, C, AC bool }{}
		c.unpackPSW(c.pop16())

		assert.Equal(t, gotA, c.A)
		assert.Equal(t, gotFlags, c.Flags)
	}
}

// TestRLCRRCRoundTrip and TestCMARoundTrip cover the remaining round-trip
// laws.
func TestRLCRRCRoundTrip(t *testing.T) {
	for x := 0; x < 256; x++ {
		c := newCpu()
		c.A = byte(x)
		c.RLC()
		c.RRC()
		assert.Equal(t, byte(x), c.A)
	}
}

func TestCMARoundTrip(t *testing.T) {
	for x := 0; x < 256; x++ {
		c := newCpu()
		c.A = byte(x)
		c.CMA()
		c.CMA()
		assert.Equal(t, byte(x), c.A)
	}
}
