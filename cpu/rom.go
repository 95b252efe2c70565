package cpu

// LoadROM copies data into memory starting at base and, in CPUDIAG mode,
// sets pc to 0x0100 and applies the three memory patches the classic
// cpudiag.bin test driver requires: mem[0] becomes a synthetic halt marker (0x27, the
// otherwise-unimplemented DAA opcode, used only as the address the ROM
// jumps to on completion), mem[0x0170] is patched to fix up a stack
// pointer assumption the test ROM makes about running under CP/M, and
// mem[0x059C:0x059F] is patched to a JMP that skips a DAA self-test this
// core does not implement.
//
// Grounded on the original load_rom's own size check ("ROM too large to
// fit in memory"), generalized to accept an in-memory image rather than a
// file path — file I/O belongs to the host, not the core.
func (c *Cpu) LoadROM(data []byte, base uint16, cpudiag bool) error {
	// Keep any port hooks the host already wired in across the reset.
	readPort, writePort := c.ReadPort, c.WritePort
	c.Init()
	if readPort != nil && writePort != nil {
		c.ReadPort, c.WritePort = readPort, writePort
	}
	if !c.Bus.Load(data, base) {
		return &RomIoError{Reason: "rom too large to fit in memory"}
	}

	c.ProgramCounter = base
	c.CPUDiag = cpudiag
	if !cpudiag {
		return nil
	}

	c.ProgramCounter = 0x0100
	c.Write(0x0000, 0x27)
	c.Write(0x0170, 0x07)
	c.Write(0x059C, 0xC3)
	c.Write(0x059D, 0xC2)
	c.Write(0x059E, 0x05)

	return nil
}
