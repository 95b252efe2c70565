package cpu

import "fmt"

// Step fetches the byte at pc, advances pc past it, decodes and executes
// it, and records the instruction's cycle cost. It returns
// UnimplementedOpcodeError for any byte with no Opcodes entry — including
// the 8080's genuinely unused encodings — and ErrHalted once HLT executes
// or, in CPUDIAG mode, once control reaches the synthetic halt marker
// patched into mem[0].
//
// A failed Step still leaves pc advanced past the opcode byte: the operand
// fetch that would follow is never attempted.
func (c *Cpu) Step() error {
	pc := c.ProgramCounter
	b := c.Read(pc)

	if c.CPUDiag && b == 0x27 && pc == 0 {
		return ErrHalted
	}

	if c.Trace != nil {
		fmt.Fprintf(c.Trace, "pc=%04X op=%02X a=%02X b=%02X c=%02X d=%02X e=%02X h=%02X l=%02X sp=%04X f=%02X\n",
			pc, b, c.A, c.B, c.C, c.D, c.E, c.H, c.L, c.StackPointer, byte(c.packPSW()))
	}

	c.ProgramCounter++

	op, ok := Opcodes[b]
	if !ok {
		return &UnimplementedOpcodeError{Opcode: b, PC: pc}
	}

	switch op.Size {
	case 1:
		c.Operand8 = c.Read(c.ProgramCounter)
		c.ProgramCounter++
	case 2:
		lo := c.Read(c.ProgramCounter)
		hi := c.Read(c.ProgramCounter + 1)
		c.Operand16 = uint16(hi)<<8 | uint16(lo)
		c.ProgramCounter += 2
	}

	c.Cycles = op.Cycles
	op.Instruction(c)
	c.TotalCycles += uint64(c.Cycles)

	if c.halted {
		return ErrHalted
	}
	return nil
}
