package cpu

// An Opcode associates a single byte value with the Instruction it
// dispatches to, the number of operand bytes that follow it (Size: 0, 1,
// or 2, for no operand, d8, or d16/a16 respectively), the baseline cycle
// cost (the untaken cost for conditional RET/CALL, the fixed cost for
// everything else), and a Name used only by the debugger.
type Opcode struct {
	Instruction func(c *Cpu)
	Name        string
	Size        byte
	Cycles      byte
}

// Opcodes is the dispatch table, keyed by opcode byte; it holds 243 of the
// 256 possible bytes. Entries absent from the map are the unused 8080
// encodings (0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38, 0xCB, 0xD9, 0xDD,
// 0xED, 0xFD) and DAA (0x27), which this core does not implement; Step
// reports these as an UnimplementedOpcodeError rather than giving them a
// dummy entry.
//
// The irregular instructions (control transfer, stack, immediate, I/O)
// are listed here directly. The families whose register combinations
// follow the 8080's regular 3-bit register-field encoding —
// MOV, the ADD/ADC/SUB/SBB/ANA/XRA/ORA/CMP group, INR/DCR, and MVI — are
// filled in by registerFamilies at init time instead of being transcribed
// by hand, the same way a 256-entry table elsewhere in the retrieved
// pack is assembled by looping over every encoding rather than writing
// each one out.
var Opcodes = map[byte]Opcode{
	0x00: {Instruction: func(c *Cpu) {}, Name: "NOP", Size: 0, Cycles: 4},

	0x01: {Instruction: func(c *Cpu) { c.SetBC(c.Operand16) }, Name: "LXI B", Size: 2, Cycles: 10},
	0x11: {Instruction: func(c *Cpu) { c.SetDE(c.Operand16) }, Name: "LXI D", Size: 2, Cycles: 10},
	0x21: {Instruction: func(c *Cpu) { c.SetHL(c.Operand16) }, Name: "LXI H", Size: 2, Cycles: 10},
	0x31: {Instruction: func(c *Cpu) { c.StackPointer = c.Operand16 }, Name: "LXI SP", Size: 2, Cycles: 10},

	0x02: {Instruction: func(c *Cpu) { c.Write(c.BC(), c.A) }, Name: "STAX B", Size: 0, Cycles: 7},
	0x12: {Instruction: func(c *Cpu) { c.Write(c.DE(), c.A) }, Name: "STAX D", Size: 0, Cycles: 7},
	0x0A: {Instruction: func(c *Cpu) { c.A = c.Read(c.BC()) }, Name: "LDAX B", Size: 0, Cycles: 7},
	0x1A: {Instruction: func(c *Cpu) { c.A = c.Read(c.DE()) }, Name: "LDAX D", Size: 0, Cycles: 7},

	0x03: {Instruction: func(c *Cpu) { c.SetBC(c.BC() + 1) }, Name: "INX B", Size: 0, Cycles: 5},
	0x13: {Instruction: func(c *Cpu) { c.SetDE(c.DE() + 1) }, Name: "INX D", Size: 0, Cycles: 5},
	0x23: {Instruction: func(c *Cpu) { c.SetHL(c.HL() + 1) }, Name: "INX H", Size: 0, Cycles: 5},
	0x33: {Instruction: func(c *Cpu) { c.StackPointer++ }, Name: "INX SP", Size: 0, Cycles: 5},
	0x0B: {Instruction: func(c *Cpu) { c.SetBC(c.BC() - 1) }, Name: "DCX B", Size: 0, Cycles: 5},
	0x1B: {Instruction: func(c *Cpu) { c.SetDE(c.DE() - 1) }, Name: "DCX D", Size: 0, Cycles: 5},
	0x2B: {Instruction: func(c *Cpu) { c.SetHL(c.HL() - 1) }, Name: "DCX H", Size: 0, Cycles: 5},
	0x3B: {Instruction: func(c *Cpu) { c.StackPointer-- }, Name: "DCX SP", Size: 0, Cycles: 5},

	0x07: {Instruction: (*Cpu).RLC, Name: "RLC", Size: 0, Cycles: 4},
	0x0F: {Instruction: (*Cpu).RRC, Name: "RRC", Size: 0, Cycles: 4},
	0x17: {Instruction: (*Cpu).RAL, Name: "RAL", Size: 0, Cycles: 4},
	0x1F: {Instruction: (*Cpu).RAR, Name: "RAR", Size: 0, Cycles: 4},

	0x09: {Instruction: func(c *Cpu) { c.DAD(c.BC()) }, Name: "DAD B", Size: 0, Cycles: 10},
	0x19: {Instruction: func(c *Cpu) { c.DAD(c.DE()) }, Name: "DAD D", Size: 0, Cycles: 10},
	0x29: {Instruction: func(c *Cpu) { c.DAD(c.HL()) }, Name: "DAD H", Size: 0, Cycles: 10},
	0x39: {Instruction: func(c *Cpu) { c.DAD(c.StackPointer) }, Name: "DAD SP", Size: 0, Cycles: 10},

	0x22: {Instruction: (*Cpu).SHLD, Name: "SHLD", Size: 2, Cycles: 16},
	0x2A: {Instruction: (*Cpu).LHLD, Name: "LHLD", Size: 2, Cycles: 16},
	0x32: {Instruction: (*Cpu).STA, Name: "STA", Size: 2, Cycles: 13},
	0x3A: {Instruction: (*Cpu).LDA, Name: "LDA", Size: 2, Cycles: 13},

	0x2F: {Instruction: (*Cpu).CMA, Name: "CMA", Size: 0, Cycles: 4},
	0x37: {Instruction: (*Cpu).STC, Name: "STC", Size: 0, Cycles: 4},
	0x3F: {Instruction: (*Cpu).CMC, Name: "CMC", Size: 0, Cycles: 4},

	0x76: {Instruction: (*Cpu).HLT, Name: "HLT", Size: 0, Cycles: 7},

	// Conditional RET: baseline cost is the untaken cost (5); condRet
	// re-prices to 11 when taken.
	0xC0: {Instruction: func(c *Cpu) { c.condRet(!c.Flags.Z) }, Name: "RNZ", Size: 0, Cycles: 5},
	0xC8: {Instruction: func(c *Cpu) { c.condRet(c.Flags.Z) }, Name: "RZ", Size: 0, Cycles: 5},
	0xD0: {Instruction: func(c *Cpu) { c.condRet(!c.Flags.C) }, Name: "RNC", Size: 0, Cycles: 5},
	0xD8: {Instruction: func(c *Cpu) { c.condRet(c.Flags.C) }, Name: "RC", Size: 0, Cycles: 5},
	0xE0: {Instruction: func(c *Cpu) { c.condRet(!c.Flags.P) }, Name: "RPO", Size: 0, Cycles: 5},
	0xE8: {Instruction: func(c *Cpu) { c.condRet(c.Flags.P) }, Name: "RPE", Size: 0, Cycles: 5},
	0xF0: {Instruction: func(c *Cpu) { c.condRet(!c.Flags.S) }, Name: "RP", Size: 0, Cycles: 5},
	0xF8: {Instruction: func(c *Cpu) { c.condRet(c.Flags.S) }, Name: "RM", Size: 0, Cycles: 5},
	0xC9: {Instruction: (*Cpu).RET, Name: "RET", Size: 0, Cycles: 10},

	// Conditional JMP costs 10 regardless of outcome.
	0xC2: {Instruction: func(c *Cpu) { c.condJmp(!c.Flags.Z) }, Name: "JNZ", Size: 2, Cycles: 10},
	0xCA: {Instruction: func(c *Cpu) { c.condJmp(c.Flags.Z) }, Name: "JZ", Size: 2, Cycles: 10},
	0xD2: {Instruction: func(c *Cpu) { c.condJmp(!c.Flags.C) }, Name: "JNC", Size: 2, Cycles: 10},
	0xDA: {Instruction: func(c *Cpu) { c.condJmp(c.Flags.C) }, Name: "JC", Size: 2, Cycles: 10},
	0xE2: {Instruction: func(c *Cpu) { c.condJmp(!c.Flags.P) }, Name: "JPO", Size: 2, Cycles: 10},
	0xEA: {Instruction: func(c *Cpu) { c.condJmp(c.Flags.P) }, Name: "JPE", Size: 2, Cycles: 10},
	0xF2: {Instruction: func(c *Cpu) { c.condJmp(!c.Flags.S) }, Name: "JP", Size: 2, Cycles: 10},
	0xFA: {Instruction: func(c *Cpu) { c.condJmp(c.Flags.S) }, Name: "JM", Size: 2, Cycles: 10},
	0xC3: {Instruction: (*Cpu).JMP, Name: "JMP", Size: 2, Cycles: 10},

	// Conditional CALL: baseline cost is the untaken cost (11); condCall
	// re-prices to 17 when taken.
	0xC4: {Instruction: func(c *Cpu) { c.condCall(!c.Flags.Z) }, Name: "CNZ", Size: 2, Cycles: 11},
	0xCC: {Instruction: func(c *Cpu) { c.condCall(c.Flags.Z) }, Name: "CZ", Size: 2, Cycles: 11},
	0xD4: {Instruction: func(c *Cpu) { c.condCall(!c.Flags.C) }, Name: "CNC", Size: 2, Cycles: 11},
	0xDC: {Instruction: func(c *Cpu) { c.condCall(c.Flags.C) }, Name: "CC", Size: 2, Cycles: 11},
	0xE4: {Instruction: func(c *Cpu) { c.condCall(!c.Flags.P) }, Name: "CPO", Size: 2, Cycles: 11},
	0xEC: {Instruction: func(c *Cpu) { c.condCall(c.Flags.P) }, Name: "CPE", Size: 2, Cycles: 11},
	0xF4: {Instruction: func(c *Cpu) { c.condCall(!c.Flags.S) }, Name: "CP", Size: 2, Cycles: 11},
	0xFC: {Instruction: func(c *Cpu) { c.condCall(c.Flags.S) }, Name: "CM", Size: 2, Cycles: 11},
	0xCD: {Instruction: (*Cpu).CALL, Name: "CALL", Size: 2, Cycles: 17},

	0xC1: {Instruction: func(c *Cpu) { c.SetBC(c.pop16()) }, Name: "POP B", Size: 0, Cycles: 10},
	0xD1: {Instruction: func(c *Cpu) { c.SetDE(c.pop16()) }, Name: "POP D", Size: 0, Cycles: 10},
	0xE1: {Instruction: func(c *Cpu) { c.SetHL(c.pop16()) }, Name: "POP H", Size: 0, Cycles: 10},
	0xF1: {Instruction: func(c *Cpu) { c.unpackPSW(c.pop16()) }, Name: "POP PSW", Size: 0, Cycles: 10},
	0xC5: {Instruction: func(c *Cpu) { c.push16(c.BC()) }, Name: "PUSH B", Size: 0, Cycles: 11},
	0xD5: {Instruction: func(c *Cpu) { c.push16(c.DE()) }, Name: "PUSH D", Size: 0, Cycles: 11},
	0xE5: {Instruction: func(c *Cpu) { c.push16(c.HL()) }, Name: "PUSH H", Size: 0, Cycles: 11},
	0xF5: {Instruction: func(c *Cpu) { c.push16(c.packPSW()) }, Name: "PUSH PSW", Size: 0, Cycles: 11},

	0xC6: {Instruction: func(c *Cpu) { c.ADD(c.Operand8) }, Name: "ADI", Size: 1, Cycles: 7},
	0xCE: {Instruction: func(c *Cpu) { c.ADC(c.Operand8) }, Name: "ACI", Size: 1, Cycles: 7},
	0xD6: {Instruction: func(c *Cpu) { c.SUB(c.Operand8) }, Name: "SUI", Size: 1, Cycles: 7},
	0xDE: {Instruction: func(c *Cpu) { c.SBB(c.Operand8) }, Name: "SBI", Size: 1, Cycles: 7},
	0xE6: {Instruction: func(c *Cpu) { c.ANA(c.Operand8) }, Name: "ANI", Size: 1, Cycles: 7},
	0xEE: {Instruction: func(c *Cpu) { c.XRA(c.Operand8) }, Name: "XRI", Size: 1, Cycles: 7},
	0xF6: {Instruction: func(c *Cpu) { c.ORA(c.Operand8) }, Name: "ORI", Size: 1, Cycles: 7},
	0xFE: {Instruction: func(c *Cpu) { c.CMP(c.Operand8) }, Name: "CPI", Size: 1, Cycles: 7},

	0xE3: {Instruction: (*Cpu).XTHL, Name: "XTHL", Size: 0, Cycles: 18},
	0xEB: {Instruction: (*Cpu).XCHG, Name: "XCHG", Size: 0, Cycles: 4},
	0xE9: {Instruction: (*Cpu).PCHL, Name: "PCHL", Size: 0, Cycles: 5},
	0xF9: {Instruction: (*Cpu).SPHL, Name: "SPHL", Size: 0, Cycles: 5},

	0xD3: {Instruction: func(c *Cpu) { c.OUT() }, Name: "OUT", Size: 1, Cycles: 10},
	0xDB: {Instruction: func(c *Cpu) { c.IN() }, Name: "IN", Size: 1, Cycles: 10},
	0xFB: {Instruction: (*Cpu).EI, Name: "EI", Size: 0, Cycles: 4},
	0xF3: {Instruction: (*Cpu).DI, Name: "DI", Size: 0, Cycles: 4},

	0xC7: {Instruction: func(c *Cpu) { c.rst(0x00) }, Name: "RST 0", Size: 0, Cycles: 11},
	0xCF: {Instruction: func(c *Cpu) { c.rst(0x08) }, Name: "RST 1", Size: 0, Cycles: 11},
	0xD7: {Instruction: func(c *Cpu) { c.rst(0x10) }, Name: "RST 2", Size: 0, Cycles: 11},
	0xDF: {Instruction: func(c *Cpu) { c.rst(0x18) }, Name: "RST 3", Size: 0, Cycles: 11},
	0xE7: {Instruction: func(c *Cpu) { c.rst(0x20) }, Name: "RST 4", Size: 0, Cycles: 11},
	0xEF: {Instruction: func(c *Cpu) { c.rst(0x28) }, Name: "RST 5", Size: 0, Cycles: 11},
	0xF7: {Instruction: func(c *Cpu) { c.rst(0x30) }, Name: "RST 6", Size: 0, Cycles: 11},
	0xFF: {Instruction: func(c *Cpu) { c.rst(0x38) }, Name: "RST 7", Size: 0, Cycles: 11},
}

// registerNames lists the 3-bit register-field encoding shared by MOV, the
// ADD/ADC/SUB/SBB/ANA/XRA/ORA/CMP group, INR/DCR, and MVI: 0=B, 1=C, 2=D,
// 3=E, 4=H, 5=L, 6=M, 7=A.
var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "M", "A"}

func init() {
	registerFamilies()
}

// registerFamilies fills in every opcode whose byte value is built from
// the 8080's regular 3-bit register-field encoding, rather than
// transcribing all 151 of them by hand.
func registerFamilies() {
	// MOV dst,src: 0x40 + dst*8 + src, for all dst,src except 0x76 (HLT,
	// already in the literal table above).
	for dst := byte(0); dst < 8; dst++ {
		for src := byte(0); src < 8; src++ {
			op := 0x40 + dst*8 + src
			if op == 0x76 {
				continue
			}
			cycles := byte(5)
			if dst == 6 || src == 6 {
				cycles = 7
			}
			dst, src := dst, src
			Opcodes[op] = Opcode{
				Instruction: func(c *Cpu) { c.setRegAt(dst, c.regAt(src)) },
				Name:        "MOV " + registerNames[dst] + "," + registerNames[src],
				Size:        0,
				Cycles:      cycles,
			}
		}
	}

	// ADD/ADC/SUB/SBB/ANA/XRA/ORA/CMP r: base+src, for src 0..7.
	alu := []struct {
		base byte
		name string
		fn   func(c *Cpu, v byte)
	}{
		{0x80, "ADD", (*Cpu).ADD},
		{0x88, "ADC", (*Cpu).ADC},
		{0x90, "SUB", (*Cpu).SUB},
		{0x98, "SBB", (*Cpu).SBB},
		{0xA0, "ANA", (*Cpu).ANA},
		{0xA8, "XRA", (*Cpu).XRA},
		{0xB0, "ORA", (*Cpu).ORA},
		{0xB8, "CMP", (*Cpu).CMP},
	}
	for _, group := range alu {
		for src := byte(0); src < 8; src++ {
			op := group.base + src
			cycles := byte(4)
			if src == 6 {
				cycles = 7
			}
			src, fn := src, group.fn
			Opcodes[op] = Opcode{
				Instruction: func(c *Cpu) { fn(c, c.regAt(src)) },
				Name:        group.name + " " + registerNames[src],
				Size:        0,
				Cycles:      cycles,
			}
		}
	}

	// INR/DCR r: 0x04|r<<3 and 0x05|r<<3.
	for r := byte(0); r < 8; r++ {
		r := r
		cycles := byte(5)
		if r == 6 {
			cycles = 10
		}
		Opcodes[0x04|r<<3] = Opcode{
			Instruction: func(c *Cpu) { c.setRegAt(r, c.INR(c.regAt(r))) },
			Name:        "INR " + registerNames[r],
			Size:        0,
			Cycles:      cycles,
		}
		Opcodes[0x05|r<<3] = Opcode{
			Instruction: func(c *Cpu) { c.setRegAt(r, c.DCR(c.regAt(r))) },
			Name:        "DCR " + registerNames[r],
			Size:        0,
			Cycles:      cycles,
		}
	}

	// MVI r,d8: 0x06|r<<3.
	for r := byte(0); r < 8; r++ {
		r := r
		cycles := byte(7)
		if r == 6 {
			cycles = 10
		}
		Opcodes[0x06|r<<3] = Opcode{
			Instruction: func(c *Cpu) { c.setRegAt(r, c.Operand8) },
			Name:        "MVI " + registerNames[r],
			Size:        1,
			Cycles:      cycles,
		}
	}
}
