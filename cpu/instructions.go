package cpu

import "math/bits"

// Each instruction method operates on an already-decoded operand: either a
// register value the opcode table's closure already resolved via regAt, or
// c.Operand8/c.Operand16, which decode.go populates from d8/d16/a16 before
// invoking the opcode's Instruction.

// regAt returns the value of the register named by the 8080's standard
// 3-bit register field encoding: 0=B, 1=C, 2=D, 3=E, 4=H, 5=L, 6=M, 7=A.
// MOV, the arithmetic/logic group, INR/DCR, and MVI all share this
// encoding directly in their opcode byte.
func (c *Cpu) regAt(code byte) byte {
	switch code & 0x07 {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.M()
	default:
		return c.A
	}
}

// setRegAt stores v into the register named by code, using the same
// encoding as regAt.
func (c *Cpu) setRegAt(code byte, v byte) {
	switch code & 0x07 {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		c.SetM(v)
	default:
		c.A = v
	}
}

// setZSP sets Z, S, and P from an already-computed 8-bit result. Every
// arithmetic and logic instruction uses the non-inverted sign sense
// uniformly — result&0x80 != 0 — rather than the inverted form used
// inconsistently at some call sites in older emulators.
func (c *Cpu) setZSP(result byte) {
	c.Flags.Z = result == 0
	c.Flags.S = result&0x80 != 0
	c.Flags.P = bits.OnesCount8(result)%2 == 0
}

// ADD adds src into A. C is set from 9-bit (17-bit in the DAD case) carry,
// computed in a widened accumulator rather than tested on the truncated
// 8-bit result.
func (c *Cpu) ADD(src byte) {
	sum := uint16(c.A) + uint16(src)
	c.Flags.C = sum > 0xFF
	c.A = byte(sum)
	c.setZSP(c.A)
}

// ADC adds src and the current carry into A.
func (c *Cpu) ADC(src byte) {
	var carry uint16
	if c.Flags.C {
		carry = 1
	}
	sum := uint16(c.A) + uint16(src) + carry
	c.Flags.C = sum > 0xFF
	c.A = byte(sum)
	c.setZSP(c.A)
}

// SUB subtracts src from A. C is set on borrow: A < src.
func (c *Cpu) SUB(src byte) {
	c.Flags.C = c.A < src
	c.A = c.A - src
	c.setZSP(c.A)
}

// SBB subtracts src and the current carry from A.
func (c *Cpu) SBB(src byte) {
	var borrow uint16
	if c.Flags.C {
		borrow = 1
	}
	c.Flags.C = uint16(c.A) < uint16(src)+borrow
	c.A = byte(uint16(c.A) - uint16(src) - borrow)
	c.setZSP(c.A)
}

// ANA ANDs src into A. C is always cleared.
func (c *Cpu) ANA(src byte) {
	c.A &= src
	c.Flags.C = false
	c.setZSP(c.A)
}

// XRA XORs src into A. C is always cleared.
func (c *Cpu) XRA(src byte) {
	c.A ^= src
	c.Flags.C = false
	c.setZSP(c.A)
}

// ORA ORs src into A. C is always cleared.
func (c *Cpu) ORA(src byte) {
	c.A |= src
	c.Flags.C = false
	c.setZSP(c.A)
}

// CMP compares A against src, setting flags as SUB would but discarding the
// numeric result. C is set iff A < src — every CMP variant shares this one
// method, so there is no per-register copy that could compare against the
// wrong operand.
func (c *Cpu) CMP(src byte) {
	result := c.A - src
	c.Flags.C = c.A < src
	c.setZSP(result)
}

// INR increments v by one, setting S, Z, P. C is never touched.
func (c *Cpu) INR(v byte) byte {
	result := v + 1
	c.setZSP(result)
	return result
}

// DCR decrements v by one, setting S, Z, P. C is never touched.
func (c *Cpu) DCR(v byte) byte {
	result := v - 1
	c.setZSP(result)
	return result
}

// RLC rotates A left; the bit rotated out of bit 7 becomes both the new
// bit 0 and the new C.
func (c *Cpu) RLC() {
	carry := c.A&0x80 != 0
	c.A <<= 1
	if carry {
		c.A |= 0x01
	}
	c.Flags.C = carry
}

// RRC rotates A right; the bit rotated out of bit 0 becomes both the new
// bit 7 and the new C.
func (c *Cpu) RRC() {
	carry := c.A&0x01 != 0
	c.A >>= 1
	if carry {
		c.A |= 0x80
	}
	c.Flags.C = carry
}

// RAL rotates A left through C: the old C enters bit 0, bit 7 becomes the
// new C.
func (c *Cpu) RAL() {
	carryIn := c.Flags.C
	carryOut := c.A&0x80 != 0
	c.A <<= 1
	if carryIn {
		c.A |= 0x01
	}
	c.Flags.C = carryOut
}

// RAR rotates A right through C: the old C enters bit 7, bit 0 becomes the
// new C.
func (c *Cpu) RAR() {
	carryIn := c.Flags.C
	carryOut := c.A&0x01 != 0
	c.A >>= 1
	if carryIn {
		c.A |= 0x80
	}
	c.Flags.C = carryOut
}

// DAD adds rp into HL, setting C from true 17-bit overflow: the addition
// runs in a 32-bit accumulator and bit 16 is tested directly, rather than
// truncating to 16 bits first and testing a value that can never be zero.
func (c *Cpu) DAD(rp uint16) {
	sum := uint32(c.HL()) + uint32(rp)
	c.Flags.C = sum > 0xFFFF
	c.SetHL(uint16(sum))
}

// CMA complements A. No flags are affected.
func (c *Cpu) CMA() { c.A = ^c.A }

// STC sets C.
func (c *Cpu) STC() { c.Flags.C = true }

// CMC complements C and returns — a standalone instruction with no
// fallthrough into any other opcode's handler, since the table dispatch
// in decode.go maps each byte to exactly one Instruction.
func (c *Cpu) CMC() { c.Flags.C = !c.Flags.C }

// condRet completes a conditional RET: if taken, it pops pc off the stack
// and re-prices the instruction at the taken cost (11 cycles); an untaken
// conditional RET keeps the baseline cost (5) the opcode table supplied.
func (c *Cpu) condRet(taken bool) {
	if taken {
		c.ProgramCounter = c.pop16()
		c.Cycles = 11
	}
}

// condJmp completes a conditional JMP. Cost is always 10 regardless of
// outcome, so there is nothing to re-price; pc already advanced past the
// a16 operand on a fetch that isn't taken.
func (c *Cpu) condJmp(taken bool) {
	if taken {
		c.ProgramCounter = c.Operand16
	}
}

// condCall completes a conditional CALL: if taken, it pushes the return
// address and jumps, re-pricing the instruction at the taken cost (17);
// an untaken conditional CALL keeps the baseline cost (11).
func (c *Cpu) condCall(taken bool) {
	if taken {
		c.execCall(c.Operand16)
		c.Cycles = 17
	}
}

// execCall pushes the return address and jumps to addr, except in
// CPUDIAG mode when addr is 5: that address is reserved for a CP/M BDOS
// call and is intercepted rather than actually entered.
func (c *Cpu) execCall(addr uint16) {
	if c.CPUDiag && addr == 5 {
		c.cpmBdosCall()
		return
	}
	c.push16(c.ProgramCounter)
	c.ProgramCounter = addr
}

// rst pushes the return address and jumps to vector, the same stack shape
// CALL uses. Unlike Inject, RST is a real fetched instruction: it always
// executes regardless of the interrupt-enable latch.
func (c *Cpu) rst(vector uint16) {
	c.push16(c.ProgramCounter)
	c.ProgramCounter = vector
}

// RET pops pc unconditionally.
func (c *Cpu) RET() { c.ProgramCounter = c.pop16() }

// CALL pushes the return address and jumps unconditionally (subject to the
// same CPUDIAG BDOS interception as condCall).
func (c *Cpu) CALL() { c.execCall(c.Operand16) }

// JMP jumps unconditionally.
func (c *Cpu) JMP() { c.ProgramCounter = c.Operand16 }

// PCHL copies HL into pc.
func (c *Cpu) PCHL() { c.ProgramCounter = c.HL() }

// SPHL copies HL into sp.
func (c *Cpu) SPHL() { c.StackPointer = c.HL() }

// XTHL exchanges HL with the two bytes on top of the stack.
func (c *Cpu) XTHL() {
	lo := c.Read(c.StackPointer)
	hi := c.Read(c.StackPointer + 1)
	c.Write(c.StackPointer, c.L)
	c.Write(c.StackPointer+1, c.H)
	c.L, c.H = lo, hi
}

// XCHG exchanges DE with HL.
func (c *Cpu) XCHG() {
	c.D, c.H = c.H, c.D
	c.E, c.L = c.L, c.E
}

// IN reads the port named by Operand8 through the host hook and loads the
// result into A.
func (c *Cpu) IN() { c.A = c.ReadPort(c.Operand8) }

// OUT writes A to the port named by Operand8 through the host hook.
func (c *Cpu) OUT() { c.WritePort(c.Operand8, c.A) }

// EI raises the interrupt-enable latch.
func (c *Cpu) EI() { c.InterruptsEnabled = true }

// DI clears the interrupt-enable latch.
func (c *Cpu) DI() { c.InterruptsEnabled = false }

// HLT stops the fetch-decode-execute loop; Step reports this as ErrHalted.
func (c *Cpu) HLT() { c.halted = true }

// SHLD stores HL at the address named by Operand16, low byte first.
func (c *Cpu) SHLD() {
	c.Write(c.Operand16, c.L)
	c.Write(c.Operand16+1, c.H)
}

// LHLD loads HL from the address named by Operand16, low byte first.
func (c *Cpu) LHLD() {
	c.L = c.Read(c.Operand16)
	c.H = c.Read(c.Operand16 + 1)
}

// STA stores A at the address named by Operand16.
func (c *Cpu) STA() { c.Write(c.Operand16, c.A) }

// LDA loads A from the address named by Operand16.
func (c *Cpu) LDA() { c.A = c.Read(c.Operand16) }
