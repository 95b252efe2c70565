// Package cpu implements the core of an Intel 8080 interpreter: register
// file, flags, flat 64 KiB memory, fetch-decode-execute, interrupt
// injection, and cycle accounting. The host shell — ROM file I/O, real-time
// pacing, video/audio/input, and the Space Invaders shift-register I/O
// device — is deliberately out of scope; it is wired in through ReadPort,
// WritePort, and the exit value of Step.
package cpu

import (
	"io"
	"os"

	"i8080/mask"
	"i8080/mem"
)

// Cpu holds the entire architectural state of an Intel 8080: the register
// file, the flag bits, the flat address space, and the control state
// (program counter, stack pointer, cycle accounting, interrupt latch).
type Cpu struct {
	Bus *mem.Bus

	A, B, C, D, E, H, L byte

	Flags struct {
		S, Z, P, C, AC bool
	}

	ProgramCounter uint16
	StackPointer   uint16

	Cycles        byte   // cost of the most recently executed instruction
	TotalCycles   uint64 // accumulated since the last host reset
	LastInterrupt uint16 // vector of the most recently accepted RST, 0 if none

	InterruptsEnabled bool // raised by EI, cleared by DI and by acceptance

	ReadPort  func(port byte) byte
	WritePort func(port byte, value byte)

	CPUDiag bool // diagnostic-mode patches + CP/M BDOS call 5 stub

	// Trace, when non-nil, receives a one-line dump of register/flag state
	// before every Step (flags as the PSW flag byte, f=). Costs nothing when
	// left nil.
	Trace io.Writer

	// Stdout receives CP/M BDOS call-5 output in CPUDIAG mode.
	Stdout io.Writer

	// Operand8 and Operand16 hold the d8/d16/a16 operand decode.go fetched
	// for the instruction currently executing. Unlike A-L, they are
	// transient: valid only for the duration of the Instruction call that
	// follows the fetch.
	Operand8  byte
	Operand16 uint16

	halted bool // set by HLT; cleared on the next Init
}

// NewCpu constructs a Cpu wired to its own fresh Bus and brought to the
// reset state by Init.
func NewCpu() *Cpu {
	c := &Cpu{Bus: &mem.Bus{}}
	c.Init()
	return c
}

// Init zeros every register, flag, pc, sp, and memory byte, and installs
// no-op I/O port stubs. It is the only way to bring a Cpu to a defined
// state; the zero value of Cpu is not ready to Step.
func (c *Cpu) Init() {
	c.A, c.B, c.C, c.D, c.E, c.H, c.L = 0, 0, 0, 0, 0, 0, 0
	c.Flags.S, c.Flags.Z, c.Flags.P, c.Flags.C, c.Flags.AC = false, false, false, false, false
	c.ProgramCounter = 0
	c.StackPointer = 0
	c.Cycles = 0
	c.TotalCycles = 0
	c.LastInterrupt = 0
	c.InterruptsEnabled = false
	c.CPUDiag = false
	c.halted = false
	c.Operand8, c.Operand16 = 0, 0
	if c.Bus == nil {
		c.Bus = &mem.Bus{}
	}
	c.Bus.Reset()
	c.ReadPort = func(byte) byte { return 0 }
	c.WritePort = func(byte, byte) {}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
}

// Read returns the byte at addr.
func (c *Cpu) Read(addr uint16) byte {
	return c.Bus.Read(addr)
}

// Write stores data at addr.
func (c *Cpu) Write(addr uint16, data byte) {
	c.Bus.Write(addr, data)
}

// BC returns the 16-bit pair (B high, C low).
func (c *Cpu) BC() uint16 { return uint16(c.B)<<8 | uint16(c.C) }

// SetBC splits v across B (high) and C (low).
func (c *Cpu) SetBC(v uint16) { c.B, c.C = byte(v>>8), byte(v) }

// DE returns the 16-bit pair (D high, E low).
func (c *Cpu) DE() uint16 { return uint16(c.D)<<8 | uint16(c.E) }

// SetDE splits v across D (high) and E (low).
func (c *Cpu) SetDE(v uint16) { c.D, c.E = byte(v>>8), byte(v) }

// HL returns the 16-bit pair (H high, L low).
func (c *Cpu) HL() uint16 { return uint16(c.H)<<8 | uint16(c.L) }

// SetHL splits v across H (high) and L (low).
func (c *Cpu) SetHL(v uint16) { c.H, c.L = byte(v>>8), byte(v) }

// M is the pseudo-register denoting the byte at address HL. Unlike A-L it
// is never cached across an instruction boundary: every read and write
// goes straight through the Bus.
func (c *Cpu) M() byte { return c.Read(c.HL()) }

// SetM writes v to the address HL points at.
func (c *Cpu) SetM(v byte) { c.Write(c.HL(), v) }

// packPSW packs A and the five flags into the 16-bit PSW PUSH PSW writes to
// the stack: A in the high byte, the flag byte in the low byte with bit
// layout Z=bit0, S=bit1, P=bit2, C=bit3, AC=bit4 (see unpackPSW). The bit
// positions are expressed as mask.I4..I8 rather than shifts, the same way
// the mask package is used everywhere else a byte needs sub-ranges picked
// apart.
func (c *Cpu) packPSW() uint16 {
	var f byte
	if c.Flags.Z {
		f = mask.Set(f, mask.I8, 1)
	}
	if c.Flags.S {
		f = mask.Set(f, mask.I7, 1)
	}
	if c.Flags.P {
		f = mask.Set(f, mask.I6, 1)
	}
	if c.Flags.C {
		f = mask.Set(f, mask.I5, 1)
	}
	if c.Flags.AC {
		f = mask.Set(f, mask.I4, 1)
	}
	return uint16(c.A)<<8 | uint16(f)
}

// unpackPSW reverses packPSW: high byte restores A, low byte restores the
// five flags at their fixed bit positions. Bijective with packPSW, so
// PUSH PSW followed by POP PSW round-trips exactly — unlike the `(psw &
// 0x08) == 0x05` expression this corrects, which could never be true for
// the format packPSW produces.
func (c *Cpu) unpackPSW(psw uint16) {
	c.A = byte(psw >> 8)
	f := byte(psw)
	c.Flags.Z = mask.IsSet(f, mask.I8)
	c.Flags.S = mask.IsSet(f, mask.I7)
	c.Flags.P = mask.IsSet(f, mask.I6)
	c.Flags.C = mask.IsSet(f, mask.I5)
	c.Flags.AC = mask.IsSet(f, mask.I4)
}

// push stores hi at sp-1 and lo at sp-2, then decrements sp by 2 — the
// order every PUSH, CALL, and interrupt injection shares.
func (c *Cpu) push(hi, lo byte) {
	c.StackPointer -= 2
	c.Write(c.StackPointer+1, hi)
	c.Write(c.StackPointer, lo)
}

// push16 pushes v as (high byte, low byte) in the same order as push.
func (c *Cpu) push16(v uint16) {
	c.push(byte(v>>8), byte(v))
}

// pop16 reads a little-endian 16-bit value off the stack (low byte at sp,
// high byte at sp+1) and advances sp by 2.
func (c *Cpu) pop16() uint16 {
	lo := c.Read(c.StackPointer)
	hi := c.Read(c.StackPointer + 1)
	c.StackPointer += 2
	return uint16(hi)<<8 | uint16(lo)
}

// Inject simulates an 8080 RST: if the interrupt-enable latch is raised, it
// pushes pc (in the same format as CALL) and jumps to vector, clearing the
// latch and recording vector as LastInterrupt. If the latch is clear, the
// call is silently ignored — the host may call it at any time.
func (c *Cpu) Inject(vector uint16) {
	if !c.InterruptsEnabled {
		return
	}
	c.push16(c.ProgramCounter)
	c.ProgramCounter = vector
	c.InterruptsEnabled = false
	c.LastInterrupt = vector
}
