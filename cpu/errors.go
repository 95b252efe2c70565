package cpu

import "fmt"

// RomIoError reports a failure loading a ROM image: the file could not be
// opened or read, or the image does not fit in the 64 KiB address space at
// the requested base.
type RomIoError struct {
	Reason string
}

func (e *RomIoError) Error() string {
	return fmt.Sprintf("rom io error: %s", e.Reason)
}

// UnimplementedOpcodeError reports that Step fetched a byte with no decoder
// entry — either a genuinely unused 8080 encoding, or one this core does
// not implement. PC is the address the offending byte was fetched from.
type UnimplementedOpcodeError struct {
	Opcode byte
	PC     uint16
}

func (e *UnimplementedOpcodeError) Error() string {
	return fmt.Sprintf("unimplemented opcode 0x%02X at pc 0x%04X", e.Opcode, e.PC)
}

// UsageError reports a host-level argument problem (CLI invoked wrong).
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("usage error: %s", e.Reason)
}

// ErrHalted is returned by Step when the core executes HLT (0x76) or the
// CPUDIAG synthetic halt marker (mem[0]=0x27, installed by LoadROM in
// diagnostic mode). It is a sentinel, not a typed error, because it carries
// no diagnostic payload beyond "the program intentionally stopped" — the
// host decides whether that is success or failure.
var ErrHalted = fmt.Errorf("cpu halted")
