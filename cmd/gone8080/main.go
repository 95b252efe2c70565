// Command gone8080 is the host shell for the i8080 core: it reads a ROM
// file from disk, drives the fetch-decode-execute loop, and alternates the
// Space Invaders mid-screen/end-of-frame interrupt pair at 60 Hz. The
// shift-register I/O device, video, audio, and input are not implemented
// here — ReadPort/WritePort are wired to ioport.NoOp.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"syscall"
	"time"

	"i8080/cpu"
	"i8080/ioport"
)

const (
	clockSpeed = 2_000_000 // Hz, canonical 8080 clock
	fps        = 60
)

func main() {
	os.Exit(run())
}

func run() int {
	cpudiag := flag.Bool("cpudiag", false, "load the ROM at 0x0100 and apply CPUDIAG patches")
	debug := flag.Bool("debug", false, "enter the interactive step-through debugger")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: gone8080 [--cpudiag] [--debug] <rom>")
		return 6
	}
	romPath := flag.Arg(0)

	data, err := os.ReadFile(romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rom io error: %s\n", err)
		return exitCodeForReadError(err)
	}

	c := cpu.NewCpu()
	// No shift-register device is implemented here (out of scope per the
	// core's own boundary); the host still wires the hooks explicitly
	// through ioport rather than relying on the core's private default.
	c.ReadPort, c.WritePort = ioport.Bind(ioport.NoOp{})

	if *debug {
		c.Debug(data, baseFor(*cpudiag), *cpudiag)
		return 0
	}

	if err := c.LoadROM(data, baseFor(*cpudiag), *cpudiag); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCodeFor(err)
	}

	return loop(c)
}

func baseFor(cpudiag bool) uint16 {
	if cpudiag {
		return 0x0100
	}
	return 0
}

// loop drives Step to completion, injecting the Space Invaders interrupt
// pair every half-frame's worth of cycles, and sleeping proportional to
// the most recently executed instruction's cost, the way the core's own
// host-serialized concurrency model requires.
func loop(c *cpu.Cpu) int {
	const cyclesPerHalfFrame = clockSpeed / fps / 2
	vectors := [2]uint16{0x0008, 0x0010}
	next := 0

	for {
		if err := c.Step(); err != nil {
			if errors.Is(err, cpu.ErrHalted) {
				return 0
			}
			fmt.Fprintln(os.Stderr, err)
			return exitCodeFor(err)
		}

		time.Sleep(time.Duration(c.Cycles) * time.Second / clockSpeed)

		if c.TotalCycles >= cyclesPerHalfFrame {
			c.Inject(vectors[next])
			next = (next + 1) % len(vectors)
			c.TotalCycles = 0
		}
	}
}

func exitCodeFor(err error) int {
	var romErr *cpu.RomIoError
	var opErr *cpu.UnimplementedOpcodeError
	var usageErr *cpu.UsageError
	switch {
	case errors.As(err, &romErr):
		return 4
	case errors.As(err, &opErr):
		return 5
	case errors.As(err, &usageErr):
		return 6
	default:
		return 1
	}
}

// exitCodeForReadError distinguishes an open-class failure (file missing,
// permission denied, path is a directory — exit 1, "ROM open failed") from
// an actual short/partial read once the file was successfully opened (exit
// 3). os.ReadFile reports a failed open as a *fs.PathError with Op "open";
// a failed read, including reading a directory, comes back as a
// *fs.PathError with Op "read", so a directory is recognized by EISDIR.
func exitCodeForReadError(err error) int {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) && (pathErr.Op == "open" || pathErr.Op == "stat") {
		return 1
	}
	if errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) || errors.Is(err, syscall.EISDIR) {
		return 1
	}
	return 3
}
