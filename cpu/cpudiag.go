package cpu

import "fmt"

// cpmBdosCall emulates the two CP/M BDOS functions the classic cpudiag.bin
// test ROM relies on to report its results, intercepted in place of an
// actual CALL to address 5: C=9 prints the $-terminated string at DE+3;
// C=2 prints the single character in A. Any other function in C is a
// silent no-op — the diagnostic ROM only ever calls these two.
func (c *Cpu) cpmBdosCall() {
	switch c.C {
	case 9:
		addr := c.DE() + 3
		for {
			ch := c.Read(addr)
			if ch == '$' {
				break
			}
			fmt.Fprintf(c.Stdout, "%c", ch)
			addr++
		}
	case 2:
		fmt.Fprintf(c.Stdout, "%c", c.A)
	}
}
