package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
)

type model struct {
	cpu *Cpu

	offset uint16 // only for drawing pageTable
	prevPC uint16
	err    error
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m model) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit

		case " ", "j":
			m.prevPC = m.cpu.ProgramCounter
			if err := m.cpu.Step(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// renderPage renders a single page as a line. The current PC is highlighted.
func (m model) renderPage(start uint16) string {
	if start%16 != 0 {
		panic("start must be a multiple of 16")
	}
	s := fmt.Sprintf("%04x | ", start)
	ram := m.cpu.Bus.RAM()
	for i, b := range ram[start : start+16] {
		if start+uint16(i) == m.cpu.ProgramCounter {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) status() string {
	var flags string
	for _, flag := range []bool{
		m.cpu.Flags.S,
		m.cpu.Flags.Z,
		m.cpu.Flags.P,
		m.cpu.Flags.C,
		m.cpu.Flags.AC,
	} {
		if flag {
			flags += "/ "
		} else {
			flags += "  "
		}
	}
	return fmt.Sprintf(`
PC: %04x (%04x)
 A: %02x   BC: %04x
 H: %02x   DE: %04x
 L: %02x   HL: %04x
SP: %04x
Cycles: %d (total %d)
Interrupts enabled: %v  Last: %04x
S Z P C AC
`,
		m.cpu.ProgramCounter,
		m.prevPC,
		m.cpu.A, m.cpu.BC(),
		m.cpu.H, m.cpu.DE(),
		m.cpu.L, m.cpu.HL(),
		m.cpu.StackPointer,
		m.cpu.Cycles, m.cpu.TotalCycles,
		m.cpu.InterruptsEnabled, m.cpu.LastInterrupt,
	) + flags
}

func (m model) pageTable() string {
	header := "page | "
	for b := range 16 {
		header += fmt.Sprintf("  %01x  ", b)
	}

	pages := []string{header}

	offsets := []int{
		0, 16, 32, 48, 64,
		int(m.offset),
		int(m.offset + 16*1),
		int(m.offset + 16*2),
		int(m.offset + 16*3),
		int(m.offset + 16*4),
	}
	for _, i := range offsets {
		pages = append(pages, m.renderPage(uint16(i)))
	}
	return strings.Join(pages, "\n")
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m model) View() string {
	op := Opcodes[m.cpu.Read(m.cpu.ProgramCounter)]
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		spew.Sdump(op),
	)
}

// Debug loads data into memory at the given offset via LoadROM and starts
// an interactive step-through TUI, space/j advancing one Step at a time.
func (c *Cpu) Debug(data []byte, offset uint16, cpudiag bool) {
	if err := c.LoadROM(data, offset, cpudiag); err != nil {
		fmt.Println("Error:", err)
		return
	}
	m, err := tea.NewProgram(model{
		cpu:    c,
		offset: offset,
	}).Run()
	if err != nil {
		panic(err)
	}
	x := m.(model)
	if x.err != nil {
		fmt.Println("Error:", x.err)
	}
}
