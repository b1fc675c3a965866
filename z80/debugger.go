package z80

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
)

// debugModel is a bubbletea model that single-steps a CPU and renders its
// register file, flags, and a window of memory around PC after every key
// press. It is intentionally minimal: a memory dump plus a register dump,
// advanced one instruction at a time.
type debugModel struct {
	cpu    *CPU
	window func(addr uint16) []byte // reads 16 bytes starting at addr, for the page view

	offset uint16
	prevPC uint16
	lastOp []byte
	err    error
}

const pageWidth = 16

func newDebugModel(cpu *CPU, window func(uint16) []byte, offset uint16) debugModel {
	return debugModel{cpu: cpu, window: window, offset: offset, prevPC: cpu.PC}
}

func (m debugModel) Init() tea.Cmd {
	return nil
}

func (m debugModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "j":
			m.prevPC = m.cpu.PC
			var trace TraceEntry
			m.cpu.SetTracer(TracerFunc(func(e TraceEntry) { trace = e }))
			if err := m.cpu.Step(); err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.lastOp = trace.Opcode
		}
	}
	return m, nil
}

func (m debugModel) renderPage(start uint16) string {
	s := fmt.Sprintf("%04x | ", start)
	for i, b := range m.window(start) {
		if start+uint16(i) == m.cpu.PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m debugModel) pageTable() string {
	header := "addr | "
	for b := range pageWidth {
		header += fmt.Sprintf("  %01x  ", b)
	}
	rows := []string{header}
	base := (m.cpu.PC / pageWidth) * pageWidth
	for i := -2; i <= 2; i++ {
		rows = append(rows, m.renderPage(uint16(int32(base)+int32(i)*pageWidth)))
	}
	return strings.Join(rows, "\n")
}

func (m debugModel) status() string {
	r := m.cpu.Registers
	flags := ""
	for _, set := range []bool{r.Sign(), r.Zero(), r.HalfCarry(), r.Parity(), r.Subtract(), r.Carry()} {
		if set {
			flags += "1 "
		} else {
			flags += "0 "
		}
	}
	return fmt.Sprintf(`
PC: %04x (was %04x)
SP: %04x
AF: %04x  BC: %04x  DE: %04x  HL: %04x
IX: %04x  IY: %04x
I: %02x  R: %02x  IM: %d  IFF1: %t  IFF2: %t
cycles: %d
S Z H P N C
%s`,
		r.PC, m.prevPC, r.SP,
		r.AF(), r.BC(), r.DE(), r.HL(),
		r.IX, r.IY,
		r.I, r.R, r.IM, r.IFF1, r.IFF2,
		m.cpu.Cycles,
		flags,
	)
}

func (m debugModel) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.pageTable(), m.status()),
		"",
		spew.Sdump(m.lastOp),
	)
}

// Debug starts an interactive TUI stepping cpu one instruction per
// spacebar/"j" press, rendering a scrolling memory window around PC and a
// full register/flag dump. window reads 16 bytes of memory starting at the
// given (16-byte-aligned) address, for the page view.
func Debug(cpu *CPU, window func(addr uint16) []byte) error {
	final, err := tea.NewProgram(newDebugModel(cpu, window, cpu.PC)).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(debugModel); ok && m.err != nil {
		return m.err
	}
	return nil
}
