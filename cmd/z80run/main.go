// Command z80run loads a raw Z80 binary into a machine.Machine and either
// runs it for a fixed number of T-states, traces its execution, or drops
// into the interactive bubbletea debugger.
package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"zxspectrum/machine"
	"zxspectrum/z80"
)

var (
	romPath  string
	loadAddr uint16
	startPC  uint16
	cycles   int
	ramSize  int
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "z80run [binary]",
		Short: "Load and run a raw Z80 program against a flat RAM machine",
	}
	root.PersistentFlags().Uint16Var(&loadAddr, "load-addr", 0x8000, "address to load the binary at")
	root.PersistentFlags().Uint16Var(&startPC, "start", 0x8000, "initial program counter")
	root.PersistentFlags().IntVar(&ramSize, "ram", 0x10000, "size in bytes of the flat RAM region, starting at 0")
	root.PersistentFlags().StringVar(&romPath, "rom", "", "optional ROM image to map at 0x0000, read-only, ahead of RAM")

	root.AddCommand(runCmd(), traceCmd(), debugCmd())
	return root
}

func newMachine(path string) (*machine.Machine, error) {
	program, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	m := machine.New()
	ram := machine.NewRAM(0, ramSize)
	m.AddMemory(ram)
	if romPath != "" {
		image, err := os.ReadFile(romPath)
		if err != nil {
			return nil, fmt.Errorf("reading rom %s: %w", romPath, err)
		}
		m.AddMemory(machine.NewROM(0, image))
	}
	ram.Load(loadAddr, program)
	m.CPU().PC = startPC
	return m, nil
}

func runCmd() *cobra.Command {
	var budget int
	cmd := &cobra.Command{
		Use:   "run <binary>",
		Short: "Execute a program for a fixed T-state budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMachine(args[0])
			if err != nil {
				return err
			}
			if err := m.CPU().Run(budget); err != nil {
				return fmt.Errorf("stopped after %d cycles: %w", m.CPU().Cycles, err)
			}
			fmt.Printf("ran %d cycles, PC=%#04x\n", m.CPU().Cycles, m.CPU().PC)
			return nil
		},
	}
	cmd.Flags().IntVar(&budget, "cycles", 1_000_000, "T-states to execute before stopping")
	return cmd
}

func traceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace <binary>",
		Short: "Run a program, dumping register state after every instruction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMachine(args[0])
			if err != nil {
				return err
			}
			m.CPU().SetTracer(z80.TracerFunc(func(e z80.TraceEntry) {
				spew.Dump(e)
			}))
			if err := m.CPU().Run(cycles); err != nil {
				return fmt.Errorf("stopped after %d cycles: %w", m.CPU().Cycles, err)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&cycles, "cycles", 1000, "T-states to execute before stopping")
	return cmd
}

func debugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debug <binary>",
		Short: "Step a program one instruction at a time in an interactive TUI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMachine(args[0])
			if err != nil {
				return err
			}
			window := func(addr uint16) []byte {
				buf := make([]byte, 16)
				for i := range buf {
					buf[i] = m.ReadMemoryByte(addr + uint16(i))
				}
				return buf
			}
			return z80.Debug(m.CPU(), window)
		},
	}
}
