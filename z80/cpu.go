// Package z80 implements a cycle-accounting interpreter for the Zilog Z80
// microprocessor: the main opcode page plus the ED, CB, DD, FD, DDCB and
// FDCB prefixed pages, three interrupt modes, two alternate register banks,
// and the signed-displacement indexed addressing of IX/IY.
//
// The CPU never touches memory or I/O devices directly; everything crosses
// the bus.Bus contract (bus.FakeRAM is the reference implementation used by
// this package's tests).
package z80

import (
	"zxspectrum/bus"
	"zxspectrum/mask"
)

// CPU is a single Z80 core bound to a Bus for its entire lifetime.
type CPU struct {
	Registers

	Bus bus.Bus

	// Cycles is the monotonic T-state counter. Reset does not touch it;
	// callers that want a fresh count zero it themselves.
	Cycles uint64

	tracer   Tracer
	intQueue []byte
}

// New returns a CPU bound to b, with all registers zeroed (as Reset leaves
// them) and tracing disabled.
func New(b bus.Bus) *CPU {
	c := &CPU{Bus: b}
	c.Reset()
	return c
}

// Reset zeroes every register, clears flags and interrupt-enable
// flip-flops, sets IM=0, and empties the interrupt queue. The cycle counter
// is left untouched, matching the lifecycle this core's contract specifies.
func (c *CPU) Reset() {
	c.Registers.Reset()
	c.intQueue = nil
}

// SetTracer installs t as the per-instruction trace sink. Pass nil (or
// NopTracer{}) to disable tracing.
func (c *CPU) SetTracer(t Tracer) {
	c.tracer = t
}

// fetchByte reads the next instruction byte, preferring the interrupt
// queue over the bus whenever the queue is non-empty. Queue admission is
// already gated on IFF1 by ScheduleInterrupt, so fetch itself only needs to
// check for queued bytes. Queue reads do not advance PC; bus reads do.
func (c *CPU) fetchByte() byte {
	if len(c.intQueue) > 0 {
		b := c.intQueue[0]
		c.intQueue = c.intQueue[1:]
		return b
	}
	b := c.Bus.ReadMemoryByte(c.PC)
	c.PC++
	return b
}

func (c *CPU) readByte(addr uint16) byte        { return c.Bus.ReadMemoryByte(addr) }
func (c *CPU) writeByte(addr uint16, v byte)     { c.Bus.WriteMemoryByte(addr, v) }
func (c *CPU) readWord(addr uint16) uint16      { return c.Bus.ReadMemoryWord(addr) }
func (c *CPU) writeWord(addr uint16, v uint16)  { c.Bus.WriteMemoryWord(addr, v) }

// fetchWord reads an immediate little-endian word following the opcode,
// via two successive fetchByte calls so it also honours the interrupt
// queue.
func (c *CPU) fetchWord() uint16 {
	lo := c.fetchByte()
	hi := c.fetchByte()
	return mask.Word(hi, lo)
}

// fetchDisplacement reads a signed 8-bit displacement byte.
func (c *CPU) fetchDisplacement() int8 {
	return int8(c.fetchByte())
}

// push decrements SP by 2 and writes value at the new SP, low byte first
// (i.e. at the lower address), per the Z80's stack convention.
func (c *CPU) push(value uint16) {
	c.SP -= 2
	c.writeWord(c.SP, value)
}

// pop reads the word at SP and increments SP by 2.
func (c *CPU) pop() uint16 {
	value := c.readWord(c.SP)
	c.SP += 2
	return value
}

// Prefix identifies which dispatch table a decoded opcode belongs to.
type Prefix int

const (
	PrefixNone Prefix = iota
	PrefixED
	PrefixCB
	PrefixDD
	PrefixFD
	PrefixDDCB
	PrefixFDCB
)

func (p Prefix) String() string {
	switch p {
	case PrefixNone:
		return "none"
	case PrefixED:
		return "ED"
	case PrefixCB:
		return "CB"
	case PrefixDD:
		return "DD"
	case PrefixFD:
		return "FD"
	case PrefixDDCB:
		return "DDCB"
	case PrefixFDCB:
		return "FDCB"
	default:
		return "?"
	}
}

// IndexMode selects which 16-bit index register (if any) a DD/FD-prefixed
// instruction substitutes for HL.
type IndexMode int

const (
	IndexNone IndexMode = iota
	IndexIX
	IndexIY
)

// Step fetches, decodes and executes exactly one instruction, then adds its
// T-state cost to Cycles. It returns an *InvalidInstructionError if the
// decoded opcode has no handler, whether its bytes came from memory or from
// a queued interrupt payload. Step returns no interrupt-payload errors;
// ScheduleInterrupt reports those when the interrupt is scheduled.
func (c *CPU) Step() error {
	c.applyPendingEI()

	startPC := c.PC
	opcodeBytes := make([]byte, 0, 4)
	read := func() byte {
		b := c.fetchByte()
		opcodeBytes = append(opcodeBytes, b)
		return b
	}

	b0 := read()

	var (
		cycles int
		err    error
	)

	switch b0 {
	case 0xED:
		op := read()
		cycles, err = execED(c, op)
		if _, ok := err.(*opcodeUnmapped); ok {
			err = &InvalidInstructionError{Prefix: PrefixED, Opcode: op, PC: startPC}
		}

	case 0xCB:
		op := read()
		cycles, err = execCB(c, op)
		if _, ok := err.(*opcodeUnmapped); ok {
			err = &InvalidInstructionError{Prefix: PrefixCB, Opcode: op, PC: startPC}
		}

	case 0xDD, 0xFD:
		idx := IndexIX
		prefix := PrefixDD
		if b0 == 0xFD {
			idx = IndexIY
			prefix = PrefixFD
		}
		b1 := read()
		if b1 == 0xCB {
			d := int8(read())
			op := read()
			doublePrefix := PrefixDDCB
			if idx == IndexIY {
				doublePrefix = PrefixFDCB
			}
			cycles, err = execIndexBit(c, idx, d, op)
			if _, ok := err.(*opcodeUnmapped); ok {
				err = &InvalidInstructionError{Prefix: doublePrefix, Opcode: op, PC: startPC}
			}
		} else {
			cycles, err = execIndex(c, idx, b1)
			if _, ok := err.(*opcodeUnmapped); ok {
				err = &InvalidInstructionError{Prefix: prefix, Opcode: b1, PC: startPC}
			}
		}

	default:
		cycles, err = execMain(c, b0)
		if _, ok := err.(*opcodeUnmapped); ok {
			err = &InvalidInstructionError{Prefix: PrefixNone, Opcode: b0, PC: startPC}
		}
	}

	if err != nil {
		return err
	}

	c.Cycles += uint64(cycles)

	if c.tracer != nil {
		c.tracer.Trace(TraceEntry{
			PC:     startPC,
			Opcode: opcodeBytes,
			Regs:   c.Registers,
			Cycles: c.Cycles,
		})
	}
	return nil
}

// Run executes instructions until the cycle counter has advanced by at
// least n T-states, or an instruction fails.
func (c *CPU) Run(n int) error {
	target := c.Cycles + uint64(n)
	for c.Cycles < target {
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (c *CPU) applyPendingEI() {
	if c.pendingEI {
		c.IFF1 = true
		c.IFF2 = true
		c.pendingEI = false
	}
}

// opcodeUnmapped is an internal sentinel the per-page exec functions return
// when a dispatch slot is empty; Step converts it into the public
// *InvalidInstructionError with prefix/opcode/PC context attached.
type opcodeUnmapped struct{}

func (*opcodeUnmapped) Error() string { return "z80: unmapped opcode" }

var errUnmapped = &opcodeUnmapped{}
