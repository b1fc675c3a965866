package z80

// A Tracer receives one TraceEntry per executed instruction. It is a
// pure observer: the CPU never consults it to make decisions, and a Tracer
// must not block the caller for long since Step calls it synchronously.
//
// Tracing is off unless a Tracer is explicitly installed with CPU.SetTracer;
// the zero-value CPU traces nothing.
type Tracer interface {
	Trace(TraceEntry)
}

// TraceEntry is a snapshot taken immediately after an instruction executes.
type TraceEntry struct {
	PC      uint16 // address the instruction was fetched from
	Opcode  []byte // raw bytes of the instruction, prefixes included
	Regs    Registers
	Cycles  uint64 // cumulative T-states after this instruction
}

// NopTracer discards every entry. Installing it has the same effect as the
// nil Tracer a new CPU starts with.
type NopTracer struct{}

func (NopTracer) Trace(TraceEntry) {}

// TracerFunc adapts a plain function to the Tracer interface.
type TracerFunc func(TraceEntry)

func (f TracerFunc) Trace(e TraceEntry) { f(e) }
