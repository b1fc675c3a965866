// Package machine wires a z80.CPU to a collection of address-ranged memory
// regions and port-addressed I/O devices, the way a real computer's
// backplane does: the CPU only ever sees the flat bus.Bus contract, and
// Machine is what decides which physical chip answers a given address.
//
// No logging library appears anywhere in this project's reference corpus,
// so Machine uses the standard library's log/slog for its diagnostics —
// the one ambient concern this module carries on the standard library
// rather than a third-party package (see DESIGN.md).
package machine

import (
	"fmt"
	"log/slog"
	"os"

	"zxspectrum/bus"
	"zxspectrum/z80"
)

// A Region is a chip mapped into some inclusive address range: RAM, ROM, or
// anything else that answers byte reads/writes for addresses in [Start,
// End].
type Region interface {
	Range() (start, end uint16)
	ReadByte(addr uint16) byte
	WriteByte(addr uint16, value byte)
}

// RAM is a read/write Region backed by a plain byte slice.
type RAM struct {
	start uint16
	data  []byte
}

// NewRAM returns a RAM region covering [start, start+len(data)-1].
func NewRAM(start uint16, size int) *RAM {
	return &RAM{start: start, data: make([]byte, size)}
}

func (m *RAM) Range() (uint16, uint16) { return m.start, m.start + uint16(len(m.data)) - 1 }
func (m *RAM) ReadByte(addr uint16) byte {
	return m.data[addr-m.start]
}
func (m *RAM) WriteByte(addr uint16, v byte) {
	m.data[addr-m.start] = v
}

// Load copies program into the region starting at addr (relative to the
// region's own address space, not the region's Start).
func (m *RAM) Load(addr uint16, program []byte) {
	copy(m.data[addr-m.start:], program)
}

// ROM is a Region whose WriteByte is a no-op, for mapping firmware images.
type ROM struct {
	start uint16
	data  []byte
}

// NewROM returns a ROM region initialized from image, mapped starting at
// start.
func NewROM(start uint16, image []byte) *ROM {
	data := make([]byte, len(image))
	copy(data, image)
	return &ROM{start: start, data: data}
}

func (m *ROM) Range() (uint16, uint16) { return m.start, m.start + uint16(len(m.data)) - 1 }
func (m *ROM) ReadByte(addr uint16) byte {
	return m.data[addr-m.start]
}
func (m *ROM) WriteByte(uint16, byte) {} // firmware is immutable

// Machine routes the CPU's bus traffic to whichever Region or IOPort
// claims an address/port, and owns the CPU's reset lifecycle. It
// implements bus.Bus itself, so a *Machine can be handed straight to
// z80.New.
type Machine struct {
	cpu     *z80.CPU
	regions []Region
	ports   map[byte]bus.IOPort
	strict  bool
	log     *slog.Logger
}

// Option configures a Machine at construction time.
type Option func(*Machine)

// WithStrictValidation makes reads/writes to unmapped addresses and ports
// panic instead of silently returning 0xff / being dropped. Off by default,
// matching bus.FakeRAM's non-strict behaviour.
func WithStrictValidation(strict bool) Option {
	return func(m *Machine) { m.strict = strict }
}

// WithLogger installs a custom logger. The default logs to os.Stderr at
// Info level.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) { m.log = l }
}

// New returns a Machine with no memory regions or I/O devices attached and
// a fresh z80.CPU bound to it.
func New(opts ...Option) *Machine {
	m := &Machine{
		ports: make(map[byte]bus.IOPort),
		log:   slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.cpu = z80.New(m)
	return m
}

// CPU returns the Machine's bound CPU.
func (m *Machine) CPU() *z80.CPU { return m.cpu }

// AddMemory maps a Region into the address space. Later regions take
// priority over earlier ones on overlap, mirroring how a real backplane's
// chip-select priority would be wired.
func (m *Machine) AddMemory(r Region) {
	m.regions = append(m.regions, r)
}

// AddIO binds dev to port, replacing whatever device previously answered
// that port.
func (m *Machine) AddIO(port byte, dev bus.IOPort) {
	m.ports[port] = dev
}

// Reset resets the CPU. Memory and attached devices are untouched, mirroring
// a real machine's reset line, which only resets the CPU.
func (m *Machine) Reset() {
	m.cpu.Reset()
}

func (m *Machine) regionFor(addr uint16) Region {
	for i := len(m.regions) - 1; i >= 0; i-- {
		start, end := m.regions[i].Range()
		if addr >= start && addr <= end {
			return m.regions[i]
		}
	}
	return nil
}

func (m *Machine) ReadMemoryByte(addr uint16) byte {
	r := m.regionFor(addr)
	if r == nil {
		m.unmapped("memory read", addr)
		return 0xff
	}
	return r.ReadByte(addr)
}

func (m *Machine) WriteMemoryByte(addr uint16, value byte) {
	r := m.regionFor(addr)
	if r == nil {
		m.unmapped("memory write", addr)
		return
	}
	r.WriteByte(addr, value)
}

func (m *Machine) ReadMemoryWord(addr uint16) uint16 {
	lo := m.ReadMemoryByte(addr)
	hi := m.ReadMemoryByte(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (m *Machine) WriteMemoryWord(addr uint16, value uint16) {
	m.WriteMemoryByte(addr, byte(value))
	m.WriteMemoryByte(addr+1, byte(value>>8))
}

func (m *Machine) ReadIO(port byte, companion byte) byte {
	dev, ok := m.ports[port]
	if !ok {
		m.unmappedPort("IO read", port)
		return 0xff
	}
	return dev.ReadPort(companion)
}

func (m *Machine) WriteIO(port byte, companion byte, value byte) {
	dev, ok := m.ports[port]
	if !ok {
		m.unmappedPort("IO write", port)
		return
	}
	dev.WritePort(companion, value)
}

func (m *Machine) unmapped(op string, addr uint16) {
	msg := fmt.Sprintf("%s to unmapped address %#04x", op, addr)
	if m.strict {
		panic(msg)
	}
	m.log.Debug(msg)
}

func (m *Machine) unmappedPort(op string, port byte) {
	msg := fmt.Sprintf("%s on unmapped port %#02x", op, port)
	if m.strict {
		panic(msg)
	}
	m.log.Debug(msg)
}
