package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPort struct{ value byte }

func (p *stubPort) ReadPort(byte) byte       { return p.value }
func (p *stubPort) WritePort(byte, byte) {}

func TestRAMRoundTrip(t *testing.T) {
	m := New()
	ram := NewRAM(0x4000, 0x4000)
	m.AddMemory(ram)

	m.WriteMemoryByte(0x4000, 0x42)
	assert.Equal(t, byte(0x42), m.ReadMemoryByte(0x4000))
}

func TestROMIsReadOnly(t *testing.T) {
	m := New()
	rom := NewROM(0x0000, []byte{0xc3, 0x00, 0x00})
	m.AddMemory(rom)

	m.WriteMemoryByte(0x0000, 0xff) // dropped
	assert.Equal(t, byte(0xc3), m.ReadMemoryByte(0x0000))
}

func TestLaterRegionWinsOnOverlap(t *testing.T) {
	m := New()
	m.AddMemory(NewROM(0x0000, []byte{0x00}))
	overlay := NewRAM(0x0000, 1)
	m.AddMemory(overlay)

	m.WriteMemoryByte(0x0000, 0x99)
	assert.Equal(t, byte(0x99), m.ReadMemoryByte(0x0000))
}

func TestUnmappedReadReturnsFF(t *testing.T) {
	m := New()
	assert.Equal(t, byte(0xff), m.ReadMemoryByte(0x9000))
}

func TestStrictModePanicsOnUnmapped(t *testing.T) {
	m := New(WithStrictValidation(true))
	assert.Panics(t, func() { m.ReadMemoryByte(0x9000) })
}

func TestIODeviceRouting(t *testing.T) {
	m := New()
	m.AddIO(0xfe, &stubPort{value: 0x1f})
	assert.Equal(t, byte(0x1f), m.ReadIO(0xfe, 0xff))
}

func TestCPUBoundAndRunnable(t *testing.T) {
	m := New()
	ram := NewRAM(0x0000, 0x10000)
	m.AddMemory(ram)
	ram.Load(0x0000, []byte{0x00, 0x00}) // two NOPs

	require.NotNil(t, m.CPU())
	require.NoError(t, m.CPU().Run(8))
	assert.Equal(t, uint16(0x0002), m.CPU().PC)
}
