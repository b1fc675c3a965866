package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeULA struct {
	border byte
	lastIn byte
}

func (f *fakeULA) ReadPort(companion byte) byte {
	f.lastIn = companion
	return 0x1f
}

func (f *fakeULA) WritePort(companion byte, value byte) {
	f.border = value & 0x07
}

func TestMemoryByteRoundTrip(t *testing.T) {
	b := NewFakeRAM()
	b.WriteMemoryByte(0x4000, 0x42)
	assert.Equal(t, byte(0x42), b.ReadMemoryByte(0x4000))
}

func TestMemoryWordIsLittleEndian(t *testing.T) {
	b := NewFakeRAM()
	b.WriteMemoryWord(0x8000, 0xbeef)
	assert.Equal(t, byte(0xef), b.ReadMemoryByte(0x8000))
	assert.Equal(t, byte(0xbe), b.ReadMemoryByte(0x8001))
	assert.Equal(t, uint16(0xbeef), b.ReadMemoryWord(0x8000))
}

func TestLoad(t *testing.T) {
	b := NewFakeRAM()
	b.Load(0x0000, []byte{0x00, 0xc3, 0x34, 0x12})
	assert.Equal(t, byte(0xc3), b.ReadMemoryByte(0x0001))
}

func TestUnmappedIO(t *testing.T) {
	b := NewFakeRAM()
	assert.Equal(t, byte(0xff), b.ReadIO(0xfe, 0xff))
	b.WriteIO(0xfe, 0xff, 0x07) // dropped silently, no panic
}

func TestAttachedIODevice(t *testing.T) {
	b := NewFakeRAM()
	ula := &fakeULA{}
	b.Attach(0xfe, ula)

	b.WriteIO(0xfe, 0xff, 0x02)
	assert.Equal(t, byte(0x02), ula.border)

	v := b.ReadIO(0xfe, 0xfe)
	assert.Equal(t, byte(0x1f), v)
	assert.Equal(t, byte(0xfe), ula.lastIn)
}
