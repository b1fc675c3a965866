package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordSplit(t *testing.T) {
	assert.Equal(t, Word(0x12, 0x34), uint16(0x1234))
	hi, lo := Split(0x1234)
	assert.Equal(t, hi, byte(0x12))
	assert.Equal(t, lo, byte(0x34))
}

func TestBitHelpers(t *testing.T) {
	assert.True(t, BitSet(0b0000_0001, 0))
	assert.False(t, BitSet(0b0000_0001, 1))
	assert.True(t, BitSet(0b1000_0000, 7))

	assert.Equal(t, SetBit(0, 0), byte(0b0000_0001))
	assert.Equal(t, SetBit(0, 7), byte(0b1000_0000))
	assert.Equal(t, ResetBit(0xff, 0), byte(0b1111_1110))
	assert.Equal(t, ResetBit(0xff, 7), byte(0b0111_1111))
}

func TestParity(t *testing.T) {
	assert.True(t, Parity(0b0000_0011)) // two bits set -> even
	assert.False(t, Parity(0b0000_0111))
	assert.True(t, Parity(0))
}
