package z80

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// U1: after Reset, every register and flag reads zero/false.
func TestPropertyResetZeroesEverything(t *testing.T) {
	c, _ := newTestCPU()
	c.A, c.B, c.SP, c.PC, c.IX = 0xff, 0xff, 0xffff, 0xffff, 0xffff
	c.IFF1, c.IFF2 = true, true
	c.Reset()

	assert.Equal(t, uint16(0), c.PC)
	assert.Equal(t, uint16(0), c.SP)
	assert.Equal(t, byte(0), c.A)
	assert.False(t, c.IFF1)
	assert.False(t, c.IFF2)
	assert.False(t, c.Carry())
}

// U2: register-pair views round-trip, high/low split correctly.
func TestPropertyRegisterPairRoundTrip(t *testing.T) {
	var r Registers
	for _, w := range []uint16{0x0000, 0xffff, 0x1234, 0xbeef} {
		r.SetBC(w)
		assert.Equal(t, w, r.BC())
		assert.Equal(t, byte(w>>8), r.B)
		assert.Equal(t, byte(w), r.C)
	}
}

// U3: the cycle counter strictly increases after any step.
func TestPropertyCyclesStrictlyIncrease(t *testing.T) {
	c, b := newTestCPU()
	b.Load(0x0000, []byte{0x00})
	before := c.Cycles
	require.NoError(t, c.Step())
	assert.Greater(t, c.Cycles, before)
}

// U4: LD r,r' costs 4 T-states; either operand through (HL) costs 7.
func TestPropertyLDTiming(t *testing.T) {
	c, b := newTestCPU()
	b.Load(0x0000, []byte{0x41}) // LD B,C
	require.NoError(t, c.Step())
	assert.Equal(t, 4, int(c.Cycles))

	c2, b2 := newTestCPU()
	c2.SetHL(0x8000)
	b2.Load(0x0000, []byte{0x46}) // LD B,(HL)
	require.NoError(t, c2.Step())
	assert.Equal(t, 7, int(c2.Cycles))
}

// U5: LD r,n followed by reading r back yields n, for r in B, C, D, E and A.
func TestPropertyLDImmediateRoundTrip(t *testing.T) {
	opcodes := map[byte]func(*CPU) byte{
		0x06: func(c *CPU) byte { return c.B },
		0x0e: func(c *CPU) byte { return c.C },
		0x16: func(c *CPU) byte { return c.D },
		0x1e: func(c *CPU) byte { return c.E },
		0x3e: func(c *CPU) byte { return c.A },
	}
	for op, get := range opcodes {
		c, b := newTestCPU()
		b.Load(0x0000, []byte{op, 0x7a})
		require.NoError(t, c.Step())
		assert.Equal(t, byte(0x7a), get(c))
	}
}

// U6: PUSH/POP are mutual inverses.
func TestPropertyPushPopInverse(t *testing.T) {
	c, _ := newTestCPU()
	c.SP = 0xfffe
	c.SetBC(0xcafe)
	c.push(c.BC())
	c.SetBC(0)
	c.SetBC(c.pop())
	assert.Equal(t, uint16(0xcafe), c.BC())
	assert.Equal(t, uint16(0xfffe), c.SP)
}

// U7: EX AF,AF' and EXX are involutions.
func TestPropertyExchangesAreInvolutions(t *testing.T) {
	var r Registers
	r.SetAF(0x1234)
	orig := r.AF()
	r.ExchangeAF()
	r.ExchangeAF()
	assert.Equal(t, orig, r.AF())

	r.SetBC(0xaabb)
	orig = r.BC()
	r.ExchangeX()
	r.ExchangeX()
	assert.Equal(t, orig, r.BC())
}

// U8: JP cc,nn costs a constant 10 T-states regardless of whether it's taken.
func TestPropertyJPConditionalConstantTiming(t *testing.T) {
	for _, z := range []bool{true, false} {
		c, b := newTestCPU()
		c.SetZero(z)
		b.Load(0x0000, []byte{0xca, 0x00, 0x10}) // JP Z,0x1000
		require.NoError(t, c.Step())
		assert.Equal(t, 10, int(c.Cycles))
		if z {
			assert.Equal(t, uint16(0x1000), c.PC)
		} else {
			assert.Equal(t, uint16(0x0003), c.PC)
		}
	}
}

// U9: CALL nn followed by RET restores PC and SP.
func TestPropertyCallRetRestoresState(t *testing.T) {
	c, b := newTestCPU()
	c.SP = 0xfffe
	b.Load(0x0000, []byte{0xcd, 0x00, 0x10})
	b.Load(0x1000, []byte{0xc9})

	require.NoError(t, c.Step())
	require.NoError(t, c.Step())
	assert.Equal(t, uint16(0x0003), c.PC)
	assert.Equal(t, uint16(0xfffe), c.SP)
}

// U10: parity flag after a logical op equals 1 iff the result's bit count is even.
func TestPropertyParityMatchesBitCount(t *testing.T) {
	c, _ := newTestCPU()
	c.A = 0x0f // 4 bits set -> even -> P/V=1
	c.A = c.or8(c.A, 0x00)
	assert.True(t, c.Parity())

	c.A = 0x07 // 3 bits set -> odd -> P/V=0
	c.A = c.or8(c.A, 0x00)
	assert.False(t, c.Parity())
}

// U11: block-move identity for non-overlapping regions.
func TestPropertyBlockMoveIdentity(t *testing.T) {
	c, b := newTestCPU()
	src := []byte{1, 2, 3, 4, 5}
	b.Load(0x2000, src)
	c.SetHL(0x2000)
	c.SetDE(0x3000)
	c.SetBC(uint16(len(src)))
	b.Load(0x0000, []byte{0xed, 0xb0})

	for {
		require.NoError(t, c.Step())
		if c.BC() == 0 {
			break
		}
	}

	for i := range src {
		assert.Equal(t, src[i], b.ReadMemoryByte(0x3000+uint16(i)))
	}
	assert.Equal(t, uint16(0x2000+uint16(len(src))), c.HL())
	assert.Equal(t, uint16(0x3000+uint16(len(src))), c.DE())
	assert.Equal(t, uint16(0), c.BC())
}
