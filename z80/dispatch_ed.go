package z80

import "zxspectrum/mask"

// execED runs one ED-prefixed opcode. The official data sheet leaves many
// ED slots undefined (they behave as assorted NOPs on real silicon,
// depending on revision). Every slot in 0x40-0x7F is executed: the
// undocumented ones run as their documented siblings (NEG, RETN, IM, the
// flags-only IN and OUT (C),0), and ED 77/7F as 8-cycle NOPs. Outside that
// range, any slot other than the block instructions is an invalid
// instruction.
func execED(c *CPU, op byte) (int, error) {
	y := (op >> 3) & 7
	z := op & 7
	rpCode := y >> 1
	isAdcOrLoad := y&1 == 1

	if op >= 0x40 && op <= 0x7F {
		switch z {
		case 0: // IN r,(C); y==6 is the undocumented flags-only form
			v := c.Bus.ReadIO(c.C, c.B)
			if y != 6 {
				operandForCode(y).set(c, v)
			}
			c.SetSign(v&0x80 != 0)
			c.SetZero(v == 0)
			c.SetParity(mask.Parity(v))
			c.SetHalfCarry(false)
			c.SetSubtract(false)
			return 12, nil

		case 1: // OUT (C),r; y==6 is the undocumented OUT (C),0 form
			v := byte(0)
			if y != 6 {
				v = operandForCode(y).get(c)
			}
			c.Bus.WriteIO(c.C, c.B, v)
			return 12, nil

		case 2: // SBC/ADC HL,rp
			v, _ := regPairSP(c, rpCode)
			if isAdcOrLoad {
				c.SetHL(c.adc16(c.HL(), v))
			} else {
				c.SetHL(c.sbc16(c.HL(), v))
			}
			return 15, nil

		case 3: // LD (nn),rp / LD rp,(nn)
			addr := c.fetchWord()
			if isAdcOrLoad {
				_, set := regPairSP(c, rpCode)
				set(c.readWord(addr))
			} else {
				v, _ := regPairSP(c, rpCode)
				c.writeWord(addr, v)
			}
			return 20, nil

		case 4: // NEG
			c.neg()
			return 8, nil

		case 5: // RETN / RETI
			c.PC = c.pop()
			c.IFF1 = c.IFF2
			return 14, nil

		case 6: // IM 0/1/2
			switch y {
			case 0, 1, 4, 5:
				c.IM = 0
			case 2, 6:
				c.IM = 1
			default:
				c.IM = 2
			}
			return 8, nil

		case 7:
			switch y {
			case 0: // LD I,A
				c.I = c.A
				return 9, nil
			case 1: // LD R,A
				c.R = c.A
				return 9, nil
			case 2: // LD A,I
				c.A = c.I
				c.setIRFlags()
				return 9, nil
			case 3: // LD A,R
				c.A = c.R
				c.setIRFlags()
				return 9, nil
			case 4: // RRD
				c.rrd()
				return 18, nil
			case 5: // RLD
				c.rld()
				return 18, nil
			default: // ED NOP (y==6,7)
				return 8, nil
			}
		}
	}

	switch op {
	case 0xA0:
		c.ldi()
		return 16, nil
	case 0xA8:
		c.ldd()
		return 16, nil
	case 0xB0:
		c.ldi()
		if c.BC() != 0 {
			c.PC -= 2
			return 21, nil
		}
		return 16, nil
	case 0xB8:
		c.ldd()
		if c.BC() != 0 {
			c.PC -= 2
			return 21, nil
		}
		return 16, nil

	case 0xA1:
		c.cpi()
		return 16, nil
	case 0xA9:
		c.cpd()
		return 16, nil
	case 0xB1:
		c.cpi()
		if c.BC() != 0 && !c.Zero() {
			c.PC -= 2
			return 21, nil
		}
		return 16, nil
	case 0xB9:
		c.cpd()
		if c.BC() != 0 && !c.Zero() {
			c.PC -= 2
			return 21, nil
		}
		return 16, nil

	case 0xA2:
		c.ini()
		return 16, nil
	case 0xAA:
		c.ind()
		return 16, nil
	case 0xB2:
		c.ini()
		if c.B != 0 {
			c.PC -= 2
			return 21, nil
		}
		return 16, nil
	case 0xBA:
		c.ind()
		if c.B != 0 {
			c.PC -= 2
			return 21, nil
		}
		return 16, nil

	case 0xA3:
		c.outi()
		return 16, nil
	case 0xAB:
		c.outd()
		return 16, nil
	case 0xB3:
		c.outi()
		if c.B != 0 {
			c.PC -= 2
			return 21, nil
		}
		return 16, nil
	case 0xBB:
		c.outd()
		if c.B != 0 {
			c.PC -= 2
			return 21, nil
		}
		return 16, nil
	}

	return 0, errUnmapped
}

// setIRFlags applies the S/Z/H/N/P-V side effects of LD A,I and LD A,R: P/V
// mirrors IFF2 (so software can probe whether a maskable interrupt is
// pending right after accepting one), H and N are cleared.
func (c *CPU) setIRFlags() {
	c.setSZ(c.A)
	c.SetHalfCarry(false)
	c.SetSubtract(false)
	c.SetOverflow(c.IFF2)
}

// ldi/ldd implement LDI/LDD: copy (HL) to (DE), step HL/DE, decrement BC.
func (c *CPU) ldi() { c.blockMove(1) }
func (c *CPU) ldd() { c.blockMove(-1) }

func (c *CPU) blockMove(step int16) {
	v := c.readByte(c.HL())
	c.writeByte(c.DE(), v)
	c.SetHL(uint16(int32(c.HL()) + int32(step)))
	c.SetDE(uint16(int32(c.DE()) + int32(step)))
	c.SetBC(c.BC() - 1)
	c.SetHalfCarry(false)
	c.SetSubtract(false)
	c.SetOverflow(c.BC() != 0)
}

func (c *CPU) cpi() { c.blockCompare(1) }
func (c *CPU) cpd() { c.blockCompare(-1) }

func (c *CPU) blockCompare(step int16) {
	v := c.readByte(c.HL())
	result := c.A - v
	c.SetHL(uint16(int32(c.HL()) + int32(step)))
	c.SetBC(c.BC() - 1)
	c.SetHalfCarry(c.A&0x0f < v&0x0f)
	c.SetSubtract(true)
	c.SetOverflow(c.BC() != 0)
	c.setSZ(result)
}

func (c *CPU) ini() { c.blockIn(1) }
func (c *CPU) ind() { c.blockIn(-1) }

func (c *CPU) blockIn(step int16) {
	v := c.Bus.ReadIO(c.C, c.B)
	c.writeByte(c.HL(), v)
	c.SetHL(uint16(int32(c.HL()) + int32(step)))
	c.B--
	c.SetSubtract(true)
	c.SetZero(c.B == 0)
}

func (c *CPU) outi() { c.blockOut(1) }
func (c *CPU) outd() { c.blockOut(-1) }

func (c *CPU) blockOut(step int16) {
	v := c.readByte(c.HL())
	c.Bus.WriteIO(c.C, c.B, v)
	c.SetHL(uint16(int32(c.HL()) + int32(step)))
	c.B--
	c.SetSubtract(true)
	c.SetZero(c.B == 0)
}

// rrd/rld rotate a BCD digit between A's low nibble and (HL), a nibble at a
// time; S/Z/P-V follow A, H and N are cleared, C is untouched.
func (c *CPU) rrd() {
	m := c.readByte(c.HL())
	aLow := c.A & 0x0f
	c.A = c.A&0xf0 | m&0x0f
	c.writeByte(c.HL(), m>>4|aLow<<4)
	c.setSZ(c.A)
	c.SetHalfCarry(false)
	c.SetSubtract(false)
	c.SetParity(mask.Parity(c.A))
}

func (c *CPU) rld() {
	m := c.readByte(c.HL())
	aLow := c.A & 0x0f
	c.A = c.A&0xf0 | m>>4
	c.writeByte(c.HL(), m<<4&0xf0|aLow)
	c.setSZ(c.A)
	c.SetHalfCarry(false)
	c.SetSubtract(false)
	c.SetParity(mask.Parity(c.A))
}
