package z80

// operand8 is a settable 8-bit location: one of the seven general
// registers or an (HL)/(IX+d)/(IY+d) memory cell. Building every
// register-indexed instruction (LD r,r'; ALU a,r; INC r; DEC r; rotate r)
// on top of this indirection is what lets the main, DD and FD pages share
// one implementation instead of three copies.
type operand8 struct {
	get func(c *CPU) byte
	set func(c *CPU, v byte)
}

// operandForCode returns the operand8 a 3-bit register field selects on
// the unprefixed page: 0..5 = B,C,D,E,H,L, 6 = (HL), 7 = A.
func operandForCode(code byte) operand8 {
	switch code & 7 {
	case 0:
		return operand8{func(c *CPU) byte { return c.B }, func(c *CPU, v byte) { c.B = v }}
	case 1:
		return operand8{func(c *CPU) byte { return c.C }, func(c *CPU, v byte) { c.C = v }}
	case 2:
		return operand8{func(c *CPU) byte { return c.D }, func(c *CPU, v byte) { c.D = v }}
	case 3:
		return operand8{func(c *CPU) byte { return c.E }, func(c *CPU, v byte) { c.E = v }}
	case 4:
		return operand8{func(c *CPU) byte { return c.H }, func(c *CPU, v byte) { c.H = v }}
	case 5:
		return operand8{func(c *CPU) byte { return c.L }, func(c *CPU, v byte) { c.L = v }}
	case 6:
		return operand8{
			func(c *CPU) byte { return c.readByte(c.HL()) },
			func(c *CPU, v byte) { c.writeByte(c.HL(), v) },
		}
	default: // 7
		return operand8{func(c *CPU) byte { return c.A }, func(c *CPU, v byte) { c.A = v }}
	}
}

// indexedOperandForCode is operandForCode, except code 6 addresses
// (IX+d)/(IY+d) with a displacement byte fetched lazily (i.e. only when
// the memory operand is actually selected), matching the real instruction
// encoding where the displacement byte is only present for opcodes that
// reference (HL) in the base page.
func indexedOperandForCode(c *CPU, idx IndexMode, code byte) operand8 {
	if code&7 != 6 {
		return operandForCode(code)
	}
	d := c.fetchDisplacement()
	addr := indexedAddr(c, idx, d)
	return operand8{
		func(c *CPU) byte { return c.readByte(addr) },
		func(c *CPU, v byte) { c.writeByte(addr, v) },
	}
}

func indexedAddr(c *CPU, idx IndexMode, d int8) uint16 {
	base := c.IX
	if idx == IndexIY {
		base = c.IY
	}
	return uint16(int32(base) + int32(d))
}

func indexReg(c *CPU, idx IndexMode) uint16 {
	if idx == IndexIY {
		return c.IY
	}
	return c.IX
}

func setIndexReg(c *CPU, idx IndexMode, v uint16) {
	if idx == IndexIY {
		c.IY = v
	} else {
		c.IX = v
	}
}

// regPairSP and regPairAF return the value and setter for the 16-bit
// register pair a 2-bit "dd"/"qq" field selects: 0=BC,1=DE,2=HL,3=SP (dd
// table, regPairSP) or 0=BC,1=DE,2=HL,3=AF (qq table, regPairAF, used by
// PUSH/POP).
func regPairSP(c *CPU, code byte) (uint16, func(uint16)) {
	switch code & 3 {
	case 0:
		return c.BC(), c.SetBC
	case 1:
		return c.DE(), c.SetDE
	case 2:
		return c.HL(), c.SetHL
	default:
		return c.SP, func(v uint16) { c.SP = v }
	}
}

func regPairAF(c *CPU, code byte) (uint16, func(uint16)) {
	switch code & 3 {
	case 0:
		return c.BC(), c.SetBC
	case 1:
		return c.DE(), c.SetDE
	case 2:
		return c.HL(), c.SetHL
	default:
		return c.AF(), c.SetAF
	}
}

// condition evaluates one of the eight 3-bit condition codes used by
// conditional JP/CALL/RET: NZ,Z,NC,C,PO,PE,P,M.
func condition(c *CPU, code byte) bool {
	switch code & 7 {
	case 0:
		return !c.Zero()
	case 1:
		return c.Zero()
	case 2:
		return !c.Carry()
	case 3:
		return c.Carry()
	case 4:
		return !c.Parity()
	case 5:
		return c.Parity()
	case 6:
		return !c.Sign()
	default:
		return c.Sign()
	}
}

// aluOp applies the ALU operation selected by a 3-bit field (the same
// encoding used by opcodes 0x80-0xBF and 0xC6-0xFE) to A and v, storing the
// result in A except for CP (code 7), which only sets flags.
func (c *CPU) aluOp(code byte, v byte) {
	switch code & 7 {
	case 0:
		c.A = c.add8(c.A, v)
	case 1:
		c.A = c.adc8(c.A, v)
	case 2:
		c.A = c.sub8(c.A, v)
	case 3:
		c.A = c.sbc8(c.A, v)
	case 4:
		c.A = c.and8(c.A, v)
	case 5:
		c.A = c.xor8(c.A, v)
	case 6:
		c.A = c.or8(c.A, v)
	default: // CP
		c.sub8(c.A, v)
	}
}
