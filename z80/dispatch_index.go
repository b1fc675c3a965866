package z80

// execIndex runs one DD- or FD-prefixed opcode. Only the opcodes the
// official Z80 data sheet documents as referencing IX/IY are special-cased
// here; every other opcode behaves exactly as its unprefixed counterpart
// (the prefix byte is simply wasted fetch time on real silicon), so it is
// delegated straight to execMain with 4 T-states added for the prefix.
func execIndex(c *CPU, idx IndexMode, op byte) (int, error) {
	switch op {
	case 0x21: // LD IX,nn
		setIndexReg(c, idx, c.fetchWord())
		return 14, nil
	case 0x22: // LD (nn),IX
		c.writeWord(c.fetchWord(), indexReg(c, idx))
		return 20, nil
	case 0x2A: // LD IX,(nn)
		setIndexReg(c, idx, c.readWord(c.fetchWord()))
		return 20, nil
	case 0x23: // INC IX
		setIndexReg(c, idx, indexReg(c, idx)+1)
		return 10, nil
	case 0x2B: // DEC IX
		setIndexReg(c, idx, indexReg(c, idx)-1)
		return 10, nil
	case 0x09, 0x19, 0x29, 0x39: // ADD IX,rp
		v := indexOperandPair(c, idx, op>>4)
		setIndexReg(c, idx, c.add16(indexReg(c, idx), v))
		return 15, nil
	case 0x34: // INC (IX+d)
		o := indexedOperandForCode(c, idx, 6)
		o.set(c, c.inc8(o.get(c)))
		return 23, nil
	case 0x35: // DEC (IX+d)
		o := indexedOperandForCode(c, idx, 6)
		o.set(c, c.dec8(o.get(c)))
		return 23, nil
	case 0x36: // LD (IX+d),n
		o := indexedOperandForCode(c, idx, 6)
		o.set(c, c.fetchByte())
		return 19, nil
	case 0xE1: // POP IX
		setIndexReg(c, idx, c.pop())
		return 14, nil
	case 0xE5: // PUSH IX
		c.push(indexReg(c, idx))
		return 15, nil
	case 0xE3: // EX (SP),IX
		v := c.readWord(c.SP)
		c.writeWord(c.SP, indexReg(c, idx))
		setIndexReg(c, idx, v)
		return 23, nil
	case 0xE9: // JP (IX)
		c.PC = indexReg(c, idx)
		return 8, nil
	case 0xF9: // LD SP,IX
		c.SP = indexReg(c, idx)
		return 10, nil
	}

	if op >= 0x86 && op <= 0xBE && op&7 == 6 { // ALU A,(IX+d)
		o := indexedOperandForCode(c, idx, 6)
		c.aluOp(op>>3, o.get(c))
		return 19, nil
	}
	if op >= 0x70 && op <= 0x77 && op != 0x76 { // LD (IX+d),r
		o := indexedOperandForCode(c, idx, 6)
		o.set(c, operandForCode(op).get(c))
		return 19, nil
	}
	if op >= 0x40 && op <= 0x7E && op&7 == 6 && op != 0x76 { // LD r,(IX+d)
		o := indexedOperandForCode(c, idx, 6)
		operandForCode(op >> 3).set(c, o.get(c))
		return 19, nil
	}

	cycles, err := execMain(c, op)
	return cycles + 4, err
}

// indexOperandPair reads the 16-bit source of ADD IX,rp: BC, DE, the index
// register itself (rp code 2), or SP.
func indexOperandPair(c *CPU, idx IndexMode, code byte) uint16 {
	switch code & 3 {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return indexReg(c, idx)
	default:
		return c.SP
	}
}

// execIndexBit runs one DDCB/FDCB opcode: displacement d has already been
// consumed by the caller, and op is the final byte, which always addresses
// (IX+d)/(IY+d) — there is no direct-register form on this page.
func execIndexBit(c *CPU, idx IndexMode, d int8, op byte) (int, error) {
	addr := indexedAddr(c, idx, d)
	o := operand8{
		func(c *CPU) byte { return c.readByte(addr) },
		func(c *CPU, v byte) { c.writeByte(addr, v) },
	}

	switch {
	case op < 0x40:
		var result byte
		v := o.get(c)
		switch (op >> 3) & 7 {
		case 0:
			result = c.rlc(v)
		case 1:
			result = c.rrc(v)
		case 2:
			result = c.rl(v)
		case 3:
			result = c.rr(v)
		case 4:
			result = c.sla(v)
		case 5:
			result = c.sra(v)
		case 6:
			result = c.rlc(v) // SLL is undocumented; treated as RLC, a non-goal
		case 7:
			result = c.srl(v)
		}
		o.set(c, result)
		return 23, nil
	case op < 0x80: // BIT b,(I+d)
		c.bitTest((op>>3)&7, o.get(c))
		return 20, nil
	case op < 0xC0: // RES b,(I+d)
		o.set(c, o.get(c)&^(1<<((op>>3)&7)))
		return 23, nil
	default: // SET b,(I+d)
		o.set(c, o.get(c)|(1<<((op>>3)&7)))
		return 23, nil
	}
}
