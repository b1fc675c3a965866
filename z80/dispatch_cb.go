package z80

// execCB runs one CB-prefixed opcode against a directly addressed register
// or (HL). DD CB/FD CB instructions are decoded separately by
// execIndexBit, since their operand is always (IX+d)/(IY+d) with the
// displacement byte preceding the opcode rather than following it.
func execCB(c *CPU, op byte) (int, error) {
	o := operandForCode(op)
	indirect := op&7 == 6

	switch {
	case op < 0x40: // rotate/shift group, selected by bits 5-3
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
	case op < 0x80: // BIT b,r
		c.bitTest((op>>3)&7, o.get(c))
	case op < 0xC0: // RES b,r
		o.set(c, o.get(c)&^(1<<((op>>3)&7)))
	default: // SET b,r
		o.set(c, o.get(c)|(1<<((op>>3)&7)))
	}

	switch {
	case indirect && op >= 0x40 && op < 0x80: // BIT b,(HL)
		return 12, nil
	case indirect:
		return 15, nil
	default:
		return 8, nil
	}
}
