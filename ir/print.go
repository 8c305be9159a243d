package ir

import "strings"

// formatInstruction renders inst the way the read-only textual printer
// contract (core spec §6, "External Interfaces") describes: an
// LLVM-flavored line of the form "%result = op type operands..." for a
// value-producing instruction, or just "op operands..." for one whose
// type is void. The printer never mutates the module it walks; nothing
// here allocates a Use or touches an operand edge.
func formatInstruction(i *Instruction) string {
	var sb strings.Builder

	_, isVoid := i.typ.(*VoidType)
	if !isVoid && i.name != "" {
		sb.WriteString("%")
		sb.WriteString(i.name)
		sb.WriteString(" = ")
	}

	switch i.Opcode {
	case OpICmp:
		sb.WriteString("icmp ")
		sb.WriteString(i.ICmpPred.String())
	case OpFCmp:
		sb.WriteString("fcmp ")
		sb.WriteString(i.FCmpPred.String())
	default:
		sb.WriteString(i.Opcode.String())
	}

	switch i.Opcode {
	case OpBr:
		sb.WriteString(" label %")
		sb.WriteString(i.operands[0].Name())
		return sb.String()
	case OpCondBr:
		sb.WriteString(" i1 ")
		sb.WriteString(operandString(i.operands[0]))
		sb.WriteString(", label %")
		sb.WriteString(i.operands[1].Name())
		sb.WriteString(", label %")
		sb.WriteString(i.operands[2].Name())
		return sb.String()
	case OpRet:
		if len(i.operands) == 0 {
			sb.WriteString(" void")
		} else {
			sb.WriteByte(' ')
			sb.WriteString(i.operands[0].Type().String())
			sb.WriteByte(' ')
			sb.WriteString(operandString(i.operands[0]))
		}
		return sb.String()
	case OpUnreachable:
		return sb.String()
	case OpPhi:
		sb.WriteByte(' ')
		sb.WriteString(i.typ.String())
		sb.WriteByte(' ')
		for n := 0; n < i.NumIncoming(); n++ {
			if n > 0 {
				sb.WriteString(", ")
			}
			sb.WriteByte('[')
			sb.WriteString(operandString(i.IncomingValue(n)))
			sb.WriteString(", %")
			sb.WriteString(i.IncomingBlock(n).Name())
			sb.WriteByte(']')
		}
		return sb.String()
	case OpCall:
		sb.WriteByte(' ')
		sb.WriteString(i.typ.String())
		sb.WriteString(" @")
		sb.WriteString(i.Callee().Name())
		sb.WriteByte('(')
		for idx, a := range i.Args() {
			if idx > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.Type().String())
			sb.WriteByte(' ')
			sb.WriteString(operandString(a))
		}
		sb.WriteByte(')')
		return sb.String()
	case OpLoad:
		sb.WriteByte(' ')
		sb.WriteString(i.typ.String())
		sb.WriteString(", ")
		sb.WriteString(i.operands[0].Type().String())
		sb.WriteByte(' ')
		sb.WriteString(operandString(i.operands[0]))
		return sb.String()
	case OpGetElementPtr:
		sb.WriteByte(' ')
		sb.WriteString(i.GEPSourceType.String())
		sb.WriteString(", ")
		ops := i.Operands()
		sb.WriteString(ops[0].Type().String())
		sb.WriteByte(' ')
		sb.WriteString(operandString(ops[0]))
		for _, idx := range ops[1:] {
			sb.WriteString(", ")
			sb.WriteString(idx.Type().String())
			sb.WriteByte(' ')
			sb.WriteString(operandString(idx))
		}
		return sb.String()
	}

	// Every remaining opcode (binary/unary/bitwise/memory/casts) prints
	// as "op type operand[, operand]...".
	sb.WriteByte(' ')
	ops := i.Operands()
	if len(ops) > 0 {
		sb.WriteString(ops[0].Type().String())
		sb.WriteByte(' ')
	} else if i.Opcode == OpAlloca {
		sb.WriteString(i.typ.(*PointerType).Elem().String())
	}
	for idx, op := range ops {
		if idx > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(operandString(op))
	}
	if i.Opcode.IsCast() {
		sb.WriteString(" to ")
		sb.WriteString(i.typ.String())
	}
	return sb.String()
}

// operandString renders a value the way it appears inline as an
// operand: a constant prints its literal, anything else prints as a
// reference to its name.
func operandString(v Value) string {
	if c, ok := v.(Constant); ok {
		return c.AsString()
	}
	return "%" + v.Name()
}
