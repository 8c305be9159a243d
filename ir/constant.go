package ir

import (
	"fmt"
	"math"
	"strings"
)

// Constant is a Value that is immutable after creation and owned by the
// module that produced it, never by a function or block.
type Constant interface {
	Value
	// AsString returns the LLVM-style textual form of the constant,
	// mirroring the original source's Constant::as_string virtual.
	AsString() string
	constMarker()
}

// -----------------------------------------------------------------------------

// ConstantInt is an interned integer, boolean, or pointer-sized immediate.
// Two requests for the same (type, bit pattern) pair yield the same
// pointer. The backing bit pattern is capped at 64 bits: IntegerType
// widths beyond 64 (up to 128, per the type system) can be represented
// as a type, but this package has no constant literal wide enough to
// populate one, matching the {1,8,16,32,64} convention the printer and
// builder convenience constructors assume.
type ConstantInt struct {
	valueState
	bits uint64 // raw bit pattern, truncated to the type's width
}

func (c *ConstantInt) constMarker() {}

// ZExtValue returns the bit pattern interpreted as unsigned.
func (c *ConstantInt) ZExtValue() uint64 { return c.bits }

// SExtValue returns the bit pattern sign-extended from the type's width.
func (c *ConstantInt) SExtValue() int64 {
	it := c.typ.(*IntegerType)
	if it.width >= 64 {
		return int64(c.bits)
	}
	shift := 64 - it.width
	return int64(c.bits<<shift) >> shift
}

func (c *ConstantInt) AsString() string {
	if c.typ.(*IntegerType).width == 1 {
		if c.bits != 0 {
			return "true"
		}
		return "false"
	}
	return fmt.Sprintf("%d", c.SExtValue())
}

// ZExtTo returns the interned constant of target holding this constant's
// bit pattern zero-extended (or truncated, if target is narrower) to
// target's width. Unlike ZExtValue, which only extracts a Go scalar,
// this yields a new constant in target's type, interned through m the
// same way any other Module.GetConstantInt request is.
func (c *ConstantInt) ZExtTo(m *Module, target *IntegerType) *ConstantInt {
	return m.GetConstantInt(target, c.ZExtValue())
}

// SExtTo returns the interned constant of target holding this constant's
// value sign-extended (or truncated, if target is narrower) to target's
// width.
func (c *ConstantInt) SExtTo(m *Module, target *IntegerType) *ConstantInt {
	return m.GetConstantInt(target, uint64(c.SExtValue()))
}

// -----------------------------------------------------------------------------

// ConstantFP is an interned floating-point immediate. Interning compares
// the IEEE-754 bit pattern, not IEEE equality: two NaN requests with an
// identical bit pattern intern to the same constant, matching the
// bitwise-equal ConstantFP key the ancestor C++ header used (its
// DoublePairHash/DoublePairEqual pair, implemented with memcmp precisely
// so NaN != NaN under IEEE rules did not fracture interning).
type ConstantFP struct {
	valueState
	bits uint64 // math.Float64bits(value)
}

func (c *ConstantFP) constMarker() {}

// Value returns the constant's value as a float64, regardless of the
// type's declared width.
func (c *ConstantFP) Value() float64 { return math.Float64frombits(c.bits) }

func (c *ConstantFP) AsString() string {
	return fmt.Sprintf("%g", c.Value())
}

// -----------------------------------------------------------------------------

// ConstantArray is a heap-owned (non-interned) aggregate of Elements, all
// matching the array type's element type.
type ConstantArray struct {
	valueState
	opBase
}

func (c *ConstantArray) constMarker() {}

func (c *ConstantArray) Elements() []Value { return c.Operands() }

func (c *ConstantArray) AsString() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range c.Operands() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.Type().String())
		sb.WriteByte(' ')
		sb.WriteString(constString(e))
	}
	sb.WriteByte(']')
	return sb.String()
}

// -----------------------------------------------------------------------------

// ConstantStruct is a heap-owned (non-interned) aggregate whose element
// types must match the struct type's member types in order.
type ConstantStruct struct {
	valueState
	opBase
}

func (c *ConstantStruct) constMarker() {}

func (c *ConstantStruct) Fields() []Value { return c.Operands() }

func (c *ConstantStruct) AsString() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for i, e := range c.Operands() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.Type().String())
		sb.WriteByte(' ')
		sb.WriteString(constString(e))
	}
	sb.WriteString(" }")
	return sb.String()
}

// -----------------------------------------------------------------------------

// ConstantString is a NUL-terminated byte array constant. Its declared
// type is an Array of i8 (including the trailing NUL); escape sequences
// are normalized on ingest per the printer's string-escape set.
type ConstantString struct {
	valueState
	raw string // decoded bytes, without the trailing NUL
}

func (c *ConstantString) constMarker() {}

// Value returns the decoded byte content, without the trailing NUL that
// is part of the declared array type but not part of the logical string.
func (c *ConstantString) Value() string { return c.raw }

func (c *ConstantString) AsString() string {
	return "c\"" + EscapeString(c.raw) + "\\00\""
}

// EscapeString applies the printer's escape set: \n \r \t \\ \" \0, and
// \xHH for other non-printable bytes.
func EscapeString(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch b {
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case 0:
			sb.WriteString(`\0`)
		default:
			if b < 0x20 || b >= 0x7f {
				fmt.Fprintf(&sb, `\x%02X`, b)
			} else {
				sb.WriteByte(b)
			}
		}
	}
	return sb.String()
}

// -----------------------------------------------------------------------------

// ConstantPointerNull is the null pointer constant of a given pointer
// type.
type ConstantPointerNull struct {
	valueState
}

func (c *ConstantPointerNull) constMarker()   {}
func (c *ConstantPointerNull) AsString() string { return "null" }

// ConstantAggregateZero is the zero-initializer placeholder for an Array,
// Vector, or Struct type.
type ConstantAggregateZero struct {
	valueState
}

func (c *ConstantAggregateZero) constMarker()     {}
func (c *ConstantAggregateZero) AsString() string { return "zeroinitializer" }

// -----------------------------------------------------------------------------

// constString renders v the way an aggregate initializer element is
// rendered: a Constant prints its literal form, anything else (an
// instruction operand slipped in by a caller building malformed IR) falls
// back to its name.
func constString(v Value) string {
	if c, ok := v.(Constant); ok {
		return c.AsString()
	}
	return "%" + v.Name()
}
