package ir

import (
	"fmt"
	"strings"
)

// TypeKind tags the concrete shape of a Type. The instruction and type
// hierarchies from the C++ ancestor of this package used dynamic_cast
// chains to recover a concrete shape from a base pointer; here the shape
// is a tagged sum instead.
type TypeKind int

const (
	VoidKind TypeKind = iota
	IntegerKind
	FloatKind
	PointerKind
	ArrayKind
	VectorKind
	StructKind
	FunctionKind
	QualifiedKind
	LabelKind
)

func (k TypeKind) String() string {
	switch k {
	case VoidKind:
		return "void"
	case IntegerKind:
		return "integer"
	case FloatKind:
		return "float"
	case PointerKind:
		return "pointer"
	case ArrayKind:
		return "array"
	case VectorKind:
		return "vector"
	case StructKind:
		return "struct"
	case FunctionKind:
		return "function"
	case QualifiedKind:
		return "qualified"
	case LabelKind:
		return "label"
	default:
		return "unknown"
	}
}

// Type is a canonical, module-interned type. Two Types describing the same
// structural shape are the same Go pointer value (I-T1/I-T2): compare types
// with ==, never with a deep-equality helper.
type Type interface {
	Kind() TypeKind
	String() string

	// Size returns the size in bytes, or 0 for void, opaque structs, and
	// function types (which are not value types).
	Size() uint64

	// Align returns the required alignment in bytes, or 0 where Size is 0
	// for the same reasons.
	Align() uint64

	// IsSized reports whether Size/Align are meaningful (false for opaque
	// structs and function types).
	IsSized() bool

	// Underlying returns base for a Qualified type and the receiver for
	// every other kind.
	Underlying() Type

	// typeMarker restricts implementations of Type to this package, the
	// same role you-not-fish-yoru's unexported aType() marker plays for its
	// own type lattice.
	typeMarker()
}

// -----------------------------------------------------------------------------

// VoidType is the unique zero-sized, no-bit-width type.
type VoidType struct{}

func (*VoidType) Kind() TypeKind    { return VoidKind }
func (*VoidType) String() string    { return "void" }
func (*VoidType) Size() uint64      { return 0 }
func (*VoidType) Align() uint64     { return 0 }
func (*VoidType) IsSized() bool     { return true }
func (v *VoidType) Underlying() Type { return v }
func (*VoidType) typeMarker()       {}

// -----------------------------------------------------------------------------

// IntegerType is an integer of 1 to 128 bits, tagged signed or unsigned.
// Width 1 models a boolean.
type IntegerType struct {
	width    uint32
	unsigned bool
}

func (t *IntegerType) Width() uint32  { return t.width }
func (t *IntegerType) Unsigned() bool { return t.unsigned }
func (t *IntegerType) Kind() TypeKind { return IntegerKind }

func (t *IntegerType) String() string {
	if t.width == 1 {
		return "i1"
	}
	if t.unsigned {
		return fmt.Sprintf("u%d", t.width)
	}
	return fmt.Sprintf("i%d", t.width)
}

func (t *IntegerType) Size() uint64      { return uint64((t.width + 7) / 8) }
func (t *IntegerType) Align() uint64     { return t.Size() }
func (t *IntegerType) IsSized() bool     { return true }
func (t *IntegerType) Underlying() Type  { return t }
func (t *IntegerType) typeMarker()       {}

// -----------------------------------------------------------------------------

// FloatType is an IEEE-754 float of width 16, 32, 64, or 128 bits.
type FloatType struct {
	width uint32
}

func (t *FloatType) Width() uint32   { return t.width }
func (t *FloatType) Kind() TypeKind  { return FloatKind }
func (t *FloatType) String() string  { return fmt.Sprintf("f%d", t.width) }
func (t *FloatType) Size() uint64    { return uint64(t.width / 8) }
func (t *FloatType) Align() uint64   { return t.Size() }
func (t *FloatType) IsSized() bool   { return true }
func (t *FloatType) Underlying() Type { return t }
func (t *FloatType) typeMarker()     {}

// -----------------------------------------------------------------------------

// PointerType is a fixed-width machine pointer to Elem. It is opaque with
// respect to Elem for layout purposes: its size comes from the module's
// data layout, not from the pointee.
type PointerType struct {
	elem     Type
	ptrBytes uint64
}

func (t *PointerType) Elem() Type      { return t.elem }
func (t *PointerType) Kind() TypeKind  { return PointerKind }
func (t *PointerType) String() string  { return t.elem.String() + "*" }
func (t *PointerType) Size() uint64    { return t.ptrBytes }
func (t *PointerType) Align() uint64   { return t.ptrBytes }
func (t *PointerType) IsSized() bool   { return true }
func (t *PointerType) Underlying() Type { return t }
func (t *PointerType) typeMarker()     {}

// -----------------------------------------------------------------------------

// ArrayType is a fixed-length, contiguous sequence of Elem.
type ArrayType struct {
	elem Type
	n    uint64
}

func (t *ArrayType) Elem() Type      { return t.elem }
func (t *ArrayType) Len() uint64     { return t.n }
func (t *ArrayType) Kind() TypeKind  { return ArrayKind }
func (t *ArrayType) String() string  { return fmt.Sprintf("[%d x %s]", t.n, t.elem.String()) }
func (t *ArrayType) Size() uint64    { return t.n * t.elem.Size() }
func (t *ArrayType) Align() uint64   { return t.elem.Align() }
func (t *ArrayType) IsSized() bool   { return t.elem.IsSized() }
func (t *ArrayType) Underlying() Type { return t }
func (t *ArrayType) typeMarker()     {}

// -----------------------------------------------------------------------------

// VectorType is a fixed-length, packed sequence of Elem with no
// inter-element padding.
type VectorType struct {
	elem Type
	n    uint64
}

func (t *VectorType) Elem() Type      { return t.elem }
func (t *VectorType) Len() uint64     { return t.n }
func (t *VectorType) Kind() TypeKind  { return VectorKind }
func (t *VectorType) String() string  { return fmt.Sprintf("<%d x %s>", t.n, t.elem.String()) }
func (t *VectorType) Size() uint64    { return t.n * t.elem.Size() }
func (t *VectorType) Align() uint64   { return t.elem.Align() }
func (t *VectorType) IsSized() bool   { return t.elem.IsSized() }
func (t *VectorType) Underlying() Type { return t }
func (t *VectorType) typeMarker()     {}

// -----------------------------------------------------------------------------

// StructMember is one named field of a struct's body.
type StructMember struct {
	Name string
	Type Type
}

// StructType is a named or anonymous aggregate of members. A struct
// created via CreateStruct starts opaque (no body, no computed layout);
// SetBody completes it exactly once. Anonymous ("tuple") structs are
// created with a body already known and interned structurally.
type StructType struct {
	name    string
	tuple   bool
	opaque  bool
	members []StructMember
	offsets []uint64
	size    uint64
	align   uint64

	// emptyAlignDefault is the owning module's configured
	// struct_align_default, used by SetBody as the alignment of a
	// struct with no members to derive one from.
	emptyAlignDefault uint64
}

func (t *StructType) Name() string              { return t.name }
func (t *StructType) IsOpaque() bool            { return t.opaque }
func (t *StructType) IsTuple() bool             { return t.tuple }
func (t *StructType) Members() []StructMember   { return t.members }
func (t *StructType) NumMembers() int           { return len(t.members) }
func (t *StructType) Offset(i int) uint64       { return t.offsets[i] }
func (t *StructType) Kind() TypeKind            { return StructKind }
func (t *StructType) Size() uint64              { return t.size }
func (t *StructType) Align() uint64             { return t.align }
func (t *StructType) IsSized() bool             { return !t.opaque }
func (t *StructType) Underlying() Type          { return t }
func (t *StructType) typeMarker()               {}

func (t *StructType) String() string {
	if !t.tuple {
		return "%" + t.name
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range t.members {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(m.Type.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// -----------------------------------------------------------------------------

// FunctionParam is one named parameter of a FunctionType's signature.
// Parameter names do not participate in the type's identity.
type FunctionParam struct {
	Name string
	Type Type
}

// FunctionType is the signature of a function. It is not a value type: it
// has no size and cannot itself be an operand's type, only a Function's
// referenced signature or the pointee of a function-pointer PointerType.
type FunctionType struct {
	ret    Type
	params []FunctionParam
}

func (t *FunctionType) Return() Type              { return t.ret }
func (t *FunctionType) Params() []FunctionParam   { return t.params }
func (t *FunctionType) NumParams() int            { return len(t.params) }
func (t *FunctionType) Kind() TypeKind            { return FunctionKind }
func (t *FunctionType) Size() uint64              { return 0 }
func (t *FunctionType) Align() uint64             { return 0 }
func (t *FunctionType) IsSized() bool             { return false }
func (t *FunctionType) Underlying() Type          { return t }
func (t *FunctionType) typeMarker()               {}

func (t *FunctionType) String() string {
	var sb strings.Builder
	sb.WriteString(t.ret.String())
	sb.WriteString(" (")
	for i, p := range t.params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Type.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// -----------------------------------------------------------------------------

// Qualifier is a bitset of type qualifiers.
type Qualifier uint8

const (
	QualConst Qualifier = 1 << iota
	QualVolatile
	QualRestrict
)

func (q Qualifier) String() string {
	var parts []string
	if q&QualConst != 0 {
		parts = append(parts, "const")
	}
	if q&QualVolatile != 0 {
		parts = append(parts, "volatile")
	}
	if q&QualRestrict != 0 {
		parts = append(parts, "restrict")
	}
	return strings.Join(parts, " ")
}

// QualifiedType transparently wraps Base, forwarding every size/predicate
// query while adding a qualifier bitset to the type's identity.
type QualifiedType struct {
	base  Type
	quals Qualifier
}

func (t *QualifiedType) Base() Type          { return t.base }
func (t *QualifiedType) Qualifiers() Qualifier { return t.quals }
func (t *QualifiedType) Kind() TypeKind      { return QualifiedKind }
func (t *QualifiedType) Size() uint64        { return t.base.Size() }
func (t *QualifiedType) Align() uint64       { return t.base.Align() }
func (t *QualifiedType) IsSized() bool       { return t.base.IsSized() }
func (t *QualifiedType) Underlying() Type    { return t.base }
func (t *QualifiedType) typeMarker()         {}

func (t *QualifiedType) String() string {
	if t.quals == 0 {
		return t.base.String()
	}
	return t.quals.String() + " " + t.base.String()
}

// -----------------------------------------------------------------------------

// LabelType is the pseudo-type of a BasicBlock used as a branch target
// operand. It carries no size: a label is never a first-class storable
// value, only an operand of a terminator or a Phi incoming pair.
type LabelType struct{}

func (*LabelType) Kind() TypeKind    { return LabelKind }
func (*LabelType) String() string    { return "label" }
func (*LabelType) Size() uint64      { return 0 }
func (*LabelType) Align() uint64     { return 0 }
func (*LabelType) IsSized() bool     { return false }
func (l *LabelType) Underlying() Type { return l }
func (*LabelType) typeMarker()       {}

// -----------------------------------------------------------------------------

// typeKey builds an identity-based cache key from already-canonical Types,
// using each type's interned pointer address rather than its textual form.
// This is what lets FunctionType and anonymous StructType interning use a
// variable-length signature as a map key even though Go slices are not
// themselves comparable.
func typeKey(types ...Type) string {
	var sb strings.Builder
	for i, t := range types {
		if i > 0 {
			sb.WriteByte(',')
		}
		if t == nil {
			sb.WriteString("_")
			continue
		}
		fmt.Fprintf(&sb, "%p", t)
	}
	return sb.String()
}
