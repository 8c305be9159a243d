package ir

import (
	"math"

	"vane/config"
	"vane/util"
)

func floatBits(v float64) uint64 { return math.Float64bits(v) }

// arrayKey is the map key for the two interning tables (arrays and
// vectors) whose identity depends on a (Type, uint64) pair; both fields are
// already comparable so a plain struct key works without typeKey's
// pointer-formatting trick.
type arrayKey struct {
	elem Type
	n    uint64
}

type qualKey struct {
	base  Type
	quals Qualifier
}

type intConstKey struct {
	typ  Type
	bits uint64
}

// Module is the arena that owns every type, constant, function, and
// global variable reachable from it. Nothing outside Module allocates
// these directly: canonical instances are produced by its Get*/Create*
// methods, which intern structurally-identical requests to the same Go
// pointer (I-T1/I-T2). A Module is not safe for concurrent use; callers
// serialize access themselves, exactly as the core specification's
// Concurrency & Resource Model requires.
type Module struct {
	Name       string
	DataLayout config.DataLayout

	voidType  *VoidType
	labelType *LabelType

	integerTypes map[IntegerType]*IntegerType
	floatTypes   map[uint32]*FloatType
	pointerTypes map[Type]*PointerType
	arrayTypes   map[arrayKey]*ArrayType
	vectorTypes  map[arrayKey]*VectorType
	qualTypes    map[qualKey]*QualifiedType

	namedStructs map[string]*StructType
	anonStructs  map[string]*StructType

	functionTypes map[string]*FunctionType

	constantInts map[intConstKey]*ConstantInt
	constantFPs  map[intConstKey]*ConstantFP

	Functions []*Function
	Globals   []*GlobalVariable

	functionsByName map[string]*Function
	globalsByName   map[string]*GlobalVariable
}

// NewModule creates an empty module named name under the given data
// layout. Use config.DefaultDataLayout() when no layout file was loaded.
func NewModule(name string, layout config.DataLayout) *Module {
	return &Module{
		Name:       name,
		DataLayout: layout,

		voidType:  &VoidType{},
		labelType: &LabelType{},

		integerTypes: make(map[IntegerType]*IntegerType),
		floatTypes:   make(map[uint32]*FloatType),
		pointerTypes: make(map[Type]*PointerType),
		arrayTypes:   make(map[arrayKey]*ArrayType),
		vectorTypes:  make(map[arrayKey]*VectorType),
		qualTypes:    make(map[qualKey]*QualifiedType),

		namedStructs: make(map[string]*StructType),
		anonStructs:  make(map[string]*StructType),

		functionTypes: make(map[string]*FunctionType),

		constantInts: make(map[intConstKey]*ConstantInt),
		constantFPs:  make(map[intConstKey]*ConstantFP),

		functionsByName: make(map[string]*Function),
		globalsByName:   make(map[string]*GlobalVariable),
	}
}

// -----------------------------------------------------------------------------
// Type interning.

// GetVoid returns the module's singleton void type.
func (m *Module) GetVoid() Type { return m.voidType }

// GetLabelType returns the module's singleton label pseudo-type.
func (m *Module) GetLabelType() Type { return m.labelType }

// GetIntegerType returns the canonical integer type of the given width
// and signedness, interning on first request.
func (m *Module) GetIntegerType(width uint32, unsigned bool) *IntegerType {
	key := IntegerType{width: width, unsigned: unsigned}
	if t, ok := m.integerTypes[key]; ok {
		return t
	}
	t := &IntegerType{width: width, unsigned: unsigned}
	m.integerTypes[key] = t
	return t
}

// GetFloatType returns the canonical float type of the given bit width.
func (m *Module) GetFloatType(width uint32) *FloatType {
	if t, ok := m.floatTypes[width]; ok {
		return t
	}
	t := &FloatType{width: width}
	m.floatTypes[width] = t
	return t
}

// GetPointer returns the canonical pointer-to-elem type, sized from the
// module's data layout.
func (m *Module) GetPointer(elem Type) *PointerType {
	if t, ok := m.pointerTypes[elem]; ok {
		return t
	}
	t := &PointerType{elem: elem, ptrBytes: m.DataLayout.PointerBytes}
	m.pointerTypes[elem] = t
	return t
}

// GetArray returns the canonical [n x elem] type.
func (m *Module) GetArray(elem Type, n uint64) *ArrayType {
	key := arrayKey{elem: elem, n: n}
	if t, ok := m.arrayTypes[key]; ok {
		return t
	}
	t := &ArrayType{elem: elem, n: n}
	m.arrayTypes[key] = t
	return t
}

// GetVector returns the canonical <n x elem> type.
func (m *Module) GetVector(elem Type, n uint64) *VectorType {
	key := arrayKey{elem: elem, n: n}
	if t, ok := m.vectorTypes[key]; ok {
		return t
	}
	t := &VectorType{elem: elem, n: n}
	m.vectorTypes[key] = t
	return t
}

// GetQualified returns the canonical qualified wrapping of base.
func (m *Module) GetQualified(base Type, quals Qualifier) *QualifiedType {
	if quals == 0 {
		if q, ok := base.(*QualifiedType); ok {
			return q
		}
	}
	key := qualKey{base: base, quals: quals}
	if t, ok := m.qualTypes[key]; ok {
		return t
	}
	t := &QualifiedType{base: base, quals: quals}
	m.qualTypes[key] = t
	return t
}

// GetFunctionType returns the canonical signature (ret, params...).
// Parameter names are not part of identity, so two requests differing
// only in names return the same instance; the names on the returned
// value are those of whichever request interned it first.
func (m *Module) GetFunctionType(ret Type, params []FunctionParam) *FunctionType {
	types := make([]Type, 0, len(params)+1)
	types = append(types, ret)
	for _, p := range params {
		types = append(types, p.Type)
	}
	key := typeKey(types...)
	if t, ok := m.functionTypes[key]; ok {
		return t
	}
	t := &FunctionType{ret: ret, params: append([]FunctionParam(nil), params...)}
	m.functionTypes[key] = t
	return t
}

// CreateStruct creates a new, opaque named struct type. Calling
// CreateStruct twice with the same name is a StateViolation: struct
// names are unique within a module.
func (m *Module) CreateStruct(name string) *StructType {
	if _, exists := m.namedStructs[name]; exists {
		stateViolation("create_struct", "struct %q already exists", name)
		return nil
	}
	t := &StructType{name: name, opaque: true, emptyAlignDefault: m.DataLayout.StructAlignDefault}
	m.namedStructs[name] = t
	return t
}

// GetNamedStruct looks up a previously created named struct type by
// name. The bool result is false on a lookup miss, which is always a
// first-class absence value, never a panic (§7).
func (m *Module) GetNamedStruct(name string) (*StructType, bool) {
	t, ok := m.namedStructs[name]
	return t, ok
}

// SetBody completes an opaque named struct with its member list,
// computing offsets, size, and alignment under natural (C-like)
// alignment rules: each member starts at the next offset that is a
// multiple of its own alignment, and the struct's final size is rounded
// up to the largest member alignment. An empty struct has no
// member to derive alignment from, so it falls back to the module's
// configured struct_align_default. SetBody is idempotent when called
// again with a member list identical to the one already set; only a
// differing re-set is a StateViolation.
func (t *StructType) SetBody(members []StructMember) {
	if !t.opaque {
		if sameMembers(t.members, members) {
			return
		}
		stateViolation("struct.set_body", "struct %q already has a differing body", t.name)
		return
	}

	offsets := make([]uint64, len(members))
	var offset, maxAlign uint64

	for i, mem := range members {
		align := mem.Type.Align()
		if align == 0 {
			align = 1
		}
		offset = roundUp(offset, align)
		offsets[i] = offset
		offset += mem.Type.Size()
		if align > maxAlign {
			maxAlign = align
		}
	}

	if maxAlign == 0 {
		maxAlign = t.emptyAlignDefault
		if maxAlign == 0 {
			maxAlign = 8
		}
	}

	t.members = append([]StructMember(nil), members...)
	t.offsets = offsets
	t.align = maxAlign
	t.size = roundUp(offset, maxAlign)
	t.opaque = false
}

// sameMembers reports whether two member lists name the same fields in
// the same order with the same (interned, pointer-comparable) types.
func sameMembers(a, b []StructMember) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Type != b[i].Type {
			return false
		}
	}
	return true
}

func roundUp(offset, align uint64) uint64 {
	if align == 0 {
		return offset
	}
	rem := offset % align
	if rem == 0 {
		return offset
	}
	return offset + (align - rem)
}

// GetAnonStruct returns the canonical anonymous ("tuple") struct type
// with exactly this member type sequence. Anonymous structs are always
// fully laid out at creation, never opaque.
func (m *Module) GetAnonStruct(memberTypes []Type) *StructType {
	key := typeKey(memberTypes...)
	if t, ok := m.anonStructs[key]; ok {
		return t
	}
	members := util.Map(memberTypes, func(t Type) StructMember { return StructMember{Type: t} })
	t := &StructType{tuple: true, opaque: true, emptyAlignDefault: m.DataLayout.StructAlignDefault}
	t.SetBody(members)
	m.anonStructs[key] = t
	return t
}

// -----------------------------------------------------------------------------
// Constant interning.

// GetConstantInt returns the canonical integer constant of typ holding
// value, truncated to typ's bit width.
func (m *Module) GetConstantInt(typ *IntegerType, value uint64) *ConstantInt {
	if typ.width < 64 {
		value &= (uint64(1) << typ.width) - 1
	}
	key := intConstKey{typ: typ, bits: value}
	if c, ok := m.constantInts[key]; ok {
		return c
	}
	c := &ConstantInt{bits: value}
	c.typ = typ
	m.constantInts[key] = c
	return c
}

// GetConstantFP returns the canonical float constant of typ holding
// value. Interning compares the IEEE-754 bit pattern of the float64
// representation, so distinct NaN payloads intern separately while
// bit-identical NaN requests always collapse to one constant.
func (m *Module) GetConstantFP(typ *FloatType, value float64) *ConstantFP {
	bits := floatBits(value)
	key := intConstKey{typ: typ, bits: bits}
	if c, ok := m.constantFPs[key]; ok {
		return c
	}
	c := &ConstantFP{bits: bits}
	c.typ = typ
	m.constantFPs[key] = c
	return c
}

// GetConstantString creates a ConstantString for raw. String constants
// are heap-owned, not interned: two identical string literals in source
// yield two distinct constants, matching the ancestor's behavior of
// treating each string literal as its own storage location.
func (m *Module) GetConstantString(raw string) *ConstantString {
	c := &ConstantString{raw: raw}
	c.typ = m.GetArray(m.GetIntegerType(8, true), uint64(len(raw))+1)
	return c
}

// GetConstantPointerNull returns the null pointer constant of the given
// pointer type.
func (m *Module) GetConstantPointerNull(ptr *PointerType) *ConstantPointerNull {
	c := &ConstantPointerNull{}
	c.typ = ptr
	return c
}

// GetConstantAggregateZero returns the zero-initializer placeholder for
// typ, which must be an Array, Vector, or Struct type.
func (m *Module) GetConstantAggregateZero(typ Type) *ConstantAggregateZero {
	c := &ConstantAggregateZero{}
	c.typ = typ
	return c
}

// GetZero returns the canonical "zero value" constant for t, dispatching
// on t's underlying kind: ConstantInt 0 for an integer, ConstantFP 0.0
// for a float, ConstantPointerNull for a pointer, and
// ConstantAggregateZero for an array, vector, or struct. This is the
// single factory a caller reaches for when it needs a default-valued
// constant of an arbitrary type without inspecting that type's kind
// itself.
func (m *Module) GetZero(t Type) Constant {
	switch tt := t.Underlying().(type) {
	case *IntegerType:
		return m.GetConstantInt(tt, 0)
	case *FloatType:
		return m.GetConstantFP(tt, 0.0)
	case *PointerType:
		return m.GetConstantPointerNull(tt)
	case *ArrayType, *VectorType, *StructType:
		return m.GetConstantAggregateZero(tt)
	default:
		typeMismatch("get_zero", "type %s has no zero-constant representation", t)
		return nil
	}
}

// GetConstantArray builds a (non-interned) array constant of elemType
// holding elements in order. Every element's type must equal elemType.
func (m *Module) GetConstantArray(elemType Type, elements []Value) *ConstantArray {
	for i, e := range elements {
		if e.Type() != elemType {
			typeMismatch("constant_array", "element %d has type %s, expected %s", i, e.Type(), elemType)
			return nil
		}
	}
	c := &ConstantArray{}
	c.typ = m.GetArray(elemType, uint64(len(elements)))
	c.initOperands(c, len(elements))
	for i, e := range elements {
		c.SetOperand(i, e)
	}
	return c
}

// GetConstantStruct builds a (non-interned) struct constant matching
// structType's member types in order.
func (m *Module) GetConstantStruct(structType *StructType, fields []Value) *ConstantStruct {
	if len(fields) != len(structType.members) {
		shapeViolation("constant_struct", "field count %d does not match struct %q member count %d", len(fields), structType.name, len(structType.members))
		return nil
	}
	for i, f := range fields {
		if f.Type() != structType.members[i].Type {
			typeMismatch("constant_struct", "field %d has type %s, expected %s", i, f.Type(), structType.members[i].Type)
			return nil
		}
	}
	c := &ConstantStruct{}
	c.typ = structType
	c.initOperands(c, len(fields))
	for i, f := range fields {
		c.SetOperand(i, f)
	}
	return c
}

// -----------------------------------------------------------------------------
// Functions and globals.

// CreateFunction creates and registers a new function named name with
// the given signature. useSRet enables the supplemented hidden-return
// calling convention (see Function.SRetSlot). It is a StateViolation to
// register two functions with the same name.
func (m *Module) CreateFunction(name string, sig *FunctionType, useSRet bool) *Function {
	if _, exists := m.functionsByName[name]; exists {
		stateViolation("create_function", "function %q already exists", name)
		return nil
	}
	f := newFunction(m, name, sig, useSRet)
	m.Functions = append(m.Functions, f)
	m.functionsByName[name] = f
	return f
}

// FindFunction looks up a function by name.
func (m *Module) FindFunction(name string) (*Function, bool) {
	f, ok := m.functionsByName[name]
	return f, ok
}

// CreateGlobalVariable creates and registers a new global variable.
func (m *Module) CreateGlobalVariable(name string, elem Type, isConst bool) *GlobalVariable {
	if _, exists := m.globalsByName[name]; exists {
		stateViolation("create_global_variable", "global %q already exists", name)
		return nil
	}
	gv := newGlobalVariable(m, name, elem, isConst)
	m.Globals = append(m.Globals, gv)
	m.globalsByName[name] = gv
	return gv
}

// FindGlobalVariable looks up a global variable by name.
func (m *Module) FindGlobalVariable(name string) (*GlobalVariable, bool) {
	gv, ok := m.globalsByName[name]
	return gv, ok
}
