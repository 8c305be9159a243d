package ir

import (
	"fmt"
)

// Opcode tags the operation an Instruction performs. The instruction
// hierarchy of the C++ ancestor (BinaryInst, ICmpInst, GetElementPtrInst,
// CastInst, ...) is collapsed here into one Instruction type carrying an
// Opcode plus whichever payload fields that opcode uses — a sum type over
// Opcode, per the redesign notes.
type Opcode int

const (
	// Binary arithmetic.
	OpAdd Opcode = iota
	OpSub
	OpMul
	OpUDiv
	OpSDiv
	OpURem
	OpSRem

	// Unary.
	OpNeg
	OpNot
	OpFNeg
	OpBitNot

	// Bitwise / shifts.
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpLShr
	OpAShr

	// Memory.
	OpAlloca
	OpLoad
	OpStore

	// Address.
	OpGetElementPtr

	// Comparison.
	OpICmp
	OpFCmp

	// Control flow.
	OpBr
	OpCondBr
	OpRet
	OpUnreachable

	// SSA merge.
	OpPhi

	// Call.
	OpCall

	// Casts.
	OpZExt
	OpSExt
	OpTrunc
	OpSIToFP
	OpUIToFP
	OpFPToSI
	OpFPToUI
	OpFPExt
	OpFPTrunc
	OpPtrToInt
	OpIntToPtr
	OpBitCast
)

var opcodeNames = [...]string{
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpUDiv: "udiv", OpSDiv: "sdiv",
	OpURem: "urem", OpSRem: "srem",
	OpNeg: "neg", OpNot: "not", OpFNeg: "fneg", OpBitNot: "bitnot",
	OpBitAnd: "and", OpBitOr: "or", OpBitXor: "xor",
	OpShl: "shl", OpLShr: "lshr", OpAShr: "ashr",
	OpAlloca: "alloca", OpLoad: "load", OpStore: "store",
	OpGetElementPtr: "getelementptr",
	OpICmp:          "icmp", OpFCmp: "fcmp",
	OpBr: "br", OpCondBr: "br", OpRet: "ret", OpUnreachable: "unreachable",
	OpPhi: "phi", OpCall: "call",
	OpZExt: "zext", OpSExt: "sext", OpTrunc: "trunc",
	OpSIToFP: "sitofp", OpUIToFP: "uitofp",
	OpFPToSI: "fptosi", OpFPToUI: "fptoui",
	OpFPExt: "fpext", OpFPTrunc: "fptrunc",
	OpPtrToInt: "ptrtoint", OpIntToPtr: "inttoptr", OpBitCast: "bitcast",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) && opcodeNames[op] != "" {
		return opcodeNames[op]
	}
	return fmt.Sprintf("opcode(%d)", int(op))
}

// IsTerminator reports whether op ends a basic block. Exactly one
// terminator instruction may appear in a non-empty block (I-B1).
func (op Opcode) IsTerminator() bool {
	switch op {
	case OpBr, OpCondBr, OpRet, OpUnreachable:
		return true
	default:
		return false
	}
}

// IsCast reports whether op is one of the conversion opcodes.
func (op Opcode) IsCast() bool {
	switch op {
	case OpZExt, OpSExt, OpTrunc, OpSIToFP, OpUIToFP, OpFPToSI, OpFPToUI,
		OpFPExt, OpFPTrunc, OpPtrToInt, OpIntToPtr, OpBitCast:
		return true
	default:
		return false
	}
}

// -----------------------------------------------------------------------------

// ICmpPredicate is the comparison relation of an integer/pointer ICmp.
type ICmpPredicate int

const (
	ICmpEQ ICmpPredicate = iota
	ICmpNE
	ICmpSLT
	ICmpSLE
	ICmpSGT
	ICmpSGE
	ICmpULT
	ICmpULE
	ICmpUGT
	ICmpUGE
)

var icmpNames = [...]string{"eq", "ne", "slt", "sle", "sgt", "sge", "ult", "ule", "ugt", "uge"}

func (p ICmpPredicate) String() string { return icmpNames[p] }

// FCmpPredicate is the comparison relation of a float FCmp. All variants
// specified here are ordered comparisons (NaN operands make the result
// false), matching the "ordered variants" the core specification names.
type FCmpPredicate int

const (
	FCmpOEQ FCmpPredicate = iota
	FCmpONE
	FCmpOLT
	FCmpOLE
	FCmpOGT
	FCmpOGE
)

var fcmpNames = [...]string{"oeq", "one", "olt", "ole", "ogt", "oge"}

func (p FCmpPredicate) String() string { return fcmpNames[p] }

// -----------------------------------------------------------------------------

// Instruction is a User with an Opcode, a parent BasicBlock, and intrusive
// prev/next links ordering it inside that block's instruction list.
type Instruction struct {
	valueState
	opBase

	Opcode Opcode
	Parent *BasicBlock

	prev, next *Instruction

	// Populated only for the opcodes that use them.
	ICmpPred      ICmpPredicate
	FCmpPred      FCmpPredicate
	GEPSourceType Type            // base type GetElementPtr walks from
	GEPIndices    []int64         // constant index path, when statically known (-1 = dynamic operand)
	PhiBlocks     []*BasicBlock   // parallel to Operands() for OpPhi
	CallSignature *FunctionType   // callee's signature, for OpCall
}

// newInstruction allocates an Instruction with numOperands operand slots
// already registered against itself.
func newInstruction(op Opcode, typ Type, numOperands int) *Instruction {
	inst := &Instruction{Opcode: op}
	inst.typ = typ
	inst.initOperands(inst, numOperands)
	return inst
}

// String renders the instruction the way the read-only printer contract
// (core spec §6) describes: "%r = <op> <type> <operands...>" or, for
// void-result opcodes, just the operation and its operands.
func (i *Instruction) String() string {
	return formatInstruction(i)
}

// IsTerminator reports whether this instruction ends its block.
func (i *Instruction) IsTerminator() bool { return i.Opcode.IsTerminator() }

// Prev returns the previous instruction in program order, or nil if i is
// the first instruction of its block.
func (i *Instruction) Prev() *Instruction { return i.prev }

// Next returns the next instruction in program order, or nil if i is the
// last instruction of its block.
func (i *Instruction) Next() *Instruction { return i.next }

// -----------------------------------------------------------------------------
// Binary / unary / bitwise constructors. These are the low-level,
// unattached constructors; Builder wraps each with cursor management
// and additional convenience but performs the same validation calls.

var integerBinaryOps = map[Opcode]bool{
	OpAdd: true, OpSub: true, OpMul: true, OpUDiv: true, OpSDiv: true,
	OpURem: true, OpSRem: true,
	OpBitAnd: true, OpBitOr: true, OpBitXor: true,
	OpShl: true, OpLShr: true, OpAShr: true,
}

var floatBinaryOps = map[Opcode]bool{OpAdd: true, OpSub: true, OpMul: true}

// NewBinary creates a binary arithmetic/bitwise instruction. lhs and rhs
// must share an identical type, and that type must be compatible with
// op's domain (integer-only ops on a Float type is a TypeMismatch).
func NewBinary(op Opcode, lhs, rhs Value) *Instruction {
	if lhs.Type() != rhs.Type() {
		typeMismatch("binary."+op.String(), "operand types differ: %s vs %s", lhs.Type(), rhs.Type())
		return nil
	}
	kind := lhs.Type().Kind()
	switch kind {
	case IntegerKind:
		if !integerBinaryOps[op] {
			typeMismatch("binary."+op.String(), "opcode does not apply to integer operands")
			return nil
		}
	case FloatKind:
		if !floatBinaryOps[op] {
			typeMismatch("binary."+op.String(), "opcode does not apply to float operands")
			return nil
		}
	default:
		typeMismatch("binary."+op.String(), "operand type %s is not arithmetic", lhs.Type())
		return nil
	}
	inst := newInstruction(op, lhs.Type(), 2)
	inst.SetOperand(0, lhs)
	inst.SetOperand(1, rhs)
	return inst
}

// NewUnary creates a unary arithmetic/bitwise instruction.
func NewUnary(op Opcode, operand Value) *Instruction {
	kind := operand.Type().Kind()
	switch op {
	case OpNeg, OpNot, OpBitNot:
		if kind != IntegerKind {
			typeMismatch("unary."+op.String(), "opcode requires an integer operand, got %s", operand.Type())
			return nil
		}
	case OpFNeg:
		if kind != FloatKind {
			typeMismatch("unary."+op.String(), "opcode requires a float operand, got %s", operand.Type())
			return nil
		}
	default:
		shapeViolation("unary", "opcode %s is not unary", op)
		return nil
	}
	inst := newInstruction(op, operand.Type(), 1)
	inst.SetOperand(0, operand)
	return inst
}

// -----------------------------------------------------------------------------
// Memory.

// NewAlloca allocates stack storage for a value of type elem, yielding a
// pointer to elem.
func NewAlloca(m *Module, elem Type) *Instruction {
	inst := newInstruction(OpAlloca, m.GetPointer(elem), 0)
	return inst
}

// NewLoad reads through ptr, which must be a Pointer type; the result
// type is the pointer's element type.
func NewLoad(ptr Value) *Instruction {
	pt, ok := ptr.Type().(*PointerType)
	if !ok {
		typeMismatch("load", "operand is not a pointer: %s", ptr.Type())
		return nil
	}
	inst := newInstruction(OpLoad, pt.Elem(), 1)
	inst.SetOperand(0, ptr)
	return inst
}

// NewStore writes val through ptr. val's type must equal ptr's element
// type. The instruction's own type is Void.
func NewStore(m *Module, val, ptr Value) *Instruction {
	pt, ok := ptr.Type().(*PointerType)
	if !ok {
		typeMismatch("store", "destination is not a pointer: %s", ptr.Type())
		return nil
	}
	if pt.Elem() != val.Type() {
		typeMismatch("store", "value type %s does not match pointee type %s", val.Type(), pt.Elem())
		return nil
	}
	inst := newInstruction(OpStore, m.GetVoid(), 2)
	inst.SetOperand(0, val)
	inst.SetOperand(1, ptr)
	return inst
}

// -----------------------------------------------------------------------------
// GetElementPtr.

// NewGetElementPtr walks base's pointee type by indices, exactly like the
// original: the first index strips one pointer-or-array level (an array
// step through the alloca/global itself), each subsequent index descends
// into an aggregate (array element, or struct member selected by a
// constant integer index). The result is a pointer to the type reached.
//
// indices must be non-empty; a struct member step requires a compile-time
// constant integer operand (GEP into a struct with a dynamic index is a
// ShapeViolation, exactly as it is in the system this generalizes).
func NewGetElementPtr(m *Module, base Value, indices []Value) *Instruction {
	pt, ok := base.Type().(*PointerType)
	if !ok {
		typeMismatch("getelementptr", "base is not a pointer: %s", base.Type())
		return nil
	}
	if len(indices) == 0 {
		shapeViolation("getelementptr", "at least one index is required")
		return nil
	}

	cur := pt.Elem()
	constIdx := make([]int64, len(indices))

	for i, idxVal := range indices {
		if _, ok := idxVal.Type().(*IntegerType); !ok {
			shapeViolation("getelementptr", "index %d is not an integer", i)
			return nil
		}

		if i == 0 {
			// The first index walks over multiples of the pointee type
			// (pointer arithmetic); it never changes the reached type.
			constIdx[0] = constIndexOf(idxVal)
			continue
		}

		switch t := cur.(type) {
		case *ArrayType:
			cur = t.Elem()
			constIdx[i] = constIndexOf(idxVal)
		case *StructType:
			ci, ok := idxVal.(*ConstantInt)
			if !ok {
				shapeViolation("getelementptr", "struct member index %d must be a constant integer", i)
				return nil
			}
			n := int(ci.ZExtValue())
			if n < 0 || n >= t.NumMembers() {
				shapeViolation("getelementptr", "struct member index %d out of range", n)
				return nil
			}
			cur = t.members[n].Type
			constIdx[i] = int64(n)
		case *VectorType:
			cur = t.Elem()
			constIdx[i] = constIndexOf(idxVal)
		default:
			shapeViolation("getelementptr", "cannot index into %s", cur)
			return nil
		}
	}

	resultType := m.GetPointer(cur)
	inst := newInstruction(OpGetElementPtr, resultType, len(indices)+1)
	inst.SetOperand(0, base)
	for i, idxVal := range indices {
		inst.SetOperand(i+1, idxVal)
	}
	inst.GEPSourceType = pt.Elem()
	inst.GEPIndices = constIdx
	return inst
}

func constIndexOf(v Value) int64 {
	if ci, ok := v.(*ConstantInt); ok {
		return ci.SExtValue()
	}
	return -1
}

// -----------------------------------------------------------------------------
// Comparisons.

// NewICmp compares two integer or pointer operands of identical type,
// yielding i1.
func NewICmp(m *Module, pred ICmpPredicate, lhs, rhs Value) *Instruction {
	if lhs.Type() != rhs.Type() {
		typeMismatch("icmp", "operand types differ: %s vs %s", lhs.Type(), rhs.Type())
		return nil
	}
	switch lhs.Type().Kind() {
	case IntegerKind, PointerKind:
	default:
		typeMismatch("icmp", "operand type %s is not integer or pointer", lhs.Type())
		return nil
	}
	inst := newInstruction(OpICmp, m.GetIntegerType(1, true), 2)
	inst.ICmpPred = pred
	inst.SetOperand(0, lhs)
	inst.SetOperand(1, rhs)
	return inst
}

// NewFCmp compares two float operands of identical type, yielding i1.
func NewFCmp(m *Module, pred FCmpPredicate, lhs, rhs Value) *Instruction {
	if lhs.Type() != rhs.Type() {
		typeMismatch("fcmp", "operand types differ: %s vs %s", lhs.Type(), rhs.Type())
		return nil
	}
	if lhs.Type().Kind() != FloatKind {
		typeMismatch("fcmp", "operand type %s is not float", lhs.Type())
		return nil
	}
	inst := newInstruction(OpFCmp, m.GetIntegerType(1, true), 2)
	inst.FCmpPred = pred
	inst.SetOperand(0, lhs)
	inst.SetOperand(1, rhs)
	return inst
}

// -----------------------------------------------------------------------------
// Control flow.

// NewBr is the unconditional branch: exactly one operand, the target
// block. Resolves the is_conditional ambiguity noted in the design notes
// by modeling unconditional and conditional branches as distinct opcodes
// with fixed, distinct arities rather than a single type whose arity is
// inspected at runtime.
func NewBr(m *Module, target *BasicBlock) *Instruction {
	inst := newInstruction(OpBr, m.GetVoid(), 1)
	inst.SetOperand(0, target)
	return inst
}

// NewCondBr is the conditional branch: exactly three operands (cond,
// true-target, false-target). cond must be i1.
func NewCondBr(m *Module, cond Value, trueBB, falseBB *BasicBlock) *Instruction {
	it, ok := cond.Type().(*IntegerType)
	if !ok || it.width != 1 {
		typeMismatch("br", "condition must be i1, got %s", cond.Type())
		return nil
	}
	inst := newInstruction(OpCondBr, m.GetVoid(), 3)
	inst.SetOperand(0, cond)
	inst.SetOperand(1, trueBB)
	inst.SetOperand(2, falseBB)
	return inst
}

// NewRet returns from the enclosing function. value may be nil for a
// void return; otherwise its type must equal the enclosing function's
// declared return type (checked by the Builder, which knows the current
// function).
func NewRet(m *Module, value Value) *Instruction {
	if value == nil {
		return newInstruction(OpRet, m.GetVoid(), 0)
	}
	inst := newInstruction(OpRet, m.GetVoid(), 1)
	inst.SetOperand(0, value)
	return inst
}

// NewUnreachable marks a program point control flow can never reach.
func NewUnreachable(m *Module) *Instruction {
	return newInstruction(OpUnreachable, m.GetVoid(), 0)
}

// -----------------------------------------------------------------------------
// Phi.

// NewPhi creates an empty phi node of the given type; incoming pairs are
// added with AddIncoming. A phi's arity must equal its block's
// predecessor count once construction is complete (I-B5); this is
// enforced by Verify, not at AddIncoming time, since predecessors and
// incoming pairs are usually built up together during lowering.
func NewPhi(typ Type) *Instruction {
	inst := &Instruction{Opcode: OpPhi}
	inst.typ = typ
	inst.initOperands(inst, 0)
	return inst
}

// AddIncoming appends one (value, block) pair to a phi. value's type must
// equal the phi's type.
func (i *Instruction) AddIncoming(value Value, block *BasicBlock) {
	if i.Opcode != OpPhi {
		shapeViolation("add_incoming", "not a phi instruction")
		return
	}
	if value.Type() != i.typ {
		typeMismatch("add_incoming", "incoming value type %s does not match phi type %s", value.Type(), i.typ)
		return
	}
	idx := len(i.operands)
	i.operands = append(i.operands, nil)
	i.opUses = append(i.opUses, &Use{User: i, Idx: idx})
	i.SetOperand(idx, value)
	i.PhiBlocks = append(i.PhiBlocks, block)
}

// NumIncoming returns the phi's current arity.
func (i *Instruction) NumIncoming() int { return len(i.operands) }

// IncomingValue returns the value of the n'th incoming pair.
func (i *Instruction) IncomingValue(n int) Value { return i.operands[n] }

// IncomingBlock returns the block of the n'th incoming pair.
func (i *Instruction) IncomingBlock(n int) *BasicBlock { return i.PhiBlocks[n] }

// -----------------------------------------------------------------------------
// Call.

// NewCall invokes callee (a Function or a function-pointer Value) with
// args. Argument count and types must match the callee's signature.
func NewCall(callee Value, sig *FunctionType, args []Value) *Instruction {
	if len(args) != sig.NumParams() {
		shapeViolation("call", "argument count %d does not match signature arity %d", len(args), sig.NumParams())
		return nil
	}
	for i, a := range args {
		if a.Type() != sig.params[i].Type {
			typeMismatch("call", "argument %d type %s does not match parameter type %s", i, a.Type(), sig.params[i].Type)
			return nil
		}
	}
	inst := newInstruction(OpCall, sig.Return(), len(args)+1)
	inst.SetOperand(0, callee)
	for i, a := range args {
		inst.SetOperand(i+1, a)
	}
	inst.CallSignature = sig
	return inst
}

// Callee returns the called value (operand 0).
func (i *Instruction) Callee() Value { return i.operands[0] }

// Args returns the call's argument list (operands[1:]).
func (i *Instruction) Args() []Value { return append([]Value(nil), i.operands[1:]...) }

// -----------------------------------------------------------------------------
// Casts.

// castRule describes the operand/result Kind pair a cast opcode
// requires, and the extra width rule it enforces.
type castRule struct {
	srcKind, dstKind TypeKind
	checkWidth       func(src, dst Type) error
}

func widerInt(src, dst Type) error {
	if src.(*IntegerType).width >= dst.(*IntegerType).width {
		return fmt.Errorf("source width %d is not narrower than destination width %d", src.(*IntegerType).width, dst.(*IntegerType).width)
	}
	return nil
}

func narrowerInt(src, dst Type) error {
	if src.(*IntegerType).width <= dst.(*IntegerType).width {
		return fmt.Errorf("source width %d is not wider than destination width %d", src.(*IntegerType).width, dst.(*IntegerType).width)
	}
	return nil
}

func widerFloat(src, dst Type) error {
	if src.(*FloatType).width >= dst.(*FloatType).width {
		return fmt.Errorf("source width %d is not narrower than destination width %d", src.(*FloatType).width, dst.(*FloatType).width)
	}
	return nil
}

func narrowerFloat(src, dst Type) error {
	if src.(*FloatType).width <= dst.(*FloatType).width {
		return fmt.Errorf("source width %d is not wider than destination width %d", src.(*FloatType).width, dst.(*FloatType).width)
	}
	return nil
}

func equalBitWidth(src, dst Type) error {
	if src.Size() != dst.Size() {
		return fmt.Errorf("source size %d differs from destination size %d", src.Size(), dst.Size())
	}
	return nil
}

var castRules = map[Opcode]castRule{
	OpZExt:     {IntegerKind, IntegerKind, widerInt},
	OpSExt:     {IntegerKind, IntegerKind, widerInt},
	OpTrunc:    {IntegerKind, IntegerKind, narrowerInt},
	OpSIToFP:   {IntegerKind, FloatKind, nil},
	OpUIToFP:   {IntegerKind, FloatKind, nil},
	OpFPToSI:   {FloatKind, IntegerKind, nil},
	OpFPToUI:   {FloatKind, IntegerKind, nil},
	OpFPExt:    {FloatKind, FloatKind, widerFloat},
	OpFPTrunc:  {FloatKind, FloatKind, narrowerFloat},
	OpPtrToInt: {PointerKind, IntegerKind, equalBitWidth},
	OpIntToPtr: {IntegerKind, PointerKind, equalBitWidth},
	OpBitCast:  {0, 0, equalBitWidth}, // any scalar-or-pointer kind, checked separately
}

// NewCast creates a conversion instruction of the given opcode from value
// to target. Each opcode's domain/range kinds and width rule are
// enforced (§4.4); a violation raises TypeMismatch/ShapeViolation.
func NewCast(op Opcode, value Value, target Type) *Instruction {
	rule, ok := castRules[op]
	if !ok {
		shapeViolation("cast", "opcode %s is not a cast", op)
		return nil
	}

	if op == OpBitCast {
		if !isScalarOrPointer(value.Type()) || !isScalarOrPointer(target) {
			typeMismatch("bitcast", "both operand and target must be scalar or pointer types")
			return nil
		}
	} else {
		if value.Type().Kind() != rule.srcKind {
			typeMismatch(op.String(), "source type %s is not %s", value.Type(), rule.srcKind)
			return nil
		}
		if target.Kind() != rule.dstKind {
			typeMismatch(op.String(), "target type %s is not %s", target, rule.dstKind)
			return nil
		}
	}

	if rule.checkWidth != nil {
		if err := rule.checkWidth(value.Type(), target); err != nil {
			typeMismatch(op.String(), "%s", err)
			return nil
		}
	}

	inst := newInstruction(op, target, 1)
	inst.SetOperand(0, value)
	return inst
}

func isScalarOrPointer(t Type) bool {
	switch t.Kind() {
	case IntegerKind, FloatKind, PointerKind:
		return true
	default:
		return false
	}
}

// NewConversion is a deprecated alias for NewCast, retained for source
// compatibility with older callers built against the ancestor
// ConversionInst API. New code should call NewCast directly.
//
// Deprecated: use NewCast.
func NewConversion(op Opcode, value Value, target Type) *Instruction {
	return NewCast(op, value, target)
}
