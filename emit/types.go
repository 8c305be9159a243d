// Package emit lowers a completed *ir.Module into a github.com/llir/llvm
// module, the way generate/conv_type.go and generate/gen_expr.go once
// lowered a type-checked chai AST straight into LLVM IR. The starting
// point here is not an AST but an already-built vane/ir.Module: emit's
// job is a pure structural translation, one ir.Type/ir.Instruction at a
// time, never a semantic decision (those were all made by whichever
// caller populated the ir.Module in the first place).
package emit

import (
	llvmtypes "github.com/llir/llvm/ir/types"

	"vane/ir"
)

// typeCache memoizes the ir.Type -> llvmtypes.Type translation across one
// Emitter's lifetime. Because ir.Type values are themselves canonical
// (interned) pointers, the cache can key directly off the interface
// value with no extra hashing.
type typeCache struct {
	cache   map[ir.Type]llvmtypes.Type
	structs map[string]*llvmtypes.StructType
}

func newTypeCache() *typeCache {
	return &typeCache{
		cache:   make(map[ir.Type]llvmtypes.Type),
		structs: make(map[string]*llvmtypes.StructType),
	}
}

// convertType translates t into the equivalent llir/llvm type, the same
// responsibility conv_type.go's convType carried for chai's own type
// lattice.
func (tc *typeCache) convertType(t ir.Type) llvmtypes.Type {
	if lt, ok := tc.cache[t]; ok {
		return lt
	}

	var lt llvmtypes.Type
	switch tt := t.(type) {
	case *ir.VoidType:
		lt = llvmtypes.Void

	case *ir.IntegerType:
		lt = llvmtypes.NewInt(uint64(tt.Width()))

	case *ir.FloatType:
		switch tt.Width() {
		case 16:
			lt = llvmtypes.Half
		case 32:
			lt = llvmtypes.Float
		case 64:
			lt = llvmtypes.Double
		default:
			lt = llvmtypes.FP128
		}

	case *ir.PointerType:
		lt = llvmtypes.NewPointer(tc.convertType(tt.Elem()))

	case *ir.ArrayType:
		lt = llvmtypes.NewArray(tt.Len(), tc.convertType(tt.Elem()))

	case *ir.VectorType:
		lt = llvmtypes.NewVector(tt.Len(), tc.convertType(tt.Elem()))

	case *ir.StructType:
		lt = tc.convertStruct(tt)

	case *ir.FunctionType:
		params := make([]llvmtypes.Type, tt.NumParams())
		for i, p := range tt.Params() {
			params[i] = tc.convertType(p.Type)
		}
		lt = llvmtypes.NewFunc(tc.convertType(tt.Return()), params...)

	case *ir.QualifiedType:
		// Qualifiers (const/volatile/restrict) have no bearing on an
		// LLVM type's shape; only the underlying type is emitted.
		lt = tc.convertType(tt.Underlying())

	default:
		lt = llvmtypes.Void
	}

	tc.cache[t] = lt
	return lt
}

// convertStruct handles named-struct recursion: a named struct is
// registered (opaque) before its members are converted, so a
// self-referential struct (a node pointing to itself through a pointer
// member) does not recurse forever the same way ir.StructType.String
// avoids it by name rather than by expansion.
func (tc *typeCache) convertStruct(t *ir.StructType) *llvmtypes.StructType {
	if t.IsTuple() {
		fields := make([]llvmtypes.Type, t.NumMembers())
		for i, m := range t.Members() {
			fields[i] = tc.convertType(m.Type)
		}
		return llvmtypes.NewStruct(fields...)
	}

	if existing, ok := tc.structs[t.Name()]; ok {
		return existing
	}

	st := llvmtypes.NewStruct()
	st.TypeName = t.Name()
	st.Opaque = t.IsOpaque()
	tc.structs[t.Name()] = st
	tc.cache[t] = st

	if !t.IsOpaque() {
		fields := make([]llvmtypes.Type, t.NumMembers())
		for i, m := range t.Members() {
			fields[i] = tc.convertType(m.Type)
		}
		st.Fields = fields
		st.Opaque = false
	}

	return st
}
