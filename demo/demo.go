// Package demo holds a small catalog of hand-built modules exercising
// the vane/ir construction API end to end, one per scenario named in
// the core specification's Testable Properties section. The CLI drives
// this catalog directly since there is no textual format to read a
// module back in from (see the cmd/vane-ir package doc).
package demo

import (
	"sort"

	"vane/ir"
)

// Build populates an already-created, empty module with one scenario's
// functions and globals.
type Build func(m *ir.Module)

var catalog = map[string]Build{
	"identity-add":     buildIdentityAdd,
	"diamond-phi":      buildDiamondPhi,
	"struct-gep":       buildStructGEP,
	"opaque-recursion": buildOpaqueRecursion,
	"interning":        buildInterning,
	"cast-width-check": buildCastWidthCheck,
}

// Names returns the catalog's demo names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for n := range catalog {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the Build function registered under name.
func Lookup(name string) (Build, bool) {
	b, ok := catalog[name]
	return b, ok
}

// buildIdentityAdd constructs `define i32 @add(i32 %a, i32 %b) { %r =
// add i32 %a, %b; ret i32 %r }`, the minimal scenario exercising
// operand wiring and use-list bookkeeping (I-V1).
func buildIdentityAdd(m *ir.Module) {
	i32 := m.GetIntegerType(32, false)
	sig := m.GetFunctionType(i32, []ir.FunctionParam{{Name: "a", Type: i32}, {Name: "b", Type: i32}})
	f := m.CreateFunction("add", sig, false)

	b := ir.NewBuilder(m)
	entry := f.CreateBlock(m, "entry")
	b.SetInsertPoint(entry)

	sum := b.CreateAdd(f.Arguments[0], f.Arguments[1])
	sum.SetName("r")
	b.CreateRet(sum)
}

// buildDiamondPhi constructs a classic if/else diamond merging through a
// phi node, exercising CFG edge mirroring and phi arity (I-B5).
func buildDiamondPhi(m *ir.Module) {
	i32 := m.GetIntegerType(32, false)
	sig := m.GetFunctionType(i32, []ir.FunctionParam{{Name: "cond", Type: m.GetIntegerType(1, true)}})
	f := m.CreateFunction("select_const", sig, false)

	b := ir.NewBuilder(m)
	entry := f.CreateBlock(m, "entry")
	thenBB := f.CreateBlock(m, "then")
	elseBB := f.CreateBlock(m, "else")
	mergeBB := f.CreateBlock(m, "merge")

	b.SetInsertPoint(entry)
	b.CreateCondBr(f.Arguments[0], thenBB, elseBB)

	b.SetInsertPoint(thenBB)
	thenVal := b.GetInt(32, false, 1)
	b.CreateBr(mergeBB)

	b.SetInsertPoint(elseBB)
	elseVal := b.GetInt(32, false, 2)
	b.CreateBr(mergeBB)

	b.SetInsertPoint(mergeBB)
	phi := b.CreatePhi(i32)
	phi.SetName("result")
	phi.AddIncoming(thenVal, thenBB)
	phi.AddIncoming(elseVal, elseBB)
	b.CreateRet(phi)
}

// buildStructGEP constructs a two-member struct and a function that
// loads its second field through a GetElementPtr, exercising the
// index-walk semantics and natural struct layout.
func buildStructGEP(m *ir.Module) {
	i32 := m.GetIntegerType(32, false)
	i64 := m.GetIntegerType(64, false)

	point := m.CreateStruct("Point")
	point.SetBody([]ir.StructMember{
		{Name: "x", Type: i32},
		{Name: "y", Type: i64},
	})

	sig := m.GetFunctionType(i64, []ir.FunctionParam{{Name: "p", Type: m.GetPointer(point)}})
	f := m.CreateFunction("get_y", sig, false)

	b := ir.NewBuilder(m)
	entry := f.CreateBlock(m, "entry")
	b.SetInsertPoint(entry)

	yPtr := b.CreateStructGEP(f.Arguments[0], 1)
	yPtr.SetName("y_ptr")
	yVal := b.CreateLoad(yPtr)
	yVal.SetName("y")
	b.CreateRet(yVal)
}

// buildOpaqueRecursion constructs a singly-linked list node type whose
// body refers to a pointer to itself, exercising opaque-struct
// self-reference without triggering unbounded String()/emit recursion.
func buildOpaqueRecursion(m *ir.Module) {
	i32 := m.GetIntegerType(32, false)
	node := m.CreateStruct("ListNode")
	node.SetBody([]ir.StructMember{
		{Name: "value", Type: i32},
		{Name: "next", Type: m.GetPointer(node)},
	})

	sig := m.GetFunctionType(m.GetPointer(node), []ir.FunctionParam{{Name: "n", Type: m.GetPointer(node)}})
	f := m.CreateFunction("next_node", sig, false)

	b := ir.NewBuilder(m)
	entry := f.CreateBlock(m, "entry")
	b.SetInsertPoint(entry)

	nextPtr := b.CreateStructGEP(f.Arguments[0], 1)
	nextPtr.SetName("next_ptr")
	next := b.CreateLoad(nextPtr)
	next.SetName("next")
	b.CreateRet(next)
}

// buildInterning requests the same anonymous struct type twice,
// demonstrating that both requests resolve to the same interned pointer
// (I-T1/I-T2), and allocates one stack slot of each.
func buildInterning(m *ir.Module) {
	i32 := m.GetIntegerType(32, false)
	i8 := m.GetIntegerType(8, true)

	pairA := m.GetAnonStruct([]ir.Type{i32, i8})
	pairB := m.GetAnonStruct([]ir.Type{i32, i8})

	sig := m.GetFunctionType(m.GetVoid(), nil)
	f := m.CreateFunction("touch_interned_types", sig, false)

	b := ir.NewBuilder(m)
	entry := f.CreateBlock(m, "entry")
	b.SetInsertPoint(entry)

	slotA := b.CreateAlloca(pairA)
	slotA.SetName("a")
	slotB := b.CreateAlloca(pairB)
	slotB.SetName("b")
	b.CreateRet(nil)
}

// buildCastWidthCheck constructs a function truncating an i64 to i32
// then sign-extending it back, exercising the cast opcodes' width
// validation.
func buildCastWidthCheck(m *ir.Module) {
	i32 := m.GetIntegerType(32, false)
	i64 := m.GetIntegerType(64, false)
	sig := m.GetFunctionType(i64, []ir.FunctionParam{{Name: "x", Type: i64}})
	f := m.CreateFunction("roundtrip_i32", sig, false)

	b := ir.NewBuilder(m)
	entry := f.CreateBlock(m, "entry")
	b.SetInsertPoint(entry)

	narrowed := b.CreateCast(f.Arguments[0], i32)
	narrowed.SetName("narrowed")
	widened := b.CreateCast(narrowed, i64)
	widened.SetName("widened")
	b.CreateRet(widened)
}
