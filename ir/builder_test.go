package ir

import "testing"

func TestBuilderDiamondPhi(t *testing.T) {
	m := newTestModule()
	i1 := m.GetIntegerType(1, true)
	i32 := m.GetIntegerType(32, false)
	sig := m.GetFunctionType(i32, []FunctionParam{{Name: "cond", Type: i1}})
	f := m.CreateFunction("select_const", sig, false)

	b := NewBuilder(m)
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
	phi.AddIncoming(thenVal, thenBB)
	phi.AddIncoming(elseVal, elseBB)
	b.CreateRet(phi)

	if errs := VerifyFunction(f); len(errs) != 0 {
		t.Fatalf("expected a well-formed diamond, got errors: %v", errs)
	}

	if got := len(mergeBB.Predecessors()); got != 2 {
		t.Fatalf("expected merge block to have 2 predecessors, got %d", got)
	}
	if phi.NumIncoming() != mergeBB.NumPredecessors() {
		t.Fatalf("phi arity %d does not match predecessor count %d", phi.NumIncoming(), mergeBB.NumPredecessors())
	}
}

func TestBuilderCreateCastDispatchesNarrowest(t *testing.T) {
	m := newTestModule()
	b := NewBuilder(m)
	i32 := m.GetIntegerType(32, false)
	i64u := m.GetIntegerType(64, true)
	i64s := m.GetIntegerType(64, false)

	f := m.CreateFunction("f", m.GetFunctionType(m.GetVoid(), nil), false)
	entry := f.CreateBlock(m, "entry")
	b.SetInsertPoint(entry)

	unsignedVal := b.GetInt(32, true, 1)
	widenedUnsigned := b.CreateCast(unsignedVal, i64u).(*Instruction)
	if widenedUnsigned.Opcode != OpZExt {
		t.Fatalf("expected unsigned widening to dispatch to zext, got %s", widenedUnsigned.Opcode)
	}

	signedVal := b.GetInt(32, false, 1)
	widenedSigned := b.CreateCast(signedVal, i64s).(*Instruction)
	if widenedSigned.Opcode != OpSExt {
		t.Fatalf("expected signed widening to dispatch to sext, got %s", widenedSigned.Opcode)
	}

	_ = i32
}

func TestBuilderCreateCastIdentityReturnsSameValue(t *testing.T) {
	m := newTestModule()
	b := NewBuilder(m)

	f := m.CreateFunction("f", m.GetFunctionType(m.GetVoid(), nil), false)
	entry := f.CreateBlock(m, "entry")
	b.SetInsertPoint(entry)

	v := b.GetInt(32, false, 7)
	cast := b.CreateCast(v, v.Type())
	if cast != Value(v) {
		t.Fatalf("CreateCast(v, v.Type()) must return v unchanged")
	}
}

func TestBuilderCreateStructGEP(t *testing.T) {
	m := newTestModule()
	b := NewBuilder(m)
	i32 := m.GetIntegerType(32, false)
	i64 := m.GetIntegerType(64, false)

	s := m.CreateStruct("Pair")
	s.SetBody([]StructMember{{Name: "a", Type: i32}, {Name: "b", Type: i64}})

	sig := m.GetFunctionType(i64, []FunctionParam{{Name: "p", Type: m.GetPointer(s)}})
	f := m.CreateFunction("get_b", sig, false)
	entry := f.CreateBlock(m, "entry")
	b.SetInsertPoint(entry)

	bPtr := b.CreateStructGEP(f.Arguments[0], 1)
	loaded := b.CreateLoad(bPtr)
	b.CreateRet(loaded)

	if errs := VerifyFunction(f); len(errs) != 0 {
		t.Fatalf("expected well-formed function, got %v", errs)
	}
}
