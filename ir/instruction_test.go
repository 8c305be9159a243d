package ir

import "testing"

func withNonStrict(t *testing.T, f func()) {
	t.Helper()
	Strict = false
	defer func() { Strict = true }()
	f()
}

func TestBinaryRejectsMismatchedTypes(t *testing.T) {
	m := newTestModule()
	i32 := m.GetIntegerType(32, false)
	i64 := m.GetIntegerType(64, false)
	a := m.GetConstantInt(i32, 1)
	b := m.GetConstantInt(i64, 2)

	withNonStrict(t, func() {
		if inst := NewBinary(OpAdd, a, b); inst != nil {
			t.Fatalf("expected nil sentinel for mismatched operand types")
		}
	})
}

func TestBinaryRejectsWrongOpcodeDomain(t *testing.T) {
	m := newTestModule()
	f32 := m.GetFloatType(32)
	a := m.GetConstantFP(f32, 1.5)
	b := m.GetConstantFP(f32, 2.5)

	withNonStrict(t, func() {
		if inst := NewBinary(OpShl, a, b); inst != nil {
			t.Fatalf("expected shift over float operands to be rejected")
		}
	})
}

func TestCastZExtRequiresWidening(t *testing.T) {
	m := newTestModule()
	i32 := m.GetIntegerType(32, false)
	i8 := m.GetIntegerType(8, true)
	v := m.GetConstantInt(i32, 200)

	withNonStrict(t, func() {
		if inst := NewCast(OpZExt, v, i8); inst != nil {
			t.Fatalf("expected zext to a narrower type to be rejected")
		}
	})

	i64 := m.GetIntegerType(64, false)
	inst := NewCast(OpZExt, v, i64)
	if inst == nil || inst.Type() != Type(i64) {
		t.Fatalf("expected a valid zext from i32 to i64")
	}
}

func TestCastBitCastRequiresEqualSize(t *testing.T) {
	m := newTestModule()
	i32 := m.GetIntegerType(32, false)
	i64 := m.GetIntegerType(64, false)
	v := m.GetConstantInt(i32, 1)

	withNonStrict(t, func() {
		if inst := NewCast(OpBitCast, v, i64); inst != nil {
			t.Fatalf("expected bitcast between differently-sized integers to be rejected")
		}
	})
}

func TestGetElementPtrStructMemberWalk(t *testing.T) {
	m := newTestModule()
	i32 := m.GetIntegerType(32, false)
	i64 := m.GetIntegerType(64, false)

	s := m.CreateStruct("Pair")
	s.SetBody([]StructMember{{Name: "a", Type: i32}, {Name: "b", Type: i64}})

	base := NewAlloca(m, s)
	zero := m.GetConstantInt(m.GetIntegerType(32, false), 0)
	one := m.GetConstantInt(m.GetIntegerType(32, false), 1)

	gep := NewGetElementPtr(m, base, []Value{zero, one})
	if gep == nil {
		t.Fatalf("expected a valid GEP into the struct's second member")
	}
	pt, ok := gep.Type().(*PointerType)
	if !ok || pt.Elem() != Type(i64) {
		t.Fatalf("expected GEP result type to be pointer-to-i64, got %s", gep.Type())
	}
}

func TestGetElementPtrRejectsDynamicStructIndex(t *testing.T) {
	m := newTestModule()
	i32 := m.GetIntegerType(32, false)

	s := m.CreateStruct("Pair")
	s.SetBody([]StructMember{{Name: "a", Type: i32}, {Name: "b", Type: i32}})

	base := NewAlloca(m, s)
	zero := m.GetConstantInt(i32, 0)
	dynIdx := NewLoad(NewAlloca(m, i32)) // a non-constant i32 value

	withNonStrict(t, func() {
		if gep := NewGetElementPtr(m, base, []Value{zero, dynIdx}); gep != nil {
			t.Fatalf("expected GEP with a dynamic struct member index to be rejected")
		}
	})
}

func TestPhiArityMustMatchPredecessorCount(t *testing.T) {
	m := newTestModule()
	i32 := m.GetIntegerType(32, false)
	sig := m.GetFunctionType(i32, nil)
	f := m.CreateFunction("f", sig, false)

	entry := f.CreateBlock(m, "entry")
	a := f.CreateBlock(m, "a")
	merge := f.CreateBlock(m, "merge")

	entry.Append(NewBr(m, a))
	a.Append(NewBr(m, merge))

	phi := NewPhi(i32)
	phi.AddIncoming(m.GetConstantInt(i32, 1), a)
	merge.Append(phi)
	merge.Append(NewRet(m, phi))

	if merge.NumPredecessors() != 1 {
		t.Fatalf("expected merge to have exactly one predecessor, got %d", merge.NumPredecessors())
	}

	errs := VerifyFunction(f)
	if len(errs) != 0 {
		t.Fatalf("expected a well-formed function, got errors: %v", errs)
	}
}
