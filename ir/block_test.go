package ir

import "testing"

func TestBlockAppendRejectsSecondTerminator(t *testing.T) {
	m := newTestModule()
	sig := m.GetFunctionType(m.GetVoid(), nil)
	f := m.CreateFunction("f", sig, false)
	entry := f.CreateBlock(m, "entry")

	entry.Append(NewRet(m, nil))

	withNonStrict(t, func() {
		before := len(entry.Instructions())
		entry.Append(NewUnreachable(m))
		if len(entry.Instructions()) != before {
			t.Fatalf("expected append after a terminator to be rejected")
		}
	})
}

func TestSuccessorsFromCondBr(t *testing.T) {
	m := newTestModule()
	sig := m.GetFunctionType(m.GetVoid(), []FunctionParam{{Name: "c", Type: m.GetIntegerType(1, true)}})
	f := m.CreateFunction("f", sig, false)

	entry := f.CreateBlock(m, "entry")
	a := f.CreateBlock(m, "a")
	b := f.CreateBlock(m, "b")

	entry.Append(NewCondBr(m, f.Arguments[0], a, b))
	a.Append(NewRet(m, nil))
	b.Append(NewRet(m, nil))

	succs := entry.Successors()
	if len(succs) != 2 || succs[0] != a || succs[1] != b {
		t.Fatalf("expected successors [a, b], got %v", succs)
	}

	if len(a.Predecessors()) != 1 || a.Predecessors()[0] != entry {
		t.Fatalf("expected a's sole predecessor to be entry")
	}
}

func TestInsertBeforeAndAfter(t *testing.T) {
	m := newTestModule()
	sig := m.GetFunctionType(m.GetVoid(), nil)
	f := m.CreateFunction("f", sig, false)
	entry := f.CreateBlock(m, "entry")

	i32 := m.GetIntegerType(32, false)
	one := m.GetConstantInt(i32, 1)
	two := m.GetConstantInt(i32, 2)

	add := NewBinary(OpAdd, one, two)
	entry.Append(add)

	sub := NewBinary(OpSub, one, two)
	entry.InsertBefore(sub, add)

	mul := NewBinary(OpMul, one, two)
	entry.InsertAfter(mul, add)

	got := entry.Instructions()
	if len(got) != 3 || got[0] != sub || got[1] != add || got[2] != mul {
		t.Fatalf("expected instruction order [sub, add, mul], got %v", got)
	}
}

func TestPhiMustPrecedeNonPhi(t *testing.T) {
	m := newTestModule()
	i32 := m.GetIntegerType(32, false)
	sig := m.GetFunctionType(i32, nil)
	f := m.CreateFunction("f", sig, false)

	pred := f.CreateBlock(m, "pred")
	merge := f.CreateBlock(m, "merge")
	pred.Append(NewBr(m, merge))

	one := m.GetConstantInt(i32, 1)
	nonPhi := NewBinary(OpAdd, one, one)
	merge.Append(nonPhi)

	phi := NewPhi(i32)
	phi.AddIncoming(one, pred)
	merge.Append(phi)
	merge.Append(NewRet(m, one))

	errs := VerifyFunction(f)
	found := false
	for _, e := range errs {
		if e.Message == "phi instruction follows a non-phi instruction" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Verify to flag a phi placed after a non-phi instruction, errs=%v", errs)
	}
}
