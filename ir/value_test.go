package ir

import "testing"

func TestSetOperandMirrorsUseList(t *testing.T) {
	m := newTestModule()
	i32 := m.GetIntegerType(32, false)
	a := m.GetConstantInt(i32, 1)
	b := m.GetConstantInt(i32, 2)

	add := NewBinary(OpAdd, a, b)

	if len(a.Uses()) != 1 {
		t.Fatalf("expected constant a to have exactly one use, got %d", len(a.Uses()))
	}

	c := m.GetConstantInt(i32, 3)
	add.SetOperand(0, c)

	if len(a.Uses()) != 0 {
		t.Fatalf("expected a's use to be removed after SetOperand replaced it")
	}
	if len(c.Uses()) != 1 {
		t.Fatalf("expected c to gain exactly one use after SetOperand installed it")
	}
	if add.Operands()[0] != Value(c) {
		t.Fatalf("expected operand 0 to now be c")
	}
}

func TestReplaceAllUsesWith(t *testing.T) {
	m := newTestModule()
	i32 := m.GetIntegerType(32, false)
	old := m.GetConstantInt(i32, 1)
	replacement := m.GetConstantInt(i32, 2)
	other := m.GetConstantInt(i32, 3)

	add1 := NewBinary(OpAdd, old, other)
	add2 := NewBinary(OpMul, other, old)

	old.ReplaceAllUsesWith(replacement)

	if len(old.Uses()) != 0 {
		t.Fatalf("expected old's use-list to be empty after RAUW")
	}
	if add1.Operands()[0] != Value(replacement) || add2.Operands()[1] != Value(replacement) {
		t.Fatalf("expected every use of old to now reference replacement")
	}
	if len(replacement.Uses()) != 2 {
		t.Fatalf("expected replacement to gain both redirected uses, got %d", len(replacement.Uses()))
	}
}

func TestValueNameIsMutable(t *testing.T) {
	m := newTestModule()
	i32 := m.GetIntegerType(32, false)
	a := m.GetConstantInt(i32, 1)
	b := m.GetConstantInt(i32, 2)
	add := NewBinary(OpAdd, a, b)

	add.SetName("sum")
	if add.Name() != "sum" {
		t.Fatalf("Name() = %q, want %q", add.Name(), "sum")
	}
}
