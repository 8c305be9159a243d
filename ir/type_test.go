package ir

import (
	"testing"

	"vane/config"
)

func newTestModule() *Module {
	return NewModule("test", config.DefaultDataLayout())
}

func TestIntegerTypeInterning(t *testing.T) {
	m := newTestModule()

	a := m.GetIntegerType(32, false)
	b := m.GetIntegerType(32, false)
	if a != b {
		t.Fatalf("expected identical i32 requests to intern to the same pointer")
	}

	u := m.GetIntegerType(32, true)
	if a == u {
		t.Fatalf("signed and unsigned i32 must not share an interned instance")
	}
}

func TestPointerTypeInterning(t *testing.T) {
	m := newTestModule()
	i32 := m.GetIntegerType(32, false)

	p1 := m.GetPointer(i32)
	p2 := m.GetPointer(i32)
	if p1 != p2 {
		t.Fatalf("expected pointer-to-i32 to intern to the same pointer")
	}
	if p1.Size() != m.DataLayout.PointerBytes {
		t.Fatalf("pointer size = %d, want %d", p1.Size(), m.DataLayout.PointerBytes)
	}
}

func TestAnonStructInterningByShape(t *testing.T) {
	m := newTestModule()
	i32 := m.GetIntegerType(32, false)
	i8 := m.GetIntegerType(8, true)

	a := m.GetAnonStruct([]Type{i32, i8})
	b := m.GetAnonStruct([]Type{i32, i8})
	if a != b {
		t.Fatalf("expected structurally identical anonymous structs to intern to the same pointer")
	}

	c := m.GetAnonStruct([]Type{i8, i32})
	if a == c {
		t.Fatalf("member order participates in identity; expected a distinct instance")
	}
}

func TestStructLayoutNaturalAlignment(t *testing.T) {
	m := newTestModule()
	i8 := m.GetIntegerType(8, true)
	i64 := m.GetIntegerType(64, false)

	s := m.CreateStruct("Padded")
	if !s.IsOpaque() {
		t.Fatalf("freshly created struct should be opaque")
	}
	s.SetBody([]StructMember{{Name: "a", Type: i8}, {Name: "b", Type: i64}})

	if s.IsOpaque() {
		t.Fatalf("struct should no longer be opaque after SetBody")
	}
	if s.Offset(0) != 0 {
		t.Fatalf("first member offset = %d, want 0", s.Offset(0))
	}
	if s.Offset(1) != 8 {
		t.Fatalf("second member offset = %d, want 8 (padded to i64 alignment)", s.Offset(1))
	}
	if s.Size() != 16 {
		t.Fatalf("struct size = %d, want 16", s.Size())
	}
	if s.Align() != 8 {
		t.Fatalf("struct align = %d, want 8 (max member alignment)", s.Align())
	}
}

func TestEmptyStructUsesModuleAlignDefault(t *testing.T) {
	layout := config.DefaultDataLayout()
	layout.StructAlignDefault = 16
	m := NewModule("test", layout)

	s := m.CreateStruct("Empty")
	s.SetBody(nil)

	if s.Align() != 16 {
		t.Fatalf("empty struct align = %d, want 16 (module's configured struct_align_default)", s.Align())
	}
}

func TestStructBodySetOnceRejectsDifferingRedefinition(t *testing.T) {
	m := newTestModule()
	i32 := m.GetIntegerType(32, false)
	s := m.CreateStruct("Once")
	s.SetBody([]StructMember{{Name: "a", Type: i32}})

	Strict = false
	defer func() { Strict = true }()
	s.SetBody([]StructMember{{Name: "b", Type: i32}})

	if s.NumMembers() != 1 || s.Members()[0].Name != "a" {
		t.Fatalf("second SetBody call must not modify an already-completed struct")
	}
}

func TestStructBodySetIdenticalIsIdempotent(t *testing.T) {
	m := newTestModule()
	i32 := m.GetIntegerType(32, false)
	s := m.CreateStruct("Same")
	s.SetBody([]StructMember{{Name: "a", Type: i32}})

	// A re-set with an identical member list must be a silent no-op,
	// never a StateViolation, even under Strict.
	s.SetBody([]StructMember{{Name: "a", Type: i32}})

	if s.NumMembers() != 1 || s.Members()[0].Name != "a" {
		t.Fatalf("identical re-set must not alter the struct's body")
	}
}

func TestFunctionTypeIdentityIgnoresParamNames(t *testing.T) {
	m := newTestModule()
	i32 := m.GetIntegerType(32, false)

	sigA := m.GetFunctionType(i32, []FunctionParam{{Name: "a", Type: i32}, {Name: "b", Type: i32}})
	sigB := m.GetFunctionType(i32, []FunctionParam{{Name: "x", Type: i32}, {Name: "y", Type: i32}})
	if sigA != sigB {
		t.Fatalf("expected function type identity to ignore parameter names")
	}
}

func TestQualifiedTypeForwardsSizeAndAlign(t *testing.T) {
	m := newTestModule()
	i32 := m.GetIntegerType(32, false)
	qc := m.GetQualified(i32, QualConst)

	if qc.Size() != i32.Size() || qc.Align() != i32.Align() {
		t.Fatalf("qualified type must forward size/align to its base")
	}
	if qc.Underlying() != Type(i32) {
		t.Fatalf("qualified type's Underlying must return its base")
	}
	if i32.Underlying() != Type(i32) {
		t.Fatalf("a non-qualified type's Underlying must return itself")
	}
}
