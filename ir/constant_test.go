package ir

import (
	"math"
	"testing"
)

func TestConstantIntTruncatesToWidth(t *testing.T) {
	m := newTestModule()
	i8 := m.GetIntegerType(8, true)
	c := m.GetConstantInt(i8, 0x1FF)
	if c.ZExtValue() != 0xFF {
		t.Fatalf("ZExtValue() = %#x, want %#x", c.ZExtValue(), 0xFF)
	}
}

func TestConstantIntInterning(t *testing.T) {
	m := newTestModule()
	i32 := m.GetIntegerType(32, false)
	a := m.GetConstantInt(i32, 42)
	b := m.GetConstantInt(i32, 42)
	if a != b {
		t.Fatalf("expected identical (type, bits) requests to intern to the same pointer")
	}
}

func TestConstantIntSExtValue(t *testing.T) {
	m := newTestModule()
	i8 := m.GetIntegerType(8, false)
	c := m.GetConstantInt(i8, 0xFF) // -1 in two's complement
	if c.SExtValue() != -1 {
		t.Fatalf("SExtValue() = %d, want -1", c.SExtValue())
	}
}

func TestConstantFPNaNBitwiseInterning(t *testing.T) {
	m := newTestModule()
	f64 := m.GetFloatType(64)

	nan := math.NaN()
	a := m.GetConstantFP(f64, nan)
	b := m.GetConstantFP(f64, nan)
	if a != b {
		t.Fatalf("expected identical NaN bit patterns to intern to the same pointer")
	}

	// A distinct NaN payload must not collapse into the same constant:
	// interning is bitwise, not IEEE-754 equality (where NaN != NaN
	// would otherwise make every NaN request distinct).
	otherNaN := math.Float64frombits(math.Float64bits(nan) ^ 1)
	c := m.GetConstantFP(f64, otherNaN)
	if a == c {
		t.Fatalf("expected a different NaN bit pattern to intern separately")
	}
}

func TestConstantStringAsString(t *testing.T) {
	m := newTestModule()
	s := m.GetConstantString("a\nb")
	want := `c"a\nb\00"`
	if s.AsString() != want {
		t.Fatalf("AsString() = %q, want %q", s.AsString(), want)
	}
}

func TestConstantIntZExtToWidens(t *testing.T) {
	m := newTestModule()
	i8 := m.GetIntegerType(8, false)
	i32 := m.GetIntegerType(32, false)

	c := m.GetConstantInt(i8, 0xFF)
	widened := c.ZExtTo(m, i32)
	if widened.Type() != Type(i32) {
		t.Fatalf("ZExtTo result type = %s, want i32", widened.Type())
	}
	if widened.ZExtValue() != 0xFF {
		t.Fatalf("ZExtTo(0xFF) = %#x, want 0xFF", widened.ZExtValue())
	}
	if widened != m.GetConstantInt(i32, 0xFF) {
		t.Fatalf("expected ZExtTo's result to intern the same as a direct GetConstantInt request")
	}
}

func TestConstantIntSExtToWidens(t *testing.T) {
	m := newTestModule()
	i8 := m.GetIntegerType(8, false)
	i32 := m.GetIntegerType(32, false)

	c := m.GetConstantInt(i8, 0xFF) // -1 in two's complement
	widened := c.SExtTo(m, i32)
	if widened.SExtValue() != -1 {
		t.Fatalf("SExtTo(-1) = %d, want -1", widened.SExtValue())
	}
}

func TestGetZeroDispatchesByKind(t *testing.T) {
	m := newTestModule()
	i32 := m.GetIntegerType(32, false)
	f64 := m.GetFloatType(64)
	ptr := m.GetPointer(i32)
	arr := m.GetArray(i32, 4)

	if _, ok := m.GetZero(i32).(*ConstantInt); !ok {
		t.Fatalf("GetZero(i32) did not return a ConstantInt")
	}
	if _, ok := m.GetZero(f64).(*ConstantFP); !ok {
		t.Fatalf("GetZero(f64) did not return a ConstantFP")
	}
	if _, ok := m.GetZero(ptr).(*ConstantPointerNull); !ok {
		t.Fatalf("GetZero(ptr) did not return a ConstantPointerNull")
	}
	if _, ok := m.GetZero(arr).(*ConstantAggregateZero); !ok {
		t.Fatalf("GetZero(array) did not return a ConstantAggregateZero")
	}
}

func TestConstantArrayElementTypeCheck(t *testing.T) {
	m := newTestModule()
	i32 := m.GetIntegerType(32, false)
	f32 := m.GetFloatType(32)

	withNonStrict(t, func() {
		arr := m.GetConstantArray(i32, []Value{m.GetConstantInt(i32, 1), m.GetConstantFP(f32, 1.0)})
		if arr != nil {
			t.Fatalf("expected element type mismatch to be rejected")
		}
	})
}
