package report

import "testing"

func TestRaiseStrictPanics(t *testing.T) {
	Init(LogLevelSilent)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected Raise(strict=true, ...) to panic")
		}
	}()
	Raise(true, TypeMismatch, "add", "operand types differ")
}

func TestRaiseNonStrictReturnsViolation(t *testing.T) {
	Init(LogLevelSilent)

	v := Raise(false, ShapeViolation, "gep", "index %d out of range", 3)
	if v == nil {
		t.Fatalf("expected a non-nil violation")
	}
	if v.Kind != ShapeViolation {
		t.Fatalf("Kind = %v, want %v", v.Kind, ShapeViolation)
	}
	if !AnyErrors() {
		t.Fatalf("expected AnyErrors() to report true after a Raise")
	}
}

func TestCatchRecoversViolationPanic(t *testing.T) {
	Init(LogLevelSilent)

	func() {
		defer Catch("test")()
		Raise(true, StateViolation, "block", "already sealed")
	}()
	// If Catch failed to recover, the panic above would have already
	// failed this test by propagating out of the function literal.
}

func TestCatchRepanicsOnUnknownValue(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Catch to re-panic an unrecognized value")
		}
	}()
	func() {
		defer Catch("test")()
		panic("not a violation")
	}()
}
