package report

import "fmt"

// ViolationKind covers four of the five error classes the IR core
// reports. These are contract-violation classes, not Go error types:
// TypeMismatch, ShapeViolation, and StateViolation are programmer errors
// and abort in strict mode; the fifth class, a lookup miss, is a
// first-class absence value, has no ViolationKind, and is never raised
// through this mechanism; InternalInvariant indicates the core's
// own bookkeeping (use-lists, predecessor/successor mirrors) has gone out
// of sync.
type ViolationKind int

const (
	TypeMismatch ViolationKind = iota
	ShapeViolation
	StateViolation
	InternalInvariant
)

func (k ViolationKind) String() string {
	switch k {
	case TypeMismatch:
		return "type mismatch"
	case ShapeViolation:
		return "shape violation"
	case StateViolation:
		return "state violation"
	case InternalInvariant:
		return "internal invariant violated"
	default:
		return "violation"
	}
}

// Violation is the error value raised (via panic, in strict mode) or
// logged (in non-strict mode) for a contract violation. Where records
// which IR entity the violation concerns: a function name, a block label,
// or a value's textual form.
type Violation struct {
	Kind    ViolationKind
	Where   string
	Message string
}

func (v *Violation) Error() string {
	if v.Where == "" {
		return fmt.Sprintf("%s: %s", v.Kind, v.Message)
	}
	return fmt.Sprintf("%s: %s: %s", v.Where, v.Kind, v.Message)
}

// Raise reports a contract violation. In strict mode it panics with a
// *Violation; the caller of the panicking API is expected either to let
// the panic propagate (a programmer error should not be silently
// swallowed) or to run under Catch. In non-strict mode it logs at the
// reporter's current level and returns the *Violation so the caller can
// synthesize a null sentinel.
func Raise(strict bool, kind ViolationKind, where, format string, args ...interface{}) *Violation {
	v := &Violation{Kind: kind, Where: where, Message: fmt.Sprintf(format, args...)}

	r := current()
	r.m.Lock()
	r.isErr = true
	r.m.Unlock()

	if strict {
		panic(v)
	}

	if r.logLevel > LogLevelSilent {
		displayViolation(v)
	}
	return v
}

// InternalError is the panic value raised by ICE for a bug in the IR
// core's own bookkeeping, as opposed to a caller-triggered contract
// violation.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string { return "internal error: " + e.Message }

// ICE reports an internal invariant break: a bug in vane itself, not in
// caller usage. Always displayed regardless of log level, and always
// panics.
func ICE(format string, args ...interface{}) {
	e := &InternalError{Message: fmt.Sprintf(format, args...)}
	displayICE(e.Message)
	panic(e)
}

// Catch returns a function to defer at a call boundary (a CLI command, a
// test helper) that turns a *Violation or *InternalError panic back into a
// displayed diagnostic instead of a crash. Any other panic value is
// re-raised.
func Catch(label string) func() {
	return func() {
		x := recover()
		if x == nil {
			return
		}
		switch e := x.(type) {
		case *Violation:
			displayViolation(e)
		case *InternalError:
			displayICE(label + ": " + e.Message)
		default:
			panic(x)
		}
	}
}
