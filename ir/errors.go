package ir

import "vane/report"

// Strict controls how contract violations are reported (§7 of the core
// specification). In strict mode (the default, analogous to a debug
// build) a violation panics with a *report.Violation. When Strict is
// false (analogous to a release build) the violation is logged through
// package report and the offending constructor returns a null sentinel
// instead of panicking.
var Strict = true

// violate raises a contract violation anchored to where (a function name,
// block label, or value's textual form).
func violate(kind report.ViolationKind, where, format string, args ...interface{}) *report.Violation {
	return report.Raise(Strict, kind, where, format, args...)
}

// typeMismatch is a convenience wrapper for the most common violation
// kind raised by instruction constructors.
func typeMismatch(where, format string, args ...interface{}) *report.Violation {
	return violate(report.TypeMismatch, where, format, args...)
}

func shapeViolation(where, format string, args ...interface{}) *report.Violation {
	return violate(report.ShapeViolation, where, format, args...)
}

func stateViolation(where, format string, args ...interface{}) *report.Violation {
	return violate(report.StateViolation, where, format, args...)
}
