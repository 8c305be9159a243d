package ir

import (
	"fmt"

	"vane/util"
)

// VerifyError describes one structural invariant violation found while
// walking a Function or Module. Verify collects every violation it finds
// rather than stopping at the first, the way a linter reports every
// finding in one pass instead of one error at a time.
type VerifyError struct {
	Where   string
	Message string
}

func (e *VerifyError) Error() string { return e.Where + ": " + e.Message }

// VerifyFunction checks a function's basic blocks against the
// structural invariants of the core specification: terminator
// discipline (I-B1), phi-before-non-phi ordering (I-B4), phi arity
// matching predecessor count (I-B5), and that no instruction has a nil
// operand slot. It does not check which module an operand belongs to or
// whether use-lists mirror operand edges. It returns every violation
// found, or nil if the function is well-formed.
func VerifyFunction(f *Function) []*VerifyError {
	var errs []*VerifyError
	report := func(where, format string, args ...interface{}) {
		errs = append(errs, &VerifyError{Where: where, Message: fmt.Sprintf(format, args...)})
	}

	if f.IsDeclaration() {
		return errs
	}

	seenNames := make([]string, 0, len(f.Blocks))
	for _, bb := range f.Blocks {
		where := f.name + "/" + bb.name

		if util.Contains(seenNames, bb.name) {
			report(where, "duplicate block label")
		}
		seenNames = append(seenNames, bb.name)

		if bb.Empty() {
			report(where, "block has no instructions")
			continue
		}

		term := bb.GetTerminator()
		if term == nil {
			report(where, "block does not end in a terminator")
		}

		seenNonPhi := false
		for inst := bb.first; inst != nil; inst = inst.next {
			if inst.Opcode == OpPhi {
				if seenNonPhi {
					report(where, "phi instruction follows a non-phi instruction")
				}
			} else {
				seenNonPhi = true
			}

			if inst.IsTerminator() && inst != bb.last {
				report(where, "terminator is not the last instruction in the block")
			}

			for i, op := range inst.Operands() {
				if op == nil {
					report(where, "instruction %s has a nil operand at index %d", inst.Opcode, i)
				}
			}
		}

		for _, phi := range bb.Phis() {
			if phi.NumIncoming() != bb.NumPredecessors() {
				report(where, "phi arity %d does not match predecessor count %d", phi.NumIncoming(), bb.NumPredecessors())
			}
		}
	}

	return errs
}

// VerifyModule runs VerifyFunction over every function defined in m.
func VerifyModule(m *Module) []*VerifyError {
	var errs []*VerifyError
	for _, f := range m.Functions {
		errs = append(errs, VerifyFunction(f)...)
	}
	return errs
}
