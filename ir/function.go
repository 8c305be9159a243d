package ir

import "strings"

// Argument is one formal parameter of a Function, addressable as an SSA
// value from the function's first block onward.
type Argument struct {
	valueState

	Parent *Function
	Index  int
}

func (a *Argument) String() string { return a.typ.String() + " %" + a.name }

// -----------------------------------------------------------------------------

// Function is a module-owned sequence of basic blocks with a fixed
// signature and argument list. A Function with zero blocks is a
// declaration (an external reference); one with at least one block is a
// definition, and its entry block is always Blocks[0] (I-F1).
type Function struct {
	valueState

	Signature *FunctionType
	Arguments []*Argument
	Blocks    []*BasicBlock
	Linkage   Linkage

	// SRetSlot is set when the function was created with a hidden
	// caller-allocated return slot instead of returning its logical
	// result by value: a supplemented calling-convention feature
	// (large-aggregate returns), not present in the distilled core.
	// When non-nil, SRetSlot is also Arguments[0].
	SRetSlot *Argument
}

func newFunction(m *Module, name string, sig *FunctionType, useSRet bool) *Function {
	f := &Function{Signature: sig, Linkage: LinkageExternal}
	f.typ = m.GetPointer(sig)
	f.name = name

	params := sig.Params()
	f.Arguments = make([]*Argument, 0, len(params)+1)

	if useSRet {
		slot := &Argument{Parent: f, Index: 0}
		slot.typ = m.GetPointer(sig.Return())
		slot.name = "sret"
		f.Arguments = append(f.Arguments, slot)
		f.SRetSlot = slot
	}

	for _, p := range params {
		arg := &Argument{Parent: f, Index: len(f.Arguments)}
		arg.typ = p.Type
		arg.name = p.Name
		f.Arguments = append(f.Arguments, arg)
	}

	return f
}

// Entry returns the function's entry block, or nil if it is a
// declaration.
func (f *Function) Entry() *BasicBlock {
	if len(f.Blocks) == 0 {
		return nil
	}
	return f.Blocks[0]
}

// IsDeclaration reports whether f has no body.
func (f *Function) IsDeclaration() bool { return len(f.Blocks) == 0 }

// CreateBlock appends a new, empty basic block named label to the end of
// f's block list and returns it. The first call on a fresh function
// establishes the entry block.
func (f *Function) CreateBlock(m *Module, label string) *BasicBlock {
	bb := newBasicBlock(m, label)
	bb.Parent = f
	f.Blocks = append(f.Blocks, bb)
	return bb
}

func (f *Function) String() string {
	var sb strings.Builder
	if f.IsDeclaration() {
		sb.WriteString("declare ")
	} else {
		sb.WriteString("define ")
	}
	sb.WriteString(f.Signature.Return().String())
	sb.WriteString(" @")
	sb.WriteString(f.name)
	sb.WriteByte('(')
	for i, a := range f.Arguments {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.typ.String())
		sb.WriteString(" %")
		sb.WriteString(a.name)
	}
	sb.WriteByte(')')

	if f.IsDeclaration() {
		return sb.String()
	}

	sb.WriteString(" {\n")
	for _, bb := range f.Blocks {
		sb.WriteString(bb.String())
		sb.WriteByte('\n')
	}
	sb.WriteByte('}')
	return sb.String()
}
