package ir

import "strings"

// BasicBlock is a maximal straight-line sequence of instructions ending in
// exactly one terminator (I-B1). It implements Value with LabelType so
// that it can appear as the operand of a Br or CondBr (a Phi records its
// incoming blocks in PhiBlocks, outside its operand list); its predecessor set
// is not stored redundantly but recovered from that same use-list
// (Predecessors), the same use-def machinery every other Value relies on.
type BasicBlock struct {
	valueState

	Parent *Function

	first, last *Instruction
}

// newBasicBlock allocates an empty, unattached block named label, typed
// with the module's singleton label type.
func newBasicBlock(m *Module, label string) *BasicBlock {
	bb := &BasicBlock{}
	bb.typ = m.labelType
	bb.name = label
	return bb
}

// Instructions returns the block's instructions in program order.
func (b *BasicBlock) Instructions() []*Instruction {
	var out []*Instruction
	for i := b.first; i != nil; i = i.next {
		out = append(out, i)
	}
	return out
}

// First returns the block's first instruction, or nil if empty.
func (b *BasicBlock) First() *Instruction { return b.first }

// Last returns the block's last instruction, or nil if empty.
func (b *BasicBlock) Last() *Instruction { return b.last }

// Empty reports whether the block holds no instructions.
func (b *BasicBlock) Empty() bool { return b.first == nil }

// GetTerminator returns the block's terminator instruction, or nil if the
// block is empty or its last instruction is not a terminator (a
// transient state during construction, before the caller appends one).
func (b *BasicBlock) GetTerminator() *Instruction {
	if b.last != nil && b.last.IsTerminator() {
		return b.last
	}
	return nil
}

// Append inserts inst at the end of the block's instruction list. It is a
// StateViolation to append after a terminator is already present (I-B1).
// Phi-before-non-phi ordering is not checked here, nor by InsertBefore,
// InsertAfter or the Builder; VerifyFunction reports it.
func (b *BasicBlock) Append(inst *Instruction) {
	if b.GetTerminator() != nil {
		stateViolation("append", "block %q already has a terminator", b.name)
		return
	}
	inst.Parent = b
	if b.last == nil {
		b.first, b.last = inst, inst
		return
	}
	inst.prev = b.last
	b.last.next = inst
	b.last = inst
}

// InsertBefore splices inst into the block immediately before mark. mark
// must already belong to this block.
func (b *BasicBlock) InsertBefore(inst, mark *Instruction) {
	if mark.Parent != b {
		shapeViolation("insert_before", "mark instruction does not belong to block %q", b.name)
		return
	}
	inst.Parent = b
	inst.next = mark
	inst.prev = mark.prev
	if mark.prev != nil {
		mark.prev.next = inst
	} else {
		b.first = inst
	}
	mark.prev = inst
}

// InsertAfter splices inst into the block immediately after mark. mark
// must already belong to this block.
func (b *BasicBlock) InsertAfter(inst, mark *Instruction) {
	if mark.Parent != b {
		shapeViolation("insert_after", "mark instruction does not belong to block %q", b.name)
		return
	}
	inst.Parent = b
	inst.prev = mark
	inst.next = mark.next
	if mark.next != nil {
		mark.next.prev = inst
	} else {
		b.last = inst
	}
	mark.next = inst
}

// Remove unlinks inst from the block's instruction list. It does not
// touch inst's own operand edges; callers that want to delete inst
// outright should RAUW it with a poison/undef value first, or ensure it
// has no remaining uses.
func (b *BasicBlock) Remove(inst *Instruction) {
	if inst.Parent != b {
		shapeViolation("remove", "instruction does not belong to block %q", b.name)
		return
	}
	if inst.prev != nil {
		inst.prev.next = inst.next
	} else {
		b.first = inst.next
	}
	if inst.next != nil {
		inst.next.prev = inst.prev
	} else {
		b.last = inst.prev
	}
	inst.prev, inst.next, inst.Parent = nil, nil, nil
}

// Successors returns the blocks this block's terminator can transfer
// control to, in operand order. Returns nil if the block has no
// terminator yet.
func (b *BasicBlock) Successors() []*BasicBlock {
	term := b.GetTerminator()
	if term == nil {
		return nil
	}
	var out []*BasicBlock
	for _, op := range term.Operands() {
		if succ, ok := op.(*BasicBlock); ok {
			out = append(out, succ)
		}
	}
	return out
}

// Predecessors returns the blocks whose terminator targets this block,
// recovered from the block's own use-list (each use is a terminator
// instruction that names this block as an operand). Order follows the
// use-list's insertion order, which is deterministic because
// instructions are only ever created and wired in one program order.
func (b *BasicBlock) Predecessors() []*BasicBlock {
	var out []*BasicBlock
	for _, u := range b.Uses() {
		inst, ok := u.User.(*Instruction)
		if !ok || inst.Parent == nil {
			continue
		}
		out = append(out, inst.Parent)
	}
	return out
}

// NumPredecessors is a convenience for len(Predecessors()), used by
// Verify to check phi arity without allocating the full slice twice.
func (b *BasicBlock) NumPredecessors() int {
	n := 0
	for _, u := range b.Uses() {
		if inst, ok := u.User.(*Instruction); ok && inst.Parent != nil {
			n++
		}
	}
	return n
}

// Phis returns the block's leading run of Phi instructions, in program
// order (I-B4: all phis in a block precede all non-phi instructions).
func (b *BasicBlock) Phis() []*Instruction {
	var out []*Instruction
	for i := b.first; i != nil && i.Opcode == OpPhi; i = i.next {
		out = append(out, i)
	}
	return out
}

func (b *BasicBlock) String() string {
	var sb strings.Builder
	sb.WriteString(b.name)
	sb.WriteString(":")
	for i := b.first; i != nil; i = i.next {
		sb.WriteString("\n  ")
		sb.WriteString(i.String())
	}
	return sb.String()
}
