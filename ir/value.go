package ir

// Use is one incoming edge from a User's operand slot to the Value that
// slot references. Value.Uses returns the set of Uses pointing at it;
// User.SetOperand installs and removes these edges atomically in both
// directions, mechanising invariant I-V1: for every operand edge u -> v,
// v's use-list contains u.
type Use struct {
	User User
	Idx  int
}

// Value is implemented by every SSA value in a module: instructions,
// constants, arguments, basic blocks (as branch targets), functions, and
// globals. The unexported addUse/removeUse methods restrict
// implementations to this package, mirroring how the arena owns every
// entity's lifetime.
type Value interface {
	Type() Type
	Name() string
	SetName(string)

	// Uses returns a snapshot of the Value's current use-list. Mutating
	// the returned slice has no effect on the Value.
	Uses() []*Use

	// ReplaceAllUsesWith redirects every current use of the receiver to
	// newV, then clears the receiver's use-list (RAUW).
	ReplaceAllUsesWith(newV Value)

	addUse(u *Use)
	removeUse(u *Use)
}

// User is a Value that additionally carries an ordered operand list: an
// Instruction, or an aggregate Constant referencing its element values.
type User interface {
	Value
	Operands() []Value
	NumOperands() int
	SetOperand(i int, v Value)
}

// valueState is the shared field set backing every Value implementation.
// Concrete types embed it by value and get Value's exported methods for
// free through method promotion; each constructor sets typ/name directly
// once at creation, honoring I-V3 (a Value's type is immutable after
// creation).
type valueState struct {
	typ  Type
	name string
	uses []*Use
}

func (v *valueState) Type() Type       { return v.typ }
func (v *valueState) Name() string     { return v.name }
func (v *valueState) SetName(n string) { v.name = n }

func (v *valueState) Uses() []*Use {
	out := make([]*Use, len(v.uses))
	copy(out, v.uses)
	return out
}

func (v *valueState) addUse(u *Use) {
	v.uses = append(v.uses, u)
}

func (v *valueState) removeUse(u *Use) {
	for i, x := range v.uses {
		if x == u {
			v.uses = append(v.uses[:i], v.uses[i+1:]...)
			return
		}
	}
}

// ReplaceAllUsesWith snapshots the use-list first and clears it before
// redirecting, so that the SetOperand calls it triggers (which call back
// into removeUse on the receiver) never observe a slice being mutated out
// from under an in-progress range.
func (v *valueState) ReplaceAllUsesWith(newV Value) {
	uses := v.uses
	v.uses = nil
	for _, u := range uses {
		u.User.SetOperand(u.Idx, newV)
	}
}

// -----------------------------------------------------------------------------

// opBase is the shared field set backing every User implementation: an
// ordered operand list plus one Use record per slot. initOperands must be
// called once by the concrete constructor, passing the concrete User
// pointer itself as owner, before any SetOperand call.
type opBase struct {
	operands []Value
	opUses   []*Use
}

func (o *opBase) initOperands(owner User, n int) {
	o.operands = make([]Value, n)
	o.opUses = make([]*Use, n)
	for i := range o.opUses {
		o.opUses[i] = &Use{User: owner, Idx: i}
	}
}

func (o *opBase) Operands() []Value {
	out := make([]Value, len(o.operands))
	copy(out, o.operands)
	return out
}

func (o *opBase) NumOperands() int { return len(o.operands) }

// SetOperand removes the receiver from the old operand's use-list (if
// any), installs the new operand, and registers the receiver on the new
// operand's use-list (if non-nil). Both directions are updated in one call
// so no intermediate state is observable (I-V2).
func (o *opBase) SetOperand(i int, v Value) {
	old := o.operands[i]
	if old != nil {
		old.removeUse(o.opUses[i])
	}
	o.operands[i] = v
	if v != nil {
		v.addUse(o.opUses[i])
	}
}
