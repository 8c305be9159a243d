package ir

// Linkage controls how a Function or GlobalVariable is visible outside
// its own module, mirrored from the ancestor's Bundle/IRSymbol linkage
// bitset now that Bundle itself has been folded into Module.
type Linkage int

const (
	// LinkagePrivate is visible only within this module and never
	// referenced by name from generated output.
	LinkagePrivate Linkage = iota
	// LinkageInternal is module-local but still named in output.
	LinkageInternal
	// LinkageExternal is visible to, and may be defined in, other
	// modules.
	LinkageExternal
	// LinkageDllImport marks a symbol defined in another module that
	// must be imported across a shared-library boundary.
	LinkageDllImport
	// LinkageDllExport marks a symbol this module defines and exposes
	// across a shared-library boundary.
	LinkageDllExport
)

func (l Linkage) String() string {
	switch l {
	case LinkagePrivate:
		return "private"
	case LinkageInternal:
		return "internal"
	case LinkageExternal:
		return "external"
	case LinkageDllImport:
		return "dllimport"
	case LinkageDllExport:
		return "dllexport"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------

// GlobalVariable is a module-owned storage location. Its Value type is
// always a pointer to ElemType; loading/storing through it uses the same
// Load/Store instructions as a stack alloca.
type GlobalVariable struct {
	valueState

	ElemType    Type
	Linkage     Linkage
	IsConstant  bool
	Initializer Constant // nil for a tentative/external definition
}

func newGlobalVariable(m *Module, name string, elem Type, isConst bool) *GlobalVariable {
	gv := &GlobalVariable{ElemType: elem, IsConstant: isConst, Linkage: LinkageExternal}
	gv.typ = m.GetPointer(elem)
	gv.name = name
	return gv
}

// SetInitializer attaches a constant initializer. The constant's type
// must equal ElemType.
func (gv *GlobalVariable) SetInitializer(c Constant) {
	if c != nil && c.Type() != gv.ElemType {
		typeMismatch("global_variable.set_initializer", "initializer type %s does not match element type %s", c.Type(), gv.ElemType)
		return
	}
	gv.Initializer = c
}

func (gv *GlobalVariable) String() string {
	kw := "global"
	if gv.IsConstant {
		kw = "constant"
	}
	s := "@" + gv.name + " = " + gv.Linkage.String() + " " + kw + " " + gv.ElemType.String()
	if gv.Initializer != nil {
		s += " " + gv.Initializer.AsString()
	}
	return s
}
