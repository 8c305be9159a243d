package ir

// Builder is a stateful cursor over a Module: it tracks a current
// insertion block and appends each instruction it constructs at that
// cursor, the same "current basic block" convention the ancestor's own
// IRBuilder used, but generalized to the module/function/block model
// this package builds instead of a flat bitcode stream.
type Builder struct {
	Module  *Module
	block   *BasicBlock
	nameSeq int
}

// NewBuilder creates a Builder bound to m with no current block. Callers
// must call SetInsertPoint before issuing any instruction constructor.
func NewBuilder(m *Module) *Builder {
	return &Builder{Module: m}
}

// SetInsertPoint moves the cursor to the end of block. Subsequent
// instructions are appended after whatever the block currently holds.
func (b *Builder) SetInsertPoint(block *BasicBlock) {
	b.block = block
}

// InsertBlock returns the block the cursor currently targets, or nil if
// none has been set.
func (b *Builder) InsertBlock() *BasicBlock { return b.block }

// autoName returns a fresh, builder-scoped temporary name for an
// unnamed result; it is unique only within this Builder's lifetime,
// mirroring how the ancestor's own generator numbered anonymous
// temporaries as it lowered each expression.
func (b *Builder) autoName() string {
	b.nameSeq++
	return itoa(b.nameSeq)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

func (b *Builder) emit(inst *Instruction) *Instruction {
	if inst == nil {
		return nil
	}
	if b.block == nil {
		stateViolation("builder", "no insertion point set")
		return inst
	}
	if _, void := inst.typ.(*VoidType); !void && inst.name == "" {
		inst.name = b.autoName()
	}
	b.block.Append(inst)
	return inst
}

// -----------------------------------------------------------------------------
// Convenience constructors. Each wraps the corresponding New* function in
// instruction.go with cursor insertion; validation stays in the
// constructor itself so unattached callers (tests, other packages
// building IR without a Builder) get the same guarantees.

func (b *Builder) CreateAdd(lhs, rhs Value) *Instruction  { return b.emit(NewBinary(OpAdd, lhs, rhs)) }
func (b *Builder) CreateSub(lhs, rhs Value) *Instruction  { return b.emit(NewBinary(OpSub, lhs, rhs)) }
func (b *Builder) CreateMul(lhs, rhs Value) *Instruction  { return b.emit(NewBinary(OpMul, lhs, rhs)) }
func (b *Builder) CreateUDiv(lhs, rhs Value) *Instruction { return b.emit(NewBinary(OpUDiv, lhs, rhs)) }
func (b *Builder) CreateSDiv(lhs, rhs Value) *Instruction { return b.emit(NewBinary(OpSDiv, lhs, rhs)) }
func (b *Builder) CreateURem(lhs, rhs Value) *Instruction { return b.emit(NewBinary(OpURem, lhs, rhs)) }
func (b *Builder) CreateSRem(lhs, rhs Value) *Instruction { return b.emit(NewBinary(OpSRem, lhs, rhs)) }

func (b *Builder) CreateAnd(lhs, rhs Value) *Instruction { return b.emit(NewBinary(OpBitAnd, lhs, rhs)) }
func (b *Builder) CreateOr(lhs, rhs Value) *Instruction  { return b.emit(NewBinary(OpBitOr, lhs, rhs)) }
func (b *Builder) CreateXor(lhs, rhs Value) *Instruction { return b.emit(NewBinary(OpBitXor, lhs, rhs)) }
func (b *Builder) CreateShl(lhs, rhs Value) *Instruction { return b.emit(NewBinary(OpShl, lhs, rhs)) }
func (b *Builder) CreateLShr(lhs, rhs Value) *Instruction { return b.emit(NewBinary(OpLShr, lhs, rhs)) }
func (b *Builder) CreateAShr(lhs, rhs Value) *Instruction { return b.emit(NewBinary(OpAShr, lhs, rhs)) }

func (b *Builder) CreateNeg(v Value) *Instruction    { return b.emit(NewUnary(OpNeg, v)) }
func (b *Builder) CreateNot(v Value) *Instruction    { return b.emit(NewUnary(OpNot, v)) }
func (b *Builder) CreateFNeg(v Value) *Instruction   { return b.emit(NewUnary(OpFNeg, v)) }
func (b *Builder) CreateBitNot(v Value) *Instruction { return b.emit(NewUnary(OpBitNot, v)) }

// CreateAlloca allocates a stack slot for elem and returns a pointer to
// it. Unlike other constructors, an Alloca is conventionally kept in the
// function's entry block by callers doing SSA construction, but Builder
// itself does not enforce that placement.
func (b *Builder) CreateAlloca(elem Type) *Instruction {
	return b.emit(NewAlloca(b.Module, elem))
}

func (b *Builder) CreateLoad(ptr Value) *Instruction { return b.emit(NewLoad(ptr)) }

func (b *Builder) CreateStore(val, ptr Value) *Instruction {
	return b.emit(NewStore(b.Module, val, ptr))
}

// CreateGEP walks base by indices; see NewGetElementPtr for the index
// semantics.
func (b *Builder) CreateGEP(base Value, indices []Value) *Instruction {
	return b.emit(NewGetElementPtr(b.Module, base, indices))
}

// CreateStructGEP is a convenience over CreateGEP for the common case of
// stepping from a pointer-to-struct to a pointer to one of its members:
// the leading zero index keeps the pointer at the same object, and
// fieldIndex selects the member.
func (b *Builder) CreateStructGEP(base Value, fieldIndex int) *Instruction {
	zero := b.Module.GetConstantInt(b.Module.GetIntegerType(32, false), 0)
	idx := b.Module.GetConstantInt(b.Module.GetIntegerType(32, false), uint64(fieldIndex))
	return b.CreateGEP(base, []Value{zero, idx})
}

func (b *Builder) CreateICmp(pred ICmpPredicate, lhs, rhs Value) *Instruction {
	return b.emit(NewICmp(b.Module, pred, lhs, rhs))
}

func (b *Builder) CreateFCmp(pred FCmpPredicate, lhs, rhs Value) *Instruction {
	return b.emit(NewFCmp(b.Module, pred, lhs, rhs))
}

func (b *Builder) CreateBr(target *BasicBlock) *Instruction {
	return b.emit(NewBr(b.Module, target))
}

func (b *Builder) CreateCondBr(cond Value, trueBB, falseBB *BasicBlock) *Instruction {
	return b.emit(NewCondBr(b.Module, cond, trueBB, falseBB))
}

func (b *Builder) CreateRet(value Value) *Instruction {
	if value != nil && b.block != nil && b.block.Parent != nil {
		if want := b.block.Parent.Signature.Return(); value.Type() != want {
			typeMismatch("ret", "return value type %s does not match function return type %s", value.Type(), want)
			return nil
		}
	}
	return b.emit(NewRet(b.Module, value))
}

func (b *Builder) CreateUnreachable() *Instruction {
	return b.emit(NewUnreachable(b.Module))
}

// CreatePhi creates and inserts an empty phi node of typ; incoming pairs
// are added afterward with AddIncoming.
func (b *Builder) CreatePhi(typ Type) *Instruction {
	return b.emit(NewPhi(typ))
}

func (b *Builder) CreateCall(callee Value, sig *FunctionType, args []Value) *Instruction {
	return b.emit(NewCall(callee, sig, args))
}

// CreateCast dispatches to the single narrowest correct conversion
// opcode for (value.Type(), target), the same responsibility
// generate/gen_expr.go's genCast carried in the ancestor: an integer
// widening picks ZExt or SExt by signedness, a float/float or int/float
// pair picks the matching *toFP/*ToSI/*ToUI variant, and a same-size
// reinterpretation falls back to BitCast/PtrToInt/IntToPtr. Casting a
// value to its own type is a no-op that returns value unchanged rather
// than emitting an instruction, so the result is Value, not *Instruction.
func (b *Builder) CreateCast(value Value, target Type) Value {
	src := value.Type()
	if src == target {
		return value
	}

	switch {
	case src.Kind() == IntegerKind && target.Kind() == IntegerKind:
		sInt, dInt := src.(*IntegerType), target.(*IntegerType)
		switch {
		case sInt.width < dInt.width:
			if sInt.unsigned {
				return b.emit(NewCast(OpZExt, value, target))
			}
			return b.emit(NewCast(OpSExt, value, target))
		case sInt.width > dInt.width:
			return b.emit(NewCast(OpTrunc, value, target))
		default:
			return b.emit(NewCast(OpBitCast, value, target))
		}

	case src.Kind() == IntegerKind && target.Kind() == FloatKind:
		sInt := src.(*IntegerType)
		if sInt.unsigned {
			return b.emit(NewCast(OpUIToFP, value, target))
		}
		return b.emit(NewCast(OpSIToFP, value, target))

	case src.Kind() == FloatKind && target.Kind() == IntegerKind:
		dInt := target.(*IntegerType)
		if dInt.unsigned {
			return b.emit(NewCast(OpFPToUI, value, target))
		}
		return b.emit(NewCast(OpFPToSI, value, target))

	case src.Kind() == FloatKind && target.Kind() == FloatKind:
		sFloat, dFloat := src.(*FloatType), target.(*FloatType)
		if sFloat.width < dFloat.width {
			return b.emit(NewCast(OpFPExt, value, target))
		}
		return b.emit(NewCast(OpFPTrunc, value, target))

	case src.Kind() == PointerKind && target.Kind() == IntegerKind:
		return b.emit(NewCast(OpPtrToInt, value, target))

	case src.Kind() == IntegerKind && target.Kind() == PointerKind:
		return b.emit(NewCast(OpIntToPtr, value, target))

	default:
		return b.emit(NewCast(OpBitCast, value, target))
	}
}

// GetInt is a convenience wrapping Module.GetConstantInt for the
// integer type of the given width/signedness.
func (b *Builder) GetInt(width uint32, unsigned bool, value uint64) *ConstantInt {
	return b.Module.GetConstantInt(b.Module.GetIntegerType(width, unsigned), value)
}

// GetFloat is a convenience wrapping Module.GetConstantFP for the float
// type of the given bit width.
func (b *Builder) GetFloat(width uint32, value float64) *ConstantFP {
	return b.Module.GetConstantFP(b.Module.GetFloatType(width), value)
}

// GetZero is a convenience wrapping Module.GetZero.
func (b *Builder) GetZero(t Type) Constant {
	return b.Module.GetZero(t)
}
