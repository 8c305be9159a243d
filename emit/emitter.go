package emit

import (
	llvmir "github.com/llir/llvm/ir"
	llvmconstant "github.com/llir/llvm/ir/constant"
	llvmenum "github.com/llir/llvm/ir/enum"
	llvmtypes "github.com/llir/llvm/ir/types"
	llvmvalue "github.com/llir/llvm/ir/value"

	"vane/ir"
	"vane/report"
)

// Emitter walks a fully-built vane/ir.Module and produces the
// equivalent github.com/llir/llvm module, mirroring the orchestration
// generator.go once performed over a chai AST: one top-level pass over
// globals and function declarations, then one pass per function body
// lowering blocks in order and instructions within each block in
// program order.
type Emitter struct {
	src *ir.Module
	dst *llvmir.Module

	types *typeCache

	globals map[*ir.GlobalVariable]*llvmir.Global
	funcs   map[*ir.Function]*llvmir.Func

	// locals is rebuilt for each function: it maps the function's
	// arguments and instruction results to their emitted llir/llvm
	// counterparts. Block labels are kept in blocks.
	locals map[ir.Value]llvmvalue.Value
	blocks map[*ir.BasicBlock]*llvmir.Block
}

// NewEmitter creates an Emitter that will lower src into a new llir/llvm
// module named src.Name.
func NewEmitter(src *ir.Module) *Emitter {
	return &Emitter{
		src:     src,
		dst:     llvmir.NewModule(),
		types:   newTypeCache(),
		globals: make(map[*ir.GlobalVariable]*llvmir.Global),
		funcs:   make(map[*ir.Function]*llvmir.Func),
	}
}

// Emit performs the full module lowering and returns the resulting
// github.com/llir/llvm module, ready for (*llvmir.Module).String() or
// (*llvmir.Module).WriteTo.
func (e *Emitter) Emit() *llvmir.Module {
	defer report.Catch("emit")()

	e.dst.SourceFilename = e.src.Name

	for _, gv := range e.src.Globals {
		e.declareGlobal(gv)
	}
	for _, f := range e.src.Functions {
		e.declareFunction(f)
	}
	for _, gv := range e.src.Globals {
		e.defineGlobal(gv)
	}
	for _, f := range e.src.Functions {
		if !f.IsDeclaration() {
			e.defineFunction(f)
		}
	}

	return e.dst
}

func (e *Emitter) declareGlobal(gv *ir.GlobalVariable) {
	elemType := e.types.convertType(gv.ElemType)
	g := e.dst.NewGlobal(gv.Name(), elemType)
	g.Immutable = gv.IsConstant
	e.globals[gv] = g
}

func (e *Emitter) defineGlobal(gv *ir.GlobalVariable) {
	g := e.globals[gv]
	if gv.Initializer != nil {
		g.Init = e.convertConstant(gv.Initializer).(llvmconstant.Constant)
	}
}

func (e *Emitter) declareFunction(f *ir.Function) {
	sig := f.Signature
	retType := e.types.convertType(sig.Return())

	params := make([]*llvmir.Param, len(f.Arguments))
	for i, a := range f.Arguments {
		params[i] = llvmir.NewParam(a.Name(), e.types.convertType(a.Type()))
	}

	lf := e.dst.NewFunc(f.Name(), retType, params...)
	e.funcs[f] = lf
}

func (e *Emitter) defineFunction(f *ir.Function) {
	lf := e.funcs[f]

	e.locals = make(map[ir.Value]llvmvalue.Value)
	e.blocks = make(map[*ir.BasicBlock]*llvmir.Block)

	for i, a := range f.Arguments {
		e.locals[a] = lf.Params[i]
	}

	for _, bb := range f.Blocks {
		e.blocks[bb] = lf.NewBlock(bb.Name())
	}

	for _, bb := range f.Blocks {
		e.lowerBlock(bb)
	}
}

func (e *Emitter) lowerBlock(bb *ir.BasicBlock) {
	lb := e.blocks[bb]
	for _, inst := range bb.Instructions() {
		e.lowerInstruction(lb, inst)
	}
}

func (e *Emitter) operand(v ir.Value) llvmvalue.Value {
	if bb, ok := v.(*ir.BasicBlock); ok {
		return e.blocks[bb]
	}
	if c, ok := v.(ir.Constant); ok {
		return e.convertConstant(c)
	}
	if lv, ok := e.locals[v]; ok {
		return lv
	}
	if f, ok := v.(*ir.Function); ok {
		return e.funcs[f]
	}
	report.ICE("emit: unresolved operand %q while lowering instruction", v.Name())
	return nil
}

func icmpPred(p ir.ICmpPredicate) llvmenum.IPred {
	switch p {
	case ir.ICmpEQ:
		return llvmenum.IPredEQ
	case ir.ICmpNE:
		return llvmenum.IPredNE
	case ir.ICmpSLT:
		return llvmenum.IPredSLT
	case ir.ICmpSLE:
		return llvmenum.IPredSLE
	case ir.ICmpSGT:
		return llvmenum.IPredSGT
	case ir.ICmpSGE:
		return llvmenum.IPredSGE
	case ir.ICmpULT:
		return llvmenum.IPredULT
	case ir.ICmpULE:
		return llvmenum.IPredULE
	case ir.ICmpUGT:
		return llvmenum.IPredUGT
	default:
		return llvmenum.IPredUGE
	}
}

func fcmpPred(p ir.FCmpPredicate) llvmenum.FPred {
	switch p {
	case ir.FCmpOEQ:
		return llvmenum.FPredOEQ
	case ir.FCmpONE:
		return llvmenum.FPredONE
	case ir.FCmpOLT:
		return llvmenum.FPredOLT
	case ir.FCmpOLE:
		return llvmenum.FPredOLE
	case ir.FCmpOGT:
		return llvmenum.FPredOGT
	default:
		return llvmenum.FPredOGE
	}
}

// lowerInstruction is the same per-opcode dispatch generate/gen_expr.go
// performed while walking a chai expression tree, adapted to walk
// vane/ir.Instruction.Opcode instead. Every branch calls exactly one
// llir/llvm block.New* constructor and records the result (if any)
// under the source instruction's identity in e.locals.
func (e *Emitter) lowerInstruction(lb *llvmir.Block, inst *ir.Instruction) {
	ops := inst.Operands()
	var result llvmvalue.Value

	switch inst.Opcode {
	case ir.OpAdd:
		result = lb.NewAdd(e.operand(ops[0]), e.operand(ops[1]))
	case ir.OpSub:
		result = lb.NewSub(e.operand(ops[0]), e.operand(ops[1]))
	case ir.OpMul:
		result = lb.NewMul(e.operand(ops[0]), e.operand(ops[1]))
	case ir.OpUDiv:
		result = lb.NewUDiv(e.operand(ops[0]), e.operand(ops[1]))
	case ir.OpSDiv:
		result = lb.NewSDiv(e.operand(ops[0]), e.operand(ops[1]))
	case ir.OpURem:
		result = lb.NewURem(e.operand(ops[0]), e.operand(ops[1]))
	case ir.OpSRem:
		result = lb.NewSRem(e.operand(ops[0]), e.operand(ops[1]))

	case ir.OpBitAnd:
		result = lb.NewAnd(e.operand(ops[0]), e.operand(ops[1]))
	case ir.OpBitOr:
		result = lb.NewOr(e.operand(ops[0]), e.operand(ops[1]))
	case ir.OpBitXor:
		result = lb.NewXor(e.operand(ops[0]), e.operand(ops[1]))
	case ir.OpShl:
		result = lb.NewShl(e.operand(ops[0]), e.operand(ops[1]))
	case ir.OpLShr:
		result = lb.NewLShr(e.operand(ops[0]), e.operand(ops[1]))
	case ir.OpAShr:
		result = lb.NewAShr(e.operand(ops[0]), e.operand(ops[1]))

	case ir.OpNeg:
		result = lb.NewSub(llvmconstant.NewInt(e.types.convertType(inst.Type()).(*llvmtypes.IntType), 0), e.operand(ops[0]))
	case ir.OpFNeg:
		result = lb.NewFNeg(e.operand(ops[0]))
	case ir.OpNot, ir.OpBitNot:
		it := e.types.convertType(inst.Type()).(*llvmtypes.IntType)
		result = lb.NewXor(e.operand(ops[0]), llvmconstant.NewInt(it, -1))

	case ir.OpAlloca:
		result = lb.NewAlloca(e.types.convertType(inst.Type().(*ir.PointerType).Elem()))
	case ir.OpLoad:
		result = lb.NewLoad(e.types.convertType(inst.Type()), e.operand(ops[0]))
	case ir.OpStore:
		lb.NewStore(e.operand(ops[0]), e.operand(ops[1]))

	case ir.OpGetElementPtr:
		indices := make([]llvmvalue.Value, len(ops)-1)
		for i, idx := range ops[1:] {
			indices[i] = e.operand(idx)
		}
		result = lb.NewGetElementPtr(e.types.convertType(inst.GEPSourceType), e.operand(ops[0]), indices...)

	case ir.OpICmp:
		result = lb.NewICmp(icmpPred(inst.ICmpPred), e.operand(ops[0]), e.operand(ops[1]))
	case ir.OpFCmp:
		result = lb.NewFCmp(fcmpPred(inst.FCmpPred), e.operand(ops[0]), e.operand(ops[1]))

	case ir.OpBr:
		lb.NewBr(e.blocks[ops[0].(*ir.BasicBlock)])
	case ir.OpCondBr:
		lb.NewCondBr(e.operand(ops[0]), e.blocks[ops[1].(*ir.BasicBlock)], e.blocks[ops[2].(*ir.BasicBlock)])
	case ir.OpRet:
		if len(ops) == 0 {
			lb.NewRet(nil)
		} else {
			lb.NewRet(e.operand(ops[0]))
		}
	case ir.OpUnreachable:
		lb.NewUnreachable()

	case ir.OpPhi:
		incs := make([]*llvmir.Incoming, inst.NumIncoming())
		for i := 0; i < inst.NumIncoming(); i++ {
			incs[i] = llvmir.NewIncoming(e.operand(inst.IncomingValue(i)), e.blocks[inst.IncomingBlock(i)])
		}
		result = lb.NewPhi(incs...)

	case ir.OpCall:
		args := make([]llvmvalue.Value, len(inst.Args()))
		for i, a := range inst.Args() {
			args[i] = e.operand(a)
		}
		result = lb.NewCall(e.operand(inst.Callee()), args...)

	case ir.OpZExt:
		result = lb.NewZExt(e.operand(ops[0]), e.types.convertType(inst.Type()))
	case ir.OpSExt:
		result = lb.NewSExt(e.operand(ops[0]), e.types.convertType(inst.Type()))
	case ir.OpTrunc:
		result = lb.NewTrunc(e.operand(ops[0]), e.types.convertType(inst.Type()))
	case ir.OpSIToFP:
		result = lb.NewSIToFP(e.operand(ops[0]), e.types.convertType(inst.Type()))
	case ir.OpUIToFP:
		result = lb.NewUIToFP(e.operand(ops[0]), e.types.convertType(inst.Type()))
	case ir.OpFPToSI:
		result = lb.NewFPToSI(e.operand(ops[0]), e.types.convertType(inst.Type()))
	case ir.OpFPToUI:
		result = lb.NewFPToUI(e.operand(ops[0]), e.types.convertType(inst.Type()))
	case ir.OpFPExt:
		result = lb.NewFPExt(e.operand(ops[0]), e.types.convertType(inst.Type()))
	case ir.OpFPTrunc:
		result = lb.NewFPTrunc(e.operand(ops[0]), e.types.convertType(inst.Type()))
	case ir.OpPtrToInt:
		result = lb.NewPtrToInt(e.operand(ops[0]), e.types.convertType(inst.Type()))
	case ir.OpIntToPtr:
		result = lb.NewIntToPtr(e.operand(ops[0]), e.types.convertType(inst.Type()))
	case ir.OpBitCast:
		result = lb.NewBitCast(e.operand(ops[0]), e.types.convertType(inst.Type()))

	default:
		report.ICE("emit: opcode %s has no lowering", inst.Opcode)
	}

	if result != nil {
		e.locals[inst] = result
	}
}
