package emit

import (
	llvmconstant "github.com/llir/llvm/ir/constant"
	llvmtypes "github.com/llir/llvm/ir/types"
	llvmvalue "github.com/llir/llvm/ir/value"

	"vane/ir"
)

// convertConstant translates a vane/ir.Constant into its llir/llvm
// equivalent. Aggregate constants recurse through their operands.
func (e *Emitter) convertConstant(c ir.Constant) llvmvalue.Value {
	switch cc := c.(type) {
	case *ir.ConstantInt:
		it := e.types.convertType(cc.Type()).(*llvmtypes.IntType)
		return llvmconstant.NewInt(it, cc.SExtValue())

	case *ir.ConstantFP:
		ft, ok := e.types.convertType(cc.Type()).(*llvmtypes.FloatType)
		if !ok {
			ft = llvmtypes.Double
		}
		return llvmconstant.NewFloat(ft, cc.Value())

	case *ir.ConstantString:
		return llvmconstant.NewCharArrayFromString(cc.Value() + "\x00")

	case *ir.ConstantPointerNull:
		pt := e.types.convertType(cc.Type()).(*llvmtypes.PointerType)
		return llvmconstant.NewNull(pt)

	case *ir.ConstantAggregateZero:
		return llvmconstant.NewZeroInitializer(e.types.convertType(cc.Type()))

	case *ir.ConstantArray:
		at := e.types.convertType(cc.Type()).(*llvmtypes.ArrayType)
		elems := make([]llvmconstant.Constant, len(cc.Elements()))
		for i, el := range cc.Elements() {
			elems[i] = e.convertConstant(el.(ir.Constant)).(llvmconstant.Constant)
		}
		return llvmconstant.NewArray(at, elems...)

	case *ir.ConstantStruct:
		st := e.types.convertType(cc.Type()).(*llvmtypes.StructType)
		fields := make([]llvmconstant.Constant, len(cc.Fields()))
		for i, f := range cc.Fields() {
			fields[i] = e.convertConstant(f.(ir.Constant)).(llvmconstant.Constant)
		}
		return llvmconstant.NewStruct(st, fields...)

	default:
		return llvmconstant.NewZeroInitializer(e.types.convertType(c.Type()))
	}
}
