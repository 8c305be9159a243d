package ir

import "testing"

func TestLoadPrintsLoadedTypeThenPointerOperand(t *testing.T) {
	m := newTestModule()
	i32 := m.GetIntegerType(32, false)
	ptr := m.GetPointer(i32)

	f := m.CreateFunction("f", m.GetFunctionType(m.GetVoid(), []FunctionParam{{Name: "p", Type: ptr}}), false)
	b := NewBuilder(m)
	entry := f.CreateBlock(m, "entry")
	b.SetInsertPoint(entry)

	load := b.CreateLoad(f.Arguments[0])
	load.SetName("v")
	b.CreateRet(nil)

	want := "%v = load i32, i32* %p"
	if got := load.String(); got != want {
		t.Fatalf("load.String() = %q, want %q", got, want)
	}
}
