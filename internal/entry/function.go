package entry

// FunctionEntry wraps a native callable exposed to scripts, either a
// built-in (ABS, PRINT, ...) or a member function registered through the
// type registry (spec.md §3 "Function", §4.6; grounded on ConfigFunction.hpp
// and ConfigEntry_Function.hpp's thin wrapper around a std::function).
type FunctionEntry struct {
	base
	fn func(args []Entry) Entry
}

// NewFunction wraps fn as a callable script entry.
func NewFunction(name string, fn func(args []Entry) Entry, desc string, scope *Scope) *FunctionEntry {
	f := &FunctionEntry{base: base{name: name, desc: desc, scope: scope}, fn: fn}
	return f
}

func (f *FunctionEntry) IsFunction() bool { return true }
func (f *FunctionEntry) TypeName() string { return "[[Function]]" }

func (f *FunctionEntry) Call(args []Entry) Entry {
	return f.fn(args)
}

func (f *FunctionEntry) Clone() Entry {
	cp := *f
	return &cp
}

// Write emits nothing: functions are host-registered or built-in, never
// round-tripped through serialized config output (spec.md §6.3).
func (f *FunctionEntry) Write(*writer, string, int) {}
