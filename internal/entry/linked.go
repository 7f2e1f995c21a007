package entry

import (
	"fmt"
	"strconv"
)

// LinkedScalar is the set of host-variable types a LinkedEntry/LinkedFuncEntry
// can bind to (spec.md §3 "Linked-variable"/"Linked-functions"). The original
// expresses this as a C++ template instantiated per host type; Go generics
// constrained to this set plus a runtime type-switch is the idiomatic
// substitute (no virtual dispatch needed since the constraint is closed).
type LinkedScalar interface {
	~float64 | ~int | ~bool | ~string
}

func linkedAsNumber[T LinkedScalar](v T) float64 {
	switch x := any(v).(type) {
	case float64:
		return x
	case int:
		return float64(x)
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		f, _ := strconv.ParseFloat(x, 64)
		return f
	}
	return 0
}

func linkedAsString[T LinkedScalar](v T) string {
	switch x := any(v).(type) {
	case float64:
		return formatNumber(x)
	case int:
		return strconv.Itoa(x)
	case bool:
		if x {
			return "1"
		}
		return "0"
	case string:
		return x
	}
	return ""
}

func linkedFromEntry[T LinkedScalar](other Entry) (T, error) {
	var zero T
	if other.IsScope() || other.IsFunction() {
		return zero, fmt.Errorf("cannot assign a %s into linked entry", other.TypeName())
	}
	switch any(zero).(type) {
	case string:
		return any(other.AsString()).(T), nil
	case float64:
		return any(other.AsNumber()).(T), nil
	case int:
		return any(int(other.AsNumber())).(T), nil
	case bool:
		return any(other.AsNumber() != 0).(T), nil
	}
	return zero, fmt.Errorf("unsupported linked type")
}

// LinkedEntry binds a config name directly to a field on a host struct
// (spec.md §3 "Linked-variable", §6.6 host binding). Reads and writes pass
// straight through to *ptr, so the script and the host always observe the
// same value; there is no copy to keep in sync (grounded on
// ConfigEntry_Linked.hpp's ConfigEntry_Linked<T>).
type LinkedEntry[T LinkedScalar] struct {
	base
	ptr *T
}

// LinkVar creates an entry that reads and writes through ptr.
func LinkVar[T LinkedScalar](name string, ptr *T, desc string, scope *Scope) *LinkedEntry[T] {
	return &LinkedEntry[T]{base: base{name: name, desc: desc, scope: scope}, ptr: ptr}
}

func (l *LinkedEntry[T]) typeNameOf() string {
	var zero T
	switch any(zero).(type) {
	case string:
		return "String"
	default:
		return "Value"
	}
}

func (l *LinkedEntry[T]) IsNumeric() bool  { return l.typeNameOf() == "Value" }
func (l *LinkedEntry[T]) IsString() bool   { return l.typeNameOf() == "String" }
func (l *LinkedEntry[T]) TypeName() string { return l.typeNameOf() }
func (l *LinkedEntry[T]) AsNumber() float64 { return linkedAsNumber(*l.ptr) }
func (l *LinkedEntry[T]) AsString() string  { return linkedAsString(*l.ptr) }

func (l *LinkedEntry[T]) CopyValueFrom(other Entry) error {
	v, err := linkedFromEntry[T](other)
	if err != nil {
		return fmt.Errorf("entry %q: %w", l.name, err)
	}
	*l.ptr = v
	return nil
}

// Clone detaches from the host pointer and returns a local copy of the
// current value, matching the original's copy-out-of-linked semantics when
// a linked entry is duplicated into a fresh scope.
func (l *LinkedEntry[T]) Clone() Entry {
	if l.IsString() {
		return NewString(l.name, l.AsString(), l.desc, l.scope)
	}
	return NewValue(l.name, l.AsNumber(), l.desc, l.scope)
}

func (l *LinkedEntry[T]) Write(w *writer, prefix string, commentOffset int) {
	if l.IsString() {
		writeBareAssignment(w, l, prefix, commentOffset, toLiteral(l.AsString()))
		return
	}
	writeBareAssignment(w, l, prefix, commentOffset, formatNumber(l.AsNumber()))
}

// LinkedFuncEntry binds a config name to a host getter/setter pair instead
// of a bare pointer, for host state that isn't a plain addressable field
// (spec.md §3 "Linked-functions"; grounded on ConfigEntry_LinkedFunctions
// in the original's ConfigEntry_Linked.hpp).
type LinkedFuncEntry[T LinkedScalar] struct {
	base
	get func() T
	set func(T)
}

// LinkFuns creates an entry that reads and writes through get/set.
func LinkFuns[T LinkedScalar](name string, get func() T, set func(T), desc string, scope *Scope) *LinkedFuncEntry[T] {
	return &LinkedFuncEntry[T]{base: base{name: name, desc: desc, scope: scope}, get: get, set: set}
}

func (l *LinkedFuncEntry[T]) typeNameOf() string {
	var zero T
	switch any(zero).(type) {
	case string:
		return "String"
	default:
		return "Value"
	}
}

func (l *LinkedFuncEntry[T]) IsNumeric() bool   { return l.typeNameOf() == "Value" }
func (l *LinkedFuncEntry[T]) IsString() bool    { return l.typeNameOf() == "String" }
func (l *LinkedFuncEntry[T]) TypeName() string  { return l.typeNameOf() }
func (l *LinkedFuncEntry[T]) AsNumber() float64 { return linkedAsNumber(l.get()) }
func (l *LinkedFuncEntry[T]) AsString() string  { return linkedAsString(l.get()) }

func (l *LinkedFuncEntry[T]) CopyValueFrom(other Entry) error {
	v, err := linkedFromEntry[T](other)
	if err != nil {
		return fmt.Errorf("entry %q: %w", l.name, err)
	}
	l.set(v)
	return nil
}

func (l *LinkedFuncEntry[T]) Clone() Entry {
	if l.IsString() {
		return NewString(l.name, l.AsString(), l.desc, l.scope)
	}
	return NewValue(l.name, l.AsNumber(), l.desc, l.scope)
}

func (l *LinkedFuncEntry[T]) Write(w *writer, prefix string, commentOffset int) {
	if l.IsString() {
		writeBareAssignment(w, l, prefix, commentOffset, toLiteral(l.AsString()))
		return
	}
	writeBareAssignment(w, l, prefix, commentOffset, formatNumber(l.AsNumber()))
}
