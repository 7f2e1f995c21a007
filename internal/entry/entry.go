// Package entry implements the symbol-table cell: a sealed variant over
// value, string, linked-variable, linked-functions, scope, function, and
// error kinds, all presenting a uniform convert/assign surface.
package entry

import (
	"fmt"
	"strconv"
)

// Entry is the atomic symbol-table cell. Every concrete kind embeds base,
// which supplies the shared name/description/scope/flag bookkeeping; kinds
// override only the behavior that differs from the defaults base provides.
type Entry interface {
	Name() string
	SetName(string)
	Desc() string
	ParentScope() *Scope
	SetParentScope(*Scope)
	Temporary() bool
	SetTemporary(bool)
	Builtin() bool
	SetBuiltin()

	TypeName() string
	IsNumeric() bool
	IsString() bool
	IsScope() bool
	IsFunction() bool
	IsError() bool

	AsNumber() float64
	AsString() string
	CopyValueFrom(other Entry) error
	Clone() Entry
	Call(args []Entry) Entry

	Write(w *writer, prefix string, commentOffset int)
}

// base supplies the shared header (name, description, parent scope,
// temporary/builtin flags) and the default behavior for every operation a
// concrete kind does not need to override: this is the idiomatic Go
// substitute for the source language's ConfigEntry virtual base (see
// SPEC_FULL.md §6.2 / §9 "Polymorphic entries").
type base struct {
	name      string
	desc      string
	scope     *Scope
	temporary bool
	builtin   bool
}

func (b *base) Name() string             { return b.name }
func (b *base) SetName(n string)         { b.name = n }
func (b *base) Desc() string             { return b.desc }
func (b *base) ParentScope() *Scope      { return b.scope }
func (b *base) SetParentScope(s *Scope)  { b.scope = s }
func (b *base) Temporary() bool          { return b.temporary }
func (b *base) SetTemporary(t bool)      { b.temporary = t }
func (b *base) Builtin() bool            { return b.builtin }
func (b *base) SetBuiltin()              { b.builtin = true }
func (b *base) IsNumeric() bool          { return false }
func (b *base) IsString() bool           { return false }
func (b *base) IsScope() bool            { return false }
func (b *base) IsFunction() bool         { return false }
func (b *base) IsError() bool            { return false }
func (b *base) TypeName() string         { return "Unknown" }
func (b *base) AsNumber() float64        { return 0 }
func (b *base) AsString() string         { return "" }
func (b *base) CopyValueFrom(Entry) error { return fmt.Errorf("cannot assign into %q", b.name) }

// Call is the default for any non-function entry: it produces an error
// entry rather than asserting, matching spec.md §4.2's call contract.
func (b *base) Call([]Entry) Entry {
	return NewError(fmt.Sprintf("cannot call a function on non-function '%s'", b.name))
}

// ValueEntry owns a floating-point datum (spec.md §3 "Value-local").
type ValueEntry struct {
	base
	value float64
}

// NewValue creates a local numeric entry.
func NewValue(name string, value float64, desc string, scope *Scope) *ValueEntry {
	return &ValueEntry{base: base{name: name, desc: desc, scope: scope}, value: value}
}

func (v *ValueEntry) IsNumeric() bool   { return true }
func (v *ValueEntry) TypeName() string  { return "Value" }
func (v *ValueEntry) AsNumber() float64 { return v.value }
func (v *ValueEntry) AsString() string  { return formatNumber(v.value) }
func (v *ValueEntry) SetNumber(n float64) { v.value = n }

func (v *ValueEntry) CopyValueFrom(other Entry) error {
	if other.IsScope() || other.IsFunction() {
		return fmt.Errorf("cannot assign a %s into numeric entry %q", other.TypeName(), v.name)
	}
	v.value = other.AsNumber()
	return nil
}

func (v *ValueEntry) Clone() Entry {
	cp := *v
	return &cp
}

func (v *ValueEntry) Write(w *writer, prefix string, commentOffset int) {
	writeScalar(w, v, prefix, commentOffset, formatNumber(v.value))
}

// StringEntry owns a string datum (spec.md §3 "String-local").
type StringEntry struct {
	base
	value string
}

// NewString creates a local string entry.
func NewString(name, value, desc string, scope *Scope) *StringEntry {
	return &StringEntry{base: base{name: name, desc: desc, scope: scope}, value: value}
}

func (s *StringEntry) IsString() bool  { return true }
func (s *StringEntry) TypeName() string { return "String" }
func (s *StringEntry) AsNumber() float64 {
	f, _ := strconv.ParseFloat(s.value, 64)
	return f
}
func (s *StringEntry) AsString() string    { return s.value }
func (s *StringEntry) SetString(v string)  { s.value = v }

func (s *StringEntry) CopyValueFrom(other Entry) error {
	if other.IsScope() || other.IsFunction() {
		return fmt.Errorf("cannot assign a %s into string entry %q", other.TypeName(), s.name)
	}
	s.value = other.AsString()
	return nil
}

func (s *StringEntry) Clone() Entry {
	cp := *s
	return &cp
}

func (s *StringEntry) Write(w *writer, prefix string, commentOffset int) {
	writeScalar(w, s, prefix, commentOffset, toLiteral(s.value))
}

// ErrorEntry is always temporary and carries an explanatory message in its
// description (spec.md §3 "Error").
type ErrorEntry struct {
	base
}

// NewError builds a temporary error entry carrying msg.
func NewError(msg string) *ErrorEntry {
	e := &ErrorEntry{base: base{name: "__Error", desc: msg, temporary: true}}
	return e
}

func (e *ErrorEntry) IsError() bool     { return true }
func (e *ErrorEntry) TypeName() string  { return "[[Error]]" }
func (e *ErrorEntry) AsString() string  { return e.desc }
func (e *ErrorEntry) Message() string   { return e.desc }
func (e *ErrorEntry) Clone() Entry {
	cp := *e
	return &cp
}
func (e *ErrorEntry) Write(*writer, string, int) {}

// formatNumber prints a float64 canonically, with no trailing zeros or
// decimal point for integral values (spec.md §4.2 conversion table).
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
