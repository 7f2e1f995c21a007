// Package typeregistry maps declaration type names ("Value", "String",
// host module names) to the information the parser and evaluator need to
// instantiate and wire them: a numeric index, a description, an optional
// host-object constructor, and a table of member functions (spec.md §4.6;
// grounded on ConfigTypeInfo.hpp/ConfigTypeBase.hpp).
package typeregistry

import (
	"fmt"

	"github.com/mabescript/mabescript/internal/entry"
)

// HostModule is the surface a host-registered type must implement so the
// parser can attach its configuration to a declared sub-scope (grounded on
// ConfigType.hpp's SetupScope/SetupConfig pair).
type HostModule interface {
	// SetupScope links the module's fields/functions into scope as
	// entries (typically via entry.LinkVarInto/LinkFunsInto/AddFunction).
	SetupScope(scope *entry.Scope)
	// SetupConfig runs after SetupScope, for any initialization that
	// depends on the scope already being populated.
	SetupConfig()
}

// MemberFunc is a member function registered against a type: it receives
// the host object a call was made through (nil for base types) and the
// call's evaluated arguments.
type MemberFunc func(host HostModule, args []entry.Entry) entry.Entry

// MemberFuncInfo describes one registered member function.
type MemberFuncInfo struct {
	Desc string
	Fn   MemberFunc
}

// TypeInfo is one row of the registry: everything needed to declare a
// variable of this type and later dispatch calls against it.
type TypeInfo struct {
	Index       int
	Name        string
	Desc        string
	New         func(name string) HostModule // nil for the four base types
	MemberFuncs map[string]MemberFuncInfo
}

// Registry holds the type table for one controller instance. Unlike the
// original's process-wide table, this is per-controller so multiple
// controllers in the same process never share type state (spec.md §9
// "Global state").
type Registry struct {
	byName map[string]*TypeInfo
	nextID int
}

// New builds a registry with the four base types pre-registered
// (spec.md §4.6: Void, Value, String, Struct).
func New() *Registry {
	r := &Registry{byName: make(map[string]*TypeInfo)}
	r.registerBase("Void", "No value.")
	r.registerBase("Value", "Numeric variable.")
	r.registerBase("String", "String variable.")
	r.registerBase("Struct", "Anonymous structure with sub-entries.")
	return r
}

func (r *Registry) registerBase(name, desc string) {
	r.byName[name] = &TypeInfo{Index: r.nextID, Name: name, Desc: desc, MemberFuncs: map[string]MemberFuncInfo{}}
	r.nextID++
}

// Register adds a host module type. newFn constructs one instance of the
// host object per declaration.
func (r *Registry) Register(name, desc string, newFn func(name string) HostModule) error {
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("type %q already registered", name)
	}
	r.byName[name] = &TypeInfo{
		Index:       r.nextID,
		Name:        name,
		Desc:        desc,
		New:         newFn,
		MemberFuncs: map[string]MemberFuncInfo{},
	}
	r.nextID++
	return nil
}

// AddMemberFunction attaches fn as a callable member of typeName, callable
// via a `.` path in script (spec.md §4.6).
func (r *Registry) AddMemberFunction(typeName, fnName, desc string, fn MemberFunc) error {
	info, ok := r.byName[typeName]
	if !ok {
		return fmt.Errorf("cannot add member function %q: type %q not registered", fnName, typeName)
	}
	info.MemberFuncs[fnName] = MemberFuncInfo{Desc: desc, Fn: fn}
	return nil
}

// Lookup returns the TypeInfo registered under name.
func (r *Registry) Lookup(name string) (*TypeInfo, bool) {
	info, ok := r.byName[name]
	return info, ok
}

// IsTypeName reports whether name names a registered type, the signal the
// parser uses to decide a statement opens a declaration (spec.md §4.3).
func (r *Registry) IsTypeName(name string) bool {
	_, ok := r.byName[name]
	return ok
}
