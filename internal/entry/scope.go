package entry

import "fmt"

// Scope is a named collection of entries (spec.md §3 "Scope"): a tree node in
// the symbol table that itself presents as an Entry so scopes can nest and
// be looked up through dotted paths like any other value (grounded on
// ConfigEntry_Scope.hpp). insertOrder preserves declaration order for Write,
// since Go maps iterate unordered and the original's emp::map was ordered.
type Scope struct {
	base
	typeName    string
	entries     map[string]Entry
	insertOrder []string
}

// NewScope creates an empty scope. typeName is the struct-like type tag used
// when the scope is declared with a named type ("type" in the original); it
// may be empty (as for the controller's root scope), in which case Write
// omits it.
func NewScope(name, desc, typeName string, parent *Scope) *Scope {
	return &Scope{
		base:     base{name: name, desc: desc, scope: parent},
		typeName: typeName,
		entries:  make(map[string]Entry),
	}
}

func (s *Scope) IsScope() bool   { return true }
func (s *Scope) TypeName() string { return s.typeName }

// Get returns the entry named name declared directly in this scope, or nil.
func (s *Scope) Get(name string) Entry {
	return s.entries[name]
}

// Lookup resolves name against this scope, scanning enclosing scopes when
// scanParents is true and the name isn't found locally (grounded on
// ConfigEntry_Scope::LookupEntry).
func (s *Scope) Lookup(name string, scanParents bool) Entry {
	if e, ok := s.entries[name]; ok {
		return e
	}
	if !scanParents || s.scope == nil {
		return nil
	}
	return s.scope.Lookup(name, true)
}

// add inserts e under its own name, rejecting redeclaration (the original
// only asserts here; spec.md §7 requires a user-facing error instead).
func (s *Scope) add(e Entry) error {
	if _, exists := s.entries[e.Name()]; exists {
		return fmt.Errorf("redeclaration of %q in scope %q", e.Name(), s.name)
	}
	e.SetParentScope(s)
	s.entries[e.Name()] = e
	s.insertOrder = append(s.insertOrder, e.Name())
	return nil
}

// Add inserts a pre-built entry as a normal, user-visible member.
func (s *Scope) Add(e Entry) error { return s.add(e) }

// AddBuiltin inserts a pre-built entry and flags it built-in, so Write skips
// it when the scope is serialized back out.
func (s *Scope) AddBuiltin(e Entry) error {
	if err := s.add(e); err != nil {
		return err
	}
	e.SetBuiltin()
	return nil
}

// AddValueVar declares a local numeric entry, defaulting to 0.
func (s *Scope) AddValueVar(name, desc string) (*ValueEntry, error) {
	v := NewValue(name, 0, desc, s)
	if err := s.add(v); err != nil {
		return nil, err
	}
	return v, nil
}

// AddStringVar declares a local string entry, defaulting to "".
func (s *Scope) AddStringVar(name, desc string) (*StringEntry, error) {
	v := NewString(name, "", desc, s)
	if err := s.add(v); err != nil {
		return nil, err
	}
	return v, nil
}

// AddScope declares a nested scope.
func (s *Scope) AddScope(name, desc, typeName string) (*Scope, error) {
	child := NewScope(name, desc, typeName, s)
	if err := s.add(child); err != nil {
		return nil, err
	}
	return child, nil
}

// AddFunction declares a user- or host-registered function.
func (s *Scope) AddFunction(name string, fn func(args []Entry) Entry, desc string) (*FunctionEntry, error) {
	f := NewFunction(name, fn, desc, s)
	if err := s.add(f); err != nil {
		return nil, err
	}
	return f, nil
}

// AddBuiltinFunction declares a function and marks it built-in (the engine's
// math/control-flow intrinsics use this so they never show up in Write
// output, matching spec.md §6.3).
func (s *Scope) AddBuiltinFunction(name string, fn func(args []Entry) Entry, desc string) (*FunctionEntry, error) {
	f, err := s.AddFunction(name, fn, desc)
	if err != nil {
		return nil, err
	}
	f.SetBuiltin()
	return f, nil
}

// LinkVarInto declares an entry backed directly by a host variable.
func LinkVarInto[T LinkedScalar](s *Scope, name string, ptr *T, desc string, builtin bool) (*LinkedEntry[T], error) {
	e := LinkVar(name, ptr, desc, s)
	var err error
	if builtin {
		err = s.AddBuiltin(e)
	} else {
		err = s.Add(e)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// LinkFunsInto declares an entry backed by a host getter/setter pair.
func LinkFunsInto[T LinkedScalar](s *Scope, name string, get func() T, set func(T), desc string, builtin bool) (*LinkedFuncEntry[T], error) {
	e := LinkFuns(name, get, set, desc, s)
	var err error
	if builtin {
		err = s.AddBuiltin(e)
	} else {
		err = s.Add(e)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Scope) CopyValueFrom(other Entry) error {
	return fmt.Errorf("cannot assign into scope %q", s.name)
}

// Clone deep-copies the scope and every entry it directly contains,
// matching the original's copy constructor which clones the whole
// symbol table rather than sharing entries.
func (s *Scope) Clone() Entry {
	cp := NewScope(s.name, s.desc, s.typeName, s.scope)
	cp.temporary = s.temporary
	cp.builtin = s.builtin
	for _, name := range s.insertOrder {
		child := s.entries[name].Clone()
		child.SetParentScope(cp)
		cp.entries[name] = child
		cp.insertOrder = append(cp.insertOrder, name)
	}
	return cp
}

// WriteContents writes every non-built-in member of the scope, in
// declaration order, without the enclosing "Type name { ... }" wrapper.
func (s *Scope) WriteContents(w *writer, prefix string, commentOffset int) {
	for _, name := range s.insertOrder {
		e := s.entries[name]
		if e.Builtin() {
			continue
		}
		e.Write(w, prefix, commentOffset)
	}
}

func (s *Scope) hasVisibleBody() bool {
	for _, name := range s.insertOrder {
		if !s.entries[name].Builtin() {
			return true
		}
	}
	return false
}

// Write renders "[Type ]name { ...contents... }" or, for an empty scope,
// "[Type ]name;" (grounded on ConfigEntry_Scope::Write).
func (s *Scope) Write(w *writer, prefix string, commentOffset int) {
	if s.Builtin() {
		return
	}

	line := prefix
	if s.typeName != "" {
		line += s.typeName + " "
	}
	line += s.name

	hasBody := s.hasVisibleBody()
	if hasBody {
		line += " { "
	} else {
		line += ";"
	}
	writeString(w, line)
	writeDesc(w, s.desc, commentOffset, len(line))

	if hasBody {
		s.WriteContents(w, prefix+"  ", commentOffset)
		writeString(w, prefix+"}\n")
	}
}
