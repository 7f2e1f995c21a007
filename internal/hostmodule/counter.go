// Package hostmodule provides one sample host-registered type, Counter,
// exercising the type registry (C7) end to end: a linked numeric field plus
// one member function, wired the way original_source/source/config/
// ConfigType.hpp's SetupScope/SetupConfig pair does it for real MABE
// modules (spec.md §9 "Custom types"; SPEC_FULL.md §4 "Host module sample
// (C12)").
package hostmodule

import (
	"github.com/mabescript/mabescript/internal/entry"
	"github.com/mabescript/mabescript/internal/typeregistry"
)

// Counter tracks a single running total, driven from script through its
// linked "count" field and its "Bump" member function; host code reads it
// through Value.
type Counter struct {
	name  string
	count float64
}

// NewCounter builds an uninitialized Counter named name; this is the
// typeregistry.TypeInfo.New constructor a controller registers under
// "Counter".
func NewCounter(name string) typeregistry.HostModule {
	return &Counter{name: name}
}

// Value returns the counter's current total, for host-side inspection.
func (c *Counter) Value() float64 { return c.count }

// SetupScope links count directly into scope, grounded on
// ConfigType::SetupScope's LinkVar call. Bump itself is installed by the
// parser from the type registry's member-function table (C7), not here.
func (c *Counter) SetupScope(scope *entry.Scope) {
	entry.LinkVarInto(scope, "count", &c.count, "Current counter value.", false)
}

// SetupConfig runs after SetupScope; Counter has no configuration that
// depends on sibling entries, so this is a no-op.
func (c *Counter) SetupConfig() {}

// Register installs the Counter type and its member-function table entry
// into reg (spec.md §4.6's per-type member-function table, C7).
func Register(reg *typeregistry.Registry) error {
	if err := reg.Register("Counter", "A simple running total.", NewCounter); err != nil {
		return err
	}
	return reg.AddMemberFunction("Counter", "Bump", "Increment the counter by arg1 (default 1) and return the new total.",
		func(host typeregistry.HostModule, args []entry.Entry) entry.Entry {
			c := host.(*Counter)
			step := 1.0
			if len(args) > 0 {
				step = args[0].AsNumber()
			}
			c.count += step
			return entry.NewValue("", c.count, "", nil)
		})
}
