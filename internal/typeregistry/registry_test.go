package typeregistry

import (
	"testing"

	"github.com/mabescript/mabescript/internal/entry"
	"github.com/stretchr/testify/require"
)

type stubModule struct {
	scope *entry.Scope
	setup bool
}

func (m *stubModule) SetupScope(scope *entry.Scope) { m.scope = scope }
func (m *stubModule) SetupConfig()                  { m.setup = true }

func TestNewRegistersBaseTypes(t *testing.T) {
	r := New()
	for _, name := range []string{"Void", "Value", "String", "Struct"} {
		require.True(t, r.IsTypeName(name), name)
		info, ok := r.Lookup(name)
		require.True(t, ok)
		require.Nil(t, info.New)
	}
}

func TestRegisterAddsHostType(t *testing.T) {
	r := New()
	err := r.Register("Counter", "a counting module", func(name string) HostModule {
		return &stubModule{}
	})
	require.NoError(t, err)
	require.True(t, r.IsTypeName("Counter"))

	info, ok := r.Lookup("Counter")
	require.True(t, ok)
	require.NotNil(t, info.New)

	host := info.New("c")
	root := entry.NewScope("root", "", "", nil)
	host.SetupScope(root)
	host.SetupConfig()
	require.True(t, host.(*stubModule).setup)
	require.Equal(t, root, host.(*stubModule).scope)
}

func TestRegisterDuplicateNameIsError(t *testing.T) {
	r := New()
	err := r.Register("Value", "shadow", func(name string) HostModule { return &stubModule{} })
	require.Error(t, err)
}

func TestAddMemberFunctionOnUnknownTypeIsError(t *testing.T) {
	r := New()
	err := r.AddMemberFunction("Nope", "Bump", "", func(h HostModule, args []entry.Entry) entry.Entry { return nil })
	require.Error(t, err)
}

func TestAddMemberFunctionIsRetrievable(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("Counter", "", func(name string) HostModule { return &stubModule{} }))
	require.NoError(t, r.AddMemberFunction("Counter", "Bump", "increments the counter", func(h HostModule, args []entry.Entry) entry.Entry {
		return entry.NewValue("", 1, "", nil)
	}))

	info, ok := r.Lookup("Counter")
	require.True(t, ok)
	fn, ok := info.MemberFuncs["Bump"]
	require.True(t, ok)
	require.Equal(t, "increments the counter", fn.Desc)
}

func TestIndexesAreStableAndIncreasing(t *testing.T) {
	r := New()
	voidInfo, _ := r.Lookup("Void")
	structInfo, _ := r.Lookup("Struct")
	require.Less(t, voidInfo.Index, structInfo.Index)

	require.NoError(t, r.Register("Counter", "", func(name string) HostModule { return &stubModule{} }))
	counterInfo, _ := r.Lookup("Counter")
	require.Greater(t, counterInfo.Index, structInfo.Index)
}
