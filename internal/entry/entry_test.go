package entry

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueEntryConversions(t *testing.T) {
	v := NewValue("x", 3.5, "", nil)
	require.True(t, v.IsNumeric())
	require.Equal(t, 3.5, v.AsNumber())
	require.Equal(t, "3.5", v.AsString())
}

func TestStringEntryConversions(t *testing.T) {
	s := NewString("name", "12.5", "", nil)
	require.True(t, s.IsString())
	require.Equal(t, 12.5, s.AsNumber())
	require.Equal(t, "12.5", s.AsString())
}

func TestStringEntryNonNumericConvertsToZero(t *testing.T) {
	s := NewString("name", "hello", "", nil)
	require.Equal(t, 0.0, s.AsNumber())
}

func TestCopyValueFromAcrossKinds(t *testing.T) {
	v := NewValue("a", 0, "", nil)
	s := NewString("b", "42", "", nil)

	require.NoError(t, v.CopyValueFrom(s))
	require.Equal(t, 42.0, v.AsNumber())

	require.NoError(t, s.CopyValueFrom(v))
	require.Equal(t, "42", s.AsString())
}

func TestCopyValueFromScopeIsRejected(t *testing.T) {
	root := NewScope("root", "", "", nil)
	child, err := root.AddScope("inner", "", "")
	require.NoError(t, err)

	v := NewValue("a", 0, "", nil)
	err = v.CopyValueFrom(child)
	require.Error(t, err)
}

func TestCallOnNonFunctionProducesError(t *testing.T) {
	v := NewValue("a", 1, "", nil)
	result := v.Call(nil)
	require.True(t, result.IsError())
}

func TestScopeLookupScansParents(t *testing.T) {
	root := NewScope("root", "", "", nil)
	_, err := root.AddValueVar("g", "global")
	require.NoError(t, err)

	child, err := root.AddScope("inner", "", "")
	require.NoError(t, err)
	_, err = child.AddValueVar("local", "")
	require.NoError(t, err)

	require.NotNil(t, child.Lookup("local", true))
	require.NotNil(t, child.Lookup("g", true))
	require.Nil(t, child.Lookup("g", false))
	require.Nil(t, root.Lookup("local", true))
}

func TestScopeDuplicateNameIsError(t *testing.T) {
	root := NewScope("root", "", "", nil)
	_, err := root.AddValueVar("a", "")
	require.NoError(t, err)

	_, err = root.AddStringVar("a", "")
	require.Error(t, err)
}

func TestLinkVarReadsThroughHostPointer(t *testing.T) {
	host := 7.0
	root := NewScope("root", "", "", nil)
	linked, err := LinkVarInto(root, "count", &host, "", false)
	require.NoError(t, err)

	require.Equal(t, 7.0, linked.AsNumber())

	host = 99
	require.Equal(t, 99.0, root.Lookup("count", false).AsNumber())

	require.NoError(t, linked.CopyValueFrom(NewValue("tmp", 3, "", nil)))
	require.Equal(t, 3.0, host)
}

func TestLinkFunsRoundTrip(t *testing.T) {
	var stored string
	root := NewScope("root", "", "", nil)
	linked, err := LinkFunsInto(root, "label",
		func() string { return stored },
		func(v string) { stored = v },
		"", false)
	require.NoError(t, err)

	require.NoError(t, linked.CopyValueFrom(NewString("tmp", "hi", "", nil)))
	require.Equal(t, "hi", stored)
	require.Equal(t, "hi", linked.AsString())
}

func TestScopeCloneIsDeep(t *testing.T) {
	root := NewScope("root", "", "", nil)
	v, err := root.AddValueVar("a", "")
	require.NoError(t, err)
	v.SetNumber(5)

	cloned := root.Clone().(*Scope)
	clonedValue := cloned.Get("a").(*ValueEntry)
	clonedValue.SetNumber(10)

	require.Equal(t, 5.0, v.AsNumber())
	require.Equal(t, 10.0, clonedValue.AsNumber())
}

func TestWriteValueEntryIncludesTypeAndValue(t *testing.T) {
	var buf bytes.Buffer
	v := NewValue("count", 3, "a counter", nil)
	v.Write(NewWriter(&buf), "", 20)
	require.Contains(t, buf.String(), "Value count = 3;")
	require.Contains(t, buf.String(), "// a counter")
}

func TestWriteBuiltinEntryIsSkipped(t *testing.T) {
	var buf bytes.Buffer
	v := NewValue("count", 3, "", nil)
	v.SetBuiltin()
	v.Write(NewWriter(&buf), "", 20)
	require.Empty(t, buf.String())
}

func TestWriteScopeWrapsContents(t *testing.T) {
	var buf bytes.Buffer
	root := NewScope("cfg", "", "Settings", nil)
	_, err := root.AddValueVar("x", "")
	require.NoError(t, err)
	root.Write(NewWriter(&buf), "", 20)

	out := buf.String()
	require.Contains(t, out, "Settings cfg {")
	require.Contains(t, out, "Value x = 0;")
	require.Contains(t, out, "}")
}

func TestWriteEmptyScopeIsSemicolonOnly(t *testing.T) {
	var buf bytes.Buffer
	root := NewScope("cfg", "", "Settings", nil)
	root.Write(NewWriter(&buf), "", 20)
	require.Contains(t, buf.String(), "Settings cfg;")
}

func TestErrorEntryIsTemporaryAndCarriesMessage(t *testing.T) {
	e := NewError("boom")
	require.True(t, e.IsError())
	require.True(t, e.Temporary())
	require.Equal(t, "boom", e.Message())
}
