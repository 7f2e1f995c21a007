package parser

import (
	"testing"

	"github.com/mabescript/mabescript/internal/entry"
	"github.com/mabescript/mabescript/internal/evaluator"
	"github.com/mabescript/mabescript/internal/lexer"
	"github.com/mabescript/mabescript/internal/typeregistry"
	"github.com/stretchr/testify/require"
)

func parseAndEval(t *testing.T, src string) *entry.Scope {
	t.Helper()
	tokens, err := lexer.Tokenize(src)
	require.NoError(t, err)

	root := entry.NewScope("root", "", "", nil)
	block, errs := Parse(tokens, root, Config{Types: typeregistry.New()})
	require.Empty(t, errs)

	evaluator.New().Eval(block)
	return root
}

func TestScalarArithmetic(t *testing.T) {
	root := parseAndEval(t, `Value a = 7; Value c = a + 10;`)
	require.Equal(t, 7.0, root.Get("a").AsNumber())
	require.Equal(t, 17.0, root.Get("c").AsNumber())
}

func TestStringOperations(t *testing.T) {
	root := parseAndEval(t, `String b = "balloons"; String d = "99 " + b; String e = "01" * 7;`)
	require.Equal(t, "99 balloons", root.Get("d").AsString())
	require.Equal(t, "01010101010101", root.Get("e").AsString())
}

func TestNestedScopesAndDotPaths(t *testing.T) {
	root := parseAndEval(t, `Struct f { Value g = 1.7; Struct i { Value j = 3; } String j = "spooky!"; j = ..f.i.j; }`)
	f := root.Get("f").(*entry.Scope)
	require.Equal(t, "3", f.Get("j").AsString())
}

func TestCallErrorLeavesDefault(t *testing.T) {
	root := entry.NewScope("root", "", "", nil)
	_, err := root.AddBuiltinFunction("SQRT", func(args []entry.Entry) entry.Entry {
		if len(args) != 1 {
			e := entry.NewError("SQRT takes exactly one argument")
			e.SetTemporary(true)
			return e
		}
		return entry.NewValue("", args[0].AsNumber(), "", nil)
	}, "")
	require.NoError(t, err)

	tokens, lexErr := lexer.Tokenize(`Value x = SQRT(1, 2);`)
	require.NoError(t, lexErr)
	block, errs := Parse(tokens, root, Config{Types: typeregistry.New()})
	require.Empty(t, errs)

	evaluator.New().Eval(block)
	require.Equal(t, 0.0, root.Get("x").AsNumber())
}

func TestUnknownIdentifierIsParseError(t *testing.T) {
	tokens, err := lexer.Tokenize(`Value x = y + 1;`)
	require.NoError(t, err)

	root := entry.NewScope("root", "", "", nil)
	_, errs := Parse(tokens, root, Config{Types: typeregistry.New()})
	require.NotEmpty(t, errs)
}

func TestPrecedenceMultiplicationBeforeAddition(t *testing.T) {
	root := parseAndEval(t, `Value a = 2 + 3 * 4;`)
	require.Equal(t, 14.0, root.Get("a").AsNumber())
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	root := parseAndEval(t, `Value a = (2 + 3) * 4;`)
	require.Equal(t, 20.0, root.Get("a").AsNumber())
}

func TestUnaryMinus(t *testing.T) {
	root := parseAndEval(t, `Value a = 5; Value b = -a + 2;`)
	require.Equal(t, -3.0, root.Get("b").AsNumber())
}

func TestUnaryNot(t *testing.T) {
	root := parseAndEval(t, `Value a = !0; Value b = !1;`)
	require.Equal(t, 1.0, root.Get("a").AsNumber())
	require.Equal(t, 0.0, root.Get("b").AsNumber())
}

func TestEventRequiresRegisteredName(t *testing.T) {
	tokens, err := lexer.Tokenize(`@E(3, 2, 10) Value x = 1;`)
	require.NoError(t, err)

	root := entry.NewScope("root", "", "", nil)
	_, errs := Parse(tokens, root, Config{
		Types:       typeregistry.New(),
		IsEventName: func(name string) bool { return name == "E" },
	})
	require.Empty(t, errs)
}

func TestEventUnregisteredNameIsError(t *testing.T) {
	tokens, err := lexer.Tokenize(`@Unknown(1) Value x = 1;`)
	require.NoError(t, err)

	root := entry.NewScope("root", "", "", nil)
	_, errs := Parse(tokens, root, Config{
		Types:       typeregistry.New(),
		IsEventName: func(name string) bool { return false },
	})
	require.NotEmpty(t, errs)
}
