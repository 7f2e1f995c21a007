package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeclarationLexing(t *testing.T) {
	tokens, err := Tokenize(`Value a = 7;`)
	require.NoError(t, err)

	expected := []TokenType{IDENTIFIER, IDENTIFIER, SYMBOL, NUMBER, SYMBOL, EOF}
	require.Len(t, tokens, len(expected))
	for i, exp := range expected {
		require.Equalf(t, exp, tokens[i].Type, "token %d (%q)", i, tokens[i].Value)
	}
	require.Equal(t, "=", tokens[2].Value)
	require.Equal(t, "7", tokens[3].Value)
}

func TestDotsLexing(t *testing.T) {
	tokens, err := Tokenize(`..f.i.j`)
	require.NoError(t, err)

	require.Equal(t, DOTS, tokens[0].Type)
	require.Equal(t, "..", tokens[0].Value)
	require.Equal(t, IDENTIFIER, tokens[1].Type)
	require.Equal(t, DOTS, tokens[2].Type)
	require.Equal(t, ".", tokens[2].Value)
}

func TestStringEscapes(t *testing.T) {
	tokens, err := Tokenize(`"line1\nline2"`)
	require.NoError(t, err)
	require.Equal(t, STRING, tokens[0].Type)
	require.Equal(t, "line1\nline2", tokens[0].Value)
}

func TestCharLiteral(t *testing.T) {
	tokens, err := Tokenize(`'A'`)
	require.NoError(t, err)
	require.Equal(t, CHAR, tokens[0].Type)
	require.Equal(t, "A", tokens[0].Value)
}

func TestNumberWithExponent(t *testing.T) {
	tokens, err := Tokenize(`1.5e3`)
	require.NoError(t, err)
	require.Equal(t, NUMBER, tokens[0].Type)
	require.Equal(t, "1.5e3", tokens[0].Value)
}

func TestEventSyntaxLexing(t *testing.T) {
	tokens, err := Tokenize(`@E(3, 2, 10) PRINT("tick");`)
	require.NoError(t, err)

	expected := []TokenType{
		SYMBOL, IDENTIFIER, SYMBOL, NUMBER, SYMBOL, NUMBER, SYMBOL, NUMBER, SYMBOL,
		IDENTIFIER, SYMBOL, STRING, SYMBOL, SYMBOL, EOF,
	}
	require.Len(t, tokens, len(expected))
	for i, exp := range expected {
		require.Equalf(t, exp, tokens[i].Type, "token %d (%q)", i, tokens[i].Value)
	}
}

func TestComments(t *testing.T) {
	tokens, err := Tokenize("Value a = 1; // trailing\n# hash comment\n/* block\ncomment */ Value b = 2;")
	require.NoError(t, err)

	var idents []string
	for _, tok := range tokens {
		if tok.Type == IDENTIFIER {
			idents = append(idents, tok.Value)
		}
	}
	require.Equal(t, []string{"Value", "a", "Value", "b"}, idents)
}

func TestUnterminatedStringIsFatal(t *testing.T) {
	_, err := Tokenize(`"unterminated`)
	require.Error(t, err)
	var lexErr *Error
	require.ErrorAs(t, err, &lexErr)
}

func TestUnrecognizedCharacterIsFatal(t *testing.T) {
	_, err := Tokenize("Value a = 1 ? 2;")
	require.Error(t, err)
}

func TestOperatorGreedyMatch(t *testing.T) {
	tokens, err := Tokenize(`a ** b && c == d`)
	require.NoError(t, err)

	var symbols []string
	for _, tok := range tokens {
		if tok.Type == SYMBOL {
			symbols = append(symbols, tok.Value)
		}
	}
	require.Equal(t, []string{"**", "&&", "=="}, symbols)
}

func TestBangLexesDistinctFromNotEqual(t *testing.T) {
	tokens, err := Tokenize(`!a != b`)
	require.NoError(t, err)

	var symbols []string
	for _, tok := range tokens {
		if tok.Type == SYMBOL {
			symbols = append(symbols, tok.Value)
		}
	}
	require.Equal(t, []string{"!", "!="}, symbols)
}
