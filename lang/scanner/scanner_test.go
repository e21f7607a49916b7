package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/larch/lang/scanner"
	"github.com/mna/larch/lang/token"
)

func TestScanTokens_Punctuation(t *testing.T) {
	toks, err := scanner.ScanTokens("(){},.-+;*:?%")
	require.NoError(t, err)

	want := []token.Type{
		token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE, token.RIGHT_BRACE,
		token.COMMA, token.DOT, token.MINUS, token.PLUS, token.SEMICOLON,
		token.STAR, token.COLON, token.QUESTION, token.PERCENT, token.EOF,
	}
	require.Len(t, toks, len(want))
	for i, w := range want {
		assert.Equalf(t, w, toks[i].Type, "token %d", i)
	}
}

func TestScanTokens_OneAndTwoCharOperators(t *testing.T) {
	toks, err := scanner.ScanTokens("! != = == < <= > >=")
	require.NoError(t, err)

	want := []token.Type{
		token.BANG, token.BANG_EQUAL, token.EQUAL, token.EQUAL_EQUAL,
		token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL,
		token.EOF,
	}
	require.Len(t, toks, len(want))
	for i, w := range want {
		assert.Equalf(t, w, toks[i].Type, "token %d", i)
	}
}

func TestScanTokens_LineComment(t *testing.T) {
	toks, err := scanner.ScanTokens("var x = 1; // trailing comment\nvar y = 2;")
	require.NoError(t, err)

	// the comment contributes no tokens, but does not swallow the newline
	require.Len(t, toks, 11)
	assert.Equal(t, 1, toks[0].Line)  // var
	assert.Equal(t, 2, toks[5].Line)  // var (second statement)
	assert.Equal(t, token.EOF, toks[len(toks)-1].Type)
}

func TestScanTokens_StringLiteral(t *testing.T) {
	toks, err := scanner.ScanTokens(`"hello world"`)
	require.NoError(t, err)
	require.Len(t, toks, 2)

	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, `"hello world"`, toks[0].Lexeme)
	assert.Equal(t, "hello world", toks[0].Literal)
}

func TestScanTokens_UnterminatedString(t *testing.T) {
	_, err := scanner.ScanTokens(`"never closed`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated string")
}

func TestScanTokens_MultilineString(t *testing.T) {
	toks, err := scanner.ScanTokens("\"a\nb\";\nvar z;")
	require.NoError(t, err)
	// the string token starts on line 1 even though it spans to line 2
	require.GreaterOrEqual(t, len(toks), 2)
	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, 1, toks[0].Line)
	// the semicolon after the string is emitted once the scanner has
	// advanced past the embedded newline
	assert.Equal(t, token.SEMICOLON, toks[1].Type)
	assert.Equal(t, 2, toks[1].Line)
}

func TestScanTokens_Numbers(t *testing.T) {
	toks, err := scanner.ScanTokens("1 2.5 3.")
	require.NoError(t, err)
	require.Len(t, toks, 4)

	assert.Equal(t, 1.0, toks[0].Literal)
	assert.Equal(t, 2.5, toks[1].Literal)
	assert.Equal(t, 3.0, toks[2].Literal)
}

func TestScanTokens_KeywordsAndIdentifiers(t *testing.T) {
	toks, err := scanner.ScanTokens("var class this super nil true false fooBar _baz")
	require.NoError(t, err)

	want := []token.Type{
		token.VAR, token.CLASS, token.THIS, token.SUPER, token.NIL,
		token.TRUE, token.FALSE, token.IDENT, token.IDENT, token.EOF,
	}
	require.Len(t, toks, len(want))
	for i, w := range want {
		assert.Equalf(t, w, toks[i].Type, "token %d", i)
	}
	assert.Equal(t, "fooBar", toks[7].Lexeme)
	assert.Equal(t, "_baz", toks[8].Lexeme)
}

func TestScanTokens_IllegalCharacter(t *testing.T) {
	_, err := scanner.ScanTokens("var x = 1; @")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected character")
}

func TestScanTokens_AlwaysTerminatesWithEOF(t *testing.T) {
	toks, err := scanner.ScanTokens("")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, token.EOF, toks[0].Type)
	assert.Equal(t, 1, toks[0].Line)
}
