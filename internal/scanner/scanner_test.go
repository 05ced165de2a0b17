package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelcode/lr1gen/internal/token"
)

func arithScanner(t *testing.T) *Scanner {
	t.Helper()
	sc, err := NewSpec().
		Skip(`\s+`).
		Token("NUM", `[0-9]+`).
		Token("PLUS", `\+`).
		Token("ID", `[a-zA-Z_][a-zA-Z0-9_]*`).
		Compile()
	require.NoError(t, err)
	return sc
}

func Test_Lex_skipsWhitespaceAndEmitsTokens(t *testing.T) {
	sc := arithScanner(t)
	stream := sc.Lex(strings.NewReader("12 + foo"))

	var classes []string
	for stream.HasNext() {
		tok := stream.Next()
		if tok.Class() == token.ClassEndOfText {
			break
		}
		classes = append(classes, tok.Class().Human())
	}

	assert.Equal(t, []string{"NUM", "PLUS", "ID"}, classes)
}

func Test_Lex_longestMatchWins(t *testing.T) {
	sc, err := NewSpec().
		Token("IF", `if`).
		Token("ID", `[a-z]+`).
		Compile()
	require.NoError(t, err)

	stream := sc.Lex(strings.NewReader("iffy"))
	tok := stream.Next()

	assert.Equal(t, "ID", tok.Class().Human())
	assert.Equal(t, "iffy", tok.Lexeme())
}

func Test_Lex_firstDefinedWinsOnEqualLength(t *testing.T) {
	sc, err := NewSpec().
		Token("IF", `if`).
		Token("ID", `[a-z]+`).
		Compile()
	require.NoError(t, err)

	stream := sc.Lex(strings.NewReader("if"))
	tok := stream.Next()

	assert.Equal(t, "IF", tok.Class().Human())
}

func Test_Lex_emitsEndOfTextAtEOF(t *testing.T) {
	sc := arithScanner(t)
	stream := sc.Lex(strings.NewReader(""))

	tok := stream.Next()

	assert.Equal(t, token.ClassEndOfText, tok.Class())
	assert.False(t, stream.HasNext())
}

func Test_Lex_panicModeRecoversAfterUnmatchedInput(t *testing.T) {
	sc := arithScanner(t)
	stream := sc.Lex(strings.NewReader("1 @ 2"))

	tok1 := stream.Next()
	assert.Equal(t, "NUM", tok1.Class().Human())

	errTok := stream.Next()
	assert.Equal(t, "lex_error", errTok.Class().ID())

	tok2 := stream.Next()
	assert.Equal(t, "NUM", tok2.Class().Human())
	assert.Equal(t, "2", tok2.Lexeme())
}

func Test_Peek_doesNotConsume(t *testing.T) {
	sc := arithScanner(t)
	stream := sc.Lex(strings.NewReader("42"))

	peeked := stream.Peek()
	next := stream.Next()

	assert.Equal(t, peeked.Lexeme(), next.Lexeme())
}
