package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelcode/lr1gen/internal/catalog"
)

func Test_ComputeFirst_simpleExpressionGrammar(t *testing.T) {
	src := `
		%token NUM PLUS LPAREN RPAREN
		%start E
		E -> E PLUS T | T ;
		T -> LPAREN E RPAREN | NUM ;
	`
	g, err := Load(src)
	require.NoError(t, err)

	fs := ComputeFirst(g)

	num, _ := g.Cat.Lookup("NUM")
	lparen, _ := g.Cat.Lookup("LPAREN")
	e, _ := g.Cat.Lookup("E")
	tNT, _ := g.Cat.Lookup("T")

	assert.True(t, fs.Of(e)[num])
	assert.True(t, fs.Of(e)[lparen])
	assert.True(t, fs.Of(tNT)[num])
	assert.False(t, fs.Nullable(e))
}

func Test_ComputeFirst_nullableProduction(t *testing.T) {
	src := `
		%token A
		%start S
		S -> A S | ;
	`
	g, err := Load(src)
	require.NoError(t, err)

	fs := ComputeFirst(g)
	s, _ := g.Cat.Lookup("S")

	assert.True(t, fs.Nullable(s))
	assert.True(t, fs.Of(s)[catalog.Epsilon])
}

func Test_OfSequence_stopsAtFirstNonNullable(t *testing.T) {
	src := `
		%token A B
		%start S
		N -> ;
		S -> N A B ;
	`
	g, err := Load(src)
	require.NoError(t, err)

	fs := ComputeFirst(g)
	a, _ := g.Cat.Lookup("A")
	n, _ := g.Cat.Lookup("N")

	seq := fs.OfSequence([]catalog.Symbol{n, a})
	assert.True(t, seq[a])
	assert.False(t, seq[catalog.Epsilon])
}
