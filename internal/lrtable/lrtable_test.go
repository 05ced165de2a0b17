package lrtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelcode/lr1gen/internal/automaton"
	"github.com/kestrelcode/lr1gen/internal/catalog"
	"github.com/kestrelcode/lr1gen/internal/grammar"
)

func exprGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	src := `
		%token PLUS STAR LPAREN RPAREN ID
		%start E
		E -> E PLUS T | T ;
		T -> T STAR F | F ;
		F -> LPAREN E RPAREN | ID ;
	`
	g, err := grammar.Load(src)
	require.NoError(t, err)
	require.NoError(t, g.Validate())
	return g
}

func Test_Build_acceptsOnAugmentedProductionAtEnd(t *testing.T) {
	g := exprGrammar(t)
	fs := grammar.ComputeFirst(g)
	coll := automaton.Build(g, fs)
	table := Build(g, coll)

	act, ok := table.Action(coll.Start, catalog.End)
	if ok {
		assert.NotEqual(t, Accept, act.Kind, "the start state should never itself be an accept state")
	}

	foundAccept := false
	for _, state := range coll.States {
		if a, ok := table.Action(state.Index, catalog.End); ok && a.Kind == Accept {
			foundAccept = true
		}
	}
	assert.True(t, foundAccept, "some state must accept on end-of-input")
}

func Test_Build_noConflictsOnUnambiguousGrammar(t *testing.T) {
	g := exprGrammar(t)
	fs := grammar.ComputeFirst(g)
	coll := automaton.Build(g, fs)
	table := Build(g, coll)

	assert.Empty(t, table.Conflicts)
}

func Test_Build_leftRecursiveGrammarHasNoConflicts(t *testing.T) {
	// left recursion of this shape is the textbook case canonical LR(1)
	// handles cleanly with no shift/reduce ambiguity.
	src := `
		%token A
		%start S
		S -> S A | A ;
	`
	g, err := grammar.Load(src)
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	fs := grammar.ComputeFirst(g)
	coll := automaton.Build(g, fs)
	table := Build(g, coll)

	assert.Empty(t, table.Conflicts)
}

func Test_Build_firstWriteWinsOnConflict(t *testing.T) {
	// a minimal grammar whose canonical collection genuinely forces a
	// reduce/reduce conflict: two nullable alternatives reducible on the
	// same lookahead in the same state.
	src := `
		%token A
		%start S
		S -> B A | C A ;
		B -> ;
		C -> ;
	`
	g, err := grammar.Load(src)
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	fs := grammar.ComputeFirst(g)
	coll := automaton.Build(g, fs)
	table := Build(g, coll)

	// B -> . and C -> . both appear, with lookahead A, in the closure of the
	// start state (since both B and C are nullable and immediately followed
	// by A): a genuine reduce/reduce conflict on A.
	require.NotEmpty(t, table.Conflicts)
	for _, c := range table.Conflicts {
		assert.True(t, c.RR)
		kept, ok := table.Action(c.State, c.Symbol)
		require.True(t, ok)
		assert.Equal(t, c.Winner, kept, "the first action written to the cell is the one kept")
	}
}
