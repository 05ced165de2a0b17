package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelcode/lr1gen/internal/catalog"
	"github.com/kestrelcode/lr1gen/internal/grammar"
)

// textbook expression grammar (Aho/Sethi/Ullman example 4.54/4.56):
//
//	E -> E + T | T
//	T -> T * F | F
//	F -> ( E ) | id
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

func Test_Closure_includesStartItem(t *testing.T) {
	g := exprGrammar(t)
	fs := grammar.ComputeFirst(g)
	_, augProdIdx := g.Augmented()

	start := NewItemSet(Item{ProdIndex: augProdIdx, Dot: 0, Lookahead: catalog.End})
	closed := Closure(start, g, fs)

	assert.True(t, closed[Item{ProdIndex: augProdIdx, Dot: 0, Lookahead: catalog.End}])
	assert.Greater(t, len(closed), 1, "closure should add items for every production of E, T, F")
}

func Test_Closure_isIdempotent(t *testing.T) {
	g := exprGrammar(t)
	fs := grammar.ComputeFirst(g)
	_, augProdIdx := g.Augmented()

	start := NewItemSet(Item{ProdIndex: augProdIdx, Dot: 0, Lookahead: catalog.End})
	once := Closure(start, g, fs)
	twice := Closure(once, g, fs)

	assert.Equal(t, once.Key(), twice.Key())
}

func Test_Goto_advancesDot(t *testing.T) {
	g := exprGrammar(t)
	fs := grammar.ComputeFirst(g)
	_, augProdIdx := g.Augmented()

	id, _ := g.Cat.Lookup("ID")
	start := Closure(NewItemSet(Item{ProdIndex: augProdIdx, Dot: 0, Lookahead: catalog.End}), g, fs)

	next := Goto(start, id, g, fs)
	require.NotEmpty(t, next)

	for it := range next {
		assert.Equal(t, id, g.Productions[it.ProdIndex].Body[it.Dot-1])
	}
}

func Test_Build_isDeterministicAcrossRuns(t *testing.T) {
	g1 := exprGrammar(t)
	fs1 := grammar.ComputeFirst(g1)
	coll1 := Build(g1, fs1)

	g2 := exprGrammar(t)
	fs2 := grammar.ComputeFirst(g2)
	coll2 := Build(g2, fs2)

	require.Equal(t, len(coll1.States), len(coll2.States))
	for i := range coll1.States {
		assert.Equal(t, coll1.States[i].Items.Key(), coll2.States[i].Items.Key(),
			"state %d should contain the same items across independent builds", i)
		assert.Equal(t, coll1.States[i].Transitions, coll2.States[i].Transitions,
			"state %d should have identical transitions across independent builds", i)
	}
	assert.Equal(t, coll1.Start, coll2.Start)
}

func Test_Build_startStateHasNoIncomingAugmentedDotAdvanced(t *testing.T) {
	g := exprGrammar(t)
	fs := grammar.ComputeFirst(g)
	coll := Build(g, fs)

	_, augProdIdx := g.Augmented()
	startState := coll.States[coll.Start]

	assert.True(t, startState.Items[Item{ProdIndex: augProdIdx, Dot: 0, Lookahead: catalog.End}])
	assert.False(t, startState.Items[Item{ProdIndex: augProdIdx, Dot: 1, Lookahead: catalog.End}])
}
