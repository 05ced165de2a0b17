package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelcode/lr1gen/internal/catalog"
)

func Test_Grammar_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		build     func(g *Grammar)
		expectErr bool
	}{
		{
			name:      "empty grammar has no start symbol",
			build:     func(g *Grammar) {},
			expectErr: true,
		},
		{
			name: "start symbol with no productions",
			build: func(g *Grammar) {
				g.SetStart("S")
			},
			expectErr: true,
		},
		{
			name: "right-hand-side symbol with no %token and no rule of its own is inferred as a terminal",
			build: func(g *Grammar) {
				g.AddTerm("A")
				g.AddRule("S", []string{"A", "B"})
				g.SetStart("S")
			},
			expectErr: false,
		},
		{
			name: "single valid rule",
			build: func(g *Grammar) {
				g.AddTerm("A")
				g.AddRule("S", []string{"A"})
				g.SetStart("S")
			},
			expectErr: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := New(catalog.New())
			tc.build(g)

			err := g.Validate()
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_Grammar_Rule_returnsInDeclarationOrder(t *testing.T) {
	g := New(catalog.New())
	g.AddTerm("A")
	g.AddTerm("B")
	idx1 := g.AddRule("S", []string{"A"})
	idx2 := g.AddRule("S", []string{"B"})
	g.SetStart("S")

	rules := g.Rule(g.StartSymbol())

	require.Len(t, rules, 2)
	assert.Equal(t, g.Productions[idx1], rules[0])
	assert.Equal(t, g.Productions[idx2], rules[1])
}

func Test_Grammar_Augmented_isIdempotent(t *testing.T) {
	g := New(catalog.New())
	g.AddTerm("A")
	g.AddRule("S", []string{"A"})
	g.SetStart("S")

	start1, idx1 := g.Augmented()
	start2, idx2 := g.Augmented()

	assert.Equal(t, start1, start2)
	assert.Equal(t, idx1, idx2)
	assert.Len(t, g.Productions, 2)
}

func Test_Grammar_IsTerminal(t *testing.T) {
	g := New(catalog.New())
	a := g.AddTerm("A")
	g.AddRule("S", []string{"A"})
	s := g.addNonTerm("S")
	g.SetStart("S")

	assert.True(t, g.IsTerminal(a))
	assert.False(t, g.IsTerminal(s))
	assert.True(t, g.IsTerminal(catalog.End))
}
