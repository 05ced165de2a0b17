package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load(t *testing.T) {
	testCases := []struct {
		name      string
		src       string
		expectErr bool
	}{
		{
			name: "simple expression grammar",
			src: `
				# a tiny expression grammar
				%token NUM PLUS LPAREN RPAREN
				%start E

				E -> E PLUS T | T ;
				T -> LPAREN E RPAREN | NUM ;
			`,
		},
		{
			name: "epsilon production",
			src: `
				%token A
				%start S
				S -> A S | ;
			`,
		},
		{
			name:      "missing terminator",
			src:       "%token A\n%start S\nS -> A",
			expectErr: true,
		},
		{
			name:      "missing arrow",
			src:       "%token A\n%start S\nS A ;",
			expectErr: true,
		},
		{
			name:      "missing start directive value",
			src:       "%token A\n%start\nS -> A ;",
			expectErr: true,
		},
		{
			name: "no %start directive defaults to first rule's head",
			src: `
				%token NUM PLUS
				E -> E PLUS NUM | NUM ;
			`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := Load(tc.src)

			if tc.expectErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.NoError(t, g.Validate())
		})
	}
}

func Test_Load_CRLF_isNormalized(t *testing.T) {
	src := "%token A\r\n%start S\r\nS -> A ;\r\n"

	g, err := Load(src)

	require.NoError(t, err)
	assert.NoError(t, g.Validate())
}

func Test_Load_noStartDirective_usesFirstRuleHead(t *testing.T) {
	src := `
		%token NUM PLUS
		E -> E PLUS NUM | NUM ;
		Unused -> NUM ;
	`

	g, err := Load(src)

	require.NoError(t, err)
	start, ok := g.Cat.Lookup("E")
	require.True(t, ok)
	assert.Equal(t, start, g.StartSymbol())
}

func Test_Load_alternation_producesMultipleProductions(t *testing.T) {
	src := `
		%token A B
		%start S
		S -> A | B ;
	`

	g, err := Load(src)

	require.NoError(t, err)
	start := g.StartSymbol()
	assert.Len(t, g.Rule(start), 2)
}
