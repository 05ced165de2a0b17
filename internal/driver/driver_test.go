package driver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelcode/lr1gen/internal/automaton"
	"github.com/kestrelcode/lr1gen/internal/grammar"
	"github.com/kestrelcode/lr1gen/internal/lrtable"
	"github.com/kestrelcode/lr1gen/internal/scanner"
)

// buildExprPipeline wires the whole pipeline (grammar -> FIRST -> canonical
// collection -> tables) for the textbook expression grammar, the same one
// used as the running example throughout the automaton and lrtable tests.
func buildExprPipeline(t *testing.T) (*grammar.Grammar, *lrtable.Table, *scanner.Scanner) {
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

	fs := grammar.ComputeFirst(g)
	coll := automaton.Build(g, fs)
	table := lrtable.Build(g, coll)
	require.Empty(t, table.Conflicts)

	sc, err := scanner.NewSpec().
		Skip(`\s+`).
		Token("ID", `[a-zA-Z_][a-zA-Z0-9_]*`).
		Token("PLUS", `\+`).
		Token("STAR", `\*`).
		Token("LPAREN", `\(`).
		Token("RPAREN", `\)`).
		Compile()
	require.NoError(t, err)

	return g, table, sc
}

func Test_Parse_acceptsValidSentence(t *testing.T) {
	g, table, sc := buildExprPipeline(t)

	d := New(g, table)
	tree, err := d.Parse(sc.Lex(strings.NewReader("a + b * c")))

	require.NoError(t, err)
	require.NotNil(t, tree)
	assert.Equal(t, Accepted, d.Status())
	assert.Equal(t, "E", tree.Symbol)
}

func Test_Parse_parenthesizedSentence(t *testing.T) {
	g, table, sc := buildExprPipeline(t)

	d := New(g, table)
	tree, err := d.Parse(sc.Lex(strings.NewReader("(a + b) * c")))

	require.NoError(t, err)
	assert.Equal(t, "E", tree.Symbol)
}

func Test_Parse_rejectsInvalidSentence(t *testing.T) {
	g, table, sc := buildExprPipeline(t)

	d := New(g, table)
	_, err := d.Parse(sc.Lex(strings.NewReader("a +")))

	require.Error(t, err)
	assert.Equal(t, Failed, d.Status())
}

func Test_Parse_traceListenerSeesEveryStep(t *testing.T) {
	g, table, sc := buildExprPipeline(t)

	d := New(g, table)
	var steps []string
	d.RegisterTraceListener(func(s string) { steps = append(steps, s) })

	_, err := d.Parse(sc.Lex(strings.NewReader("a")))

	require.NoError(t, err)
	assert.NotEmpty(t, steps)
	assert.Equal(t, "accept", steps[len(steps)-1])
}

func Test_Parse_errorListsExpectedTokens(t *testing.T) {
	g, table, sc := buildExprPipeline(t)

	d := New(g, table)
	_, err := d.Parse(sc.Lex(strings.NewReader("+ a")))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse error")

	human, ok := err.(interface{ Human() string })
	require.True(t, ok)
	assert.Contains(t, human.Human(), "expected one of 'LPAREN' or 'ID'")
}
