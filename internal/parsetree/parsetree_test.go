package parsetree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kestrelcode/lr1gen/internal/token"
)

func numTok(lexeme string) token.Token {
	return token.New(token.NewClass("NUM"), lexeme, 1, 1, lexeme)
}

func Test_Tree_String_rendersLeavesAndNodes(t *testing.T) {
	tree := Node("E", Leaf(numTok("1")), Leaf(numTok("2")))

	out := tree.String()

	assert.True(t, strings.Contains(out, "E"))
	assert.True(t, strings.Contains(out, "1"))
	assert.True(t, strings.Contains(out, "2"))
}

func Test_Tree_Copy_isDeepAndEqual(t *testing.T) {
	original := Node("E", Leaf(numTok("1")), Node("T", Leaf(numTok("2"))))

	cp := original.Copy()

	assert.True(t, original.Equal(cp))
	assert.NotSame(t, original, cp)
	assert.NotSame(t, original.Children[1], cp.Children[1])
}

func Test_Tree_Equal_detectsDifference(t *testing.T) {
	a := Node("E", Leaf(numTok("1")))
	b := Node("E", Leaf(numTok("2")))

	assert.False(t, a.Equal(b))
}

func Test_Tree_Leaves_inOrder(t *testing.T) {
	tree := Node("E",
		Node("T", Leaf(numTok("1"))),
		Leaf(numTok("+")),
		Node("T", Leaf(numTok("2"))),
	)

	leaves := tree.Leaves()

	assert.Len(t, leaves, 3)
	assert.Equal(t, "1", leaves[0].Source.Lexeme())
	assert.Equal(t, "+", leaves[1].Source.Lexeme())
	assert.Equal(t, "2", leaves[2].Source.Lexeme())
}
