// Package parsetree is the concrete parse tree the driver builds up as it
// shifts and reduces, grounded on the teacher's types.ParseTree container.
package parsetree

import (
	"strings"

	"github.com/kestrelcode/lr1gen/internal/token"
)

// Tree is a single node of a concrete parse tree: a leaf carrying the token
// that was shifted, or an interior node carrying the non-terminal a
// reduction produced and the children that were popped to build it.
type Tree struct {
	// Terminal is true for leaf nodes produced by a shift.
	Terminal bool

	// Symbol is the non-terminal's name for an interior node, or the
	// token's class name for a leaf.
	Symbol string

	// Source is set only on leaves: the token that was shifted.
	Source token.Token

	Children []*Tree
}

// Leaf builds a terminal node from a shifted token.
func Leaf(tok token.Token) *Tree {
	return &Tree{Terminal: true, Symbol: tok.Class().Human(), Source: tok}
}

// Node builds an interior node for a reduction by the non-terminal symbol,
// whose children are the trees popped off the parse stack in left-to-right
// order.
func Node(symbol string, children ...*Tree) *Tree {
	return &Tree{Terminal: false, Symbol: symbol, Children: children}
}

const (
	prefixMid  = "├── "
	prefixLast = "└── "
	padMid     = "│   "
	padLast    = "    "
)

// String renders t as an ASCII-art tree.
func (t *Tree) String() string {
	var sb strings.Builder
	t.render(&sb, "", true, true)
	return sb.String()
}

func (t *Tree) render(sb *strings.Builder, pad string, isLast, isRoot bool) {
	if !isRoot {
		if isLast {
			sb.WriteString(pad + prefixLast)
		} else {
			sb.WriteString(pad + prefixMid)
		}
	}

	if t.Terminal {
		sb.WriteString(t.Symbol + " (" + t.Source.Lexeme() + ")\n")
		return
	}
	sb.WriteString(t.Symbol + "\n")

	childPad := pad
	if !isRoot {
		if isLast {
			childPad += padLast
		} else {
			childPad += padMid
		}
	}

	for i, c := range t.Children {
		c.render(sb, childPad, i == len(t.Children)-1, false)
	}
}

// Copy returns a deep copy of t.
func (t *Tree) Copy() *Tree {
	if t == nil {
		return nil
	}
	cp := &Tree{Terminal: t.Terminal, Symbol: t.Symbol, Source: t.Source}
	for _, c := range t.Children {
		cp.Children = append(cp.Children, c.Copy())
	}
	return cp
}

// Equal reports whether t and o represent the same tree shape and content.
func (t *Tree) Equal(o *Tree) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Terminal != o.Terminal || t.Symbol != o.Symbol {
		return false
	}
	if t.Terminal {
		return t.Source.Lexeme() == o.Source.Lexeme()
	}
	if len(t.Children) != len(o.Children) {
		return false
	}
	for i := range t.Children {
		if !t.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// Leaves returns every terminal leaf of t, left to right.
func (t *Tree) Leaves() []*Tree {
	if t.Terminal {
		return []*Tree{t}
	}
	var out []*Tree
	for _, c := range t.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}
