// Package automaton builds the canonical collection of LR(1) item sets: the
// states of the viable-prefix DFA that the table builder turns into
// ACTION/GOTO entries.
//
// Items are represented by production index and dot position rather than by
// a copy of the production's symbol string, per the alternative the
// specification allows explicitly; this keeps an Item a small comparable
// struct usable directly as a map key, instead of the teacher's
// string-composed LR0Item/LR1Item.
package automaton

import (
	"fmt"
	"sort"

	"github.com/kestrelcode/lr1gen/internal/catalog"
	"github.com/kestrelcode/lr1gen/internal/grammar"
)

// Item is a single LR(1) item: "production ProdIndex, with the dot before
// position Dot of its body, and lookahead Lookahead".
type Item struct {
	ProdIndex int
	Dot       int
	Lookahead catalog.Symbol
}

// DotSymbol returns the symbol immediately after the dot, and whether one
// exists (false means the dot is at the end of the production).
func DotSymbol(it Item, g *grammar.Grammar, prods []grammar.Production) (catalog.Symbol, bool) {
	p := prods[it.ProdIndex]
	if it.Dot >= len(p.Body) {
		return 0, false
	}
	return p.Body[it.Dot], true
}

// Advance returns the item with its dot moved one position to the right.
func Advance(it Item) Item {
	return Item{ProdIndex: it.ProdIndex, Dot: it.Dot + 1, Lookahead: it.Lookahead}
}

// String renders it in the "head -> a b . c d, lookahead" form used in
// diagnostics.
func (it Item) String(g *grammar.Grammar, prods []grammar.Production) string {
	p := prods[it.ProdIndex]
	s := g.Cat.Name(p.Head) + " ->"
	for i, sym := range p.Body {
		if i == it.Dot {
			s += " ."
		}
		s += " " + g.Cat.Name(sym)
	}
	if it.Dot == len(p.Body) {
		s += " ."
	}
	return s + ", " + g.Cat.Name(it.Lookahead)
}

// ItemSet is an unordered collection of items. Its sorted Key, computed anew
// on each call, is used both for equality testing and as a
// canonical-collection dedup key.
type ItemSet map[Item]bool

// NewItemSet builds an ItemSet from a slice of items.
func NewItemSet(items ...Item) ItemSet {
	s := make(ItemSet, len(items))
	for _, it := range items {
		s[it] = true
	}
	return s
}

// Sorted returns every item in s in a fixed, deterministic order: ascending
// by production index, then dot position, then lookahead id. This ordering
// is what gives the canonical collection a reproducible key across runs, per
// the determinism requirement on dense state indices and transition order.
func (s ItemSet) Sorted() []Item {
	out := make([]Item, 0, len(s))
	for it := range s {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ProdIndex != b.ProdIndex {
			return a.ProdIndex < b.ProdIndex
		}
		if a.Dot != b.Dot {
			return a.Dot < b.Dot
		}
		return a.Lookahead < b.Lookahead
	})
	return out
}

// Key returns a string uniquely identifying the contents of s, independent
// of insertion order, for use interning item sets into canonical-collection
// states.
func (s ItemSet) Key() string {
	sorted := s.Sorted()
	key := make([]byte, 0, len(sorted)*12)
	for _, it := range sorted {
		key = fmt.Appendf(key, "%d.%d.%d|", it.ProdIndex, it.Dot, it.Lookahead)
	}
	return string(key)
}

// Add inserts it into s.
func (s ItemSet) Add(it Item) {
	s[it] = true
}

// Union returns a new ItemSet containing every item of s and o.
func (s ItemSet) Union(o ItemSet) ItemSet {
	out := make(ItemSet, len(s)+len(o))
	for it := range s {
		out[it] = true
	}
	for it := range o {
		out[it] = true
	}
	return out
}
