package automaton

import (
	"github.com/kestrelcode/lr1gen/internal/catalog"
	"github.com/kestrelcode/lr1gen/internal/grammar"
)

// Closure computes CLOSURE(items) over g, per the standard algorithm
// (Aho/Sethi/Ullman algorithm 4.54): repeatedly add, for every item
// [A -> α.Bβ, a] already in the set, one item [B -> .γ, b] for every
// production B -> γ and every b in FIRST(βa), until a fixed point is
// reached.
func Closure(items ItemSet, g *grammar.Grammar, fs *grammar.FirstSets) ItemSet {
	result := make(ItemSet, len(items))
	for it := range items {
		result[it] = true
	}

	worklist := items.Sorted()

	for len(worklist) > 0 {
		it := worklist[0]
		worklist = worklist[1:]

		prod := g.Productions[it.ProdIndex]
		if it.Dot >= len(prod.Body) {
			continue
		}
		b := prod.Body[it.Dot]
		if g.IsTerminal(b) {
			continue
		}

		beta := prod.Body[it.Dot+1:]
		lookaheads := fs.OfSequence(append(append([]catalog.Symbol{}, beta...), it.Lookahead))

		for _, prodIdx := range g.ProductionIndicesFor(b) {
			las := sortedLookaheads(lookaheads)
			for _, la := range las {
				if la == catalog.Epsilon {
					continue
				}
				newItem := Item{ProdIndex: prodIdx, Dot: 0, Lookahead: la}
				if !result[newItem] {
					result[newItem] = true
					worklist = append(worklist, newItem)
				}
			}
		}
	}

	return result
}

func sortedLookaheads(m map[catalog.Symbol]bool) []catalog.Symbol {
	out := make([]catalog.Symbol, 0, len(m))
	for s := range m {
		out = append(out, s)
	}
	// small sets; insertion sort keeps this allocation-free and the
	// ordering is only needed to make iteration deterministic, not fast.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// Goto computes GOTO(items, sym): the closure of every item whose dot can
// move across sym.
func Goto(items ItemSet, sym catalog.Symbol, g *grammar.Grammar, fs *grammar.FirstSets) ItemSet {
	moved := ItemSet{}
	for it := range items {
		prod := g.Productions[it.ProdIndex]
		if it.Dot < len(prod.Body) && prod.Body[it.Dot] == sym {
			moved.Add(Advance(it))
		}
	}
	return Closure(moved, g, fs)
}

// State is one state of the canonical collection: its dense index, its item
// set, and its outgoing transitions keyed by symbol.
type State struct {
	Index       int
	Items       ItemSet
	Transitions map[catalog.Symbol]int
}

// Collection is the canonical collection of LR(1) item sets (the states of
// the viable-prefix DFA), plus the index of its start state.
type Collection struct {
	States []*State
	Start  int
}

// Build constructs the canonical collection for g, starting from the
// augmented production S' -> S, $ . State indices are assigned in the order
// states are first discovered by the worklist, and for a given grammar and
// catalog that discovery order is itself deterministic: the worklist always
// visits a state's outgoing transitions in ascending symbol id, so two runs
// over the same grammar produce identical state numbering and identical
// transition tables.
func Build(g *grammar.Grammar, fs *grammar.FirstSets) *Collection {
	_, augProdIndex := g.Augmented()
	startItems := Closure(NewItemSet(Item{ProdIndex: augProdIndex, Dot: 0, Lookahead: catalog.End}), g, fs)

	coll := &Collection{}
	keyToIndex := make(map[string]int)

	addState := func(items ItemSet) int {
		key := items.Key()
		if idx, ok := keyToIndex[key]; ok {
			return idx
		}
		idx := len(coll.States)
		coll.States = append(coll.States, &State{
			Index:       idx,
			Items:       items,
			Transitions: make(map[catalog.Symbol]int),
		})
		keyToIndex[key] = idx
		return idx
	}

	coll.Start = addState(startItems)

	worklist := []int{coll.Start}
	for len(worklist) > 0 {
		stateIdx := worklist[0]
		worklist = worklist[1:]
		state := coll.States[stateIdx]

		symbols := symbolsAfterDot(state.Items, g)
		for _, sym := range symbols {
			next := Goto(state.Items, sym, g, fs)
			if len(next) == 0 {
				continue
			}
			before := len(coll.States)
			nextIdx := addState(next)
			state.Transitions[sym] = nextIdx
			if nextIdx >= before {
				worklist = append(worklist, nextIdx)
			}
		}
	}

	return coll
}

// symbolsAfterDot returns, in ascending id order, every distinct symbol that
// appears immediately after the dot in some item of items. Ascending order
// here is what makes GOTO-discovery order (and therefore state numbering)
// reproducible.
func symbolsAfterDot(items ItemSet, g *grammar.Grammar) []catalog.Symbol {
	seen := map[catalog.Symbol]bool{}
	for it := range items {
		prod := g.Productions[it.ProdIndex]
		if it.Dot < len(prod.Body) {
			seen[prod.Body[it.Dot]] = true
		}
	}
	out := make([]catalog.Symbol, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
