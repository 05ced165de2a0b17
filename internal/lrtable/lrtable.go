// Package lrtable turns a canonical collection of LR(1) item sets into
// ACTION/GOTO tables, detecting shift/reduce and reduce/reduce conflicts
// along the way.
//
// The conflict policy (first action written for a state/symbol pair wins;
// every later attempt is recorded as a diagnostic rather than silently
// discarded or treated as fatal) mirrors the resolution of the grammar's own
// open question: conflicts are reported, not fatal, so a grammar author can
// see every one of them from a single run instead of fixing them one at a
// time.
package lrtable

import (
	"fmt"
	"sort"

	"github.com/kestrelcode/lr1gen/internal/automaton"
	"github.com/kestrelcode/lr1gen/internal/catalog"
	"github.com/kestrelcode/lr1gen/internal/grammar"
)

// ActionKind identifies what an Action entry tells the driver to do.
type ActionKind int

const (
	// Shift pushes the lookahead token and moves to Action.Target (a state
	// index).
	Shift ActionKind = iota
	// Reduce pops |body| symbols and reduces by the production at
	// Action.Target (a production index).
	Reduce
	// Accept ends a successful parse.
	Accept
)

func (k ActionKind) String() string {
	switch k {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	default:
		return "unknown"
	}
}

// Action is one ACTION-table cell.
type Action struct {
	Kind   ActionKind
	Target int
}

// Conflict records an action that lost out to an earlier one written to the
// same state/symbol cell.
type Conflict struct {
	State    int
	Symbol   catalog.Symbol
	Winner   Action
	Loser    Action
	RR       bool // true for reduce/reduce, false for shift/reduce
	Message  string
}

// Table is the pair of ACTION and GOTO tables produced for one canonical
// collection, plus any conflicts found while building them.
type Table struct {
	Collection *automaton.Collection
	action     []map[catalog.Symbol]Action
	goTo       []map[catalog.Symbol]int
	Conflicts  []Conflict
}

// Action returns the ACTION entry for (state, sym), if one exists.
func (t *Table) Action(state int, sym catalog.Symbol) (Action, bool) {
	a, ok := t.action[state][sym]
	return a, ok
}

// Goto returns the GOTO entry for (state, nonterm), if one exists.
func (t *Table) Goto(state int, nonterm catalog.Symbol) (int, bool) {
	s, ok := t.goTo[state][nonterm]
	return s, ok
}

// Build constructs ACTION/GOTO tables from coll, per the standard algorithm
// (Aho/Sethi/Ullman algorithm 4.56): for every state, a shift action for
// every terminal-labeled transition, a reduce action for every complete item
// (keyed by its lookahead), and an accept action for the augmented
// production's complete item on the end marker. Non-terminal-labeled
// transitions become GOTO entries.
func Build(g *grammar.Grammar, coll *automaton.Collection) *Table {
	_, augProdIndex := g.Augmented()

	t := &Table{
		Collection: coll,
		action:     make([]map[catalog.Symbol]Action, len(coll.States)),
		goTo:       make([]map[catalog.Symbol]int, len(coll.States)),
	}

	for i := range coll.States {
		t.action[i] = make(map[catalog.Symbol]Action)
		t.goTo[i] = make(map[catalog.Symbol]int)
	}

	for _, state := range coll.States {
		t.fillTransitions(g, state)
		t.fillReductions(g, state, augProdIndex)
	}

	return t
}

func (t *Table) fillTransitions(g *grammar.Grammar, state *automaton.State) {
	syms := make([]catalog.Symbol, 0, len(state.Transitions))
	for sym := range state.Transitions {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })

	for _, sym := range syms {
		target := state.Transitions[sym]
		if g.IsTerminal(sym) {
			t.writeAction(state.Index, sym, Action{Kind: Shift, Target: target}, g)
		} else {
			t.goTo[state.Index][sym] = target
		}
	}
}

func (t *Table) fillReductions(g *grammar.Grammar, state *automaton.State, augProdIndex int) {
	for _, it := range state.Items.Sorted() {
		prod := g.Productions[it.ProdIndex]
		if it.Dot != len(prod.Body) {
			continue
		}
		if it.ProdIndex == augProdIndex && it.Lookahead == catalog.End {
			t.writeAction(state.Index, catalog.End, Action{Kind: Accept}, g)
			continue
		}
		t.writeAction(state.Index, it.Lookahead, Action{Kind: Reduce, Target: it.ProdIndex}, g)
	}
}

func (t *Table) writeAction(state int, sym catalog.Symbol, candidate Action, g *grammar.Grammar) {
	existing, ok := t.action[state][sym]
	if !ok {
		t.action[state][sym] = candidate
		return
	}
	if existing == candidate {
		return
	}

	rr := existing.Kind == Reduce && candidate.Kind == Reduce
	t.Conflicts = append(t.Conflicts, Conflict{
		State:   state,
		Symbol:  sym,
		Winner:  existing,
		Loser:   candidate,
		RR:      rr,
		Message: conflictMessage(state, sym, existing, candidate, rr, g),
	})
	// first write wins: existing entry in t.action[state][sym] is left as-is.
}

func conflictMessage(state int, sym catalog.Symbol, winner, loser Action, rr bool, g *grammar.Grammar) string {
	kind := "shift/reduce"
	if rr {
		kind = "reduce/reduce"
	}
	return fmt.Sprintf("%s conflict in state %d on %q: kept %s, discarded %s",
		kind, state, g.Cat.Name(sym), describeAction(winner, g), describeAction(loser, g))
}

func describeAction(a Action, g *grammar.Grammar) string {
	switch a.Kind {
	case Shift:
		return fmt.Sprintf("shift to state %d", a.Target)
	case Reduce:
		return fmt.Sprintf("reduce by %s", g.Productions[a.Target].String(g.Cat))
	case Accept:
		return "accept"
	default:
		return "?"
	}
}
