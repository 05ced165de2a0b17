// Package grammar models a context-free grammar over a catalog.Catalog of
// dense symbol ids: its productions, its start symbol, and the augmentation
// and FIRST-set machinery the table builder needs.
//
// The shape here (AddTerm/AddRule/Validate/Rule/StartSymbol, a Productions
// slice indexable by production number) is grounded on the call sites found
// in the teacher's grammar_test.go and automaton.go — the teacher's own
// grammar.go was not available to copy, only its usage.
package grammar

import (
	"fmt"
	"sort"

	"github.com/kestrelcode/lr1gen/internal/catalog"
	"github.com/kestrelcode/lr1gen/internal/lrerrors"
)

// Grammar is a context-free grammar whose symbols are drawn from a shared
// Catalog and whose productions are addressed by a dense, stable index —
// the index an automaton.Item uses instead of carrying a full production body.
type Grammar struct {
	Cat         *catalog.Catalog
	Productions []Production

	start    catalog.Symbol
	startSet bool
	byHead   map[catalog.Symbol][]int
	nonterms []catalog.Symbol
	nontSeen map[catalog.Symbol]bool

	// explicitTerms/explicitTermSeen record %token declarations: an
	// optional, order-preserving override of the inferred partition below.
	explicitTerms    []catalog.Symbol
	explicitTermSeen map[catalog.Symbol]bool

	// referencedOrder/referencedSeen record every symbol seen on the
	// right-hand side of some production, in first-reference order, so the
	// terminal/non-terminal partition (resolve) is reproducible across runs
	// without depending on Go's randomized map iteration order.
	referencedOrder []catalog.Symbol
	referencedSeen  map[catalog.Symbol]bool

	// terminals/termSeen are the resolved partition, memoized by resolve
	// and invalidated by any further AddTerm/AddRule call.
	resolved  bool
	terminals []catalog.Symbol
	termSeen  map[catalog.Symbol]bool

	augSet       bool
	augStart     catalog.Symbol
	augProdIndex int
}

// New returns an empty grammar over cat.
func New(cat *catalog.Catalog) *Grammar {
	return &Grammar{
		Cat:              cat,
		byHead:           make(map[catalog.Symbol][]int),
		nontSeen:         make(map[catalog.Symbol]bool),
		explicitTermSeen: make(map[catalog.Symbol]bool),
		referencedSeen:   make(map[catalog.Symbol]bool),
	}
}

// AddTerm declares name as a terminal symbol, overriding the inferred
// partition for it, and returns its id.
func (g *Grammar) AddTerm(name string) catalog.Symbol {
	sym := g.internSymbol(name)
	if !g.explicitTermSeen[sym] {
		g.explicitTermSeen[sym] = true
		g.explicitTerms = append(g.explicitTerms, sym)
	}
	g.resolved = false
	return sym
}

// addNonTerm declares name as a non-terminal symbol and returns its id.
func (g *Grammar) addNonTerm(name string) catalog.Symbol {
	sym := g.internSymbol(name)
	if !g.nontSeen[sym] {
		g.nontSeen[sym] = true
		g.nonterms = append(g.nonterms, sym)
	}
	return sym
}

// internSymbol returns the catalog id for name, interning it if this is the
// first time it has been seen. A symbol's role in the catalog's own
// bookkeeping is not authoritative here — resolve decides terminal-ness for
// the grammar.
func (g *Grammar) internSymbol(name string) catalog.Symbol {
	if sym, ok := g.Cat.Lookup(name); ok {
		return sym
	}
	return g.Cat.NonTerminal(name)
}

// AddRule adds a production head -> body to the grammar. head is declared as
// a non-terminal as a side effect. Body symbols need no prior declaration:
// per spec §2/§4.1, a symbol that is never the head of some production is a
// terminal, whether or not it was named in a %token declaration; resolve
// performs that partition once the whole grammar has been loaded.
func (g *Grammar) AddRule(head string, body []string) int {
	headSym := g.addNonTerm(head)

	bodySyms := make([]catalog.Symbol, len(body))
	for i, name := range body {
		sym := g.internSymbol(name)
		bodySyms[i] = sym
		if sym != catalog.Epsilon && !g.referencedSeen[sym] {
			g.referencedSeen[sym] = true
			g.referencedOrder = append(g.referencedOrder, sym)
		}
	}

	idx := len(g.Productions)
	g.Productions = append(g.Productions, Production{Head: headSym, Body: bodySyms})
	g.byHead[headSym] = append(g.byHead[headSym], idx)
	g.resolved = false
	return idx
}

// resolve finalizes the terminal/non-terminal partition per spec §2/§4.1:
// every symbol that appears as some production's head is a non-terminal
// (tracked incrementally by addNonTerm); every other symbol referenced on a
// right-hand side is a terminal, in first-reference order, with %token
// declarations (AddTerm) taking precedence in the published Terminals order.
// Idempotent and memoized; AddTerm/AddRule invalidate it.
func (g *Grammar) resolve() {
	if g.resolved {
		return
	}
	g.resolved = true

	termSeen := make(map[catalog.Symbol]bool, len(g.explicitTerms)+len(g.referencedOrder))
	terms := make([]catalog.Symbol, 0, len(g.explicitTerms)+len(g.referencedOrder))

	for _, sym := range g.explicitTerms {
		if termSeen[sym] {
			continue
		}
		termSeen[sym] = true
		terms = append(terms, sym)
	}
	for _, sym := range g.referencedOrder {
		if _, isHead := g.byHead[sym]; isHead {
			continue
		}
		if termSeen[sym] {
			continue
		}
		termSeen[sym] = true
		terms = append(terms, sym)
	}

	g.termSeen = termSeen
	g.terminals = terms
}

// SetStart declares name as the grammar's start symbol.
func (g *Grammar) SetStart(name string) {
	g.start = g.addNonTerm(name)
	g.startSet = true
}

// StartSymbol returns the declared start symbol.
func (g *Grammar) StartSymbol() catalog.Symbol {
	return g.start
}

// Terminals returns every terminal in the resolved partition: %token
// declarations first in declaration order, then every other right-hand-side
// symbol that is never a production head, in first-reference order.
func (g *Grammar) Terminals() []catalog.Symbol {
	g.resolve()
	return g.terminals
}

// NonTerminals returns every declared non-terminal, in declaration order.
func (g *Grammar) NonTerminals() []catalog.Symbol {
	return g.nonterms
}

// IsTerminal reports whether sym is a terminal under the resolved partition:
// declared via %token, or referenced on some right-hand side without ever
// being a production head.
func (g *Grammar) IsTerminal(sym catalog.Symbol) bool {
	g.resolve()
	return g.termSeen[sym] || sym == catalog.End
}

// Rule returns the productions whose head is nt, in the order they were
// added.
func (g *Grammar) Rule(nt catalog.Symbol) []Production {
	idxs := g.byHead[nt]
	out := make([]Production, len(idxs))
	for i, idx := range idxs {
		out[i] = g.Productions[idx]
	}
	return out
}

// ProductionIndicesFor returns the indices into Productions of every
// production whose head is nt.
func (g *Grammar) ProductionIndicesFor(nt catalog.Symbol) []int {
	return g.byHead[nt]
}

// Validate checks that a start symbol has been declared and has at least
// one production. Every right-hand-side symbol is, by construction of
// resolve, either a production head or a terminal — there is no remaining
// "undeclared symbol" case for a body symbol once the grammar is fully
// loaded.
func (g *Grammar) Validate() error {
	g.resolve()
	if !g.startSet {
		return lrerrors.New(0, "grammar has no start symbol", "grammar has no start symbol")
	}
	if len(g.byHead[g.start]) == 0 {
		return lrerrors.UnknownSymbol(g.Cat.Name(g.start))
	}
	return nil
}

// Augmented introduces the augmented start symbol S' and prepends the
// single production S' -> S to Productions as production 0, per spec §3/
// §4.1 ("production 0 is the augmenting production GOAL -> S") and the
// standard construction (Aho/Sethi/Ullman algorithm 4.56). Every production
// index handed out before the first call shifts up by one to make room; it
// is idempotent, returning the same symbol and production index (0) on
// every call after the first.
func (g *Grammar) Augmented() (start catalog.Symbol, prodIndex int) {
	if g.augSet {
		return g.augStart, g.augProdIndex
	}

	name := g.Cat.Name(g.start) + "'"
	for {
		if _, ok := g.Cat.Lookup(name); !ok {
			break
		}
		name += "'"
	}
	augStart := g.Cat.NonTerminal(name)

	g.Productions = append([]Production{{Head: augStart, Body: []catalog.Symbol{g.start}}}, g.Productions...)
	for head, idxs := range g.byHead {
		shifted := make([]int, len(idxs))
		for i, idx := range idxs {
			shifted[i] = idx + 1
		}
		g.byHead[head] = shifted
	}
	g.byHead[augStart] = []int{0}

	g.augSet = true
	g.augStart = augStart
	g.augProdIndex = 0
	return augStart, 0
}

// String renders every production for debugging and diagnostic dumps.
func (g *Grammar) String() string {
	heads := make([]catalog.Symbol, 0, len(g.byHead))
	for h := range g.byHead {
		heads = append(heads, h)
	}
	sort.Slice(heads, func(i, j int) bool { return heads[i] < heads[j] })

	s := ""
	for _, h := range heads {
		for _, idx := range g.byHead[h] {
			s += fmt.Sprintf("(%d) %s\n", idx, g.Productions[idx].String(g.Cat))
		}
	}
	return s
}
