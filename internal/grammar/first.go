package grammar

import "github.com/kestrelcode/lr1gen/internal/catalog"

// FirstSets maps every symbol to its FIRST set, computed once for a grammar
// and reused by item-set closure and the FIRST-set diagnostic dump.
type FirstSets struct {
	g     *Grammar
	table map[catalog.Symbol]map[catalog.Symbol]bool
}

// ComputeFirst runs the standard worklist fixed-point over g's productions
// (Aho/Sethi/Ullman algorithm 4.4) until no FIRST set changes in a full
// pass over every production.
func ComputeFirst(g *Grammar) *FirstSets {
	fs := &FirstSets{g: g, table: make(map[catalog.Symbol]map[catalog.Symbol]bool)}

	for _, t := range g.Terminals() {
		fs.table[t] = map[catalog.Symbol]bool{t: true}
	}
	fs.table[catalog.End] = map[catalog.Symbol]bool{catalog.End: true}
	for _, nt := range g.NonTerminals() {
		if _, ok := fs.table[nt]; !ok {
			fs.table[nt] = map[catalog.Symbol]bool{}
		}
	}
	for _, p := range g.Productions {
		if _, ok := fs.table[p.Head]; !ok {
			fs.table[p.Head] = map[catalog.Symbol]bool{}
		}
	}

	changed := true
	for changed {
		changed = false
		for _, p := range g.Productions {
			headSet := fs.table[p.Head]

			allNullableSoFar := true
			for _, sym := range p.Body {
				if sym == catalog.Epsilon {
					continue
				}
				symSet := fs.table[sym]
				for s := range symSet {
					if s == catalog.Epsilon {
						continue
					}
					if !headSet[s] {
						headSet[s] = true
						changed = true
					}
				}
				if !symSet[catalog.Epsilon] {
					allNullableSoFar = false
					break
				}
			}

			if allNullableSoFar {
				if !headSet[catalog.Epsilon] {
					headSet[catalog.Epsilon] = true
					changed = true
				}
			}
		}
	}

	return fs
}

// Of returns the FIRST set of a single symbol.
func (fs *FirstSets) Of(sym catalog.Symbol) map[catalog.Symbol]bool {
	return fs.table[sym]
}

// OfSequence computes FIRST(β) for a string of symbols β, the form used
// when building lookahead sets for LR(1) items: FIRST of every symbol in
// sequence until one is found that cannot derive epsilon, unioning in
// epsilon only if the whole sequence is nullable.
func (fs *FirstSets) OfSequence(seq []catalog.Symbol) map[catalog.Symbol]bool {
	result := map[catalog.Symbol]bool{}
	allNullable := true

	for _, sym := range seq {
		if sym == catalog.Epsilon {
			continue
		}
		symSet := fs.table[sym]
		for s := range symSet {
			if s != catalog.Epsilon {
				result[s] = true
			}
		}
		if !symSet[catalog.Epsilon] {
			allNullable = false
			break
		}
	}

	if allNullable {
		result[catalog.Epsilon] = true
	}

	return result
}

// Nullable reports whether sym can derive epsilon.
func (fs *FirstSets) Nullable(sym catalog.Symbol) bool {
	return fs.table[sym][catalog.Epsilon]
}
