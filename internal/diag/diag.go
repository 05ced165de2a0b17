// Package diag renders the diagnostic exports named in the specification:
// the grammar dump, FIRST sets, the canonical collection, the ACTION/GOTO
// tables, and the parse trace. Table rendering is grounded on the teacher's
// canonicalLR1Table.String(), which uses rosed's InsertTableOpts for the
// same purpose.
package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/kestrelcode/lr1gen/internal/automaton"
	"github.com/kestrelcode/lr1gen/internal/catalog"
	"github.com/kestrelcode/lr1gen/internal/grammar"
	"github.com/kestrelcode/lr1gen/internal/lrtable"
)

// Grammar renders every production in g, one per line, numbered by
// production index.
func Grammar(g *grammar.Grammar) string {
	return g.String()
}

// First renders the FIRST set of every non-terminal in g. Terminals, whose
// FIRST set is just themselves, are not listed.
func First(g *grammar.Grammar, fs *grammar.FirstSets) string {
	var sb strings.Builder
	for _, nt := range g.NonTerminals() {
		sb.WriteString(fmt.Sprintf("FIRST(%s) = %s\n", g.Cat.Name(nt), formatSet(fs.Of(nt), g.Cat)))
	}
	return sb.String()
}

func formatSet(set map[catalog.Symbol]bool, cat *catalog.Catalog) string {
	names := make([]string, 0, len(set))
	for s := range set {
		names = append(names, cat.Name(s))
	}
	sort.Strings(names)
	return "{ " + strings.Join(names, ", ") + " }"
}

// Collection renders every state of coll: its index and the items it
// contains, in the same sorted order used to compute each state's canonical
// key.
func Collection(g *grammar.Grammar, coll *automaton.Collection) string {
	var sb strings.Builder
	for _, state := range coll.States {
		marker := ""
		if state.Index == coll.Start {
			marker = " (start)"
		}
		sb.WriteString(fmt.Sprintf("state %d%s:\n", state.Index, marker))
		for _, it := range state.Items.Sorted() {
			sb.WriteString("  " + it.String(g, g.Productions) + "\n")
		}
	}
	return sb.String()
}

// Transitions renders every state's outgoing transitions in ascending
// symbol order.
func Transitions(g *grammar.Grammar, coll *automaton.Collection) string {
	var sb strings.Builder
	for _, state := range coll.States {
		syms := make([]catalog.Symbol, 0, len(state.Transitions))
		for s := range state.Transitions {
			syms = append(syms, s)
		}
		sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
		for _, s := range syms {
			sb.WriteString(fmt.Sprintf("state %d --%s--> state %d\n", state.Index, g.Cat.Name(s), state.Transitions[s]))
		}
	}
	return sb.String()
}

// Table renders the ACTION and GOTO tables of t as a single grid, using the
// same "S | A:term... | G:nonterm..." layout the teacher uses for its own
// parse table dump.
func Table(g *grammar.Grammar, t *lrtable.Table) string {
	terms := append([]catalog.Symbol{}, g.Terminals()...)
	terms = append(terms, catalog.End)
	nonterms := g.NonTerminals()

	headers := []string{"S", "|"}
	for _, term := range terms {
		headers = append(headers, "A:"+g.Cat.Name(term))
	}
	headers = append(headers, "|")
	for _, nt := range nonterms {
		headers = append(headers, "G:"+g.Cat.Name(nt))
	}

	data := [][]string{headers}

	for _, state := range t.Collection.States {
		row := []string{fmt.Sprintf("%d", state.Index), "|"}
		for _, term := range terms {
			cell := ""
			if act, ok := t.Action(state.Index, term); ok {
				switch act.Kind {
				case lrtable.Shift:
					cell = fmt.Sprintf("s%d", act.Target)
				case lrtable.Reduce:
					cell = fmt.Sprintf("r%d", act.Target)
				case lrtable.Accept:
					cell = "acc"
				}
			}
			row = append(row, cell)
		}
		row = append(row, "|")
		for _, nt := range nonterms {
			cell := ""
			if s, ok := t.Goto(state.Index, nt); ok {
				cell = fmt.Sprintf("%d", s)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// Conflicts renders every conflict recorded while building t, if any.
func Conflicts(t *lrtable.Table) string {
	if len(t.Conflicts) == 0 {
		return "no conflicts\n"
	}
	var sb strings.Builder
	for _, c := range t.Conflicts {
		sb.WriteString(c.Message + "\n")
	}
	return sb.String()
}

// Trace collects the step-by-step narration emitted by a driver's
// TraceListener into a single rendered log.
type Trace struct {
	steps []string
}

// NewTrace returns an empty Trace collector whose Listen method can be
// registered directly with driver.RegisterTraceListener.
func NewTrace() *Trace {
	return &Trace{}
}

// Listen records one step. Pass this method value to
// driver.RegisterTraceListener.
func (t *Trace) Listen(step string) {
	t.steps = append(t.steps, step)
}

// String renders every recorded step, one per line, numbered in order.
func (t *Trace) String() string {
	var sb strings.Builder
	for i, step := range t.steps {
		sb.WriteString(fmt.Sprintf("%4d. %s\n", i+1, step))
	}
	return sb.String()
}
