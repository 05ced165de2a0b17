// Package driver implements the table-driven canonical-LR(1) shift/reduce
// parse driver: the state machine that walks a token stream against
// ACTION/GOTO tables and assembles a concrete parse tree, grounded on the
// teacher's parse.lrParser (algorithm 4.44 in Aho/Sethi/Ullman).
package driver

import (
	"fmt"

	"github.com/kestrelcode/lr1gen/internal/catalog"
	"github.com/kestrelcode/lr1gen/internal/grammar"
	"github.com/kestrelcode/lr1gen/internal/lrerrors"
	"github.com/kestrelcode/lr1gen/internal/lrtable"
	"github.com/kestrelcode/lr1gen/internal/parsetree"
	"github.com/kestrelcode/lr1gen/internal/token"
)

// Status is the driver's current state in its own small state machine.
type Status int

const (
	Running Status = iota
	Accepted
	Failed
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Accepted:
		return "accepted"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// TraceListener is invoked once per shift/reduce/goto/accept step, receiving
// a human-readable description of the step just taken. Registering one turns
// on the parse-trace diagnostic export; it has no effect on parsing itself.
type TraceListener func(step string)

// Driver runs a single parse of a token stream against a Table.
type Driver struct {
	g     *grammar.Grammar
	table *lrtable.Table

	stateStack []int
	treeStack  []*parsetree.Tree

	status Status
	trace  TraceListener
}

// New returns a Driver ready to parse against table.
func New(g *grammar.Grammar, table *lrtable.Table) *Driver {
	return &Driver{
		g:          g,
		table:      table,
		stateStack: []int{table.Collection.Start},
		status:     Running,
	}
}

// RegisterTraceListener sets the listener invoked at every step. Passing nil
// disables tracing.
func (d *Driver) RegisterTraceListener(fn TraceListener) {
	d.trace = fn
}

func (d *Driver) emit(format string, a ...interface{}) {
	if d.trace != nil {
		d.trace(fmt.Sprintf(format, a...))
	}
}

// Status returns the driver's current status.
func (d *Driver) Status() Status {
	return d.status
}

// Parse consumes stream to completion, returning the resulting parse tree on
// acceptance or the first parse error encountered.
func (d *Driver) Parse(stream token.Stream) (*parsetree.Tree, error) {
	for d.status == Running {
		tok := stream.Peek()

		if tok.Class().Equal(token.ClassLexError) {
			d.status = Failed
			d.emit("lexical error at %d:%d", tok.Line(), tok.LinePos())
			return nil, lrerrors.Lexical(tok.Line(), tok.LinePos(), tok.Lexeme())
		}

		var sym catalog.Symbol
		if tok.Class().Equal(token.ClassEndOfText) {
			sym = catalog.End
		} else {
			var ok bool
			sym, ok = d.g.Cat.Lookup(tok.Class().Human())
			if !ok {
				d.status = Failed
				return nil, d.errorFor(d.stateStack[len(d.stateStack)-1], tok, sym)
			}
		}

		state := d.stateStack[len(d.stateStack)-1]
		action, ok := d.table.Action(state, sym)
		if !ok {
			d.status = Failed
			return nil, d.errorFor(state, tok, sym)
		}

		switch action.Kind {
		case lrtable.Shift:
			stream.Next()
			d.stateStack = append(d.stateStack, action.Target)
			d.treeStack = append(d.treeStack, parsetree.Leaf(tok))
			d.emit("shift %s, goto state %d", tok.String(), action.Target)

		case lrtable.Reduce:
			prod := d.g.Productions[action.Target]
			n := len(prod.Body)

			children := make([]*parsetree.Tree, n)
			copy(children, d.treeStack[len(d.treeStack)-n:])
			d.treeStack = d.treeStack[:len(d.treeStack)-n]
			d.stateStack = d.stateStack[:len(d.stateStack)-n]

			node := parsetree.Node(d.g.Cat.Name(prod.Head), children...)
			d.treeStack = append(d.treeStack, node)

			top := d.stateStack[len(d.stateStack)-1]
			next, ok := d.table.Goto(top, prod.Head)
			if !ok {
				d.status = Failed
				lrerrors.Invariant("no GOTO entry for state %d on %s after reducing by %s",
					top, d.g.Cat.Name(prod.Head), prod.String(d.g.Cat))
			}
			d.stateStack = append(d.stateStack, next)
			d.emit("reduce by %s, goto state %d", prod.String(d.g.Cat), next)

		case lrtable.Accept:
			d.status = Accepted
			d.emit("accept")

		default:
			lrerrors.Invariant("unhandled action kind %v", action.Kind)
		}
	}

	if len(d.treeStack) != 1 {
		lrerrors.Invariant("parse accepted with %d trees on the stack, expected 1", len(d.treeStack))
	}
	return d.treeStack[0], nil
}

func (d *Driver) errorFor(state int, tok token.Token, sym catalog.Symbol) error {
	expected := d.expectedTerminals(state)
	d.emit("error in state %d on %s", state, tok.String())
	return lrerrors.Parse(state, tok.String(), expected)
}

// expectedTerminals walks the ACTION row for state and returns the
// human-readable name of every terminal with a defined action there,
// grounded on the teacher's findExpectedTokens/getExpectedString — the
// richer "expected one of ..." message is ambient error-reporting polish on
// top of the bare parse error the construction itself requires.
func (d *Driver) expectedTerminals(state int) []string {
	var names []string
	for _, sym := range d.g.Terminals() {
		if _, ok := d.table.Action(state, sym); ok {
			names = append(names, "'"+d.g.Cat.Name(sym)+"'")
		}
	}
	if _, ok := d.table.Action(state, catalog.End); ok {
		names = append(names, "end of input")
	}
	return names
}
