// Package catalog assigns dense integer identifiers to grammar symbols.
//
// Every downstream component (item sets, ACTION/GOTO tables, the parse
// stack) indexes by Symbol rather than by name, which is what makes the
// canonical collection and table construction reproducible: map iteration
// over strings is unordered, map iteration keyed by an ascending int range
// is not.
package catalog

import "github.com/kestrelcode/lr1gen/internal/lrerrors"

// Symbol is a dense, zero-based identifier for a terminal or non-terminal.
type Symbol int

// Reserved symbol ids. Every catalog begins with exactly these two entries,
// in this order, so that End and Epsilon compare equal across catalogs built
// from different grammar files.
const (
	End     Symbol = 0
	Epsilon Symbol = 1
)

const (
	endName     = "$"
	epsilonName = "ε"
)

// Catalog is a bidirectional mapping between symbol names and their dense
// integer ids. It also records, per symbol, whether it is a terminal.
type Catalog struct {
	names    []string
	ids      map[string]Symbol
	terminal []bool
}

// New returns a Catalog pre-populated with the two reserved symbols, End and
// Epsilon.
func New() *Catalog {
	c := &Catalog{
		ids: make(map[string]Symbol),
	}
	c.intern(endName, true)
	c.intern(epsilonName, true)
	return c
}

func (c *Catalog) intern(name string, terminal bool) Symbol {
	id := Symbol(len(c.names))
	c.names = append(c.names, name)
	c.ids[name] = id
	c.terminal = append(c.terminal, terminal)
	return id
}

// Terminal interns name as a terminal symbol, returning its id. If name is
// already known, its existing id is returned and terminal-ness is not
// changed.
func (c *Catalog) Terminal(name string) Symbol {
	if id, ok := c.ids[name]; ok {
		return id
	}
	return c.intern(name, true)
}

// NonTerminal interns name as a non-terminal symbol, returning its id. If
// name is already known, its existing id is returned and terminal-ness is
// not changed.
func (c *Catalog) NonTerminal(name string) Symbol {
	if id, ok := c.ids[name]; ok {
		return id
	}
	return c.intern(name, false)
}

// Lookup returns the id assigned to name, if any.
func (c *Catalog) Lookup(name string) (Symbol, bool) {
	id, ok := c.ids[name]
	return id, ok
}

// MustLookup is like Lookup but raises lrerrors.UnknownSymbol if name was
// never interned.
func (c *Catalog) MustLookup(name string) (Symbol, error) {
	id, ok := c.ids[name]
	if !ok {
		return 0, lrerrors.UnknownSymbol(name)
	}
	return id, nil
}

// Name returns the declared name of sym.
func (c *Catalog) Name(sym Symbol) string {
	if int(sym) < 0 || int(sym) >= len(c.names) {
		lrerrors.Invariant("symbol id %d out of range for catalog of size %d", sym, len(c.names))
	}
	return c.names[sym]
}

// IsTerminal reports whether sym was interned via Terminal (or is one of the
// reserved End and Epsilon symbols).
func (c *Catalog) IsTerminal(sym Symbol) bool {
	if int(sym) < 0 || int(sym) >= len(c.terminal) {
		lrerrors.Invariant("symbol id %d out of range for catalog of size %d", sym, len(c.terminal))
	}
	return c.terminal[sym]
}

// Len returns the number of distinct symbols interned, including the two
// reserved ones.
func (c *Catalog) Len() int {
	return len(c.names)
}

// Symbols returns every interned symbol id in ascending order.
func (c *Catalog) Symbols() []Symbol {
	out := make([]Symbol, c.Len())
	for i := range out {
		out[i] = Symbol(i)
	}
	return out
}
