package grammar

import (
	"strings"

	"github.com/kestrelcode/lr1gen/internal/catalog"
)

// Production is a single rule Head -> Body. An empty Body represents an
// epsilon production.
type Production struct {
	Head catalog.Symbol
	Body []catalog.Symbol
}

// String renders the production using cat to resolve names, in the
// "head -> a b c" form used throughout diagnostics.
func (p Production) String(cat *catalog.Catalog) string {
	var sb strings.Builder
	sb.WriteString(cat.Name(p.Head))
	sb.WriteString(" -> ")
	if len(p.Body) == 0 {
		sb.WriteString("ε")
		return sb.String()
	}
	for i, sym := range p.Body {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(cat.Name(sym))
	}
	return sb.String()
}

// Equal reports whether p and o have identical head and body symbols.
func (p Production) Equal(o Production) bool {
	if p.Head != o.Head || len(p.Body) != len(o.Body) {
		return false
	}
	for i := range p.Body {
		if p.Body[i] != o.Body[i] {
			return false
		}
	}
	return true
}
