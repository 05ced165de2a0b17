// Package lrerrors defines the typed error taxonomy used across the parser
// generator and driver. Every class carries a technical message (returned by
// Error()) and, where the error can surface to an interactive operator, a
// shorter human-facing summary.
package lrerrors

import "fmt"

// Class identifies which of the seven error classes an error belongs to.
type Class int

const (
	// ClassGrammarSyntax is returned when a grammar specification file cannot
	// be parsed by its own micro-syntax.
	ClassGrammarSyntax Class = iota
	// ClassUnknownSymbol is returned when a symbol name cannot be resolved:
	// a catalog lookup of a name that was never interned, or a start symbol
	// that heads no production.
	ClassUnknownSymbol
	// ClassShiftReduceConflict is returned when table construction finds two
	// viable actions, a shift and a reduce, for the same state/lookahead.
	ClassShiftReduceConflict
	// ClassReduceReduceConflict is returned when table construction finds two
	// viable reductions for the same state/lookahead.
	ClassReduceReduceConflict
	// ClassLexical is returned by the driver when the scanner hands it an
	// error token because no pattern matches at the current input position.
	ClassLexical
	// ClassParse is returned by the driver when the current state has no
	// action for the lookahead symbol.
	ClassParse
	// ClassInternal marks a broken invariant in the generator itself. Errors
	// of this class are never returned to a caller; they are raised as
	// panics via Invariant.
	ClassInternal
)

func (c Class) String() string {
	switch c {
	case ClassGrammarSyntax:
		return "grammar syntax error"
	case ClassUnknownSymbol:
		return "unknown symbol"
	case ClassShiftReduceConflict:
		return "shift/reduce conflict"
	case ClassReduceReduceConflict:
		return "reduce/reduce conflict"
	case ClassLexical:
		return "lexical error"
	case ClassParse:
		return "parse error"
	case ClassInternal:
		return "internal invariant violation"
	default:
		return "unknown error class"
	}
}

// lrError is the concrete error type for every class except ClassInternal.
// It mirrors the teacher's interpreterError: a technical message for Error(),
// an optional human-facing one-liner for an operator-facing summary, and an
// optional wrapped cause.
type lrError struct {
	class     Class
	technical string
	human     string
	wrap      error
}

func (e *lrError) Error() string {
	return e.technical
}

// Human returns the short operator-facing summary for this error, falling
// back to the technical message if none was set.
func (e *lrError) Human() string {
	if e.human == "" {
		return e.technical
	}
	return e.human
}

func (e *lrError) Unwrap() error {
	return e.wrap
}

// ClassOf returns the error class of err, or false if err is not one raised
// by this package.
func ClassOf(err error) (Class, bool) {
	if lr, ok := err.(*lrError); ok {
		return lr.class, true
	}
	return 0, false
}

// New creates an error of the given class with a technical message and an
// optional human-facing summary. If human is empty, Human() falls back to
// technical.
func New(class Class, human, technicalFormat string, a ...interface{}) error {
	return &lrError{
		class:     class,
		technical: fmt.Sprintf(technicalFormat, a...),
		human:     human,
	}
}

// Wrap is like New but also records a wrapped cause, retrievable via
// errors.Unwrap.
func Wrap(class Class, cause error, human, technicalFormat string, a ...interface{}) error {
	return &lrError{
		class:     class,
		technical: fmt.Sprintf(technicalFormat, a...),
		human:     human,
		wrap:      cause,
	}
}

// GrammarSyntax reports a malformed grammar specification file at the given
// line.
func GrammarSyntax(line int, format string, a ...interface{}) error {
	msg := fmt.Sprintf(format, a...)
	return New(ClassGrammarSyntax, msg, "grammar syntax error at line %d: %s", line, msg)
}

// UnknownSymbol reports a reference to a symbol that was never declared.
func UnknownSymbol(name string) error {
	return New(ClassUnknownSymbol, fmt.Sprintf("undeclared symbol %q", name),
		"reference to undeclared symbol %q", name)
}

// Lexical reports that no scanner pattern matched at the given source
// position.
func Lexical(line, col int, context string) error {
	return New(ClassLexical, fmt.Sprintf("no token matches input near %q", context),
		"lexical error at line %d, column %d: no token matches input near %q", line, col, context)
}

// Parse reports that the driver had no action for symbol t while in state s.
func Parse(state int, lookahead string, expected []string) error {
	human := fmt.Sprintf("unexpected %s", lookahead)
	if len(expected) > 0 {
		human = fmt.Sprintf("unexpected %s; %s", lookahead, expectedClause(expected))
	}
	return New(ClassParse, human,
		"parse error in state %d on lookahead %s: no action defined", state, lookahead)
}

func expectedClause(expected []string) string {
	if len(expected) == 1 {
		return "expected " + expected[0]
	}
	list := expected[0]
	for i := 1; i < len(expected)-1; i++ {
		list += ", " + expected[i]
	}
	list += " or " + expected[len(expected)-1]
	return "expected one of " + list
}

// Invariant raises an unrecoverable internal invariant violation. Per the
// error taxonomy, this is the one class that aborts the process rather than
// returning an error value: a broken invariant in the generator itself means
// every further result is untrustworthy.
func Invariant(format string, a ...interface{}) {
	panic(fmt.Sprintf("%s: %s", ClassInternal, fmt.Sprintf(format, a...)))
}
