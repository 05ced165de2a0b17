package grammar

import (
	"bufio"
	"strings"

	"github.com/kestrelcode/lr1gen/internal/catalog"
	"github.com/kestrelcode/lr1gen/internal/lrerrors"
)

// Load reads a grammar specification file and returns the Grammar it
// describes, built over a fresh Catalog.
//
// The file's micro-syntax, one declaration per logical line:
//
//	%token NAME NAME ...    declares one or more terminals
//	%start NAME             declares the start symbol, overriding the default
//	NAME -> A B | C D ;     one or more productions for non-terminal NAME,
//	                        alternatives separated by '|', terminated by ';'.
//	                        An empty right-hand side denotes an epsilon
//	                        production.
//
// '#' begins a line comment that runs to the end of the line; blank lines
// are ignored. CRLF line endings are normalized to LF before parsing, and
// both are accepted as line terminators, mirroring the teacher's own
// Preprocess step for its grammar-spec format.
//
// Per spec §4.1, the first rule's left-hand side becomes the start symbol S
// when no %start directive is present; %start is an accepted override for
// grammars that want to state it explicitly.
func Load(src string) (*Grammar, error) {
	cat := catalog.New()
	g := New(cat)

	src = strings.ReplaceAll(src, "\r\n", "\n")
	lines := stripComments(src)

	stmts, err := splitStatements(lines)
	if err != nil {
		return nil, err
	}

	sawStart := false
	firstHead := ""
	for _, stmt := range stmts {
		if strings.HasPrefix(stmt.text, "%start") {
			sawStart = true
		} else if !strings.HasPrefix(stmt.text, "%") && firstHead == "" {
			if head, ok := productionHead(stmt); ok {
				firstHead = head
			}
		}
		if err := applyStatement(g, stmt); err != nil {
			return nil, err
		}
	}

	if !sawStart && firstHead != "" {
		g.SetStart(firstHead)
	}

	return g, nil
}

// productionHead extracts the left-hand side of a `NAME -> ...;` statement
// without validating the rest of it; splitStatements/applyStatement still
// perform full validation and report any malformed statement.
func productionHead(stmt statement) (string, bool) {
	body := strings.TrimSuffix(stmt.text, ";")
	arrowIdx := strings.Index(body, "->")
	if arrowIdx < 0 {
		return "", false
	}
	head := strings.TrimSpace(body[:arrowIdx])
	if head == "" || strings.ContainsAny(head, " \t") {
		return "", false
	}
	return head, true
}

type rawLine struct {
	lineNum int
	text    string
}

func stripComments(src string) []rawLine {
	scanner := bufio.NewScanner(strings.NewReader(src))
	var out []rawLine
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		text := scanner.Text()
		if idx := strings.IndexByte(text, '#'); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		out = append(out, rawLine{lineNum: lineNum, text: text})
	}
	return out
}

// statement is one `%directive ...` or `name -> ... ;` unit, possibly
// spanning multiple raw lines (a production list can be broken across
// lines as long as the terminating ';' is present somewhere).
type statement struct {
	lineNum int
	text    string
}

func splitStatements(lines []rawLine) ([]statement, error) {
	var stmts []statement
	var buf strings.Builder
	startLine := 0

	flush := func() error {
		text := strings.TrimSpace(buf.String())
		if text != "" {
			stmts = append(stmts, statement{lineNum: startLine, text: text})
		}
		buf.Reset()
		return nil
	}

	for _, l := range lines {
		if buf.Len() == 0 {
			startLine = l.lineNum
		}
		if strings.HasPrefix(l.text, "%") {
			if buf.Len() != 0 {
				if err := flush(); err != nil {
					return nil, err
				}
				startLine = l.lineNum
			}
			stmts = append(stmts, statement{lineNum: l.lineNum, text: l.text})
			continue
		}

		buf.WriteString(l.text)
		buf.WriteByte(' ')
		if strings.HasSuffix(l.text, ";") {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if buf.Len() != 0 {
		return nil, lrerrors.GrammarSyntax(startLine, "unterminated production (missing ';')")
	}

	return stmts, nil
}

func applyStatement(g *Grammar, stmt statement) error {
	switch {
	case strings.HasPrefix(stmt.text, "%token"):
		fields := strings.Fields(strings.TrimPrefix(stmt.text, "%token"))
		if len(fields) == 0 {
			return lrerrors.GrammarSyntax(stmt.lineNum, "%%token requires at least one name")
		}
		for _, name := range fields {
			g.AddTerm(name)
		}
		return nil

	case strings.HasPrefix(stmt.text, "%start"):
		fields := strings.Fields(strings.TrimPrefix(stmt.text, "%start"))
		if len(fields) != 1 {
			return lrerrors.GrammarSyntax(stmt.lineNum, "%%start requires exactly one symbol name")
		}
		g.SetStart(fields[0])
		return nil

	default:
		return applyProductionStatement(g, stmt)
	}
}

func applyProductionStatement(g *Grammar, stmt statement) error {
	if !strings.HasSuffix(stmt.text, ";") {
		return lrerrors.GrammarSyntax(stmt.lineNum, "production statement must end in ';'")
	}
	body := strings.TrimSuffix(stmt.text, ";")

	arrowIdx := strings.Index(body, "->")
	if arrowIdx < 0 {
		return lrerrors.GrammarSyntax(stmt.lineNum, "expected '->' in production statement %q", stmt.text)
	}

	head := strings.TrimSpace(body[:arrowIdx])
	if head == "" {
		return lrerrors.GrammarSyntax(stmt.lineNum, "production is missing a left-hand non-terminal")
	}
	if strings.ContainsAny(head, " \t") {
		return lrerrors.GrammarSyntax(stmt.lineNum, "left-hand side %q must be a single symbol", head)
	}

	rhs := body[arrowIdx+2:]
	for _, alt := range strings.Split(rhs, "|") {
		alt = strings.TrimSpace(alt)
		var syms []string
		if alt != "" {
			syms = strings.Fields(alt)
		}
		g.AddRule(head, syms)
	}

	return nil
}
