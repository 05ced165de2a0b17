package scanner

import (
	"bufio"
	"strings"

	"github.com/kestrelcode/lr1gen/internal/lrerrors"
)

// LoadSpec reads a lexical specification file and returns the Spec it
// describes. Its micro-syntax mirrors the grammar loader's: one declaration
// per line, '#' starts a line comment, CRLF is normalized to LF.
//
//	%skip PATTERN ;        matches PATTERN but produces no token
//	NAME -> PATTERN ;      matches PATTERN and produces a token of class NAME
//
// PATTERN is a Go regexp (RE2) pattern, taken verbatim between "->" (or
// "%skip") and the terminating ';'.
func LoadSpec(src string) (*Spec, error) {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	spec := NewSpec()

	scanner := bufio.NewScanner(strings.NewReader(src))
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
		if err := applyLine(spec, lineNum, text); err != nil {
			return nil, err
		}
	}

	return spec, nil
}

func applyLine(spec *Spec, lineNum int, text string) error {
	if !strings.HasSuffix(text, ";") {
		return lrerrors.GrammarSyntax(lineNum, "lexical rule must end in ';'")
	}
	body := strings.TrimSpace(strings.TrimSuffix(text, ";"))

	if strings.HasPrefix(body, "%skip") {
		pattern := strings.TrimSpace(strings.TrimPrefix(body, "%skip"))
		if pattern == "" {
			return lrerrors.GrammarSyntax(lineNum, "%%skip requires a pattern")
		}
		spec.Skip(pattern)
		return nil
	}

	arrowIdx := strings.Index(body, "->")
	if arrowIdx < 0 {
		return lrerrors.GrammarSyntax(lineNum, "expected '->' in lexical rule %q", text)
	}
	name := strings.TrimSpace(body[:arrowIdx])
	pattern := strings.TrimSpace(body[arrowIdx+2:])
	if name == "" || pattern == "" {
		return lrerrors.GrammarSyntax(lineNum, "lexical rule requires both a name and a pattern")
	}
	spec.Token(name, pattern)
	return nil
}
