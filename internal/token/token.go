// Package token defines the token and token-class interfaces that sit
// between the scanner and the parse driver.
package token

import "strings"

// Class identifies the terminal category a token belongs to. Two classes
// with the same ID are considered equal regardless of their concrete type.
type Class interface {
	// ID uniquely identifies the class among all terminals of a grammar.
	ID() string

	// Human gives a name suitable for error messages ("identifier", "'+'").
	Human() string

	Equal(o any) bool
}

type simpleClass string

func (c simpleClass) ID() string {
	return strings.ToLower(string(c))
}

func (c simpleClass) Human() string {
	return string(c)
}

func (c simpleClass) Equal(o any) bool {
	other, ok := o.(Class)
	if !ok {
		return false
	}
	return other.ID() == c.ID()
}

// Reserved classes. ClassEndOfText is what the scanner emits once the input
// is exhausted; the parse driver treats it as the end-marker terminal.
// ClassLexError is what the scanner emits when no pattern matches at the
// current input position; the parse driver treats it as a class-5 lexical
// error rather than a token to look up in the grammar's catalog.
const (
	ClassUndefined = simpleClass("undefined_token")
	ClassEndOfText = simpleClass("$")
	ClassLexError  = simpleClass("lex_error")
)

// NewClass builds a Class whose ID is the lower-cased form of s and whose
// Human name is s unchanged.
func NewClass(s string) Class {
	return simpleClass(s)
}

// Token is a single lexeme produced by the scanner, annotated with its
// source position for diagnostics.
type Token interface {
	Class() Class
	Lexeme() string

	// Line returns the 1-based line number the token started on.
	Line() int
	// LinePos returns the 1-based column the token started at.
	LinePos() int
	// FullLine returns the complete source line the token appeared in, for
	// use in error messages that point at the offending input.
	FullLine() string

	String() string
}

// Stream is a pull-based sequence of tokens.
type Stream interface {
	// Next consumes and returns the next token. Once the stream is
	// exhausted, every subsequent call returns a token of class
	// ClassEndOfText.
	Next() Token
	// Peek returns the next token without consuming it.
	Peek() Token
	// HasNext reports whether Next would return anything other than an
	// end-of-text token.
	HasNext() bool
}

type simpleToken struct {
	class    Class
	lexeme   string
	line     int
	linePos  int
	fullLine string
}

func (t simpleToken) Class() Class      { return t.class }
func (t simpleToken) Lexeme() string    { return t.lexeme }
func (t simpleToken) Line() int         { return t.line }
func (t simpleToken) LinePos() int      { return t.linePos }
func (t simpleToken) FullLine() string  { return t.fullLine }
func (t simpleToken) String() string {
	return t.class.Human() + " " + "\"" + t.lexeme + "\""
}

// New builds a Token with the given class, lexeme, and source position.
func New(class Class, lexeme string, line, linePos int, fullLine string) Token {
	return simpleToken{
		class:    class,
		lexeme:   lexeme,
		line:     line,
		linePos:  linePos,
		fullLine: fullLine,
	}
}
