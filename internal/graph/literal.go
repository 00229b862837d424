package graph

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// LiteralKind is the type tag of a Literal.
type LiteralKind int

const (
	LiteralNone LiteralKind = iota
	LiteralString
	LiteralNumber
	LiteralBool
	// LiteralExpression holds source text that is emitted verbatim.
	LiteralExpression
)

// Literal is a default or property value as it will be written into generated code.
// Numbers keep their textual form so that "1.50" is not rewritten to "1.5".
type Literal struct {
	Kind LiteralKind
	Text string
}

// None returns the null literal.
func None() Literal { return Literal{Kind: LiteralNone} }

// String returns a string literal.
func String(s string) Literal { return Literal{Kind: LiteralString, Text: s} }

// Number returns a numeric literal from its textual form.
func Number(text string) Literal { return Literal{Kind: LiteralNumber, Text: text} }

// Int returns a numeric literal.
func Int(i int) Literal { return Number(strconv.Itoa(i)) }

// Bool returns a boolean literal.
func Bool(b bool) Literal {
	if b {
		return Literal{Kind: LiteralBool, Text: "true"}
	}
	return Literal{Kind: LiteralBool, Text: "false"}
}

// Expression returns a literal that is emitted verbatim.
func Expression(src string) Literal { return Literal{Kind: LiteralExpression, Text: src} }

// IsNone reports whether the literal is the null literal.
func (l Literal) IsNone() bool { return l.Kind == LiteralNone }

// Truthy reports whether a boolean literal is true.
func (l Literal) Truthy() bool { return l.Kind == LiteralBool && l.Text == "true" }

// Validate rejects text that cannot be written into a UTF-8 source file unchanged.
// String literals are escaped rune by rune, so an invalid byte would come out as a
// different character.
func (l Literal) Validate() error {
	if (l.Kind == LiteralString || l.Kind == LiteralExpression) && !utf8.ValidString(l.Text) {
		return fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidLiteral, l.Text)
	}
	return nil
}
