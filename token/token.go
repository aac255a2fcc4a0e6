// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package token

import (
	"fmt"
	"slices"
	"strings"

	"github.com/synparse/synparse/source"
)

// Token is a single lexical token: an identifier, a punctuation character, a
// literal, a lifetime, or a delimited group of further tokens.
//
// Tokens are immutable values; the zero Token is not a valid token and
// reports true from [Token.IsZero].
type Token struct {
	kind Kind

	// Identifier text, literal source text, or lifetime name (including the
	// leading apostrophe).
	text string

	// For Punct.
	char    rune
	spacing Spacing

	// For Literal.
	lit LitKind

	// For Group.
	delim       Delimiter
	stream      Stream
	open, close source.Span

	span source.Span
}

// NewIdent constructs a new identifier token.
//
// Raw identifiers keep their r# prefix in text.
func NewIdent(text string, span source.Span) Token {
	return Token{kind: Ident, text: text, span: span}
}

// NewPunct constructs a new single-character punctuation token.
func NewPunct(char rune, spacing Spacing, span source.Span) Token {
	return Token{kind: Punct, char: char, spacing: spacing, span: span}
}

// NewLiteral constructs a new literal token from its source text, including
// quotes, prefixes and suffixes.
func NewLiteral(kind LitKind, text string, span source.Span) Token {
	return Token{kind: Literal, lit: kind, text: text, span: span}
}

// NewLifetime constructs a new lifetime token. name must include the
// leading apostrophe.
func NewLifetime(name string, span source.Span) Token {
	if !strings.HasPrefix(name, "'") {
		panic(fmt.Sprintf("synparse/token: lifetime %q does not begin with '", name))
	}
	return Token{kind: Lifetime, text: name, span: span}
}

// NewGroup constructs a new delimited group. The span of the whole group is
// the join of its delimiters.
func NewGroup(delim Delimiter, stream Stream, open, close source.Span) Token {
	return Token{
		kind:   Group,
		delim:  delim,
		stream: stream,
		open:   open,
		close:  close,
		span:   source.Join(open, close),
	}
}

// IsZero returns whether this is the zero Token.
func (t Token) IsZero() bool {
	return t.kind == 0
}

// Kind returns what kind of token this is.
func (t Token) Kind() Kind {
	return t.kind
}

// Text returns the text of an identifier, literal or lifetime. Returns the
// empty string for punctuation and groups.
func (t Token) Text() string {
	return t.text
}

// Char returns the character of a punctuation token, or zero.
func (t Token) Char() rune {
	return t.char
}

// Spacing returns the spacing of a punctuation token.
func (t Token) Spacing() Spacing {
	return t.spacing
}

// LitKind returns the kind of a literal token.
func (t Token) LitKind() LitKind {
	return t.lit
}

// Delimiter returns the delimiter of a group token.
func (t Token) Delimiter() Delimiter {
	return t.delim
}

// Stream returns the tokens inside a group token.
func (t Token) Stream() Stream {
	return t.stream
}

// Span implements [source.Spanner].
func (t Token) Span() source.Span {
	return t.span
}

// OpenSpan returns the span of a group's opening delimiter.
func (t Token) OpenSpan() source.Span {
	return t.open
}

// CloseSpan returns the span of a group's closing delimiter.
func (t Token) CloseSpan() source.Span {
	return t.close
}

// WithSpan returns a copy of this token with its span replaced.
//
// For groups, both delimiter spans are set to span.
func (t Token) WithSpan(span source.Span) Token {
	t.span = span
	if t.kind == Group {
		t.open, t.close = span, span
	}
	return t
}

// Is returns whether this is an identifier with the given text, or a
// punctuation token with the given character.
func (t Token) Is(text string) bool {
	switch t.kind {
	case Ident:
		return t.text == text
	case Punct:
		return string(t.char) == text
	default:
		return false
	}
}

// Equal returns whether two tokens are the same modulo spans. Groups are
// compared recursively.
func (t Token) Equal(other Token) bool {
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case Ident, Lifetime:
		return t.text == other.text
	case Punct:
		return t.char == other.char && t.spacing == other.spacing
	case Literal:
		return t.lit == other.lit && t.text == other.text
	case Group:
		return t.delim == other.delim && t.stream.Equal(other.stream)
	}
	return true
}

// String implements [fmt.Stringer].
func (t Token) String() string {
	var out strings.Builder
	t.write(&out)
	return out.String()
}

// Describe returns a short description of this token for use in
// diagnostics, such as "`foo`" or "string literal".
func (t Token) Describe() string {
	switch t.kind {
	case Ident, Punct, Lifetime:
		return "`" + t.String() + "`"
	case Literal:
		return t.lit.String() + " literal"
	case Group:
		if t.delim == Invisible {
			return "invisible group"
		}
		return fmt.Sprintf("`%c`", t.delim.Open())
	default:
		return "nothing"
	}
}

func (t Token) write(out *strings.Builder) {
	switch t.kind {
	case Ident, Literal, Lifetime:
		out.WriteString(t.text)
	case Punct:
		out.WriteRune(t.char)
	case Group:
		if r := t.delim.Open(); r != 0 {
			out.WriteRune(r)
		}
		t.stream.write(out)
		if r := t.delim.Close(); r != 0 {
			out.WriteRune(r)
		}
	}
}

// Stream is a sequence of token trees.
type Stream []Token

// String renders a stream back to text. Joint punctuation is glued to the
// token that follows it; all other tokens are separated by one space.
func (s Stream) String() string {
	var out strings.Builder
	s.write(&out)
	return out.String()
}

// Equal returns whether two streams contain the same tokens modulo spans.
func (s Stream) Equal(other Stream) bool {
	return slices.EqualFunc(s, other, Token.Equal)
}

func (s Stream) write(out *strings.Builder) {
	for i, t := range s {
		if i > 0 && !(s[i-1].kind == Punct && s[i-1].spacing == Joint) {
			out.WriteByte(' ')
		}
		t.write(out)
	}
}
