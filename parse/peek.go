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

package parse

import (
	"fmt"
	"slices"

	"github.com/synparse/synparse/buffer"
	"github.com/synparse/synparse/report"
	"github.com/synparse/synparse/token"
)

// Peeker is a kind of token that can be looked for without consuming
// anything.
//
// Every built-in token kind and every custom keyword or punctuation
// implements Peeker.
type Peeker interface {
	// Peek returns whether the token at c is of this kind.
	Peek(c buffer.Cursor) bool

	// Display returns how this kind is named in diagnostics, such as
	// "`fn`" or "identifier".
	Display() string
}

var (
	// AnyIdent matches any identifier, including reserved words.
	AnyIdent Peeker = kindPeeker{token.Ident, "identifier"}
	// Literal matches any literal.
	Literal Peeker = kindPeeker{token.Literal, "literal"}
	// Lifetime matches any lifetime.
	Lifetime Peeker = kindPeeker{token.Lifetime, "lifetime"}

	Parens   Peeker = groupPeeker(token.Parens)
	Brackets Peeker = groupPeeker(token.Brackets)
	Braces   Peeker = groupPeeker(token.Braces)
)

type kindPeeker struct {
	kind    token.Kind
	display string
}

func (k kindPeeker) Peek(c buffer.Cursor) bool {
	var ok bool
	switch k.kind {
	case token.Ident:
		_, _, ok = c.Ident()
	case token.Literal:
		_, _, ok = c.Literal()
	case token.Lifetime:
		_, _, ok = c.Lifetime()
	}
	return ok
}

func (k kindPeeker) Display() string {
	return k.display
}

type groupPeeker token.Delimiter

func (g groupPeeker) Peek(c buffer.Cursor) bool {
	_, _, _, ok := c.Group(token.Delimiter(g))
	return ok
}

func (g groupPeeker) Display() string {
	return "`" + string(token.Delimiter(g).Open()) + "`"
}

// PeekFunc adapts a function into a [Peeker].
type PeekFunc struct {
	Func func(buffer.Cursor) bool
	Name string
}

// Peek implements [Peeker].
func (p PeekFunc) Peek(c buffer.Cursor) bool {
	return p.Func(c)
}

// Display implements [Peeker].
func (p PeekFunc) Display() string {
	return p.Name
}

// Lookahead1 checks a single token against several kinds, recording each
// kind it tried so that a failure can say what was expected.
type Lookahead1 struct {
	s        *Stream
	expected []string
}

// Lookahead1 begins a lookahead at the next token.
func (s *Stream) Lookahead1() *Lookahead1 {
	return &Lookahead1{s: s}
}

// Peek returns whether the next token matches p, recording p as expected if
// it does not.
func (l *Lookahead1) Peek(p Peeker) bool {
	if l.s.Peek(p) {
		return true
	}
	if display := p.Display(); !slices.Contains(l.expected, display) {
		l.expected = append(l.expected, display)
	}
	return false
}

// Error returns an error listing every kind that was peeked for without
// success.
func (l *Lookahead1) Error() *report.Error {
	return l.s.Unexpected(expectedOneOf(l.expected))
}

// expectedOneOf renders a list of expected things for an "expected ..."
// message.
func expectedOneOf(expected []string) string {
	switch len(expected) {
	case 0:
		return "a token"
	case 1:
		return expected[0]
	default:
		return "one of " + fmt.Sprint(report.Or(expected...))
	}
}
