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

package ast

import (
	"strings"

	"github.com/synparse/synparse/buffer"
	"github.com/synparse/synparse/parse"
	"github.com/synparse/synparse/quote"
	"github.com/synparse/synparse/report"
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/token/keyword"
)

// Ident is an identifier, possibly raw, such as `r#type`.
type Ident struct {
	Name string
	At   source.Span
}

// NewIdent returns a synthetic identifier.
func NewIdent(name string) Ident {
	return Ident{Name: name}
}

// IdentPeeker matches an identifier that is not a reserved word.
var IdentPeeker parse.Peeker = parse.PeekFunc{
	Func: func(c buffer.Cursor) bool {
		tok, _, ok := c.Ident()
		return ok && !keyword.IsReserved(tok.Text())
	},
	Name: "identifier",
}

// ParseIdent parses an identifier that is not a reserved word.
//
// Raw identifiers are always accepted, since r#fn is how a reserved word is
// used as a name.
func ParseIdent(s *parse.Stream) (Ident, error) {
	return parse.Step(s, func(c buffer.Cursor) (Ident, buffer.Cursor, error) {
		tok, next, ok := c.Ident()
		if !ok {
			return Ident{}, c, s.Unexpected("identifier")
		}
		if keyword.IsReserved(tok.Text()) {
			return Ident{}, c, s.Errorf(report.Unexpected, "expected identifier, found keyword `%s`", tok.Text())
		}
		return Ident{Name: tok.Text(), At: tok.Span()}, next, nil
	})
}

// ParseAnyIdent parses any identifier, including reserved words.
func ParseAnyIdent(s *parse.Stream) (Ident, error) {
	return parse.Step(s, func(c buffer.Cursor) (Ident, buffer.Cursor, error) {
		tok, next, ok := c.Ident()
		if !ok {
			return Ident{}, c, s.Unexpected("identifier")
		}
		return Ident{Name: tok.Text(), At: tok.Span()}, next, nil
	})
}

// IsZero returns whether this identifier is absent.
func (i Ident) IsZero() bool {
	return i.Name == ""
}

// Unraw returns the name without any r# prefix.
func (i Ident) Unraw() string {
	return strings.TrimPrefix(i.Name, "r#")
}

// String implements [fmt.Stringer].
func (i Ident) String() string {
	return i.Name
}

// Span implements [source.Spanner].
func (i Ident) Span() source.Span {
	return i.At
}

// ToTokens implements [quote.ToTokens].
func (i Ident) ToTokens(b *quote.Builder) {
	if !i.IsZero() {
		b.IdentAt(i.Name, i.At)
	}
}

// Lifetime is a lifetime such as `'a` or `'static`.
type Lifetime struct {
	// Includes the leading apostrophe.
	Name string
	At   source.Span
}

// ParseLifetime parses a lifetime.
func ParseLifetime(s *parse.Stream) (Lifetime, error) {
	return parse.Step(s, func(c buffer.Cursor) (Lifetime, buffer.Cursor, error) {
		tok, next, ok := c.Lifetime()
		if !ok {
			return Lifetime{}, c, s.Unexpected("lifetime")
		}
		return Lifetime{Name: tok.Text(), At: tok.Span()}, next, nil
	})
}

// Ident returns the name without its apostrophe.
func (l Lifetime) Ident() string {
	return strings.TrimPrefix(l.Name, "'")
}

// Span implements [source.Spanner].
func (l Lifetime) Span() source.Span {
	return l.At
}

// ToTokens implements [quote.ToTokens].
func (l Lifetime) ToTokens(b *quote.Builder) {
	b.LifetimeAt(l.Name, l.At)
}

// pathIdent parses the identifier of a path segment, which may also be one
// of the path keywords `self`, `Self`, `super` and `crate`.
func pathIdent(s *parse.Stream) (Ident, error) {
	if s.Peek(pathKeyword) {
		return ParseAnyIdent(s)
	}
	return ParseIdent(s)
}

var pathKeyword = parse.PeekFunc{
	Func: func(c buffer.Cursor) bool {
		tok, _, ok := c.Ident()
		if !ok {
			return false
		}
		switch tok.Text() {
		case "self", "Self", "super", "crate":
			return true
		}
		return false
	},
	Name: "identifier",
}

// startsPath matches the first token of a path.
var startsPath = parse.PeekFunc{
	Func: func(c buffer.Cursor) bool {
		return IdentPeeker.Peek(c) || pathKeyword.Peek(c) || keyword.PathSep.Peek(c)
	},
	Name: "path",
}
