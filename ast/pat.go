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
	"github.com/synparse/synparse/parse"
	"github.com/synparse/synparse/punctuated"
	"github.com/synparse/synparse/quote"
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/token"
	"github.com/synparse/synparse/token/keyword"
)

// Pat is a pattern, as bound by `let` or a function argument.
type Pat interface {
	Node
	Kind() PatKind
	isPat()
}

// PatWild is the wildcard pattern, `_`.
type PatWild struct {
	Underscore keyword.Token
}

// PatIdent is a binding, `ref mut x @ subpattern`.
type PatIdent struct {
	Ref   keyword.Token
	Mut   keyword.Token
	Ident Ident
	At    keyword.Token
	// Nil unless At is present.
	Subpat Pat
}

// PatLit is a literal pattern, possibly negated: `1`, `-1`, `"s"`.
type PatLit struct {
	Minus keyword.Token
	Lit   Lit
}

// PatPath is a path pattern such as `None` or `<T>::CONST`.
type PatPath struct {
	QSelf *QSelf
	Path  Path
}

// PatTuple is a tuple pattern, `(a, b)`.
//
// A PatTuple with one element and no trailing comma is a parenthesized
// pattern, `(a)`.
type PatTuple struct {
	Paren Delim
	Elems punctuated.Punctuated[Pat]
}

// PatTupleStruct is a tuple struct or tuple variant pattern, `Some(x)`.
type PatTupleStruct struct {
	QSelf *QSelf
	Path  Path
	Paren Delim
	Elems punctuated.Punctuated[Pat]
}

// PatReference is a reference pattern, `&x` or `&mut x`.
type PatReference struct {
	And keyword.Token
	Mut keyword.Token
	Pat Pat
}

// PatRest is the rest pattern in a tuple, `..`.
type PatRest struct {
	Dot2 keyword.Token
}

// PatOr is a choice between patterns, `Some(0) | None`. Only match arms,
// `for` loops and `let` conditions accept one without parentheses.
type PatOr struct {
	Leading keyword.Token
	Cases   punctuated.Punctuated[Pat]
}

func (*PatWild) Kind() PatKind        { return PatKindWild }
func (*PatIdent) Kind() PatKind       { return PatKindIdent }
func (*PatLit) Kind() PatKind         { return PatKindLit }
func (*PatPath) Kind() PatKind        { return PatKindPath }
func (*PatTuple) Kind() PatKind       { return PatKindTuple }
func (*PatTupleStruct) Kind() PatKind { return PatKindTupleStruct }
func (*PatReference) Kind() PatKind   { return PatKindReference }
func (*PatRest) Kind() PatKind        { return PatKindRest }
func (*PatOr) Kind() PatKind          { return PatKindOr }

func (*PatWild) isPat()        {}
func (*PatIdent) isPat()       {}
func (*PatLit) isPat()         {}
func (*PatPath) isPat()        {}
func (*PatTuple) isPat()       {}
func (*PatTupleStruct) isPat() {}
func (*PatReference) isPat()   {}
func (*PatRest) isPat()        {}
func (*PatOr) isPat()          {}

func (p *PatWild) Span() source.Span        { return p.Underscore.Span() }
func (p *PatIdent) Span() source.Span       { return spanOf(p) }
func (p *PatLit) Span() source.Span         { return spanOf(p) }
func (p *PatPath) Span() source.Span        { return spanOf(p) }
func (p *PatTuple) Span() source.Span       { return spanOf(p) }
func (p *PatTupleStruct) Span() source.Span { return spanOf(p) }
func (p *PatReference) Span() source.Span   { return spanOf(p) }
func (p *PatRest) Span() source.Span        { return p.Dot2.Span() }
func (p *PatOr) Span() source.Span          { return spanOf(p) }

// ToTokens implements [quote.ToTokens].
func (p *PatWild) ToTokens(b *quote.Builder) {
	b.Append(orWord(p.Underscore, keyword.Underscore))
}

// ToTokens implements [quote.ToTokens].
func (p *PatIdent) ToTokens(b *quote.Builder) {
	b.Append(p.Ref, p.Mut, p.Ident)
	if p.Subpat != nil {
		b.Append(orPunct(p.At, keyword.At), p.Subpat)
	}
}

// ToTokens implements [quote.ToTokens].
func (p *PatLit) ToTokens(b *quote.Builder) {
	b.Append(p.Minus, p.Lit)
}

// ToTokens implements [quote.ToTokens].
func (p *PatPath) ToTokens(b *quote.Builder) {
	if p.QSelf != nil {
		b.Append(p.QSelf)
	}
	b.Append(p.Path)
}

// ToTokens implements [quote.ToTokens].
func (p *PatTuple) ToTokens(b *quote.Builder) {
	p.Paren.render(b, token.Parens, func(b *quote.Builder) { b.Append(p.Elems) })
}

// ToTokens implements [quote.ToTokens].
func (p *PatTupleStruct) ToTokens(b *quote.Builder) {
	if p.QSelf != nil {
		b.Append(p.QSelf)
	}
	b.Append(p.Path)
	p.Paren.render(b, token.Parens, func(b *quote.Builder) { b.Append(p.Elems) })
}

// ToTokens implements [quote.ToTokens].
func (p *PatReference) ToTokens(b *quote.Builder) {
	b.Append(orPunct(p.And, keyword.And), p.Mut, p.Pat)
}

// ToTokens implements [quote.ToTokens].
func (p *PatRest) ToTokens(b *quote.Builder) {
	b.Append(orPunct(p.Dot2, keyword.DotDot))
}

// ToTokens implements [quote.ToTokens].
func (p *PatOr) ToTokens(b *quote.Builder) {
	b.Append(p.Leading, p.Cases)
}

// ParsePatMulti parses a pattern that may be a choice between several,
// `A | B`, with an optional leading `|`.
func ParsePatMulti(s *parse.Stream) (Pat, error) {
	var leading keyword.Token
	if s.Peek(exactly(keyword.Or)) {
		var err error
		if leading, err = keyword.Or.Parse(s); err != nil {
			return nil, err
		}
	}
	first, err := ParsePat(s)
	if err != nil {
		return nil, err
	}
	if leading.IsZero() && !s.Peek(exactly(keyword.Or)) {
		return first, nil
	}

	p := &PatOr{Leading: leading, Cases: punctuated.Of(keyword.Or, first)}
	for s.Peek(exactly(keyword.Or)) {
		or, err := keyword.Or.Parse(s)
		if err != nil {
			return nil, err
		}
		p.Cases.PushPunct(or)
		next, err := ParsePat(s)
		if err != nil {
			return nil, err
		}
		p.Cases.PushValue(next)
	}
	return p, nil
}

// ParsePat parses a pattern, not including top-level choices; see
// [ParsePatMulti].
func ParsePat(s *parse.Stream) (Pat, error) {
	switch {
	case s.Peek(keyword.Underscore):
		under, err := keyword.Underscore.Parse(s)
		if err != nil {
			return nil, err
		}
		return &PatWild{Underscore: under}, nil

	case s.Peek(exactly(keyword.DotDot)):
		dots, err := keyword.DotDot.Parse(s)
		if err != nil {
			return nil, err
		}
		return &PatRest{Dot2: dots}, nil

	case s.Peek(keyword.AndAnd):
		andAnd, err := keyword.AndAnd.Parse(s)
		if err != nil {
			return nil, err
		}
		first, second := splitPunct(andAnd)
		inner, err := parseRefPat(s, second)
		if err != nil {
			return nil, err
		}
		return &PatReference{And: first, Pat: inner}, nil

	case s.Peek(keyword.And):
		and, err := keyword.And.Parse(s)
		if err != nil {
			return nil, err
		}
		return parseRefPat(s, and)

	case s.Peek(parse.Literal), s.Peek(keyword.Minus),
		s.Peek(keyword.True), s.Peek(keyword.False):
		p := &PatLit{Minus: keyword.Minus.Maybe(s)}
		var err error
		if p.Lit, err = ParseLit(s); err != nil {
			return nil, err
		}
		return p, nil

	case s.Peek(parse.Parens):
		elems, paren, err := parsePatList(s)
		if err != nil {
			return nil, err
		}
		return &PatTuple{Paren: paren, Elems: elems}, nil

	case s.Peek(keyword.Ref), s.Peek(keyword.Mut),
		s.Peek(IdentPeeker) && !s.Peek2(keyword.PathSep) && !s.Peek2(parse.Parens):
		return parsePatIdent(s)

	case s.Peek(keyword.Lt), s.Peek(startsPath):
		return parsePatPath(s)
	}
	return nil, s.Unexpected("pattern")
}

func parseRefPat(s *parse.Stream, and keyword.Token) (*PatReference, error) {
	p := &PatReference{And: and, Mut: keyword.Mut.Maybe(s)}
	var err error
	if p.Pat, err = ParsePat(s); err != nil {
		return nil, err
	}
	return p, nil
}

func parsePatIdent(s *parse.Stream) (*PatIdent, error) {
	p := &PatIdent{
		Ref: keyword.Ref.Maybe(s),
		Mut: keyword.Mut.Maybe(s),
	}
	var err error
	if p.Ident, err = ParseIdent(s); err != nil {
		return nil, err
	}
	if !s.Peek(keyword.At) {
		return p, nil
	}
	if p.At, err = keyword.At.Parse(s); err != nil {
		return nil, err
	}
	if p.Subpat, err = ParsePat(s); err != nil {
		return nil, err
	}
	return p, nil
}

func parsePatPath(s *parse.Stream) (Pat, error) {
	var (
		qself *QSelf
		path  Path
		err   error
	)
	if s.Peek(keyword.Lt) {
		qself, path, err = parseQPath(s, styleExpr)
	} else {
		path, err = ParseExprPath(s)
	}
	if err != nil {
		return nil, err
	}

	if !s.Peek(parse.Parens) {
		return &PatPath{QSelf: qself, Path: path}, nil
	}
	elems, paren, err := parsePatList(s)
	if err != nil {
		return nil, err
	}
	return &PatTupleStruct{QSelf: qself, Path: path, Paren: paren, Elems: elems}, nil
}

func parsePatList(s *parse.Stream) (punctuated.Punctuated[Pat], Delim, error) {
	return parens(s, func(s *parse.Stream) (punctuated.Punctuated[Pat], error) {
		return punctuated.ParseTerminated(s, ParsePat, keyword.Comma)
	})
}
