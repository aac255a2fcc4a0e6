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
	"github.com/synparse/synparse/buffer"
	"github.com/synparse/synparse/parse"
	"github.com/synparse/synparse/punctuated"
	"github.com/synparse/synparse/quote"
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/token"
	"github.com/synparse/synparse/token/keyword"
)

// Path is a path, such as `std::vec::Vec<T>` or `::core::mem::swap`.
//
// # Grammar
//
//	Path        := `::`? PathSegment (`::` PathSegment)*
//	PathSegment := Ident (AngleBracketedArgs | ParenthesizedArgs)?
//
// In expressions, angle-bracketed arguments must be written with a
// turbofish, `::<`, since a bare `<` is a comparison there.
type Path struct {
	// The leading `::`, if any.
	Leading  keyword.Token
	Segments punctuated.Punctuated[PathSegment]
}

// PathSegment is one segment of a [Path].
type PathSegment struct {
	Ident Ident
	// Nil if the segment has no arguments.
	Arguments PathArguments
}

// PathArguments is the arguments of a [PathSegment]: either
// [*AngleBracketedArgs] or [*ParenthesizedArgs].
type PathArguments interface {
	Node
	isPathArguments()
}

// AngleBracketedArgs is a list of generic arguments, `<'a, T, N = 3>`.
type AngleBracketedArgs struct {
	// The `::` of a turbofish, if any.
	Colon2 keyword.Token
	Lt     keyword.Token
	Args   punctuated.Punctuated[GenericArgument]
	Gt     keyword.Token
}

// ParenthesizedArgs is the argument list of a function trait, such as the
// `(A, B) -> C` in `Fn(A, B) -> C`.
type ParenthesizedArgs struct {
	Paren  Delim
	Inputs punctuated.Punctuated[Type]
	Output ReturnType
}

// QSelf is the qualified-self part of a qualified path, such as the
// `<Vec<T> as IntoIterator>` in `<Vec<T> as IntoIterator>::Item`.
type QSelf struct {
	Lt   keyword.Token
	Type Type
	// Zero and nil respectively unless there is an `as` clause.
	As    keyword.Token
	Trait *Path
	Gt    keyword.Token
}

// ReturnType is the `-> T` of a function signature. The zero ReturnType
// means the default return type, and renders as nothing.
type ReturnType struct {
	Arrow keyword.Token
	Type  Type
}

// NewPath returns a synthetic path with the given segments, none of which
// have arguments.
func NewPath(segments ...string) Path {
	var p Path
	p.Segments = punctuated.Of[PathSegment](keyword.PathSep)
	for _, name := range segments {
		p.Segments.Push(PathSegment{Ident: NewIdent(name)})
	}
	return p
}

// GetIdent returns the identifier this path consists of, if it is a single
// segment without a leading `::` or arguments.
func (p Path) GetIdent() (Ident, bool) {
	if !p.Leading.IsZero() || p.Segments.Len() != 1 || p.Segments.Trailing() {
		return Ident{}, false
	}
	seg := p.Segments.At(0)
	if seg.Arguments != nil {
		return Ident{}, false
	}
	return seg.Ident, true
}

// IsIdent returns whether this path is exactly the identifier name.
func (p Path) IsIdent(name string) bool {
	id, ok := p.GetIdent()
	return ok && id.Name == name
}

// Span implements [source.Spanner].
func (p Path) Span() source.Span { return spanOf(p) }

// ToTokens implements [quote.ToTokens].
func (p Path) ToTokens(b *quote.Builder) {
	b.Append(p.Leading, p.Segments)
}

// Span implements [source.Spanner].
func (s PathSegment) Span() source.Span { return spanOf(s) }

// ToTokens implements [quote.ToTokens].
func (s PathSegment) ToTokens(b *quote.Builder) {
	b.Append(s.Ident, s.Arguments)
}

func (*AngleBracketedArgs) isPathArguments() {}
func (*ParenthesizedArgs) isPathArguments()  {}

// Span implements [source.Spanner].
func (a *AngleBracketedArgs) Span() source.Span { return spanOf(a) }

// ToTokens implements [quote.ToTokens].
func (a *AngleBracketedArgs) ToTokens(b *quote.Builder) {
	b.Append(a.Colon2, orPunct(a.Lt, keyword.Lt), a.Args, orPunct(a.Gt, keyword.Gt))
}

// Span implements [source.Spanner].
func (a *ParenthesizedArgs) Span() source.Span { return spanOf(a) }

// ToTokens implements [quote.ToTokens].
func (a *ParenthesizedArgs) ToTokens(b *quote.Builder) {
	a.Paren.render(b, token.Parens, func(b *quote.Builder) { b.Append(a.Inputs) })
	b.Append(a.Output)
}

// Span implements [source.Spanner].
func (q *QSelf) Span() source.Span { return spanOf(q) }

// ToTokens implements [quote.ToTokens].
func (q *QSelf) ToTokens(b *quote.Builder) {
	b.Append(orPunct(q.Lt, keyword.Lt), q.Type)
	if q.Trait != nil {
		b.Append(orWord(q.As, keyword.As), *q.Trait)
	}
	b.Append(orPunct(q.Gt, keyword.Gt))
}

// IsZero returns whether this is the default return type.
func (r ReturnType) IsZero() bool {
	return r.Type == nil
}

// Span implements [source.Spanner].
func (r ReturnType) Span() source.Span { return spanOf(r) }

// ToTokens implements [quote.ToTokens].
func (r ReturnType) ToTokens(b *quote.Builder) {
	if r.IsZero() {
		return
	}
	b.Append(orPunct(r.Arrow, keyword.RArrow), r.Type)
}

// ParsePath parses a path in type position, where generic arguments need
// no turbofish.
func ParsePath(s *parse.Stream) (Path, error) {
	return parsePath(s, styleType)
}

// ParseExprPath parses a path in expression position.
func ParseExprPath(s *parse.Stream) (Path, error) {
	return parsePath(s, styleExpr)
}

// ParseModPath parses a path with no generic arguments at all, as used by
// attributes and visibilities.
func ParseModPath(s *parse.Stream) (Path, error) {
	return parsePath(s, styleMod)
}

type pathStyle int8

const (
	styleExpr pathStyle = iota
	styleType
	styleMod
)

func parsePath(s *parse.Stream, style pathStyle) (Path, error) {
	var p Path
	p.Leading = keyword.PathSep.Maybe(s)
	err := parsePathSegments(s, style, &p)
	return p, err
}

func parsePathSegments(s *parse.Stream, style pathStyle, p *Path) error {
	p.Segments = punctuated.Of[PathSegment](keyword.PathSep)
	for {
		seg, err := parseSegment(s, style)
		if err != nil {
			return err
		}
		p.Segments.PushValue(seg)

		if !s.Peek(keyword.PathSep) || !s.Peek3(segmentStart) {
			return nil
		}
		sep, err := keyword.PathSep.Parse(s)
		if err != nil {
			return err
		}
		p.Segments.PushPunct(sep)
	}
}

var segmentStart = parse.PeekFunc{
	Func: func(c buffer.Cursor) bool { return IdentPeeker.Peek(c) || pathKeyword.Peek(c) },
	Name: "identifier",
}

// genericOpen matches the `<` that opens generic arguments in type
// position. `<<` is accepted, since the first argument may be a qualified
// path.
var genericOpen = parse.PeekFunc{
	Func: func(c buffer.Cursor) bool {
		op := opAt(c)
		return op == "<" || op == "<<"
	},
	Name: "`<`",
}

func parseSegment(s *parse.Stream, style pathStyle) (PathSegment, error) {
	ident, err := pathIdent(s)
	if err != nil {
		return PathSegment{}, err
	}
	seg := PathSegment{Ident: ident}

	turbofish := s.Peek(keyword.PathSep) && s.Peek3(keyword.Lt)
	switch {
	case style == styleMod:
	case turbofish:
		seg.Arguments, err = parseAngleArgs(s, true)
	case style == styleType && s.Peek(genericOpen):
		seg.Arguments, err = parseAngleArgs(s, false)
	case style == styleType && s.Peek(parse.Parens):
		seg.Arguments, err = parseParenthesizedArgs(s)
	}
	return seg, err
}

func parseAngleArgs(s *parse.Stream, turbofish bool) (*AngleBracketedArgs, error) {
	args := new(AngleBracketedArgs)
	var err error
	if turbofish {
		if args.Colon2, err = keyword.PathSep.Parse(s); err != nil {
			return nil, err
		}
	}
	if args.Lt, err = keyword.Lt.Parse(s); err != nil {
		return nil, err
	}
	args.Args, err = punctuated.Separated[GenericArgument]{
		Parse:    ParseGenericArgument,
		Name:     "generic argument",
		Trailing: true,
		Stop:     keyword.Gt,
	}.ParseFrom(s)
	if err != nil {
		return nil, err
	}
	if args.Gt, err = keyword.Gt.Parse(s); err != nil {
		return nil, err
	}
	return args, nil
}

func parseParenthesizedArgs(s *parse.Stream) (*ParenthesizedArgs, error) {
	inputs, paren, err := parens(s, func(s *parse.Stream) (punctuated.Punctuated[Type], error) {
		return punctuated.ParseTerminated(s, ParseType, keyword.Comma)
	})
	if err != nil {
		return nil, err
	}
	output, err := parseReturnType(s)
	if err != nil {
		return nil, err
	}
	return &ParenthesizedArgs{Paren: paren, Inputs: inputs, Output: output}, nil
}

func parseReturnType(s *parse.Stream) (ReturnType, error) {
	if !s.Peek(keyword.RArrow) {
		return ReturnType{}, nil
	}
	arrow, err := keyword.RArrow.Parse(s)
	if err != nil {
		return ReturnType{}, err
	}
	ty, err := ParseType(s)
	if err != nil {
		return ReturnType{}, err
	}
	return ReturnType{Arrow: arrow, Type: ty}, nil
}

// parseQPath parses a qualified path, `<T as Trait>::rest`. The rest has a
// leading `::` and at least one segment.
func parseQPath(s *parse.Stream, style pathStyle) (*QSelf, Path, error) {
	q := new(QSelf)
	var err error
	if q.Lt, err = keyword.Lt.Parse(s); err != nil {
		return nil, Path{}, err
	}
	if q.Type, err = ParseType(s); err != nil {
		return nil, Path{}, err
	}
	if q.As = keyword.As.Maybe(s); !q.As.IsZero() {
		trait, err := parsePath(s, styleType)
		if err != nil {
			return nil, Path{}, err
		}
		q.Trait = &trait
	}
	if q.Gt, err = keyword.Gt.Parse(s); err != nil {
		return nil, Path{}, err
	}

	var rest Path
	if rest.Leading, err = keyword.PathSep.Parse(s); err != nil {
		return nil, Path{}, err
	}
	if err := parsePathSegments(s, style, &rest); err != nil {
		return nil, Path{}, err
	}
	return q, rest, nil
}

// orPunct returns tok, or a synthetic p if tok is absent.
func orPunct(tok keyword.Token, p keyword.Punct) keyword.Token {
	if tok.IsZero() {
		return keyword.Token{Text: string(p)}
	}
	return tok
}

// orWord returns tok, or a synthetic w if tok is absent.
func orWord(tok keyword.Token, w keyword.Word) keyword.Token {
	if tok.IsZero() {
		return keyword.Token{Text: string(w)}
	}
	return tok
}
