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
	"github.com/synparse/synparse/report"
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/token/keyword"
)

// Generics is the generic parameter list of a declaration, together with
// its where clause.
//
// # Grammar
//
//	Generics     := (`<` (GenericParam (`,` GenericParam)* `,`?)? `>`)?
//	GenericParam := LifetimeParam | TypeParam | ConstParam
//
// All lifetime parameters must come before all type parameters, which must
// come before all const parameters.
//
// Rendering a Generics renders only the parameter list: the where clause
// goes wherever the enclosing declaration puts it.
type Generics struct {
	Lt     keyword.Token
	Params punctuated.Punctuated[GenericParam]
	Gt     keyword.Token
	// Nil if there is no where clause.
	Where *WhereClause
}

// GenericParam is a generic parameter: a [*LifetimeParam], [*TypeParam] or
// [*ConstParam].
type GenericParam interface {
	Node
	Kind() GenericParamKind
	isGenericParam()
}

// LifetimeParam is a lifetime parameter, `'a: 'b + 'c`.
type LifetimeParam struct {
	Lifetime Lifetime
	Colon    keyword.Token
	Bounds   punctuated.Punctuated[Lifetime]
}

// TypeParam is a type parameter, `T: Bound + ?Sized = Default`.
type TypeParam struct {
	Ident   Ident
	Colon   keyword.Token
	Bounds  punctuated.Punctuated[TypeParamBound]
	Eq      keyword.Token
	Default Type
}

// ConstParam is a const parameter, `const N: usize = 3`.
type ConstParam struct {
	Const   keyword.Token
	Ident   Ident
	Colon   keyword.Token
	Type    Type
	Eq      keyword.Token
	Default Expr
}

// TypeParamBound is a bound on a type: a [*TraitBound] or a
// [*LifetimeBound].
type TypeParamBound interface {
	Node
	Kind() BoundKind
	isBound()
}

// TraitBound is a trait bound, such as `?Sized` or
// `for<'a> Fn(&'a u8) -> bool`.
type TraitBound struct {
	// The `?` of a relaxed bound.
	Modifier  keyword.Token
	Lifetimes *BoundLifetimes
	Path      Path
}

// LifetimeBound is a lifetime used as a bound, the `'a` in `T: 'a`.
type LifetimeBound struct {
	Lifetime Lifetime
}

// BoundLifetimes is a higher-ranked binder, `for<'a, 'b>`.
type BoundLifetimes struct {
	For       keyword.Token
	Lt        keyword.Token
	Lifetimes punctuated.Punctuated[*LifetimeParam]
	Gt        keyword.Token
}

// WhereClause is a where clause, `where T: Clone, 'a: 'b`.
type WhereClause struct {
	Where      keyword.Token
	Predicates punctuated.Punctuated[WherePredicate]
}

// WherePredicate is one predicate of a where clause: a
// [*PredicateLifetime] or a [*PredicateType].
type WherePredicate interface {
	Node
	Kind() PredicateKind
	isPredicate()
}

// PredicateLifetime is a lifetime predicate, `'a: 'b + 'c`.
type PredicateLifetime struct {
	Lifetime Lifetime
	Colon    keyword.Token
	Bounds   punctuated.Punctuated[Lifetime]
}

// PredicateType is a type predicate, `for<'a> &'a T: Debug`.
type PredicateType struct {
	Lifetimes *BoundLifetimes
	Bounded   Type
	Colon     keyword.Token
	Bounds    punctuated.Punctuated[TypeParamBound]
}

// GenericArgument is one argument of an [AngleBracketedArgs].
type GenericArgument interface {
	Node
	Kind() GenericArgumentKind
	isGenericArgument()
}

// ArgLifetime is a lifetime argument, `'a`.
type ArgLifetime struct {
	Lifetime Lifetime
}

// ArgType is a type argument.
type ArgType struct {
	Type Type
}

// ArgConst is a const argument: a literal, a negated literal or a block.
type ArgConst struct {
	Expr Expr
}

// ArgBinding is an associated type binding, `Item = T`.
type ArgBinding struct {
	Ident Ident
	Eq    keyword.Token
	Type  Type
}

// ArgConstraint is an associated type constraint, `Item: Display`.
type ArgConstraint struct {
	Ident  Ident
	Colon  keyword.Token
	Bounds punctuated.Punctuated[TypeParamBound]
}

func (*LifetimeParam) Kind() GenericParamKind { return GenericParamKindLifetime }
func (*TypeParam) Kind() GenericParamKind     { return GenericParamKindType }
func (*ConstParam) Kind() GenericParamKind    { return GenericParamKindConst }
func (*LifetimeParam) isGenericParam()        {}
func (*TypeParam) isGenericParam()            {}
func (*ConstParam) isGenericParam()           {}

func (*TraitBound) Kind() BoundKind    { return BoundKindTrait }
func (*LifetimeBound) Kind() BoundKind { return BoundKindLifetime }
func (*TraitBound) isBound()           {}
func (*LifetimeBound) isBound()        {}

func (*PredicateLifetime) Kind() PredicateKind { return PredicateKindLifetime }
func (*PredicateType) Kind() PredicateKind     { return PredicateKindType }
func (*PredicateLifetime) isPredicate()        {}
func (*PredicateType) isPredicate()            {}

func (*ArgLifetime) Kind() GenericArgumentKind   { return GenericArgumentKindLifetime }
func (*ArgType) Kind() GenericArgumentKind       { return GenericArgumentKindType }
func (*ArgConst) Kind() GenericArgumentKind      { return GenericArgumentKindConst }
func (*ArgBinding) Kind() GenericArgumentKind    { return GenericArgumentKindBinding }
func (*ArgConstraint) Kind() GenericArgumentKind { return GenericArgumentKindConstraint }
func (*ArgLifetime) isGenericArgument()          {}
func (*ArgType) isGenericArgument()              {}
func (*ArgConst) isGenericArgument()             {}
func (*ArgBinding) isGenericArgument()           {}
func (*ArgConstraint) isGenericArgument()        {}

func (g *Generics) Span() source.Span          { return spanOf(g) }
func (p *LifetimeParam) Span() source.Span     { return spanOf(p) }
func (p *TypeParam) Span() source.Span         { return spanOf(p) }
func (p *ConstParam) Span() source.Span        { return spanOf(p) }
func (b *TraitBound) Span() source.Span        { return spanOf(b) }
func (b *LifetimeBound) Span() source.Span     { return b.Lifetime.At }
func (b *BoundLifetimes) Span() source.Span    { return spanOf(b) }
func (w *WhereClause) Span() source.Span       { return spanOf(w) }
func (p *PredicateLifetime) Span() source.Span { return spanOf(p) }
func (p *PredicateType) Span() source.Span     { return spanOf(p) }
func (a *ArgLifetime) Span() source.Span       { return a.Lifetime.At }
func (a *ArgType) Span() source.Span           { return spanOf(a) }
func (a *ArgConst) Span() source.Span          { return spanOf(a) }
func (a *ArgBinding) Span() source.Span        { return spanOf(a) }
func (a *ArgConstraint) Span() source.Span     { return spanOf(a) }

// ToTokens implements [quote.ToTokens].
func (g *Generics) ToTokens(b *quote.Builder) {
	if g.Params.IsEmpty() && g.Lt.IsZero() {
		return
	}
	b.Append(orPunct(g.Lt, keyword.Lt), g.Params, orPunct(g.Gt, keyword.Gt))
}

// ToTokens implements [quote.ToTokens].
func (p *LifetimeParam) ToTokens(b *quote.Builder) {
	b.Append(p.Lifetime)
	if !p.Colon.IsZero() || !p.Bounds.IsEmpty() {
		b.Append(orPunct(p.Colon, keyword.Colon), p.Bounds)
	}
}

// ToTokens implements [quote.ToTokens].
func (p *TypeParam) ToTokens(b *quote.Builder) {
	b.Append(p.Ident)
	if !p.Colon.IsZero() || !p.Bounds.IsEmpty() {
		b.Append(orPunct(p.Colon, keyword.Colon), p.Bounds)
	}
	if p.Default != nil {
		b.Append(orPunct(p.Eq, keyword.Eq), p.Default)
	}
}

// ToTokens implements [quote.ToTokens].
func (p *ConstParam) ToTokens(b *quote.Builder) {
	b.Append(orWord(p.Const, keyword.Const), p.Ident, orPunct(p.Colon, keyword.Colon), p.Type)
	if p.Default != nil {
		b.Append(orPunct(p.Eq, keyword.Eq), p.Default)
	}
}

// ToTokens implements [quote.ToTokens].
func (t *TraitBound) ToTokens(b *quote.Builder) {
	b.Append(t.Modifier)
	if t.Lifetimes != nil {
		b.Append(t.Lifetimes)
	}
	b.Append(t.Path)
}

// ToTokens implements [quote.ToTokens].
func (l *LifetimeBound) ToTokens(b *quote.Builder) { b.Append(l.Lifetime) }

// ToTokens implements [quote.ToTokens].
func (l *BoundLifetimes) ToTokens(b *quote.Builder) {
	b.Append(orWord(l.For, keyword.For), orPunct(l.Lt, keyword.Lt), l.Lifetimes, orPunct(l.Gt, keyword.Gt))
}

// ToTokens implements [quote.ToTokens].
func (w *WhereClause) ToTokens(b *quote.Builder) {
	if w.Predicates.IsEmpty() && w.Where.IsZero() {
		return
	}
	b.Append(orWord(w.Where, keyword.Where), w.Predicates)
}

// ToTokens implements [quote.ToTokens].
func (p *PredicateLifetime) ToTokens(b *quote.Builder) {
	b.Append(p.Lifetime, orPunct(p.Colon, keyword.Colon), p.Bounds)
}

// ToTokens implements [quote.ToTokens].
func (p *PredicateType) ToTokens(b *quote.Builder) {
	if p.Lifetimes != nil {
		b.Append(p.Lifetimes)
	}
	b.Append(p.Bounded, orPunct(p.Colon, keyword.Colon), p.Bounds)
}

// ToTokens implements [quote.ToTokens].
func (a *ArgLifetime) ToTokens(b *quote.Builder) { b.Append(a.Lifetime) }

// ToTokens implements [quote.ToTokens].
func (a *ArgType) ToTokens(b *quote.Builder) { b.Append(a.Type) }

// ToTokens implements [quote.ToTokens].
func (a *ArgConst) ToTokens(b *quote.Builder) { b.Append(a.Expr) }

// ToTokens implements [quote.ToTokens].
func (a *ArgBinding) ToTokens(b *quote.Builder) {
	b.Append(a.Ident, orPunct(a.Eq, keyword.Eq), a.Type)
}

// ToTokens implements [quote.ToTokens].
func (a *ArgConstraint) ToTokens(b *quote.Builder) {
	b.Append(a.Ident, orPunct(a.Colon, keyword.Colon), a.Bounds)
}

// ParseGenerics parses an optional generic parameter list. It does not
// parse a where clause; see [ParseWhereClause].
func ParseGenerics(s *parse.Stream) (Generics, error) {
	var g Generics
	if !s.Peek(keyword.Lt) {
		return g, nil
	}

	var err error
	if g.Lt, err = keyword.Lt.Parse(s); err != nil {
		return g, err
	}
	g.Params, err = punctuated.Separated[GenericParam]{
		Parse:    parseGenericParam,
		Name:     "generic parameter",
		Trailing: true,
		Stop:     keyword.Gt,
	}.ParseFrom(s)
	if err != nil {
		return g, err
	}

	var latest GenericParamKind
	for param := range g.Params.Values() {
		kind := param.Kind()
		if kind < latest {
			return g, s.ErrorAt(param, report.Unexpected,
				"%s parameters must be declared prior to %s parameters", kind, latest)
		}
		latest = kind
	}

	if g.Gt, err = keyword.Gt.Parse(s); err != nil {
		return g, err
	}
	return g, nil
}

func parseGenericParam(s *parse.Stream) (GenericParam, error) {
	var (
		p   GenericParam
		err error
	)
	switch {
	case s.Peek(parse.Lifetime):
		p, err = parseLifetimeParam(s)
	case s.Peek(keyword.Const):
		p, err = parseConstParam(s)
	case s.Peek(IdentPeeker):
		p, err = parseTypeParam(s)
	default:
		return nil, s.Unexpected("generic parameter")
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func parseLifetimeParam(s *parse.Stream) (*LifetimeParam, error) {
	p := new(LifetimeParam)
	var err error
	if p.Lifetime, err = ParseLifetime(s); err != nil {
		return nil, err
	}
	if p.Colon, p.Bounds, err = parseLifetimeBounds(s); err != nil {
		return nil, err
	}
	return p, nil
}

// parseLifetimeBounds parses an optional `: 'a + 'b`.
func parseLifetimeBounds(s *parse.Stream) (keyword.Token, punctuated.Punctuated[Lifetime], error) {
	bounds := punctuated.Of[Lifetime](keyword.Plus)
	if !s.Peek(exactly(keyword.Colon)) {
		return keyword.Token{}, bounds, nil
	}
	colon, err := keyword.Colon.Parse(s)
	if err != nil {
		return colon, bounds, err
	}
	bounds, err = punctuated.Separated[Lifetime]{
		Parse:    ParseLifetime,
		Sep:      keyword.Plus,
		Trailing: true,
	}.ParseFrom(s)
	return colon, bounds, err
}

func parseTypeParam(s *parse.Stream) (*TypeParam, error) {
	p := new(TypeParam)
	var err error
	if p.Ident, err = ParseIdent(s); err != nil {
		return nil, err
	}
	p.Bounds = punctuated.Of[TypeParamBound](keyword.Plus)
	if s.Peek(exactly(keyword.Colon)) {
		if p.Colon, err = keyword.Colon.Parse(s); err != nil {
			return nil, err
		}
		if p.Bounds, err = parseBounds(s, false); err != nil {
			return nil, err
		}
	}
	if s.Peek(exactly(keyword.Eq)) {
		if p.Eq, err = keyword.Eq.Parse(s); err != nil {
			return nil, err
		}
		if p.Default, err = ParseType(s); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func parseConstParam(s *parse.Stream) (*ConstParam, error) {
	p := new(ConstParam)
	var err error
	if p.Const, err = keyword.Const.Parse(s); err != nil {
		return nil, err
	}
	if p.Ident, err = ParseIdent(s); err != nil {
		return nil, err
	}
	if p.Colon, err = keyword.Colon.Parse(s); err != nil {
		return nil, err
	}
	if p.Type, err = ParseType(s); err != nil {
		return nil, err
	}
	if s.Peek(exactly(keyword.Eq)) {
		if p.Eq, err = keyword.Eq.Parse(s); err != nil {
			return nil, err
		}
		if p.Default, err = parseConstArg(s); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// parseConstArg parses the value of a const argument or const parameter
// default: a literal, possibly negated, a block, or a path.
func parseConstArg(s *parse.Stream) (Expr, error) {
	switch {
	case s.Peek(parse.Braces):
		block, err := parseBlockExpr(s, nil)
		if err != nil {
			return nil, err
		}
		return block, nil
	case s.Peek(keyword.Minus):
		minus, err := keyword.Minus.Parse(s)
		if err != nil {
			return nil, err
		}
		lit, err := ParseLit(s)
		if err != nil {
			return nil, err
		}
		return &ExprUnary{Op: minus, Expr: &ExprLit{Lit: lit}}, nil
	case s.Peek(startsPath):
		path, err := ParseExprPath(s)
		if err != nil {
			return nil, err
		}
		return &ExprPath{Path: path}, nil
	}
	lit, err := ParseLit(s)
	if err != nil {
		return nil, err
	}
	return &ExprLit{Lit: lit}, nil
}

// parseBounds parses bounds separated by `+`. A trailing `+` is allowed.
func parseBounds(s *parse.Stream, nonEmpty bool) (punctuated.Punctuated[TypeParamBound], error) {
	return punctuated.Separated[TypeParamBound]{
		Parse:    parseBound,
		Sep:      keyword.Plus,
		Trailing: true,
		NonEmpty: nonEmpty,
	}.ParseFrom(s)
}

func parseBound(s *parse.Stream) (TypeParamBound, error) {
	if s.Peek(parse.Lifetime) {
		lt, err := ParseLifetime(s)
		if err != nil {
			return nil, err
		}
		return &LifetimeBound{Lifetime: lt}, nil
	}
	if !s.Peek(keyword.Question) && !s.Peek(keyword.For) && !s.Peek(startsPath) {
		return nil, s.Unexpected("trait bound")
	}

	t := &TraitBound{Modifier: keyword.Question.Maybe(s)}
	var err error
	if s.Peek(keyword.For) {
		if t.Lifetimes, err = parseBoundLifetimes(s); err != nil {
			return nil, err
		}
	}
	if t.Path, err = ParsePath(s); err != nil {
		return nil, err
	}
	return t, nil
}

func parseBoundLifetimes(s *parse.Stream) (*BoundLifetimes, error) {
	l := new(BoundLifetimes)
	var err error
	if l.For, err = keyword.For.Parse(s); err != nil {
		return nil, err
	}
	if l.Lt, err = keyword.Lt.Parse(s); err != nil {
		return nil, err
	}
	l.Lifetimes, err = punctuated.Separated[*LifetimeParam]{
		Parse:    parseLifetimeParam,
		Name:     "lifetime",
		Trailing: true,
		Stop:     keyword.Gt,
	}.ParseFrom(s)
	if err != nil {
		return nil, err
	}
	if l.Gt, err = keyword.Gt.Parse(s); err != nil {
		return nil, err
	}
	return l, nil
}

// ParseWhereClause parses a where clause, which must be present.
func ParseWhereClause(s *parse.Stream) (*WhereClause, error) {
	w := new(WhereClause)
	var err error
	if w.Where, err = keyword.Where.Parse(s); err != nil {
		return nil, err
	}
	w.Predicates, err = punctuated.Separated[WherePredicate]{
		Parse:    parsePredicate,
		Name:     "where predicate",
		Trailing: true,
	}.ParseFrom(s)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// parseOptWhere parses a where clause if there is one.
func parseOptWhere(s *parse.Stream) (*WhereClause, error) {
	if !s.Peek(keyword.Where) {
		return nil, nil
	}
	return ParseWhereClause(s)
}

func parsePredicate(s *parse.Stream) (WherePredicate, error) {
	if s.Peek(parse.Lifetime) {
		p := new(PredicateLifetime)
		var err error
		if p.Lifetime, err = ParseLifetime(s); err != nil {
			return nil, err
		}
		if p.Colon, err = keyword.Colon.Parse(s); err != nil {
			return nil, err
		}
		p.Bounds, err = punctuated.Separated[Lifetime]{
			Parse:    ParseLifetime,
			Sep:      keyword.Plus,
			Trailing: true,
		}.ParseFrom(s)
		if err != nil {
			return nil, err
		}
		return p, nil
	}

	p := new(PredicateType)
	var err error
	if s.Peek(keyword.For) {
		if p.Lifetimes, err = parseBoundLifetimes(s); err != nil {
			return nil, err
		}
	}
	if p.Bounded, err = ParseType(s); err != nil {
		return nil, err
	}
	if p.Colon, err = keyword.Colon.Parse(s); err != nil {
		return nil, err
	}
	if p.Bounds, err = parseBounds(s, false); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseGenericArgument parses one generic argument.
func ParseGenericArgument(s *parse.Stream) (GenericArgument, error) {
	switch {
	case s.Peek(parse.Lifetime):
		lt, err := ParseLifetime(s)
		if err != nil {
			return nil, err
		}
		return &ArgLifetime{Lifetime: lt}, nil

	case s.Peek(parse.Literal), s.Peek(keyword.Minus), s.Peek(parse.Braces),
		s.Peek(keyword.True), s.Peek(keyword.False):
		e, err := parseConstArg(s)
		if err != nil {
			return nil, err
		}
		return &ArgConst{Expr: e}, nil

	case s.Peek(IdentPeeker) && s.Peek2(exactly(keyword.Eq)):
		a := new(ArgBinding)
		var err error
		if a.Ident, err = ParseIdent(s); err != nil {
			return nil, err
		}
		if a.Eq, err = keyword.Eq.Parse(s); err != nil {
			return nil, err
		}
		if a.Type, err = ParseType(s); err != nil {
			return nil, err
		}
		return a, nil

	case s.Peek(IdentPeeker) && s.Peek2(exactly(keyword.Colon)):
		a := new(ArgConstraint)
		var err error
		if a.Ident, err = ParseIdent(s); err != nil {
			return nil, err
		}
		if a.Colon, err = keyword.Colon.Parse(s); err != nil {
			return nil, err
		}
		if a.Bounds, err = parseBounds(s, true); err != nil {
			return nil, err
		}
		return a, nil
	}

	ty, err := ParseType(s)
	if err != nil {
		return nil, err
	}
	return &ArgType{Type: ty}, nil
}

// ImplGenerics renders the generics of a declaration as they appear after
// `impl`: parameters with bounds but without defaults, `<'a, T: Clone>`.
type ImplGenerics struct {
	generics *Generics
}

// TypeGenerics renders the generics of a declaration as they appear after
// the name of the type in an impl: names only, `<'a, T>`.
type TypeGenerics struct {
	generics *Generics
}

// Turbofish renders [TypeGenerics] with a leading `::`, for use in
// expressions: `::<'a, T>`.
type Turbofish struct {
	generics *Generics
}

// SplitForImpl splits g into the pieces needed to write an impl of the type
// it belongs to:
//
//	impl<ImplGenerics> Trait for Name<TypeGenerics> WhereClause { ... }
//
// All three are views of g. The where clause is nil if g has none.
func (g *Generics) SplitForImpl() (ImplGenerics, TypeGenerics, *WhereClause) {
	return ImplGenerics{g}, TypeGenerics{g}, g.Where
}

// AsTurbofish returns a view of these generics rendered with a leading `::`.
func (t TypeGenerics) AsTurbofish() Turbofish {
	return Turbofish(t)
}

// ToTokens implements [quote.ToTokens].
func (i ImplGenerics) ToTokens(b *quote.Builder) {
	g := i.generics
	if g == nil || g.Params.IsEmpty() {
		return
	}
	b.Append(orPunct(g.Lt, keyword.Lt))
	for param, punct := range g.Params.All() {
		switch p := param.(type) {
		case *TypeParam:
			b.Append(p.Ident)
			if !p.Bounds.IsEmpty() {
				b.Append(orPunct(p.Colon, keyword.Colon), p.Bounds)
			}
		case *ConstParam:
			b.Append(orWord(p.Const, keyword.Const), p.Ident, orPunct(p.Colon, keyword.Colon), p.Type)
		default:
			b.Append(param)
		}
		b.Append(punct)
	}
	b.Append(orPunct(g.Gt, keyword.Gt))
}

// ToTokens implements [quote.ToTokens].
func (t TypeGenerics) ToTokens(b *quote.Builder) {
	g := t.generics
	if g == nil || g.Params.IsEmpty() {
		return
	}
	b.Append(orPunct(g.Lt, keyword.Lt))
	for param, punct := range g.Params.All() {
		switch p := param.(type) {
		case *LifetimeParam:
			b.Append(p.Lifetime)
		case *TypeParam:
			b.Append(p.Ident)
		case *ConstParam:
			b.Append(p.Ident)
		}
		b.Append(punct)
	}
	b.Append(orPunct(g.Gt, keyword.Gt))
}

// ToTokens implements [quote.ToTokens].
func (t Turbofish) ToTokens(b *quote.Builder) {
	if t.generics == nil || t.generics.Params.IsEmpty() {
		return
	}
	b.Punct("::")
	b.Append(TypeGenerics(t))
}
