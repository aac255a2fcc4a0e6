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

// Type is a type. The concrete type is one of the Type* types in this
// package, as given by Kind.
type Type interface {
	Node
	Kind() TypeKind
	isType()
}

// TypePath is a path type, possibly qualified: `Vec<T>`,
// `<T as Iterator>::Item`.
type TypePath struct {
	QSelf *QSelf
	Path  Path
}

// TypeReference is a reference type, `&'a mut T`.
type TypeReference struct {
	And      keyword.Token
	Lifetime *Lifetime
	Mut      keyword.Token
	Elem     Type
}

// TypePtr is a raw pointer type, `*const T` or `*mut T`.
type TypePtr struct {
	Star keyword.Token
	// Exactly one of these is present.
	Const, Mut keyword.Token
	Elem       Type
}

// TypeSlice is a slice type, `[T]`.
type TypeSlice struct {
	Bracket Delim
	Elem    Type
}

// TypeArray is an array type, `[T; N]`.
type TypeArray struct {
	Bracket Delim
	Elem    Type
	Semi    keyword.Token
	Len     Expr
}

// TypeTuple is a tuple type, `()`, `(T,)` or `(A, B)`.
type TypeTuple struct {
	Paren Delim
	Elems punctuated.Punctuated[Type]
}

// TypeParen is a parenthesized type, `(T)`.
type TypeParen struct {
	Paren Delim
	Elem  Type
}

// TypeNever is the never type, `!`.
type TypeNever struct {
	Bang keyword.Token
}

// TypeInfer is an inferred type, `_`.
type TypeInfer struct {
	Underscore keyword.Token
}

// TypeBareFn is a function pointer type, `for<'a> unsafe fn(&'a u8) -> u8`.
type TypeBareFn struct {
	Lifetimes *BoundLifetimes
	Unsafe    keyword.Token
	Fn        keyword.Token
	Paren     Delim
	Inputs    punctuated.Punctuated[BareFnArg]
	Output    ReturnType
}

// BareFnArg is an argument of a [TypeBareFn], optionally named.
type BareFnArg struct {
	// Zero if the argument is unnamed.
	Name  Ident
	Colon keyword.Token
	Type  Type
}

// TypeImplTrait is an `impl Trait` type.
type TypeImplTrait struct {
	Impl   keyword.Token
	Bounds punctuated.Punctuated[TypeParamBound]
}

// TypeTraitObject is a trait object type, `dyn Trait + 'a`.
type TypeTraitObject struct {
	Dyn    keyword.Token
	Bounds punctuated.Punctuated[TypeParamBound]
}

func (*TypePath) Kind() TypeKind        { return TypeKindPath }
func (*TypeReference) Kind() TypeKind   { return TypeKindReference }
func (*TypePtr) Kind() TypeKind         { return TypeKindPtr }
func (*TypeSlice) Kind() TypeKind       { return TypeKindSlice }
func (*TypeArray) Kind() TypeKind       { return TypeKindArray }
func (*TypeTuple) Kind() TypeKind       { return TypeKindTuple }
func (*TypeParen) Kind() TypeKind       { return TypeKindParen }
func (*TypeNever) Kind() TypeKind       { return TypeKindNever }
func (*TypeInfer) Kind() TypeKind       { return TypeKindInfer }
func (*TypeBareFn) Kind() TypeKind      { return TypeKindBareFn }
func (*TypeImplTrait) Kind() TypeKind   { return TypeKindImplTrait }
func (*TypeTraitObject) Kind() TypeKind { return TypeKindTraitObject }

func (*TypePath) isType()        {}
func (*TypeReference) isType()   {}
func (*TypePtr) isType()         {}
func (*TypeSlice) isType()       {}
func (*TypeArray) isType()       {}
func (*TypeTuple) isType()       {}
func (*TypeParen) isType()       {}
func (*TypeNever) isType()       {}
func (*TypeInfer) isType()       {}
func (*TypeBareFn) isType()      {}
func (*TypeImplTrait) isType()   {}
func (*TypeTraitObject) isType() {}

func (t *TypePath) Span() source.Span        { return spanOf(t) }
func (t *TypeReference) Span() source.Span   { return spanOf(t) }
func (t *TypePtr) Span() source.Span         { return spanOf(t) }
func (t *TypeSlice) Span() source.Span       { return spanOf(t) }
func (t *TypeArray) Span() source.Span       { return spanOf(t) }
func (t *TypeTuple) Span() source.Span       { return spanOf(t) }
func (t *TypeParen) Span() source.Span       { return spanOf(t) }
func (t *TypeNever) Span() source.Span       { return spanOf(t) }
func (t *TypeInfer) Span() source.Span       { return spanOf(t) }
func (t *TypeBareFn) Span() source.Span      { return spanOf(t) }
func (t *TypeImplTrait) Span() source.Span   { return spanOf(t) }
func (t *TypeTraitObject) Span() source.Span { return spanOf(t) }
func (a BareFnArg) Span() source.Span        { return spanOf(a) }

// ToTokens implements [quote.ToTokens].
func (t *TypePath) ToTokens(b *quote.Builder) {
	if t.QSelf != nil {
		b.Append(t.QSelf)
	}
	b.Append(t.Path)
}

// ToTokens implements [quote.ToTokens].
func (t *TypeReference) ToTokens(b *quote.Builder) {
	b.Append(orPunct(t.And, keyword.And))
	if t.Lifetime != nil {
		b.Append(*t.Lifetime)
	}
	b.Append(t.Mut, t.Elem)
}

// ToTokens implements [quote.ToTokens].
func (t *TypePtr) ToTokens(b *quote.Builder) {
	b.Append(orPunct(t.Star, keyword.Star))
	if t.Mut.IsZero() {
		b.Append(orWord(t.Const, keyword.Const))
	} else {
		b.Append(t.Mut)
	}
	b.Append(t.Elem)
}

// ToTokens implements [quote.ToTokens].
func (t *TypeSlice) ToTokens(b *quote.Builder) {
	t.Bracket.render(b, token.Brackets, func(b *quote.Builder) { b.Append(t.Elem) })
}

// ToTokens implements [quote.ToTokens].
func (t *TypeArray) ToTokens(b *quote.Builder) {
	t.Bracket.render(b, token.Brackets, func(b *quote.Builder) {
		b.Append(t.Elem, orPunct(t.Semi, keyword.Semi), t.Len)
	})
}

// ToTokens implements [quote.ToTokens].
func (t *TypeTuple) ToTokens(b *quote.Builder) {
	t.Paren.render(b, token.Parens, func(b *quote.Builder) {
		b.Append(t.Elems)
		if t.Elems.Len() == 1 && !t.Elems.Trailing() {
			b.Punct(",")
		}
	})
}

// ToTokens implements [quote.ToTokens].
func (t *TypeParen) ToTokens(b *quote.Builder) {
	t.Paren.render(b, token.Parens, func(b *quote.Builder) { b.Append(t.Elem) })
}

// ToTokens implements [quote.ToTokens].
func (t *TypeNever) ToTokens(b *quote.Builder) {
	b.Append(orPunct(t.Bang, keyword.Not))
}

// ToTokens implements [quote.ToTokens].
func (t *TypeInfer) ToTokens(b *quote.Builder) {
	b.Append(orWord(t.Underscore, keyword.Underscore))
}

// ToTokens implements [quote.ToTokens].
func (t *TypeBareFn) ToTokens(b *quote.Builder) {
	if t.Lifetimes != nil {
		b.Append(t.Lifetimes)
	}
	b.Append(t.Unsafe, orWord(t.Fn, keyword.Fn))
	t.Paren.render(b, token.Parens, func(b *quote.Builder) { b.Append(t.Inputs) })
	b.Append(t.Output)
}

// ToTokens implements [quote.ToTokens].
func (a BareFnArg) ToTokens(b *quote.Builder) {
	if !a.Name.IsZero() {
		b.Append(a.Name, orPunct(a.Colon, keyword.Colon))
	}
	b.Append(a.Type)
}

// ToTokens implements [quote.ToTokens].
func (t *TypeImplTrait) ToTokens(b *quote.Builder) {
	b.Append(orWord(t.Impl, keyword.Impl), t.Bounds)
}

// ToTokens implements [quote.ToTokens].
func (t *TypeTraitObject) ToTokens(b *quote.Builder) {
	b.Append(orWord(t.Dyn, keyword.Dyn), t.Bounds)
}

// ParseType parses a type.
func ParseType(s *parse.Stream) (Type, error) {
	switch {
	case s.Peek(parse.Parens):
		return parseParenType(s)
	case s.Peek(parse.Brackets):
		return parseSliceOrArray(s)
	case s.Peek(keyword.And):
		return parseRefType(s)
	case s.Peek(keyword.Star):
		return parsePtrType(s)
	case s.Peek(keyword.Not):
		bang, err := keyword.Not.Parse(s)
		if err != nil {
			return nil, err
		}
		return &TypeNever{Bang: bang}, nil
	case s.Peek(keyword.Underscore):
		under, err := keyword.Underscore.Parse(s)
		if err != nil {
			return nil, err
		}
		return &TypeInfer{Underscore: under}, nil
	case s.Peek(keyword.Fn), s.Peek(keyword.Unsafe), s.Peek(keyword.For):
		return parseBareFn(s)
	case s.Peek(keyword.Impl):
		impl, err := keyword.Impl.Parse(s)
		if err != nil {
			return nil, err
		}
		bounds, err := parseBounds(s, true)
		if err != nil {
			return nil, err
		}
		return &TypeImplTrait{Impl: impl, Bounds: bounds}, nil
	case s.Peek(keyword.Dyn):
		dyn, err := keyword.Dyn.Parse(s)
		if err != nil {
			return nil, err
		}
		bounds, err := parseBounds(s, true)
		if err != nil {
			return nil, err
		}
		return &TypeTraitObject{Dyn: dyn, Bounds: bounds}, nil
	case s.Peek(keyword.Lt):
		qself, path, err := parseQPath(s, styleType)
		if err != nil {
			return nil, err
		}
		return &TypePath{QSelf: qself, Path: path}, nil
	case s.Peek(startsPath):
		path, err := ParsePath(s)
		if err != nil {
			return nil, err
		}
		return &TypePath{Path: path}, nil
	}
	return nil, s.Unexpected("type")
}

func parseParenType(s *parse.Stream) (Type, error) {
	ty, paren, err := parens(s, func(s *parse.Stream) (Type, error) {
		if s.IsEmpty() {
			return &TypeTuple{Elems: punctuated.Of[Type](keyword.Comma)}, nil
		}
		first, err := ParseType(s)
		if err != nil {
			return nil, err
		}
		if s.IsEmpty() {
			return &TypeParen{Elem: first}, nil
		}
		elems := punctuated.Of(keyword.Comma, first)
		comma, err := keyword.Comma.Parse(s)
		if err != nil {
			return nil, err
		}
		elems.PushPunct(comma)
		rest, err := punctuated.ParseTerminated(s, ParseType, keyword.Comma)
		if err != nil {
			return nil, err
		}
		for v, p := range rest.All() {
			elems.PushValue(v)
			if !p.IsZero() {
				elems.PushPunct(p)
			}
		}
		return &TypeTuple{Elems: elems}, nil
	})
	if err != nil {
		return nil, err
	}
	switch ty := ty.(type) {
	case *TypeTuple:
		ty.Paren = paren
	case *TypeParen:
		ty.Paren = paren
	}
	return ty, nil
}

func parseSliceOrArray(s *parse.Stream) (Type, error) {
	ty, bracket, err := brackets(s, func(s *parse.Stream) (Type, error) {
		elem, err := ParseType(s)
		if err != nil {
			return nil, err
		}
		if s.IsEmpty() {
			return &TypeSlice{Elem: elem}, nil
		}
		semi, err := keyword.Semi.Parse(s)
		if err != nil {
			return nil, err
		}
		n, err := ParseExpr(s)
		if err != nil {
			return nil, err
		}
		return &TypeArray{Elem: elem, Semi: semi, Len: n}, nil
	})
	if err != nil {
		return nil, err
	}
	switch ty := ty.(type) {
	case *TypeSlice:
		ty.Bracket = bracket
	case *TypeArray:
		ty.Bracket = bracket
	}
	return ty, nil
}

func parseRefType(s *parse.Stream) (Type, error) {
	if s.Peek(keyword.AndAnd) {
		// `&&T` is two references.
		andAnd, err := keyword.AndAnd.Parse(s)
		if err != nil {
			return nil, err
		}
		first, second := splitPunct(andAnd)
		inner, err := parseRefBody(s, second)
		if err != nil {
			return nil, err
		}
		return &TypeReference{And: first, Elem: inner}, nil
	}
	and, err := keyword.And.Parse(s)
	if err != nil {
		return nil, err
	}
	return parseRefBody(s, and)
}

func parseRefBody(s *parse.Stream, and keyword.Token) (*TypeReference, error) {
	ref := &TypeReference{And: and}
	if s.Peek(parse.Lifetime) {
		lt, err := ParseLifetime(s)
		if err != nil {
			return nil, err
		}
		ref.Lifetime = &lt
	}
	ref.Mut = keyword.Mut.Maybe(s)
	var err error
	if ref.Elem, err = parseTypeNoPlus(s); err != nil {
		return nil, err
	}
	return ref, nil
}

// parseTypeNoPlus parses a type that may not have several trait bounds
// without parentheses, as in `&(dyn A + B)` or `x as (dyn A + B)`.
func parseTypeNoPlus(s *parse.Stream) (Type, error) {
	if s.Peek(keyword.Dyn) || s.Peek(keyword.Impl) {
		dyn := keyword.Dyn.Maybe(s)
		impl := keyword.Impl.Maybe(s)
		bound, err := parseBound(s)
		if err != nil {
			return nil, err
		}
		bounds := punctuated.Of(keyword.Plus, bound)
		if !dyn.IsZero() {
			return &TypeTraitObject{Dyn: dyn, Bounds: bounds}, nil
		}
		return &TypeImplTrait{Impl: impl, Bounds: bounds}, nil
	}
	return ParseType(s)
}

func parsePtrType(s *parse.Stream) (Type, error) {
	ptr := new(TypePtr)
	var err error
	if ptr.Star, err = keyword.Star.Parse(s); err != nil {
		return nil, err
	}
	l := s.Lookahead1()
	switch {
	case l.Peek(keyword.Const):
		ptr.Const, err = keyword.Const.Parse(s)
	case l.Peek(keyword.Mut):
		ptr.Mut, err = keyword.Mut.Parse(s)
	default:
		return nil, l.Error()
	}
	if err != nil {
		return nil, err
	}
	if ptr.Elem, err = parseTypeNoPlus(s); err != nil {
		return nil, err
	}
	return ptr, nil
}

func parseBareFn(s *parse.Stream) (Type, error) {
	fn := new(TypeBareFn)
	var err error
	if s.Peek(keyword.For) {
		if fn.Lifetimes, err = parseBoundLifetimes(s); err != nil {
			return nil, err
		}
	}
	fn.Unsafe = keyword.Unsafe.Maybe(s)
	if fn.Fn, err = keyword.Fn.Parse(s); err != nil {
		return nil, err
	}
	fn.Inputs, fn.Paren, err = parens(s, func(s *parse.Stream) (punctuated.Punctuated[BareFnArg], error) {
		return punctuated.ParseTerminated(s, parseBareFnArg, keyword.Comma)
	})
	if err != nil {
		return nil, err
	}
	if fn.Output, err = parseReturnType(s); err != nil {
		return nil, err
	}
	return fn, nil
}

func parseBareFnArg(s *parse.Stream) (BareFnArg, error) {
	var arg BareFnArg
	var err error
	if (s.Peek(IdentPeeker) || s.Peek(keyword.Underscore)) && s.Peek2(exactly(keyword.Colon)) {
		if arg.Name, err = ParseAnyIdent(s); err != nil {
			return arg, err
		}
		if arg.Colon, err = keyword.Colon.Parse(s); err != nil {
			return arg, err
		}
	}
	if arg.Type, err = ParseType(s); err != nil {
		return arg, err
	}
	return arg, nil
}
