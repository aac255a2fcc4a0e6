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
	"github.com/synparse/synparse/token"
	"github.com/synparse/synparse/token/keyword"
)

// Item is a top-level declaration.
type Item interface {
	Node
	Kind() ItemKind
	// Attributes returns the outer attributes of the item.
	Attributes() []*Attribute
	isItem()
}

// ItemStruct is a struct declaration. Semi is present for unit and tuple
// structs.
type ItemStruct struct {
	Attrs    []*Attribute
	Vis      Visibility
	Struct   keyword.Token
	Ident    Ident
	Generics Generics
	Fields   Fields
	Semi     keyword.Token
}

// ItemEnum is an enum declaration.
type ItemEnum struct {
	Attrs    []*Attribute
	Vis      Visibility
	Enum     keyword.Token
	Ident    Ident
	Generics Generics
	Brace    Delim
	Variants punctuated.Punctuated[*Variant]
}

// ItemUnion is a union declaration. Its fields are always named.
type ItemUnion struct {
	Attrs    []*Attribute
	Vis      Visibility
	Union    keyword.Token
	Ident    Ident
	Generics Generics
	Fields   Fields
}

// ItemFn is a function with a body.
type ItemFn struct {
	Attrs []*Attribute
	Vis   Visibility
	Sig   Signature
	Block *Block
}

// ItemConst is a constant, `const N: usize = 3;`. Ident may be `_`.
type ItemConst struct {
	Attrs []*Attribute
	Vis   Visibility
	Const keyword.Token
	Ident Ident
	Colon keyword.Token
	Type  Type
	Eq    keyword.Token
	Expr  Expr
	Semi  keyword.Token
}

// ItemType is a type alias, `type A<T> = B<T>;`.
type ItemType struct {
	Attrs    []*Attribute
	Vis      Visibility
	Type     keyword.Token
	Ident    Ident
	Generics Generics
	Eq       keyword.Token
	Ty       Type
	Semi     keyword.Token
}

// Fields is the fields of a struct, union or enum variant.
type Fields struct {
	Kind FieldsKind
	// Braces for named fields, parentheses for unnamed ones.
	Delim  Delim
	Fields punctuated.Punctuated[*Field]
}

// Field is one field of a struct, union or enum variant. Ident is zero for
// unnamed fields.
type Field struct {
	Attrs []*Attribute
	Vis   Visibility
	Ident Ident
	Colon keyword.Token
	Type  Type
}

// Variant is one variant of an enum.
type Variant struct {
	Attrs  []*Attribute
	Ident  Ident
	Fields Fields
	Eq     keyword.Token
	// Nil unless there is an explicit discriminant.
	Discriminant Expr
}

// Signature is everything about a function but its body.
type Signature struct {
	Const    keyword.Token
	Async    keyword.Token
	Unsafe   keyword.Token
	Abi      *Abi
	Fn       keyword.Token
	Ident    Ident
	Generics Generics
	Paren    Delim
	Inputs   punctuated.Punctuated[FnArg]
	Output   ReturnType
}

// Abi is the `extern "C"` of a function.
type Abi struct {
	Extern keyword.Token
	// Nil if the ABI name is left out.
	Name *LitStr
}

// FnArg is an argument of a function: a [*Receiver] or a [*PatType].
type FnArg interface {
	Node
	isFnArg()
}

// Receiver is the self argument of a method: `self`, `&'a mut self`, or
// `self: Box<Self>`.
type Receiver struct {
	Attrs    []*Attribute
	And      keyword.Token
	Lifetime *Lifetime
	Mut      keyword.Token
	Self     keyword.Token
	Colon    keyword.Token
	// Nil unless the receiver has an explicit type.
	Type Type
}

// PatType is a typed pattern, such as the function argument `x: u32`.
type PatType struct {
	Attrs []*Attribute
	Pat   Pat
	Colon keyword.Token
	Type  Type
}

func (*ItemStruct) Kind() ItemKind { return ItemKindStruct }
func (*ItemEnum) Kind() ItemKind   { return ItemKindEnum }
func (*ItemUnion) Kind() ItemKind  { return ItemKindUnion }
func (*ItemFn) Kind() ItemKind     { return ItemKindFn }
func (*ItemConst) Kind() ItemKind  { return ItemKindConst }
func (*ItemType) Kind() ItemKind   { return ItemKindType }

func (i *ItemStruct) Attributes() []*Attribute { return i.Attrs }
func (i *ItemEnum) Attributes() []*Attribute   { return i.Attrs }
func (i *ItemUnion) Attributes() []*Attribute  { return i.Attrs }
func (i *ItemFn) Attributes() []*Attribute     { return i.Attrs }
func (i *ItemConst) Attributes() []*Attribute  { return i.Attrs }
func (i *ItemType) Attributes() []*Attribute   { return i.Attrs }

func (*ItemStruct) isItem() {}
func (*ItemEnum) isItem()   {}
func (*ItemUnion) isItem()  {}
func (*ItemFn) isItem()     {}
func (*ItemConst) isItem()  {}
func (*ItemType) isItem()   {}

func (*Receiver) isFnArg() {}
func (*PatType) isFnArg()  {}

func (i *ItemStruct) Span() source.Span { return spanOf(i) }
func (i *ItemEnum) Span() source.Span   { return spanOf(i) }
func (i *ItemUnion) Span() source.Span  { return spanOf(i) }
func (i *ItemFn) Span() source.Span     { return spanOf(i) }
func (i *ItemConst) Span() source.Span  { return spanOf(i) }
func (i *ItemType) Span() source.Span   { return spanOf(i) }
func (f Fields) Span() source.Span      { return spanOf(f) }
func (f *Field) Span() source.Span      { return spanOf(f) }
func (v *Variant) Span() source.Span    { return spanOf(v) }
func (s *Signature) Span() source.Span  { return spanOf(s) }
func (a *Abi) Span() source.Span        { return spanOf(a) }
func (r *Receiver) Span() source.Span   { return spanOf(r) }
func (p *PatType) Span() source.Span    { return spanOf(p) }

// Len returns the number of fields.
func (f Fields) Len() int { return f.Fields.Len() }

// ToTokens implements [quote.ToTokens].
func (i *ItemStruct) ToTokens(b *quote.Builder) {
	renderAttrs(b, i.Attrs)
	b.Append(i.Vis, orWord(i.Struct, keyword.Struct), i.Ident, &i.Generics)
	switch i.Fields.Kind {
	case FieldsKindNamed:
		appendWhere(b, i.Generics.Where)
		b.Append(i.Fields)
	case FieldsKindUnnamed:
		b.Append(i.Fields)
		appendWhere(b, i.Generics.Where)
		b.Append(orPunct(i.Semi, keyword.Semi))
	default:
		appendWhere(b, i.Generics.Where)
		b.Append(orPunct(i.Semi, keyword.Semi))
	}
}

// ToTokens implements [quote.ToTokens].
func (i *ItemEnum) ToTokens(b *quote.Builder) {
	renderAttrs(b, i.Attrs)
	b.Append(i.Vis, orWord(i.Enum, keyword.Enum), i.Ident, &i.Generics)
	appendWhere(b, i.Generics.Where)
	i.Brace.render(b, token.Braces, func(b *quote.Builder) { b.Append(i.Variants) })
}

// ToTokens implements [quote.ToTokens].
func (i *ItemUnion) ToTokens(b *quote.Builder) {
	renderAttrs(b, i.Attrs)
	b.Append(i.Vis, orWord(i.Union, keyword.Union), i.Ident, &i.Generics)
	appendWhere(b, i.Generics.Where)
	b.Append(i.Fields)
}

// ToTokens implements [quote.ToTokens].
func (i *ItemFn) ToTokens(b *quote.Builder) {
	renderAttrs(b, i.Attrs)
	b.Append(i.Vis, &i.Sig)
	if i.Block != nil {
		b.Append(i.Block)
	}
}

// ToTokens implements [quote.ToTokens].
func (i *ItemConst) ToTokens(b *quote.Builder) {
	renderAttrs(b, i.Attrs)
	b.Append(i.Vis, orWord(i.Const, keyword.Const), i.Ident,
		orPunct(i.Colon, keyword.Colon), i.Type,
		orPunct(i.Eq, keyword.Eq), i.Expr,
		orPunct(i.Semi, keyword.Semi))
}

// ToTokens implements [quote.ToTokens].
func (i *ItemType) ToTokens(b *quote.Builder) {
	renderAttrs(b, i.Attrs)
	b.Append(i.Vis, orWord(i.Type, keyword.Type), i.Ident, &i.Generics)
	appendWhere(b, i.Generics.Where)
	b.Append(orPunct(i.Eq, keyword.Eq), i.Ty, orPunct(i.Semi, keyword.Semi))
}

// ToTokens implements [quote.ToTokens].
func (f Fields) ToTokens(b *quote.Builder) {
	switch f.Kind {
	case FieldsKindNamed:
		f.Delim.render(b, token.Braces, func(b *quote.Builder) { b.Append(f.Fields) })
	case FieldsKindUnnamed:
		f.Delim.render(b, token.Parens, func(b *quote.Builder) { b.Append(f.Fields) })
	}
}

// ToTokens implements [quote.ToTokens].
func (f *Field) ToTokens(b *quote.Builder) {
	renderAttrs(b, f.Attrs)
	b.Append(f.Vis)
	if !f.Ident.IsZero() {
		b.Append(f.Ident, orPunct(f.Colon, keyword.Colon))
	}
	b.Append(f.Type)
}

// ToTokens implements [quote.ToTokens].
func (v *Variant) ToTokens(b *quote.Builder) {
	renderAttrs(b, v.Attrs)
	b.Append(v.Ident, v.Fields)
	if v.Discriminant != nil {
		b.Append(orPunct(v.Eq, keyword.Eq), v.Discriminant)
	}
}

// ToTokens implements [quote.ToTokens].
func (s *Signature) ToTokens(b *quote.Builder) {
	b.Append(s.Const, s.Async, s.Unsafe)
	if s.Abi != nil {
		b.Append(s.Abi)
	}
	b.Append(orWord(s.Fn, keyword.Fn), s.Ident, &s.Generics)
	s.Paren.render(b, token.Parens, func(b *quote.Builder) { b.Append(s.Inputs) })
	b.Append(s.Output)
	appendWhere(b, s.Generics.Where)
}

// ToTokens implements [quote.ToTokens].
func (a *Abi) ToTokens(b *quote.Builder) {
	b.Append(orWord(a.Extern, keyword.Extern))
	if a.Name != nil {
		b.Append(a.Name)
	}
}

// ToTokens implements [quote.ToTokens].
func (r *Receiver) ToTokens(b *quote.Builder) {
	renderAttrs(b, r.Attrs)
	b.Append(r.And)
	if r.Lifetime != nil {
		b.Append(*r.Lifetime)
	}
	b.Append(r.Mut, orWord(r.Self, keyword.SelfVal))
	if r.Type != nil {
		b.Append(orPunct(r.Colon, keyword.Colon), r.Type)
	}
}

// ToTokens implements [quote.ToTokens].
func (p *PatType) ToTokens(b *quote.Builder) {
	renderAttrs(b, p.Attrs)
	b.Append(p.Pat, orPunct(p.Colon, keyword.Colon), p.Type)
}

func appendWhere(b *quote.Builder, w *WhereClause) {
	if w != nil {
		b.Append(w)
	}
}

// ParseItem parses an item, including its outer attributes.
func ParseItem(s *parse.Stream) (Item, error) {
	attrs, err := ParseOuterAttrs(s)
	if err != nil {
		return nil, err
	}
	return parseItem(s, attrs)
}

// peekItem returns whether s is at the start of an item, after any
// attributes.
func peekItem(s *parse.Stream) bool {
	fork := s.Fork()
	vis, err := ParseVisibility(fork)
	if err != nil {
		return false
	}
	if vis.Kind() != VisibilityKindInherited {
		return true
	}
	return peekItemKeyword(fork)
}

func peekItemKeyword(s *parse.Stream) bool {
	switch {
	case s.Peek(keyword.Struct), s.Peek(keyword.Enum), s.Peek(keyword.Fn),
		s.Peek(keyword.Type), s.Peek(keyword.Extern):
		return true
	case s.Peek(keyword.Union):
		return s.Peek2(IdentPeeker)
	case s.Peek(keyword.Const):
		return s.Peek2(IdentPeeker) || s.Peek2(keyword.Underscore) ||
			s.Peek2(keyword.Fn) || s.Peek2(keyword.Unsafe) ||
			s.Peek2(keyword.Async) || s.Peek2(keyword.Extern)
	case s.Peek(keyword.Async), s.Peek(keyword.Unsafe):
		return !s.Peek2(parse.Braces)
	}
	return false
}

func parseItem(s *parse.Stream, attrs []*Attribute) (Item, error) {
	vis, err := ParseVisibility(s)
	if err != nil {
		return nil, err
	}

	var item Item
	switch {
	case s.Peek(keyword.Struct):
		item, err = parseStruct(s, attrs, vis)
	case s.Peek(keyword.Enum):
		item, err = parseEnum(s, attrs, vis)
	case s.Peek(keyword.Union) && s.Peek2(IdentPeeker):
		item, err = parseUnion(s, attrs, vis)
	case s.Peek(keyword.Type):
		item, err = parseTypeAlias(s, attrs, vis)
	case s.Peek(keyword.Const) && !s.Peek2(keyword.Fn) && !s.Peek2(keyword.Unsafe) &&
		!s.Peek2(keyword.Async) && !s.Peek2(keyword.Extern):
		item, err = parseConst(s, attrs, vis)
	case s.Peek(keyword.Fn), s.Peek(keyword.Const), s.Peek(keyword.Async),
		s.Peek(keyword.Unsafe), s.Peek(keyword.Extern):
		item, err = parseFn(s, attrs, vis)
	default:
		return nil, s.Unexpected("item")
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func parseStruct(s *parse.Stream, attrs []*Attribute, vis Visibility) (*ItemStruct, error) {
	i := &ItemStruct{Attrs: attrs, Vis: vis}
	var err error
	if i.Struct, err = keyword.Struct.Parse(s); err != nil {
		return nil, err
	}
	if i.Ident, err = ParseIdent(s); err != nil {
		return nil, err
	}
	if i.Generics, err = ParseGenerics(s); err != nil {
		return nil, err
	}
	if i.Fields, i.Generics.Where, i.Semi, err = parseStructBody(s); err != nil {
		return nil, err
	}
	return i, nil
}

// parseStructBody parses what follows the generics of a struct:
//
//	where ... { fields }
//	( fields ) where ... ;
//	where ... ;
func parseStructBody(s *parse.Stream) (Fields, *WhereClause, keyword.Token, error) {
	var (
		fields Fields
		where  *WhereClause
		semi   keyword.Token
		err    error
	)
	if s.Peek(parse.Parens) {
		if fields, err = parseUnnamedFields(s); err != nil {
			return fields, nil, semi, err
		}
		if where, err = parseOptWhere(s); err != nil {
			return fields, nil, semi, err
		}
		semi, err = keyword.Semi.Parse(s)
		return fields, where, semi, err
	}

	if where, err = parseOptWhere(s); err != nil {
		return fields, nil, semi, err
	}
	if s.Peek(parse.Braces) {
		fields, err = parseNamedFields(s)
		return fields, where, semi, err
	}
	l := s.Lookahead1()
	if l.Peek(keyword.Semi) {
		semi, err = keyword.Semi.Parse(s)
		return fields, where, semi, err
	}
	l.Peek(parse.Braces)
	l.Peek(parse.Parens)
	return fields, where, semi, l.Error()
}

func parseNamedFields(s *parse.Stream) (Fields, error) {
	fields, brace, err := braces(s, func(s *parse.Stream) (punctuated.Punctuated[*Field], error) {
		return punctuated.ParseTerminated(s, parseNamedField, keyword.Comma)
	})
	return Fields{Kind: FieldsKindNamed, Delim: brace, Fields: fields}, err
}

func parseUnnamedFields(s *parse.Stream) (Fields, error) {
	fields, paren, err := parens(s, func(s *parse.Stream) (punctuated.Punctuated[*Field], error) {
		return punctuated.ParseTerminated(s, parseUnnamedField, keyword.Comma)
	})
	return Fields{Kind: FieldsKindUnnamed, Delim: paren, Fields: fields}, err
}

func parseNamedField(s *parse.Stream) (*Field, error) {
	f := new(Field)
	var err error
	if f.Attrs, err = ParseOuterAttrs(s); err != nil {
		return nil, err
	}
	if f.Vis, err = ParseVisibility(s); err != nil {
		return nil, err
	}
	if f.Ident, err = ParseIdent(s); err != nil {
		return nil, err
	}
	if f.Colon, err = keyword.Colon.Parse(s); err != nil {
		return nil, err
	}
	if f.Type, err = ParseType(s); err != nil {
		return nil, err
	}
	return f, nil
}

func parseUnnamedField(s *parse.Stream) (*Field, error) {
	f := new(Field)
	var err error
	if f.Attrs, err = ParseOuterAttrs(s); err != nil {
		return nil, err
	}
	if f.Vis, err = ParseVisibility(s); err != nil {
		return nil, err
	}
	if f.Type, err = ParseType(s); err != nil {
		return nil, err
	}
	return f, nil
}

func parseEnum(s *parse.Stream, attrs []*Attribute, vis Visibility) (*ItemEnum, error) {
	i := &ItemEnum{Attrs: attrs, Vis: vis}
	var err error
	if i.Enum, err = keyword.Enum.Parse(s); err != nil {
		return nil, err
	}
	if i.Ident, err = ParseIdent(s); err != nil {
		return nil, err
	}
	if i.Generics, err = ParseGenerics(s); err != nil {
		return nil, err
	}
	if i.Generics.Where, err = parseOptWhere(s); err != nil {
		return nil, err
	}
	i.Variants, i.Brace, err = parseVariants(s)
	if err != nil {
		return nil, err
	}
	return i, nil
}

func parseVariants(s *parse.Stream) (punctuated.Punctuated[*Variant], Delim, error) {
	return braces(s, func(s *parse.Stream) (punctuated.Punctuated[*Variant], error) {
		return punctuated.ParseTerminated(s, parseVariant, keyword.Comma)
	})
}

func parseVariant(s *parse.Stream) (*Variant, error) {
	v := new(Variant)
	var err error
	if v.Attrs, err = ParseOuterAttrs(s); err != nil {
		return nil, err
	}
	if vis, err := ParseVisibility(s); err != nil {
		return nil, err
	} else if vis.Kind() != VisibilityKindInherited {
		return nil, s.ErrorAt(vis, report.Unexpected, "visibility qualifiers are not permitted on enum variants")
	}
	if v.Ident, err = ParseIdent(s); err != nil {
		return nil, err
	}
	switch {
	case s.Peek(parse.Braces):
		v.Fields, err = parseNamedFields(s)
	case s.Peek(parse.Parens):
		v.Fields, err = parseUnnamedFields(s)
	}
	if err != nil {
		return nil, err
	}
	if s.Peek(exactly(keyword.Eq)) {
		if v.Eq, err = keyword.Eq.Parse(s); err != nil {
			return nil, err
		}
		if v.Discriminant, err = ParseExpr(s); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func parseUnion(s *parse.Stream, attrs []*Attribute, vis Visibility) (*ItemUnion, error) {
	i := &ItemUnion{Attrs: attrs, Vis: vis}
	var err error
	if i.Union, err = keyword.Union.Parse(s); err != nil {
		return nil, err
	}
	if i.Ident, err = ParseIdent(s); err != nil {
		return nil, err
	}
	if i.Generics, err = ParseGenerics(s); err != nil {
		return nil, err
	}
	if i.Generics.Where, err = parseOptWhere(s); err != nil {
		return nil, err
	}
	if i.Fields, err = parseNamedFields(s); err != nil {
		return nil, err
	}
	return i, nil
}

func parseTypeAlias(s *parse.Stream, attrs []*Attribute, vis Visibility) (*ItemType, error) {
	i := &ItemType{Attrs: attrs, Vis: vis}
	var err error
	if i.Type, err = keyword.Type.Parse(s); err != nil {
		return nil, err
	}
	if i.Ident, err = ParseIdent(s); err != nil {
		return nil, err
	}
	if i.Generics, err = ParseGenerics(s); err != nil {
		return nil, err
	}
	if i.Generics.Where, err = parseOptWhere(s); err != nil {
		return nil, err
	}
	if i.Eq, err = keyword.Eq.Parse(s); err != nil {
		return nil, err
	}
	if i.Ty, err = ParseType(s); err != nil {
		return nil, err
	}
	if i.Semi, err = keyword.Semi.Parse(s); err != nil {
		return nil, err
	}
	return i, nil
}

func parseConst(s *parse.Stream, attrs []*Attribute, vis Visibility) (*ItemConst, error) {
	i := &ItemConst{Attrs: attrs, Vis: vis}
	var err error
	if i.Const, err = keyword.Const.Parse(s); err != nil {
		return nil, err
	}
	if s.Peek(keyword.Underscore) {
		i.Ident, err = ParseAnyIdent(s)
	} else {
		i.Ident, err = ParseIdent(s)
	}
	if err != nil {
		return nil, err
	}
	if i.Colon, err = keyword.Colon.Parse(s); err != nil {
		return nil, err
	}
	if i.Type, err = ParseType(s); err != nil {
		return nil, err
	}
	if i.Eq, err = keyword.Eq.Parse(s); err != nil {
		return nil, err
	}
	if i.Expr, err = ParseExpr(s); err != nil {
		return nil, err
	}
	if i.Semi, err = keyword.Semi.Parse(s); err != nil {
		return nil, err
	}
	return i, nil
}

func parseFn(s *parse.Stream, attrs []*Attribute, vis Visibility) (*ItemFn, error) {
	i := &ItemFn{Attrs: attrs, Vis: vis}
	var err error
	if i.Sig, err = ParseSignature(s); err != nil {
		return nil, err
	}
	if i.Block, err = ParseBlock(s); err != nil {
		return nil, err
	}
	return i, nil
}

// ParseSignature parses a function signature, up to but not including the
// body.
func ParseSignature(s *parse.Stream) (Signature, error) {
	sig := Signature{
		Const:  keyword.Const.Maybe(s),
		Async:  keyword.Async.Maybe(s),
		Unsafe: keyword.Unsafe.Maybe(s),
	}
	var err error
	if s.Peek(keyword.Extern) {
		abi := new(Abi)
		if abi.Extern, err = keyword.Extern.Parse(s); err != nil {
			return sig, err
		}
		if s.Peek(parse.Literal) {
			lit, err := ParseLit(s)
			if err != nil {
				return sig, err
			}
			name, ok := lit.(*LitStr)
			if !ok {
				return sig, s.ErrorAt(lit, report.Unexpected, "expected ABI name string, found %s", lit.Span().Text())
			}
			abi.Name = name
		}
		sig.Abi = abi
	}
	if sig.Fn, err = keyword.Fn.Parse(s); err != nil {
		return sig, err
	}
	if sig.Ident, err = ParseIdent(s); err != nil {
		return sig, err
	}
	if sig.Generics, err = ParseGenerics(s); err != nil {
		return sig, err
	}
	if sig.Inputs, sig.Paren, err = parens(s, parseFnArgs); err != nil {
		return sig, err
	}
	if sig.Output, err = parseReturnType(s); err != nil {
		return sig, err
	}
	if sig.Generics.Where, err = parseOptWhere(s); err != nil {
		return sig, err
	}
	return sig, nil
}

// Receiver returns the receiver of this signature, or nil if it is not a
// method.
func (s *Signature) Receiver() *Receiver {
	if s.Inputs.IsEmpty() {
		return nil
	}
	r, _ := s.Inputs.At(0).(*Receiver)
	return r
}

func parseFnArgs(s *parse.Stream) (punctuated.Punctuated[FnArg], error) {
	args, err := punctuated.ParseTerminated(s, parseFnArg, keyword.Comma)
	if err != nil {
		return args, err
	}
	for n := 1; n < args.Len(); n++ {
		if r, ok := args.At(n).(*Receiver); ok {
			return args, s.ErrorAt(r, report.Unexpected, "unexpected `self` parameter in function")
		}
	}
	return args, nil
}

func parseFnArg(s *parse.Stream) (FnArg, error) {
	attrs, err := ParseOuterAttrs(s)
	if err != nil {
		return nil, err
	}
	if peekReceiver(s) {
		r, err := parseReceiver(s, attrs)
		if err != nil {
			return nil, err
		}
		return r, nil
	}

	p := &PatType{Attrs: attrs}
	if p.Pat, err = ParsePat(s); err != nil {
		return nil, err
	}
	if p.Colon, err = keyword.Colon.Parse(s); err != nil {
		return nil, err
	}
	if p.Type, err = ParseType(s); err != nil {
		return nil, err
	}
	return p, nil
}

// peekReceiver returns whether s is at a `self` argument, which may be
// preceded by `&`, a lifetime and `mut`.
func peekReceiver(s *parse.Stream) bool {
	fork := s.Fork()
	if !keyword.And.Maybe(fork).IsZero() {
		if fork.Peek(parse.Lifetime) {
			if _, err := ParseLifetime(fork); err != nil {
				return false
			}
		}
	}
	keyword.Mut.Maybe(fork)
	return fork.Peek(keyword.SelfVal) && !fork.Peek2(keyword.PathSep)
}

func parseReceiver(s *parse.Stream, attrs []*Attribute) (*Receiver, error) {
	r := &Receiver{Attrs: attrs, And: keyword.And.Maybe(s)}
	var err error
	if !r.And.IsZero() && s.Peek(parse.Lifetime) {
		lt, err := ParseLifetime(s)
		if err != nil {
			return nil, err
		}
		r.Lifetime = &lt
	}
	r.Mut = keyword.Mut.Maybe(s)
	if r.Self, err = keyword.SelfVal.Parse(s); err != nil {
		return nil, err
	}
	if r.And.IsZero() && s.Peek(exactly(keyword.Colon)) {
		if r.Colon, err = keyword.Colon.Parse(s); err != nil {
			return nil, err
		}
		if r.Type, err = ParseType(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}
