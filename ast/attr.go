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

// Attribute is an attribute, `#[meta]`, or an inner attribute, `#![meta]`.
type Attribute struct {
	Pound keyword.Token
	// Present only for inner attributes.
	Bang    keyword.Token
	Bracket Delim
	Meta    Meta
}

// IsInner returns whether this is an inner attribute.
func (a *Attribute) IsInner() bool {
	return !a.Bang.IsZero()
}

// Meta is the contents of an attribute: a [*MetaPath], [*MetaList] or
// [*MetaNameValue].
type Meta interface {
	Node
	Kind() MetaKind
	// GetPath returns the path that starts this meta.
	GetPath() Path
	isMeta()
}

// MetaPath is a bare path, as in `#[test]`.
type MetaPath struct {
	Path Path
}

// MetaList is a path followed by a delimited group of arbitrary tokens, as
// in `#[derive(Clone, Debug)]`. The tokens are kept unparsed; see
// [MetaList.ParseNested] and [ParseMetaArgs].
type MetaList struct {
	Path      Path
	Delimiter token.Delimiter
	Delim     Delim
	Tokens    token.Stream
}

// MetaNameValue is a path with a value, as in `#[doc = "..."]`.
type MetaNameValue struct {
	Path  Path
	Eq    keyword.Token
	Value Expr
}

func (*MetaPath) Kind() MetaKind      { return MetaKindPath }
func (*MetaList) Kind() MetaKind      { return MetaKindList }
func (*MetaNameValue) Kind() MetaKind { return MetaKindNameValue }
func (m *MetaPath) GetPath() Path      { return m.Path }
func (m *MetaList) GetPath() Path      { return m.Path }
func (m *MetaNameValue) GetPath() Path { return m.Path }
func (*MetaPath) isMeta()             {}
func (*MetaList) isMeta()             {}
func (*MetaNameValue) isMeta()        {}

func (a *Attribute) Span() source.Span     { return spanOf(a) }
func (m *MetaPath) Span() source.Span      { return m.Path.Span() }
func (m *MetaList) Span() source.Span      { return spanOf(m) }
func (m *MetaNameValue) Span() source.Span { return spanOf(m) }

// ToTokens implements [quote.ToTokens].
func (a *Attribute) ToTokens(b *quote.Builder) {
	b.Append(orPunct(a.Pound, keyword.Pound), a.Bang)
	a.Bracket.render(b, token.Brackets, func(b *quote.Builder) { b.Append(a.Meta) })
}

// ToTokens implements [quote.ToTokens].
func (m *MetaPath) ToTokens(b *quote.Builder) { b.Append(m.Path) }

// ToTokens implements [quote.ToTokens].
func (m *MetaList) ToTokens(b *quote.Builder) {
	b.Append(m.Path)
	delim := m.Delimiter
	if delim == 0 {
		delim = token.Parens
	}
	m.Delim.render(b, delim, func(b *quote.Builder) { b.Tokens(m.Tokens) })
}

// ToTokens implements [quote.ToTokens].
func (m *MetaNameValue) ToTokens(b *quote.Builder) {
	b.Append(m.Path, orPunct(m.Eq, keyword.Eq), m.Value)
}

// ParseNested parses the tokens of a list as comma-separated metas, as in
// `#[derive(Clone, Debug)]` or `#[cfg(all(unix, feature = "x"))]`.
func (m *MetaList) ParseNested() (punctuated.Punctuated[Meta], error) {
	return ParseMetaArgs(m, func(s *parse.Stream) (punctuated.Punctuated[Meta], error) {
		return punctuated.ParseTerminated(s, ParseMeta, keyword.Comma)
	})
}

// ParseMetaArgs parses the tokens of a list with f, which must consume all
// of them.
func ParseMetaArgs[T any](m *MetaList, f parse.Func[T]) (T, error) {
	return parse.ParseAll(buffer.New(m.Tokens), m.Delim.Close, f)
}

// ParseMeta parses the contents of an attribute.
func ParseMeta(s *parse.Stream) (Meta, error) {
	path, err := ParseModPath(s)
	if err != nil {
		return nil, err
	}

	switch {
	case s.Peek(parse.Parens), s.Peek(parse.Brackets), s.Peek(parse.Braces):
		group, err := s.TokenTree()
		if err != nil {
			return nil, err
		}
		return &MetaList{
			Path:      path,
			Delimiter: group.Delimiter(),
			Delim:     delimOf(group),
			Tokens:    group.Stream(),
		}, nil
	case s.Peek(exactly(keyword.Eq)):
		m := &MetaNameValue{Path: path}
		if m.Eq, err = keyword.Eq.Parse(s); err != nil {
			return nil, err
		}
		if m.Value, err = ParseExpr(s); err != nil {
			return nil, err
		}
		return m, nil
	}
	return &MetaPath{Path: path}, nil
}

// ParseOuterAttrs parses zero or more outer attributes, `#[...]`.
func ParseOuterAttrs(s *parse.Stream) ([]*Attribute, error) {
	var attrs []*Attribute
	for s.Peek(keyword.Pound) && s.Peek2(parse.Brackets) {
		attr, err := parseAttr(s, false)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

// ParseInnerAttrs parses zero or more inner attributes, `#![...]`.
func ParseInnerAttrs(s *parse.Stream) ([]*Attribute, error) {
	var attrs []*Attribute
	for s.Peek(keyword.Pound) && s.Peek2(keyword.Not) && s.Peek3(parse.Brackets) {
		attr, err := parseAttr(s, true)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

func parseAttr(s *parse.Stream, inner bool) (*Attribute, error) {
	a := new(Attribute)
	var err error
	if a.Pound, err = keyword.Pound.Parse(s); err != nil {
		return nil, err
	}
	if inner {
		if a.Bang, err = keyword.Not.Parse(s); err != nil {
			return nil, err
		}
	}
	if a.Meta, a.Bracket, err = brackets(s, ParseMeta); err != nil {
		return nil, err
	}
	return a, nil
}

func renderAttrs(b *quote.Builder, attrs []*Attribute) {
	for _, attr := range attrs {
		b.Append(attr)
	}
}
