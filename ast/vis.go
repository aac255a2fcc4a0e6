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

// Visibility is the visibility of an item or field: a [*VisInherited],
// [*VisPublic] or [*VisRestricted].
type Visibility interface {
	Node
	Kind() VisibilityKind
	isVisibility()
}

// VisInherited is the absence of a visibility qualifier.
type VisInherited struct{}

// VisPublic is `pub`.
type VisPublic struct {
	Pub keyword.Token
}

// VisRestricted is `pub(crate)`, `pub(self)`, `pub(super)` or
// `pub(in some::path)`.
type VisRestricted struct {
	Pub   keyword.Token
	Paren Delim
	// Present only for the `pub(in path)` form.
	In   keyword.Token
	Path Path
}

func (*VisInherited) Kind() VisibilityKind  { return VisibilityKindInherited }
func (*VisPublic) Kind() VisibilityKind     { return VisibilityKindPublic }
func (*VisRestricted) Kind() VisibilityKind { return VisibilityKindRestricted }
func (*VisInherited) isVisibility()         {}
func (*VisPublic) isVisibility()            {}
func (*VisRestricted) isVisibility()        {}

func (*VisInherited) Span() source.Span    { return source.Span{} }
func (v *VisPublic) Span() source.Span     { return v.Pub.Span() }
func (v *VisRestricted) Span() source.Span { return spanOf(v) }

// ToTokens implements [quote.ToTokens].
func (*VisInherited) ToTokens(*quote.Builder) {}

// ToTokens implements [quote.ToTokens].
func (v *VisPublic) ToTokens(b *quote.Builder) { b.Append(orWord(v.Pub, keyword.Pub)) }

// ToTokens implements [quote.ToTokens].
func (v *VisRestricted) ToTokens(b *quote.Builder) {
	b.Append(orWord(v.Pub, keyword.Pub))
	v.Paren.render(b, token.Parens, func(b *quote.Builder) { b.Append(v.In, v.Path) })
}

// ParseVisibility parses an optional visibility qualifier. It never
// returns nil: no qualifier is a [*VisInherited].
//
// A `pub` followed by parentheses that do not hold a restriction, as in the
// tuple struct field `pub (u8, u8)`, is plain `pub`.
func ParseVisibility(s *parse.Stream) (Visibility, error) {
	if !s.Peek(keyword.Pub) {
		return new(VisInherited), nil
	}
	pub, err := keyword.Pub.Parse(s)
	if err != nil {
		return nil, err
	}
	if !s.Peek(parse.Parens) {
		return &VisPublic{Pub: pub}, nil
	}

	fork := s.Fork()
	inner, group, err := fork.Enter(token.Parens)
	if err != nil {
		return nil, err
	}
	v := &VisRestricted{Pub: pub, Paren: delimOf(group)}
	switch {
	case inner.Peek(keyword.In):
		if v.In, err = keyword.In.Parse(inner); err != nil {
			return nil, err
		}
		if v.Path, err = ParseModPath(inner); err != nil {
			return nil, err
		}
		if err := inner.ExpectEmpty(); err != nil {
			return nil, err
		}
	case inner.Peek(keyword.Crate), inner.Peek(keyword.SelfVal), inner.Peek(keyword.Super):
		ident, err := ParseAnyIdent(inner)
		if err != nil {
			return nil, err
		}
		if !inner.IsEmpty() {
			return &VisPublic{Pub: pub}, nil
		}
		v.Path = Path{Segments: punctuated.Of(keyword.PathSep, PathSegment{Ident: ident})}
	default:
		return &VisPublic{Pub: pub}, nil
	}
	s.AdvanceTo(fork)
	return v, nil
}
