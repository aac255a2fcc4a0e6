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
	"slices"

	"github.com/synparse/synparse/buffer"
	"github.com/synparse/synparse/parse"
	"github.com/synparse/synparse/quote"
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/token"
	"github.com/synparse/synparse/token/keyword"
)

// Node is any syntax tree node.
//
// The span of a node is the join of the spans of the tokens it renders to,
// so synthetic nodes built without spans have a zero span.
type Node interface {
	source.Spanner
	quote.ToTokens
}

// Delim records the spans of the delimiters of a group that a node was
// parsed from, such as the parentheses around a tuple.
//
// The zero Delim is valid; nodes rendered with it get synthetic delimiters.
type Delim struct {
	Open, Close source.Span
}

func delimOf(group token.Token) Delim {
	return Delim{Open: group.OpenSpan(), Close: group.CloseSpan()}
}

// render appends a group with these delimiter spans.
func (d Delim) render(b *quote.Builder, delim token.Delimiter, body func(*quote.Builder)) {
	b.GroupAt(delim, d.Open, d.Close, body)
}

func spanOf(n quote.ToTokens) source.Span {
	return source.JoinSeq(slices.Values(quote.Render(n)))
}

func parens[T any](s *parse.Stream, f parse.Func[T]) (T, Delim, error) {
	v, group, err := parse.Parenthesized(s, f)
	return v, delimOf(group), err
}

func brackets[T any](s *parse.Stream, f parse.Func[T]) (T, Delim, error) {
	v, group, err := parse.Bracketed(s, f)
	return v, delimOf(group), err
}

func braces[T any](s *parse.Stream, f parse.Func[T]) (T, Delim, error) {
	v, group, err := parse.Braced(s, f)
	return v, delimOf(group), err
}

// opAt returns the longest predeclared punctuation at c, or "".
func opAt(c buffer.Cursor) string {
	tok, _, ok := keyword.Longest(c)
	if !ok {
		return ""
	}
	return tok.Text
}

// exactly returns a peeker for p that, unlike p itself, does not match a
// prefix of a longer operator: exactly(Eq) does not match `==`.
func exactly(p keyword.Punct) parse.Peeker {
	return parse.PeekFunc{
		Func: func(c buffer.Cursor) bool { return opAt(c) == string(p) },
		Name: p.Display(),
	}
}

// optional parses a T with f if peek matches, and otherwise returns nil.
func optional[T any](s *parse.Stream, peek parse.Peeker, f parse.Func[*T]) (*T, error) {
	if !s.Peek(peek) {
		return nil, nil
	}
	return f(s)
}

// renderAll renders a slice of nodes in order.
func renderAll[T quote.ToTokens](b *quote.Builder, nodes []T) {
	for _, n := range nodes {
		n.ToTokens(b)
	}
}
