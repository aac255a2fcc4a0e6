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

// Package quote turns syntax trees back into tokens.
//
// Every syntax tree node implements [ToTokens] by appending its tokens to a
// [Builder] in source order. Rendering is deterministic: the same tree
// always produces the same tokens, and parsing those tokens back produces
// the same tree, modulo spans.
package quote

import (
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/token"
)

// ToTokens is implemented by anything that can be rendered as tokens.
type ToTokens interface {
	ToTokens(b *Builder)
}

// Builder accumulates a token stream.
//
// The zero Builder is empty and ready to use.
type Builder struct {
	// The span given to tokens appended without an explicit span. Zero by
	// default, which marks them as synthetic.
	Span source.Span

	stream token.Stream
}

// Render renders nodes into a fresh stream.
func Render(nodes ...ToTokens) token.Stream {
	var b Builder
	b.Append(nodes...)
	return b.Stream()
}

// String renders nodes and prints the resulting tokens.
func String(nodes ...ToTokens) string {
	return Render(nodes...).String()
}

// Stream returns the tokens appended so far.
func (b *Builder) Stream() token.Stream {
	return b.stream
}

// Len returns the number of token trees appended so far.
func (b *Builder) Len() int {
	return len(b.stream)
}

// Append renders each of nodes in order. Nil interface values are skipped.
func (b *Builder) Append(nodes ...ToTokens) {
	for _, n := range nodes {
		if n != nil {
			n.ToTokens(b)
		}
	}
}

// Token appends already-built tokens as-is, spans and spacing included.
func (b *Builder) Token(toks ...token.Token) {
	b.stream = append(b.stream, toks...)
}

// Tokens appends a whole stream as-is.
func (b *Builder) Tokens(stream token.Stream) {
	b.stream = append(b.stream, stream...)
}

// Ident appends an identifier.
func (b *Builder) Ident(name string) {
	b.IdentAt(name, b.Span)
}

// IdentAt appends an identifier with the given span.
func (b *Builder) IdentAt(name string, span source.Span) {
	b.stream = append(b.stream, token.NewIdent(name, b.or(span)))
}

// Punct appends a punctuation spelling such as "+" or "..=".
//
// Multi-character spellings become one token per character, each one but
// the last [token.Joint], so that they lex and parse as one operator.
func (b *Builder) Punct(spelling string) {
	b.PunctAt(spelling)
}

// PunctAt is like [Builder.Punct], but gives each character its own span.
// Characters without a span use [Builder.Span].
func (b *Builder) PunctAt(spelling string, spans ...source.Span) {
	chars := []rune(spelling)
	for i, r := range chars {
		spacing := token.Joint
		if i == len(chars)-1 {
			spacing = token.Alone
		}
		var span source.Span
		if i < len(spans) {
			span = spans[i]
		}
		b.stream = append(b.stream, token.NewPunct(r, spacing, b.or(span)))
	}
}

// Literal appends a literal with the given source text.
func (b *Builder) Literal(kind token.LitKind, text string) {
	b.LiteralAt(kind, text, b.Span)
}

// LiteralAt appends a literal with the given span.
func (b *Builder) LiteralAt(kind token.LitKind, text string, span source.Span) {
	b.stream = append(b.stream, token.NewLiteral(kind, text, b.or(span)))
}

// Lifetime appends a lifetime. name must include the leading apostrophe.
func (b *Builder) Lifetime(name string) {
	b.LifetimeAt(name, b.Span)
}

// LifetimeAt appends a lifetime with the given span.
func (b *Builder) LifetimeAt(name string, span source.Span) {
	b.stream = append(b.stream, token.NewLifetime(name, b.or(span)))
}

// Group appends a delimited group whose contents are built by body.
func (b *Builder) Group(delim token.Delimiter, body func(*Builder)) {
	b.GroupAt(delim, b.Span, b.Span, body)
}

// GroupAt is like [Builder.Group], with explicit delimiter spans.
func (b *Builder) GroupAt(delim token.Delimiter, open, close source.Span, body func(*Builder)) {
	inner := Builder{Span: b.Span}
	if body != nil {
		body(&inner)
	}
	b.stream = append(b.stream, token.NewGroup(delim, inner.stream, b.or(open), b.or(close)))
}

// Separated renders each element, placing sep between consecutive ones.
func Separated[T ToTokens](b *Builder, elems []T, sep string) {
	for i, e := range elems {
		if i > 0 {
			b.Punct(sep)
		}
		e.ToTokens(b)
	}
}

func (b *Builder) or(span source.Span) source.Span {
	if span.IsZero() {
		return b.Span
	}
	return span
}
