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

// Package keyword defines tokens that are matched by their spelling: words
// such as `fn` and `where`, and punctuation such as `::` and `..=`.
//
// A [Word] matches one identifier token. A [Punct] matches a run of
// punctuation tokens, each one but the last [token.Joint], whose characters
// spell it. Both are [parse.Peeker]s, parse into a [Token] that remembers
// where it came from, and render back into the tokens they were parsed from.
//
// Grammars that need spellings of their own declare them with [Custom] and
// [CustomPunct]:
//
//	type unionSpelling struct{}
//
//	func (unionSpelling) Spelling() string { return "union" }
//
//	type Union = keyword.Custom[unionSpelling]
//
// after which Union{} can be peeked for and Union{}.Parse(s) parses one.
package keyword

import (
	"slices"
	"unicode/utf8"

	"github.com/synparse/synparse/buffer"
	"github.com/synparse/synparse/internal/ext/unicodex"
	"github.com/synparse/synparse/parse"
	"github.com/synparse/synparse/quote"
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/token"
)

// Token is a word or punctuation that has been parsed.
//
// The zero Token means "absent": it renders as nothing. This makes it
// convenient for optional tokens such as `mut`.
type Token struct {
	Text string
	// One span per character for punctuation; a single span for words.
	Spans []source.Span
}

// IsZero returns whether this token is absent.
func (t Token) IsZero() bool {
	return t.Text == ""
}

// Span implements [source.Spanner].
func (t Token) Span() source.Span {
	return source.JoinSeq(slices.Values(t.Spans))
}

// ToTokens implements [quote.ToTokens].
func (t Token) ToTokens(b *quote.Builder) {
	if t.IsZero() {
		return
	}
	if isWord(t.Text) {
		var span source.Span
		if len(t.Spans) > 0 {
			span = t.Spans[0]
		}
		b.IdentAt(t.Text, span)
		return
	}
	b.PunctAt(t.Text, t.Spans...)
}

// Word is a keyword-like token, which matches an identifier with exactly
// this text.
type Word string

var _ parse.Peeker = Word("")

// Peek implements [parse.Peeker].
func (w Word) Peek(c buffer.Cursor) bool {
	_, _, ok := w.match(c)
	return ok
}

// Display implements [parse.Peeker].
func (w Word) Display() string {
	return "`" + string(w) + "`"
}

// Parse consumes this word.
func (w Word) Parse(s *parse.Stream) (Token, error) {
	return parse.Step(s, func(c buffer.Cursor) (Token, buffer.Cursor, error) {
		tok, next, ok := w.match(c)
		if !ok {
			return Token{}, c, s.Unexpected(w.Display())
		}
		return tok, next, nil
	})
}

// Maybe consumes this word if it is next, and otherwise returns the zero
// Token without consuming anything.
func (w Word) Maybe(s *parse.Stream) Token {
	return maybe(s, w.match)
}

func (w Word) match(c buffer.Cursor) (Token, buffer.Cursor, bool) {
	tok, next, ok := c.Ident()
	if !ok || tok.Text() != string(w) {
		return Token{}, c, false
	}
	return Token{Text: string(w), Spans: []source.Span{tok.Span()}}, next, true
}

// Punct is a punctuation-like token, which matches consecutive punctuation
// tokens spelling it.
//
// The last character may itself be joint to further punctuation: `<`
// matches the first half of `<<`. Use [Longest] to find the whole operator
// at a position instead.
type Punct string

var _ parse.Peeker = Punct("")

// Peek implements [parse.Peeker].
func (p Punct) Peek(c buffer.Cursor) bool {
	_, _, ok := p.match(c)
	return ok
}

// Display implements [parse.Peeker].
func (p Punct) Display() string {
	return "`" + string(p) + "`"
}

// Parse consumes this punctuation.
func (p Punct) Parse(s *parse.Stream) (Token, error) {
	return parse.Step(s, func(c buffer.Cursor) (Token, buffer.Cursor, error) {
		tok, next, ok := p.match(c)
		if !ok {
			return Token{}, c, s.Unexpected(p.Display())
		}
		return tok, next, nil
	})
}

// Maybe consumes this punctuation if it is next, and otherwise returns the
// zero Token without consuming anything.
func (p Punct) Maybe(s *parse.Stream) Token {
	return maybe(s, p.match)
}

func (p Punct) match(c buffer.Cursor) (Token, buffer.Cursor, bool) {
	n := utf8.RuneCountInString(string(p))
	if n == 0 {
		return Token{}, c, false
	}

	spans := make([]source.Span, 0, n)
	next := c
	i := 0
	for _, r := range string(p) {
		tok, after, ok := next.Punct()
		if !ok || tok.Char() != r {
			return Token{}, c, false
		}
		if i < n-1 && tok.Spacing() != token.Joint {
			return Token{}, c, false
		}
		spans = append(spans, tok.Span())
		next = after
		i++
	}
	return Token{Text: string(p), Spans: spans}, next, true
}

// Spelling names a custom token. Implementations are zero-size marker
// types; see [Custom].
type Spelling interface {
	Spelling() string
}

// Custom is a keyword-like token declared by a grammar, spelled by S.
//
// The zero value is the peeker; parsed values carry their span.
type Custom[S Spelling] struct {
	At source.Span
}

// Spelling returns how this token is spelled.
func (Custom[S]) Spelling() string {
	var s S
	return s.Spelling()
}

// Peek implements [parse.Peeker].
func (c Custom[S]) Peek(cur buffer.Cursor) bool {
	return Word(c.Spelling()).Peek(cur)
}

// Display implements [parse.Peeker].
func (c Custom[S]) Display() string {
	return Word(c.Spelling()).Display()
}

// Parse consumes this token.
func (c Custom[S]) Parse(s *parse.Stream) (Custom[S], error) {
	tok, err := Word(c.Spelling()).Parse(s)
	if err != nil {
		return Custom[S]{}, err
	}
	return Custom[S]{At: tok.Spans[0]}, nil
}

// Span implements [source.Spanner].
func (c Custom[S]) Span() source.Span {
	return c.At
}

// ToTokens implements [quote.ToTokens].
func (c Custom[S]) ToTokens(b *quote.Builder) {
	b.IdentAt(c.Spelling(), c.At)
}

// CustomPunct is a punctuation-like token declared by a grammar, spelled by
// S.
type CustomPunct[S Spelling] struct {
	Spans []source.Span
}

// Spelling returns how this token is spelled.
func (CustomPunct[S]) Spelling() string {
	var s S
	return s.Spelling()
}

// Peek implements [parse.Peeker].
func (c CustomPunct[S]) Peek(cur buffer.Cursor) bool {
	return Punct(c.Spelling()).Peek(cur)
}

// Display implements [parse.Peeker].
func (c CustomPunct[S]) Display() string {
	return Punct(c.Spelling()).Display()
}

// Parse consumes this token.
func (c CustomPunct[S]) Parse(s *parse.Stream) (CustomPunct[S], error) {
	tok, err := Punct(c.Spelling()).Parse(s)
	if err != nil {
		return CustomPunct[S]{}, err
	}
	return CustomPunct[S]{Spans: tok.Spans}, nil
}

// Span implements [source.Spanner].
func (c CustomPunct[S]) Span() source.Span {
	return Token{Text: c.Spelling(), Spans: c.Spans}.Span()
}

// ToTokens implements [quote.ToTokens].
func (c CustomPunct[S]) ToTokens(b *quote.Builder) {
	b.PunctAt(c.Spelling(), c.Spans...)
}

func isWord(text string) bool {
	r, _ := utf8.DecodeRuneInString(text)
	return unicodex.IsXIDStart(r)
}

func maybe(s *parse.Stream, match func(buffer.Cursor) (Token, buffer.Cursor, bool)) Token {
	tok, _ := parse.Step(s, func(c buffer.Cursor) (Token, buffer.Cursor, error) {
		tok, next, _ := match(c)
		return tok, next, nil
	})
	return tok
}
