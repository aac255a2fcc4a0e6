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

// Package punctuated provides [Punctuated], a sequence of values separated
// by punctuation, and the parsers that produce it.
package punctuated

import (
	"fmt"
	"iter"

	"github.com/synparse/synparse/quote"
	"github.com/synparse/synparse/token/keyword"
)

// Punctuated is a sequence of values of type T separated by punctuation,
// such as the arguments of a call, optionally with a trailing separator.
//
// The values and separators always alternate, starting with a value: if the
// sequence is non-empty, it ends with a value unless [Punctuated.Trailing]
// is true, in which case it ends with a separator.
//
// The zero value is empty and ready to use; its separator is `,`.
type Punctuated[T any] struct {
	pairs []pair[T]
	// The final value, if it is not followed by a separator.
	last *T
	sep  keyword.Punct
}

type pair[T any] struct {
	value T
	punct keyword.Token
}

// Of returns a sequence of values separated by sep, with no trailing
// separator. The separators are synthetic.
func Of[T any](sep keyword.Punct, values ...T) Punctuated[T] {
	var p Punctuated[T]
	p.setSep(sep)
	for _, v := range values {
		p.Push(v)
	}
	return p
}

// Sep returns the separator this sequence uses.
func (p Punctuated[T]) Sep() keyword.Punct {
	if p.sep == "" {
		return keyword.Comma
	}
	return p.sep
}

func (p *Punctuated[T]) setSep(sep keyword.Punct) {
	if sep == keyword.Comma {
		sep = ""
	}
	p.sep = sep
}

// Len returns the number of values.
func (p Punctuated[T]) Len() int {
	n := len(p.pairs)
	if p.last != nil {
		n++
	}
	return n
}

// PunctCount returns the number of separators.
func (p Punctuated[T]) PunctCount() int {
	return len(p.pairs)
}

// IsEmpty returns whether there are no values.
func (p Punctuated[T]) IsEmpty() bool {
	return p.Len() == 0
}

// At returns the nth value. Panics if n is out of bounds.
func (p Punctuated[T]) At(n int) T {
	if n == len(p.pairs) && p.last != nil {
		return *p.last
	}
	return p.pairs[n].value
}

// PunctAt returns the separator after the nth value, or the zero Token if
// there is none.
func (p Punctuated[T]) PunctAt(n int) keyword.Token {
	if n < len(p.pairs) {
		return p.pairs[n].punct
	}
	return keyword.Token{}
}

// Last returns the last value, if there is one.
func (p Punctuated[T]) Last() (T, bool) {
	if p.IsEmpty() {
		var zero T
		return zero, false
	}
	return p.At(p.Len() - 1), true
}

// Trailing returns whether this sequence ends in a separator.
func (p Punctuated[T]) Trailing() bool {
	return p.last == nil && len(p.pairs) > 0
}

// Values returns an iterator over the values.
func (p Punctuated[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range p.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Slice returns the values as a slice.
func (p Punctuated[T]) Slice() []T {
	out := make([]T, 0, p.Len())
	for v := range p.Values() {
		out = append(out, v)
	}
	return out
}

// All returns an iterator over each value together with the separator that
// follows it. The separator is the zero Token for a final value with no
// trailing separator.
func (p Punctuated[T]) All() iter.Seq2[T, keyword.Token] {
	return func(yield func(T, keyword.Token) bool) {
		for _, pair := range p.pairs {
			if !yield(pair.value, pair.punct) {
				return
			}
		}
		if p.last != nil {
			yield(*p.last, keyword.Token{})
		}
	}
}

// PushValue appends a value. Panics if the sequence does not currently end
// in a separator, unless it is empty.
func (p *Punctuated[T]) PushValue(v T) {
	if p.last != nil {
		panic("synparse/punctuated: PushValue called on a sequence ending in a value")
	}
	p.last = &v
}

// PushPunct appends a separator after the last value. Panics if the sequence
// does not end in a value.
func (p *Punctuated[T]) PushPunct(punct keyword.Token) {
	if p.last == nil {
		panic("synparse/punctuated: PushPunct called on a sequence not ending in a value")
	}
	p.pairs = append(p.pairs, pair[T]{value: *p.last, punct: punct})
	p.last = nil
}

// Push appends a value, first appending a synthetic separator if the
// sequence ends in a value.
func (p *Punctuated[T]) Push(v T) {
	if p.last != nil {
		p.PushPunct(keyword.Token{Text: string(p.Sep())})
	}
	p.PushValue(v)
}

// Valid reports whether the alternation of values and separators holds.
func (p Punctuated[T]) Valid() bool {
	for _, pair := range p.pairs {
		if pair.punct.IsZero() {
			return false
		}
	}
	return p.Len() == p.PunctCount() || p.Len() == p.PunctCount()+1
}

// ToTokens implements [quote.ToTokens].
//
// Panics if T does not implement [quote.ToTokens].
func (p Punctuated[T]) ToTokens(b *quote.Builder) {
	for v, punct := range p.All() {
		toTokens(b, v)
		if !punct.IsZero() {
			punct.ToTokens(b)
		}
	}
}

func toTokens(b *quote.Builder, v any) {
	t, ok := v.(quote.ToTokens)
	if !ok {
		panic(fmt.Sprintf("synparse/punctuated: %T does not implement quote.ToTokens", v))
	}
	b.Append(t)
}
