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

// Package cases converts identifiers between case styles.
package cases

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Case is a target case style to convert to.
type Case int

const (
	Snake Case = iota // snake_case
)

// Convert converts str to the given case.
func (c Case) Convert(str string) string {
	buf := new(strings.Builder)
	c.Append(buf, str)
	return buf.String()
}

// Append is like [Case.Convert], but it appends to the given buffer instead.
func (c Case) Append(buf *strings.Builder, str string) {
	first := true
	for word := range Words(str) {
		if !first {
			buf.WriteByte('_')
		}
		buf.WriteString(strings.ToLower(word))
		first = false
	}
}

// Words splits str into words.
//
// Underscores separate words and are dropped. Within a run of letters, a new
// word starts at an uppercase letter followed by a lowercase one (so FOOBar
// is FOO, Bar), or at an uppercase letter that ends the run after a
// lowercase one (FooX is Foo, X).
func Words(str string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for part := range strings.SplitSeq(str, "_") {
			start := 0
			runes := []rune(part)
			offset := 0
			for i, r := range runes {
				if i > 0 && unicode.IsUpper(r) && startsWord(runes, i) {
					if !yield(part[start:offset]) {
						return
					}
					start = offset
				}
				offset += utf8.RuneLen(r)
			}
			if start < len(part) && !yield(part[start:]) {
				return
			}
		}
	}
}

// startsWord reports whether the uppercase rune at i begins a new word.
func startsWord(runes []rune, i int) bool {
	if i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
		return true
	}
	next := i+1 < len(runes) && unicode.IsUpper(runes[i+1])
	return !next && unicode.IsLower(runes[i-1])
}
