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

package keyword

import (
	"slices"
	"strings"

	"github.com/synparse/synparse/buffer"
	"github.com/synparse/synparse/internal/trie"
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/token"
)

// Words of the language.
const (
	As       Word = "as"
	Async    Word = "async"
	Auto     Word = "auto"
	Await    Word = "await"
	Box      Word = "box"
	Break    Word = "break"
	Const    Word = "const"
	Continue Word = "continue"
	Crate    Word = "crate"
	Default  Word = "default"
	Dyn      Word = "dyn"
	Else     Word = "else"
	Enum     Word = "enum"
	Extern   Word = "extern"
	False    Word = "false"
	Fn       Word = "fn"
	For      Word = "for"
	If       Word = "if"
	Impl     Word = "impl"
	In       Word = "in"
	Let      Word = "let"
	Loop     Word = "loop"
	Match    Word = "match"
	Mod      Word = "mod"
	Move     Word = "move"
	Mut      Word = "mut"
	Pub      Word = "pub"
	Ref      Word = "ref"
	Return   Word = "return"
	SelfType Word = "Self"
	SelfVal  Word = "self"
	Static   Word = "static"
	Struct   Word = "struct"
	Super    Word = "super"
	Trait    Word = "trait"
	True     Word = "true"
	Type     Word = "type"
	Union    Word = "union"
	Unsafe   Word = "unsafe"
	Use      Word = "use"
	Where    Word = "where"
	While    Word = "while"
	Yield    Word = "yield"

	Underscore Word = "_"
)

// Punctuation of the language.
const (
	And       Punct = "&"
	AndAnd    Punct = "&&"
	AndEq     Punct = "&="
	At        Punct = "@"
	Caret     Punct = "^"
	CaretEq   Punct = "^="
	Colon     Punct = ":"
	Comma     Punct = ","
	Dollar    Punct = "$"
	Dot       Punct = "."
	DotDot    Punct = ".."
	DotDotDot Punct = "..."
	DotDotEq  Punct = "..="
	Eq        Punct = "="
	EqEq      Punct = "=="
	FatArrow  Punct = "=>"
	Ge        Punct = ">="
	Gt        Punct = ">"
	Le        Punct = "<="
	Lt        Punct = "<"
	Minus     Punct = "-"
	MinusEq   Punct = "-="
	Ne        Punct = "!="
	Not       Punct = "!"
	Or        Punct = "|"
	OrEq      Punct = "|="
	OrOr      Punct = "||"
	PathSep   Punct = "::"
	Percent   Punct = "%"
	PercentEq Punct = "%="
	Plus      Punct = "+"
	PlusEq    Punct = "+="
	Pound     Punct = "#"
	Question  Punct = "?"
	RArrow    Punct = "->"
	Semi      Punct = ";"
	Shl       Punct = "<<"
	ShlEq     Punct = "<<="
	Shr       Punct = ">>"
	ShrEq     Punct = ">>="
	Slash     Punct = "/"
	SlashEq   Punct = "/="
	Star      Punct = "*"
	StarEq    Punct = "*="
	Tilde     Punct = "~"
)

// Reserved lists the words that can never be used as plain identifiers.
//
// Contextual words such as `union`, `auto` and `default` are not reserved.
var Reserved = []string{
	"_", "abstract", "as", "async", "await", "become", "box", "break",
	"const", "continue", "crate", "do", "dyn", "else", "enum", "extern",
	"false", "final", "fn", "for", "if", "impl", "in", "let", "loop",
	"macro", "match", "mod", "move", "mut", "override", "priv", "pub", "ref",
	"return", "Self", "self", "static", "struct", "super", "trait", "true",
	"try", "type", "typeof", "unsafe", "unsized", "use", "virtual", "where",
	"while", "yield",
}

// Puncts lists every predeclared punctuation spelling.
var Puncts = []Punct{
	And, AndAnd, AndEq, At, Caret, CaretEq, Colon, Comma, Dollar, Dot, DotDot,
	DotDotDot, DotDotEq, Eq, EqEq, FatArrow, Ge, Gt, Le, Lt, Minus,
	MinusEq, Ne, Not, Or, OrEq, OrOr, PathSep, Percent, PercentEq, Plus, PlusEq,
	Pound, Question, RArrow, Semi, Shl, ShlEq, Shr, ShrEq, Slash, SlashEq, Star,
	StarEq, Tilde,
}

var (
	reserved = func() map[string]struct{} {
		m := make(map[string]struct{}, len(Reserved))
		for _, w := range Reserved {
			m[w] = struct{}{}
		}
		return m
	}()

	punctTrie = func() *trie.Trie[Punct] {
		t := new(trie.Trie[Punct])
		for _, p := range Puncts {
			t.Insert(string(p), p)
		}
		return t
	}()
)

// IsReserved returns whether word is a reserved word.
func IsReserved(word string) bool {
	_, ok := reserved[word]
	return ok
}

// Longest finds the longest predeclared punctuation at c, looking only at
// the run of joint punctuation that starts there.
//
// For example, given `..=`, returns [DotDotEq]; given `+-`, returns [Plus].
// Returns false if c is not at punctuation, or none of it is predeclared.
func Longest(c buffer.Cursor) (Token, buffer.Cursor, bool) {
	var run strings.Builder
	var spans []source.Span
	var ends []buffer.Cursor
	for cur := c; ; {
		tok, next, ok := cur.Punct()
		if !ok {
			break
		}
		run.WriteRune(tok.Char())
		spans = append(spans, tok.Span())
		ends = append(ends, next)
		if tok.Spacing() != token.Joint {
			break
		}
		cur = next
	}

	prefix, p := punctTrie.Get(run.String())
	if prefix == "" {
		return Token{}, c, false
	}
	// Every predeclared spelling is ASCII, so bytes are characters.
	n := len(prefix)
	return Token{Text: string(p), Spans: slices.Clip(spans[:n])}, ends[n-1], true
}
