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

// Package lexer turns source text into token trees.
//
// The lexer is deliberately simple: it knows just enough about literals to
// find where they end and leaves validating them to the parser.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/synparse/synparse/report"
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/token"
)

// Lex runs lexical analysis on file and returns its token trees.
//
// Lexing stops at the first malformed token; the returned error is always a
// *[report.Error].
func Lex(file *source.File) (token.Stream, error) {
	l := &lexer{file: file}
	l.frames = append(l.frames, frame{})
	if err := loop(l); err != nil {
		return nil, err
	}
	return l.frames[0].tokens, nil
}

// lexer is the actual lexer book-keeping used in this package.
type lexer struct {
	file   *source.File
	cursor int

	// Open delimited groups. frames[0] is the top level and has a zero
	// delimiter.
	frames []frame
}

type frame struct {
	delim  token.Delimiter
	open   source.Span
	tokens token.Stream
}

// push pushes a new token onto the innermost open group.
func (l *lexer) push(tok token.Token) {
	top := &l.frames[len(l.frames)-1]
	top.tokens = append(top.tokens, tok)
}

// rest returns the remaining unlexed text.
func (l *lexer) rest() string {
	return l.file.Text()[l.cursor:]
}

// done returns whether or not we're done lexing runes.
func (l *lexer) done() bool {
	return l.cursor >= len(l.file.Text())
}

// peek peeks the next character.
//
// Returns -1 if l.done().
func (l *lexer) peek() rune {
	return l.peekAt(0)
}

// peekAt peeks the character n bytes past the cursor.
func (l *lexer) peekAt(n int) rune {
	rest := l.rest()
	if n >= len(rest) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(rest[n:])
	return r
}

// pop consumes the next character.
//
// Returns -1 if l.done().
func (l *lexer) pop() rune {
	r := l.peek()
	if r != -1 {
		l.cursor += utf8.RuneLen(r)
	}
	return r
}

// takeWhile consumes the characters while they match the given function.
// Returns consumed characters.
func (l *lexer) takeWhile(f func(rune) bool) string {
	start := l.cursor
	for !l.done() && f(l.peek()) {
		l.pop()
	}
	return l.file.Text()[start:l.cursor]
}

// seekInclusive seeks until the given needle is found; returns the prefix
// including that needle, and updates the cursor to point after it.
func (l *lexer) seekInclusive(needle string) (string, bool) {
	if idx := strings.Index(l.rest(), needle); idx != -1 {
		prefix := l.rest()[:idx+len(needle)]
		l.cursor += idx + len(needle)
		return prefix, true
	}
	return "", false
}

func (l *lexer) spanFrom(start int) source.Span {
	return l.file.Span(start, l.cursor)
}

func (l *lexer) errorf(start int, format string, args ...any) *report.Error {
	err := report.Errorf(report.Lexical, l.spanFrom(start), format, args...)
	err.Progress = l.cursor
	return err
}

// mustProgress is a helper for ensuring that the lexer makes progress
// in each loop iteration. This is intended for turning infinite loops into
// panics.
type mustProgress struct {
	l    *lexer
	prev int
}

// check panics if the lexer has not advanced since the last call.
func (mp *mustProgress) check() {
	if mp.prev == mp.l.cursor {
		panic("synparse/lexer: lexer failed to make progress")
	}
	mp.prev = mp.l.cursor
}
