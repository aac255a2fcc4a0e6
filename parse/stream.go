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

package parse

import (
	"fmt"

	"github.com/synparse/synparse/buffer"
	"github.com/synparse/synparse/report"
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/token"
)

// Func is a parser for values of type T: it parses one T at the current
// position of a stream, or fails.
//
// A Func may leave the stream partially consumed when it fails; use [Parse]
// to call it so that failures never consume.
type Func[T any] func(*Stream) (T, error)

// Stream is the cursor of a parse in progress, limited to one scope: either
// a whole buffer or the contents of one delimited group.
//
// Streams are cheap to copy with [Stream.Fork]; a fork never affects its
// parent unless it is committed with [Stream.AdvanceTo].
type Stream struct {
	cur buffer.Cursor
	// The span to blame for running out of tokens in this scope.
	eof source.Span
}

// New creates a stream over a whole buffer. eof is the span used for
// "unexpected end of input" diagnostics, typically [source.File.EOF].
func New(buf *buffer.Buffer, eof source.Span) *Stream {
	return &Stream{cur: buf.Begin(), eof: eof}
}

// Parse runs f on a fork of s and commits the fork only if f succeeds.
//
// On failure, s is left exactly where it was.
func Parse[T any](s *Stream, f Func[T]) (T, error) {
	fork := s.Fork()
	v, err := f(fork)
	if err != nil {
		var zero T
		return zero, err
	}
	s.AdvanceTo(fork)
	return v, nil
}

// ParseAll parses a T from the whole of buf, which must be fully consumed.
func ParseAll[T any](buf *buffer.Buffer, eof source.Span, f Func[T]) (T, error) {
	s := New(buf, eof)
	v, err := f(s)
	if err == nil {
		err = s.ExpectEmpty()
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Cursor returns the current cursor of this stream.
func (s *Stream) Cursor() buffer.Cursor {
	return s.cur
}

// Pos returns the position of this stream's cursor; see [buffer.Cursor.Pos].
func (s *Stream) Pos() int {
	return s.cur.Pos()
}

// IsEmpty returns whether there are no tokens left in this stream's scope.
func (s *Stream) IsEmpty() bool {
	return s.cur.Eof()
}

// Fork returns an independent copy of this stream.
func (s *Stream) Fork() *Stream {
	fork := *s
	return &fork
}

// AdvanceTo commits a fork of s, moving s to the fork's position.
//
// Panics if fork does not walk the same scope as s: forks must be committed
// to the stream they were forked from, or another fork of it.
func (s *Stream) AdvanceTo(fork *Stream) {
	if !s.cur.SameScope(fork.cur) {
		panic("synparse/parse: AdvanceTo called with a fork of a different stream")
	}
	s.cur = fork.cur
}

// Peek returns whether the next token matches p, without consuming it.
func (s *Stream) Peek(p Peeker) bool {
	return p.Peek(s.cur)
}

// Peek2 is like [Stream.Peek], but looks at the token after the next one.
func (s *Stream) Peek2(p Peeker) bool {
	return p.Peek(s.cur.Bump())
}

// Peek3 is like [Stream.Peek], but looks two tokens past the next one.
func (s *Stream) Peek3(p Peeker) bool {
	return p.Peek(s.cur.Bump().Bump())
}

// Token returns the next token tree without consuming it.
func (s *Stream) Token() (token.Token, bool) {
	return s.cur.Token()
}

// TokenTree consumes and returns the next token tree: a single leaf token or
// a whole group.
func (s *Stream) TokenTree() (token.Token, error) {
	tok, ok := s.cur.Token()
	if !ok {
		return token.Token{}, s.Unexpected("a token")
	}
	s.cur = s.cur.Bump()
	return tok, nil
}

// Rest consumes and returns every remaining token in this scope.
func (s *Stream) Rest() token.Stream {
	rest := s.cur.Rest()
	for !s.cur.Eof() {
		s.cur = s.cur.Bump()
	}
	return rest
}

// Span returns the span of the next token, or the span to blame for the end
// of this scope if there are no tokens left.
func (s *Stream) Span() source.Span {
	span := s.cur.Span()
	if span.IsZero() {
		return s.eof
	}
	return span
}

// Errorf returns a new error anchored at the next token.
func (s *Stream) Errorf(kind report.Kind, format string, args ...any) *report.Error {
	return s.ErrorAt(s.Span(), kind, format, args...)
}

// ErrorAt returns a new error anchored at the span of an already-parsed
// value.
func (s *Stream) ErrorAt(at source.Spanner, kind report.Kind, format string, args ...any) *report.Error {
	span := source.GetSpan(at)
	if span.IsZero() {
		span = s.eof
	}
	err := report.Errorf(kind, span, format, args...)
	err.Progress = s.cur.Pos()
	return err
}

// Unexpected returns an error saying that something described by expected
// was wanted at the next token, but was not found.
//
// At the end of the scope this is an [report.UnexpectedEOF] error.
func (s *Stream) Unexpected(expected string) *report.Error {
	tok, ok := s.cur.Token()
	if !ok {
		return s.Errorf(report.UnexpectedEOF, "unexpected end of input, expected %s", expected)
	}
	return s.Errorf(report.Unexpected, "expected %s, found %s", expected, tok.Describe())
}

// ExpectEmpty returns an error if there are tokens left in this stream.
func (s *Stream) ExpectEmpty() error {
	tok, ok := s.cur.Token()
	if !ok {
		return nil
	}
	return s.Errorf(report.Trailing, "unexpected token %s", tok.Describe())
}

// Step runs a cursor-level parser at the current position and, if it
// succeeds, moves s to the cursor it returns.
//
// The returned cursor must be in the same scope as the one passed in.
func Step[T any](s *Stream, fn func(buffer.Cursor) (T, buffer.Cursor, error)) (T, error) {
	v, next, err := fn(s.cur)
	if err != nil {
		var zero T
		return zero, err
	}
	if !next.SameScope(s.cur) {
		panic(fmt.Sprintf("synparse/parse: Step returned a cursor from another scope (at %d)", next.Pos()))
	}
	s.cur = next
	return v, nil
}
