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

	"github.com/synparse/synparse/token"
)

// Enter consumes a group with the given delimiter and returns a stream over
// its contents, along with the group token itself.
//
// The caller is responsible for consuming the whole inner stream; see
// [Stream.ExpectEmpty].
func (s *Stream) Enter(delim token.Delimiter) (*Stream, token.Token, error) {
	inside, after, group, ok := s.cur.Group(delim)
	if !ok {
		return nil, token.Token{}, s.Unexpected(fmt.Sprintf("`%c`", delim.Open()))
	}
	s.cur = after
	return &Stream{cur: inside, eof: group.CloseSpan()}, group, nil
}

// Delimited parses the contents of a group with the given delimiter with f,
// requiring f to consume all of them.
//
// Returns the group token, which carries the delimiter spans. s only
// advances past the group if parsing succeeds.
func Delimited[T any](s *Stream, delim token.Delimiter, f Func[T]) (T, token.Token, error) {
	var zero T
	fork := s.Fork()
	inner, group, err := fork.Enter(delim)
	if err != nil {
		return zero, token.Token{}, err
	}

	v, err := f(inner)
	if err == nil {
		err = inner.ExpectEmpty()
	}
	if err != nil {
		return zero, token.Token{}, err
	}

	s.AdvanceTo(fork)
	return v, group, nil
}

// Parenthesized parses ( ... ) with f; see [Delimited].
func Parenthesized[T any](s *Stream, f Func[T]) (T, token.Token, error) {
	return Delimited(s, token.Parens, f)
}

// Bracketed parses [ ... ] with f; see [Delimited].
func Bracketed[T any](s *Stream, f Func[T]) (T, token.Token, error) {
	return Delimited(s, token.Brackets, f)
}

// Braced parses { ... } with f; see [Delimited].
func Braced[T any](s *Stream, f Func[T]) (T, token.Token, error) {
	return Delimited(s, token.Braces, f)
}
