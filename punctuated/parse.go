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

package punctuated

import (
	"github.com/synparse/synparse/parse"
	"github.com/synparse/synparse/report"
	"github.com/synparse/synparse/token/keyword"
)

// Separated configures the parsing of a separated sequence.
type Separated[T any] struct {
	// Parses one value.
	Parse parse.Func[T]
	// The separator. Defaults to `,`.
	Sep keyword.Punct
	// What the values are called in diagnostics, such as "generic parameter".
	Name string

	// Whether a separator may follow the last value.
	//
	// When not exhausting the stream, this also lets the sequence end right
	// after a separator if the next value fails to parse without getting
	// past its first token. That value is not consumed.
	Trailing bool
	// Whether the sequence must consume the rest of the stream.
	Exhaust bool
	// Whether at least one value is required.
	NonEmpty bool
	// Ends the sequence when seen where a value or separator could go, such
	// as the `>` that closes a generic parameter list. The stop token is not
	// consumed.
	Stop parse.Peeker
}

// ParseTerminated parses zero or more values separated by sep, with an
// optional trailing separator, consuming the rest of the stream. This is
// the usual way to parse the contents of a delimited group.
func ParseTerminated[T any](s *parse.Stream, f parse.Func[T], sep keyword.Punct) (Punctuated[T], error) {
	return Separated[T]{Parse: f, Sep: sep, Trailing: true, Exhaust: true}.ParseFrom(s)
}

// ParseSeparatedNonempty parses one or more values separated by sep, with no
// trailing separator. It stops at the first value not followed by sep.
func ParseSeparatedNonempty[T any](s *parse.Stream, f parse.Func[T], sep keyword.Punct) (Punctuated[T], error) {
	return Separated[T]{Parse: f, Sep: sep, NonEmpty: true}.ParseFrom(s)
}

// ParseFrom parses a sequence from s according to this configuration.
func (c Separated[T]) ParseFrom(s *parse.Stream) (Punctuated[T], error) {
	sep := c.Sep
	if sep == "" {
		sep = keyword.Comma
	}

	var out Punctuated[T]
	out.setSep(sep)

	stopped := func() bool {
		return s.IsEmpty() || (c.Stop != nil && s.Peek(c.Stop))
	}

	for {
		required := (c.NonEmpty && out.IsEmpty()) || (!c.Trailing && out.Trailing())
		if !required && stopped() {
			break
		}

		start := s.Pos()
		v, err := parse.Parse(s, c.Parse)
		if err != nil {
			stuck := parse.ProgressOf(err) <= start
			if stuck && s.Peek(sep) {
				return out, c.misplacedSep(s, sep, out.IsEmpty())
			}
			if stuck && !required && !c.Exhaust {
				break
			}
			return out, err
		}
		out.PushValue(v)

		if stopped() {
			break
		}
		punct, err := sep.Parse(s)
		if err != nil {
			if c.Exhaust {
				return out, c.expectedSep(s, sep)
			}
			break
		}
		out.PushPunct(punct)
	}

	if c.Exhaust {
		if err := s.ExpectEmpty(); err != nil {
			return out, err
		}
	}
	return out, nil
}

// misplacedSep diagnoses a separator found where a value should be.
func (c Separated[T]) misplacedSep(s *parse.Stream, sep keyword.Punct, leading bool) *report.Error {
	which := "extra"
	if leading {
		which = "leading"
	}
	if c.Name != "" {
		return s.Errorf(report.Unexpected, "expected %s, found %s %s", c.Name, which, sep.Display())
	}
	return s.Errorf(report.Unexpected, "unexpected %s %s", which, sep.Display())
}

func (c Separated[T]) expectedSep(s *parse.Stream, sep keyword.Punct) *report.Error {
	l := s.Lookahead1()
	l.Peek(sep)
	if c.Stop != nil {
		l.Peek(c.Stop)
	}
	return l.Error()
}
