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

package lexer

import (
	"strings"

	"github.com/synparse/synparse/internal/ext/unicodex"
	"github.com/synparse/synparse/token"
)

// startsPrefixedLiteral returns whether the cursor is at a b"", b'', r"",
// r#""#, br"" or br#""# literal.
func startsPrefixedLiteral(l *lexer) bool {
	rest := l.rest()
	switch {
	case strings.HasPrefix(rest, `b"`), strings.HasPrefix(rest, `b'`):
		return true
	case strings.HasPrefix(rest, "br"):
		return isRawStart(rest[2:])
	case strings.HasPrefix(rest, "r"):
		return isRawStart(rest[1:])
	}
	return false
}

// isRawStart returns whether s (just after the r) begins a raw string
// delimiter: some number of #, then ".
func isRawStart(s string) bool {
	s = strings.TrimLeft(s, "#")
	return strings.HasPrefix(s, `"`)
}

// lexQuoted lexes a string, character, byte or lifetime token.
func lexQuoted(l *lexer) error {
	start := l.cursor

	byteLit := false
	if l.peek() == 'b' {
		byteLit = true
		l.pop()
	}

	switch l.peek() {
	case 'r':
		l.pop()
		if err := lexRawString(l, start); err != nil {
			return err
		}
		kind := token.RawStr
		if byteLit {
			kind = token.RawByteStr
		}
		return finishLiteral(l, start, kind)

	case '"':
		l.pop()
		if err := lexEscaped(l, start, '"'); err != nil {
			return err
		}
		kind := token.Str
		if byteLit {
			kind = token.ByteStr
		}
		return finishLiteral(l, start, kind)

	case '\'':
		if byteLit {
			l.pop()
			if err := lexEscaped(l, start, '\''); err != nil {
				return err
			}
			return finishLiteral(l, start, token.Byte)
		}
		return lexCharOrLifetime(l, start)
	}

	return l.errorf(start, "unrecognized literal prefix")
}

// lexCharOrLifetime disambiguates 'a' from 'a.
func lexCharOrLifetime(l *lexer, start int) error {
	l.pop() // '

	next := l.peek()
	if next == '\\' {
		if err := lexEscaped(l, start, '\''); err != nil {
			return err
		}
		return finishLiteral(l, start, token.Char)
	}

	if unicodex.IsXIDStart(next) {
		l.takeWhile(unicodex.IsXIDContinue)
		// 'a' is a character; 'ab' is a lifetime followed by garbage, which
		// the next iteration reports.
		if l.peek() == '\'' && l.cursor-start-1 == len(string(next)) {
			l.pop()
			return finishLiteral(l, start, token.Char)
		}
		l.push(token.NewLifetime(l.spanFrom(start).Text(), l.spanFrom(start)))
		return nil
	}

	if next == -1 || next == '\n' || next == '\'' {
		return l.errorf(start, "empty or unterminated character literal")
	}
	l.pop()
	if l.peek() != '\'' {
		return l.errorf(start, "unterminated character literal")
	}
	l.pop()
	return finishLiteral(l, start, token.Char)
}

// lexEscaped consumes the body of a quoted literal up to and including the
// closing quote, skipping over backslash escapes.
func lexEscaped(l *lexer, start int, quote rune) error {
	for !l.done() {
		switch l.pop() {
		case '\\':
			if l.pop() == -1 {
				break
			}
		case quote:
			return nil
		case '\n':
			if quote == '\'' {
				return l.errorf(start, "unterminated character literal")
			}
		}
	}
	if quote == '\'' {
		return l.errorf(start, "unterminated character literal")
	}
	return l.errorf(start, "unterminated string literal")
}

// lexRawString consumes the rest of a raw string; the cursor is just past
// the r.
func lexRawString(l *lexer, start int) error {
	hashes := l.takeWhile(func(r rune) bool { return r == '#' })
	if l.pop() != '"' {
		return l.errorf(start, "expected `\"` to begin raw string")
	}
	if _, ok := l.seekInclusive(`"` + hashes); !ok {
		l.cursor = len(l.file.Text())
		return l.errorf(start, "unterminated raw string literal")
	}
	return nil
}

// finishLiteral consumes an optional identifier suffix and pushes a literal
// token.
func finishLiteral(l *lexer, start int, kind token.LitKind) error {
	if unicodex.IsXIDStart(l.peek()) {
		l.takeWhile(unicodex.IsXIDContinue)
	}
	span := l.spanFrom(start)
	l.push(token.NewLiteral(kind, span.Text(), span))
	return nil
}
