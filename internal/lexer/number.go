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

// lexNumber lexes an integer or float literal, including its suffix.
//
// Suffixes are not validated here; any identifier glued to the digits is
// taken as the suffix.
func lexNumber(l *lexer) error {
	start := l.cursor
	kind := token.Int

	base := byte(10)
	if l.peek() == '0' {
		switch l.peekAt(1) {
		case 'x':
			base = 16
		case 'o':
			base = 8
		case 'b':
			base = 2
		}
	}

	if base != 10 {
		l.cursor += 2
		digits := l.takeWhile(func(r rune) bool {
			_, ok := unicodex.Digit(r, base)
			return ok || r == '_'
		})
		if strings.Trim(digits, "_") == "" {
			return l.errorf(start, "no valid digits found for number")
		}
	} else {
		l.takeWhile(isDecimal)

		// A dot continues the number unless it begins a range (1..2), a
		// method call or field access (1.max(2)).
		if l.peek() == '.' {
			next := l.peekAt(1)
			if next != '.' && !unicodex.IsXIDStart(next) {
				l.pop()
				kind = token.Float
				if next >= '0' && next <= '9' {
					l.takeWhile(isDecimal)
				}
			}
		}

		if exponentAhead(l) {
			l.pop()
			if r := l.peek(); r == '+' || r == '-' {
				l.pop()
			}
			l.takeWhile(isDecimal)
			kind = token.Float
		}
	}

	suffixStart := l.cursor
	if unicodex.IsXIDStart(l.peek()) {
		l.takeWhile(unicodex.IsXIDContinue)
	}
	if base == 10 {
		switch l.file.Text()[suffixStart:l.cursor] {
		case "f32", "f64":
			kind = token.Float
		}
	}

	span := l.spanFrom(start)
	l.push(token.NewLiteral(kind, span.Text(), span))
	return nil
}

// exponentAhead returns whether the cursor is at an exponent such as e10,
// E+3 or e-1_0, as opposed to a suffix that happens to start with e.
func exponentAhead(l *lexer) bool {
	if r := l.peek(); r != 'e' && r != 'E' {
		return false
	}
	next := 1
	if r := l.peekAt(1); r == '+' || r == '-' {
		next = 2
	}
	for {
		r := l.peekAt(next)
		switch {
		case r == '_':
			next++
		case r >= '0' && r <= '9':
			return true
		default:
			return false
		}
	}
}

func isDecimal(r rune) bool {
	return (r >= '0' && r <= '9') || r == '_'
}
