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
	"unicode"

	"github.com/synparse/synparse/internal/ext/unicodex"
	"github.com/synparse/synparse/report"
	"github.com/synparse/synparse/token"
)

// punctChars are the characters that lex as [token.Punct].
const punctChars = "~!@#$%^&*-=+|;:,.<>/?"

// loop is the main loop of the lexer. Each iteration examines the next rune
// in the source file to determine what action to take.
func loop(l *lexer) error {
	mp := mustProgress{l, -1}
	for !l.done() {
		mp.check()
		start := l.cursor
		r := l.peek()

		switch {
		case unicode.In(r, unicode.Pattern_White_Space):
			l.takeWhile(func(r rune) bool {
				return unicode.In(r, unicode.Pattern_White_Space)
			})

		case strings.HasPrefix(l.rest(), "//"):
			if _, ok := l.seekInclusive("\n"); !ok {
				l.cursor = len(l.file.Text())
			}

		case strings.HasPrefix(l.rest(), "/*"):
			if err := lexBlockComment(l); err != nil {
				return err
			}

		case r == '"' || r == '\'' || startsPrefixedLiteral(l):
			if err := lexQuoted(l); err != nil {
				return err
			}

		case r >= '0' && r <= '9':
			if err := lexNumber(l); err != nil {
				return err
			}

		case unicodex.IsXIDStart(r):
			if strings.HasPrefix(l.rest(), "r#") && unicodex.IsXIDStart(l.peekAt(2)) {
				l.cursor += 2
			}
			l.takeWhile(unicodex.IsXIDContinue)
			l.push(token.NewIdent(l.spanFrom(start).Text(), l.spanFrom(start)))

		case strings.ContainsRune("([{", r):
			l.pop()
			delim, _ := token.DelimiterFor(r)
			l.frames = append(l.frames, frame{delim: delim, open: l.spanFrom(start)})

		case strings.ContainsRune(")]}", r):
			l.pop()
			if err := closeGroup(l, r, start); err != nil {
				return err
			}

		case strings.ContainsRune(punctChars, r):
			l.pop()
			spacing := token.Alone
			if next := l.peek(); next != -1 && strings.ContainsRune(punctChars, next) &&
				!strings.HasPrefix(l.rest(), "//") && !strings.HasPrefix(l.rest(), "/*") {
				spacing = token.Joint
			}
			l.push(token.NewPunct(r, spacing, l.spanFrom(start)))

		default:
			l.pop()
			return l.errorf(start, "unrecognized character %q", r)
		}
	}

	if len(l.frames) > 1 {
		top := l.frames[len(l.frames)-1]
		err := report.Errorf(report.UnexpectedEOF, top.open,
			"unclosed delimiter `%c`", top.delim.Open())
		err.Progress = l.cursor
		return err.WithNote("expected `%c` before the end of the file", top.delim.Close())
	}
	return nil
}

// closeGroup handles a closing delimiter, fusing the innermost open group
// into a single group token.
func closeGroup(l *lexer, r rune, start int) error {
	delim, _ := token.DelimiterFor(r)
	closeSpan := l.spanFrom(start)
	if len(l.frames) == 1 {
		return l.errorf(start, "unexpected closing delimiter `%c`", r)
	}

	top := l.frames[len(l.frames)-1]
	if top.delim != delim {
		err := report.Errorf(report.Unexpected, top.open,
			"mismatched closing delimiter: `%c` is closed by `%c`", top.delim.Open(), r)
		err.Progress = l.cursor
		closer := report.Errorf(report.Unexpected, closeSpan,
			"`%c` closed here, expected `%c`", r, top.delim.Close())
		closer.Progress = l.cursor
		err.Combine(closer)
		return err
	}

	l.frames = l.frames[:len(l.frames)-1]
	l.push(token.NewGroup(delim, top.tokens, top.open, closeSpan))
	return nil
}

// lexBlockComment skips a possibly nested block comment.
func lexBlockComment(l *lexer) error {
	start := l.cursor
	depth := 0
	for !l.done() {
		switch {
		case strings.HasPrefix(l.rest(), "/*"):
			l.cursor += 2
			depth++
		case strings.HasPrefix(l.rest(), "*/"):
			l.cursor += 2
			depth--
			if depth == 0 {
				return nil
			}
		default:
			l.pop()
		}
	}

	l.cursor = start + 2
	return l.errorf(start, "unterminated block comment")
}
