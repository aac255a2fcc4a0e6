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

package ast

import (
	"fmt"
	"math/big"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/synparse/synparse/buffer"
	"github.com/synparse/synparse/internal/ext/unicodex"
	"github.com/synparse/synparse/parse"
	"github.com/synparse/synparse/quote"
	"github.com/synparse/synparse/report"
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/token"
)

// Lit is a literal: a string, byte string, byte, character, integer, float
// or boolean.
//
// Except for booleans, literals keep their source text verbatim, suffix
// included, so that they render back exactly as written.
type Lit interface {
	Node
	Kind() LitKind
	isLit()
}

// LitStr is a string literal, "text" or r#"text"#.
type LitStr struct {
	Text string
	At   source.Span
}

// LitByteStr is a byte string literal, b"text" or br#"text"#.
type LitByteStr struct {
	Text string
	At   source.Span
}

// LitByte is a byte literal, b'x'.
type LitByte struct {
	Text string
	At   source.Span
}

// LitChar is a character literal, 'x'.
type LitChar struct {
	Text string
	At   source.Span
}

// LitInt is an integer literal such as 42, 0xff_u8 or 1_000i64.
type LitInt struct {
	Text string
	At   source.Span
}

// LitFloat is a floating-point literal such as 1.5, 2e10 or 3f32.
type LitFloat struct {
	Text string
	At   source.Span
}

// LitBool is `true` or `false`.
type LitBool struct {
	Value bool
	At    source.Span
}

func (*LitStr) Kind() LitKind     { return LitKindStr }
func (*LitByteStr) Kind() LitKind { return LitKindByteStr }
func (*LitByte) Kind() LitKind    { return LitKindByte }
func (*LitChar) Kind() LitKind    { return LitKindChar }
func (*LitInt) Kind() LitKind     { return LitKindInt }
func (*LitFloat) Kind() LitKind   { return LitKindFloat }
func (*LitBool) Kind() LitKind    { return LitKindBool }

func (*LitStr) isLit()     {}
func (*LitByteStr) isLit() {}
func (*LitByte) isLit()    {}
func (*LitChar) isLit()    {}
func (*LitInt) isLit()     {}
func (*LitFloat) isLit()   {}
func (*LitBool) isLit()    {}

func (l *LitStr) Span() source.Span     { return l.At }
func (l *LitByteStr) Span() source.Span { return l.At }
func (l *LitByte) Span() source.Span    { return l.At }
func (l *LitChar) Span() source.Span    { return l.At }
func (l *LitInt) Span() source.Span     { return l.At }
func (l *LitFloat) Span() source.Span   { return l.At }
func (l *LitBool) Span() source.Span    { return l.At }

// ToTokens implements [quote.ToTokens].
func (l *LitStr) ToTokens(b *quote.Builder) {
	kind := token.Str
	if strings.HasPrefix(l.Text, "r") {
		kind = token.RawStr
	}
	b.LiteralAt(kind, l.Text, l.At)
}

// ToTokens implements [quote.ToTokens].
func (l *LitByteStr) ToTokens(b *quote.Builder) {
	kind := token.ByteStr
	if strings.HasPrefix(l.Text, "br") {
		kind = token.RawByteStr
	}
	b.LiteralAt(kind, l.Text, l.At)
}

// ToTokens implements [quote.ToTokens].
func (l *LitByte) ToTokens(b *quote.Builder) { b.LiteralAt(token.Byte, l.Text, l.At) }

// ToTokens implements [quote.ToTokens].
func (l *LitChar) ToTokens(b *quote.Builder) { b.LiteralAt(token.Char, l.Text, l.At) }

// ToTokens implements [quote.ToTokens].
func (l *LitInt) ToTokens(b *quote.Builder) { b.LiteralAt(token.Int, l.Text, l.At) }

// ToTokens implements [quote.ToTokens].
func (l *LitFloat) ToTokens(b *quote.Builder) { b.LiteralAt(token.Float, l.Text, l.At) }

// ToTokens implements [quote.ToTokens].
func (l *LitBool) ToTokens(b *quote.Builder) {
	b.IdentAt(strconv.FormatBool(l.Value), l.At)
}

// NewLitInt returns a synthetic unsuffixed integer literal.
func NewLitInt(v uint64) *LitInt {
	return &LitInt{Text: strconv.FormatUint(v, 10)}
}

// NewLitStr returns a synthetic string literal with the given value.
func NewLitStr(v string) *LitStr {
	return &LitStr{Text: strconv.Quote(v)}
}

var (
	intSuffixes = []string{
		"i8", "i16", "i32", "i64", "i128", "isize",
		"u8", "u16", "u32", "u64", "u128", "usize",
	}
	floatSuffixes = []string{"f32", "f64"}
)

// Digits returns the digits of this literal, without base prefix,
// underscores or suffix.
func (l *LitInt) Digits() string {
	digits, _, _ := splitInt(l.Text)
	return digits
}

// Suffix returns the type suffix, such as "u8", or "".
func (l *LitInt) Suffix() string {
	_, suffix, _ := splitInt(l.Text)
	return suffix
}

// Base returns the base of this literal: 2, 8, 10 or 16.
func (l *LitInt) Base() int {
	_, _, base := splitInt(l.Text)
	return base
}

// Value returns the value of this literal, which may not fit in any
// fixed-size integer type.
func (l *LitInt) Value() (*big.Int, bool) {
	return new(big.Int).SetString(l.Digits(), l.Base())
}

// Suffix returns the type suffix, such as "f32", or "".
func (l *LitFloat) Suffix() string {
	_, suffix := splitFloat(l.Text)
	return suffix
}

// Value returns the value of this literal as a float64.
func (l *LitFloat) Value() (float64, error) {
	digits, _ := splitFloat(l.Text)
	return strconv.ParseFloat(strings.ReplaceAll(digits, "_", ""), 64)
}

// Value returns the contents of this string, with escapes processed.
func (l *LitStr) Value() (string, error) {
	return unquote(l.Text)
}

// Value returns the contents of this byte string, with escapes processed.
func (l *LitByteStr) Value() ([]byte, error) {
	v, err := unquote(strings.TrimPrefix(l.Text, "b"))
	return []byte(v), err
}

// Value returns the byte this literal denotes.
func (l *LitByte) Value() (byte, error) {
	v, err := unquote(strings.TrimPrefix(l.Text, "b"))
	if err != nil {
		return 0, err
	}
	if len(v) != 1 {
		return 0, fmt.Errorf("byte literal %s is not exactly one byte", l.Text)
	}
	return v[0], nil
}

// Value returns the character this literal denotes.
func (l *LitChar) Value() (rune, error) {
	v, err := unquote(l.Text)
	if err != nil {
		return 0, err
	}
	r, n := utf8.DecodeRuneInString(v)
	if n != len(v) || r == utf8.RuneError {
		return 0, fmt.Errorf("character literal %s is not exactly one character", l.Text)
	}
	return r, nil
}

// ParseLit parses a literal, including `true` and `false`.
//
// Literals with a suffix that is not valid for their kind, such as 1u7 or
// "x"y, are rejected.
func ParseLit(s *parse.Stream) (Lit, error) {
	return parse.Step(s, func(c buffer.Cursor) (Lit, buffer.Cursor, error) {
		if tok, next, ok := c.Ident(); ok {
			switch tok.Text() {
			case "true", "false":
				return &LitBool{Value: tok.Text() == "true", At: tok.Span()}, next, nil
			}
		}

		tok, next, ok := c.Literal()
		if !ok {
			return nil, c, s.Unexpected("literal")
		}

		text, span := tok.Text(), tok.Span()
		var lit Lit
		var suffix string
		switch tok.LitKind() {
		case token.Int:
			lit = &LitInt{Text: text, At: span}
			_, suffix, _ = splitInt(text)
			if suffix != "" && !slices.Contains(intSuffixes, suffix) {
				return nil, c, s.Errorf(report.Malformed, "invalid suffix `%s` for integer literal", suffix)
			}
		case token.Float:
			lit = &LitFloat{Text: text, At: span}
			_, suffix = splitFloat(text)
			if suffix != "" && !slices.Contains(floatSuffixes, suffix) {
				return nil, c, s.Errorf(report.Malformed, "invalid suffix `%s` for float literal", suffix)
			}
		case token.Str, token.RawStr:
			lit = &LitStr{Text: text, At: span}
			suffix = quotedSuffix(text)
		case token.ByteStr, token.RawByteStr:
			lit = &LitByteStr{Text: text, At: span}
			suffix = quotedSuffix(text)
		case token.Byte:
			lit = &LitByte{Text: text, At: span}
			suffix = quotedSuffix(text)
		case token.Char:
			lit = &LitChar{Text: text, At: span}
			suffix = quotedSuffix(text)
		}

		switch lit.(type) {
		case nil:
			return nil, c, s.Unexpected("literal")
		case *LitInt, *LitFloat:
		default:
			if suffix != "" {
				return nil, c, s.Errorf(report.Malformed, "invalid suffix `%s` for %s literal", suffix, tok.LitKind())
			}
		}
		return lit, next, nil
	})
}

// splitInt splits an integer literal into its digits and suffix.
func splitInt(text string) (digits, suffix string, base int) {
	base = 10
	if len(text) > 2 && text[0] == '0' {
		switch text[1] {
		case 'x':
			base = 16
		case 'o':
			base = 8
		case 'b':
			base = 2
		}
	}
	rest := text
	if base != 10 {
		rest = text[2:]
	}

	var out strings.Builder
	i := 0
	for i < len(rest) {
		r := rune(rest[i])
		if r == '_' {
			i++
			continue
		}
		if _, ok := unicodex.Digit(r, byte(base)); !ok {
			break
		}
		out.WriteRune(r)
		i++
	}
	return out.String(), rest[i:], base
}

// splitFloat splits a float literal into its numeric part and suffix.
func splitFloat(text string) (number, suffix string) {
	i := 0
	digits := func() {
		for i < len(text) && (text[i] >= '0' && text[i] <= '9' || text[i] == '_') {
			i++
		}
	}
	digits()
	if i < len(text) && text[i] == '.' {
		i++
		digits()
	}
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		j := i + 1
		if j < len(text) && (text[j] == '+' || text[j] == '-') {
			j++
		}
		if j < len(text) && (text[j] >= '0' && text[j] <= '9' || text[j] == '_') {
			i = j
			digits()
		}
	}
	return text[:i], text[i:]
}

// quotedSuffix returns whatever follows the closing quote of a quoted
// literal.
func quotedSuffix(text string) string {
	end := strings.LastIndexAny(text, `"'#`)
	return text[end+1:]
}

// unquote processes the escapes of a string or character literal, raw or
// not. A leading b must already have been removed.
func unquote(text string) (string, error) {
	if strings.HasPrefix(text, "r") {
		text = strings.Trim(text[1:], "#")
		if len(text) < 2 {
			return "", fmt.Errorf("malformed raw string %q", text)
		}
		return text[1 : len(text)-1], nil
	}
	if len(text) < 2 {
		return "", fmt.Errorf("malformed literal %q", text)
	}
	quote := text[0]
	body := text[1:strings.LastIndexByte(text, quote)]

	var out strings.Builder
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if ch != '\\' {
			out.WriteByte(ch)
			continue
		}
		i++
		if i >= len(body) {
			return "", fmt.Errorf("trailing backslash in %s", text)
		}
		switch body[i] {
		case 'n':
			out.WriteByte('\n')
		case 'r':
			out.WriteByte('\r')
		case 't':
			out.WriteByte('\t')
		case '0':
			out.WriteByte(0)
		case '\\', '\'', '"':
			out.WriteByte(body[i])
		case '\n':
			// Line continuation: skip the newline and leading whitespace.
			for i+1 < len(body) && strings.ContainsRune(" \t\r\n", rune(body[i+1])) {
				i++
			}
		case 'x':
			if i+2 >= len(body) {
				return "", fmt.Errorf("truncated \\x escape in %s", text)
			}
			v, err := strconv.ParseUint(body[i+1:i+3], 16, 8)
			if err != nil {
				return "", fmt.Errorf("invalid \\x escape in %s", text)
			}
			out.WriteByte(byte(v))
			i += 2
		case 'u':
			end := strings.IndexByte(body[i:], '}')
			if i+1 >= len(body) || body[i+1] != '{' || end < 0 {
				return "", fmt.Errorf("malformed \\u escape in %s", text)
			}
			hex := strings.ReplaceAll(body[i+2:i+end], "_", "")
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil || !utf8.ValidRune(rune(v)) {
				return "", fmt.Errorf("invalid \\u escape in %s", text)
			}
			out.WriteRune(rune(v))
			i += end
		default:
			return "", fmt.Errorf("unknown escape \\%c in %s", body[i], text)
		}
	}
	return out.String(), nil
}
