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

package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synparse/synparse/internal/lexer"
	"github.com/synparse/synparse/report"
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/token"
)

// dump renders a token stream in a form that makes kinds and spacing
// visible.
func dump(stream token.Stream) string {
	var parts []string
	for _, tok := range stream {
		switch tok.Kind() {
		case token.Ident:
			parts = append(parts, "id:"+tok.Text())
		case token.Punct:
			p := "p:" + string(tok.Char())
			if tok.Spacing() == token.Joint {
				p += "+"
			}
			parts = append(parts, p)
		case token.Literal:
			parts = append(parts, fmt.Sprintf("%s:%s", tok.LitKind(), tok.Text()))
		case token.Lifetime:
			parts = append(parts, "lt:"+tok.Text())
		case token.Group:
			parts = append(parts, fmt.Sprintf("%c%s%c",
				tok.Delimiter().Open(), dump(tok.Stream()), tok.Delimiter().Close()))
		}
	}
	return strings.Join(parts, " ")
}

func lex(t *testing.T, text string) token.Stream {
	t.Helper()
	stream, err := lexer.Lex(source.NewFile("test.rs", text))
	require.NoError(t, err)
	return stream
}

func TestLex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text, want string
	}{
		{"fn f<'a>(x: &'a str) -> u8 {}",
			"id:fn id:f p:< lt:'a p:> (id:x p:: p:& lt:'a id:str) p:-+ p:> id:u8 {}"},
		{"a += b", "id:a p:++ p:= id:b"},
		{"a + // comment\nb", "id:a p:+ id:b"},
		{"x /* outer /* inner */ still */ y", "id:x id:y"},
		{"1..2", "integer:1 p:.+ p:. integer:2"},
		{"1.max(2)", "integer:1 p:. id:max (integer:2)"},
		{"1.5e10f32 2. 3f64 0x1F_u8 0b1010 0o17 1_000i64", "float:1.5e10f32 float:2. float:3f64 integer:0x1F_u8 integer:0b1010 integer:0o17 integer:1_000i64"},
		{"1e3 2E-4 5em", "float:1e3 float:2E-4 integer:5em"},
		{`"a\"b" r#"raw "x""# b"bytes" br"rb" b'\'' 'c' '\n' '\u{1F600}'`,
			`string:"a\"b" raw string:r#"raw "x""# byte string:b"bytes" raw byte string:br"rb" byte:b'\'' character:'c' character:'\n' character:'\u{1F600}'`},
		{"r#match 'static: loop {} '_'", "id:r#match lt:'static p:: id:loop {} character:'_'"},
		{"#[derive(Debug)]", "p:# [id:derive (id:Debug)]"},
		{"[1; 2] {a} ( )", "[integer:1 p:; integer:2] {id:a} ()"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dump(lex(t, tt.text)), "lexing %q", tt.text)
	}

	assert.Equal(t, "id:é_1", dump(lex(t, "é_1")))
}

func TestSpans(t *testing.T) {
	t.Parallel()

	stream := lex(t, "f( x )")
	require.Len(t, stream, 2)
	group := stream[1]
	assert.Equal(t, "(", group.OpenSpan().Text())
	assert.Equal(t, ")", group.CloseSpan().Text())
	assert.Equal(t, "( x )", group.Span().Text())
	assert.Equal(t, "x", group.Stream()[0].Span().Text())
}

func TestErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text       string
		kind       report.Kind
		start, end int
		message    string
	}{
		{"f(a, b", report.UnexpectedEOF, 1, 2, "unclosed delimiter `(`"},
		{"{ [ }", report.Unexpected, 2, 3, "mismatched closing delimiter: `[` is closed by `}`"},
		{"a )", report.Lexical, 2, 3, "unexpected closing delimiter `)`"},
		{`x = "abc`, report.Lexical, 4, 8, "unterminated string literal"},
		{"/* a /* b */", report.Lexical, 0, 2, "unterminated block comment"},
		{"a € b", report.Lexical, 2, 5, "unrecognized character '€'"},
		{"0x_", report.Lexical, 0, 3, "no valid digits found for number"},
		{"r##\"abc\"#", report.Lexical, 0, 9, "unterminated raw string literal"},
	}
	for _, tt := range tests {
		_, err := lexer.Lex(source.NewFile("test.rs", tt.text))
		var lexErr *report.Error
		require.ErrorAs(t, err, &lexErr, "lexing %q", tt.text)
		assert.Equal(t, tt.kind, lexErr.Kind, "lexing %q", tt.text)
		assert.Equal(t, tt.message, lexErr.Message, "lexing %q", tt.text)
		assert.Equal(t, tt.start, lexErr.Span.Start, "lexing %q", tt.text)
		assert.Equal(t, tt.end, lexErr.Span.End, "lexing %q", tt.text)
	}
}

func TestMismatchedDelimiter(t *testing.T) {
	t.Parallel()

	// The opening delimiter is blamed first, and the closing one second.
	_, err := lexer.Lex(source.NewFile("test.rs", "f(a, [b)]"))
	var lexErr *report.Error
	require.ErrorAs(t, err, &lexErr)

	errs := lexErr.Errors()
	require.Len(t, errs, 2)
	assert.Equal(t, "mismatched closing delimiter: `[` is closed by `)`", errs[0].Message)
	assert.Equal(t, "[", errs[0].Span.Text())
	assert.Equal(t, "`)` closed here, expected `]`", errs[1].Message)
	assert.Equal(t, ")", errs[1].Span.Text())
	assert.Equal(t, 7, errs[1].Span.Start)

	rep := lexErr.Report()
	require.Len(t, rep.Diagnostics, 2)
	text, errCount, _ := report.Renderer{Compact: true}.RenderString(rep)
	assert.Equal(t, 2, errCount)
	assert.Equal(t, "test.rs:1:6: error: mismatched closing delimiter: `[` is closed by `)`\n"+
		"test.rs:1:8: error: `)` closed here, expected `]`\n", text)
}
