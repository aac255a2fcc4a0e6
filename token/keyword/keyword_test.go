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

package keyword_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synparse/synparse/buffer"
	"github.com/synparse/synparse/internal/lexer"
	"github.com/synparse/synparse/parse"
	"github.com/synparse/synparse/quote"
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/token/keyword"
)

func streamOf(t *testing.T, text string) *parse.Stream {
	t.Helper()
	file := source.NewFile("test.rs", text)
	stream, err := lexer.Lex(file)
	require.NoError(t, err)
	return parse.New(buffer.New(stream), file.EOF())
}

type unionSpelling struct{}

func (unionSpelling) Spelling() string { return "union" }

type arrowSpelling struct{}

func (arrowSpelling) Spelling() string { return "<=>" }

type (
	union     = keyword.Custom[unionSpelling]
	spaceship = keyword.CustomPunct[arrowSpelling]
)

func TestWord(t *testing.T) {
	t.Parallel()

	s := streamOf(t, "fn r#fn")
	assert.True(t, s.Peek(keyword.Fn))
	assert.False(t, s.Peek(keyword.Let))
	assert.False(t, s.Peek2(keyword.Fn))

	tok, err := keyword.Fn.Parse(s)
	require.NoError(t, err)
	assert.Equal(t, "fn", tok.Span().Text())

	_, err = keyword.Fn.Parse(s)
	require.Error(t, err)
	assert.Equal(t, "expected `fn`, found `r#fn`", err.Error())
}

func TestPunct(t *testing.T) {
	t.Parallel()

	s := streamOf(t, ":: : :")
	assert.True(t, s.Peek(keyword.PathSep))
	assert.True(t, s.Peek(keyword.Colon))

	tok, err := keyword.PathSep.Parse(s)
	require.NoError(t, err)
	assert.Equal(t, "::", tok.Span().Text())
	assert.Len(t, tok.Spans, 2)

	assert.False(t, s.Peek(keyword.PathSep))
	assert.True(t, keyword.PathSep.Maybe(s).IsZero())
	assert.False(t, keyword.Colon.Maybe(s).IsZero())
	assert.False(t, keyword.Colon.Maybe(s).IsZero())
	assert.True(t, s.IsEmpty())
}

func TestPunctPrefixOfRun(t *testing.T) {
	t.Parallel()

	s := streamOf(t, ">>")
	first, err := keyword.Gt.Parse(s)
	require.NoError(t, err)
	second, err := keyword.Gt.Parse(s)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Span().Start)
	assert.Equal(t, 1, second.Span().Start)
}

func TestLongest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text, want, rest string
	}{
		{text: "..=5", want: "..=", rest: "5"},
		{text: "+-x", want: "+", rest: "- x"},
		{text: "=> x", want: "=>", rest: "x"},
		{text: "<<=", want: "<<=", rest: ""},
		{text: "- >", want: "-", rest: ">"},
		{text: "x", want: ""},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()

			s := streamOf(t, test.text)
			tok, next, ok := keyword.Longest(s.Cursor())
			if test.want == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, test.want, tok.Text)
			assert.Equal(t, test.rest, next.Rest().String())
		})
	}
}

func TestCustom(t *testing.T) {
	t.Parallel()

	s := streamOf(t, "union <=> <= >")
	assert.True(t, s.Peek(union{}))
	assert.Equal(t, "`union`", union{}.Display())

	u, err := union{}.Parse(s)
	require.NoError(t, err)
	assert.Equal(t, "union", u.Span().Text())

	assert.True(t, s.Peek(spaceship{}))
	ship, err := spaceship{}.Parse(s)
	require.NoError(t, err)
	assert.Equal(t, "<=>", ship.Span().Text())

	_, err = spaceship{}.Parse(s)
	require.Error(t, err)
	assert.Equal(t, "expected `<=>`, found `<`", err.Error())

	assert.Equal(t, "union <=>", quote.String(u, ship))
}

func TestToTokens(t *testing.T) {
	t.Parallel()

	s := streamOf(t, "mut ..= ->")
	mut := keyword.Mut.Maybe(s)
	dots := keyword.DotDotEq.Maybe(s)
	arrow := keyword.RArrow.Maybe(s)
	absent := keyword.Ref.Maybe(s)

	out := quote.Render(mut, dots, arrow, absent)
	assert.Equal(t, "mut ..= ->", out.String())
	assert.Equal(t, "mut", out[0].Span().Text())
	assert.Equal(t, "-", out[4].Span().Text())
}

func TestReserved(t *testing.T) {
	t.Parallel()

	assert.True(t, keyword.IsReserved("fn"))
	assert.True(t, keyword.IsReserved("Self"))
	assert.True(t, keyword.IsReserved("_"))
	assert.False(t, keyword.IsReserved("union"))
	assert.False(t, keyword.IsReserved("r#fn"))
	assert.False(t, keyword.IsReserved("foo"))
}
