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

package punctuated_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synparse/synparse/buffer"
	"github.com/synparse/synparse/internal/lexer"
	"github.com/synparse/synparse/parse"
	"github.com/synparse/synparse/punctuated"
	"github.com/synparse/synparse/quote"
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/token/keyword"
)

type name string

func (n name) ToTokens(b *quote.Builder) {
	b.Ident(string(n))
}

func parseName(s *parse.Stream) (name, error) {
	return parse.Step(s, func(c buffer.Cursor) (name, buffer.Cursor, error) {
		tok, next, ok := c.Ident()
		if !ok {
			return "", c, s.Unexpected("identifier")
		}
		return name(tok.Text()), next, nil
	})
}

func streamOf(t *testing.T, text string) *parse.Stream {
	t.Helper()
	file := source.NewFile("test.rs", text)
	stream, err := lexer.Lex(file)
	require.NoError(t, err)
	return parse.New(buffer.New(stream), file.EOF())
}

// parenthesized parses a terminated list inside parentheses.
func parenthesized(t *testing.T, text string) (punctuated.Punctuated[name], error) {
	t.Helper()
	s := streamOf(t, text)
	list, _, err := parse.Parenthesized(s, func(s *parse.Stream) (punctuated.Punctuated[name], error) {
		return punctuated.ParseTerminated(s, parseName, keyword.Comma)
	})
	return list, err
}

func TestTerminated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text     string
		values   []name
		trailing bool
		err      string
	}{
		{text: "()", values: []name{}},
		{text: "(a)", values: []name{"a"}},
		{text: "(a,)", values: []name{"a"}, trailing: true},
		{text: "(a, b)", values: []name{"a", "b"}},
		{text: "(a, b,)", values: []name{"a", "b"}, trailing: true},
		{text: "(,)", err: "unexpected leading `,`"},
		{text: "(a,,)", err: "unexpected extra `,`"},
		{text: "(a b)", err: "expected `,`, found `b`"},
		{text: "(a, 1)", err: "expected identifier, found integer literal"},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()

			list, err := parenthesized(t, test.text)
			if test.err != "" {
				require.Error(t, err)
				assert.Equal(t, test.err, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.values, list.Slice())
			assert.Equal(t, test.trailing, list.Trailing())
			assert.True(t, list.Valid())

			switch {
			case test.trailing:
				assert.Equal(t, list.Len(), list.PunctCount())
			case list.IsEmpty():
				assert.Zero(t, list.PunctCount())
			default:
				assert.Equal(t, list.Len(), list.PunctCount()+1)
			}
		})
	}
}

func TestSeparatedNonempty(t *testing.T) {
	t.Parallel()

	s := streamOf(t, "a + b + c = d")
	list, err := punctuated.ParseSeparatedNonempty(s, parseName, keyword.Plus)
	require.NoError(t, err)
	assert.Equal(t, []name{"a", "b", "c"}, list.Slice())
	assert.False(t, list.Trailing())
	assert.True(t, s.Peek(keyword.Eq))

	s = streamOf(t, "a + = d")
	_, err = punctuated.ParseSeparatedNonempty(s, parseName, keyword.Plus)
	require.Error(t, err)
	assert.Equal(t, "expected identifier, found `=`", err.Error())

	s = streamOf(t, "")
	_, err = punctuated.ParseSeparatedNonempty(s, parseName, keyword.Plus)
	require.Error(t, err)
	assert.Equal(t, "unexpected end of input, expected identifier", err.Error())
}

func TestTrailingSwallow(t *testing.T) {
	t.Parallel()

	// Like a where clause, which ends at whatever follows it.
	s := streamOf(t, "a, b, {}")
	list, err := punctuated.Separated[name]{
		Parse:    parseName,
		Trailing: true,
	}.ParseFrom(s)
	require.NoError(t, err)
	assert.Equal(t, []name{"a", "b"}, list.Slice())
	assert.True(t, list.Trailing())
	assert.True(t, s.Peek(parse.Braces))
}

func TestStop(t *testing.T) {
	t.Parallel()

	s := streamOf(t, "a, b> c")
	list, err := punctuated.Separated[name]{
		Parse:    parseName,
		Trailing: true,
		Stop:     keyword.Gt,
		Name:     "parameter",
	}.ParseFrom(s)
	require.NoError(t, err)
	assert.Equal(t, []name{"a", "b"}, list.Slice())
	assert.True(t, s.Peek(keyword.Gt))

	s = streamOf(t, ", a>")
	_, err = punctuated.Separated[name]{Parse: parseName, Stop: keyword.Gt, Name: "parameter"}.ParseFrom(s)
	require.Error(t, err)
	assert.Equal(t, "expected parameter, found leading `,`", err.Error())
}

func TestPush(t *testing.T) {
	t.Parallel()

	var list punctuated.Punctuated[name]
	assert.True(t, list.IsEmpty())
	_, ok := list.Last()
	assert.False(t, ok)

	list.Push("a")
	list.Push("b")
	assert.Equal(t, 2, list.Len())
	assert.Equal(t, 1, list.PunctCount())
	assert.Panics(t, func() { list.PushValue("c") })

	list.PushPunct(keyword.Token{Text: ","})
	assert.True(t, list.Trailing())
	assert.Panics(t, func() { list.PushPunct(keyword.Token{Text: ","}) })

	last, ok := list.Last()
	require.True(t, ok)
	assert.Equal(t, name("b"), last)
	assert.Equal(t, "a , b ,", quote.String(list))

	semis := punctuated.Of(keyword.Semi, name("x"), name("y"))
	assert.Equal(t, "x ; y", quote.String(semis))
	assert.Equal(t, keyword.Semi, semis.Sep())
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	list, err := parenthesized(t, "(a, b,)")
	require.NoError(t, err)

	rendered := quote.Render(list)
	assert.Equal(t, "a , b ,", rendered.String())

	again, err := parenthesized(t, "("+rendered.String()+")")
	require.NoError(t, err)
	assert.Equal(t, list.Slice(), again.Slice())
	assert.Equal(t, list.Trailing(), again.Trailing())
}
