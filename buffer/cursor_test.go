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

package buffer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synparse/synparse/buffer"
	"github.com/synparse/synparse/internal/lexer"
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/token"
)

func lex(t *testing.T, text string) (*source.File, *buffer.Buffer) {
	t.Helper()
	file := source.NewFile("test.rs", text)
	stream, err := lexer.Lex(file)
	require.NoError(t, err)
	return file, buffer.New(stream)
}

func TestWalk(t *testing.T) {
	t.Parallel()

	_, buf := lex(t, "f(a, [b]) c")
	// f ( a , [ b ] ) c <end>
	assert.Equal(t, 10, buf.Len())

	c := buf.Begin()
	f, c, ok := c.Ident()
	require.True(t, ok)
	assert.Equal(t, "f", f.Text())

	_, _, ok = c.Ident()
	assert.False(t, ok)
	_, _, _, ok = c.Group(token.Brackets)
	assert.False(t, ok)

	inside, after, group, ok := c.Group(token.Parens)
	require.True(t, ok)
	assert.Equal(t, "(a, [b])", group.Span().Text())

	var texts []string
	for cur := inside; !cur.Eof(); cur = cur.Bump() {
		tok, _ := cur.Token()
		texts = append(texts, tok.String())
	}
	assert.Equal(t, []string{"a", ",", "[b]"}, texts)

	end := inside.Bump().Bump().Bump()
	assert.True(t, end.Eof())
	assert.Equal(t, ")", end.Span().Text())
	assert.Equal(t, end, end.Bump())

	tok, after, ok := after.Ident()
	require.True(t, ok)
	assert.Equal(t, "c", tok.Text())
	assert.True(t, after.Eof())
	assert.True(t, after.Span().IsZero())
}

func TestCursorsAreIndependent(t *testing.T) {
	t.Parallel()

	_, buf := lex(t, "a b c")
	start := buf.Begin()
	advanced := start.Bump().Bump()

	assert.NotEqual(t, start, advanced)
	assert.Less(t, start.Pos(), advanced.Pos())

	tok, _ := start.Token()
	assert.Equal(t, "a", tok.Text())
	tok, _ = advanced.Token()
	assert.Equal(t, "c", tok.Text())
	assert.Equal(t, start.Bump(), buf.Begin().Bump())
	assert.Len(t, start.Rest(), 3)
	assert.Len(t, advanced.Rest(), 1)
}

func TestInvisibleGroups(t *testing.T) {
	t.Parallel()

	var zero source.Span
	stream := token.Stream{
		token.NewGroup(token.Invisible, token.Stream{
			token.NewIdent("a", zero),
			token.NewGroup(token.Invisible, nil, zero, zero),
		}, zero, zero),
		token.NewPunct('+', token.Alone, zero),
		token.NewGroup(token.Invisible, nil, zero, zero),
	}
	buf := buffer.New(stream)

	c := buf.Begin()
	tok, _ := c.Token()
	assert.Equal(t, token.Group, tok.Kind())

	a, c, ok := c.Ident()
	require.True(t, ok)
	assert.Equal(t, "a", a.Text())

	plus, c, ok := c.Punct()
	require.True(t, ok)
	assert.Equal(t, '+', plus.Char())

	_, _, _, ok = c.Group(token.Invisible)
	assert.True(t, ok)
	assert.False(t, c.Eof())
	assert.True(t, c.Bump().Eof())
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	buf := buffer.New(nil)
	assert.True(t, buf.Begin().Eof())
	assert.Empty(t, buf.Begin().Rest())

	var zero buffer.Cursor
	assert.True(t, zero.Eof())
	assert.True(t, zero.Span().IsZero())
	_, _, ok := zero.Ident()
	assert.False(t, ok)
}
