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

package quote_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synparse/synparse/internal/lexer"
	"github.com/synparse/synparse/quote"
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/token"
)

type call struct {
	name string
	args []arg
}

type arg string

func (a arg) ToTokens(b *quote.Builder) {
	b.Ident(string(a))
}

func (c call) ToTokens(b *quote.Builder) {
	b.Ident(c.name)
	b.Group(token.Parens, func(b *quote.Builder) {
		quote.Separated(b, c.args, ",")
	})
}

func TestBuilder(t *testing.T) {
	t.Parallel()

	var b quote.Builder
	b.Ident("x")
	b.Punct("..=")
	b.Literal(token.Int, "3")
	b.Punct(";")
	b.Lifetime("'a")
	b.Append(call{"f", []arg{"a", "b"}}, nil)

	assert.Equal(t, "x ..= 3 ; 'a f (a , b)", b.Stream().String())
	assert.Equal(t, 9, b.Len())

	dots := b.Stream()[1:4]
	assert.Equal(t, token.Joint, dots[0].Spacing())
	assert.Equal(t, token.Joint, dots[1].Spacing())
	assert.Equal(t, token.Alone, dots[2].Spacing())
}

func TestRenderRelexes(t *testing.T) {
	t.Parallel()

	stream := quote.Render(call{"f", []arg{"a", "b"}})
	file := source.NewFile("test.rs", stream.String())
	relexed, err := lexer.Lex(file)
	require.NoError(t, err)
	assert.True(t, stream.Equal(relexed))
	assert.Equal(t, "f (a , b)", quote.String(call{"f", []arg{"a", "b"}}))
}

func TestSpans(t *testing.T) {
	t.Parallel()

	file := source.NewFile("test.rs", "a::b")
	b := quote.Builder{Span: file.Span(0, 4)}
	b.Ident("x")
	b.PunctAt("::", file.Span(1, 2))
	b.IdentAt("b", file.Span(3, 4))

	s := b.Stream()
	assert.Equal(t, "a::b", s[0].Span().Text())
	assert.Equal(t, ":", s[1].Span().Text())
	assert.Equal(t, "a::b", s[2].Span().Text())
	assert.Equal(t, "b", s[3].Span().Text())
}
