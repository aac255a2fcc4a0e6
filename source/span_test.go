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

package source_test

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synparse/synparse/source"
)

func TestLocation(t *testing.T) {
	t.Parallel()

	file := source.NewFile("test", "foo\nbar baz\n\tqux\n")

	tests := []struct {
		offset       int
		units        source.Unit
		line, column int
	}{
		{0, source.Bytes, 1, 1},
		{2, source.Bytes, 1, 3},
		{4, source.Bytes, 2, 1},
		{8, source.Bytes, 2, 5},
		{13, source.Runes, 3, 2},
	}
	for _, tt := range tests {
		loc := file.Location(tt.offset, tt.units)
		assert.Equal(t, tt.offset, loc.Offset)
		assert.Equal(t, tt.line, loc.Line, "line of offset %d", tt.offset)
		assert.Equal(t, tt.column, loc.Column, "column of offset %d", tt.offset)
	}

	assert.Equal(t, "bar baz\n", file.Line(2))
}

func TestLocationUnits(t *testing.T) {
	t.Parallel()

	file := source.NewFile("test", "é😀x")
	x := len("é😀")

	assert.Equal(t, 7, file.Location(x, source.Bytes).Column)
	assert.Equal(t, 3, file.Location(x, source.Runes).Column)
	assert.Equal(t, 4, file.Location(x, source.UTF16).Column)
	assert.Equal(t, 4, file.Location(x, source.TermWidth).Column)
}

func TestJoin(t *testing.T) {
	t.Parallel()

	file := source.NewFile("test", "abc def ghi")
	a := file.Span(0, 3)
	c := file.Span(8, 11)

	joined := source.Join(c, source.Span{}, a)
	assert.Equal(t, 0, joined.Start)
	assert.Equal(t, 11, joined.End)
	assert.Equal(t, "abc def ghi", joined.Text())

	assert.True(t, source.Join().IsZero())
	assert.True(t, source.Join(source.Span{}).IsZero())

	other := source.NewFile("other", "xyz")
	assert.Panics(t, func() { source.Join(a, other.Span(0, 1)) })
}

func TestEOF(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, source.NewFile("a", "abc  \n\n").EOF().Start)
	assert.Equal(t, 0, source.NewFile("a", "   ").EOF().Start)
	assert.Equal(t, len("aé"), source.NewFile("a", "aé ").EOF().Start)
	assert.True(t, (*source.File)(nil).EOF().IsZero())
}

func TestOpeners(t *testing.T) {
	t.Parallel()

	m := source.NewMap(map[string]string{"a.rs": "struct A;"})
	fsys := &source.FS{FS: fstest.MapFS{
		"b.rs": &fstest.MapFile{Data: []byte("struct B;")},
	}}
	openers := source.Openers{m, fsys}

	a, err := openers.Open("a.rs")
	require.NoError(t, err)
	assert.Equal(t, "struct A;", a.Text())

	b, err := openers.Open("b.rs")
	require.NoError(t, err)
	assert.Equal(t, "b.rs", b.Path())

	_, err = openers.Open("c.rs")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
