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

package interval_test

import (
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/synparse/synparse/internal/interval"
)

type span struct {
	start, end int
	value      string
}

type piece = interval.Entry[int, []string]

func build(spans ...span) *interval.Intersect[int, string] {
	m := new(interval.Intersect[int, string])
	for _, s := range spans {
		m.Insert(s.start, s.end, s.value)
	}
	return m
}

func TestInsert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		spans []span
		want  []piece
	}{
		{
			name:  "single",
			spans: []span{{0, 9, "foo"}},
			want:  []piece{{0, 9, []string{"foo"}}},
		},
		{
			name:  "disjoint-after",
			spans: []span{{0, 9, "foo"}, {30, 39, "bar"}},
			want:  []piece{{0, 9, []string{"foo"}}, {30, 39, []string{"bar"}}},
		},
		{
			name:  "disjoint-before",
			spans: []span{{30, 39, "bar"}, {0, 9, "foo"}},
			want:  []piece{{0, 9, []string{"foo"}}, {30, 39, []string{"bar"}}},
		},
		{
			name:  "disjoint-between",
			spans: []span{{0, 9, "foo"}, {30, 39, "bar"}, {10, 29, "baz"}},
			want: []piece{
				{0, 9, []string{"foo"}},
				{10, 29, []string{"baz"}},
				{30, 39, []string{"bar"}},
			},
		},
		{
			name:  "nested",
			spans: []span{{0, 9, "foo"}, {1, 2, "baz"}},
			want: []piece{
				{0, 0, []string{"foo"}},
				{1, 2, []string{"foo", "baz"}},
				{3, 9, []string{"foo"}},
			},
		},
		{
			name:  "nested-prefix",
			spans: []span{{0, 9, "foo"}, {0, 2, "baz"}},
			want: []piece{
				{0, 2, []string{"foo", "baz"}},
				{3, 9, []string{"foo"}},
			},
		},
		{
			name:  "identical",
			spans: []span{{0, 9, "foo"}, {0, 9, "baz"}},
			want:  []piece{{0, 9, []string{"foo", "baz"}}},
		},
		{
			name:  "overlap-end",
			spans: []span{{0, 9, "foo"}, {30, 39, "bar"}, {9, 30, "baz"}},
			want: []piece{
				{0, 8, []string{"foo"}},
				{9, 9, []string{"foo", "baz"}},
				{10, 29, []string{"baz"}},
				{30, 30, []string{"bar", "baz"}},
				{31, 39, []string{"bar"}},
			},
		},
		{
			name:  "overlap-start",
			spans: []span{{0, 10, "foo"}, {-2, 0, "baz"}},
			want: []piece{
				{-2, -1, []string{"baz"}},
				{0, 0, []string{"foo", "baz"}},
				{1, 10, []string{"foo"}},
			},
		},
		{
			name:  "covering",
			spans: []span{{0, 9, "foo"}, {30, 39, "bar"}, {-2, 30, "baz"}},
			want: []piece{
				{-2, -1, []string{"baz"}},
				{0, 9, []string{"foo", "baz"}},
				{10, 29, []string{"baz"}},
				{30, 30, []string{"bar", "baz"}},
				{31, 39, []string{"bar"}},
			},
		},
		{
			name:  "covering-adjacent",
			spans: []span{{0, 9, "foo"}, {1, 2, "bar"}, {0, 9, "baz"}},
			want: []piece{
				{0, 0, []string{"foo", "baz"}},
				{1, 2, []string{"foo", "bar", "baz"}},
				{3, 9, []string{"foo", "baz"}},
			},
		},
		{
			name:  "max",
			spans: []span{{0, 9, "foo"}, {30, 39, "bar"}, {29, math.MaxInt, "baz"}},
			want: []piece{
				{0, 9, []string{"foo"}},
				{29, 29, []string{"baz"}},
				{30, 39, []string{"bar", "baz"}},
				{40, math.MaxInt, []string{"baz"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := build(tt.spans...)
			assert.Equal(t, tt.want, slices.Collect(m.Entries()))
			assert.Equal(t, len(tt.spans), m.Len())
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	// Spans as a parser would produce them: a file, an item, and a nested
	// expression, inserted outermost first.
	m := build(
		span{0, 15, "file"},
		span{0, 15, "fn"},
		span{7, 15, "block"},
		span{9, 13, "binary"},
		span{13, 13, "lit"},
	)

	assert.Equal(t, []string{"file", "fn"}, m.Get(3).Value)
	assert.Equal(t, []string{"file", "fn", "block", "binary"}, m.Get(11).Value)
	assert.Equal(t, []string{"file", "fn", "block", "binary", "lit"}, m.Get(13).Value)
	assert.Equal(t, []string{"file", "fn", "block"}, m.Get(15).Value)
	assert.Nil(t, m.Get(16).Value)
	assert.Nil(t, m.Get(-1).Value)

	got := m.Get(11)
	assert.Equal(t, 9, got.Start)
	assert.Equal(t, 12, got.End)
	assert.True(t, got.Contains(12))
	assert.False(t, got.Contains(13))

	assert.Equal(t, `{[0, 6]: [file fn], [7, 8]: [file fn block], [9, 12]: [file fn block binary], `+
		`13: [file fn block binary lit], [14, 15]: [file fn block]}`, fmt.Sprintf("%v", m))
}

func TestInsertPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { build(span{2, 1, "backwards"}) })
}
