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

// Package interval provides an interval intersection map, used to find every
// syntax node that covers a byte offset.
package interval

import (
	"fmt"
	"iter"
	"slices"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints" //nolint:exptostd // Needs integers, not cmp.Ordered.
)

// Endpoint is a type that may be used as an interval endpoint. Endpoints
// must be integers, since the map splits intervals at end+1.
type Endpoint = constraints.Integer

// Intersect maps points to the values of every interval that contains them.
//
// Internally the inserted intervals are cut into disjoint pieces, each of
// which records the values of all intervals covering it, in insertion order.
//
// A zero value is ready to use.
type Intersect[K Endpoint, V any] struct {
	// Keyed by the end of each piece.
	tree    btree.Map[K, *Entry[K, []V]]
	scratch []*Entry[K, []V]
	count   int
}

// Entry is a piece of an [Intersect]: a maximal range of points that are
// covered by the same intervals.
type Entry[K Endpoint, V any] struct {
	Start, End K // Inclusive.
	Value      V
}

// Contains returns whether point lies in this entry.
func (e Entry[K, V]) Contains(point K) bool {
	return e.Start <= point && point <= e.End
}

// Len returns the number of intervals inserted so far.
func (m *Intersect[K, V]) Len() int {
	return m.count
}

// Get returns the piece containing point. Its Value holds the values of all
// intervals that contain point, in the order they were inserted, and is nil
// if there are none.
func (m *Intersect[K, V]) Get(point K) Entry[K, []V] {
	it := m.tree.Iter()
	if !it.Seek(point) || point < it.Value().Start {
		return Entry[K, []V]{}
	}
	return *it.Value()
}

// Entries yields the pieces of this map in order. They are pairwise
// disjoint.
func (m *Intersect[K, V]) Entries() iter.Seq[Entry[K, []V]] {
	return func(yield func(Entry[K, []V]) bool) {
		it := m.tree.Iter()
		for ok := it.First(); ok; ok = it.Next() {
			if !yield(*it.Value()) {
				return
			}
		}
	}
}

// Insert adds the closed interval [start, end] with the given value.
//
// Returns whether the interval was disjoint from everything already in the
// map.
func (m *Intersect[K, V]) Insert(start, end K, value V) (disjoint bool) {
	if start > end {
		panic(fmt.Sprintf("interval: start (%#v) > end (%#v)", start, end))
	}
	m.count++

	piece := func(start, end K, values []V) *Entry[K, []V] {
		e := &Entry[K, []V]{Start: start, End: end, Value: values}
		m.scratch = append(m.scratch, e)
		return e
	}

	var prev *Entry[K, []V]
	for e := range m.overlapping(start, end) {
		if prev == nil && start < e.Start {
			// Gap before the first overlapping piece.
			piece(start, e.Start-1, []V{value})
		}

		// Pieces may share a prefix of their value slices, so never append
		// to old in place.
		old := e.Value

		if e.Contains(end) && end < e.End {
			// Split off the part past end; the tree key of e stays the same.
			head := piece(e.Start, end, append(slices.Clip(old), value))
			e.Start = end + 1
			e = head
		}
		if e.Contains(start) && e.Start < start {
			// Split off the part before start, which keeps the old values.
			piece(e.Start, start-1, old)
			e.Start = start
		}
		e.Value = append(slices.Clip(old), value)

		if prev != nil && prev.End+1 < e.Start {
			// Gap between two overlapping pieces.
			piece(prev.End+1, e.Start-1, []V{value})
		}
		prev = e
	}

	switch {
	case prev == nil:
		piece(start, end, []V{value})
	case prev.End < end:
		// Gap after the last overlapping piece.
		piece(prev.End+1, end, []V{value})
	}

	for _, e := range m.scratch {
		m.tree.Set(e.End, e)
	}
	clear(m.scratch)
	m.scratch = m.scratch[:0]
	return prev == nil
}

// Format implements [fmt.Formatter].
func (m *Intersect[K, V]) Format(s fmt.State, verb rune) {
	fmt.Fprint(s, "{")
	first := true
	for e := range m.Entries() {
		if !first {
			fmt.Fprint(s, ", ")
		}
		first = false
		if e.Start == e.End {
			fmt.Fprintf(s, "%#v: ", e.Start)
		} else {
			fmt.Fprintf(s, "[%#v, %#v]: ", e.Start, e.End)
		}
		fmt.Fprintf(s, fmt.FormatString(s, verb), e.Value)
	}
	fmt.Fprint(s, "}")
}

// overlapping yields the pieces that intersect [start, end], in order.
func (m *Intersect[K, V]) overlapping(start, end K) iter.Seq[*Entry[K, []V]] {
	return func(yield func(*Entry[K, []V]) bool) {
		// Seek finds the first piece whose end is at least start; every piece
		// from there on overlaps until one begins past end.
		it := m.tree.Iter()
		for ok := it.Seek(start); ok; ok = it.Next() {
			if end < it.Value().Start || !yield(it.Value()) {
				return
			}
		}
	}
}
