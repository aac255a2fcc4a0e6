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

// Package trie provides a longest-prefix map over strings.
package trie

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Trie implements a map from strings to V, except lookups return the key
// which is the longest prefix of a given query.
//
// The zero value is empty and ready to use.
type Trie[V any] struct {
	// nodes[0] is the root, once anything has been inserted.
	nodes  []node
	values []V
}

type node struct {
	// Outgoing edges, sorted by byte.
	edges []edge
	// Index into values, or -1.
	value int
}

type edge struct {
	b    byte
	next int
}

// Get returns the value corresponding to the longest prefix of key present
// in the trie. The match is exact when len(key) == len(prefix).
//
// If no key in the trie is a prefix of key, returns "" and the zero value of V.
func (t *Trie[V]) Get(key string) (prefix string, value V) {
	for p, v := range t.Prefixes(key) {
		prefix, value = p, v
	}
	return prefix, value
}

// Lookup returns the value for exactly key.
func (t *Trie[V]) Lookup(key string) (value V, ok bool) {
	for p, v := range t.Prefixes(key) {
		if len(p) == len(key) {
			return v, true
		}
	}
	return value, false
}

// Prefixes returns an iterator over the keys in the trie that are prefixes
// of key, along with their values, in ascending order of length.
func (t *Trie[V]) Prefixes(key string) iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if len(t.nodes) == 0 {
			return
		}

		n := 0
		if v := t.nodes[0].value; v >= 0 && !yield("", t.values[v]) {
			return
		}
		for i := range len(key) {
			next, ok := t.child(n, key[i])
			if !ok {
				return
			}
			n = next
			if v := t.nodes[n].value; v >= 0 && !yield(key[:i+1], t.values[v]) {
				return
			}
		}
	}
}

// Insert adds a new value to this trie, replacing any value already present
// for key.
func (t *Trie[V]) Insert(key string, value V) {
	if len(t.nodes) == 0 {
		t.nodes = append(t.nodes, node{value: -1})
	}

	n := 0
	for i := range len(key) {
		next, ok := t.child(n, key[i])
		if !ok {
			next = len(t.nodes)
			t.nodes = append(t.nodes, node{value: -1})

			edges := t.nodes[n].edges
			at, _ := slices.BinarySearchFunc(edges, key[i], func(e edge, b byte) int { return int(e.b) - int(b) })
			t.nodes[n].edges = slices.Insert(edges, at, edge{b: key[i], next: next})
		}
		n = next
	}

	if v := t.nodes[n].value; v >= 0 {
		t.values[v] = value
		return
	}
	t.nodes[n].value = len(t.values)
	t.values = append(t.values, value)
}

// Len returns the number of keys in the trie.
func (t *Trie[V]) Len() int {
	return len(t.values)
}

// Dump prints the trie's structure, for debugging.
func (t *Trie[V]) Dump() string {
	var buf strings.Builder
	var walk func(n, depth int)
	walk = func(n, depth int) {
		for _, e := range t.nodes[n].edges {
			fmt.Fprintf(&buf, "%s%q", strings.Repeat("  ", depth), e.b)
			if v := t.nodes[e.next].value; v >= 0 {
				fmt.Fprintf(&buf, " = %v", t.values[v])
			}
			buf.WriteByte('\n')
			walk(e.next, depth+1)
		}
	}
	if len(t.nodes) > 0 {
		walk(0, 0)
	}
	return buf.String()
}

func (t *Trie[V]) child(n int, b byte) (int, bool) {
	edges := t.nodes[n].edges
	i, ok := slices.BinarySearchFunc(edges, b, func(e edge, b byte) int { return int(e.b) - int(b) })
	if !ok {
		return 0, false
	}
	return edges[i].next, true
}
