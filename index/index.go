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

// Package index answers position queries over a parsed syntax tree, such as
// which nodes enclose a given byte offset.
package index

import (
	"github.com/synparse/synparse/ast"
	"github.com/synparse/synparse/internal/interval"
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/walk"
)

// Index maps the byte offsets of one file to the nodes whose spans cover
// them.
//
// Nodes without a span, such as ones built by hand, are not indexed.
type Index struct {
	file  *source.File
	nodes interval.Intersect[int, ast.Node]
}

// Build indexes root and every node beneath it.
func Build(root ast.Node) *Index {
	idx := new(Index)
	_ = walk.Nodes(root, func(n ast.Node) error {
		span := n.Span()
		if span.IsZero() || span.Start == span.End {
			return nil
		}
		if idx.file == nil {
			idx.file = span.File
		}
		// Spans are half-open; the map wants closed intervals.
		idx.nodes.Insert(span.Start, span.End-1, n)
		return nil
	})
	return idx
}

// File returns the file the indexed nodes come from, or nil if no node had a
// span.
func (i *Index) File() *source.File {
	return i.file
}

// Len returns the number of indexed nodes.
func (i *Index) Len() int {
	return i.nodes.Len()
}

// At returns every node whose span contains offset, outermost first. Nodes
// with identical spans, such as an expression statement and its expression,
// are returned parent first.
func (i *Index) At(offset int) []ast.Node {
	return i.nodes.Get(offset).Value
}

// Innermost returns the smallest node containing offset, or nil if there is
// none.
func (i *Index) Innermost(offset int) ast.Node {
	nodes := i.At(offset)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[len(nodes)-1]
}

// Enclosing returns the innermost node containing offset that is a T, such
// as the [*ast.ItemFn] around a cursor position.
func Enclosing[T ast.Node](i *Index, offset int) (T, bool) {
	nodes := i.At(offset)
	for j := len(nodes) - 1; j >= 0; j-- {
		if n, ok := nodes[j].(T); ok {
			return n, true
		}
	}
	var zero T
	return zero, false
}
