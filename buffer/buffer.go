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

// Package buffer flattens token trees into a single arena that cheap,
// copyable cursors can walk.
//
// A [Buffer] stores every token of a tree, in order, with each group
// represented by an open marker before its contents and a close marker after
// them. Open markers know where their close marker is, so a cursor can skip
// a whole group in O(1). Cursors are plain values: advancing one never
// affects another, which is what makes speculative parsing cheap.
package buffer

import (
	"github.com/synparse/synparse/token"
)

// Buffer is an immutable, flattened token tree.
type Buffer struct {
	entries []entry
}

type entryKind int8

const (
	entryLeaf entryKind = iota
	entryOpen
	entryClose
)

// entry is a single element of a [Buffer].
type entry struct {
	kind entryKind
	// For leaf entries, the token itself. For open and close markers, the
	// group token they delimit; the zero token for the final close marker.
	tok token.Token
	// For open markers, the index of the matching close marker. For close
	// markers, the index of the matching open marker, or -1 for the final
	// end-of-stream marker.
	partner int
}

// New flattens a token stream into a new buffer.
//
// This is O(n) in the number of tokens, including tokens inside groups.
func New(stream token.Stream) *Buffer {
	buf := &Buffer{entries: make([]entry, 0, countEntries(stream)+1)}
	buf.flatten(stream)
	buf.entries = append(buf.entries, entry{kind: entryClose, partner: -1})
	return buf
}

// Begin returns a cursor at the first token of the buffer.
func (b *Buffer) Begin() Cursor {
	return Cursor{buf: b, idx: 0, scope: len(b.entries) - 1}.normalize()
}

// Len returns the number of entries in this buffer, including group markers.
//
// Every [Cursor.Pos] of a cursor into b is less than Len.
func (b *Buffer) Len() int {
	return len(b.entries)
}

func (b *Buffer) flatten(stream token.Stream) {
	for _, tok := range stream {
		if tok.Kind() != token.Group {
			b.entries = append(b.entries, entry{kind: entryLeaf, tok: tok})
			continue
		}

		start := len(b.entries)
		b.entries = append(b.entries, entry{kind: entryOpen, tok: tok})
		b.flatten(tok.Stream())
		end := len(b.entries)
		b.entries = append(b.entries, entry{kind: entryClose, tok: tok, partner: start})
		b.entries[start].partner = end
	}
}

func countEntries(stream token.Stream) int {
	n := len(stream)
	for _, tok := range stream {
		if tok.Kind() == token.Group {
			n += 1 + countEntries(tok.Stream())
		}
	}
	return n
}
