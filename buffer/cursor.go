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

package buffer

import (
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/token"
)

// Cursor is a position within a [Buffer], limited to one group's contents
// (its scope).
//
// Cursors are comparable: two cursors are equal if they point to the same
// position of the same buffer with the same scope. The zero Cursor is at the
// end of an empty scope.
//
// Groups with [token.Invisible] delimiters are transparent to the typed
// accessors such as [Cursor.Ident]: they look through them to the first
// token inside.
type Cursor struct {
	buf *Buffer
	// The current entry.
	idx int
	// The close marker that ends this cursor's scope.
	scope int
}

// Eof returns whether this cursor is at the end of its scope.
func (c Cursor) Eof() bool {
	return c.idx == c.scope
}

// Pos returns this cursor's position in its buffer.
//
// Because a buffer is laid out in token order, positions of cursors into the
// same buffer are totally ordered, regardless of which group they are in.
func (c Cursor) Pos() int {
	return c.idx
}

// Token returns the token at this cursor without consuming it. For groups,
// this is the whole group.
//
// Returns false at the end of the scope.
func (c Cursor) Token() (token.Token, bool) {
	if c.Eof() {
		return token.Token{}, false
	}
	return c.entry().tok, true
}

// Bump returns a cursor advanced past the current token, skipping over
// groups entirely.
//
// At the end of its scope, returns c unchanged.
func (c Cursor) Bump() Cursor {
	if c.Eof() {
		return c
	}
	e := c.entry()
	if e.kind == entryOpen {
		c.idx = e.partner + 1
	} else {
		c.idx++
	}
	return c.normalize()
}

// Ident returns the identifier at this cursor and a cursor after it.
func (c Cursor) Ident() (token.Token, Cursor, bool) {
	return c.leaf(token.Ident)
}

// Punct returns the punctuation character at this cursor and a cursor after
// it.
func (c Cursor) Punct() (token.Token, Cursor, bool) {
	return c.leaf(token.Punct)
}

// Literal returns the literal at this cursor and a cursor after it.
func (c Cursor) Literal() (token.Token, Cursor, bool) {
	return c.leaf(token.Literal)
}

// Lifetime returns the lifetime at this cursor and a cursor after it.
func (c Cursor) Lifetime() (token.Token, Cursor, bool) {
	return c.leaf(token.Lifetime)
}

// Group enters the group at this cursor if it has the given delimiter.
//
// Returns a cursor over the group's contents, a cursor just after the group,
// and the group token itself, which carries the delimiter spans.
func (c Cursor) Group(delim token.Delimiter) (inside, after Cursor, group token.Token, ok bool) {
	if delim != token.Invisible {
		c = c.ignoreNone()
	}
	if c.Eof() {
		return Cursor{}, c, token.Token{}, false
	}

	e := c.entry()
	if e.kind != entryOpen || e.tok.Delimiter() != delim {
		return Cursor{}, c, token.Token{}, false
	}
	return c.enter()
}

// AnyGroup enters the group at this cursor regardless of its delimiter.
func (c Cursor) AnyGroup() (inside, after Cursor, group token.Token, ok bool) {
	if c.Eof() || c.entry().kind != entryOpen {
		return Cursor{}, c, token.Token{}, false
	}
	return c.enter()
}

// Span returns the span of the current token.
//
// At the end of a group's contents, this is the span of the group's closing
// delimiter. At the end of the whole buffer, this is the zero span.
func (c Cursor) Span() source.Span {
	if c.buf == nil {
		return source.Span{}
	}
	e := c.entry()
	if e.kind == entryClose {
		return e.tok.CloseSpan()
	}
	return e.tok.Span()
}

// Rest returns the remaining tokens in this cursor's scope.
func (c Cursor) Rest() token.Stream {
	var rest token.Stream
	for !c.Eof() {
		tok, _ := c.Token()
		rest = append(rest, tok)
		c = c.Bump()
	}
	return rest
}

// SameScope returns whether c and other walk the contents of the same group
// of the same buffer.
func (c Cursor) SameScope(other Cursor) bool {
	return c.buf == other.buf && c.scope == other.scope
}

func (c Cursor) entry() entry {
	return c.buf.entries[c.idx]
}

func (c Cursor) leaf(kind token.Kind) (token.Token, Cursor, bool) {
	c = c.ignoreNone()
	if c.Eof() {
		return token.Token{}, c, false
	}
	e := c.entry()
	if e.kind != entryLeaf || e.tok.Kind() != kind {
		return token.Token{}, c, false
	}
	next := c
	next.idx++
	return e.tok, next.normalize(), true
}

func (c Cursor) enter() (inside, after Cursor, group token.Token, ok bool) {
	e := c.entry()
	inside = Cursor{buf: c.buf, idx: c.idx + 1, scope: e.partner}.normalize()
	after = c
	after.idx = e.partner + 1
	return inside, after.normalize(), e.tok, true
}

// ignoreNone steps into any invisible groups at the cursor, without changing
// its scope; normalize later steps back out past their close markers.
func (c Cursor) ignoreNone() Cursor {
	for !c.Eof() {
		e := c.entry()
		if e.kind != entryOpen || e.tok.Delimiter() != token.Invisible {
			break
		}
		c.idx++
		c = c.normalize()
	}
	return c
}

// normalize skips close markers of groups entered by ignoreNone.
func (c Cursor) normalize() Cursor {
	if c.buf == nil {
		return c
	}
	for c.idx != c.scope && c.entry().kind == entryClose {
		c.idx++
	}
	return c
}
