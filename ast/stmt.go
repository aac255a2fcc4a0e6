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

package ast

import (
	"github.com/synparse/synparse/parse"
	"github.com/synparse/synparse/quote"
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/token"
	"github.com/synparse/synparse/token/keyword"
)

// Block is a braced sequence of statements. The value of the block, if
// any, is a trailing [*StmtExpr] without a semicolon.
type Block struct {
	Brace Delim
	Stmts []Stmt
}

// Stmt is a statement: a [*StmtLocal], [*StmtItem] or [*StmtExpr].
type Stmt interface {
	Node
	Kind() StmtKind
	isStmt()
}

// StmtLocal is a `let` binding.
type StmtLocal struct {
	Attrs []*Attribute
	Let   keyword.Token
	Pat   Pat
	Colon keyword.Token
	// Nil if there is no type annotation.
	Type Type
	Eq   keyword.Token
	// Nil if there is no initializer.
	Init Expr
	Semi keyword.Token
}

// StmtItem is an item declared inside a block.
type StmtItem struct {
	Item Item
}

// StmtExpr is an expression statement. Semi is absent for the trailing
// expression of a block and for block-like expressions such as `if`.
type StmtExpr struct {
	Attrs []*Attribute
	Expr  Expr
	Semi  keyword.Token
}

func (*StmtLocal) Kind() StmtKind { return StmtKindLocal }
func (*StmtItem) Kind() StmtKind  { return StmtKindItem }
func (*StmtExpr) Kind() StmtKind  { return StmtKindExpr }
func (*StmtLocal) isStmt()        {}
func (*StmtItem) isStmt()         {}
func (*StmtExpr) isStmt()         {}

func (b *Block) Span() source.Span     { return spanOf(b) }
func (s *StmtLocal) Span() source.Span { return spanOf(s) }
func (s *StmtItem) Span() source.Span  { return s.Item.Span() }
func (s *StmtExpr) Span() source.Span  { return spanOf(s) }

// ToTokens implements [quote.ToTokens].
func (b *Block) ToTokens(q *quote.Builder) {
	b.Brace.render(q, token.Braces, func(q *quote.Builder) {
		for _, stmt := range b.Stmts {
			q.Append(stmt)
		}
	})
}

// ToTokens implements [quote.ToTokens].
func (s *StmtLocal) ToTokens(b *quote.Builder) {
	renderAttrs(b, s.Attrs)
	b.Append(orWord(s.Let, keyword.Let), s.Pat)
	if s.Type != nil {
		b.Append(orPunct(s.Colon, keyword.Colon), s.Type)
	}
	if s.Init != nil {
		b.Append(orPunct(s.Eq, keyword.Eq), s.Init)
	}
	b.Append(orPunct(s.Semi, keyword.Semi))
}

// ToTokens implements [quote.ToTokens].
func (s *StmtItem) ToTokens(b *quote.Builder) { b.Append(s.Item) }

// ToTokens implements [quote.ToTokens].
func (s *StmtExpr) ToTokens(b *quote.Builder) {
	renderAttrs(b, s.Attrs)
	b.Append(s.Expr, s.Semi)
}

// ParseBlock parses a braced block of statements.
func ParseBlock(s *parse.Stream) (*Block, error) {
	stmts, brace, err := braces(s, parseStmts)
	if err != nil {
		return nil, err
	}
	return &Block{Brace: brace, Stmts: stmts}, nil
}

// parseStmts parses statements until the end of s. Empty statements are
// skipped.
func parseStmts(s *parse.Stream) ([]Stmt, error) {
	var stmts []Stmt
	for {
		for s.Peek(exactly(keyword.Semi)) {
			if _, err := keyword.Semi.Parse(s); err != nil {
				return nil, err
			}
		}
		if s.IsEmpty() {
			return stmts, nil
		}
		stmt, err := ParseStmt(s)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
}

// ParseStmt parses a statement.
//
// An expression statement needs a trailing `;` unless it is block-like,
// such as `if` or `loop`, or is the last thing in the stream.
func ParseStmt(s *parse.Stream) (Stmt, error) {
	attrs, err := ParseOuterAttrs(s)
	if err != nil {
		return nil, err
	}

	if s.Peek(keyword.Let) {
		return parseLocal(s, attrs)
	}
	if peekItem(s) {
		item, err := parseItem(s, attrs)
		if err != nil {
			return nil, err
		}
		return &StmtItem{Item: item}, nil
	}

	stmt := &StmtExpr{Attrs: attrs}
	if peekBlockLike(s) {
		if stmt.Expr, err = parsePrimary(s, exprOpts{}); err != nil {
			return nil, err
		}
		if s.Peek(exactly(keyword.Semi)) {
			stmt.Semi, err = keyword.Semi.Parse(s)
		}
		return stmt, err
	}

	if stmt.Expr, err = ParseExpr(s); err != nil {
		return nil, err
	}
	if s.IsEmpty() {
		return stmt, nil
	}
	if stmt.Semi, err = keyword.Semi.Parse(s); err != nil {
		return nil, err
	}
	return stmt, nil
}

func parseLocal(s *parse.Stream, attrs []*Attribute) (*StmtLocal, error) {
	l := &StmtLocal{Attrs: attrs}
	var err error
	if l.Let, err = keyword.Let.Parse(s); err != nil {
		return nil, err
	}
	if l.Pat, err = ParsePat(s); err != nil {
		return nil, err
	}
	if s.Peek(exactly(keyword.Colon)) {
		if l.Colon, err = keyword.Colon.Parse(s); err != nil {
			return nil, err
		}
		if l.Type, err = ParseType(s); err != nil {
			return nil, err
		}
	}
	if s.Peek(exactly(keyword.Eq)) {
		if l.Eq, err = keyword.Eq.Parse(s); err != nil {
			return nil, err
		}
		if l.Init, err = ParseExpr(s); err != nil {
			return nil, err
		}
	}
	if l.Semi, err = keyword.Semi.Parse(s); err != nil {
		return nil, err
	}
	return l, nil
}

// peekBlockLike returns whether s is at an expression that ends in a block
// and so may stand as a statement without a semicolon.
func peekBlockLike(s *parse.Stream) bool {
	return s.Peek(parse.Braces) ||
		s.Peek(keyword.Unsafe) && s.Peek2(parse.Braces) ||
		s.Peek(parse.Lifetime) && s.Peek2(exactly(keyword.Colon)) ||
		s.Peek(keyword.If) ||
		s.Peek(keyword.While) ||
		s.Peek(keyword.Loop) ||
		s.Peek(keyword.For) ||
		s.Peek(keyword.Match)
}
