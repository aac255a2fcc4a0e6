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
	"github.com/synparse/synparse/punctuated"
	"github.com/synparse/synparse/quote"
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/token"
	"github.com/synparse/synparse/token/keyword"
)

// ExprMatch is a `match` expression.
type ExprMatch struct {
	Match keyword.Token
	Expr  Expr
	Brace Delim
	Arms  []*Arm
}

// Arm is one arm of a `match`, `Some(x) if x > 0 => x,`.
type Arm struct {
	Attrs []*Attribute
	Pat   Pat
	If    keyword.Token
	// Nil if the arm has no guard.
	Guard    Expr
	FatArrow keyword.Token
	Body     Expr
	// Optional after a block-like body and after the last arm.
	Comma keyword.Token
}

// ExprForLoop is a `for` loop, `for x in xs { ... }`.
type ExprForLoop struct {
	Label *Label
	For   keyword.Token
	Pat   Pat
	In    keyword.Token
	Expr  Expr
	Body  *Block
}

// ExprLet is a `let` in the condition of an `if` or `while`,
// `if let Some(x) = y`.
type ExprLet struct {
	Let  keyword.Token
	Pat  Pat
	Eq   keyword.Token
	Expr Expr
}

// ExprClosure is a closure, `move |a, b: u8| a + b`.
//
// For a closure with no parameters written `||`, Or1 and Or2 are the two
// halves of the `||` token.
type ExprClosure struct {
	Move   keyword.Token
	Or1    keyword.Token
	Inputs punctuated.Punctuated[ClosureParam]
	Or2    keyword.Token
	// When present, Body is an [*ExprBlock].
	Output ReturnType
	Body   Expr
}

// ClosureParam is a closure parameter, with an optional type.
type ClosureParam struct {
	Pat   Pat
	Colon keyword.Token
	// Nil if there is no type annotation.
	Type Type
}

func (*ExprMatch) Kind() ExprKind   { return ExprKindMatch }
func (*ExprForLoop) Kind() ExprKind { return ExprKindForLoop }
func (*ExprLet) Kind() ExprKind     { return ExprKindLet }
func (*ExprClosure) Kind() ExprKind { return ExprKindClosure }

func (*ExprMatch) isExpr()   {}
func (*ExprForLoop) isExpr() {}
func (*ExprLet) isExpr()     {}
func (*ExprClosure) isExpr() {}

func (e *ExprMatch) Span() source.Span    { return spanOf(e) }
func (a *Arm) Span() source.Span          { return spanOf(a) }
func (e *ExprForLoop) Span() source.Span  { return spanOf(e) }
func (e *ExprLet) Span() source.Span      { return spanOf(e) }
func (e *ExprClosure) Span() source.Span  { return spanOf(e) }
func (p ClosureParam) Span() source.Span { return spanOf(p) }

// ToTokens implements [quote.ToTokens].
func (e *ExprMatch) ToTokens(b *quote.Builder) {
	b.Append(orWord(e.Match, keyword.Match), e.Expr)
	e.Brace.render(b, token.Braces, func(b *quote.Builder) {
		for i, arm := range e.Arms {
			b.Append(arm)
			if arm.Comma.IsZero() && i < len(e.Arms)-1 && !isBlockLike(arm.Body) {
				b.Punct(",")
			}
		}
	})
}

// ToTokens implements [quote.ToTokens].
func (a *Arm) ToTokens(b *quote.Builder) {
	renderAttrs(b, a.Attrs)
	b.Append(a.Pat)
	if a.Guard != nil {
		b.Append(orWord(a.If, keyword.If), a.Guard)
	}
	b.Append(orPunct(a.FatArrow, keyword.FatArrow), a.Body, a.Comma)
}

// ToTokens implements [quote.ToTokens].
func (e *ExprForLoop) ToTokens(b *quote.Builder) {
	if e.Label != nil {
		b.Append(e.Label)
	}
	b.Append(orWord(e.For, keyword.For), e.Pat, orWord(e.In, keyword.In), e.Expr, e.Body)
}

// ToTokens implements [quote.ToTokens].
func (e *ExprLet) ToTokens(b *quote.Builder) {
	b.Append(orWord(e.Let, keyword.Let), e.Pat, orPunct(e.Eq, keyword.Eq), e.Expr)
}

// ToTokens implements [quote.ToTokens].
func (e *ExprClosure) ToTokens(b *quote.Builder) {
	b.Append(e.Move, orPunct(e.Or1, keyword.Or), e.Inputs, orPunct(e.Or2, keyword.Or))
	b.Append(e.Output, e.Body)
}

// ToTokens implements [quote.ToTokens].
func (p ClosureParam) ToTokens(b *quote.Builder) {
	b.Append(p.Pat)
	if p.Type != nil {
		b.Append(orPunct(p.Colon, keyword.Colon), p.Type)
	}
}

// isBlockLike returns whether e ends in a block, and so needs no `,` after
// it in a match arm or `;` after it as a statement.
func isBlockLike(e Expr) bool {
	switch e.(type) {
	case *ExprBlock, *ExprIf, *ExprWhile, *ExprLoop, *ExprMatch, *ExprForLoop:
		return true
	}
	return false
}

func parseMatch(s *parse.Stream) (*ExprMatch, error) {
	e := new(ExprMatch)
	var err error
	if e.Match, err = keyword.Match.Parse(s); err != nil {
		return nil, err
	}
	if e.Expr, err = ParseExprNoStruct(s); err != nil {
		return nil, err
	}
	e.Arms, e.Brace, err = braces(s, func(s *parse.Stream) ([]*Arm, error) {
		var arms []*Arm
		for !s.IsEmpty() {
			arm, err := parseArm(s)
			if err != nil {
				return nil, err
			}
			arms = append(arms, arm)
		}
		return arms, nil
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func parseArm(s *parse.Stream) (*Arm, error) {
	a := new(Arm)
	var err error
	if a.Attrs, err = ParseOuterAttrs(s); err != nil {
		return nil, err
	}
	if a.Pat, err = ParsePatMulti(s); err != nil {
		return nil, err
	}
	if s.Peek(keyword.If) {
		if a.If, err = keyword.If.Parse(s); err != nil {
			return nil, err
		}
		if a.Guard, err = ParseExpr(s); err != nil {
			return nil, err
		}
	}
	if a.FatArrow, err = keyword.FatArrow.Parse(s); err != nil {
		return nil, err
	}

	if peekBlockLike(s) {
		a.Body, err = parsePrimary(s, exprOpts{})
	} else {
		a.Body, err = ParseExpr(s)
	}
	if err != nil {
		return nil, err
	}

	switch {
	case s.Peek(exactly(keyword.Comma)):
		a.Comma, err = keyword.Comma.Parse(s)
	case !s.IsEmpty() && !isBlockLike(a.Body):
		_, err = keyword.Comma.Parse(s)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func parseForLoop(s *parse.Stream, label *Label) (*ExprForLoop, error) {
	e := &ExprForLoop{Label: label}
	var err error
	if e.For, err = keyword.For.Parse(s); err != nil {
		return nil, err
	}
	if e.Pat, err = ParsePatMulti(s); err != nil {
		return nil, err
	}
	if e.In, err = keyword.In.Parse(s); err != nil {
		return nil, err
	}
	if e.Expr, err = ParseExprNoStruct(s); err != nil {
		return nil, err
	}
	if e.Body, err = ParseBlock(s); err != nil {
		return nil, err
	}
	return e, nil
}

// parseLet parses a `let` condition. The scrutinee stops before `&&` and
// `||`, so that conditions can chain: `let Some(x) = a && x > 0`.
func parseLet(s *parse.Stream) (*ExprLet, error) {
	e := new(ExprLet)
	var err error
	if e.Let, err = keyword.Let.Parse(s); err != nil {
		return nil, err
	}
	if e.Pat, err = ParsePatMulti(s); err != nil {
		return nil, err
	}
	if e.Eq, err = keyword.Eq.Parse(s); err != nil {
		return nil, err
	}
	if e.Expr, err = parseBinary(s, PrecCompare, exprOpts{noStruct: true}); err != nil {
		return nil, err
	}
	return e, nil
}

// peekClosure returns whether s is at the start of a closure.
func peekClosure(s *parse.Stream) bool {
	if s.Peek(keyword.Move) {
		return true
	}
	op := opAt(s.Cursor())
	return op == string(keyword.Or) || op == string(keyword.OrOr)
}

func parseClosure(s *parse.Stream, o exprOpts) (*ExprClosure, error) {
	e := &ExprClosure{Move: keyword.Move.Maybe(s)}
	var err error
	if s.Peek(exactly(keyword.OrOr)) {
		orOr, err := keyword.OrOr.Parse(s)
		if err != nil {
			return nil, err
		}
		e.Or1, e.Or2 = splitPunct(orOr)
		e.Inputs = punctuated.Of[ClosureParam](keyword.Comma)
	} else {
		if e.Or1, err = keyword.Or.Parse(s); err != nil {
			return nil, err
		}
		e.Inputs, err = punctuated.Separated[ClosureParam]{
			Parse:    parseClosureParam,
			Name:     "closure parameter",
			Trailing: true,
			Stop:     exactly(keyword.Or),
		}.ParseFrom(s)
		if err != nil {
			return nil, err
		}
		if e.Or2, err = keyword.Or.Parse(s); err != nil {
			return nil, err
		}
	}

	if s.Peek(keyword.RArrow) {
		if e.Output, err = parseReturnType(s); err != nil {
			return nil, err
		}
		// With a return type, the body must be a block.
		if e.Body, err = parseBlockExpr(s, nil); err != nil {
			return nil, err
		}
		return e, nil
	}
	if e.Body, err = parseExpr(s, exprOpts{noStruct: o.noStruct}); err != nil {
		return nil, err
	}
	return e, nil
}

func parseClosureParam(s *parse.Stream) (ClosureParam, error) {
	var p ClosureParam
	var err error
	if p.Pat, err = ParsePat(s); err != nil {
		return p, err
	}
	if s.Peek(exactly(keyword.Colon)) {
		if p.Colon, err = keyword.Colon.Parse(s); err != nil {
			return p, err
		}
		if p.Type, err = ParseType(s); err != nil {
			return p, err
		}
	}
	return p, nil
}
