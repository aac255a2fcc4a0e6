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
	"github.com/synparse/synparse/report"
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/token"
	"github.com/synparse/synparse/token/keyword"
)

// exprOpts is the context an expression is parsed in.
type exprOpts struct {
	// Set in the condition of an if or while, where `x {` begins the body
	// rather than a struct literal.
	noStruct bool
	// Set in the condition of an if or while, where `let` may appear.
	cond bool
}

// ParseExpr parses an expression.
func ParseExpr(s *parse.Stream) (Expr, error) {
	return parseExpr(s, exprOpts{})
}

// ParseExprNoStruct parses an expression in which a struct literal may not
// appear outside of parentheses, as in the condition of an `if`.
func ParseExprNoStruct(s *parse.Stream) (Expr, error) {
	return parseExpr(s, exprOpts{noStruct: true})
}

// parseCond parses the condition of an `if` or `while`.
func parseCond(s *parse.Stream) (Expr, error) {
	return parseExpr(s, exprOpts{noStruct: true, cond: true})
}

func parseExpr(s *parse.Stream, o exprOpts) (Expr, error) {
	return parseBinary(s, PrecAssign, o)
}

// parseBinary parses an expression whose operators all bind at least as
// tightly as min.
func parseBinary(s *parse.Stream, min Precedence, o exprOpts) (Expr, error) {
	lhs, err := parseUnary(s, o)
	if err != nil {
		return nil, err
	}
	return parseBinaryRHS(s, lhs, min, o)
}

func parseBinaryRHS(s *parse.Stream, lhs Expr, min Precedence, o exprOpts) (Expr, error) {
	for {
		op, prec, ok := peekBinary(s)
		if !ok || prec < min {
			return lhs, nil
		}

		if op == string(keyword.As) {
			as, err := keyword.As.Parse(s)
			if err != nil {
				return nil, err
			}
			ty, err := parseTypeNoPlus(s)
			if err != nil {
				return nil, err
			}
			lhs = &ExprCast{Expr: lhs, As: as, Type: ty}
			continue
		}

		tok, err := keyword.Punct(op).Parse(s)
		if err != nil {
			return nil, err
		}

		switch prec {
		case PrecAssign:
			rhs, err := parseBinary(s, PrecAssign, o)
			if err != nil {
				return nil, err
			}
			if op == string(keyword.Eq) {
				lhs = &ExprAssign{Left: lhs, Eq: tok, Right: rhs}
			} else {
				lhs = &ExprAssignOp{Left: lhs, Op: tok, Right: rhs}
			}

		case PrecRange:
			end, err := parseRangeEnd(s, tok, o)
			if err != nil {
				return nil, err
			}
			lhs = &ExprRange{Start: lhs, Op: tok, End: end}

		default:
			rhs, err := parseBinary(s, prec+1, o)
			if err != nil {
				return nil, err
			}
			lhs = &ExprBinary{Left: lhs, Op: tok, Right: rhs}
		}

		if prec.Assoc() == AssocNone {
			if _, next, ok := peekBinary(s); ok && next == prec {
				what := "comparison"
				if prec == PrecRange {
					what = "range"
				}
				return nil, s.Errorf(report.Unexpected, "%s operators cannot be chained", what)
			}
		}
	}
}

// peekBinary returns the binary operator at the front of s, if any.
func peekBinary(s *parse.Stream) (op string, prec Precedence, ok bool) {
	if s.Peek(keyword.As) {
		return string(keyword.As), PrecCast, true
	}
	op = opAt(s.Cursor())
	switch op {
	case string(keyword.Eq):
		return op, PrecAssign, true
	case string(keyword.DotDot), string(keyword.DotDotEq):
		return op, PrecRange, true
	}
	if bin, ok := BinOpBySpelling(op); ok {
		return op, bin.Precedence(), true
	}
	return "", 0, false
}

func parseUnary(s *parse.Stream, o exprOpts) (Expr, error) {
	switch op := opAt(s.Cursor()); op {
	case "-", "!", "*":
		tok, err := keyword.Punct(op).Parse(s)
		if err != nil {
			return nil, err
		}
		inner, err := parseUnary(s, o)
		if err != nil {
			return nil, err
		}
		return &ExprUnary{Op: tok, Expr: inner}, nil

	case "&":
		and, err := keyword.And.Parse(s)
		if err != nil {
			return nil, err
		}
		return parseReference(s, and, o)

	case "&&":
		// `&&x` is two borrows.
		andAnd, err := keyword.AndAnd.Parse(s)
		if err != nil {
			return nil, err
		}
		first, second := splitPunct(andAnd)
		inner, err := parseReference(s, second, o)
		if err != nil {
			return nil, err
		}
		return &ExprReference{And: first, Expr: inner}, nil

	case "..", "..=":
		tok, err := keyword.Punct(op).Parse(s)
		if err != nil {
			return nil, err
		}
		end, err := parseRangeEnd(s, tok, o)
		if err != nil {
			return nil, err
		}
		return &ExprRange{Op: tok, End: end}, nil
	}
	return parsePostfix(s, o)
}

// parseRangeEnd parses the optional upper bound after op, which `..=`
// requires.
func parseRangeEnd(s *parse.Stream, op keyword.Token, o exprOpts) (Expr, error) {
	if !canBeginExpr(s, o) {
		if op.Text == string(keyword.DotDotEq) {
			return nil, s.ErrorAt(op, report.Unexpected, "inclusive range with no end")
		}
		return nil, nil
	}
	return parseBinary(s, PrecRange+1, o)
}

func parseReference(s *parse.Stream, and keyword.Token, o exprOpts) (Expr, error) {
	mut := keyword.Mut.Maybe(s)
	inner, err := parseUnary(s, o)
	if err != nil {
		return nil, err
	}
	return &ExprReference{And: and, Mut: mut, Expr: inner}, nil
}

// splitPunct splits a two-character punctuation token into two
// one-character ones.
func splitPunct(tok keyword.Token) (keyword.Token, keyword.Token) {
	first := keyword.Token{Text: tok.Text[:1], Spans: tok.Spans[:1]}
	second := keyword.Token{Text: tok.Text[1:], Spans: tok.Spans[1:]}
	return first, second
}

func parsePostfix(s *parse.Stream, o exprOpts) (Expr, error) {
	e, err := parsePrimary(s, o)
	if err != nil {
		return nil, err
	}
	return parsePostfixOps(s, e)
}

func parsePostfixOps(s *parse.Stream, e Expr) (Expr, error) {
	for {
		switch {
		case s.Peek(keyword.Question):
			q, err := keyword.Question.Parse(s)
			if err != nil {
				return nil, err
			}
			e = &ExprTry{Expr: e, Question: q}

		case s.Peek(parse.Parens):
			args, paren, err := parens(s, parseArgs)
			if err != nil {
				return nil, err
			}
			e = &ExprCall{Func: e, Paren: paren, Args: args}

		case s.Peek(parse.Brackets):
			index, bracket, err := brackets(s, ParseExpr)
			if err != nil {
				return nil, err
			}
			e = &ExprIndex{Expr: e, Bracket: bracket, Index: index}

		case s.Peek(exactly(keyword.Dot)):
			dot, err := keyword.Dot.Parse(s)
			if err != nil {
				return nil, err
			}
			if e, err = parseDotted(s, e, dot); err != nil {
				return nil, err
			}

		default:
			return e, nil
		}
	}
}

func parseArgs(s *parse.Stream) (punctuated.Punctuated[Expr], error) {
	return punctuated.ParseTerminated(s, ParseExpr, keyword.Comma)
}

// parseDotted parses whatever follows the `.` of a field access or method
// call.
func parseDotted(s *parse.Stream, base Expr, dot keyword.Token) (Expr, error) {
	if s.Peek(parse.Literal) {
		lit, err := ParseLit(s)
		if err != nil {
			return nil, err
		}
		switch lit := lit.(type) {
		case *LitInt:
			if lit.Suffix() == "" && lit.Base() == 10 {
				return &ExprField{Base: base, Dot: dot, Member: Member{Index: lit}}, nil
			}
		case *LitFloat:
			// `x.0.1` lexes its indices as a single float.
			if outer, inner, ok := splitTupleIndex(lit); ok {
				base = &ExprField{Base: base, Dot: dot, Member: Member{Index: outer.index}}
				return &ExprField{Base: base, Dot: inner.dot, Member: Member{Index: inner.index}}, nil
			}
		}
		return nil, s.ErrorAt(lit, report.Unexpected, "expected field name or tuple index, found %s", lit.Span().Text())
	}

	method, err := ParseIdent(s)
	if err != nil {
		return nil, err
	}
	if !s.Peek(keyword.PathSep) && !s.Peek(parse.Parens) {
		return &ExprField{Base: base, Dot: dot, Member: Member{Name: method}}, nil
	}

	call := &ExprMethodCall{Receiver: base, Dot: dot, Method: method}
	if s.Peek(keyword.PathSep) {
		if call.Turbofish, err = parseAngleArgs(s, true); err != nil {
			return nil, err
		}
	}
	if call.Args, call.Paren, err = parens(s, parseArgs); err != nil {
		return nil, err
	}
	return call, nil
}

type tupleIndex struct {
	dot   keyword.Token
	index *LitInt
}

// splitTupleIndex splits a float such as 0.1 into two tuple indices.
func splitTupleIndex(lit *LitFloat) (outer, inner tupleIndex, ok bool) {
	text := lit.Text
	dot := -1
	for i, r := range text {
		switch {
		case r == '.' && dot < 0:
			dot = i
		case r < '0' || r > '9':
			return outer, inner, false
		}
	}
	if dot <= 0 || dot == len(text)-1 {
		return outer, inner, false
	}

	at := func(start, end int) source.Span {
		if lit.At.IsZero() {
			return source.Span{}
		}
		return source.Span{File: lit.At.File, Start: lit.At.Start + start, End: lit.At.Start + end}
	}
	outer.index = &LitInt{Text: text[:dot], At: at(0, dot)}
	inner.dot = keyword.Token{Text: ".", Spans: []source.Span{at(dot, dot+1)}}
	inner.index = &LitInt{Text: text[dot+1:], At: at(dot+1, len(text))}
	return outer, inner, true
}

func parsePrimary(s *parse.Stream, o exprOpts) (Expr, error) {
	switch {
	case s.Peek(parse.Literal), s.Peek(keyword.True), s.Peek(keyword.False):
		lit, err := ParseLit(s)
		if err != nil {
			return nil, err
		}
		return &ExprLit{Lit: lit}, nil

	case s.Peek(parse.Parens):
		return parseParenOrTuple(s)
	case s.Peek(parse.Brackets):
		return parseArrayOrRepeat(s)
	case s.Peek(parse.Braces), s.Peek(keyword.Unsafe) && s.Peek2(parse.Braces):
		return parseBlockExpr(s, nil)
	case s.Peek(parse.Lifetime) && s.Peek2(exactly(keyword.Colon)):
		return parseLabeled(s)
	case s.Peek(keyword.If):
		return parseIf(s)
	case s.Peek(keyword.While):
		return parseWhile(s, nil)
	case s.Peek(keyword.Loop):
		return parseLoop(s, nil)
	case s.Peek(keyword.For):
		return parseForLoop(s, nil)
	case s.Peek(keyword.Match):
		return parseMatch(s)
	case o.cond && s.Peek(keyword.Let):
		return parseLet(s)
	case peekClosure(s):
		return parseClosure(s, o)
	case s.Peek(keyword.Return):
		return parseReturn(s, o)
	case s.Peek(keyword.Break):
		return parseBreak(s, o)
	case s.Peek(keyword.Continue):
		return parseContinue(s)
	case s.Peek(keyword.Lt):
		qself, path, err := parseQPath(s, styleExpr)
		if err != nil {
			return nil, err
		}
		return &ExprPath{QSelf: qself, Path: path}, nil
	case s.Peek(startsPath):
		return parsePathOrStruct(s, o)
	}
	return nil, s.Unexpected("expression")
}

func parseParenOrTuple(s *parse.Stream) (Expr, error) {
	e, paren, err := parens(s, func(s *parse.Stream) (Expr, error) {
		if s.IsEmpty() {
			return &ExprTuple{Elems: punctuated.Of[Expr](keyword.Comma)}, nil
		}
		first, err := ParseExpr(s)
		if err != nil {
			return nil, err
		}
		if s.IsEmpty() {
			return &ExprParen{Expr: first}, nil
		}
		elems, err := parseRestOfList(s, first)
		if err != nil {
			return nil, err
		}
		return &ExprTuple{Elems: elems}, nil
	})
	if err != nil {
		return nil, err
	}
	switch e := e.(type) {
	case *ExprTuple:
		e.Paren = paren
	case *ExprParen:
		e.Paren = paren
	}
	return e, nil
}

// parseRestOfList parses the rest of a comma-separated list of expressions
// whose first element has already been parsed.
func parseRestOfList(s *parse.Stream, first Expr) (punctuated.Punctuated[Expr], error) {
	elems := punctuated.Of(keyword.Comma, first)
	comma, err := keyword.Comma.Parse(s)
	if err != nil {
		return elems, err
	}
	elems.PushPunct(comma)

	rest, err := punctuated.ParseTerminated(s, ParseExpr, keyword.Comma)
	if err != nil {
		return elems, err
	}
	for v, p := range rest.All() {
		elems.PushValue(v)
		if !p.IsZero() {
			elems.PushPunct(p)
		}
	}
	return elems, nil
}

func parseArrayOrRepeat(s *parse.Stream) (Expr, error) {
	e, bracket, err := brackets(s, func(s *parse.Stream) (Expr, error) {
		if s.IsEmpty() {
			return &ExprArray{Elems: punctuated.Of[Expr](keyword.Comma)}, nil
		}
		first, err := ParseExpr(s)
		if err != nil {
			return nil, err
		}
		if s.Peek(keyword.Semi) {
			semi, err := keyword.Semi.Parse(s)
			if err != nil {
				return nil, err
			}
			n, err := ParseExpr(s)
			if err != nil {
				return nil, err
			}
			return &ExprRepeat{Expr: first, Semi: semi, Len: n}, nil
		}
		if s.IsEmpty() {
			return &ExprArray{Elems: punctuated.Of(keyword.Comma, first)}, nil
		}
		elems, err := parseRestOfList(s, first)
		if err != nil {
			return nil, err
		}
		return &ExprArray{Elems: elems}, nil
	})
	if err != nil {
		return nil, err
	}
	switch e := e.(type) {
	case *ExprArray:
		e.Bracket = bracket
	case *ExprRepeat:
		e.Bracket = bracket
	}
	return e, nil
}

func parseBlockExpr(s *parse.Stream, label *Label) (*ExprBlock, error) {
	e := &ExprBlock{Label: label, Unsafe: keyword.Unsafe.Maybe(s)}
	var err error
	if e.Block, err = ParseBlock(s); err != nil {
		return nil, err
	}
	return e, nil
}

func parseLabeled(s *parse.Stream) (Expr, error) {
	name, err := ParseLifetime(s)
	if err != nil {
		return nil, err
	}
	colon, err := keyword.Colon.Parse(s)
	if err != nil {
		return nil, err
	}
	label := &Label{Name: name, Colon: colon}

	l := s.Lookahead1()
	switch {
	case l.Peek(keyword.Loop):
		return parseLoop(s, label)
	case l.Peek(keyword.While):
		return parseWhile(s, label)
	case l.Peek(keyword.For):
		return parseForLoop(s, label)
	case l.Peek(parse.Braces):
		return parseBlockExpr(s, label)
	}
	return nil, l.Error()
}

func parseIf(s *parse.Stream) (*ExprIf, error) {
	e := new(ExprIf)
	var err error
	if e.If, err = keyword.If.Parse(s); err != nil {
		return nil, err
	}
	if e.Cond, err = parseCond(s); err != nil {
		return nil, err
	}
	if e.Then, err = ParseBlock(s); err != nil {
		return nil, err
	}
	if e.Else = keyword.Else.Maybe(s); e.Else.IsZero() {
		return e, nil
	}

	if s.Peek(keyword.If) {
		elseIf, err := parseIf(s)
		if err != nil {
			return nil, err
		}
		e.ElseBranch = elseIf
		return e, nil
	}
	block, err := ParseBlock(s)
	if err != nil {
		return nil, err
	}
	e.ElseBranch = &ExprBlock{Block: block}
	return e, nil
}

func parseWhile(s *parse.Stream, label *Label) (*ExprWhile, error) {
	e := &ExprWhile{Label: label}
	var err error
	if e.While, err = keyword.While.Parse(s); err != nil {
		return nil, err
	}
	if e.Cond, err = parseCond(s); err != nil {
		return nil, err
	}
	if e.Body, err = ParseBlock(s); err != nil {
		return nil, err
	}
	return e, nil
}

func parseLoop(s *parse.Stream, label *Label) (*ExprLoop, error) {
	e := &ExprLoop{Label: label}
	var err error
	if e.Loop, err = keyword.Loop.Parse(s); err != nil {
		return nil, err
	}
	if e.Body, err = ParseBlock(s); err != nil {
		return nil, err
	}
	return e, nil
}

func parseReturn(s *parse.Stream, o exprOpts) (*ExprReturn, error) {
	e := new(ExprReturn)
	var err error
	if e.Return, err = keyword.Return.Parse(s); err != nil {
		return nil, err
	}
	if canBeginExpr(s, o) {
		if e.Expr, err = parseExpr(s, o); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func parseBreak(s *parse.Stream, o exprOpts) (*ExprBreak, error) {
	e := new(ExprBreak)
	var err error
	if e.Break, err = keyword.Break.Parse(s); err != nil {
		return nil, err
	}
	if s.Peek(parse.Lifetime) {
		label, err := ParseLifetime(s)
		if err != nil {
			return nil, err
		}
		e.Label = &label
	}
	if canBeginExpr(s, o) {
		if e.Expr, err = parseExpr(s, o); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func parseContinue(s *parse.Stream) (*ExprContinue, error) {
	e := new(ExprContinue)
	var err error
	if e.Continue, err = keyword.Continue.Parse(s); err != nil {
		return nil, err
	}
	if s.Peek(parse.Lifetime) {
		label, err := ParseLifetime(s)
		if err != nil {
			return nil, err
		}
		e.Label = &label
	}
	return e, nil
}

func parsePathOrStruct(s *parse.Stream, o exprOpts) (Expr, error) {
	path, err := ParseExprPath(s)
	if err != nil {
		return nil, err
	}
	if o.noStruct || !s.Peek(parse.Braces) {
		return &ExprPath{Path: path}, nil
	}

	e := &ExprStruct{Path: path}
	_, e.Brace, err = braces(s, func(s *parse.Stream) (struct{}, error) {
		e.Fields = punctuated.Of[FieldValue](keyword.Comma)
		for !s.IsEmpty() {
			if s.Peek(exactly(keyword.DotDot)) {
				if e.Dot2, err = keyword.DotDot.Parse(s); err != nil {
					return struct{}{}, err
				}
				if !s.IsEmpty() {
					e.Rest, err = ParseExpr(s)
				}
				return struct{}{}, err
			}

			field, err := parseFieldValue(s)
			if err != nil {
				return struct{}{}, err
			}
			e.Fields.PushValue(field)
			if s.IsEmpty() {
				break
			}
			comma, err := keyword.Comma.Parse(s)
			if err != nil {
				return struct{}{}, err
			}
			e.Fields.PushPunct(comma)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func parseFieldValue(s *parse.Stream) (FieldValue, error) {
	var f FieldValue
	if s.Peek(parse.Literal) {
		lit, err := ParseLit(s)
		if err != nil {
			return f, err
		}
		index, ok := lit.(*LitInt)
		if !ok {
			return f, s.ErrorAt(lit, report.Unexpected, "expected field name or tuple index, found %s", lit.Span().Text())
		}
		f.Member.Index = index
	} else {
		name, err := ParseIdent(s)
		if err != nil {
			return f, err
		}
		f.Member.Name = name
		if !s.Peek(exactly(keyword.Colon)) {
			segment := PathSegment{Ident: name}
			f.Expr = &ExprPath{Path: Path{Segments: punctuated.Of(keyword.PathSep, segment)}}
			return f, nil
		}
	}

	var err error
	if f.Colon, err = keyword.Colon.Parse(s); err != nil {
		return f, err
	}
	if f.Expr, err = ParseExpr(s); err != nil {
		return f, err
	}
	return f, nil
}

// canBeginExpr returns whether the next token can begin an expression, for
// the optional operands of `return`, `break` and ranges.
func canBeginExpr(s *parse.Stream, o exprOpts) bool {
	tok, ok := s.Token()
	if !ok {
		return false
	}
	switch tok.Kind() {
	case token.Literal, token.Lifetime:
		return true
	case token.Group:
		return tok.Delimiter() != token.Braces || !o.noStruct
	case token.Ident:
		switch tok.Text() {
		case "self", "Self", "super", "crate", "true", "false",
			"if", "while", "loop", "return", "break", "continue", "unsafe",
			"match", "for", "move":
			return true
		}
		return !keyword.IsReserved(tok.Text())
	case token.Punct:
		switch opAt(s.Cursor()) {
		case "-", "!", "*", "&", "&&", "..", "..=", "::", "<", "<<", "|", "||":
			return true
		}
	}
	return false
}
