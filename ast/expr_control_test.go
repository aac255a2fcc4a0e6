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

package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synparse/synparse"
	"github.com/synparse/synparse/ast"
	"github.com/synparse/synparse/quote"
	"github.com/synparse/synparse/report"
)

func TestMatch(t *testing.T) {
	t.Parallel()

	e := mustParse(t, ast.ParseExpr, "match x { Some(1) | None => 0, Some(n) if n > 2 => { n } _ => 1 }")
	m, ok := e.(*ast.ExprMatch)
	require.True(t, ok, "%T", e)
	assert.IsType(t, &ast.ExprPath{}, m.Expr)
	require.Len(t, m.Arms, 3)

	or, ok := m.Arms[0].Pat.(*ast.PatOr)
	require.True(t, ok, "%T", m.Arms[0].Pat)
	assert.Equal(t, 2, or.Cases.Len())
	assert.True(t, or.Leading.IsZero())
	assert.Nil(t, m.Arms[0].Guard)
	assert.Equal(t, ",", m.Arms[0].Comma.Text)

	guard, ok := m.Arms[1].Guard.(*ast.ExprBinary)
	require.True(t, ok, "%T", m.Arms[1].Guard)
	assert.Equal(t, ast.BinOpGt, guard.Operator())
	assert.IsType(t, &ast.ExprBlock{}, m.Arms[1].Body)
	assert.True(t, m.Arms[1].Comma.IsZero())

	assert.IsType(t, &ast.PatWild{}, m.Arms[2].Pat)
	assert.True(t, m.Arms[2].Comma.IsZero())

	// A leading `|` is allowed.
	e = mustParse(t, ast.ParseExpr, "match x { | A | B => {} }")
	or = e.(*ast.ExprMatch).Arms[0].Pat.(*ast.PatOr)
	assert.Equal(t, "|", or.Leading.Text)
	assert.Equal(t, 2, or.Cases.Len())

	e = mustParse(t, ast.ParseExpr, "match x {}")
	assert.Empty(t, e.(*ast.ExprMatch).Arms)

	// The scrutinee cannot be a struct literal.
	err := parseError(t, ast.ParseExpr, "match S { a: 1 } {}")
	assert.Equal(t, report.Unexpected, err.Kind)

	// Arms that do not end in a block need a comma between them.
	err = parseError(t, ast.ParseExpr, "match x { A => 1 B => 2 }")
	assert.Equal(t, report.Unexpected, err.Kind)
	assert.Equal(t, "expected `,`, found `B`", err.Message)
	assert.Equal(t, 17, err.Span.Start)

	err = parseError(t, ast.ParseExpr, "match x { A 1 }")
	assert.Equal(t, "expected `=>`, found integer literal", err.Message)
}

func TestMatchRendering(t *testing.T) {
	t.Parallel()

	// Arms built without a comma get one when they need it.
	one := mustParse(t, ast.ParseExpr, "1")
	m := &ast.ExprMatch{
		Expr: mustParse(t, ast.ParseExpr, "x"),
		Arms: []*ast.Arm{
			{Pat: mustParse(t, ast.ParsePat, "A"), Body: one},
			{Pat: mustParse(t, ast.ParsePat, "B"), Body: mustParse(t, ast.ParseExpr, "{}")},
			{Pat: mustParse(t, ast.ParsePat, "_"), Body: one},
		},
	}
	e, err := synparse.ParseTokens(quote.Render(m), ast.ParseExpr)
	require.NoError(t, err)
	arms := e.(*ast.ExprMatch).Arms
	require.Len(t, arms, 3)
	assert.Equal(t, ",", arms[0].Comma.Text)
	assert.True(t, arms[1].Comma.IsZero())
	assert.True(t, arms[2].Comma.IsZero())
}

func TestForLoops(t *testing.T) {
	t.Parallel()

	e := mustParse(t, ast.ParseExpr, "for (i, x) in xs.iter() { f(i, x); }")
	loop, ok := e.(*ast.ExprForLoop)
	require.True(t, ok, "%T", e)
	assert.Nil(t, loop.Label)
	assert.IsType(t, &ast.PatTuple{}, loop.Pat)
	assert.IsType(t, &ast.ExprMethodCall{}, loop.Expr)
	assert.Len(t, loop.Body.Stmts, 1)

	e = mustParse(t, ast.ParseExpr, "'a: for x in 0..n { continue 'a; }")
	loop = e.(*ast.ExprForLoop)
	require.NotNil(t, loop.Label)
	assert.Equal(t, "a", loop.Label.Name.Ident())
	assert.IsType(t, &ast.ExprRange{}, loop.Expr)

	err := parseError(t, ast.ParseExpr, "for x xs {}")
	assert.Equal(t, "expected `in`, found `xs`", err.Message)
}

func TestLetConditions(t *testing.T) {
	t.Parallel()

	e := mustParse(t, ast.ParseExpr, "if let Some(x) = y && x > 0 { x }")
	cond, ok := e.(*ast.ExprIf).Cond.(*ast.ExprBinary)
	require.True(t, ok, "%T", e.(*ast.ExprIf).Cond)
	assert.Equal(t, ast.BinOpAnd, cond.Operator())
	let, ok := cond.Left.(*ast.ExprLet)
	require.True(t, ok, "%T", cond.Left)
	assert.IsType(t, &ast.PatTupleStruct{}, let.Pat)
	assert.IsType(t, &ast.ExprPath{}, let.Expr)

	e = mustParse(t, ast.ParseExpr, "while let Some(x) | None = it.next() {}")
	let = e.(*ast.ExprWhile).Cond.(*ast.ExprLet)
	assert.IsType(t, &ast.PatOr{}, let.Pat)
	assert.IsType(t, &ast.ExprMethodCall{}, let.Expr)

	// Outside a condition, `let` does not begin an expression.
	err := parseError(t, ast.ParseExpr, "let x = 1")
	assert.Equal(t, "expected expression, found `let`", err.Message)
	err = parseError(t, ast.ParseExpr, "f(let x = 1)")
	assert.Equal(t, "expected expression, found `let`", err.Message)
}

func TestClosures(t *testing.T) {
	t.Parallel()

	e := mustParse(t, ast.ParseExpr, "|a, b: u8| a + b")
	c, ok := e.(*ast.ExprClosure)
	require.True(t, ok, "%T", e)
	assert.True(t, c.Move.IsZero())
	require.Equal(t, 2, c.Inputs.Len())
	assert.Nil(t, c.Inputs.At(0).Type)
	assert.IsType(t, &ast.TypePath{}, c.Inputs.At(1).Type)
	assert.IsType(t, &ast.ExprBinary{}, c.Body)
	assert.True(t, c.Output.IsZero())

	// `||` is split into the two bars of an empty parameter list.
	e = mustParse(t, ast.ParseExpr, "move || x")
	c = e.(*ast.ExprClosure)
	assert.Equal(t, "move", c.Move.Text)
	assert.Equal(t, "|", c.Or1.Text)
	assert.Equal(t, "|", c.Or2.Text)
	assert.Equal(t, 5, c.Or1.Span().Start)
	assert.Equal(t, 6, c.Or2.Span().Start)
	assert.True(t, c.Inputs.IsEmpty())

	e = mustParse(t, ast.ParseExpr, "|x| -> u8 { x }")
	c = e.(*ast.ExprClosure)
	assert.False(t, c.Output.IsZero())
	assert.IsType(t, &ast.ExprBlock{}, c.Body)

	// Closures are arguments like any other expression.
	e = mustParse(t, ast.ParseExpr, "xs.map(|x| x * 2)")
	call := e.(*ast.ExprMethodCall)
	assert.IsType(t, &ast.ExprClosure{}, call.Args.At(0))

	// `|` and `||` are still binary operators after an operand.
	e = mustParse(t, ast.ParseExpr, "a || b | c")
	assert.Equal(t, ast.BinOpOr, e.(*ast.ExprBinary).Operator())

	err := parseError(t, ast.ParseExpr, "|x| -> u8 x")
	assert.Equal(t, report.Unexpected, err.Kind)
	assert.Equal(t, 10, err.Span.Start)
}
