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
	"github.com/synparse/synparse/punctuated"
	"github.com/synparse/synparse/quote"
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/token"
	"github.com/synparse/synparse/token/keyword"
)

// Expr is an expression. The concrete type is one of the Expr* types in
// this package, as given by Kind.
//
// # Grammar
//
//	Expr    := ExprAssign | ExprRange | ExprBinary | ExprCast | Prefix
//	Prefix  := (`-` | `!` | `*` | `&` `mut`?) Prefix | Postfix
//	Postfix := Primary (`?` | Call | MethodCall | Field | Index)*
//	Primary := Lit | Path | Struct | Paren | Tuple | Array | Repeat | Block
//	         | If | While | Loop | For | Match | Closure | Return | Break
//	         | Continue
//
// [*ExprLet] appears only in the conditions of `if` and `while`.
//
// Operator precedence is given by [Precedence].
type Expr interface {
	Node
	Kind() ExprKind
	isExpr()
}

// ExprLit is a literal expression.
type ExprLit struct {
	Lit Lit
}

// ExprPath is a path expression, possibly qualified: `x`, `Vec::<u8>::new`,
// `<T as Default>::default`.
type ExprPath struct {
	QSelf *QSelf
	Path  Path
}

// ExprParen is a parenthesized expression, `(a + b)`.
type ExprParen struct {
	Paren Delim
	Expr  Expr
}

// ExprTuple is a tuple, `()`, `(a,)` or `(a, b)`.
type ExprTuple struct {
	Paren Delim
	Elems punctuated.Punctuated[Expr]
}

// ExprArray is an array literal, `[a, b, c]`.
type ExprArray struct {
	Bracket Delim
	Elems   punctuated.Punctuated[Expr]
}

// ExprRepeat is an array repetition, `[x; n]`.
type ExprRepeat struct {
	Bracket Delim
	Expr    Expr
	Semi    keyword.Token
	Len     Expr
}

// ExprUnary is a prefix operation, `-x`, `!x` or `*x`.
type ExprUnary struct {
	Op   keyword.Token
	Expr Expr
}

// ExprReference is a borrow, `&x` or `&mut x`.
type ExprReference struct {
	And  keyword.Token
	Mut  keyword.Token
	Expr Expr
}

// ExprBinary is a binary operation such as `a + b` or `a && b`.
type ExprBinary struct {
	Left  Expr
	Op    keyword.Token
	Right Expr
}

// ExprAssign is an assignment, `a = b`.
type ExprAssign struct {
	Left  Expr
	Eq    keyword.Token
	Right Expr
}

// ExprAssignOp is a compound assignment such as `a += b`.
type ExprAssignOp struct {
	Left  Expr
	Op    keyword.Token
	Right Expr
}

// ExprCast is a cast, `x as u8`.
type ExprCast struct {
	Expr Expr
	As   keyword.Token
	Type Type
}

// ExprRange is a range, `a..b`, `a..=b`, `a..`, `..b` or `..`.
type ExprRange struct {
	// Nil if absent.
	Start Expr
	Op    keyword.Token
	// Nil if absent.
	End Expr
}

// ExprCall is a function call, `f(a, b)`.
type ExprCall struct {
	Func  Expr
	Paren Delim
	Args  punctuated.Punctuated[Expr]
}

// ExprMethodCall is a method call, `x.f::<T>(a, b)`.
type ExprMethodCall struct {
	Receiver  Expr
	Dot       keyword.Token
	Method    Ident
	Turbofish *AngleBracketedArgs
	Paren     Delim
	Args      punctuated.Punctuated[Expr]
}

// ExprField is a field access, `x.name` or `x.0`.
type ExprField struct {
	Base   Expr
	Dot    keyword.Token
	Member Member
}

// ExprIndex is an index operation, `x[i]`.
type ExprIndex struct {
	Expr    Expr
	Bracket Delim
	Index   Expr
}

// ExprTry is the error propagation operator, `x?`.
type ExprTry struct {
	Expr     Expr
	Question keyword.Token
}

// ExprStruct is a struct literal, `Point { x: 1, y, ..base }`.
type ExprStruct struct {
	Path   Path
	Brace  Delim
	Fields punctuated.Punctuated[FieldValue]
	// The `..` of functional update syntax, and the expression after it.
	// Rest may be nil even when Dot2 is present.
	Dot2 keyword.Token
	Rest Expr
}

// ExprBlock is a block expression, possibly labeled or unsafe.
type ExprBlock struct {
	Label  *Label
	Unsafe keyword.Token
	Block  *Block
}

// ExprIf is an `if` expression. ElseBranch, if present, is either an
// [*ExprIf] or an [*ExprBlock].
type ExprIf struct {
	If         keyword.Token
	Cond       Expr
	Then       *Block
	Else       keyword.Token
	ElseBranch Expr
}

// ExprWhile is a `while` loop.
type ExprWhile struct {
	Label *Label
	While keyword.Token
	Cond  Expr
	Body  *Block
}

// ExprLoop is an unconditional `loop`.
type ExprLoop struct {
	Label *Label
	Loop  keyword.Token
	Body  *Block
}

// ExprReturn is `return`, with an optional value.
type ExprReturn struct {
	Return keyword.Token
	Expr   Expr
}

// ExprBreak is `break`, with an optional label and value.
type ExprBreak struct {
	Break keyword.Token
	Label *Lifetime
	Expr  Expr
}

// ExprContinue is `continue`, with an optional label.
type ExprContinue struct {
	Continue keyword.Token
	Label    *Lifetime
}

// Label is the label of a loop or block, `'outer:`.
type Label struct {
	Name  Lifetime
	Colon keyword.Token
}

// Member is the member named by a field access or struct literal field:
// either a name or a tuple index.
type Member struct {
	Name Ident
	// Set instead of Name for tuple fields.
	Index *LitInt
}

// FieldValue is one field of a struct literal. For shorthand fields such as
// the `y` in `Point { y }`, Colon is absent and Expr is the path `y`.
type FieldValue struct {
	Member Member
	Colon  keyword.Token
	Expr   Expr
}

func (*ExprLit) Kind() ExprKind        { return ExprKindLit }
func (*ExprPath) Kind() ExprKind       { return ExprKindPath }
func (*ExprParen) Kind() ExprKind      { return ExprKindParen }
func (*ExprTuple) Kind() ExprKind      { return ExprKindTuple }
func (*ExprArray) Kind() ExprKind      { return ExprKindArray }
func (*ExprRepeat) Kind() ExprKind     { return ExprKindRepeat }
func (*ExprUnary) Kind() ExprKind      { return ExprKindUnary }
func (*ExprReference) Kind() ExprKind  { return ExprKindReference }
func (*ExprBinary) Kind() ExprKind     { return ExprKindBinary }
func (*ExprAssign) Kind() ExprKind     { return ExprKindAssign }
func (*ExprAssignOp) Kind() ExprKind   { return ExprKindAssignOp }
func (*ExprCast) Kind() ExprKind       { return ExprKindCast }
func (*ExprRange) Kind() ExprKind      { return ExprKindRange }
func (*ExprCall) Kind() ExprKind       { return ExprKindCall }
func (*ExprMethodCall) Kind() ExprKind { return ExprKindMethodCall }
func (*ExprField) Kind() ExprKind      { return ExprKindField }
func (*ExprIndex) Kind() ExprKind      { return ExprKindIndex }
func (*ExprTry) Kind() ExprKind        { return ExprKindTry }
func (*ExprStruct) Kind() ExprKind     { return ExprKindStruct }
func (*ExprBlock) Kind() ExprKind      { return ExprKindBlock }
func (*ExprIf) Kind() ExprKind         { return ExprKindIf }
func (*ExprWhile) Kind() ExprKind      { return ExprKindWhile }
func (*ExprLoop) Kind() ExprKind       { return ExprKindLoop }
func (*ExprReturn) Kind() ExprKind     { return ExprKindReturn }
func (*ExprBreak) Kind() ExprKind      { return ExprKindBreak }
func (*ExprContinue) Kind() ExprKind   { return ExprKindContinue }

func (*ExprLit) isExpr()        {}
func (*ExprPath) isExpr()       {}
func (*ExprParen) isExpr()      {}
func (*ExprTuple) isExpr()      {}
func (*ExprArray) isExpr()      {}
func (*ExprRepeat) isExpr()     {}
func (*ExprUnary) isExpr()      {}
func (*ExprReference) isExpr()  {}
func (*ExprBinary) isExpr()     {}
func (*ExprAssign) isExpr()     {}
func (*ExprAssignOp) isExpr()   {}
func (*ExprCast) isExpr()       {}
func (*ExprRange) isExpr()      {}
func (*ExprCall) isExpr()       {}
func (*ExprMethodCall) isExpr() {}
func (*ExprField) isExpr()      {}
func (*ExprIndex) isExpr()      {}
func (*ExprTry) isExpr()        {}
func (*ExprStruct) isExpr()     {}
func (*ExprBlock) isExpr()      {}
func (*ExprIf) isExpr()         {}
func (*ExprWhile) isExpr()      {}
func (*ExprLoop) isExpr()       {}
func (*ExprReturn) isExpr()     {}
func (*ExprBreak) isExpr()      {}
func (*ExprContinue) isExpr()   {}

func (e *ExprLit) Span() source.Span        { return spanOf(e) }
func (e *ExprPath) Span() source.Span       { return spanOf(e) }
func (e *ExprParen) Span() source.Span      { return spanOf(e) }
func (e *ExprTuple) Span() source.Span      { return spanOf(e) }
func (e *ExprArray) Span() source.Span      { return spanOf(e) }
func (e *ExprRepeat) Span() source.Span     { return spanOf(e) }
func (e *ExprUnary) Span() source.Span      { return spanOf(e) }
func (e *ExprReference) Span() source.Span  { return spanOf(e) }
func (e *ExprBinary) Span() source.Span     { return spanOf(e) }
func (e *ExprAssign) Span() source.Span     { return spanOf(e) }
func (e *ExprAssignOp) Span() source.Span   { return spanOf(e) }
func (e *ExprCast) Span() source.Span       { return spanOf(e) }
func (e *ExprRange) Span() source.Span      { return spanOf(e) }
func (e *ExprCall) Span() source.Span       { return spanOf(e) }
func (e *ExprMethodCall) Span() source.Span { return spanOf(e) }
func (e *ExprField) Span() source.Span      { return spanOf(e) }
func (e *ExprIndex) Span() source.Span      { return spanOf(e) }
func (e *ExprTry) Span() source.Span        { return spanOf(e) }
func (e *ExprStruct) Span() source.Span     { return spanOf(e) }
func (e *ExprBlock) Span() source.Span      { return spanOf(e) }
func (e *ExprIf) Span() source.Span         { return spanOf(e) }
func (e *ExprWhile) Span() source.Span      { return spanOf(e) }
func (e *ExprLoop) Span() source.Span       { return spanOf(e) }
func (e *ExprReturn) Span() source.Span     { return spanOf(e) }
func (e *ExprBreak) Span() source.Span      { return spanOf(e) }
func (e *ExprContinue) Span() source.Span   { return spanOf(e) }

// Operator returns which operator this is.
func (e *ExprUnary) Operator() UnOp {
	switch e.Op.Text {
	case "*":
		return UnOpDeref
	case "!":
		return UnOpNot
	default:
		return UnOpNeg
	}
}

// Operator returns which operator this is.
func (e *ExprBinary) Operator() BinOp {
	op, _ := BinOpBySpelling(e.Op.Text)
	return op
}

// Operator returns which operator this is.
func (e *ExprAssignOp) Operator() BinOp {
	op, _ := BinOpBySpelling(e.Op.Text)
	return op
}

// Limits returns whether this range is closed or half-open.
func (e *ExprRange) Limits() RangeLimits {
	if e.Op.Text == string(keyword.DotDotEq) {
		return RangeClosed
	}
	return RangeHalfOpen
}

// ToTokens implements [quote.ToTokens].
func (e *ExprLit) ToTokens(b *quote.Builder) { b.Append(e.Lit) }

// ToTokens implements [quote.ToTokens].
func (e *ExprPath) ToTokens(b *quote.Builder) {
	if e.QSelf != nil {
		b.Append(e.QSelf)
	}
	b.Append(e.Path)
}

// ToTokens implements [quote.ToTokens].
func (e *ExprParen) ToTokens(b *quote.Builder) {
	e.Paren.render(b, token.Parens, func(b *quote.Builder) { b.Append(e.Expr) })
}

// ToTokens implements [quote.ToTokens].
func (e *ExprTuple) ToTokens(b *quote.Builder) {
	e.Paren.render(b, token.Parens, func(b *quote.Builder) {
		b.Append(e.Elems)
		// A one-element tuple needs its comma.
		if e.Elems.Len() == 1 && !e.Elems.Trailing() {
			b.Punct(",")
		}
	})
}

// ToTokens implements [quote.ToTokens].
func (e *ExprArray) ToTokens(b *quote.Builder) {
	e.Bracket.render(b, token.Brackets, func(b *quote.Builder) { b.Append(e.Elems) })
}

// ToTokens implements [quote.ToTokens].
func (e *ExprRepeat) ToTokens(b *quote.Builder) {
	e.Bracket.render(b, token.Brackets, func(b *quote.Builder) {
		b.Append(e.Expr, orPunct(e.Semi, keyword.Semi), e.Len)
	})
}

// ToTokens implements [quote.ToTokens].
func (e *ExprUnary) ToTokens(b *quote.Builder) { b.Append(e.Op, e.Expr) }

// ToTokens implements [quote.ToTokens].
func (e *ExprReference) ToTokens(b *quote.Builder) {
	b.Append(orPunct(e.And, keyword.And), e.Mut, e.Expr)
}

// ToTokens implements [quote.ToTokens].
func (e *ExprBinary) ToTokens(b *quote.Builder) { b.Append(e.Left, e.Op, e.Right) }

// ToTokens implements [quote.ToTokens].
func (e *ExprAssign) ToTokens(b *quote.Builder) {
	b.Append(e.Left, orPunct(e.Eq, keyword.Eq), e.Right)
}

// ToTokens implements [quote.ToTokens].
func (e *ExprAssignOp) ToTokens(b *quote.Builder) { b.Append(e.Left, e.Op, e.Right) }

// ToTokens implements [quote.ToTokens].
func (e *ExprCast) ToTokens(b *quote.Builder) {
	b.Append(e.Expr, orWord(e.As, keyword.As), e.Type)
}

// ToTokens implements [quote.ToTokens].
func (e *ExprRange) ToTokens(b *quote.Builder) {
	b.Append(e.Start, orPunct(e.Op, keyword.DotDot), e.End)
}

// ToTokens implements [quote.ToTokens].
func (e *ExprCall) ToTokens(b *quote.Builder) {
	b.Append(e.Func)
	e.Paren.render(b, token.Parens, func(b *quote.Builder) { b.Append(e.Args) })
}

// ToTokens implements [quote.ToTokens].
func (e *ExprMethodCall) ToTokens(b *quote.Builder) {
	b.Append(e.Receiver, orPunct(e.Dot, keyword.Dot), e.Method)
	if e.Turbofish != nil {
		b.Append(e.Turbofish)
	}
	e.Paren.render(b, token.Parens, func(b *quote.Builder) { b.Append(e.Args) })
}

// ToTokens implements [quote.ToTokens].
func (e *ExprField) ToTokens(b *quote.Builder) {
	b.Append(e.Base, orPunct(e.Dot, keyword.Dot), e.Member)
}

// ToTokens implements [quote.ToTokens].
func (e *ExprIndex) ToTokens(b *quote.Builder) {
	b.Append(e.Expr)
	e.Bracket.render(b, token.Brackets, func(b *quote.Builder) { b.Append(e.Index) })
}

// ToTokens implements [quote.ToTokens].
func (e *ExprTry) ToTokens(b *quote.Builder) {
	b.Append(e.Expr, orPunct(e.Question, keyword.Question))
}

// ToTokens implements [quote.ToTokens].
func (e *ExprStruct) ToTokens(b *quote.Builder) {
	b.Append(e.Path)
	e.Brace.render(b, token.Braces, func(b *quote.Builder) {
		b.Append(e.Fields)
		if !e.Dot2.IsZero() || e.Rest != nil {
			if !e.Fields.IsEmpty() && !e.Fields.Trailing() {
				b.Punct(",")
			}
			b.Append(orPunct(e.Dot2, keyword.DotDot), e.Rest)
		}
	})
}

// ToTokens implements [quote.ToTokens].
func (e *ExprBlock) ToTokens(b *quote.Builder) {
	if e.Label != nil {
		b.Append(e.Label)
	}
	b.Append(e.Unsafe, e.Block)
}

// ToTokens implements [quote.ToTokens].
func (e *ExprIf) ToTokens(b *quote.Builder) {
	b.Append(orWord(e.If, keyword.If), e.Cond, e.Then)
	if e.ElseBranch != nil {
		b.Append(orWord(e.Else, keyword.Else), e.ElseBranch)
	}
}

// ToTokens implements [quote.ToTokens].
func (e *ExprWhile) ToTokens(b *quote.Builder) {
	if e.Label != nil {
		b.Append(e.Label)
	}
	b.Append(orWord(e.While, keyword.While), e.Cond, e.Body)
}

// ToTokens implements [quote.ToTokens].
func (e *ExprLoop) ToTokens(b *quote.Builder) {
	if e.Label != nil {
		b.Append(e.Label)
	}
	b.Append(orWord(e.Loop, keyword.Loop), e.Body)
}

// ToTokens implements [quote.ToTokens].
func (e *ExprReturn) ToTokens(b *quote.Builder) {
	b.Append(orWord(e.Return, keyword.Return), e.Expr)
}

// ToTokens implements [quote.ToTokens].
func (e *ExprBreak) ToTokens(b *quote.Builder) {
	b.Append(orWord(e.Break, keyword.Break))
	if e.Label != nil {
		b.Append(*e.Label)
	}
	b.Append(e.Expr)
}

// ToTokens implements [quote.ToTokens].
func (e *ExprContinue) ToTokens(b *quote.Builder) {
	b.Append(orWord(e.Continue, keyword.Continue))
	if e.Label != nil {
		b.Append(*e.Label)
	}
}

// Span implements [source.Spanner].
func (l *Label) Span() source.Span { return spanOf(l) }

// ToTokens implements [quote.ToTokens].
func (l *Label) ToTokens(b *quote.Builder) {
	b.Append(l.Name, orPunct(l.Colon, keyword.Colon))
}

// Span implements [source.Spanner].
func (m Member) Span() source.Span { return spanOf(m) }

// ToTokens implements [quote.ToTokens].
func (m Member) ToTokens(b *quote.Builder) {
	if m.Index != nil {
		b.Append(m.Index)
		return
	}
	b.Append(m.Name)
}

// Span implements [source.Spanner].
func (f FieldValue) Span() source.Span { return spanOf(f) }

// ToTokens implements [quote.ToTokens].
func (f FieldValue) ToTokens(b *quote.Builder) {
	b.Append(f.Member)
	if !f.Colon.IsZero() || f.Member.Index != nil {
		b.Append(orPunct(f.Colon, keyword.Colon), f.Expr)
	}
}
