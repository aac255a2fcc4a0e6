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

import "fmt"

// Precedence is the binding strength of an operator. Larger values bind
// more tightly.
type Precedence int8

const (
	PrecAssign  Precedence = 1 + iota // = += -= ... (right-associative)
	PrecRange                         // .. ..= (non-associative)
	PrecOr                            // ||
	PrecAnd                           // &&
	PrecCompare                       // == != < > <= >= (non-associative)
	PrecBitOr                         // |
	PrecBitXor                        // ^
	PrecBitAnd                        // &
	PrecShift                         // << >>
	PrecArith                         // + -
	PrecTerm                          // * / %
	PrecCast                          // as
	PrecPrefix                        // - ! * & &mut
	PrecPostfix                       // calls, fields, indexing, ?
)

var precNames = [...]string{
	PrecAssign:  "PrecAssign",
	PrecRange:   "PrecRange",
	PrecOr:      "PrecOr",
	PrecAnd:     "PrecAnd",
	PrecCompare: "PrecCompare",
	PrecBitOr:   "PrecBitOr",
	PrecBitXor:  "PrecBitXor",
	PrecBitAnd:  "PrecBitAnd",
	PrecShift:   "PrecShift",
	PrecArith:   "PrecArith",
	PrecTerm:    "PrecTerm",
	PrecCast:    "PrecCast",
	PrecPrefix:  "PrecPrefix",
	PrecPostfix: "PrecPostfix",
}

// String implements [fmt.Stringer].
func (p Precedence) String() string {
	return kindName(precNames[:], p, "Precedence")
}

// Assoc is the associativity of a precedence level.
type Assoc int8

const (
	AssocLeft Assoc = iota
	AssocRight
	AssocNone
)

// Assoc returns the associativity of operators at this level.
func (p Precedence) Assoc() Assoc {
	switch p {
	case PrecAssign:
		return AssocRight
	case PrecRange, PrecCompare:
		return AssocNone
	default:
		return AssocLeft
	}
}

// BinOp is a binary operator, including compound assignments.
type BinOp int8

const (
	BinOpAdd BinOp = 1 + iota // +
	BinOpSub                  // -
	BinOpMul                  // *
	BinOpDiv                  // /
	BinOpRem                  // %
	BinOpAnd                  // &&
	BinOpOr                   // ||
	BinOpBitXor               // ^
	BinOpBitAnd               // &
	BinOpBitOr                // |
	BinOpShl                  // <<
	BinOpShr                  // >>
	BinOpEq                   // ==
	BinOpLt                   // <
	BinOpLe                   // <=
	BinOpNe                   // !=
	BinOpGe                   // >=
	BinOpGt                   // >

	BinOpAddAssign    // +=
	BinOpSubAssign    // -=
	BinOpMulAssign    // *=
	BinOpDivAssign    // /=
	BinOpRemAssign    // %=
	BinOpBitXorAssign // ^=
	BinOpBitAndAssign // &=
	BinOpBitOrAssign  // |=
	BinOpShlAssign    // <<=
	BinOpShrAssign    // >>=
)

var binOpSpellings = [...]string{
	BinOpAdd:    "+",
	BinOpSub:    "-",
	BinOpMul:    "*",
	BinOpDiv:    "/",
	BinOpRem:    "%",
	BinOpAnd:    "&&",
	BinOpOr:     "||",
	BinOpBitXor: "^",
	BinOpBitAnd: "&",
	BinOpBitOr:  "|",
	BinOpShl:    "<<",
	BinOpShr:    ">>",
	BinOpEq:     "==",
	BinOpLt:     "<",
	BinOpLe:     "<=",
	BinOpNe:     "!=",
	BinOpGe:     ">=",
	BinOpGt:     ">",

	BinOpAddAssign:    "+=",
	BinOpSubAssign:    "-=",
	BinOpMulAssign:    "*=",
	BinOpDivAssign:    "/=",
	BinOpRemAssign:    "%=",
	BinOpBitXorAssign: "^=",
	BinOpBitAndAssign: "&=",
	BinOpBitOrAssign:  "|=",
	BinOpShlAssign:    "<<=",
	BinOpShrAssign:    ">>=",
}

var binOpsBySpelling = func() map[string]BinOp {
	m := make(map[string]BinOp, len(binOpSpellings))
	for op, spelling := range binOpSpellings {
		if spelling != "" {
			m[spelling] = BinOp(op)
		}
	}
	return m
}()

// BinOpBySpelling looks up a binary operator by its spelling.
func BinOpBySpelling(spelling string) (BinOp, bool) {
	op, ok := binOpsBySpelling[spelling]
	return op, ok
}

// String implements [fmt.Stringer], returning the operator's spelling.
func (op BinOp) String() string {
	if op <= 0 || int(op) >= len(binOpSpellings) {
		return fmt.Sprintf("BinOp(%d)", int(op))
	}
	return binOpSpellings[op]
}

// IsAssign returns whether this is a compound assignment, such as +=.
func (op BinOp) IsAssign() bool {
	return op >= BinOpAddAssign
}

// Precedence returns the precedence level of this operator.
func (op BinOp) Precedence() Precedence {
	switch op {
	case BinOpMul, BinOpDiv, BinOpRem:
		return PrecTerm
	case BinOpAdd, BinOpSub:
		return PrecArith
	case BinOpShl, BinOpShr:
		return PrecShift
	case BinOpBitAnd:
		return PrecBitAnd
	case BinOpBitXor:
		return PrecBitXor
	case BinOpBitOr:
		return PrecBitOr
	case BinOpEq, BinOpLt, BinOpLe, BinOpNe, BinOpGe, BinOpGt:
		return PrecCompare
	case BinOpAnd:
		return PrecAnd
	case BinOpOr:
		return PrecOr
	default:
		return PrecAssign
	}
}

// UnOp is a prefix operator.
type UnOp int8

const (
	UnOpDeref UnOp = 1 + iota // *
	UnOpNot                   // !
	UnOpNeg                   // -
)

// String implements [fmt.Stringer], returning the operator's spelling.
func (op UnOp) String() string {
	switch op {
	case UnOpDeref:
		return "*"
	case UnOpNot:
		return "!"
	case UnOpNeg:
		return "-"
	default:
		return fmt.Sprintf("UnOp(%d)", int(op))
	}
}

// RangeLimits is whether a range is half-open or closed.
type RangeLimits int8

const (
	RangeHalfOpen RangeLimits = iota // ..
	RangeClosed                      // ..=
)
