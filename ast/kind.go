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

// ExprKind is a kind of [Expr].
type ExprKind int8

const (
	ExprKindLit ExprKind = 1 + iota
	ExprKindPath
	ExprKindParen
	ExprKindTuple
	ExprKindArray
	ExprKindRepeat
	ExprKindUnary
	ExprKindReference
	ExprKindBinary
	ExprKindAssign
	ExprKindAssignOp
	ExprKindCast
	ExprKindRange
	ExprKindCall
	ExprKindMethodCall
	ExprKindField
	ExprKindIndex
	ExprKindTry
	ExprKindStruct
	ExprKindBlock
	ExprKindIf
	ExprKindWhile
	ExprKindLoop
	ExprKindReturn
	ExprKindBreak
	ExprKindContinue
	ExprKindMatch
	ExprKindForLoop
	ExprKindLet
	ExprKindClosure
)

var exprKindNames = [...]string{
	ExprKindLit:        "ExprKindLit",
	ExprKindPath:       "ExprKindPath",
	ExprKindParen:      "ExprKindParen",
	ExprKindTuple:      "ExprKindTuple",
	ExprKindArray:      "ExprKindArray",
	ExprKindRepeat:     "ExprKindRepeat",
	ExprKindUnary:      "ExprKindUnary",
	ExprKindReference:  "ExprKindReference",
	ExprKindBinary:     "ExprKindBinary",
	ExprKindAssign:     "ExprKindAssign",
	ExprKindAssignOp:   "ExprKindAssignOp",
	ExprKindCast:       "ExprKindCast",
	ExprKindRange:      "ExprKindRange",
	ExprKindCall:       "ExprKindCall",
	ExprKindMethodCall: "ExprKindMethodCall",
	ExprKindField:      "ExprKindField",
	ExprKindIndex:      "ExprKindIndex",
	ExprKindTry:        "ExprKindTry",
	ExprKindStruct:     "ExprKindStruct",
	ExprKindBlock:      "ExprKindBlock",
	ExprKindIf:         "ExprKindIf",
	ExprKindWhile:      "ExprKindWhile",
	ExprKindLoop:       "ExprKindLoop",
	ExprKindReturn:     "ExprKindReturn",
	ExprKindBreak:      "ExprKindBreak",
	ExprKindContinue:   "ExprKindContinue",
	ExprKindMatch:      "ExprKindMatch",
	ExprKindForLoop:    "ExprKindForLoop",
	ExprKindLet:        "ExprKindLet",
	ExprKindClosure:    "ExprKindClosure",
}

// String implements [fmt.Stringer].
func (k ExprKind) String() string { return kindName(exprKindNames[:], k, "ExprKind") }

// TypeKind is a kind of [Type].
type TypeKind int8

const (
	TypeKindPath TypeKind = 1 + iota
	TypeKindReference
	TypeKindPtr
	TypeKindSlice
	TypeKindArray
	TypeKindTuple
	TypeKindParen
	TypeKindNever
	TypeKindInfer
	TypeKindBareFn
	TypeKindImplTrait
	TypeKindTraitObject
)

var typeKindNames = [...]string{
	TypeKindPath:        "TypeKindPath",
	TypeKindReference:   "TypeKindReference",
	TypeKindPtr:         "TypeKindPtr",
	TypeKindSlice:       "TypeKindSlice",
	TypeKindArray:       "TypeKindArray",
	TypeKindTuple:       "TypeKindTuple",
	TypeKindParen:       "TypeKindParen",
	TypeKindNever:       "TypeKindNever",
	TypeKindInfer:       "TypeKindInfer",
	TypeKindBareFn:      "TypeKindBareFn",
	TypeKindImplTrait:   "TypeKindImplTrait",
	TypeKindTraitObject: "TypeKindTraitObject",
}

// String implements [fmt.Stringer].
func (k TypeKind) String() string { return kindName(typeKindNames[:], k, "TypeKind") }

// PatKind is a kind of [Pat].
type PatKind int8

const (
	PatKindWild PatKind = 1 + iota
	PatKindIdent
	PatKindLit
	PatKindPath
	PatKindTuple
	PatKindTupleStruct
	PatKindReference
	PatKindRest
	PatKindOr
)

var patKindNames = [...]string{
	PatKindWild:        "PatKindWild",
	PatKindIdent:       "PatKindIdent",
	PatKindLit:         "PatKindLit",
	PatKindPath:        "PatKindPath",
	PatKindTuple:       "PatKindTuple",
	PatKindTupleStruct: "PatKindTupleStruct",
	PatKindReference:   "PatKindReference",
	PatKindRest:        "PatKindRest",
	PatKindOr:          "PatKindOr",
}

// String implements [fmt.Stringer].
func (k PatKind) String() string { return kindName(patKindNames[:], k, "PatKind") }

// ItemKind is a kind of [Item].
type ItemKind int8

const (
	ItemKindStruct ItemKind = 1 + iota
	ItemKindEnum
	ItemKindUnion
	ItemKindFn
	ItemKindConst
	ItemKindType
)

var itemKindNames = [...]string{
	ItemKindStruct: "ItemKindStruct",
	ItemKindEnum:   "ItemKindEnum",
	ItemKindUnion:  "ItemKindUnion",
	ItemKindFn:     "ItemKindFn",
	ItemKindConst:  "ItemKindConst",
	ItemKindType:   "ItemKindType",
}

// String implements [fmt.Stringer].
func (k ItemKind) String() string { return kindName(itemKindNames[:], k, "ItemKind") }

// StmtKind is a kind of [Stmt].
type StmtKind int8

const (
	StmtKindLocal StmtKind = 1 + iota
	StmtKindItem
	StmtKindExpr
)

var stmtKindNames = [...]string{
	StmtKindLocal: "StmtKindLocal",
	StmtKindItem:  "StmtKindItem",
	StmtKindExpr:  "StmtKindExpr",
}

// String implements [fmt.Stringer].
func (k StmtKind) String() string { return kindName(stmtKindNames[:], k, "StmtKind") }

// GenericParamKind is a kind of [GenericParam].
//
// The kinds are declared in the order they must appear in a parameter list.
type GenericParamKind int8

const (
	GenericParamKindLifetime GenericParamKind = 1 + iota
	GenericParamKindType
	GenericParamKindConst
)

var genericParamKindNames = [...]string{
	GenericParamKindLifetime: "lifetime",
	GenericParamKindType:     "type",
	GenericParamKindConst:    "const",
}

// String implements [fmt.Stringer].
func (k GenericParamKind) String() string {
	return kindName(genericParamKindNames[:], k, "GenericParamKind")
}

// GenericArgumentKind is a kind of [GenericArgument].
type GenericArgumentKind int8

const (
	GenericArgumentKindLifetime GenericArgumentKind = 1 + iota
	GenericArgumentKindType
	GenericArgumentKindConst
	GenericArgumentKindBinding
	GenericArgumentKindConstraint
)

var genericArgumentKindNames = [...]string{
	GenericArgumentKindLifetime:   "GenericArgumentKindLifetime",
	GenericArgumentKindType:       "GenericArgumentKindType",
	GenericArgumentKindConst:      "GenericArgumentKindConst",
	GenericArgumentKindBinding:    "GenericArgumentKindBinding",
	GenericArgumentKindConstraint: "GenericArgumentKindConstraint",
}

// String implements [fmt.Stringer].
func (k GenericArgumentKind) String() string {
	return kindName(genericArgumentKindNames[:], k, "GenericArgumentKind")
}

// BoundKind is a kind of [TypeParamBound].
type BoundKind int8

const (
	BoundKindTrait BoundKind = 1 + iota
	BoundKindLifetime
)

// String implements [fmt.Stringer].
func (k BoundKind) String() string {
	return kindName([]string{BoundKindTrait: "BoundKindTrait", BoundKindLifetime: "BoundKindLifetime"}, k, "BoundKind")
}

// PredicateKind is a kind of [WherePredicate].
type PredicateKind int8

const (
	PredicateKindLifetime PredicateKind = 1 + iota
	PredicateKindType
)

// String implements [fmt.Stringer].
func (k PredicateKind) String() string {
	return kindName([]string{PredicateKindLifetime: "PredicateKindLifetime", PredicateKindType: "PredicateKindType"}, k, "PredicateKind")
}

// MetaKind is a kind of [Meta].
type MetaKind int8

const (
	MetaKindPath MetaKind = 1 + iota
	MetaKindList
	MetaKindNameValue
)

// String implements [fmt.Stringer].
func (k MetaKind) String() string {
	return kindName([]string{MetaKindPath: "MetaKindPath", MetaKindList: "MetaKindList", MetaKindNameValue: "MetaKindNameValue"}, k, "MetaKind")
}

// LitKind is a kind of [Lit].
type LitKind int8

const (
	LitKindStr LitKind = 1 + iota
	LitKindByteStr
	LitKindByte
	LitKindChar
	LitKindInt
	LitKindFloat
	LitKindBool
)

var litKindNames = [...]string{
	LitKindStr:     "LitKindStr",
	LitKindByteStr: "LitKindByteStr",
	LitKindByte:    "LitKindByte",
	LitKindChar:    "LitKindChar",
	LitKindInt:     "LitKindInt",
	LitKindFloat:   "LitKindFloat",
	LitKindBool:    "LitKindBool",
}

// String implements [fmt.Stringer].
func (k LitKind) String() string { return kindName(litKindNames[:], k, "LitKind") }

// VisibilityKind is a kind of [Visibility].
type VisibilityKind int8

const (
	VisibilityKindInherited VisibilityKind = iota
	VisibilityKindPublic
	VisibilityKindRestricted
)

// String implements [fmt.Stringer].
func (k VisibilityKind) String() string {
	return kindName([]string{
		VisibilityKindInherited:  "VisibilityKindInherited",
		VisibilityKindPublic:     "VisibilityKindPublic",
		VisibilityKindRestricted: "VisibilityKindRestricted",
	}, k, "VisibilityKind")
}

// FieldsKind is a kind of [Fields].
type FieldsKind int8

const (
	FieldsKindUnit FieldsKind = iota
	FieldsKindNamed
	FieldsKindUnnamed
)

// String implements [fmt.Stringer].
func (k FieldsKind) String() string {
	return kindName([]string{
		FieldsKindUnit:    "FieldsKindUnit",
		FieldsKindNamed:   "FieldsKindNamed",
		FieldsKindUnnamed: "FieldsKindUnnamed",
	}, k, "FieldsKind")
}

func kindName[K ~int8](names []string, k K, typ string) string {
	if k < 0 || int(k) >= len(names) || names[k] == "" {
		return fmt.Sprintf("%s(%d)", typ, int(k))
	}
	return names[k]
}
