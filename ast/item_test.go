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

	"github.com/synparse/synparse/ast"
	"github.com/synparse/synparse/quote"
	"github.com/synparse/synparse/report"
)

func TestStructShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text   string
		kind   ast.FieldsKind
		fields int
		semi   bool
		where  bool
	}{
		{"struct S;", ast.FieldsKindUnit, 0, true, false},
		{"struct S<T> where T: Copy;", ast.FieldsKindUnit, 0, true, true},
		{"struct S(u8, pub T,);", ast.FieldsKindUnnamed, 2, true, false},
		{"struct S<T>(T) where T: Copy;", ast.FieldsKindUnnamed, 1, true, true},
		{"struct S { a: u8, pub(crate) b: T }", ast.FieldsKindNamed, 2, false, false},
		{"struct S<T> where T: Copy { a: T, }", ast.FieldsKindNamed, 1, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			item := mustParse(t, ast.ParseItem, tt.text)
			st, ok := item.(*ast.ItemStruct)
			require.True(t, ok, "%T", item)
			assert.Equal(t, tt.kind, st.Fields.Kind)
			assert.Equal(t, tt.fields, st.Fields.Len())
			assert.Equal(t, tt.semi, !st.Semi.IsZero())
			assert.Equal(t, tt.where, st.Generics.Where != nil)
			assertRoundTrips(t, item, ast.ParseItem)
		})
	}

	err := parseError(t, ast.ParseItem, "struct S")
	assert.Equal(t, report.UnexpectedEOF, err.Kind)
	assert.Equal(t, "unexpected end of input, expected one of `;`, `{`, or `(`", err.Message)
}

func TestEnums(t *testing.T) {
	t.Parallel()

	item := mustParse(t, ast.ParseItem, "pub enum E<T> { A, B(T), C { x: u8 }, D = 1 << 3, }")
	e := item.(*ast.ItemEnum)
	assert.Equal(t, ast.VisibilityKindPublic, e.Vis.Kind())
	require.Equal(t, 4, e.Variants.Len())
	assert.True(t, e.Variants.Trailing())

	assert.Equal(t, ast.FieldsKindUnit, e.Variants.At(0).Fields.Kind)
	assert.Equal(t, ast.FieldsKindUnnamed, e.Variants.At(1).Fields.Kind)
	assert.Equal(t, ast.FieldsKindNamed, e.Variants.At(2).Fields.Kind)
	assert.IsType(t, &ast.ExprBinary{}, e.Variants.At(3).Discriminant)

	err := parseError(t, ast.ParseItem, "enum E { pub A }")
	assert.Equal(t, "visibility qualifiers are not permitted on enum variants", err.Message)
	assert.Equal(t, 9, err.Span.Start)
	assert.Equal(t, 12, err.Span.End)
}

func TestFunctions(t *testing.T) {
	t.Parallel()

	item := mustParse(t, ast.ParseItem,
		`pub const unsafe extern "C" fn f<'a, T>(&'a mut self, (a, b): (u8, u8), _: T) -> &'a T where T: Copy { a }`)
	fn := item.(*ast.ItemFn)
	sig := fn.Sig
	assert.False(t, sig.Const.IsZero())
	assert.False(t, sig.Unsafe.IsZero())
	require.NotNil(t, sig.Abi)
	require.NotNil(t, sig.Abi.Name)
	assert.Equal(t, `"C"`, sig.Abi.Name.Text)
	assert.Equal(t, "f", sig.Ident.Name)
	assert.Equal(t, 2, sig.Generics.Params.Len())
	require.NotNil(t, sig.Generics.Where)
	assert.NotNil(t, sig.Output.Type)

	recv := sig.Receiver()
	require.NotNil(t, recv)
	require.NotNil(t, recv.Lifetime)
	assert.False(t, recv.Mut.IsZero())

	require.Equal(t, 3, sig.Inputs.Len())
	tuple := sig.Inputs.At(1).(*ast.PatType)
	assert.IsType(t, &ast.PatTuple{}, tuple.Pat)
	wild := sig.Inputs.At(2).(*ast.PatType)
	assert.IsType(t, &ast.PatWild{}, wild.Pat)

	// The where clause renders after the return type.
	assertRoundTrips(t, item, ast.ParseItem)

	item = mustParse(t, ast.ParseItem, "fn new(self: Box<Self>) {}")
	recv = item.(*ast.ItemFn).Sig.Receiver()
	require.NotNil(t, recv)
	assert.NotNil(t, recv.Type)

	item = mustParse(t, ast.ParseItem, "fn free(x: u8) {}")
	assert.Nil(t, item.(*ast.ItemFn).Sig.Receiver())

	err := parseError(t, ast.ParseItem, "fn f(x: u8, self) {}")
	assert.Equal(t, "unexpected `self` parameter in function", err.Message)
	assert.Equal(t, 12, err.Span.Start)

	err = parseError(t, ast.ParseItem, "extern 1 fn f() {}")
	assert.Equal(t, "expected ABI name string, found 1", err.Message)

	err = parseError(t, ast.ParseItem, "fn match() {}")
	assert.Equal(t, "expected identifier, found keyword `match`", err.Message)
}

func TestOtherItems(t *testing.T) {
	t.Parallel()

	item := mustParse(t, ast.ParseItem, "const _: () = ();")
	c := item.(*ast.ItemConst)
	assert.Equal(t, "_", c.Ident.Name)

	item = mustParse(t, ast.ParseItem, "pub(crate) type Map<K> = Vec<(K, u8)>;")
	ty := item.(*ast.ItemType)
	assert.Equal(t, ast.VisibilityKindRestricted, ty.Vis.Kind())
	assert.Equal(t, 1, ty.Generics.Params.Len())

	item = mustParse(t, ast.ParseItem, "union U { a: u8, b: f32 }")
	u := item.(*ast.ItemUnion)
	assert.Equal(t, 2, u.Fields.Len())

	// A contextual keyword.
	item = mustParse(t, ast.ParseItem, "struct union;")
	assert.Equal(t, "union", item.(*ast.ItemStruct).Ident.Name)

	err := parseError(t, ast.ParseItem, "let x = 1;")
	assert.Equal(t, "expected item, found `let`", err.Message)
}

func TestAttributes(t *testing.T) {
	t.Parallel()

	item := mustParse(t, ast.ParseItem,
		`#[derive(Clone, Debug)] #[doc = "hi"] #[cfg_attr(test, allow(dead_code))] struct S;`)
	attrs := item.Attributes()
	require.Len(t, attrs, 3)
	for _, attr := range attrs {
		assert.False(t, attr.IsInner())
	}

	derive := attrs[0].Meta.(*ast.MetaList)
	assert.True(t, derive.GetPath().IsIdent("derive"))
	nested, err := derive.ParseNested()
	require.NoError(t, err)
	require.Equal(t, 2, nested.Len())
	assert.True(t, nested.At(0).GetPath().IsIdent("Clone"))
	assert.True(t, nested.At(1).GetPath().IsIdent("Debug"))

	doc := attrs[1].Meta.(*ast.MetaNameValue)
	lit := doc.Value.(*ast.ExprLit).Lit.(*ast.LitStr)
	value, err := lit.Value()
	require.NoError(t, err)
	assert.Equal(t, "hi", value)

	cfg := attrs[2].Meta.(*ast.MetaList)
	nested, err = cfg.ParseNested()
	require.NoError(t, err)
	require.Equal(t, 2, nested.Len())
	assert.Equal(t, ast.MetaKindPath, nested.At(0).Kind())
	assert.Equal(t, ast.MetaKindList, nested.At(1).Kind())

	// Arbitrary tokens are kept until asked for.
	item = mustParse(t, ast.ParseItem, "#[weird(1 + , ;)] struct S;")
	list := item.Attributes()[0].Meta.(*ast.MetaList)
	assert.Len(t, list.Tokens, 4)
	_, err = list.ParseNested()
	require.Error(t, err)

	file := mustParse(t, ast.ParseFile, "#![no_std]\n#![allow(unused)]\nfn main() {}")
	require.Len(t, file.Attrs, 2)
	assert.True(t, file.Attrs[0].IsInner())
	assert.Len(t, file.Items, 1)
	assertRoundTrips(t, file, ast.ParseFile)
}

func TestVisibility(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		kind ast.VisibilityKind
		path string
	}{
		{"", ast.VisibilityKindInherited, ""},
		{"pub", ast.VisibilityKindPublic, ""},
		{"pub(crate)", ast.VisibilityKindRestricted, "crate"},
		{"pub(self)", ast.VisibilityKindRestricted, "self"},
		{"pub(super)", ast.VisibilityKindRestricted, "super"},
		{"pub(in crate::a::b)", ast.VisibilityKindRestricted, "crate :: a :: b"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			vis := mustParse(t, ast.ParseVisibility, tt.text)
			require.NotNil(t, vis)
			assert.Equal(t, tt.kind, vis.Kind())
			if r, ok := vis.(*ast.VisRestricted); ok {
				assert.Equal(t, tt.path, quote.String(r.Path))
			}
		})
	}

	// Parentheses that are not a restriction belong to what follows.
	item := mustParse(t, ast.ParseItem, "struct S(pub (u8, u8));")
	field := item.(*ast.ItemStruct).Fields.Fields.At(0)
	assert.Equal(t, ast.VisibilityKindPublic, field.Vis.Kind())
	assert.IsType(t, &ast.TypeTuple{}, field.Type)
}

func TestPatterns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		kind ast.PatKind
	}{
		{"_", ast.PatKindWild},
		{"..", ast.PatKindRest},
		{"x", ast.PatKindIdent},
		{"None", ast.PatKindIdent},
		{"ref mut x @ 1", ast.PatKindIdent},
		{"-1", ast.PatKindLit},
		{"true", ast.PatKindLit},
		{"&mut x", ast.PatKindReference},
		{"&&x", ast.PatKindReference},
		{"(a, ..)", ast.PatKindTuple},
		{"(a)", ast.PatKindTuple},
		{"Some(x)", ast.PatKindTupleStruct},
		{"a::B", ast.PatKindPath},
		{"<T as Tr>::C", ast.PatKindPath},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			pat := mustParse(t, ast.ParsePat, tt.text)
			assert.Equal(t, tt.kind, pat.Kind())
			assertRoundTrips(t, pat, ast.ParsePat)
		})
	}

	pat := mustParse(t, ast.ParsePat, "ref mut x @ 1")
	id := pat.(*ast.PatIdent)
	assert.False(t, id.Ref.IsZero())
	assert.False(t, id.Mut.IsZero())
	assert.IsType(t, &ast.PatLit{}, id.Subpat)

	pat = mustParse(t, ast.ParsePat, "&&x")
	inner := pat.(*ast.PatReference).Pat
	assert.IsType(t, &ast.PatReference{}, inner)

	// A single element without a comma stays unpunctuated.
	pat = mustParse(t, ast.ParsePat, "(a)")
	tuple := pat.(*ast.PatTuple)
	assert.Equal(t, 1, tuple.Elems.Len())
	assert.False(t, tuple.Elems.Trailing())
	assert.Equal(t, "(a)", quote.String(pat))

	err := parseError(t, ast.ParsePat, "+")
	assert.Equal(t, "expected pattern, found `+`", err.Message)
}

func TestDeriveInput(t *testing.T) {
	t.Parallel()

	d := mustParse(t, ast.ParseDeriveInput, "#[derive(Debug)] pub struct P<T> where T: Copy { x: T, y: T }")
	assert.Equal(t, "P", d.Ident.Name)
	assert.Len(t, d.Attrs, 1)
	data, ok := d.Data.(*ast.DataStruct)
	require.True(t, ok, "%T", d.Data)
	assert.Equal(t, 2, data.Fields.Len())
	assert.Equal(t, "struct", data.Keyword().Text)
	require.NotNil(t, d.Generics.Where)
	assertRoundTrips(t, d, ast.ParseDeriveInput)

	item := d.Item()
	require.IsType(t, &ast.ItemStruct{}, item)
	assert.Equal(t, quote.String(d), quote.String(item))

	d = mustParse(t, ast.ParseDeriveInput, "enum E { A, B(u8) }")
	assert.Equal(t, 2, d.Data.(*ast.DataEnum).Variants.Len())
	assert.IsType(t, &ast.ItemEnum{}, d.Item())

	d = mustParse(t, ast.ParseDeriveInput, "union U { a: u8 }")
	assert.IsType(t, &ast.DataUnion{}, d.Data)

	err := parseError(t, ast.ParseDeriveInput, "fn f() {}")
	assert.Equal(t, "expected one of `struct`, `enum`, or `union`, found `fn`", err.Message)
}
