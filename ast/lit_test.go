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
	"github.com/synparse/synparse/report"
)

func TestLitValues(t *testing.T) {
	t.Parallel()

	i := mustParse(t, ast.ParseLit, "0x1_Fu8").(*ast.LitInt)
	assert.Equal(t, 16, i.Base())
	assert.Equal(t, "1F", i.Digits())
	assert.Equal(t, "u8", i.Suffix())
	v, ok := i.Value()
	require.True(t, ok)
	assert.Equal(t, int64(31), v.Int64())

	// Values beyond 64 bits are still exact.
	i = mustParse(t, ast.ParseLit, "340282366920938463463374607431768211455u128").(*ast.LitInt)
	v, ok = i.Value()
	require.True(t, ok)
	assert.Equal(t, 128, v.BitLen())

	f := mustParse(t, ast.ParseLit, "1.5e3f64").(*ast.LitFloat)
	assert.Equal(t, "f64", f.Suffix())
	fv, err := f.Value()
	require.NoError(t, err)
	assert.InDelta(t, 1500.0, fv, 0)

	f = mustParse(t, ast.ParseLit, "2f32").(*ast.LitFloat)
	assert.Equal(t, "f32", f.Suffix())

	s := mustParse(t, ast.ParseLit, `"a\tb\u{1F600}\x41"`).(*ast.LitStr)
	sv, err := s.Value()
	require.NoError(t, err)
	assert.Equal(t, "a\tb\U0001F600A", sv)

	s = mustParse(t, ast.ParseLit, `r#"no \escapes "here""#`).(*ast.LitStr)
	sv, err = s.Value()
	require.NoError(t, err)
	assert.Equal(t, `no \escapes "here"`, sv)

	c := mustParse(t, ast.ParseLit, `'\''`).(*ast.LitChar)
	cv, err := c.Value()
	require.NoError(t, err)
	assert.Equal(t, '\'', cv)

	b := mustParse(t, ast.ParseLit, `b'\n'`).(*ast.LitByte)
	bv, err := b.Value()
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), bv)

	bs := mustParse(t, ast.ParseLit, `b"ab\0"`).(*ast.LitByteStr)
	bsv, err := bs.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("ab\x00"), bsv)

	tr := mustParse(t, ast.ParseLit, "true").(*ast.LitBool)
	assert.True(t, tr.Value)
}

func TestLitSuffixErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text, msg string
	}{
		{"1x", "invalid suffix `x` for integer literal"},
		{"1u7", "invalid suffix `u7` for integer literal"},
		{"1.0x", "invalid suffix `x` for float literal"},
		{"0o7i9", "invalid suffix `i9` for integer literal"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			err := parseError(t, ast.ParseLit, tt.text)
			assert.Equal(t, report.Malformed, err.Kind)
			assert.Equal(t, tt.msg, err.Message)
		})
	}

	err := parseError(t, ast.ParseLit, "x")
	assert.Equal(t, "expected literal, found `x`", err.Message)
}
