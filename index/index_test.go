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

package index_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synparse/synparse"
	"github.com/synparse/synparse/ast"
	"github.com/synparse/synparse/index"
	"github.com/synparse/synparse/source"
)

func TestIndex(t *testing.T) {
	t.Parallel()

	//           0         1
	//           0123456789012345
	const text = "fn f() { 1 + 2 }"
	file, err := synparse.ParseFile(source.NewFile("test.rs", text), ast.ParseFile)
	require.NoError(t, err)
	idx := index.Build(file)
	assert.Equal(t, "test.rs", idx.File().Path())

	// At the `+`, the binary expression is the innermost node.
	assert.Equal(t, []string{
		"*ast.File", "*ast.ItemFn", "*ast.Block", "*ast.StmtExpr", "*ast.ExprBinary",
	}, typeNames(idx.At(strings.Index(text, "+"))))

	lit, ok := idx.Innermost(strings.Index(text, "2")).(*ast.LitInt)
	require.True(t, ok)
	assert.Equal(t, "2", lit.Text)

	// The name of the function is inside its signature.
	ident, ok := idx.Innermost(3).(ast.Ident)
	require.True(t, ok)
	assert.Equal(t, "f", ident.Name)
	sig, ok := index.Enclosing[*ast.Signature](idx, 3)
	require.True(t, ok)
	assert.Equal(t, "f", sig.Ident.Name)
	fn, ok := index.Enclosing[*ast.ItemFn](idx, 13)
	require.True(t, ok)
	assert.Same(t, file.Items[0], fn)

	_, ok = index.Enclosing[*ast.ExprIf](idx, 13)
	assert.False(t, ok)

	assert.Nil(t, idx.Innermost(len(text)))
	assert.Empty(t, idx.At(-1))
}

func TestIndexSynthetic(t *testing.T) {
	t.Parallel()

	// Nodes built by hand have no spans and are left out.
	idx := index.Build(&ast.ExprPath{Path: ast.NewPath("a", "b")})
	assert.Zero(t, idx.Len())
	assert.Nil(t, idx.File())
	assert.Nil(t, idx.Innermost(0))
}

func typeNames(nodes []ast.Node) []string {
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = fmt.Sprintf("%T", n)
	}
	return names
}
