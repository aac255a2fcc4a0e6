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

package walk_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synparse/synparse"
	"github.com/synparse/synparse/ast"
	"github.com/synparse/synparse/walk"
)

func TestNodes(t *testing.T) {
	t.Parallel()

	expr, err := synparse.ParseString("a + 1", ast.ParseExpr)
	require.NoError(t, err)

	var got []string
	err = walk.Nodes(expr, func(n ast.Node) error {
		got = append(got, fmt.Sprintf("%T", n))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"*ast.ExprBinary",
		"*ast.ExprPath", "ast.Path", "ast.PathSegment", "ast.Ident",
		"*ast.ExprLit", "*ast.LitInt",
	}, got)
}

func TestNodesEnterAndExit(t *testing.T) {
	t.Parallel()

	expr, err := synparse.ParseString("(a, 1)", ast.ParseExpr)
	require.NoError(t, err)

	var events []string
	err = walk.NodesEnterAndExit(expr,
		func(n ast.Node) error {
			events = append(events, fmt.Sprintf("enter %T", n))
			if _, ok := n.(*ast.ExprPath); ok {
				return walk.SkipChildren
			}
			return nil
		},
		func(n ast.Node) error {
			events = append(events, fmt.Sprintf("exit %T", n))
			return nil
		},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"enter *ast.ExprTuple",
		"enter *ast.ExprPath",
		"exit *ast.ExprPath",
		"enter *ast.ExprLit",
		"enter *ast.LitInt",
		"exit *ast.LitInt",
		"exit *ast.ExprLit",
		"exit *ast.ExprTuple",
	}, events)
}

func TestNodesWithParents(t *testing.T) {
	t.Parallel()

	expr, err := synparse.ParseString("-x", ast.ParseExpr)
	require.NoError(t, err)

	depth := make(map[string]int)
	err = walk.NodesWithParents(expr, func(n ast.Node, parents []ast.Node) error {
		depth[fmt.Sprintf("%T", n)] = len(parents)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"*ast.ExprUnary":  0,
		"*ast.ExprPath":   1,
		"ast.Path":        2,
		"ast.PathSegment": 3,
		"ast.Ident":       4,
	}, depth)
}

func TestNodesStops(t *testing.T) {
	t.Parallel()

	expr, err := synparse.ParseString("f(1, 2, 3)", ast.ParseExpr)
	require.NoError(t, err)

	stop := errors.New("stop")
	var lits int
	err = walk.Nodes(expr, func(n ast.Node) error {
		if _, ok := n.(*ast.LitInt); ok {
			lits++
			if lits == 2 {
				return stop
			}
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 2, lits)

	assert.NoError(t, walk.Nodes(nil, func(ast.Node) error {
		t.Fatal("called for nil root")
		return nil
	}))
}
