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

// Package walk provides helper functions for traversing every node in a
// syntax tree.
//
// Children are found by looking through the exported fields of each node,
// so any node type in package ast, including ones added later, is walked
// without being listed here.
package walk

import (
	"errors"
	"reflect"

	"github.com/synparse/synparse/ast"
	"github.com/synparse/synparse/punctuated"
)

// SkipChildren may be returned by an enter function to skip the children of
// the node it was called with. The node's exit function is still called.
var SkipChildren = errors.New("skip children") //nolint:revive,errname // Sentinel, not an error.

var (
	nodeType      = reflect.TypeFor[ast.Node]()
	astPkg        = reflect.TypeFor[ast.Ident]().PkgPath()
	punctuatedPkg = reflect.TypeFor[punctuated.Punctuated[ast.Expr]]().PkgPath()
)

// Nodes walks root and every node beneath it, calling fn for each. Parents
// are visited before their children, and children in field order.
//
// If fn returns an error, the walk stops and that error is returned.
func Nodes(root ast.Node, fn func(ast.Node) error) error {
	return NodesEnterAndExit(root, fn, nil)
}

// NodesEnterAndExit is like [Nodes], but also calls exit, if not nil, after
// the children of each node have been walked.
func NodesEnterAndExit(root ast.Node, enter, exit func(ast.Node) error) error {
	if root == nil {
		return nil
	}
	w := walker{enter: enter, exit: exit}
	return w.value(reflect.ValueOf(root))
}

// NodesWithParents is like [Nodes], but also passes the chain of nodes
// enclosing each one, outermost first. The slice is reused between calls.
func NodesWithParents(root ast.Node, fn func(node ast.Node, parents []ast.Node) error) error {
	var stack []ast.Node
	return NodesEnterAndExit(root,
		func(n ast.Node) error {
			err := fn(n, stack)
			stack = append(stack, n)
			return err
		},
		func(ast.Node) error {
			stack = stack[:len(stack)-1]
			return nil
		},
	)
}

type walker struct {
	enter, exit func(ast.Node) error
}

// value walks whatever nodes v holds: v itself if it is a node, or else the
// nodes found inside it.
func (w *walker) value(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return w.value(v.Elem())

	case reflect.Pointer:
		if v.IsNil() || v.Type().Elem().PkgPath() != astPkg {
			return nil
		}
		if v.Type().Implements(nodeType) {
			return w.node(v)
		}
		return w.fields(v.Elem())

	case reflect.Slice:
		for i := range v.Len() {
			if err := w.value(v.Index(i)); err != nil {
				return err
			}
		}

	case reflect.Struct:
		switch v.Type().PkgPath() {
		case punctuatedPkg:
			return w.value(v.MethodByName("Slice").Call(nil)[0])
		case astPkg:
			if v.Type().Implements(nodeType) {
				return w.node(v)
			}
			if v.CanAddr() && v.Addr().Type().Implements(nodeType) {
				return w.node(v.Addr())
			}
			return w.fields(v)
		}
	}
	return nil
}

func (w *walker) node(v reflect.Value) error {
	n := v.Interface().(ast.Node) //nolint:errcheck // Checked by the caller.
	err := w.enter(n)
	switch {
	case errors.Is(err, SkipChildren):
	case err != nil:
		return err
	default:
		if err := w.fields(reflect.Indirect(v)); err != nil {
			return err
		}
	}
	if w.exit != nil {
		return w.exit(n)
	}
	return nil
}

func (w *walker) fields(v reflect.Value) error {
	if v.Kind() != reflect.Struct {
		return nil
	}
	t := v.Type()
	for i := range t.NumField() {
		if !t.Field(i).IsExported() {
			continue
		}
		if err := w.value(v.Field(i)); err != nil {
			return err
		}
	}
	return nil
}
