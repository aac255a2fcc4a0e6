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

// Package astyaml converts syntax trees into YAML documents in a
// deterministic manner. This is intended for golden test outputs and for
// showing trees on the command line.
//
// Each node becomes a mapping from its snake_cased field names to their
// values. Fields holding their zero value are left out, and delimiter spans
// are never shown. Where a field has an interface type, such as [ast.Expr],
// the value is wrapped in a single-entry mapping keyed by its type name, so
// that `a + 1` becomes
//
//	ExprBinary:
//	  left: {ExprPath: {path: {segments: [{ident: a}]}}}
//	  op: +
//	  right: {ExprLit: {lit: {LitInt: {text: "1"}}}}
package astyaml

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/synparse/synparse/ast"
	"github.com/synparse/synparse/internal/cases"
	"github.com/synparse/synparse/punctuated"
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/token/keyword"
)

// Options contains configuration for [Marshal].
type Options struct {
	// If set, every node that has a span records it under a "span" key, as
	// "start..end" byte offsets.
	Spans bool

	// The maximum column width before collections stop being written on one
	// line. Defaults to 80.
	MaxWidth int
}

var (
	nodeType  = reflect.TypeFor[ast.Node]()
	stringer  = reflect.TypeFor[fmt.Stringer]()
	identType = reflect.TypeFor[ast.Ident]()
	lifeType  = reflect.TypeFor[ast.Lifetime]()
	tokenType = reflect.TypeFor[keyword.Token]()
	spanType  = reflect.TypeFor[source.Span]()
	delimType = reflect.TypeFor[ast.Delim]()
	punctPkg  = reflect.TypeFor[punctuated.Punctuated[ast.Expr]]().PkgPath()
)

// Marshal converts v, usually an [ast.Node], into a YAML document. It
// returns the empty string if there is nothing to show.
func Marshal(v any, opts Options) (string, error) {
	root := ToNode(v, opts)
	if root == nil {
		return "", nil
	}

	var out strings.Builder
	enc := yaml.NewEncoder(&out)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return out.String(), nil
}

// ToNode converts v into a YAML node tree without encoding it, or returns
// nil if there is nothing to show.
//
// The type of v itself is not recorded, since the caller knows it; use a
// pointer to an interface value to have it wrapped like a field would be.
func ToNode(v any, opts Options) *yaml.Node {
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = 80
	}
	e := encoder{Options: opts}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	n := e.value(rv)
	if n == nil {
		return nil
	}
	e.style(n, 0)
	return n
}

type encoder struct {
	Options
}

// value converts v, returning nil if it should be left out.
func (e *encoder) value(v reflect.Value) *yaml.Node {
	if !v.IsValid() {
		return nil
	}

	switch v.Type() {
	case identType:
		return str(v.Interface().(ast.Ident).Name) //nolint:errcheck
	case lifeType:
		return str(v.Interface().(ast.Lifetime).Name) //nolint:errcheck
	case tokenType:
		return str(v.Interface().(keyword.Token).Text) //nolint:errcheck
	case spanType, delimType:
		return nil
	}

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return e.wrap(v.Elem())

	case reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		return e.value(v.Elem())

	case reflect.Slice:
		if v.Type().Implements(stringer) {
			return e.stringer(v)
		}
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for i := range v.Len() {
			n := e.value(v.Index(i))
			if n == nil {
				n = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
			}
			seq.Content = append(seq.Content, n)
		}
		if len(seq.Content) == 0 {
			return nil
		}
		return seq

	case reflect.Struct:
		if v.Type().PkgPath() == punctPkg {
			return e.value(v.MethodByName("Slice").Call(nil)[0])
		}
		m := e.fields(v)
		if len(m.Content) == 0 {
			return nil
		}
		return m

	case reflect.String:
		return str(v.String())

	case reflect.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.Bool())}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Type().Implements(stringer) {
			return e.stringer(v)
		}
		if v.Int() == 0 {
			return nil
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v.Int(), 10)}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v.Type().Implements(stringer) {
			return e.stringer(v)
		}
		if v.Uint() == 0 {
			return nil
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(v.Uint(), 10)}
	}
	return nil
}

// wrap converts the dynamic value of an interface, keyed by its type name.
// A value with nothing to show becomes just its type name.
func (e *encoder) wrap(v reflect.Value) *yaml.Node {
	name := reflect.Indirect(v).Type().Name()
	inner := e.value(v)
	if inner == nil {
		return str(name)
	}
	return &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: []*yaml.Node{str(name), inner},
	}
}

func (e *encoder) fields(v reflect.Value) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	if e.Spans {
		if span := spanOf(v); !span.IsZero() {
			m.Content = append(m.Content, str("span"), str(fmt.Sprintf("%d..%d", span.Start, span.End)))
		}
	}

	t := v.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if n := e.value(v.Field(i)); n != nil {
			m.Content = append(m.Content, str(cases.Snake.Convert(f.Name)), n)
		}
	}
	return m
}

func (e *encoder) stringer(v reflect.Value) *yaml.Node {
	if v.IsZero() {
		return nil
	}
	return str(v.Interface().(fmt.Stringer).String()) //nolint:errcheck
}

// style switches collections to flow style wherever they fit on one line.
func (e *encoder) style(n *yaml.Node, depth int) {
	if n.Kind == yaml.ScalarNode {
		return
	}
	if width(n) < e.MaxWidth-2*depth {
		n.Style = yaml.FlowStyle
		return
	}
	for _, child := range n.Content {
		e.style(child, depth+1)
	}
}

// width estimates how wide n would be if written on one line.
func width(n *yaml.Node) int {
	switch n.Kind {
	case yaml.ScalarNode:
		w := len(n.Value)
		if n.Tag == "!!str" && needsQuotes(n.Value) {
			w += 2
		}
		return w
	case yaml.SequenceNode, yaml.MappingNode:
		w := 2
		for i, child := range n.Content {
			w += width(child)
			if i > 0 {
				w += 2 // ", " or ": "
			}
		}
		return w
	}
	return 0
}

func needsQuotes(s string) bool {
	if s == "" {
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	return strings.ContainsAny(s, ":{}[],&*#?|-<>=!%@`'\"")
}

func spanOf(v reflect.Value) source.Span {
	if v.CanAddr() && v.Addr().Type().Implements(nodeType) {
		return v.Addr().Interface().(ast.Node).Span() //nolint:errcheck
	}
	if v.Type().Implements(nodeType) {
		return v.Interface().(ast.Node).Span() //nolint:errcheck
	}
	return source.Span{}
}

func str(s string) *yaml.Node {
	if s == "" {
		return nil
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
