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

package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/synparse/synparse"
	"github.com/synparse/synparse/ast"
	"github.com/synparse/synparse/internal/astyaml"
	"github.com/synparse/synparse/parse"
	"github.com/synparse/synparse/quote"
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/token/keyword"
)

// parsed is the result of parsing a file as some kind of syntax.
type parsed struct {
	node quote.ToTokens
	// What to dump as YAML: a pointer to the parsed value, so that the type
	// of interface values such as ast.Expr is shown.
	yaml any
}

func parseAs[T quote.ToTokens](f parse.Func[T]) func(*source.File) (parsed, error) {
	return func(file *source.File) (parsed, error) {
		v, err := synparse.ParseFile(file, f)
		return parsed{node: v, yaml: &v}, err
	}
}

var kinds = map[string]func(*source.File) (parsed, error){
	"file":   parseAs(ast.ParseFile),
	"any":    parseAs(ast.ParseFragment),
	"expr":   parseAs(ast.ParseExpr),
	"type":   parseAs(ast.ParseType),
	"item":   parseAs(ast.ParseItem),
	"pat":    parseAs(ast.ParsePat),
	"derive": parseAs(ast.ParseDeriveInput),
	"generics": parseAs(func(s *parse.Stream) (*ast.Generics, error) {
		g, err := ast.ParseGenerics(s)
		if err != nil {
			return nil, err
		}
		if s.Peek(keyword.Where) {
			if g.Where, err = ast.ParseWhereClause(s); err != nil {
				return nil, err
			}
		}
		return &g, nil
	}),
}

func newParseCmd(g *globals) *cobra.Command {
	var kind, format string
	var spans bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a file and dump the syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parseFile, ok := kinds[kind]
			if !ok {
				return fmt.Errorf("unknown kind %q (expected %s)", kind, kindNames())
			}
			if format != "yaml" && format != "tokens" {
				return fmt.Errorf("unknown format %q (expected yaml or tokens)", format)
			}

			file, err := readFile(args[0])
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := parseFile(file)
			if err != nil {
				return g.printError(cmd, err)
			}
			g.log.Debug("parsed file",
				zap.String("path", file.Path()),
				zap.String("kind", kind),
				zap.Duration("elapsed", time.Since(start)),
			)

			out := cmd.OutOrStdout()
			switch format {
			case "tokens":
				_, err = fmt.Fprintln(out, quote.String(result.node))
			default:
				var text string
				text, err = astyaml.Marshal(result.yaml, astyaml.Options{Spans: spans})
				if err == nil {
					_, err = fmt.Fprint(out, text)
				}
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "file", "what to parse the file as ("+kindNames()+")")
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, tokens)")
	cmd.Flags().BoolVar(&spans, "spans", false, "include node spans in yaml output")
	return cmd
}

func kindNames() string {
	return strings.Join(slices.Sorted(maps.Keys(kinds)), ", ")
}
