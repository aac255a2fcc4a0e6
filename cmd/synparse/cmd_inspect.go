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
	"strings"

	"github.com/spf13/cobra"

	"github.com/synparse/synparse"
	"github.com/synparse/synparse/ast"
	"github.com/synparse/synparse/index"
	"github.com/synparse/synparse/source"
)

func newInspectCmd(g *globals) *cobra.Command {
	var offset int

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print the syntax nodes that cover a byte offset, outermost first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := readFile(args[0])
			if err != nil {
				return err
			}
			if offset < 0 || offset >= len(file.Text()) {
				return fmt.Errorf("offset %d is outside of %s (%d bytes)", offset, file.Path(), len(file.Text()))
			}

			tree, err := synparse.ParseFile(file, ast.ParseFile)
			if err != nil {
				return g.printError(cmd, err)
			}

			nodes := index.Build(tree).At(offset)
			out := cmd.OutOrStdout()
			if len(nodes) == 0 {
				_, err := fmt.Fprintf(out, "no syntax at offset %d\n", offset)
				return err
			}

			loc := file.Location(offset, source.Bytes)
			if _, err := fmt.Fprintf(out, "%s:%d:%d\n", file.Path(), loc.Line, loc.Column); err != nil {
				return err
			}
			for i, n := range nodes {
				span := n.Span()
				text := span.Text()
				if line, _, cut := strings.Cut(text, "\n"); cut {
					text = line + " ..."
				}
				_, err := fmt.Fprintf(out, "%s%s %d..%d %s\n",
					strings.Repeat("  ", i), nodeName(n),
					span.Start, span.End, text)
				if err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "byte offset into the file")
	_ = cmd.MarkFlagRequired("offset")
	return cmd
}

// nodeName returns the name of n's type without its package.
func nodeName(n ast.Node) string {
	name := strings.TrimPrefix(fmt.Sprintf("%T", n), "*")
	return strings.TrimPrefix(name, "ast.")
}
