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
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/synparse/synparse/internal/lexer"
	"github.com/synparse/synparse/token"
)

func newTokensCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Lex a file and print its token tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := readFile(args[0])
			if err != nil {
				return err
			}
			stream, err := lexer.Lex(file)
			if err != nil {
				return g.printError(cmd, err)
			}
			g.log.Debug("lexed file", zap.String("path", file.Path()), zap.Int("tokens", len(stream)))
			return printTokens(cmd.OutOrStdout(), stream, 0)
		},
	}
}

// printTokens writes one line per token, with the contents of groups
// indented under them.
func printTokens(out io.Writer, stream token.Stream, depth int) error {
	indent := strings.Repeat("  ", depth)
	for _, tok := range stream {
		span := tok.Span()
		var err error
		switch tok.Kind() {
		case token.Group:
			open, closing := tok.OpenSpan(), tok.CloseSpan()
			_, err = fmt.Fprintf(out, "%s%d..%d %s %s\n", indent, open.Start, closing.End, tok.Kind(), tok.Delimiter())
			if err == nil {
				err = printTokens(out, tok.Stream(), depth+1)
			}
		case token.Punct:
			_, err = fmt.Fprintf(out, "%s%d..%d %s %s %s\n", indent, span.Start, span.End, tok.Kind(), tok, tok.Spacing())
		case token.Literal:
			_, err = fmt.Fprintf(out, "%s%d..%d %s %s %s\n", indent, span.Start, span.End, tok.Kind(), tok.LitKind(), tok)
		default:
			_, err = fmt.Fprintf(out, "%s%d..%d %s %s\n", indent, span.Start, span.End, tok.Kind(), tok)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
