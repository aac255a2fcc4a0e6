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

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/synparse/synparse"
	"github.com/synparse/synparse/report"
)

func newCheckCmd(g *globals) *cobra.Command {
	var asJSON, compact bool
	var parallelism int

	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Parse files concurrently and report syntax errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := synparse.Parser{
				Opener:         osOpener{},
				MaxParallelism: parallelism,
				Logger:         g.log,
			}
			results, rep, err := p.Parse(cmd.Context(), args...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := rep.ProtoJSON(true)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintln(out, string(data)); err != nil {
					return err
				}
			} else {
				r := report.Renderer{Compact: compact, Colorize: g.color}
				if _, _, err := r.Render(rep, cmd.ErrOrStderr()); err != nil {
					return err
				}
			}

			var failed int
			for _, r := range results {
				if r.Err != nil {
					failed++
				}
			}
			g.log.Info("checked files", zap.Int("files", len(results)), zap.Int("failed", failed))
			if failed > 0 {
				return errFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print diagnostics to stdout as JSON")
	cmd.Flags().BoolVar(&compact, "compact", false, "print one line per diagnostic")
	cmd.Flags().IntVarP(&parallelism, "jobs", "j", 0, "how many files to parse at once; defaults to the number of CPUs")
	return cmd
}
