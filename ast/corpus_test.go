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

	"github.com/stretchr/testify/require"

	"github.com/synparse/synparse"
	"github.com/synparse/synparse/ast"
	"github.com/synparse/synparse/internal/astyaml"
	"github.com/synparse/synparse/internal/corpora"
	"github.com/synparse/synparse/report"
	"github.com/synparse/synparse/source"
)

func TestCorpus(t *testing.T) {
	t.Parallel()

	corpus := corpora.Corpus{
		Root:      "testdata/corpus",
		Refresh:   "SYNPARSE_REFRESH",
		Extension: "rs",
		Outputs: []corpora.Output{
			{Extension: "yaml", Compare: astyaml.Compare},
			{Extension: "stderr"},
		},
		Test: func(t *testing.T, path, text string) []string {
			file, err := synparse.ParseFile(source.NewFile(path, text), ast.ParseFile)
			if err != nil {
				var syntax *report.Error
				require.ErrorAs(t, err, &syntax)
				stderr, _, _ := report.Renderer{Compact: true}.RenderString(syntax.Report())
				return []string{"", stderr}
			}

			assertRoundTrips(t, file, ast.ParseFile)
			yaml, err := astyaml.Marshal(file, astyaml.Options{})
			require.NoError(t, err)
			return []string{yaml, ""}
		},
	}
	corpus.Run(t)
}
