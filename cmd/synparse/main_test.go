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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synparse/synparse/internal/astyaml"
)

// run executes the root command with args, capturing its output.
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// writeFile writes a temporary source file and returns its path.
func writeFile(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func TestTokens(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "f.rs", "f(a, 1)")
	out, _, err := run(t, "tokens", path)
	require.NoError(t, err)
	assert.Equal(t, "0..1 Ident f\n"+
		"1..7 Group Parens\n"+
		"  2..3 Ident a\n"+
		"  3..4 Punct , Alone\n"+
		"  5..6 Literal integer 1\n", out)

	path = writeFile(t, "bad.rs", "f(a")
	_, stderr, err := run(t, "tokens", path)
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, stderr, "unclosed delimiter `(`")
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "unit.rs", "struct Unit;")
		out, _, err := run(t, "parse", path)
		require.NoError(t, err)
		want := `
items:
  - ItemStruct:
      vis: VisInherited
      struct: struct
      ident: Unit
      semi: ";"
`
		assert.Empty(t, astyaml.Compare(out, want))
	})

	t.Run("expr", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "e.rs", "false")
		out, _, err := run(t, "parse", "--kind", "expr", path)
		require.NoError(t, err)
		assert.Empty(t, astyaml.Compare(out, "ExprLit: {lit: {LitBool: {value: false}}}"))
	})

	t.Run("any", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "t.rs", "Vec<u8>")
		out, _, err := run(t, "parse", "--kind", "any", "-f", "tokens", path)
		require.NoError(t, err)
		assert.Equal(t, "Vec < u8 >\n", out)
	})

	t.Run("tokens", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "e.rs", "1+2*3")
		out, _, err := run(t, "parse", "-k", "expr", "-f", "tokens", path)
		require.NoError(t, err)
		assert.Equal(t, "1 + 2 * 3\n", out)
	})

	t.Run("spans", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "unit.rs", "struct Unit;")
		out, _, err := run(t, "parse", "--spans", path)
		require.NoError(t, err)
		assert.Contains(t, out, "0..12")
	})

	t.Run("syntax-error", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "bad.rs", "let x = 1;")
		out, stderr, err := run(t, "parse", path)
		require.ErrorIs(t, err, errFailed)
		assert.Empty(t, out)
		assert.Contains(t, stderr, "expected item, found `let`")
	})

	t.Run("bad-kind", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "unit.rs", "struct Unit;")
		_, _, err := run(t, "parse", "--kind", "stmt", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown kind "stmt"`)
	})

	t.Run("bad-format", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "unit.rs", "struct Unit;")
		_, _, err := run(t, "parse", "--format", "json", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown format "json"`)
	})

	t.Run("missing-file", func(t *testing.T) {
		t.Parallel()
		_, _, err := run(t, "parse", filepath.Join(t.TempDir(), "nope.rs"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestCheck(t *testing.T) {
	t.Parallel()

	good := writeFile(t, "good.rs", "fn f() {}\n")
	bad := writeFile(t, "bad.rs", "let x = 1;\n")

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		out, stderr, err := run(t, "check", good)
		require.NoError(t, err)
		assert.Empty(t, out)
		assert.Empty(t, stderr)
	})

	t.Run("compact", func(t *testing.T) {
		t.Parallel()
		_, stderr, err := run(t, "check", "--compact", "-j", "2", good, bad)
		require.ErrorIs(t, err, errFailed)
		assert.Equal(t, bad+":1:1: error: expected item, found `let`\n", stderr)
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		out, _, err := run(t, "check", "--json", good, bad)
		require.ErrorIs(t, err, errFailed)

		var diags []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &diags))
		require.Len(t, diags, 1)
		assert.Equal(t, "unexpected", diags[0]["kind"])
		assert.Equal(t, bad, diags[0]["path"])
		assert.Contains(t, diags[0]["message"], "expected item, found `let`")
	})

	t.Run("logging", func(t *testing.T) {
		t.Parallel()
		_, stderr, err := run(t, "check", "--log-level", "debug", good)
		require.NoError(t, err)
		assert.Contains(t, stderr, "checked files")
	})

	t.Run("bad-log-level", func(t *testing.T) {
		t.Parallel()
		_, _, err := run(t, "check", "--log-level", "loud", good)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid --log-level")
	})
}

func TestInspect(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "f.rs", "fn f() { 1 + 2 }")

	out, _, err := run(t, "inspect", "--offset", "11", path)
	require.NoError(t, err)
	assert.Equal(t, path+":1:12\n"+
		"File 0..16 fn f() { 1 + 2 }\n"+
		"  ItemFn 0..16 fn f() { 1 + 2 }\n"+
		"    Block 7..16 { 1 + 2 }\n"+
		"      StmtExpr 9..14 1 + 2\n"+
		"        ExprBinary 9..14 1 + 2\n", out)

	_, _, err = run(t, "inspect", "--offset", "16", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside of")

	_, _, err = run(t, "inspect", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"offset" not set`)
}
