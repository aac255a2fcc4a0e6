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

package synparse_test

import (
	"context"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/synparse/synparse"
	"github.com/synparse/synparse/ast"
	"github.com/synparse/synparse/internal/lexer"
	"github.com/synparse/synparse/quote"
	"github.com/synparse/synparse/report"
	"github.com/synparse/synparse/source"
)

func TestParseString(t *testing.T) {
	t.Parallel()

	e, err := synparse.ParseString("1 + 2 * 3", ast.ParseExpr)
	require.NoError(t, err)
	assert.Equal(t, "1 + 2 * 3", quote.String(e))

	tests := []struct {
		text       string
		kind       report.Kind
		start, end int
		msg        string
	}{
		{"1 +", report.UnexpectedEOF, 3, 3, "unexpected end of input, expected expression"},
		{"a b", report.Trailing, 2, 3, "unexpected token `b`"},
		{"f(a, b", report.UnexpectedEOF, 1, 2, "unclosed delimiter `(`"},
		{"a € b", report.Lexical, 2, 5, "unrecognized character '€'"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			_, err := synparse.ParseString(tt.text, ast.ParseExpr)
			var syntax *report.Error
			require.ErrorAs(t, err, &syntax)
			assert.Equal(t, tt.kind, syntax.Kind)
			assert.Equal(t, tt.msg, syntax.Message)
			assert.Equal(t, tt.start, syntax.Span.Start)
			assert.Equal(t, tt.end, syntax.Span.End)
		})
	}
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	file := source.NewFile("lib.rs", "struct A;\nfn f() {\n    1 +\n}\n")
	_, err := synparse.ParseFile(file, ast.ParseFile)
	var syntax *report.Error
	require.ErrorAs(t, err, &syntax)
	assert.Same(t, file, syntax.Span.File)

	loc := syntax.Location()
	assert.Equal(t, 4, loc.Line)
	assert.Equal(t, 1, loc.Column)
	assert.Equal(t, report.UnexpectedEOF, syntax.Kind)
	assert.Equal(t, "unexpected end of input, expected expression", syntax.Message)
	assert.Equal(t, "}", syntax.Span.Text())
}

func TestParseTokens(t *testing.T) {
	t.Parallel()

	// Tokens from source text keep their spans; running out of them reports
	// an error just past the last one.
	stream, err := lexer.Lex(source.NewFile("x.rs", "a +  "))
	require.NoError(t, err)
	_, err = synparse.ParseTokens(stream, ast.ParseExpr)
	var syntax *report.Error
	require.ErrorAs(t, err, &syntax)
	assert.Equal(t, report.UnexpectedEOF, syntax.Kind)
	assert.Equal(t, "x.rs", syntax.Span.Path())
	assert.Equal(t, 3, syntax.Span.Start)
	assert.Equal(t, 3, syntax.Span.End)

	// Rendered tokens keep the spans of the tree they came from.
	e, err := synparse.ParseString("(a, b)", ast.ParseExpr)
	require.NoError(t, err)
	tuple, err := synparse.ParseTokens(quote.Render(e), ast.ParseExpr)
	require.NoError(t, err)
	assert.Equal(t, "(a , b)", quote.String(tuple))

	path, err := synparse.ParseString("a::b", ast.ParseExpr)
	require.NoError(t, err)
	rendered := quote.Render(path)
	require.Len(t, rendered, 4)
	for i, tok := range rendered {
		assert.Equal(t, i, tok.Span().Start)
		assert.Equal(t, i+1, tok.Span().End)
	}
	_, err = synparse.ParseTokens(rendered, ast.ParseType)
	require.NoError(t, err)
	_, err = synparse.ParseTokens(rendered, ast.ParseItem)
	require.ErrorAs(t, err, &syntax)
	assert.Equal(t, report.Unexpected, syntax.Kind)
	assert.Equal(t, 0, syntax.Span.Start)
	assert.Equal(t, 1, syntax.Span.End)

	// Tokens built by hand have no spans, and neither do errors about them.
	var b quote.Builder
	b.Ident("a")
	b.Punct("::")
	b.Ident("b")
	_, err = synparse.ParseTokens(b.Stream(), ast.ParseItem)
	require.ErrorAs(t, err, &syntax)
	assert.Equal(t, report.Unexpected, syntax.Kind)
	assert.True(t, syntax.Span.IsZero())

	b = quote.Builder{}
	b.Ident("a")
	b.Punct("+")
	_, err = synparse.ParseTokens(b.Stream(), ast.ParseExpr)
	require.ErrorAs(t, err, &syntax)
	assert.Equal(t, report.UnexpectedEOF, syntax.Kind)
	assert.True(t, syntax.Span.IsZero())
}

func TestParser(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	p := synparse.Parser{
		Opener: source.NewMap(map[string]string{
			"good.rs": "struct A;\nstruct B;\n",
			"bad.rs":  "struct A;\nlet x = 1;\n",
		}),
		MaxParallelism: 2,
		Logger:         zap.New(core),
	}

	results, rep, err := p.Parse(context.Background(), "good.rs", "missing.rs", "bad.rs")
	require.NoError(t, err)
	require.Len(t, results, 3)

	good := results[0]
	assert.Equal(t, "good.rs", good.Path)
	require.NoError(t, good.Err)
	assert.Len(t, good.File.Items, 2)
	assert.Equal(t, "good.rs", good.Source.Path())

	missing := results[1]
	require.ErrorIs(t, missing.Err, fs.ErrNotExist)
	assert.Nil(t, missing.Source)
	assert.Nil(t, missing.File)

	bad := results[2]
	var syntax *report.Error
	require.ErrorAs(t, bad.Err, &syntax)
	assert.Equal(t, "expected item, found `let`", syntax.Message)
	assert.Nil(t, bad.File)
	assert.NotNil(t, bad.Source)

	// Sorted by path.
	require.Len(t, rep.Diagnostics, 2)
	assert.Equal(t, 2, rep.ErrorCount())
	assert.Equal(t, "bad.rs", rep.Diagnostics[0].Path())
	assert.Equal(t, "missing.rs", rep.Diagnostics[1].Path())
	text, _, _ := report.Renderer{Compact: true}.RenderString(rep)
	assert.Equal(t,
		"bad.rs:2:1: error: expected item, found `let`\n"+
			"missing.rs: error: could not open \"missing.rs\": file does not exist\n",
		text)

	assert.Len(t, logs.FilterMessage("parse failed").FilterField(zap.String("path", "bad.rs")).All(), 1)
	assert.Len(t, logs.FilterMessage("open failed").FilterField(zap.String("path", "missing.rs")).All(), 1)
	assert.Len(t, logs.FilterMessage("parsed file").All(), 1)
}

func TestParserErrors(t *testing.T) {
	t.Parallel()

	var p synparse.Parser
	results, rep, err := p.Parse(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, rep.Diagnostics)

	_, _, err = p.Parse(context.Background(), "a.rs")
	require.ErrorContains(t, err, "Opener is required")

	p = synparse.Parser{
		Opener: source.NewMap(map[string]string{"a.rs": "struct A;"}),
		Logger: zaptest.NewLogger(t),
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = p.Parse(ctx, "a.rs")
	require.ErrorIs(t, err, context.Canceled)
}
