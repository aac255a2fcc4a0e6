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

package report_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synparse/synparse/report"
	"github.com/synparse/synparse/source"
)

func TestCombine(t *testing.T) {
	t.Parallel()

	file := source.NewFile("test.rs", "let x = ;\nfn")
	a := report.Errorf(report.Unexpected, file.Span(8, 9), "expected expression")
	b := report.Errorf(report.UnexpectedEOF, file.Span(12, 12), "unexpected end of input")
	c := report.Errorf(report.Custom, file.Span(0, 3), "custom")
	b.Combine(c)
	a.Combine(b)

	errs := a.Errors()
	require.Len(t, errs, 3)
	assert.Equal(t, "expected expression", errs[0].Message)
	assert.Equal(t, "unexpected end of input", errs[1].Message)
	assert.Equal(t, "custom", errs[2].Message)
	for _, err := range errs {
		assert.Len(t, err.Errors(), 1)
	}

	assert.Equal(t, "expected expression", a.Error())
	var target *report.Error
	require.ErrorAs(t, errors.Join(a), &target)
	assert.True(t, errors.Is(a, c))
}

func TestRenderCompact(t *testing.T) {
	t.Parallel()

	file := source.NewFile("test.rs", "fn f() {\n    let x = ;\n}\n")
	err := report.Errorf(report.Unexpected, file.Span(21, 22), "expected an expression, found `;`")

	text, errs, warnings := report.Renderer{Compact: true}.RenderString(err.Report())
	assert.Equal(t, 1, errs)
	assert.Equal(t, 0, warnings)
	assert.Equal(t, "test.rs:2:13: error: expected an expression, found `;`\n", text)
}

func TestRenderSnippet(t *testing.T) {
	t.Parallel()

	file := source.NewFile("test.rs", "struct S<const N: usize, 'a>;\n")
	err := report.Errorf(report.Unexpected, file.Span(25, 27),
		"lifetime parameters must be declared prior to const parameters").
		WithNote("reorder the parameters")

	text, _, _ := report.Renderer{}.RenderString(err.Report())
	assert.Equal(t, ""+
		"error: lifetime parameters must be declared prior to const parameters\n"+
		" --> test.rs:1:26\n"+
		"  |\n"+
		"1 | struct S<const N: usize, 'a>;\n"+
		"  |                          ^^\n"+
		"  = note: reorder the parameters\n"+
		"\n"+
		"encountered 1 error\n",
		text)
}

func TestInFile(t *testing.T) {
	t.Parallel()

	r := new(report.Report)
	r.Error(&report.ErrInFile{Err: fs.ErrNotExist, Path: "missing.rs"})
	r.Remarkf("ignored")

	text, errs, _ := report.Renderer{Compact: true}.RenderString(r)
	assert.Equal(t, 1, errs)
	assert.Equal(t, "missing.rs: error: file does not exist\n", text)
}

func TestOxford(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", fmt.Sprint(report.Or[string]()))
	assert.Equal(t, "a", fmt.Sprint(report.Or("a")))
	assert.Equal(t, "a or b", fmt.Sprint(report.Or("a", "b")))
	assert.Equal(t, "a, b, or c", fmt.Sprint(report.Or("a", "b", "c")))
}

func TestProtoJSON(t *testing.T) {
	t.Parallel()

	file := source.NewFile("test.rs", "x y")
	err := report.Errorf(report.Trailing, file.Span(2, 3), "unexpected token")

	list, protoErr := err.Report().ToProto()
	require.NoError(t, protoErr)
	require.Len(t, list.GetValues(), 1)

	fields := list.GetValues()[0].GetStructValue().GetFields()
	assert.Equal(t, "trailing", fields["kind"].GetStringValue())
	assert.Equal(t, "error", fields["level"].GetStringValue())
	assert.Equal(t, "test.rs", fields["path"].GetStringValue())
	span := fields["span"].GetStructValue().GetFields()
	assert.InDelta(t, 2, span["start"].GetNumberValue(), 0)
	assert.InDelta(t, 3, span["column"].GetNumberValue(), 0)

	data, jsonErr := err.Report().ProtoJSON(false)
	require.NoError(t, jsonErr)
	assert.Contains(t, string(data), "unexpected token")
}

func TestSort(t *testing.T) {
	t.Parallel()

	b := source.NewFile("b.rs", "abc")
	a := source.NewFile("a.rs", "abc")
	r := new(report.Report)
	r.Error(report.Errorf(report.Unexpected, b.Span(0, 1), "b0"))
	r.Error(report.Errorf(report.Unexpected, a.Span(2, 3), "a2"))
	r.Error(report.Errorf(report.Unexpected, a.Span(1, 2), "a1"))
	r.Sort()

	var got []string
	for _, d := range r.Diagnostics {
		got = append(got, d.Err.Error())
	}
	assert.Equal(t, []string{"a1", "a2", "b0"}, got)
	assert.Equal(t, 3, r.ErrorCount())
}
