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

package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/synparse/synparse/source"
)

// Renderer configures a diagnostic rendering operation.
type Renderer struct {
	// If set, uses a compact one-line format for each diagnostic.
	Compact bool

	// If set, rendering results are enriched with ANSI color escapes.
	Colorize bool

	// If set, remark diagnostics will be printed.
	ShowRemarks bool
}

// Render renders a diagnostic report.
//
// In addition to returning the rendering result, returns the number of
// errors and warnings rendered. The error return is an error when writing to
// out.
func (r Renderer) Render(report *Report, out io.Writer) (errorCount, warningCount int, err error) {
	for _, diagnostic := range report.Diagnostics {
		if !r.ShowRemarks && diagnostic.Level == LevelRemark {
			continue
		}

		if _, err = fmt.Fprintln(out, r.Diagnostic(diagnostic)); err != nil {
			return errorCount, warningCount, err
		}
		if !r.Compact {
			if _, err = fmt.Fprintln(out); err != nil {
				return errorCount, warningCount, err
			}
		}

		switch diagnostic.Level {
		case LevelError:
			errorCount++
		case LevelWarning:
			warningCount++
		}
	}

	if r.Compact || (errorCount == 0 && warningCount == 0) {
		return errorCount, warningCount, nil
	}

	ss := newStyleSheet(r)
	var summary []string
	if errorCount > 0 {
		summary = append(summary, fmt.Sprintf("%s%d error%s%s", ss.bError, errorCount, plural(errorCount), ss.reset))
	}
	if warningCount > 0 {
		summary = append(summary, fmt.Sprintf("%s%d warning%s%s", ss.bWarning, warningCount, plural(warningCount), ss.reset))
	}
	_, err = fmt.Fprintf(out, "encountered %s\n", strings.Join(summary, " and "))
	return errorCount, warningCount, err
}

// RenderString is a helper for calling [Renderer.Render] with a
// [strings.Builder].
func (r Renderer) RenderString(report *Report) (text string, errorCount, warningCount int) {
	var buf strings.Builder
	errorCount, warningCount, _ = r.Render(report, &buf)
	return buf.String(), errorCount, warningCount
}

// Diagnostic renders a single diagnostic to a string.
func (r Renderer) Diagnostic(d Diagnostic) string {
	ss := newStyleSheet(r)
	level := d.Level.String()
	primary := d.Primary()

	var out strings.Builder
	if r.Compact {
		switch {
		case !primary.Span.IsZero():
			start := primary.Span.StartLoc()
			fmt.Fprintf(&out, "%s:%d:%d: ", primary.Span.Path(), start.Line, start.Column)
		case d.InFile != "":
			fmt.Fprintf(&out, "%s: ", d.InFile)
		}
		fmt.Fprintf(&out, "%s%s: %s%s", ss.BoldForLevel(d.Level), level, d.Err, ss.reset)
		return out.String()
	}

	fmt.Fprintf(&out, "%s%s: %s%s", ss.BoldForLevel(d.Level), level, d.Err, ss.reset)

	gutter := 0
	for _, a := range d.Annotations {
		gutter = max(gutter, len(strconv.Itoa(a.Span.EndLoc().Line)))
	}
	pad := strings.Repeat(" ", gutter)

	if primary.Span.IsZero() {
		if d.InFile != "" {
			fmt.Fprintf(&out, "\n%s%s--> %s%s", pad, ss.nAccent, d.InFile, ss.reset)
		}
	}

	for _, a := range d.Annotations {
		start := a.Span.StartLoc()
		fmt.Fprintf(&out, "\n%s%s--> %s:%d:%d%s", pad, ss.nAccent, a.Span.Path(), start.Line, start.Column, ss.reset)
		fmt.Fprintf(&out, "\n%s %s|%s", pad, ss.nAccent, ss.reset)
		r.snippet(&out, ss, d.Level, a, gutter)
	}

	for _, note := range d.Notes {
		fmt.Fprintf(&out, "\n%s %s= note:%s %s", pad, ss.bAccent, ss.reset, note)
	}
	for _, help := range d.Help {
		fmt.Fprintf(&out, "\n%s %s= help:%s %s", pad, ss.bAccent, ss.reset, help)
	}
	return out.String()
}

// snippet renders the first line of an annotation's span followed by an
// underline of the annotated columns.
func (r Renderer) snippet(out *strings.Builder, ss styleSheet, level Level, a Annotation, gutter int) {
	start := a.Span.Location(a.Span.Start, source.Bytes)
	lineStart, lineEnd := a.Span.LineOffsets(start.Line)
	line := strings.TrimRight(a.Span.File.Text()[lineStart:lineEnd], "\r\n")

	var rendered strings.Builder
	stringWidth(0, line, &rendered)
	fmt.Fprintf(out, "\n%s%*d |%s %s", ss.nAccent, gutter, start.Line, ss.reset, rendered.String())

	// Clamp multi-line spans to the end of their first line.
	startCol := a.Span.Start - lineStart
	endCol := min(a.Span.End-lineStart, len(line))
	from := stringWidth(0, line[:startCol], nil)
	to := from
	if endCol > startCol {
		to = stringWidth(from, line[startCol:endCol], nil)
	}
	width := max(to-from, 1)

	color := ss.BoldForLevel(level)
	if !a.Primary {
		color = ss.bAccent
	}
	marker := "^"
	if !a.Primary {
		marker = "-"
	}
	fmt.Fprintf(out, "\n%s %s|%s %s%s%s", strings.Repeat(" ", gutter), ss.nAccent, ss.reset,
		strings.Repeat(" ", from), color, strings.Repeat(marker, width))
	if a.Message != "" {
		fmt.Fprintf(out, " %s", a.Message)
	}
	out.WriteString(ss.reset)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// styleSheet is the colors used for pretty-rendering diagnostics.
type styleSheet struct {
	reset string
	// Normal colors.
	nAccent string
	// Bold colors.
	bError, bWarning, bRemark, bAccent string
}

func newStyleSheet(r Renderer) styleSheet {
	if !r.Colorize {
		return styleSheet{}
	}

	return styleSheet{
		reset:    "\033[0m",
		bError:   "\033[1;31m", // Red.
		bWarning: "\033[1;33m", // Yellow.
		bRemark:  "\033[1;36m", // Cyan.

		// Blue, for line numbers, gutters and secondary underlines.
		nAccent: "\033[0;34m",
		bAccent: "\033[1;34m",
	}
}

// BoldForLevel returns the escape sequence for the bold color to use for
// the given level.
func (c styleSheet) BoldForLevel(l Level) string {
	switch l {
	case LevelError:
		return c.bError
	case LevelWarning:
		return c.bWarning
	case LevelRemark:
		return c.bRemark
	case levelNote:
		return c.bAccent
	default:
		return ""
	}
}
