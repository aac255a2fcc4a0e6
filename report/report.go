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
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/synparse/synparse/source"
)

const (
	LevelError Level = 1 + iota
	LevelWarning
	LevelRemark
	levelNote // Used internally within the diagnostic renderer.
)

// Level represents the severity of a diagnostic message.
type Level int8

// String implements [fmt.Stringer].
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelRemark:
		return "remark"
	case levelNote:
		return "note"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Diagnose is an error that can be rendered as a diagnostic.
type Diagnose interface {
	error

	// Diagnose writes out this error to the given diagnostic.
	//
	// This function should not set Level nor Err; those are set by the
	// diagnostics framework.
	Diagnose(*Diagnostic)
}

// Diagnostic is a type of error that can be rendered as a rich diagnostic.
type Diagnostic struct {
	// The error that prompted this diagnostic. Its Error() return is used
	// as the diagnostic message.
	Err error

	Level Level

	// The file this diagnostic occurs in, if it has no associated Annotations.
	// This is used for errors like "file not found" that cannot be given a
	// snippet.
	InFile string

	// A list of annotated source code spans in the diagnostic.
	Annotations []Annotation

	// Notes and help messages to include at the end of the diagnostic, after
	// the Annotations.
	Notes, Help []string
}

// Annotation is an annotated source code snippet within a [Diagnostic].
type Annotation struct {
	Span source.Span
	// A message to show under this snippet. May be empty.
	Message string
	// Whether this is the "primary" snippet, rendered with the diagnostic's
	// own color.
	Primary bool
}

// Primary returns this diagnostic's primary snippet, if it has one.
//
// If it doesn't have one, it returns a dummy annotation with a zero span.
func (d *Diagnostic) Primary() Annotation {
	for _, annotation := range d.Annotations {
		if annotation.Primary {
			return annotation
		}
	}
	return Annotation{Primary: true}
}

// Path returns the path of the file this diagnostic is about.
func (d *Diagnostic) Path() string {
	if primary := d.Primary(); !primary.Span.IsZero() {
		return primary.Span.Path()
	}
	return d.InFile
}

// With applies the given options to this diagnostic.
func (d *Diagnostic) With(options ...DiagnosticOption) {
	for _, option := range options {
		option(d)
	}
}

// DiagnosticOption is an option that can be applied to a [Diagnostic].
type DiagnosticOption func(*Diagnostic)

// InFile returns a DiagnosticOption that causes a diagnostic without a primary
// span to mention the given file.
func InFile(path string) DiagnosticOption {
	return func(d *Diagnostic) {
		if d.InFile == "" {
			d.InFile = path
		}
	}
}

// Snippetf returns a DiagnosticOption that adds a new snippet to a diagnostic
// with the given message.
//
// The first annotation added is the "primary" annotation, and will be rendered
// differently from the others.
func Snippetf(at source.Spanner, format string, args ...any) DiagnosticOption {
	return SnippetAt(source.GetSpan(at), format, args...)
}

// SnippetAt is like [Snippetf], but takes a span directly. Zero spans are
// ignored.
func SnippetAt(span source.Span, format string, args ...any) DiagnosticOption {
	annotation := Annotation{
		Span:    span,
		Message: fmt.Sprintf(format, args...),
	}
	return func(d *Diagnostic) {
		if annotation.Span.IsZero() {
			return
		}
		annotation.Primary = len(d.Annotations) == 0
		d.Annotations = append(d.Annotations, annotation)
	}
}

// Note returns a DiagnosticOption that provides the user with context about the
// diagnostic, after the annotations.
func Note(format string, args ...any) DiagnosticOption {
	return func(d *Diagnostic) {
		d.Notes = append(d.Notes, fmt.Sprintf(format, args...))
	}
}

// Help returns a DiagnosticOption that provides the user with a helpful prose
// suggestion for resolving the diagnostic.
func Help(format string, args ...any) DiagnosticOption {
	return func(d *Diagnostic) {
		d.Help = append(d.Help, fmt.Sprintf(format, args...))
	}
}

// Report is a collection of diagnostics.
//
// A Report may be appended to from several goroutines at once.
type Report struct {
	mu          sync.Mutex
	Diagnostics []Diagnostic
}

// Error pushes an error diagnostic onto this report.
func (r *Report) Error(err Diagnose) {
	r.push(err, LevelError, err.Diagnose)
}

// Warn pushes a warning diagnostic onto this report.
func (r *Report) Warn(err Diagnose) {
	r.push(err, LevelWarning, err.Diagnose)
}

// Errorf pushes a new error diagnostic with an unspecified error type;
// analogous to [fmt.Errorf].
func (r *Report) Errorf(format string, args ...any) {
	r.push(fmt.Errorf(format, args...), LevelError, nil)
}

// Remarkf pushes a new remark diagnostic with an unspecified error type.
func (r *Report) Remarkf(format string, args ...any) {
	r.push(fmt.Errorf(format, args...), LevelRemark, nil)
}

// ErrorCount returns the number of error-level diagnostics in this report.
func (r *Report) ErrorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int
	for _, d := range r.Diagnostics {
		if d.Level == LevelError {
			n++
		}
	}
	return n
}

// Sort sorts this report's diagnostics by file path, then by primary span
// start, so that output does not depend on the order files were processed in.
func (r *Report) Sort() {
	r.mu.Lock()
	defer r.mu.Unlock()
	slices.SortStableFunc(r.Diagnostics, func(a, b Diagnostic) int {
		if c := cmp.Compare(a.Path(), b.Path()); c != 0 {
			return c
		}
		return cmp.Compare(a.Primary().Span.Start, b.Primary().Span.Start)
	})
}

func (r *Report) push(err error, level Level, diagnose func(*Diagnostic)) {
	d := Diagnostic{Err: err, Level: level}
	if diagnose != nil {
		diagnose(&d)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.Diagnostics = append(r.Diagnostics, d)
}
