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

	"github.com/synparse/synparse/source"
)

// Kind classifies an [Error].
type Kind int8

const (
	// Malformed raw input that could not be tokenized.
	Lexical Kind = 1 + iota
	// The current token does not match any grammar alternative.
	Unexpected
	// A construct needed more tokens than remained in its scope.
	UnexpectedEOF
	// A construct parsed successfully but did not consume its whole scope.
	Trailing
	// A token of the right kind failed a well-formedness check.
	Malformed
	// Raised by user code through a parse stream.
	Custom
)

var kindNames = [...]string{
	Lexical:       "lexical",
	Unexpected:    "unexpected",
	UnexpectedEOF: "unexpected-eof",
	Trailing:      "trailing",
	Malformed:     "malformed",
	Custom:        "custom",
}

// String implements [fmt.Stringer].
func (k Kind) String() string {
	if k <= 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Error is a span-tagged syntax error.
//
// Several independent errors may be merged into one value with
// [Error.Combine]; the receiver stays the primary error and the rest are
// reachable through [Error.Errors].
type Error struct {
	Kind    Kind
	Span    source.Span
	Message string
	Notes   []string

	// The flat buffer position the parser had reached when this error was
	// raised. Used to rank the errors of failed alternatives against each
	// other; larger means the alternative got further.
	Progress int

	others []*Error
}

var _ Diagnose = (*Error)(nil)

// Errorf constructs a new error anchored at span.
func Errorf(kind Kind, span source.Span, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Span:    span,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements [error].
//
// The returned string contains only the primary message; use [Error.Errors]
// to get at combined ones.
func (e *Error) Error() string {
	return e.Message
}

// WithNote appends a note to this error and returns it.
func (e *Error) WithNote(format string, args ...any) *Error {
	e.Notes = append(e.Notes, fmt.Sprintf(format, args...))
	return e
}

// Combine merges other (and everything combined into it) into e.
func (e *Error) Combine(other *Error) {
	if other == nil || other == e {
		return
	}
	e.others = append(e.others, other.primary())
	e.others = append(e.others, other.others...)
}

// Errors returns every error combined into this one, starting with the
// primary error itself. None of the returned values carry combined errors.
func (e *Error) Errors() []*Error {
	all := make([]*Error, 0, 1+len(e.others))
	all = append(all, e.primary())
	return append(all, e.others...)
}

// Unwrap returns the combined errors, so that [errors.Is] and [errors.As]
// can see through this error.
func (e *Error) Unwrap() []error {
	if len(e.others) == 0 {
		return nil
	}
	errs := make([]error, len(e.others))
	for i, other := range e.others {
		errs[i] = other
	}
	return errs
}

// Location returns the start of this error's span in terminal columns.
func (e *Error) Location() source.Location {
	return e.Span.StartLoc()
}

// Diagnose implements [Diagnose].
func (e *Error) Diagnose(d *Diagnostic) {
	d.With(SnippetAt(e.Span, ""))
	for _, note := range e.Notes {
		d.With(Note("%s", note))
	}
}

// Report converts this error, and everything combined into it, into a
// report with one diagnostic per error.
func (e *Error) Report() *Report {
	r := new(Report)
	for _, err := range e.Errors() {
		r.Error(err)
	}
	return r
}

func (e *Error) primary() *Error {
	if len(e.others) == 0 {
		return e
	}
	flat := *e
	flat.others = nil
	return &flat
}

// ErrInFile wraps an [error] into a diagnostic on the given file.
type ErrInFile struct {
	Err  error
	Path string
}

var _ Diagnose = &ErrInFile{}

// Error implements [error].
func (e *ErrInFile) Error() string {
	return e.Err.Error()
}

// Unwrap implements the [errors] unwrapping convention.
func (e *ErrInFile) Unwrap() error {
	return e.Err
}

// Diagnose implements [Diagnose].
func (e *ErrInFile) Diagnose(d *Diagnostic) {
	d.With(InFile(e.Path))
}
