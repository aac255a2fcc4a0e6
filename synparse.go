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

package synparse

import (
	"github.com/synparse/synparse/buffer"
	"github.com/synparse/synparse/internal/lexer"
	"github.com/synparse/synparse/parse"
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/token"
)

// ParseString lexes text and parses all of it with f.
//
// Lexical and syntax errors alike are returned as a *[report.Error].
func ParseString[T any](text string, f parse.Func[T]) (T, error) {
	return ParseFile(source.NewFile("", text), f)
}

// ParseFile lexes the contents of file and parses all of it with f.
//
// Lexical and syntax errors alike are returned as a *[report.Error], whose
// spans point into file.
func ParseFile[T any](file *source.File, f parse.Func[T]) (T, error) {
	stream, err := lexer.Lex(file)
	if err != nil {
		var zero T
		return zero, err
	}
	return parse.ParseAll(buffer.New(stream), file.EOF(), f)
}

// ParseTokens parses all of an already-built token stream with f, such as
// one produced by [quote.Render].
func ParseTokens[T any](stream token.Stream, f parse.Func[T]) (T, error) {
	return parse.ParseAll(buffer.New(stream), endOf(stream), f)
}

// endOf returns an empty span just past the last token of stream that has
// a span, for end-of-input diagnostics.
func endOf(stream token.Stream) source.Span {
	for i := len(stream) - 1; i >= 0; i-- {
		span := stream[i].Span()
		if stream[i].Kind() == token.Group {
			span = stream[i].CloseSpan()
		}
		if !span.IsZero() {
			return source.Span{File: span.File, Start: span.End, End: span.End}
		}
	}
	return source.Span{}
}
