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

// Package synparse is a library for parsing token streams of a Rust-like
// language into syntax trees, and for turning syntax trees back into
// tokens.
//
// The various sub-packages represent the layers of the library:
//  1. Lex source text into token trees.
//     Also see: source, token
//  2. Walk token trees with cheap, copyable cursors.
//     Also see: buffer
//  3. Parse with speculative, forkable streams.
//     Also see: parse, punctuated, token/keyword
//  4. Build syntax trees from a catalogue of grammar parsers.
//     Also see: ast
//  5. Render syntax trees back into tokens.
//     Also see: quote
//
// This package provides the entry points that tie the layers together:
// [ParseString], [ParseFile] and [ParseTokens] run any [parse.Func] over a
// whole input, and [Parser] parses many files in parallel.
//
// # Errors
//
// Parsing fails fast. Every failure, lexical or syntactic, is a
// *[report.Error] that points at the offending span; when several
// alternatives were tried, the error is the one from the alternative that
// got the furthest.
//
// # Parser
//
// A Parser accepts a list of paths and produces one syntax tree per path.
// Only the Opener field is required:
//
//	parser := synparse.Parser{
//	    Opener: source.NewMap(files),
//	}
//	results, report, err := parser.Parse(ctx, "a.rs", "b.rs")
//
// This minimal Parser will use default parallelism, equal to the number of
// CPU cores detected, and will not log.
package synparse
