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

// Package ast defines the syntax tree of the language, along with a parser
// for each node type.
//
// Every node implements [Node]: it has a span, and it can render itself
// back into tokens with [quote.ToTokens]. Re-parsing the rendered tokens
// yields a tree equal to the original, ignoring spans. Nodes keep the
// spans of the keyword and punctuation tokens they were parsed from, so
// that rendered tokens point back into the source; nodes built by hand may
// leave these zero, and render with synthetic tokens instead.
//
// Each family of nodes is a sealed interface, such as [Expr] or [Type],
// whose Kind method says which concrete type a value is. User code should
// not attempt to implement any of these interfaces.
//
// The parsers are plain [parse.Func] values, such as [ParseExpr] and
// [ParseFile]. None of them recover from errors; the first error ends the
// parse.
package ast
