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

// Package token defines the token trees that the parser consumes.
//
// A token tree is either a leaf (an identifier, a single punctuation
// character, a literal or a lifetime) or a [Group] of further trees
// surrounded by a [Delimiter]. Multi-character operators such as `->` are not
// tokens of their own: they are runs of punctuation tokens in which every
// character but the last has [Joint] spacing.
//
// Token trees are usually produced by the lexer behind
// [github.com/synparse/synparse.ParseString], but may be built by hand with
// the New* constructors or with package quote.
package token
