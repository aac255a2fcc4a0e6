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

// Package parse is a recursive-descent parsing framework over token
// buffers.
//
// A parser for some type T is a [Func][T]: it takes a [Stream] positioned
// at the start of a T and returns the T, advancing the stream past it, or an
// error. Parsers compose by calling each other on the same stream.
//
// Backtracking is explicit. [Stream.Fork] returns a copy of a stream that
// can be advanced freely; [Stream.AdvanceTo] commits it. [Parse] and [Alt]
// wrap the common patterns: try one production without consuming anything
// on failure, and try several in order keeping the most useful error.
//
// Errors are *[report.Error] values anchored at the token that caused them.
// Every error records how far into the buffer the parser had got when it was
// raised, which is what [Alt] uses to pick between failures.
package parse
