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

package token

import "fmt"

const (
	Ident    Kind = 1 + iota // An identifier, possibly raw (r#ident).
	Punct                    // A single punctuation character.
	Literal                  // A number, string, byte or character literal.
	Lifetime                 // A lifetime or label, such as 'a.
	Group                    // A delimited group of tokens.
)

// Kind identifies what kind of token a particular [Token] is.
type Kind int8

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case Ident:
		return "Ident"
	case Punct:
		return "Punct"
	case Literal:
		return "Literal"
	case Lifetime:
		return "Lifetime"
	case Group:
		return "Group"
	default:
		return fmt.Sprintf("token.Kind(%d)", int(k))
	}
}

const (
	// The punctuation character is followed by whitespace, a non-punctuation
	// token, or the end of its group.
	Alone Spacing = iota
	// The punctuation character is immediately followed by another
	// punctuation character, so the two may form a multi-character operator.
	Joint
)

// Spacing describes whether a punctuation character is glued to the next.
type Spacing int8

// String implements [fmt.Stringer].
func (s Spacing) String() string {
	if s == Joint {
		return "Joint"
	}
	return "Alone"
}

const (
	Parens    Delimiter = 1 + iota // ( ... )
	Brackets                       // [ ... ]
	Braces                         // { ... }
	Invisible                      // A group with no delimiter characters.
)

// Delimiter is the kind of delimiter surrounding a [Group] token.
type Delimiter int8

// Open returns the opening delimiter character, or zero for [Invisible].
func (d Delimiter) Open() rune {
	switch d {
	case Parens:
		return '('
	case Brackets:
		return '['
	case Braces:
		return '{'
	default:
		return 0
	}
}

// Close returns the closing delimiter character, or zero for [Invisible].
func (d Delimiter) Close() rune {
	switch d {
	case Parens:
		return ')'
	case Brackets:
		return ']'
	case Braces:
		return '}'
	default:
		return 0
	}
}

// String implements [fmt.Stringer].
func (d Delimiter) String() string {
	switch d {
	case Parens:
		return "Parens"
	case Brackets:
		return "Brackets"
	case Braces:
		return "Braces"
	case Invisible:
		return "Invisible"
	default:
		return fmt.Sprintf("token.Delimiter(%d)", int(d))
	}
}

// DelimiterFor returns the delimiter whose opening or closing character is r.
func DelimiterFor(r rune) (d Delimiter, open bool) {
	switch r {
	case '(':
		return Parens, true
	case ')':
		return Parens, false
	case '[':
		return Brackets, true
	case ']':
		return Brackets, false
	case '{':
		return Braces, true
	case '}':
		return Braces, false
	default:
		return 0, false
	}
}

const (
	Int        LitKind = 1 + iota // 42, 0x2a_u8
	Float                         // 1.5, 2e10f64
	Str                           // "text"
	RawStr                        // r#"text"#
	ByteStr                       // b"bytes"
	RawByteStr                    // br#"bytes"#
	Byte                          // b'x'
	Char                          // 'x'
)

// LitKind is the kind of a [Literal] token.
type LitKind int8

// String implements [fmt.Stringer].
func (k LitKind) String() string {
	switch k {
	case Int:
		return "integer"
	case Float:
		return "float"
	case Str:
		return "string"
	case RawStr:
		return "raw string"
	case ByteStr:
		return "byte string"
	case RawByteStr:
		return "raw byte string"
	case Byte:
		return "byte"
	case Char:
		return "character"
	default:
		return fmt.Sprintf("token.LitKind(%d)", int(k))
	}
}
