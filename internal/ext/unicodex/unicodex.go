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

// Package unicodex contains the character classes used by the lexer and by
// identifier validation.
package unicodex

import "unicode"

// IsXIDStart returns whether r may begin an identifier. This is the XID_Start
// property extended with '_'.
func IsXIDStart(r rune) bool {
	// ASCII fast path.
	if r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') {
		return true
	}
	if r < 0x80 {
		return false
	}

	return unicode.In(r,
		unicode.Letter,
		unicode.Nl, // Number, letter.
		unicode.Other_ID_Start,
	) && !unicode.In(r,
		unicode.Pattern_Syntax,
		unicode.Pattern_White_Space,
	)
}

// IsXIDContinue returns whether r has the XID_Continue property.
func IsXIDContinue(r rune) bool {
	// ASCII fast path.
	if r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') {
		return true
	}
	if r < 0x80 {
		return false
	}

	return unicode.In(r,
		unicode.Letter,
		unicode.Cf, // Other, format. This includes some joiners.
		unicode.Mn, // Mark, nonspacing.
		unicode.Mc, // Mark, spacing combining.
		unicode.Nl,
		unicode.Nd, // Number, digit.
		unicode.Pc, // Punctuation, connector.
		unicode.Other_ID_Start,
		unicode.Other_ID_Continue,
	) && !unicode.In(r,
		unicode.Pattern_Syntax,
		unicode.Pattern_White_Space,
	)
}

// IsIdent returns whether s is a well-formed identifier: an XID_Start rune
// followed by XID_Continue runes, optionally behind an r# prefix.
//
// A lone "_" is not an identifier.
func IsIdent(s string) bool {
	if len(s) > 2 && s[:2] == "r#" {
		s = s[2:]
	}
	if s == "" || s == "_" {
		return false
	}
	for i, r := range s {
		if i == 0 && !IsXIDStart(r) {
			return false
		}
		if i > 0 && !IsXIDContinue(r) {
			return false
		}
	}
	return true
}

// Digit parses a digit in the given base, up to base 36.
func Digit(d rune, base byte) (value byte, ok bool) {
	switch {
	case d >= '0' && d <= '9':
		value = byte(d - '0')
	case d >= 'a' && d <= 'z':
		value = byte(d-'a') + 10
	case d >= 'A' && d <= 'Z':
		value = byte(d-'A') + 10
	default:
		return 0, false
	}

	if value >= base {
		return 0, false
	}
	return value, true
}
