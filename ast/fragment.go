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

package ast

import "github.com/synparse/synparse/parse"

// ParseFragment parses a snippet whose kind is not known up front. Items are
// tried first, then expressions, then types, and the first that consumes
// the whole stream wins: `u8` is an expression path, while `Vec<u8>` can
// only be a type.
//
// If nothing fits, the error is the one from whichever attempt got
// furthest.
func ParseFragment(s *parse.Stream) (Node, error) {
	return parse.Alt(s,
		whole("item", ParseItem),
		whole("expression", ParseExpr),
		whole("type", ParseType),
	)
}

func whole[T Node](name string, f parse.Func[T]) parse.Alternative[Node] {
	return parse.Alternative[Node]{
		Name: name,
		Parse: func(s *parse.Stream) (Node, error) {
			v, err := f(s)
			if err != nil {
				return nil, err
			}
			if err := s.ExpectEmpty(); err != nil {
				return nil, err
			}
			return v, nil
		},
	}
}
