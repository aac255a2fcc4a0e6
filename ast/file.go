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

import (
	"github.com/synparse/synparse/parse"
	"github.com/synparse/synparse/quote"
	"github.com/synparse/synparse/source"
)

// File is a whole source file: inner attributes followed by items.
type File struct {
	Attrs []*Attribute
	Items []Item
}

// Span implements [source.Spanner].
func (f *File) Span() source.Span { return spanOf(f) }

// ToTokens implements [quote.ToTokens].
func (f *File) ToTokens(b *quote.Builder) {
	renderAttrs(b, f.Attrs)
	for _, item := range f.Items {
		b.Append(item)
	}
}

// ParseFile parses a whole file. It consumes the entire stream.
func ParseFile(s *parse.Stream) (*File, error) {
	f := new(File)
	var err error
	if f.Attrs, err = ParseInnerAttrs(s); err != nil {
		return nil, err
	}
	for !s.IsEmpty() {
		item, err := ParseItem(s)
		if err != nil {
			return nil, err
		}
		f.Items = append(f.Items, item)
	}
	return f, nil
}
