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
	"github.com/synparse/synparse/punctuated"
	"github.com/synparse/synparse/quote"
	"github.com/synparse/synparse/source"
	"github.com/synparse/synparse/token/keyword"
)

// DeriveInput is the input of a derive macro: a struct, enum or union with
// its attributes, visibility and generics, whatever its kind.
type DeriveInput struct {
	Attrs    []*Attribute
	Vis      Visibility
	Ident    Ident
	Generics Generics
	Data     Data
}

// Data is the body of a [DeriveInput]: a [*DataStruct], [*DataEnum] or
// [*DataUnion].
type Data interface {
	quote.ToTokens
	// Keyword returns the `struct`, `enum` or `union` keyword.
	Keyword() keyword.Token
	isData()
}

// DataStruct is the body of a struct.
type DataStruct struct {
	Struct keyword.Token
	Fields Fields
	Semi   keyword.Token
}

// DataEnum is the body of an enum.
type DataEnum struct {
	Enum     keyword.Token
	Brace    Delim
	Variants punctuated.Punctuated[*Variant]
}

// DataUnion is the body of a union.
type DataUnion struct {
	Union  keyword.Token
	Fields Fields
}

func (d *DataStruct) Keyword() keyword.Token { return orWord(d.Struct, keyword.Struct) }
func (d *DataEnum) Keyword() keyword.Token   { return orWord(d.Enum, keyword.Enum) }
func (d *DataUnion) Keyword() keyword.Token  { return orWord(d.Union, keyword.Union) }
func (*DataStruct) isData()                  {}
func (*DataEnum) isData()                    {}
func (*DataUnion) isData()                   {}

// ToTokens renders the fields of the struct, without its keyword.
func (d *DataStruct) ToTokens(b *quote.Builder) { b.Append(d.Fields) }

// ToTokens renders the variants of the enum, without its keyword.
func (d *DataEnum) ToTokens(b *quote.Builder) { b.Append(d.Variants) }

// ToTokens renders the fields of the union, without its keyword.
func (d *DataUnion) ToTokens(b *quote.Builder) { b.Append(d.Fields) }

// Span implements [source.Spanner].
func (d *DeriveInput) Span() source.Span { return spanOf(d) }

// ToTokens implements [quote.ToTokens], rendering the original declaration.
func (d *DeriveInput) ToTokens(b *quote.Builder) {
	b.Append(d.Item())
}

// Item converts this input back into the item it was parsed from.
func (d *DeriveInput) Item() Item {
	switch data := d.Data.(type) {
	case *DataStruct:
		return &ItemStruct{
			Attrs: d.Attrs, Vis: d.Vis, Struct: data.Struct, Ident: d.Ident,
			Generics: d.Generics, Fields: data.Fields, Semi: data.Semi,
		}
	case *DataEnum:
		return &ItemEnum{
			Attrs: d.Attrs, Vis: d.Vis, Enum: data.Enum, Ident: d.Ident,
			Generics: d.Generics, Brace: data.Brace, Variants: data.Variants,
		}
	case *DataUnion:
		return &ItemUnion{
			Attrs: d.Attrs, Vis: d.Vis, Union: data.Union, Ident: d.Ident,
			Generics: d.Generics, Fields: data.Fields,
		}
	}
	return nil
}

// ParseDeriveInput parses a struct, enum or union as a [DeriveInput].
func ParseDeriveInput(s *parse.Stream) (*DeriveInput, error) {
	attrs, err := ParseOuterAttrs(s)
	if err != nil {
		return nil, err
	}
	vis, err := ParseVisibility(s)
	if err != nil {
		return nil, err
	}

	l := s.Lookahead1()
	switch {
	case l.Peek(keyword.Struct):
		i, err := parseStruct(s, attrs, vis)
		if err != nil {
			return nil, err
		}
		return &DeriveInput{
			Attrs: attrs, Vis: vis, Ident: i.Ident, Generics: i.Generics,
			Data: &DataStruct{Struct: i.Struct, Fields: i.Fields, Semi: i.Semi},
		}, nil
	case l.Peek(keyword.Enum):
		i, err := parseEnum(s, attrs, vis)
		if err != nil {
			return nil, err
		}
		return &DeriveInput{
			Attrs: attrs, Vis: vis, Ident: i.Ident, Generics: i.Generics,
			Data: &DataEnum{Enum: i.Enum, Brace: i.Brace, Variants: i.Variants},
		}, nil
	case l.Peek(keyword.Union):
		i, err := parseUnion(s, attrs, vis)
		if err != nil {
			return nil, err
		}
		return &DeriveInput{
			Attrs: attrs, Vis: vis, Ident: i.Ident, Generics: i.Generics,
			Data: &DataUnion{Union: i.Union, Fields: i.Fields},
		}, nil
	}
	return nil, l.Error()
}
