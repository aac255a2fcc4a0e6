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

package report

import (
	"errors"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// ToProto converts a diagnostic into a [structpb.Struct], suitable for
// machine consumption.
//
// The resulting object has the fields level, message, and optionally kind,
// path, span (start, end, line, column), notes and help.
func (d *Diagnostic) ToProto() (*structpb.Struct, error) {
	fields := map[string]any{
		"level":   d.Level.String(),
		"message": d.Err.Error(),
	}

	var err *Error
	if errors.As(d.Err, &err) {
		fields["kind"] = err.Kind.String()
	}
	if path := d.Path(); path != "" {
		fields["path"] = path
	}
	if primary := d.Primary(); !primary.Span.IsZero() {
		start := primary.Span.StartLoc()
		fields["span"] = map[string]any{
			"start":  primary.Span.Start,
			"end":    primary.Span.End,
			"line":   start.Line,
			"column": start.Column,
		}
	}
	if len(d.Notes) > 0 {
		fields["notes"] = anySlice(d.Notes)
	}
	if len(d.Help) > 0 {
		fields["help"] = anySlice(d.Help)
	}

	return structpb.NewStruct(fields)
}

// ToProto converts every diagnostic in this report into a list of
// [structpb.Struct] values.
func (r *Report) ToProto() (*structpb.ListValue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(r.Diagnostics))}
	for i := range r.Diagnostics {
		s, err := r.Diagnostics[i].ToProto()
		if err != nil {
			return nil, err
		}
		list.Values = append(list.Values, structpb.NewStructValue(s))
	}
	return list, nil
}

// ProtoJSON renders this report with [protojson].
func (r *Report) ProtoJSON(multiline bool) ([]byte, error) {
	list, err := r.ToProto()
	if err != nil {
		return nil, err
	}
	return protojson.MarshalOptions{Multiline: multiline}.Marshal(list)
}

func anySlice(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
