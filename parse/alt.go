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

package parse

import (
	"errors"

	"github.com/synparse/synparse/report"
)

// Alternative is one production tried by [Alt].
type Alternative[T any] struct {
	// What this production is called in "expected one of" diagnostics.
	Name  string
	Parse Func[T]
}

// Alt tries each alternative in order, each on its own fork of s, and
// commits the first one that succeeds.
//
// If every alternative fails, Alt returns the error that was raised the
// furthest into the input, preferring the earliest alternative among equals.
// If no alternative got past the first token, Alt instead returns an
// "expected one of" error listing the alternatives' names.
func Alt[T any](s *Stream, alts ...Alternative[T]) (T, error) {
	start := s.Pos()

	var best error
	bestProgress := start
	for _, alt := range alts {
		fork := s.Fork()
		v, err := alt.Parse(fork)
		if err == nil {
			s.AdvanceTo(fork)
			return v, nil
		}

		if progress := ProgressOf(err); progress > bestProgress {
			best, bestProgress = err, progress
		}
	}

	var zero T
	if best != nil {
		return zero, best
	}

	names := make([]string, 0, len(alts))
	for _, alt := range alts {
		names = append(names, alt.Name)
	}
	return zero, s.Unexpected(expectedOneOf(names))
}

// ProgressOf returns how far into the input err was raised, or -1 if err
// does not say.
func ProgressOf(err error) int {
	var e *report.Error
	if errors.As(err, &e) {
		return e.Progress
	}
	return -1
}
