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

package astyaml

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

// Compare compares two YAML documents by structure, ignoring scalar quoting
// and flow versus block style. Mapping keys must appear in the same order.
//
// Returns empty string if the documents match, otherwise returns a diff.
// This matches the signature of corpora.Compare.
func Compare(got, want string) string {
	g, err := parse(got)
	if err != nil {
		return fmt.Sprintf("could not parse output: %v", err)
	}
	w, err := parse(want)
	if err != nil {
		return fmt.Sprintf("could not parse golden file: %v", err)
	}
	return cmp.Diff(w, g)
}

// entry is a mapping entry. Mappings become slices of entries so that key
// order is compared too.
type entry struct {
	Key   string
	Value any
}

func parse(text string) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, err
	}
	return plain(&doc), nil
}

// plain strips everything but structure and scalar text from n.
func plain(n *yaml.Node) any {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return plain(n.Content[0])
	case yaml.SequenceNode:
		seq := make([]any, len(n.Content))
		for i, child := range n.Content {
			seq[i] = plain(child)
		}
		return seq
	case yaml.MappingNode:
		m := make([]entry, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			m = append(m, entry{Key: n.Content[i].Value, Value: plain(n.Content[i+1])})
		}
		return m
	case yaml.ScalarNode:
		return n.Value
	case yaml.AliasNode:
		return plain(n.Alias)
	}
	return nil
}
