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

package source

import (
	"errors"
	"io"
	"io/fs"
	"strings"
	"sync"
)

// Opener is a mechanism for opening files.
type Opener interface {
	// Open opens a file, potentially returning an error.
	//
	// A return value of [fs.ErrNotExist] is given special treatment by
	// [Openers].
	Open(path string) (*File, error)
}

// Map implements [Opener] via lookup in an in-memory map.
//
// Missing entries result in [fs.ErrNotExist]. A Map is safe for concurrent
// use.
type Map struct {
	mu    sync.RWMutex
	files map[string]*File
}

// NewMap creates a new [Map] with the given files.
func NewMap(files map[string]string) *Map {
	m := &Map{files: make(map[string]*File, len(files))}
	for path, text := range files {
		m.files[path] = NewFile(path, text)
	}
	return m
}

// Add adds a new file to this map, replacing any file with the same path.
func (m *Map) Add(path, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = make(map[string]*File)
	}
	m.files[path] = NewFile(path, text)
}

// Open implements [Opener].
func (m *Map) Open(path string) (*File, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	file, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return file, nil
}

// FS wraps an [fs.FS] to give it an [Opener] interface.
type FS struct {
	fs.FS

	// If not nil, paths are passed to this function before being forwarded
	// to fs.
	PathMapper func(string) string
}

// Open implements [Opener].
func (fs *FS) Open(path string) (*File, error) {
	name := path
	if fs.PathMapper != nil {
		name = fs.PathMapper(path)
	}

	file, err := fs.FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var buf strings.Builder
	if _, err := io.Copy(&buf, file); err != nil {
		return nil, err
	}
	return NewFile(path, buf.String()), nil
}

// Openers wraps a sequence of [Opener]s.
//
// When calling Open, it calls each Opener in sequence until one does not return
// [fs.ErrNotExist].
type Openers []Opener

// Open implements [Opener].
func (o Openers) Open(path string) (*File, error) {
	for _, opener := range o {
		file, err := opener.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return file, err
	}
	return nil, fs.ErrNotExist
}
