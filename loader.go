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

package clausewitz

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by loaders that cannot find a file.
var ErrNotFound = errors.New("file not found")

// Loader loads the contents of files for a [Parser].
//
// Loaders must be safe for concurrent use.
type Loader interface {
	Load(path string) ([]byte, error)
}

// LoaderFunc is a [Loader] implemented by a function.
type LoaderFunc func(string) ([]byte, error)

var _ Loader = LoaderFunc(nil)

// Load implements [Loader].
func (f LoaderFunc) Load(path string) ([]byte, error) {
	return f(path)
}

// CompositeLoader tries a sequence of loaders in order, returning the first
// file found. If none of them finds it, the first error is returned.
type CompositeLoader []Loader

var _ Loader = CompositeLoader(nil)

// Load implements [Loader].
func (l CompositeLoader) Load(path string) ([]byte, error) {
	if len(l) == 0 {
		return nil, ErrNotFound
	}
	var firstErr error
	for _, loader := range l {
		data, err := loader.Load(path)
		if err == nil {
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

// DirLoader loads files relative to a list of search directories, such as a
// game's installation directory followed by a mod's.
type DirLoader struct {
	// Directories to search, in order. If empty, paths are used as-is.
	Dirs []string
	// Opens files. If nil, [os.Open] is used.
	Accessor func(string) (io.ReadCloser, error)
}

var _ Loader = (*DirLoader)(nil)

// Load implements [Loader].
func (l *DirLoader) Load(path string) ([]byte, error) {
	if len(l.Dirs) == 0 {
		return l.read(path)
	}

	var e error
	for _, dir := range l.Dirs {
		data, err := l.read(filepath.Join(dir, path))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				e = err
				continue
			}
			return nil, err
		}
		return data, nil
	}
	return nil, e
}

func (l *DirLoader) read(path string) ([]byte, error) {
	open := l.Accessor
	if open == nil {
		open = func(path string) (io.ReadCloser, error) { return os.Open(path) }
	}

	r, err := open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
