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

// Package source maps byte offsets in an input buffer back to human-readable
// positions.
//
// The parser core reports every error as a byte offset. A [File] turns those
// offsets into line and column numbers when, and only when, somebody asks.
package source

import (
	"bytes"
	"fmt"
	"slices"
	"sync"
	"unicode/utf8"
)

// File is an input buffer involved in a diagnostic.
//
// It contains additional book-keeping information for resolving locations.
// Files are immutable once created and safe for concurrent use.
//
// A nil *File behaves like an empty file with the path name "".
type File struct {
	path string
	data []byte

	once sync.Once
	// The index after each \n in the original buffer, prefixed with a zero.
	// Given a byte offset, its line is found by binary search.
	lineIndex []int
}

// Location is a user-displayable location within a file.
type Location struct {
	// The byte offset for this location.
	Offset int

	// The line and column for this location, 1-indexed. Columns are counted
	// in runes.
	Line, Column int
}

// String implements [fmt.Stringer].
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// NewFile constructs a new source file. data is not copied.
func NewFile(path string, data []byte) *File {
	return &File{path: path, data: data}
}

// Path returns this file's path. It need not be a real filesystem path.
func (f *File) Path() string {
	if f == nil {
		return ""
	}
	return f.path
}

// Data returns this file's contents.
func (f *File) Data() []byte {
	if f == nil {
		return nil
	}
	return f.data
}

// IsText reports whether this file looks like text rather than the binary
// encoding: it is valid UTF-8 or contains no NUL bytes.
func (f *File) IsText() bool {
	data := f.Data()
	return utf8.Valid(data) || bytes.IndexByte(data, 0) == -1
}

// Location builds full Location information for the given byte offset.
// Offsets past the end of the file are clamped.
//
// This operation is O(log n).
func (f *File) Location(offset int) Location {
	if f == nil || offset <= 0 {
		return Location{Offset: 0, Line: 1, Column: 1}
	}
	offset = min(offset, len(f.data))

	line := f.LineByOffset(offset)
	start := f.lines()[line]

	return Location{
		Offset: offset,
		Line:   line + 1,
		Column: utf8.RuneCount(f.data[start:offset]) + 1,
	}
}

// LineByOffset searches this index to find the 0-indexed line containing this
// byte offset.
func (f *File) LineByOffset(offset int) int {
	lines := f.lines()

	// Find the largest index such that lines[line] <= offset.
	line, exact := slices.BinarySearch(lines, offset)
	if !exact {
		line--
	}
	return line
}

// Line returns the text of the given 1-indexed line, without its trailing
// newline.
func (f *File) Line(line int) []byte {
	start, end := f.LineOffsets(line)
	return bytes.TrimRight(f.data[start:end], "\r\n")
}

// LineOffsets returns the offsets for the given 1-indexed line, including its
// trailing newline.
func (f *File) LineOffsets(line int) (start, end int) {
	lines := f.lines()
	if line < 1 || line > len(lines) {
		return 0, 0
	}
	if len(lines) == line {
		return lines[line-1], len(f.data)
	}
	return lines[line-1], lines[line]
}

func (f *File) lines() []int {
	if f == nil {
		return []int{0}
	}

	f.once.Do(func() {
		f.lineIndex = append(f.lineIndex, 0)
		for i, b := range f.data {
			if b == '\n' {
				f.lineIndex = append(f.lineIndex, i+1)
			}
		}
	})
	return f.lineIndex
}
