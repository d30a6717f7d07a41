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
	"bytes"
	"fmt"

	"github.com/bufbuild/clausewitz/tape"
)

// Format is an encoding of the document format.
type Format int8

const (
	Text Format = iota
	Binary
)

// String implements [fmt.Stringer].
func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case Binary:
		return "binary"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Options configures [Parse].
type Options struct {
	Format Format
	tape.Options
}

// Parse parses data as a document in the given format.
//
// data is borrowed by the returned tape, and must not be modified while the
// tape is in use.
func Parse(data []byte, opts Options) (*tape.Tape, error) {
	if opts.Format == Binary {
		return tape.ParseBinary(data, opts.Options)
	}
	return tape.ParseText(data, opts.Options)
}

// headerSize is the size of the magic that save files begin with, such as
// EU4txt or CK3bin.
const headerSize = 6

// SplitHeader splits the magic off the front of a save file, and returns the
// format it names along with the rest of the data.
//
// A magic is three ASCII letters or digits, followed by either "txt" or
// "bin". Returns false if data does not begin with one.
func SplitHeader(data []byte) (format Format, body []byte, ok bool) {
	if len(data) < headerSize {
		return 0, data, false
	}
	for _, c := range data[:3] {
		if !('A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9') {
			return 0, data, false
		}
	}

	switch {
	case bytes.Equal(data[3:headerSize], []byte("txt")):
		format = Text
	case bytes.Equal(data[3:headerSize], []byte("bin")):
		format = Binary
	default:
		return 0, data, false
	}

	body = data[headerSize:]
	if format == Text {
		// The magic of a text file is on a line of its own.
		body = bytes.TrimLeft(body, "\r\n")
	}
	return format, body, true
}
