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

package lexer

import (
	"github.com/bufbuild/clausewitz/internal/ext/bitsx"
	"github.com/bufbuild/clausewitz/report"
	"github.com/bufbuild/clausewitz/scalar"
	"github.com/bufbuild/clausewitz/token"
)

// Binary is a lexer for the binary format.
type Binary struct {
	data   []byte
	flavor scalar.Flavor
	cursor int
	err    error
}

// NewBinary returns a lexer over the binary stream in data, whose fractional
// numbers and strings are decoded according to flavor.
func NewBinary(data []byte, flavor scalar.Flavor) *Binary {
	return &Binary{data: data, flavor: flavor}
}

// Cursor returns the offset of the next tag to be scanned.
func (l *Binary) Cursor() int {
	return l.cursor
}

// Next implements [Lexer].
func (l *Binary) Next() (token.Item, error) {
	if l.err != nil {
		return token.Item{}, l.err
	}

	start := l.cursor
	if start == len(l.data) {
		return token.Item{Kind: token.EOF, Offset: start, End: start}, nil
	}

	raw, ok := l.take(token.TagSize)
	if !ok {
		return token.Item{}, l.fail(start, report.ErrTruncated)
	}
	tag := token.Tag(bitsx.LittleEndian[uint16](raw))

	item := token.Item{Offset: start}
	switch tag {
	case token.TagEqual:
		item.Kind = token.Op
		item.Op = token.Equal
	case token.TagOpen:
		item.Kind = token.Open
	case token.TagClose:
		item.Kind = token.Close
	default:
		kind, size, ok := tag.Payload()
		if !ok {
			item.Kind = token.ID
			item.ID = uint16(tag)
			item.Scalar = scalar.NewToken(raw)
			break
		}

		if size == token.Prefixed {
			prefix, ok := l.take(token.TagSize)
			if !ok {
				return token.Item{}, l.fail(start, report.ErrTruncated)
			}
			size = int(bitsx.LittleEndian[uint16](prefix))
		}
		payload, ok := l.take(size)
		if !ok {
			return token.Item{}, l.fail(start, report.ErrTruncated)
		}
		if kind == scalar.Rgb && !isColor(payload) {
			return token.Item{}, l.fail(start, report.ErrInvalidColor)
		}

		item.Kind = token.Binary
		item.Scalar = scalar.NewBinary(kind, payload, l.flavor)
	}

	item.End = l.cursor
	return item, nil
}

// take consumes n bytes, if there are that many left.
func (l *Binary) take(n int) ([]byte, bool) {
	if len(l.data)-l.cursor < n {
		return nil, false
	}
	b := l.data[l.cursor : l.cursor+n : l.cursor+n]
	l.cursor += n
	return b, true
}

func (l *Binary) fail(offset int, err error) error {
	l.err = report.Errorf(report.LexError, offset, "%w", err)
	return l.err
}

// isColor validates the embedded group in a color payload.
func isColor(payload []byte) bool {
	tag := func(at int) token.Tag {
		return token.Tag(bitsx.LittleEndian[uint16](payload[at:]))
	}

	if tag(0) != token.TagOpen || tag(token.ColorSize-token.TagSize) != token.TagClose {
		return false
	}
	for _, at := range token.ColorOffsets {
		if t := tag(at - token.TagSize); t != token.TagI32 && t != token.TagU32 {
			return false
		}
	}
	return true
}
