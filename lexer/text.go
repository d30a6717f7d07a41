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
	"bytes"

	"github.com/bufbuild/clausewitz/report"
	"github.com/bufbuild/clausewitz/scalar"
	"github.com/bufbuild/clausewitz/token"
)

var bom = []byte("\xef\xbb\xbf")

// Text is a lexer for the text format.
type Text struct {
	data   []byte
	enc    scalar.Encoding
	cursor int
	err    error
}

// NewText returns a lexer over the text in data, whose scalars are decoded
// with the given encoding. A leading UTF-8 byte order mark is skipped.
func NewText(data []byte, enc scalar.Encoding) *Text {
	l := &Text{data: data, enc: enc}
	if bytes.HasPrefix(data, bom) {
		l.cursor = len(bom)
	}
	return l
}

// Cursor returns the offset of the next byte to be scanned.
func (l *Text) Cursor() int {
	return l.cursor
}

func (l *Text) done() bool {
	return l.cursor >= len(l.data)
}

func (l *Text) rest() []byte {
	return l.data[l.cursor:]
}

// peek returns the byte ahead bytes past the cursor, or -1 past the end.
func (l *Text) peek(ahead int) int {
	if l.cursor+ahead >= len(l.data) {
		return -1
	}
	return int(l.data[l.cursor+ahead])
}

// Next implements [Lexer].
func (l *Text) Next() (token.Item, error) {
	if l.err != nil {
		return token.Item{}, l.err
	}

	l.skipInsignificant()
	start := l.cursor
	if l.done() {
		return token.Item{Kind: token.EOF, Offset: start, End: start}, nil
	}

	item := token.Item{Offset: start}
	switch c := l.data[start]; c {
	case '{':
		l.cursor++
		item.Kind = token.Open
	case '}':
		l.cursor++
		item.Kind = token.Close
	case '"':
		return l.lexQuoted()
	case '=', '<', '>', '!', '?':
		n := 1
		if l.peek(1) == '=' {
			n = 2
		}
		op, ok := token.LookupOperator(string(l.data[start : start+n]))
		if !ok {
			// A lone ! or ? begins an unquoted scalar.
			return l.lexUnquoted(), nil
		}
		l.cursor += n
		item.Kind = token.Op
		item.Op = op
	default:
		if isControl(c) {
			l.err = report.Errorf(report.LexError, start, "%w %#02x", report.ErrInvalidByte, c)
			return token.Item{}, l.err
		}
		return l.lexUnquoted(), nil
	}

	item.End = l.cursor
	return item, nil
}

func (l *Text) skipInsignificant() {
	for !l.done() {
		c := l.data[l.cursor]
		switch {
		case isSpace(c):
			l.cursor++
		case c == '#':
			if nl := bytes.IndexByte(l.rest(), '\n'); nl >= 0 {
				l.cursor += nl + 1
			} else {
				l.cursor = len(l.data)
			}
		default:
			return
		}
	}
}

func (l *Text) lexQuoted() (token.Item, error) {
	start := l.cursor
	var escaped bool
	for i := start + 1; i < len(l.data); i++ {
		switch l.data[i] {
		case '\\':
			escaped = true
			i++
		case '"':
			l.cursor = i + 1
			return token.Item{
				Kind:   token.Quoted,
				Scalar: scalar.NewQuoted(l.data[start+1:i], escaped, l.enc),
				Offset: start,
				End:    l.cursor,
			}, nil
		}
	}

	l.err = report.Errorf(report.LexError, start, "%w", report.ErrUnterminatedQuote)
	return token.Item{}, l.err
}

func (l *Text) lexUnquoted() token.Item {
	start := l.cursor
	l.cursor++ // The first byte is never a terminator.
	for !l.done() && !l.terminates(l.data[l.cursor]) {
		l.cursor++
	}
	return token.Item{
		Kind:   token.Unquoted,
		Scalar: scalar.NewUnquoted(l.data[start:l.cursor], l.enc),
		Offset: start,
		End:    l.cursor,
	}
}

// terminates returns whether c, at the cursor, ends an unquoted scalar.
func (l *Text) terminates(c byte) bool {
	switch {
	case isSpace(c), isControl(c):
		return true
	case c == '=', c == '{', c == '}', c == '"', c == '#', c == '<', c == '>':
		return true
	case c == '!', c == '?':
		return l.peek(1) == '='
	default:
		return false
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

func isControl(c byte) bool {
	return (c < 0x20 && !isSpace(c)) || c == 0x7f
}
