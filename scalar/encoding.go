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

package scalar

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Encoding is the character encoding of text in an input buffer.
type Encoding int8

const (
	UTF8 Encoding = iota
	Windows1252
)

// String implements [fmt.Stringer].
func (e Encoding) String() string {
	if e == Windows1252 {
		return "windows-1252"
	}
	return "utf-8"
}

// Unescape decodes the backslash escapes in the contents of a quoted string.
//
// \n, \t, and \r decode to the corresponding control characters. Any other
// escaped byte, including a quote or a backslash, decodes to itself. A
// trailing lone backslash is dropped.
//
// If data contains no backslashes, it is returned as-is.
func Unescape(data []byte) []byte {
	i := bytes.IndexByte(data, '\\')
	if i < 0 {
		return data
	}

	out := make([]byte, i, len(data))
	copy(out, data[:i])
	for ; i < len(data); i++ {
		c := data[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		i++
		if i == len(data) {
			break
		}
		switch c := data[i]; c {
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case 'r':
			out = append(out, '\r')
		default:
			out = append(out, c)
		}
	}
	return out
}

// Escape is the inverse of [Unescape]: it escapes quotes, backslashes, and
// the control characters that Unescape produces.
func Escape(text string) string {
	if !strings.ContainsAny(text, "\"\\\n\t\r") {
		return text
	}

	var out strings.Builder
	out.Grow(len(text) + 2)
	for i := range len(text) {
		switch c := text[i]; c {
		case '"', '\\':
			out.WriteByte('\\')
			out.WriteByte(c)
		case '\n':
			out.WriteString(`\n`)
		case '\t':
			out.WriteString(`\t`)
		case '\r':
			out.WriteString(`\r`)
		default:
			out.WriteByte(c)
		}
	}
	return out.String()
}

// undefined1252 reports whether b is one of the five bytes Windows-1252
// leaves unassigned. These decode to the C1 control with the same value, so
// that they survive a round trip.
func undefined1252(b byte) bool {
	switch b {
	case 0x81, 0x8d, 0x8f, 0x90, 0x9d:
		return true
	default:
		return false
	}
}

// EncodeWindows1252 converts UTF-8 text to Windows-1252 for writing. Runes
// with no Windows-1252 equivalent are replaced with '?'.
func EncodeWindows1252(text string) []byte {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		if r < 0x80 || (r <= 0xff && undefined1252(byte(r))) {
			out = append(out, byte(r))
			continue
		}
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return out
}

func decodeWindows1252(data []byte) string {
	var out strings.Builder
	out.Grow(len(data) + len(data)/2)
	for _, b := range data {
		switch {
		case b < 0x80:
			out.WriteByte(b)
		case undefined1252(b):
			out.WriteRune(rune(b))
		default:
			out.WriteRune(charmap.Windows1252.DecodeByte(b))
		}
	}
	return out.String()
}

func isASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}
