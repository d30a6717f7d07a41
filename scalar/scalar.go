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
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/bufbuild/clausewitz/internal/ext/bitsx"
	"github.com/bufbuild/clausewitz/internal/ext/unsafex"
)

// Shape is the lexical form a [Scalar] was read from.
type Shape int8

const (
	ShapeUnquoted Shape = iota
	ShapeQuoted
	ShapeBinary
)

// String implements [fmt.Stringer].
func (s Shape) String() string {
	switch s {
	case ShapeUnquoted:
		return "unquoted"
	case ShapeQuoted:
		return "quoted"
	case ShapeBinary:
		return "binary"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Scalar is a leaf value: a view of a byte range in an input buffer, tagged
// with how the bytes are to be interpreted.
//
// The zero value is an empty unquoted text scalar.
//
// Scalars are values; copying one is cheap and copies share any decoded
// text. A Scalar is safe for concurrent use, provided the buffer it views is
// not mutated.
type Scalar struct {
	data   []byte
	cell   *cell
	kind   Kind
	flags  flags
	enc    Encoding
	flavor Flavor
}

type flags uint8

const (
	flagBinary flags = 1 << iota
	flagEscaped
)

// cell holds the materialized text of a scalar that could not be viewed as a
// string directly.
type cell struct {
	once sync.Once
	text string
	err  error
}

// NewUnquoted returns an unquoted text scalar viewing data.
func NewUnquoted(data []byte, enc Encoding) Scalar {
	s := Scalar{data: data, kind: Unquoted, enc: enc}
	if enc == Windows1252 && !isASCII(data) {
		s.cell = new(cell)
	}
	return s
}

// NewQuoted returns a quoted text scalar viewing data, which excludes the
// delimiting quotes. escaped should be true if data contains a backslash.
func NewQuoted(data []byte, escaped bool, enc Encoding) Scalar {
	s := Scalar{data: data, kind: Quoted, enc: enc}
	if escaped {
		s.flags |= flagEscaped
	}
	if escaped || (enc == Windows1252 && !isASCII(data)) {
		s.cell = new(cell)
	}
	return s
}

// NewColor returns a text color scalar. data is the whole of the color's
// source text, from the rgb keyword up to and including the closing brace.
func NewColor(data []byte) Scalar {
	return Scalar{data: data, kind: Rgb}
}

// NewBinary returns a binary scalar of the given kind viewing its payload.
//
// data must be exactly as long as the payload for kind: four bytes for
// [I32], [U32], and [F32]; eight for [I64], [U64], and [F64]; one for
// [Bool]; 22 for [Rgb], which is laid out as an embedded group of three
// tagged integers. Strings are the bytes after the length prefix. Binary
// strings are never escaped and are decoded with the flavor's encoding.
func NewBinary(kind Kind, data []byte, flavor Flavor) Scalar {
	s := Scalar{data: data, kind: kind, flags: flagBinary, enc: flavor.Encoding(), flavor: flavor}
	if (kind == Quoted || kind == Unquoted) && s.enc == Windows1252 && !isASCII(data) {
		s.cell = new(cell)
	}
	return s
}

// NewToken returns an unresolved binary identifier token. id is the two
// little-endian bytes that make up the token.
func NewToken(id []byte) Scalar {
	return Scalar{data: id, kind: Token, flags: flagBinary}
}

// NewResolvedToken returns a binary identifier token that resolved to name.
func NewResolvedToken(id []byte, name string) Scalar {
	s := Scalar{data: id, kind: Token, flags: flagBinary, cell: new(cell)}
	s.cell.once.Do(func() { s.cell.text = name })
	return s
}

// Kind returns the kind of value this scalar holds.
func (s Scalar) Kind() Kind {
	return s.kind
}

// Shape returns the lexical form this scalar was read from.
func (s Scalar) Shape() Shape {
	switch {
	case s.flags&flagBinary != 0:
		return ShapeBinary
	case s.kind == Quoted:
		return ShapeQuoted
	default:
		return ShapeUnquoted
	}
}

// IsBinary returns whether this scalar came from a binary stream.
func (s Scalar) IsBinary() bool {
	return s.flags&flagBinary != 0
}

// HasEscapes returns whether this is a quoted text scalar containing
// backslash escapes.
func (s Scalar) HasEscapes() bool {
	return s.flags&flagEscaped != 0
}

// Encoding returns the text encoding this scalar's bytes are decoded with.
func (s Scalar) Encoding() Encoding {
	return s.enc
}

// Flavor returns the binary flavor this scalar's numbers are decoded with.
// It is meaningless for text scalars.
func (s Scalar) Flavor() Flavor {
	return s.flavor
}

// Bytes returns the raw bytes this scalar views. For a quoted text scalar,
// this excludes the quotes and includes escapes verbatim.
//
// The returned slice aliases the input buffer and must not be mutated.
func (s Scalar) Bytes() []byte {
	return s.data
}

// ID returns the identifier of a binary token scalar.
func (s Scalar) ID() (uint16, bool) {
	if s.kind != Token || len(s.data) != 2 {
		return 0, false
	}
	return bitsx.LittleEndian[uint16](s.data), true
}

// Resolved returns whether this is a token scalar with a known name.
func (s Scalar) Resolved() bool {
	return s.kind == Token && s.cell != nil
}

// Str returns this scalar's text.
//
// Scalars that need no decoding return a string that aliases the input
// buffer, without allocating. Escaped and Windows-1252 strings are decoded
// once, on the first call, and every later call returns the same string.
//
// Fails with [ErrNotString] if the scalar is not text (a binary number, for
// example, or an unresolved token), or if it is UTF-8 text that is not valid
// UTF-8.
func (s Scalar) Str() (string, error) {
	switch s.kind {
	case Unquoted, Quoted:
	case Token:
		if s.cell == nil {
			return "", s.errorf("string", ErrNotString)
		}
		return s.cell.text, nil
	default:
		return "", s.errorf("string", ErrNotString)
	}

	if s.cell != nil {
		s.cell.once.Do(func() {
			s.cell.text, s.cell.err = s.materialize()
		})
		return s.cell.text, s.cell.err
	}

	if !utf8.Valid(s.data) {
		return "", s.errorf("string", ErrNotString)
	}
	return unsafex.StringAlias(s.data), nil
}

func (s Scalar) materialize() (string, error) {
	data := s.data
	if s.HasEscapes() {
		data = Unescape(data)
	}
	if s.enc == Windows1252 {
		return decodeWindows1252(data), nil
	}
	if !utf8.Valid(data) {
		return "", s.errorf("string", ErrNotString)
	}
	if s.HasEscapes() {
		// Unescape made a private copy.
		return unsafex.StringAlias(data), nil
	}
	return string(data), nil
}

// Equal returns whether two scalars are byte-for-byte identical and have the
// same shape and kind. No numeric coercion is performed: "1" and "1.0" are not
// equal, and neither is a binary integer equal to its textual spelling.
func (s Scalar) Equal(that Scalar) bool {
	return s.kind == that.kind &&
		s.Shape() == that.Shape() &&
		bytes.Equal(s.data, that.data)
}

// String implements [fmt.Stringer].
//
// Text scalars return their text. Binary scalars are rendered the way they
// would be written in the text format: numbers in decimal, booleans as yes
// or no, colors as rgb { r g b }, and unresolved tokens as a hex id.
func (s Scalar) String() string {
	switch s.kind {
	case Unquoted, Quoted:
		if str, err := s.Str(); err == nil {
			return str
		}
		return strings.ToValidUTF8(string(s.data), string(utf8.RuneError))
	case Token:
		if str, err := s.Str(); err == nil {
			return str
		}
		id, _ := s.ID()
		return fmt.Sprintf("0x%04x", id)
	case I32, I64:
		v, err := s.Int64()
		if err != nil {
			break
		}
		return strconv.FormatInt(v, 10)
	case U32, U64:
		v, err := s.Uint64()
		if err != nil {
			break
		}
		return strconv.FormatUint(v, 10)
	case F32, F64:
		v, err := s.Float64()
		if err != nil {
			break
		}
		return FormatFloat(v)
	case Bool:
		v, err := s.Bool()
		if err != nil {
			break
		}
		return FormatBool(v)
	case Rgb:
		c, err := s.Rgb()
		if err != nil {
			break
		}
		return c.String()
	}
	return fmt.Sprintf("%v(%x)", s.kind, s.data)
}

// FormatFloat formats a float the way the text format spells numbers: in
// positional notation, with no exponent and as few digits as round-trip.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatBool formats a boolean as yes or no.
func FormatBool(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
