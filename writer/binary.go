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

package writer

import (
	"bufio"
	"io"
	"math"

	"github.com/bufbuild/clausewitz/internal/ext/bitsx"
	"github.com/bufbuild/clausewitz/scalar"
	"github.com/bufbuild/clausewitz/token"
)

// ReverseResolver maps names to binary identifier tokens.
type ReverseResolver interface {
	Lookup(name string) (id uint16, ok bool)
}

// Binary writes the binary format.
//
// Keys and token values are written as identifier tokens when their names are
// known to the [ReverseResolver], and as unquoted strings otherwise. Strings
// are encoded according to the flavor.
type Binary struct {
	out     *bufio.Writer
	nesting nesting
	reverse ReverseResolver
	flavor  scalar.Flavor
	buf     []byte
}

var _ Writer = (*Binary)(nil)

// NewBinary returns a writer of binary data to w. reverse may be nil.
func NewBinary(w io.Writer, reverse ReverseResolver, flavor scalar.Flavor) *Binary {
	return &Binary{
		out:     bufio.NewWriter(w),
		nesting: newNesting(),
		reverse: reverse,
		flavor:  flavor,
	}
}

// BeginObject implements [Writer].
func (b *Binary) BeginObject() error {
	b.separate()
	b.nesting.begin(false)
	return b.emit(b.tag(token.TagOpen))
}

// EndObject implements [Writer].
func (b *Binary) EndObject() error {
	if _, err := b.nesting.end(false); err != nil {
		return err
	}
	return b.emit(b.tag(token.TagClose))
}

// BeginArray implements [Writer].
func (b *Binary) BeginArray() error {
	b.separate()
	b.nesting.begin(true)
	return b.emit(b.tag(token.TagOpen))
}

// EndArray implements [Writer].
func (b *Binary) EndArray() error {
	if _, err := b.nesting.end(true); err != nil {
		return err
	}
	return b.emit(b.tag(token.TagClose))
}

// WriteKey implements [Writer].
func (b *Binary) WriteKey(name string) error {
	if err := b.nesting.beginKey(); err != nil {
		return err
	}
	buf, err := b.name(name)
	if err != nil {
		b.nesting.key = false
		return err
	}
	b.nesting.endKey()
	return b.emit(buf)
}

// WriteKeyToken implements [Writer].
func (b *Binary) WriteKeyToken(id uint16, _ string) error {
	if err := b.nesting.beginKey(); err != nil {
		return err
	}
	b.nesting.endKey()
	return b.emit(b.tag(token.Tag(id)))
}

// WriteOperator implements [Writer]. Every operator other than
// [token.OpNone] is written as an equals sign, the only operator the binary
// format has.
func (b *Binary) WriteOperator(op token.Operator) error {
	return b.nesting.operator(op)
}

// WriteScalar implements [Writer].
//
// Binary scalars are copied as-is, except that floats of another flavor are
// re-encoded, as are strings of another encoding. Text numbers are written as
// unquoted strings, since the text does not say what width they should have.
func (b *Binary) WriteScalar(s scalar.Scalar) error {
	kind := s.Kind()
	switch {
	case kind == scalar.Token:
		id, _ := s.ID()
		return b.WriteToken(id, "")
	case kind == scalar.Rgb && !s.IsBinary():
		c, err := s.Rgb()
		if err != nil {
			return err
		}
		return b.WriteRgb(c)
	case kind == scalar.Quoted || kind == scalar.Unquoted:
		if s.IsBinary() && s.Encoding() == b.flavor.Encoding() {
			break
		}
		str, err := s.Str()
		if err != nil {
			return err
		}
		if kind == scalar.Quoted {
			return b.WriteQuoted(str)
		}
		return b.WriteUnquoted(str)
	case (kind == scalar.F32 || kind == scalar.F64) && s.Flavor() != b.flavor:
		v, err := s.Float64()
		if err != nil {
			return err
		}
		b.separate()
		if kind == scalar.F64 {
			return b.emit(b.flavor.AppendF64(b.tag(token.TagF64), v))
		}
		return b.emit(b.flavor.AppendF32(b.tag(token.TagF32), v))
	}

	tag, _ := token.TagOf(kind)
	if kind == scalar.Quoted || kind == scalar.Unquoted {
		if len(s.Bytes()) > math.MaxUint16 {
			return ErrTooLong
		}
		b.separate()
		buf := bitsx.AppendLittleEndian(b.tag(tag), uint16(len(s.Bytes())))
		return b.emit(append(buf, s.Bytes()...))
	}
	b.separate()
	return b.emit(append(b.tag(tag), s.Bytes()...))
}

// WriteUnquoted implements [Writer].
func (b *Binary) WriteUnquoted(s string) error {
	data, err := b.encode(s)
	if err != nil {
		return err
	}
	b.separate()
	return b.emit(b.str(token.TagUnquoted, data))
}

// WriteQuoted implements [Writer].
func (b *Binary) WriteQuoted(s string) error {
	data, err := b.encode(s)
	if err != nil {
		return err
	}
	b.separate()
	return b.emit(b.str(token.TagQuoted, data))
}

// WriteInt implements [Writer]. Values that fit are written as I32.
func (b *Binary) WriteInt(v int64) error {
	b.separate()
	if v >= math.MinInt32 && v <= math.MaxInt32 {
		return b.emit(bitsx.AppendLittleEndian(b.tag(token.TagI32), int32(v)))
	}
	return b.emit(bitsx.AppendLittleEndian(b.tag(token.TagI64), v))
}

// WriteUint implements [Writer]. Values that fit are written as U32.
func (b *Binary) WriteUint(v uint64) error {
	b.separate()
	if v <= math.MaxUint32 {
		return b.emit(bitsx.AppendLittleEndian(b.tag(token.TagU32), uint32(v)))
	}
	return b.emit(bitsx.AppendLittleEndian(b.tag(token.TagU64), v))
}

// WriteFloat implements [Writer]. Values that the flavor's F32 encoding
// represents exactly are written as F32, and all others as F64.
func (b *Binary) WriteFloat(v float64) error {
	b.separate()
	if b.fitsF32(v) {
		return b.emit(b.flavor.AppendF32(b.tag(token.TagF32), v))
	}
	return b.emit(b.flavor.AppendF64(b.tag(token.TagF64), v))
}

func (b *Binary) fitsF32(v float64) bool {
	if b.flavor == scalar.EU4 && math.Abs(v*1000) >= math.MaxInt32 {
		return false
	}
	return b.flavor.DecodeF32(b.flavor.AppendF32(nil, v)) == v
}

// WriteBool implements [Writer].
func (b *Binary) WriteBool(v bool) error {
	b.separate()
	var x byte
	if v {
		x = 1
	}
	return b.emit(append(b.tag(token.TagBool), x))
}

// WriteDate implements [Writer]. Dates are written as I32 hour counts.
func (b *Binary) WriteDate(d scalar.Date) error {
	hours, err := d.Binary()
	if err != nil {
		return err
	}
	b.separate()
	return b.emit(bitsx.AppendLittleEndian(b.tag(token.TagI32), hours))
}

// WriteRgb implements [Writer].
func (b *Binary) WriteRgb(c scalar.Color) error {
	b.separate()
	buf := bitsx.AppendLittleEndian(b.tag(token.TagRgb), uint16(token.TagOpen))
	for _, v := range [...]uint32{c.R, c.G, c.B} {
		buf = bitsx.AppendLittleEndian(buf, uint16(token.TagU32))
		buf = bitsx.AppendLittleEndian(buf, v)
	}
	return b.emit(bitsx.AppendLittleEndian(buf, uint16(token.TagClose)))
}

// WriteToken implements [Writer]. The id is written as-is; name is unused.
func (b *Binary) WriteToken(id uint16, _ string) error {
	b.separate()
	return b.emit(b.tag(token.Tag(id)))
}

// Flush implements [Writer].
func (b *Binary) Flush() error {
	return b.out.Flush()
}

func (b *Binary) separate() {
	keyed, op, _ := b.nesting.value()
	if keyed && op != token.OpNone {
		b.emit(b.tag(token.TagEqual))
	}
}

// tag starts a new item in the scratch buffer.
func (b *Binary) tag(tag token.Tag) []byte {
	return bitsx.AppendLittleEndian(b.buf[:0], uint16(tag))
}

// name encodes a key or unquoted value that may be known to the reverse
// resolver.
func (b *Binary) name(name string) ([]byte, error) {
	if b.reverse != nil {
		if id, ok := b.reverse.Lookup(name); ok && token.Tag(id).IsID() {
			return b.tag(token.Tag(id)), nil
		}
	}
	data, err := b.encode(name)
	if err != nil {
		return nil, err
	}
	return b.str(token.TagUnquoted, data), nil
}

// encode converts s to the flavor's encoding.
func (b *Binary) encode(s string) ([]byte, error) {
	data := []byte(s)
	if b.flavor.Encoding() == scalar.Windows1252 {
		data = scalar.EncodeWindows1252(s)
	}
	if len(data) > math.MaxUint16 {
		return nil, ErrTooLong
	}
	return data, nil
}

// str encodes a string item. The result aliases the scratch buffer, so
// nothing else may be written between building and emitting it.
func (b *Binary) str(tag token.Tag, data []byte) []byte {
	buf := bitsx.AppendLittleEndian(b.tag(tag), uint16(len(data)))
	return append(buf, data...)
}

func (b *Binary) emit(buf []byte) error {
	b.buf = buf[:0]
	_, err := b.out.Write(buf)
	return err
}
