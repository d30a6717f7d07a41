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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bufbuild/clausewitz/scalar"
	"github.com/bufbuild/clausewitz/token"
)

// TextOption configures a [Text] writer.
type TextOption func(*Text)

// WithEncoding selects the encoding of the text written. The default is
// [scalar.UTF8].
func WithEncoding(enc scalar.Encoding) TextOption {
	return func(t *Text) { t.enc = enc }
}

// WithIndent sets the string that each level of nesting is indented by. The
// default is a tab.
func WithIndent(indent string) TextOption {
	return func(t *Text) { t.indent = indent }
}

// Text writes the text format.
//
// Fields are written one per line, and arrays on a single line. Binary
// scalars are melted: numbers are written in decimal according to their
// flavor, booleans as yes or no, and identifier tokens by name.
type Text struct {
	out     *bufio.Writer
	nesting nesting
	enc     scalar.Encoding
	indent  string
	written bool
}

var _ Writer = (*Text)(nil)

// NewText returns a writer of text to w.
func NewText(w io.Writer, opts ...TextOption) *Text {
	t := &Text{
		out:     bufio.NewWriter(w),
		nesting: newNesting(),
		indent:  "\t",
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// BeginObject implements [Writer].
func (t *Text) BeginObject() error {
	t.separate()
	t.nesting.begin(false)
	return t.raw("{")
}

// EndObject implements [Writer].
func (t *Text) EndObject() error {
	f, err := t.nesting.end(false)
	if err != nil {
		return err
	}
	if f.count > 0 {
		t.newline()
	}
	return t.raw("}")
}

// BeginArray implements [Writer].
func (t *Text) BeginArray() error {
	t.separate()
	t.nesting.begin(true)
	return t.raw("{")
}

// EndArray implements [Writer].
func (t *Text) EndArray() error {
	f, err := t.nesting.end(true)
	if err != nil {
		return err
	}
	if f.count > 0 {
		return t.raw(" }")
	}
	return t.raw("}")
}

// WriteKey implements [Writer].
func (t *Text) WriteKey(name string) error {
	if err := t.nesting.beginKey(); err != nil {
		return err
	}
	if t.written {
		t.newline()
	}
	t.nesting.endKey()
	return t.text(name)
}

// WriteKeyToken implements [Writer].
func (t *Text) WriteKeyToken(id uint16, name string) error {
	if name == "" {
		name = fmt.Sprintf("0x%04x", id)
	}
	return t.WriteKey(name)
}

// WriteOperator implements [Writer].
func (t *Text) WriteOperator(op token.Operator) error {
	return t.nesting.operator(op)
}

// WriteScalar implements [Writer].
func (t *Text) WriteScalar(s scalar.Scalar) error {
	switch s.Kind() {
	case scalar.Quoted:
		return t.WriteQuoted(s.String())
	case scalar.Unquoted:
		return t.WriteUnquoted(s.String())
	case scalar.Token:
		id, _ := s.ID()
		name, _ := s.Str()
		return t.WriteToken(id, name)
	}

	// Numbers, booleans and colors are ASCII.
	t.separate()
	return t.raw(s.String())
}

// WriteUnquoted implements [Writer]. Text that cannot be written unquoted is
// quoted.
func (t *Text) WriteUnquoted(s string) error {
	t.separate()
	return t.text(s)
}

// WriteQuoted implements [Writer].
func (t *Text) WriteQuoted(s string) error {
	t.separate()
	return t.quoted(s)
}

// WriteInt implements [Writer].
func (t *Text) WriteInt(v int64) error {
	t.separate()
	return t.raw(strconv.FormatInt(v, 10))
}

// WriteUint implements [Writer].
func (t *Text) WriteUint(v uint64) error {
	t.separate()
	return t.raw(strconv.FormatUint(v, 10))
}

// WriteFloat implements [Writer].
func (t *Text) WriteFloat(v float64) error {
	t.separate()
	return t.raw(scalar.FormatFloat(v))
}

// WriteBool implements [Writer].
func (t *Text) WriteBool(v bool) error {
	t.separate()
	return t.raw(scalar.FormatBool(v))
}

// WriteDate implements [Writer].
func (t *Text) WriteDate(d scalar.Date) error {
	t.separate()
	return t.raw(d.String())
}

// WriteRgb implements [Writer].
func (t *Text) WriteRgb(c scalar.Color) error {
	t.separate()
	return t.raw(c.String())
}

// WriteToken implements [Writer]. Unknown tokens are written as their id in
// hexadecimal.
func (t *Text) WriteToken(id uint16, name string) error {
	if name == "" {
		name = fmt.Sprintf("0x%04x", id)
	}
	return t.WriteUnquoted(name)
}

// Flush implements [Writer].
func (t *Text) Flush() error {
	return t.out.Flush()
}

// separate writes whatever goes between the previous item and a value.
func (t *Text) separate() {
	keyed, op, f := t.nesting.value()
	switch {
	case keyed && op == token.OpNone:
		t.raw(" ")
	case keyed:
		t.raw(op.String())
	case f.array && (f.count > 0 || t.nesting.depth() > 0):
		t.raw(" ")
	case !f.array && t.written:
		t.newline()
	}
}

func (t *Text) newline() {
	t.raw("\n" + strings.Repeat(t.indent, t.nesting.depth()))
}

// text writes s unquoted if it would lex back as a single unquoted scalar,
// and quoted otherwise.
func (t *Text) text(s string) error {
	if !bare(s) {
		return t.quoted(s)
	}
	return t.encoded(s)
}

func (t *Text) quoted(s string) error {
	t.raw(`"`)
	t.encoded(scalar.Escape(s))
	return t.raw(`"`)
}

func (t *Text) encoded(s string) error {
	if t.enc == scalar.Windows1252 {
		t.written = true
		_, err := t.out.Write(scalar.EncodeWindows1252(s))
		return err
	}
	return t.raw(s)
}

func (t *Text) raw(s string) error {
	t.written = true
	_, err := t.out.WriteString(s)
	return err
}

// bare returns whether s lexes as exactly one unquoted scalar.
func bare(s string) bool {
	if s == "" || s == "rgb" {
		return false
	}
	for i := range len(s) {
		switch c := s[i]; {
		case c <= ' ', c == 0x7f:
			return false
		case strings.IndexByte(`={}"#<>`, c) >= 0:
			return false
		case (c == '!' || c == '?') && i+1 < len(s) && s[i+1] == '=':
			return false
		}
	}
	return true
}
