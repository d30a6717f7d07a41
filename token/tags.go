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

package token

import "github.com/bufbuild/clausewitz/scalar"

// Tag is the two-byte little-endian type tag that begins every item in a
// binary stream.
type Tag uint16

// Control and scalar tags. Every other tag is an identifier token.
const (
	TagEqual    Tag = 0x0001
	TagOpen     Tag = 0x0003
	TagClose    Tag = 0x0004
	TagI32      Tag = 0x000c
	TagF32      Tag = 0x000d
	TagBool     Tag = 0x000e
	TagQuoted   Tag = 0x000f
	TagU32      Tag = 0x0014
	TagUnquoted Tag = 0x0017
	TagF64      Tag = 0x0167
	TagRgb      Tag = 0x0243
	TagU64      Tag = 0x029c
	TagI64      Tag = 0x0317
)

// TagSize is the size of a tag, and of the length prefix of a string.
const TagSize = 2

// ColorSize is the payload size of [TagRgb]: an open tag, three tagged
// 32-bit integers, and a close tag.
const ColorSize = TagSize + 3*(TagSize+4) + TagSize

// Offsets of the three color components in a [TagRgb] payload.
var ColorOffsets = [3]int{4, 10, 16}

// Prefixed is returned by [Tag.Payload] for tags whose payload is a
// length-prefixed string.
const Prefixed = -1

var scalarTags = map[Tag]struct {
	kind scalar.Kind
	size int
}{
	TagI32:      {scalar.I32, 4},
	TagF32:      {scalar.F32, 4},
	TagBool:     {scalar.Bool, 1},
	TagQuoted:   {scalar.Quoted, Prefixed},
	TagU32:      {scalar.U32, 4},
	TagUnquoted: {scalar.Unquoted, Prefixed},
	TagF64:      {scalar.F64, 8},
	TagRgb:      {scalar.Rgb, ColorSize},
	TagU64:      {scalar.U64, 8},
	TagI64:      {scalar.I64, 8},
}

// Payload returns the scalar kind a tag introduces and the size of its
// payload, or [Prefixed] for strings. ok is false for control and
// identifier tags.
func (t Tag) Payload() (kind scalar.Kind, size int, ok bool) {
	v, ok := scalarTags[t]
	return v.kind, v.size, ok
}

// IsControl returns whether this is the tag of an operator or a brace.
func (t Tag) IsControl() bool {
	return t == TagEqual || t == TagOpen || t == TagClose
}

// IsID returns whether this tag is an identifier token.
func (t Tag) IsID() bool {
	_, _, ok := t.Payload()
	return !ok && !t.IsControl()
}

// TagOf returns the tag that introduces binary scalars of the given kind.
// Tokens have no fixed tag.
func TagOf(kind scalar.Kind) (Tag, bool) {
	switch kind {
	case scalar.I32:
		return TagI32, true
	case scalar.U32:
		return TagU32, true
	case scalar.I64:
		return TagI64, true
	case scalar.U64:
		return TagU64, true
	case scalar.F32:
		return TagF32, true
	case scalar.F64:
		return TagF64, true
	case scalar.Bool:
		return TagBool, true
	case scalar.Quoted:
		return TagQuoted, true
	case scalar.Unquoted:
		return TagUnquoted, true
	case scalar.Rgb:
		return TagRgb, true
	default:
		return 0, false
	}
}
