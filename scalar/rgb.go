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

	"github.com/bufbuild/clausewitz/internal/ext/bitsx"
)

// Color is a red-green-blue triple.
type Color struct {
	R, G, B uint32
}

// String implements [fmt.Stringer], in the text format's syntax.
func (c Color) String() string {
	return fmt.Sprintf("rgb { %d %d %d }", c.R, c.G, c.B)
}

// Rgb converts this scalar to a color.
//
// Text must be the keyword rgb followed by a braced group of three
// non-negative integers. A binary color decodes from the three integers in
// its payload.
func (s Scalar) Rgb() (Color, error) {
	if s.kind != Rgb {
		return Color{}, s.errorf("color", ErrNotColor)
	}

	if s.IsBinary() {
		return Color{
			R: bitsx.LittleEndian[uint32](s.data[4:]),
			G: bitsx.LittleEndian[uint32](s.data[10:]),
			B: bitsx.LittleEndian[uint32](s.data[16:]),
		}, nil
	}

	c, ok := parseColor(s.data)
	if !ok {
		return Color{}, s.errorf("color", ErrNotColor)
	}
	return c, nil
}

func parseColor(data []byte) (Color, bool) {
	rest, ok := bytes.CutPrefix(data, []byte("rgb"))
	if !ok {
		return Color{}, false
	}
	rest = bytes.TrimLeft(rest, whitespace)
	rest, ok = bytes.CutPrefix(rest, []byte("{"))
	if !ok {
		return Color{}, false
	}
	rest, ok = bytes.CutSuffix(rest, []byte("}"))
	if !ok {
		return Color{}, false
	}

	fields := bytes.Fields(rest)
	if len(fields) != 3 {
		return Color{}, false
	}
	var rgb [3]uint32
	for i, field := range fields {
		v, err := parseUint(field)
		if err != nil || v > 0xffffffff {
			return Color{}, false
		}
		rgb[i] = uint32(v)
	}
	return Color{R: rgb[0], G: rgb[1], B: rgb[2]}, true
}

// whitespace is the set of bytes the text format treats as insignificant.
const whitespace = " \t\n\r\v\f"
