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
	"math"

	"github.com/bufbuild/clausewitz/internal/ext/bitsx"
)

// Flavor selects how a game's binary format encodes fractional numbers, and
// which text encoding its binary strings use.
type Flavor int8

const (
	// EU4 stores F32 as an int32 with three implied decimal digits and F64 as
	// a Q49.15 fixed-point number truncated to five decimal digits. Its
	// strings are Windows-1252.
	EU4 Flavor = iota

	// CK3 stores F32 as an IEEE 754 float32 and F64 as an int64 with three
	// implied decimal digits. Its strings are UTF-8.
	CK3
)

// String implements [fmt.Stringer].
func (f Flavor) String() string {
	if f == CK3 {
		return "ck3"
	}
	return "eu4"
}

// Encoding returns the encoding binary strings use in this flavor.
func (f Flavor) Encoding() Encoding {
	if f == CK3 {
		return UTF8
	}
	return Windows1252
}

// DecodeF32 decodes a 4-byte F32 payload.
func (f Flavor) DecodeF32(data []byte) float64 {
	if f == CK3 {
		return float64(math.Float32frombits(bitsx.LittleEndian[uint32](data)))
	}
	return float64(bitsx.LittleEndian[int32](data)) / 1000
}

// DecodeF64 decodes an 8-byte F64 payload.
func (f Flavor) DecodeF64(data []byte) float64 {
	v := bitsx.LittleEndian[int64](data)
	if f == CK3 {
		return float64(v) / 1000
	}
	return math.Floor(float64(v)/32768*100_000) / 100_000
}

// AppendF32 appends the F32 encoding of v to dst. It is the inverse of
// [Flavor.DecodeF32], up to the precision of the encoding.
func (f Flavor) AppendF32(dst []byte, v float64) []byte {
	if f == CK3 {
		return bitsx.AppendLittleEndian(dst, math.Float32bits(float32(v)))
	}
	return bitsx.AppendLittleEndian(dst, int32(math.Round(v*1000)))
}

// AppendF64 appends the F64 encoding of v to dst. It is the inverse of
// [Flavor.DecodeF64], up to the precision of the encoding.
func (f Flavor) AppendF64(dst []byte, v float64) []byte {
	if f == CK3 {
		return bitsx.AppendLittleEndian(dst, int64(math.Round(v*1000)))
	}
	return bitsx.AppendLittleEndian(dst, int64(math.Round(v*32768)))
}
