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
	"strconv"

	"github.com/bufbuild/clausewitz/internal/ext/bitsx"
	"github.com/bufbuild/clausewitz/internal/ext/unsafex"
)

// Int64 converts this scalar to a signed integer.
//
// Text is parsed as an optionally signed run of decimal digits. Binary
// integers of any width convert if they fit.
func (s Scalar) Int64() (int64, error) {
	switch {
	case s.kind == Unquoted || s.kind == Quoted:
		v, err := parseInt(s.data)
		if err != nil {
			return 0, s.errorf("int64", err)
		}
		return v, nil
	case !s.IsBinary():
	case s.kind == I32:
		return int64(bitsx.LittleEndian[int32](s.data)), nil
	case s.kind == U32:
		return int64(bitsx.LittleEndian[uint32](s.data)), nil
	case s.kind == I64:
		return bitsx.LittleEndian[int64](s.data), nil
	case s.kind == U64:
		v := bitsx.LittleEndian[uint64](s.data)
		if v > math.MaxInt64 {
			return 0, s.errorf("int64", ErrOverflow)
		}
		return int64(v), nil
	}
	return 0, s.errorf("int64", ErrNotInt)
}

// Uint64 converts this scalar to an unsigned integer.
func (s Scalar) Uint64() (uint64, error) {
	switch {
	case s.kind == Unquoted || s.kind == Quoted:
		data := s.data
		if len(data) > 0 && data[0] == '+' {
			data = data[1:]
		}
		v, err := parseUint(data)
		if err != nil {
			return 0, s.errorf("uint64", err)
		}
		return v, nil
	case !s.IsBinary():
	case s.kind == U32:
		return uint64(bitsx.LittleEndian[uint32](s.data)), nil
	case s.kind == U64:
		return bitsx.LittleEndian[uint64](s.data), nil
	case s.kind == I32, s.kind == I64:
		v, _ := s.Int64()
		if v < 0 {
			return 0, s.errorf("uint64", ErrOverflow)
		}
		return uint64(v), nil
	}
	return 0, s.errorf("uint64", ErrNotInt)
}

// Float64 converts this scalar to a floating-point number.
//
// Text must be an optionally signed decimal number, with at least one digit
// on each side of the decimal point if there is one. Binary [F32] and [F64]
// are decoded according to the scalar's [Flavor]; binary integers convert
// directly.
func (s Scalar) Float64() (float64, error) {
	switch {
	case s.kind == Unquoted || s.kind == Quoted:
		if !isDecimal(s.data) {
			return 0, s.errorf("float64", ErrNotFloat)
		}
		v, err := strconv.ParseFloat(unsafex.StringAlias(s.data), 64)
		if err != nil {
			return 0, s.errorf("float64", ErrOverflow)
		}
		return v, nil
	case !s.IsBinary():
	case s.kind == F32:
		return s.flavor.DecodeF32(s.data), nil
	case s.kind == F64:
		return s.flavor.DecodeF64(s.data), nil
	case s.kind == I32, s.kind == I64:
		v, _ := s.Int64()
		return float64(v), nil
	case s.kind == U32, s.kind == U64:
		v, _ := s.Uint64()
		return float64(v), nil
	}
	return 0, s.errorf("float64", ErrNotFloat)
}

// Bool converts this scalar to a boolean. Text must be exactly yes or no.
func (s Scalar) Bool() (bool, error) {
	switch {
	case s.kind == Unquoted || s.kind == Quoted:
		switch string(s.data) {
		case "yes":
			return true, nil
		case "no":
			return false, nil
		}
	case s.IsBinary() && s.kind == Bool:
		return s.data[0] != 0, nil
	}
	return false, s.errorf("bool", ErrNotBool)
}

func parseUint(data []byte) (uint64, error) {
	if len(data) == 0 {
		return 0, ErrNotInt
	}

	var v uint64
	var overflow bool
	for _, c := range data {
		if c < '0' || c > '9' {
			return 0, ErrNotInt
		}
		d := uint64(c - '0')
		if v > (math.MaxUint64-d)/10 {
			overflow = true
		}
		v = v*10 + d
	}
	if overflow {
		return 0, ErrOverflow
	}
	return v, nil
}

func parseInt(data []byte) (int64, error) {
	var neg bool
	if len(data) > 0 && (data[0] == '-' || data[0] == '+') {
		neg = data[0] == '-'
		data = data[1:]
	}

	u, err := parseUint(data)
	switch {
	case err != nil:
		return 0, err
	case neg && u > 1<<63:
		return 0, ErrOverflow
	case neg:
		return -int64(u), nil
	case u > math.MaxInt64:
		return 0, ErrOverflow
	}
	return int64(u), nil
}

func isDecimal(data []byte) bool {
	if len(data) > 0 && (data[0] == '-' || data[0] == '+') {
		data = data[1:]
	}

	var digits, dot int
	for i, c := range data {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && dot == 0 && i > 0 && i < len(data)-1:
			dot++
		default:
			return false
		}
	}
	return digits > 0
}
