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

// Package bitsx contains extensions to Go's package math/bits.
package bitsx

import (
	"golang.org/x/exp/constraints" //nolint:exptostd // No stdlib equivalent for Integer.

	"github.com/bufbuild/clausewitz/internal/ext/unsafex"
)

// LittleEndian decodes an integer of type T from the first sizeof(T) bytes of
// b, which are interpreted as little-endian.
//
// Panics if b is too short; callers are expected to have bounds-checked.
func LittleEndian[T constraints.Integer](b []byte) T {
	n := unsafex.LayoutOf[T]().Size
	_ = b[n-1]

	var v T
	for i := n - 1; i >= 0; i-- {
		v = v<<8 | T(b[i])
	}
	return v
}

// AppendLittleEndian appends the little-endian encoding of v to b.
func AppendLittleEndian[T constraints.Integer](b []byte, v T) []byte {
	n := unsafex.LayoutOf[T]().Size
	for range n {
		b = append(b, byte(v))
		v >>= 8
	}
	return b
}
