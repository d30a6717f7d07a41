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

// package unsafex contains extensions to Go's package unsafe.
//
// Importing this package should be treated as equivalent to importing unsafe.
package unsafex

import (
	"unsafe"
)

// Layout is the layout of a type.
type Layout struct {
	Size, Align int
}

// LayoutOf returns the layout of some type.
func LayoutOf[T any]() Layout {
	var v T
	return Layout{
		Size:  int(unsafe.Sizeof(v)),
		Align: int(unsafe.Alignof(v)),
	}
}

// StringAlias returns a string that aliases a byte slice, without copying.
//
// data must not be written to for the lifetime of the returned string.
//
//go:nosplit
func StringAlias[S ~[]byte](data S) string {
	if len(data) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(data), len(data))
}

// Within returns whether every byte of inner lives inside of the backing
// memory of outer. An empty inner is within outer if its data pointer is.
//
// This is used to check that a view did not copy out of its buffer.
func Within(inner, outer []byte) bool {
	if cap(outer) == 0 {
		return false
	}
	lo := uintptr(unsafe.Pointer(unsafe.SliceData(outer)))
	hi := lo + uintptr(len(outer))
	p := uintptr(unsafe.Pointer(unsafe.SliceData(inner)))
	return p >= lo && p+uintptr(len(inner)) <= hi
}

// Offset returns the offset of inner's first byte from the start of outer.
//
// The result is only meaningful if [Within] reports true.
func Offset(inner, outer []byte) int {
	lo := uintptr(unsafe.Pointer(unsafe.SliceData(outer)))
	p := uintptr(unsafe.Pointer(unsafe.SliceData(inner)))
	return int(p - lo)
}
