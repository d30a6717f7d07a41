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
	"errors"
	"fmt"
)

// Sentinels wrapped by [Error].
var (
	ErrNotInt    = errors.New("not an integer")
	ErrOverflow  = errors.New("value out of range")
	ErrNotFloat  = errors.New("not a number")
	ErrNotBool   = errors.New("not a boolean")
	ErrNotDate   = errors.New("not a date")
	ErrNotString = errors.New("not valid text")
	ErrNotColor  = errors.New("not a color")
)

// Error is returned when a [Scalar] cannot be converted to the requested
// type. It never indicates that the parse that produced the scalar failed.
type Error struct {
	Kind Kind   // The kind of the scalar being converted.
	Want string // The requested Go type, e.g. "int64".
	Err  error  // One of the sentinels above.
}

// Error implements [error].
func (e *Error) Error() string {
	return fmt.Sprintf("cannot convert %v scalar to %s: %v", e.Kind, e.Want, e.Err)
}

// Unwrap implements the interface used by [errors.Is].
func (e *Error) Unwrap() error {
	return e.Err
}

func (s Scalar) errorf(want string, err error) error {
	return &Error{Kind: s.kind, Want: want, Err: err}
}
