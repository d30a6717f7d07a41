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

package report

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by the [ErrorWithPos] values returned from lexers
// and tape builders.
var (
	ErrInvalidByte       = errors.New("invalid byte")
	ErrUnterminatedQuote = errors.New("unterminated quoted string")
	ErrTruncated         = errors.New("truncated binary payload")
	ErrInvalidColor      = errors.New("invalid color")

	ErrUnmatchedClose     = errors.New("unmatched closing brace")
	ErrUnclosedGroup      = errors.New("unclosed group at end of input")
	ErrUnexpectedOperator = errors.New("unexpected operator")
	ErrUnexpectedGroup    = errors.New("unexpected group in key position")
	ErrMissingValue       = errors.New("key is missing a value")
)

// ErrorWithPos is an error about an input buffer that includes the byte
// offset at which it was detected.
//
// The value of Error() will contain both the offset and the underlying error.
// The value of Unwrap() will only be the underlying error.
type ErrorWithPos interface {
	error
	Kind() ErrorKind
	Offset() int
	Unwrap() error
}

// Error constructs a new [ErrorWithPos].
func Error(kind ErrorKind, offset int, err error) ErrorWithPos {
	return errorWithPos{kind: kind, offset: offset, underlying: err}
}

// Errorf constructs a new [ErrorWithPos] with a formatted message. As with
// [fmt.Errorf], a %w verb may be used to wrap one of the sentinels.
func Errorf(kind ErrorKind, offset int, format string, args ...any) ErrorWithPos {
	return errorWithPos{kind: kind, offset: offset, underlying: fmt.Errorf(format, args...)}
}

// UnresolvedTokenError is the error wrapped by an [UnresolvedToken] error.
type UnresolvedTokenError struct {
	ID uint16
}

// Error implements [error].
func (e UnresolvedTokenError) Error() string {
	return fmt.Sprintf("unresolved token 0x%04x", e.ID)
}

type errorWithPos struct {
	underlying error
	offset     int
	kind       ErrorKind
}

func (e errorWithPos) Error() string {
	return fmt.Sprintf("offset %d: %v", e.offset, e.underlying)
}

// Kind implements [ErrorWithPos].
func (e errorWithPos) Kind() ErrorKind {
	return e.kind
}

// Offset implements [ErrorWithPos].
func (e errorWithPos) Offset() int {
	return e.offset
}

// Unwrap implements [ErrorWithPos].
func (e errorWithPos) Unwrap() error {
	return e.underlying
}

var _ ErrorWithPos = errorWithPos{}
